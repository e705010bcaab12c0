// This file defines trivia questions as they circulate inside the system,
// already decoded and answer-shuffled by the trivia client.
package domain

type Question struct {
	ID           string   `json:"id"`
	Category     string   `json:"category"`
	Difficulty   string   `json:"difficulty"`
	Prompt       string   `json:"prompt"`
	Answers      []string `json:"answers"`
	CorrectIndex int      `json:"correctIndex"`
}
