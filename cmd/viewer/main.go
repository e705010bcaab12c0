// Command viewer prints the contents of a quiz-lab store as tables:
// rooms with their occupancy, users, score history and archived questions.
// It opens the database read-only so it can run next to a live server.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/kelseyhightower/envconfig"
	"github.com/olekukonko/tablewriter"

	"quiz-lab/domain"
	"quiz-lab/repositories"
)

type Config struct {
	BadgerFilepath string `envconfig:"BADGER_FILEPATH" default:"/tmp/quiz-lab/badger"`
	// VIEWER_COLOURS enables colorized section headers for readability
	Colours bool `envconfig:"VIEWER_COLOURS" default:"true"`
}

func main() {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		log.Fatalf("Config error: %v", err)
	}

	dbPath := flag.String("db", config.BadgerFilepath, "Path to badger DB")
	prefix := flag.String("prefix", "", "Only show one key family (room:, user:, score:, question:)")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	sections := []struct {
		title   string
		prefix  string
		headers []string
		mapper  func(key string, val []byte) []string
	}{
		{"ROOMS", "room:", []string{"Created", "ID", "Name", "Host", "Status", "Players"}, roomRow},
		{"USERS", "user:", []string{"ID", "Email", "Roles", "Created"}, userRow},
		{"SCORES", "score:", []string{"Finished", "User", "Points", "Bot", "Correct"}, scoreRow},
		{"QUESTIONS", "question:", []string{"Category", "Difficulty", "Prompt"}, questionRow},
	}

	for _, section := range sections {
		if *prefix != "" && section.prefix != *prefix {
			continue
		}

		header := fmt.Sprintf(" %s ", section.title)
		if config.Colours {
			header = color.New(color.BgBlack, color.FgGreen).Render(header)
		}
		fmt.Println(header)

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader(section.headers)
		table.SetAutoWrapText(false)
		table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		table.SetAlignment(tablewriter.ALIGN_LEFT)
		table.SetCenterSeparator("")
		table.SetColumnSeparator("")
		table.SetRowSeparator("")
		table.SetHeaderLine(false)
		table.SetBorder(false)
		table.SetTablePadding("\t")

		if err := scan(db, section.prefix, section.mapper, table); err != nil {
			log.Fatal(err)
		}
		table.Render()
		fmt.Println()
	}
}

func scan(db *badger.DB, prefix string, mapper func(string, []byte) []string, table *tablewriter.Table) error {
	return db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			err := item.Value(func(v []byte) error {
				if row := mapper(string(item.Key()), v); row != nil {
					table.Append(row)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func roomRow(key string, val []byte) []string {
	var room domain.Room
	if err := json.Unmarshal(val, &room); err != nil {
		fmt.Printf("Error unmarshaling key %s: %v\n", key, err)
		return nil
	}
	return []string{
		room.CreatedAt.Format("15:04:05"),
		shortID(string(room.ID)),
		room.Name,
		room.HostID,
		string(room.Status),
		fmt.Sprintf("%d/%d", room.CurrentPlayers, room.MaxPlayers),
	}
}

func userRow(key string, val []byte) []string {
	var user repositories.User
	if err := json.Unmarshal(val, &user); err != nil {
		fmt.Printf("Error unmarshaling key %s: %v\n", key, err)
		return nil
	}
	return []string{
		shortID(user.ID),
		user.Email,
		strings.Join(user.Roles, ","),
		user.CreatedAt.Format(time.DateOnly),
	}
}

func scoreRow(key string, val []byte) []string {
	var score repositories.Score
	if err := json.Unmarshal(val, &score); err != nil {
		fmt.Printf("Error unmarshaling key %s: %v\n", key, err)
		return nil
	}
	return []string{
		score.FinishedAt.Format("15:04:05"),
		score.UserID,
		fmt.Sprintf("%d", score.Points),
		fmt.Sprintf("%d", score.BotPoints),
		fmt.Sprintf("%d/%d", score.Correct, score.Questions),
	}
}

func questionRow(key string, val []byte) []string {
	var question domain.Question
	if err := json.Unmarshal(val, &question); err != nil {
		fmt.Printf("Error unmarshaling key %s: %v\n", key, err)
		return nil
	}
	prompt := question.Prompt
	if len(prompt) > 60 {
		prompt = prompt[:57] + "..."
	}
	return []string{question.Category, question.Difficulty, prompt}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func openDB(path string) (*badger.DB, error) {
	// BypassLockGuard allows opening while the server holds the lock
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true).
		WithValueLogFileSize(10 * 1024 * 1024)

	db, err := badger.Open(opts)
	if err != nil {
		// Si corruption détectée, essaie un open en write pour truncate
		if strings.Contains(err.Error(), "Log truncate required") {
			repairOpts := badger.DefaultOptions(path).
				WithLogger(nil).WithBypassLockGuard(true)

			db, err = badger.Open(repairOpts)
			if err != nil {
				return nil, fmt.Errorf("repair failed: %w", err)
			}

			db.Close()
			return badger.Open(opts)
		}
		return nil, err
	}
	return db, nil
}
