//go:generate go run go.uber.org/mock/mockgen -source=trivia.go -destination=../mocks/mock_question_source.go -package=mocks
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"quiz-lab/domain"
	"quiz-lab/errors"
	"quiz-lab/repositories"
)

type IQuestionSource interface {
	Fetch(ctx context.Context, config domain.QuizConfig) ([]domain.Question, error)
}

// TriviaClient fetches questions from an Open Trivia DB compatible HTTP
// API. Responses are HTML-entity encoded and carry the correct answer
// separately; the client decodes, shuffles and records the correct index
// so the rest of the system never sees provider quirks.
//
// Every successful fetch is archived through the question repository,
// which makes the search endpoint grow organically with play.
type TriviaClient struct {
	baseURL    string
	httpClient *http.Client
	archive    repositories.IQuestionRepository
	log        *slog.Logger
	maxRetries int
	backoff    time.Duration
}

func NewTriviaClient(baseURL string, archive repositories.IQuestionRepository, log *slog.Logger, maxRetries int, backoff time.Duration) *TriviaClient {
	return &TriviaClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		archive:    archive,
		log:        log,
		maxRetries: maxRetries,
		backoff:    backoff,
	}
}

// apiResponse mirrors the provider's wire format.
type apiResponse struct {
	ResponseCode int `json:"response_code"`
	Results      []struct {
		Category         string   `json:"category"`
		Difficulty       string   `json:"difficulty"`
		Question         string   `json:"question"`
		CorrectAnswer    string   `json:"correct_answer"`
		IncorrectAnswers []string `json:"incorrect_answers"`
	} `json:"results"`
}

func (c *TriviaClient) Fetch(ctx context.Context, config domain.QuizConfig) ([]domain.Question, error) {
	endpoint, err := c.buildURL(config)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrQuestionFetch, err)
	}

	body, err := c.getWithRetry(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var response apiResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", errors.ErrQuestionFetch, err)
	}
	if response.ResponseCode != 0 {
		return nil, fmt.Errorf("%w: provider code %d", errors.ErrQuestionFetch, response.ResponseCode)
	}

	questions := make([]domain.Question, 0, len(response.Results))
	for _, result := range response.Results {
		answers := shuffleAnswers(result.CorrectAnswer, result.IncorrectAnswers)
		correct := html.UnescapeString(result.CorrectAnswer)

		question := domain.Question{
			ID:         uuid.New().String(),
			Category:   html.UnescapeString(result.Category),
			Difficulty: result.Difficulty,
			Prompt:     html.UnescapeString(result.Question),
			Answers:    answers,
		}
		for i, answer := range answers {
			if answer == correct {
				question.CorrectIndex = i
				break
			}
		}
		questions = append(questions, question)
	}

	// Archiving failures don't block the game
	if err := c.archive.Store(questions); err != nil {
		c.log.Warn("failed to archive questions", slog.String("error", err.Error()))
	}

	return questions, nil
}

func (c *TriviaClient) buildURL(config domain.QuizConfig) (string, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}

	query := base.Query()
	query.Set("amount", strconv.Itoa(config.Amount))
	if config.Category != "" {
		query.Set("category", config.Category)
	}
	if config.Difficulty != "" {
		query.Set("difficulty", config.Difficulty)
	}
	base.RawQuery = query.Encode()
	return base.String(), nil
}

// getWithRetry retries on 429 and 5xx with linear backoff. The provider
// rate-limits aggressively, one retry window usually clears it.
func (c *TriviaClient) getWithRetry(ctx context.Context, endpoint string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			wait := c.backoff * time.Duration(attempt)
			c.log.Debug("retrying trivia fetch",
				slog.Int("attempt", attempt),
				slog.Duration("wait", wait))

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
		}

		body, retryable, err := c.get(ctx, endpoint)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}
	return nil, fmt.Errorf("%w: %v", errors.ErrQuestionFetch, lastErr)
}

func (c *TriviaClient) get(ctx context.Context, endpoint string) (body []byte, retryable bool, err error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, err
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, true, err
	}
	defer func() { _ = response.Body.Close() }()

	switch {
	case response.StatusCode == http.StatusOK:
	case response.StatusCode == http.StatusTooManyRequests || response.StatusCode >= 500:
		return nil, true, fmt.Errorf("status %d", response.StatusCode)
	default:
		return nil, false, fmt.Errorf("status %d", response.StatusCode)
	}

	body, err = io.ReadAll(response.Body)
	return body, err != nil, err
}

func shuffleAnswers(correct string, incorrect []string) []string {
	answers := make([]string, 0, len(incorrect)+1)
	answers = append(answers, html.UnescapeString(correct))
	for _, answer := range incorrect {
		answers = append(answers, html.UnescapeString(answer))
	}
	rand.Shuffle(len(answers), func(i, j int) {
		answers[i], answers[j] = answers[j], answers[i]
	})
	return answers
}
