package internal

import (
	"fmt"
	"time"
)

type Config struct {
	Host string `env:"HOST,required=true"`
	Port int    `env:"PORT,required=true"`

	LogLevel        string `env:"LOG_LEVEL,required=true"`
	CharReplacement string `env:"CHARACTER_REPLACEMENT,required=true"`

	BadgerFilepath string `env:"BADGER_FILEPATH,required=true"`
	BlugeFilepath  string `env:"BLUGE_FILEPATH,required=true"`

	JWTSecret         string        `env:"JWT_SECRET,required=true"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,required=true"`

	TriviaAPIURL     string        `env:"TRIVIA_API_URL,required=true"`
	TriviaMaxRetries int           `env:"TRIVIA_MAX_RETRIES,default=3"`
	TriviaBackoff    time.Duration `env:"TRIVIA_BACKOFF,default=2s"`

	BotName     string        `env:"BOT_NAME,default=Quizzy"`
	BotAccuracy float64       `env:"BOT_ACCURACY,default=0.6"`
	BotMaxDelay time.Duration `env:"BOT_MAX_DELAY,default=8s"`

	// DebugPort serves the badger inspector; 0 disables it.
	DebugPort      int           `env:"DEBUG_PORT"`
	ReportInterval time.Duration `env:"REPORT_INTERVAL,default=5s"`
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
