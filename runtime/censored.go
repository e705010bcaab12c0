package runtime

import (
	"embed"
	"fmt"
	"log/slog"
	"strings"

	"quiz-lab/moderation"
)

//go:embed censored/*
var censoredFolder embed.FS

// BuildModerator loads the embedded blacklists and builds the Aho-Corasick
// automaton used to censor room display names.
func BuildModerator(log *slog.Logger, charReplacement rune) (*moderation.Moderator, error) {
	loader := NewCensoredLoader(censoredFolder)
	data, err := loader.LoadAll("censored")
	if err != nil {
		return nil, err
	}

	log.Info(fmt.Sprintf("%d censored files loaded [%s]",
		len(data.Languages), strings.Join(data.Languages, ",")))
	log.Info(fmt.Sprintf("%d unique censored words loaded", len(data.Words)))

	moderator, err := moderation.NewModerator(data.Words, charReplacement)
	if err != nil {
		return nil, err
	}
	return &moderator, nil
}
