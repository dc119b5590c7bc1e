package filter

import (
	"chatkeywords/internal/app/domain/chat"
	"strings"
)

// MaxExcludedWords is the number of exclude-word slots.
const MaxExcludedWords = 20

type Config struct {
	HideTypes     map[chat.Type]struct{} `json:"hide_types"`
	HideExcluded  bool                   `json:"hide_excluded"`
	ExcludedWords []string               `json:"excluded_words"`
}

func (c *Config) Hides(t chat.Type) bool {
	if !t.Suppressible() {
		return false
	}
	_, ok := c.HideTypes[t]
	return ok
}

// Visible evaluates one event in isolation.
func Visible(e *chat.Event, cfg *Config) bool {
	if cfg == nil {
		return true
	}

	if cfg.Hides(e.Type) {
		return false
	}

	if cfg.HideExcluded && containsExcluded(e.Text, cfg.ExcludedWords) {
		return false
	}

	return true
}

// Apply returns the visible events in their original order.
func Apply(events []chat.Event, cfg *Config) []chat.Event {
	out := make([]chat.Event, 0, len(events))
	for i := range events {
		if Visible(&events[i], cfg) {
			out = append(out, events[i])
		}
	}
	return out
}

func containsExcluded(text string, words []string) bool {
	for _, w := range words {
		if strings.TrimSpace(w) == "" {
			continue
		}
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// NormalizeWords drops blank slots, keeping the order of the remaining words.
func NormalizeWords(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if strings.TrimSpace(w) != "" {
			out = append(out, w)
		}
	}
	return out
}
