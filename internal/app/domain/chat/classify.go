package chat

import (
	"github.com/google/uuid"
	"iter"
	"strings"
	"time"
)

func Classify(c RawCandidate, now time.Time) Event {
	username := strings.TrimSpace(c.Username)

	if c.Kind == KindPlugin {
		prize := strings.TrimSpace(c.PluginAccentText)
		return Event{
			ID:        uuid.NewString(),
			Text:      FormatText(TypeRoulette, "", prize, username),
			Type:      TypeRoulette,
			Timestamp: now,
			Payload:   prize,
			Username:  username,
		}
	}

	t := TypeMessage
	switch {
	case c.IsHighlightMenu:
		t = TypeGiftMenu
	case c.IsEpicGoal:
		t = TypeEpicGoal
	}

	amount := strings.TrimSpace(c.AmountText)
	comment := strings.TrimSpace(c.CommentText)
	return Event{
		ID:        uuid.NewString(),
		Text:      FormatText(t, amount, comment, username),
		Type:      t,
		Timestamp: now,
		Amount:    amount,
		Payload:   comment,
		Username:  username,
	}
}

// ClassifyAll drains seq, stamping every event with the same capture time.
func ClassifyAll(seq iter.Seq[RawCandidate], now time.Time) []Event {
	events := make([]Event, 0)
	for c := range seq {
		events = append(events, Classify(c, now))
	}
	return events
}
