package chat

import (
	"strings"
	"time"
)

type Type string

const (
	TypeMessage  Type = "メッセージ"
	TypeGiftMenu Type = "プレゼントメニュー"
	TypeEpicGoal Type = "エピックゴール"
	TypeRoulette Type = "ルーレット"
)

var types = map[Type]struct{}{
	TypeMessage:  {},
	TypeGiftMenu: {},
	TypeEpicGoal: {},
	TypeRoulette: {},
}

func (t Type) Valid() bool {
	_, ok := types[t]
	return ok
}

// Suppressible сообщает, можно ли скрыть тип фильтром по типу.
func (t Type) Suppressible() bool {
	return t == TypeMessage || t == TypeEpicGoal
}

type Kind int

const (
	KindTip Kind = iota
	KindPlugin
)

// RawCandidate is one matched DOM row before classification.
type RawCandidate struct {
	Kind            Kind
	CommentText     string
	AmountText      string
	Username        string
	IsHighlightMenu bool
	IsEpicGoal      bool

	PluginName       string
	PluginAccentText string
}

type Event struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Type      Type      `json:"type"`
	Checked   bool      `json:"checked"`
	Timestamp time.Time `json:"timestamp"`

	Amount   string `json:"amount,omitempty"`
	Payload  string `json:"payload,omitempty"`
	Username string `json:"username,omitempty"`
}

// Key returns the grouping key of the event. ok is false when the event carries
// neither structural fields nor a parsable canonical text.
func (e *Event) Key() (key GroupKey, username string, ok bool) {
	if e.Type != "" && e.Username != "" {
		return GroupKey{Type: e.Type, Payload: e.Payload}, e.Username, true
	}

	p, ok := ParseCanonical(e.Text)
	if !ok {
		return GroupKey{}, "", false
	}
	return GroupKey{Type: p.Type, Payload: p.Payload}, p.Username, true
}

type GroupKey struct {
	Type    Type
	Payload string
}

func (k GroupKey) String() string {
	return "[" + string(k.Type) + "] ：" + k.Payload
}

// FormatText renders the canonical display string.
func FormatText(t Type, amount, payload, username string) string {
	var b strings.Builder
	b.Grow(len(t) + len(amount) + len(payload) + len(username) + 16)

	b.WriteByte('[')
	b.WriteString(string(t))
	b.WriteString("] ")
	b.WriteString(amount)
	b.WriteString("：")
	b.WriteString(payload)
	b.WriteString(" 【")
	b.WriteString(username)
	b.WriteString("】")

	return b.String()
}
