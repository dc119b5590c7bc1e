package extractor

import (
	"chatkeywords/internal/app/domain/chat"
	"chatkeywords/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"iter"
	"net/url"
	"slices"
	"strings"
	"testing"
	"time"
)

const page = `<!DOCTYPE html>
<html><body>
<div class="messages">
  <div class="message">
    <span class="user-levels-username-text"> alice </span>
    <span class="tip-amount-highlight">100</span>
    <span class="tip-comment-body">  thanks! </span>
  </div>
  <div class="message">
    <div class="tip-comment tip-comment-with-highlight tip-menu">
      <span class="user-levels-username-text">bob</span>
      <span class="tip-amount-highlight">30</span>
      <span class="tip-comment-body">dance</span>
    </div>
    <span class="tip-comment-epic-goal"></span>
  </div>
  <div class="message">
    <div class="tip-comment-epic-goal">
      <span class="user-levels-username-text">carol</span>
      <span class="tip-amount-highlight">500</span>
      <span class="tip-comment-body">goal <b>push</b></span>
    </div>
  </div>
  <div class="message plugin-message">
    <span class="plugin-message-plugin-name">Wheel of Fortune</span>
    <span class="user-levels-username-text">dave</span>
    <span class="plugin-message-accent"> Kiss </span>
  </div>
  <div class="message plugin-message">
    <span class="plugin-message-plugin-name">Wheel of Fortune</span>
    <span class="user-levels-username-text">erin</span>
    <span class="plugin-message-accent">   </span>
  </div>
  <div class="message plugin-message">
    <span class="plugin-message-plugin-name">Dice</span>
    <span class="user-levels-username-text">frank</span>
    <span class="plugin-message-accent">6</span>
  </div>
  <div class="message">
    <span class="user-levels-username-text">grace</span>
    <span class="message-body">just chatting</span>
  </div>
</div>
<div class="message">
  <span class="user-levels-username-text">outside</span>
  <span class="tip-amount-highlight">1</span>
  <span class="tip-comment-body">not in list</span>
</div>
</body></html>`

func parse(t *testing.T, s string) *html.Node {
	t.Helper()
	doc, err := ParseHTML(strings.NewReader(s))
	require.NoError(t, err)
	return doc
}

func TestStripchat_Candidates(t *testing.T) {
	t.Parallel()

	got := slices.Collect(NewStripchat().Candidates(parse(t, page)))
	require.Len(t, got, 4)

	assert.Equal(t, chat.RawCandidate{Kind: chat.KindTip, CommentText: "thanks!", AmountText: "100", Username: "alice"}, got[0])

	assert.Equal(t, "bob", got[1].Username)
	assert.True(t, got[1].IsHighlightMenu)
	assert.True(t, got[1].IsEpicGoal)

	assert.Equal(t, "goal push", got[2].CommentText)
	assert.False(t, got[2].IsHighlightMenu)
	assert.True(t, got[2].IsEpicGoal)

	assert.Equal(t, chat.KindPlugin, got[3].Kind)
	assert.Equal(t, "Kiss", got[3].PluginAccentText)
	assert.Equal(t, "dave", got[3].Username)
}

func TestStripchat_ClassifiedTexts(t *testing.T) {
	t.Parallel()

	now := time.Unix(0, 0)
	events := chat.ClassifyAll(NewStripchat().Candidates(parse(t, page)), now)

	texts := make([]string, len(events))
	for i, e := range events {
		texts[i] = e.Text
	}
	assert.Equal(t, []string{
		"[メッセージ] 100：thanks! 【alice】",
		"[プレゼントメニュー] 30：dance 【bob】",
		"[エピックゴール] 500：goal push 【carol】",
		"[ルーレット] ：Kiss 【dave】",
	}, texts)
}

func TestStripchat_Idempotent(t *testing.T) {
	t.Parallel()

	now := time.Now()
	first := chat.ClassifyAll(NewStripchat().Candidates(parse(t, page)), now)
	second := chat.ClassifyAll(NewStripchat().Candidates(parse(t, page)), now)
	require.Equal(t, len(first), len(second))

	for i := range first {
		second[i].ID = first[i].ID
	}
	assert.Equal(t, first, second)
}

func TestStripchat_EmptyAndMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"no messages", "<html><body><p>offline</p></body></html>"},
		{"broken markup", `<div class="messages"><div class="message"><span class="tip-comment-body">x`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Empty(t, slices.Collect(NewStripchat().Candidates(parse(t, tt.doc))))
		})
	}
}

func TestStripchat_StopsEarly(t *testing.T) {
	t.Parallel()

	var n int
	for range NewStripchat().Candidates(parse(t, page)) {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestStripchat_Match(t *testing.T) {
	t.Parallel()

	s := NewStripchat()
	for raw, want := range map[string]bool{
		"https://stripchat.com/someone":    true,
		"https://ja.stripchat.com/someone": true,
		"https://example.com/stripchat":    false,
		"https://notstripchat.com/x":       false,
	} {
		u, err := url.Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, want, s.Match(u), raw)
	}
}

type fakeMatcher struct{}

func (fakeMatcher) Name() string { return "fake" }

func (fakeMatcher) Match(u *url.URL) bool { return u.Hostname() == "fake.test" }

func (fakeMatcher) Candidates(*html.Node) iter.Seq[chat.RawCandidate] {
	return slices.Values([]chat.RawCandidate{{Kind: chat.KindTip, Username: "x"}})
}

func TestExtractor_For(t *testing.T) {
	t.Parallel()

	e := New(logger.NewNop(), NewStripchat(), fakeMatcher{}, NewStripchat())

	u, _ := url.Parse("https://fake.test/room")
	assert.Equal(t, "fake", e.For(u).Name())

	u, _ = url.Parse("https://elsewhere.test/room")
	assert.Equal(t, "stripchat", e.For(u).Name())

	assert.Equal(t, "stripchat", e.For(nil).Name())
	assert.Equal(t, "fake", e.ForHost("FAKE.test").Name())
	assert.Equal(t, "stripchat", e.ForHost("").Name())

	got := slices.Collect(e.Extract(u, parse(t, page)))
	assert.Len(t, got, 4)
}
