package chat

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"slices"
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name     string
		in       RawCandidate
		wantType Type
		wantText string
	}{
		{
			name:     "plain tip",
			in:       RawCandidate{Kind: KindTip, CommentText: "  thanks! ", AmountText: "100", Username: "alice"},
			wantType: TypeMessage,
			wantText: "[メッセージ] 100：thanks! 【alice】",
		},
		{
			name:     "gift menu",
			in:       RawCandidate{Kind: KindTip, CommentText: "dance", AmountText: " 30 ", Username: " bob ", IsHighlightMenu: true},
			wantType: TypeGiftMenu,
			wantText: "[プレゼントメニュー] 30：dance 【bob】",
		},
		{
			name:     "epic goal",
			in:       RawCandidate{Kind: KindTip, CommentText: "goal", AmountText: "500", Username: "carol", IsEpicGoal: true},
			wantType: TypeEpicGoal,
			wantText: "[エピックゴール] 500：goal 【carol】",
		},
		{
			name:     "gift menu wins over epic goal",
			in:       RawCandidate{Kind: KindTip, CommentText: "x", AmountText: "1", Username: "d", IsHighlightMenu: true, IsEpicGoal: true},
			wantType: TypeGiftMenu,
			wantText: "[プレゼントメニュー] 1：x 【d】",
		},
		{
			name:     "roulette",
			in:       RawCandidate{Kind: KindPlugin, PluginName: "Wheel of Fortune", PluginAccentText: " Kiss ", Username: "erin"},
			wantType: TypeRoulette,
			wantText: "[ルーレット] ：Kiss 【erin】",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := Classify(tt.in, now)
			assert.Equal(t, tt.wantType, e.Type)
			assert.Equal(t, tt.wantText, e.Text)
			assert.Equal(t, now, e.Timestamp)
			assert.False(t, e.Checked)
			assert.NotEmpty(t, e.ID)

			c, ok := ParseCanonical(e.Text)
			require.True(t, ok)
			assert.Equal(t, e.Type, c.Type)
			assert.Equal(t, e.Payload, c.Payload)
			assert.Equal(t, e.Username, c.Username)
			assert.Equal(t, e.Amount, c.Amount)
		})
	}
}

func TestClassifyAll(t *testing.T) {
	t.Parallel()

	now := time.Now()
	candidates := []RawCandidate{
		{Kind: KindTip, CommentText: "a", AmountText: "1", Username: "u"},
		{Kind: KindPlugin, PluginAccentText: "b", Username: "v"},
	}

	first := ClassifyAll(slices.Values(candidates), now)
	second := ClassifyAll(slices.Values(candidates), now)
	require.Len(t, first, 2)
	require.Len(t, second, 2)

	for i := range first {
		assert.NotEqual(t, first[i].ID, second[i].ID)
		second[i].ID = first[i].ID
		assert.Equal(t, first[i], second[i])
	}

	assert.Empty(t, ClassifyAll(slices.Values([]RawCandidate(nil)), now))
}

func TestParseCanonical(t *testing.T) {
	t.Parallel()

	c, ok := ParseCanonical("[メッセージ] 100トークン：ありがとう！ 【user1】")
	require.True(t, ok)
	assert.Equal(t, Canonical{Type: TypeMessage, Amount: "100トークン", Payload: "ありがとう！", Username: "user1"}, c)

	_, ok = ParseCanonical("garbage")
	assert.False(t, ok)
}

func TestBackfill(t *testing.T) {
	t.Parallel()

	events := []Event{
		{ID: "1", Text: "[ルーレット] ：Kiss 【erin】"},
		{ID: "2", Text: "broken"},
		{ID: "3", Text: "[メッセージ] 1：x 【a】", Type: TypeMessage, Payload: "x", Username: "a"},
	}

	assert.Equal(t, 1, Backfill(events))
	assert.Equal(t, TypeRoulette, events[0].Type)
	assert.Equal(t, "Kiss", events[0].Payload)
	assert.Equal(t, "erin", events[0].Username)
	assert.Empty(t, events[1].Username)
}

func TestSortByTime(t *testing.T) {
	t.Parallel()

	base := time.Unix(1000, 0)
	events := []Event{
		{ID: "old", Timestamp: base},
		{ID: "new", Timestamp: base.Add(time.Hour)},
		{ID: "tie1", Timestamp: base.Add(time.Minute)},
		{ID: "tie2", Timestamp: base.Add(time.Minute)},
	}

	got := SortByTime(events)
	ids := make([]string, len(got))
	for i, e := range got {
		ids[i] = e.ID
	}
	assert.Equal(t, []string{"new", "tie1", "tie2", "old"}, ids)
	assert.Equal(t, "old", events[0].ID)
}
