package group

import (
	"chatkeywords/internal/app/domain/chat"
	"encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

var base = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func ev(id string, t chat.Type, payload, user string, offset time.Duration) chat.Event {
	return chat.Event{
		ID:        id,
		Text:      chat.FormatText(t, "50", payload, user),
		Type:      t,
		Timestamp: base.Add(offset),
		Amount:    "50",
		Payload:   payload,
		Username:  user,
	}
}

func TestGroup_OrderAndCounts(t *testing.T) {
	t.Parallel()

	events := []chat.Event{
		ev("1", chat.TypeGiftMenu, "dance", "bob", 0),
		ev("2", chat.TypeMessage, "hi", "alice", time.Second),
		ev("3", chat.TypeGiftMenu, "dance", "alice", 2*time.Second),
		ev("4", chat.TypeGiftMenu, "dance", "bob", 3*time.Second),
		ev("5", chat.TypeMessage, "dance", "carol", 4*time.Second),
	}

	views := Group(events, nil)
	require.Len(t, views, 3)

	assert.Equal(t, "[プレゼントメニュー] ：dance", views[0].Key)
	assert.Equal(t, "[メッセージ] ：hi", views[1].Key)
	assert.Equal(t, "[メッセージ] ：dance", views[2].Key)

	g := views[0]
	assert.Equal(t, 3, g.DisplayableCount)
	assert.Equal(t, 2, g.TotalUsers)
	require.Len(t, g.Users, 2)
	assert.Equal(t, "bob", g.Users[0].Username)
	assert.Equal(t, 2, g.Users[0].Count)
	assert.Equal(t, "4", g.Users[0].Latest.ID)
	assert.Equal(t, "alice", g.Users[1].Username)
	assert.Equal(t, []string{"1", "3", "4"}, g.EventIDs())
	assert.True(t, g.Limit.Unlimited())
}

func TestGroup_Conservation(t *testing.T) {
	t.Parallel()

	events := []chat.Event{
		ev("1", chat.TypeRoulette, "kiss", "a", 0),
		ev("2", chat.TypeRoulette, "kiss", "a", 0),
		ev("3", chat.TypeRoulette, "kiss", "b", 0),
		ev("4", chat.TypeRoulette, "kiss", "a", 0),
		ev("5", chat.TypeRoulette, "kiss", "c", 0),
		ev("6", chat.TypeRoulette, "kiss", "b", 0),
	}
	key := "[ルーレット] ：kiss"

	tests := []struct {
		name      string
		limits    Limits
		wantCount int
	}{
		{"unlimited", nil, 6},
		{"cap not reached", Limits{key: 3}, 6},
		{"cap 2", Limits{key: 2}, 5},
		{"cap 1", Limits{key: 1}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			views := Group(events, tt.limits)
			require.Len(t, views, 1)
			v := views[0]

			var sum int
			overAny := false
			for _, u := range v.Users {
				sum += u.Count
				overAny = overAny || u.OverLimit
			}
			assert.Equal(t, len(v.Events), sum)
			assert.Equal(t, tt.wantCount, v.DisplayableCount)
			assert.LessOrEqual(t, v.DisplayableCount, sum)
			assert.Equal(t, v.DisplayableCount == sum, v.Limit.Unlimited() || !overAny)
		})
	}
}

func TestGroup_CapOne(t *testing.T) {
	t.Parallel()

	events := []chat.Event{
		ev("1", chat.TypeMessage, "hi", "alice", 0),
		ev("2", chat.TypeMessage, "hi", "alice", time.Second),
		ev("3", chat.TypeMessage, "hi", "alice", 2*time.Second),
	}

	views := Group(events, Limits{"[メッセージ] ：hi": 1})
	require.Len(t, views, 1)
	u := views[0].Users[0]
	assert.Equal(t, 3, u.Count)
	assert.True(t, u.OverLimit)
	assert.Equal(t, 1, views[0].DisplayableCount)
	assert.Equal(t, "3", u.Latest.ID)
}

func TestGroup_LatestTieBreak(t *testing.T) {
	t.Parallel()

	events := []chat.Event{
		ev("1", chat.TypeMessage, "hi", "alice", time.Minute),
		ev("2", chat.TypeMessage, "hi", "alice", time.Minute),
		ev("3", chat.TypeMessage, "hi", "alice", 0),
	}

	views := Group(events, nil)
	assert.Equal(t, "2", views[0].Users[0].Latest.ID)
}

func TestGroup_LegacyTextOnly(t *testing.T) {
	t.Parallel()

	events := []chat.Event{
		{ID: "1", Text: "[メッセージ] 100トークン：ありがとう！ 【user1】", Type: chat.TypeMessage, Timestamp: base},
		{ID: "2", Text: "not a canonical string", Type: chat.TypeMessage, Timestamp: base},
		ev("3", chat.TypeMessage, "ありがとう！", "user2", 0),
	}

	views := Group(events, nil)
	require.Len(t, views, 1)
	assert.Equal(t, "[メッセージ] ：ありがとう！", views[0].Key)
	assert.Equal(t, 2, views[0].TotalUsers)
	assert.Equal(t, []string{"1", "3"}, views[0].EventIDs())
}

func TestLimits_RoundTrip(t *testing.T) {
	t.Parallel()

	events := []chat.Event{
		ev("1", chat.TypeGiftMenu, "dance", "bob", 0),
		ev("2", chat.TypeGiftMenu, "dance", "bob", time.Second),
		ev("3", chat.TypeGiftMenu, "dance", "alice", 0),
		ev("4", chat.TypeMessage, "hi", "bob", 0),
	}
	limits := Limits{
		"[プレゼントメニュー] ：dance": 1,
		"[メッセージ] ：hi":         0,
	}

	data, err := json.Marshal(limits)
	require.NoError(t, err)

	var reloaded Limits
	require.NoError(t, json.Unmarshal(data, &reloaded))

	before := Group(events, limits)
	after := Group(events, reloaded)
	require.Len(t, after, len(before))
	for i := range before {
		assert.Equal(t, before[i].DisplayableCount, after[i].DisplayableCount)
		for j := range before[i].Users {
			assert.Equal(t, before[i].Users[j].OverLimit, after[i].Users[j].OverLimit)
		}
	}
}

func TestLimit_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Limit
		wantErr bool
	}{
		{`"infinity"`, 0, false},
		{`"3"`, 3, false},
		{`7`, 7, false},
		{`null`, 0, false},
		{`"0"`, 0, true},
		{`-2`, 0, true},
		{`"abc"`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			var l Limit
			err := json.Unmarshal([]byte(tt.in), &l)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, l)
		})
	}
}

func TestLimit_MarshalJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(map[string]Limit{"a": 0, "b": 4})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"infinity","b":4}`, string(data))
}
