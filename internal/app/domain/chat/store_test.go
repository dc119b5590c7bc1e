package chat

import (
	"errors"
	"fmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

type recorder struct {
	saves [][]Event
	err   error
}

func (r *recorder) save(events []Event) error {
	r.saves = append(r.saves, events)
	return r.err
}

func numbered(n int) []Event {
	events := make([]Event, n)
	for i := range events {
		events[i] = Event{ID: fmt.Sprint(i + 1), Text: fmt.Sprintf("[メッセージ] 1：m%d 【u】", i+1), Type: TypeMessage}
	}
	return events
}

func ids(events []Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.ID
	}
	return out
}

func TestStore_RemoveChecked(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	s := NewStore(numbered(5), rec.save)

	require.NoError(t, s.Toggle("2"))
	require.NoError(t, s.Toggle("4"))

	removed, err := s.RemoveChecked()
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Equal(t, []string{"1", "3", "5"}, ids(s.All()))
	assert.Equal(t, []string{"1", "3", "5"}, ids(rec.saves[len(rec.saves)-1]))

	require.NoError(t, s.Toggle("2"))
	assert.NotContains(t, ids(s.All()), "2")
	assert.NotContains(t, ids(s.All()), "4")
}

func TestStore_AppendDedup(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	s := NewStore(nil, rec.save)

	added, err := s.Append(numbered(3)...)
	require.NoError(t, err)
	assert.Equal(t, 3, added)

	added, err = s.Append(numbered(4)...)
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(s.All()))
	assert.Len(t, rec.saves, 2)
}

func TestStore_ToggleUnknown(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	s := NewStore(numbered(2), rec.save)

	require.NoError(t, s.Toggle("missing"))
	assert.Empty(t, rec.saves)
	for _, e := range s.All() {
		assert.False(t, e.Checked)
	}
}

func TestStore_ToggleAll(t *testing.T) {
	t.Parallel()

	s := NewStore(numbered(4), nil)

	require.NoError(t, s.Toggle("1"))
	require.NoError(t, s.ToggleAll([]string{"1", "2"}))
	all := s.All()
	assert.True(t, all[0].Checked)
	assert.True(t, all[1].Checked)

	require.NoError(t, s.ToggleAll([]string{"1", "2"}))
	all = s.All()
	assert.False(t, all[0].Checked)
	assert.False(t, all[1].Checked)
	assert.False(t, all[2].Checked)
}

func TestStore_ResetAndReplace(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	s := NewStore(numbered(3), rec.save)

	require.NoError(t, s.Reset())
	assert.Zero(t, s.Len())
	require.Len(t, rec.saves, 1)
	assert.NotNil(t, rec.saves[0])
	assert.Empty(t, rec.saves[0])

	require.NoError(t, s.Replace(numbered(2)))
	assert.Equal(t, []string{"1", "2"}, ids(s.All()))
}

func TestStore_SaveFailureKeepsState(t *testing.T) {
	t.Parallel()

	rec := &recorder{err: errors.New("disk full")}
	s := NewStore(numbered(3), rec.save)

	err := s.Toggle("1")
	var se *StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, MessagesKey, se.Key)
	assert.True(t, s.All()[0].Checked)

	_, err = s.RemoveChecked()
	require.Error(t, err)
	assert.Equal(t, []string{"2", "3"}, ids(s.All()))
}

func TestStore_AllIsCopy(t *testing.T) {
	t.Parallel()

	s := NewStore(numbered(1), nil)
	all := s.All()
	all[0].Checked = true
	assert.False(t, s.All()[0].Checked)
}

func TestNewStore_DropsDuplicateIDs(t *testing.T) {
	t.Parallel()

	events := append(numbered(2), Event{ID: "1", Text: "dup"})
	s := NewStore(events, nil)
	assert.Equal(t, 2, s.Len())
	assert.NotEqual(t, "dup", s.All()[0].Text)
}
