package chat

import (
	"slices"
	"sync"
)

const MessagesKey = "messages"

// SaveFunc persists the full event sequence after a mutation.
type SaveFunc func(events []Event) error

// Store keeps events in insertion order, unique by ID. A failed save leaves the
// in-memory state as mutated.
type Store struct {
	mu     sync.RWMutex
	events []Event
	index  map[string]int
	save   SaveFunc
}

func NewStore(events []Event, save SaveFunc) *Store {
	s := &Store{save: save}
	s.load(events)
	return s
}

func (s *Store) load(events []Event) {
	s.events = make([]Event, 0, len(events))
	s.index = make(map[string]int, len(events))
	for _, e := range events {
		if _, ok := s.index[e.ID]; ok {
			continue
		}
		s.index[e.ID] = len(s.events)
		s.events = append(s.events, e)
	}
}

func (s *Store) reindex() {
	clear(s.index)
	for i, e := range s.events {
		s.index[e.ID] = i
	}
}

// Append adds events whose IDs are not yet present and returns how many were added.
func (s *Store) Append(events ...Event) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var added int
	for _, e := range events {
		if _, ok := s.index[e.ID]; ok {
			continue
		}
		s.index[e.ID] = len(s.events)
		s.events = append(s.events, e)
		added++
	}

	return added, s.persistLocked()
}

func (s *Store) Replace(events []Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.load(events)
	return s.persistLocked()
}

// Toggle flips the checked flag; an unknown id is a no-op.
func (s *Store) Toggle(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return nil
	}
	s.events[i].Checked = !s.events[i].Checked

	return s.persistLocked()
}

// ToggleAll checks every listed event unless all of them are already checked,
// in which case they are all unchecked. Unknown ids are ignored.
func (s *Store) ToggleAll(ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := make([]int, 0, len(ids))
	allChecked := true
	for _, id := range ids {
		i, ok := s.index[id]
		if !ok {
			allChecked = false
			continue
		}
		idx = append(idx, i)
		if !s.events[i].Checked {
			allChecked = false
		}
	}
	if len(idx) == 0 {
		return nil
	}

	for _, i := range idx {
		s.events[i].Checked = !allChecked
	}

	return s.persistLocked()
}

func (s *Store) RemoveChecked() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.events)
	s.events = slices.DeleteFunc(s.events, func(e Event) bool {
		return e.Checked
	})
	s.reindex()

	return before - len(s.events), s.persistLocked()
}

func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = s.events[:0]
	clear(s.index)

	return s.persistLocked()
}

func (s *Store) All() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.events)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.events)
}

func (s *Store) persistLocked() error {
	if s.save == nil {
		return nil
	}

	if err := s.save(slices.Clone(s.events)); err != nil {
		return &StoreError{Key: MessagesKey, Err: err}
	}
	return nil
}
