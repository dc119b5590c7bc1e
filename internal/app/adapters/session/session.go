package session

import (
	"chatkeywords/internal/app/adapters/metrics"
	"chatkeywords/internal/app/domain/chat"
	"chatkeywords/internal/app/domain/filter"
	"chatkeywords/internal/app/domain/group"
	"chatkeywords/internal/app/ports"
	"chatkeywords/pkg/logger"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"
)

// Session is the process-wide curation state: the event store plus the
// operator's filters, sort mode and group limits. Every change is written to
// the key-value store before the call returns.
type Session struct {
	log     logger.Logger
	kv      ports.KVPort
	scraper ports.ScraperPort
	store   *chat.Store
	now     func() time.Time

	mu        sync.RWMutex
	settings  Settings
	fetchMode string
}

type Option func(*Session)

func WithFetchMode(mode string) Option {
	return func(s *Session) {
		if mode == FetchAppend {
			s.fetchMode = FetchAppend
		}
	}
}

func New(log logger.Logger, kv ports.KVPort, scraper ports.ScraperPort, opts ...Option) *Session {
	s := &Session{
		log:       log,
		kv:        kv,
		scraper:   scraper,
		fetchMode: FetchReplace,
		now:       time.Now,
		settings:  defaultSettings(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.load()
	return s
}

// load reads every key. A value that cannot be read keeps its default; inside
// lists and maps only the unreadable items are dropped.
func (s *Session) load() {
	read := func(key string, v any) bool {
		found, err := s.kv.Get(key, v)
		if err != nil {
			s.log.Warn("Ignoring unreadable stored value", "key", key, "error", err.Error())
			return false
		}
		return found
	}
	scalar := func(key string, decode func(raw json.RawMessage) error) {
		var raw json.RawMessage
		if !read(key, &raw) {
			return
		}
		if err := decode(raw); err != nil {
			s.log.Warn("Ignoring unreadable stored value", "key", key, "error", err.Error())
		}
	}
	skipped := func(key string, n int) {
		if n > 0 {
			s.log.Warn("Skipped unreadable stored items", "key", key, "count", n)
		}
	}

	st := defaultSettings()
	for key, dst := range map[string]*bool{
		keyHideMessages:      &st.HideMessages,
		keyHideEpicGoals:     &st.HideEpicGoals,
		keyHideExcludedWords: &st.HideExcludedWords,
	} {
		scalar(key, func(raw json.RawMessage) error {
			var v bool
			if err := json.Unmarshal(raw, &v); err != nil {
				return err
			}
			*dst = v
			return nil
		})
	}
	scalar(keySortMode, func(raw json.RawMessage) error {
		var v SortMode
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		if !v.Valid() {
			return fmt.Errorf("unknown sort mode %q", v)
		}
		st.SortMode = v
		return nil
	})

	var words []json.RawMessage
	if read(keyExcludeWords, &words) {
		var n int
		st.ExcludeWords, n = decodeEach[string](words)
		st.ExcludeWords = filter.NormalizeWords(st.ExcludeWords)
		skipped(keyExcludeWords, n)
	}

	var limits map[string]json.RawMessage
	if read(keyGroupLimits, &limits) {
		for k, raw := range limits {
			var l group.Limit
			if err := json.Unmarshal(raw, &l); err != nil {
				s.log.Warn("Skipped unreadable group limit", "group", k, "error", err.Error())
				continue
			}
			st.GroupLimits[k] = l
		}
	}
	s.settings = st

	var events []chat.Event
	var items []json.RawMessage
	if read(keyMessages, &items) {
		var n int
		events, n = decodeEach[chat.Event](items)
		events = slices.DeleteFunc(events, func(e chat.Event) bool {
			if e.ID == "" {
				n++
				return true
			}
			return false
		})
		skipped(keyMessages, n)
	}
	if unresolved := chat.Backfill(events); unresolved > 0 {
		s.log.Warn("Stored events without canonical text are excluded from groups", "count", unresolved)
	}

	s.store = chat.NewStore(events, s.saveEvents)
	metrics.StoredEvents.Set(float64(s.store.Len()))
	s.log.Info("Session loaded", "events", s.store.Len(), "sort_mode", st.SortMode)
}

// decodeEach decodes every item on its own and returns the readable ones in
// order together with the number of skipped items.
func decodeEach[T any](items []json.RawMessage) ([]T, int) {
	out := make([]T, 0, len(items))
	var skipped int
	for _, raw := range items {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			skipped++
			continue
		}
		out = append(out, v)
	}
	return out, skipped
}

// saveEvents drops the key once the list is empty.
func (s *Session) saveEvents(events []chat.Event) error {
	metrics.StoredEvents.Set(float64(len(events)))

	var err error
	if len(events) == 0 {
		err = s.kv.Delete(keyMessages)
	} else {
		err = s.kv.Set(keyMessages, events)
	}
	if err != nil {
		metrics.SaveFailures.WithLabelValues(keyMessages).Inc()
		s.log.Error("Failed to save events", err)
		return err
	}
	return nil
}

func (s *Session) save(key string, v any) error {
	if err := s.kv.Set(key, v); err != nil {
		metrics.SaveFailures.WithLabelValues(key).Inc()
		s.log.Error("Failed to save setting", err, "key", key)
		return &chat.StoreError{Key: key, Err: err}
	}
	return nil
}

// Fetch commits the extracted events only when the whole fetch succeeded.
func (s *Session) Fetch(ctx context.Context, rawURL string) (int, error) {
	events, err := s.scraper.FetchAndExtract(ctx, rawURL)
	if err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, &chat.FetchError{URL: rawURL, Err: err}
	}

	if s.FetchMode() == FetchAppend {
		return s.store.Append(events...)
	}
	return len(events), s.store.Replace(events)
}

func (s *Session) FetchMode() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.fetchMode
}

// SetFetchMode switches between replacing and appending on the next fetch.
func (s *Session) SetFetchMode(mode string) error {
	if mode != FetchReplace && mode != FetchAppend {
		return &chat.ValidationError{Field: "fetch_mode", Reason: fmt.Sprintf("unknown fetch mode %q", mode)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.fetchMode = mode
	return nil
}

func (s *Session) Toggle(id string) error {
	return s.store.Toggle(id)
}

func (s *Session) ToggleAll(ids []string) error {
	return s.store.ToggleAll(ids)
}

func (s *Session) RemoveChecked() (int, error) {
	return s.store.RemoveChecked()
}

func (s *Session) Reset() error {
	return s.store.Reset()
}

func (s *Session) LoadDemo() error {
	return s.store.Replace(demoEvents(s.now()))
}

func (s *Session) Events() []chat.Event {
	return s.store.All()
}

func (s *Session) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.settings.clone()
}

func (s *Session) SetHideMessages(hide bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings.HideMessages = hide
	return s.save(keyHideMessages, hide)
}

func (s *Session) SetHideEpicGoals(hide bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings.HideEpicGoals = hide
	return s.save(keyHideEpicGoals, hide)
}

func (s *Session) SetHideExcludedWords(hide bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings.HideExcludedWords = hide
	return s.save(keyHideExcludedWords, hide)
}

// SetExcludeWords stores the non-blank words in slot order.
func (s *Session) SetExcludeWords(words []string) error {
	words = filter.NormalizeWords(words)
	if len(words) > filter.MaxExcludedWords {
		return &chat.ValidationError{
			Field:  "words",
			Reason: fmt.Sprintf("at most %d words are allowed, got %d", filter.MaxExcludedWords, len(words)),
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings.ExcludeWords = words
	return s.save(keyExcludeWords, words)
}

func (s *Session) SetSortMode(mode SortMode) error {
	if !mode.Valid() {
		return &chat.ValidationError{Field: "mode", Reason: fmt.Sprintf("unknown sort mode %q", mode)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings.SortMode = mode
	return s.save(keySortMode, mode)
}

func (s *Session) SetGroupLimit(key string, limit group.Limit) error {
	if key == "" {
		return &chat.ValidationError{Field: "key", Reason: "is required"}
	}
	if limit < 0 {
		return &chat.ValidationError{Field: "limit", Reason: "must be positive or unlimited"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings.GroupLimits[key] = limit
	return s.save(keyGroupLimits, s.settings.GroupLimits)
}

type View struct {
	SortMode SortMode     `json:"sort_mode"`
	Total    int          `json:"total"`
	Visible  int          `json:"visible"`
	Events   []chat.Event `json:"events,omitempty"`
	Groups   []group.View `json:"groups,omitempty"`
}

// View renders the filtered events in the current sort mode.
func (s *Session) View() View {
	st := s.Settings()
	all := s.store.All()
	visible := filter.Apply(all, st.Filter())

	v := View{
		SortMode: st.SortMode,
		Total:    len(all),
		Visible:  len(visible),
	}
	switch st.SortMode {
	case SortContent:
		v.Groups = group.Group(visible, st.GroupLimits)
	default:
		v.Events = chat.SortByTime(visible)
	}
	return v
}

// IsStoreError reports whether err is a persistence failure whose in-memory
// change has already been applied.
func IsStoreError(err error) bool {
	var se *chat.StoreError
	return errors.As(err, &se)
}
