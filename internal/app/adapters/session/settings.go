package session

import (
	"chatkeywords/internal/app/domain/chat"
	"chatkeywords/internal/app/domain/filter"
	"chatkeywords/internal/app/domain/group"
)

// Ключи состояния сессии в хранилище.
const (
	keyHideMessages      = "hideMessages"
	keyHideEpicGoals     = "hideEpicGoals"
	keyHideExcludedWords = "hideExcludedWords"
	keyExcludeWords      = "excludeWords"
	keySortMode          = "sortMode"
	keyGroupLimits       = group.LimitsKey
	keyMessages          = chat.MessagesKey
)

type SortMode string

const (
	SortTime    SortMode = "time"
	SortContent SortMode = "content"
)

func (m SortMode) Valid() bool {
	return m == SortTime || m == SortContent
}

const (
	FetchReplace = "replace"
	FetchAppend  = "append"
)

type Settings struct {
	HideMessages      bool         `json:"hide_messages"`
	HideEpicGoals     bool         `json:"hide_epic_goals"`
	HideExcludedWords bool         `json:"hide_excluded_words"`
	ExcludeWords      []string     `json:"exclude_words"`
	SortMode          SortMode     `json:"sort_mode"`
	GroupLimits       group.Limits `json:"group_limits"`
}

func defaultSettings() Settings {
	return Settings{
		ExcludeWords: []string{},
		SortMode:     SortTime,
		GroupLimits:  make(group.Limits),
	}
}

func (s *Settings) Filter() *filter.Config {
	cfg := &filter.Config{
		HideTypes:     make(map[chat.Type]struct{}, 2),
		HideExcluded:  s.HideExcludedWords,
		ExcludedWords: s.ExcludeWords,
	}
	if s.HideMessages {
		cfg.HideTypes[chat.TypeMessage] = struct{}{}
	}
	if s.HideEpicGoals {
		cfg.HideTypes[chat.TypeEpicGoal] = struct{}{}
	}
	return cfg
}

func (s *Settings) clone() Settings {
	c := *s
	c.ExcludeWords = append([]string{}, s.ExcludeWords...)
	c.GroupLimits = make(group.Limits, len(s.GroupLimits))
	for k, v := range s.GroupLimits {
		c.GroupLimits[k] = v
	}
	return c
}
