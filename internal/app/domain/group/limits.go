package group

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const (
	LimitsKey = "groupLimits"
	unlimited = "infinity"
)

// Limit is a per-user cap inside a group. The zero value means unlimited.
type Limit int

func (l Limit) Unlimited() bool {
	return l <= 0
}

func (l Limit) String() string {
	if l.Unlimited() {
		return unlimited
	}
	return strconv.Itoa(int(l))
}

func (l Limit) MarshalJSON() ([]byte, error) {
	if l.Unlimited() {
		return []byte(`"` + unlimited + `"`), nil
	}
	return []byte(strconv.Itoa(int(l))), nil
}

// UnmarshalJSON accepts a number, a numeric string or "infinity".
func (l *Limit) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = 0
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := ParseLimit(s)
		if err != nil {
			return err
		}
		*l = parsed
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("group limit: %w", err)
	}
	if n < 0 {
		return fmt.Errorf("group limit must be positive, got %d", n)
	}
	*l = Limit(n)
	return nil
}

func ParseLimit(s string) (Limit, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == unlimited || s == "∞" {
		return 0, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("group limit %q: %w", s, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("group limit must be positive, got %d", n)
	}
	return Limit(n), nil
}

// Limits maps a serialized group key to its cap. Missing keys are unlimited.
type Limits map[string]Limit

func (ls Limits) For(key string) Limit {
	if ls == nil {
		return 0
	}
	return ls[key]
}
