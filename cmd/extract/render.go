package main

import (
	"chatkeywords/internal/app/domain/chat"
	"chatkeywords/internal/app/domain/group"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// parseLimits reads repeated key=n flags. The key may itself contain "=", so
// the last one separates the value.
func parseLimits(flags []string) (group.Limits, error) {
	limits := make(group.Limits, len(flags))
	for _, f := range flags {
		i := strings.LastIndex(f, "=")
		if i <= 0 {
			return nil, fmt.Errorf("limit %q: expected key=n", f)
		}

		l, err := group.ParseLimit(f[i+1:])
		if err != nil {
			return nil, err
		}
		limits[f[:i]] = l
	}
	return limits, nil
}

func render(w io.Writer, events []chat.Event, grouped bool, limitFlags []string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	if !grouped {
		return enc.Encode(chat.SortByTime(events))
	}

	limits, err := parseLimits(limitFlags)
	if err != nil {
		return err
	}
	return enc.Encode(group.Group(events, limits))
}
