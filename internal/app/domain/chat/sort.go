package chat

import "slices"

// SortByTime returns a copy ordered newest first. Equal timestamps keep their
// relative order.
func SortByTime(events []Event) []Event {
	out := slices.Clone(events)
	slices.SortStableFunc(out, func(a, b Event) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return out
}
