package chat

import "regexp"

var (
	reGroup    = regexp.MustCompile(`\[(.*?)\] .*?：(.*?) 【`)
	reUsername = regexp.MustCompile(`【(.*?)】`)
	reAmount   = regexp.MustCompile(`^\[.*?\] (.*?)：`)
)

type Canonical struct {
	Type     Type
	Amount   string
	Payload  string
	Username string
}

// ParseCanonical recovers the structural fields from a canonical text. It is
// used for event lists persisted before the fields were stored explicitly.
func ParseCanonical(text string) (Canonical, bool) {
	m := reGroup.FindStringSubmatch(text)
	if m == nil {
		return Canonical{}, false
	}

	u := reUsername.FindStringSubmatch(text)
	if u == nil {
		return Canonical{}, false
	}

	c := Canonical{
		Type:     Type(m[1]),
		Payload:  m[2],
		Username: u[1],
	}
	if a := reAmount.FindStringSubmatch(text); a != nil {
		c.Amount = a[1]
	}

	return c, true
}

// Backfill fills missing structural fields from the canonical text. It returns
// the number of events whose text could not be parsed; those stay out of groups.
func Backfill(events []Event) int {
	var unresolved int
	for i := range events {
		e := &events[i]
		if e.Username != "" {
			continue
		}

		c, ok := ParseCanonical(e.Text)
		if !ok {
			unresolved++
			continue
		}

		if e.Type == "" {
			e.Type = c.Type
		}
		e.Amount = c.Amount
		e.Payload = c.Payload
		e.Username = c.Username
	}
	return unresolved
}
