package group

import "chatkeywords/internal/app/domain/chat"

type User struct {
	Username  string     `json:"username"`
	Count     int        `json:"count"`
	Latest    chat.Event `json:"latest"`
	OverLimit bool       `json:"over_limit"`
}

type View struct {
	Key              string       `json:"key"`
	Type             chat.Type    `json:"type"`
	Payload          string       `json:"payload"`
	Limit            Limit        `json:"limit"`
	DisplayableCount int          `json:"displayable_count"`
	TotalUsers       int          `json:"total_users"`
	Users            []User       `json:"users"`
	Events           []chat.Event `json:"events"`
}

// EventIDs lists every event of the group in sequence order.
func (v *View) EventIDs() []string {
	ids := make([]string, len(v.Events))
	for i, e := range v.Events {
		ids[i] = e.ID
	}
	return ids
}

type bucket struct {
	key    chat.GroupKey
	events []chat.Event
	users  []string
	byUser map[string]*User
}

// Group aggregates events by (type, payload) and then by username. Groups and
// users keep the order of their first occurrence. Events without a resolvable
// key are left out.
func Group(events []chat.Event, limits Limits) []View {
	order := make([]*bucket, 0)
	buckets := make(map[chat.GroupKey]*bucket)

	for _, e := range events {
		key, username, ok := e.Key()
		if !ok {
			continue
		}

		b, exists := buckets[key]
		if !exists {
			b = &bucket{key: key, byUser: make(map[string]*User)}
			buckets[key] = b
			order = append(order, b)
		}
		b.events = append(b.events, e)

		u, exists := b.byUser[username]
		if !exists {
			u = &User{Username: username, Latest: e}
			b.byUser[username] = u
			b.users = append(b.users, username)
		}
		u.Count++
		// equal timestamps: the later event in the sequence wins
		if !e.Timestamp.Before(u.Latest.Timestamp) {
			u.Latest = e
		}
	}

	views := make([]View, 0, len(order))
	for _, b := range order {
		keyStr := b.key.String()
		limit := limits.For(keyStr)

		v := View{
			Key:        keyStr,
			Type:       b.key.Type,
			Payload:    b.key.Payload,
			Limit:      limit,
			TotalUsers: len(b.users),
			Users:      make([]User, 0, len(b.users)),
			Events:     b.events,
		}

		for _, name := range b.users {
			u := *b.byUser[name]
			if limit.Unlimited() {
				v.DisplayableCount += u.Count
			} else {
				v.DisplayableCount += min(u.Count, int(limit))
				u.OverLimit = u.Count > int(limit)
			}
			v.Users = append(v.Users, u)
		}

		views = append(views, v)
	}

	return views
}
