package notification

import (
	"sort"
	"time"
)

// Lifecycle operations are pure: they return new collections and never
// mutate their input, so callers sharing a slice across goroutines get
// thread-safety for free.

// MarkRead returns a copy of notifs with the identified notification marked
// read. Marking an already-read notification is a no-op; the read flag is
// never unset.
func MarkRead(notifs []Notification, id string) []Notification {
	out := make([]Notification, len(notifs))
	copy(out, notifs)
	for i := range out {
		if out[i].ID == id {
			out[i].Read = true
		}
	}
	return out
}

// MarkAllRead returns a copy of notifs with every notification marked read.
func MarkAllRead(notifs []Notification) []Notification {
	out := make([]Notification, len(notifs))
	copy(out, notifs)
	for i := range out {
		out[i].Read = true
	}
	return out
}

// Dismiss removes the identified notifications, preserving the order of the
// rest. Unknown IDs are ignored, so dismissing twice equals dismissing once.
// Dismissal is permanent for the working set: nothing revives a dismissed
// record in place.
func Dismiss(notifs []Notification, ids ...string) []Notification {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	out := make([]Notification, 0, len(notifs))
	for _, n := range notifs {
		if _, ok := drop[n.ID]; !ok {
			out = append(out, n)
		}
	}
	return out
}

// UnreadCount counts notifications not yet read.
func UnreadCount(notifs []Notification) int {
	var count int
	for _, n := range notifs {
		if !n.Read {
			count++
		}
	}
	return count
}

// ByCategory keeps notifications of the given category, order preserved.
func ByCategory(notifs []Notification, c Category) []Notification {
	out := make([]Notification, 0, len(notifs))
	for _, n := range notifs {
		if n.Category == c {
			out = append(out, n)
		}
	}
	return out
}

// ByPriority keeps notifications of the given priority, order preserved.
func ByPriority(notifs []Notification, p Priority) []Notification {
	out := make([]Notification, 0, len(notifs))
	for _, n := range notifs {
		if n.Priority == p {
			out = append(out, n)
		}
	}
	return out
}

// Recent returns the max most recently created notifications, newest first.
// The sort is stable: equal timestamps keep their original order. A negative
// max means no limit.
func Recent(notifs []Notification, max int) []Notification {
	out := make([]Notification, len(notifs))
	copy(out, notifs)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if max >= 0 && max < len(out) {
		out = out[:max]
	}
	return out
}

// Active drops notifications expired at now, independent of their read flag.
func Active(notifs []Notification, now time.Time) []Notification {
	out := make([]Notification, 0, len(notifs))
	for _, n := range notifs {
		if !n.Expired(now) {
			out = append(out, n)
		}
	}
	return out
}
