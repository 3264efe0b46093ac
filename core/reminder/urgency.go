package reminder

import (
	"fmt"
	"time"
)

// Urgency classifies how close a deadline is. It drives message wording and
// is distinct from a notification's priority.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
	UrgencyUrgent Urgency = "urgent"
)

var urgencyRanks = map[Urgency]int{
	UrgencyLow:    1,
	UrgencyMedium: 2,
	UrgencyHigh:   3,
	UrgencyUrgent: 4,
}

func (u Urgency) Rank() int { return urgencyRanks[u] }

// Classify buckets the time until dueDate. Boundaries are inclusive on the
// more urgent side: exactly 24h out is urgent, exactly 48h is high, exactly
// 7 days is medium. Overdue deadlines are urgent.
func Classify(dueDate, now time.Time) Urgency {
	until := dueDate.Sub(now)
	switch {
	case until <= 24*time.Hour:
		return UrgencyUrgent
	case until <= 48*time.Hour:
		return UrgencyHigh
	case until <= 7*24*time.Hour:
		return UrgencyMedium
	default:
		return UrgencyLow
	}
}

// TimeRemaining renders the time until dueDate in its largest whole unit:
// "Overdue", "N day(s)", "N hour(s)" or "N minute(s)".
func TimeRemaining(dueDate, now time.Time) string {
	until := dueDate.Sub(now)
	if until <= 0 {
		return "Overdue"
	}
	if days := int(until / (24 * time.Hour)); days >= 1 {
		return pluralize(days, "day")
	}
	if hours := int(until / time.Hour); hours >= 1 {
		return pluralize(hours, "hour")
	}
	return pluralize(int(until/time.Minute), "minute")
}

func pluralize(count int, unit string) string {
	if count == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", count, unit)
}
