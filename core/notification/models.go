package notification

import (
	"time"

	"github.com/trezcool/arifa/core/reminder"
)

// Category is the closed set of notification kinds users can opt out of -
// except system, which is always delivered.
type Category string

const (
	CategoryAssignment  Category = "assignment"
	CategoryGrade       Category = "grade"
	CategoryDeadline    Category = "deadline"
	CategoryMessage     Category = "message"
	CategoryAchievement Category = "achievement"
	CategorySystem      Category = "system"
)

var AllCategories = []Category{
	CategoryAssignment, CategoryGrade, CategoryDeadline,
	CategoryMessage, CategoryAchievement, CategorySystem,
}

func (c Category) Valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Priority orders notifications for display. It is a property of the
// notification itself, unrelated to deadline urgency.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

var priorityRanks = map[Priority]int{
	PriorityLow:    1,
	PriorityMedium: 2,
	PriorityHigh:   3,
	PriorityUrgent: 4,
}

func (p Priority) Rank() int { return priorityRanks[p] }

func (p Priority) Valid() bool {
	_, ok := priorityRanks[p]
	return ok
}

// PriorityForUrgency maps a deadline's urgency onto the matching display
// priority for the reminder notification.
func PriorityForUrgency(u reminder.Urgency) Priority {
	switch u {
	case reminder.UrgencyUrgent:
		return PriorityUrgent
	case reminder.UrgencyHigh:
		return PriorityHigh
	case reminder.UrgencyMedium:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// Notification is a single user-facing alert.
type Notification struct {
	ID         string    `json:"id" db:"id"`
	UserID     string    `json:"user_id" db:"user_id"`
	Category   Category  `json:"category" db:"category"`
	Priority   Priority  `json:"priority" db:"priority"`
	Title      string    `json:"title" db:"title"`
	Body       string    `json:"body" db:"body"`
	ActionURL  string    `json:"action_url,omitempty" db:"action_url"`
	ActionText string    `json:"action_text,omitempty" db:"action_text"`
	Read       bool      `json:"read" db:"read"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`            // UTC
	ExpiresAt  time.Time `json:"expires_at,omitempty" db:"expires_at"` // UTC; zero = never
}

// Expired reports whether n has outlived its expiry at now. Expired
// notifications drop out of active views; whether they get deleted is the
// store owner's call.
func (n Notification) Expired(now time.Time) bool {
	return !n.ExpiresAt.IsZero() && n.ExpiresAt.Before(now)
}

// Settings holds a user's per-category delivery preferences. system has no
// flag: it cannot be disabled.
type Settings struct {
	UserID       string    `json:"user_id" db:"user_id"`
	Assignments  bool      `json:"assignments" db:"assignments"`
	Grades       bool      `json:"grades" db:"grades"`
	Deadlines    bool      `json:"deadlines" db:"deadlines"`
	Messages     bool      `json:"messages" db:"messages"`
	Achievements bool      `json:"achievements" db:"achievements"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"` // UTC
}

// DefaultSettings enables every category; a user who never touched their
// preferences gets everything.
func DefaultSettings(userID string) Settings {
	return Settings{
		UserID:       userID,
		Assignments:  true,
		Grades:       true,
		Deadlines:    true,
		Messages:     true,
		Achievements: true,
	}
}

// Recipient is who a notification goes to. Email/Phone may be empty; the
// notification is still recorded, just not pushed over that channel.
type Recipient struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}
