package notification

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/trezcool/arifa/core/reminder"
)

// DefaultPreviewLength is how many characters of a message survive into its
// notification body before the hard cut.
const DefaultPreviewLength = 100

// Content is the composed, user-facing part of a notification. REST handlers,
// the email renderer and the SMS renderer all depend on this shape.
type Content struct {
	Title      string `json:"title"`
	Body       string `json:"body"`
	ActionURL  string `json:"action_url,omitempty"`
	ActionText string `json:"action_text,omitempty"`
}

type (
	GradeEvent struct {
		AssignmentID    string  `json:"assignment_id" validate:"required"`
		AssignmentTitle string  `json:"assignment_title" validate:"required"`
		Score           float64 `json:"score"`
		MaxScore        float64 `json:"max_score" validate:"required,gt=0"`
	}

	AssignmentEvent struct {
		AssignmentID string    `json:"assignment_id" validate:"required"`
		Title        string    `json:"title" validate:"required"`
		CourseName   string    `json:"course_name" validate:"required"`
		DueDate      time.Time `json:"due_date" validate:"required"`
	}

	DeadlineEvent struct {
		DeadlineID string    `json:"deadline_id" validate:"required"`
		Title      string    `json:"title" validate:"required"`
		CourseName string    `json:"course_name,omitempty"`
		DueDate    time.Time `json:"due_date" validate:"required"`
	}

	MessageEvent struct {
		ThreadID   string `json:"thread_id" validate:"required"`
		SenderName string `json:"sender_name" validate:"required"`
		Body       string `json:"body"`
	}

	AchievementEvent struct {
		Name        string `json:"name" validate:"required"`
		Description string `json:"description" validate:"required"`
		Points      int    `json:"points"`
	}
)

// ComposeGrade builds the notification for a posted grade. The percentage is
// rounded to the nearest integer.
func ComposeGrade(e GradeEvent) Content {
	pct := int(math.Round(e.Score / e.MaxScore * 100))
	return Content{
		Title:      fmt.Sprintf("Grade Posted: %s", e.AssignmentTitle),
		Body:       fmt.Sprintf("You scored %s/%s (%d%%)", formatScore(e.Score), formatScore(e.MaxScore), pct),
		ActionURL:  "/assignments/" + e.AssignmentID + "/feedback",
		ActionText: "View Feedback",
	}
}

// ComposeAssignment builds the notification for a newly posted assignment.
func ComposeAssignment(e AssignmentEvent) Content {
	return Content{
		Title:      fmt.Sprintf("New Assignment: %s", e.Title),
		Body:       fmt.Sprintf("%s has a new assignment due %s", e.CourseName, e.DueDate.Format("Jan 2, 2006")),
		ActionURL:  "/assignments/" + e.AssignmentID,
		ActionText: "View Assignment",
	}
}

// ComposeDeadline builds a reminder for an approaching (or missed) deadline.
// Wording follows the urgency classification at now.
func ComposeDeadline(e DeadlineEvent, now time.Time) Content {
	urg := reminder.Classify(e.DueDate, now)
	remaining := reminder.TimeRemaining(e.DueDate, now)

	var body string
	switch {
	case urg == reminder.UrgencyUrgent && !e.DueDate.After(now):
		body = fmt.Sprintf("%s is overdue! Please submit as soon as possible", e.Title)
	case urg == reminder.UrgencyUrgent:
		body = fmt.Sprintf("%s is due in %s! Don't forget to submit", e.Title, remaining)
	case urg == reminder.UrgencyHigh:
		body = fmt.Sprintf("Reminder: %s is due in %s", e.Title, remaining)
	default:
		body = fmt.Sprintf("Upcoming: %s is due in %s", e.Title, remaining)
	}
	if e.CourseName != "" {
		body += " (" + e.CourseName + ")"
	}

	title := "📅 Deadline Reminder"
	if urg == reminder.UrgencyUrgent {
		title = "⏰ Urgent Deadline"
	}
	return Content{
		Title:      title,
		Body:       body,
		ActionURL:  "/assignments/" + e.DeadlineID,
		ActionText: "View Assignment",
	}
}

// ComposeMessage builds the notification for a received message; the body is
// a hard-cut preview.
func ComposeMessage(e MessageEvent) Content {
	return Content{
		Title:      fmt.Sprintf("New message from %s", e.SenderName),
		Body:       Preview(e.Body, DefaultPreviewLength),
		ActionURL:  "/messages/" + e.ThreadID,
		ActionText: "Read Message",
	}
}

// ComposeAchievement builds the notification for an earned achievement.
func ComposeAchievement(e AchievementEvent) Content {
	return Content{
		Title:      fmt.Sprintf("🏆 Achievement Unlocked: %s", e.Name),
		Body:       fmt.Sprintf("%s (%+d points)", e.Description, e.Points),
		ActionURL:  "/achievements",
		ActionText: "View Achievements",
	}
}

// Preview returns body unchanged when it fits in max characters; otherwise
// the first max characters followed by a literal "...". The cut is by
// character count, not word boundary.
func Preview(body string, max int) string {
	if max <= 0 {
		max = DefaultPreviewLength
	}
	runes := []rune(body)
	if len(runes) <= max {
		return body
	}
	return string(runes[:max]) + "..."
}

func formatScore(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
