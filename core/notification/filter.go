package notification

// Enabled reports whether s allows delivery of category c. system is always
// allowed; a category outside the enumeration is not - unrecognized input
// fails closed, never open.
func (s Settings) Enabled(c Category) bool {
	switch c {
	case CategoryAssignment:
		return s.Assignments
	case CategoryGrade:
		return s.Grades
	case CategoryDeadline:
		return s.Deadlines
	case CategoryMessage:
		return s.Messages
	case CategoryAchievement:
		return s.Achievements
	case CategorySystem:
		return true
	default:
		return false
	}
}

// Filter keeps the notifications whose category s enables, order preserved.
// This layer applies category preferences only; suppressing by priority
// (e.g. always letting urgent through a muted category) is left to callers.
func Filter(notifs []Notification, s Settings) []Notification {
	out := make([]Notification, 0, len(notifs))
	for _, n := range notifs {
		if s.Enabled(n.Category) {
			out = append(out, n)
		}
	}
	return out
}
