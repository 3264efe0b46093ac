package notification

// SettingsInput is a partial update of a user's preferences; nil fields keep
// their current value.
type SettingsInput struct {
	Assignments  *bool `json:"assignments"`
	Grades       *bool `json:"grades"`
	Deadlines    *bool `json:"deadlines"`
	Messages     *bool `json:"messages"`
	Achievements *bool `json:"achievements"`
}

// Apply patches orig with the set fields and returns the result.
func (si SettingsInput) Apply(orig Settings) Settings {
	if si.Assignments != nil {
		orig.Assignments = *si.Assignments
	}
	if si.Grades != nil {
		orig.Grades = *si.Grades
	}
	if si.Deadlines != nil {
		orig.Deadlines = *si.Deadlines
	}
	if si.Messages != nil {
		orig.Messages = *si.Messages
	}
	if si.Achievements != nil {
		orig.Achievements = *si.Achievements
	}
	return orig
}
