package notification

import "testing"

func TestSettingsEnabled(t *testing.T) {
	all := DefaultSettings("usr1")
	muted := Settings{UserID: "usr1"} // everything off

	tests := []struct {
		name     string
		settings Settings
		category Category
		want     bool
	}{
		{name: "default allows grades", settings: all, category: CategoryGrade, want: true},
		{name: "default allows messages", settings: all, category: CategoryMessage, want: true},
		{name: "muted blocks grades", settings: muted, category: CategoryGrade, want: false},
		{name: "muted blocks messages", settings: muted, category: CategoryMessage, want: false},
		{name: "system ignores mute", settings: muted, category: CategorySystem, want: true},
		{name: "unknown category fails closed", settings: all, category: Category("promo"), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.settings.Enabled(tt.category); got != tt.want {
				t.Errorf("Enabled(%s) = %v, want %v", tt.category, got, tt.want)
			}
		})
	}
}

func TestFilter(t *testing.T) {
	notifs := []Notification{
		{ID: "n1", Category: CategoryGrade},
		{ID: "n2", Category: CategoryMessage},
		{ID: "n3", Category: CategorySystem},
		{ID: "n4", Category: CategoryMessage},
	}
	settings := DefaultSettings("usr1")
	settings.Messages = false

	got := Filter(notifs, settings)
	if !equalIDs(ids(got), "n1", "n3") {
		t.Errorf("Filter() ids = %v, want [n1 n3]", ids(got))
	}
}

func TestSettingsInputApply(t *testing.T) {
	bPtr := func(b bool) *bool { return &b }

	orig := DefaultSettings("usr1")
	got := SettingsInput{Messages: bPtr(false), Grades: bPtr(false)}.Apply(orig)

	if got.Messages || got.Grades {
		t.Error("Apply() did not disable the set fields")
	}
	if !(got.Assignments && got.Deadlines && got.Achievements) {
		t.Error("Apply() changed unset fields")
	}
	if got.UserID != "usr1" {
		t.Errorf("Apply() UserID = %q", got.UserID)
	}
}
