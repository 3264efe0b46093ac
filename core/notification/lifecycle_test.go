package notification

import (
	"testing"
	"time"
)

func testNotifs(now time.Time) []Notification {
	return []Notification{
		{ID: "n1", Category: CategoryGrade, Priority: PriorityMedium, CreatedAt: now.Add(-3 * time.Hour)},
		{ID: "n2", Category: CategoryDeadline, Priority: PriorityUrgent, CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "n3", Category: CategoryMessage, Priority: PriorityMedium, Read: true, CreatedAt: now.Add(-time.Hour)},
		{ID: "n4", Category: CategoryDeadline, Priority: PriorityLow, CreatedAt: now},
	}
}

func ids(notifs []Notification) []string {
	out := make([]string, 0, len(notifs))
	for _, n := range notifs {
		out = append(out, n.ID)
	}
	return out
}

func equalIDs(a []string, b ...string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestMarkRead(t *testing.T) {
	now := time.Now().UTC()
	notifs := testNotifs(now)

	got := MarkRead(notifs, "n1")
	if !got[0].Read {
		t.Error("MarkRead() did not mark n1 read")
	}
	if notifs[0].Read {
		t.Error("MarkRead() mutated its input")
	}

	// idempotent; the flag never unsets
	got = MarkRead(got, "n1")
	if !got[0].Read {
		t.Error("MarkRead() unset the read flag on second call")
	}

	// unknown ID is a no-op
	got = MarkRead(notifs, "nope")
	if UnreadCount(got) != UnreadCount(notifs) {
		t.Error("MarkRead() with unknown ID changed read state")
	}
}

func TestMarkAllRead(t *testing.T) {
	now := time.Now().UTC()
	notifs := testNotifs(now)

	got := MarkAllRead(notifs)
	if n := UnreadCount(got); n != 0 {
		t.Errorf("UnreadCount() after MarkAllRead() = %d, want 0", n)
	}
	if UnreadCount(notifs) != 3 {
		t.Error("MarkAllRead() mutated its input")
	}
}

func TestDismiss(t *testing.T) {
	now := time.Now().UTC()
	notifs := testNotifs(now)

	got := Dismiss(notifs, "n2")
	if !equalIDs(ids(got), "n1", "n3", "n4") {
		t.Errorf("Dismiss() ids = %v", ids(got))
	}
	if len(notifs) != 4 {
		t.Error("Dismiss() mutated its input")
	}

	// dismissing twice equals dismissing once
	got = Dismiss(got, "n2")
	if !equalIDs(ids(got), "n1", "n3", "n4") {
		t.Errorf("Dismiss() twice ids = %v", ids(got))
	}

	got = Dismiss(notifs, "n1", "n4")
	if !equalIDs(ids(got), "n2", "n3") {
		t.Errorf("Dismiss() multiple ids = %v", ids(got))
	}
}

func TestUnreadCount(t *testing.T) {
	now := time.Now().UTC()
	if got := UnreadCount(testNotifs(now)); got != 3 {
		t.Errorf("UnreadCount() = %d, want 3", got)
	}
	if got := UnreadCount(nil); got != 0 {
		t.Errorf("UnreadCount(nil) = %d, want 0", got)
	}
}

func TestByCategoryAndPriority(t *testing.T) {
	now := time.Now().UTC()
	notifs := testNotifs(now)

	if got := ByCategory(notifs, CategoryDeadline); !equalIDs(ids(got), "n2", "n4") {
		t.Errorf("ByCategory() ids = %v", ids(got))
	}
	if got := ByCategory(notifs, CategorySystem); len(got) != 0 {
		t.Errorf("ByCategory(system) = %v, want empty", ids(got))
	}
	if got := ByPriority(notifs, PriorityMedium); !equalIDs(ids(got), "n1", "n3") {
		t.Errorf("ByPriority() ids = %v", ids(got))
	}
}

func TestRecent(t *testing.T) {
	now := time.Now().UTC()
	notifs := testNotifs(now)

	if got := Recent(notifs, -1); !equalIDs(ids(got), "n4", "n3", "n2", "n1") {
		t.Errorf("Recent(-1) ids = %v", ids(got))
	}
	if got := Recent(notifs, 2); !equalIDs(ids(got), "n4", "n3") {
		t.Errorf("Recent(2) ids = %v", ids(got))
	}
	if got := Recent(notifs, 0); len(got) != 0 {
		t.Errorf("Recent(0) = %v, want empty", ids(got))
	}
	if notifs[0].ID != "n1" {
		t.Error("Recent() mutated its input")
	}
}

func TestRecent_stableOnTies(t *testing.T) {
	now := time.Now().UTC()
	notifs := []Notification{
		{ID: "a", CreatedAt: now},
		{ID: "b", CreatedAt: now},
		{ID: "c", CreatedAt: now.Add(-time.Hour)},
	}
	if got := Recent(notifs, -1); !equalIDs(ids(got), "a", "b", "c") {
		t.Errorf("Recent() tie order = %v, want [a b c]", ids(got))
	}
}

func TestActive(t *testing.T) {
	now := time.Now().UTC()
	notifs := []Notification{
		{ID: "keep-never-expires"},
		{ID: "keep-future", ExpiresAt: now.Add(time.Hour)},
		{ID: "drop-past", ExpiresAt: now.Add(-time.Minute)},
		{ID: "keep-read-expired-not", Read: true, ExpiresAt: now.Add(time.Hour)},
	}
	got := Active(notifs, now)
	if !equalIDs(ids(got), "keep-never-expires", "keep-future", "keep-read-expired-not") {
		t.Errorf("Active() ids = %v", ids(got))
	}
}

func TestNotificationExpired(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name  string
		notif Notification
		want  bool
	}{
		{name: "zero never expires", notif: Notification{}, want: false},
		{name: "future", notif: Notification{ExpiresAt: now.Add(time.Second)}, want: false},
		{name: "exactly now", notif: Notification{ExpiresAt: now}, want: false},
		{name: "past", notif: Notification{ExpiresAt: now.Add(-time.Second)}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.notif.Expired(now); got != tt.want {
				t.Errorf("Expired() = %v, want %v", got, tt.want)
			}
		})
	}
}
