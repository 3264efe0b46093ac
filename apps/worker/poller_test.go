package main

import (
	"context"
	"testing"
	"time"

	"github.com/trezcool/arifa/core"
	"github.com/trezcool/arifa/core/notification"
	"github.com/trezcool/arifa/core/reminder"
	emailsvc "github.com/trezcool/arifa/services/email"
	smssvc "github.com/trezcool/arifa/services/sms"
	inmemdb "github.com/trezcool/arifa/storage/database/inmem"
)

type testLogger struct{ t *testing.T }

var _ core.Logger = (*testLogger)(nil)

func (l testLogger) Enable(bool)                           {}
func (l testLogger) Debug(msg string, args ...interface{}) { l.t.Logf("DEBUG: %s %v", msg, args) }
func (l testLogger) Info(msg string, args ...interface{})  { l.t.Logf("INFO: %s %v", msg, args) }
func (l testLogger) Warn(msg string, args ...interface{})  { l.t.Logf("WARN: %s %v", msg, args) }
func (l testLogger) Error(msg string, args ...interface{}) { l.t.Logf("ERROR: %s %v", msg, args) }
func (l testLogger) Fatal(msg string, args ...interface{}) { l.t.Fatalf("FATAL: %s %v", msg, args) }

type pollerFixture struct {
	poller    *Poller
	db        *inmemdb.DB
	deadlines *inmemdb.DeadlineRepository
	notifRepo notification.Repository
}

func setupPoller(t *testing.T) *pollerFixture {
	t.Cleanup(emailsvc.ClearSentMessages)
	t.Cleanup(smssvc.ClearSentMessages)

	db, _ := inmemdb.Open()
	deadlines := inmemdb.NewDeadlineRepository(db)
	notifRepo := inmemdb.NewNotificationRepository(db)
	notifSvc := notification.NewService(notifRepo, emailsvc.NewConsoleServiceMock(), smssvc.NewConsoleServiceMock(), testLogger{t})

	poller := NewPoller(deadlines, inmemdb.NewFiredStore(db), notifSvc, testLogger{t}, PollerOptions{
		Interval:  time.Minute,
		Tolerance: reminder.DefaultTolerance,
		Horizon:   8 * 24 * time.Hour,
	})
	return &pollerFixture{poller: poller, db: db, deadlines: deadlines, notifRepo: notifRepo}
}

func deadline(userID, deadlineID string, due time.Time, offsets ...reminder.Offset) reminder.Deadline {
	return reminder.Deadline{
		Config: reminder.Config{
			DeadlineID: deadlineID,
			UserID:     userID,
			Title:      "Final Essay",
			CourseName: "CS401",
			DueDate:    due,
			Offsets:    offsets,
		},
		RecipientName:  "Test User",
		RecipientEmail: userID + "@test.cd",
	}
}

func TestPollerTick_firesDueReminderOnce(t *testing.T) {
	fix := setupPoller(t)
	ctx := context.Background()
	now := time.Now().UTC()

	// trigger was 3 minutes ago, inside the tolerance window
	fix.deadlines.AddDeadline(deadline("usr1", "dl1", now.Add(57*time.Minute), reminder.Offset1Hour))

	if err := fix.poller.tick(ctx, now); err != nil {
		t.Fatalf("tick() failed: %v", err)
	}

	notifs, _ := fix.notifRepo.QueryUserNotifications(ctx, "usr1")
	if len(notifs) != 1 {
		t.Fatalf("notifications = %d, want 1", len(notifs))
	}
	n := notifs[0]
	if n.Category != notification.CategoryDeadline {
		t.Errorf("Category = %v, want deadline", n.Category)
	}
	if n.Priority != notification.PriorityUrgent {
		t.Errorf("Priority = %v, want urgent", n.Priority)
	}
	if n.Title != "⏰ Urgent Deadline" {
		t.Errorf("Title = %q", n.Title)
	}
	if len(emailsvc.SentMessages) != 1 {
		t.Errorf("sent emails = %d, want 1", len(emailsvc.SentMessages))
	}

	// second tick must not re-fire
	if err := fix.poller.tick(ctx, now.Add(time.Minute)); err != nil {
		t.Fatalf("tick() failed: %v", err)
	}
	notifs, _ = fix.notifRepo.QueryUserNotifications(ctx, "usr1")
	if len(notifs) != 1 {
		t.Errorf("notifications after second tick = %d, want 1", len(notifs))
	}
}

func TestPollerTick_skipsNotDueAndTooLate(t *testing.T) {
	fix := setupPoller(t)
	ctx := context.Background()
	now := time.Now().UTC()

	// trigger an hour in the future
	fix.deadlines.AddDeadline(deadline("usr1", "early", now.Add(2*time.Hour), reminder.Offset1Hour))
	// trigger 30 minutes ago, past the tolerance window
	fix.deadlines.AddDeadline(deadline("usr1", "late", now.Add(30*time.Minute), reminder.Offset1Hour))

	if err := fix.poller.tick(ctx, now); err != nil {
		t.Fatalf("tick() failed: %v", err)
	}
	notifs, _ := fix.notifRepo.QueryUserNotifications(ctx, "usr1")
	if len(notifs) != 0 {
		t.Errorf("notifications = %d, want 0", len(notifs))
	}
}

func TestPollerTick_defaultOffsets(t *testing.T) {
	fix := setupPoller(t)
	ctx := context.Background()
	now := time.Now().UTC()

	// no offsets stored: defaults apply (6H, 3H, 1H for a <24h deadline);
	// only the 3_HOURS trigger (2 minutes ago) is in the window
	fix.deadlines.AddDeadline(deadline("usr1", "dl1", now.Add(2*time.Hour+58*time.Minute)))

	if err := fix.poller.tick(ctx, now); err != nil {
		t.Fatalf("tick() failed: %v", err)
	}
	notifs, _ := fix.notifRepo.QueryUserNotifications(ctx, "usr1")
	if len(notifs) != 1 {
		t.Fatalf("notifications = %d, want 1", len(notifs))
	}
}

func TestPollerTick_optOutConsumesReminder(t *testing.T) {
	fix := setupPoller(t)
	ctx := context.Background()
	now := time.Now().UTC()

	settings := notification.DefaultSettings("usr1")
	settings.Deadlines = false
	if _, err := fix.notifRepo.SaveSettings(ctx, settings); err != nil {
		t.Fatalf("SaveSettings() failed: %v", err)
	}
	fix.deadlines.AddDeadline(deadline("usr1", "dl1", now.Add(57*time.Minute), reminder.Offset1Hour))

	if err := fix.poller.tick(ctx, now); err != nil {
		t.Fatalf("tick() failed: %v", err)
	}
	notifs, _ := fix.notifRepo.QueryUserNotifications(ctx, "usr1")
	if len(notifs) != 0 {
		t.Fatalf("notifications = %d, want 0", len(notifs))
	}

	// the reminder is consumed: re-enabling the category must not re-fire it
	if _, err := fix.notifRepo.SaveSettings(ctx, notification.DefaultSettings("usr1")); err != nil {
		t.Fatalf("SaveSettings() failed: %v", err)
	}
	if err := fix.poller.tick(ctx, now.Add(time.Minute)); err != nil {
		t.Fatalf("tick() failed: %v", err)
	}
	notifs, _ = fix.notifRepo.QueryUserNotifications(ctx, "usr1")
	if len(notifs) != 0 {
		t.Errorf("notifications after re-enable = %d, want 0", len(notifs))
	}
}

func TestPollerTick_expiryStamped(t *testing.T) {
	fix := setupPoller(t)
	fix.poller.opts.Expiry = 24 * time.Hour
	ctx := context.Background()
	now := time.Now().UTC()

	fix.deadlines.AddDeadline(deadline("usr1", "dl1", now.Add(57*time.Minute), reminder.Offset1Hour))

	if err := fix.poller.tick(ctx, now); err != nil {
		t.Fatalf("tick() failed: %v", err)
	}
	notifs, _ := fix.notifRepo.QueryUserNotifications(ctx, "usr1")
	if len(notifs) != 1 {
		t.Fatalf("notifications = %d, want 1", len(notifs))
	}
	if want := now.Add(24 * time.Hour); !notifs[0].ExpiresAt.Equal(want) {
		t.Errorf("ExpiresAt = %v, want %v", notifs[0].ExpiresAt, want)
	}
}
