package main

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/arifa/core"
	"github.com/trezcool/arifa/core/notification"
	"github.com/trezcool/arifa/core/reminder"
)

type (
	PollerOptions struct {
		Interval  time.Duration
		Tolerance time.Duration
		Horizon   time.Duration
		// Expiry bounds how long a fired reminder stays in the notification
		// feed; 0 = never expires.
		Expiry time.Duration
	}

	// Poller re-evaluates the reminder plan of every upcoming deadline on each
	// tick and fires the ones due. It keeps no timers; missing a tick only
	// delays a reminder by at most one interval.
	Poller struct {
		deadlines reminder.Repository
		fired     reminder.FiredStore
		notifSvc  *notification.Service
		logger    core.Logger
		opts      PollerOptions
	}
)

func NewPoller(
	deadlines reminder.Repository,
	fired reminder.FiredStore,
	notifSvc *notification.Service,
	logger core.Logger,
	opts PollerOptions,
) *Poller {
	if opts.Interval <= 0 {
		opts.Interval = time.Minute
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = reminder.DefaultTolerance
	}
	return &Poller{
		deadlines: deadlines,
		fired:     fired,
		notifSvc:  notifSvc,
		logger:    logger,
		opts:      opts,
	}
}

func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.opts.Interval)
	defer ticker.Stop()

	p.logger.Info("reminder poller started")
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("reminder poller shutting down...")
			return nil
		case now := <-ticker.C:
			if err := p.tick(ctx, now.UTC()); err != nil {
				p.logger.Error("reminder tick failed", err)
			}
		}
	}
}

// tick processes one poll pass at now. It is deterministic given now; tests
// drive it directly without the ticker.
func (p *Poller) tick(ctx context.Context, now time.Time) error {
	deadlines, err := p.deadlines.UpcomingDeadlines(ctx, now, p.opts.Horizon)
	if err != nil {
		return errors.Wrap(err, "loading upcoming deadlines")
	}
	for _, dl := range deadlines {
		if err := p.process(ctx, dl, now); err != nil {
			p.logger.Error("processing deadline "+dl.DeadlineID, err, notification.Recipient{ID: dl.UserID})
		}
	}
	return nil
}

func (p *Poller) process(ctx context.Context, dl reminder.Deadline, now time.Time) error {
	offsets := dl.Offsets
	if len(offsets) == 0 {
		offsets = reminder.DefaultOffsets(dl.DueDate, now)
	}

	for _, off := range offsets {
		cr := reminder.Calculate(dl.Config, off)
		if !reminder.IsDue(cr.TriggerAt, now, p.opts.Tolerance) {
			continue
		}

		key := reminder.FiredKey(dl.UserID, dl.DeadlineID, off)
		if fired, err := p.fired.Fired(ctx, key); err != nil {
			return errors.Wrap(err, "checking fired state")
		} else if fired {
			continue
		}

		if err := p.fire(ctx, dl, now); err != nil {
			return err
		}
		if err := p.fired.MarkFired(ctx, key); err != nil {
			return errors.Wrap(err, "marking fired")
		}
	}
	return nil
}

func (p *Poller) fire(ctx context.Context, dl reminder.Deadline, now time.Time) error {
	content := notification.ComposeDeadline(notification.DeadlineEvent{
		DeadlineID: dl.DeadlineID,
		Title:      dl.Title,
		CourseName: dl.CourseName,
		DueDate:    dl.DueDate,
	}, now)

	var expiresAt time.Time
	if p.opts.Expiry > 0 {
		expiresAt = now.Add(p.opts.Expiry)
	}

	rcpt := notification.Recipient{
		ID:    dl.UserID,
		Name:  dl.RecipientName,
		Email: dl.RecipientEmail,
		Phone: dl.RecipientPhone,
	}
	_, err := p.notifSvc.Notify(ctx, rcpt, notification.NewNotification{
		Category:  notification.CategoryDeadline,
		Priority:  notification.PriorityForUrgency(reminder.Classify(dl.DueDate, now)),
		Content:   content,
		ExpiresAt: expiresAt,
	})
	if errors.Cause(err) == notification.ErrOptedOut {
		// opt-out still consumes the reminder; it must not re-fire if the
		// user re-enables the category later
		return nil
	}
	return errors.Wrap(err, "sending reminder")
}
