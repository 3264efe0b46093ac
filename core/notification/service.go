package notification

import (
	"context"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/arifa/core"
)

var (
	// errors
	ErrNotFound   = errors.New("notification not found")
	ErrNoSettings = errors.New("notification settings not found")
	// ErrOptedOut is returned when the recipient disabled the category; not
	// an anomaly, callers just skip delivery.
	ErrOptedOut = errors.New("recipient has disabled this notification category")
)

type (
	Repository interface {
		CreateNotification(ctx context.Context, n Notification) (Notification, error)
		QueryUserNotifications(ctx context.Context, userID string) ([]Notification, error)
		MarkNotificationsRead(ctx context.Context, userID string, ids ...string) error
		DeleteNotificationsByID(ctx context.Context, userID string, ids ...string) error
		GetSettings(ctx context.Context, userID string) (Settings, error)
		SaveSettings(ctx context.Context, s Settings) (Settings, error)
	}

	// NewNotification is what upstream callers hand in; the service fills in
	// identity and timestamps.
	NewNotification struct {
		Category  Category
		Priority  Priority
		Content   Content
		ExpiresAt time.Time // zero = never
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
		smsSvc  core.SMSService
		logger  core.Logger
	}
)

func NewService(repo Repository, mailSvc core.EmailService, smsSvc core.SMSService, logger core.Logger) *Service {
	return &Service{
		repo:    repo,
		mailSvc: mailSvc,
		smsSvc:  smsSvc,
		logger:  logger,
	}
}

// Notify records a notification for rcpt and pushes it over the channels the
// recipient has addresses for. It returns ErrOptedOut without recording
// anything when the recipient disabled the category.
func (svc *Service) Notify(ctx context.Context, rcpt Recipient, nn NewNotification) (Notification, error) {
	settings, err := svc.Settings(ctx, rcpt.ID)
	if err != nil {
		return Notification{}, errors.Wrap(err, "loading settings")
	}
	if !settings.Enabled(nn.Category) {
		return Notification{}, ErrOptedOut
	}

	priority := nn.Priority
	if !priority.Valid() {
		priority = PriorityMedium
	}
	n := Notification{
		ID:         uuid.New().String(),
		UserID:     rcpt.ID,
		Category:   nn.Category,
		Priority:   priority,
		Title:      nn.Content.Title,
		Body:       nn.Content.Body,
		ActionURL:  nn.Content.ActionURL,
		ActionText: nn.Content.ActionText,
		CreatedAt:  time.Now().UTC(),
		ExpiresAt:  nn.ExpiresAt,
	}
	n, err = svc.repo.CreateNotification(ctx, n)
	if err != nil {
		return Notification{}, errors.Wrap(err, "creating notification")
	}

	svc.deliver(rcpt, n)
	return n, nil
}

// deliver pushes n over email and SMS. Channel failures are the channels'
// to log and the callers' to retry; the notification is already recorded.
func (svc *Service) deliver(rcpt Recipient, n Notification) {
	if rcpt.Email != "" {
		body := n.Body
		if n.ActionURL != "" {
			body += "\n\n" + n.ActionText + ": " + core.Conf.FrontendBaseURL + n.ActionURL
		}
		svc.mailSvc.SendMessages(&core.EmailMessage{
			To:      []mail.Address{{Name: rcpt.Name, Address: rcpt.Email}},
			Subject: n.Title,
			Body:    body,
		})
	}
	if rcpt.Phone != "" {
		svc.smsSvc.SendMessages(&core.SMSMessage{
			To:   rcpt.Phone,
			Body: n.Title + ": " + n.Body,
		})
	}
}

// Query returns rcpt's active notifications (expired ones dropped).
func (svc *Service) Query(ctx context.Context, userID string, now time.Time) ([]Notification, error) {
	notifs, err := svc.repo.QueryUserNotifications(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "querying notifications")
	}
	return Active(notifs, now), nil
}

func (svc *Service) Unread(ctx context.Context, userID string, now time.Time) (int, error) {
	notifs, err := svc.Query(ctx, userID, now)
	if err != nil {
		return 0, err
	}
	return UnreadCount(notifs), nil
}

func (svc *Service) MarkRead(ctx context.Context, userID string, ids ...string) error {
	return svc.repo.MarkNotificationsRead(ctx, userID, ids...)
}

func (svc *Service) MarkAllRead(ctx context.Context, userID string) error {
	notifs, err := svc.repo.QueryUserNotifications(ctx, userID)
	if err != nil {
		return errors.Wrap(err, "querying notifications")
	}
	ids := make([]string, 0, len(notifs))
	for _, n := range notifs {
		if !n.Read {
			ids = append(ids, n.ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	return svc.repo.MarkNotificationsRead(ctx, userID, ids...)
}

func (svc *Service) Dismiss(ctx context.Context, userID string, ids ...string) error {
	return svc.repo.DeleteNotificationsByID(ctx, userID, ids...)
}

// Settings returns the user's preferences, defaulting to everything enabled
// for users who never saved any.
func (svc *Service) Settings(ctx context.Context, userID string) (Settings, error) {
	s, err := svc.repo.GetSettings(ctx, userID)
	if err != nil {
		if errors.Cause(err) == ErrNoSettings {
			return DefaultSettings(userID), nil
		}
		return Settings{}, err
	}
	return s, nil
}

func (svc *Service) UpdateSettings(ctx context.Context, s Settings) (Settings, error) {
	s.UpdatedAt = time.Now().UTC()
	return svc.repo.SaveSettings(ctx, s)
}
