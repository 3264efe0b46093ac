package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/arifa/core/notification"
)

type notificationRepository struct {
	db *sqlx.DB
}

var _ notification.Repository = (*notificationRepository)(nil)

func NewNotificationRepository(db *sqlx.DB) notification.Repository {
	return &notificationRepository{db: db}
}

type notificationRow struct {
	ID         string      `db:"id"`
	UserID     string      `db:"user_id"`
	Category   string      `db:"category"`
	Priority   string      `db:"priority"`
	Title      string      `db:"title"`
	Body       string      `db:"body"`
	ActionURL  null.String `db:"action_url"`
	ActionText null.String `db:"action_text"`
	Read       bool        `db:"read"`
	CreatedAt  time.Time   `db:"created_at"`
	ExpiresAt  null.Time   `db:"expires_at"`
}

func newNotificationRow(n notification.Notification) notificationRow {
	return notificationRow{
		ID:         n.ID,
		UserID:     n.UserID,
		Category:   string(n.Category),
		Priority:   string(n.Priority),
		Title:      n.Title,
		Body:       n.Body,
		ActionURL:  null.NewString(n.ActionURL, n.ActionURL != ""),
		ActionText: null.NewString(n.ActionText, n.ActionText != ""),
		Read:       n.Read,
		CreatedAt:  n.CreatedAt,
		ExpiresAt:  null.NewTime(n.ExpiresAt, !n.ExpiresAt.IsZero()),
	}
}

func (row notificationRow) notification() notification.Notification {
	n := notification.Notification{
		ID:         row.ID,
		UserID:     row.UserID,
		Category:   notification.Category(row.Category),
		Priority:   notification.Priority(row.Priority),
		Title:      row.Title,
		Body:       row.Body,
		ActionURL:  row.ActionURL.String,
		ActionText: row.ActionText.String,
		Read:       row.Read,
		CreatedAt:  row.CreatedAt.UTC(),
	}
	if row.ExpiresAt.Valid {
		n.ExpiresAt = row.ExpiresAt.Time.UTC()
	}
	return n
}

func (repo *notificationRepository) CreateNotification(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	const query = `
		INSERT INTO notification (id, user_id, category, priority, title, body, action_url, action_text, read, created_at, expires_at)
		VALUES (:id, :user_id, :category, :priority, :title, :body, :action_url, :action_text, :read, :created_at, :expires_at)`
	if _, err := repo.db.NamedExecContext(ctx, query, newNotificationRow(n)); err != nil {
		return notification.Notification{}, errors.Wrap(err, "inserting notification")
	}
	return n, nil
}

func (repo *notificationRepository) QueryUserNotifications(ctx context.Context, userID string) ([]notification.Notification, error) {
	const query = `SELECT * FROM notification WHERE user_id = $1 ORDER BY created_at, id`
	var rows []notificationRow
	if err := repo.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, errors.Wrap(err, "selecting notifications")
	}
	notifs := make([]notification.Notification, 0, len(rows))
	for _, row := range rows {
		notifs = append(notifs, row.notification())
	}
	return notifs, nil
}

func (repo *notificationRepository) MarkNotificationsRead(ctx context.Context, userID string, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`UPDATE notification SET read = TRUE WHERE user_id = ? AND id IN (?)`, userID, ids)
	if err != nil {
		return errors.Wrap(err, "building query")
	}
	if _, err = repo.db.ExecContext(ctx, repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "marking notifications read")
	}
	return nil
}

func (repo *notificationRepository) DeleteNotificationsByID(ctx context.Context, userID string, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM notification WHERE user_id = ? AND id IN (?)`, userID, ids)
	if err != nil {
		return errors.Wrap(err, "building query")
	}
	if _, err = repo.db.ExecContext(ctx, repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "deleting notifications")
	}
	return nil
}

type settingsRow struct {
	UserID       string    `db:"user_id"`
	Assignments  bool      `db:"assignments"`
	Grades       bool      `db:"grades"`
	Deadlines    bool      `db:"deadlines"`
	Messages     bool      `db:"messages"`
	Achievements bool      `db:"achievements"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (repo *notificationRepository) GetSettings(ctx context.Context, userID string) (notification.Settings, error) {
	const query = `SELECT * FROM notification_settings WHERE user_id = $1`
	var row settingsRow
	if err := repo.db.GetContext(ctx, &row, query, userID); err != nil {
		if err == sql.ErrNoRows {
			return notification.Settings{}, notification.ErrNoSettings
		}
		return notification.Settings{}, errors.Wrap(err, "selecting settings")
	}
	return notification.Settings(row), nil
}

func (repo *notificationRepository) SaveSettings(ctx context.Context, s notification.Settings) (notification.Settings, error) {
	const query = `
		INSERT INTO notification_settings (user_id, assignments, grades, deadlines, messages, achievements, updated_at)
		VALUES (:user_id, :assignments, :grades, :deadlines, :messages, :achievements, :updated_at)
		ON CONFLICT (user_id) DO UPDATE
		SET assignments  = EXCLUDED.assignments,
		    grades       = EXCLUDED.grades,
		    deadlines    = EXCLUDED.deadlines,
		    messages     = EXCLUDED.messages,
		    achievements = EXCLUDED.achievements,
		    updated_at   = EXCLUDED.updated_at`
	if _, err := repo.db.NamedExecContext(ctx, query, settingsRow(s)); err != nil {
		return notification.Settings{}, errors.Wrap(err, "upserting settings")
	}
	return s, nil
}
