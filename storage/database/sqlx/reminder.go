package sqlxrepos

import (
	"context"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/arifa/core/reminder"
)

type DeadlineRepository struct {
	db *sqlx.DB
}

var _ reminder.Repository = (*DeadlineRepository)(nil)

func NewDeadlineRepository(db *sqlx.DB) *DeadlineRepository {
	return &DeadlineRepository{db: db}
}

type deadlineRow struct {
	DeadlineID     string      `db:"deadline_id"`
	UserID         string      `db:"user_id"`
	Title          string      `db:"title"`
	CourseName     null.String `db:"course_name"`
	DueDate        time.Time   `db:"due_date"`
	Offsets        null.String `db:"offsets"` // comma-separated
	RecipientName  null.String `db:"recipient_name"`
	RecipientEmail null.String `db:"recipient_email"`
	RecipientPhone null.String `db:"recipient_phone"`
}

func newDeadlineRow(dl reminder.Deadline) deadlineRow {
	offsets := joinOffsets(dl.Offsets)
	return deadlineRow{
		DeadlineID:     dl.DeadlineID,
		UserID:         dl.UserID,
		Title:          dl.Title,
		CourseName:     null.NewString(dl.CourseName, dl.CourseName != ""),
		DueDate:        dl.DueDate,
		Offsets:        null.NewString(offsets, offsets != ""),
		RecipientName:  null.NewString(dl.RecipientName, dl.RecipientName != ""),
		RecipientEmail: null.NewString(dl.RecipientEmail, dl.RecipientEmail != ""),
		RecipientPhone: null.NewString(dl.RecipientPhone, dl.RecipientPhone != ""),
	}
}

func (row deadlineRow) deadline() reminder.Deadline {
	return reminder.Deadline{
		Config: reminder.Config{
			DeadlineID: row.DeadlineID,
			UserID:     row.UserID,
			Title:      row.Title,
			CourseName: row.CourseName.String,
			DueDate:    row.DueDate.UTC(),
			Offsets:    splitOffsets(row.Offsets.String),
		},
		RecipientName:  row.RecipientName.String,
		RecipientEmail: row.RecipientEmail.String,
		RecipientPhone: row.RecipientPhone.String,
	}
}

func (repo *DeadlineRepository) UpcomingDeadlines(ctx context.Context, now time.Time, horizon time.Duration) ([]reminder.Deadline, error) {
	const query = `SELECT * FROM deadline WHERE due_date <= $1 ORDER BY due_date`
	var rows []deadlineRow
	if err := repo.db.SelectContext(ctx, &rows, query, now.Add(horizon)); err != nil {
		return nil, errors.Wrap(err, "selecting deadlines")
	}
	deadlines := make([]reminder.Deadline, 0, len(rows))
	for _, row := range rows {
		deadlines = append(deadlines, row.deadline())
	}
	return deadlines, nil
}

// CreateDeadline registers a deadline to remind about; fed by LMS sync jobs
// and the admin seeder.
func (repo *DeadlineRepository) CreateDeadline(ctx context.Context, dl reminder.Deadline) error {
	const query = `
		INSERT INTO deadline (deadline_id, user_id, title, course_name, due_date, offsets, recipient_name, recipient_email, recipient_phone)
		VALUES (:deadline_id, :user_id, :title, :course_name, :due_date, :offsets, :recipient_name, :recipient_email, :recipient_phone)
		ON CONFLICT (deadline_id, user_id) DO UPDATE
		SET title       = EXCLUDED.title,
		    course_name = EXCLUDED.course_name,
		    due_date    = EXCLUDED.due_date,
		    offsets     = EXCLUDED.offsets`
	if _, err := repo.db.NamedExecContext(ctx, query, newDeadlineRow(dl)); err != nil {
		return errors.Wrap(err, "upserting deadline")
	}
	return nil
}

// DeleteDeadline drops a deadline once it no longer needs reminders.
func (repo *DeadlineRepository) DeleteDeadline(ctx context.Context, deadlineID, userID string) error {
	const query = `DELETE FROM deadline WHERE deadline_id = $1 AND user_id = $2`
	if _, err := repo.db.ExecContext(ctx, query, deadlineID, userID); err != nil {
		return errors.Wrap(err, "deleting deadline")
	}
	return nil
}

func joinOffsets(offsets []reminder.Offset) string {
	strs := make([]string, 0, len(offsets))
	for _, off := range offsets {
		strs = append(strs, string(off))
	}
	return strings.Join(strs, ",")
}

func splitOffsets(s string) []reminder.Offset {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	offsets := make([]reminder.Offset, 0, len(parts))
	for _, p := range parts {
		offsets = append(offsets, reminder.Offset(strings.TrimSpace(p)))
	}
	return offsets
}
