package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/arifa/core/reminder"
)

type reminderApi struct{}

func registerReminderAPI(g *echo.Group, jwt echo.MiddlewareFunc) {
	api := reminderApi{}

	rg := g.Group("/reminders", jwt)
	rg.POST("/preview", api.preview)
}

// preview resolves a reminder plan for a deadline without persisting anything;
// the frontend shows it on the deadline detail page.
func (api *reminderApi) preview(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var cfg reminder.Config
	if err := ctx.Bind(&cfg); err != nil {
		return errors.Wrap(err, "binding to Config")
	}
	cfg.UserID = claims.Subject
	if err := cfg.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	offsets := cfg.Offsets
	if len(offsets) == 0 {
		offsets = reminder.DefaultOffsets(cfg.DueDate, now)
	}
	reminders := reminder.SortByTime(reminder.ScheduleMultiple(cfg, offsets, now))

	return ctx.JSON(http.StatusOK, ReminderPreviewResponse{
		DeadlineID:    cfg.DeadlineID,
		DueDate:       cfg.DueDate,
		Urgency:       reminder.Classify(cfg.DueDate, now),
		TimeRemaining: reminder.TimeRemaining(cfg.DueDate, now),
		Reminders:     reminders,
	})
}

type ReminderPreviewResponse struct {
	DeadlineID    string                `json:"deadline_id"`
	DueDate       time.Time             `json:"due_date"`
	Urgency       reminder.Urgency      `json:"urgency"`
	TimeRemaining string                `json:"time_remaining"`
	Reminders     []reminder.Calculated `json:"reminders"`
}
