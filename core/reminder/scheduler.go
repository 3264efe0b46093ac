package reminder

import (
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/arifa/core"
)

// DefaultTolerance is the grace period after a trigger time during which a
// polling caller still considers the reminder due.
const DefaultTolerance = 5 * time.Minute

var (
	// validation errors
	errInvalidDueDate    = errors.New("a valid due date is required")
	errMissingDeadlineID = errors.New("a deadline is required")
	errMissingUserID     = errors.New("a recipient is required")
	errMissingTitle      = errors.New("a title is required")
	errInvalidOffset     = errors.New("unknown reminder offset")
	errInvalidConfig     = errors.New("invalid reminder config")
)

type (
	// Config describes one deadline a user gets reminded about. The deadline
	// entity itself lives in the LMS store; DeadlineID is a lookup key, not
	// ownership.
	Config struct {
		DeadlineID string    `json:"deadline_id" query:"deadline_id"`
		UserID     string    `json:"user_id" query:"user_id"`
		Title      string    `json:"title" query:"title"`
		CourseName string    `json:"course_name,omitempty" query:"course_name"`
		DueDate    time.Time `json:"due_date" query:"due_date"` // UTC
		Offsets    []Offset  `json:"offsets,omitempty" query:"offset"`
	}

	// Calculated is a reminder with its trigger instant resolved. It is
	// computed on demand and never persisted here.
	Calculated struct {
		DeadlineID     string        `json:"deadline_id"`
		DueDate        time.Time     `json:"due_date"`
		Offset         Offset        `json:"offset"`
		OffsetDuration time.Duration `json:"offset_duration"`
		TriggerAt      time.Time     `json:"trigger_at"`
	}
)

// Validate checks cfg as user input. It returns a core.ValidationError with
// field-level details and has no side effects.
func (cfg Config) Validate() error {
	var flds []core.FieldError
	if cfg.DueDate.IsZero() {
		flds = append(flds, core.FieldError{Field: "due_date", Error: errInvalidDueDate.Error()})
	}
	if core.CleanString(cfg.DeadlineID) == "" {
		flds = append(flds, core.FieldError{Field: "deadline_id", Error: errMissingDeadlineID.Error()})
	}
	if core.CleanString(cfg.UserID) == "" {
		flds = append(flds, core.FieldError{Field: "user_id", Error: errMissingUserID.Error()})
	}
	if core.CleanString(cfg.Title) == "" {
		flds = append(flds, core.FieldError{Field: "title", Error: errMissingTitle.Error()})
	}
	for _, off := range cfg.Offsets {
		if !off.Valid() {
			flds = append(flds, core.FieldError{Field: "offsets", Error: errInvalidOffset.Error() + ": " + string(off)})
			break
		}
	}
	if flds != nil {
		return core.NewValidationError(errInvalidConfig, flds...)
	}
	return nil
}

// Calculate resolves a single offset against cfg's due date.
func Calculate(cfg Config, offset Offset) Calculated {
	return Calculated{
		DeadlineID:     cfg.DeadlineID,
		DueDate:        cfg.DueDate,
		Offset:         offset,
		OffsetDuration: offset.Duration(),
		TriggerAt:      TriggerTime(cfg.DueDate, offset),
	}
}

// ScheduleMultiple resolves the requested offsets and keeps only reminders
// still schedulable at now (trigger time in the future). Output preserves the
// order of offsets; callers wanting time order sort explicitly.
func ScheduleMultiple(cfg Config, offsets []Offset, now time.Time) []Calculated {
	out := make([]Calculated, 0, len(offsets))
	for _, off := range offsets {
		cr := Calculate(cfg, off)
		if cr.TriggerAt.After(now) {
			out = append(out, cr)
		}
	}
	return out
}

// SortByTime returns a copy sorted ascending by trigger time. The sort is
// stable: reminders with equal trigger times keep their original order.
func SortByTime(reminders []Calculated) []Calculated {
	out := make([]Calculated, len(reminders))
	copy(out, reminders)
	sort.SliceStable(out, func(i, j int) bool { return out[i].TriggerAt.Before(out[j].TriggerAt) })
	return out
}

// IsDue reports whether a reminder that triggers at triggerAt should fire at
// now: at or past the trigger, and no more than tolerance past it. The engine
// holds no timers; a poller re-evaluates this on every tick.
func IsDue(triggerAt, now time.Time, tolerance time.Duration) bool {
	late := now.Sub(triggerAt)
	return late >= 0 && late <= tolerance
}

// DefaultOffsets picks a reminder plan from how far away the deadline is.
// The breakpoints and plans are product constants.
func DefaultOffsets(dueDate, now time.Time) []Offset {
	until := dueDate.Sub(now)
	switch {
	case until <= 24*time.Hour:
		return []Offset{Offset6Hours, Offset3Hours, Offset1Hour}
	case until <= 3*24*time.Hour:
		return []Offset{Offset2Days, Offset1Day, Offset6Hours}
	case until <= 7*24*time.Hour:
		return []Offset{Offset3Days, Offset2Days, Offset1Day}
	default:
		return []Offset{Offset1Week, Offset3Days, Offset1Day}
	}
}
