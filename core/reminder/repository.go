package reminder

import (
	"context"
	"strings"
	"time"
)

type (
	// Deadline is a reminder config as stored, with delivery details
	// denormalized from the LMS. Empty Offsets means DefaultOffsets applies.
	Deadline struct {
		Config
		RecipientName  string
		RecipientEmail string
		RecipientPhone string
	}

	Repository interface {
		// UpcomingDeadlines returns deadlines due within horizon of now,
		// plus those already overdue (their reminders may still be in the
		// tolerance window).
		UpcomingDeadlines(ctx context.Context, now time.Time, horizon time.Duration) ([]Deadline, error)
	}

	// FiredStore remembers which reminders have already fired so a poller
	// does not re-send on the next tick. State is explicit and external;
	// the engine itself stays stateless.
	FiredStore interface {
		Fired(ctx context.Context, key string) (bool, error)
		MarkFired(ctx context.Context, key string) error
	}
)

// FiredKey identifies one (user, deadline, offset) reminder in a FiredStore.
func FiredKey(userID, deadlineID string, offset Offset) string {
	return strings.Join([]string{userID, deadlineID, string(offset)}, ":")
}
