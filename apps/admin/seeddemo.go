package main

import (
	"context"
	"fmt"
	"time"

	"github.com/trezcool/arifa/core/notification"
	"github.com/trezcool/arifa/core/reminder"
)

// seedDemo loads a couple of deadlines and default settings for a demo user
// so a fresh install has something to poll.
func (cli *commandLine) seedDemo() error {
	ctx := context.Background()
	now := time.Now().UTC()

	const userID = "demo-user"
	deadlines := []reminder.Deadline{
		{
			Config: reminder.Config{
				DeadlineID: "demo-essay",
				UserID:     userID,
				Title:      "Essay on Distributed Systems",
				CourseName: "CS401",
				DueDate:    now.Add(18 * time.Hour),
			},
			RecipientName:  "Demo User",
			RecipientEmail: "demo@example.com",
		},
		{
			Config: reminder.Config{
				DeadlineID: "demo-quiz",
				UserID:     userID,
				Title:      "Weekly Quiz",
				CourseName: "CS401",
				DueDate:    now.Add(5 * 24 * time.Hour),
				Offsets:    []reminder.Offset{reminder.Offset2Days, reminder.Offset6Hours},
			},
			RecipientName:  "Demo User",
			RecipientEmail: "demo@example.com",
		},
	}
	for _, dl := range deadlines {
		if err := cli.deadlineRepo.CreateDeadline(ctx, dl); err != nil {
			return err
		}
	}

	if _, err := cli.notifRepo.SaveSettings(ctx, notification.DefaultSettings(userID)); err != nil {
		return err
	}

	fmt.Printf("seeded %d deadlines for %q\n", len(deadlines), userID)
	return nil
}
