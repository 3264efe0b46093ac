package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/trezcool/arifa/core/notification"
)

func CreateNotification(
	t *testing.T,
	repo notification.Repository,
	userID string,
	category notification.Category,
	priority notification.Priority,
	title string,
	createdAt ...time.Time,
) notification.Notification {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	n := notification.Notification{
		ID:        userID + "-" + title,
		UserID:    userID,
		Category:  category,
		Priority:  priority,
		Title:     title,
		Body:      "body of " + title,
		CreatedAt: tstamp,
	}
	n, err := repo.CreateNotification(context.Background(), n)
	if err != nil {
		t.Fatalf("createNotification() failed: %v", err)
	}
	return n
}

// Diff renders a unified diff of two multi-line strings for readable test
// failures.
func Diff(want, got string) string {
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	return diff
}
