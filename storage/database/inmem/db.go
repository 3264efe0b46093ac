package inmemdb

import (
	"sync"

	"github.com/trezcool/arifa/core/notification"
	"github.com/trezcool/arifa/core/reminder"
)

// DB is an in-memory store for DEV and tests. Per-user notification slices
// keep insertion order so query results are deterministic.
type DB struct {
	mutex         sync.RWMutex
	notifications map[string][]notification.Notification // userID -> ordered
	settings      map[string]notification.Settings       // userID
	deadlines     []reminder.Deadline
	fired         map[string]struct{}
}

func Open() (*DB, error) {
	db := &DB{
		notifications: make(map[string][]notification.Notification),
		settings:      make(map[string]notification.Settings),
		fired:         make(map[string]struct{}),
	}
	return db, nil
}
