package inmemdb

import (
	"context"
	"time"

	"github.com/trezcool/arifa/core/reminder"
)

type DeadlineRepository struct {
	db *DB
}

var _ reminder.Repository = (*DeadlineRepository)(nil)

func NewDeadlineRepository(db *DB) *DeadlineRepository {
	return &DeadlineRepository{db: db}
}

// AddDeadline registers a deadline; used by seeds and tests.
func (repo *DeadlineRepository) AddDeadline(dl reminder.Deadline) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.deadlines = append(repo.db.deadlines, dl)
}

func (repo *DeadlineRepository) UpcomingDeadlines(_ context.Context, now time.Time, horizon time.Duration) ([]reminder.Deadline, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	out := make([]reminder.Deadline, 0, len(repo.db.deadlines))
	for _, dl := range repo.db.deadlines {
		if !dl.DueDate.After(now.Add(horizon)) {
			out = append(out, dl)
		}
	}
	return out, nil
}

type firedStore struct {
	db *DB
}

var _ reminder.FiredStore = (*firedStore)(nil)

func NewFiredStore(db *DB) reminder.FiredStore {
	return &firedStore{db: db}
}

func (s *firedStore) Fired(_ context.Context, key string) (bool, error) {
	s.db.mutex.RLock()
	defer s.db.mutex.RUnlock()
	_, ok := s.db.fired[key]
	return ok, nil
}

func (s *firedStore) MarkFired(_ context.Context, key string) error {
	s.db.mutex.Lock()
	defer s.db.mutex.Unlock()
	s.db.fired[key] = struct{}{}
	return nil
}
