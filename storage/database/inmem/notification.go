package inmemdb

import (
	"context"

	"github.com/trezcool/arifa/core/notification"
)

type notificationRepository struct {
	db *DB
}

var _ notification.Repository = (*notificationRepository)(nil)

func NewNotificationRepository(db *DB) notification.Repository {
	return &notificationRepository{db: db}
}

func (repo *notificationRepository) CreateNotification(_ context.Context, n notification.Notification) (notification.Notification, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.notifications[n.UserID] = append(repo.db.notifications[n.UserID], n)
	return n, nil
}

func (repo *notificationRepository) QueryUserNotifications(_ context.Context, userID string) ([]notification.Notification, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	notifs := repo.db.notifications[userID]
	out := make([]notification.Notification, len(notifs))
	copy(out, notifs)
	return out, nil
}

func (repo *notificationRepository) MarkNotificationsRead(_ context.Context, userID string, ids ...string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.notifications[userID] = markRead(repo.db.notifications[userID], ids...)
	return nil
}

func (repo *notificationRepository) DeleteNotificationsByID(_ context.Context, userID string, ids ...string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.notifications[userID] = notification.Dismiss(repo.db.notifications[userID], ids...)
	return nil
}

func (repo *notificationRepository) GetSettings(_ context.Context, userID string) (notification.Settings, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if s, ok := repo.db.settings[userID]; ok {
		return s, nil
	}
	return notification.Settings{}, notification.ErrNoSettings
}

func (repo *notificationRepository) SaveSettings(_ context.Context, s notification.Settings) (notification.Settings, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.settings[s.UserID] = s
	return s, nil
}

func markRead(notifs []notification.Notification, ids ...string) []notification.Notification {
	out := notifs
	for _, id := range ids {
		out = notification.MarkRead(out, id)
	}
	return out
}
