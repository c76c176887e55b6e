package notification

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository is an in-memory notification store for tests
type MemoryRepository struct {
	sync.RWMutex
	notifications map[string]*Notification
}

// NewMemoryRepository creates a new MemoryRepository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{notifications: make(map[string]*Notification)}
}

// CreateNotification adds a notification to the store
func (r *MemoryRepository) CreateNotification(n *Notification) (*Notification, error) {
	r.Lock()
	defer r.Unlock()

	n.ID = uuid.NewString()
	n.CreatedAt = time.Now()
	copied := *n
	r.notifications[n.ID] = &copied
	return n, nil
}

// ListByRecipient returns a user's notifications, newest first
func (r *MemoryRepository) ListByRecipient(recipientID int64) ([]*Notification, error) {
	r.RLock()
	defer r.RUnlock()

	var notifications []*Notification
	for _, n := range r.notifications {
		if n.RecipientID == recipientID {
			copied := *n
			notifications = append(notifications, &copied)
		}
	}

	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
	return notifications, nil
}

// MarkRead flags a single notification as read
func (r *MemoryRepository) MarkRead(id string, recipientID int64) error {
	r.Lock()
	defer r.Unlock()

	n, exists := r.notifications[id]
	if !exists || n.RecipientID != recipientID {
		return ErrNotificationNotFound
	}
	n.Read = true
	return nil
}

// MarkAllRead flags every notification for a user as read
func (r *MemoryRepository) MarkAllRead(recipientID int64) error {
	r.Lock()
	defer r.Unlock()

	for _, n := range r.notifications {
		if n.RecipientID == recipientID {
			n.Read = true
		}
	}
	return nil
}

// CountUnread returns the number of unread notifications for a user
func (r *MemoryRepository) CountUnread(recipientID int64) (int64, error) {
	r.RLock()
	defer r.RUnlock()

	var count int64
	for _, n := range r.notifications {
		if n.RecipientID == recipientID && !n.Read {
			count++
		}
	}
	return count, nil
}
