package notification

import (
	"errors"
	"time"
)

// Type tags a notification for client-side rendering.
type Type string

const (
	TypeInfo    Type = "info"
	TypeEvent   Type = "event"
	TypeSystem  Type = "system"
	TypeWarning Type = "warning"
)

// ValidType reports whether t is a known notification type.
func ValidType(t Type) bool {
	switch t {
	case TypeInfo, TypeEvent, TypeSystem, TypeWarning:
		return true
	}
	return false
}

// Notification is a message delivered to a single user. IDs are opaque
// uuid strings; recipients are user ids.
type Notification struct {
	ID          string    `json:"id"`
	RecipientID int64     `json:"recipient_id"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	Type        Type      `json:"type"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"created_at"`
}

// Repository defines the interface for notification data access
type Repository interface {
	CreateNotification(n *Notification) (*Notification, error)
	ListByRecipient(recipientID int64) ([]*Notification, error)
	MarkRead(id string, recipientID int64) error
	MarkAllRead(recipientID int64) error
	CountUnread(recipientID int64) (int64, error)
}

// Errors
var (
	ErrNotificationNotFound = errors.New("notification not found")
)
