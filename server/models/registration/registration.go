package registration

import (
	"errors"
	"time"
)

// Registration links a user to an event they signed up for. The ticket code
// is the credential presented at check-in.
type Registration struct {
	ID         int64     `json:"id"`
	EventID    int64     `json:"event_id"`
	UserID     int64     `json:"user_id"`
	TicketCode string    `json:"ticket_code"`
	CreatedAt  time.Time `json:"created_at"`
}

// Repository defines the interface for registration data access
type Repository interface {
	CreateRegistration(reg *Registration) (*Registration, error)
	GetByEventAndUser(eventID, userID int64) (*Registration, bool)
	DeleteByEventAndUser(eventID, userID int64) error
	ListByUser(userID int64) ([]*Registration, error)
	CountByEvent(eventID int64) (int64, error)
	CountAll() (int64, error)
}

// Errors
var (
	ErrAlreadyRegistered    = errors.New("already registered for this event")
	ErrRegistrationNotFound = errors.New("registration not found")
)
