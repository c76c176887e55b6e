package event

import (
	"errors"
	"time"
)

// Status is the approval workflow state of an event.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
)

// ValidStatus reports whether s is a known workflow state.
func ValidStatus(s Status) bool {
	switch s {
	case StatusDraft, StatusPending, StatusApproved, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

// Categories an event can belong to.
var Categories = map[string]bool{
	"academic": true,
	"cultural": true,
	"sports":   true,
	"workshop": true,
	"seminar":  true,
}

// Event represents a campus event
type Event struct {
	ID                   int64      `json:"id"`
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	OrganizerID          int64      `json:"organizer_id"`
	Category             string     `json:"category"`
	Date                 time.Time  `json:"date"`
	StartTime            string     `json:"start_time"`
	EndTime              string     `json:"end_time"`
	Venue                string     `json:"venue"`
	MaxParticipants      int        `json:"max_participants,omitempty"`
	RegistrationDeadline *time.Time `json:"registration_deadline,omitempty"`
	Status               Status     `json:"status"`
	ImageURL             string     `json:"image_url,omitempty"`
	GalleryURLs          []string   `json:"gallery_urls,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// RegistrationOpen reports whether the event currently accepts
// registrations: it must be approved and inside the deadline.
func (e *Event) RegistrationOpen(now time.Time) bool {
	if e.Status != StatusApproved {
		return false
	}
	if e.RegistrationDeadline != nil && now.After(*e.RegistrationDeadline) {
		return false
	}
	return now.Before(e.Date.Add(24 * time.Hour))
}

// Filter narrows List results.
type Filter struct {
	Status      Status
	Category    string
	OrganizerID int64
}

// Repository defines the interface for event data access
type Repository interface {
	CreateEvent(e *Event) (*Event, error)
	GetEventByID(id int64) (*Event, bool)
	UpdateEvent(e *Event) error
	UpdateStatus(id int64, status Status) error
	DeleteEvent(id int64) error
	ListEvents(filter Filter) ([]*Event, error)
	CountByStatus() (map[Status]int64, error)
	CountByCategory() (map[string]int64, error)
}

// Errors
var (
	ErrEventNotFound = errors.New("event not found")
)
