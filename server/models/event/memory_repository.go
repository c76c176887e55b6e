package event

import (
	"sort"
	"sync"
	"time"
)

// MemoryRepository is an in-memory event store for command mode and tests
type MemoryRepository struct {
	sync.RWMutex
	events    map[int64]*Event
	idCounter int64
}

// NewMemoryRepository creates a new MemoryRepository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{events: make(map[int64]*Event)}
}

// CreateEvent adds a new event to the store
func (r *MemoryRepository) CreateEvent(e *Event) (*Event, error) {
	r.Lock()
	defer r.Unlock()

	r.idCounter++
	e.ID = r.idCounter
	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now
	copied := *e
	r.events[e.ID] = &copied
	return e, nil
}

// GetEventByID retrieves an event by ID
func (r *MemoryRepository) GetEventByID(id int64) (*Event, bool) {
	r.RLock()
	defer r.RUnlock()
	e, exists := r.events[id]
	if !exists {
		return nil, false
	}
	copied := *e
	return &copied, true
}

// UpdateEvent replaces the mutable fields of an event
func (r *MemoryRepository) UpdateEvent(e *Event) error {
	r.Lock()
	defer r.Unlock()
	existing, exists := r.events[e.ID]
	if !exists {
		return ErrEventNotFound
	}
	copied := *e
	copied.Status = existing.Status
	copied.OrganizerID = existing.OrganizerID
	copied.CreatedAt = existing.CreatedAt
	copied.UpdatedAt = time.Now()
	r.events[e.ID] = &copied
	return nil
}

// UpdateStatus moves an event through the approval workflow
func (r *MemoryRepository) UpdateStatus(id int64, status Status) error {
	r.Lock()
	defer r.Unlock()
	e, exists := r.events[id]
	if !exists {
		return ErrEventNotFound
	}
	e.Status = status
	e.UpdatedAt = time.Now()
	return nil
}

// DeleteEvent removes an event
func (r *MemoryRepository) DeleteEvent(id int64) error {
	r.Lock()
	defer r.Unlock()
	if _, exists := r.events[id]; !exists {
		return ErrEventNotFound
	}
	delete(r.events, id)
	return nil
}

// ListEvents returns events matching the filter, newest first
func (r *MemoryRepository) ListEvents(filter Filter) ([]*Event, error) {
	r.RLock()
	defer r.RUnlock()

	var events []*Event
	for _, e := range r.events {
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		if filter.OrganizerID != 0 && e.OrganizerID != filter.OrganizerID {
			continue
		}
		copied := *e
		events = append(events, &copied)
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].Date.After(events[j].Date)
	})
	return events, nil
}

// CountByStatus returns the number of events per workflow state
func (r *MemoryRepository) CountByStatus() (map[Status]int64, error) {
	r.RLock()
	defer r.RUnlock()
	counts := make(map[Status]int64)
	for _, e := range r.events {
		counts[e.Status]++
	}
	return counts, nil
}

// CountByCategory returns the number of events per category
func (r *MemoryRepository) CountByCategory() (map[string]int64, error) {
	r.RLock()
	defer r.RUnlock()
	counts := make(map[string]int64)
	for _, e := range r.events {
		counts[e.Category]++
	}
	return counts, nil
}
