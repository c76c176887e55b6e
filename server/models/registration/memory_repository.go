package registration

import (
	"sync"
	"time"
)

type eventUserKey struct {
	eventID int64
	userID  int64
}

// MemoryRepository is an in-memory registration store for tests
type MemoryRepository struct {
	sync.RWMutex
	regs      map[eventUserKey]*Registration
	idCounter int64
}

// NewMemoryRepository creates a new MemoryRepository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{regs: make(map[eventUserKey]*Registration)}
}

// CreateRegistration adds a registration, rejecting duplicates
func (r *MemoryRepository) CreateRegistration(reg *Registration) (*Registration, error) {
	r.Lock()
	defer r.Unlock()

	key := eventUserKey{reg.EventID, reg.UserID}
	if _, exists := r.regs[key]; exists {
		return nil, ErrAlreadyRegistered
	}

	r.idCounter++
	reg.ID = r.idCounter
	reg.CreatedAt = time.Now()
	r.regs[key] = reg
	return reg, nil
}

// GetByEventAndUser retrieves a registration
func (r *MemoryRepository) GetByEventAndUser(eventID, userID int64) (*Registration, bool) {
	r.RLock()
	defer r.RUnlock()
	reg, exists := r.regs[eventUserKey{eventID, userID}]
	return reg, exists
}

// DeleteByEventAndUser cancels a registration
func (r *MemoryRepository) DeleteByEventAndUser(eventID, userID int64) error {
	r.Lock()
	defer r.Unlock()
	key := eventUserKey{eventID, userID}
	if _, exists := r.regs[key]; !exists {
		return ErrRegistrationNotFound
	}
	delete(r.regs, key)
	return nil
}

// ListByUser returns all registrations for a user
func (r *MemoryRepository) ListByUser(userID int64) ([]*Registration, error) {
	r.RLock()
	defer r.RUnlock()
	var regs []*Registration
	for _, reg := range r.regs {
		if reg.UserID == userID {
			regs = append(regs, reg)
		}
	}
	return regs, nil
}

// CountByEvent returns the number of registrations for an event
func (r *MemoryRepository) CountByEvent(eventID int64) (int64, error) {
	r.RLock()
	defer r.RUnlock()
	var count int64
	for _, reg := range r.regs {
		if reg.EventID == eventID {
			count++
		}
	}
	return count, nil
}

// CountAll returns the total number of registrations
func (r *MemoryRepository) CountAll() (int64, error) {
	r.RLock()
	defer r.RUnlock()
	return int64(len(r.regs)), nil
}
