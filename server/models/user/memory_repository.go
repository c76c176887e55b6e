package user

import (
	"sync"
	"time"

	"campuspulse/server/models/rbac"
)

// MemoryRepository is an in-memory user store for command mode and tests
type MemoryRepository struct {
	sync.RWMutex
	users     map[int64]*User
	byEmail   map[string]*User
	idCounter int64
}

// NewMemoryRepository creates a new MemoryRepository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users:   make(map[int64]*User),
		byEmail: make(map[string]*User),
	}
}

// CreateUser adds a new user to the store
func (r *MemoryRepository) CreateUser(u *User) (*User, error) {
	r.Lock()
	defer r.Unlock()

	if _, exists := r.byEmail[u.Email]; exists {
		return nil, ErrUserExists
	}

	r.idCounter++
	u.ID = r.idCounter
	u.IsActive = true
	u.CreatedAt = time.Now()
	r.users[u.ID] = u
	r.byEmail[u.Email] = u
	return u, nil
}

// GetUserByEmail retrieves a user by email
func (r *MemoryRepository) GetUserByEmail(email string) (*User, bool) {
	r.RLock()
	defer r.RUnlock()
	u, exists := r.byEmail[email]
	return u, exists
}

// GetUserByID retrieves a user by ID
func (r *MemoryRepository) GetUserByID(id int64) (*User, bool) {
	r.RLock()
	defer r.RUnlock()
	u, exists := r.users[id]
	return u, exists
}

// UpdateLastLogin updates the last login time for a user
func (r *MemoryRepository) UpdateLastLogin(id int64) error {
	r.Lock()
	defer r.Unlock()
	u, exists := r.users[id]
	if !exists {
		return ErrUserNotFound
	}
	now := time.Now()
	u.LastLogin = &now
	return nil
}

// UpdateAvatarURL stores the user's current avatar URL
func (r *MemoryRepository) UpdateAvatarURL(id int64, avatarURL string) error {
	r.Lock()
	defer r.Unlock()
	u, exists := r.users[id]
	if !exists {
		return ErrUserNotFound
	}
	u.AvatarURL = avatarURL
	return nil
}

// UpdateRole changes a user's role
func (r *MemoryRepository) UpdateRole(id int64, role rbac.Role) error {
	r.Lock()
	defer r.Unlock()
	u, exists := r.users[id]
	if !exists {
		return ErrUserNotFound
	}
	u.Role = role
	return nil
}

// ListUsers returns all users
func (r *MemoryRepository) ListUsers() ([]*User, error) {
	r.RLock()
	defer r.RUnlock()
	users := make([]*User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	return users, nil
}

// CountByRole returns the number of users per role
func (r *MemoryRepository) CountByRole() (map[rbac.Role]int64, error) {
	r.RLock()
	defer r.RUnlock()
	counts := make(map[rbac.Role]int64)
	for _, u := range r.users {
		counts[u.Role]++
	}
	return counts, nil
}
