package user

import (
	"errors"
	"time"

	"campuspulse/server/models/rbac"
)

// User represents a registered account
type User struct {
	ID         int64      `json:"id"`
	Email      string     `json:"email"`
	Password   string     `json:"-"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Role       rbac.Role  `json:"role"`
	Department string     `json:"department,omitempty"`
	StudentID  string     `json:"student_id,omitempty"`
	Phone      string     `json:"phone,omitempty"`
	AvatarURL  string     `json:"avatar_url,omitempty"`
	IsActive   bool       `json:"is_active"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// FullName returns the display name; never used for ownership checks.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Repository defines the interface for user data access
type Repository interface {
	CreateUser(u *User) (*User, error)
	GetUserByEmail(email string) (*User, bool)
	GetUserByID(id int64) (*User, bool)
	UpdateLastLogin(id int64) error
	UpdateAvatarURL(id int64, avatarURL string) error
	UpdateRole(id int64, role rbac.Role) error
	ListUsers() ([]*User, error)
	CountByRole() (map[rbac.Role]int64, error)
}

// Errors
var (
	ErrUserExists   = errors.New("email already registered")
	ErrUserNotFound = errors.New("user not found")
)
