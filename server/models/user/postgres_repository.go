package user

import (
	"database/sql"
	"time"

	"campuspulse/server/bsql"
	"campuspulse/server/models/rbac"

	"github.com/lib/pq"
)

// PostgresRepository handles user database operations
type PostgresRepository struct {
	db *bsql.DB
}

// NewPostgresRepository creates a new PostgresRepository
func NewPostgresRepository(db *bsql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, email, password, first_name, last_name, role, department,
	student_id, phone, avatar_url, is_active, last_login, created_at`

// CreateUser inserts a new user into the database
func (r *PostgresRepository) CreateUser(u *User) (*User, error) {
	now := time.Now()

	id, err := r.db.Insert("users", map[string]interface{}{
		"email":      u.Email,
		"password":   u.Password,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"role":       string(u.Role),
		"department": u.Department,
		"student_id": u.StudentID,
		"phone":      u.Phone,
		"is_active":  true,
		"created_at": now,
	})

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" {
				return nil, ErrUserExists
			}
		}
		return nil, err
	}

	u.ID = id
	u.IsActive = true
	u.CreatedAt = now
	return u, nil
}

// GetUserByEmail retrieves a user by email
func (r *PostgresRepository) GetUserByEmail(email string) (*User, bool) {
	return r.getUserBy("email = $1", email)
}

// GetUserByID retrieves a user by ID
func (r *PostgresRepository) GetUserByID(id int64) (*User, bool) {
	return r.getUserBy("id = $1", id)
}

func (r *PostgresRepository) getUserBy(where string, arg interface{}) (*User, bool) {
	row := r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE `+where, arg)

	u, err := scanUser(row)
	if err != nil {
		return nil, false
	}
	return u, true
}

// UpdateLastLogin updates the last login time for a user
func (r *PostgresRepository) UpdateLastLogin(id int64) error {
	_, err := r.db.Exec("UPDATE users SET last_login = $1 WHERE id = $2", time.Now(), id)
	return err
}

// UpdateAvatarURL stores the public URL of the user's current avatar
func (r *PostgresRepository) UpdateAvatarURL(id int64, avatarURL string) error {
	return r.db.Update("users", id, map[string]interface{}{"avatar_url": avatarURL})
}

// UpdateRole changes a user's role
func (r *PostgresRepository) UpdateRole(id int64, role rbac.Role) error {
	return r.db.Update("users", id, map[string]interface{}{"role": string(role)})
}

// ListUsers returns all users ordered by creation time
func (r *PostgresRepository) ListUsers() ([]*User, error) {
	rows, err := r.db.Query(`SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// CountByRole returns the number of users per role
func (r *PostgresRepository) CountByRole() (map[rbac.Role]int64, error) {
	rows, err := r.db.Query("SELECT role, COUNT(*) FROM users GROUP BY role")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[rbac.Role]int64)
	for rows.Next() {
		var role string
		var count int64
		if err := rows.Scan(&role, &count); err != nil {
			return nil, err
		}
		counts[rbac.Role(role)] = count
	}
	return counts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*User, error) {
	u := &User{}
	var role string
	var department, studentID, phone, avatarURL sql.NullString
	var lastLogin sql.NullTime

	err := row.Scan(
		&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName, &role,
		&department, &studentID, &phone, &avatarURL, &u.IsActive, &lastLogin,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	u.Role = rbac.Role(role)
	u.Department = department.String
	u.StudentID = studentID.String
	u.Phone = phone.String
	u.AvatarURL = avatarURL.String
	if lastLogin.Valid {
		u.LastLogin = &lastLogin.Time
	}
	return u, nil
}
