package registration

import (
	"time"

	"campuspulse/server/bsql"

	"github.com/lib/pq"
)

// PostgresRepository implements the Repository interface for PostgreSQL
type PostgresRepository struct {
	db *bsql.DB
}

// NewPostgresRepository creates a new PostgresRepository
func NewPostgresRepository(db *bsql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateRegistration inserts a new registration. The unique index on
// (event_id, user_id) is the duplicate guard.
func (r *PostgresRepository) CreateRegistration(reg *Registration) (*Registration, error) {
	now := time.Now()

	id, err := r.db.Insert("registrations", map[string]interface{}{
		"event_id":    reg.EventID,
		"user_id":     reg.UserID,
		"ticket_code": reg.TicketCode,
		"created_at":  now,
	})
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" {
				return nil, ErrAlreadyRegistered
			}
		}
		return nil, err
	}

	reg.ID = id
	reg.CreatedAt = now
	return reg, nil
}

// GetByEventAndUser retrieves a registration
func (r *PostgresRepository) GetByEventAndUser(eventID, userID int64) (*Registration, bool) {
	reg := &Registration{}
	err := r.db.QueryRow(
		`SELECT id, event_id, user_id, ticket_code, created_at
		 FROM registrations WHERE event_id = $1 AND user_id = $2`,
		eventID, userID,
	).Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.TicketCode, &reg.CreatedAt)

	if err != nil {
		return nil, false
	}
	return reg, true
}

// DeleteByEventAndUser cancels a registration
func (r *PostgresRepository) DeleteByEventAndUser(eventID, userID int64) error {
	res, err := r.db.Exec(
		"DELETE FROM registrations WHERE event_id = $1 AND user_id = $2",
		eventID, userID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRegistrationNotFound
	}
	return nil
}

// ListByUser returns all registrations for a user, newest first
func (r *PostgresRepository) ListByUser(userID int64) ([]*Registration, error) {
	rows, err := r.db.Query(
		`SELECT id, event_id, user_id, ticket_code, created_at
		 FROM registrations WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regs []*Registration
	for rows.Next() {
		reg := &Registration{}
		if err := rows.Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.TicketCode, &reg.CreatedAt); err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

// CountByEvent returns the number of registrations for an event
func (r *PostgresRepository) CountByEvent(eventID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow("SELECT COUNT(*) FROM registrations WHERE event_id = $1", eventID).Scan(&count)
	return count, err
}

// CountAll returns the total number of registrations
func (r *PostgresRepository) CountAll() (int64, error) {
	var count int64
	err := r.db.QueryRow("SELECT COUNT(*) FROM registrations").Scan(&count)
	return count, err
}
