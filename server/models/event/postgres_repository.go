package event

import (
	"database/sql"
	"fmt"
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

const eventColumns = `id, title, description, organizer_id, category, date, start_time,
	end_time, venue, max_participants, registration_deadline, status, image_url,
	gallery_urls, created_at, updated_at`

// CreateEvent inserts a new event
func (r *PostgresRepository) CreateEvent(e *Event) (*Event, error) {
	now := time.Now()

	id, err := r.db.Insert("events", map[string]interface{}{
		"title":                 e.Title,
		"description":           e.Description,
		"organizer_id":          e.OrganizerID,
		"category":              e.Category,
		"date":                  e.Date,
		"start_time":            e.StartTime,
		"end_time":              e.EndTime,
		"venue":                 e.Venue,
		"max_participants":      e.MaxParticipants,
		"registration_deadline": e.RegistrationDeadline,
		"status":                string(e.Status),
		"image_url":             e.ImageURL,
		"gallery_urls":          pq.Array(e.GalleryURLs),
		"created_at":            now,
		"updated_at":            now,
	})
	if err != nil {
		return nil, err
	}

	e.ID = id
	e.CreatedAt = now
	e.UpdatedAt = now
	return e, nil
}

// GetEventByID retrieves an event by its ID
func (r *PostgresRepository) GetEventByID(id int64) (*Event, bool) {
	row := r.db.QueryRow(`SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	e, err := scanEvent(row)
	if err != nil {
		return nil, false
	}
	return e, true
}

// UpdateEvent persists the mutable fields of an event
func (r *PostgresRepository) UpdateEvent(e *Event) error {
	return r.db.Update("events", e.ID, map[string]interface{}{
		"title":                 e.Title,
		"description":           e.Description,
		"category":              e.Category,
		"date":                  e.Date,
		"start_time":            e.StartTime,
		"end_time":              e.EndTime,
		"venue":                 e.Venue,
		"max_participants":      e.MaxParticipants,
		"registration_deadline": e.RegistrationDeadline,
		"image_url":             e.ImageURL,
		"gallery_urls":          pq.Array(e.GalleryURLs),
		"updated_at":            time.Now(),
	})
}

// UpdateStatus moves an event through the approval workflow
func (r *PostgresRepository) UpdateStatus(id int64, status Status) error {
	return r.db.Update("events", id, map[string]interface{}{
		"status":     string(status),
		"updated_at": time.Now(),
	})
}

// DeleteEvent removes an event
func (r *PostgresRepository) DeleteEvent(id int64) error {
	res, err := r.db.Exec("DELETE FROM events WHERE id = $1", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrEventNotFound
	}
	return nil
}

// ListEvents returns events matching the filter, newest first
func (r *PostgresRepository) ListEvents(filter Filter) ([]*Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events`
	var conditions []string
	var args []interface{}

	if filter.Status != "" {
		args = append(args, string(filter.Status))
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.OrganizerID != 0 {
		args = append(args, filter.OrganizerID)
		conditions = append(conditions, fmt.Sprintf("organizer_id = $%d", len(args)))
	}

	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY date DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// CountByStatus returns the number of events per workflow state
func (r *PostgresRepository) CountByStatus() (map[Status]int64, error) {
	return r.countGrouped("status", func(k string) Status { return Status(k) })
}

// CountByCategory returns the number of events per category
func (r *PostgresRepository) CountByCategory() (map[string]int64, error) {
	rows, err := r.db.Query("SELECT category, COUNT(*) FROM events GROUP BY category")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var key string
		var count int64
		if err := rows.Scan(&key, &count); err != nil {
			return nil, err
		}
		counts[key] = count
	}
	return counts, rows.Err()
}

func (r *PostgresRepository) countGrouped(column string, key func(string) Status) (map[Status]int64, error) {
	rows, err := r.db.Query("SELECT " + column + ", COUNT(*) FROM events GROUP BY " + column)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[Status]int64)
	for rows.Next() {
		var k string
		var count int64
		if err := rows.Scan(&k, &count); err != nil {
			return nil, err
		}
		counts[key(k)] = count
	}
	return counts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(row rowScanner) (*Event, error) {
	e := &Event{}
	var status string
	var maxParticipants sql.NullInt64
	var deadline sql.NullTime
	var imageURL sql.NullString
	var gallery pq.StringArray

	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.OrganizerID, &e.Category, &e.Date,
		&e.StartTime, &e.EndTime, &e.Venue, &maxParticipants, &deadline,
		&status, &imageURL, &gallery, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.Status = Status(status)
	e.MaxParticipants = int(maxParticipants.Int64)
	if deadline.Valid {
		e.RegistrationDeadline = &deadline.Time
	}
	e.ImageURL = imageURL.String
	e.GalleryURLs = []string(gallery)
	return e, nil
}
