package notification

import (
	"time"

	"campuspulse/server/bsql"

	"github.com/google/uuid"
)

// PostgresRepository implements the Repository interface for PostgreSQL
type PostgresRepository struct {
	db *bsql.DB
}

// NewPostgresRepository creates a new PostgresRepository
func NewPostgresRepository(db *bsql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateNotification inserts a new notification. The id is generated
// here, not by the database, because notifications key on uuid.
func (r *PostgresRepository) CreateNotification(n *Notification) (*Notification, error) {
	n.ID = uuid.NewString()
	n.CreatedAt = time.Now()

	_, err := r.db.Exec(
		`INSERT INTO notifications (id, recipient_id, title, message, type, read, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		n.ID, n.RecipientID, n.Title, n.Message, n.Type, n.Read, n.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// ListByRecipient returns a user's notifications, newest first
func (r *PostgresRepository) ListByRecipient(recipientID int64) ([]*Notification, error) {
	rows, err := r.db.Query(
		`SELECT id, recipient_id, title, message, type, read, created_at
		 FROM notifications WHERE recipient_id = $1 ORDER BY created_at DESC`,
		recipientID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*Notification
	for rows.Next() {
		n := &Notification{}
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.Title, &n.Message, &n.Type, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkRead flags a single notification as read. The recipient id in the
// WHERE clause keeps users from touching each other's notifications.
func (r *PostgresRepository) MarkRead(id string, recipientID int64) error {
	res, err := r.db.Exec(
		"UPDATE notifications SET read = true WHERE id = $1 AND recipient_id = $2",
		id, recipientID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead flags every notification for a user as read
func (r *PostgresRepository) MarkAllRead(recipientID int64) error {
	_, err := r.db.Exec(
		"UPDATE notifications SET read = true WHERE recipient_id = $1 AND read = false",
		recipientID,
	)
	return err
}

// CountUnread returns the number of unread notifications for a user
func (r *PostgresRepository) CountUnread(recipientID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(
		"SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND read = false",
		recipientID,
	).Scan(&count)
	return count, err
}
