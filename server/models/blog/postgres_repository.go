package blog

import (
	"time"

	"campuspulse/server/bsql"

	"github.com/lib/pq"
)

const blogColumns = "id, title, content, author_id, tags, image_url, published, created_at, updated_at"

// PostgresRepository implements the Repository interface for PostgreSQL
type PostgresRepository struct {
	db *bsql.DB
}

// NewPostgresRepository creates a new PostgresRepository
func NewPostgresRepository(db *bsql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateBlog inserts a new blog post
func (r *PostgresRepository) CreateBlog(b *Blog) (*Blog, error) {
	now := time.Now()

	id, err := r.db.Insert("blogs", map[string]interface{}{
		"title":      b.Title,
		"content":    b.Content,
		"author_id":  b.AuthorID,
		"tags":       pq.Array(b.Tags),
		"image_url":  b.ImageURL,
		"published":  b.Published,
		"created_at": now,
		"updated_at": now,
	})
	if err != nil {
		return nil, err
	}

	b.ID = id
	b.CreatedAt = now
	b.UpdatedAt = now
	return b, nil
}

// GetBlogByID retrieves a blog post by ID
func (r *PostgresRepository) GetBlogByID(id int64) (*Blog, bool) {
	row := r.db.QueryRow("SELECT "+blogColumns+" FROM blogs WHERE id = $1", id)
	b, err := scanBlog(row)
	if err != nil {
		return nil, false
	}
	return b, true
}

// UpdateBlog replaces the mutable fields of a blog post
func (r *PostgresRepository) UpdateBlog(b *Blog) error {
	return r.db.Update("blogs", b.ID, map[string]interface{}{
		"title":      b.Title,
		"content":    b.Content,
		"tags":       pq.Array(b.Tags),
		"image_url":  b.ImageURL,
		"published":  b.Published,
		"updated_at": time.Now(),
	})
}

// DeleteBlog removes a blog post
func (r *PostgresRepository) DeleteBlog(id int64) error {
	res, err := r.db.Exec("DELETE FROM blogs WHERE id = $1", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBlogNotFound
	}
	return nil
}

// ListBlogs returns blog posts matching the filter, newest first
func (r *PostgresRepository) ListBlogs(filter Filter) ([]*Blog, error) {
	query := "SELECT " + blogColumns + " FROM blogs WHERE 1=1"
	var args []interface{}

	if filter.PublishedOnly {
		query += " AND published = true"
	}
	if filter.AuthorID != 0 {
		args = append(args, filter.AuthorID)
		query += " AND author_id = $1"
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blogs []*Blog
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, b)
	}
	return blogs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBlog(row rowScanner) (*Blog, error) {
	b := &Blog{}
	err := row.Scan(
		&b.ID, &b.Title, &b.Content, &b.AuthorID,
		pq.Array(&b.Tags), &b.ImageURL, &b.Published,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}
