package blog

import (
	"errors"
	"time"
)

// Blog is a campus news/announcement post.
type Blog struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	AuthorID  int64     `json:"author_id"`
	Tags      []string  `json:"tags,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Filter narrows List results.
type Filter struct {
	AuthorID      int64
	PublishedOnly bool
}

// Repository defines the interface for blog data access
type Repository interface {
	CreateBlog(b *Blog) (*Blog, error)
	GetBlogByID(id int64) (*Blog, bool)
	UpdateBlog(b *Blog) error
	DeleteBlog(id int64) error
	ListBlogs(filter Filter) ([]*Blog, error)
}

// Errors
var (
	ErrBlogNotFound = errors.New("blog not found")
)
