package blog

import (
	"sort"
	"sync"
	"time"
)

// MemoryRepository is an in-memory blog store for tests
type MemoryRepository struct {
	sync.RWMutex
	blogs     map[int64]*Blog
	idCounter int64
}

// NewMemoryRepository creates a new MemoryRepository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{blogs: make(map[int64]*Blog)}
}

// CreateBlog adds a new blog post to the store
func (r *MemoryRepository) CreateBlog(b *Blog) (*Blog, error) {
	r.Lock()
	defer r.Unlock()

	r.idCounter++
	b.ID = r.idCounter
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now
	copied := *b
	r.blogs[b.ID] = &copied
	return b, nil
}

// GetBlogByID retrieves a blog post by ID
func (r *MemoryRepository) GetBlogByID(id int64) (*Blog, bool) {
	r.RLock()
	defer r.RUnlock()
	b, exists := r.blogs[id]
	if !exists {
		return nil, false
	}
	copied := *b
	return &copied, true
}

// UpdateBlog replaces the mutable fields of a blog post
func (r *MemoryRepository) UpdateBlog(b *Blog) error {
	r.Lock()
	defer r.Unlock()
	existing, exists := r.blogs[b.ID]
	if !exists {
		return ErrBlogNotFound
	}
	copied := *b
	copied.AuthorID = existing.AuthorID
	copied.CreatedAt = existing.CreatedAt
	copied.UpdatedAt = time.Now()
	r.blogs[b.ID] = &copied
	return nil
}

// DeleteBlog removes a blog post
func (r *MemoryRepository) DeleteBlog(id int64) error {
	r.Lock()
	defer r.Unlock()
	if _, exists := r.blogs[id]; !exists {
		return ErrBlogNotFound
	}
	delete(r.blogs, id)
	return nil
}

// ListBlogs returns blog posts matching the filter, newest first
func (r *MemoryRepository) ListBlogs(filter Filter) ([]*Blog, error) {
	r.RLock()
	defer r.RUnlock()

	var blogs []*Blog
	for _, b := range r.blogs {
		if filter.PublishedOnly && !b.Published {
			continue
		}
		if filter.AuthorID != 0 && b.AuthorID != filter.AuthorID {
			continue
		}
		copied := *b
		blogs = append(blogs, &copied)
	}

	sort.Slice(blogs, func(i, j int) bool {
		return blogs[i].CreatedAt.After(blogs[j].CreatedAt)
	})
	return blogs, nil
}
