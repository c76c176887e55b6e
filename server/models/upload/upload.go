package upload

import "errors"

// Category identifies an upload target. The same canonical ids are used on
// the upload, delete and health routes.
type Category string

const (
	CategoryAvatar     Category = "avatar"
	CategoryEventImage Category = "event-image"
	CategoryGallery    Category = "gallery"
)

// Policy holds the per-category intake rules.
type Policy struct {
	Dir      string // folder under the upload root
	Prefix   string // generated filename prefix
	Field    string // multipart field name
	MaxBytes int64
	MaxFiles int
}

const (
	MaxAvatarBytes  = 5 * 1024 * 1024  // 5 MiB
	MaxImageBytes   = 10 * 1024 * 1024 // 10 MiB
	MaxGalleryFiles = 10
)

var policies = map[Category]Policy{
	CategoryAvatar:     {Dir: "avatars", Prefix: "avatar", Field: "avatar", MaxBytes: MaxAvatarBytes, MaxFiles: 1},
	CategoryEventImage: {Dir: "events", Prefix: "event", Field: "image", MaxBytes: MaxImageBytes, MaxFiles: 1},
	CategoryGallery:    {Dir: "gallery", Prefix: "gallery", Field: "images", MaxBytes: MaxImageBytes, MaxFiles: MaxGalleryFiles},
}

// Categories returns all categories in a fixed order.
func Categories() []Category {
	return []Category{CategoryAvatar, CategoryEventImage, CategoryGallery}
}

// PolicyFor returns the intake policy for a category.
func PolicyFor(cat Category) (Policy, bool) {
	p, ok := policies[cat]
	return p, ok
}

// ParseCategory resolves a route parameter to a category.
func ParseCategory(s string) (Category, bool) {
	cat := Category(s)
	_, ok := policies[cat]
	return cat, ok
}

// StoredFile is the record returned for a successfully persisted file.
type StoredFile struct {
	Filename     string `json:"filename"`
	URL          string `json:"url"`
	Size         int64  `json:"size"`
	OriginalName string `json:"originalName,omitempty"`
}

// DirStatus is one entry of the health probe.
type DirStatus struct {
	Category Category `json:"category"`
	Path     string   `json:"path"`
	Exists   bool     `json:"exists"`
	Writable bool     `json:"writable"`
}

// Errors
var (
	ErrInvalidFileType = errors.New("only image files are allowed")
	ErrFileTooLarge    = errors.New("file size exceeds the category limit")
	ErrTooManyFiles    = errors.New("too many files in gallery batch")
	ErrNoFileProvided  = errors.New("no file uploaded")
	ErrInvalidCategory = errors.New("invalid upload category")
	ErrNotFound        = errors.New("file not found")
)
