package upload

import (
	"fmt"
	"io"
	"math/rand/v2"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"campuspulse/server/validation"
)

// Hooks for tests
var (
	timeNow = time.Now
	randInt = func() int64 { return rand.Int64N(1_000_000_000) }
)

// Store persists validated uploads under a root directory, one folder per
// category. Filenames carry a millisecond timestamp and a random suffix so
// concurrent writers never need coordination or existence checks.
type Store struct {
	root string
}

func NewStore(root string) *Store {
	return &Store{root: root}
}

func (s *Store) dir(cat Category) string {
	p := policies[cat]
	return filepath.Join(s.root, p.Dir)
}

// EnsureDirs idempotently creates every category directory. Called once at
// startup; safe to call again.
func (s *Store) EnsureDirs() error {
	for _, cat := range Categories() {
		if err := os.MkdirAll(s.dir(cat), 0755); err != nil {
			return fmt.Errorf("failed to create upload dir for %s: %w", cat, err)
		}
	}
	return nil
}

// Save validates and persists a single file for the category. callerID is
// embedded in the filename for avatars and ignored otherwise.
func (s *Store) Save(cat Category, callerID int64, fh *multipart.FileHeader) (*StoredFile, error) {
	p, ok := policies[cat]
	if !ok {
		return nil, ErrInvalidCategory
	}

	if fh == nil || fh.Size == 0 {
		return nil, ErrNoFileProvided
	}

	if err := s.validateFile(fh, p); err != nil {
		return nil, err
	}

	name := s.generateFilename(cat, callerID, fh)
	if err := s.writeFile(cat, name, fh); err != nil {
		return nil, err
	}

	return &StoredFile{
		Filename:     name,
		URL:          fmt.Sprintf("/uploads/%s/%s", p.Dir, name),
		Size:         fh.Size,
		OriginalName: fh.Filename,
	}, nil
}

// SaveBatch validates and persists a gallery batch all-or-nothing: the count
// is checked before any file is touched, every file is validated before any
// file is written, and a write failure removes files already written.
func (s *Store) SaveBatch(cat Category, files []*multipart.FileHeader) ([]*StoredFile, error) {
	p, ok := policies[cat]
	if !ok {
		return nil, ErrInvalidCategory
	}

	if len(files) == 0 {
		return nil, ErrNoFileProvided
	}
	if len(files) > p.MaxFiles {
		return nil, ErrTooManyFiles
	}

	for _, fh := range files {
		if err := s.validateFile(fh, p); err != nil {
			return nil, err
		}
	}

	stored := make([]*StoredFile, 0, len(files))
	for _, fh := range files {
		name := s.generateFilename(cat, 0, fh)
		if err := s.writeFile(cat, name, fh); err != nil {
			for _, f := range stored {
				_ = os.Remove(filepath.Join(s.dir(cat), f.Filename))
			}
			return nil, err
		}
		stored = append(stored, &StoredFile{
			Filename:     name,
			URL:          fmt.Sprintf("/uploads/%s/%s", p.Dir, name),
			Size:         fh.Size,
			OriginalName: fh.Filename,
		})
	}

	return stored, nil
}

// Delete removes a previously stored file. The filename is untrusted input:
// it must match the server's own generation pattern and the category's
// prefix before any path is resolved.
func (s *Store) Delete(cat Category, filename string) error {
	p, ok := policies[cat]
	if !ok {
		return ErrInvalidCategory
	}

	if !validation.ValidateUploadFilename(filename) || !strings.HasPrefix(filename, p.Prefix+"-") {
		return ErrNotFound
	}

	path := filepath.Join(s.dir(cat), filename)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to stat %s: %w", filename, err)
	}

	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete %s: %w", filename, err)
	}

	return nil
}

// Health reports existence and writability per category directory. The
// writability check is a real probe: create and remove a temp file.
func (s *Store) Health() []DirStatus {
	statuses := make([]DirStatus, 0, 3)
	for _, cat := range Categories() {
		dir := s.dir(cat)
		status := DirStatus{Category: cat, Path: dir}

		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			status.Exists = true
			probe, err := os.CreateTemp(dir, ".probe-*")
			if err == nil {
				probe.Close()
				_ = os.Remove(probe.Name())
				status.Writable = true
			}
		}

		statuses = append(statuses, status)
	}
	return statuses
}

// validateFile enforces MIME type first, then size, per file.
func (s *Store) validateFile(fh *multipart.FileHeader, p Policy) error {
	if fh == nil || fh.Size == 0 {
		return ErrNoFileProvided
	}

	contentType, err := detectContentType(fh)
	if err != nil {
		return fmt.Errorf("failed to read file content: %w", err)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return ErrInvalidFileType
	}

	if fh.Size > p.MaxBytes {
		return ErrFileTooLarge
	}

	return nil
}

// generateFilename builds <prefix>-[<callerID>-]<millis>-<rand>.<ext>.
// Timestamp plus random suffix gives practical uniqueness across concurrent
// uploads without a read-before-write check.
func (s *Store) generateFilename(cat Category, callerID int64, fh *multipart.FileHeader) string {
	p := policies[cat]
	ext := fileExtension(fh)
	millis := timeNow().UnixMilli()
	suffix := randInt()

	if cat == CategoryAvatar {
		return fmt.Sprintf("%s-%d-%d-%d.%s", p.Prefix, callerID, millis, suffix, ext)
	}
	return fmt.Sprintf("%s-%d-%d.%s", p.Prefix, millis, suffix, ext)
}

// writeFile copies the upload to a temporary name in the destination
// directory and renames it into place, so an aborted request never leaves a
// partial file at a final filename.
func (s *Store) writeFile(cat Category, name string, fh *multipart.FileHeader) error {
	dir := s.dir(cat)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create upload dir: %w", err)
	}

	src, err := fh.Open()
	if err != nil {
		return fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp(dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to close file: %w", err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(dir, name)); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to finalize file: %w", err)
	}

	return nil
}

// detectContentType sniffs the first 512 bytes so a forged Content-Type
// header cannot bypass the image filter.
func detectContentType(fh *multipart.FileHeader) (string, error) {
	file, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	buff := make([]byte, 512)
	n, err := file.Read(buff)
	if err != nil && err != io.EOF {
		return "", err
	}

	return http.DetectContentType(buff[:n]), nil
}

// fileExtension takes the original extension when it is sane, otherwise
// falls back to content-type detection.
func fileExtension(fh *multipart.FileHeader) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fh.Filename), "."))
	if ext != "" && len(ext) <= 8 && isAlnum(ext) {
		return ext
	}

	contentType, err := detectContentType(fh)
	if err != nil {
		return "bin"
	}
	switch contentType {
	case "image/jpeg":
		return "jpg"
	case "image/png":
		return "png"
	case "image/gif":
		return "gif"
	case "image/webp":
		return "webp"
	case "image/bmp":
		return "bmp"
	default:
		return "bin"
	}
}

func isAlnum(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
