package upload

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"
)

// pngBytes returns valid PNG content padded to the requested size.
func pngBytes(size int64) []byte {
	header := []byte{
		0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, // PNG signature
		0x00, 0x00, 0x00, 0x0D,
		0x49, 0x48, 0x44, 0x52,
		0x00, 0x00, 0x00, 0x01,
		0x00, 0x00, 0x00, 0x01,
		0x08, 0x02,
		0x00, 0x00, 0x00,
		0x90, 0x77, 0x53, 0xDE,
	}
	if size <= int64(len(header)) {
		return header
	}
	content := make([]byte, size)
	copy(content, header)
	return content
}

func makeFileHeader(t *testing.T, field, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, name)
	if err != nil {
		t.Fatalf("CreateFormFile failed: %v", err)
	}
	part.Write(content)
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	_, fh, err := req.FormFile(field)
	if err != nil {
		t.Fatalf("FormFile failed: %v", err)
	}
	return fh
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(t.TempDir())
	if err := s.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs failed: %v", err)
	}
	return s
}

func TestSave_ValidAvatar(t *testing.T) {
	s := newTestStore(t)

	fh := makeFileHeader(t, "avatar", "me.png", pngBytes(1024))
	stored, err := s.Save(CategoryAvatar, 123, fh)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	pattern := regexp.MustCompile(`^avatar-123-[0-9]+-[0-9]+\.png$`)
	if !pattern.MatchString(stored.Filename) {
		t.Errorf("Unexpected avatar filename: %s", stored.Filename)
	}
	if stored.URL != "/uploads/avatars/"+stored.Filename {
		t.Errorf("Unexpected URL: %s", stored.URL)
	}
	if stored.Size != 1024 {
		t.Errorf("Expected size 1024, got %d", stored.Size)
	}

	if _, err := os.Stat(filepath.Join(s.dir(CategoryAvatar), stored.Filename)); err != nil {
		t.Errorf("Stored file missing on disk: %v", err)
	}
}

func TestSave_EventImageFilenameHasNoCallerID(t *testing.T) {
	s := newTestStore(t)

	fh := makeFileHeader(t, "image", "poster.png", pngBytes(2048))
	stored, err := s.Save(CategoryEventImage, 123, fh)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	pattern := regexp.MustCompile(`^event-[0-9]+-[0-9]+\.png$`)
	if !pattern.MatchString(stored.Filename) {
		t.Errorf("Unexpected event image filename: %s", stored.Filename)
	}
}

func TestSave_RejectsNonImage(t *testing.T) {
	s := newTestStore(t)

	fh := makeFileHeader(t, "avatar", "evil.png", []byte("#!/bin/sh\necho pwned"))
	_, err := s.Save(CategoryAvatar, 1, fh)
	if !errors.Is(err, ErrInvalidFileType) {
		t.Fatalf("Expected ErrInvalidFileType, got %v", err)
	}

	entries, _ := os.ReadDir(s.dir(CategoryAvatar))
	if len(entries) != 0 {
		t.Errorf("Rejected file must not be persisted, found %d entries", len(entries))
	}
}

func TestSave_TypeCheckedBeforeSize(t *testing.T) {
	s := newTestStore(t)

	// Oversized AND non-image: the type error must win
	content := make([]byte, MaxAvatarBytes+1)
	for i := range content {
		content[i] = 'a'
	}
	fh := makeFileHeader(t, "avatar", "big.txt", content)

	_, err := s.Save(CategoryAvatar, 1, fh)
	if !errors.Is(err, ErrInvalidFileType) {
		t.Fatalf("Expected ErrInvalidFileType, got %v", err)
	}
}

func TestSave_SizeBoundary(t *testing.T) {
	s := newTestStore(t)

	// Exactly at the limit passes
	fh := makeFileHeader(t, "avatar", "exact.png", pngBytes(MaxAvatarBytes))
	if _, err := s.Save(CategoryAvatar, 1, fh); err != nil {
		t.Fatalf("File at exact limit should be accepted: %v", err)
	}

	// One byte over fails
	fh = makeFileHeader(t, "avatar", "over.png", pngBytes(MaxAvatarBytes+1))
	if _, err := s.Save(CategoryAvatar, 1, fh); !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("Expected ErrFileTooLarge, got %v", err)
	}
}

func TestSave_EventImageLimit(t *testing.T) {
	s := newTestStore(t)

	fh := makeFileHeader(t, "image", "over.png", pngBytes(MaxImageBytes+1))
	if _, err := s.Save(CategoryEventImage, 0, fh); !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("Expected ErrFileTooLarge, got %v", err)
	}
}

func TestSave_InvalidCategory(t *testing.T) {
	s := newTestStore(t)

	fh := makeFileHeader(t, "file", "a.png", pngBytes(100))
	if _, err := s.Save(Category("documents"), 0, fh); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("Expected ErrInvalidCategory, got %v", err)
	}
}

func TestSave_DistinctFilenamesAtSameInstant(t *testing.T) {
	s := newTestStore(t)

	// Freeze the clock so uniqueness rests on the random suffix alone
	fixed := time.Now()
	origNow, origRand := timeNow, randInt
	defer func() { timeNow, randInt = origNow, origRand }()
	timeNow = func() time.Time { return fixed }
	var counter int64
	randInt = func() int64 { counter++; return counter }

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		fh := makeFileHeader(t, "image", "same.png", pngBytes(100))
		stored, err := s.Save(CategoryEventImage, 0, fh)
		if err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if seen[stored.Filename] {
			t.Fatalf("Duplicate filename generated: %s", stored.Filename)
		}
		seen[stored.Filename] = true
	}
}

func TestSaveBatch_AllOrNothing(t *testing.T) {
	s := newTestStore(t)

	// One bad file in the middle: nothing may be persisted
	files := []*multipart.FileHeader{
		makeFileHeader(t, "images", "a.png", pngBytes(100)),
		makeFileHeader(t, "images", "b.txt", []byte("plain text, not an image")),
		makeFileHeader(t, "images", "c.png", pngBytes(100)),
	}

	_, err := s.SaveBatch(CategoryGallery, files)
	if !errors.Is(err, ErrInvalidFileType) {
		t.Fatalf("Expected ErrInvalidFileType, got %v", err)
	}

	entries, _ := os.ReadDir(s.dir(CategoryGallery))
	if len(entries) != 0 {
		t.Errorf("Rejected batch must persist nothing, found %d entries", len(entries))
	}
}

func TestSaveBatch_CountLimit(t *testing.T) {
	s := newTestStore(t)

	files := make([]*multipart.FileHeader, MaxGalleryFiles+1)
	for i := range files {
		files[i] = makeFileHeader(t, "images", "img.png", pngBytes(100))
	}

	_, err := s.SaveBatch(CategoryGallery, files)
	if !errors.Is(err, ErrTooManyFiles) {
		t.Fatalf("Expected ErrTooManyFiles, got %v", err)
	}

	entries, _ := os.ReadDir(s.dir(CategoryGallery))
	if len(entries) != 0 {
		t.Errorf("Oversized batch must persist nothing, found %d entries", len(entries))
	}
}

func TestSaveBatch_FullBatch(t *testing.T) {
	s := newTestStore(t)

	files := make([]*multipart.FileHeader, MaxGalleryFiles)
	for i := range files {
		files[i] = makeFileHeader(t, "images", "img.png", pngBytes(100))
	}

	stored, err := s.SaveBatch(CategoryGallery, files)
	if err != nil {
		t.Fatalf("SaveBatch failed: %v", err)
	}
	if len(stored) != MaxGalleryFiles {
		t.Fatalf("Expected %d stored files, got %d", MaxGalleryFiles, len(stored))
	}

	entries, _ := os.ReadDir(s.dir(CategoryGallery))
	if len(entries) != MaxGalleryFiles {
		t.Errorf("Expected %d files on disk, got %d", MaxGalleryFiles, len(entries))
	}
}

func TestDelete_Roundtrip(t *testing.T) {
	s := newTestStore(t)

	fh := makeFileHeader(t, "avatar", "me.png", pngBytes(100))
	stored, err := s.Save(CategoryAvatar, 7, fh)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := s.Delete(CategoryAvatar, stored.Filename); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	// Second delete reports not found
	if err := s.Delete(CategoryAvatar, stored.Filename); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound on second delete, got %v", err)
	}
}

func TestDelete_RejectsForeignFilenames(t *testing.T) {
	s := newTestStore(t)

	// Plant a file the server never generated
	planted := filepath.Join(s.dir(CategoryAvatar), "passwd")
	if err := os.WriteFile(planted, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to plant file: %v", err)
	}

	cases := []string{
		"../../etc/passwd",
		"..%2F..%2Fetc%2Fpasswd",
		"passwd",
		"avatar.png",
		"event-123-456.png", // wrong prefix for the avatar category
		"avatar-12-34.png/",
	}
	for _, name := range cases {
		if err := s.Delete(CategoryAvatar, name); !errors.Is(err, ErrNotFound) {
			t.Errorf("Delete(%q): expected ErrNotFound, got %v", name, err)
		}
	}

	if _, err := os.Stat(planted); err != nil {
		t.Errorf("Planted file must be untouched: %v", err)
	}
}

func TestHealth_Probe(t *testing.T) {
	s := newTestStore(t)

	statuses := s.Health()
	if len(statuses) != len(Categories()) {
		t.Fatalf("Expected %d statuses, got %d", len(Categories()), len(statuses))
	}
	for _, st := range statuses {
		if !st.Exists {
			t.Errorf("Directory for %s should exist", st.Category)
		}
		if !st.Writable {
			t.Errorf("Directory for %s should be writable", st.Category)
		}
	}
}

func TestHealth_MissingDir(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "never-created"))

	for _, st := range s.Health() {
		if st.Exists || st.Writable {
			t.Errorf("Missing directory for %s must report exists=false writable=false", st.Category)
		}
	}
}

func TestFileExtension_Fallback(t *testing.T) {
	// Sane original extension wins
	fh := makeFileHeader(t, "f", "photo.JPEG", pngBytes(100))
	if got := fileExtension(fh); got != "jpeg" {
		t.Errorf("Expected jpeg, got %s", got)
	}

	// Missing extension falls back to sniffed content type
	fh = makeFileHeader(t, "f", "photo", pngBytes(100))
	if got := fileExtension(fh); got != "png" {
		t.Errorf("Expected png, got %s", got)
	}
}
