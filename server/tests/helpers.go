package tests

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"
	"time"

	"campuspulse/server/models/auth"
	"campuspulse/server/models/blog"
	"campuspulse/server/models/event"
	"campuspulse/server/models/notification"
	"campuspulse/server/models/rbac"
	"campuspulse/server/models/registration"
	"campuspulse/server/models/user"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// The in-memory repositories double as test mocks
var (
	_ user.Repository         = (*user.MemoryRepository)(nil)
	_ event.Repository        = (*event.MemoryRepository)(nil)
	_ registration.Repository = (*registration.MemoryRepository)(nil)
	_ blog.Repository         = (*blog.MemoryRepository)(nil)
	_ notification.Repository = (*notification.MemoryRepository)(nil)
)

func newTestContext(e *echo.Echo, method, path string, body io.Reader, contentType string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func jsonBody(t *testing.T, v interface{}) *bytes.Buffer {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Failed to marshal body: %v", err)
	}
	return bytes.NewBuffer(data)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response body: %v", err)
	}
	return body
}

func claimsFor(id int64, email string, role rbac.Role) *auth.TokenClaims {
	return &auth.TokenClaims{UserID: id, Email: email, Role: role}
}

// seedUser inserts a user with a bcrypt-hashed password for login tests
func seedUser(t *testing.T, repo user.Repository, email, password string, role rbac.Role) *user.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	u, err := repo.CreateUser(&user.User{
		Email:     email,
		Password:  string(hashed),
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
	})
	if err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}
	return u
}

// seedEvent inserts an event in the given workflow state
func seedEvent(t *testing.T, repo event.Repository, organizerID int64, status event.Status) *event.Event {
	t.Helper()
	e, err := repo.CreateEvent(&event.Event{
		Title:       "Tech Talk",
		Description: "An evening of talks",
		OrganizerID: organizerID,
		Category:    "seminar",
		Date:        time.Now().Add(48 * time.Hour),
		StartTime:   "18:00",
		EndTime:     "20:00",
		Venue:       "Main Auditorium",
		Status:      status,
	})
	if err != nil {
		t.Fatalf("Failed to seed event: %v", err)
	}
	return e
}

// createTestImageContent creates valid PNG image bytes for testing
func createTestImageContent() []byte {
	return []byte{
		0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, // PNG signature
		0x00, 0x00, 0x00, 0x0D, // IHDR chunk length
		0x49, 0x48, 0x44, 0x52, // IHDR chunk type
		0x00, 0x00, 0x00, 0x01, // Width: 1
		0x00, 0x00, 0x00, 0x01, // Height: 1
		0x08, 0x02, // Bit depth: 8, Color type: 2 (RGB)
		0x00, 0x00, 0x00, // Compression, Filter, Interlace
		0x90, 0x77, 0x53, 0xDE, // CRC
		0x00, 0x00, 0x00, 0x0C, // IDAT chunk length
		0x49, 0x44, 0x41, 0x54, // IDAT chunk type
		0x08, 0xD7, 0x63, 0xF8, 0x0F, 0x00, 0x00, 0x01, 0x01, 0x00, 0x05, 0xFE,
		0xD2, 0xB4, 0x54, 0xB0, // CRC
		0x00, 0x00, 0x00, 0x00, // IEND chunk length
		0x49, 0x45, 0x4E, 0x44, // IEND chunk type
		0xAE, 0x42, 0x60, 0x82, // CRC
	}
}

// createMultipartForm builds a multipart body with one or more files under
// the same field name
func createMultipartForm(t *testing.T, fieldName string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, content := range files {
		part, err := writer.CreateFormFile(fieldName, name)
		if err != nil {
			t.Fatalf("CreateFormFile failed: %v", err)
		}
		part.Write(content)
	}
	writer.Close()
	return body, writer.FormDataContentType()
}
