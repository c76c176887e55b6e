package tests

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"campuspulse/server/models/event"
	"campuspulse/server/models/rbac"
	"campuspulse/server/models/registration"

	"github.com/labstack/echo/v4"
)

func setupRegistrationHandler() (*registration.Handler, *registration.MemoryRepository, *event.MemoryRepository) {
	regRepo := registration.NewMemoryRepository()
	eventRepo := event.NewMemoryRepository()
	return registration.NewHandler(regRepo, eventRepo), regRepo, eventRepo
}

func registerContext(t *testing.T, e *echo.Echo, eventID string, userID int64) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	c, rec := newTestContext(e, http.MethodPost, "/api/events/"+eventID+"/register", nil, "")
	c.SetParamNames("id")
	c.SetParamValues(eventID)
	c.Set("user", claimsFor(userID, "student@campus.edu", rbac.RoleStudent))
	return c, rec
}

func TestRegister_ApprovedEvent(t *testing.T) {
	handler, regRepo, eventRepo := setupRegistrationHandler()
	seedEvent(t, eventRepo, 10, event.StatusApproved)

	e := echo.New()
	c, rec := registerContext(t, e, "1", 99)

	if err := handler.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	resp := decodeBody(t, rec)
	data := resp["data"].(map[string]interface{})
	if data["ticket_code"] == "" || data["ticket_code"] == nil {
		t.Error("Expected a ticket code in the response")
	}

	if _, exists := regRepo.GetByEventAndUser(1, 99); !exists {
		t.Error("Expected registration to be stored")
	}
}

func TestRegister_PendingEventClosed(t *testing.T) {
	handler, _, eventRepo := setupRegistrationHandler()
	seedEvent(t, eventRepo, 10, event.StatusPending)

	e := echo.New()
	c, rec := registerContext(t, e, "1", 99)

	if err := handler.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Registrations on unapproved events must be rejected, got %d", rec.Code)
	}
}

func TestRegister_Duplicate(t *testing.T) {
	handler, _, eventRepo := setupRegistrationHandler()
	seedEvent(t, eventRepo, 10, event.StatusApproved)

	e := echo.New()
	c, _ := registerContext(t, e, "1", 99)
	if err := handler.Register(c); err != nil {
		t.Fatalf("First Register returned error: %v", err)
	}

	c, rec := registerContext(t, e, "1", 99)
	if err := handler.Register(c); err != nil {
		t.Fatalf("Second Register returned error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("Expected status %d for duplicate registration, got %d", http.StatusConflict, rec.Code)
	}
}

func TestRegister_FullEvent(t *testing.T) {
	handler, _, eventRepo := setupRegistrationHandler()

	_, err := eventRepo.CreateEvent(&event.Event{
		Title:           "Tiny Workshop",
		Description:     "Limited seats",
		OrganizerID:     10,
		Category:        "workshop",
		Date:            time.Now().Add(48 * time.Hour),
		StartTime:       "10:00",
		EndTime:         "12:00",
		Venue:           "Room 1",
		MaxParticipants: 1,
		Status:          event.StatusApproved,
	})
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}

	e := echo.New()

	c, _ := registerContext(t, e, "1", 50)
	if err := handler.Register(c); err != nil {
		t.Fatalf("First Register returned error: %v", err)
	}

	c, rec := registerContext(t, e, "1", 51)
	if err := handler.Register(c); err != nil {
		t.Fatalf("Second Register returned error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("Expected status %d for full event, got %d", http.StatusConflict, rec.Code)
	}
}

func TestRegister_UnknownEvent(t *testing.T) {
	handler, _, _ := setupRegistrationHandler()

	e := echo.New()
	c, rec := registerContext(t, e, "404", 99)

	if err := handler.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestCancel_Roundtrip(t *testing.T) {
	handler, _, eventRepo := setupRegistrationHandler()
	seedEvent(t, eventRepo, 10, event.StatusApproved)

	e := echo.New()
	c, _ := registerContext(t, e, "1", 99)
	if err := handler.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	c, rec := newTestContext(e, http.MethodDelete, "/api/events/1/register", nil, "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	c.Set("user", claimsFor(99, "student@campus.edu", rbac.RoleStudent))

	if err := handler.Cancel(c); err != nil {
		t.Fatalf("Cancel returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, rec.Code)
	}

	// Cancelling again reports not found
	c, rec = newTestContext(e, http.MethodDelete, "/api/events/1/register", nil, "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	c.Set("user", claimsFor(99, "student@campus.edu", rbac.RoleStudent))

	if err := handler.Cancel(c); err != nil {
		t.Fatalf("Cancel returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status %d on second cancel, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestMyRegistrations(t *testing.T) {
	handler, _, eventRepo := setupRegistrationHandler()
	seedEvent(t, eventRepo, 10, event.StatusApproved)
	seedEvent(t, eventRepo, 10, event.StatusApproved)

	e := echo.New()
	for _, id := range []string{"1", "2"} {
		c, _ := registerContext(t, e, id, 99)
		if err := handler.Register(c); err != nil {
			t.Fatalf("Register returned error: %v", err)
		}
	}

	c, rec := newTestContext(e, http.MethodGet, "/api/registrations", nil, "")
	c.Set("user", claimsFor(99, "student@campus.edu", rbac.RoleStudent))

	if err := handler.MyRegistrations(c); err != nil {
		t.Fatalf("MyRegistrations returned error: %v", err)
	}

	resp := decodeBody(t, rec)
	data := resp["data"].(map[string]interface{})
	if int(data["total"].(float64)) != 2 {
		t.Errorf("Expected 2 registrations, got %v", data["total"])
	}
}
