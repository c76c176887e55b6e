package tests

import (
	"net/http"
	"testing"
	"time"

	"campuspulse/server/models/event"
	"campuspulse/server/models/rbac"

	"github.com/labstack/echo/v4"
)

func setupEventHandler() (*event.Handler, *event.MemoryRepository) {
	repo := event.NewMemoryRepository()
	return event.NewHandler(repo), repo
}

func eventRequestBody(t *testing.T) map[string]interface{} {
	t.Helper()
	return map[string]interface{}{
		"title":       "Robotics Workshop",
		"description": "Hands-on robotics session",
		"category":    "workshop",
		"date":        time.Now().Add(72 * time.Hour).Format(time.RFC3339),
		"startTime":   "14:00",
		"endTime":     "17:00",
		"venue":       "Lab 2",
	}
}

func TestCreateEvent_FacultyStartsPending(t *testing.T) {
	handler, repo := setupEventHandler()

	e := echo.New()
	c, rec := newTestContext(e, http.MethodPost, "/api/events", jsonBody(t, eventRequestBody(t)), echo.MIMEApplicationJSON)
	c.Set("user", claimsFor(10, "prof@campus.edu", rbac.RoleFaculty))

	if err := handler.CreateEvent(c); err != nil {
		t.Fatalf("CreateEvent returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	created, exists := repo.GetEventByID(1)
	if !exists {
		t.Fatal("Expected event to be stored")
	}
	if created.Status != event.StatusPending {
		t.Errorf("Faculty-created events start pending, got %s", created.Status)
	}
	if created.OrganizerID != 10 {
		t.Errorf("Organizer must come from the token, got %d", created.OrganizerID)
	}
}

func TestCreateEvent_AdminSkipsApproval(t *testing.T) {
	handler, repo := setupEventHandler()

	e := echo.New()
	c, rec := newTestContext(e, http.MethodPost, "/api/events", jsonBody(t, eventRequestBody(t)), echo.MIMEApplicationJSON)
	c.Set("user", claimsFor(1, "admin@campus.edu", rbac.RoleAdmin))

	if err := handler.CreateEvent(c); err != nil {
		t.Fatalf("CreateEvent returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status %d, got %d", http.StatusCreated, rec.Code)
	}

	created, _ := repo.GetEventByID(1)
	if created.Status != event.StatusApproved {
		t.Errorf("Admin-created events are approved immediately, got %s", created.Status)
	}
}

func TestCreateEvent_UnknownCategory(t *testing.T) {
	handler, _ := setupEventHandler()

	body := eventRequestBody(t)
	body["category"] = "party"

	e := echo.New()
	c, rec := newTestContext(e, http.MethodPost, "/api/events", jsonBody(t, body), echo.MIMEApplicationJSON)
	c.Set("user", claimsFor(10, "prof@campus.edu", rbac.RoleFaculty))

	if err := handler.CreateEvent(c); err != nil {
		t.Fatalf("CreateEvent returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestUpdateEvent_NonOwnerForbidden(t *testing.T) {
	handler, repo := setupEventHandler()
	seedEvent(t, repo, 10, event.StatusApproved)

	e := echo.New()
	c, rec := newTestContext(e, http.MethodPut, "/api/events/1", jsonBody(t, eventRequestBody(t)), echo.MIMEApplicationJSON)
	c.SetParamNames("id")
	c.SetParamValues("1")
	c.Set("user", claimsFor(11, "other@campus.edu", rbac.RoleEventManager))

	if err := handler.UpdateEvent(c); err != nil {
		t.Fatalf("UpdateEvent returned error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected status %d, got %d", http.StatusForbidden, rec.Code)
	}
}

func TestUpdateEvent_AdminOverride(t *testing.T) {
	handler, repo := setupEventHandler()
	seedEvent(t, repo, 10, event.StatusApproved)

	e := echo.New()
	c, rec := newTestContext(e, http.MethodPut, "/api/events/1", jsonBody(t, eventRequestBody(t)), echo.MIMEApplicationJSON)
	c.SetParamNames("id")
	c.SetParamValues("1")
	c.Set("user", claimsFor(1, "admin@campus.edu", rbac.RoleAdmin))

	if err := handler.UpdateEvent(c); err != nil {
		t.Fatalf("UpdateEvent returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
}

func TestDeleteEvent_Owner(t *testing.T) {
	handler, repo := setupEventHandler()
	seedEvent(t, repo, 10, event.StatusApproved)

	e := echo.New()
	c, rec := newTestContext(e, http.MethodDelete, "/api/events/1", nil, "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	c.Set("user", claimsFor(10, "prof@campus.edu", rbac.RoleFaculty))

	if err := handler.DeleteEvent(c); err != nil {
		t.Fatalf("DeleteEvent returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, rec.Code)
	}

	if _, exists := repo.GetEventByID(1); exists {
		t.Error("Expected event to be removed")
	}
}

func TestGetEvent_HidesUnapprovedFromOthers(t *testing.T) {
	handler, repo := setupEventHandler()
	seedEvent(t, repo, 10, event.StatusPending)

	e := echo.New()
	c, rec := newTestContext(e, http.MethodGet, "/api/events/1", nil, "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	c.Set("user", claimsFor(99, "student@campus.edu", rbac.RoleStudent))

	if err := handler.GetEvent(c); err != nil {
		t.Fatalf("GetEvent returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Pending events must 404 for other users, got %d", rec.Code)
	}
}

func TestListEvents_StudentSeesApprovedAndOwn(t *testing.T) {
	handler, repo := setupEventHandler()
	seedEvent(t, repo, 10, event.StatusApproved)
	seedEvent(t, repo, 10, event.StatusPending)
	seedEvent(t, repo, 99, event.StatusPending) // the caller's own draft

	e := echo.New()
	c, rec := newTestContext(e, http.MethodGet, "/api/events", nil, "")
	c.Set("user", claimsFor(99, "student@campus.edu", rbac.RoleStudent))

	if err := handler.ListEvents(c); err != nil {
		t.Fatalf("ListEvents returned error: %v", err)
	}

	resp := decodeBody(t, rec)
	data := resp["data"].(map[string]interface{})
	if int(data["total"].(float64)) != 2 {
		t.Errorf("Expected 2 visible events, got %v", data["total"])
	}
}

func TestListEvents_AdminSeesEverything(t *testing.T) {
	handler, repo := setupEventHandler()
	seedEvent(t, repo, 10, event.StatusApproved)
	seedEvent(t, repo, 10, event.StatusPending)
	seedEvent(t, repo, 11, event.StatusRejected)

	e := echo.New()
	c, rec := newTestContext(e, http.MethodGet, "/api/events", nil, "")
	c.Set("user", claimsFor(1, "admin@campus.edu", rbac.RoleAdmin))

	if err := handler.ListEvents(c); err != nil {
		t.Fatalf("ListEvents returned error: %v", err)
	}

	resp := decodeBody(t, rec)
	data := resp["data"].(map[string]interface{})
	if int(data["total"].(float64)) != 3 {
		t.Errorf("Expected 3 events for admin, got %v", data["total"])
	}
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	handler, repo := setupEventHandler()
	seedEvent(t, repo, 10, event.StatusPending)

	e := echo.New()
	c, rec := newTestContext(e, http.MethodPut, "/api/events/1/status",
		jsonBody(t, map[string]string{"status": "archived"}), echo.MIMEApplicationJSON)
	c.SetParamNames("id")
	c.SetParamValues("1")
	c.Set("user", claimsFor(1, "admin@campus.edu", rbac.RoleAdmin))

	if err := handler.UpdateStatus(c); err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestUpdateStatus_ApproveFlow(t *testing.T) {
	handler, repo := setupEventHandler()
	seedEvent(t, repo, 10, event.StatusPending)

	e := echo.New()
	c, rec := newTestContext(e, http.MethodPut, "/api/events/1/status",
		jsonBody(t, map[string]string{"status": "approved"}), echo.MIMEApplicationJSON)
	c.SetParamNames("id")
	c.SetParamValues("1")
	c.Set("user", claimsFor(1, "admin@campus.edu", rbac.RoleAdmin))

	if err := handler.UpdateStatus(c); err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, rec.Code)
	}

	updated, _ := repo.GetEventByID(1)
	if updated.Status != event.StatusApproved {
		t.Errorf("Expected approved, got %s", updated.Status)
	}
}
