package event

import (
	"strconv"
	"time"

	"campuspulse/server/models/auth"
	"campuspulse/server/models/rbac"
	"campuspulse/server/response"
	"campuspulse/server/validation"

	"github.com/labstack/echo/v4"
)

// Handler serves the event CRUD routes. Every mutation re-checks the
// caller's capabilities server-side; the signed role claim is the only
// trusted source of role information.
type Handler struct {
	eventRepo Repository
}

func NewHandler(eventRepo Repository) *Handler {
	return &Handler{eventRepo: eventRepo}
}

// EventRequest is the create/update request body
type EventRequest struct {
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	Category             string     `json:"category"`
	Date                 time.Time  `json:"date"`
	StartTime            string     `json:"startTime"`
	EndTime              string     `json:"endTime"`
	Venue                string     `json:"venue"`
	MaxParticipants      int        `json:"maxParticipants"`
	RegistrationDeadline *time.Time `json:"registrationDeadline"`
	ImageURL             string     `json:"imageUrl"`
	GalleryURLs          []string   `json:"galleryUrls"`
}

// ListEvents handles GET /api/events. Admins see everything; other callers
// see approved events plus their own.
func (h *Handler) ListEvents(c echo.Context) error {
	claims := c.Get("user").(*auth.TokenClaims)

	filter := Filter{
		Status:   Status(c.QueryParam("status")),
		Category: c.QueryParam("category"),
	}
	if filter.Status != "" && !ValidStatus(filter.Status) {
		return response.ValidationError(c, "Unknown event status")
	}

	events, err := h.eventRepo.ListEvents(filter)
	if err != nil {
		return response.InternalError(c, response.ErrCodeInternalServerError, "Failed to list events", err)
	}

	if !rbac.HasCapability(claims.Role, rbac.CapAccessAllContent) {
		visible := events[:0]
		for _, e := range events {
			if e.Status == StatusApproved || e.OrganizerID == claims.UserID {
				visible = append(visible, e)
			}
		}
		events = visible
	}

	return response.Success(c, echo.Map{
		"events": events,
		"total":  len(events),
	})
}

// GetEvent handles GET /api/events/:id
func (h *Handler) GetEvent(c echo.Context) error {
	claims := c.Get("user").(*auth.TokenClaims)

	id, err := parseID(c)
	if err != nil {
		return response.ValidationError(c, "Invalid event id")
	}

	e, exists := h.eventRepo.GetEventByID(id)
	if !exists {
		return response.NotFound(c, response.ErrCodeNotFound, "Event not found")
	}

	if e.Status != StatusApproved &&
		e.OrganizerID != claims.UserID &&
		!rbac.HasCapability(claims.Role, rbac.CapAccessAllContent) {
		return response.NotFound(c, response.ErrCodeNotFound, "Event not found")
	}

	return response.Success(c, e)
}

// CreateEvent handles POST /api/events. Route is gated on create_events;
// validation failures are reported with the violated rule.
func (h *Handler) CreateEvent(c echo.Context) error {
	claims := c.Get("user").(*auth.TokenClaims)

	var req EventRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, response.ErrCodeBadRequest, "Invalid request body")
	}

	if ok, msg := validation.ValidateEventFields(req.Title, req.Description, req.Venue, req.StartTime, req.EndTime, req.Date); !ok {
		return response.ValidationError(c, msg)
	}
	if !Categories[req.Category] {
		return response.ValidationError(c, "Unknown event category")
	}
	if req.MaxParticipants < 0 {
		return response.ValidationError(c, "Maximum participants must be at least 1")
	}

	// Admin-created events skip the approval queue
	status := StatusPending
	if rbac.HasCapability(claims.Role, rbac.CapApproveEvents) {
		status = StatusApproved
	}

	e, err := h.eventRepo.CreateEvent(&Event{
		Title:                req.Title,
		Description:          req.Description,
		OrganizerID:          claims.UserID,
		Category:             req.Category,
		Date:                 req.Date,
		StartTime:            req.StartTime,
		EndTime:              req.EndTime,
		Venue:                req.Venue,
		MaxParticipants:      req.MaxParticipants,
		RegistrationDeadline: req.RegistrationDeadline,
		Status:               status,
		ImageURL:             req.ImageURL,
		GalleryURLs:          req.GalleryURLs,
	})
	if err != nil {
		return response.InternalError(c, response.ErrCodeInternalServerError, "Failed to create event", err)
	}

	return response.Created(c, "Event created successfully", e)
}

// UpdateEvent handles PUT /api/events/:id. Allowed for the owner or an
// admin override, compared by user id.
func (h *Handler) UpdateEvent(c echo.Context) error {
	claims := c.Get("user").(*auth.TokenClaims)

	id, err := parseID(c)
	if err != nil {
		return response.ValidationError(c, "Invalid event id")
	}

	existing, exists := h.eventRepo.GetEventByID(id)
	if !exists {
		return response.NotFound(c, response.ErrCodeNotFound, "Event not found")
	}

	if !rbac.CanEditEvent(claims.Role, claims.UserID, existing.OrganizerID) {
		return response.Forbidden(c, response.ErrCodeForbidden, "You can only edit your own events")
	}

	var req EventRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, response.ErrCodeBadRequest, "Invalid request body")
	}

	if ok, msg := validation.ValidateEventFields(req.Title, req.Description, req.Venue, req.StartTime, req.EndTime, req.Date); !ok {
		return response.ValidationError(c, msg)
	}
	if !Categories[req.Category] {
		return response.ValidationError(c, "Unknown event category")
	}

	existing.Title = req.Title
	existing.Description = req.Description
	existing.Category = req.Category
	existing.Date = req.Date
	existing.StartTime = req.StartTime
	existing.EndTime = req.EndTime
	existing.Venue = req.Venue
	existing.MaxParticipants = req.MaxParticipants
	existing.RegistrationDeadline = req.RegistrationDeadline
	existing.ImageURL = req.ImageURL
	existing.GalleryURLs = req.GalleryURLs

	if err := h.eventRepo.UpdateEvent(existing); err != nil {
		return response.InternalError(c, response.ErrCodeInternalServerError, "Failed to update event", err)
	}

	return response.SuccessWithMessage(c, "Event updated successfully", existing)
}

// DeleteEvent handles DELETE /api/events/:id. Same rule as edit: admin
// override or exact owner match.
func (h *Handler) DeleteEvent(c echo.Context) error {
	claims := c.Get("user").(*auth.TokenClaims)

	id, err := parseID(c)
	if err != nil {
		return response.ValidationError(c, "Invalid event id")
	}

	existing, exists := h.eventRepo.GetEventByID(id)
	if !exists {
		return response.NotFound(c, response.ErrCodeNotFound, "Event not found")
	}

	if !rbac.CanDeleteEvent(claims.Role, claims.UserID, existing.OrganizerID) {
		return response.Forbidden(c, response.ErrCodeForbidden, "You can only delete your own events")
	}

	if err := h.eventRepo.DeleteEvent(id); err != nil {
		return response.InternalError(c, response.ErrCodeInternalServerError, "Failed to delete event", err)
	}

	return response.SuccessWithMessage(c, "Event deleted successfully", nil)
}

// UpdateStatus handles PUT /api/events/:id/status (approve_events gated).
func (h *Handler) UpdateStatus(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return response.ValidationError(c, "Invalid event id")
	}

	var req struct {
		Status Status `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, response.ErrCodeBadRequest, "Invalid request body")
	}
	if !ValidStatus(req.Status) {
		return response.ValidationError(c, "Unknown event status")
	}

	if _, exists := h.eventRepo.GetEventByID(id); !exists {
		return response.NotFound(c, response.ErrCodeNotFound, "Event not found")
	}

	if err := h.eventRepo.UpdateStatus(id, req.Status); err != nil {
		return response.InternalError(c, response.ErrCodeInternalServerError, "Failed to update event status", err)
	}

	return response.SuccessWithMessage(c, "Event status updated", echo.Map{
		"id":     id,
		"status": req.Status,
	})
}

func parseID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
