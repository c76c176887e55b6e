package registration

import (
	"strconv"
	"time"

	"campuspulse/server/models/auth"
	"campuspulse/server/models/event"
	"campuspulse/server/response"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Handler serves the event registration routes
type Handler struct {
	regRepo   Repository
	eventRepo event.Repository
}

func NewHandler(regRepo Repository, eventRepo event.Repository) *Handler {
	return &Handler{regRepo: regRepo, eventRepo: eventRepo}
}

// Register handles POST /api/events/:id/register. An event accepts
// registrations only while approved, before its deadline, and under
// capacity. The ticket code comes back in the response and nowhere else.
func (h *Handler) Register(c echo.Context) error {
	claims := c.Get("user").(*auth.TokenClaims)

	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.ValidationError(c, "Invalid event id")
	}

	e, exists := h.eventRepo.GetEventByID(eventID)
	if !exists {
		return response.NotFound(c, response.ErrCodeNotFound, "Event not found")
	}

	if !e.RegistrationOpen(time.Now()) {
		return response.BadRequest(c, response.ErrCodeRegistrationClosed, "Registration for this event is closed")
	}

	if e.MaxParticipants > 0 {
		count, err := h.regRepo.CountByEvent(eventID)
		if err != nil {
			return response.InternalError(c, response.ErrCodeInternalServerError, "Failed to check event capacity", err)
		}
		if count >= int64(e.MaxParticipants) {
			return response.Conflict(c, response.ErrCodeEventFull, "Event is full")
		}
	}

	reg, err := h.regRepo.CreateRegistration(&Registration{
		EventID:    eventID,
		UserID:     claims.UserID,
		TicketCode: uuid.NewString(),
	})
	if err != nil {
		if err == ErrAlreadyRegistered {
			return response.Conflict(c, response.ErrCodeAlreadyRegistered, "You are already registered for this event")
		}
		return response.InternalError(c, response.ErrCodeInternalServerError, "Failed to register for event", err)
	}

	return response.Created(c, "Registered for event successfully", reg)
}

// Cancel handles DELETE /api/events/:id/register
func (h *Handler) Cancel(c echo.Context) error {
	claims := c.Get("user").(*auth.TokenClaims)

	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.ValidationError(c, "Invalid event id")
	}

	if err := h.regRepo.DeleteByEventAndUser(eventID, claims.UserID); err != nil {
		if err == ErrRegistrationNotFound {
			return response.NotFound(c, response.ErrCodeNotFound, "You are not registered for this event")
		}
		return response.InternalError(c, response.ErrCodeInternalServerError, "Failed to cancel registration", err)
	}

	return response.SuccessWithMessage(c, "Registration cancelled", nil)
}

// MyRegistrations handles GET /api/registrations
func (h *Handler) MyRegistrations(c echo.Context) error {
	claims := c.Get("user").(*auth.TokenClaims)

	regs, err := h.regRepo.ListByUser(claims.UserID)
	if err != nil {
		return response.InternalError(c, response.ErrCodeInternalServerError, "Failed to list registrations", err)
	}

	return response.Success(c, echo.Map{
		"registrations": regs,
		"total":         len(regs),
	})
}
