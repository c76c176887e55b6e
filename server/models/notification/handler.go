package notification

import (
	"strings"

	"campuspulse/server/models/auth"
	"campuspulse/server/response"

	"github.com/labstack/echo/v4"
)

// Handler serves the notification routes
type Handler struct {
	notifRepo Repository
}

func NewHandler(notifRepo Repository) *Handler {
	return &Handler{notifRepo: notifRepo}
}

// ListNotifications handles GET /api/notifications
func (h *Handler) ListNotifications(c echo.Context) error {
	claims := c.Get("user").(*auth.TokenClaims)

	notifications, err := h.notifRepo.ListByRecipient(claims.UserID)
	if err != nil {
		return response.InternalError(c, response.ErrCodeInternalServerError, "Failed to list notifications", err)
	}

	unread, err := h.notifRepo.CountUnread(claims.UserID)
	if err != nil {
		return response.InternalError(c, response.ErrCodeInternalServerError, "Failed to count notifications", err)
	}

	return response.Success(c, echo.Map{
		"notifications": notifications,
		"unread":        unread,
		"total":         len(notifications),
	})
}

// CreateRequest is the body for sending a notification
type CreateRequest struct {
	RecipientID int64  `json:"recipientId"`
	Title       string `json:"title"`
	Message     string `json:"message"`
	Type        Type   `json:"type"`
}

// CreateNotification handles POST /api/notifications. The route is
// gated on moderate_content; senders pick the recipient explicitly.
func (h *Handler) CreateNotification(c echo.Context) error {
	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, response.ErrCodeBadRequest, "Invalid request body")
	}

	if req.RecipientID <= 0 {
		return response.ValidationError(c, "Recipient is required")
	}
	if strings.TrimSpace(req.Title) == "" {
		return response.ValidationError(c, "Title is required")
	}
	if strings.TrimSpace(req.Message) == "" {
		return response.ValidationError(c, "Message is required")
	}
	if req.Type == "" {
		req.Type = TypeInfo
	}
	if !ValidType(req.Type) {
		return response.ValidationError(c, "Unknown notification type")
	}

	n, err := h.notifRepo.CreateNotification(&Notification{
		RecipientID: req.RecipientID,
		Title:       req.Title,
		Message:     req.Message,
		Type:        req.Type,
	})
	if err != nil {
		return response.InternalError(c, response.ErrCodeInternalServerError, "Failed to create notification", err)
	}

	return response.Created(c, "Notification sent", n)
}

// MarkRead handles PUT /api/notifications/:id/read
func (h *Handler) MarkRead(c echo.Context) error {
	claims := c.Get("user").(*auth.TokenClaims)

	id := c.Param("id")
	if id == "" {
		return response.ValidationError(c, "Invalid notification id")
	}

	if err := h.notifRepo.MarkRead(id, claims.UserID); err != nil {
		if err == ErrNotificationNotFound {
			return response.NotFound(c, response.ErrCodeNotFound, "Notification not found")
		}
		return response.InternalError(c, response.ErrCodeInternalServerError, "Failed to mark notification read", err)
	}

	return response.SuccessWithMessage(c, "Notification marked as read", nil)
}

// MarkAllRead handles PUT /api/notifications/read-all
func (h *Handler) MarkAllRead(c echo.Context) error {
	claims := c.Get("user").(*auth.TokenClaims)

	if err := h.notifRepo.MarkAllRead(claims.UserID); err != nil {
		return response.InternalError(c, response.ErrCodeInternalServerError, "Failed to mark notifications read", err)
	}

	return response.SuccessWithMessage(c, "All notifications marked as read", nil)
}
