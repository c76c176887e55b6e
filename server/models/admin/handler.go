package admin

import (
	"strconv"
	"time"

	"campuspulse/server/bredis"
	"campuspulse/server/models/event"
	"campuspulse/server/models/rbac"
	"campuspulse/server/models/registration"
	"campuspulse/server/models/user"
	"campuspulse/server/response"

	"github.com/labstack/echo/v4"
)

const (
	statsCacheKey = "admin:stats"
	statsCacheTTL = 60 * time.Second
)

// Handler serves the admin dashboard routes. Every route in this
// package sits behind the admin_panel gate.
type Handler struct {
	userRepo  user.Repository
	eventRepo event.Repository
	regRepo   registration.Repository
	redis     *bredis.Client
}

func NewHandler(userRepo user.Repository, eventRepo event.Repository, regRepo registration.Repository, redis *bredis.Client) *Handler {
	return &Handler{
		userRepo:  userRepo,
		eventRepo: eventRepo,
		regRepo:   regRepo,
		redis:     redis,
	}
}

// Stats is the dashboard aggregate payload
type Stats struct {
	UsersByRole      map[rbac.Role]int64    `json:"users_by_role"`
	EventsByStatus   map[event.Status]int64 `json:"events_by_status"`
	EventsByCategory map[string]int64       `json:"events_by_category"`
	Registrations    int64                  `json:"registrations"`
	GeneratedAt      time.Time              `json:"generated_at"`
}

// GetStats handles GET /api/admin/stats. Aggregates are cached briefly
// in redis since the dashboard polls them.
func (h *Handler) GetStats(c echo.Context) error {
	if h.redis != nil {
		var cached Stats
		if err := h.redis.Get(statsCacheKey, &cached); err == nil {
			return response.Success(c, cached)
		}
	}

	usersByRole, err := h.userRepo.CountByRole()
	if err != nil {
		return response.InternalError(c, response.ErrCodeInternalServerError, "Failed to aggregate user stats", err)
	}

	eventsByStatus, err := h.eventRepo.CountByStatus()
	if err != nil {
		return response.InternalError(c, response.ErrCodeInternalServerError, "Failed to aggregate event stats", err)
	}

	eventsByCategory, err := h.eventRepo.CountByCategory()
	if err != nil {
		return response.InternalError(c, response.ErrCodeInternalServerError, "Failed to aggregate event stats", err)
	}

	registrations, err := h.regRepo.CountAll()
	if err != nil {
		return response.InternalError(c, response.ErrCodeInternalServerError, "Failed to aggregate registration stats", err)
	}

	stats := Stats{
		UsersByRole:      usersByRole,
		EventsByStatus:   eventsByStatus,
		EventsByCategory: eventsByCategory,
		Registrations:    registrations,
		GeneratedAt:      time.Now(),
	}

	if h.redis != nil {
		_ = h.redis.Set(statsCacheKey, stats, statsCacheTTL)
	}

	return response.Success(c, stats)
}

// ListUsers handles GET /api/admin/users
func (h *Handler) ListUsers(c echo.Context) error {
	users, err := h.userRepo.ListUsers()
	if err != nil {
		return response.InternalError(c, response.ErrCodeInternalServerError, "Failed to list users", err)
	}

	return response.Success(c, echo.Map{
		"users": users,
		"total": len(users),
	})
}

// UpdateUserRole handles PUT /api/admin/users/:id/role
func (h *Handler) UpdateUserRole(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.ValidationError(c, "Invalid user id")
	}

	var req struct {
		Role rbac.Role `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, response.ErrCodeBadRequest, "Invalid request body")
	}
	if !rbac.IsValidRole(req.Role) {
		return response.ValidationError(c, "Unknown role")
	}

	if _, exists := h.userRepo.GetUserByID(id); !exists {
		return response.NotFound(c, response.ErrCodeUserNotFound, "User not found")
	}

	if err := h.userRepo.UpdateRole(id, req.Role); err != nil {
		return response.InternalError(c, response.ErrCodeInternalServerError, "Failed to update user role", err)
	}

	// Role counts changed; drop the cached dashboard aggregate.
	if h.redis != nil {
		_ = h.redis.Delete(statsCacheKey)
	}

	return response.SuccessWithMessage(c, "User role updated", echo.Map{
		"id":   id,
		"role": req.Role,
	})
}
