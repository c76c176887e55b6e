package auth

import (
	"strings"
	"time"

	"campuspulse/server/bredis"
	"campuspulse/server/models/rbac"
	"campuspulse/server/models/user"
	"campuspulse/server/response"
	"campuspulse/server/validation"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// Handler handles authentication-related requests
type Handler struct {
	userRepo   user.Repository
	jwtService *JWTService
	redis      *bredis.Client
}

// NewHandler creates a new Handler
func NewHandler(userRepo user.Repository, jwtService *JWTService, redis *bredis.Client) *Handler {
	return &Handler{
		userRepo:   userRepo,
		jwtService: jwtService,
		redis:      redis,
	}
}

// RegisterRequest represents the request body for registration
type RegisterRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Role       string `json:"role"`
	Department string `json:"department"`
	StudentID  string `json:"studentId"`
	Phone      string `json:"phone"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Rate limit config
const (
	loginRateLimitMax    = 5
	loginRateLimitWindow = 15 * time.Minute
)

// Register handles user registration. Self-registration never grants the
// admin role; promoting an account is an admin-panel action.
func (h *Handler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, response.ErrCodeBadRequest, "Invalid request body")
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if ok, msg := validation.ValidateEmail(req.Email); !ok {
		return response.ValidationError(c, msg)
	}
	if ok, msg := validation.ValidatePassword(req.Password); !ok {
		return response.ValidationError(c, msg)
	}
	if ok, msg := validation.ValidateName(req.FirstName, "First name"); !ok {
		return response.ValidationError(c, msg)
	}
	if ok, msg := validation.ValidateName(req.LastName, "Last name"); !ok {
		return response.ValidationError(c, msg)
	}

	role := rbac.Role(req.Role)
	if role == "" {
		role = rbac.RoleStudent
	}
	if !rbac.IsValidRole(role) || role == rbac.RoleAdmin {
		return response.ValidationError(c, "Invalid role")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return response.InternalError(c, response.ErrCodeInternalServerError, "Failed to process password", err)
	}

	u, err := h.userRepo.CreateUser(&user.User{
		Email:      req.Email,
		Password:   string(hashedPassword),
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Role:       role,
		Department: req.Department,
		StudentID:  req.StudentID,
		Phone:      req.Phone,
	})
	if err != nil {
		if err == user.ErrUserExists {
			return response.Conflict(c, response.ErrCodeUserExists, "Email already registered")
		}
		return response.InternalError(c, response.ErrCodeInternalServerError, "Failed to create user", err)
	}

	token, expiresAt, err := h.jwtService.GenerateToken(u.ID, u.Email, u.Role)
	if err != nil {
		return response.InternalError(c, response.ErrCodeInternalServerError, "Failed to generate token", err)
	}

	return response.Created(c, "User registered successfully", echo.Map{
		"accessToken": token,
		"expiresAt":   expiresAt,
		"user":        userPayload(u),
	})
}

// Login handles user login
func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, response.ErrCodeBadRequest, "Invalid request body")
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if req.Email == "" || req.Password == "" {
		return response.ValidationError(c, "Email and password are required")
	}

	// Per-account rate limit; the IP rate limit is middleware
	if h.redis != nil {
		result := h.redis.CheckRateLimit("login:user:"+req.Email, loginRateLimitMax, loginRateLimitWindow)
		if !result.Allowed {
			return response.TooManyRequests(c, "Too many login attempts for this account.", result.RetryAfter.Seconds())
		}
	}

	u, exists := h.userRepo.GetUserByEmail(req.Email)
	if !exists || !u.IsActive {
		return response.Unauthorized(c, response.ErrCodeInvalidCredentials, "Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		return response.Unauthorized(c, response.ErrCodeInvalidCredentials, "Invalid email or password")
	}

	token, expiresAt, err := h.jwtService.GenerateToken(u.ID, u.Email, u.Role)
	if err != nil {
		return response.InternalError(c, response.ErrCodeInternalServerError, "Failed to generate token", err)
	}

	if h.redis != nil {
		h.redis.ResetRateLimit("login:user:" + req.Email)
	}

	_ = h.userRepo.UpdateLastLogin(u.ID)

	return response.Success(c, echo.Map{
		"accessToken": token,
		"expiresAt":   expiresAt,
		"user":        userPayload(u),
	})
}

// Logout revokes all current tokens for the caller
func (h *Handler) Logout(c echo.Context) error {
	claims := c.Get("user").(*TokenClaims)

	if err := h.jwtService.RevokeUserTokens(claims.UserID); err != nil {
		return response.InternalError(c, response.ErrCodeInternalServerError, "Failed to revoke tokens", err)
	}

	return response.SuccessWithMessage(c, "Logged out successfully", nil)
}

// Me returns the caller's profile and resolved permissions
func (h *Handler) Me(c echo.Context) error {
	claims := c.Get("user").(*TokenClaims)

	u, exists := h.userRepo.GetUserByID(claims.UserID)
	if !exists {
		return response.NotFound(c, response.ErrCodeUserNotFound, "User not found")
	}

	return response.Success(c, echo.Map{
		"user":        userPayload(u),
		"permissions": rbac.Resolve(u.Role).List(),
	})
}

// HealthCheck is the service liveness endpoint
func (h *Handler) HealthCheck(c echo.Context) error {
	return response.SuccessWithMessage(c, "CampusPulse API is healthy", nil)
}

func userPayload(u *user.User) echo.Map {
	return echo.Map{
		"id":         u.ID,
		"email":      u.Email,
		"firstName":  u.FirstName,
		"lastName":   u.LastName,
		"role":       u.Role,
		"department": u.Department,
		"avatarUrl":  u.AvatarURL,
		"createdAt":  u.CreatedAt,
	}
}
