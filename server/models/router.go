package models

import (
	"strings"
	"time"

	"campuspulse/server/env"
	"campuspulse/server/logger"
	custommiddleware "campuspulse/server/middleware"
	"campuspulse/server/models/auth"
	"campuspulse/server/models/rbac"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// SetupRoutes configures and starts the HTTP server
func (m *Models) SetupRoutes() {
	e := echo.New()
	e.HideBanner = true

	// Global middleware - use custom zerolog middleware
	e.Use(custommiddleware.RequestLoggerWithSkipper(func(c echo.Context) bool {
		// Skip logging for served upload files
		return strings.HasPrefix(c.Request().URL.Path, "/uploads/")
	}))
	e.Use(custommiddleware.RecoverWithLogger())
	e.Use(middleware.CORS())

	// Rate limit middleware for auth endpoints
	authRateLimit := custommiddleware.RateLimitByIP(m.bredisClient, 10, time.Minute)

	// Public routes
	e.GET("/health", m.authHandler.HealthCheck)
	e.POST("/login", m.authHandler.Login, authRateLimit)
	if env.E.Features.EnableRegistration {
		e.POST("/register", m.authHandler.Register, authRateLimit)
	}

	// Serve stored upload files
	e.Static("/uploads", env.E.GetUploadRoot())

	// Protected routes (require authentication)
	protected := e.Group("/api")
	protected.Use(custommiddleware.JWTMiddleware(func(token string) (interface{}, error) {
		return m.jwtService.ValidateToken(token)
	}))

	// Auth
	protected.POST("/logout", m.authHandler.Logout)
	protected.GET("/me", m.authHandler.Me)

	// Uploads. Deletion is moderator-only; the health probe stays open so
	// dashboards can poll it with any valid token.
	uploads := protected.Group("/upload")
	uploads.GET("/health", m.uploadHandler.Health)
	uploads.POST("/avatar", m.uploadHandler.UploadAvatar)
	uploads.POST("/event-image", m.uploadHandler.UploadEventImage, auth.RequireCapability(rbac.CapCreateEvents))
	if env.E.Features.EnableGallery {
		uploads.POST("/event-gallery", m.uploadHandler.UploadGallery, auth.RequireCapability(rbac.CapCreateEvents))
	}
	uploads.DELETE("/:category/:filename", m.uploadHandler.DeleteFile, auth.RequireCapability(rbac.CapModerateContent))

	// Events
	protected.GET("/events", m.eventHandler.ListEvents)
	protected.GET("/events/:id", m.eventHandler.GetEvent)
	protected.POST("/events", m.eventHandler.CreateEvent, auth.RequireCapability(rbac.CapCreateEvents))
	protected.PUT("/events/:id", m.eventHandler.UpdateEvent)
	protected.DELETE("/events/:id", m.eventHandler.DeleteEvent)
	protected.PUT("/events/:id/status", m.eventHandler.UpdateStatus, auth.RequireCapability(rbac.CapApproveEvents))

	// Registrations
	protected.POST("/events/:id/register", m.regHandler.Register)
	protected.DELETE("/events/:id/register", m.regHandler.Cancel)
	protected.GET("/registrations", m.regHandler.MyRegistrations)

	// Blogs
	if env.E.Features.EnableBlogs {
		protected.GET("/blogs", m.blogHandler.ListBlogs)
		protected.GET("/blogs/:id", m.blogHandler.GetBlog)
		protected.POST("/blogs", m.blogHandler.CreateBlog, auth.RequireCapability(rbac.CapModerateContent))
		protected.PUT("/blogs/:id", m.blogHandler.UpdateBlog)
		protected.DELETE("/blogs/:id", m.blogHandler.DeleteBlog)
	}

	// Notifications
	protected.GET("/notifications", m.notifHandler.ListNotifications)
	protected.POST("/notifications", m.notifHandler.CreateNotification, auth.RequireCapability(rbac.CapModerateContent))
	protected.PUT("/notifications/read-all", m.notifHandler.MarkAllRead)
	protected.PUT("/notifications/:id/read", m.notifHandler.MarkRead)

	// Admin dashboard
	adminGroup := protected.Group("/admin", auth.RequireAdmin())
	adminGroup.GET("/stats", m.adminHandler.GetStats)
	adminGroup.GET("/users", m.adminHandler.ListUsers)
	adminGroup.PUT("/users/:id/role", m.adminHandler.UpdateUserRole)

	// Start server
	serverAddr := ":" + env.E.GetServerPort()
	logger.Infof("Server starting on %s...", serverAddr)

	go func() {
		if err := e.Start(serverAddr); err != nil {
			logger.Errorf("Server stopped: %v", err)
		}
	}()
}
