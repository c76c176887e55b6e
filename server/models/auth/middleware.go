package auth

import (
	"campuspulse/server/models/rbac"
	"campuspulse/server/response"

	"github.com/labstack/echo/v4"
)

// ClaimsFrom extracts the validated token claims set by the JWT middleware.
func ClaimsFrom(c echo.Context) (*TokenClaims, bool) {
	claims, ok := c.Get("user").(*TokenClaims)
	return claims, ok
}

// RequireCapability gates a route on a capability resolved from the signed
// role claim. The role is never taken from request parameters or body.
func RequireCapability(cap rbac.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return response.Unauthorized(c, response.ErrCodeUnauthorized, "Authentication required")
			}

			if !rbac.HasCapability(claims.Role, cap) {
				return response.Forbidden(c, response.ErrCodeForbidden, "You do not have permission to perform this action")
			}

			return next(c)
		}
	}
}

// RequireAdmin gates a route on the admin role.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return response.Unauthorized(c, response.ErrCodeUnauthorized, "Authentication required")
			}

			if !rbac.CanAccessAdmin(claims.Role) {
				return response.Forbidden(c, response.ErrCodeForbidden, "Admin access required")
			}

			return next(c)
		}
	}
}
