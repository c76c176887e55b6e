package response

import (
	"net/http"

	"campuspulse/server/logger"

	"github.com/labstack/echo/v4"
)

// ErrorCode represents application error codes
type ErrorCode string

const (
	// General errors
	ErrCodeBadRequest          ErrorCode = "BAD_REQUEST"
	ErrCodeUnauthorized        ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden           ErrorCode = "FORBIDDEN"
	ErrCodeNotFound            ErrorCode = "NOT_FOUND"
	ErrCodeConflict            ErrorCode = "CONFLICT"
	ErrCodeTooManyRequests     ErrorCode = "TOO_MANY_REQUESTS"
	ErrCodeInternalServerError ErrorCode = "INTERNAL_SERVER_ERROR"
	ErrCodeValidationFailed    ErrorCode = "VALIDATION_FAILED"

	// Auth errors
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
	ErrCodeTokenInvalid       ErrorCode = "TOKEN_INVALID"
	ErrCodeTokenRevoked       ErrorCode = "TOKEN_REVOKED"

	// User errors
	ErrCodeUserExists   ErrorCode = "USER_EXISTS"
	ErrCodeUserNotFound ErrorCode = "USER_NOT_FOUND"

	// Upload errors
	ErrCodeInvalidFileType ErrorCode = "INVALID_FILE_TYPE"
	ErrCodeFileTooLarge    ErrorCode = "FILE_TOO_LARGE"
	ErrCodeTooManyFiles    ErrorCode = "TOO_MANY_FILES"
	ErrCodeNoFileProvided  ErrorCode = "NO_FILE_PROVIDED"
	ErrCodeInvalidCategory ErrorCode = "INVALID_CATEGORY"
	ErrCodeStorageIO       ErrorCode = "STORAGE_IO_ERROR"

	// Event / registration errors
	ErrCodeEventFull          ErrorCode = "EVENT_FULL"
	ErrCodeRegistrationClosed ErrorCode = "REGISTRATION_CLOSED"
	ErrCodeAlreadyRegistered  ErrorCode = "ALREADY_REGISTERED"
)

// Envelope is the uniform JSON body for every API response.
// Clients depend on the success/message/data shape; Code is additive.
type Envelope struct {
	Success bool        `json:"success"`
	Code    ErrorCode   `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// --- Success helpers ---

// Success returns a 200 OK response with data
func Success(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// SuccessWithMessage returns a 200 OK response with message and data
func SuccessWithMessage(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// Created returns a 201 Created response with message and data
func Created(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// --- Error helpers ---

func fail(c echo.Context, status int, code ErrorCode, message string) error {
	return c.JSON(status, Envelope{Success: false, Code: code, Message: message})
}

// BadRequest returns a 400 Bad Request error response
func BadRequest(c echo.Context, code ErrorCode, message string) error {
	logger.Warnf("[%s] Bad Request: %s", code, message)
	return fail(c, http.StatusBadRequest, code, message)
}

// Unauthorized returns a 401 Unauthorized error response
func Unauthorized(c echo.Context, code ErrorCode, message string) error {
	logger.Warnf("[%s] Unauthorized: %s", code, message)
	return fail(c, http.StatusUnauthorized, code, message)
}

// Forbidden returns a 403 Forbidden error response
func Forbidden(c echo.Context, code ErrorCode, message string) error {
	logger.Warnf("[%s] Forbidden: %s", code, message)
	return fail(c, http.StatusForbidden, code, message)
}

// NotFound returns a 404 Not Found error response
func NotFound(c echo.Context, code ErrorCode, message string) error {
	return fail(c, http.StatusNotFound, code, message)
}

// Conflict returns a 409 Conflict error response
func Conflict(c echo.Context, code ErrorCode, message string) error {
	return fail(c, http.StatusConflict, code, message)
}

// TooManyRequests returns a 429 error response with a retry hint
func TooManyRequests(c echo.Context, message string, retryAfterSeconds float64) error {
	return c.JSON(http.StatusTooManyRequests, Envelope{
		Success: false,
		Code:    ErrCodeTooManyRequests,
		Message: message,
		Data:    map[string]float64{"retry_after": retryAfterSeconds},
	})
}

// InternalError returns a 500 Internal Server Error response and logs the cause
func InternalError(c echo.Context, code ErrorCode, message string, err error) error {
	if err != nil {
		logger.ErrorErr(err, message)
	} else {
		logger.Errorf("[%s] Internal Server Error: %s", code, message)
	}
	return fail(c, http.StatusInternalServerError, code, message)
}

// ValidationError returns a 400 Bad Request with the validation message
func ValidationError(c echo.Context, message string) error {
	logger.Warnf("[VALIDATION] %s", message)
	return fail(c, http.StatusBadRequest, ErrCodeValidationFailed, message)
}
