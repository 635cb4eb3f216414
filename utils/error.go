package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorKind classifies an AppError and decides its HTTP status.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindExpired
	KindInvalidCode
	KindForbidden
	KindUnauthorized
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "ValidationError"
	case KindConflict:
		return "ConflictError"
	case KindNotFound:
		return "NotFoundError"
	case KindExpired:
		return "ExpiredError"
	case KindInvalidCode:
		return "InvalidCodeError"
	case KindForbidden:
		return "ForbiddenError"
	case KindUnauthorized:
		return "UnauthorizedError"
	default:
		return "InternalError"
	}
}

// AppError is a business outcome with a stable, client-safe message.
// Err carries the underlying cause and is never sent to clients.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// StatusCode maps the error kind onto an HTTP status.
func (e *AppError) StatusCode() int {
	switch e.Kind {
	case KindValidation, KindExpired, KindInvalidCode:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func NewValidationError(msg string) *AppError  { return &AppError{Kind: KindValidation, Message: msg} }
func NewConflictError(msg string) *AppError    { return &AppError{Kind: KindConflict, Message: msg} }
func NewNotFoundError(msg string) *AppError    { return &AppError{Kind: KindNotFound, Message: msg} }
func NewExpiredError(msg string) *AppError     { return &AppError{Kind: KindExpired, Message: msg} }
func NewInvalidCodeError(msg string) *AppError { return &AppError{Kind: KindInvalidCode, Message: msg} }
func NewForbiddenError(msg string) *AppError   { return &AppError{Kind: KindForbidden, Message: msg} }

func NewUnauthorizedError(msg string) *AppError {
	return &AppError{Kind: KindUnauthorized, Message: msg}
}

func NewInternalError(msg string, err error) *AppError {
	return &AppError{Kind: KindInternal, Message: msg, Err: err}
}

// AsAppError returns err as an *AppError, wrapping anything else as internal.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternalError("Internal Server error", err)
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// Response is the JSON envelope returned by every endpoint.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err), zap.String("path", c.Request.URL.Path))
				c.AbortWithStatusJSON(http.StatusInternalServerError, Response{
					Success: false,
					Message: "Internal Server error",
					Error:   "An unexpected error occurred. Please try again later.",
				})
			}
		}()
		c.Next()
	}
}

// JSONError sends err in the standard envelope. Internal causes are logged, not returned.
func JSONError(c *gin.Context, err error) {
	appErr := AsAppError(err)
	status := appErr.StatusCode()
	if status >= http.StatusInternalServerError {
		GetLogger().Error(appErr.Message, zap.Error(appErr.Err), zap.String("path", c.Request.URL.Path))
	} else {
		GetLogger().Debug(appErr.Message, zap.String("kind", appErr.Kind.String()), zap.String("path", c.Request.URL.Path))
	}
	c.JSON(status, Response{Success: false, Message: appErr.Message, Error: appErr.Kind.String()})
}

// JSONSuccess sends data in the standard envelope.
func JSONSuccess(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Response{Success: true, Message: message, Data: data})
}
