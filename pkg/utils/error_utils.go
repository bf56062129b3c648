package utils

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
)

// APIError is the body of every error response.
type APIError struct {
	StatusCode int         `json:"-"`
	Code       string      `json:"code,omitempty"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError instance
func NewAPIError(statusCode int, code string, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Code:       code,
		Message:    message,
		Details:    details,
	}
}

// RespondWithError sends the error as JSON and aborts the handler chain.
// The message sits at the top level so clients can show it verbatim.
func RespondWithError(c *gin.Context, err *APIError) {
	c.AbortWithStatusJSON(err.StatusCode, err)
}

// RespondMessage writes a {"message": ...} body.
func RespondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

const (
	ErrCodeBadRequest          = "BAD_REQUEST"
	ErrCodeUnauthorized        = "UNAUTHORIZED"
	ErrCodeForbidden           = "FORBIDDEN"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeConflict            = "CONFLICT"
	ErrCodeInternalServerError = "INTERNAL_SERVER_ERROR"
	ErrCodeServiceUnavailable  = "SERVICE_UNAVAILABLE"
	ErrCodeValidationFailed    = "VALIDATION_FAILED"
)

// GenericErrorMessage is what clients see for unclassified failures.
const GenericErrorMessage = "Something went wrong. Please try again."

// RespondInternalError logs err and replies with a generic 500.
func RespondInternalError(c *gin.Context, err error, logMessage string) {
	LogError(err, logMessage)
	_ = c.Error(err)
	RespondWithError(c, NewAPIError(http.StatusInternalServerError, ErrCodeInternalServerError, GenericErrorMessage, nil))
}

// RespondBadRequest replies 400 with a client-facing message.
func RespondBadRequest(c *gin.Context, message string) {
	RespondWithError(c, NewAPIError(http.StatusBadRequest, ErrCodeBadRequest, message, nil))
}

// RespondNotFound replies 404 with a client-facing message.
func RespondNotFound(c *gin.Context, message string) {
	RespondWithError(c, NewAPIError(http.StatusNotFound, ErrCodeNotFound, message, nil))
}

// RespondValidationFailed turns a binding error into a 400 with per-field messages.
func RespondValidationFailed(c *gin.Context, err error) {
	details := ValidationMessages(err)
	message := "Input validation failed"
	if len(details) == 0 {
		RespondWithError(c, NewAPIError(http.StatusBadRequest, ErrCodeValidationFailed, message, err.Error()))
		return
	}
	RespondWithError(c, NewAPIError(http.StatusBadRequest, ErrCodeValidationFailed, message, details))
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)

// IsValidEmail checks if a string is a valid email format.
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(strings.ToLower(email))
}

// IsValidPasswordLength checks if password meets minimum length requirement.
func IsValidPasswordLength(password string, minLength int) bool {
	return len(password) >= minLength
}
