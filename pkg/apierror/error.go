package apierror

import (
	"encoding/json"
	"net/http"
)

// Error codes used by the catalog service and handlers.
const (
	CodeBadRequest    = "BAD_REQUEST"
	CodeValidation    = "VALIDATION_ERROR"
	CodeDuplicateSKU  = "DUPLICATE_SKU"
	CodeNotFound      = "NOT_FOUND"
	CodeInternalError = "INTERNAL_ERROR"
)

// Error represents a structured API error response.
type Error struct {
	StatusCode int          `json:"-"`
	Code       string       `json:"-"`
	Message    string       `json:"error"`
	Details    []FieldError `json:"details,omitempty"`
}

// FieldError represents a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// WithDetails adds field-level error details.
func (e *Error) WithDetails(details ...FieldError) *Error {
	e.Details = details
	return e
}

// ToJSON converts the error to its wire form: {"error": <message>} with an
// optional details array for validation failures.
func (e *Error) ToJSON() []byte {
	data, _ := json.Marshal(e)
	return data
}

// BadRequest creates a 400 Bad Request error.
func BadRequest(message string) *Error {
	return &Error{
		StatusCode: http.StatusBadRequest,
		Code:       CodeBadRequest,
		Message:    message,
	}
}

// ValidationError creates a 400 error with field-level details.
func ValidationError(message string, details ...FieldError) *Error {
	return &Error{
		StatusCode: http.StatusBadRequest,
		Code:       CodeValidation,
		Message:    message,
		Details:    details,
	}
}

// DuplicateSKU creates the 400 error returned when an item draft carries a
// SKU that already belongs to a different item.
func DuplicateSKU() *Error {
	return &Error{
		StatusCode: http.StatusBadRequest,
		Code:       CodeDuplicateSKU,
		Message:    "SKU already exists",
	}
}

// NotFound creates a 404 Not Found error.
func NotFound(message string) *Error {
	if message == "" {
		message = "Resource not found"
	}
	return &Error{
		StatusCode: http.StatusNotFound,
		Code:       CodeNotFound,
		Message:    message,
	}
}

// InternalError creates a 500 Internal Server Error.
func InternalError(message string) *Error {
	if message == "" {
		message = "An unexpected error occurred"
	}
	return &Error{
		StatusCode: http.StatusInternalServerError,
		Code:       CodeInternalError,
		Message:    message,
	}
}

// Is reports whether err is an *Error carrying the given code.
func Is(err error, code string) bool {
	apiErr, ok := err.(*Error)
	return ok && apiErr.Code == code
}
