package rlerror

import "net/http"

type (
	// An RLError represents the error format that can be rendered by the rolelist server.
	RLError struct {
		HTTPCode   int `json:"-"`
		FieldError err `json:"error"`
	}

	err struct {
		Tag     string `json:"tag,omitempty"`
		Message string `json:"message"`
	}
)

// StatusCode returns the HTTP status code.
func StatusCode(err error) int {
	if rlerr, ok := err.(*RLError); ok && rlerr.HTTPCode != 0 {
		return rlerr.HTTPCode
	}
	return http.StatusInternalServerError
}

// New returns a new RLError with the given message.
func New(message string) *RLError {
	return &RLError{FieldError: err{Message: message}}
}

// NewWithTagCode returns a new RLError with the given code, tag and message.
func NewWithTagCode(code int, tag, message string) *RLError {
	return &RLError{HTTPCode: code, FieldError: err{Tag: tag, Message: message}}
}

// NewValidation returns a new RLError for a missing or invalid required field.
func NewValidation(message string) *RLError {
	return NewWithTagCode(http.StatusBadRequest, "validation", message)
}

// NewNotFound returns a new RLError for a reference to a record that does not exist.
func NewNotFound(message string) *RLError {
	return NewWithTagCode(http.StatusNotFound, "not-found", message)
}

// Error implements error interface.
func (e *RLError) Error() string {
	return e.FieldError.Message
}
