package models

import "fmt"

// AppError is the application's error type for failures that cross the
// repository boundary.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError reports a missing row. Handlers never expose this to the
// browser directly; protected routes collapse it into the same redirect as
// an ownership mismatch.
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

// NewDuplicateUsernameError reports a registration-time username collision.
func NewDuplicateUsernameError(username string) *AppError {
	return &AppError{
		Code:    "DUPLICATE_USERNAME",
		Message: fmt.Sprintf("username %q is already taken", username),
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "internal error",
		Err:     err,
	}
}
