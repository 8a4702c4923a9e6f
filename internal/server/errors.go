// Package server provides the HTTP REST API for the job board.
package server

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrUserNotFound indicates user was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrJobNotFound indicates a job listing was not found
type ErrJobNotFound struct {
	JobID uuid.UUID
}

func (e *ErrJobNotFound) Error() string {
	return fmt.Sprintf("job not found: %s", e.JobID)
}

// ErrJobClosed indicates the job listing no longer accepts applications
type ErrJobClosed struct {
	JobID uuid.UUID
}

func (e *ErrJobClosed) Error() string {
	return fmt.Sprintf("job is closed: %s", e.JobID)
}

// ErrApplicationNotFound indicates an application was not found
type ErrApplicationNotFound struct {
	ApplicationID uuid.UUID
}

func (e *ErrApplicationNotFound) Error() string {
	return fmt.Sprintf("application not found: %s", e.ApplicationID)
}

// ErrDuplicateApplication indicates the candidate already applied to this job
type ErrDuplicateApplication struct{}

func (e *ErrDuplicateApplication) Error() string {
	return "you have already applied to this job"
}

// ErrProfileIncomplete indicates the candidate profile must be completed before applying
type ErrProfileIncomplete struct{}

func (e *ErrProfileIncomplete) Error() string {
	return "complete your profile before applying"
}

// ErrInvalidStatus indicates an unrecognized application status value
type ErrInvalidStatus struct {
	Status string
}

func (e *ErrInvalidStatus) Error() string {
	return fmt.Sprintf("invalid application status: %s", e.Status)
}

// ErrForbidden indicates the caller's role does not permit the operation
type ErrForbidden struct{}

func (e *ErrForbidden) Error() string {
	return "operation not permitted for this role"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrEmailAlreadyExists, *ErrDuplicateApplication:
		return http.StatusConflict
	case *ErrInvalidCredentials:
		return http.StatusUnauthorized
	case *ErrForbidden:
		return http.StatusForbidden
	case *ErrUserNotFound, *ErrJobNotFound, *ErrApplicationNotFound:
		return http.StatusNotFound
	case *ErrValidation, *ErrInvalidStatus, *ErrProfileIncomplete, *ErrJobClosed:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
