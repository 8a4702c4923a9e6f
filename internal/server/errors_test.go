package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{&ErrEmailAlreadyExists{Email: "a@b.com"}, http.StatusConflict},
		{&ErrDuplicateApplication{}, http.StatusConflict},
		{&ErrInvalidCredentials{}, http.StatusUnauthorized},
		{&ErrForbidden{}, http.StatusForbidden},
		{&ErrUserNotFound{UserID: uuid.New()}, http.StatusNotFound},
		{&ErrJobNotFound{JobID: uuid.New()}, http.StatusNotFound},
		{&ErrApplicationNotFound{ApplicationID: uuid.New()}, http.StatusNotFound},
		{&ErrValidation{Field: "role", Message: "bad"}, http.StatusBadRequest},
		{&ErrInvalidStatus{Status: "Ghosted"}, http.StatusBadRequest},
		{&ErrProfileIncomplete{}, http.StatusBadRequest},
		{&ErrJobClosed{JobID: uuid.New()}, http.StatusBadRequest},
		{fmt.Errorf("database on fire"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, HTTPStatus(tc.err), "error: %v", tc.err)
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Contains(t, (&ErrDuplicateApplication{}).Error(), "already applied")
	assert.Contains(t, (&ErrProfileIncomplete{}).Error(), "profile")
	assert.Contains(t, (&ErrInvalidStatus{Status: "Ghosted"}).Error(), "Ghosted")
}
