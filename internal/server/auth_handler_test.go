package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-board/internal/types"
)

func newTestAuthHandler(t *testing.T, store UserStore) *AuthHandler {
	userService := newTestUserService(t, store)
	return NewAuthHandler(userService, testJWTService("test-secret-key-for-tests"))
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestRegisterEndpoint(t *testing.T) {
	h := newTestAuthHandler(t, newFakeUserStore())

	rec := postJSON(t, h.Register, "/auth/register", registerRequest())
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp types.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, "priya@example.com", resp.User.Email)

	// The issued token must round-trip through validation with the role intact.
	identity, err := testJWTService("test-secret-key-for-tests").ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, identity.UserID)
	assert.Equal(t, "CANDIDATE", identity.Role)
}

func TestRegisterEndpointValidation(t *testing.T) {
	h := newTestAuthHandler(t, newFakeUserStore())

	cases := []struct {
		name string
		req  func() *types.RegisterRequest
	}{
		{"missing email", func() *types.RegisterRequest {
			r := registerRequest()
			r.Email = ""
			return r
		}},
		{"short password", func() *types.RegisterRequest {
			r := registerRequest()
			r.Password = "short"
			return r
		}},
		{"bad role", func() *types.RegisterRequest {
			r := registerRequest()
			r.Role = "SUPERUSER"
			return r
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(t, h.Register, "/auth/register", tc.req())
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestRegisterEndpointDuplicate(t *testing.T) {
	h := newTestAuthHandler(t, newFakeUserStore())

	rec := postJSON(t, h.Register, "/auth/register", registerRequest())
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, h.Register, "/auth/register", registerRequest())
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginEndpoint(t *testing.T) {
	h := newTestAuthHandler(t, newFakeUserStore())

	rec := postJSON(t, h.Register, "/auth/register", registerRequest())
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, h.Login, "/auth/login", &types.LoginRequest{
		Email:    "priya@example.com",
		Password: "super-secret-1",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = postJSON(t, h.Login, "/auth/login", &types.LoginRequest{
		Email:    "priya@example.com",
		Password: "not-the-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginEndpointBadBody(t *testing.T) {
	h := newTestAuthHandler(t, newFakeUserStore())

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	h.Login(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
