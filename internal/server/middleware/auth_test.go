package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubValidator struct {
	identity *Identity
	err      error
}

func (v *stubValidator) ValidateToken(tokenString string) (*Identity, error) {
	if v.err != nil {
		return nil, v.err
	}
	return v.identity, nil
}

func okHandler(t *testing.T, want *Identity) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := GetIdentity(r)
		require.NoError(t, err)
		assert.Equal(t, want.UserID, identity.UserID)
		assert.Equal(t, want.Role, identity.Role)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthValidToken(t *testing.T) {
	identity := &Identity{UserID: uuid.New(), Role: "CANDIDATE"}
	handler := Auth(&stubValidator{identity: identity})(okHandler(t, identity))

	req := httptest.NewRequest(http.MethodGet, "/my/profile", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthRejections(t *testing.T) {
	cases := []struct {
		name   string
		header string
		err    error
	}{
		{"missing header", "", nil},
		{"not bearer", "Basic abc123", nil},
		{"empty token", "Bearer ", nil},
		{"invalid token", "Bearer bad", fmt.Errorf("invalid token")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := Auth(&stubValidator{identity: &Identity{UserID: uuid.New()}, err: tc.err})(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					t.Fatal("handler should not be reached")
				}))

			req := httptest.NewRequest(http.MethodGet, "/my/profile", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	identity := &Identity{UserID: uuid.New(), Role: "HR"}

	allowed := RequireRole("HR")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "/hr/dashboard", nil)
	req = req.WithContext(WithIdentity(req.Context(), identity))
	rec := httptest.NewRecorder()
	allowed.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	denied := RequireRole("CANDIDATE")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))
	req = httptest.NewRequest(http.MethodGet, "/my/dashboard", nil)
	req = req.WithContext(WithIdentity(req.Context(), identity))
	rec = httptest.NewRecorder()
	denied.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetIdentityMissing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := GetIdentity(req)
	assert.Error(t, err)
}
