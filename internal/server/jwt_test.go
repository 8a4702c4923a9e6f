package server

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-board/internal/config"
)

func testJWTService(secret string) *JWTService {
	return NewJWTService(&config.JWTConfig{Secret: secret, ExpirationHours: 1})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := testJWTService("test-secret-key-for-tests")
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, "HR")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	identity, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, identity.UserID)
	assert.Equal(t, "HR", identity.Role)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := testJWTService("secret-one-for-signing").GenerateToken(uuid.New(), "CANDIDATE")
	require.NoError(t, err)

	_, err = testJWTService("secret-two-for-checking").ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	svc := testJWTService("test-secret-key-for-tests")

	claims := &Claims{
		UserID: uuid.New(),
		Role:   "CANDIDATE",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret-key-for-tests"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	assert.ErrorContains(t, err, "expired")
}

func TestValidateTokenEmpty(t *testing.T) {
	_, err := testJWTService("test-secret-key-for-tests").ValidateToken("")
	assert.Error(t, err)
}

func TestValidateTokenMalformed(t *testing.T) {
	_, err := testJWTService("test-secret-key-for-tests").ValidateToken("not.a.token")
	assert.Error(t, err)
}
