package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/cashflow/internal/domain"
	"github.com/iho/cashflow/internal/infrastructure/auth"
)

func sign(t *testing.T, method jwt.SigningMethod, key any, claims auth.Claims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func validClaims(userID string, expiresIn time.Duration) auth.Claims {
	now := time.Now()
	return auth.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    auth.Issuer,
			IssuedAt:  jwt.NewNumericDate(now.Add(-time.Minute)),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
		},
	}
}

func TestJWTManagerIssueAndVerify(t *testing.T) {
	t.Parallel()

	manager := auth.NewJWTManager("super-secret", time.Minute)

	token, err := manager.Issue("user-123")
	require.NoError(t, err)

	identity, err := manager.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, domain.Identity{UserID: "user-123"}, identity)
}

func TestJWTManagerVerifyErrors(t *testing.T) {
	t.Parallel()

	manager := auth.NewJWTManager("secret", time.Minute)

	wrongIssuer := validClaims("u1", time.Minute)
	wrongIssuer.Issuer = "someone-else"

	noExpiry := validClaims("u1", time.Minute)
	noExpiry.ExpiresAt = nil

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"expired", sign(t, jwt.SigningMethodHS256, []byte("secret"), validClaims("u1", -time.Second)), domain.ErrExpiredToken},
		{"other secret", sign(t, jwt.SigningMethodHS256, []byte("other"), validClaims("u1", time.Minute)), domain.ErrInvalidToken},
		{"wrong issuer", sign(t, jwt.SigningMethodHS256, []byte("secret"), wrongIssuer), domain.ErrInvalidToken},
		{"no expiry", sign(t, jwt.SigningMethodHS256, []byte("secret"), noExpiry), domain.ErrInvalidToken},
		{"no user id", sign(t, jwt.SigningMethodHS256, []byte("secret"), validClaims("", time.Minute)), domain.ErrInvalidToken},
		{"HS512", sign(t, jwt.SigningMethodHS512, []byte("secret"), validClaims("u1", time.Minute)), domain.ErrInvalidToken},
		{"none algorithm", sign(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, validClaims("u1", time.Minute)), domain.ErrInvalidToken},
		{"malformed", "not-a-token", domain.ErrInvalidToken},
		{"empty", "", domain.ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := manager.Verify(tt.token)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}
}
