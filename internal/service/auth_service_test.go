package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/rasd-app/rasd-api/internal/models"
	"github.com/rasd-app/rasd-api/pkg/config"
)

func signTestToken(t *testing.T, secret string, method jwt.SigningMethod, claims models.JWTClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(method, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestAuthServiceValidateToken(t *testing.T) {
	svc := NewAuthService(config.JWTConfig{Secret: "unit-secret"})

	raw := signTestToken(t, "unit-secret", jwt.SigningMethodHS256, models.JWTClaims{
		UserID: "user-1",
		Role:   models.RoleTeacher,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := svc.ValidateToken(raw)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, models.RoleTeacher, claims.Role)
}

func TestAuthServiceValidateTokenWrongSecret(t *testing.T) {
	svc := NewAuthService(config.JWTConfig{Secret: "unit-secret"})

	raw := signTestToken(t, "other-secret", jwt.SigningMethodHS256, models.JWTClaims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err := svc.ValidateToken(raw)
	require.Error(t, err)
}

func TestAuthServiceValidateTokenExpired(t *testing.T) {
	svc := NewAuthService(config.JWTConfig{Secret: "unit-secret"})

	raw := signTestToken(t, "unit-secret", jwt.SigningMethodHS256, models.JWTClaims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})

	_, err := svc.ValidateToken(raw)
	require.Error(t, err)
}

func TestAuthServiceValidateTokenRejectsUnexpectedMethod(t *testing.T) {
	svc := NewAuthService(config.JWTConfig{Secret: "unit-secret"})

	raw := signTestToken(t, "unit-secret", jwt.SigningMethodHS512, models.JWTClaims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err := svc.ValidateToken(raw)
	require.Error(t, err)
}
