package service

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rasd-app/rasd-api/internal/models"
	"github.com/rasd-app/rasd-api/pkg/config"
	appErrors "github.com/rasd-app/rasd-api/pkg/errors"
)

// AuthService validates access tokens issued by the external identity
// provider. Token issuance, refresh and password flows live outside this
// service entirely.
type AuthService struct {
	secret string
}

// NewAuthService constructs the token validator.
func NewAuthService(cfg config.JWTConfig) *AuthService {
	return &AuthService{secret: cfg.Secret}
}

// ValidateToken parses and verifies an access token, returning its claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}

	return claims, nil
}
