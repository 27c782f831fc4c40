package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/golang-jwt/jwt/v5"
)

const TokenDuration = 24 * time.Hour

// AuthInput is embedded in request structs of admin operations.
type AuthInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token" required:"true"`
}

func (h *AuthHandler) GenerateToken(userID uint, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(TokenDuration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTSecret))
}

// Authorize validates a bearer token from the Authorization header and
// requires the admin role. Returns the authenticated user ID.
func (h *AuthHandler) Authorize(ctx context.Context, header string) (uint, error) {
	tokenString, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || tokenString == "" {
		return 0, huma.Error401Unauthorized("Unauthorized: no bearer token")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(h.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, huma.Error401Unauthorized("Unauthorized: invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, huma.Error401Unauthorized("Unauthorized: invalid token claims")
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return 0, huma.Error401Unauthorized("Unauthorized: invalid token claims")
	}

	role, _ := claims["role"].(string)
	if role != "admin" {
		return 0, huma.Error403Forbidden("Access denied: admin role required")
	}

	return uint(userIDFloat), nil
}
