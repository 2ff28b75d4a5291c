package jwtutil

import (
	"errors"
	"time"

	"github.com/Guimenn/mobiliai-inventory/config"
	"github.com/golang-jwt/jwt/v5"
)

var secretKey []byte

// Claims carries the actor identity the platform's auth service issues.
// StoreID is the store the manager belongs to; empty for platform admins.
type Claims struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	StoreID string `json:"store_id,omitempty"`
	jwt.RegisteredClaims
}

func Initialize(cfg *config.JWTConfig) {
	secretKey = []byte(cfg.SecretKey)
}

// GenerateToken is used by tests and local tooling; token issuance belongs to
// the auth service in production.
func GenerateToken(userID, email, role, storeID string, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserID:  userID,
		Email:   email,
		Role:    role,
		StoreID: storeID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey)
}

// ValidateToken parses and verifies an HS256 token.
func ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
