// Package security provides JWT token utilities
package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// ValidateJWT validates a JWT token and returns the claims
func ValidateJWT(tokenString, jwtSecret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// GenerateSysOpToken creates a short-lived JWT for sysop dashboard access
func GenerateSysOpToken(tenantID, jwtSecret string) (string, error) {
	claims := jwt.MapClaims{
		"role":     "sysop",
		"tenantId": tenantID,
		"iat":      time.Now().UTC().Unix(),
		"exp":      time.Now().UTC().Add(12 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

// IsSysOpClaims reports whether validated claims carry the sysop role
func IsSysOpClaims(claims jwt.MapClaims) bool {
	role, ok := claims["role"].(string)
	return ok && role == "sysop"
}
