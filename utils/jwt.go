package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"pawhub/config"

	"github.com/golang-jwt/jwt"
)

func secretKey() []byte {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		secret = "pawhub-dev"
	}
	return []byte(secret)
}

// GenerateToken creates a signed JWT with the given subject (a user ID), email
// and role. The token expires after the specified duration.
func GenerateToken(subject, email, role string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   subject,
		"email": email,
		"role":  role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// HashToken computes a SHA-256 hash of the token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// ExtractIDFromToken extracts the subject from a valid JWT token string.
func ExtractIDFromToken(tokenString string) (string, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("token does not contain a valid 'sub' claim")
	}
	return sub, nil
}

// ExtractRoleFromToken extracts the role claim from a valid JWT token string.
func ExtractRoleFromToken(tokenString string) (string, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}
	role, _ := claims["role"].(string)
	return role, nil
}

// GeneratePetToken creates the signed token embedded in a pet's QR tag. The
// tag is printed once and lives on a collar, so the token carries no expiry;
// scanning it only ever resolves to whatever booking is active at that moment.
func GeneratePetToken(petID, ownerID string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   petID,
		"owner": ownerID,
		"typ":   "pet",
		"iat":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// ParsePetToken validates a scanned pet token and returns the pet and owner IDs.
func ParsePetToken(tokenString string) (petID, ownerID string, err error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return "", "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", errors.New("invalid token")
	}
	if typ, _ := claims["typ"].(string); typ != "pet" {
		return "", "", errors.New("not a pet token")
	}
	petID, _ = claims["sub"].(string)
	ownerID, _ = claims["owner"].(string)
	if petID == "" {
		return "", "", errors.New("token does not contain a valid 'sub' claim")
	}
	return petID, ownerID, nil
}
