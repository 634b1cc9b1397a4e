package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the validity window of issued bearer tokens.
const TokenTTL = 5 * time.Hour

// GenerateToken issues a signed bearer token bound to the user. It returns
// the token and its absolute expiry in Unix milliseconds.
func GenerateToken(secret string, userID int, username string) (string, int64, error) {
	return issueToken(secret, userID, username, TokenTTL)
}

func issueToken(secret string, userID int, username string, ttl time.Duration) (string, int64, error) {
	expiresAt := time.Now().Add(ttl)
	claims := jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"exp":      expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", 0, err
	}
	return signed, expiresAt.UnixMilli(), nil
}

// VerifyToken validates the signature and expiry of a bearer token and
// returns the bound user id and username. Every failure mode (malformed,
// expired, wrong signature) yields the same error.
func VerifyToken(secret, tokenString string) (int, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", errors.New("invalid token")
	}

	// Numeric claims come back as float64 from JSON
	uid, ok := claims["user_id"].(float64)
	if !ok {
		return 0, "", errors.New("invalid token")
	}
	username, ok := claims["username"].(string)
	if !ok {
		return 0, "", errors.New("invalid token")
	}

	return int(uid), username, nil
}
