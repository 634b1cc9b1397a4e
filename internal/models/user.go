package models

import "time"

type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is the login payload. TokenExpiration is the absolute expiry
// instant in Unix milliseconds so clients can self-expire the session without
// parsing the token.
type AuthResponse struct {
	Message         string `json:"message"`
	Token           string `json:"token"`
	TokenExpiration int64  `json:"tokenExpiration"`
	Name            string `json:"name"`
	Email           string `json:"email"`
}
