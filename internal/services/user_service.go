package services

import (
	"context"
	"errors"
	"log"

	"recipe-backend/internal/config"
	"recipe-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// WelcomeMailer dispatches the post-registration notification.
type WelcomeMailer interface {
	SendWelcome(email, fullName string) error
}

type UserService struct {
	pool   *pgxpool.Pool
	cfg    *config.Config
	mailer WelcomeMailer
}

func NewUserService(pool *pgxpool.Pool, cfg *config.Config, mailer WelcomeMailer) *UserService {
	return &UserService{pool: pool, cfg: cfg, mailer: mailer}
}

// Register creates a new user with a salted password hash. A duplicate
// username or email yields ErrUsernameExists or ErrEmailExists; the username
// conflict is reported first when both collide.
func (s *UserService) Register(ctx context.Context, req models.RegisterRequest) error {
	var existingUsername, existingEmail string
	query := `SELECT username, email FROM users WHERE username = $1 OR email = $2 LIMIT 1`
	err := s.pool.QueryRow(ctx, query, req.Username, req.Email).Scan(&existingUsername, &existingEmail)
	switch {
	case err == nil:
		if existingUsername == req.Username {
			return ErrUsernameExists
		}
		return ErrEmailExists
	case errors.Is(err, pgx.ErrNoRows):
		// free to register
	default:
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return err
	}

	insert := `INSERT INTO users (username, password_hash, full_name, email) VALUES ($1, $2, $3, $4)`
	if _, err := s.pool.Exec(ctx, insert, req.Username, string(hash), req.FullName, req.Email); err != nil {
		// Two concurrent registrations can both pass the pre-check; the
		// loser's constraint violation is still a conflict, not a 500.
		if conflict := uniqueViolation(err); conflict != nil {
			return conflict
		}
		return err
	}

	// Best effort; a failed welcome email must not fail the registration.
	if s.mailer != nil {
		if err := s.mailer.SendWelcome(req.Email, req.FullName); err != nil {
			log.Printf("welcome email to %s failed: %v", req.Email, err)
		}
	}

	return nil
}

// uniqueViolation maps a duplicate-key error from the users table to the
// matching conflict sentinel, or nil if the error is something else.
func uniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	// 23505 is unique_violation
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return nil
	}
	switch pgErr.ConstraintName {
	case "users_username_key":
		return ErrUsernameExists
	case "users_email_key":
		return ErrEmailExists
	}
	return nil
}

// Login verifies the credentials and issues a bearer token. Unknown usernames
// and wrong passwords both return ErrInvalidCredentials so the response does
// not reveal which accounts exist.
func (s *UserService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var user models.User
	query := `SELECT id, username, password_hash, full_name, email FROM users WHERE username = $1`
	err := s.pool.QueryRow(ctx, query, req.Username).Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.FullName, &user.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := GenerateToken(s.cfg.JWTSecret, user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Message:         "Login successful",
		Token:           token,
		TokenExpiration: expiresAt,
		Name:            user.FullName,
		Email:           user.Email,
	}, nil
}
