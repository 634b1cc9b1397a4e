package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

// A registration that loses an insert race still has to surface as a
// conflict, not a server error.
func TestUniqueViolationMapsToConflict(t *testing.T) {
	username := &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}
	email := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}

	assert.ErrorIs(t, uniqueViolation(username), ErrUsernameExists)
	assert.ErrorIs(t, uniqueViolation(email), ErrEmailExists)

	// Wrapped errors still map.
	assert.ErrorIs(t, uniqueViolation(fmt.Errorf("exec: %w", email)), ErrEmailExists)
}

func TestUniqueViolationIgnoresOtherErrors(t *testing.T) {
	assert.NoError(t, uniqueViolation(errors.New("connection refused")))
	assert.NoError(t, uniqueViolation(&pgconn.PgError{Code: "23503", ConstraintName: "recipes_user_id_fkey"}))
	assert.NoError(t, uniqueViolation(&pgconn.PgError{Code: "23505", ConstraintName: "recipes_pkey"}))
}
