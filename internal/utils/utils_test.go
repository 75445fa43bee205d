package utils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsPGUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505"}
	assert.True(t, IsPGUniqueViolation(unique))
	assert.True(t, IsPGUniqueViolation(fmt.Errorf("insert allowed user: %w", unique)))
	assert.False(t, IsPGUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsPGUniqueViolation(errors.New("boom")))
	assert.False(t, IsPGUniqueViolation(nil))
}

func TestIsPGInvalidText(t *testing.T) {
	assert.True(t, IsPGInvalidText(&pgconn.PgError{Code: "22P02"}))
	assert.True(t, IsPGInvalidText(fmt.Errorf("delete schedule: %w", &pgconn.PgError{Code: "22P02"})))
	assert.False(t, IsPGInvalidText(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsPGInvalidText(nil))
}
