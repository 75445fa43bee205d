package service

import (
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/ikeike55momo/schedule/internal/utils"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrConflict  = errors.New("already exists")
	ErrForbidden = errors.New("forbidden")

	ErrEmptyTitle       = errors.New("title is required")
	ErrEmptyContent     = errors.New("content is required")
	ErrEmptyName        = errors.New("name is required")
	ErrInvalidDate      = errors.New("date must be YYYY-MM-DD")
	ErrInvalidMonth     = errors.New("month must be between 1 and 12")
	ErrInvalidTime      = errors.New("time must be HH:MM")
	ErrInvalidTimeRange = errors.New("start time must be before end time")
	ErrInvalidProgress  = errors.New("progress must be between 0 and 100")
	ErrInvalidKind      = errors.New("type must be clockIn, clockOut, breakStart or breakEnd")
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrInvalidViewMode  = errors.New("mode must be personal or team")
)

// storeErr maps driver errors onto the service sentinels.
func storeErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows), utils.IsPGInvalidText(err):
		return ErrNotFound
	case utils.IsPGUniqueViolation(err):
		return ErrConflict
	}
	return err
}
