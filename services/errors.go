package services

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrServiceNotFound     = errors.New("service not found")
	ErrSlotNotFound        = errors.New("slot not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrInvalidTransition   = errors.New("invalid reservation status transition")
	ErrServiceInUse        = errors.New("service is referenced by reservations")
	ErrSlotInUse           = errors.New("slot is referenced by a reservation")
	ErrSlotConflict        = errors.New("slot already taken")
	ErrInvalidDate         = errors.New("invalid date")
)

// FieldError is a validation failure bound to one input field. Key is a
// message catalogue key; Args fill its placeholders.
type FieldError struct {
	Field string
	Key   string
	Args  []any
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Key
}

func fieldErr(field, key string, args ...any) *FieldError {
	return &FieldError{Field: field, Key: key, Args: args}
}

// IsConflict reports whether err is a unique-constraint violation from either
// driver.
func IsConflict(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// isForeignKeyViolation covers RESTRICT rejections on delete.
func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return true
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
