package service

import (
	"errors"

	"github.com/google/uuid"
)

// Domain error kinds. Handlers map them to HTTP status codes with
// errors.Is; callers wrap them with context via fmt.Errorf and %w.
var (
	ErrPaymentNotFound = errors.New("payment not found")
	ErrLeaseNotFound   = errors.New("lease not found")
	ErrConfigNotFound  = errors.New("payment config not found")
	ErrInvalidState    = errors.New("invalid payment state")
	ErrValidation      = errors.New("validation failed")
)

func newID() string {
	return uuid.NewString()
}
