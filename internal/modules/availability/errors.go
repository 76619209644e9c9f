package availability

import "errors"

var (
	ErrServiceNotFound = errors.New("service not found")
	ErrBarberNotFound  = errors.New("barber not found")
	ErrValidation      = errors.New("invalid availability query")
)
