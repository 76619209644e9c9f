package booking

import "errors"

var (
	ErrValidation          = errors.New("invalid booking data")
	ErrServiceNotFound     = errors.New("service not found")
	ErrBarberUnavailable   = errors.New("barber unavailable")
	ErrOutsideWorkingHours = errors.New("outside working hours")
	ErrSlotTaken           = errors.New("slot taken")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrForbidden           = errors.New("forbidden")
)
