package errors

import "errors"

var (
	ErrNotFound = errors.New("appointment not found")

	ErrInvalidID = errors.New("invalid appointment ID format")

	ErrNoSlotsSelected = errors.New("no slots selected")

	ErrNoAvailabilityConfigured = errors.New("clinic has no availability configured")

	ErrSlotOutsideAvailability = errors.New("slot is outside the clinic availability")

	ErrSlotAlreadyBooked = errors.New("slot is already booked")

	ErrIllegalTransition = errors.New("illegal status transition")

	ErrNotOwner = errors.New("actor is not the clinic owner")
)
