package booking

import "errors"

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrLocationNotFound = errors.New("booking location not found")

	// Allocation errors
	ErrNoLocation           = errors.New("booking has no location assigned")
	ErrAlreadyAllocated     = errors.New("studio number already allocated")
	ErrStudioNumberConflict = errors.New("studio number conflict at location")

	// Validation errors
	ErrInvalidPhone       = errors.New("phone number must contain exactly 11 digits")
	ErrMissingSessionSlot = errors.New("either session date/time or special request date/time must be set")
	ErrNotOwner           = errors.New("sales persons can only modify their own bookings")
	ErrInvalidSignature   = errors.New("signature payload is not a valid base64 image")
)
