package booking

import "errors"

var (
	// ErrSoldOut means the reservation could not be satisfied; nothing was
	// persisted and no inventory was taken.
	ErrSoldOut = errors.New("not enough tickets available")

	// ErrAlreadyFinalized means the booking already reached a terminal
	// state. Callers retrying a confirm, reject or cancel should treat it
	// as "already processed", not as a failure.
	ErrAlreadyFinalized = errors.New("booking already finalized")

	// ErrDuplicateUtr means the payment reference is already consumed by a
	// confirmed booking.
	ErrDuplicateUtr = errors.New("payment reference already used by another booking")

	// ErrUnauthorized means the caller does not hold the admin role.
	ErrUnauthorized = errors.New("operator is not an admin")

	ErrBookingNotFound = errors.New("booking not found")
	ErrMatchNotFound   = errors.New("match not found")
	ErrMatchNotOpen    = errors.New("match is not open for booking")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrMissingContact  = errors.New("buyer name, email and phone are required")
	ErrUtrRequired     = errors.New("payment reference is required")
)
