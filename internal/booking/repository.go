package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/avinashk/crickstand/internal/models"
)

// ConfirmOutcome tells the caller why a conditional confirm touched no row.
type ConfirmOutcome int

const (
	ConfirmApplied ConfirmOutcome = iota
	ConfirmNotPending
	ConfirmDuplicateUtr
)

// Repository is the durable record of booking attempts. Status changes go
// through compare-and-swap style updates conditioned on status = pending, so
// when two transitions race on one booking exactly one of them applies and
// the loser can tell that it lost.
type Repository interface {
	Create(ctx context.Context, booking *models.Booking) error

	// Get returns the booking or ErrBookingNotFound.
	Get(ctx context.Context, id uuid.UUID) (*models.Booking, error)

	// ListByStatus returns up to limit bookings in the given status,
	// oldest first.
	ListByStatus(ctx context.Context, status models.BookingStatus, limit int) ([]models.Booking, error)

	// AttachUtr stores the payment reference on a still-pending booking.
	// It returns false, without modifying anything, when the booking is no
	// longer pending, and ErrDuplicateUtr when a confirmed booking already
	// holds the reference.
	AttachUtr(ctx context.Context, id uuid.UUID, utr string) (bool, error)

	// FinalizePending moves a pending booking to the given terminal status.
	// applied is false when the booking was not pending; the returned
	// booking reflects the row after the attempt either way.
	FinalizePending(ctx context.Context, id uuid.UUID, to models.BookingStatus, reason *string) (booking *models.Booking, applied bool, err error)

	// ConfirmPending moves a pending booking to confirmed with the given
	// payment reference, refusing in the same atomic step if another
	// confirmed booking already holds that reference.
	ConfirmPending(ctx context.Context, id uuid.UUID, utr string) (*models.Booking, ConfirmOutcome, error)
}
