package booking

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/avinashk/crickstand/internal/inventory"
	"github.com/avinashk/crickstand/internal/models"
)

// Lifecycle applies booking status transitions. pending is the only live
// state; confirmed, rejected and cancelled are terminal and nothing moves
// out of them. The repository's compare-and-swap updates make each
// transition apply at most once, which is what keeps a double reject from
// releasing the same units twice.
type Lifecycle struct {
	repo  Repository
	store inventory.Store
}

func NewLifecycle(repo Repository, store inventory.Store) *Lifecycle {
	return &Lifecycle{repo: repo, store: store}
}

// Confirm marks a pending booking as paid. Inventory already reflects the
// sale from the original reservation, so no counter moves here. When the
// caller passes no UTR, the reference the buyer submitted earlier is used;
// a booking with no reference at all cannot be confirmed.
func (l *Lifecycle) Confirm(ctx context.Context, id uuid.UUID, utr string) (*models.Booking, error) {
	if utr == "" {
		booking, err := l.repo.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if booking.Utr != nil {
			utr = *booking.Utr
		}
	}
	if utr == "" {
		return nil, ErrUtrRequired
	}

	booking, outcome, err := l.repo.ConfirmPending(ctx, id, utr)
	if err != nil {
		return nil, err
	}
	switch outcome {
	case ConfirmApplied:
		return booking, nil
	case ConfirmDuplicateUtr:
		return nil, ErrDuplicateUtr
	default:
		return nil, ErrAlreadyFinalized
	}
}

// Reject moves a pending booking to rejected and returns its units to the
// pool. Only the transition winner releases; a repeated call observes the
// terminal state and returns ErrAlreadyFinalized without touching inventory.
func (l *Lifecycle) Reject(ctx context.Context, id uuid.UUID, reason *string) (*models.Booking, error) {
	return l.finalize(ctx, id, models.BookingRejected, reason)
}

// Cancel is the buyer-side twin of Reject: same terminal behavior, same
// single release, different status for downstream reporting.
func (l *Lifecycle) Cancel(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	return l.finalize(ctx, id, models.BookingCancelled, nil)
}

func (l *Lifecycle) finalize(ctx context.Context, id uuid.UUID, to models.BookingStatus, reason *string) (*models.Booking, error) {
	booking, applied, err := l.repo.FinalizePending(ctx, id, to, reason)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, ErrAlreadyFinalized
	}

	if _, err := l.store.Release(ctx, booking.SeatCategoryID, booking.Quantity); err != nil {
		if err == inventory.ErrOverRelease {
			// Returning these units would exceed capacity, so counter
			// accounting is broken somewhere else. The terminal state
			// stands; surface the breakage in the log, not to the caller.
			log.Printf("over-release refused for booking %s (category %s, quantity %d)",
				booking.ID, booking.SeatCategoryID, booking.Quantity)
			return booking, nil
		}
		// The transition is committed but the units are stranded until the
		// release is replayed. Fail the call so the problem is visible.
		return nil, fmt.Errorf("booking %s moved to %s but returning %d units failed: %w",
			booking.ID, to, booking.Quantity, err)
	}
	return booking, nil
}

// SubmitPaymentReference records the buyer's UTR on a booking that is still
// awaiting review.
func (l *Lifecycle) SubmitPaymentReference(ctx context.Context, id uuid.UUID, utr string) (*models.Booking, error) {
	if utr == "" {
		return nil, ErrUtrRequired
	}

	attached, err := l.repo.AttachUtr(ctx, id, utr)
	if err != nil {
		return nil, err
	}
	if !attached {
		return nil, ErrAlreadyFinalized
	}
	return l.repo.Get(ctx, id)
}
