package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/avinashk/crickstand/internal/models"
)

// MemoryRepository mirrors the semantics of GormRepository over a map, with
// one mutex standing in for the database's row locks. It exists for tests.
type MemoryRepository struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*models.Booking
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{bookings: make(map[uuid.UUID]*models.Booking)}
}

func (r *MemoryRepository) Create(ctx context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	stored := *booking
	r.bookings[booking.ID] = &stored
	return nil
}

func (r *MemoryRepository) Get(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getLocked(id)
}

func (r *MemoryRepository) getLocked(id uuid.UUID) (*models.Booking, error) {
	booking, ok := r.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	copied := *booking
	return &copied, nil
}

func (r *MemoryRepository) ListByStatus(ctx context.Context, status models.BookingStatus, limit int) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var bookings []models.Booking
	for _, booking := range r.bookings {
		if booking.Status == status {
			bookings = append(bookings, *booking)
		}
	}
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.Before(bookings[j].CreatedAt)
	})
	if limit > 0 && len(bookings) > limit {
		bookings = bookings[:limit]
	}
	return bookings, nil
}

func (r *MemoryRepository) AttachUtr(ctx context.Context, id uuid.UUID, utr string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking, ok := r.bookings[id]
	if !ok {
		return false, ErrBookingNotFound
	}
	if booking.Status != models.BookingPending {
		return false, nil
	}
	for _, other := range r.bookings {
		if other.Status == models.BookingConfirmed && other.Utr != nil && *other.Utr == utr {
			return false, ErrDuplicateUtr
		}
	}
	booking.Utr = &utr
	booking.UpdatedAt = time.Now()
	return true, nil
}

func (r *MemoryRepository) FinalizePending(ctx context.Context, id uuid.UUID, to models.BookingStatus, reason *string) (*models.Booking, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking, ok := r.bookings[id]
	if !ok {
		return nil, false, ErrBookingNotFound
	}
	if booking.Status != models.BookingPending {
		copied := *booking
		return &copied, false, nil
	}
	booking.Status = to
	if reason != nil {
		booking.Reason = reason
	}
	booking.UpdatedAt = time.Now()
	copied := *booking
	return &copied, true, nil
}

func (r *MemoryRepository) ConfirmPending(ctx context.Context, id uuid.UUID, utr string) (*models.Booking, ConfirmOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking, ok := r.bookings[id]
	if !ok {
		return nil, ConfirmNotPending, ErrBookingNotFound
	}
	if booking.Status != models.BookingPending {
		copied := *booking
		return &copied, ConfirmNotPending, nil
	}
	for _, other := range r.bookings {
		if other.ID != id && other.Status == models.BookingConfirmed && other.Utr != nil && *other.Utr == utr {
			copied := *booking
			return &copied, ConfirmDuplicateUtr, nil
		}
	}
	booking.Status = models.BookingConfirmed
	booking.Utr = &utr
	booking.UpdatedAt = time.Now()
	copied := *booking
	return &copied, ConfirmApplied, nil
}
