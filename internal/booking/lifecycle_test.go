package booking_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avinashk/crickstand/internal/booking"
	"github.com/avinashk/crickstand/internal/inventory"
	"github.com/avinashk/crickstand/internal/models"
)

type lifecycleFixture struct {
	lifecycle *booking.Lifecycle
	repo      *booking.MemoryRepository
	store     *inventory.MemoryStore
	category  uuid.UUID
}

// newLifecycleFixture sets up a category with the given capacity and one
// pending booking holding quantity units, exactly as the coordinator would
// have left them.
func newLifecycleFixture(t *testing.T, capacity, quantity int) (*lifecycleFixture, *models.Booking) {
	t.Helper()

	store := inventory.NewMemoryStore()
	repo := booking.NewMemoryRepository()
	categoryID := uuid.New()
	store.AddCategory(categoryID, capacity)

	_, err := store.Reserve(context.Background(), categoryID, quantity)
	require.NoError(t, err)

	pending := &models.Booking{
		ID:             uuid.New(),
		MatchID:        uuid.New(),
		SeatCategoryID: categoryID,
		Quantity:       quantity,
		UnitPrice:      500,
		TotalAmount:    500 * quantity,
		Name:           "Rohit Iyer",
		Email:          "rohit@example.com",
		Phone:          "9876543210",
		Status:         models.BookingPending,
	}
	require.NoError(t, repo.Create(context.Background(), pending))

	return &lifecycleFixture{
		lifecycle: booking.NewLifecycle(repo, store),
		repo:      repo,
		store:     store,
		category:  categoryID,
	}, pending
}

func (f *lifecycleFixture) availability(t *testing.T) int {
	t.Helper()
	available, err := f.store.Availability(context.Background(), f.category)
	require.NoError(t, err)
	return available
}

func TestConfirm_Success_InventoryNeutral(t *testing.T) {
	f, pending := newLifecycleFixture(t, 10, 2)
	before := f.availability(t)

	confirmed, err := f.lifecycle.Confirm(context.Background(), pending.ID, "UTR12345")

	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, confirmed.Status)
	require.NotNil(t, confirmed.Utr)
	assert.Equal(t, "UTR12345", *confirmed.Utr)
	assert.Equal(t, before, f.availability(t))
}

func TestConfirm_UsesSubmittedReference(t *testing.T) {
	f, pending := newLifecycleFixture(t, 10, 2)

	_, err := f.lifecycle.SubmitPaymentReference(context.Background(), pending.ID, "UTR-FROM-BUYER")
	require.NoError(t, err)

	confirmed, err := f.lifecycle.Confirm(context.Background(), pending.ID, "")

	require.NoError(t, err)
	require.NotNil(t, confirmed.Utr)
	assert.Equal(t, "UTR-FROM-BUYER", *confirmed.Utr)
}

func TestConfirm_WithoutAnyReference(t *testing.T) {
	f, pending := newLifecycleFixture(t, 10, 2)

	_, err := f.lifecycle.Confirm(context.Background(), pending.ID, "")

	assert.ErrorIs(t, err, booking.ErrUtrRequired)
}

func TestConfirm_DuplicateUtr(t *testing.T) {
	f, first := newLifecycleFixture(t, 10, 2)

	second := &models.Booking{
		ID:             uuid.New(),
		MatchID:        first.MatchID,
		SeatCategoryID: f.category,
		Quantity:       1,
		UnitPrice:      500,
		TotalAmount:    500,
		Name:           "Sneha Rao",
		Email:          "sneha@example.com",
		Phone:          "9123456780",
		Status:         models.BookingPending,
	}
	require.NoError(t, f.repo.Create(context.Background(), second))

	_, err := f.lifecycle.Confirm(context.Background(), first.ID, "U1")
	require.NoError(t, err)

	_, err = f.lifecycle.Confirm(context.Background(), second.ID, "U1")
	assert.ErrorIs(t, err, booking.ErrDuplicateUtr)

	// The loser must still be pending, not half-confirmed.
	stored, err := f.repo.Get(context.Background(), second.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingPending, stored.Status)
}

func TestReject_ReleasesExactlyOnce(t *testing.T) {
	f, pending := newLifecycleFixture(t, 10, 2)
	require.Equal(t, 8, f.availability(t))

	reason := "no matching transfer found"
	rejected, err := f.lifecycle.Reject(context.Background(), pending.ID, &reason)

	require.NoError(t, err)
	assert.Equal(t, models.BookingRejected, rejected.Status)
	require.NotNil(t, rejected.Reason)
	assert.Equal(t, reason, *rejected.Reason)
	assert.Equal(t, 10, f.availability(t))

	// The retry is a no-op: same terminal state, no second release.
	_, err = f.lifecycle.Reject(context.Background(), pending.ID, &reason)
	assert.ErrorIs(t, err, booking.ErrAlreadyFinalized)
	assert.Equal(t, 10, f.availability(t))
}

func TestCancel_ReleasesExactlyOnce(t *testing.T) {
	f, pending := newLifecycleFixture(t, 5, 3)
	require.Equal(t, 2, f.availability(t))

	cancelled, err := f.lifecycle.Cancel(context.Background(), pending.ID)

	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, cancelled.Status)
	assert.Equal(t, 5, f.availability(t))

	_, err = f.lifecycle.Cancel(context.Background(), pending.ID)
	assert.ErrorIs(t, err, booking.ErrAlreadyFinalized)
	assert.Equal(t, 5, f.availability(t))
}

func TestTerminalState_IsImmutable(t *testing.T) {
	f, pending := newLifecycleFixture(t, 10, 2)

	_, err := f.lifecycle.Confirm(context.Background(), pending.ID, "U2")
	require.NoError(t, err)

	_, err = f.lifecycle.Reject(context.Background(), pending.ID, nil)
	assert.ErrorIs(t, err, booking.ErrAlreadyFinalized)

	_, err = f.lifecycle.Cancel(context.Background(), pending.ID)
	assert.ErrorIs(t, err, booking.ErrAlreadyFinalized)

	stored, err := f.repo.Get(context.Background(), pending.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, stored.Status)
	assert.Equal(t, 8, f.availability(t))
}

func TestReject_ConcurrentCalls_SingleRelease(t *testing.T) {
	f, pending := newLifecycleFixture(t, 10, 2)

	var wg sync.WaitGroup
	var mu sync.Mutex
	applied := 0

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.lifecycle.Reject(context.Background(), pending.ID, nil); err == nil {
				mu.Lock()
				applied++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, applied)
	assert.Equal(t, 10, f.availability(t))
}

func TestSubmitPaymentReference_AfterFinalization(t *testing.T) {
	f, pending := newLifecycleFixture(t, 10, 2)

	_, err := f.lifecycle.Cancel(context.Background(), pending.ID)
	require.NoError(t, err)

	_, err = f.lifecycle.SubmitPaymentReference(context.Background(), pending.ID, "UTR-LATE")
	assert.ErrorIs(t, err, booking.ErrAlreadyFinalized)
}

func TestSubmitPaymentReference_UnknownBooking(t *testing.T) {
	f, _ := newLifecycleFixture(t, 10, 2)

	_, err := f.lifecycle.SubmitPaymentReference(context.Background(), uuid.New(), "UTR")
	assert.ErrorIs(t, err, booking.ErrBookingNotFound)
}

func TestSubmitPaymentReference_UsedByConfirmedBooking(t *testing.T) {
	f, first := newLifecycleFixture(t, 10, 2)

	second := &models.Booking{
		ID:             uuid.New(),
		MatchID:        first.MatchID,
		SeatCategoryID: f.category,
		Quantity:       1,
		UnitPrice:      500,
		TotalAmount:    500,
		Name:           "Sneha Rao",
		Email:          "sneha@example.com",
		Phone:          "9123456780",
		Status:         models.BookingPending,
	}
	require.NoError(t, f.repo.Create(context.Background(), second))

	_, err := f.lifecycle.Confirm(context.Background(), first.ID, "U1")
	require.NoError(t, err)

	// The clash surfaces at attach time, not at confirm time.
	_, err = f.lifecycle.SubmitPaymentReference(context.Background(), second.ID, "U1")
	assert.ErrorIs(t, err, booking.ErrDuplicateUtr)

	stored, err := f.repo.Get(context.Background(), second.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.Utr)
	assert.Equal(t, models.BookingPending, stored.Status)
}

// brokenReleaseStore fails every Release, standing in for a database that
// went away between the status update and the inventory return.
type brokenReleaseStore struct {
	inventory.Store
	releaseErr error
}

func (s *brokenReleaseStore) Release(ctx context.Context, categoryID uuid.UUID, quantity int) (int, error) {
	return 0, s.releaseErr
}

func TestReject_ReleaseFailure_SurfacesError(t *testing.T) {
	f, pending := newLifecycleFixture(t, 10, 2)
	broken := &brokenReleaseStore{Store: f.store, releaseErr: errors.New("connection lost")}
	lifecycle := booking.NewLifecycle(f.repo, broken)

	_, err := lifecycle.Reject(context.Background(), pending.ID, nil)

	require.Error(t, err)
	assert.ErrorContains(t, err, "connection lost")

	// The terminal state is committed; the caller must still hear that the
	// units were not returned.
	stored, err := f.repo.Get(context.Background(), pending.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingRejected, stored.Status)
	assert.Equal(t, 8, f.availability(t))
}

func TestReject_OverRelease_KeepsTerminalState(t *testing.T) {
	f, pending := newLifecycleFixture(t, 10, 2)

	// Push the counter back to capacity so the reject's release would
	// exceed it.
	_, err := f.store.Release(context.Background(), f.category, 2)
	require.NoError(t, err)

	rejected, err := f.lifecycle.Reject(context.Background(), pending.ID, nil)

	require.NoError(t, err)
	assert.Equal(t, models.BookingRejected, rejected.Status)
	assert.Equal(t, 10, f.availability(t))
}
