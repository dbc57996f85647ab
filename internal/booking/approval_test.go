package booking_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avinashk/crickstand/internal/booking"
	"github.com/avinashk/crickstand/internal/models"
)

// staticRoles grants the admin role to a fixed set of user ids.
type staticRoles struct {
	admins map[uuid.UUID]bool
}

func (r *staticRoles) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	return r.admins[userID], nil
}

func TestApproval_AdminCanConfirm(t *testing.T) {
	f, pending := newLifecycleFixture(t, 10, 2)
	admin := uuid.New()
	gateway := booking.NewApprovalGateway(&staticRoles{admins: map[uuid.UUID]bool{admin: true}}, f.lifecycle)

	confirmed, err := gateway.Confirm(context.Background(), admin, pending.ID, "UTR-APPROVAL")

	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, confirmed.Status)
}

func TestApproval_AdminCanReject(t *testing.T) {
	f, pending := newLifecycleFixture(t, 10, 2)
	admin := uuid.New()
	gateway := booking.NewApprovalGateway(&staticRoles{admins: map[uuid.UUID]bool{admin: true}}, f.lifecycle)

	reason := "amount mismatch"
	rejected, err := gateway.Reject(context.Background(), admin, pending.ID, &reason)

	require.NoError(t, err)
	assert.Equal(t, models.BookingRejected, rejected.Status)
	assert.Equal(t, 10, f.availability(t))
}

func TestApproval_NonAdmin_TouchesNothing(t *testing.T) {
	f, pending := newLifecycleFixture(t, 10, 2)
	gateway := booking.NewApprovalGateway(&staticRoles{admins: map[uuid.UUID]bool{}}, f.lifecycle)

	_, err := gateway.Confirm(context.Background(), uuid.New(), pending.ID, "UTR-NOPE")
	assert.ErrorIs(t, err, booking.ErrUnauthorized)

	_, err = gateway.Reject(context.Background(), uuid.New(), pending.ID, nil)
	assert.ErrorIs(t, err, booking.ErrUnauthorized)

	// Booking and inventory are exactly as they were.
	stored, err := f.repo.Get(context.Background(), pending.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingPending, stored.Status)
	assert.Equal(t, 8, f.availability(t))
}
