package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrInsufficient is returned by Reserve when the category has fewer
	// units available than requested. Nothing is modified.
	ErrInsufficient = errors.New("not enough tickets available")

	// ErrOverRelease is returned by Release when applying it would push
	// available past capacity. This never happens unless a caller releases
	// units it did not reserve, so treat it as a bug, not a runtime path.
	ErrOverRelease = errors.New("release would exceed category capacity")

	// ErrCategoryNotFound is returned for an unknown category id.
	ErrCategoryNotFound = errors.New("seat category not found")
)

// Store holds the available counter of every seat category and is the only
// code allowed to change it. Reserve and Release are atomic with respect to
// all concurrent callers: the availability check and the counter write happen
// in a single conditional operation, never as a read followed by a write.
type Store interface {
	// Reserve decrements the category's available count by quantity if at
	// least that many units remain, returning the post-decrement value.
	Reserve(ctx context.Context, categoryID uuid.UUID, quantity int) (int, error)

	// Release returns previously reserved units to the pool, returning the
	// post-increment value.
	Release(ctx context.Context, categoryID uuid.UUID, quantity int) (int, error)

	// Availability reads the current available count. The value is a
	// snapshot; it implies no hold and may be stale by the time it is used.
	Availability(ctx context.Context, categoryID uuid.UUID) (int, error)
}
