package booking

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/avinashk/crickstand/internal/inventory"
	"github.com/avinashk/crickstand/internal/models"
)

type CreateBookingInput struct {
	MatchID        uuid.UUID
	SeatCategoryID uuid.UUID
	Quantity       int
	Name           string
	Email          string
	Phone          string
}

// Coordinator turns a buyer's reservation request into a pending booking.
// The inventory decrement happens first; if persisting the booking then
// fails, the reserved units are handed back before the error is returned,
// so a failed request never leaks inventory.
type Coordinator struct {
	catalog Catalog
	store   inventory.Store
	repo    Repository
}

func NewCoordinator(catalog Catalog, store inventory.Store, repo Repository) *Coordinator {
	return &Coordinator{catalog: catalog, store: store, repo: repo}
}

func (c *Coordinator) CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Booking, error) {
	if input.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	if input.Name == "" || input.Email == "" || input.Phone == "" {
		return nil, ErrMissingContact
	}

	match, err := c.catalog.Match(ctx, input.MatchID)
	if err != nil {
		return nil, err
	}
	if !match.Open() {
		return nil, ErrMatchNotOpen
	}

	category, err := c.catalog.SeatCategory(ctx, input.SeatCategoryID)
	if err != nil {
		return nil, err
	}
	if category.MatchID != match.ID {
		return nil, inventory.ErrCategoryNotFound
	}

	if _, err := c.store.Reserve(ctx, category.ID, input.Quantity); err != nil {
		if err == inventory.ErrInsufficient {
			return nil, ErrSoldOut
		}
		return nil, err
	}

	booking := &models.Booking{
		ID:             uuid.New(),
		MatchID:        match.ID,
		SeatCategoryID: category.ID,
		Quantity:       input.Quantity,
		UnitPrice:      category.UnitPrice,
		TotalAmount:    category.UnitPrice * input.Quantity,
		Name:           input.Name,
		Email:          input.Email,
		Phone:          input.Phone,
		Status:         models.BookingPending,
	}

	if err := c.repo.Create(ctx, booking); err != nil {
		if _, releaseErr := c.store.Release(ctx, category.ID, input.Quantity); releaseErr != nil {
			log.Printf("compensating release failed for category %s after booking persist error: %v", category.ID, releaseErr)
		}
		return nil, err
	}

	return booking, nil
}
