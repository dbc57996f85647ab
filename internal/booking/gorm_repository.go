package booking

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/avinashk/crickstand/internal/models"
)

type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Create(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *GormRepository) Get(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).First(&booking, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *GormRepository) ListByStatus(ctx context.Context, status models.BookingStatus, limit int) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at asc").
		Limit(limit).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *GormRepository) AttachUtr(ctx context.Context, id uuid.UUID, utr string) (bool, error) {
	// Refuse a reference some confirmed booking has already consumed, so
	// the buyer hears about the clash now instead of at confirm time.
	result := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND status = ?", id, models.BookingPending).
		Where("NOT EXISTS (SELECT 1 FROM bookings used WHERE used.utr = ? AND used.status = ?)",
			utr, models.BookingConfirmed).
		Update("utr", utr)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		booking, err := r.Get(ctx, id)
		if err != nil {
			return false, err
		}
		if booking.Status == models.BookingPending {
			return false, ErrDuplicateUtr
		}
		return false, nil
	}
	return true, nil
}

func (r *GormRepository) FinalizePending(ctx context.Context, id uuid.UUID, to models.BookingStatus, reason *string) (*models.Booking, bool, error) {
	updates := map[string]interface{}{"status": to}
	if reason != nil {
		updates["reason"] = reason
	}

	result := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND status = ?", id, models.BookingPending).
		Updates(updates)
	if result.Error != nil {
		return nil, false, result.Error
	}

	booking, err := r.Get(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return booking, result.RowsAffected == 1, nil
}

func (r *GormRepository) ConfirmPending(ctx context.Context, id uuid.UUID, utr string) (*models.Booking, ConfirmOutcome, error) {
	// The subquery catches a reference that was already consumed before this
	// statement's snapshot. It cannot see a concurrent confirm of a
	// different booking with the same UTR: under READ COMMITTED the two
	// updates touch different rows and neither snapshot holds the other's
	// write. The partial unique index on utr (confirmed rows only) is the
	// authority for that race; the loser's commit fails with a unique
	// violation, mapped to a duplicate outcome below.
	result := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND status = ?", id, models.BookingPending).
		Where("NOT EXISTS (SELECT 1 FROM bookings used WHERE used.utr = ? AND used.status = ? AND used.id <> ?)",
			utr, models.BookingConfirmed, id).
		Updates(map[string]interface{}{"status": models.BookingConfirmed, "utr": utr})
	if result.Error != nil {
		if isUtrTaken(result.Error) {
			booking, err := r.Get(ctx, id)
			if err != nil {
				return nil, ConfirmNotPending, err
			}
			return booking, ConfirmDuplicateUtr, nil
		}
		return nil, ConfirmNotPending, result.Error
	}

	booking, err := r.Get(ctx, id)
	if err != nil {
		return nil, ConfirmNotPending, err
	}
	if result.RowsAffected == 1 {
		return booking, ConfirmApplied, nil
	}
	if booking.Status != models.BookingPending {
		return booking, ConfirmNotPending, nil
	}
	return booking, ConfirmDuplicateUtr, nil
}

// isUtrTaken reports whether err is the unique violation raised by the
// partial index uniq_confirmed_utr on bookings.
func isUtrTaken(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
