package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/avinashk/crickstand/internal/models"
)

// GormStore implements Store on the seat_categories table. Every mutation is
// a single conditional UPDATE whose WHERE clause carries the guard, so the
// row lock taken by the database is the only synchronization involved and
// two competing reservations can never both pass the availability check.
type GormStore struct {
	db    *gorm.DB
	cache *Cache
}

func NewGormStore(db *gorm.DB, cache *Cache) *GormStore {
	return &GormStore{db: db, cache: cache}
}

func (s *GormStore) Reserve(ctx context.Context, categoryID uuid.UUID, quantity int) (int, error) {
	if quantity < 1 {
		return 0, fmt.Errorf("reserve quantity must be positive, got %d", quantity)
	}

	category := models.SeatCategory{ID: categoryID}
	result := s.db.WithContext(ctx).
		Model(&category).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "available"}}}).
		Where("available >= ?", quantity).
		UpdateColumn("available", gorm.Expr("available - ?", quantity))
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, s.missReason(ctx, categoryID, ErrInsufficient)
	}

	s.cache.Invalidate(ctx, categoryID)
	return category.Available, nil
}

func (s *GormStore) Release(ctx context.Context, categoryID uuid.UUID, quantity int) (int, error) {
	if quantity < 1 {
		return 0, fmt.Errorf("release quantity must be positive, got %d", quantity)
	}

	category := models.SeatCategory{ID: categoryID}
	result := s.db.WithContext(ctx).
		Model(&category).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "available"}}}).
		Where("available + ? <= capacity", quantity).
		UpdateColumn("available", gorm.Expr("available + ?", quantity))
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, s.missReason(ctx, categoryID, ErrOverRelease)
	}

	s.cache.Invalidate(ctx, categoryID)
	return category.Available, nil
}

func (s *GormStore) Availability(ctx context.Context, categoryID uuid.UUID) (int, error) {
	if available, ok := s.cache.Get(ctx, categoryID); ok {
		return available, nil
	}

	var category models.SeatCategory
	err := s.db.WithContext(ctx).
		Select("available").
		First(&category, "id = ?", categoryID).Error
	if err == gorm.ErrRecordNotFound {
		return 0, ErrCategoryNotFound
	}
	if err != nil {
		return 0, err
	}

	s.cache.Set(ctx, categoryID, category.Available)
	return category.Available, nil
}

// missReason distinguishes "guard failed" from "no such category" after a
// conditional update touched zero rows.
func (s *GormStore) missReason(ctx context.Context, categoryID uuid.UUID, guardErr error) error {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.SeatCategory{}).
		Where("id = ?", categoryID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrCategoryNotFound
	}
	return guardErr
}
