package booking

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avinashk/crickstand/internal/inventory"
	"github.com/avinashk/crickstand/internal/models"
)

// Catalog is the coordinator's read-only view of matches and seat
// categories.
type Catalog interface {
	Match(ctx context.Context, id uuid.UUID) (*models.Match, error)
	SeatCategory(ctx context.Context, id uuid.UUID) (*models.SeatCategory, error)
}

type GormCatalog struct {
	db *gorm.DB
}

func NewGormCatalog(db *gorm.DB) *GormCatalog {
	return &GormCatalog{db: db}
}

func (c *GormCatalog) Match(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	var match models.Match
	err := c.db.WithContext(ctx).First(&match, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func (c *GormCatalog) SeatCategory(ctx context.Context, id uuid.UUID) (*models.SeatCategory, error) {
	var category models.SeatCategory
	err := c.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, inventory.ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// MemoryCatalog is a fixed catalog for tests.
type MemoryCatalog struct {
	Matches    map[uuid.UUID]*models.Match
	Categories map[uuid.UUID]*models.SeatCategory
}

func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{
		Matches:    make(map[uuid.UUID]*models.Match),
		Categories: make(map[uuid.UUID]*models.SeatCategory),
	}
}

func (c *MemoryCatalog) Match(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	match, ok := c.Matches[id]
	if !ok {
		return nil, ErrMatchNotFound
	}
	return match, nil
}

func (c *MemoryCatalog) SeatCategory(ctx context.Context, id uuid.UUID) (*models.SeatCategory, error) {
	category, ok := c.Categories[id]
	if !ok {
		return nil, inventory.ErrCategoryNotFound
	}
	return category, nil
}
