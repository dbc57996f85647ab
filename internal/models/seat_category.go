package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SeatCategory is a pool of interchangeable tickets for one stadium section
// of one match. Available is only ever changed through the inventory store's
// conditional updates; 0 <= Available <= Capacity holds at all times.
type SeatCategory struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	MatchID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Match     Match     `gorm:"foreignKey:MatchID"`
	Name      string    `gorm:"not null"`
	UnitPrice int       `gorm:"not null"`
	Capacity  int       `gorm:"not null"`
	Available int       `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (category *SeatCategory) BeforeCreate(tx *gorm.DB) (err error) {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	return
}
