package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Stadium struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	Name      string    `gorm:"not null"`
	City      string    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (stadium *Stadium) BeforeCreate(tx *gorm.DB) (err error) {
	if stadium.ID == uuid.Nil {
		stadium.ID = uuid.New()
	}
	return
}
