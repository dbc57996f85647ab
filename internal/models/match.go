package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MatchStatus string

const (
	MatchUpcoming  MatchStatus = "upcoming"
	MatchLive      MatchStatus = "live"
	MatchCompleted MatchStatus = "completed"
	MatchCancelled MatchStatus = "cancelled"
)

// ValidMatchStatus reports whether s is one of the known match statuses.
func ValidMatchStatus(s MatchStatus) bool {
	switch s {
	case MatchUpcoming, MatchLive, MatchCompleted, MatchCancelled:
		return true
	}
	return false
}

type Match struct {
	ID        uuid.UUID   `gorm:"type:uuid;primary_key"`
	Team1ID   uuid.UUID   `gorm:"type:uuid;not null"`
	Team1     Team        `gorm:"foreignKey:Team1ID"`
	Team2ID   uuid.UUID   `gorm:"type:uuid;not null"`
	Team2     Team        `gorm:"foreignKey:Team2ID"`
	StadiumID uuid.UUID   `gorm:"type:uuid;not null"`
	Stadium   Stadium     `gorm:"foreignKey:StadiumID"`
	MatchDate time.Time   `gorm:"not null"`
	Status    MatchStatus `gorm:"not null;default:'upcoming'"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (match *Match) BeforeCreate(tx *gorm.DB) (err error) {
	if match.ID == uuid.Nil {
		match.ID = uuid.New()
	}
	return
}

// Open reports whether bookings may still be created against this match.
func (match *Match) Open() bool {
	return match.Status == MatchUpcoming || match.Status == MatchLive
}
