package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingRejected  BookingStatus = "rejected"
	BookingCancelled BookingStatus = "cancelled"
)

// Terminal reports whether no further transition is permitted from s.
func (s BookingStatus) Terminal() bool {
	return s == BookingConfirmed || s == BookingRejected || s == BookingCancelled
}

// Booking is one buyer's attempt to acquire Quantity units of a seat
// category. UnitPrice is snapshotted at reservation time so later price
// edits never alter existing bookings. Rows are never deleted; rejected
// and cancelled bookings are kept for history. The partial unique index on
// Utr is what holds one-reference-one-confirmed-booking across concurrent
// confirms; in-statement checks alone cannot see a concurrent writer's row.
type Booking struct {
	ID             uuid.UUID     `gorm:"type:uuid;primary_key"`
	MatchID        uuid.UUID     `gorm:"type:uuid;not null;index"`
	Match          Match         `gorm:"foreignKey:MatchID"`
	SeatCategoryID uuid.UUID     `gorm:"type:uuid;not null;index"`
	SeatCategory   SeatCategory  `gorm:"foreignKey:SeatCategoryID"`
	Quantity       int           `gorm:"not null"`
	UnitPrice      int           `gorm:"not null"`
	TotalAmount    int           `gorm:"not null"`
	Name           string        `gorm:"not null"`
	Email          string        `gorm:"not null"`
	Phone          string        `gorm:"not null"`
	Utr            *string       `gorm:"index:uniq_confirmed_utr,unique,where:status = 'confirmed'"`
	Status         BookingStatus `gorm:"not null;default:'pending';index"`
	Reason         *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (booking *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	return
}
