package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	BookingPending  = "pending"
	BookingAccepted = "accepted"
	BookingDeclined = "declined"
)

// Booking is embedded in its event; it has no identity of its own.
type Booking struct {
	ClientEmail string `json:"clientEmail"`
	ClientName  string `json:"clientName"`
	Status      string `json:"status"`
	Message     string `json:"message,omitempty"`
}

// Event is a bookable slot stored under coaches/{uid}/events/{eventId}.
type Event struct {
	ID      string `gorm:"primaryKey;size:36" json:"id"`
	CoachID string `gorm:"size:36;index;not null" json:"coachId"`

	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	Start       time.Time  `gorm:"column:starts_at;not null" json:"start"`
	End         *time.Time `gorm:"column:ends_at" json:"end,omitempty"`

	Bookings datatypes.JSONSlice[Booking] `gorm:"type:jsonb" json:"bookings"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingsCopy returns a detached copy of the embedded bookings.
func (e Event) BookingsCopy() []Booking {
	out := make([]Booking, len(e.Bookings))
	copy(out, e.Bookings)
	return out
}

// Normalize replaces a NULL bookings column with an empty list.
func (e *Event) Normalize() {
	if e.Bookings == nil {
		e.Bookings = datatypes.JSONSlice[Booking]{}
	}
}
