package models

import (
	"time"

	"gorm.io/datatypes"
)

// Coach is the public profile stored under coaches/{uid}, keyed by the
// owning account id.
type Coach struct {
	ID          string                      `gorm:"primaryKey;size:36" json:"id"`
	Name        string                      `gorm:"size:200;not null" json:"name"`
	CompanyName string                      `gorm:"size:150" json:"companyName,omitempty"`
	Email       string                      `gorm:"size:100" json:"email,omitempty"`
	Followers   datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"followers"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DisplayName is the label clients see next to a coach's events.
func (c Coach) DisplayName() string {
	if c.CompanyName != "" {
		return c.CompanyName
	}
	return c.Name
}
