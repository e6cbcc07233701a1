package models

import "time"

// Credential is the identity record behind an account. It is deleted last in
// the account deletion cascade.
type Credential struct {
	UserID       string `gorm:"primaryKey;size:36" json:"user_id"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
