package models

import "time"

// User is the account document stored under users/{uid}.
type User struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	FirstName   string `gorm:"size:100;not null" json:"firstName"`
	LastName    string `gorm:"size:100;not null" json:"lastName"`
	Username    string `gorm:"size:100;not null" json:"username"`
	Email       string `gorm:"size:100;index;not null" json:"email"`
	Role        string `gorm:"size:20;not null" json:"role"`
	CompanyName string `gorm:"size:150" json:"companyName"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	RoleCoach  = "coach"
	RoleClient = "client"
)

// DashboardPath is where a signed-in account lands.
func (u User) DashboardPath() string {
	if u.Role == RoleCoach {
		return "/coach"
	}
	return "/client"
}
