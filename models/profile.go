package models

import (
	"time"
)

// UserProfile holds the self-service profile fields. One row per user,
// upserted on save.
type UserProfile struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
	UserID      uint      `gorm:"uniqueIndex;not null" json:"-"`
	FullName    string    `gorm:"size:200" json:"full_name"`
	Age         *int      `json:"age"`
	Designation string    `gorm:"size:100" json:"designation"`
	Address     string    `gorm:"size:500" json:"address"`
	PhoneNumber string    `gorm:"size:50" json:"phone_number"`
}
