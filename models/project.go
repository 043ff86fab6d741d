package models

import (
	"time"
)

// Project is hard-deleted on removal; reads of historical time entries
// substitute a placeholder name for projects that no longer exist.
type Project struct {
	ID        uint      `gorm:"primaryKey" json:"project_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"uniqueIndex;not null;size:100" json:"name"`
	Billable  bool      `gorm:"default:true" json:"billable"`
	Owner     string    `gorm:"not null;size:200" json:"project_owner"`
}
