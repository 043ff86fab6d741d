package models

import (
	"time"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status machine allows moving to next.
// Draft and rejected sheets stay editable by the owner, submitted sheets
// wait on a manager decision, approved is terminal.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusDraft, StatusRejected:
		return next == StatusDraft || next == StatusSubmitted
	case StatusSubmitted:
		return next == StatusApproved || next == StatusRejected
	}
	return false
}

// Timesheet is one employee's week of logged hours. The composite unique
// index keeps a single row per (employee, week) even under racing creates.
type Timesheet struct {
	ID             uint        `gorm:"primaryKey" json:"timesheet_id"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
	EmployeeID     uint        `gorm:"not null;uniqueIndex:idx_employee_week" json:"employee_id"`
	Employee       User        `gorm:"foreignKey:EmployeeID" json:"-"`
	WeekStart      time.Time   `gorm:"not null;type:date;uniqueIndex:idx_employee_week" json:"week_start"`
	Status         Status      `gorm:"not null;size:20;default:'draft'" json:"status"`
	ManagerComment string      `gorm:"size:500" json:"manager_comment"`
	ApprovedAt     *time.Time  `json:"approved_at"`
	RejectedAt     *time.Time  `json:"rejected_at"`
	Entries        []TimeEntry `gorm:"foreignKey:TimesheetID;constraint:OnDelete:CASCADE" json:"-"`
}

// TimeEntry rows are never updated in place: saving a week's content deletes
// the sheet's entries and re-inserts the pruned set in one transaction.
type TimeEntry struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	TimesheetID uint      `gorm:"not null;index" json:"timesheet_id"`
	Date        time.Time `gorm:"not null;type:date" json:"date"`
	Hours       float64   `gorm:"not null" json:"hours"`
	ProjectID   uint      `gorm:"not null;index" json:"project_id"`
	Notes       string    `gorm:"size:500" json:"notes"`
}
