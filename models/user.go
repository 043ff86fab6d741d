package models

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
	Username          string         `gorm:"uniqueIndex;not null;size:100" json:"username"`
	Email             string         `gorm:"uniqueIndex;not null;size:200" json:"email"`
	PasswordHash      string         `gorm:"not null" json:"-"`
	Role              Role           `gorm:"not null;size:20;default:'employee'" json:"role"`
	AssignedManagerID *uint          `gorm:"index" json:"assigned_manager_id"`
	AssignedManager   *User          `gorm:"foreignKey:AssignedManagerID" json:"-"`
	Profile           *UserProfile   `gorm:"foreignKey:UserID" json:"-"`
	Timesheets        []Timesheet    `gorm:"foreignKey:EmployeeID" json:"-"`
}

func (u *User) DisplayName() string {
	if u.Profile != nil && u.Profile.FullName != "" {
		return u.Profile.FullName
	}
	return u.Username
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

func (u *User) IsEmployee() bool {
	return u.Role == RoleEmployee
}

// Manages reports whether u is the assigned manager of the given employee.
// Every manager-side timesheet operation is scoped by this relationship;
// holding the manager role alone is never enough.
func (u *User) Manages(employee *User) bool {
	return u.IsManager() &&
		employee.AssignedManagerID != nil &&
		*employee.AssignedManagerID == u.ID
}

func (u *User) ProfileComplete() bool {
	return u.Profile != nil && u.Profile.FullName != ""
}
