package models

import (
	"time"
)

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleTeacher UserRole = "teacher"
)

// ValidRole reports whether r is one of the roles a user can be created with.
func ValidRole(r UserRole) bool {
	return r == RoleStudent || r == RoleTeacher
}

type User struct {
	ID   uint     `json:"id" gorm:"primaryKey"`
	Name string   `json:"name" gorm:"not null;size:100"`
	Role UserRole `json:"role" gorm:"not null;size:20;index"`

	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// UserSummary is the slice of a user row attached to enriched question and
// answer responses. A nil summary means the referenced user could not be
// resolved; that is not an error for the enclosing request.
type UserSummary struct {
	ID   uint     `json:"id"`
	Name string   `json:"name"`
	Role UserRole `json:"role"`
}

// Summary returns the enrichment view of the user.
func (u *User) Summary() *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{ID: u.ID, Name: u.Name, Role: u.Role}
}
