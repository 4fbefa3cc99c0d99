package models

import (
	"time"
)

// Question is posted by a teacher. Title and description are both optional
// columns, but at least one of them must be non-empty at all times; the
// services enforce that on create and on every partial update.
type Question struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	TeacherID   uint    `json:"teacher_id" gorm:"not null;index"`
	Title       *string `json:"title" gorm:"size:200"`
	Description *string `json:"description" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`

	// No application-level cascade: deleting a question does not delete its
	// answers here. Referential integrity is the database's concern.
}

func (Question) TableName() string {
	return "questions"
}
