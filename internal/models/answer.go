package models

import (
	"time"
)

// Answer is posted by a student on a question. Only the original author may
// change or delete it.
type Answer struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	QuestionID uint   `json:"question_id" gorm:"not null;index"`
	StudentID  uint   `json:"student_id" gorm:"not null;index"`
	Answer     string `json:"answer" gorm:"type:text;not null"`

	CreatedAt time.Time `json:"created_at"`
}

func (Answer) TableName() string {
	return "answers"
}
