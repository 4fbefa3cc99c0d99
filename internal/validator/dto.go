package validator

import (
	"encoding/json"

	"github.com/classroom-apps/qa-service/internal/models"
)

// OptionalString distinguishes an omitted JSON field from an explicit null or
// empty string. Omitted fields keep the stored value on partial updates;
// explicit null (or "") clears an optional column.
type OptionalString struct {
	Set   bool
	Value *string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

func (o OptionalString) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}

// UserCreateRequest creates a user. Roles are immutable afterwards; there is
// no user update or delete.
type UserCreateRequest struct {
	Name string          `json:"name" validate:"not_blank,max=100"`
	Role models.UserRole `json:"role" validate:"required,oneof=teacher student"`
}

// QuestionCreateRequest creates a question. The acting teacher identifies
// itself through teacher_id in the body; there is no token-based identity in
// this service (known limitation carried from the original design).
type QuestionCreateRequest struct {
	TeacherID   uint    `json:"teacher_id" validate:"required"`
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Description *string `json:"description"`
}

// QuestionUpdateRequest is a partial update: omitted fields keep their stored
// value, explicit null or empty clears the field. The title/description
// invariant is re-checked against the merged result.
type QuestionUpdateRequest struct {
	TeacherID   uint           `json:"teacher_id" validate:"required"`
	Title       OptionalString `json:"title" validate:"-"`
	Description OptionalString `json:"description" validate:"-"`
}

// QuestionDeleteRequest names the acting teacher for the ownership check.
type QuestionDeleteRequest struct {
	TeacherID uint `json:"teacher_id" validate:"required"`
}

type AnswerCreateRequest struct {
	StudentID uint   `json:"student_id" validate:"required"`
	Answer    string `json:"answer" validate:"not_blank"`
}

type AnswerUpdateRequest struct {
	StudentID uint   `json:"student_id" validate:"required"`
	Answer    string `json:"answer" validate:"not_blank"`
}

type AnswerDeleteRequest struct {
	StudentID uint `json:"student_id" validate:"required"`
}
