package validator

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/classroom-apps/qa-service/internal/models"
)

func strPtr(s string) *string { return &s }

func TestValidateUserCreate(t *testing.T) {
	bv := NewBusinessValidator()

	tests := []struct {
		name      string
		req       UserCreateRequest
		wantField string
		wantRule  string
	}{
		{
			name: "valid teacher",
			req:  UserCreateRequest{Name: "Ms. Rivera", Role: models.RoleTeacher},
		},
		{
			name: "valid student",
			req:  UserCreateRequest{Name: "Sam", Role: models.RoleStudent},
		},
		{
			name: "name exactly at limit",
			req:  UserCreateRequest{Name: strings.Repeat("a", MaxNameLength), Role: models.RoleStudent},
		},
		{
			name:      "empty name",
			req:       UserCreateRequest{Name: "", Role: models.RoleStudent},
			wantField: "name",
			wantRule:  "not_blank",
		},
		{
			name:      "whitespace name",
			req:       UserCreateRequest{Name: "   ", Role: models.RoleStudent},
			wantField: "name",
			wantRule:  "not_blank",
		},
		{
			name:      "name over limit",
			req:       UserCreateRequest{Name: strings.Repeat("a", MaxNameLength+1), Role: models.RoleStudent},
			wantField: "name",
			wantRule:  "max",
		},
		{
			name:      "invalid role",
			req:       UserCreateRequest{Name: "Sam", Role: "principal"},
			wantField: "role",
			wantRule:  "oneof",
		},
		{
			name:      "empty role",
			req:       UserCreateRequest{Name: "Sam", Role: ""},
			wantField: "role",
			wantRule:  "required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := bv.ValidateUserCreate(&tt.req)
			assertValidation(t, errs, tt.wantField, tt.wantRule)
		})
	}
}

func TestValidateQuestionCreate(t *testing.T) {
	bv := NewBusinessValidator()

	tests := []struct {
		name      string
		req       QuestionCreateRequest
		wantField string
		wantRule  string
	}{
		{
			name: "title only",
			req:  QuestionCreateRequest{TeacherID: 1, Title: strPtr("What is gravity?")},
		},
		{
			name: "description only",
			req:  QuestionCreateRequest{TeacherID: 1, Description: strPtr("Explain gravity.")},
		},
		{
			name: "title at limit",
			req:  QuestionCreateRequest{TeacherID: 1, Title: strPtr(strings.Repeat("q", MaxTitleLength))},
		},
		{
			name:      "neither field",
			req:       QuestionCreateRequest{TeacherID: 1},
			wantField: "title",
			wantRule:  "required_without",
		},
		{
			name:      "both fields blank",
			req:       QuestionCreateRequest{TeacherID: 1, Title: strPtr("  "), Description: strPtr("")},
			wantField: "title",
			wantRule:  "required_without",
		},
		{
			name:      "title over limit",
			req:       QuestionCreateRequest{TeacherID: 1, Title: strPtr(strings.Repeat("q", MaxTitleLength+1))},
			wantField: "title",
			wantRule:  "max",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := bv.ValidateQuestionCreate(&tt.req)
			assertValidation(t, errs, tt.wantField, tt.wantRule)
		})
	}
}

func TestValidateQuestionUpdate(t *testing.T) {
	bv := NewBusinessValidator()
	existing := &models.Question{ID: 10, TeacherID: 1, Title: strPtr("Old title")}

	tests := []struct {
		name      string
		req       QuestionUpdateRequest
		existing  *models.Question
		wantField string
		wantRule  string
	}{
		{
			name:     "replace title",
			req:      QuestionUpdateRequest{TeacherID: 1, Title: OptionalString{Set: true, Value: strPtr("New title")}},
			existing: existing,
		},
		{
			name:     "clear title while setting description",
			req:      QuestionUpdateRequest{TeacherID: 1, Title: OptionalString{Set: true}, Description: OptionalString{Set: true, Value: strPtr("Kept content")}},
			existing: existing,
		},
		{
			name:     "no fields provided keeps existing content",
			req:      QuestionUpdateRequest{TeacherID: 1},
			existing: existing,
		},
		{
			name:      "clearing the only content",
			req:       QuestionUpdateRequest{TeacherID: 1, Title: OptionalString{Set: true}},
			existing:  existing,
			wantField: "title",
			wantRule:  "required_without",
		},
		{
			name:      "blank strings count as clearing",
			req:       QuestionUpdateRequest{TeacherID: 1, Title: OptionalString{Set: true, Value: strPtr("  ")}},
			existing:  existing,
			wantField: "title",
			wantRule:  "required_without",
		},
		{
			name:      "title over limit",
			req:       QuestionUpdateRequest{TeacherID: 1, Title: OptionalString{Set: true, Value: strPtr(strings.Repeat("q", MaxTitleLength+1))}},
			existing:  existing,
			wantField: "title",
			wantRule:  "max",
		},
		{
			name:     "clearing title with stored description",
			req:      QuestionUpdateRequest{TeacherID: 1, Title: OptionalString{Set: true}},
			existing: &models.Question{ID: 11, TeacherID: 1, Title: strPtr("Old"), Description: strPtr("Stored text")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := bv.ValidateQuestionUpdate(&tt.req, tt.existing)
			assertValidation(t, errs, tt.wantField, tt.wantRule)
		})
	}
}

func TestValidateAnswerText(t *testing.T) {
	bv := NewBusinessValidator()

	tests := []struct {
		name     string
		answer   string
		wantRule string
	}{
		{name: "valid answer", answer: "The mitochondria."},
		{name: "empty answer", answer: "", wantRule: "not_blank"},
		{name: "whitespace answer", answer: " \t\n ", wantRule: "not_blank"},
	}

	for _, tt := range tests {
		t.Run("create "+tt.name, func(t *testing.T) {
			errs := bv.ValidateAnswerCreate(&AnswerCreateRequest{StudentID: 2, Answer: tt.answer})
			wantField := ""
			if tt.wantRule != "" {
				wantField = "answer"
			}
			assertValidation(t, errs, wantField, tt.wantRule)
		})
		t.Run("update "+tt.name, func(t *testing.T) {
			errs := bv.ValidateAnswerUpdate(&AnswerUpdateRequest{StudentID: 2, Answer: tt.answer})
			wantField := ""
			if tt.wantRule != "" {
				wantField = "answer"
			}
			assertValidation(t, errs, wantField, tt.wantRule)
		})
	}
}

func TestStructTagValidation(t *testing.T) {
	bv := NewBusinessValidator()

	t.Run("field errors use json names and friendly messages", func(t *testing.T) {
		errs := bv.Validate(&UserCreateRequest{Name: "  ", Role: "principal"})
		if len(errs) != 2 {
			t.Fatalf("expected 2 errors, got %v", errs)
		}
		if errs[0].Field != "name" || errs[0].Message != "name is required and must be a non-empty string" {
			t.Errorf("unexpected name error %+v", errs[0])
		}
		if errs[1].Field != "role" || errs[1].Message != `role must be "teacher" or "student"` {
			t.Errorf("unexpected role error %+v", errs[1])
		}
	})

	t.Run("tag rules run before the content rule", func(t *testing.T) {
		errs := bv.ValidateQuestionCreate(&QuestionCreateRequest{})
		if len(errs) == 0 || errs[0].Field != "teacher_id" || errs[0].Rule != "required" {
			t.Fatalf("expected a teacher_id required error first, got %v", errs)
		}
	})

	t.Run("max length carries the tag parameter", func(t *testing.T) {
		long := strings.Repeat("a", MaxNameLength+1)
		errs := bv.Validate(&UserCreateRequest{Name: long, Role: models.RoleStudent})
		if len(errs) != 1 || errs[0].Rule != "max" {
			t.Fatalf("expected one max error, got %v", errs)
		}
		if errs[0].Message != "name must be at most 100 characters" {
			t.Errorf("unexpected message %q", errs[0].Message)
		}
	})
}

func TestValidateDeleteRequests(t *testing.T) {
	bv := NewBusinessValidator()

	if errs := bv.ValidateQuestionDelete(&QuestionDeleteRequest{TeacherID: 1}); len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
	if errs := bv.ValidateQuestionDelete(&QuestionDeleteRequest{}); len(errs) == 0 || errs[0].Field != "teacher_id" {
		t.Errorf("expected a teacher_id error, got %v", errs)
	}
	if errs := bv.ValidateAnswerDelete(&AnswerDeleteRequest{StudentID: 2}); len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
	if errs := bv.ValidateAnswerDelete(&AnswerDeleteRequest{}); len(errs) == 0 || errs[0].Field != "student_id" {
		t.Errorf("expected a student_id error, got %v", errs)
	}
}

func TestOptionalStringUnmarshal(t *testing.T) {
	type payload struct {
		Title OptionalString `json:"title"`
	}

	tests := []struct {
		name      string
		body      string
		wantSet   bool
		wantValue *string
	}{
		{name: "omitted", body: `{}`, wantSet: false},
		{name: "explicit null", body: `{"title": null}`, wantSet: true, wantValue: nil},
		{name: "empty string", body: `{"title": ""}`, wantSet: true, wantValue: strPtr("")},
		{name: "value", body: `{"title": "Hello"}`, wantSet: true, wantValue: strPtr("Hello")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload
			if err := json.Unmarshal([]byte(tt.body), &p); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if p.Title.Set != tt.wantSet {
				t.Errorf("Set = %v, want %v", p.Title.Set, tt.wantSet)
			}
			if (p.Title.Value == nil) != (tt.wantValue == nil) {
				t.Fatalf("Value = %v, want %v", p.Title.Value, tt.wantValue)
			}
			if p.Title.Value != nil && *p.Title.Value != *tt.wantValue {
				t.Errorf("Value = %q, want %q", *p.Title.Value, *tt.wantValue)
			}
		})
	}
}

// assertValidation checks a validation result against an expected first
// failure; empty wantField means the input must pass.
func assertValidation(t *testing.T, errs ValidationErrors, wantField, wantRule string) {
	t.Helper()
	if wantField == "" {
		if len(errs) != 0 {
			t.Fatalf("expected no errors, got %v", errs)
		}
		return
	}
	if len(errs) == 0 {
		t.Fatalf("expected a %s error on %s, got none", wantRule, wantField)
	}
	if errs[0].Field != wantField {
		t.Errorf("expected failure on %s, got %s", wantField, errs[0].Field)
	}
	if errs[0].Rule != wantRule {
		t.Errorf("expected rule %s, got %s", wantRule, errs[0].Rule)
	}
}
