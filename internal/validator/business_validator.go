package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/classroom-apps/qa-service/internal/models"
)

const (
	MaxNameLength  = 100
	MaxTitleLength = 200
)

// ValidationError represents a single failed request rule.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

// BusinessValidator runs struct tag validation on every request type and the
// cross-field rules that cannot be expressed as tags. Validation never
// touches the store.
type BusinessValidator struct {
	validate *validator.Validate
}

func NewBusinessValidator() *BusinessValidator {
	validate := validator.New()

	// Report json field names instead of Go field names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	bv := &BusinessValidator{validate: validate}
	bv.registerBusinessRules()
	return bv
}

// Validate runs struct tag validation and translates the field errors.
func (bv *BusinessValidator) Validate(s interface{}) ValidationErrors {
	err := bv.validate.Struct(s)
	if err == nil {
		return nil
	}

	var errors ValidationErrors
	for _, fieldErr := range err.(validator.ValidationErrors) {
		errors = append(errors, ValidationError{
			Field:   fieldErr.Field(),
			Message: fmt.Sprintf("%s %s", fieldErr.Field(), bv.getErrorMessage(fieldErr)),
			Value:   fieldErr.Value(),
			Rule:    fieldErr.Tag(),
		})
	}
	return errors
}

// ValidateUserCreate: name required, non-empty after trimming, at most 100
// characters; role must be exactly teacher or student.
func (bv *BusinessValidator) ValidateUserCreate(req *UserCreateRequest) ValidationErrors {
	return bv.Validate(req)
}

// ValidateQuestionCreate applies the lenient question policy: tag rules
// first, then at least one of title/description must be non-empty after
// trimming.
func (bv *BusinessValidator) ValidateQuestionCreate(req *QuestionCreateRequest) ValidationErrors {
	if errs := bv.Validate(req); len(errs) > 0 {
		return errs
	}
	return requireContent(req.Title, req.Description)
}

// ValidateQuestionUpdate checks provided fields and the merged result: after
// applying the update to the existing row, at least one of title/description
// must remain non-empty.
func (bv *BusinessValidator) ValidateQuestionUpdate(req *QuestionUpdateRequest, existing *models.Question) ValidationErrors {
	if errs := bv.Validate(req); len(errs) > 0 {
		return errs
	}

	// OptionalString is opaque to tag validation, so the title cap is
	// checked by hand here.
	if req.Title.Set && req.Title.Value != nil && len(*req.Title.Value) > MaxTitleLength {
		return ValidationErrors{{
			Field:   "title",
			Message: fmt.Sprintf("title must be at most %d characters", MaxTitleLength),
			Value:   len(*req.Title.Value),
			Rule:    "max",
		}}
	}

	finalTitle := mergeOptional(req.Title, existing.Title)
	finalDescription := mergeOptional(req.Description, existing.Description)
	return requireContent(finalTitle, finalDescription)
}

// ValidateQuestionDelete checks the acting teacher is named.
func (bv *BusinessValidator) ValidateQuestionDelete(req *QuestionDeleteRequest) ValidationErrors {
	return bv.Validate(req)
}

// ValidateAnswerCreate: answer required, non-empty after trimming.
func (bv *BusinessValidator) ValidateAnswerCreate(req *AnswerCreateRequest) ValidationErrors {
	return bv.Validate(req)
}

// ValidateAnswerUpdate applies the same answer text rule as create.
func (bv *BusinessValidator) ValidateAnswerUpdate(req *AnswerUpdateRequest) ValidationErrors {
	return bv.Validate(req)
}

// ValidateAnswerDelete checks the acting student is named.
func (bv *BusinessValidator) ValidateAnswerDelete(req *AnswerDeleteRequest) ValidationErrors {
	return bv.Validate(req)
}

// registerBusinessRules registers custom rule validators.
func (bv *BusinessValidator) registerBusinessRules() {
	// Non-empty after trimming.
	bv.validate.RegisterValidation("not_blank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// getErrorMessage returns user-friendly error messages.
func (bv *BusinessValidator) getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "not_blank":
		return "is required and must be a non-empty string"
	case "max":
		return fmt.Sprintf("must be at most %s characters", err.Param())
	case "oneof":
		options := strings.Fields(err.Param())
		for i, opt := range options {
			options[i] = fmt.Sprintf("%q", opt)
		}
		return fmt.Sprintf("must be %s", strings.Join(options, " or "))
	default:
		return fmt.Sprintf("failed %s validation", err.Tag())
	}
}

// requireContent enforces the content rule shared by question create and
// update: a question carries a title, a description, or both.
func requireContent(title, description *string) ValidationErrors {
	hasTitle := title != nil && strings.TrimSpace(*title) != ""
	hasDescription := description != nil && strings.TrimSpace(*description) != ""
	if !hasTitle && !hasDescription {
		return ValidationErrors{{
			Field:   "title",
			Message: "at least one of title or description is required",
			Rule:    "required_without",
		}}
	}
	return nil
}

// mergeOptional resolves the value a field would have after the update.
// Trimmed-empty inputs count as clearing the field.
func mergeOptional(opt OptionalString, current *string) *string {
	if !opt.Set {
		if current != nil && strings.TrimSpace(*current) == "" {
			return nil
		}
		return current
	}
	if opt.Value == nil || strings.TrimSpace(*opt.Value) == "" {
		return nil
	}
	return opt.Value
}
