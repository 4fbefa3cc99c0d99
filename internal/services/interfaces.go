package services

import (
	"context"

	"github.com/classroom-apps/qa-service/internal/models"
	"github.com/classroom-apps/qa-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Request types come from the validator package so struct rules and business
// rules live next to each other.
type CreateUserRequest = validator.UserCreateRequest
type CreateQuestionRequest = validator.QuestionCreateRequest
type UpdateQuestionRequest = validator.QuestionUpdateRequest
type DeleteQuestionRequest = validator.QuestionDeleteRequest
type CreateAnswerRequest = validator.AnswerCreateRequest
type UpdateAnswerRequest = validator.AnswerUpdateRequest
type DeleteAnswerRequest = validator.AnswerDeleteRequest

// QuestionResponse is a question enriched with its teacher. Teacher is nil
// when the user lookup found no row or failed; enrichment is best-effort and
// never fails the request.
type QuestionResponse struct {
	*models.Question
	Teacher *models.UserSummary `json:"teacher"`
}

// AnswerResponse is an answer enriched with its student author. Student is
// nil under the same best-effort policy as QuestionResponse.Teacher.
type AnswerResponse struct {
	*models.Answer
	Student *models.UserSummary `json:"student"`
}

// ===== SERVICE INTERFACES =====

type UserService interface {
	Create(ctx context.Context, req *CreateUserRequest) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

type QuestionService interface {
	Create(ctx context.Context, req *CreateQuestionRequest) (*QuestionResponse, error)
	GetByID(ctx context.Context, id uint) (*QuestionResponse, error)
	List(ctx context.Context) ([]*QuestionResponse, error)
	Update(ctx context.Context, id uint, req *UpdateQuestionRequest) (*QuestionResponse, error)
	Delete(ctx context.Context, id uint, req *DeleteQuestionRequest) error
}

type AnswerService interface {
	Create(ctx context.Context, questionID uint, req *CreateAnswerRequest) (*AnswerResponse, error)
	ListByQuestion(ctx context.Context, questionID uint) ([]*AnswerResponse, error)
	Update(ctx context.Context, questionID, answerID uint, req *UpdateAnswerRequest) (*AnswerResponse, error)
	Delete(ctx context.Context, questionID, answerID uint, req *DeleteAnswerRequest) error
}

// ServiceManager wires and owns all services.
type ServiceManager interface {
	User() UserService
	Question() QuestionService
	Answer() AnswerService

	Initialize(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
