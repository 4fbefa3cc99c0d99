package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/classroom-apps/qa-service/internal/events"
	"github.com/classroom-apps/qa-service/internal/models"
	"github.com/classroom-apps/qa-service/internal/repositories"
	"github.com/classroom-apps/qa-service/internal/validator"
)

type answerService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewAnswerService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, publisher events.EventPublisher) AnswerService {
	return &answerService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		publisher: publisher,
	}
}

func (s *answerService) Create(ctx context.Context, questionID uint, req *CreateAnswerRequest) (*AnswerResponse, error) {
	s.logger.Info("Creating answer", "question_id", questionID, "student_id", req.StudentID)

	if errs := s.validator.GetBusinessValidator().ValidateAnswerCreate(req); len(errs) > 0 {
		return nil, errs
	}

	exists, err := s.repo.Question().ExistsByID(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to check question existence: %w", err)
	}
	if !exists {
		return nil, ErrQuestionNotFound
	}

	student, err := s.requireUser(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	if student.Role != models.RoleStudent {
		return nil, NewPermissionError(req.StudentID, questionID, "answer", "create", "only students can answer questions")
	}

	answer := &models.Answer{
		QuestionID: questionID,
		StudentID:  req.StudentID,
		Answer:     strings.TrimSpace(req.Answer),
	}

	if err := s.repo.Answer().Create(ctx, answer); err != nil {
		return nil, fmt.Errorf("failed to create answer: %w", err)
	}

	s.logger.Info("Answer created successfully", "answer_id", answer.ID)
	publishEvent(ctx, s.publisher, s.logger, events.NewEvent(events.AnswerCreated, answer.ID, req.StudentID, map[string]any{
		"question_id": questionID,
	}))

	return &AnswerResponse{Answer: answer, Student: student.Summary()}, nil
}

func (s *answerService) ListByQuestion(ctx context.Context, questionID uint) ([]*AnswerResponse, error) {
	exists, err := s.repo.Question().ExistsByID(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to check question existence: %w", err)
	}
	if !exists {
		return nil, ErrQuestionNotFound
	}

	answers, err := s.repo.Answer().ListByQuestion(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list answers: %w", err)
	}

	return s.enrich(ctx, answers), nil
}

func (s *answerService) Update(ctx context.Context, questionID, answerID uint, req *UpdateAnswerRequest) (*AnswerResponse, error) {
	s.logger.Info("Updating answer", "answer_id", answerID, "student_id", req.StudentID)

	if errs := s.validator.GetBusinessValidator().ValidateAnswerUpdate(req); len(errs) > 0 {
		return nil, errs
	}

	answer, err := s.getScopedAnswer(ctx, questionID, answerID)
	if err != nil {
		return nil, err
	}

	// Ownership first, then role.
	if answer.StudentID != req.StudentID {
		return nil, NewPermissionError(req.StudentID, answerID, "answer", "update", "you can only modify your own answers")
	}
	student, err := s.requireUser(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	if student.Role != models.RoleStudent {
		return nil, NewPermissionError(req.StudentID, answerID, "answer", "update", "only students can modify answers")
	}

	answer.Answer = strings.TrimSpace(req.Answer)
	if err := s.repo.Answer().Update(ctx, answer); err != nil {
		return nil, fmt.Errorf("failed to update answer: %w", err)
	}

	s.logger.Info("Answer updated successfully", "answer_id", answerID)
	publishEvent(ctx, s.publisher, s.logger, events.NewEvent(events.AnswerUpdated, answerID, req.StudentID, nil))

	return &AnswerResponse{Answer: answer, Student: student.Summary()}, nil
}

func (s *answerService) Delete(ctx context.Context, questionID, answerID uint, req *DeleteAnswerRequest) error {
	s.logger.Info("Deleting answer", "answer_id", answerID, "student_id", req.StudentID)

	if errs := s.validator.GetBusinessValidator().ValidateAnswerDelete(req); len(errs) > 0 {
		return errs
	}

	answer, err := s.getScopedAnswer(ctx, questionID, answerID)
	if err != nil {
		return err
	}

	if answer.StudentID != req.StudentID {
		return NewPermissionError(req.StudentID, answerID, "answer", "delete", "you can only delete your own answers")
	}
	student, err := s.requireUser(ctx, req.StudentID)
	if err != nil {
		return err
	}
	if student.Role != models.RoleStudent {
		return NewPermissionError(req.StudentID, answerID, "answer", "delete", "only students can delete answers")
	}

	if err := s.repo.Answer().Delete(ctx, answerID); err != nil {
		return fmt.Errorf("failed to delete answer: %w", err)
	}

	s.logger.Info("Answer deleted successfully", "answer_id", answerID)
	publishEvent(ctx, s.publisher, s.logger, events.NewEvent(events.AnswerDeleted, answerID, req.StudentID, nil))

	return nil
}

// ===== HELPERS =====

// getScopedAnswer fetches an answer and verifies it belongs to the question
// named in the path. An answer under a different question is a not-found,
// not a forbidden: the path simply does not designate it.
func (s *answerService) getScopedAnswer(ctx context.Context, questionID, answerID uint) (*models.Answer, error) {
	answer, err := s.repo.Answer().GetByID(ctx, answerID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAnswerNotFound
		}
		return nil, fmt.Errorf("failed to get answer: %w", err)
	}
	if answer.QuestionID != questionID {
		return nil, ErrAnswerNotFound
	}
	return answer, nil
}

func (s *answerService) requireUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// enrich attaches student summaries to answer rows via one batched user
// lookup. Missing students stay nil.
func (s *answerService) enrich(ctx context.Context, answers []*models.Answer) []*AnswerResponse {
	ids := make([]uint, len(answers))
	for i, a := range answers {
		ids[i] = a.StudentID
	}
	summaries := fetchUserSummaries(ctx, s.repo.User(), s.logger, ids)

	responses := make([]*AnswerResponse, len(answers))
	for i, a := range answers {
		responses[i] = &AnswerResponse{Answer: a, Student: summaries[a.StudentID]}
	}
	return responses
}
