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

type questionService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewQuestionService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, publisher events.EventPublisher) QuestionService {
	return &questionService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		publisher: publisher,
	}
}

// ===== CORE CRUD OPERATIONS =====

func (s *questionService) Create(ctx context.Context, req *CreateQuestionRequest) (*QuestionResponse, error) {
	s.logger.Info("Creating question", "teacher_id", req.TeacherID)

	if errs := s.validator.GetBusinessValidator().ValidateQuestionCreate(req); len(errs) > 0 {
		return nil, errs
	}

	// Authorization: the acting user must exist and hold the teacher role.
	teacher, err := s.requireUser(ctx, req.TeacherID)
	if err != nil {
		return nil, err
	}
	if teacher.Role != models.RoleTeacher {
		return nil, NewPermissionError(req.TeacherID, 0, "question", "create", "only teachers can create questions")
	}

	question := &models.Question{
		TeacherID:   req.TeacherID,
		Title:       trimmedOrNil(req.Title),
		Description: trimmedOrNil(req.Description),
	}

	if err := s.repo.Question().Create(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	s.logger.Info("Question created successfully", "question_id", question.ID)
	publishEvent(ctx, s.publisher, s.logger, events.NewEvent(events.QuestionCreated, question.ID, req.TeacherID, nil))

	return &QuestionResponse{Question: question, Teacher: teacher.Summary()}, nil
}

func (s *questionService) GetByID(ctx context.Context, id uint) (*QuestionResponse, error) {
	question, err := s.repo.Question().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}

	responses := s.enrich(ctx, []*models.Question{question})
	return responses[0], nil
}

func (s *questionService) List(ctx context.Context) ([]*QuestionResponse, error) {
	questions, err := s.repo.Question().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return s.enrich(ctx, questions), nil
}

func (s *questionService) Update(ctx context.Context, id uint, req *UpdateQuestionRequest) (*QuestionResponse, error) {
	s.logger.Info("Updating question", "question_id", id, "teacher_id", req.TeacherID)

	question, err := s.repo.Question().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}

	// Ownership first, then role.
	if question.TeacherID != req.TeacherID {
		return nil, NewPermissionError(req.TeacherID, id, "question", "update", "you can only modify your own questions")
	}
	teacher, err := s.requireUser(ctx, req.TeacherID)
	if err != nil {
		return nil, err
	}
	if teacher.Role != models.RoleTeacher {
		return nil, NewPermissionError(req.TeacherID, id, "question", "update", "only teachers can modify questions")
	}

	// Partial update with trailing invariant check: the merged row must keep
	// a title or a description.
	if errs := s.validator.GetBusinessValidator().ValidateQuestionUpdate(req, question); len(errs) > 0 {
		return nil, errs
	}

	applyOptional(req.Title, &question.Title)
	applyOptional(req.Description, &question.Description)

	if err := s.repo.Question().Update(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to update question: %w", err)
	}

	s.logger.Info("Question updated successfully", "question_id", id)
	publishEvent(ctx, s.publisher, s.logger, events.NewEvent(events.QuestionUpdated, id, req.TeacherID, nil))

	return &QuestionResponse{Question: question, Teacher: teacher.Summary()}, nil
}

// Delete enforces ownership the same way Update does. The role check alone
// would let any teacher delete any question; uniform ownership is the
// documented policy here.
func (s *questionService) Delete(ctx context.Context, id uint, req *DeleteQuestionRequest) error {
	s.logger.Info("Deleting question", "question_id", id, "teacher_id", req.TeacherID)

	if errs := s.validator.GetBusinessValidator().ValidateQuestionDelete(req); len(errs) > 0 {
		return errs
	}

	question, err := s.repo.Question().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrQuestionNotFound
		}
		return fmt.Errorf("failed to get question: %w", err)
	}

	if question.TeacherID != req.TeacherID {
		return NewPermissionError(req.TeacherID, id, "question", "delete", "you can only delete your own questions")
	}
	teacher, err := s.requireUser(ctx, req.TeacherID)
	if err != nil {
		return err
	}
	if teacher.Role != models.RoleTeacher {
		return NewPermissionError(req.TeacherID, id, "question", "delete", "only teachers can delete questions")
	}

	if err := s.repo.Question().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}

	s.logger.Info("Question deleted successfully", "question_id", id)
	publishEvent(ctx, s.publisher, s.logger, events.NewEvent(events.QuestionDeleted, id, req.TeacherID, nil))

	return nil
}

// ===== HELPERS =====

func (s *questionService) requireUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// enrich attaches teacher summaries to question rows via one batched user
// lookup. Missing teachers stay nil.
func (s *questionService) enrich(ctx context.Context, questions []*models.Question) []*QuestionResponse {
	ids := make([]uint, len(questions))
	for i, q := range questions {
		ids[i] = q.TeacherID
	}
	summaries := fetchUserSummaries(ctx, s.repo.User(), s.logger, ids)

	responses := make([]*QuestionResponse, len(questions))
	for i, q := range questions {
		responses[i] = &QuestionResponse{Question: q, Teacher: summaries[q.TeacherID]}
	}
	return responses
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// applyOptional merges one partial-update field: unset keeps the stored
// value, explicit null or blank clears it, anything else is stored trimmed.
func applyOptional(opt validator.OptionalString, field **string) {
	if !opt.Set {
		return
	}
	*field = trimmedOrNil(opt.Value)
}
