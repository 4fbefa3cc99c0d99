package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/classroom-apps/qa-service/internal/events"
	"github.com/classroom-apps/qa-service/internal/repositories"
	"github.com/classroom-apps/qa-service/internal/validator"
)

// serviceManager implements ServiceManager.
type serviceManager struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher

	userService     UserService
	questionService QuestionService
	answerService   AnswerService

	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a service manager with all dependencies.
// publisher may be nil; services then skip event publishing.
func NewServiceManager(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, publisher events.EventPublisher) ServiceManager {
	return &serviceManager{
		repo:      repo,
		logger:    logger,
		validator: validator,
		publisher: publisher,
	}
}

func (m *serviceManager) Initialize(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if m.repo == nil {
		return fmt.Errorf("service manager requires a repository")
	}

	m.userService = NewUserService(m.repo, m.logger, m.validator, m.publisher)
	m.questionService = NewQuestionService(m.repo, m.logger, m.validator, m.publisher)
	m.answerService = NewAnswerService(m.repo, m.logger, m.validator, m.publisher)

	if err := m.repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository ping failed: %w", err)
	}

	m.initialized = true
	m.logger.Info("Services initialized")
	return nil
}

func (m *serviceManager) User() UserService {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.userService
}

func (m *serviceManager) Question() QuestionService {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.questionService
}

func (m *serviceManager) Answer() AnswerService {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.answerService
}

func (m *serviceManager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.shutdown {
		return nil
	}
	m.shutdown = true

	if m.publisher != nil {
		if err := m.publisher.Close(); err != nil {
			m.logger.Warn("Failed to close event publisher", "error", err)
		}
	}

	m.logger.Info("Services shut down")
	return nil
}
