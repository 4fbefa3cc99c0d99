package repositories

import "context"

// Repository aggregates the per-entity repositories.
type Repository interface {
	User() UserRepository
	Question() QuestionRepository
	Answer() AnswerRepository

	// WithTransaction runs fn with a Repository bound to one transaction.
	// The CRUD paths in this service are deliberately not transactional
	// (check-then-mutate races are an accepted part of the design); this
	// exists for callers that do need atomicity.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	Ping(ctx context.Context) error
	Close() error
}

// RepositoryManager owns repository lifecycle.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
