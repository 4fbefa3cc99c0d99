package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/classroom-apps/qa-service/internal/models"
	"github.com/classroom-apps/qa-service/internal/repositories"
)

// mockRepository is an in-memory Repository for service tests.
type mockRepository struct {
	users     *mockUserRepo
	questions *mockQuestionRepo
	answers   *mockAnswerRepo
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		users:     &mockUserRepo{rows: map[uint]*models.User{}},
		questions: &mockQuestionRepo{rows: map[uint]*models.Question{}},
		answers:   &mockAnswerRepo{rows: map[uint]*models.Answer{}},
	}
}

func (m *mockRepository) User() repositories.UserRepository         { return m.users }
func (m *mockRepository) Question() repositories.QuestionRepository { return m.questions }
func (m *mockRepository) Answer() repositories.AnswerRepository     { return m.answers }
func (m *mockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}
func (m *mockRepository) Ping(ctx context.Context) error { return nil }
func (m *mockRepository) Close() error                   { return nil }

// seedUser inserts a user directly, bypassing validation.
func (m *mockRepository) seedUser(id uint, name string, role models.UserRole) *models.User {
	user := &models.User{ID: id, Name: name, Role: role, CreatedAt: time.Now()}
	m.users.rows[id] = user
	if id >= m.users.nextID {
		m.users.nextID = id + 1
	}
	return user
}

func (m *mockRepository) seedQuestion(id, teacherID uint, title, description *string) *models.Question {
	q := &models.Question{ID: id, TeacherID: teacherID, Title: title, Description: description, CreatedAt: time.Now()}
	m.questions.rows[id] = q
	if id >= m.questions.nextID {
		m.questions.nextID = id + 1
	}
	return q
}

func (m *mockRepository) seedAnswer(id, questionID, studentID uint, text string) *models.Answer {
	a := &models.Answer{ID: id, QuestionID: questionID, StudentID: studentID, Answer: text, CreatedAt: time.Now()}
	m.answers.rows[id] = a
	if id >= m.answers.nextID {
		m.answers.nextID = id + 1
	}
	return a
}

// ===== USER REPO =====

type mockUserRepo struct {
	rows   map[uint]*models.User
	nextID uint

	// batchErr makes GetByIDs fail, for enrichment degradation tests.
	batchErr error
}

func (r *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if r.nextID == 0 {
		r.nextID = 1
	}
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	r.rows[user.ID] = user
	return nil
}

func (r *mockUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, ok := r.rows[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, repositories.ErrNotFound)
	}
	return user, nil
}

func (r *mockUserRepo) GetByIDs(ctx context.Context, ids []uint) ([]*models.User, error) {
	if r.batchErr != nil {
		return nil, r.batchErr
	}
	var users []*models.User
	for _, id := range ids {
		if user, ok := r.rows[id]; ok {
			users = append(users, user)
		}
	}
	return users, nil
}

// ===== QUESTION REPO =====

type mockQuestionRepo struct {
	rows   map[uint]*models.Question
	nextID uint
}

func (r *mockQuestionRepo) Create(ctx context.Context, question *models.Question) error {
	if r.nextID == 0 {
		r.nextID = 1
	}
	question.ID = r.nextID
	r.nextID++
	question.CreatedAt = time.Now()
	r.rows[question.ID] = question
	return nil
}

func (r *mockQuestionRepo) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	q, ok := r.rows[id]
	if !ok {
		return nil, fmt.Errorf("question %d: %w", id, repositories.ErrNotFound)
	}
	copied := *q
	return &copied, nil
}

func (r *mockQuestionRepo) List(ctx context.Context) ([]*models.Question, error) {
	var questions []*models.Question
	for _, q := range r.rows {
		questions = append(questions, q)
	}
	sort.Slice(questions, func(i, j int) bool {
		return questions[i].CreatedAt.After(questions[j].CreatedAt)
	})
	return questions, nil
}

func (r *mockQuestionRepo) Update(ctx context.Context, question *models.Question) error {
	if _, ok := r.rows[question.ID]; !ok {
		return fmt.Errorf("question %d: %w", question.ID, repositories.ErrNotFound)
	}
	copied := *question
	r.rows[question.ID] = &copied
	return nil
}

func (r *mockQuestionRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := r.rows[id]; !ok {
		return fmt.Errorf("question %d: %w", id, repositories.ErrNotFound)
	}
	delete(r.rows, id)
	return nil
}

func (r *mockQuestionRepo) ExistsByID(ctx context.Context, id uint) (bool, error) {
	_, ok := r.rows[id]
	return ok, nil
}

// ===== ANSWER REPO =====

type mockAnswerRepo struct {
	rows   map[uint]*models.Answer
	nextID uint
}

func (r *mockAnswerRepo) Create(ctx context.Context, answer *models.Answer) error {
	if r.nextID == 0 {
		r.nextID = 1
	}
	answer.ID = r.nextID
	r.nextID++
	answer.CreatedAt = time.Now()
	r.rows[answer.ID] = answer
	return nil
}

func (r *mockAnswerRepo) GetByID(ctx context.Context, id uint) (*models.Answer, error) {
	a, ok := r.rows[id]
	if !ok {
		return nil, fmt.Errorf("answer %d: %w", id, repositories.ErrNotFound)
	}
	copied := *a
	return &copied, nil
}

func (r *mockAnswerRepo) ListByQuestion(ctx context.Context, questionID uint) ([]*models.Answer, error) {
	var answers []*models.Answer
	for _, a := range r.rows {
		if a.QuestionID == questionID {
			answers = append(answers, a)
		}
	}
	sort.Slice(answers, func(i, j int) bool {
		return answers[i].CreatedAt.After(answers[j].CreatedAt)
	})
	return answers, nil
}

func (r *mockAnswerRepo) Update(ctx context.Context, answer *models.Answer) error {
	if _, ok := r.rows[answer.ID]; !ok {
		return fmt.Errorf("answer %d: %w", answer.ID, repositories.ErrNotFound)
	}
	copied := *answer
	r.rows[answer.ID] = &copied
	return nil
}

func (r *mockAnswerRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := r.rows[id]; !ok {
		return fmt.Errorf("answer %d: %w", id, repositories.ErrNotFound)
	}
	delete(r.rows, id)
	return nil
}
