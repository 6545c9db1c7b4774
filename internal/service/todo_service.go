package service

import (
	"context"
	"errors"
	"strings"

	"todo_service/internal/models"
	"todo_service/internal/repository"
)

// Domain errors for todo flows. ErrTodoNotFound covers both "no such todo"
// and "someone else's todo" so existence never leaks across owners.
var (
	ErrTodoNotFound = errors.New("todo not found")
	ErrEmptyTitle   = errors.New("title is empty")
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

// CreateTodoParams is the creation input. The owner is passed separately and
// always comes from the resolved identity.
type CreateTodoParams struct {
	Title       string
	Description string
	Completed   bool
}

// TodoService handles owner-scoped todo CRUD.
type TodoService struct {
	todoRepo repository.Todos
}

func NewTodoService(todoRepo repository.Todos) *TodoService {
	return &TodoService{todoRepo: todoRepo}
}

// Create stores a new todo for the given owner and returns it with its
// assigned id.
func (s *TodoService) Create(ctx context.Context, ownerID int, in CreateTodoParams) (*models.Todo, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrEmptyTitle
	}

	id, err := s.todoRepo.Create(ctx, models.Todo{
		Title:       in.Title,
		Description: in.Description,
		Completed:   in.Completed,
		OwnerID:     ownerID,
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id, ownerID)
}

// Get returns one todo, only when it belongs to the given owner.
func (s *TodoService) Get(ctx context.Context, id, ownerID int) (*models.Todo, error) {
	t, err := s.todoRepo.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTodoNotFound
	}
	return t, nil
}

// List returns the owner's todos in insertion order. Offset defaults to 0,
// limit to 10, with an upper bound to keep responses small.
func (s *TodoService) List(ctx context.Context, ownerID, offset, limit int) ([]models.Todo, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return s.todoRepo.List(ctx, ownerID, offset, limit)
}

// ListCompleted returns only the owner's completed todos.
func (s *TodoService) ListCompleted(ctx context.Context, ownerID int) ([]models.Todo, error) {
	return s.todoRepo.ListCompleted(ctx, ownerID)
}

// Update applies a partial patch under the same id+owner rule as Get.
// An empty patch returns the current record unchanged.
func (s *TodoService) Update(ctx context.Context, id, ownerID int, p models.TodoPatch) (*models.Todo, error) {
	t, err := s.Get(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return nil, ErrEmptyTitle
	}
	if p.IsEmpty() {
		return t, nil
	}
	if err := s.todoRepo.Update(ctx, id, ownerID, p); err != nil {
		return nil, err
	}
	return s.Get(ctx, id, ownerID)
}

// Delete removes one todo under the id+owner rule and returns the prior
// record.
func (s *TodoService) Delete(ctx context.Context, id, ownerID int) (*models.Todo, error) {
	t, err := s.Get(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if err := s.todoRepo.Delete(ctx, id, ownerID); err != nil {
		return nil, err
	}
	return t, nil
}
