package service

import (
	"context"
	"time"

	"todo_service/internal/models"
	"todo_service/internal/repository"
)

// Authorization covers token issuance, verification and the resolution of a
// bearer token to a live account.
type Authorization interface {
	GenerateToken(ctx context.Context, email, password string) (string, error)
	ParseToken(accessToken string) (int, error)
	AuthorizeToken(ctx context.Context, accessToken string) (*models.User, error)
}

// Users exposes account CRUD plus credential checking.
type Users interface {
	Create(ctx context.Context, in CreateUserParams) (*models.User, error)
	Get(ctx context.Context, id int) (*models.User, error)
	Update(ctx context.Context, id int, p models.UserPatch) (*models.User, error)
	Delete(ctx context.Context, id int) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
}

// Todos exposes owner-scoped todo CRUD. The owner id always comes from the
// resolved identity, never from client input.
type Todos interface {
	Create(ctx context.Context, ownerID int, in CreateTodoParams) (*models.Todo, error)
	Get(ctx context.Context, id, ownerID int) (*models.Todo, error)
	List(ctx context.Context, ownerID, offset, limit int) ([]models.Todo, error)
	ListCompleted(ctx context.Context, ownerID int) ([]models.Todo, error)
	Update(ctx context.Context, id, ownerID int, p models.TodoPatch) (*models.Todo, error)
	Delete(ctx context.Context, id, ownerID int) (*models.Todo, error)
}

// TokenConfig is the process-wide signing configuration, fixed at startup.
// Rotating the key invalidates every outstanding token.
type TokenConfig struct {
	SigningKey string
	TTL        time.Duration
}

// Service aggregates all sub-services behind one wiring point.
type Service struct {
	Authorization Authorization
	Users         Users
	Todos         Todos
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, tokens TokenConfig) *Service {
	users := NewUserService(repos.Users)
	return &Service{
		Authorization: NewAuthService(repos.Users, users, tokens),
		Users:         users,
		Todos:         NewTodoService(repos.Todos),
	}
}
