package repository

import (
	"context"
	"database/sql"
	"errors"

	"todo_service/internal/models"
)

// Duplicate-key violations surfaced by the users table. Registration relies
// on these instead of a racy existence pre-check.
var (
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrDuplicateUsername = errors.New("username already taken")
)

// Users is CRUD over account records. Password hashes are opaque strings
// here; hashing belongs to the service layer.
type Users interface {
	Create(ctx context.Context, email, username, passwordHash string, isActive bool) (int, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Update applies only non-nil patch fields. The Password field, when
	// present, must already contain a bcrypt hash.
	Update(ctx context.Context, id int, p models.UserPatch) error
	Delete(ctx context.Context, id int) error
}

// Todos is CRUD over todo records. Every method takes the owning user's id
// and matches rows on id AND owner_id; a miss on either looks identical.
type Todos interface {
	Create(ctx context.Context, t models.Todo) (int, error)
	GetByID(ctx context.Context, id, ownerID int) (*models.Todo, error)
	List(ctx context.Context, ownerID, offset, limit int) ([]models.Todo, error)
	ListCompleted(ctx context.Context, ownerID int) ([]models.Todo, error)
	Update(ctx context.Context, id, ownerID int, p models.TodoPatch) error
	Delete(ctx context.Context, id, ownerID int) error
}

type Repository struct {
	Users Users
	Todos Todos
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users: NewUserSQLite(db),
		Todos: NewTodoSQLite(db),
	}
}
