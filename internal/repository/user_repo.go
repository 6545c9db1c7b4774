package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"todo_service/internal/models"
)

type UserSQLite struct {
	db *sql.DB
}

func NewUserSQLite(db *sql.DB) *UserSQLite {
	return &UserSQLite{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserSQLite)(nil)

const (
	insertUserSQL        = `INSERT INTO users (email, username, password_hash, is_active) VALUES (?, ?, ?, ?)`
	selectUserByIDSQL    = `SELECT id, email, username, password_hash, is_active FROM users WHERE id = ?`
	selectUserByEmailSQL = `SELECT id, email, username, password_hash, is_active FROM users WHERE email = ?`
	deleteUserSQL        = `DELETE FROM users WHERE id = ?`
)

// classifyUniqueViolation maps a SQLite UNIQUE failure on one of the users
// columns to a typed duplicate error. Returns nil for unrelated errors.
func classifyUniqueViolation(err error) error {
	msg := err.Error()
	if !strings.Contains(msg, "UNIQUE constraint failed") {
		return nil
	}
	switch {
	case strings.Contains(msg, "users.email"):
		return ErrDuplicateEmail
	case strings.Contains(msg, "users.username"):
		return ErrDuplicateUsername
	}
	return nil
}

// nullableString stores "" as NULL so the UNIQUE index on users.username
// ignores accounts that never set one.
func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// Create inserts a new user and returns its ID.
func (r *UserSQLite) Create(ctx context.Context, email, username, passwordHash string, isActive bool) (int, error) {
	res, err := r.db.ExecContext(ctx, insertUserSQL, email, nullableString(username), passwordHash, isActive)
	if err != nil {
		if dup := classifyUniqueViolation(err); dup != nil {
			return 0, dup
		}
		return 0, fmt.Errorf("insert user %q: %w", email, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", email, err)
	}
	return int(lastID), nil
}

// GetByID fetches a user by id. Returns (nil, nil) if not found.
func (r *UserSQLite) GetByID(ctx context.Context, id int) (*models.User, error) {
	u, err := r.scanUser(r.db.QueryRowContext(ctx, selectUserByIDSQL, id))
	if err != nil {
		return nil, fmt.Errorf("select user %d: %w", id, err)
	}
	return u, nil
}

// GetByEmail fetches a user by email. Returns (nil, nil) if not found.
func (r *UserSQLite) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := r.scanUser(r.db.QueryRowContext(ctx, selectUserByEmailSQL, email))
	if err != nil {
		return nil, fmt.Errorf("select user %q: %w", email, err)
	}
	return u, nil
}

func (r *UserSQLite) scanUser(row *sql.Row) (*models.User, error) {
	var (
		u        models.User
		username sql.NullString
	)
	err := row.Scan(&u.ID, &u.Email, &username, &u.PasswordHash, &u.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.Username = username.String
	return &u, nil
}

// Update applies the non-nil patch fields. A patch with no fields is a no-op.
func (r *UserSQLite) Update(ctx context.Context, id int, p models.UserPatch) error {
	var (
		sets []string
		args []any
	)
	if p.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *p.Email)
	}
	if p.Username != nil {
		sets = append(sets, "username = ?")
		args = append(args, nullableString(*p.Username))
	}
	if p.Password != nil {
		sets = append(sets, "password_hash = ?")
		args = append(args, *p.Password)
	}
	if p.IsActive != nil {
		sets = append(sets, "is_active = ?")
		args = append(args, *p.IsActive)
	}
	if len(sets) == 0 {
		return nil
	}

	q := "UPDATE users SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	args = append(args, id)

	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		if dup := classifyUniqueViolation(err); dup != nil {
			return dup
		}
		return fmt.Errorf("update user %d: %w", id, err)
	}
	return nil
}

// Delete removes a user row; todos cascade at the schema level.
func (r *UserSQLite) Delete(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, deleteUserSQL, id); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return nil
}
