package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"todo_service/internal/models"
)

type TodoSQLite struct {
	db *sql.DB
}

func NewTodoSQLite(db *sql.DB) *TodoSQLite {
	return &TodoSQLite{db: db}
}

// Ensure implementation of Todos interface at compile time.
var _ Todos = (*TodoSQLite)(nil)

// Every query that touches an existing row matches on id AND owner_id, so a
// foreign user's todo is indistinguishable from a missing one.
const (
	insertTodoSQL = `INSERT INTO todos (title, description, completed, owner_id) VALUES (?, ?, ?, ?)`
	selectTodoSQL = `SELECT id, title, description, completed, owner_id FROM todos WHERE id = ? AND owner_id = ?`
	listTodosSQL  = `SELECT id, title, description, completed, owner_id FROM todos WHERE owner_id = ? ORDER BY id ASC LIMIT ? OFFSET ?`
	listDoneSQL   = `SELECT id, title, description, completed, owner_id FROM todos WHERE owner_id = ? AND completed = 1 ORDER BY id ASC`
	deleteTodoSQL = `DELETE FROM todos WHERE id = ? AND owner_id = ?`
)

// Create inserts a new todo and returns its ID.
func (r *TodoSQLite) Create(ctx context.Context, t models.Todo) (int, error) {
	res, err := r.db.ExecContext(ctx, insertTodoSQL, t.Title, t.Description, t.Completed, t.OwnerID)
	if err != nil {
		return 0, fmt.Errorf("insert todo for user %d: %w", t.OwnerID, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for todo: %w", err)
	}
	return int(lastID), nil
}

// GetByID fetches one todo by id for the given owner. Returns (nil, nil)
// when no row matches both.
func (r *TodoSQLite) GetByID(ctx context.Context, id, ownerID int) (*models.Todo, error) {
	var t models.Todo
	err := r.db.QueryRowContext(ctx, selectTodoSQL, id, ownerID).
		Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.OwnerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select todo %d for user %d: %w", id, ownerID, err)
	}
	return &t, nil
}

// List returns the owner's todos in insertion order with LIMIT/OFFSET
// pagination. Defaults are the caller's concern.
func (r *TodoSQLite) List(ctx context.Context, ownerID, offset, limit int) ([]models.Todo, error) {
	rows, err := r.db.QueryContext(ctx, listTodosSQL, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list todos for user %d: %w", ownerID, err)
	}
	return collectTodos(rows)
}

// ListCompleted returns only the owner's completed todos.
func (r *TodoSQLite) ListCompleted(ctx context.Context, ownerID int) ([]models.Todo, error) {
	rows, err := r.db.QueryContext(ctx, listDoneSQL, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list completed todos for user %d: %w", ownerID, err)
	}
	return collectTodos(rows)
}

func collectTodos(rows *sql.Rows) ([]models.Todo, error) {
	defer rows.Close()

	out := make([]models.Todo, 0, 16)
	for rows.Next() {
		var t models.Todo
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.OwnerID); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies the non-nil patch fields under the dual-match rule.
// A patch with no fields is a no-op.
func (r *TodoSQLite) Update(ctx context.Context, id, ownerID int, p models.TodoPatch) error {
	var (
		sets []string
		args []any
	)
	if p.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *p.Title)
	}
	if p.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *p.Description)
	}
	if p.Completed != nil {
		sets = append(sets, "completed = ?")
		args = append(args, *p.Completed)
	}
	if len(sets) == 0 {
		return nil
	}

	q := "UPDATE todos SET " + strings.Join(sets, ", ") + " WHERE id = ? AND owner_id = ?"
	args = append(args, id, ownerID)

	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("update todo %d for user %d: %w", id, ownerID, err)
	}
	return nil
}

// Delete removes one todo under the dual-match rule.
func (r *TodoSQLite) Delete(ctx context.Context, id, ownerID int) error {
	if _, err := r.db.ExecContext(ctx, deleteTodoSQL, id, ownerID); err != nil {
		return fmt.Errorf("delete todo %d for user %d: %w", id, ownerID, err)
	}
	return nil
}
