package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/evoapps/evodo/internal/model"
)

// CreateTodo inserts a new todo and returns the stored record. Generates a
// UUID and timestamps when unset; invalid priority and category fall back
// to their defaults.
func (s *SQLiteStore) CreateTodo(ctx context.Context, todo model.Todo) (*model.Todo, error) {
	if strings.TrimSpace(todo.Title) == "" {
		return nil, fmt.Errorf("todo title must not be empty")
	}
	if todo.ID == "" {
		todo.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	todo.CreatedAt = now
	todo.UpdatedAt = now
	if !model.ValidPriority(todo.Priority) {
		todo.Priority = model.PriorityMedium
	}
	if !model.ValidCategory(todo.Category) {
		todo.Category = model.CategoryPersonal
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO todos (
			id, user_id, title, description, completed,
			priority, category, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		todo.ID, todo.UserID, todo.Title, todo.Description, todo.Completed,
		todo.Priority, todo.Category, todo.CreatedAt, todo.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating todo: %w", err)
	}
	return &todo, nil
}

// UpdateTodo applies a partial update to a todo by ID.
func (s *SQLiteStore) UpdateTodo(ctx context.Context, id string, updates TodoUpdates) error {
	var sets []string
	var args []interface{}

	if updates.Title != nil {
		if strings.TrimSpace(*updates.Title) == "" {
			return fmt.Errorf("todo title must not be empty")
		}
		sets = append(sets, "title = ?")
		args = append(args, *updates.Title)
	}
	if updates.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *updates.Description)
	}
	if updates.Completed != nil {
		sets = append(sets, "completed = ?")
		args = append(args, *updates.Completed)
	}
	if updates.Priority != nil {
		if !model.ValidPriority(*updates.Priority) {
			return fmt.Errorf("invalid priority %q", *updates.Priority)
		}
		sets = append(sets, "priority = ?")
		args = append(args, *updates.Priority)
	}
	if updates.Category != nil {
		if !model.ValidCategory(*updates.Category) {
			return fmt.Errorf("invalid category %q", *updates.Category)
		}
		sets = append(sets, "category = ?")
		args = append(args, *updates.Category)
	}

	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC())
	args = append(args, id)

	query := "UPDATE todos SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating todo %s: %w", id, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("todo %s not found", id)
	}
	return nil
}

// DeleteTodo removes a todo by ID.
func (s *SQLiteStore) DeleteTodo(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM todos WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting todo %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("todo %s not found", id)
	}
	return nil
}

// ToggleTodo flips a todo's completed state.
func (s *SQLiteStore) ToggleTodo(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE todos SET completed = NOT completed, updated_at = ? WHERE id = ?",
		time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("toggling todo %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("todo %s not found", id)
	}
	return nil
}

// GetTodoByID retrieves a single todo by ID. Returns (nil, nil) when the
// todo does not exist.
func (s *SQLiteStore) GetTodoByID(ctx context.Context, id string) (*model.Todo, error) {
	var todo model.Todo
	err := s.db.GetContext(ctx, &todo, "SELECT * FROM todos WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting todo %s: %w", id, err)
	}
	return &todo, nil
}

// GetTodos retrieves todos matching the filter.
func (s *SQLiteStore) GetTodos(ctx context.Context, filter TodoFilter) ([]model.Todo, error) {
	query, args := buildTodoQuery("SELECT *", filter)

	var todos []model.Todo
	if err := s.db.SelectContext(ctx, &todos, query, args...); err != nil {
		return nil, fmt.Errorf("querying todos: %w", err)
	}
	return todos, nil
}

// GetStats computes the stats snapshot for one user. HighPriority counts
// only incomplete high-priority todos.
func (s *SQLiteStore) GetStats(ctx context.Context, userID string) (model.Stats, error) {
	var stats model.Stats
	err := s.db.QueryRowxContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(completed), 0),
			COALESCE(SUM(CASE WHEN completed = 0 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN priority = 'high' AND completed = 0 THEN 1 ELSE 0 END), 0)
		FROM todos WHERE user_id = ?`, userID,
	).Scan(&stats.Total, &stats.Completed, &stats.InProgress, &stats.HighPriority)
	if err != nil {
		return model.Stats{}, fmt.Errorf("computing stats: %w", err)
	}
	return stats, nil
}

// buildTodoQuery assembles the SQL for todo list queries from the filter.
func buildTodoQuery(selectClause string, filter TodoFilter) (string, []interface{}) {
	var sb strings.Builder
	var args []interface{}

	sb.WriteString(selectClause)
	sb.WriteString(" FROM todos")

	var conditions []string
	if filter.UserID != nil {
		conditions = append(conditions, "user_id = ?")
		args = append(args, *filter.UserID)
	}
	if filter.Completed != nil {
		conditions = append(conditions, "completed = ?")
		args = append(args, *filter.Completed)
	}
	if filter.Priority != nil {
		conditions = append(conditions, "priority = ?")
		args = append(args, *filter.Priority)
	}
	if filter.Category != nil {
		conditions = append(conditions, "category = ?")
		args = append(args, *filter.Category)
	}
	if filter.Query != nil && strings.TrimSpace(*filter.Query) != "" {
		conditions = append(conditions, "(title LIKE ? OR description LIKE ?)")
		like := "%" + strings.TrimSpace(*filter.Query) + "%"
		args = append(args, like, like)
	}

	if len(conditions) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conditions, " AND "))
	}

	switch filter.SortBy {
	case "oldest":
		sb.WriteString(" ORDER BY created_at ASC")
	case "priority":
		sb.WriteString(" ORDER BY CASE priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END, created_at DESC")
	default: // newest
		sb.WriteString(" ORDER BY created_at DESC")
	}

	if filter.Limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			sb.WriteString(" OFFSET ?")
			args = append(args, filter.Offset)
		}
	}

	return sb.String(), args
}
