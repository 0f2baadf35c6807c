package store

import (
	"context"

	"github.com/evoapps/evodo/internal/model"
)

// TodoFilter controls filtering, sorting, and pagination for todo queries.
type TodoFilter struct {
	UserID    *string
	Completed *bool
	Priority  *string // "low", "medium", "high", or nil (all)
	Category  *string
	Query     *string // search title + description
	SortBy    string  // "newest" (default), "oldest", "priority"
	Limit     int
	Offset    int
}

// TodoUpdates holds a partial todo update; nil fields are left unchanged.
type TodoUpdates struct {
	Title       *string
	Description *string
	Completed   *bool
	Priority    *string
	Category    *string
}

// Store defines the persistence interface for todos, users, and per-user
// chat transcripts.
type Store interface {
	// === Todos ===

	CreateTodo(ctx context.Context, todo model.Todo) (*model.Todo, error)
	UpdateTodo(ctx context.Context, id string, updates TodoUpdates) error
	DeleteTodo(ctx context.Context, id string) error
	ToggleTodo(ctx context.Context, id string) error
	GetTodoByID(ctx context.Context, id string) (*model.Todo, error)
	GetTodos(ctx context.Context, filter TodoFilter) ([]model.Todo, error)
	GetStats(ctx context.Context, userID string) (model.Stats, error)

	// === Users ===

	CreateUser(ctx context.Context, user model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)

	// === Chat history ===

	AppendChatMessage(ctx context.Context, msg model.ChatMessage) error
	GetChatHistory(ctx context.Context, userID string, limit int) ([]model.ChatMessage, error)
	ClearChatHistory(ctx context.Context, userID string) error
}
