package chatpanel

import (
	"context"
	"fmt"

	"github.com/evoapps/evodo/internal/chat"
	"github.com/evoapps/evodo/internal/model"
	"github.com/evoapps/evodo/internal/store"
)

// ApplyAction executes the store operation described by an engine action.
// A nil action is a no-op. The returned bool reports whether the todo
// list was mutated.
func ApplyAction(ctx context.Context, s store.Store, userID string, action *chat.Action) (bool, error) {
	if action == nil {
		return false, nil
	}

	switch action.Type {
	case chat.ActionAdd:
		if action.Add == nil {
			return false, fmt.Errorf("add action missing payload")
		}
		_, err := s.CreateTodo(ctx, model.Todo{
			UserID:      userID,
			Title:       action.Add.Title,
			Description: action.Add.Description,
			Priority:    action.Add.Priority,
			Category:    action.Add.Category,
		})
		if err != nil {
			return false, fmt.Errorf("adding todo: %w", err)
		}
		return true, nil

	case chat.ActionDelete:
		if err := s.DeleteTodo(ctx, action.TodoID); err != nil {
			return false, fmt.Errorf("deleting todo: %w", err)
		}
		return true, nil

	case chat.ActionComplete:
		done := true
		if err := s.UpdateTodo(ctx, action.TodoID, store.TodoUpdates{Completed: &done}); err != nil {
			return false, fmt.Errorf("completing todo: %w", err)
		}
		return true, nil

	case chat.ActionUpdate:
		if action.Updates == nil {
			return false, fmt.Errorf("update action missing changes")
		}
		updates := store.TodoUpdates{}
		if action.Updates.Priority != "" {
			p := action.Updates.Priority
			updates.Priority = &p
		}
		if err := s.UpdateTodo(ctx, action.TodoID, updates); err != nil {
			return false, fmt.Errorf("updating todo: %w", err)
		}
		return true, nil

	case chat.ActionSearch, chat.ActionList, chat.ActionStats:
		// Read-only actions carry their results already rendered.
		return false, nil

	default:
		return false, fmt.Errorf("unknown action type %q", action.Type)
	}
}
