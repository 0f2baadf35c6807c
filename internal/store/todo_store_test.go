package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/evoapps/evodo/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})
	return s
}

func TestCreateAndGetTodo(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateTodo(ctx, model.Todo{
		UserID:   "u1",
		Title:    "Buy milk",
		Priority: model.PriorityHigh,
		Category: model.CategoryPersonal,
	})
	if err != nil {
		t.Fatalf("CreateTodo: %v", err)
	}
	if created.ID == "" {
		t.Fatal("CreateTodo did not assign an ID")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("CreateTodo did not assign timestamps")
	}

	got, err := s.GetTodoByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetTodoByID: %v", err)
	}
	if got == nil {
		t.Fatal("GetTodoByID returned nil for existing todo")
	}
	if got.Title != "Buy milk" || got.Priority != model.PriorityHigh {
		t.Errorf("got %+v, want title/priority preserved", got)
	}
	if got.Completed {
		t.Error("new todo should not be completed")
	}
}

func TestCreateTodoDefaults(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateTodo(ctx, model.Todo{Title: "Defaults"})
	if err != nil {
		t.Fatalf("CreateTodo: %v", err)
	}
	if created.Priority != model.PriorityMedium {
		t.Errorf("Priority = %q, want medium", created.Priority)
	}
	if created.Category != model.CategoryPersonal {
		t.Errorf("Category = %q, want personal", created.Category)
	}
}

func TestCreateTodoEmptyTitle(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.CreateTodo(context.Background(), model.Todo{Title: "   "}); err == nil {
		t.Error("expected error for empty title")
	}
}

func TestUpdateTodoPartial(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateTodo(ctx, model.Todo{Title: "Original", Priority: model.PriorityLow})
	if err != nil {
		t.Fatalf("CreateTodo: %v", err)
	}

	high := model.PriorityHigh
	if err := s.UpdateTodo(ctx, created.ID, TodoUpdates{Priority: &high}); err != nil {
		t.Fatalf("UpdateTodo: %v", err)
	}

	got, err := s.GetTodoByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetTodoByID: %v", err)
	}
	if got.Priority != model.PriorityHigh {
		t.Errorf("Priority = %q, want high", got.Priority)
	}
	if got.Title != "Original" {
		t.Errorf("Title changed to %q on partial update", got.Title)
	}
}

func TestUpdateTodoNotFound(t *testing.T) {
	s := newTestStore(t)

	high := model.PriorityHigh
	err := s.UpdateTodo(context.Background(), "missing", TodoUpdates{Priority: &high})
	if err == nil {
		t.Error("expected error for unknown todo")
	}
}

func TestToggleTodo(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateTodo(ctx, model.Todo{Title: "Toggle me"})
	if err != nil {
		t.Fatalf("CreateTodo: %v", err)
	}

	if err := s.ToggleTodo(ctx, created.ID); err != nil {
		t.Fatalf("ToggleTodo: %v", err)
	}
	got, _ := s.GetTodoByID(ctx, created.ID)
	if !got.Completed {
		t.Error("todo not completed after first toggle")
	}

	if err := s.ToggleTodo(ctx, created.ID); err != nil {
		t.Fatalf("ToggleTodo: %v", err)
	}
	got, _ = s.GetTodoByID(ctx, created.ID)
	if got.Completed {
		t.Error("todo still completed after second toggle")
	}
}

func TestDeleteTodo(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateTodo(ctx, model.Todo{Title: "Doomed"})
	if err != nil {
		t.Fatalf("CreateTodo: %v", err)
	}

	if err := s.DeleteTodo(ctx, created.ID); err != nil {
		t.Fatalf("DeleteTodo: %v", err)
	}
	got, err := s.GetTodoByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetTodoByID: %v", err)
	}
	if got != nil {
		t.Error("todo still present after delete")
	}

	if err := s.DeleteTodo(ctx, created.ID); err == nil {
		t.Error("expected error deleting missing todo")
	}
}

func TestGetTodosFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seed := []model.Todo{
		{UserID: "u1", Title: "High work", Priority: model.PriorityHigh, Category: model.CategoryWork},
		{UserID: "u1", Title: "Low personal", Priority: model.PriorityLow, Category: model.CategoryPersonal},
		{UserID: "u2", Title: "Other user", Priority: model.PriorityHigh, Category: model.CategoryWork},
	}
	for _, todo := range seed {
		if _, err := s.CreateTodo(ctx, todo); err != nil {
			t.Fatalf("CreateTodo: %v", err)
		}
	}

	u1 := "u1"
	high := model.PriorityHigh
	got, err := s.GetTodos(ctx, TodoFilter{UserID: &u1, Priority: &high})
	if err != nil {
		t.Fatalf("GetTodos: %v", err)
	}
	if len(got) != 1 || got[0].Title != "High work" {
		t.Errorf("got %+v, want the single high-priority u1 todo", got)
	}

	work := model.CategoryWork
	got, err = s.GetTodos(ctx, TodoFilter{Category: &work})
	if err != nil {
		t.Fatalf("GetTodos: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d work todos, want 2", len(got))
	}
}

func TestGetTodosTextQuery(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	todos := []model.Todo{
		{Title: "Buy milk"},
		{Title: "Errands", Description: "milk and bread"},
		{Title: "Walk dog"},
	}
	for _, todo := range todos {
		if _, err := s.CreateTodo(ctx, todo); err != nil {
			t.Fatalf("CreateTodo: %v", err)
		}
	}

	q := "milk"
	got, err := s.GetTodos(ctx, TodoFilter{Query: &q})
	if err != nil {
		t.Fatalf("GetTodos: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d matches, want 2 (title and description hits)", len(got))
	}
}

func TestGetTodosSortPriority(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, p := range []string{model.PriorityLow, model.PriorityHigh, model.PriorityMedium} {
		if _, err := s.CreateTodo(ctx, model.Todo{Title: p + " todo", Priority: p}); err != nil {
			t.Fatalf("CreateTodo: %v", err)
		}
	}

	got, err := s.GetTodos(ctx, TodoFilter{SortBy: "priority"})
	if err != nil {
		t.Fatalf("GetTodos: %v", err)
	}
	want := []string{model.PriorityHigh, model.PriorityMedium, model.PriorityLow}
	for i, p := range want {
		if got[i].Priority != p {
			t.Errorf("position %d priority = %q, want %q", i, got[i].Priority, p)
		}
	}
}

func TestGetTodosLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := s.CreateTodo(ctx, model.Todo{Title: fmt.Sprintf("Task %d", i)}); err != nil {
			t.Fatalf("CreateTodo: %v", err)
		}
	}

	got, err := s.GetTodos(ctx, TodoFilter{Limit: 3})
	if err != nil {
		t.Fatalf("GetTodos: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("got %d todos, want 3", len(got))
	}
}

func TestGetStats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seed := []struct {
		title     string
		priority  string
		completed bool
	}{
		{"a", model.PriorityHigh, false},
		{"b", model.PriorityHigh, true},
		{"c", model.PriorityLow, false},
		{"d", model.PriorityMedium, true},
	}
	for _, row := range seed {
		created, err := s.CreateTodo(ctx, model.Todo{
			UserID: "u1", Title: row.title, Priority: row.priority,
		})
		if err != nil {
			t.Fatalf("CreateTodo: %v", err)
		}
		if row.completed {
			if err := s.ToggleTodo(ctx, created.ID); err != nil {
				t.Fatalf("ToggleTodo: %v", err)
			}
		}
	}

	stats, err := s.GetStats(ctx, "u1")
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	want := model.Stats{Total: 4, Completed: 2, InProgress: 2, HighPriority: 1}
	if stats != want {
		t.Errorf("GetStats = %+v, want %+v", stats, want)
	}
}

func TestGetStatsEmpty(t *testing.T) {
	s := newTestStore(t)

	stats, err := s.GetStats(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats != (model.Stats{}) {
		t.Errorf("GetStats = %+v, want zero value", stats)
	}
}
