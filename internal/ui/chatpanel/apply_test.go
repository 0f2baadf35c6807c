package chatpanel_test

import (
	"context"
	"testing"

	"github.com/evoapps/evodo/internal/chat"
	"github.com/evoapps/evodo/internal/model"
	"github.com/evoapps/evodo/internal/store"
	"github.com/evoapps/evodo/internal/ui/chatpanel"
	"github.com/evoapps/evodo/tests/testutil"
)

const testUser = "u1"

// runCommand feeds one message through the engine against the user's
// current todos and applies whatever action comes back.
func runCommand(t *testing.T, s store.Store, input string) (chat.Result, bool) {
	t.Helper()
	ctx := context.Background()

	todos, err := s.GetTodos(ctx, store.TodoFilter{UserID: ptr(testUser)})
	if err != nil {
		t.Fatalf("GetTodos: %v", err)
	}
	stats, err := s.GetStats(ctx, testUser)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}

	result := chat.NewEngine().Process(input, todos, stats)
	changed, err := chatpanel.ApplyAction(ctx, s, testUser, result.Action)
	if err != nil {
		t.Fatalf("ApplyAction(%q): %v", input, err)
	}
	return result, changed
}

func ptr[T any](v T) *T { return &v }

func userTodos(t *testing.T, s store.Store) []model.Todo {
	t.Helper()
	todos, err := s.GetTodos(context.Background(), store.TodoFilter{UserID: ptr(testUser)})
	if err != nil {
		t.Fatalf("GetTodos: %v", err)
	}
	return todos
}

func TestApplyAddCreatesTodo(t *testing.T) {
	s := testutil.NewTestStore(t)

	_, changed := runCommand(t, s, "add buy milk tomorrow high priority")
	if !changed {
		t.Fatal("add command did not report a mutation")
	}

	todos := userTodos(t, s)
	if len(todos) != 1 {
		t.Fatalf("got %d todos, want 1", len(todos))
	}
	if todos[0].Priority != model.PriorityHigh {
		t.Errorf("priority = %q, want high", todos[0].Priority)
	}
	if todos[0].UserID != testUser {
		t.Errorf("user = %q, want %q", todos[0].UserID, testUser)
	}
}

func TestApplyCompleteMarksDone(t *testing.T) {
	s := testutil.NewTestStore(t)
	if _, err := s.CreateTodo(context.Background(), model.Todo{
		UserID: testUser, Title: "walk the dog",
	}); err != nil {
		t.Fatalf("CreateTodo: %v", err)
	}

	_, changed := runCommand(t, s, "complete walk the dog")
	if !changed {
		t.Fatal("complete command did not report a mutation")
	}

	todos := userTodos(t, s)
	if len(todos) != 1 || !todos[0].Completed {
		t.Errorf("todo not completed: %+v", todos)
	}
}

func TestApplyDeleteRemovesTodo(t *testing.T) {
	s := testutil.NewTestStore(t)
	if _, err := s.CreateTodo(context.Background(), model.Todo{
		UserID: testUser, Title: "old chore",
	}); err != nil {
		t.Fatalf("CreateTodo: %v", err)
	}

	_, changed := runCommand(t, s, "delete old chore")
	if !changed {
		t.Fatal("delete command did not report a mutation")
	}
	if todos := userTodos(t, s); len(todos) != 0 {
		t.Errorf("got %d todos after delete, want 0", len(todos))
	}
}

func TestApplyUpdateChangesPriority(t *testing.T) {
	s := testutil.NewTestStore(t)
	if _, err := s.CreateTodo(context.Background(), model.Todo{
		UserID: testUser, Title: "write report", Priority: model.PriorityLow,
	}); err != nil {
		t.Fatalf("CreateTodo: %v", err)
	}

	_, changed := runCommand(t, s, "set write report to high priority")
	if !changed {
		t.Fatal("priority command did not report a mutation")
	}

	todos := userTodos(t, s)
	if len(todos) != 1 || todos[0].Priority != model.PriorityHigh {
		t.Errorf("priority not updated: %+v", todos)
	}
}

func TestApplyReadOnlyActionsDoNotMutate(t *testing.T) {
	s := testutil.NewTestStore(t)
	if _, err := s.CreateTodo(context.Background(), model.Todo{
		UserID: testUser, Title: "buy milk",
	}); err != nil {
		t.Fatalf("CreateTodo: %v", err)
	}

	for _, input := range []string{"show my tasks", "find milk", "stats"} {
		result, changed := runCommand(t, s, input)
		if changed {
			t.Errorf("%q reported a mutation", input)
		}
		if result.Action == nil {
			t.Errorf("%q produced no action", input)
		}
	}
	if todos := userTodos(t, s); len(todos) != 1 {
		t.Errorf("got %d todos, want 1 untouched", len(todos))
	}
}

func TestApplyNilActionIsNoOp(t *testing.T) {
	s := testutil.NewTestStore(t)

	changed, err := chatpanel.ApplyAction(context.Background(), s, testUser, nil)
	if err != nil {
		t.Fatalf("ApplyAction(nil): %v", err)
	}
	if changed {
		t.Error("nil action reported a mutation")
	}
}
