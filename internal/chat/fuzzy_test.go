package chat

import (
	"testing"

	"github.com/evoapps/evodo/internal/model"
)

func todosNamed(titles ...string) []model.Todo {
	todos := make([]model.Todo, len(titles))
	for i, title := range titles {
		todos[i] = model.Todo{ID: title, Title: title}
	}
	return todos
}

func TestFuzzyMatchExactBeatsPartial(t *testing.T) {
	todos := todosNamed("Buy milk and eggs", "Buy milk")

	got := FuzzyMatch("buy milk", todos)
	if len(got) != 2 {
		t.Fatalf("got %d matches, want 2", len(got))
	}
	if got[0].Title != "Buy milk" {
		t.Errorf("top match = %q, want %q", got[0].Title, "Buy milk")
	}
}

func TestFuzzyMatchEmptyInputs(t *testing.T) {
	todos := todosNamed("Buy milk")

	if got := FuzzyMatch("", todos); len(got) != 0 {
		t.Errorf("empty query returned %d matches, want 0", len(got))
	}
	if got := FuzzyMatch("   ", todos); len(got) != 0 {
		t.Errorf("whitespace query returned %d matches, want 0", len(got))
	}
	if got := FuzzyMatch("x", nil); len(got) != 0 {
		t.Errorf("empty todo list returned %d matches, want 0", len(got))
	}
}

func TestFuzzyMatchExcludesZeroScores(t *testing.T) {
	todos := todosNamed("Buy milk", "Walk the dog")

	got := FuzzyMatch("milk", todos)
	if len(got) != 1 {
		t.Fatalf("got %d matches, want 1", len(got))
	}
	if got[0].Title != "Buy milk" {
		t.Errorf("match = %q, want %q", got[0].Title, "Buy milk")
	}
}

func TestFuzzyMatchDescriptionTokens(t *testing.T) {
	todos := []model.Todo{
		{ID: "1", Title: "Errands", Description: "pick up milk from the store"},
		{ID: "2", Title: "Call plumber"},
	}

	got := FuzzyMatch("milk store", todos)
	if len(got) != 1 {
		t.Fatalf("got %d matches, want 1", len(got))
	}
	if got[0].ID != "1" {
		t.Errorf("match = %q, want todo 1", got[0].ID)
	}
}

// Token hits accumulate across title and description independently, with
// title hits worth 20 and description hits 5 per token.
func TestFuzzyMatchTokenScoring(t *testing.T) {
	todos := []model.Todo{
		{ID: "descOnly", Title: "Chores", Description: "laundry and dishes"},
		{ID: "titleHit", Title: "Do laundry tonight"},
	}

	got := FuzzyMatch("laundry basket", todos)
	if len(got) != 2 {
		t.Fatalf("got %d matches, want 2", len(got))
	}
	if got[0].ID != "titleHit" {
		t.Errorf("top match = %q, want titleHit", got[0].ID)
	}
}

func TestFuzzyMatchShortTokensIgnored(t *testing.T) {
	todos := todosNamed("A big apple")

	// Single-letter tokens are skipped entirely.
	if got := FuzzyMatch("a", todos); len(got) != 1 {
		// "a" is a full-query substring of the title, which scores 60
		// before tokenization is ever consulted.
		t.Fatalf("got %d matches, want 1", len(got))
	}

	got := FuzzyMatch("z b", todosNamed("big zebra"))
	// "z b" is not a substring; tokens "z" and "b" are both too short.
	if len(got) != 0 {
		t.Errorf("got %d matches, want 0", len(got))
	}
}

func TestFuzzyMatchStableOrderOnTies(t *testing.T) {
	todos := todosNamed("milk run one", "milk run two", "milk run three")

	got := FuzzyMatch("milk", todos)
	if len(got) != 3 {
		t.Fatalf("got %d matches, want 3", len(got))
	}
	want := []string{"milk run one", "milk run two", "milk run three"}
	for i, w := range want {
		if got[i].Title != w {
			t.Errorf("position %d = %q, want %q", i, got[i].Title, w)
		}
	}
}
