package chat

import "testing"

func TestExtractEntitiesPrioritySynonyms(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"add gym urgent", "high"},
		{"add gym critical", "high"},
		{"add gym important", "high"},
		{"add gym high priority", "high"},
		{"add gym low", "low"},
		{"add gym mid", "medium"},
		{"add gym normal priority", "medium"},
	}
	for _, tc := range cases {
		if got := ExtractEntities(tc.input).Priority; got != tc.want {
			t.Errorf("ExtractEntities(%q).Priority = %q, want %q", tc.input, got, tc.want)
		}
	}
}

// In "priority high" the bare level matches the first form before the
// reversed "priority <level>" form can; the stranded "priority" word stays
// in the title. Long-standing behavior, kept as-is.
func TestExtractEntitiesPriorityReversedForm(t *testing.T) {
	got := ExtractEntities("add buy milk priority high")
	if got.Priority != "high" {
		t.Errorf("Priority = %q, want high", got.Priority)
	}
	if got.Title != "buy milk priority" {
		t.Errorf("Title = %q, want %q", got.Title, "buy milk priority")
	}
}

func TestExtractEntitiesTitleIsolation(t *testing.T) {
	got := ExtractEntities("add buy groceries high priority")
	if got.Title != "buy groceries" {
		t.Errorf("Title = %q, want %q", got.Title, "buy groceries")
	}
	if got.Priority != "high" {
		t.Errorf("Priority = %q, want high", got.Priority)
	}
}

func TestExtractEntitiesCategory(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"add gym session", "health"},
		{"add workout plan", "health"},
		{"add office meeting", "work"},
		{"add study session", "learning"},
		{"add buy milk", ""},
	}
	for _, tc := range cases {
		if got := ExtractEntities(tc.input).Category; got != tc.want {
			t.Errorf("ExtractEntities(%q).Category = %q, want %q", tc.input, got, tc.want)
		}
	}
}

// Category keywords stay in the title; they are usually part of it.
func TestExtractEntitiesCategoryKeywordKept(t *testing.T) {
	got := ExtractEntities("add gym session")
	if got.Title != "gym session" {
		t.Errorf("Title = %q, want %q", got.Title, "gym session")
	}
}

func TestExtractEntitiesDateAndTime(t *testing.T) {
	got := ExtractEntities("add meeting tomorrow 2pm")
	if got.DateHint != "tomorrow" {
		t.Errorf("DateHint = %q, want tomorrow", got.DateHint)
	}
	if got.TimeHint != "2pm" {
		t.Errorf("TimeHint = %q, want 2pm", got.TimeHint)
	}
	if got.Title != "meeting" {
		t.Errorf("Title = %q, want meeting", got.Title)
	}
}

func TestExtractEntitiesClockTimeWithMinutes(t *testing.T) {
	got := ExtractEntities("create standup monday 10:30 am")
	if got.DateHint != "monday" {
		t.Errorf("DateHint = %q, want monday", got.DateHint)
	}
	if got.TimeHint != "10:30 am" {
		t.Errorf("TimeHint = %q, want %q", got.TimeHint, "10:30 am")
	}
	if got.Title != "standup" {
		t.Errorf("Title = %q, want standup", got.Title)
	}
}

func TestExtractEntitiesFillerStripping(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"add a task buy milk", "buy milk"},
		{"remind me to water the plants", "water the plants"},
		{"i need to call mom", "call mom"},
		{"create new task: fix the sink", "fix the sink"},
	}
	for _, tc := range cases {
		if got := ExtractEntities(tc.input).Title; got != tc.want {
			t.Errorf("ExtractEntities(%q).Title = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestExtractEntitiesEmptyInput(t *testing.T) {
	got := ExtractEntities("")
	if got.Title != "" || got.Priority != "" || got.Category != "" ||
		got.DateHint != "" || got.TimeHint != "" {
		t.Errorf("ExtractEntities(\"\") = %+v, want zero value", got)
	}
}
