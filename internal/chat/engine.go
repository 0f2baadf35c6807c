package chat

import (
	"fmt"
	"math"
	"math/rand"
	"regexp"
	"strings"

	"github.com/evoapps/evodo/internal/model"
)

// Display limits for rendered task lists.
const (
	searchDisplayLimit = 5
	listDisplayLimit   = 8
)

// changePriorityPattern finds the requested level anywhere in the input.
// Narrower than the extractor's synonym set: "mid" and "normal" are too
// ambiguous mid-sentence.
var changePriorityPattern = regexp.MustCompile(
	`(?i)\b(low|medium|high|urgent|critical|important)\b`)

// changePriorityMap folds the matched level into a canonical priority.
var changePriorityMap = map[string]string{
	"low":       "low",
	"medium":    "medium",
	"high":      "high",
	"urgent":    "high",
	"critical":  "high",
	"important": "high",
}

// fillerPattern removes connective words from derived task queries.
var fillerPattern = regexp.MustCompile(
	`(?i)\b(the|a|an|my|as|to|from|in|is|it|of|task|todo)\b`)

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
)

// greetings are the fixed responses for the greet intent, chosen at random.
var greetings = []string{
	"Hey there! 👋 I'm **Evo**, your task assistant. Try saying **\"add buy groceries\"** or **\"show my tasks\"**!",
	"Hello! 😊 I'm here to help you manage your tasks. What would you like to do?",
	"Hi! 👋 Ready to help you stay productive. Try **\"add a task\"** or **\"show stats\"**!",
}

// Engine turns free-form messages into responses and store actions. It
// holds no state between calls apart from the random source used to pick
// greetings, so a single Engine is safe for concurrent use.
type Engine struct {
	randIntn func(n int) int
}

// NewEngine creates an engine backed by the default random source.
func NewEngine() *Engine {
	return &Engine{randIntn: rand.Intn}
}

// NewEngineWithRand creates an engine with a custom random source so
// callers can pin greeting selection.
func NewEngineWithRand(randIntn func(n int) int) *Engine {
	return &Engine{randIntn: randIntn}
}

// Process classifies and parses one message against the given todos and
// stats snapshot, returning a response and an optional action. Inputs are
// read-only; Process never mutates todos and never fails — every error
// condition is expressed as response text with a nil action.
func (e *Engine) Process(input string, todos []model.Todo, stats model.Stats) Result {
	intent := Classify(input)
	entities := ExtractEntities(input)

	switch intent {
	case IntentAddTask:
		return e.handleAddTask(entities)
	case IntentDeleteTask:
		return e.handleDeleteTask(input, todos)
	case IntentCompleteTask:
		return e.handleCompleteTask(input, todos)
	case IntentChangePriority:
		return e.handleChangePriority(input, todos)
	case IntentSearchTasks:
		return e.handleSearchTasks(input, todos)
	case IntentListTasks:
		return e.handleListTasks(todos)
	case IntentShowStats:
		return e.handleShowStats(stats)
	case IntentHelp:
		return e.handleHelp()
	case IntentGreet:
		return e.handleGreet()
	case IntentUnknown:
		return e.handleUnknown()
	default:
		return e.handleUnknown()
	}
}

func (e *Engine) handleAddTask(entities Entities) Result {
	title := entities.Title
	if len(title) < 2 {
		return Result{
			Intent:   IntentAddTask,
			Response: "What's the task you'd like to add? Try: **\"Add buy groceries high priority\"**",
		}
	}

	priority := entities.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	category := entities.Category
	if category == "" {
		category = model.CategoryPersonal
	}

	fullTitle := title
	description := ""
	if entities.DateHint != "" {
		dateInfo := entities.DateHint
		description = "Scheduled: " + entities.DateHint
		if entities.TimeHint != "" {
			dateInfo += " " + entities.TimeHint
			description += " at " + entities.TimeHint
		}
		fullTitle += " (" + dateInfo + ")"
	}

	return Result{
		Intent: IntentAddTask,
		Response: fmt.Sprintf(
			"Added **%q** with **%s** priority in **%s**!",
			fullTitle, priority, category),
		Action: &Action{
			Type: ActionAdd,
			Add: &AddPayload{
				Title:       fullTitle,
				Description: description,
				Priority:    priority,
				Category:    category,
			},
		},
	}
}

func (e *Engine) handleDeleteTask(input string, todos []model.Todo) Result {
	query := taskQuery(input, []string{
		"delete", "remove", "trash", "discard", "drop", "cancel", "get rid of",
	})
	matches := FuzzyMatch(query, todos)

	if len(matches) == 0 {
		return Result{
			Intent: IntentDeleteTask,
			Response: fmt.Sprintf(
				"Couldn't find a task matching **%q**. Try **\"show all tasks\"** to see your task list.",
				query),
		}
	}

	target := matches[0]
	return Result{
		Intent:   IntentDeleteTask,
		Response: fmt.Sprintf("Deleted **%q** from your tasks.", target.Title),
		Action:   &Action{Type: ActionDelete, TodoID: target.ID},
	}
}

func (e *Engine) handleCompleteTask(input string, todos []model.Todo) Result {
	query := taskQuery(input, []string{
		"complete", "finish", "done", "check off", "mark",
		"i finished", "i completed", "i did",
	})

	var incomplete []model.Todo
	for _, t := range todos {
		if !t.Completed {
			incomplete = append(incomplete, t)
		}
	}

	matches := FuzzyMatch(query, incomplete)
	if len(matches) == 0 {
		// Fall back to the full list to distinguish "already done" from
		// "not found". Only the top-ranked full-list match is consulted.
		allMatches := FuzzyMatch(query, todos)
		if len(allMatches) > 0 && allMatches[0].Completed {
			return Result{
				Intent: IntentCompleteTask,
				Response: fmt.Sprintf(
					"**%q** is already completed! Great job! 🎉",
					allMatches[0].Title),
			}
		}
		return Result{
			Intent: IntentCompleteTask,
			Response: fmt.Sprintf(
				"Couldn't find an incomplete task matching **%q**. Try **\"show pending tasks\"**.",
				query),
		}
	}

	target := matches[0]
	return Result{
		Intent: IntentCompleteTask,
		Response: fmt.Sprintf(
			"Marked **%q** as complete! Great work! 🎉", target.Title),
		Action: &Action{Type: ActionComplete, TodoID: target.ID},
	}
}

func (e *Engine) handleChangePriority(input string, todos []model.Todo) Result {
	match := changePriorityPattern.FindStringSubmatch(input)
	if match == nil {
		return Result{
			Intent:   IntentChangePriority,
			Response: "What priority? Try: **\"Change meeting to high priority\"**",
		}
	}
	matchedWord := strings.ToLower(match[1])
	newPriority := changePriorityMap[matchedWord]

	query := taskQuery(input, []string{
		"change", "set", "update", "modify", "make", "priority", "to",
		newPriority, matchedWord,
	})
	matches := FuzzyMatch(query, todos)

	if len(matches) == 0 {
		return Result{
			Intent: IntentChangePriority,
			Response: fmt.Sprintf(
				"Couldn't find a task matching **%q**. Try **\"show all tasks\"** first.",
				query),
		}
	}

	target := matches[0]
	return Result{
		Intent: IntentChangePriority,
		Response: fmt.Sprintf(
			"Changed **%q** priority to **%s**.", target.Title, newPriority),
		Action: &Action{
			Type:    ActionUpdate,
			TodoID:  target.ID,
			Updates: &Updates{Priority: newPriority},
		},
	}
}

var (
	pendingStatusPattern   = regexp.MustCompile(`(?i)\b(pending|incomplete|in progress|not done|active)\b`)
	completedStatusPattern = regexp.MustCompile(`(?i)\b(completed|done|finished)\b`)
)

func (e *Engine) handleSearchTasks(input string, todos []model.Todo) Result {
	var filtered []model.Todo
	var label string

	switch {
	case pendingStatusPattern.MatchString(input):
		for _, t := range todos {
			if !t.Completed {
				filtered = append(filtered, t)
			}
		}
		label = "pending"
	case completedStatusPattern.MatchString(input):
		for _, t := range todos {
			if t.Completed {
				filtered = append(filtered, t)
			}
		}
		label = "completed"
	default:
		query := taskQuery(input, []string{
			"search", "find", "look for", "look up", "show", "about",
		})
		filtered = FuzzyMatch(query, todos)
		label = fmt.Sprintf("matching %q", query)
	}

	if len(filtered) == 0 {
		return Result{
			Intent:   IntentSearchTasks,
			Response: fmt.Sprintf("No %s tasks found.", label),
			Action:   &Action{Type: ActionSearch, Results: []model.Todo{}},
		}
	}

	var lines []string
	for _, t := range filtered[:min(len(filtered), searchDisplayLimit)] {
		marker := ""
		if t.Completed {
			marker = "~~"
		}
		lines = append(lines, fmt.Sprintf(
			"%s %s%s%s", priorityEmoji(t.Priority), marker, t.Title, marker))
	}

	extra := ""
	if len(filtered) > searchDisplayLimit {
		extra = fmt.Sprintf("\n\n...and %d more", len(filtered)-searchDisplayLimit)
	}

	return Result{
		Intent: IntentSearchTasks,
		Response: fmt.Sprintf(
			"Here are your **%s** tasks (%d):\n\n%s%s",
			label, len(filtered), strings.Join(lines, "\n"), extra),
		Action: &Action{Type: ActionSearch, Results: filtered},
	}
}

func (e *Engine) handleListTasks(todos []model.Todo) Result {
	if len(todos) == 0 {
		return Result{
			Intent:   IntentListTasks,
			Response: "You don't have any tasks yet! Try **\"Add my first task\"** to get started.",
			Action:   &Action{Type: ActionList, Results: []model.Todo{}},
		}
	}

	var lines []string
	for _, t := range todos[:min(len(todos), listDisplayLimit)] {
		status := "⬜"
		if t.Completed {
			status = "✅"
		}
		lines = append(lines, fmt.Sprintf(
			"%s %s %s", status, priorityEmoji(t.Priority), t.Title))
	}

	extra := ""
	if len(todos) > listDisplayLimit {
		extra = fmt.Sprintf("\n\n...and %d more", len(todos)-listDisplayLimit)
	}

	return Result{
		Intent: IntentListTasks,
		Response: fmt.Sprintf(
			"Here are your tasks (%d):\n\n%s%s",
			len(todos), strings.Join(lines, "\n"), extra),
		Action: &Action{Type: ActionList, Results: todos},
	}
}

func (e *Engine) handleShowStats(stats model.Stats) Result {
	completionRate := 0
	if stats.Total > 0 {
		completionRate = int(math.Round(
			float64(stats.Completed) / float64(stats.Total) * 100))
	}

	response := strings.Join([]string{
		"**Task Summary:**\n",
		fmt.Sprintf("📋 Total: **%d**", stats.Total),
		fmt.Sprintf("✅ Completed: **%d**", stats.Completed),
		fmt.Sprintf("⏳ In Progress: **%d**", stats.InProgress),
		fmt.Sprintf("🔴 High Priority: **%d**", stats.HighPriority),
		fmt.Sprintf("📈 Completion Rate: **%d%%**", completionRate),
	}, "\n")

	return Result{
		Intent:   IntentShowStats,
		Response: response,
		Action:   &Action{Type: ActionStats, Stats: &stats},
	}
}

func (e *Engine) handleHelp() Result {
	response := strings.Join([]string{
		"Here's what I can do:\n",
		"**Add a task:**",
		`  "Add buy groceries high priority"`,
		"  \"Create meeting tomorrow 2pm\"\n",
		"**Complete a task:**",
		`  "Mark meeting as done"`,
		"  \"Complete gym task\"\n",
		"**Delete a task:**",
		`  "Delete the gym task"`,
		"  \"Remove buy groceries\"\n",
		"**Change priority:**",
		"  \"Set meeting to high priority\"\n",
		"**View tasks:**",
		`  "Show all tasks"`,
		`  "Show pending tasks"`,
		"  \"Search gym\"\n",
		"**Stats:**",
		`  "Show my stats"`,
		`  "How many tasks do I have?"`,
	}, "\n")

	return Result{Intent: IntentHelp, Response: response}
}

func (e *Engine) handleGreet() Result {
	return Result{
		Intent:   IntentGreet,
		Response: greetings[e.randIntn(len(greetings))],
	}
}

func (e *Engine) handleUnknown() Result {
	return Result{
		Intent:   IntentUnknown,
		Response: "I didn't quite get that. Try **\"add\"**, **\"delete\"**, **\"complete\"**, **\"show tasks\"**, or type **\"help\"** for all commands.",
	}
}

// taskQuery strips the supplied keywords (whole-word, all occurrences, in
// the order given), then filler words, punctuation, and extra whitespace,
// isolating the task name from a command sentence. Every handler derives
// its match query through this same normalization.
func taskQuery(input string, stripWords []string) string {
	text := strings.TrimSpace(input)
	for _, word := range stripWords {
		if word == "" {
			continue
		}
		pattern := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
		text = pattern.ReplaceAllString(text, "")
	}
	text = fillerPattern.ReplaceAllString(text, "")
	text = nonAlphanumeric.ReplaceAllString(text, "")
	text = whitespaceRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// priorityEmoji returns the indicator used in rendered task lines.
func priorityEmoji(priority string) string {
	switch priority {
	case model.PriorityHigh:
		return "🔴"
	case model.PriorityMedium:
		return "🟡"
	default:
		return "🟢"
	}
}
