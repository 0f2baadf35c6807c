package chat

import "github.com/evoapps/evodo/internal/model"

// ActionType identifies the kind of store operation an action describes.
type ActionType string

const (
	ActionAdd      ActionType = "add"
	ActionDelete   ActionType = "delete"
	ActionComplete ActionType = "complete"
	ActionUpdate   ActionType = "update"
	ActionSearch   ActionType = "search"
	ActionList     ActionType = "list"
	ActionStats    ActionType = "stats"
)

// AddPayload carries the fields for a new todo.
type AddPayload struct {
	Title       string
	Description string
	Priority    string
	Category    string
}

// Updates holds the partial changes carried by an update action.
type Updates struct {
	Priority string
}

// Action is a structured instruction describing the store operation
// implied by a message. The engine only ever emits actions; interpreting
// and applying them is the caller's job. Which payload field is set
// depends on Type.
type Action struct {
	Type    ActionType
	Add     *AddPayload  // ActionAdd
	TodoID  string       // ActionDelete, ActionComplete, ActionUpdate
	Updates *Updates     // ActionUpdate
	Results []model.Todo // ActionSearch, ActionList
	Stats   *model.Stats // ActionStats
}

// Result is the outcome of processing one message. Action is nil when the
// message requires no store operation; that absence is the only signal of
// "nothing to do".
type Result struct {
	Intent   Intent
	Response string
	Action   *Action
}
