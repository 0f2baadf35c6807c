package model

import "time"

// Priority levels for todos.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Categories a todo can belong to.
const (
	CategoryPersonal = "personal"
	CategoryWork     = "work"
	CategoryHealth   = "health"
	CategoryLearning = "learning"
	CategoryOther    = "other"
)

// Priorities lists the valid priority values, least urgent first.
var Priorities = []string{PriorityLow, PriorityMedium, PriorityHigh}

// Categories lists the valid category values.
var Categories = []string{
	CategoryPersonal,
	CategoryWork,
	CategoryHealth,
	CategoryLearning,
	CategoryOther,
}

// Todo is a task item created and managed by the user.
type Todo struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Completed   bool      `json:"completed" db:"completed"`
	Priority    string    `json:"priority" db:"priority"`
	Category    string    `json:"category" db:"category"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Stats is a derived snapshot of todo counts for one user.
// HighPriority counts only incomplete high-priority todos.
type Stats struct {
	Total        int `json:"total"`
	Completed    int `json:"completed"`
	InProgress   int `json:"in_progress"`
	HighPriority int `json:"high_priority"`
}

// ValidPriority reports whether p is a recognized priority value.
func ValidPriority(p string) bool {
	for _, v := range Priorities {
		if v == p {
			return true
		}
	}
	return false
}

// ValidCategory reports whether c is a recognized category value.
func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}
