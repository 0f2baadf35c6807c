package chat

import (
	"sort"
	"strings"

	"github.com/evoapps/evodo/internal/model"
)

// Fuzzy-match scoring weights. Exact and substring matches dominate
// per-token hits so short titles resolve predictably.
const (
	scoreExactTitle    = 100
	scoreTitleContains = 60
	scoreTokenInTitle  = 20
	scoreTokenInDesc   = 5
)

// FuzzyMatch scores each todo against the query and returns the matches
// ranked by descending relevance. Ties preserve the input order. An empty
// query or empty todo list yields no matches. The input slice is never
// mutated.
func FuzzyMatch(query string, todos []model.Todo) []model.Todo {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || len(todos) == 0 {
		return nil
	}

	tokens := strings.Fields(q)

	type scored struct {
		todo  model.Todo
		score int
	}

	var results []scored
	for _, todo := range todos {
		titleLower := strings.ToLower(todo.Title)
		descLower := strings.ToLower(todo.Description)

		score := 0
		switch {
		case titleLower == q:
			score = scoreExactTitle
		case strings.Contains(titleLower, q):
			score = scoreTitleContains
		default:
			for _, token := range tokens {
				if len(token) < 2 {
					continue
				}
				if strings.Contains(titleLower, token) {
					score += scoreTokenInTitle
				}
				if strings.Contains(descLower, token) {
					score += scoreTokenInDesc
				}
			}
		}

		if score > 0 {
			results = append(results, scored{todo: todo, score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	matched := make([]model.Todo, len(results))
	for i, r := range results {
		matched[i] = r.todo
	}
	return matched
}
