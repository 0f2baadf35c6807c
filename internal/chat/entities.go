package chat

import (
	"regexp"
	"strings"
)

// Entities are the structured values pulled out of free text, independent
// of the classified intent. Unset fields are empty strings.
type Entities struct {
	Title    string
	Priority string
	Category string
	DateHint string
	TimeHint string
}

// priorityMap folds priority synonyms into the canonical levels.
var priorityMap = map[string]string{
	"low":       "low",
	"medium":    "medium",
	"mid":       "medium",
	"normal":    "medium",
	"high":      "high",
	"urgent":    "high",
	"critical":  "high",
	"important": "high",
}

// keywordRule binds a whole-word pattern to the value it implies.
type keywordRule struct {
	pattern *regexp.Regexp
	value   string
}

// wordPattern compiles a case-insensitive whole-word pattern for w.
func wordPattern(w string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(w) + `\b`)
}

// categoryRules maps trigger words to categories. Scanned in order; the
// first keyword present wins. Category words are left in the text since
// they are often part of the title itself ("go to the gym").
var categoryRules = []keywordRule{
	{wordPattern("personal"), "personal"},
	{wordPattern("work"), "work"},
	{wordPattern("office"), "work"},
	{wordPattern("job"), "work"},
	{wordPattern("health"), "health"},
	{wordPattern("gym"), "health"},
	{wordPattern("fitness"), "health"},
	{wordPattern("exercise"), "health"},
	{wordPattern("workout"), "health"},
	{wordPattern("learning"), "learning"},
	{wordPattern("study"), "learning"},
	{wordPattern("course"), "learning"},
	{wordPattern("read"), "learning"},
	{wordPattern("other"), "other"},
}

// dateRules lists day and relative-date words, scanned in order. The first
// match wins and the matched word is removed from the working text.
var dateRules = []keywordRule{
	{wordPattern("today"), "today"},
	{wordPattern("tomorrow"), "tomorrow"},
	{wordPattern("tonight"), "tonight"},
	{wordPattern("morning"), "morning"},
	{wordPattern("afternoon"), "afternoon"},
	{wordPattern("evening"), "evening"},
	{wordPattern("monday"), "monday"},
	{wordPattern("tuesday"), "tuesday"},
	{wordPattern("wednesday"), "wednesday"},
	{wordPattern("thursday"), "thursday"},
	{wordPattern("friday"), "friday"},
	{wordPattern("saturday"), "saturday"},
	{wordPattern("sunday"), "sunday"},
	{wordPattern("next week"), "next week"},
	{wordPattern("this week"), "this week"},
}

// stripPatterns are leading intent and filler phrases removed from the
// start of the remaining text when deriving the title. Applied in order,
// one pass, each anchored at the start so mid-title words survive.
var stripPatterns = func() []*regexp.Regexp {
	words := []string{
		"add", "create", "new", "make", "schedule", "set up", "plan",
		"a", "an", "the", "my", "task", "todo", "to-do", "to do",
		"i need to", "i want to", "i have to", "remind me to",
		"please", "called", "named", "titled",
	}
	patterns := make([]*regexp.Regexp, len(words))
	for i, w := range words {
		patterns[i] = regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(w) + `\b\s*`)
	}
	return patterns
}()

var (
	// First form: "<level> priority", "<level> prio", or a bare level.
	priorityPattern = regexp.MustCompile(
		`(?i)\b(low|medium|mid|normal|high|urgent|critical|important)\s*(priority|prio)?\b`)

	// Second form: "priority <level>". Checked after the first form has
	// been removed; the later assignment wins.
	priorityAfterPattern = regexp.MustCompile(
		`(?i)\bpriority\s+(low|medium|mid|normal|high|urgent|critical|important)\b`)

	timePattern = regexp.MustCompile(`(?i)\b\d{1,2}(:\d{2})?\s*(am|pm)\b`)

	leadingPunct  = regexp.MustCompile(`^[\s:,\-–—]+`)
	trailingPunct = regexp.MustCompile(`[\s:,\-–—]+$`)
)

// ExtractEntities parses raw text into its structured parts. The passes
// run in a fixed order on a progressively shrinking working text: priority,
// category, date hint, time hint, then title derivation. Pure and total;
// extraction never fails.
func ExtractEntities(input string) Entities {
	text := strings.TrimSpace(input)
	var entities Entities

	// Priority: match a level optionally followed by "priority"/"prio",
	// then the reversed "priority <level>" form.
	if loc := priorityPattern.FindStringSubmatchIndex(text); loc != nil {
		level := strings.ToLower(text[loc[2]:loc[3]])
		entities.Priority = priorityMap[level]
		text = cutSpan(text, loc[0], loc[1])
	}
	if loc := priorityAfterPattern.FindStringSubmatchIndex(text); loc != nil {
		level := strings.ToLower(text[loc[2]:loc[3]])
		entities.Priority = priorityMap[level]
		text = cutSpan(text, loc[0], loc[1])
	}

	// Category: first keyword found wins; keyword stays in the text.
	for _, rule := range categoryRules {
		if rule.pattern.MatchString(text) {
			entities.Category = rule.value
			break
		}
	}

	// Date hint: first match wins and is removed.
	for _, rule := range dateRules {
		if loc := rule.pattern.FindStringIndex(text); loc != nil {
			entities.DateHint = rule.value
			text = cutSpan(text, loc[0], loc[1])
			break
		}
	}

	// Time hint: a clock time like "2pm" or "10:30 am".
	if loc := timePattern.FindStringIndex(text); loc != nil {
		entities.TimeHint = text[loc[0]:loc[1]]
		text = cutSpan(text, loc[0], loc[1])
	}

	// Title: strip leading intent/filler phrases, then surrounding
	// punctuation.
	title := text
	for _, pattern := range stripPatterns {
		title = pattern.ReplaceAllString(title, "")
	}
	title = leadingPunct.ReplaceAllString(title, "")
	title = trailingPunct.ReplaceAllString(title, "")
	entities.Title = strings.TrimSpace(title)

	return entities
}

// cutSpan removes s[start:end] and trims the result.
func cutSpan(s string, start, end int) string {
	return strings.TrimSpace(s[:start] + s[end:])
}
