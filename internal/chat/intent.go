package chat

import (
	"regexp"
	"strings"
)

// Intent is the discrete category of what the user wants to do, inferred
// from free text. Classification is total: every input maps to exactly one
// intent, with IntentUnknown as the fallback.
type Intent string

const (
	IntentAddTask        Intent = "add_task"
	IntentDeleteTask     Intent = "delete_task"
	IntentCompleteTask   Intent = "complete_task"
	IntentChangePriority Intent = "change_priority"
	IntentSearchTasks    Intent = "search_tasks"
	IntentListTasks      Intent = "list_tasks"
	IntentShowStats      Intent = "show_stats"
	IntentHelp           Intent = "help"
	IntentGreet          Intent = "greet"
	IntentUnknown        Intent = "unknown"
)

// intentRule pairs an intent with its recognition patterns.
type intentRule struct {
	intent   Intent
	patterns []*regexp.Regexp
}

// intentRules is the ordered classification rule table. Rules are evaluated
// in declaration order and the first matching pattern wins, so action
// intents that share vocabulary with the listing intents (e.g. "show") must
// stay ahead of them. Reordering entries changes behavior.
var intentRules = []intentRule{
	{
		intent: IntentAddTask,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^(add|create|new|make|schedule|set up|plan)\b`),
			regexp.MustCompile(`(?i)^(i need to|i want to|i have to|remind me to)\b`),
		},
	},
	{
		intent: IntentDeleteTask,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^(delete|remove|trash|discard|drop|cancel)\b`),
			regexp.MustCompile(`(?i)^(get rid of)\b`),
		},
	},
	{
		intent: IntentCompleteTask,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^(complete|finish|done|check off)\b`),
			regexp.MustCompile(`(?i)^mark\b.*\b(done|complete|finished)\b`),
			regexp.MustCompile(`(?i)^(i finished|i completed|i did)\b`),
		},
	},
	{
		intent: IntentChangePriority,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^(change|set|update|modify).*priorit`),
			regexp.MustCompile(`(?i)priorit.*\b(to|as)\b.*(low|medium|high|urgent)`),
			regexp.MustCompile(`(?i)^(make|set)\b.*\b(low|medium|high|urgent)\b.*priorit`),
		},
	},
	{
		intent: IntentSearchTasks,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^(search|find|look for|look up)\b`),
			regexp.MustCompile(`(?i)^show\b.*\b(pending|completed|done|incomplete|finished|overdue)\b`),
			regexp.MustCompile(`(?i)^(what|which)\b.*\b(pending|completed|done|incomplete)\b`),
		},
	},
	{
		intent: IntentListTasks,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^(list|show|display|view|see)\b.*\btask`),
			regexp.MustCompile(`(?i)^(show|list|display|view|see)\b.*\b(all|every|my)\b`),
			regexp.MustCompile(`(?i)^what\s*(are|is)\s*my\s*task`),
			regexp.MustCompile(`(?i)^(show|list)\s*(me\s*)?(all|every|the)\b`),
			regexp.MustCompile(`(?i)^(all|my)\s*tasks?\b`),
		},
	},
	{
		intent: IntentShowStats,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^(stats|statistics|progress|summary)\b`),
			regexp.MustCompile(`(?i)^(how many|count|total)\b.*task`),
			regexp.MustCompile(`(?i)^what('s| is)\s*(my\s*)?(progress|status|stats)`),
		},
	},
	{
		intent: IntentHelp,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^(help|commands?|how to|what can you|guide|assist)\b`),
			regexp.MustCompile(`(?i)^what\s*(do|can)\s*you\b`),
		},
	},
	{
		intent: IntentGreet,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^(hi|hello|hey|yo|sup|good\s*(morning|afternoon|evening)|greetings)\b`),
		},
	},
}

// Classify maps raw text to one intent using the ordered rule table.
// It never fails; empty input and text matching no rule return
// IntentUnknown.
func Classify(text string) Intent {
	trimmed := strings.TrimSpace(text)

	for _, rule := range intentRules {
		for _, pattern := range rule.patterns {
			if pattern.MatchString(trimmed) {
				return rule.intent
			}
		}
	}

	return IntentUnknown
}
