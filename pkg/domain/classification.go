package domain

// Category is a coarse classification tag. The vocabulary is open: the
// remote classifier may return tags outside this list, and delivery policy
// degrades gracefully for unknown ones.
type Category string

// categories with dedicated delivery routing
const (
	CategoryUrgent    Category = "urgent"
	CategoryImportant Category = "important"
	CategoryMention   Category = "mention"
	CategorySpam      Category = "spam"
	CategoryGeneral   Category = "general"
	CategoryQuestion  Category = "question"
	CategoryMeeting   Category = "meeting"
	CategorySocial    Category = "social"
)

// Priority derived from category
type Priority string

// priorities
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Classification is the outcome of the classify step for a single message.
// It is a value: created once, passed by copy, never mutated.
type Classification struct {
	ShouldNotify bool     `json:"should_notify"`
	Confidence   int      `json:"confidence"` // 0-100
	Category     Category `json:"category"`
	Priority     Priority `json:"priority"`
	Reasoning    string   `json:"reasoning"`
	Tags         []string `json:"tags"`
}
