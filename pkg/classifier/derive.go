package classifier

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/umputun/chatsift/pkg/domain"
)

// categoryRules assign a category by keyword scan, first match wins. Order
// matters: urgent > mention > important > spam, everything else is general.
var categoryRules = []struct {
	category domain.Category
	words    []string
}{
	{domain.CategoryUrgent, []string{"urgent", "emergency", "asap", "critical", "immediately", "immediate", "outage", "down"}},
	{domain.CategoryMention, []string{"@", "mention"}},
	{domain.CategoryImportant, []string{"important", "deadline", "reminder", "review"}},
	{domain.CategorySpam, []string{"click here", "buy now", "winner", "limited offer", "free money"}},
}

// confidence baselines per category, jittered by ±confidenceJitter and
// clamped to [minConfidence, maxConfidence]
const (
	confidenceJitter = 5
	minConfidence    = 60
	maxConfidence    = 99
)

var confidenceBaselines = map[domain.Category]int{
	domain.CategoryUrgent:    95,
	domain.CategoryMention:   90,
	domain.CategoryImportant: 85,
	domain.CategorySpam:      88,
}

const defaultConfidence = 75

// Derive builds a full classification from a bare should-notify decision.
// Shared by both classifier paths: the fallback produces only a boolean, and
// this assigns category, priority, confidence and reasoning deterministically
// (up to bounded confidence jitter).
func Derive(shouldNotify bool, text string) domain.Classification {
	category, matched := detectCategory(text)

	result := domain.Classification{
		ShouldNotify: shouldNotify,
		Category:     category,
		Priority:     priorityFor(category),
		Confidence:   confidenceFor(category),
		Reasoning:    fmt.Sprintf("rule-based classification: category %s", category),
		Tags:         []string{string(category)},
	}
	if matched != "" {
		result.Reasoning = fmt.Sprintf("rule-based classification: category %s (matched %q)", category, matched)
		result.Tags = append(result.Tags, matched)
	}
	return result
}

// detectCategory scans the text against categoryRules, returning the first
// matching category and the keyword that triggered it
func detectCategory(text string) (domain.Category, string) {
	lower := strings.ToLower(text)
	for _, rule := range categoryRules {
		for _, w := range rule.words {
			if strings.Contains(lower, w) {
				return rule.category, w
			}
		}
	}
	return domain.CategoryGeneral, ""
}

// priorityFor derives priority from category
func priorityFor(category domain.Category) domain.Priority {
	switch category {
	case domain.CategoryUrgent:
		return domain.PriorityHigh
	case domain.CategoryImportant, domain.CategoryMention:
		return domain.PriorityMedium
	}
	return domain.PriorityLow
}

// confidenceFor returns the per-category baseline with bounded jitter
func confidenceFor(category domain.Category) int {
	base, ok := confidenceBaselines[category]
	if !ok {
		base = defaultConfidence
	}

	confidence := base + rand.IntN(2*confidenceJitter+1) - confidenceJitter
	if confidence < minConfidence {
		confidence = minConfidence
	}
	if confidence > maxConfidence {
		confidence = maxConfidence
	}
	return confidence
}
