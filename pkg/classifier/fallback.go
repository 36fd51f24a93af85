package classifier

import "strings"

// urgencyWords is the fixed vocabulary that makes the fallback classifier
// notify. Substring match, case-insensitive.
var urgencyWords = []string{"urgent", "help", "important", "emergency", "asap", "critical", "immediately"}

// Fallback is the deterministic rule-based classifier used when the remote
// classifier is unreachable or unconfigured. It is a degraded-mode
// substitute: callers choose it explicitly when the remote path is known to
// be down, it never silently replaces a working classifier.
type Fallback struct{}

// NewFallback creates the rule-based fallback classifier
func NewFallback() *Fallback {
	return &Fallback{}
}

// Classify returns the should-notify decision for a message. It triggers on
// the urgency vocabulary in the message text, or on a stated "all" preference
// in the user's description. Category, priority and confidence are derived
// afterwards by Derive, shared with the remote path.
func (f *Fallback) Classify(text, userDescription string) bool {
	lower := strings.ToLower(text)
	for _, w := range urgencyWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(userDescription), "all")
}

// MatchKeyword reports whether any of the user's always-notify keywords
// occurs in the message text, case-insensitive substring match
func MatchKeyword(text string, keywords []string) (string, bool) {
	lower := strings.ToLower(text)
	for _, k := range keywords {
		if k == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(k)) {
			return k, true
		}
	}
	return "", false
}
