// Package policy resolves per-user delivery decisions from classification
// results and notification preferences.
package policy

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/chatsift/pkg/domain"
)

// defaults applied when the quiet-hours window is misconfigured, 22:00-08:00
const (
	defaultQuietStart = 22 * 60
	defaultQuietEnd   = 8 * 60
)

// Resolver decides delivery channels for a classified message
type Resolver struct{}

// New creates a delivery policy resolver
func New() *Resolver {
	return &Resolver{}
}

// Resolve computes the delivery decision. The feed is never suppressed by
// quiet hours; direct alerts are suppressed inside the quiet window for every
// category except urgent, which always follows the urgent_via_dm preference.
// A decision with neither channel selected is a valid outcome, the message is
// simply dropped.
func (r *Resolver) Resolve(c domain.Classification, s domain.UserSettings, now time.Time) domain.Decision {
	decision := domain.Decision{}

	if s.Delivery.FeedEnabled {
		decision.StoreInFeed = true
	}

	if r.inQuietHours(c.Category, s.QuietHours, now) {
		decision.SuppressedByQuietHours = true
		return decision
	}

	switch c.Category {
	case domain.CategoryUrgent:
		decision.SendDM = s.Delivery.UrgentViaDM
	case domain.CategoryImportant:
		decision.SendDM = s.Delivery.ImportantViaDM
	case domain.CategoryMention:
		decision.SendDM = s.Delivery.MentionsViaDM
	default:
		// unclassified high-priority messages are urgent-adjacent for
		// delivery purposes
		decision.SendDM = c.Priority == domain.PriorityHigh && s.Delivery.UrgentViaDM
	}

	return decision
}

// inQuietHours reports whether now falls inside the configured quiet window.
// Urgent messages always bypass quiet hours. The window may wrap midnight:
// start > end means it spans overnight, start == end disables it.
func (r *Resolver) inQuietHours(category domain.Category, qh domain.QuietHours, now time.Time) bool {
	if !qh.Enabled || category == domain.CategoryUrgent {
		return false
	}

	loc, err := time.LoadLocation(qh.Timezone)
	if err != nil {
		lgr.Printf("[WARN] unknown timezone %q, falling back to UTC", qh.Timezone)
		loc = time.UTC
	}

	start := parseClock(qh.Start, defaultQuietStart)
	end := parseClock(qh.End, defaultQuietEnd)
	if start == end {
		return false
	}

	local := now.In(loc)
	minute := local.Hour()*60 + local.Minute()

	if start < end { // same-day window, e.g. 09:00-17:00
		return minute >= start && minute < end
	}
	// overnight window, e.g. 22:00-08:00
	return minute >= start || minute < end
}

// parseClock converts "HH:MM" to minutes since midnight, returning def on
// any malformed or missing value
func parseClock(s string, def int) int {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return def
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return def
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return def
	}
	return hour*60 + minute
}
