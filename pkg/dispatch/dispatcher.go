// Package dispatch runs the triage pipeline: classify an incoming message,
// resolve the delivery decision, deliver best-effort and record the outcome.
package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/microcosm-cc/bluemonday"

	"github.com/umputun/chatsift/pkg/classifier"
	"github.com/umputun/chatsift/pkg/domain"
	"github.com/umputun/chatsift/pkg/policy"
)

//go:generate moq -out mocks/classifier.go -pkg mocks -skip-ensure -fmt goimports . Classifier
//go:generate moq -out mocks/settings.go -pkg mocks -skip-ensure -fmt goimports . SettingsStore
//go:generate moq -out mocks/alerter.go -pkg mocks -skip-ensure -fmt goimports . Alerter
//go:generate moq -out mocks/feedstore.go -pkg mocks -skip-ensure -fmt goimports . FeedStore

// Classifier interface for the remote classification path
type Classifier interface {
	Classify(ctx context.Context, msg domain.Message, settings domain.UserSettings, channel domain.ChannelInfo) (domain.Classification, error)
}

// SettingsStore interface for per-user preference lookup
type SettingsStore interface {
	GetOrCreate(ctx context.Context, userID, teamID string) (domain.UserSettings, error)
}

// Alerter interface for direct alert delivery
type Alerter interface {
	SendDirectAlert(ctx context.Context, userID string, payload []byte) error
}

// FeedStore interface for notification record storage
type FeedStore interface {
	Append(ctx context.Context, rec *domain.Record) error
}

// Dispatcher orchestrates the full triage pipeline for one message at a time
type Dispatcher struct {
	classifier Classifier // nil means the remote path is unconfigured
	settings   SettingsStore
	alerter    Alerter
	feed       FeedStore
	fallback   *classifier.Fallback
	resolver   *policy.Resolver
	sanitizer  *bluemonday.Policy
}

// New creates a dispatcher. A nil remote classifier routes every message
// through the rule-based fallback.
func New(remote Classifier, settings SettingsStore, alerter Alerter, feed FeedStore) *Dispatcher {
	return &Dispatcher{
		classifier: remote,
		settings:   settings,
		alerter:    alerter,
		feed:       feed,
		fallback:   classifier.NewFallback(),
		resolver:   policy.New(),
		sanitizer:  bluemonday.StrictPolicy(),
	}
}

// Process runs one message through classify, policy resolution and delivery,
// and returns the audit record. Classification failures are absorbed by the
// fallback path; delivery failures are logged and flagged on the record but
// never propagated. The returned error is reserved for settings-store
// failures, the only dependency the pipeline cannot degrade around.
func (d *Dispatcher) Process(ctx context.Context, msg domain.Message, profile domain.UserProfile, channel domain.ChannelInfo) (*domain.Record, error) {
	settings, err := d.settings.GetOrCreate(ctx, profile.UserID, profile.TeamID)
	if err != nil {
		return nil, fmt.Errorf("get settings for %s/%s: %w", profile.TeamID, profile.UserID, err)
	}

	result, source := d.classify(ctx, msg, profile, settings, channel)

	// user keywords are always-notify triggers regardless of the classifier
	// verdict
	if !result.ShouldNotify {
		if keyword, ok := classifier.MatchKeyword(msg.Text, settings.Keywords); ok {
			result.ShouldNotify = true
			result.Tags = append(result.Tags, "keyword:"+keyword)
		}
	}

	decision := d.resolver.Resolve(result, settings, time.Now())

	rec := &domain.Record{
		MessageID:      msg.ID,
		UserID:         profile.UserID,
		TeamID:         profile.TeamID,
		ChannelID:      msg.ChannelID,
		Text:           d.sanitizer.Sanitize(msg.Text),
		Classification: result,
		Decision:       decision,
		Classifier:     source,
		ProcessedAt:    time.Now().UTC(),
	}

	if decision.SendDM {
		if err := d.alerter.SendDirectAlert(ctx, profile.UserID, d.renderAlert(rec)); err != nil {
			lgr.Printf("[WARN] direct alert failed for %s/%s: %v", profile.TeamID, profile.UserID, err)
			rec.DMFailed = true
		}
	}
	rec.SentDM = decision.SendDM && !rec.DMFailed

	// the record is appended even when nothing is delivered, every processed
	// message leaves an audit entry
	if err := d.feed.Append(ctx, rec); err != nil {
		lgr.Printf("[WARN] record append failed for message %s: %v", msg.ID, err)
		rec.FeedFailed = true
	}

	lgr.Printf("[INFO] processed message %s for %s/%s: category=%s notify=%v dm=%v feed=%v suppressed=%v classifier=%s",
		msg.ID, profile.TeamID, profile.UserID, rec.Classification.Category, rec.Classification.ShouldNotify,
		rec.SentDM, decision.StoreInFeed, decision.SuppressedByQuietHours, source)

	return rec, nil
}

// classify runs the remote classifier when configured, falling back to the
// rule-based heuristic on any classification failure
func (d *Dispatcher) classify(ctx context.Context, msg domain.Message, profile domain.UserProfile, settings domain.UserSettings, channel domain.ChannelInfo) (domain.Classification, domain.ClassifierSource) {
	if d.classifier == nil {
		should := d.fallback.Classify(msg.Text, profile.Description)
		return classifier.Derive(should, msg.Text), domain.ClassifierFallback
	}

	result, err := d.classifier.Classify(ctx, msg, settings, channel)
	if err != nil {
		lgr.Printf("[WARN] remote classification failed for message %s, using fallback: %v", msg.ID, err)
		should := d.fallback.Classify(msg.Text, profile.Description)
		return classifier.Derive(should, msg.Text), domain.ClassifierFallback
	}
	return result, domain.ClassifierRemote
}

// renderAlert builds the direct alert payload sent to the delivery collaborator
func (d *Dispatcher) renderAlert(rec *domain.Record) []byte {
	payload := map[string]any{
		"title":      fmt.Sprintf("[%s] message in %s", rec.Classification.Category, rec.ChannelID),
		"text":       rec.Text,
		"category":   rec.Classification.Category,
		"priority":   rec.Classification.Priority,
		"confidence": rec.Classification.Confidence,
		"reasoning":  rec.Classification.Reasoning,
		"message_id": rec.MessageID,
		"channel_id": rec.ChannelID,
	}

	data, err := json.Marshal(payload)
	if err != nil { // can't happen with this payload shape
		lgr.Printf("[ERROR] render alert for message %s: %v", rec.MessageID, err)
		return []byte("{}")
	}
	return data
}
