package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"

	"github.com/umputun/chatsift/pkg/config"
	"github.com/umputun/chatsift/pkg/domain"
)

//go:generate moq -out mocks/extractor.go -pkg mocks -skip-ensure -fmt goimports . DecisionExtractor

// classification failure modes. ErrProtocol is terminal: a malformed response
// won't get better on retry. Callers treat both as "remote path down" and
// switch to the fallback classifier.
var (
	ErrUnavailable = errors.New("classifier unavailable")
	ErrProtocol    = errors.New("classifier protocol error")
)

// maxCleanupRounds bounds the yes/no extraction loop for non-canonical
// decision text
const maxCleanupRounds = 3

// DecisionExtractor normalizes free-text decisions to a boolean
type DecisionExtractor interface {
	ExtractYesNo(ctx context.Context, text string) (bool, error)
}

// Client invokes the remote classifier service with bounded retry and
// linear backoff
type Client struct {
	endpoint   string
	httpClient *http.Client
	maxRetries int
	baseDelay  time.Duration
	extractor  DecisionExtractor // optional, nil skips decision cleanup
}

// NewClient creates a classifier client. The extractor may be nil, in which
// case ambiguous decision text resolves to no-notify without cleanup.
func NewClient(cfg config.ClassifierConfig, extractor DecisionExtractor) *Client {
	return &Client{
		endpoint:   cfg.Endpoint,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		maxRetries: cfg.MaxRetries,
		baseDelay:  cfg.BaseDelay,
		extractor:  extractor,
	}
}

// request is the classifier wire format, field names fixed for interop with
// the classification backend
type request struct {
	Message struct {
		Text      string `json:"text"`
		UserID    string `json:"user_id"`
		ChannelID string `json:"channel_id"`
		Timestamp string `json:"timestamp"`
		ThreadTS  string `json:"thread_ts,omitempty"`
	} `json:"message"`
	Context struct {
		UserSettings domain.UserSettings `json:"user_settings"`
		ChannelInfo  domain.ChannelInfo  `json:"channel_info"`
	} `json:"context"`
}

// envelope is the classifier response wrapper
type envelope struct {
	Success   bool      `json:"success"`
	Data      *payload  `json:"data"`
	Error     *apiError `json:"error"`
	Timestamp string    `json:"timestamp"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// payload carries the classification result. ShouldNotify is kept raw
// because the backend sometimes returns free text instead of a boolean.
type payload struct {
	ShouldNotify json.RawMessage `json:"should_notify"`
	Confidence   int             `json:"confidence"`
	Category     string          `json:"category"`
	Priority     string          `json:"priority"`
	Reasoning    string          `json:"reasoning"`
	Tags         []string        `json:"tags"`
}

// Classify sends the message to the remote classifier. Transport failures
// and app-level success=false responses are retried up to MaxRetries with
// linear backoff; a malformed payload stops retrying and returns ErrProtocol.
// After retries are exhausted the error wraps ErrUnavailable.
func (c *Client) Classify(ctx context.Context, msg domain.Message, settings domain.UserSettings, channel domain.ChannelInfo) (domain.Classification, error) {
	req := request{}
	req.Message.Text = msg.Text
	req.Message.UserID = msg.UserID
	req.Message.ChannelID = msg.ChannelID
	req.Message.Timestamp = msg.Timestamp.UTC().Format(time.RFC3339)
	req.Message.ThreadTS = msg.ThreadTS
	req.Context.UserSettings = settings
	req.Context.ChannelInfo = channel

	body, err := json.Marshal(req)
	if err != nil {
		return domain.Classification{}, fmt.Errorf("marshal classification request: %w", err)
	}

	var data payload
	attempt := 0
	retrier := repeater.NewBackoff(c.maxRetries, c.baseDelay, repeater.WithBackoffType(repeater.BackoffLinear))

	err = retrier.Do(ctx, func() error {
		attempt++
		lgr.Printf("[DEBUG] classifier attempt %d/%d POST %s", attempt, c.maxRetries, c.endpoint)
		p, attemptErr := c.call(ctx, body)
		if attemptErr != nil {
			lgr.Printf("[WARN] classifier attempt %d failed: %v", attempt, attemptErr)
			return attemptErr
		}
		data = *p
		return nil
	}, ErrProtocol)

	if err != nil {
		if errors.Is(err, ErrProtocol) {
			return domain.Classification{}, err
		}
		return domain.Classification{}, fmt.Errorf("%w: %d attempts failed, last error: %v", ErrUnavailable, attempt, err)
	}

	return c.toClassification(ctx, data)
}

// call performs a single classification attempt
func (c *Client) call(ctx context.Context, body []byte) (*payload, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("post classification request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("classifier returned %d: %s", resp.StatusCode, string(respBody))
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrProtocol, err)
	}

	// app-level failure is retried the same way as a transport error
	if !env.Success {
		if env.Error != nil {
			return nil, fmt.Errorf("classifier reported failure: %s (%s)", env.Error.Message, env.Error.Code)
		}
		return nil, fmt.Errorf("classifier reported failure without error detail")
	}

	if env.Data == nil {
		return nil, fmt.Errorf("%w: success response without data", ErrProtocol)
	}
	if env.Data.Category == "" || env.Data.Priority == "" || len(env.Data.ShouldNotify) == 0 {
		return nil, fmt.Errorf("%w: missing required fields in response data", ErrProtocol)
	}

	return env.Data, nil
}

// toClassification converts the wire payload into a domain value, resolving
// the should_notify decision which may arrive as bool or free text
func (c *Client) toClassification(ctx context.Context, data payload) (domain.Classification, error) {
	priority := domain.Priority(strings.ToLower(data.Priority))
	switch priority {
	case domain.PriorityHigh, domain.PriorityMedium, domain.PriorityLow:
	default:
		return domain.Classification{}, fmt.Errorf("%w: unknown priority %q", ErrProtocol, data.Priority)
	}

	confidence := data.Confidence
	if confidence < 0 {
		confidence = 0
	} else if confidence > 100 {
		confidence = 100
	}

	result := domain.Classification{
		ShouldNotify: c.resolveDecision(ctx, data.ShouldNotify),
		Confidence:   confidence,
		Category:     domain.Category(strings.ToLower(data.Category)),
		Priority:     priority,
		Reasoning:    data.Reasoning,
		Tags:         data.Tags,
	}
	return result, nil
}

// resolveDecision turns the raw should_notify value into a boolean. Booleans
// and canonical yes/no strings resolve directly; anything else goes through
// the extractor for up to maxCleanupRounds. Unresolved ambiguity fails safe
// toward silence.
func (c *Client) resolveDecision(ctx context.Context, raw json.RawMessage) bool {
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		lgr.Printf("[WARN] classifier decision is neither bool nor string: %s", string(raw))
		return false
	}

	if v, ok := canonicalDecision(s); ok {
		return v
	}

	if c.extractor == nil {
		lgr.Printf("[WARN] ambiguous classifier decision %q and no extractor configured, defaulting to no-notify", s)
		return false
	}

	for round := 1; round <= maxCleanupRounds; round++ {
		v, err := c.extractor.ExtractYesNo(ctx, s)
		if err == nil {
			return v
		}
		lgr.Printf("[WARN] decision cleanup round %d failed: %v", round, err)
	}

	lgr.Printf("[WARN] classifier decision %q never converged, defaulting to no-notify", s)
	return false
}

// canonicalDecision maps well-known decision strings to a boolean
func canonicalDecision(s string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "true", "1":
		return true, true
	case "n", "no", "false", "0":
		return false, true
	}
	return false, false
}
