package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/umputun/chatsift/pkg/dispatch"
	"github.com/umputun/chatsift/pkg/domain"
)

// ingestRequest is the webhook payload for an incoming message
type ingestRequest struct {
	Message struct {
		ID        string    `json:"id,omitempty"`
		Text      string    `json:"text"`
		UserID    string    `json:"user_id"`
		ChannelID string    `json:"channel_id"`
		Timestamp time.Time `json:"timestamp,omitempty"`
		ThreadTS  string    `json:"thread_ts,omitempty"`
	} `json:"message"`
	User    domain.UserProfile `json:"user"`
	Channel domain.ChannelInfo `json:"channel"`
}

// ingestHandler accepts a message from the platform webhook and queues it
// for triage. Returns 202 on accept, 429 when the queue is full.
func (s *Server) ingestHandler(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RenderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Message.Text) == "" {
		RenderError(w, r, fmt.Errorf("message.text is required"), http.StatusBadRequest)
		return
	}
	if req.User.UserID == "" || req.User.TeamID == "" {
		RenderError(w, r, fmt.Errorf("user.id and user.team_id are required"), http.StatusBadRequest)
		return
	}

	if req.Message.Timestamp.IsZero() {
		req.Message.Timestamp = time.Now().UTC()
	}
	if req.Message.ID == "" {
		req.Message.ID = fmt.Sprintf("%s-%d", req.Message.ChannelID, req.Message.Timestamp.UnixNano())
	}

	job := dispatch.Job{
		Message: domain.Message{
			ID:        req.Message.ID,
			Text:      req.Message.Text,
			UserID:    req.Message.UserID,
			ChannelID: req.Message.ChannelID,
			Timestamp: req.Message.Timestamp,
			ThreadTS:  req.Message.ThreadTS,
		},
		Profile: req.User,
		Channel: req.Channel,
	}

	if err := s.processor.Enqueue(job); err != nil {
		if errors.Is(err, dispatch.ErrQueueFull) {
			RenderError(w, r, err, http.StatusTooManyRequests)
			return
		}
		RenderError(w, r, err, http.StatusInternalServerError)
		return
	}

	RenderJSON(w, r, http.StatusAccepted, map[string]string{"id": req.Message.ID, "status": "queued"})
}

// getSettingsHandler returns the settings for a user, creating defaults on
// first access
func (s *Server) getSettingsHandler(w http.ResponseWriter, r *http.Request) {
	teamID, userID := r.PathValue("team"), r.PathValue("user")

	settings, err := s.settings.GetOrCreate(r.Context(), userID, teamID)
	if err != nil {
		RenderError(w, r, fmt.Errorf("get settings: %w", err), http.StatusInternalServerError)
		return
	}
	RenderJSON(w, r, http.StatusOK, settings)
}

// updateSettingsHandler applies a partial settings update. Top-level groups
// absent from the body are left untouched.
func (s *Server) updateSettingsHandler(w http.ResponseWriter, r *http.Request) {
	teamID, userID := r.PathValue("team"), r.PathValue("user")

	var patch domain.SettingsPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		RenderError(w, r, fmt.Errorf("invalid settings patch: %w", err), http.StatusBadRequest)
		return
	}

	settings, err := s.settings.Update(r.Context(), userID, teamID, patch)
	if err != nil {
		RenderError(w, r, fmt.Errorf("update settings: %w", err), http.StatusInternalServerError)
		return
	}
	RenderJSON(w, r, http.StatusOK, settings)
}

// feedHandler returns the user's notification feed, newest first
func (s *Server) feedHandler(w http.ResponseWriter, r *http.Request) {
	teamID, userID := r.PathValue("team"), r.PathValue("user")

	limit := intQueryParam(r, "limit", 50)
	if limit > 200 {
		limit = 200
	}
	offset := intQueryParam(r, "offset", 0)

	records, err := s.feed.ListByUser(r.Context(), userID, teamID, limit, offset)
	if err != nil {
		RenderError(w, r, fmt.Errorf("list feed: %w", err), http.StatusInternalServerError)
		return
	}
	RenderJSON(w, r, http.StatusOK, map[string]interface{}{"records": records, "count": len(records)})
}

// intQueryParam parses an integer query parameter with a default
func intQueryParam(r *http.Request, name string, def int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return def
	}
	n, err := strconv.Atoi(val)
	if err != nil || n < 0 {
		return def
	}
	return n
}
