package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"

	"github.com/umputun/chatsift/pkg/domain"
)

// RecordRepository handles notification record storage. Records are
// write-once: the engine appends, collaborators read.
type RecordRepository struct {
	db *sqlx.DB
}

// NewRecordRepository creates a new record repository
func NewRecordRepository(db *sqlx.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

// dbRecord is the database representation of a notification record
type dbRecord struct {
	ID                     int64     `db:"id"`
	MessageID              string    `db:"message_id"`
	UserID                 string    `db:"user_id"`
	TeamID                 string    `db:"team_id"`
	ChannelID              string    `db:"channel_id"`
	Text                   string    `db:"text"`
	ShouldNotify           bool      `db:"should_notify"`
	Confidence             int       `db:"confidence"`
	Category               string    `db:"category"`
	Priority               string    `db:"priority"`
	Reasoning              string    `db:"reasoning"`
	Tags                   string    `db:"tags"`
	Classifier             string    `db:"classifier"`
	SendDM                 bool      `db:"send_dm"`
	StoreInFeed            bool      `db:"store_in_feed"`
	SuppressedByQuietHours bool      `db:"suppressed_by_quiet_hours"`
	SentDM                 bool      `db:"sent_dm"`
	DMFailed               bool      `db:"dm_failed"`
	ProcessedAt            time.Time `db:"processed_at"`
}

// Append stores a notification record and sets its ID
func (r *RecordRepository) Append(ctx context.Context, rec *domain.Record) error {
	tags, err := json.Marshal(rec.Classification.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}

	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	return retrier.Do(ctx, func() error {
		query := `
			INSERT INTO notifications (
				message_id, user_id, team_id, channel_id, text,
				should_notify, confidence, category, priority, reasoning, tags,
				classifier, send_dm, store_in_feed, suppressed_by_quiet_hours,
				sent_dm, dm_failed, processed_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`
		res, err := r.db.ExecContext(ctx, query,
			rec.MessageID, rec.UserID, rec.TeamID, rec.ChannelID, rec.Text,
			rec.Classification.ShouldNotify, rec.Classification.Confidence,
			string(rec.Classification.Category), string(rec.Classification.Priority),
			rec.Classification.Reasoning, string(tags),
			string(rec.Classifier), rec.Decision.SendDM, rec.Decision.StoreInFeed,
			rec.Decision.SuppressedByQuietHours, rec.SentDM, rec.DMFailed,
			rec.ProcessedAt,
		)
		if err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("append notification record: %w", err)}
		}

		id, err := res.LastInsertId()
		if err != nil {
			return &criticalError{err: fmt.Errorf("get record id: %w", err)}
		}
		rec.ID = id
		return nil
	})
}

// ListByUser returns feed entries for a user, newest first. Only records
// resolved for feed storage are returned.
func (r *RecordRepository) ListByUser(ctx context.Context, userID, teamID string, limit, offset int) ([]domain.Record, error) {
	query := `
		SELECT id, message_id, user_id, team_id, channel_id, text,
		       should_notify, confidence, category, priority, reasoning, tags,
		       classifier, send_dm, store_in_feed, suppressed_by_quiet_hours,
		       sent_dm, dm_failed, processed_at
		FROM notifications
		WHERE user_id = ? AND team_id = ? AND store_in_feed = 1
		ORDER BY processed_at DESC, id DESC
		LIMIT ? OFFSET ?
	`
	var rows []dbRecord
	if err := r.db.SelectContext(ctx, &rows, query, userID, teamID, limit, offset); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	records := make([]domain.Record, len(rows))
	for i, row := range rows {
		rec, err := toDomainRecord(row)
		if err != nil {
			return nil, err
		}
		records[i] = rec
	}
	return records, nil
}

// toDomainRecord converts a database row to a domain record
func toDomainRecord(row dbRecord) (domain.Record, error) {
	var tags []string
	if row.Tags != "" {
		if err := json.Unmarshal([]byte(row.Tags), &tags); err != nil {
			return domain.Record{}, fmt.Errorf("unmarshal tags for record %d: %w", row.ID, err)
		}
	}

	return domain.Record{
		ID:        row.ID,
		MessageID: row.MessageID,
		UserID:    row.UserID,
		TeamID:    row.TeamID,
		ChannelID: row.ChannelID,
		Text:      row.Text,
		Classification: domain.Classification{
			ShouldNotify: row.ShouldNotify,
			Confidence:   row.Confidence,
			Category:     domain.Category(row.Category),
			Priority:     domain.Priority(row.Priority),
			Reasoning:    row.Reasoning,
			Tags:         tags,
		},
		Decision: domain.Decision{
			SendDM:                 row.SendDM,
			StoreInFeed:            row.StoreInFeed,
			SuppressedByQuietHours: row.SuppressedByQuietHours,
		},
		Classifier:  domain.ClassifierSource(row.Classifier),
		SentDM:      row.SentDM,
		DMFailed:    row.DMFailed,
		ProcessedAt: row.ProcessedAt,
	}, nil
}
