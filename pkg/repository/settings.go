package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"

	"github.com/umputun/chatsift/pkg/domain"
)

// SettingsRepository handles per-user notification preference storage
type SettingsRepository struct {
	db *sqlx.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetOrCreate returns the settings for a (user, team) pair, creating the
// default settings row on first access. Concurrent first accesses converge on
// a single row: the insert is a no-op when the row already exists, and the
// returned value is always read back from storage.
func (r *SettingsRepository) GetOrCreate(ctx context.Context, userID, teamID string) (domain.UserSettings, error) {
	defaults, err := json.Marshal(domain.DefaultSettings())
	if err != nil {
		return domain.UserSettings{}, fmt.Errorf("marshal default settings: %w", err)
	}

	var settings domain.UserSettings
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	err = retrier.Do(ctx, func() error {
		query := `
			INSERT INTO user_settings (user_id, team_id, settings) VALUES (?, ?, ?)
			ON CONFLICT(user_id, team_id) DO NOTHING
		`
		if _, err := r.db.ExecContext(ctx, query, userID, teamID, string(defaults)); err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("create default settings: %w", err)}
		}

		var raw string
		if err := r.db.GetContext(ctx, &raw, "SELECT settings FROM user_settings WHERE user_id = ? AND team_id = ?", userID, teamID); err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("get settings: %w", err)}
		}

		if err := json.Unmarshal([]byte(raw), &settings); err != nil {
			return &criticalError{err: fmt.Errorf("unmarshal settings: %w", err)}
		}
		return nil
	})

	if err != nil {
		return domain.UserSettings{}, err
	}
	return settings, nil
}

// Update merges a partial settings patch into the stored settings and
// returns the merged result. The read-modify-write runs inside a single
// transaction so concurrent updates for the same key never lose a write.
func (r *SettingsRepository) Update(ctx context.Context, userID, teamID string, patch domain.SettingsPatch) (domain.UserSettings, error) {
	var merged domain.UserSettings
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	err := retrier.Do(ctx, func() error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("begin settings update: %w", err)}
		}
		defer func() { _ = tx.Rollback() }()

		current := domain.DefaultSettings()
		var raw string
		err = tx.GetContext(ctx, &raw, "SELECT settings FROM user_settings WHERE user_id = ? AND team_id = ?", userID, teamID)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// first update for this key, start from defaults
		case err != nil:
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("get settings for update: %w", err)}
		default:
			if err := json.Unmarshal([]byte(raw), &current); err != nil {
				return &criticalError{err: fmt.Errorf("unmarshal settings: %w", err)}
			}
		}

		current.Apply(patch)

		data, err := json.Marshal(current)
		if err != nil {
			return &criticalError{err: fmt.Errorf("marshal settings: %w", err)}
		}

		query := `
			INSERT INTO user_settings (user_id, team_id, settings) VALUES (?, ?, ?)
			ON CONFLICT(user_id, team_id)
			DO UPDATE SET settings = excluded.settings, updated_at = CURRENT_TIMESTAMP
		`
		if _, err := tx.ExecContext(ctx, query, userID, teamID, string(data)); err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("update settings: %w", err)}
		}

		if err := tx.Commit(); err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("commit settings update: %w", err)}
		}

		merged = current
		return nil
	})

	if err != nil {
		return domain.UserSettings{}, err
	}
	return merged, nil
}
