package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/chatsift/pkg/classifier"
	"github.com/umputun/chatsift/pkg/dispatch/mocks"
	"github.com/umputun/chatsift/pkg/domain"
)

func testJob(text string) (domain.Message, domain.UserProfile, domain.ChannelInfo) {
	msg := domain.Message{
		ID:        "msg-1",
		Text:      text,
		UserID:    "u-sender",
		ChannelID: "c-ops",
		Timestamp: time.Now().UTC(),
	}
	profile := domain.UserProfile{UserID: "u-recipient", TeamID: "t1", Name: "recipient"}
	channel := domain.ChannelInfo{Name: "ops", MemberCount: 12}
	return msg, profile, channel
}

func settingsMock(s domain.UserSettings) *mocks.SettingsStoreMock {
	return &mocks.SettingsStoreMock{
		GetOrCreateFunc: func(ctx context.Context, userID, teamID string) (domain.UserSettings, error) {
			return s, nil
		},
	}
}

func okAlerter() *mocks.AlerterMock {
	return &mocks.AlerterMock{
		SendDirectAlertFunc: func(ctx context.Context, userID string, payload []byte) error { return nil },
	}
}

func okFeed() *mocks.FeedStoreMock {
	return &mocks.FeedStoreMock{
		AppendFunc: func(ctx context.Context, rec *domain.Record) error {
			rec.ID = 1
			return nil
		},
	}
}

func TestDispatcher_Process_RemotePath(t *testing.T) {
	remote := &mocks.ClassifierMock{
		ClassifyFunc: func(ctx context.Context, msg domain.Message, settings domain.UserSettings, channel domain.ChannelInfo) (domain.Classification, error) {
			return domain.Classification{
				ShouldNotify: true,
				Confidence:   95,
				Category:     domain.CategoryUrgent,
				Priority:     domain.PriorityHigh,
				Reasoning:    "production outage",
				Tags:         []string{"incident"},
			}, nil
		},
	}
	alerter := okAlerter()
	feed := okFeed()

	d := New(remote, settingsMock(domain.DefaultSettings()), alerter, feed)
	msg, profile, channel := testJob("production is on fire")

	rec, err := d.Process(context.Background(), msg, profile, channel)
	require.NoError(t, err)

	assert.Equal(t, domain.ClassifierRemote, rec.Classifier)
	assert.Equal(t, domain.CategoryUrgent, rec.Classification.Category)
	assert.True(t, rec.Decision.SendDM, "urgent via dm is on by default")
	assert.True(t, rec.Decision.StoreInFeed)
	assert.True(t, rec.SentDM)
	assert.False(t, rec.DMFailed)
	assert.Equal(t, int64(1), rec.ID, "record id set by the store")

	require.Len(t, alerter.SendDirectAlertCalls(), 1)
	assert.Equal(t, "u-recipient", alerter.SendDirectAlertCalls()[0].UserID)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(alerter.SendDirectAlertCalls()[0].Payload, &payload))
	assert.Equal(t, "[urgent] message in c-ops", payload["title"])
	assert.Equal(t, "production is on fire", payload["text"])

	require.Len(t, feed.AppendCalls(), 1)
}

func TestDispatcher_Process_FallbackOnRemoteFailure(t *testing.T) {
	remote := &mocks.ClassifierMock{
		ClassifyFunc: func(ctx context.Context, msg domain.Message, settings domain.UserSettings, channel domain.ChannelInfo) (domain.Classification, error) {
			return domain.Classification{}, classifier.ErrUnavailable
		},
	}
	feed := okFeed()

	d := New(remote, settingsMock(domain.DefaultSettings()), okAlerter(), feed)
	msg, profile, channel := testJob("urgent: database is down")

	rec, err := d.Process(context.Background(), msg, profile, channel)
	require.NoError(t, err, "remote failure must not fail the pipeline")

	assert.Equal(t, domain.ClassifierFallback, rec.Classifier)
	assert.True(t, rec.Classification.ShouldNotify, "urgency vocabulary triggers the fallback")
	assert.Equal(t, domain.CategoryUrgent, rec.Classification.Category)
	require.Len(t, feed.AppendCalls(), 1, "record produced despite classifier outage")
}

func TestDispatcher_Process_NoRemoteConfigured(t *testing.T) {
	d := New(nil, settingsMock(domain.DefaultSettings()), okAlerter(), okFeed())
	msg, profile, channel := testJob("lunch anyone?")

	rec, err := d.Process(context.Background(), msg, profile, channel)
	require.NoError(t, err)
	assert.Equal(t, domain.ClassifierFallback, rec.Classifier)
	assert.False(t, rec.Classification.ShouldNotify)
	assert.False(t, rec.SentDM)
	assert.True(t, rec.Decision.StoreInFeed, "quiet messages still land in the feed")
}

func TestDispatcher_Process_KeywordOverride(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.Keywords = []string{"deploy"}

	d := New(nil, settingsMock(settings), okAlerter(), okFeed())
	msg, profile, channel := testJob("the deploy just finished")

	rec, err := d.Process(context.Background(), msg, profile, channel)
	require.NoError(t, err)
	assert.True(t, rec.Classification.ShouldNotify, "keyword match forces notify")
	assert.Contains(t, rec.Classification.Tags, "keyword:deploy")
}

func TestDispatcher_Process_SettingsFailureIsFatal(t *testing.T) {
	settings := &mocks.SettingsStoreMock{
		GetOrCreateFunc: func(ctx context.Context, userID, teamID string) (domain.UserSettings, error) {
			return domain.UserSettings{}, errors.New("db gone")
		},
	}

	d := New(nil, settings, okAlerter(), okFeed())
	msg, profile, channel := testJob("hello")

	_, err := d.Process(context.Background(), msg, profile, channel)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "get settings")
}

func TestDispatcher_Process_DeliveryFailuresFlaggedNotFatal(t *testing.T) {
	remote := &mocks.ClassifierMock{
		ClassifyFunc: func(ctx context.Context, msg domain.Message, settings domain.UserSettings, channel domain.ChannelInfo) (domain.Classification, error) {
			return domain.Classification{ShouldNotify: true, Confidence: 90, Category: domain.CategoryUrgent, Priority: domain.PriorityHigh}, nil
		},
	}

	t.Run("dm failure", func(t *testing.T) {
		alerter := &mocks.AlerterMock{
			SendDirectAlertFunc: func(ctx context.Context, userID string, payload []byte) error {
				return errors.New("webhook 503")
			},
		}
		feed := okFeed()

		d := New(remote, settingsMock(domain.DefaultSettings()), alerter, feed)
		msg, profile, channel := testJob("urgent thing")

		rec, err := d.Process(context.Background(), msg, profile, channel)
		require.NoError(t, err)
		assert.True(t, rec.DMFailed)
		assert.False(t, rec.SentDM)
		require.Len(t, feed.AppendCalls(), 1, "feed append still happens after dm failure")
	})

	t.Run("feed failure", func(t *testing.T) {
		feed := &mocks.FeedStoreMock{
			AppendFunc: func(ctx context.Context, rec *domain.Record) error { return errors.New("disk full") },
		}

		d := New(remote, settingsMock(domain.DefaultSettings()), okAlerter(), feed)
		msg, profile, channel := testJob("urgent thing")

		rec, err := d.Process(context.Background(), msg, profile, channel)
		require.NoError(t, err)
		assert.True(t, rec.FeedFailed)
		assert.True(t, rec.SentDM, "dm already went out")
	})
}

func TestDispatcher_Process_QuietHoursSuppression(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.QuietHours = domain.QuietHours{Enabled: true, Start: "00:00", End: "23:59", Timezone: "UTC"}

	remote := &mocks.ClassifierMock{
		ClassifyFunc: func(ctx context.Context, msg domain.Message, settings domain.UserSettings, channel domain.ChannelInfo) (domain.Classification, error) {
			return domain.Classification{ShouldNotify: true, Confidence: 85, Category: domain.CategoryImportant, Priority: domain.PriorityMedium}, nil
		},
	}
	alerter := okAlerter()

	d := New(remote, settingsMock(settings), alerter, okFeed())
	msg, profile, channel := testJob("deadline reminder")

	rec, err := d.Process(context.Background(), msg, profile, channel)
	require.NoError(t, err)
	assert.True(t, rec.Decision.SuppressedByQuietHours)
	assert.False(t, rec.SentDM)
	assert.Empty(t, alerter.SendDirectAlertCalls())
	assert.True(t, rec.Decision.StoreInFeed, "feed survives quiet hours")
}

func TestDispatcher_Process_SanitizesText(t *testing.T) {
	d := New(nil, settingsMock(domain.DefaultSettings()), okAlerter(), okFeed())
	msg, profile, channel := testJob(`hello <script>alert("x")</script>world`)

	rec, err := d.Process(context.Background(), msg, profile, channel)
	require.NoError(t, err)
	assert.NotContains(t, rec.Text, "<script>")
	assert.Contains(t, rec.Text, "hello")
}
