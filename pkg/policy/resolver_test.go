package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/umputun/chatsift/pkg/domain"
)

func settingsWith(qh domain.QuietHours, delivery domain.DeliveryPreferences) domain.UserSettings {
	s := domain.DefaultSettings()
	s.QuietHours = qh
	s.Delivery = delivery
	return s
}

func allChannels() domain.DeliveryPreferences {
	return domain.DeliveryPreferences{UrgentViaDM: true, ImportantViaDM: true, MentionsViaDM: true, FeedEnabled: true}
}

func TestResolver_Resolve_CategoryRouting(t *testing.T) {
	resolver := New()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		c        domain.Classification
		delivery domain.DeliveryPreferences
		sendDM   bool
		inFeed   bool
	}{
		{
			name:     "urgent with dm enabled",
			c:        domain.Classification{Category: domain.CategoryUrgent, Priority: domain.PriorityHigh},
			delivery: allChannels(),
			sendDM:   true, inFeed: true,
		},
		{
			name:     "urgent with dm disabled",
			c:        domain.Classification{Category: domain.CategoryUrgent, Priority: domain.PriorityHigh},
			delivery: domain.DeliveryPreferences{UrgentViaDM: false, FeedEnabled: true},
			sendDM:   false, inFeed: true,
		},
		{
			name:     "important routed by preference",
			c:        domain.Classification{Category: domain.CategoryImportant, Priority: domain.PriorityMedium},
			delivery: domain.DeliveryPreferences{ImportantViaDM: true, FeedEnabled: true},
			sendDM:   true, inFeed: true,
		},
		{
			name:     "mention disabled by default preference",
			c:        domain.Classification{Category: domain.CategoryMention, Priority: domain.PriorityMedium},
			delivery: domain.DeliveryPreferences{MentionsViaDM: false, FeedEnabled: true},
			sendDM:   false, inFeed: true,
		},
		{
			name:     "unknown category with high priority follows urgent preference",
			c:        domain.Classification{Category: domain.Category("escalation"), Priority: domain.PriorityHigh},
			delivery: domain.DeliveryPreferences{UrgentViaDM: true, FeedEnabled: true},
			sendDM:   true, inFeed: true,
		},
		{
			name:     "general low priority never gets dm",
			c:        domain.Classification{Category: domain.CategoryGeneral, Priority: domain.PriorityLow},
			delivery: allChannels(),
			sendDM:   false, inFeed: true,
		},
		{
			name:     "feed disabled",
			c:        domain.Classification{Category: domain.CategoryGeneral, Priority: domain.PriorityLow},
			delivery: domain.DeliveryPreferences{FeedEnabled: false},
			sendDM:   false, inFeed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := settingsWith(domain.QuietHours{Enabled: false}, tt.delivery)
			got := resolver.Resolve(tt.c, s, now)
			assert.Equal(t, tt.sendDM, got.SendDM)
			assert.Equal(t, tt.inFeed, got.StoreInFeed)
			assert.False(t, got.SuppressedByQuietHours)
		})
	}
}

func TestResolver_Resolve_QuietHours(t *testing.T) {
	resolver := New()

	overnight := domain.QuietHours{Enabled: true, Start: "22:00", End: "08:00", Timezone: "UTC"}

	t.Run("important suppressed inside overnight window", func(t *testing.T) {
		now := time.Date(2025, 6, 1, 23, 30, 0, 0, time.UTC)
		got := resolver.Resolve(domain.Classification{Category: domain.CategoryImportant, Priority: domain.PriorityMedium},
			settingsWith(overnight, allChannels()), now)
		assert.False(t, got.SendDM)
		assert.True(t, got.StoreInFeed, "feed is never suppressed")
		assert.True(t, got.SuppressedByQuietHours)
	})

	t.Run("early morning still inside overnight window", func(t *testing.T) {
		now := time.Date(2025, 6, 1, 7, 59, 0, 0, time.UTC)
		got := resolver.Resolve(domain.Classification{Category: domain.CategoryMention, Priority: domain.PriorityMedium},
			settingsWith(overnight, allChannels()), now)
		assert.True(t, got.SuppressedByQuietHours)
	})

	t.Run("window end is exclusive", func(t *testing.T) {
		now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
		got := resolver.Resolve(domain.Classification{Category: domain.CategoryMention, Priority: domain.PriorityMedium},
			settingsWith(overnight, allChannels()), now)
		assert.False(t, got.SuppressedByQuietHours)
	})

	t.Run("urgent bypasses quiet hours", func(t *testing.T) {
		now := time.Date(2025, 6, 1, 23, 30, 0, 0, time.UTC)
		got := resolver.Resolve(domain.Classification{Category: domain.CategoryUrgent, Priority: domain.PriorityHigh},
			settingsWith(overnight, allChannels()), now)
		assert.True(t, got.SendDM)
		assert.False(t, got.SuppressedByQuietHours)
	})

	t.Run("disabled window never suppresses", func(t *testing.T) {
		qh := domain.QuietHours{Enabled: false, Start: "22:00", End: "08:00", Timezone: "UTC"}
		now := time.Date(2025, 6, 1, 23, 30, 0, 0, time.UTC)
		got := resolver.Resolve(domain.Classification{Category: domain.CategoryImportant, Priority: domain.PriorityMedium},
			settingsWith(qh, allChannels()), now)
		assert.True(t, got.SendDM)
		assert.False(t, got.SuppressedByQuietHours)
	})

	t.Run("same-day window does not wrap", func(t *testing.T) {
		qh := domain.QuietHours{Enabled: true, Start: "09:00", End: "17:00", Timezone: "UTC"}

		inside := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		got := resolver.Resolve(domain.Classification{Category: domain.CategoryImportant, Priority: domain.PriorityMedium},
			settingsWith(qh, allChannels()), inside)
		assert.True(t, got.SuppressedByQuietHours)

		outside := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)
		got = resolver.Resolve(domain.Classification{Category: domain.CategoryImportant, Priority: domain.PriorityMedium},
			settingsWith(qh, allChannels()), outside)
		assert.False(t, got.SuppressedByQuietHours)
		assert.True(t, got.SendDM)
	})

	t.Run("equal start and end disables the window", func(t *testing.T) {
		qh := domain.QuietHours{Enabled: true, Start: "10:00", End: "10:00", Timezone: "UTC"}
		now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
		got := resolver.Resolve(domain.Classification{Category: domain.CategoryImportant, Priority: domain.PriorityMedium},
			settingsWith(qh, allChannels()), now)
		assert.False(t, got.SuppressedByQuietHours)
	})

	t.Run("window evaluated in user timezone", func(t *testing.T) {
		qh := domain.QuietHours{Enabled: true, Start: "22:00", End: "08:00", Timezone: "America/New_York"}
		// 03:00 UTC is 23:00 EDT, inside the window
		now := time.Date(2025, 6, 1, 3, 0, 0, 0, time.UTC)
		got := resolver.Resolve(domain.Classification{Category: domain.CategoryImportant, Priority: domain.PriorityMedium},
			settingsWith(qh, allChannels()), now)
		assert.True(t, got.SuppressedByQuietHours)
	})

	t.Run("bad timezone falls back to utc", func(t *testing.T) {
		qh := domain.QuietHours{Enabled: true, Start: "22:00", End: "08:00", Timezone: "Mars/Olympus"}
		now := time.Date(2025, 6, 1, 23, 0, 0, 0, time.UTC)
		got := resolver.Resolve(domain.Classification{Category: domain.CategoryImportant, Priority: domain.PriorityMedium},
			settingsWith(qh, allChannels()), now)
		assert.True(t, got.SuppressedByQuietHours)
	})

	t.Run("malformed clock values use defaults", func(t *testing.T) {
		qh := domain.QuietHours{Enabled: true, Start: "quarter past nine", End: "25:99", Timezone: "UTC"}
		// defaults are 22:00-08:00
		inside := time.Date(2025, 6, 1, 23, 0, 0, 0, time.UTC)
		got := resolver.Resolve(domain.Classification{Category: domain.CategoryImportant, Priority: domain.PriorityMedium},
			settingsWith(qh, allChannels()), inside)
		assert.True(t, got.SuppressedByQuietHours)

		outside := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		got = resolver.Resolve(domain.Classification{Category: domain.CategoryImportant, Priority: domain.PriorityMedium},
			settingsWith(qh, allChannels()), outside)
		assert.False(t, got.SuppressedByQuietHours)
	})
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in   string
		def  int
		want int
	}{
		{"22:00", 0, 22 * 60},
		{"08:30", 0, 8*60 + 30},
		{"00:00", 99, 0},
		{"23:59", 0, 23*60 + 59},
		{"24:00", 77, 77},
		{"12:60", 77, 77},
		{"-1:00", 77, 77},
		{"noon", 77, 77},
		{"", 77, 77},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseClock(tt.in, tt.def))
		})
	}
}
