package domain

// NotificationLevel is the coarse global filter applied to all messages
type NotificationLevel string

// notification levels, from most to least noisy
const (
	LevelAll       NotificationLevel = "all"
	LevelMentions  NotificationLevel = "mentions"
	LevelImportant NotificationLevel = "important"
	LevelNone      NotificationLevel = "none"
)

// QuietHours defines a time-of-day window during which direct alerts are
// suppressed. Start and End are "HH:MM" clock values in Timezone; a window
// with Start > End wraps midnight.
type QuietHours struct {
	Enabled  bool   `json:"enabled"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Timezone string `json:"timezone"`
}

// DeliveryPreferences selects delivery channels per category
type DeliveryPreferences struct {
	UrgentViaDM    bool `json:"urgent_via_dm"`
	ImportantViaDM bool `json:"important_via_dm"`
	MentionsViaDM  bool `json:"mentions_via_dm"`
	FeedEnabled    bool `json:"feed_enabled"`
}

// Filters holds message filtering knobs passed to the classifier
type Filters struct {
	SpamDetection       bool `json:"spam_detection"`
	DuplicateDetection  bool `json:"duplicate_detection"`
	ImportanceThreshold int  `json:"importance_threshold"` // 0-100
}

// UserSettings holds per-user notification preferences, one per (user, team) pair
type UserSettings struct {
	NotificationLevel NotificationLevel   `json:"notification_level"`
	Keywords          []string            `json:"keywords"`
	QuietHours        QuietHours          `json:"quiet_hours"`
	Delivery          DeliveryPreferences `json:"delivery_preferences"`
	Filters           Filters             `json:"filters"`
}

// SettingsPatch is a partial settings update. Nil groups are left untouched,
// non-nil groups replace the stored group whole.
type SettingsPatch struct {
	NotificationLevel *NotificationLevel   `json:"notification_level,omitempty"`
	Keywords          *[]string            `json:"keywords,omitempty"`
	QuietHours        *QuietHours          `json:"quiet_hours,omitempty"`
	Delivery          *DeliveryPreferences `json:"delivery_preferences,omitempty"`
	Filters           *Filters             `json:"filters,omitempty"`
}

// DefaultSettings returns the settings synthesized on first access. Quiet
// hours come disabled but pre-filled with a 22:00-08:00 overnight window so
// enabling them later needs no extra configuration.
func DefaultSettings() UserSettings {
	return UserSettings{
		NotificationLevel: LevelImportant,
		Keywords:          []string{},
		QuietHours: QuietHours{
			Enabled:  false,
			Start:    "22:00",
			End:      "08:00",
			Timezone: "UTC",
		},
		Delivery: DeliveryPreferences{
			UrgentViaDM:    true,
			ImportantViaDM: true,
			MentionsViaDM:  false,
			FeedEnabled:    true,
		},
		Filters: Filters{
			SpamDetection:       true,
			DuplicateDetection:  true,
			ImportanceThreshold: 70,
		},
	}
}

// Apply merges a patch into the settings, replacing patched top-level groups
// whole. Updating keywords replaces the entire list, not individual entries.
func (s *UserSettings) Apply(p SettingsPatch) {
	if p.NotificationLevel != nil {
		s.NotificationLevel = *p.NotificationLevel
	}
	if p.Keywords != nil {
		s.Keywords = *p.Keywords
	}
	if p.QuietHours != nil {
		s.QuietHours = *p.QuietHours
	}
	if p.Delivery != nil {
		s.Delivery = *p.Delivery
	}
	if p.Filters != nil {
		s.Filters = *p.Filters
	}
}
