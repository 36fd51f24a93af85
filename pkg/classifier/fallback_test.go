package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallback_Classify(t *testing.T) {
	fallback := NewFallback()

	tests := []struct {
		name        string
		text        string
		description string
		want        bool
	}{
		{name: "urgent keyword", text: "this is URGENT, please look", want: true},
		{name: "help keyword", text: "can somebody help me with the deploy?", want: true},
		{name: "emergency keyword", text: "emergency in the cluster", want: true},
		{name: "asap embedded in sentence", text: "need this merged asap", want: true},
		{name: "critical mixed case", text: "CrItIcAl path broken", want: true},
		{name: "immediately", text: "respond immediately", want: true},
		{name: "plain chatter", text: "anyone up for lunch?", want: false},
		{name: "empty text", text: "", want: false},
		{name: "all preference in description", text: "quiet message", description: "notify me about ALL messages", want: true},
		{name: "description without all", text: "quiet message", description: "only pings please", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fallback.Classify(tt.text, tt.description))
		})
	}
}

func TestMatchKeyword(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		keywords []string
		want     string
		matched  bool
	}{
		{name: "direct match", text: "the deploy to production failed", keywords: []string{"deploy"}, want: "deploy", matched: true},
		{name: "case insensitive", text: "DEPLOY started", keywords: []string{"deploy"}, want: "deploy", matched: true},
		{name: "first match wins", text: "deploy and release", keywords: []string{"release", "deploy"}, want: "release", matched: true},
		{name: "no match", text: "nothing of interest", keywords: []string{"deploy", "release"}, matched: false},
		{name: "empty keyword skipped", text: "anything", keywords: []string{""}, matched: false},
		{name: "nil keywords", text: "anything", keywords: nil, matched: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MatchKeyword(tt.text, tt.keywords)
			assert.Equal(t, tt.matched, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
