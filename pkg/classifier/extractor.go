package classifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/umputun/chatsift/pkg/config"
)

// Extractor normalizes free-text classifier decisions to yes/no using a
// small LLM call
type Extractor struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

const extractorSystemPrompt = `You extract the final notify/don't-notify decision from a classifier's free-text output.
Respond with a single letter: "y" if the text concludes the user should be notified, "n" if not.
Respond with nothing else.`

// NewExtractor creates a yes/no decision extractor backed by an
// OpenAI-compatible endpoint
func NewExtractor(cfg config.LLMConfig) *Extractor {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}

	return &Extractor{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       cfg.Model,
		temperature: float32(cfg.Temperature),
		maxTokens:   cfg.MaxTokens,
	}
}

// ExtractYesNo asks the LLM to reduce decision text to a single y/n letter.
// Returns an error when the response itself is not a clean y or n, so the
// caller can bound its cleanup loop.
func (e *Extractor) ExtractYesNo(ctx context.Context, text string) (bool, error) {
	req := openai.ChatCompletionRequest{
		Model:       e.model,
		Temperature: e.temperature,
		MaxTokens:   e.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: extractorSystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: text,
			},
		},
	}

	resp, err := e.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return false, fmt.Errorf("extract decision: %w", err)
	}

	if len(resp.Choices) == 0 {
		return false, fmt.Errorf("no response from llm")
	}

	answer := strings.ToLower(strings.TrimSpace(resp.Choices[0].Message.Content))
	answer = strings.Trim(answer, `"'.`)
	switch answer {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return false, fmt.Errorf("non-canonical extractor answer %q", answer)
}
