package summarize

import (
	"context"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/lexdesk/whatsapp-intake/pkg/logging"
)

const (
	defaultModel   = "gpt-4o-mini"
	defaultTimeout = 15 * time.Second

	// fallbackLimit caps the truncation fallback when the model is unavailable.
	fallbackLimit = 150
)

type chatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Service produces one-sentence summaries of inbound client messages.
// Summarization is best-effort: any backend failure degrades to a truncated
// copy of the input so the caller never has to handle an error.
type Service struct {
	client  chatClient
	model   string
	timeout time.Duration
	logger  *logging.Logger
}

// NewService returns a summarizer backed by the given chat client.
func NewService(client chatClient, model string, timeout time.Duration, logger *logging.Logger) *Service {
	if model == "" {
		model = defaultModel
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		client:  client,
		model:   model,
		timeout: timeout,
		logger:  logger,
	}
}

// Summarize returns a one-sentence summary of text, or the first 150
// characters when the summarization backend fails.
func (s *Service) Summarize(ctx context.Context, text string) string {
	if s.client == nil {
		return truncate(text)
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: "Summarize this client's message in 1 sentence:\n\n" + text,
			},
		},
	})
	if err != nil {
		s.logger.Warn("summarization failed, falling back to truncation", "error", err)
		return truncate(text)
	}
	if len(resp.Choices) == 0 {
		s.logger.Warn("summarization returned no choices, falling back to truncation")
		return truncate(text)
	}
	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	if summary == "" {
		return truncate(text)
	}
	return summary
}

func truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= fallbackLimit {
		return text
	}
	return string(runes[:fallbackLimit])
}
