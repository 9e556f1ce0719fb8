package summarize

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/lexdesk/whatsapp-intake/pkg/logging"
)

type stubChatClient struct {
	response openai.ChatCompletionResponse
	err      error
	lastReq  openai.ChatCompletionRequest
}

func (s *stubChatClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	s.lastReq = req
	if s.err != nil {
		return openai.ChatCompletionResponse{}, s.err
	}
	return s.response, nil
}

func TestSummarizeSuccess(t *testing.T) {
	stub := &stubChatClient{
		response: openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: "Client wants a deed drafted."}},
			},
		},
	}
	svc := NewService(stub, "", 0, logging.Default())

	got := svc.Summarize(context.Background(), "I need a sale deed for my flat, please draft it")
	if got != "Client wants a deed drafted." {
		t.Fatalf("unexpected summary: %q", got)
	}
	if stub.lastReq.Model != defaultModel {
		t.Fatalf("expected default model, got %s", stub.lastReq.Model)
	}
	if len(stub.lastReq.Messages) != 1 || !strings.Contains(stub.lastReq.Messages[0].Content, "1 sentence") {
		t.Fatalf("unexpected prompt: %#v", stub.lastReq.Messages)
	}
}

func TestSummarizeFallbackOnError(t *testing.T) {
	stub := &stubChatClient{err: errors.New("quota exceeded")}
	svc := NewService(stub, "gpt-4o-mini", time.Second, logging.Default())

	long := strings.Repeat("legal advice needed ", 20)
	got := svc.Summarize(context.Background(), long)
	if len([]rune(got)) != fallbackLimit {
		t.Fatalf("expected %d-char fallback, got %d", fallbackLimit, len([]rune(got)))
	}
	if !strings.HasPrefix(long, got) {
		t.Fatalf("fallback should be a prefix of the input")
	}
}

func TestSummarizeFallbackOnEmptyResponse(t *testing.T) {
	stub := &stubChatClient{response: openai.ChatCompletionResponse{}}
	svc := NewService(stub, "", 0, logging.Default())

	got := svc.Summarize(context.Background(), "short message")
	if got != "short message" {
		t.Fatalf("expected input passed through, got %q", got)
	}
}

func TestSummarizeShortInputNotTruncated(t *testing.T) {
	stub := &stubChatClient{err: errors.New("backend down")}
	svc := NewService(stub, "", 0, logging.Default())

	got := svc.Summarize(context.Background(), "call me")
	if got != "call me" {
		t.Fatalf("expected short input unchanged, got %q", got)
	}
}

func TestSummarizeNilClient(t *testing.T) {
	svc := NewService(nil, "", 0, nil)
	got := svc.Summarize(context.Background(), "hello")
	if got != "hello" {
		t.Fatalf("expected truncation path with nil client, got %q", got)
	}
}
