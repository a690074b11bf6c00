package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// ErrUpstream marks a language-model failure. Handlers translate it into the
// locale apology instead of surfacing a raw error to the visitor.
var ErrUpstream = errors.New("conversation: upstream completion failed")

var llmTracer = otel.Tracer("salesfunnel.internal.conversation.llm")

// LLMClient generates the assistant reply for a prepared prompt.
type LLMClient interface {
	Complete(ctx context.Context, messages []ChatMessage) (string, error)
}

type chatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIClient is the production LLMClient backed by the OpenAI chat API.
type OpenAIClient struct {
	client  chatClient
	model   string
	timeout time.Duration
}

// NewOpenAIClient wraps an OpenAI SDK client.
func NewOpenAIClient(client chatClient, model string, timeout time.Duration) *OpenAIClient {
	if client == nil {
		panic("conversation: chat client cannot be nil")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OpenAIClient{client: client, model: model, timeout: timeout}
}

// Complete runs a chat completion and returns the trimmed assistant text.
func (c *OpenAIClient) Complete(ctx context.Context, messages []ChatMessage) (string, error) {
	ctx, span := llmTracer.Start(ctx, "conversation.openai")
	defer span.End()

	prompt := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		prompt = append(prompt, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: prompt,
	})
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if len(resp.Choices) == 0 {
		err := fmt.Errorf("%w: no choices returned", ErrUpstream)
		span.RecordError(err)
		return "", err
	}
	if span.IsRecording() {
		span.SetAttributes(attribute.Int("salesfunnel.openai.choices", len(resp.Choices)))
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
