package generator

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIGenerator produces completions via the OpenAI chat API.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

// NewOpenAI builds a generator for the given API key. An empty model falls
// back to gpt-3.5-turbo. An empty key yields an unconfigured generator; the
// service layer checks Configured before calling.
func NewOpenAI(apiKey, model string) *OpenAIGenerator {
	g := &OpenAIGenerator{model: model}
	if g.model == "" {
		g.model = openai.GPT3Dot5Turbo
	}
	if apiKey != "" {
		g.client = openai.NewClient(apiKey)
	}
	return g
}

func (g *OpenAIGenerator) Configured() bool { return g.client != nil }

// GenerateText issues a single chat completion. One attempt only: retry
// policy belongs to the caller.
func (g *OpenAIGenerator) GenerateText(ctx context.Context, system, prompt string, temperature float32, maxTokens int) (string, error) {
	if g.client == nil {
		return "", fmt.Errorf("openai client not configured")
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in completion response")
	}
	return resp.Choices[0].Message.Content, nil
}
