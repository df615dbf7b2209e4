package generator

import (
	"context"
	"cybot/internal/core/domain"
	"errors"
	"fmt"

	"github.com/revrost/go-openrouter"
)

// OpenRouterClient is the slice of the openrouter client the generator needs.
type OpenRouterClient interface {
	CreateChatCompletion(ctx context.Context,
		ccr openrouter.ChatCompletionRequest) (openrouter.ChatCompletionResponse, error)
}

type OpenRouterGenerator struct {
	client       OpenRouterClient
	model        string
	systemPrompt string
}

func NewOpenRouterGenerator(apiKey, model, systemPrompt string) *OpenRouterGenerator {
	return &OpenRouterGenerator{
		model:        model,
		systemPrompt: systemPrompt,
		client: openrouter.NewClient(
			apiKey,
			openrouter.WithXTitle("cybot"),
		),
	}
}

func (c *OpenRouterGenerator) GenerateFromPrompt(ctx context.Context, prompts []domain.Prompt) (string, error) {
	messages := make([]openrouter.ChatCompletionMessage, len(prompts)+1)

	messages[0] = openrouter.ChatCompletionMessage{
		Role: openrouter.ChatMessageRoleSystem,
		Content: openrouter.Content{
			Text: c.systemPrompt,
		},
	}

	for i, prompt := range prompts {
		role := openrouter.ChatMessageRoleUser
		if prompt.Author == domain.System {
			role = openrouter.ChatMessageRoleAssistant
		}

		messages[i+1] = openrouter.ChatCompletionMessage{
			Role: role,
			Content: openrouter.Content{
				Text: prompt.Prompt,
			},
		}
	}

	ccr := openrouter.ChatCompletionRequest{
		Messages: messages,
		Model:    c.model,
	}

	resp, err := c.client.CreateChatCompletion(ctx, ccr)
	if err != nil {
		return "", fmt.Errorf("openrouter API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no choices in openrouter response")
	}

	return resp.Choices[0].Message.Content.Text, nil
}
