package openai

import (
	"context"
	"errors"
	"net/http"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"buzzy/log"
)

type Client struct {
	client *openai.Client
	model  string
}

// NewClient builds a chat client against any OpenAI-compatible endpoint.
// The HTTP client carries no timeout on purpose; long transcripts can keep
// reasoning models busy for minutes.
func NewClient(baseUrl, apiKey, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseUrl != "" {
		cfg.BaseURL = baseUrl
	}
	cfg.HTTPClient = &http.Client{}

	return &Client{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// ChatCompletion sends one user prompt and returns the model's reply text.
func (c *Client) ChatCompletion(prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(context.Background(), openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		log.GetLogger().Error("ChatCompletion request failed", zap.Error(err))
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("ChatCompletion empty choices in response")
	}
	return resp.Choices[0].Message.Content, nil
}
