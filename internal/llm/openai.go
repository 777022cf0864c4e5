package llm

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// openAIClient implements LLMClient against any OpenAI-compatible chat
// completion API. MiniMax is reached through the same client with its own
// base URL.
type openAIClient struct {
	cfg      LLMConfig
	client   *openai.Client
	observer Observer
}

// NewOpenAIClient creates an LLMClient for OpenAI-compatible endpoints.
func NewOpenAIClient(cfg LLMConfig, observer Observer) LLMClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	oaCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		oaCfg.BaseURL = cfg.Endpoint
	}
	return &openAIClient{
		cfg:      cfg,
		client:   openai.NewClientWithConfig(oaCfg),
		observer: observer,
	}
}

func (c *openAIClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	if c.cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: no api key for %s", ErrUnavailable, c.cfg.Provider)
	}

	temp, maxTok := taskParams(c.cfg, req)
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: req.UserPrompt})

	chatReq := openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Messages:    messages,
		Temperature: float32(temp),
		MaxTokens:   maxTok,
	}

	return generateWithRetry(ctx, c.cfg, c.observer, req.Task, func(ctx context.Context) (string, string, error) {
		resp, err := c.client.CreateChatCompletion(ctx, chatReq)
		if err != nil {
			var apiErr *openai.APIError
			if errors.As(err, &apiErr) {
				return "", "", fmt.Errorf("%s returned status %d: %s", c.cfg.Provider, apiErr.HTTPStatusCode, apiErr.Message)
			}
			return "", "", err
		}
		if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
			return "", "", fmt.Errorf("%w: empty completion", ErrInvalidOutput)
		}
		return resp.Choices[0].Message.Content, resp.Model, nil
	})
}

// Available reports whether credentials are configured. Remote APIs are not
// probed.
func (c *openAIClient) Available(context.Context) bool {
	return c.cfg.APIKey != ""
}
