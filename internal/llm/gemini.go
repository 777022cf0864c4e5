package llm

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// geminiClient implements LLMClient using the Google Gemini API.
type geminiClient struct {
	cfg      LLMConfig
	client   *genai.Client
	observer Observer
}

// NewGeminiClient creates a Gemini-backed LLMClient.
func NewGeminiClient(ctx context.Context, cfg LLMConfig, observer Observer) (LLMClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: no api key for gemini", ErrUnavailable)
	}
	if observer == nil {
		observer = NoopObserver{}
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &geminiClient{cfg: cfg, client: client, observer: observer}, nil
}

func (c *geminiClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	temp, maxTok := taskParams(c.cfg, req)

	// A model handle per call keeps per-request settings off shared state.
	model := c.client.GenerativeModel(c.cfg.Model)
	model.SetTemperature(float32(temp))
	if maxTok > 0 {
		model.SetMaxOutputTokens(int32(maxTok))
	}
	if req.SystemPrompt != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.SystemPrompt)}}
	}

	return generateWithRetry(ctx, c.cfg, c.observer, req.Task, func(ctx context.Context) (string, string, error) {
		resp, err := model.GenerateContent(ctx, genai.Text(req.UserPrompt))
		if err != nil {
			return "", "", fmt.Errorf("generating content: %w", err)
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
			return "", "", fmt.Errorf("%w: no content generated", ErrInvalidOutput)
		}
		text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
		if !ok {
			return "", "", fmt.Errorf("%w: generated content is not text", ErrInvalidOutput)
		}
		return string(text), c.cfg.Model, nil
	})
}

func (c *geminiClient) Available(context.Context) bool {
	return c.client != nil
}

// Close releases the underlying Gemini connection.
func (c *geminiClient) Close() error {
	return c.client.Close()
}
