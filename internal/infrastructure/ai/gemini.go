package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/weddingplan/planner-api/internal/core/ports"
)

const defaultModel = "gemini-2.5-flash"

// ErrNoAPIKey is returned when neither the server nor the caller provides a key.
var ErrNoAPIKey = errors.New("gemini api key is required")

// Config selects the Gemini model and the server-side API key.
type Config struct {
	APIKey string
	Model  string
}

// Gemini implements ports.TextCompleter with the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

var _ ports.TextCompleter = (*Gemini)(nil)

// NewGemini creates a completer. An empty server key is allowed; such a
// completer only serves requests that carry their own key.
func NewGemini(ctx context.Context, cfg Config) (*Gemini, error) {
	g := &Gemini{model: cfg.Model}
	if g.model == "" {
		g.model = defaultModel
	}
	if cfg.APIKey == "" {
		return g, nil
	}
	client, err := newClient(ctx, cfg.APIKey)
	if err != nil {
		return nil, err
	}
	g.client = client
	return g, nil
}

// Complete sends a single-turn prompt and returns the text of the answer.
func (g *Gemini) Complete(ctx context.Context, req ports.CompletionRequest) (string, error) {
	client := g.client
	if req.APIKey != "" {
		c, err := newClient(ctx, req.APIKey)
		if err != nil {
			return "", err
		}
		client = c
	}
	if client == nil {
		return "", ErrNoAPIKey
	}

	resp, err := client.Models.GenerateContent(ctx, g.model, genai.Text(req.Message), generateConfig(req))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("gemini generate: empty response")
	}
	return text, nil
}

func generateConfig(req ports.CompletionRequest) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}
	if req.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.JSON {
		cfg.ResponseMIMEType = "application/json"
	}
	return cfg
}

func newClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return client, nil
}
