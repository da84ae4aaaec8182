package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/weddingplan/planner-api/internal/core/ports"
)

func TestGemini_WithoutKey(t *testing.T) {
	g, err := NewGemini(context.Background(), Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.model != defaultModel {
		t.Fatalf("expected default model, got %s", g.model)
	}
	if _, err := g.Complete(context.Background(), ports.CompletionRequest{Message: "hi"}); !errors.Is(err, ErrNoAPIKey) {
		t.Fatalf("expected ErrNoAPIKey, got %v", err)
	}
}

func TestGenerateConfig(t *testing.T) {
	cfg := generateConfig(ports.CompletionRequest{System: "be brief", JSON: true})
	if cfg.ResponseMIMEType != "application/json" {
		t.Fatalf("expected JSON mime type, got %q", cfg.ResponseMIMEType)
	}
	if cfg.SystemInstruction == nil || len(cfg.SystemInstruction.Parts) != 1 {
		t.Fatalf("system instruction not set")
	}

	plain := generateConfig(ports.CompletionRequest{})
	if plain.SystemInstruction != nil || plain.ResponseMIMEType != "" {
		t.Fatalf("unexpected config: %+v", plain)
	}
}
