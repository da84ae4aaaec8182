package ports

import "context"

// CompletionRequest is a single-shot generative text request.
type CompletionRequest struct {
	System  string
	Message string
	// JSON asks the model to answer with a JSON document.
	JSON bool
	// APIKey overrides the server key for users allowed to bring their own.
	APIKey string
}

// TextCompleter is the generative-AI collaborator.
type TextCompleter interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
