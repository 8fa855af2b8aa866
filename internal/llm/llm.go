// Package llm talks to an OpenAI-compatible endpoint (Ollama, LM Studio,
// vLLM, or OpenAI itself) for text generation and embeddings.
package llm

import "context"

// Generator produces text for a prompt.
// Implementations may call a hosted model, a local runtime, or return
// canned results (for tests).
type Generator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Embedder converts texts into vectors for similarity search.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}
