package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

// Client implements Generator and Embedder against a chat-completions and
// embeddings endpoint. With a base URL pointing at a local runtime the same
// client drives Ollama or LM Studio; without one it talks to OpenAI.
type Client struct {
	client         openai.Client
	model          string
	embeddingModel string
}

// Compile-time checks: *Client satisfies both interfaces.
var (
	_ Generator = (*Client)(nil)
	_ Embedder  = (*Client)(nil)
)

// NewClient creates a client for the given endpoint. baseURL may be empty,
// in which case the library default (api.openai.com) is used. Local runtimes
// generally ignore the API key but the SDK requires one to be set.
func NewClient(baseURL, apiKey, model, embeddingModel string) *Client {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &Client{
		client:         openai.NewClient(opts...),
		model:          model,
		embeddingModel: embeddingModel,
	}
}

// Complete sends a single-message prompt and returns the raw text response.
// Temperature is pinned to 0 so grading stays as repeatable as the backing
// model allows.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(0),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("model returned no choices")
	}

	content := completion.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("model returned empty content")
	}

	return content, nil
}

// Embed generates one vector per input text. Inputs above the API batch
// limit are the caller's problem; the RAG pipeline batches accordingly.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("no texts provided")
	}

	params := openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(c.embeddingModel),
	}
	if len(texts) == 1 {
		params.Input = openai.EmbeddingNewParamsInputUnion{
			OfString: openai.String(texts[0]),
		}
	} else {
		params.Input = openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: texts,
		}
	}

	resp, err := c.client.Embeddings.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embeddings: %w", err)
	}

	vectors := make([][]float32, 0, len(resp.Data))
	for _, data := range resp.Data {
		vector := make([]float32, len(data.Embedding))
		for i, v := range data.Embedding {
			vector[i] = float32(v)
		}
		vectors = append(vectors, vector)
	}

	return vectors, nil
}
