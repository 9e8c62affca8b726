package ai

import (
	"context"
	"fmt"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiEmbedder maps text to a fixed-length vector using Google Generative
// AI (text-embedding-004 by default). One client is constructed at process
// start and shared.
type GeminiEmbedder struct {
	client *genai.Client
	model  string
}

func NewGeminiEmbedder(ctx context.Context, apiKey, model string) (*GeminiEmbedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("missing GEMINI_API_KEY for embeddings")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	if model == "" {
		model = "text-embedding-004"
	}
	return &GeminiEmbedder{client: client, model: model}, nil
}

// Embed returns the embedding vector for text. Transient provider failures
// are retried up to 3 times with exponential backoff; the context is
// observed between attempts.
func (e *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	operation := func() ([]float32, error) {
		model := e.client.EmbeddingModel(e.model)
		resp, err := model.EmbedContent(ctx, genai.Text(text))
		if err != nil {
			return nil, err
		}
		if resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
			return nil, backoff.Permanent(fmt.Errorf("no embedding returned"))
		}
		return resp.Embedding.Values, nil
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(3),
	)
}

func (e *GeminiEmbedder) Close() error {
	return e.client.Close()
}
