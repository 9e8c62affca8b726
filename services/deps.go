package services

import (
	"context"

	"techdocs-rag-platform/models"
)

// Collaborator interfaces consumed by the pipeline. Concrete instances are
// constructed once at process start and injected; tests substitute fakes.

// BlobStore is the document byte store (S3 in production). Structure
// mappings are persisted through the same store as JSON objects.
type BlobStore interface {
	Download(ctx context.Context, key, localPath string) error
	Delete(ctx context.Context, key string) error
	PutJSON(ctx context.Context, key string, v any) error
	GetJSON(ctx context.Context, key string, v any) error
}

// Embedder maps text to a fixed-length vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// VectorIndex stores vectors with metadata and answers filtered
// nearest-neighbor queries, sorted by score descending.
type VectorIndex interface {
	Upsert(ctx context.Context, entries []models.IndexEntry) error
	Query(ctx context.Context, vector []float32, filter map[string]any, topK int) ([]models.Match, error)
}

// Generator produces an answer for a conversation.
type Generator interface {
	Generate(ctx context.Context, system string, history []models.ChatMessage, prompt string) (string, error)
}
