package services

import (
	"context"
	"sort"

	"techdocs-rag-platform/internal/logger"
	"techdocs-rag-platform/models"
)

// DefaultTopK is the per-document match count when the caller does not
// specify one.
const DefaultTopK = 3

// RetrievalEngine answers similarity queries over indexed chunks. Read-only
// and safe for concurrent use.
type RetrievalEngine struct {
	embedder Embedder
	index    VectorIndex
}

func NewRetrievalEngine(embedder Embedder, index VectorIndex) *RetrievalEngine {
	return &RetrievalEngine{embedder: embedder, index: index}
}

// Search embeds the query once and runs one filtered nearest-neighbor query
// per document in scope, then merges results by score descending with a
// stable tie-break. Failures degrade to an empty result list so a broken
// retrieval never aborts a chat turn.
func (e *RetrievalEngine) Search(ctx context.Context, query string, documentIDs []string, topK int) []models.SearchResult {
	if topK <= 0 {
		topK = DefaultTopK
	}
	if len(documentIDs) == 0 {
		return nil
	}

	vector, err := e.embedder.Embed(ctx, query)
	if err != nil {
		logger.Error("query embedding failed", "error", err)
		return nil
	}

	var results []models.SearchResult
	for _, docID := range documentIDs {
		if err := ctx.Err(); err != nil {
			logger.Warn("search cancelled", "document_id", docID)
			return nil
		}
		matches, err := e.index.Query(ctx, vector, map[string]any{"document_id": docID}, topK)
		if err != nil {
			logger.Error("vector index query failed", "document_id", docID, "error", err)
			return nil
		}
		for _, m := range matches {
			results = append(results, models.SearchResult{
				ChunkID: m.ID,
				Score:   m.Score,
				Title:   m.Metadata.Title,
				Pages:   m.Metadata.PageNumbers,
				Text:    m.Metadata.ChunkText,
			})
		}
	}

	// Per-document result lists arrive pre-sorted; the merged list is
	// re-sorted, keeping original relative order among equal scores.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results
}
