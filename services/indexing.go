package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"techdocs-rag-platform/internal/convert"
	"techdocs-rag-platform/internal/logger"
	"techdocs-rag-platform/models"
)

// Result statuses returned by the pipeline.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// IndexResult is the structured outcome of one pipeline run. The pipeline is
// the error boundary for ingestion: nothing escapes it as an error value.
type IndexResult struct {
	Status     string `json:"status"`
	ChunkCount int    `json:"indexed_chunks,omitempty"`
	Message    string `json:"error,omitempty"`
}

// upsertBatchSize bounds each vector index write to the backend's payload
// limit.
const defaultUpsertBatch = 100

// structureSnippetLen bounds the per-chunk preview stored in the structure
// mapping.
const structureSnippetLen = 300

// IndexingPipeline orchestrates conversion, chunking, embedding, vector
// upsert, and structure-mapping persistence for one document.
type IndexingPipeline struct {
	blobs       BlobStore
	converter   convert.Converter
	chunker     *Chunker
	embedder    Embedder
	index       VectorIndex
	structures  *StructureStore
	upsertBatch int
}

func NewIndexingPipeline(blobs BlobStore, converter convert.Converter, chunker *Chunker, embedder Embedder, index VectorIndex, structures *StructureStore, upsertBatch int) *IndexingPipeline {
	if upsertBatch <= 0 {
		upsertBatch = defaultUpsertBatch
	}
	return &IndexingPipeline{
		blobs:       blobs,
		converter:   converter,
		chunker:     chunker,
		embedder:    embedder,
		index:       index,
		structures:  structures,
		upsertBatch: upsertBatch,
	}
}

// Index processes one document end to end. Every internal failure is caught,
// logged, and converted into a structured error result. Safe to re-run:
// chunk ids are deterministic, so upserts overwrite rather than duplicate.
func (p *IndexingPipeline) Index(ctx context.Context, documentID, sourceKey string, meta models.UploadMetadata) IndexResult {
	tracer := otel.Tracer("indexing-pipeline")
	ctx, span := tracer.Start(ctx, "pipeline.index")
	defer span.End()
	span.SetAttributes(
		attribute.String("document.id", documentID),
		attribute.String("document.source_key", sourceKey),
	)

	count, err := p.run(ctx, documentID, sourceKey, meta)
	if err != nil {
		span.SetAttributes(attribute.Bool("pipeline.error", true))
		logger.Error("document indexing failed",
			"document_id", documentID, "source_key", sourceKey, "error", err)
		return IndexResult{Status: ResultError, Message: err.Error()}
	}

	span.SetAttributes(attribute.Int("pipeline.chunks", count))
	logger.Info("document indexed", "document_id", documentID, "chunks", count)
	return IndexResult{Status: ResultSuccess, ChunkCount: count}
}

func (p *IndexingPipeline) run(ctx context.Context, documentID, sourceKey string, meta models.UploadMetadata) (int, error) {
	// Scoped working copy of the source; removed on every exit path.
	tmpDir, err := os.MkdirTemp("", "index-"+documentID+"-*")
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDownload, err)
	}
	defer os.RemoveAll(tmpDir)

	localPath := filepath.Join(tmpDir, "source.pdf")
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := p.blobs.Download(ctx, sourceKey, localPath); err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrDownload, sourceKey, err)
	}

	tree, err := p.converter.Convert(ctx, localPath)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrConversion, err)
	}

	// Chunking must reject empty documents before any embedding call.
	chunks, err := p.chunker.Chunk(tree)
	if err != nil {
		return 0, err
	}

	entries := make([]models.IndexEntry, 0, len(chunks))
	for i := range chunks {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		chunk := &chunks[i]
		chunk.DocumentID = documentID
		chunk.ChunkID = models.ChunkID(documentID, chunk.Index)

		vector, err := p.embedder.Embed(ctx, chunk.Text)
		if err != nil {
			return 0, fmt.Errorf("%w: chunk %d: %v", ErrEmbedding, chunk.Index, err)
		}

		entries = append(entries, models.IndexEntry{
			ID:     chunk.ChunkID,
			Vector: vector,
			Metadata: models.ChunkMetadata{
				DocumentID:  documentID,
				SourceKey:   sourceKey,
				Title:       chunk.Title,
				PageNumbers: chunk.Pages,
				ChunkText:   chunk.Text,
				Filename:    meta.Filename,
				Category:    meta.Category,
				UploadedBy:  meta.UploadedBy,
			},
		})
	}

	for start := 0; start < len(entries); start += p.upsertBatch {
		end := start + p.upsertBatch
		if end > len(entries) {
			end = len(entries)
		}
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if err := p.index.Upsert(ctx, entries[start:end]); err != nil {
			return 0, fmt.Errorf("%w: batch %d-%d: %v", ErrIndexWrite, start, end, err)
		}
	}

	mapping := buildStructureMapping(chunks, meta)
	previous, existed := p.structures.Get(ctx, documentID)
	if err := p.structures.Put(ctx, documentID, mapping); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMappingPersist, err)
	}

	// A shrinking reindex leaves stale high-index vectors behind; they are
	// not purged automatically, so surface the condition for operators.
	if existed && previous.ChunkCount > len(chunks) {
		logger.Warn("reindex produced fewer chunks; stale vectors remain",
			"document_id", documentID,
			"previous_chunks", previous.ChunkCount,
			"new_chunks", len(chunks))
	}

	return len(chunks), nil
}

func buildStructureMapping(chunks []models.Chunk, meta models.UploadMetadata) models.StructureMapping {
	mapping := models.StructureMapping{
		ChunkCount: len(chunks),
		Metadata:   meta,
		Chunks:     make([]models.StructureChunk, len(chunks)),
	}
	for i, chunk := range chunks {
		mapping.Chunks[i] = models.StructureChunk{
			ChunkID: chunk.ChunkID,
			Title:   chunk.Title,
			Pages:   chunk.Pages,
			Snippet: chunkSnippet(chunk.Text, structureSnippetLen),
		}
	}
	return mapping
}
