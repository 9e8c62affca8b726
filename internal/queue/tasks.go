package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"techdocs-rag-platform/internal/logger"
	"techdocs-rag-platform/models"
	"techdocs-rag-platform/services"
)

const TaskIndexDocument = "document:index"

type IndexDocumentPayload struct {
	DocumentID string                `json:"document_id"`
	SourceKey  string                `json:"source_key"`
	Metadata   models.UploadMetadata `json:"metadata"`
}

// NewIndexDocumentTask creates the background task for one indexing run.
// The pipeline is idempotent, so retries after transient failures are safe.
func NewIndexDocumentTask(documentID, sourceKey string, meta models.UploadMetadata) (*asynq.Task, error) {
	payload, err := json.Marshal(IndexDocumentPayload{
		DocumentID: documentID,
		SourceKey:  sourceKey,
		Metadata:   meta,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskIndexDocument,
		payload,
		asynq.MaxRetry(3),
		asynq.Timeout(10*time.Minute),
		asynq.Queue("critical"),
	), nil
}

// TaskProcessor handles queued indexing runs.
type TaskProcessor struct {
	pipeline  *services.IndexingPipeline
	documents *services.DocumentStore
}

func NewTaskProcessor(pipeline *services.IndexingPipeline, documents *services.DocumentStore) *TaskProcessor {
	return &TaskProcessor{pipeline: pipeline, documents: documents}
}

// IndexDocument runs the pipeline for one document and maps its result onto
// the document record's lifecycle status.
func (p *TaskProcessor) IndexDocument(ctx context.Context, t *asynq.Task) error {
	var payload IndexDocumentPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}

	logger.Info("indexing document", "document_id", payload.DocumentID, "source_key", payload.SourceKey)

	if err := p.documents.MarkProcessing(ctx, payload.DocumentID); err != nil {
		return err
	}

	result := p.pipeline.Index(ctx, payload.DocumentID, payload.SourceKey, payload.Metadata)
	if result.Status != services.ResultSuccess {
		if err := p.documents.MarkFailed(ctx, payload.DocumentID, result.Message); err != nil {
			logger.Error("failed to record failure", "document_id", payload.DocumentID, "error", err)
		}
		// Returning the failure lets asynq retry; a later success overwrites
		// the failed status.
		return fmt.Errorf("indexing %s: %s", payload.DocumentID, result.Message)
	}

	return p.documents.MarkCompleted(ctx, payload.DocumentID, result.ChunkCount)
}
