package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"techdocs-rag-platform/models"
)

// DocumentStore is the lifecycle bookkeeping for document records. The
// indexing core only touches status, chunk count, and error message.
type DocumentStore struct {
	collection *mongo.Collection
}

func NewDocumentStore(db *mongo.Database) *DocumentStore {
	return &DocumentStore{collection: db.Collection("documents")}
}

// Create inserts a new record in the uploading state.
func (s *DocumentStore) Create(ctx context.Context, doc *models.Document) error {
	doc.Status = models.StatusUploading
	doc.UploadedAt = time.Now()
	_, err := s.collection.InsertOne(ctx, doc)
	return err
}

// Get fetches a record by its document id.
func (s *DocumentStore) Get(ctx context.Context, documentID string) (*models.Document, error) {
	var doc models.Document
	err := s.collection.FindOne(ctx, bson.M{"document_id": documentID}).Decode(&doc)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// List returns records that are not deleted, newest first.
func (s *DocumentStore) List(ctx context.Context) ([]models.Document, error) {
	cursor, err := s.collection.Find(ctx, bson.M{"status": bson.M{"$ne": models.StatusDeleted}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []models.Document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// MarkProcessing transitions a record into the processing state.
func (s *DocumentStore) MarkProcessing(ctx context.Context, documentID string) error {
	return s.update(ctx, documentID, bson.M{
		"status":        models.StatusProcessing,
		"error_message": "",
	})
}

// MarkCompleted records a successful indexing run.
func (s *DocumentStore) MarkCompleted(ctx context.Context, documentID string, chunkCount int) error {
	now := time.Now()
	return s.update(ctx, documentID, bson.M{
		"status":       models.StatusCompleted,
		"chunk_count":  chunkCount,
		"processed_at": now,
	})
}

// MarkFailed records a failed indexing run with its human-readable message.
func (s *DocumentStore) MarkFailed(ctx context.Context, documentID, message string) error {
	now := time.Now()
	return s.update(ctx, documentID, bson.M{
		"status":        models.StatusFailed,
		"error_message": message,
		"processed_at":  now,
	})
}

// MarkDeleted tombstones a record; blob and mapping cleanup is the caller's
// responsibility.
func (s *DocumentStore) MarkDeleted(ctx context.Context, documentID string) error {
	return s.update(ctx, documentID, bson.M{"status": models.StatusDeleted})
}

func (s *DocumentStore) update(ctx context.Context, documentID string, fields bson.M) error {
	fields["updated_at"] = time.Now()
	_, err := s.collection.UpdateOne(ctx,
		bson.M{"document_id": documentID},
		bson.M{"$set": fields},
	)
	return err
}
