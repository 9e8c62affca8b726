package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document lifecycle status constants
const (
	StatusUploading  = "uploading"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
	StatusDeleted    = "deleted"
)

// Document is the persisted record for an uploaded technical document.
// The indexing core only touches the processing-relevant fields; everything
// else belongs to the surrounding application.
type Document struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DocumentID   string             `bson:"document_id" json:"document_id"`
	Filename     string             `bson:"filename" json:"filename"`
	SourceKey    string             `bson:"source_key" json:"source_key"`
	Status       string             `bson:"status" json:"status"`
	ChunkCount   int                `bson:"chunk_count" json:"chunk_count"`
	ErrorMessage string             `bson:"error_message,omitempty" json:"error_message,omitempty"`
	Metadata     UploadMetadata     `bson:"metadata" json:"metadata"`
	UploadedAt   time.Time          `bson:"uploaded_at" json:"uploaded_at"`
	ProcessedAt  *time.Time         `bson:"processed_at,omitempty" json:"processed_at,omitempty"`
}

// UploadMetadata is the caller-supplied metadata attached to every chunk of a
// document. Fixed named fields instead of a free-form map so a typo cannot
// silently produce an unfilterable key.
type UploadMetadata struct {
	Filename   string `bson:"filename,omitempty" json:"filename,omitempty"`
	Category   string `bson:"category,omitempty" json:"category,omitempty"`
	UploadedBy string `bson:"uploaded_by,omitempty" json:"uploaded_by,omitempty"`
}

// UploadResponse is returned after a successful upload request.
type UploadResponse struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Status   string `json:"status"`
	TaskID   string `json:"task_id,omitempty"`
	Message  string `json:"message"`
}
