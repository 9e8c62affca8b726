package models

import "fmt"

// DefaultTitle is used when no heading precedes a chunk's source elements.
const DefaultTitle = "Untitled"

// Chunk is a bounded unit of document text with provenance. It is the atomic
// unit of embedding and retrieval.
type Chunk struct {
	ChunkID    string `json:"chunk_id"`
	DocumentID string `json:"document_id"`
	Index      int    `json:"index"`
	Text       string `json:"text"`
	TokenCount int    `json:"token_count"`
	Title      string `json:"title"`
	Pages      []int  `json:"pages,omitempty"`
}

// ChunkID derives the deterministic identifier for a chunk. Reindexing the
// same document yields the same ids, so vector upserts overwrite in place.
func ChunkID(documentID string, index int) string {
	return fmt.Sprintf("%s_chunk_%d", documentID, index)
}

// ChunkMetadata is the metadata blob persisted alongside each vector at the
// index. Chunk provenance merged with the caller-supplied upload metadata.
type ChunkMetadata struct {
	DocumentID  string `json:"document_id"`
	SourceKey   string `json:"source_key,omitempty"`
	Title       string `json:"title,omitempty"`
	PageNumbers []int  `json:"page_numbers,omitempty"`
	ChunkText   string `json:"chunk_text"`
	Filename    string `json:"filename,omitempty"`
	Category    string `json:"category,omitempty"`
	UploadedBy  string `json:"uploaded_by,omitempty"`
}

// IndexEntry pairs a chunk id with its embedding and metadata for upsert.
type IndexEntry struct {
	ID       string        `json:"id"`
	Vector   []float32     `json:"values"`
	Metadata ChunkMetadata `json:"metadata"`
}

// Match is a raw nearest-neighbor hit returned by the vector index.
type Match struct {
	ID       string        `json:"id"`
	Score    float64       `json:"score"`
	Metadata ChunkMetadata `json:"metadata"`
}

// SearchResult is a ranked retrieval hit with the fields the answering
// pipeline needs.
type SearchResult struct {
	ChunkID string  `json:"chunk_id"`
	Score   float64 `json:"score"`
	Title   string  `json:"title"`
	Pages   []int   `json:"pages,omitempty"`
	Text    string  `json:"text"`
}

// Citation links a generated answer back to a chunk that supports it.
type Citation struct {
	Section     string `json:"section"`
	PageNumbers []int  `json:"page_numbers,omitempty"`
	Text        string `json:"text"`
}

// StructureChunk is one entry in a document's persisted structure mapping.
type StructureChunk struct {
	ChunkID string `json:"chunk_id"`
	Title   string `json:"title,omitempty"`
	Pages   []int  `json:"pages,omitempty"`
	Snippet string `json:"snippet"`
}

// StructureMapping summarizes a document's chunk decomposition. Written once
// per successful indexing run, overwritten on reindex.
type StructureMapping struct {
	ChunkCount int              `json:"num_chunks"`
	Metadata   UploadMetadata   `json:"metadata"`
	Chunks     []StructureChunk `json:"chunks"`
}

// ChatMessage is one turn of prior conversation history.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}
