package services

import (
	"context"
	"errors"
	"testing"

	"techdocs-rag-platform/models"
)

func TestSearchMergesSortedDescending(t *testing.T) {
	idx := &fakeIndex{matches: map[string][]models.Match{
		"doc-a": {
			{ID: "doc-a_chunk_0", Score: 0.9, Metadata: models.ChunkMetadata{ChunkText: "a0"}},
			{ID: "doc-a_chunk_1", Score: 0.4, Metadata: models.ChunkMetadata{ChunkText: "a1"}},
		},
		"doc-b": {
			{ID: "doc-b_chunk_0", Score: 0.7, Metadata: models.ChunkMetadata{ChunkText: "b0"}},
			{ID: "doc-b_chunk_1", Score: 0.2, Metadata: models.ChunkMetadata{ChunkText: "b1"}},
		},
	}}
	e := NewRetrievalEngine(&fakeEmbedder{}, idx)

	results := e.Search(context.Background(), "query", []string{"doc-a", "doc-b"}, 3)

	if len(results) != 4 {
		t.Fatalf("expected 4 merged results, got %d", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Fatalf("scores not non-increasing at %d: %v", i, results)
		}
	}
	wantOrder := []string{"doc-a_chunk_0", "doc-b_chunk_0", "doc-a_chunk_1", "doc-b_chunk_1"}
	for i, want := range wantOrder {
		if results[i].ChunkID != want {
			t.Errorf("position %d: got %q, want %q", i, results[i].ChunkID, want)
		}
	}
}

func TestSearchStableTieBreak(t *testing.T) {
	// Equal scores keep the document-order in which they were queried.
	idx := &fakeIndex{matches: map[string][]models.Match{
		"doc-a": {{ID: "doc-a_chunk_0", Score: 0.5}},
		"doc-b": {{ID: "doc-b_chunk_0", Score: 0.5}},
	}}
	e := NewRetrievalEngine(&fakeEmbedder{}, idx)

	results := e.Search(context.Background(), "query", []string{"doc-a", "doc-b"}, 3)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].ChunkID != "doc-a_chunk_0" || results[1].ChunkID != "doc-b_chunk_0" {
		t.Errorf("tie not broken by original order: %q, %q", results[0].ChunkID, results[1].ChunkID)
	}
}

func TestSearchRespectsTopKPerDocument(t *testing.T) {
	idx := &fakeIndex{matches: map[string][]models.Match{
		"doc-a": {
			{ID: "doc-a_chunk_0", Score: 0.9},
			{ID: "doc-a_chunk_1", Score: 0.8},
			{ID: "doc-a_chunk_2", Score: 0.7},
			{ID: "doc-a_chunk_3", Score: 0.6},
		},
	}}
	e := NewRetrievalEngine(&fakeEmbedder{}, idx)

	results := e.Search(context.Background(), "query", []string{"doc-a"}, 2)
	if len(results) != 2 {
		t.Fatalf("expected topK=2 results, got %d", len(results))
	}
}

func TestSearchDefaultTopK(t *testing.T) {
	idx := &fakeIndex{matches: map[string][]models.Match{
		"doc-a": {
			{ID: "doc-a_chunk_0", Score: 0.9},
			{ID: "doc-a_chunk_1", Score: 0.8},
			{ID: "doc-a_chunk_2", Score: 0.7},
			{ID: "doc-a_chunk_3", Score: 0.6},
		},
	}}
	e := NewRetrievalEngine(&fakeEmbedder{}, idx)

	results := e.Search(context.Background(), "query", []string{"doc-a"}, 0)
	if len(results) != DefaultTopK {
		t.Fatalf("expected %d results with topK unset, got %d", DefaultTopK, len(results))
	}
}

func TestSearchNoDocumentsInScope(t *testing.T) {
	emb := &fakeEmbedder{}
	e := NewRetrievalEngine(emb, &fakeIndex{})

	if results := e.Search(context.Background(), "query", nil, 3); results != nil {
		t.Errorf("expected nil results with no documents, got %v", results)
	}
	if emb.calls != 0 {
		t.Errorf("query embedded with no documents in scope")
	}
}

func TestSearchDegradesToEmptyOnEmbedFailure(t *testing.T) {
	e := NewRetrievalEngine(&fakeEmbedder{failAt: 1}, &fakeIndex{})
	if results := e.Search(context.Background(), "query", []string{"doc-a"}, 3); results != nil {
		t.Errorf("expected empty result on embed failure, got %v", results)
	}
}

func TestSearchDegradesToEmptyOnQueryFailure(t *testing.T) {
	idx := &fakeIndex{queryErr: errors.New("index unavailable")}
	e := NewRetrievalEngine(&fakeEmbedder{}, idx)
	if results := e.Search(context.Background(), "query", []string{"doc-a"}, 3); results != nil {
		t.Errorf("expected empty result on query failure, got %v", results)
	}
}
