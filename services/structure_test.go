package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"techdocs-rag-platform/models"
)

func testMapping() models.StructureMapping {
	return models.StructureMapping{
		ChunkCount: 2,
		Metadata:   models.UploadMetadata{Filename: "manual.pdf"},
		Chunks: []models.StructureChunk{
			{ChunkID: "doc-1_chunk_0", Title: "Intro", Pages: []int{1}, Snippet: "first"},
			{ChunkID: "doc-1_chunk_1", Title: "Setup", Pages: []int{2}, Snippet: "second"},
		},
	}
}

func TestStructureStoreRoundTrip(t *testing.T) {
	blobs := newFakeBlobStore()
	store := NewStructureStore(blobs, nil)
	ctx := context.Background()

	if err := store.Put(ctx, "doc-1", testMapping()); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, ok := store.Get(ctx, "doc-1")
	if !ok {
		t.Fatal("mapping reported absent after Put")
	}
	want := testMapping()
	if !reflect.DeepEqual(*got, want) {
		t.Errorf("round trip mismatch:\ngot:  %+v\nwant: %+v", *got, want)
	}
}

func TestStructureStoreAbsentWhenMissing(t *testing.T) {
	store := NewStructureStore(newFakeBlobStore(), nil)

	if mapping, ok := store.Get(context.Background(), "never-indexed"); ok || mapping != nil {
		t.Errorf("expected absent for unknown document, got (%v, %v)", mapping, ok)
	}
}

func TestStructureStoreAbsentOnReadFailure(t *testing.T) {
	// A store whose reads always fail must look the same as a missing
	// mapping to callers.
	store := NewStructureStore(&failingBlobStore{}, nil)

	if mapping, ok := store.Get(context.Background(), "doc-1"); ok || mapping != nil {
		t.Errorf("expected absent on read failure, got (%v, %v)", mapping, ok)
	}
}

func TestStructureStoreDelete(t *testing.T) {
	blobs := newFakeBlobStore()
	store := NewStructureStore(blobs, nil)
	ctx := context.Background()

	if err := store.Put(ctx, "doc-1", testMapping()); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Delete(ctx, "doc-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := store.Get(ctx, "doc-1"); ok {
		t.Error("mapping still present after Delete")
	}
}

type failingBlobStore struct{}

func (f *failingBlobStore) Download(ctx context.Context, key, localPath string) error {
	return errors.New("unavailable")
}

func (f *failingBlobStore) Delete(ctx context.Context, key string) error {
	return errors.New("unavailable")
}

func (f *failingBlobStore) PutJSON(ctx context.Context, key string, v any) error {
	return errors.New("unavailable")
}

func (f *failingBlobStore) GetJSON(ctx context.Context, key string, v any) error {
	return errors.New("unavailable")
}
