package models

import "testing"

func TestChunkID(t *testing.T) {
	if got := ChunkID("abc-123", 0); got != "abc-123_chunk_0" {
		t.Errorf("ChunkID = %q", got)
	}
	if got := ChunkID("abc-123", 42); got != "abc-123_chunk_42" {
		t.Errorf("ChunkID = %q", got)
	}
	// Same inputs must always produce the same id; reindexing relies on
	// upserts overwriting in place.
	if ChunkID("d", 7) != ChunkID("d", 7) {
		t.Error("ChunkID not deterministic")
	}
}
