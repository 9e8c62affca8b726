package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"techdocs-rag-platform/internal/logger"
	"techdocs-rag-platform/models"
)

// structureCacheTTL bounds how long a cached mapping may outlive a reindex
// on another node.
const structureCacheTTL = 10 * time.Minute

// StructureStore persists and retrieves per-document structure mappings.
// The blob store is the source of truth; redis is an optional read-through
// cache (nil disables caching).
type StructureStore struct {
	blobs BlobStore
	cache *redis.Client
}

func NewStructureStore(blobs BlobStore, cache *redis.Client) *StructureStore {
	return &StructureStore{blobs: blobs, cache: cache}
}

func mappingKey(documentID string) string {
	return fmt.Sprintf("structure/%s_mapping.json", documentID)
}

func cacheKey(documentID string) string {
	return "structure:" + documentID
}

// Put overwrites the mapping for a document and invalidates the cache.
func (s *StructureStore) Put(ctx context.Context, documentID string, mapping models.StructureMapping) error {
	if err := s.blobs.PutJSON(ctx, mappingKey(documentID), mapping); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Del(ctx, cacheKey(documentID))
	}
	return nil
}

// Get reads the mapping for a document. Missing key and transient read
// failure alike return absent (false); callers treat absent as "not indexed
// yet", never as a hard error.
func (s *StructureStore) Get(ctx context.Context, documentID string) (*models.StructureMapping, bool) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey(documentID)).Bytes(); err == nil {
			var mapping models.StructureMapping
			if json.Unmarshal(data, &mapping) == nil {
				return &mapping, true
			}
		}
	}

	var mapping models.StructureMapping
	if err := s.blobs.GetJSON(ctx, mappingKey(documentID), &mapping); err != nil {
		logger.Warn("structure mapping unavailable", "document_id", documentID, "error", err)
		return nil, false
	}

	if s.cache != nil {
		if data, err := json.Marshal(mapping); err == nil {
			s.cache.Set(ctx, cacheKey(documentID), data, structureCacheTTL)
		}
	}
	return &mapping, true
}

// Delete removes the persisted mapping; called when the owning document is
// deleted.
func (s *StructureStore) Delete(ctx context.Context, documentID string) error {
	if s.cache != nil {
		s.cache.Del(ctx, cacheKey(documentID))
	}
	return s.blobs.Delete(ctx, mappingKey(documentID))
}
