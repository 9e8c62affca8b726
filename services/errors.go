package services

import "errors"

// Error kinds for the ingestion pipeline. Stages wrap these with %w so the
// pipeline boundary can classify what failed while the message keeps the
// stage detail.
var (
	ErrDownload       = errors.New("download failed")
	ErrConversion     = errors.New("conversion failed")
	ErrEmptyDocument  = errors.New("no chunks generated from document")
	ErrEmbedding      = errors.New("embedding failed")
	ErrIndexWrite     = errors.New("vector index write failed")
	ErrIndexQuery     = errors.New("vector index query failed")
	ErrMappingPersist = errors.New("structure mapping persist failed")
)
