package domain

import (
	"encoding/json"
	"time"
)

// Record is the canonical, search-synced projection of the latest
// successfully transformed harvest event per (endpoint, record_identifier).
type Record struct {
	ID               int64           `db:"id"`
	EndpointID       int64           `db:"endpoint_id"`
	RecordIdentifier string          `db:"record_identifier"`
	DOI              *string         `db:"doi"`
	URL              *string         `db:"url"`
	Title            *string         `db:"title"`
	ResourceType     *string         `db:"resource_type"`
	Normalized       json.RawMessage `db:"normalized"`
	RawMetadata      string          `db:"raw_metadata"`
	Embedding        []float32       `db:"embedding"`
	EmbeddingModel   string          `db:"embedding_model"`
	Synced           bool            `db:"synced"`
	SyncedAt         *time.Time      `db:"synced_at"`
	Datestamp        time.Time       `db:"datestamp"`
	CreatedAt        time.Time       `db:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at"`
}
