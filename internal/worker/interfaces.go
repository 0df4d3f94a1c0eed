package worker

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"meta_indexer/internal/domain"
	"meta_indexer/internal/search"
)

type RecordStore interface {
	Upsert(ctx context.Context, rec *domain.Record) (int64, error)
	Get(ctx context.Context, endpointID int64, recordIdentifier string) (*domain.Record, error)
	Delete(ctx context.Context, endpointID int64, recordIdentifier string) error
}

type EventStore interface {
	AnnotateError(ctx context.Context, eventID int64, message string) error
	ClearError(ctx context.Context, eventID int64) error
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Model() string
}

type SearchClient interface {
	BulkUpsert(ctx context.Context, indexName string, docs []search.Document) (int, error)
	Delete(ctx context.Context, indexName, docID string) error
}

type Validator interface {
	Validate(doc map[string]any) error
}
