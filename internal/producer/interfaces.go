package producer

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"meta_indexer/internal/domain"
)

type RunStore interface {
	Get(ctx context.Context, id int64) (*domain.HarvestRun, error)
}

type EventStore interface {
	PageByRun(ctx context.Context, runID int64, limit, offset int) ([]domain.EventPage, error)
}

type Publisher interface {
	Publish(ctx context.Context, msg *domain.BatchMessage) error
}
