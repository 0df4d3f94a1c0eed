// Package producer slices a closed harvest run's event log into bounded
// batches and enqueues them for the transform workers.
package producer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"meta_indexer/internal/domain"
)

// Service pages a run's events and publishes one queue message per page.
// Re-running for the same run is safe: the worker upsert contract makes
// reprocessing idempotent. Concurrent enqueues of one run are the caller's
// responsibility to avoid.
type Service struct {
	runs      RunStore
	events    EventStore
	publisher Publisher
	batchSize int
	indexName string
	logger    *slog.Logger
}

func NewService(
	runs RunStore,
	events EventStore,
	publisher Publisher,
	batchSize int,
	indexName string,
	logger *slog.Logger,
) *Service {
	return &Service{
		runs:      runs,
		events:    events,
		publisher: publisher,
		batchSize: batchSize,
		indexName: indexName,
		logger:    logger.With("component", "producer"),
	}
}

// EnqueueRun pages the run's events in id order with a fixed page size and
// publishes each page as one batch. Paging stops at the first short page.
// Returns the number of batches enqueued. The run must be closed.
func (s *Service) EnqueueRun(ctx context.Context, runID int64) (int, error) {
	run, err := s.runs.Get(ctx, runID)
	if err != nil {
		return 0, fmt.Errorf("load run: %w", err)
	}
	if run.Status != domain.RunStatusClosed {
		return 0, fmt.Errorf("run %d has status %s: %w", runID, run.Status, domain.ErrRunNotClosed)
	}

	s.logger.Info("enqueuing run", "run_id", runID, "batch_size", s.batchSize)

	batches := 0
	offset := 0
	for {
		page, err := s.events.PageByRun(ctx, runID, s.batchSize, offset)
		if err != nil {
			return batches, fmt.Errorf("page events: %w", err)
		}
		if len(page) == 0 {
			break
		}

		msg := s.buildMessage(page)
		if err := s.publisher.Publish(ctx, msg); err != nil {
			return batches, fmt.Errorf("publish batch at offset %d: %w", offset, err)
		}

		s.logger.Info("enqueued batch",
			"run_id", runID,
			"message_id", msg.MessageID,
			"events", len(page),
			"offset", offset,
		)

		batches++
		offset += s.batchSize
		if len(page) < s.batchSize {
			break
		}
	}

	s.logger.Info("run enqueued", "run_id", runID, "batches", batches)
	return batches, nil
}

func (s *Service) buildMessage(page []domain.EventPage) *domain.BatchMessage {
	events := make([]domain.EventMessage, len(page))
	for i, ev := range page {
		events[i] = domain.EventMessage{
			EventID:            ev.EventID,
			RawMetadata:        ev.RawMetadata,
			RepositoryID:       ev.RepositoryID,
			EndpointID:         ev.EndpointID,
			RecordIdentifier:   ev.RecordIdentifier,
			RepoCode:           ev.RepoCode,
			HarvestURL:         ev.HarvestURL,
			AdditionalMetadata: ev.AdditionalMetadata,
			IsDeleted:          ev.IsDeleted,
			Datestamp:          ev.Datestamp,
		}
	}

	return &domain.BatchMessage{
		MessageID: uuid.NewString(),
		IndexName: s.indexName,
		Events:    events,
		CreatedAt: time.Now().UTC(),
	}
}
