package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"meta_indexer/internal/domain"
)

// EventStore is the append-only harvest event log. (endpoint, record
// identifier) is deliberately not unique here: every harvest appends a new
// row. Uniqueness holds only within one run, to reject double registration.
type EventStore struct {
	db *sqlx.DB
}

func NewEventStore(db *sqlx.DB) *EventStore {
	return &EventStore{db: db}
}

// Record inserts one event row and returns its id. A duplicate
// (harvest_run_id, endpoint_id, record_identifier) reports domain.ErrConflict.
func (s *EventStore) Record(ctx context.Context, ev *domain.HarvestEvent) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO harvest_events (
			endpoint_id, repository_id, harvest_run_id, record_identifier,
			datestamp, raw_metadata, additional_metadata, is_deleted
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		ev.EndpointID,
		ev.RepositoryID,
		ev.HarvestRunID,
		ev.RecordIdentifier,
		ev.Datestamp,
		ev.RawMetadata,
		ev.AdditionalMetadata,
		ev.IsDeleted,
	).Scan(&id)
	if err != nil {
		return 0, mapError("record event", err)
	}
	return id, nil
}

// AnnotateError stores a transform failure on the event. Idempotent.
func (s *EventStore) AnnotateError(ctx context.Context, eventID int64, message string) error {
	_, err := GetExecutor(ctx, s.db).ExecContext(ctx,
		"UPDATE harvest_events SET error_message = $1 WHERE id = $2",
		message, eventID,
	)
	if err != nil {
		return fmt.Errorf("annotate event %d: %w", eventID, err)
	}
	return nil
}

// ClearError removes the error annotation after successful reprocessing.
func (s *EventStore) ClearError(ctx context.Context, eventID int64) error {
	_, err := GetExecutor(ctx, s.db).ExecContext(ctx,
		"UPDATE harvest_events SET error_message = NULL WHERE id = $1",
		eventID,
	)
	if err != nil {
		return fmt.Errorf("clear event error %d: %w", eventID, err)
	}
	return nil
}

// PageByRun reads one page of a run's events, ordered by id, joined with
// endpoint and repository metadata for the queue message.
func (s *EventStore) PageByRun(ctx context.Context, runID int64, limit, offset int) ([]domain.EventPage, error) {
	var page []domain.EventPage
	err := s.db.SelectContext(ctx, &page, `
		SELECT ev.id AS event_id, ev.record_identifier, ev.raw_metadata,
		       ev.additional_metadata, ev.is_deleted, ev.datestamp,
		       ev.endpoint_id, ev.repository_id,
		       rep.code AS repo_code, e.harvest_url
		FROM harvest_events ev
		JOIN endpoints e ON e.id = ev.endpoint_id
		JOIN repositories rep ON rep.id = ev.repository_id
		WHERE ev.harvest_run_id = $1
		ORDER BY ev.id
		LIMIT $2 OFFSET $3`,
		runID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("page events of run %d: %w", runID, err)
	}
	return page, nil
}
