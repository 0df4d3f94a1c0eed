package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"meta_indexer/internal/domain"
)

// RecordStore holds the current-record projection: one row per (endpoint,
// record_identifier), kept consistent with the search index by the worker.
type RecordStore struct {
	db *sqlx.DB
}

func NewRecordStore(db *sqlx.DB) *RecordStore {
	return &RecordStore{db: db}
}

// Upsert inserts the record or, on conflict over (endpoint_id,
// record_identifier), replaces all mutable fields with the latest
// processing's output. Reprocessing the same event is therefore idempotent.
func (s *RecordStore) Upsert(ctx context.Context, rec *domain.Record) (int64, error) {
	query := `
		INSERT INTO records (
			endpoint_id, record_identifier, doi, url, title, resource_type,
			normalized, raw_metadata, embedding, embedding_model,
			synced, synced_at, datestamp
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)
		ON CONFLICT (endpoint_id, record_identifier) DO UPDATE SET
			doi = EXCLUDED.doi,
			url = EXCLUDED.url,
			title = EXCLUDED.title,
			resource_type = EXCLUDED.resource_type,
			normalized = EXCLUDED.normalized,
			raw_metadata = EXCLUDED.raw_metadata,
			embedding = EXCLUDED.embedding,
			embedding_model = EXCLUDED.embedding_model,
			synced = EXCLUDED.synced,
			synced_at = EXCLUDED.synced_at,
			datestamp = EXCLUDED.datestamp,
			updated_at = now()
		RETURNING id`

	var id int64
	err := GetExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		rec.EndpointID,
		rec.RecordIdentifier,
		rec.DOI,
		rec.URL,
		rec.Title,
		rec.ResourceType,
		rec.Normalized,
		rec.RawMetadata,
		pq.Array(rec.Embedding),
		rec.EmbeddingModel,
		rec.Synced,
		rec.SyncedAt,
		rec.Datestamp,
	).Scan(&id)
	if err != nil {
		return 0, mapError("upsert record", err)
	}
	return id, nil
}

// Get returns the record for (endpoint, record identifier), or nil when no
// projection exists.
func (s *RecordStore) Get(ctx context.Context, endpointID int64, recordIdentifier string) (*domain.Record, error) {
	query := `
		SELECT id, endpoint_id, record_identifier, doi, url, title,
		       resource_type, normalized, raw_metadata, embedding,
		       embedding_model, synced, synced_at, datestamp,
		       created_at, updated_at
		FROM records
		WHERE endpoint_id = $1 AND record_identifier = $2`

	var rec domain.Record
	var embedding pq.Float32Array
	row := GetExecutor(ctx, s.db).QueryRowxContext(ctx, query, endpointID, recordIdentifier)
	err := row.Scan(
		&rec.ID, &rec.EndpointID, &rec.RecordIdentifier, &rec.DOI, &rec.URL,
		&rec.Title, &rec.ResourceType, &rec.Normalized, &rec.RawMetadata,
		&embedding, &rec.EmbeddingModel, &rec.Synced, &rec.SyncedAt,
		&rec.Datestamp, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	rec.Embedding = embedding
	return &rec, nil
}

// Delete removes the projection row. Deleting an absent row is a no-op.
func (s *RecordStore) Delete(ctx context.Context, endpointID int64, recordIdentifier string) error {
	_, err := GetExecutor(ctx, s.db).ExecContext(ctx,
		"DELETE FROM records WHERE endpoint_id = $1 AND record_identifier = $2",
		endpointID, recordIdentifier,
	)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

// CountByEndpoint reports how many records each endpoint currently holds.
func (s *RecordStore) CountByEndpoint(ctx context.Context) (map[int64]int64, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT endpoint_id, count(*) FROM records GROUP BY endpoint_id",
	)
	if err != nil {
		return nil, fmt.Errorf("count records: %w", err)
	}
	defer rows.Close()

	out := make(map[int64]int64)
	for rows.Next() {
		var endpointID, n int64
		if err := rows.Scan(&endpointID, &n); err != nil {
			return nil, fmt.Errorf("count records: %w", err)
		}
		out[endpointID] = n
	}
	return out, rows.Err()
}
