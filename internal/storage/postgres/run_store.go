package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"meta_indexer/internal/domain"
)

// RunStore drives the harvest run state machine. A partial unique index on
// harvest_runs(endpoint_id) WHERE status = 'open' enforces the one-open-run
// invariant at insert time.
type RunStore struct {
	db *sqlx.DB
}

func NewRunStore(db *sqlx.DB) *RunStore {
	return &RunStore{db: db}
}

// Open creates an open run for the endpoint with the given harvest URL.
// FromDate continues the watermark chain: the until_date of the most recent
// closed run, or nil for a first harvest. Returns domain.ErrConflict when an
// open run already exists and domain.ErrNotFound for an unknown harvest URL.
func (s *RunStore) Open(ctx context.Context, harvestURL string, untilDate time.Time) (*domain.OpenedRun, error) {
	endpoint, err := s.EndpointByURL(ctx, harvestURL)
	if err != nil {
		return nil, err
	}

	var fromDate *time.Time
	var lastUntil time.Time
	err = s.db.GetContext(ctx, &lastUntil, `
		SELECT until_date FROM harvest_runs
		WHERE endpoint_id = $1 AND status = $2
		ORDER BY until_date DESC
		LIMIT 1`,
		endpoint.ID, domain.RunStatusClosed,
	)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// first harvest for this endpoint
	case err != nil:
		return nil, fmt.Errorf("latest closed run: %w", err)
	default:
		fromDate = &lastUntil
	}

	var id int64
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO harvest_runs (endpoint_id, status, from_date, until_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		endpoint.ID, domain.RunStatusOpen, fromDate, untilDate,
	).Scan(&id)
	if err != nil {
		return nil, mapError("open run", err)
	}

	return &domain.OpenedRun{
		ID:        id,
		FromDate:  fromDate,
		UntilDate: untilDate,
		Endpoint:  *endpoint,
	}, nil
}

// Close transitions an open run to closed or failed. Runs that are not open
// are never touched; closing one reports domain.ErrNotFound.
func (s *RunStore) Close(ctx context.Context, id int64, success bool, startedAt, completedAt time.Time) error {
	status := domain.RunStatusClosed
	if !success {
		status = domain.RunStatusFailed
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE harvest_runs
		SET status = $1, started_at = $2, completed_at = $3
		WHERE id = $4 AND status = $5`,
		status, startedAt, completedAt, id, domain.RunStatusOpen,
	)
	if err != nil {
		return fmt.Errorf("close run: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("close run: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("close run %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Latest returns the most recent run for the endpoint with the given harvest
// URL, or nil when the endpoint has never been harvested.
func (s *RunStore) Latest(ctx context.Context, harvestURL string) (*domain.HarvestRun, error) {
	var run domain.HarvestRun
	err := s.db.GetContext(ctx, &run, `
		SELECT r.id, r.endpoint_id, r.status, r.from_date, r.until_date,
		       r.started_at, r.completed_at, r.created_at
		FROM harvest_runs r
		JOIN endpoints e ON e.id = r.endpoint_id
		WHERE e.harvest_url = $1
		ORDER BY r.id DESC
		LIMIT 1`,
		harvestURL,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest run: %w", err)
	}
	return &run, nil
}

// Get returns one run by id, or domain.ErrNotFound.
func (s *RunStore) Get(ctx context.Context, id int64) (*domain.HarvestRun, error) {
	var run domain.HarvestRun
	err := s.db.GetContext(ctx, &run, `
		SELECT id, endpoint_id, status, from_date, until_date,
		       started_at, completed_at, created_at
		FROM harvest_runs
		WHERE id = $1`,
		id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return &run, nil
}

// EndpointByURL resolves one endpoint by its harvest URL, or
// domain.ErrNotFound.
func (s *RunStore) EndpointByURL(ctx context.Context, harvestURL string) (*domain.Endpoint, error) {
	var endpoint domain.Endpoint
	err := s.db.GetContext(ctx, &endpoint, `
		SELECT e.id, e.repository_id, e.name, e.harvest_url, e.protocol,
		       e.metadata_prefix, e.set, e.additional_metadata_params,
		       rep.code AS repo_code
		FROM endpoints e
		JOIN repositories rep ON rep.id = e.repository_id
		WHERE e.harvest_url = $1`,
		harvestURL,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("endpoint %s: %w", harvestURL, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("endpoint by url: %w", err)
	}
	return &endpoint, nil
}

// Endpoints lists all configured endpoints with their repository codes.
func (s *RunStore) Endpoints(ctx context.Context) ([]domain.Endpoint, error) {
	var endpoints []domain.Endpoint
	err := s.db.SelectContext(ctx, &endpoints, `
		SELECT e.id, e.repository_id, e.name, e.harvest_url, e.protocol,
		       e.metadata_prefix, e.set, e.additional_metadata_params,
		       rep.code AS repo_code
		FROM endpoints e
		JOIN repositories rep ON rep.id = e.repository_id
		ORDER BY e.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list endpoints: %w", err)
	}
	return endpoints, nil
}
