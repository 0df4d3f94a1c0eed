package domain

import "time"

// Run statuses. A run is terminal once closed or failed.
const (
	RunStatusOpen   = "open"
	RunStatusClosed = "closed"
	RunStatusFailed = "failed"
)

// Endpoint is the immutable configuration of one harvestable source.
type Endpoint struct {
	ID             int64   `db:"id" json:"id"`
	RepositoryID   int64   `db:"repository_id" json:"repository_id"`
	Name           string  `db:"name" json:"name"`
	HarvestURL     string  `db:"harvest_url" json:"harvest_url"`
	Protocol       string  `db:"protocol" json:"protocol"`
	MetadataPrefix string  `db:"metadata_prefix" json:"metadata_prefix"`
	Set            *string `db:"set" json:"set,omitempty"`
	// AdditionalMetadataParams configures an optional supplementary
	// metadata fetch (repository-specific API parameters, JSON).
	AdditionalMetadataParams *string `db:"additional_metadata_params" json:"additional_metadata_params,omitempty"`
	RepoCode                 string  `db:"repo_code" json:"repo_code"`
}

// OpenedRun is the result of opening a run: its id, the incremental window
// and a snapshot of the endpoint configuration for the harvester.
type OpenedRun struct {
	ID        int64
	FromDate  *time.Time
	UntilDate time.Time
	Endpoint  Endpoint
}

// HarvestRun is one harvesting pass against one endpoint. FromDate is the
// until_date of the previous closed run (nil for the first run), forming the
// incremental-harvest watermark chain.
type HarvestRun struct {
	ID          int64      `db:"id"`
	EndpointID  int64      `db:"endpoint_id"`
	Status      string     `db:"status"`
	FromDate    *time.Time `db:"from_date"`
	UntilDate   time.Time  `db:"until_date"`
	StartedAt   *time.Time `db:"started_at"`
	CompletedAt *time.Time `db:"completed_at"`
	CreatedAt   time.Time  `db:"created_at"`
}

// HarvestEvent is one row of the append-only ingestion log. Every harvest
// produces a new event row for a record, deleted ones included; the Records
// table holds the current projection.
type HarvestEvent struct {
	ID                 int64     `db:"id"`
	EndpointID         int64     `db:"endpoint_id"`
	RepositoryID       int64     `db:"repository_id"`
	HarvestRunID       int64     `db:"harvest_run_id"`
	RecordIdentifier   string    `db:"record_identifier"`
	Datestamp          time.Time `db:"datestamp"`
	RawMetadata        string    `db:"raw_metadata"`
	AdditionalMetadata *string   `db:"additional_metadata"`
	IsDeleted          bool      `db:"is_deleted"`
	ErrorMessage       *string   `db:"error_message"`
	CreatedAt          time.Time `db:"created_at"`
}

// EventPage is a harvest event joined with its endpoint and repository
// metadata, as read by the batch producer when paging a closed run.
type EventPage struct {
	EventID            int64     `db:"event_id"`
	RecordIdentifier   string    `db:"record_identifier"`
	RawMetadata        string    `db:"raw_metadata"`
	AdditionalMetadata *string   `db:"additional_metadata"`
	IsDeleted          bool      `db:"is_deleted"`
	Datestamp          time.Time `db:"datestamp"`
	EndpointID         int64     `db:"endpoint_id"`
	RepositoryID       int64     `db:"repository_id"`
	RepoCode           string    `db:"repo_code"`
	HarvestURL         string    `db:"harvest_url"`
}
