package domain

import "time"

// EventMessage is one harvest event as carried on the task queue. All fields
// travel by name so producer and worker versions can drift safely.
type EventMessage struct {
	EventID            int64     `json:"event_id"`
	RawMetadata        string    `json:"raw_metadata"`
	RepositoryID       int64     `json:"repository_id"`
	EndpointID         int64     `json:"endpoint_id"`
	RecordIdentifier   string    `json:"record_identifier"`
	RepoCode           string    `json:"repo_code"`
	HarvestURL         string    `json:"harvest_url"`
	AdditionalMetadata *string   `json:"additional_metadata,omitempty"`
	IsDeleted          bool      `json:"is_deleted"`
	Datestamp          time.Time `json:"datestamp"`
}

// BatchMessage is one producer-to-worker queue message: a bounded, ordered
// slice of events plus the search index they target.
type BatchMessage struct {
	MessageID string         `json:"message_id"`
	IndexName string         `json:"index_name"`
	Events    []EventMessage `json:"events"`
	CreatedAt time.Time      `json:"created_at"`
}

// BatchStats summarizes one processed batch.
type BatchStats struct {
	Total    int
	Deleted  int
	Skipped  int
	Failed   int
	Indexed  int
	Upserted int
	Duration time.Duration
}
