// Package worker consumes batches of harvest events and turns them into
// search-synced records: dialect detection, normalization, validation,
// batched embedding and the dual-store write.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"meta_indexer/internal/dialect"
	"meta_indexer/internal/domain"
	"meta_indexer/internal/embedding"
	"meta_indexer/internal/normalize"
	"meta_indexer/internal/search"
	"meta_indexer/internal/xmltree"
)

// Worker processes one batch at a time. All collaborators are injected at
// startup; the worker itself is stateless across batches.
type Worker struct {
	records   RecordStore
	events    EventStore
	txManager TransactionManager
	embedder  Embedder
	search    SearchClient
	validator Validator
	logger    *slog.Logger
}

func New(
	records RecordStore,
	events EventStore,
	txManager TransactionManager,
	embedder Embedder,
	searchClient SearchClient,
	validator Validator,
	logger *slog.Logger,
) *Worker {
	return &Worker{
		records:   records,
		events:    events,
		txManager: txManager,
		embedder:  embedder,
		search:    searchClient,
		validator: validator,
		logger:    logger.With("component", "worker"),
	}
}

// item is one event that survived normalization and validation.
type item struct {
	event domain.EventMessage
	doc   normalize.Document
	docID string
	text  string
}

// failure is one event excluded from the batch's downstream steps.
type failure struct {
	eventID int64
	message string
}

// tombstone is a deletion event paired with the record it removes, when one
// exists.
type tombstone struct {
	event  domain.EventMessage
	record *domain.Record
}

// HandleBatch runs the full pipeline for one batch. Per-record failures are
// annotated on their events and never fail the batch; an embedding or search
// bulk failure does, so the queue can retry the batch as a unit. The
// relational writes happen in one transaction after the search index write;
// the two stores are independent and a late transaction failure is a known,
// accepted divergence recovered by reprocessing.
func (w *Worker) HandleBatch(ctx context.Context, msg *domain.BatchMessage) error {
	start := time.Now()
	stats := domain.BatchStats{Total: len(msg.Events)}

	var (
		live       []item
		failures   []failure
		tombstones []tombstone
	)

	for _, ev := range msg.Events {
		if ev.IsDeleted {
			rec, err := w.records.Get(ctx, ev.EndpointID, ev.RecordIdentifier)
			if err != nil {
				return fmt.Errorf("look up record for tombstone %d: %w", ev.EventID, err)
			}
			tombstones = append(tombstones, tombstone{event: ev, record: rec})
			continue
		}

		it, fail := w.transformEvent(ev)
		if fail != nil {
			failures = append(failures, *fail)
			continue
		}
		live = append(live, *it)
	}

	if err := w.embedBatch(ctx, live); err != nil {
		return err
	}

	for _, ts := range tombstones {
		if ts.record == nil {
			continue
		}
		if err := w.search.Delete(ctx, msg.IndexName, recordDocumentID(ts.record)); err != nil {
			return fmt.Errorf("delete document for tombstone %d: %w", ts.event.EventID, err)
		}
	}

	if len(live) > 0 {
		docs := make([]search.Document, len(live))
		for i, it := range live {
			docs[i] = search.Document{ID: it.docID, Source: it.doc}
		}
		indexed, err := w.search.BulkUpsert(ctx, msg.IndexName, docs)
		if err != nil {
			return fmt.Errorf("bulk index: %w", err)
		}
		stats.Indexed = indexed
		if indexed < len(docs) {
			w.logger.Warn("search index accepted fewer documents than submitted",
				"message_id", msg.MessageID,
				"submitted", len(docs),
				"indexed", indexed,
			)
		}
	}

	err := w.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		for _, ts := range tombstones {
			if ts.record == nil {
				stats.Skipped++
				continue
			}
			if err := w.records.Delete(txCtx, ts.event.EndpointID, ts.event.RecordIdentifier); err != nil {
				return err
			}
			stats.Deleted++
		}

		for _, f := range failures {
			if err := w.events.AnnotateError(txCtx, f.eventID, f.message); err != nil {
				return err
			}
			stats.Failed++
		}

		for i := range live {
			rec := buildRecord(&live[i], w.embedder.Model())
			if _, err := w.records.Upsert(txCtx, rec); err != nil {
				return err
			}
			if err := w.events.ClearError(txCtx, live[i].event.EventID); err != nil {
				return err
			}
			stats.Upserted++
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("batch transaction: %w", err)
	}

	stats.Duration = time.Since(start)
	w.logger.Info("batch processed",
		"message_id", msg.MessageID,
		"total", stats.Total,
		"upserted", stats.Upserted,
		"indexed", stats.Indexed,
		"deleted", stats.Deleted,
		"failed", stats.Failed,
		"skipped", stats.Skipped,
		"duration", stats.Duration,
	)
	return nil
}

// transformEvent parses, normalizes and validates one event. Returns either
// a surviving item or the failure to annotate.
func (w *Worker) transformEvent(ev domain.EventMessage) (*item, *failure) {
	root, err := xmltree.Parse(ev.RawMetadata)
	if err != nil {
		return nil, &failure{eventID: ev.EventID, message: err.Error()}
	}

	res, dialectName, err := dialect.Resource(root)
	if err != nil {
		// A structural mismatch is a harvest problem, but leaving it
		// invisible hides broken endpoints: record it on the event.
		w.logger.Warn("unrecognized metadata dialect",
			"event_id", ev.EventID,
			"record_identifier", ev.RecordIdentifier,
		)
		return nil, &failure{eventID: ev.EventID, message: err.Error()}
	}

	doc, err := normalize.Normalize(res)
	if err != nil {
		return nil, &failure{eventID: ev.EventID, message: err.Error()}
	}

	if err := w.validator.Validate(doc); err != nil {
		return nil, &failure{eventID: ev.EventID, message: err.Error()}
	}

	w.logger.Debug("transformed event",
		"event_id", ev.EventID,
		"dialect", dialectName,
	)

	return &item{
		event: ev,
		doc:   doc,
		docID: normalize.DocumentID(doc),
		text:  embedding.TextForEmbedding(doc),
	}, nil
}

// embedBatch embeds all surviving records in one model call and zips the
// vectors back onto the documents by position.
func (w *Worker) embedBatch(ctx context.Context, live []item) error {
	if len(live) == 0 {
		return nil
	}

	texts := make([]string, len(live))
	for i, it := range live {
		texts[i] = it.text
	}

	vectors, err := w.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed batch: %w", err)
	}
	if len(vectors) != len(live) {
		return fmt.Errorf("embed batch: got %d vectors for %d records", len(vectors), len(live))
	}

	for i := range live {
		live[i].doc["emb"] = vectors[i]
	}
	return nil
}

// buildRecord assembles the relational projection of one surviving item.
func buildRecord(it *item, embeddingModel string) *domain.Record {
	now := time.Now().UTC()

	rec := &domain.Record{
		EndpointID:       it.event.EndpointID,
		RecordIdentifier: it.event.RecordIdentifier,
		RawMetadata:      it.event.RawMetadata,
		EmbeddingModel:   embeddingModel,
		Synced:           true,
		SyncedAt:         &now,
		Datestamp:        it.event.Datestamp,
	}

	if emb, ok := it.doc["emb"].([]float32); ok {
		rec.Embedding = emb
	}
	if doi, ok := it.doc["doi"].(string); ok && doi != "" {
		rec.DOI = &doi
	}
	if url, ok := it.doc["url"].(string); ok && url != "" {
		rec.URL = &url
	}
	if title := firstTitle(it.doc); title != "" {
		rec.Title = &title
	}
	if rt := resourceTypeGeneral(it.doc); rt != "" {
		rec.ResourceType = &rt
	}

	// The vector lives in its own column; keep it out of the JSON document.
	plain := make(normalize.Document, len(it.doc))
	for k, v := range it.doc {
		if k != "emb" {
			plain[k] = v
		}
	}
	if normalized, err := json.Marshal(plain); err == nil {
		rec.Normalized = normalized
	}
	return rec
}

func firstTitle(doc normalize.Document) string {
	titles, ok := doc["titles"].([]map[string]any)
	if !ok || len(titles) == 0 {
		return ""
	}
	s, _ := titles[0]["title"].(string)
	return s
}

func resourceTypeGeneral(doc normalize.Document) string {
	rt, ok := doc["resourceType"].(map[string]any)
	if !ok {
		return ""
	}
	s, _ := rt["resourceTypeGeneral"].(string)
	return s
}

// recordDocumentID derives the search document id of an existing record the
// same way the normalizer derives it for new documents.
func recordDocumentID(rec *domain.Record) string {
	doc := normalize.Document{}
	if rec.DOI != nil {
		doc["doi"] = *rec.DOI
	}
	if rec.URL != nil {
		doc["url"] = *rec.URL
	}
	return normalize.DocumentID(doc)
}
