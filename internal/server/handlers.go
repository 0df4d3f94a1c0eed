// Package server exposes the thin HTTP control plane: run lifecycle, event
// registration, batch enqueueing and endpoint configuration.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"meta_indexer/internal/domain"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mocks.go -package=mocks

type RunStore interface {
	Open(ctx context.Context, harvestURL string, untilDate time.Time) (*domain.OpenedRun, error)
	Close(ctx context.Context, id int64, success bool, startedAt, completedAt time.Time) error
	Latest(ctx context.Context, harvestURL string) (*domain.HarvestRun, error)
	Endpoints(ctx context.Context) ([]domain.Endpoint, error)
	EndpointByURL(ctx context.Context, harvestURL string) (*domain.Endpoint, error)
}

type EventStore interface {
	Record(ctx context.Context, ev *domain.HarvestEvent) (int64, error)
}

type Producer interface {
	EnqueueRun(ctx context.Context, runID int64) (int, error)
}

// Handler holds the control-plane dependencies.
type Handler struct {
	runs     RunStore
	events   EventStore
	producer Producer
	logger   *slog.Logger
}

func NewHandler(runs RunStore, events EventStore, producer Producer, logger *slog.Logger) *Handler {
	return &Handler{
		runs:     runs,
		events:   events,
		producer: producer,
		logger:   logger.With("component", "server"),
	}
}

type openRunRequest struct {
	HarvestURL string     `json:"harvest_url" binding:"required"`
	UntilDate  *time.Time `json:"until_date"`
}

type endpointConfig struct {
	Name          string        `json:"name"`
	HarvestURL    string        `json:"harvest_url"`
	HarvestParams harvestParams `json:"harvest_params"`
	Code          string        `json:"code"`
	Protocol      string        `json:"protocol"`
}

type harvestParams struct {
	MetadataPrefix           string  `json:"metadata_prefix"`
	Set                      *string `json:"set,omitempty"`
	AdditionalMetadataParams *string `json:"additional_metadata_params,omitempty"`
}

// OpenRun handles POST /harvest_run.
func (h *Handler) OpenRun(c *gin.Context) {
	var req openRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	untilDate := time.Now().UTC()
	if req.UntilDate != nil {
		untilDate = *req.UntilDate
	}

	opened, err := h.runs.Open(c.Request.Context(), req.HarvestURL, untilDate)
	if err != nil {
		h.respondError(c, "open run", err)
		return
	}

	h.logger.Info("opened harvest run",
		"run_id", opened.ID,
		"harvest_url", req.HarvestURL,
	)

	c.JSON(http.StatusOK, gin.H{
		"id":              opened.ID,
		"from_date":       opened.FromDate,
		"until_date":      opened.UntilDate,
		"endpoint_config": toEndpointConfig(opened.Endpoint),
	})
}

type closeRunRequest struct {
	ID          int64     `json:"id" binding:"required"`
	Success     *bool     `json:"success" binding:"required"`
	StartedAt   time.Time `json:"started_at" binding:"required"`
	CompletedAt time.Time `json:"completed_at" binding:"required"`
}

// CloseRun handles PUT /harvest_run.
func (h *Handler) CloseRun(c *gin.Context) {
	var req closeRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.runs.Close(c.Request.Context(), req.ID, *req.Success, req.StartedAt, req.CompletedAt)
	if err != nil {
		h.respondError(c, "close run", err)
		return
	}

	h.logger.Info("closed harvest run", "run_id", req.ID, "success", *req.Success)
	c.JSON(http.StatusOK, gin.H{"id": req.ID})
}

// LatestRun handles GET /harvest_run?harvest_url=.
func (h *Handler) LatestRun(c *gin.Context) {
	harvestURL := c.Query("harvest_url")
	if harvestURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "harvest_url is required"})
		return
	}

	run, err := h.runs.Latest(c.Request.Context(), harvestURL)
	if err != nil {
		h.respondError(c, "latest run", err)
		return
	}
	if run == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": run.ID, "status": run.Status})
}

type recordEventRequest struct {
	RecordIdentifier   string    `json:"record_identifier" binding:"required"`
	Datestamp          time.Time `json:"datestamp" binding:"required"`
	RawMetadata        string    `json:"raw_metadata" binding:"required"`
	AdditionalMetadata *string   `json:"additional_metadata"`
	HarvestURL         string    `json:"harvest_url" binding:"required"`
	RepoCode           string    `json:"repo_code" binding:"required"`
	HarvestRunID       int64     `json:"harvest_run_id" binding:"required"`
	IsDeleted          bool      `json:"is_deleted"`
}

// RecordEvent handles POST /harvest_event.
func (h *Handler) RecordEvent(c *gin.Context) {
	var req recordEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	endpoint, err := h.runs.EndpointByURL(c.Request.Context(), req.HarvestURL)
	if err != nil {
		h.respondError(c, "record event", err)
		return
	}

	id, err := h.events.Record(c.Request.Context(), &domain.HarvestEvent{
		EndpointID:         endpoint.ID,
		RepositoryID:       endpoint.RepositoryID,
		HarvestRunID:       req.HarvestRunID,
		RecordIdentifier:   req.RecordIdentifier,
		Datestamp:          req.Datestamp,
		RawMetadata:        req.RawMetadata,
		AdditionalMetadata: req.AdditionalMetadata,
		IsDeleted:          req.IsDeleted,
	})
	if err != nil {
		h.respondError(c, "record event", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}

// EnqueueRun handles GET /index?harvest_run_id=. The paging work runs in the
// request's own goroutine; only the batch count is observable.
func (h *Handler) EnqueueRun(c *gin.Context) {
	runID, err := strconv.ParseInt(c.Query("harvest_run_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "harvest_run_id must be an integer"})
		return
	}

	batches, err := h.producer.EnqueueRun(c.Request.Context(), runID)
	if err != nil {
		h.respondError(c, "enqueue run", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"number_of_batches": batches})
}

// Endpoints handles GET /config.
func (h *Handler) Endpoints(c *gin.Context) {
	endpoints, err := h.runs.Endpoints(c.Request.Context())
	if err != nil {
		h.respondError(c, "list endpoints", err)
		return
	}

	configs := make([]endpointConfig, len(endpoints))
	for i, e := range endpoints {
		configs[i] = toEndpointConfig(e)
	}
	c.JSON(http.StatusOK, gin.H{"endpoints_configs": configs})
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
}

func (h *Handler) respondError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrRunNotClosed):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.logger.Error(op+" failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func toEndpointConfig(e domain.Endpoint) endpointConfig {
	return endpointConfig{
		Name:       e.Name,
		HarvestURL: e.HarvestURL,
		HarvestParams: harvestParams{
			MetadataPrefix:           e.MetadataPrefix,
			Set:                      e.Set,
			AdditionalMetadataParams: e.AdditionalMetadataParams,
		},
		Code:     e.RepoCode,
		Protocol: e.Protocol,
	}
}
