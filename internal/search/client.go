// Package search wraps the Elasticsearch client with the index operations the
// pipeline needs: index bootstrap with the vector mapping, bulk upserts,
// deletes and a knn lookup.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	es "github.com/elastic/go-elasticsearch/v8"
)

// Config holds Elasticsearch connection configuration.
type Config struct {
	URL        string
	Username   string
	Password   string
	MaxRetries int
	Timeout    time.Duration
}

// Client wraps the Elasticsearch client.
type Client struct {
	esClient *es.Client
}

// NewClient creates a client and verifies the connection.
func NewClient(cfg Config) (*Client, error) {
	address := cfg.URL
	if !strings.HasPrefix(address, "http://") && !strings.HasPrefix(address, "https://") {
		address = "http://" + address
	}

	clientConfig := es.Config{
		Addresses:  []string{address},
		MaxRetries: cfg.MaxRetries,
	}
	if cfg.Timeout > 0 {
		clientConfig.Transport = &http.Transport{
			ResponseHeaderTimeout: cfg.Timeout,
		}
	}
	if cfg.Username != "" && cfg.Password != "" {
		clientConfig.Username = cfg.Username
		clientConfig.Password = cfg.Password
	}

	esClient, err := es.NewClient(clientConfig)
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	res, err := esClient.Ping()
	if err != nil {
		return nil, fmt.Errorf("ping elasticsearch: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("ping elasticsearch: %s", res.String())
	}

	return &Client{esClient: esClient}, nil
}

// EnsureIndex creates the index with the record mapping if it does not exist.
// The embedding dimension is injected into the mapping at creation time.
func (c *Client) EnsureIndex(ctx context.Context, indexName string, embeddingDims int) error {
	exists, err := c.indexExists(ctx, indexName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	mapping, err := json.Marshal(recordMapping(embeddingDims))
	if err != nil {
		return fmt.Errorf("marshal index mapping: %w", err)
	}

	res, err := c.esClient.Indices.Create(indexName,
		c.esClient.Indices.Create.WithBody(bytes.NewReader(mapping)),
		c.esClient.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("create index %s: %w", indexName, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("create index %s: %s", indexName, string(body))
	}
	return nil
}

func (c *Client) indexExists(ctx context.Context, indexName string) (bool, error) {
	res, err := c.esClient.Indices.Exists([]string{indexName},
		c.esClient.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		return false, fmt.Errorf("check index %s: %w", indexName, err)
	}
	defer res.Body.Close()
	return res.StatusCode == 200, nil
}

// DeleteIndex removes an index. Used by tests and reindex tooling.
func (c *Client) DeleteIndex(ctx context.Context, indexName string) error {
	res, err := c.esClient.Indices.Delete([]string{indexName},
		c.esClient.Indices.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("delete index %s: %w", indexName, err)
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != 404 {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("delete index %s: %s", indexName, string(body))
	}
	return nil
}
