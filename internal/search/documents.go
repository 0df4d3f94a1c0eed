package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Document is one record document destined for the search index.
type Document struct {
	ID     string
	Source map[string]any
}

type bulkResponse struct {
	Errors bool `json:"errors"`
	Items  []map[string]struct {
		Status int `json:"status"`
		Error  *struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error"`
	} `json:"items"`
}

// BulkUpsert indexes all documents in one bulk call and returns how many were
// accepted. A count lower than len(docs) is the caller's consistency warning,
// not an error; only a failed bulk call as a whole is.
func (c *Client) BulkUpsert(ctx context.Context, indexName string, docs []Document) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}

	var body bytes.Buffer
	enc := json.NewEncoder(&body)
	for _, doc := range docs {
		action := map[string]any{"index": map[string]any{"_index": indexName, "_id": doc.ID}}
		if err := enc.Encode(action); err != nil {
			return 0, fmt.Errorf("encode bulk action: %w", err)
		}
		if err := enc.Encode(doc.Source); err != nil {
			return 0, fmt.Errorf("encode bulk document: %w", err)
		}
	}

	res, err := c.esClient.Bulk(bytes.NewReader(body.Bytes()),
		c.esClient.Bulk.WithContext(ctx),
		c.esClient.Bulk.WithRefresh("wait_for"),
	)
	if err != nil {
		return 0, fmt.Errorf("bulk index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		raw, _ := io.ReadAll(res.Body)
		return 0, fmt.Errorf("bulk index: %s", string(raw))
	}

	var parsed bulkResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return 0, fmt.Errorf("decode bulk response: %w", err)
	}

	indexed := 0
	for _, item := range parsed.Items {
		for _, result := range item {
			if result.Status >= 200 && result.Status < 300 {
				indexed++
			}
		}
	}
	return indexed, nil
}

// Delete removes one document. A missing document is not an error.
func (c *Client) Delete(ctx context.Context, indexName, docID string) error {
	res, err := c.esClient.Delete(indexName, docID,
		c.esClient.Delete.WithContext(ctx),
		c.esClient.Delete.WithRefresh("wait_for"),
	)
	if err != nil {
		return fmt.Errorf("delete document %s: %w", docID, err)
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != 404 {
		raw, _ := io.ReadAll(res.Body)
		return fmt.Errorf("delete document %s: %s", docID, string(raw))
	}
	return nil
}

// Get fetches one document's source by id, or nil when absent.
func (c *Client) Get(ctx context.Context, indexName, docID string) (map[string]any, error) {
	res, err := c.esClient.Get(indexName, docID,
		c.esClient.Get.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("get document %s: %w", docID, err)
	}
	defer res.Body.Close()

	if res.StatusCode == 404 {
		return nil, nil
	}
	if res.IsError() {
		raw, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("get document %s: %s", docID, string(raw))
	}

	var parsed struct {
		Source map[string]any `json:"_source"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode document %s: %w", docID, err)
	}
	return parsed.Source, nil
}

// KNNSearch returns the sources of the k nearest documents to the vector.
func (c *Client) KNNSearch(ctx context.Context, indexName string, vector []float32, k int) ([]map[string]any, error) {
	query := map[string]any{
		"knn": map[string]any{
			"field":          "emb",
			"query_vector":   vector,
			"k":              k,
			"num_candidates": k * 10,
		},
	}
	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("marshal knn query: %w", err)
	}

	res, err := c.esClient.Search(
		c.esClient.Search.WithContext(ctx),
		c.esClient.Search.WithIndex(indexName),
		c.esClient.Search.WithBody(strings.NewReader(string(body))),
	)
	if err != nil {
		return nil, fmt.Errorf("knn search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		raw, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("knn search: %s", string(raw))
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode knn response: %w", err)
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
