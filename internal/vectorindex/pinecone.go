// Package vectorindex is a minimal REST client to a Pinecone-compatible
// vector index: batched idempotent upsert and filtered nearest-neighbor
// query with metadata.
package vectorindex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"

	"techdocs-rag-platform/models"
)

type Client struct {
	host   string
	apiKey string
	http   *http.Client
}

type Config struct {
	Host    string
	APIKey  string
	Timeout time.Duration
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		host:   cfg.Host,
		apiKey: cfg.APIKey,
		http:   &http.Client{Timeout: timeout},
	}
}

// Upsert writes entries to the index. Entries with an existing id are
// overwritten, so re-upserting the same chunk ids is a no-op at the data
// level.
func (c *Client) Upsert(ctx context.Context, entries []models.IndexEntry) error {
	if len(entries) == 0 {
		return nil
	}
	body := map[string]any{"vectors": entries}
	return c.postJSON(ctx, c.host+"/vectors/upsert", body, nil)
}

// Query performs a filtered nearest-neighbor search. Matches come back
// sorted by score descending.
func (c *Client) Query(ctx context.Context, vector []float32, filter map[string]any, topK int) ([]models.Match, error) {
	if topK <= 0 {
		topK = 3
	}
	req := map[string]any{
		"vector":          vector,
		"topK":            topK,
		"includeMetadata": true,
	}
	if len(filter) > 0 {
		req["filter"] = filter
	}

	var resp struct {
		Matches []models.Match `json:"matches"`
	}
	if err := c.postJSON(ctx, c.host+"/query", req, &resp); err != nil {
		return nil, err
	}
	return resp.Matches, nil
}

// postJSON issues one POST with up to 3 attempts. 4xx responses are
// permanent; transport errors and 5xx are retried with backoff.
func (c *Client) postJSON(ctx context.Context, url string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	operation := func() (struct{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
		if err != nil {
			return struct{}{}, backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Api-Key", c.apiKey)

		resp, err := c.http.Do(req)
		if err != nil {
			return struct{}{}, err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return struct{}{}, fmt.Errorf("vector index POST %s failed: %s", url, resp.Status)
		}
		if resp.StatusCode >= 300 {
			return struct{}{}, backoff.Permanent(fmt.Errorf("vector index POST %s failed: %s", url, resp.Status))
		}
		if out != nil {
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return struct{}{}, backoff.Permanent(err)
			}
		}
		return struct{}{}, nil
	}

	_, err = backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(3),
	)
	return err
}
