package database

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tieubaoca/docuquery-be/config"
	"github.com/tieubaoca/docuquery-be/types"
)

// QdrantStore talks to a Qdrant server over its REST API. All collections it
// creates use cosine distance and the configured vector size.
type QdrantStore struct {
	url        string
	apiKey     string
	vectorSize int
	client     *http.Client
}

func NewQdrantStore(cfg config.QdrantConfig, vectorSize int) (*QdrantStore, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("qdrant url is required")
	}
	if vectorSize <= 0 {
		return nil, fmt.Errorf("invalid vector size: %d", vectorSize)
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &QdrantStore{
		url:        strings.TrimSuffix(cfg.URL, "/"),
		apiKey:     cfg.APIKey,
		vectorSize: vectorSize,
		client:     &http.Client{Timeout: timeout},
	}, nil
}

// VectorSize returns the dimensionality every collection is created with.
func (s *QdrantStore) VectorSize() int {
	return s.vectorSize
}

func (s *QdrantStore) EnsureCollection(ctx context.Context, name string) error {
	body := map[string]any{
		"vectors": map[string]any{
			"size":     s.vectorSize,
			"distance": "Cosine",
		},
	}
	err := s.doJSON(ctx, http.MethodPut, fmt.Sprintf("%s/collections/%s", s.url, name), body, nil)
	if err != nil {
		// Re-creating an existing collection is fine.
		if qe, ok := err.(*qdrantHTTPError); ok {
			if qe.status == http.StatusConflict || strings.Contains(strings.ToLower(qe.body), "already exists") {
				return nil
			}
		}
		return &types.VectorStoreError{Op: "create collection", Err: err}
	}
	return nil
}

func (s *QdrantStore) Upsert(ctx context.Context, collection string, points []Point) error {
	if len(points) == 0 {
		return nil
	}
	for _, p := range points {
		if len(p.Vector) != s.vectorSize {
			return &types.VectorStoreError{
				Op:  "upsert",
				Err: fmt.Errorf("point %s has dimension %d, collection expects %d", p.ID, len(p.Vector), s.vectorSize),
			}
		}
	}
	qdrantPoints := make([]map[string]any, len(points))
	for i, p := range points {
		qdrantPoints[i] = map[string]any{
			"id":      p.ID,
			"vector":  p.Vector,
			"payload": p.Payload,
		}
	}
	body := map[string]any{"points": qdrantPoints}
	err := s.doJSON(ctx, http.MethodPut, fmt.Sprintf("%s/collections/%s/points?wait=true", s.url, collection), body, nil)
	if err != nil {
		return &types.VectorStoreError{Op: "upsert", Err: err}
	}
	return nil
}

func (s *QdrantStore) Search(ctx context.Context, collection string, vector []float32, topK int) ([]Hit, error) {
	if len(vector) != s.vectorSize {
		return nil, &types.VectorStoreError{
			Op:  "search",
			Err: fmt.Errorf("query vector has dimension %d, collection expects %d", len(vector), s.vectorSize),
		}
	}
	if topK <= 0 {
		topK = 3
	}
	body := map[string]any{
		"vector":       vector,
		"limit":        topK,
		"with_payload": true,
	}
	var resp struct {
		Result []struct {
			Score   float32      `json:"score"`
			Payload ChunkPayload `json:"payload"`
		} `json:"result"`
	}
	err := s.doJSON(ctx, http.MethodPost, fmt.Sprintf("%s/collections/%s/points/search", s.url, collection), body, &resp)
	if err != nil {
		return nil, &types.VectorStoreError{Op: "search", Err: err}
	}
	hits := make([]Hit, 0, len(resp.Result))
	for _, r := range resp.Result {
		hits = append(hits, Hit{Score: r.Score, Payload: r.Payload})
	}
	return hits, nil
}

func (s *QdrantStore) DeleteCollection(ctx context.Context, name string) error {
	err := s.doJSON(ctx, http.MethodDelete, fmt.Sprintf("%s/collections/%s", s.url, name), nil, nil)
	if err != nil {
		if qe, ok := err.(*qdrantHTTPError); ok {
			if qe.status == http.StatusNotFound || strings.Contains(strings.ToLower(qe.body), "doesn't exist") {
				return types.ErrCollectionNotFound
			}
		}
		return &types.VectorStoreError{Op: "delete collection", Err: err}
	}
	return nil
}

func (s *QdrantStore) ListCollections(ctx context.Context) ([]string, error) {
	var resp struct {
		Result struct {
			Collections []struct {
				Name string `json:"name"`
			} `json:"collections"`
		} `json:"result"`
	}
	err := s.doJSON(ctx, http.MethodGet, fmt.Sprintf("%s/collections", s.url), nil, &resp)
	if err != nil {
		return nil, &types.VectorStoreError{Op: "list collections", Err: err}
	}
	names := make([]string, 0, len(resp.Result.Collections))
	for _, c := range resp.Result.Collections {
		names = append(names, c.Name)
	}
	return names, nil
}

// qdrantHTTPError carries the HTTP status so callers can tell "already
// exists" and "not found" apart from real failures.
type qdrantHTTPError struct {
	status int
	body   string
}

func (e *qdrantHTTPError) Error() string {
	return fmt.Sprintf("qdrant returned %d: %s", e.status, e.body)
}

func (s *QdrantStore) doJSON(ctx context.Context, method, url string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &qdrantHTTPError{status: resp.StatusCode, body: strings.TrimSpace(string(data))}
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
