package database

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tieubaoca/docuquery-be/config"
	"github.com/tieubaoca/docuquery-be/types"
)

func newTestStore(t *testing.T, handler http.Handler, vectorSize int) *QdrantStore {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	store, err := NewQdrantStore(config.QdrantConfig{URL: server.URL}, vectorSize)
	require.NoError(t, err)
	return store
}

func TestEnsureCollectionCreates(t *testing.T) {
	var gotBody map[string]any
	store := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/collections/docs", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"result":true,"status":"ok"}`))
	}), 4)

	require.NoError(t, store.EnsureCollection(context.Background(), "docs"))

	vectors := gotBody["vectors"].(map[string]any)
	assert.Equal(t, float64(4), vectors["size"])
	assert.Equal(t, "Cosine", vectors["distance"])
}

func TestEnsureCollectionIdempotent(t *testing.T) {
	calls := 0
	store := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls > 1 {
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"status":{"error":"Collection 'docs' already exists!"}}`))
			return
		}
		w.Write([]byte(`{"result":true}`))
	}), 4)

	require.NoError(t, store.EnsureCollection(context.Background(), "docs"))
	require.NoError(t, store.EnsureCollection(context.Background(), "docs"), "re-creating an existing collection is not an error")
	assert.Equal(t, 2, calls)
}

func TestEnsureCollectionPropagatesOtherFailures(t *testing.T) {
	store := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"status":{"error":"disk full"}}`))
	}), 4)

	err := store.EnsureCollection(context.Background(), "docs")
	assert.ErrorAs(t, err, new(*types.VectorStoreError))
}

func TestUpsertSendsBulkPoints(t *testing.T) {
	var gotBody struct {
		Points []struct {
			ID      string       `json:"id"`
			Vector  []float32    `json:"vector"`
			Payload ChunkPayload `json:"payload"`
		} `json:"points"`
	}
	store := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/collections/docs/points", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("wait"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"result":{"status":"completed"}}`))
	}), 2)

	points := []Point{
		{ID: "a", Vector: []float32{1, 2}, Payload: ChunkPayload{Source: "x.pdf", Text: "one"}},
		{ID: "b", Vector: []float32{3, 4}, Payload: ChunkPayload{Source: "x.pdf", Text: "two"}},
	}
	require.NoError(t, store.Upsert(context.Background(), "docs", points))

	require.Len(t, gotBody.Points, 2)
	assert.Equal(t, "a", gotBody.Points[0].ID)
	assert.Equal(t, "one", gotBody.Points[0].Payload.Text)
}

func TestUpsertRejectsDimensionMismatch(t *testing.T) {
	requests := 0
	store := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}), 4)

	err := store.Upsert(context.Background(), "docs", []Point{
		{ID: "a", Vector: []float32{1, 2}},
	})
	assert.ErrorAs(t, err, new(*types.VectorStoreError))
	assert.Zero(t, requests, "mismatched points never reach the store")
}

func TestUpsertEmptyIsNoop(t *testing.T) {
	requests := 0
	store := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}), 4)

	require.NoError(t, store.Upsert(context.Background(), "docs", nil))
	assert.Zero(t, requests)
}

func TestSearchParsesRankedHits(t *testing.T) {
	store := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/collections/docs/points/search", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, float64(3), req["limit"])
		assert.Equal(t, true, req["with_payload"])

		w.Write([]byte(`{"result":[
			{"score":0.92,"payload":{"source":"a.pdf","page_number":0,"chunk_index":0,"text":"first","associated_image_paths":"[\"stored_images/a_page0_img0.png\"]"}},
			{"score":0.61,"payload":{"source":"a.pdf","page_number":1,"chunk_index":1,"text":"second","associated_image_paths":"[]"}}
		]}`))
	}), 2)

	hits, err := store.Search(context.Background(), "docs", []float32{0.1, 0.2}, 3)
	require.NoError(t, err)

	require.Len(t, hits, 2)
	assert.InDelta(t, 0.92, hits[0].Score, 1e-6)
	assert.Equal(t, "first", hits[0].Payload.Text)
	assert.Equal(t, `["stored_images/a_page0_img0.png"]`, hits[0].Payload.AssociatedImagePaths)
	assert.Equal(t, 1, hits[1].Payload.PageNumber)
}

func TestSearchRejectsDimensionMismatch(t *testing.T) {
	requests := 0
	store := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}), 4)

	_, err := store.Search(context.Background(), "docs", []float32{1}, 3)
	assert.ErrorAs(t, err, new(*types.VectorStoreError))
	assert.Zero(t, requests, "mismatched query never reaches the store")
}

func TestSearchEmptyCollection(t *testing.T) {
	store := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":[]}`))
	}), 2)

	hits, err := store.Search(context.Background(), "docs", []float32{0.1, 0.2}, 3)
	require.NoError(t, err, "an empty collection is not an error")
	assert.Empty(t, hits)
}

func TestDeleteCollectionNotFound(t *testing.T) {
	store := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status":{"error":"Collection 'ghost' doesn't exist!"}}`))
	}), 2)

	err := store.DeleteCollection(context.Background(), "ghost")
	assert.ErrorIs(t, err, types.ErrCollectionNotFound)
}

func TestListCollections(t *testing.T) {
	store := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/collections", r.URL.Path)
		w.Write([]byte(`{"result":{"collections":[{"name":"my_docs"},{"name":"bills"}]}}`))
	}), 2)

	names, err := store.ListCollections(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"my_docs", "bills"}, names)
}

func TestAPIKeyHeader(t *testing.T) {
	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("api-key")
		w.Write([]byte(`{"result":{"collections":[]}}`))
	}))
	t.Cleanup(server.Close)
	store, err := NewQdrantStore(config.QdrantConfig{URL: server.URL, APIKey: "secret"}, 2)
	require.NoError(t, err)

	_, err = store.ListCollections(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "secret", gotKey)
}
