package database

import (
	"context"
)

// ChunkPayload is the metadata persisted alongside each vector. It reproduces
// the originating chunk's text and its page's image paths.
type ChunkPayload struct {
	Source               string `json:"source"`
	PageNumber           int    `json:"page_number"`
	ChunkIndex           int    `json:"chunk_index"`
	Text                 string `json:"text"`
	AssociatedImagePaths string `json:"associated_image_paths"`
}

// Point is one (id, vector, payload) tuple to be upserted into a collection.
type Point struct {
	ID      string
	Vector  []float32
	Payload ChunkPayload
}

// Hit is a single similarity search result, highest score first.
type Hit struct {
	Score   float32
	Payload ChunkPayload
}

// VectorDatabase defines the interface for collection and point operations
// against the backing vector store.
type VectorDatabase interface {
	// EnsureCollection creates the named collection if it does not exist.
	// Creating an existing collection is not an error.
	EnsureCollection(ctx context.Context, name string) error

	// Upsert writes all points in one bulk call. It either fully succeeds
	// or returns an error.
	Upsert(ctx context.Context, collection string, points []Point) error

	// Search returns up to topK hits ranked by similarity, payload included.
	Search(ctx context.Context, collection string, vector []float32, topK int) ([]Hit, error)

	// Collection administration, delegated to the backing store.
	DeleteCollection(ctx context.Context, name string) error
	ListCollections(ctx context.Context) ([]string, error)
}
