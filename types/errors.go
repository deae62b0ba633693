package types

import (
	"errors"
	"fmt"
)

// ErrGeneratorNotReady is returned when a query arrives before a generative
// backend has been configured.
var ErrGeneratorNotReady = errors.New("generative service is not configured")

// ErrCollectionNotFound is returned by collection administration when the
// named collection does not exist.
var ErrCollectionNotFound = errors.New("collection not found")

// ParseError marks a malformed input document. Fatal to the ingest call.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse document: %v", e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }

// EmbeddingError marks a failed embedding service call. Recoverable per chunk
// at ingestion time, fatal at query time.
type EmbeddingError struct {
	Err error
}

func (e *EmbeddingError) Error() string { return fmt.Sprintf("embedding service: %v", e.Err) }
func (e *EmbeddingError) Unwrap() error { return e.Err }

// VectorStoreError marks a failed vector store call. Surfaced as a
// dependency-unavailable condition.
type VectorStoreError struct {
	Op  string
	Err error
}

func (e *VectorStoreError) Error() string { return fmt.Sprintf("vector store %s: %v", e.Op, e.Err) }
func (e *VectorStoreError) Unwrap() error { return e.Err }

// GenerationError marks a failed generative model call. The query pipeline
// recovers from it by falling back to the raw retrieved context.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string { return fmt.Sprintf("generative service: %v", e.Err) }
func (e *GenerationError) Unwrap() error { return e.Err }
