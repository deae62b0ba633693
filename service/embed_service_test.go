package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpenAIEmbedderDimension(t *testing.T) {
	embedder := NewOpenAIEmbedder("http://localhost:11434/v1", "", "mxbai-embed-large:latest", 1024)
	assert.Equal(t, 1024, embedder.Dimension())
}
