package service

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tieubaoca/docuquery-be/types"
)

var DefaultChunkerConfig = types.DocumentServiceConfig{
	MaxChunkSize: 1000,
	OverlapSize:  200,
}

// TextChunker splits a text blob into overlapping fixed-size chunks. Splitting
// is purely length-based; chunk boundaries are not aligned to sentences.
type TextChunker struct {
	maxChunkSize int
	overlapSize  int
}

func NewTextChunker(config types.DocumentServiceConfig) *TextChunker {
	if config.MaxChunkSize <= 0 {
		config = DefaultChunkerConfig
	}
	if config.OverlapSize < 0 || config.OverlapSize >= config.MaxChunkSize {
		config.OverlapSize = config.MaxChunkSize / 5
	}
	return &TextChunker{
		maxChunkSize: config.MaxChunkSize,
		overlapSize:  config.OverlapSize,
	}
}

// Chunk cuts text into pieces of at most maxChunkSize bytes, each starting
// overlapSize bytes before the end of the previous piece. Boundaries never
// split a UTF-8 sequence: a cut inside a multi-byte rune snaps back to the
// rune's first byte. Every chunk records the offset of its first byte in the
// source text. Whitespace-only pieces are dropped.
func (c *TextChunker) Chunk(text string) []types.Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var chunks []types.Chunk
	pos := 0
	for pos < len(text) {
		end := pos + c.maxChunkSize
		if end >= len(text) {
			end = len(text)
		} else {
			end = snapToRuneStart(text, end, pos)
		}
		if end <= pos {
			// The rune at pos is longer than maxChunkSize.
			_, n := utf8.DecodeRuneInString(text[pos:])
			end = pos + n
		}

		piece := text[pos:end]
		trimmed := strings.TrimLeftFunc(piece, unicode.IsSpace)
		start := pos + len(piece) - len(trimmed)
		trimmed = strings.TrimRightFunc(trimmed, unicode.IsSpace)
		if trimmed != "" {
			chunks = append(chunks, types.Chunk{
				Text:        trimmed,
				StartOffset: start,
			})
		}

		if end == len(text) {
			break
		}
		next := snapToRuneStart(text, end-c.overlapSize, pos)
		if next <= pos {
			next = end
		}
		pos = next
	}
	return chunks
}

// snapToRuneStart walks i back to the start of the rune it lands in, never
// moving to floor or below.
func snapToRuneStart(text string, i, floor int) int {
	for i > floor && !utf8.RuneStart(text[i]) {
		i--
	}
	return i
}
