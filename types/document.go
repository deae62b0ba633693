package types

// Page is one parsed PDF page. Index is 0-based and document-local.
type Page struct {
	Index  int
	Text   string
	Images []ImageAsset
}

// ImageAsset is a raster image extracted from a page, not yet persisted.
// Ordinal is the image's position within its page.
type ImageAsset struct {
	Ordinal int
	Ext     string
	Data    []byte
}

// Chunk is a bounded text fragment cut from a page, the unit of embedding.
// StartOffset is the byte offset of the fragment within its source text.
type Chunk struct {
	Text        string
	StartOffset int
}

// DocumentServiceConfig contains configuration options for text chunking
type DocumentServiceConfig struct {
	MaxChunkSize int // Maximum size for text chunks
	OverlapSize  int // Size of overlap between chunks
}
