package types

// UploadResponse summarizes one ingestion run. ChunksFailed counts chunks
// whose embedding calls failed and were skipped.
type UploadResponse struct {
	Message      string `json:"message"`
	ChunksStored int    `json:"chunks_stored"`
	ImagesStored int    `json:"images_stored"`
	ChunksFailed int    `json:"chunks_failed"`
}

// QueryResponse is the answer to one query. Images are base64 encoded.
type QueryResponse struct {
	Answer string   `json:"answer"`
	Images []string `json:"images"`
}

type CollectionsResponse struct {
	Collections []string `json:"collections"`
}

type CollectionStatusResponse struct {
	Status         string `json:"status"`
	CollectionName string `json:"collection_name"`
}

type ErrorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}
