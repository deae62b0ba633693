package types

type QueryRequest struct {
	Query          string `json:"query"`
	CollectionName string `json:"collection_name"`
}

type CollectionRequest struct {
	CollectionName string `json:"collection_name"`
}
