package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/tieubaoca/docuquery-be/database"
	"github.com/tieubaoca/docuquery-be/types"
	"github.com/tieubaoca/docuquery-be/utils"
)

// IngestService persists one PDF document into a collection: parse, store
// page images, chunk page text, embed each chunk, and bulk-upsert the
// resulting points.
type IngestService struct {
	vectorDB          database.VectorDatabase
	embedder          EmbeddingService
	chunker           *TextChunker
	parser            DocumentParser
	imageService      *ImageService
	defaultCollection string
}

func NewIngestService(
	vectorDB database.VectorDatabase,
	embedder EmbeddingService,
	chunker *TextChunker,
	parser DocumentParser,
	imageService *ImageService,
	defaultCollection string,
) *IngestService {
	return &IngestService{
		vectorDB:          vectorDB,
		embedder:          embedder,
		chunker:           chunker,
		parser:            parser,
		imageService:      imageService,
		defaultCollection: defaultCollection,
	}
}

// Ingest processes one document. A chunk whose embedding call fails is skipped
// and counted; the rest of the document still goes in. A document with no
// extractable chunks returns a zero-chunk summary, not an error.
func (s *IngestService) Ingest(ctx context.Context, fileBytes []byte, fileName, collectionName string) (*types.UploadResponse, error) {
	collection := collectionName
	if collection == "" {
		collection = s.defaultCollection
	}
	if err := s.vectorDB.EnsureCollection(ctx, collection); err != nil {
		return nil, err
	}

	pages, err := s.parser.Parse(fileBytes, fileName)
	if err != nil {
		return nil, err
	}

	baseName := utils.FileNameWithoutExt(fileName)
	var points []database.Point
	totalChunks, totalImages, failedChunks := 0, 0, 0

	for _, page := range pages {
		// Images are stored per page before chunking so that every chunk of
		// the page carries the full image path list.
		imagePaths := make([]string, 0, len(page.Images))
		for _, img := range page.Images {
			path, err := s.imageService.Save(baseName, page.Index, img.Ordinal, img.Ext, img.Data)
			if err != nil {
				log.Printf("Warning: failed to store image %d of page %d: %v", img.Ordinal, page.Index, err)
				continue
			}
			imagePaths = append(imagePaths, path)
			totalImages++
		}
		imageMeta, err := json.Marshal(imagePaths)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize image paths: %w", err)
		}

		if strings.TrimSpace(page.Text) == "" {
			continue
		}

		for _, chunk := range s.chunker.Chunk(page.Text) {
			vector, err := s.embedder.Embed(ctx, chunk.Text)
			if err != nil {
				log.Printf("Embedding failed for chunk %d of page %d: %v", totalChunks, page.Index, err)
				failedChunks++
				continue
			}
			points = append(points, database.Point{
				ID:     uuid.NewString(),
				Vector: vector,
				Payload: database.ChunkPayload{
					Source:               fileName,
					PageNumber:           page.Index,
					ChunkIndex:           totalChunks,
					Text:                 chunk.Text,
					AssociatedImagePaths: string(imageMeta),
				},
			})
			totalChunks++
		}
	}

	if len(points) > 0 {
		if err := s.vectorDB.Upsert(ctx, collection, points); err != nil {
			return nil, err
		}
	}

	return &types.UploadResponse{
		Message:      fmt.Sprintf("%s processed", fileName),
		ChunksStored: totalChunks,
		ImagesStored: totalImages,
		ChunksFailed: failedChunks,
	}, nil
}
