package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/tieubaoca/docuquery-be/database"
	"github.com/tieubaoca/docuquery-be/types"
)

// NoRelevantInformation is returned when a query retrieves no context at all.
const NoRelevantInformation = "No relevant information found."

// contextSeparator joins retrieved chunk texts, both in the synthesis prompt
// and in the fallback answer.
const contextSeparator = "\n---\n"

// QueryService answers one query: embed, search, collect context, gate
// images by score, synthesize an answer.
type QueryService struct {
	vectorDB     database.VectorDatabase
	embedder     EmbeddingService
	generator    AIService // nil until a generative backend is configured
	imageService *ImageService
	topK         int
	// Hits at or above this score contribute their images; hits below it
	// contribute text only.
	imageScoreThreshold float32
}

func NewQueryService(
	vectorDB database.VectorDatabase,
	embedder EmbeddingService,
	generator AIService,
	imageService *ImageService,
	topK int,
	imageScoreThreshold float64,
) *QueryService {
	if topK <= 0 {
		topK = 3
	}
	return &QueryService{
		vectorDB:            vectorDB,
		embedder:            embedder,
		generator:           generator,
		imageService:        imageService,
		topK:                topK,
		imageScoreThreshold: float32(imageScoreThreshold),
	}
}

// Query runs the retrieval and synthesis pipeline. Embedding and search
// failures are fatal; a generation failure degrades to the raw retrieved
// context, and a missing image file is dropped from the result.
func (s *QueryService) Query(ctx context.Context, query, collectionName string) (*types.QueryResponse, error) {
	if s.generator == nil {
		return nil, types.ErrGeneratorNotReady
	}

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	hits, err := s.vectorDB.Search(ctx, collectionName, vector, s.topK)
	if err != nil {
		return nil, err
	}

	var contextTexts []string
	var imagePaths []string
	seenPaths := make(map[string]struct{})
	for _, hit := range hits {
		if hit.Payload.Text != "" {
			contextTexts = append(contextTexts, hit.Payload.Text)
		}
		if hit.Score < s.imageScoreThreshold {
			continue
		}
		var paths []string
		if err := json.Unmarshal([]byte(hit.Payload.AssociatedImagePaths), &paths); err != nil {
			log.Printf("Warning: could not decode image paths %q: %v", hit.Payload.AssociatedImagePaths, err)
			continue
		}
		for _, path := range paths {
			if !s.imageService.Contains(path) {
				continue
			}
			if _, seen := seenPaths[path]; seen {
				continue
			}
			seenPaths[path] = struct{}{}
			imagePaths = append(imagePaths, path)
		}
	}

	answer := s.synthesize(ctx, query, contextTexts)

	images := make([]string, 0, len(imagePaths))
	for _, path := range imagePaths {
		data, err := s.imageService.Load(path)
		if err != nil {
			log.Printf("Warning: image file not found at %s: %v", path, err)
			continue
		}
		images = append(images, base64.StdEncoding.EncodeToString(data))
	}

	return &types.QueryResponse{
		Answer: answer,
		Images: images,
	}, nil
}

func (s *QueryService) synthesize(ctx context.Context, query string, contextTexts []string) string {
	if len(contextTexts) == 0 {
		return NoRelevantInformation
	}
	answer, err := s.generator.Generate(ctx, buildPrompt(query, contextTexts))
	if err != nil {
		log.Printf("Warning: answer generation failed, returning raw context: %v", err)
		return strings.Join(contextTexts, contextSeparator)
	}
	return answer
}

func buildPrompt(query string, contextTexts []string) string {
	var b strings.Builder
	b.WriteString("Answer the question using only the context below. ")
	b.WriteString("If the context does not contain the answer, say so.\n\n")
	b.WriteString("Context:\n")
	b.WriteString(strings.Join(contextTexts, contextSeparator))
	b.WriteString(fmt.Sprintf("\n\nQuestion: %s", query))
	return b.String()
}
