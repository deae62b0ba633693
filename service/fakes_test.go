package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/tieubaoca/docuquery-be/database"
	"github.com/tieubaoca/docuquery-be/types"
)

// fakeEmbedder returns a constant-dimension vector derived from the text
// length, and fails for texts registered in failOn.
type fakeEmbedder struct {
	dim    int
	failOn map[string]bool
	calls  int
}

func newFakeEmbedder(dim int) *fakeEmbedder {
	return &fakeEmbedder{dim: dim, failOn: make(map[string]bool)}
}

func (e *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	e.calls++
	if e.failOn[text] {
		return nil, &types.EmbeddingError{Err: errors.New("embedding backend down")}
	}
	vector := make([]float32, e.dim)
	for i := range vector {
		vector[i] = float32(len(text))
	}
	return vector, nil
}

func (e *fakeEmbedder) Dimension() int { return e.dim }

// fakeVectorDB records calls and serves canned hits.
type fakeVectorDB struct {
	ensured     []string
	upserts     [][]database.Point
	hits        []database.Hit
	searchErr   error
	upsertErr   error
	collections []string
}

func (db *fakeVectorDB) EnsureCollection(ctx context.Context, name string) error {
	db.ensured = append(db.ensured, name)
	return nil
}

func (db *fakeVectorDB) Upsert(ctx context.Context, collection string, points []database.Point) error {
	if db.upsertErr != nil {
		return db.upsertErr
	}
	db.upserts = append(db.upserts, points)
	return nil
}

func (db *fakeVectorDB) Search(ctx context.Context, collection string, vector []float32, topK int) ([]database.Hit, error) {
	if db.searchErr != nil {
		return nil, db.searchErr
	}
	if topK < len(db.hits) {
		return db.hits[:topK], nil
	}
	return db.hits, nil
}

func (db *fakeVectorDB) DeleteCollection(ctx context.Context, name string) error { return nil }

func (db *fakeVectorDB) ListCollections(ctx context.Context) ([]string, error) {
	return db.collections, nil
}

// fakeParser returns fixed pages without touching real PDF bytes.
type fakeParser struct {
	pages []types.Page
	err   error
}

func (p *fakeParser) Parse(data []byte, filename string) ([]types.Page, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.pages, nil
}

// fakeGenerator records whether it was invoked and can be told to fail.
type fakeGenerator struct {
	answer string
	err    error
	called int
	prompt string
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.called++
	g.prompt = prompt
	if g.err != nil {
		return "", g.err
	}
	return g.answer, nil
}

func imagePathsJSON(paths ...string) string {
	if len(paths) == 0 {
		return "[]"
	}
	out := "["
	for i, p := range paths {
		if i > 0 {
			out += ","
		}
		out += fmt.Sprintf("%q", p)
	}
	return out + "]"
}
