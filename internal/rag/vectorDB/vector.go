package vectorDB

import (
	"context"

	"github.com/akolanti/DocAgent/internal/domain/commonModels"
)

// QueryResult is one scored hit from the chunk collection.
type QueryResult struct {
	ChunkId          string
	Content          string
	SourceId         string
	DocName          string
	SegmentKind      string
	Position         int
	RegulationNumber string
	RegulationType   string
	Score            float32
}

// CachedAnswer is a semantic-cache hit.
type CachedAnswer struct {
	Answer    string
	Citations []string
}

type DataProcessor interface {
	Search(ctx context.Context, vectorVal []float32, k uint64) ([]QueryResult, error)
	GetCachedAnswer(ctx context.Context, queryVector []float32) (CachedAnswer, bool, error)
	SaveToCache(ctx context.Context, id string, vector []float32, answer string, citations []string) error

	CreateCollection(ctx context.Context, collectionName string) error
	UpsertBatch(ctx context.Context, collectionName string, chunks []commonModels.DocChunk, vectors [][]float32) error
	DeleteSource(ctx context.Context, sourceId string) error
	Healthy(ctx context.Context) error
}
