package qdrantDB

import (
	"context"
	"time"

	"github.com/qdrant/go-client/qdrant"

	"github.com/akolanti/DocAgent/internal/config"
	"github.com/akolanti/DocAgent/internal/rag/vectorDB"
)

var semanticCacheDBName string = config.CacheCollectionName

func initCacheCollection(ctx context.Context, client *qdrant.Client) {
	loggr := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))
	err := createCollection(ctx, client, semanticCacheDBName)
	if err != nil {
		loggr.Error("Semantic cache collection creation failed", "error", err)
	}
}

func (db *ClientHolder) GetCachedAnswer(ctx context.Context, queryVector []float32) (vectorDB.CachedAnswer, bool, error) {
	loggr := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	loggr.Debug("Searching for cached answer")
	searchResult, err := db.QObj.Query(ctx, &qdrant.QueryPoints{
		CollectionName: semanticCacheDBName,
		Query:          qdrant.NewQuery(queryVector...),
		Limit:          qdrant.PtrOf(uint64(1)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil || len(searchResult) == 0 {
		if err != nil {
			loggr.Error("Cache Query failed", "error", err)
		}
		return vectorDB.CachedAnswer{}, false, err
	}

	loggr.Debug("Found cached candidate", "semantic similarity score", searchResult[0].Score)
	if searchResult[0].Score < config.CacheSimilarityCutoff {
		return vectorDB.CachedAnswer{}, false, nil
	}

	loggr.Info("semantic cache hit")
	cached := vectorDB.CachedAnswer{
		Answer: searchResult[0].Payload["answer"].GetStringValue(),
	}
	for _, v := range searchResult[0].Payload["citations"].GetListValue().GetValues() {
		cached.Citations = append(cached.Citations, v.GetStringValue())
	}
	return cached, true, nil
}

func (db *ClientHolder) SaveToCache(ctx context.Context, id string, vector []float32, answer string, citations []string) error {
	loggr := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	citationVals := make([]any, len(citations))
	for i, c := range citations {
		citationVals[i] = c
	}

	loggr.Debug("Saving answer to cache")
	_, err := db.QObj.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: semanticCacheDBName,
		Points: []*qdrant.PointStruct{
			{
				Id:      qdrant.NewID(id),
				Vectors: qdrant.NewVectors(vector...),
				Payload: qdrant.NewValueMap(map[string]any{
					"answer":    answer,
					"citations": citationVals,
					"timestamp": time.Now().Unix(),
				}),
			},
		},
	})
	if err != nil {
		loggr.Error("Saving answer to cache failed", "error", err)
	}
	return err
}
