package qdrantDB

import (
	"context"
	"errors"
	"sync"

	"github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/akolanti/DocAgent/internal/config"
	"github.com/akolanti/DocAgent/internal/domain/commonModels"
	"github.com/akolanti/DocAgent/internal/domain/faults"
	"github.com/akolanti/DocAgent/internal/rag/vectorDB"
	"github.com/akolanti/DocAgent/pkg/logger_i"
)

var logger *logger_i.Logger
var qdrantInstance *qdrant.Client
var once sync.Once
var dimension = uint64(config.EmbeddingOutputDimensionality)
var chunkCollection = config.ChunkCollectionName

type ClientHolder struct {
	QObj *qdrant.Client

	// one mutex per source id so concurrent re-ingests of the same
	// document serialize instead of interleaving their point writes
	sourceMu sync.Mutex
	sources  map[string]*sync.Mutex
}

func GetQdrantClient(ctx context.Context) *ClientHolder {

	once.Do(func() {
		logger = logger_i.NewLogger("Qdrant")
		res := newClient()
		if res != nil {
			qdrantInstance = res
			initCacheCollection(ctx, qdrantInstance)
			go closeQdrant(ctx, qdrantInstance)
		}
	})

	if qdrantInstance == nil {
		return nil
	}
	return &ClientHolder{
		QObj:    qdrantInstance,
		sources: make(map[string]*sync.Mutex),
	}
}

func newClient() *qdrant.Client {

	host := config.GetEnv("QDRANT_HOST", config.QdrantHost)
	port := config.GetEnvInt("QDRANT_PORT", config.QdrantGrpcPort)

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:     host,
		Port:     port,
		UseTLS:   config.QdrantUseTLS,
		PoolSize: uint(config.QdrantPoolSize),
	})
	if err != nil {
		logger.Error("could not instantiate: ", "error:", err)
		return nil
	}

	err = createCollection(context.Background(), client, chunkCollection)
	if err != nil {
		logger.Error("could not create collection: ", "collectionName", chunkCollection, "error:", err)
		return nil
	}

	return client
}

func closeQdrant(ctx context.Context, qi *qdrant.Client) {
	<-ctx.Done()
	logger.Info("Shutting down Qdrant")
	err := qi.Close()
	if err != nil {
		logger.Error("could not close Qdrant: ", "error:", err)
	}
	logger.Info("Closed Qdrant")
}

// lockSource returns the mutex for one source id, creating it on first use.
func (db *ClientHolder) lockSource(sourceId string) *sync.Mutex {
	db.sourceMu.Lock()
	defer db.sourceMu.Unlock()
	mu, ok := db.sources[sourceId]
	if !ok {
		mu = &sync.Mutex{}
		db.sources[sourceId] = mu
	}
	return mu
}

// wrapStoreErr classifies grpc failures. Unavailable and deadline errors keep
// their retryable nature visible to the job layer.
func wrapStoreErr(err error, format string, args ...any) error {
	if st, ok := status.FromError(err); ok {
		switch st.Code() {
		case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted:
			return faults.Wrap(faults.StoreFailure, err, format+" (retryable)", args...)
		}
	}
	return faults.Wrap(faults.StoreFailure, err, format, args...)
}

func (db *ClientHolder) Search(ctx context.Context, vectorFloat []float32, k uint64) ([]vectorDB.QueryResult, error) {
	loggr := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	if k == 0 {
		return []vectorDB.QueryResult{}, nil
	}

	result, err := db.QObj.Query(ctx, &qdrant.QueryPoints{
		CollectionName: chunkCollection,
		Query:          qdrant.NewQuery(vectorFloat...),
		Limit:          qdrant.PtrOf(k),
		WithPayload:    qdrant.NewWithPayload(true),
	})

	if err != nil {
		loggr.Error("Error querying Qdrant: ", "error:", err)
		return nil, wrapStoreErr(err, "querying %s", chunkCollection)
	}

	matches := make([]vectorDB.QueryResult, 0, len(result))
	for _, hit := range result {
		matches = append(matches, vectorDB.QueryResult{
			ChunkId:          hit.Payload["chunk_id"].GetStringValue(),
			Content:          hit.Payload["content"].GetStringValue(),
			SourceId:         hit.Payload["source_id"].GetStringValue(),
			DocName:          hit.Payload["doc_name"].GetStringValue(),
			SegmentKind:      hit.Payload["segment_kind"].GetStringValue(),
			Position:         int(hit.Payload["position"].GetIntegerValue()),
			RegulationNumber: hit.Payload["regulation_number"].GetStringValue(),
			RegulationType:   hit.Payload["regulation_type"].GetStringValue(),
			Score:            hit.Score,
		})
	}

	loggr.Debug("vector search done", "hits", len(matches))
	return matches, nil
}

func (db *ClientHolder) CreateCollection(ctx context.Context, collectionName string) error {
	return createCollection(ctx, db.QObj, collectionName)
}

func (db *ClientHolder) UpsertBatch(ctx context.Context, collectionName string, chunks []commonModels.DocChunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return faults.New(faults.StoreFailure, "mismatch: got %d chunks but %d vectors", len(chunks), len(vectors))
	}
	if len(chunks) == 0 {
		return nil
	}
	for i, chunk := range chunks {
		// a chunk without a source id could never be deleted again
		if chunk.Doc.Id == "" {
			return faults.New(faults.ValidationError, "chunk %d has no source id", i)
		}
	}

	qdrantPoints := make([]*qdrant.PointStruct, len(chunks))

	for i, chunk := range chunks {
		qdrantPoints[i] = &qdrant.PointStruct{
			// chunk ids are derived from source id + index, so re-ingesting
			// the same document overwrites its points instead of duplicating
			Id: qdrant.NewID(chunk.ChunkId),

			Vectors: qdrant.NewVectors(vectors[i]...),

			Payload: qdrant.NewValueMap(map[string]any{
				"content":           chunk.Chunk,
				"source_id":         chunk.Doc.Id,
				"doc_name":          chunk.Doc.Name,
				"segment_kind":      string(chunk.SegmentKind),
				"position":          chunk.Position,
				"chunk_order":       chunk.ChunkOrder,
				"chunk_id":          chunk.ChunkId,
				"regulation_number": chunk.RegulationNumber,
				"regulation_type":   chunk.RegulationType,
				"embedding_model":   chunk.EmbeddingModel,
				"ingested_at":       chunk.Doc.LastIngestTimestamp.Unix(),
			}),
		}
	}

	mu := db.lockSource(chunks[0].Doc.Id)
	mu.Lock()
	defer mu.Unlock()

	_, err := db.QObj.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collectionName,
		Points:         qdrantPoints,
		Wait:           qdrant.PtrOf(true),
	})

	if err != nil {
		return wrapStoreErr(err, "qdrant upsert of %d points failed", len(qdrantPoints))
	}

	return nil
}

// DeleteSource removes every point that belongs to one document.
func (db *ClientHolder) DeleteSource(ctx context.Context, sourceId string) error {
	loggr := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	mu := db.lockSource(sourceId)
	mu.Lock()
	defer mu.Unlock()

	_, err := db.QObj.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: chunkCollection,
		Points: qdrant.NewPointsSelectorFilter(&qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("source_id", sourceId),
			},
		}),
		Wait: qdrant.PtrOf(true),
	})
	if err != nil {
		loggr.Error("delete by source failed", "sourceId", sourceId, "error", err)
		return wrapStoreErr(err, "deleting points for %s", sourceId)
	}

	loggr.Info("deleted document points", "sourceId", sourceId)
	return nil
}

func (db *ClientHolder) Healthy(ctx context.Context) error {
	_, err := db.QObj.HealthCheck(ctx)
	if err != nil {
		return wrapStoreErr(err, "qdrant health check")
	}
	return nil
}

func createCollection(ctx context.Context, client *qdrant.Client, collectionName string) error {
	if client == nil {
		return errors.New("no qdrant client")
	}
	if collectionName == "" {
		return errors.New("empty collection name")
	}

	exists, err := client.CollectionExists(ctx, collectionName)
	if err != nil {
		return err
	}
	if exists {

		return nil
	}

	err = client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     dimension,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	return err
}
