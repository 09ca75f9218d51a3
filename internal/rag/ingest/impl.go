package ingest

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/akolanti/DocAgent/internal/adapter/utils"
	"github.com/akolanti/DocAgent/internal/chunker"
	"github.com/akolanti/DocAgent/internal/classifier"
	"github.com/akolanti/DocAgent/internal/config"
	"github.com/akolanti/DocAgent/internal/domain/commonModels"
	"github.com/akolanti/DocAgent/internal/domain/faults"
	"github.com/akolanti/DocAgent/internal/domain/jobModel"
	"github.com/akolanti/DocAgent/internal/rag/embedding"
	"github.com/akolanti/DocAgent/internal/rag/vectorDB"
	"github.com/akolanti/DocAgent/pkg/logger_i"
)

func getDocType(docPath string) commonModels.DocType {
	ext := strings.ToLower(filepath.Ext(docPath))
	switch ext {
	case ".pdf":
		return commonModels.PDF
	case ".html", ".htm":
		return commonModels.HTML
	default:
		return commonModels.ERR
	}
}

// PrepareChunks splits segments, tags every chunk with its regulation family
// and assigns deterministic chunk ids keyed on source id plus running index.
func PrepareChunks(segments []commonModels.Segment, doc commonModels.Document, cls *classifier.Classifier, cfg chunker.Config) ([]commonModels.DocChunk, error) {
	chunks, err := chunker.SplitSegments(segments, doc, cfg, config.EmbeddingModelName)
	if err != nil {
		return nil, err
	}

	for i := range chunks {
		chunks[i].ChunkId = utils.DeterministicChunkUUID(doc.Id, i)
		cls.Tag(&chunks[i])
	}

	return chunks, nil
}

// BatchIngest embeds and upserts chunks in fixed size batches so one oversized
// document cannot hold a single giant model call open. Returns the number of
// chunks stored.
func BatchIngest(ctx context.Context, chunks []commonModels.DocChunk, vectorDatabase vectorDB.DataProcessor, embedder embedding.Embedder, job *jobModel.Job) (int, error) {
	logger = logger_i.NewLogger("Batch Ingestion ")
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	batchSize := 100
	stored := 0

	for i := 0; i < len(chunks); i += batchSize {
		end := i + batchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		currentBatch := chunks[i:end]

		var texts []string
		for _, c := range currentBatch {
			texts = append(texts, c.Chunk)
		}

		log.Debug("Starting embedding call", "current batch length", len(currentBatch))
		vectors, err := embedder.BatchEmbedding(ctx, texts)
		if err != nil {
			return stored, faults.Wrap(faults.ModelUnavailable, err, "embedding batch starting at %d", i)
		}

		if job != nil {
			job.CurrentStep = jobModel.IngestStoring
		}
		err = vectorDatabase.UpsertBatch(ctx, config.ChunkCollectionName, currentBatch, vectors)
		if err != nil {
			return stored, faults.Wrap(faults.StoreFailure, err, "upserting batch starting at %d", i)
		}
		stored += len(currentBatch)
	}

	return stored, nil
}
