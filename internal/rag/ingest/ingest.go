package ingest

import (
	"context"
	"os"
	"time"

	"github.com/akolanti/DocAgent/internal/chunker"
	"github.com/akolanti/DocAgent/internal/classifier"
	"github.com/akolanti/DocAgent/internal/config"
	"github.com/akolanti/DocAgent/internal/domain/commonModels"
	"github.com/akolanti/DocAgent/internal/domain/faults"
	"github.com/akolanti/DocAgent/internal/domain/jobModel"
	"github.com/akolanti/DocAgent/internal/extractor"
	"github.com/akolanti/DocAgent/internal/metrics"
	"github.com/akolanti/DocAgent/internal/rag/embedding"
	"github.com/akolanti/DocAgent/internal/rag/vectorDB"
	"github.com/akolanti/DocAgent/pkg/logger_i"
)

var logger *logger_i.Logger

// Dependencies carries everything one ingestion run needs. The worker owns
// none of it, so the same pipeline runs identically under test doubles.
type Dependencies struct {
	Embedder   embedding.Embedder
	VectorDB   vectorDB.DataProcessor
	Extractor  *extractor.Extractor
	Scraper    *extractor.Scraper
	Classifier *classifier.Classifier
	Documents  jobModel.DocumentStore
	ChunkCfg   chunker.Config
}

// ProcessDocumentIngestion runs one source through extract, classify, chunk,
// embed and store. Upload jobs read a staged file that is removed on every
// exit path, fetch jobs scrape a regulation page.
func ProcessDocumentIngestion(ctx context.Context, job jobModel.Job, deps Dependencies) jobModel.Job {
	logger = logger_i.NewLogger("Document Ingestion ")
	log := logger.With("traceId", job.TraceId, "jobId", job.Id)

	// the staged upload must not outlive the attempt, whichever step fails
	if job.JobType == jobModel.JobTypeUpload {
		stagedPath := job.JobPayload.IngestURL
		defer func() {
			if err := os.Remove(stagedPath); err != nil && !os.IsNotExist(err) {
				log.Error("Error removing staged file", "path", stagedPath, "error", err)
			}
		}()
	}

	job.CurrentStep = jobModel.IngestInit
	err := deps.VectorDB.CreateCollection(ctx, config.ChunkCollectionName)
	if err != nil {
		log.Error("Error creating collection", "error", err)
		return failJob(job, faults.Wrap(faults.StoreFailure, err, "creating collection"))
	}

	job.CurrentStep = jobModel.IngestExtracting
	segments, doc, err := extractSource(ctx, &job, deps)
	if err != nil {
		log.Error("Error extracting document content", "error", err)
		return failJob(job, err)
	}
	log.Debug("extraction done", "segments", len(segments))

	job.CurrentStep = jobModel.IngestChunking
	chunks, err := PrepareChunks(segments, doc, deps.Classifier, deps.ChunkCfg)
	if err != nil {
		log.Error("Error chunking document", "error", err)
		return failJob(job, err)
	}
	log.Debug("chunking done", "chunks", len(chunks))

	job.CurrentStep = jobModel.IngestEmbedding
	stored, err := BatchIngest(ctx, chunks, deps.VectorDB, deps.Embedder, &job)
	if err != nil {
		log.Error("Error storing document", "error", err)
		return failJob(job, err)
	}
	metrics.AddChunksIngested(stored)

	err = deps.Documents.RegisterDocument(ctx, commonModels.DocumentInfo{
		SourceId:   doc.Id,
		Name:       doc.Name,
		ChunkCount: stored,
		IngestedAt: doc.LastIngestTimestamp,
	})
	if err != nil {
		log.Error("Error registering document", "error", err)
		return failJob(job, faults.Wrap(faults.StoreFailure, err, "registering %s", doc.Id))
	}

	job.JobPayload.SourceId = doc.Id
	job.JobPayload.ChunksStored = stored
	job.Status = jobModel.JobStatusComplete
	job.CurrentStep = jobModel.Complete
	log.Info("document ingested", "sourceId", doc.Id, "chunks", stored)
	return job
}

// extractSource resolves the job type to segments plus document metadata.
func extractSource(ctx context.Context, job *jobModel.Job, deps Dependencies) ([]commonModels.Segment, commonModels.Document, error) {
	now := time.Now()

	switch job.JobType {
	case jobModel.JobTypeUpload:
		stagedPath := job.JobPayload.IngestURL
		if getDocType(stagedPath) != commonModels.PDF {
			return nil, commonModels.Document{}, faults.New(faults.ValidationError, "only pdf uploads are supported, got %s", stagedPath)
		}

		sourceId := job.JobPayload.IngestFileName
		doc := commonModels.Document{
			Id:                  sourceId,
			Name:                job.JobPayload.IngestFileName,
			LastIngestTimestamp: now,
			ContentType:         commonModels.PDF,
		}
		segments, err := deps.Extractor.ExtractPDF(stagedPath, sourceId, extractor.Config{})
		return segments, doc, err

	case jobModel.JobTypeFetch:
		segments, fullURL, err := deps.Scraper.FetchAndParse(ctx, job.JobPayload.FetchPath, extractor.Config{})
		doc := commonModels.Document{
			Id:                  fullURL,
			Name:                fullURL,
			LastIngestTimestamp: now,
			ContentType:         commonModels.HTML,
		}
		return segments, doc, err

	default:
		return nil, commonModels.Document{}, faults.New(faults.ValidationError, "unknown job type %s", job.JobType)
	}
}

func failJob(job jobModel.Job, err error) jobModel.Job {
	kind := faults.KindOf(err)
	job.Status = jobModel.JobStatusError
	job.CurrentStep = jobModel.Error
	job.Error = jobModel.JobError{
		Code:    500,
		Kind:    string(kind),
		Message: err.Error(),
		Retry:   kind == faults.StoreFailure || kind == faults.ModelUnavailable,
	}
	return job
}
