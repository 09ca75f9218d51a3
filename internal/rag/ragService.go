package rag

import (
	"context"
	"time"

	"github.com/akolanti/DocAgent/internal/adapter/utils"
	"github.com/akolanti/DocAgent/internal/config"
	"github.com/akolanti/DocAgent/internal/domain/commonModels"
	"github.com/akolanti/DocAgent/internal/domain/jobModel"
	"github.com/akolanti/DocAgent/internal/metrics"
	"github.com/akolanti/DocAgent/internal/rag/embedding"
	"github.com/akolanti/DocAgent/internal/rag/ingest"
	"github.com/akolanti/DocAgent/internal/rag/llm"
	"github.com/akolanti/DocAgent/internal/rag/vectorDB"
	"github.com/akolanti/DocAgent/pkg/logger_i"
)

// Answer is one generated response. Cited is false when no retrieved chunk
// cleared the similarity floor and the model answered from general knowledge.
type Answer struct {
	Text      string
	Citations []commonModels.Citation
	Cited     bool
	FromCache bool
}

// Service is the only surface handlers and workers see. They never touch the
// llm, the embedder or the vector store directly.
type Service interface {
	Answer(ctx context.Context, question string, messageHistory []string) (Answer, error)
	IngestDocument(ctx context.Context, job jobModel.Job) jobModel.Job
}

type service struct {
	vectorDB    vectorDB.DataProcessor
	llmProvider llm.Provider
	embedder    embedding.Embedder
	ingestDeps  ingest.Dependencies
	logger      *logger_i.Logger
}

// NewService constructor
func NewService(llmProvider llm.Provider, deps ingest.Dependencies) Service {
	return &service{
		vectorDB:    deps.VectorDB,
		llmProvider: llmProvider,
		embedder:    deps.Embedder,
		ingestDeps:  deps,
		logger:      logger_i.NewLogger("RAG Service :"),
	}
}

func (s *service) Answer(ctx context.Context, question string, messageHistory []string) (Answer, error) {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	processContext, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// Embedding
	queryVector, err := s.executeEmbeddingStep(processContext, question)
	if err != nil {
		log.Error("embedding failed", "error", err)
		return Answer{}, err
	}

	// Cache Check
	cached, found := s.executeCacheCheckStep(processContext, queryVector)
	if found {
		return cached, nil
	}

	// Vector DB Search
	hits, err := s.executeVectorSearchStep(processContext, queryVector)
	if err != nil {
		log.Error("vector search failed", "error", err)
		return Answer{}, err
	}

	// Only chunks above the similarity floor reach the prompt, weak hits
	// would make the model cite documents that barely relate
	relevant := filterByScore(hits, config.MinSimilarityScore)
	log.Debug("retrieval done", "hits", len(hits), "relevant", len(relevant))

	// LLM Generation
	text, err := s.executeLLMStep(processContext, question, formatMatches(relevant), messageHistory)
	if err != nil {
		log.Error("generation failed", "error", err)
		return Answer{}, err
	}

	answer := Answer{
		Text:      text,
		Citations: buildCitations(relevant),
		Cited:     len(relevant) > 0,
	}

	//Background Cache Save
	go func() {
		saveCtx, saveCancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer saveCancel()
		err := s.vectorDB.SaveToCache(saveCtx, utils.GetNewUUID(), queryVector, answer.Text, encodeCitations(answer.Citations))
		if err != nil {
			s.logger.Error("Failed to save to cache", "error", err)
		}
	}()

	return answer, nil
}

func (s *service) IngestDocument(ctx context.Context, job jobModel.Job) jobModel.Job {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("Document_ingestion", time.Since(start)) }()
	return ingest.ProcessDocumentIngestion(ctx, job, s.ingestDeps)
}
