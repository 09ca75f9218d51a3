package rag

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/akolanti/DocAgent/internal/config"
	"github.com/akolanti/DocAgent/internal/domain/commonModels"
	"github.com/akolanti/DocAgent/internal/metrics"
	"github.com/akolanti/DocAgent/internal/rag/vectorDB"
)

func (s *service) executeEmbeddingStep(ctx context.Context, question string) ([]float32, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("embedding", time.Since(start)) }()

	return s.embedder.GetEmbedding(ctx, question)
}

func (s *service) executeCacheCheckStep(ctx context.Context, queryVector []float32) (Answer, bool) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("cache_lookup", time.Since(start)) }()

	cached, found, _ := s.vectorDB.GetCachedAnswer(ctx, queryVector)
	if !found {
		return Answer{}, false
	}
	metrics.IncrementCacheHits()

	citations := decodeCitations(cached.Citations)
	return Answer{
		Text:      cached.Answer,
		Citations: citations,
		Cited:     len(citations) > 0,
		FromCache: true,
	}, true
}

func (s *service) executeVectorSearchStep(ctx context.Context, queryVector []float32) ([]vectorDB.QueryResult, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("vector_search", time.Since(start)) }()

	return s.vectorDB.Search(ctx, queryVector, config.TopKResults)
}

func (s *service) executeLLMStep(ctx context.Context, question string, matches []string, history []string) (string, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_generation", time.Since(start)) }()

	return s.llmProvider.Generate(ctx, question, matches, history)
}

func filterByScore(hits []vectorDB.QueryResult, floor float32) []vectorDB.QueryResult {
	var kept []vectorDB.QueryResult
	for _, h := range hits {
		if h.Score >= floor {
			kept = append(kept, h)
		}
	}
	return kept
}

// formatMatches renders retrieved chunks into prompt context lines. The
// regulation tag rides along so the model can name the standard it cites.
func formatMatches(hits []vectorDB.QueryResult) []string {
	matches := make([]string, 0, len(hits))
	for _, h := range hits {
		line := fmt.Sprintf("Content: %s, DocumentName: %s", h.Content, h.DocName)
		if h.RegulationNumber != "" {
			line = fmt.Sprintf("%s, Regulation: %s (%s)", line, h.RegulationNumber, h.RegulationType)
		}
		matches = append(matches, line)
	}
	return matches
}

func buildCitations(hits []vectorDB.QueryResult) []commonModels.Citation {
	citations := make([]commonModels.Citation, 0, len(hits))
	for _, h := range hits {
		citations = append(citations, commonModels.Citation{
			ChunkId:  h.ChunkId,
			SourceId: h.SourceId,
			DocName:  h.DocName,
			Score:    h.Score,
		})
	}
	return citations
}

// encodeCitations and decodeCitations round citations through the semantic
// cache payload, which only carries strings.
func encodeCitations(citations []commonModels.Citation) []string {
	encoded := make([]string, 0, len(citations))
	for _, c := range citations {
		b, err := json.Marshal(c)
		if err != nil {
			continue
		}
		encoded = append(encoded, string(b))
	}
	return encoded
}

func decodeCitations(encoded []string) []commonModels.Citation {
	var citations []commonModels.Citation
	for _, s := range encoded {
		var c commonModels.Citation
		if err := json.Unmarshal([]byte(s), &c); err != nil {
			continue
		}
		citations = append(citations, c)
	}
	return citations
}
