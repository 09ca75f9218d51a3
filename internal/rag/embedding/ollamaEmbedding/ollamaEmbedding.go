package ollamaEmbedding

import (
	"context"
	"sync"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/akolanti/DocAgent/internal/config"
	"github.com/akolanti/DocAgent/internal/domain/faults"
	"github.com/akolanti/DocAgent/internal/rag/embedding"
	"github.com/akolanti/DocAgent/pkg/logger_i"
)

var logger *logger_i.Logger
var once sync.Once
var embeddingClient *client

type client struct {
	api   openai.Client
	model string
}

// GetOllamaEmbeddingClient talks to a local Ollama daemon through its OpenAI
// compatible /v1 surface. The api key is ignored by Ollama but the client
// library requires one.
func GetOllamaEmbeddingClient(baseURL string, modelName string) embedding.Embedder {
	once.Do(func() {
		logger = logger_i.NewLogger("ollama_embedding")
		api := openai.NewClient(
			option.WithBaseURL(baseURL),
			option.WithAPIKey("ollama"),
		)
		embeddingClient = &client{api: api, model: modelName}
		logger.Info("Ollama embedding client created", "model", modelName)
	})

	if embeddingClient == nil {
		return nil
	}
	return &client{api: embeddingClient.api, model: embeddingClient.model}
}

func (c *client) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	callCtx, cancel := context.WithTimeout(ctx, config.ModelCallTimeout)
	defer cancel()

	res, err := c.api.Embeddings.New(callCtx, openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(c.model),
		Input: openai.EmbeddingNewParamsInputUnion{OfString: openai.String(query)},
	})
	if err != nil {
		log.Error("Error getting embedding from Ollama", "error", err.Error())
		return nil, faults.Wrap(faults.ModelUnavailable, err, "embedding model %s", c.model)
	}
	if len(res.Data) == 0 {
		return nil, faults.New(faults.ModelUnavailable, "embedding model %s returned no vectors", c.model)
	}

	return toFloat32(res.Data[0].Embedding), nil
}

func (c *client) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	if len(chunks) == 0 {
		return nil, nil
	}

	callCtx, cancel := context.WithTimeout(ctx, config.ModelCallTimeout)
	defer cancel()

	res, err := c.api.Embeddings.New(callCtx, openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(c.model),
		Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: chunks},
	})
	if err != nil {
		log.Error("Error getting batch embeddings from Ollama", "error", err.Error(), "batch", len(chunks))
		return nil, faults.Wrap(faults.ModelUnavailable, err, "batch embedding of %d chunks", len(chunks))
	}
	if len(res.Data) != len(chunks) {
		return nil, faults.New(faults.ModelUnavailable, "asked for %d vectors, got %d", len(chunks), len(res.Data))
	}

	vectors := make([][]float32, len(res.Data))
	for i, d := range res.Data {
		vectors[i] = toFloat32(d.Embedding)
	}
	return vectors, nil
}

func (c *client) Healthy(ctx context.Context) error {
	_, err := c.api.Models.List(ctx)
	if err != nil {
		return faults.Wrap(faults.ModelUnavailable, err, "ollama model list")
	}
	return nil
}

func toFloat32(values []float64) []float32 {
	out := make([]float32, len(values))
	for i, v := range values {
		out[i] = float32(v)
	}
	return out
}
