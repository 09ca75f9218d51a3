package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

const (
	IS_PROD        = false
	LOG_LEVEL_PROD = slog.LevelInfo
	TRACE_ID_KEY   = "traceId"

	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	//auth - supply a real token in deployment, bypass is for local dev only
	NoAuthBypass = true
	AuthToken    = ""

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 60 * time.Second //chat answers are generated inline
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//ingest job buffer limit
	BufferLimit = 100

	//worker pool
	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute

	//uploads
	MaxUploadSize   int64 = 100 << 20 //100MB documented limit
	UploadDirectory       = "temporary_data"

	//vectorDB
	ChunkCollectionName                  = "document-chunks"
	CacheCollectionName                  = "semantic-cache"
	EmbeddingOutputDimensionality uint64 = 768 //nomic-embed-text
	QdrantHost                           = "127.0.0.1"
	QdrantGrpcPort                       = 6334
	QdrantUseTLS                         = false
	QdrantPoolSize                       = 1

	//retrieval
	TopKResults           uint64  = 3
	MinSimilarityScore    float32 = 0.35 //below this a chunk is never cited
	CacheSimilarityCutoff float32 = 0.97

	//local model runtime - ollama exposes an OpenAI compatible /v1 surface
	OllamaBaseURL      = "http://127.0.0.1:11434/v1"
	ChatModelName      = "gemma3:4b"
	EmbeddingModelName = "nomic-embed-text"
	ModelCallTimeout   = 30 * time.Second
	ModelRetryCount    = 2

	ModelContext = "You are a helpful assistant that answers questions using the provided document context and your general knowledge. Use the document context when it is relevant. Be concise and helpful."

	//chunking - carried over from the original splitter settings
	ChunkSize    = 1000
	ChunkOverlap = 200

	//scraper
	ScrapeBaseURL      = "https://www.osha.gov"
	ScrapeFetchTimeout = 10 * time.Second

	//message history window per chat session
	MessageHistoryWindow = 10

	//pooled http transport
	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//redis
	redisHost     = "127.0.0.1"
	redisPort     = "6379"
	RedisAddr     = redisHost + ":" + redisPort
	RedisPassword = ""

	//redis has 16 DBs we can use
	RedisJobStore      = 0
	RedisMessageStore  = 1
	RedisDocumentStore = 2

	//redis timeouts
	RedisJobStoreTTL     = 24 * time.Hour
	RedisMessageStoreTTL = 24 * time.Hour
)

// GetEnv returns an environment override or the supplied fallback.
func GetEnv(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
