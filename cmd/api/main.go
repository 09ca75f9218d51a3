package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/akolanti/DocAgent/internal/chunker"
	"github.com/akolanti/DocAgent/internal/classifier"
	"github.com/akolanti/DocAgent/internal/config"
	"github.com/akolanti/DocAgent/internal/data/store"
	jobmodel "github.com/akolanti/DocAgent/internal/domain/jobModel"
	"github.com/akolanti/DocAgent/internal/extractor"
	"github.com/akolanti/DocAgent/internal/handlers"
	"github.com/akolanti/DocAgent/internal/job"
	"github.com/akolanti/DocAgent/internal/rag"
	"github.com/akolanti/DocAgent/internal/rag/embedding/ollamaEmbedding"
	"github.com/akolanti/DocAgent/internal/rag/ingest"
	"github.com/akolanti/DocAgent/internal/rag/llm/ollama"
	"github.com/akolanti/DocAgent/internal/rag/vectorDB/qdrantDB"
	"github.com/akolanti/DocAgent/internal/server"
	"github.com/akolanti/DocAgent/internal/worker"
	"github.com/akolanti/DocAgent/pkg/logger_i"
)

var (
	listenAddr        string
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	//init buffered job channel
	jobChannel := make(chan jobmodel.Job, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//init job service and stores
	serviceConfig := job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
	}
	logger.Info("Starting job service")

	// nil checks happen on the concrete pointers, a typed nil inside the
	// interface field would slip past them
	jobStore := store.GetRedisJobStore(serviceContext)
	messageStore := store.GetRedisMessageStore(serviceContext)
	documentStore := store.GetRedisDocumentStore(serviceContext)
	if jobStore == nil || messageStore == nil || documentStore == nil {
		logger.Error("Redis stores are offline, falling back to in-memory stores")
		serviceConfig.JobStore = store.InitInMemoryJobStore()
		serviceConfig.MessageStore = store.InitMessageStore()
		serviceConfig.DocumentStore = store.InitDocumentStore()
	} else {
		serviceConfig.JobStore = jobStore
		serviceConfig.MessageStore = messageStore
		serviceConfig.DocumentStore = documentStore
	}
	service := job.InitJobService(serviceConfig)

	vectorDatabase := qdrantDB.GetQdrantClient(serviceContext)
	embeddingService := ollamaEmbedding.GetOllamaEmbeddingClient(config.OllamaBaseURL, config.EmbeddingModelName)
	llmProvider := ollama.GetOllamaClient(config.OllamaBaseURL, config.ChatModelName)

	if vectorDatabase == nil || embeddingService == nil || llmProvider == nil {
		logger.Error("One or more external services failed to initialize. Shutting down.")
		logger.Debug("Available services : ", "VectorDB", vectorDatabase != nil, "EmbeddingService", embeddingService != nil, "LLMProvider", llmProvider != nil)
		return
	}

	ingestDeps := ingest.Dependencies{
		Embedder:   embeddingService,
		VectorDB:   vectorDatabase,
		Extractor:  extractor.New(),
		Scraper:    extractor.NewScraper(config.ScrapeBaseURL, config.ScrapeFetchTimeout),
		Classifier: classifier.New(classifier.OSHARules()),
		Documents:  serviceConfig.DocumentStore,
		ChunkCfg:   chunker.Config{ChunkSize: config.ChunkSize, Overlap: config.ChunkOverlap},
	}
	ragService := rag.NewService(llmProvider, ingestDeps)

	handlers.InitJobHandler(service, ragService, vectorDatabase, llmProvider)

	//init worker pool
	worker.InitServices(service, ragService)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}
