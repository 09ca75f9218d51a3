package handlers

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/akolanti/DocAgent/internal/api"
	"github.com/akolanti/DocAgent/internal/config"
	"github.com/akolanti/DocAgent/internal/domain/jobModel"
	"github.com/akolanti/DocAgent/internal/job"
	"github.com/akolanti/DocAgent/internal/metrics"
	"github.com/akolanti/DocAgent/internal/rag"
	"github.com/akolanti/DocAgent/internal/rag/llm"
	"github.com/akolanti/DocAgent/internal/rag/vectorDB"
	"github.com/akolanti/DocAgent/pkg/logger_i"
)

var (
	handlerInstance *JobHandler //private singleton
	once            sync.Once
	logJH           *logger_i.Logger
)

type JobHandler struct {
	service    *job.Service
	ragService rag.Service
	vectorDB   vectorDB.DataProcessor
	llm        llm.Provider
}

func InitJobHandler(jobService *job.Service, ragService rag.Service, dataProcessor vectorDB.DataProcessor, provider llm.Provider) {
	once.Do(func() {
		handlerInstance = &JobHandler{
			service:    jobService,
			ragService: ragService,
			vectorDB:   dataProcessor,
			llm:        provider,
		}

		logJH = logger_i.NewLogger("JobHandler")
		logRH = logger_i.NewLogger("RequestHandler")
		logJH.Info("Starting job handler")
	})

}

func CreateIngestJob(newJob newJobData) {
	logJH.With("traceId", newJob.traceId, "job id", newJob.id).Info("To create new ingest job")
	handlerInstance.pushToJobChannel(newJob)
}

func GetJobStatus(id string, traceId string) (result jobModel.Job, isFound bool) {
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	if handlerInstance != nil {
		return handlerInstance.service.JobStore.GetJob(ctxC, id)
	}
	return result, false
}

func ValidateChatRequest(chatReq api.ChatRequest) bool {
	if handlerInstance == nil {
		return false
	}
	logJH.Debug("Validating chat request", "chatId :", chatReq.ChatID)
	if chatReq.Message == "" {
		return false
	}
	if chatReq.ChatID == "" {
		return true
	}
	return handlerInstance.service.MessageStore.ValidateChatId(context.Background(), chatReq.ChatID)
}

// private methods
func (h *JobHandler) pushToJobChannel(newJob newJobData) {

	_job := jobModel.Job{}
	_job.Id = newJob.id
	_job.CreatedTime = time.Now()
	_job.TraceId = newJob.traceId
	_job.Status = jobModel.JobStatusQueued
	_job.JobType = newJob.jobType
	_job.CurrentStep = jobModel.IngestInit

	if newJob.jobType == jobModel.JobTypeUpload {
		_job.JobPayload.IngestFileName = newJob.documentName
		_job.JobPayload.IngestURL = newJob.documentSource
	} else {
		_job.JobPayload.FetchPath = newJob.fetchPath
	}

	//metrics
	metrics.IncrementJobsInQueue()

	h.service.JobChannel <- _job //blocking send to prevent the system from being overwhelmed
	logJH.Info("Created new job")

	//ingestion involves batch embedding calls which take time, so every
	//ingest job asks the dispatcher for another worker. Idle workers retire
	//on their own, so the pool shrinks back to one between bursts.
	accurateCount := atomic.AddInt64(&h.service.RequestCount, 1)
	metrics.StartDispatcherSignalCount() //metrics
	logJH.Debug("Request count", "count", accurateCount)
	h.service.DispatcherChannel <- true
}

func (h *JobHandler) initNewChat(chatId string, traceId string) {
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	err := h.service.MessageStore.InitNewChat(ctxC, chatId)
	if err != nil {
		logJH.Error("Error initiating new chat", "chatId", chatId, "error", err)
		return
	}
}
