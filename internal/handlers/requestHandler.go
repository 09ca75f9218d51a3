package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/akolanti/DocAgent/internal/adapter"
	"github.com/akolanti/DocAgent/internal/adapter/utils"
	"github.com/akolanti/DocAgent/internal/api"
	"github.com/akolanti/DocAgent/internal/config"
	"github.com/akolanti/DocAgent/internal/domain/faults"
	"github.com/akolanti/DocAgent/internal/domain/jobModel"
	"github.com/akolanti/DocAgent/pkg/logger_i"
)

var logRH *logger_i.Logger

type newJobData struct {
	id             string
	traceId        string
	jobType        jobModel.JobType
	documentName   string
	documentSource string
	fetchPath      string
}

func GetHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// ChatHandler godoc
// @Summary      Ask a question
// @Description  Answers a question against the ingested documents. The answer is generated inline, with citations when retrieved chunks were relevant. Omitting chatID starts a new session.
// @Tags         Messaging
// @Accept       json
// @Produce      json
// @Param        request  body      api.ChatRequest  true  "Question and optional Chat ID"
// @Success      200      {object}  api.ChatResponse "Generated answer with citations"
// @Failure      400      {object}  api.JobResponse  "Invalid request data or chat ID"
// @Failure      503      {object}  api.JobResponse  "Model runtime unreachable"
// @Router       /chat [post]
func ChatHandler(w http.ResponseWriter, request *http.Request) {

	if !validateContext(request.Context()) {
		logRH.Warn("Invalid Context by request ", request.RemoteAddr)
		return
	}

	var requestData api.ChatRequest
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			logRH.Error("Couldn't close the Chat handler reader :", "error", err)
		}
	}(request.Body)
	if err := json.NewDecoder(request.Body).Decode(&requestData); err != nil || !ValidateChatRequest(requestData) {
		logRH.Warn("Bad Chat Request: ", "error:", err, "request data:", requestData)
		WriteErrorResponse(w, http.StatusBadRequest, requestData.ChatID, "Bad Request")
		return
	}

	ctx := request.Context()
	traceId := ctx.Value(config.TRACE_ID_KEY).(string)

	chatId := requestData.ChatID
	if chatId == "" {
		chatId = utils.GetNewUUID()
		logRH.Debug("New Chat request : ", "chatID:", chatId)
		handlerInstance.initNewChat(chatId, traceId)
	}

	history, err := handlerInstance.service.MessageStore.GetMessageHistory(ctx, chatId)
	if err != nil {
		logRH.Error("Failed to get message history", "err", err)
	}

	answer, err := handlerInstance.ragService.Answer(ctx, requestData.Message, history)
	if err != nil {
		WriteErrorResponse(w, statusForFault(err), chatId, err.Error())
		return
	}

	turn := jobModel.ChatTurn{Question: requestData.Message, Answer: answer.Text}
	for _, c := range answer.Citations {
		turn.Citations = append(turn.Citations, c.ChunkId)
	}
	if err := handlerInstance.service.MessageStore.TrySaveChat(ctx, chatId, turn); err != nil {
		logRH.Error("Failed to save chat history", "err", err)
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToChatResponse(chatId, answer))
}

// ClearChatHandler godoc
// @Summary      Clear a chat session
// @Description  Drops a session's stored turns. The chat id becomes invalid afterwards, a new session starts on the next question without one.
// @Tags         Messaging
// @Accept       json
// @Produce      json
// @Param        request  body  api.ClearChatRequest  true  "Chat ID to clear"
// @Success      204  "Cleared"
// @Failure      400  {object}  api.JobResponse "Missing chat ID"
// @Failure      404  {object}  api.JobResponse "Unknown chat ID"
// @Router       /chat/clear [post]
func ClearChatHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	var requestData api.ClearChatRequest
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil || requestData.ChatID == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "", "chatID is required")
		return
	}

	if !handlerInstance.service.MessageStore.ValidateChatId(r.Context(), requestData.ChatID) {
		WriteErrorResponse(w, http.StatusNotFound, requestData.ChatID, "Chat not found")
		return
	}

	if err := handlerInstance.service.MessageStore.ClearChat(r.Context(), requestData.ChatID); err != nil {
		logRH.Error("Failed to clear chat", "chatId", requestData.ChatID, "err", err)
		WriteErrorResponse(w, http.StatusBadGateway, requestData.ChatID, "Could not clear chat session")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetStatusHandler godoc
// @Summary      Get job status
// @Description  Retrieves the current status of an ingestion job using its ID.
// @Tags         Job Status
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Job ID "
// @Success      200  {object}  api.JobResponse   "Successful retrieval of job status"
// @Failure      404  {object}  api.JobResponse   "Job not found (returns Error object within JobResponse)"
// @Router       /status/{id} [get]
func GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		idString := utils.GetChiURLParam(r, "id")
		result, isFound := validateId(idString, r.Context().Value(config.TRACE_ID_KEY).(string))

		logRH.Debug("Get Status Request:", "URL path", r.URL.Path)
		if !isFound {
			WriteErrorResponse(w, http.StatusNotFound, idString, "Job not found")
			return
		}

		writeJsonResponse(w, http.StatusOK, adapter.ToAPIResponse(result))
	}
}

// PostIngestHandler handles PDF uploads for ingestion.
// @Summary      Upload a document for ingestion
// @Description  Receives a PDF via multipart/form-data, stages it, and queues an ingestion job.
// @Tags         Ingestion
// @Accept       multipart/form-data
// @Produce      json
// @Param        document  formData  file  true  "The PDF file to upload"
// @Success      202  {object}  api.InitJobResponse "Accepted - returns job id and status URL"
// @Failure      400  {object}  api.JobResponse "Bad Request - Missing file, wrong type or file too large"
// @Failure      500  {object}  api.JobResponse "Internal Server Error - Storage or Write Error"
// @Router       /ingest [post]
func PostIngestHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	targetDir, errString := getTargetDirectory()
	if errString != "" {
		logRH.Error("Couldn't get target directory :", "err", errString)
		WriteErrorResponse(w, http.StatusInternalServerError, "", errString)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadSize)
	err := r.ParseMultipartForm(config.MaxUploadSize)
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "", "File too large or bad request")
		return
	}

	fileReader, fileMetadata, err := r.FormFile("document")
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "", "Could not retrieve file")
		return
	}
	defer fileReader.Close()

	if !strings.EqualFold(filepath.Ext(fileMetadata.Filename), ".pdf") {
		WriteErrorResponse(w, http.StatusBadRequest, fileMetadata.Filename, "Only PDF uploads are supported")
		return
	}

	filename := fmt.Sprintf("%d-%s", time.Now().UnixNano(), fileMetadata.Filename)
	tempFilePath := filepath.Join(targetDir, filename)
	destinationFileWriter, err := os.Create(tempFilePath)
	if err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, fileMetadata.Filename, "Storage error")
		return
	}
	defer destinationFileWriter.Close()

	if _, err := io.Copy(destinationFileWriter, fileReader); err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, fileMetadata.Filename, "Write error")
		return
	}

	newJob := newJobData{
		id:             utils.GetNewUUID(),
		traceId:        r.Context().Value(config.TRACE_ID_KEY).(string),
		jobType:        jobModel.JobTypeUpload,
		documentName:   fileMetadata.Filename,
		documentSource: tempFilePath,
	}
	CreateIngestJob(newJob)
	writeJsonResponse(w, http.StatusAccepted, adapter.ToInitJobResponse(newJob.id))
}

// PostFetchHandler queues scrape jobs for regulation pages.
// @Summary      Ingest regulation pages
// @Description  Queues one ingestion job per requested page path. Paths are resolved against the configured regulations site.
// @Tags         Ingestion
// @Accept       json
// @Produce      json
// @Param        request  body      api.FetchRequest   true  "Page paths to fetch"
// @Success      202      {object}  api.FetchResponse  "One job per path"
// @Failure      400      {object}  api.JobResponse    "Missing or empty path list"
// @Router       /ingest/osha [post]
func PostFetchHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	var requestData api.FetchRequest
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil || len(requestData.Paths) == 0 {
		WriteErrorResponse(w, http.StatusBadRequest, "", "paths is required")
		return
	}

	traceId := r.Context().Value(config.TRACE_ID_KEY).(string)
	var response api.FetchResponse
	for _, path := range requestData.Paths {
		if strings.TrimSpace(path) == "" {
			continue
		}
		newJob := newJobData{
			id:        utils.GetNewUUID(),
			traceId:   traceId,
			jobType:   jobModel.JobTypeFetch,
			fetchPath: path,
		}
		CreateIngestJob(newJob)
		response.Jobs = append(response.Jobs, adapter.ToInitJobResponse(newJob.id))
	}

	if len(response.Jobs) == 0 {
		WriteErrorResponse(w, http.StatusBadRequest, "", "no usable paths in request")
		return
	}
	writeJsonResponse(w, http.StatusAccepted, response)
}

func statusForFault(err error) int {
	switch faults.KindOf(err) {
	case faults.ValidationError:
		return http.StatusBadRequest
	case faults.ModelUnavailable:
		return http.StatusServiceUnavailable
	case faults.StoreFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
