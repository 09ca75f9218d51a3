package api

import "time"

type JobExternalStatus string

const (
	JobStatusError JobExternalStatus = "Error"
)

type JobResponse struct {
	Id        string            `json:"id" example:"job_cz109"`
	Result    Result            `json:"result"`
	Error     *JobOutgoingError `json:"error,omitempty"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time,omitempty"`
}

type JobOutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Kind    string `json:"kind,omitempty" example:"ParseFailure"`
	Message string `json:"message" example:"Job not found"`
	Retry   bool   `json:"can_retry" example:"false"`
}

// IngestResult reports what an ingestion job stored.
type IngestResult struct {
	SourceId     string `json:"source_id"`
	ChunksStored int    `json:"chunks_stored"`
}

type Result struct {
	Status string        `json:"status"`
	Ingest *IngestResult `json:"ingest_result,omitempty"`
}

type InitJobResponse struct {
	Id        string `json:"id"`
	StatusURL string `json:"status_url"`
}

// FetchResponse carries one job per requested page so batch outcomes stay
// independent.
type FetchResponse struct {
	Jobs []InitJobResponse `json:"jobs"`
}

type CitationResponse struct {
	ChunkId  string  `json:"chunk_id"`
	SourceId string  `json:"source_id"`
	DocName  string  `json:"doc_name"`
	Score    float32 `json:"score"`
}

type ChatResponse struct {
	ChatId    string             `json:"chat_id"`
	Answer    string             `json:"answer"`
	Citations []CitationResponse `json:"citations,omitempty"`
	Cited     bool               `json:"cited"`
	FromCache bool               `json:"from_cache,omitempty"`
}

type DocumentResponse struct {
	SourceId   string    `json:"source_id"`
	Name       string    `json:"name"`
	ChunkCount int       `json:"chunk_count"`
	IngestedAt time.Time `json:"ingested_at"`
}

type DocumentListResponse struct {
	Documents []DocumentResponse `json:"documents"`
}

type HealthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
}

// requests---------------------

type ChatRequest struct {
	Message string `json:"message" validate:"required" `
	ChatID  string `json:"chatID,omitempty" `
}

type FetchRequest struct {
	Paths []string `json:"paths" validate:"required"`
}

type ClearChatRequest struct {
	ChatID string `json:"chatID" validate:"required"`
}

type DeleteDocumentRequest struct {
	SourceId string `json:"source_id" validate:"required"`
}
