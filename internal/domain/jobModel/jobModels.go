package jobModel

import (
	"context"
	"time"

	"github.com/akolanti/DocAgent/internal/domain/commonModels"
)

type JobStatus string
type InternalStatus string
type JobType string

const (
	JobStatusQueued   JobStatus = "QUEUED"
	JobStatusRunning  JobStatus = "RUNNING"
	JobStatusComplete JobStatus = "COMPLETE"
	JobStatusError    JobStatus = "Error"

	IngestInit       InternalStatus = "IngestInit"
	IngestExtracting InternalStatus = "IngestExtracting"
	IngestChunking   InternalStatus = "IngestChunking"
	IngestEmbedding  InternalStatus = "IngestEmbedding"
	IngestStoring    InternalStatus = "IngestStoring"
	Error            InternalStatus = "Error"
	Complete         InternalStatus = "Complete"

	//JobTypeUpload ingests a staged PDF upload, JobTypeFetch scrapes a
	//regulation page. One job per source so batch outcomes stay independent.
	JobTypeUpload JobType = "Upload"
	JobTypeFetch  JobType = "Fetch"
)

type Job struct {
	Id          string         `json:"id"`
	TraceId     string         `json:"trace_id"`
	JobType     JobType        `json:"job_type"`
	JobPayload  JobPayload     `json:"job_payload"`
	Error       JobError       `json:"error,omitempty"`
	CreatedTime time.Time      `json:"created_time"`
	EndTime     time.Time      `json:"end_time,omitempty"`
	Status      JobStatus      `json:"status"`
	CurrentStep InternalStatus `json:"current_step"`
}

type JobError struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
	Retry   bool   `json:"retry"`
}

type JobPayload struct {
	//upload jobs
	IngestFileName string `json:"ingest_file_name,omitempty"`
	IngestURL      string `json:"ingest_url,omitempty"`

	//fetch jobs
	FetchPath string `json:"fetch_path,omitempty"`

	//result
	SourceId     string `json:"source_id,omitempty"`
	ChunksStored int    `json:"chunks_stored,omitempty"`
}

// ChatTurn is one question/answer exchange within a session.
type ChatTurn struct {
	Question  string   `json:"question"`
	Answer    string   `json:"answer"`
	Citations []string `json:"citations,omitempty"`
}

type JobStore interface {
	GetJob(ctx context.Context, jobId string) (Job, bool)
	SaveJob(ctx context.Context, job Job) error
	DeleteJob(ctx context.Context, jobID string)
}

type MessageStore interface {
	ValidateChatId(ctx context.Context, id string) bool
	InitNewChat(ctx context.Context, id string) error
	TrySaveChat(ctx context.Context, id string, turn ChatTurn) error
	GetMessageHistory(ctx context.Context, chatId string) ([]string, error)
	ClearChat(ctx context.Context, id string) error
}

type DocumentStore interface {
	RegisterDocument(ctx context.Context, info commonModels.DocumentInfo) error
	ListDocuments(ctx context.Context) ([]commonModels.DocumentInfo, error)
	RemoveDocument(ctx context.Context, sourceId string) error
}
