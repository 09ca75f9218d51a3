package adapter

import (
	"fmt"
	"time"

	"github.com/akolanti/DocAgent/internal/api"
	"github.com/akolanti/DocAgent/internal/domain/commonModels"
	"github.com/akolanti/DocAgent/internal/domain/jobModel"
	"github.com/akolanti/DocAgent/internal/rag"
)

func ToInitJobResponse(id string) api.InitJobResponse {
	return api.InitJobResponse{
		Id:        id,
		StatusURL: fmt.Sprintf("status/%s", id),
	}
}

func ToAPIResponse(job jobModel.Job) api.JobResponse {

	var errorPtr *api.JobOutgoingError
	if job.Error.Message != "" || job.Error.Code != 0 {
		errorPtr = &api.JobOutgoingError{
			Code:    job.Error.Code,
			Kind:    job.Error.Kind,
			Message: job.Error.Message,
			Retry:   job.Error.Retry,
		}
	}

	result := api.Result{
		Status: string(job.Status),
		Ingest: toIngestResult(job.JobPayload),
	}

	return api.JobResponse{
		Id:        job.Id,
		StartTime: job.CreatedTime,
		EndTime:   job.EndTime,
		Error:     errorPtr,
		Result:    result,
	}
}

func toIngestResult(payload jobModel.JobPayload) *api.IngestResult {
	if payload.SourceId == "" && payload.ChunksStored == 0 {
		return nil
	}

	return &api.IngestResult{
		SourceId:     payload.SourceId,
		ChunksStored: payload.ChunksStored,
	}
}

func ToChatResponse(chatId string, answer rag.Answer) api.ChatResponse {
	citations := make([]api.CitationResponse, 0, len(answer.Citations))
	for _, c := range answer.Citations {
		citations = append(citations, api.CitationResponse{
			ChunkId:  c.ChunkId,
			SourceId: c.SourceId,
			DocName:  c.DocName,
			Score:    c.Score,
		})
	}

	return api.ChatResponse{
		ChatId:    chatId,
		Answer:    answer.Text,
		Citations: citations,
		Cited:     answer.Cited,
		FromCache: answer.FromCache,
	}
}

func ToDocumentListResponse(docs []commonModels.DocumentInfo) api.DocumentListResponse {
	out := make([]api.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, api.DocumentResponse{
			SourceId:   d.SourceId,
			Name:       d.Name,
			ChunkCount: d.ChunkCount,
			IngestedAt: d.IngestedAt,
		})
	}
	return api.DocumentListResponse{Documents: out}
}

func BadRequest(id string, error string, code int) api.JobResponse {
	return api.JobResponse{
		Id:        id,
		StartTime: time.Time{},
		EndTime:   time.Time{},
		Result: api.Result{
			Status: string(api.JobStatusError),
		},
		Error: &api.JobOutgoingError{
			Code:    code,
			Message: error,
			Retry:   false,
		},
	}
}
