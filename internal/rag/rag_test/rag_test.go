package rag_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/akolanti/DocAgent/internal/chunker"
	"github.com/akolanti/DocAgent/internal/classifier"
	"github.com/akolanti/DocAgent/internal/config"
	"github.com/akolanti/DocAgent/internal/domain/commonModels"
	"github.com/akolanti/DocAgent/internal/domain/jobModel"
	"github.com/akolanti/DocAgent/internal/extractor"
	"github.com/akolanti/DocAgent/internal/rag"
	"github.com/akolanti/DocAgent/internal/rag/ingest"
	"github.com/akolanti/DocAgent/internal/rag/vectorDB"
)

type stubPDFBackend struct {
	segments []commonModels.Segment
	err      error
}

func (b *stubPDFBackend) Name() string { return "stub" }
func (b *stubPDFBackend) Extract(path string, sourceId string, cfg extractor.Config) ([]commonModels.Segment, error) {
	return b.segments, b.err
}

func newTestService(v *MockVectorDB, l *MockLLM, e *MockEmbedder, docs *MockDocumentStore, backend extractor.PDFBackend) rag.Service {
	deps := ingest.Dependencies{
		Embedder:   e,
		VectorDB:   v,
		Extractor:  extractor.NewWithBackends(backend),
		Classifier: classifier.New(classifier.OSHARules()),
		Documents:  docs,
		ChunkCfg:   chunker.Config{ChunkSize: 1000, Overlap: 200},
	}
	return rag.NewService(l, deps)
}

func TestAnswer_Scenarios(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(e *MockEmbedder, v *MockVectorDB, l *MockLLM)
		expectedAnswer string
		expectCited    bool
		expectCache    bool
		expectErr      bool
	}{
		{
			name: "Success_Full_Flow",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				l.OnGenerate = func(ctx context.Context, q string, m []string, h []string) (string, error) {
					return "final answer", nil
				}
			},
			expectedAnswer: "final answer",
			expectCited:    true,
		},
		{
			name: "Success_Cache_Hit",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				v.OnGetCachedAnswer = func(ctx context.Context, emb []float32) (vectorDB.CachedAnswer, bool, error) {
					return vectorDB.CachedAnswer{Answer: "cached answer"}, true, nil
				}
				l.OnGenerate = func(ctx context.Context, q string, m []string, h []string) (string, error) {
					t.Fatal("llm called despite cache hit")
					return "", nil
				}
			},
			expectedAnswer: "cached answer",
			expectCache:    true,
		},
		{
			name: "Uncited_When_All_Hits_Below_Floor",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				v.OnSearch = func(ctx context.Context, vec []float32, k uint64) ([]vectorDB.QueryResult, error) {
					return []vectorDB.QueryResult{{ChunkId: "weak", Content: "barely related", Score: 0.05}}, nil
				}
				l.OnGenerate = func(ctx context.Context, q string, m []string, h []string) (string, error) {
					if len(m) != 0 {
						t.Errorf("weak hits reached the prompt: %v", m)
					}
					return "general knowledge answer", nil
				}
			},
			expectedAnswer: "general knowledge answer",
			expectCited:    false,
		},
		{
			name: "Failure_Embedding",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				e.OnGetEmbedding = func(ctx context.Context, text string) ([]float32, error) {
					return nil, errors.New("model offline")
				}
			},
			expectErr: true,
		},
		{
			name: "Failure_Vector_Search",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				v.OnSearch = func(ctx context.Context, vec []float32, k uint64) ([]vectorDB.QueryResult, error) {
					return nil, errors.New("db timeout")
				}
			},
			expectErr: true,
		},
		{
			name: "Failure_LLM_Generation",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				l.OnGenerate = func(ctx context.Context, q string, m []string, h []string) (string, error) {
					return "", errors.New("provider down")
				}
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mEmbed := &MockEmbedder{}
			mVec := &MockVectorDB{}
			mLLM := &MockLLM{}

			tt.setupMocks(mEmbed, mVec, mLLM)

			s := newTestService(mVec, mLLM, mEmbed, &MockDocumentStore{}, &stubPDFBackend{})

			ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
			answer, err := s.Answer(ctx, "test question", nil)

			if tt.expectErr {
				if err == nil {
					t.Fatal("expected error, got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Answer failed: %v", err)
			}
			if answer.Text != tt.expectedAnswer {
				t.Errorf("Answer got %q, want %q", answer.Text, tt.expectedAnswer)
			}
			if answer.FromCache != tt.expectCache {
				t.Errorf("FromCache got %v, want %v", answer.FromCache, tt.expectCache)
			}
			if !tt.expectCache && answer.Cited != tt.expectCited {
				t.Errorf("Cited got %v, want %v", answer.Cited, tt.expectCited)
			}
		})
	}
}

func TestAnswer_CitationsCarryChunkMetadata(t *testing.T) {
	mVec := &MockVectorDB{
		OnSearch: func(ctx context.Context, vec []float32, k uint64) ([]vectorDB.QueryResult, error) {
			return []vectorDB.QueryResult{
				{ChunkId: "c-1", Content: "ladderway openings", SourceId: "safety.pdf", DocName: "safety.pdf", Score: 0.88},
				{ChunkId: "c-2", Content: "hatchway covers", SourceId: "safety.pdf", DocName: "safety.pdf", Score: 0.51},
			}, nil
		},
	}
	s := newTestService(mVec, &MockLLM{}, &MockEmbedder{}, &MockDocumentStore{}, &stubPDFBackend{})

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
	answer, err := s.Answer(ctx, "what about floor openings", nil)
	if err != nil {
		t.Fatalf("Answer failed: %v", err)
	}
	if len(answer.Citations) != 2 {
		t.Fatalf("citations = %d, want 2", len(answer.Citations))
	}
	if answer.Citations[0].ChunkId != "c-1" || answer.Citations[0].Score != 0.88 {
		t.Errorf("first citation wrong: %+v", answer.Citations[0])
	}
	if !answer.Cited {
		t.Error("answer should be cited")
	}
}

func TestIngestDocument_Scenarios(t *testing.T) {
	segments := []commonModels.Segment{
		{Text: "1910.23 ladderway floor openings shall be guarded", Kind: commonModels.SegmentPage, Position: 1, SourceId: "safety.pdf"},
	}

	tests := []struct {
		name           string
		job            jobModel.Job
		backend        *stubPDFBackend
		setupMocks     func(e *MockEmbedder, v *MockVectorDB)
		expectedStatus jobModel.JobStatus
		expectedChunks int
	}{
		{
			name: "Upload_Success",
			job: jobModel.Job{
				Id:      "ingest-job-1",
				JobType: jobModel.JobTypeUpload,
				JobPayload: jobModel.JobPayload{
					IngestFileName: "safety.pdf",
					IngestURL:      "temporary_data/safety.pdf",
				},
			},
			backend:        &stubPDFBackend{segments: segments},
			setupMocks:     func(e *MockEmbedder, v *MockVectorDB) {},
			expectedStatus: jobModel.JobStatusComplete,
			expectedChunks: 1,
		},
		{
			name: "Upload_Rejects_NonPDF",
			job: jobModel.Job{
				Id:      "ingest-job-2",
				JobType: jobModel.JobTypeUpload,
				JobPayload: jobModel.JobPayload{
					IngestFileName: "notes.txt",
					IngestURL:      "temporary_data/notes.txt",
				},
			},
			backend:        &stubPDFBackend{segments: segments},
			setupMocks:     func(e *MockEmbedder, v *MockVectorDB) {},
			expectedStatus: jobModel.JobStatusError,
		},
		{
			name: "Failure_Collection_Creation",
			job: jobModel.Job{
				Id:      "ingest-job-3",
				JobType: jobModel.JobTypeUpload,
				JobPayload: jobModel.JobPayload{
					IngestFileName: "safety.pdf",
					IngestURL:      "temporary_data/safety.pdf",
				},
			},
			backend: &stubPDFBackend{segments: segments},
			setupMocks: func(e *MockEmbedder, v *MockVectorDB) {
				v.OnCreateCollection = func(ctx context.Context, name string) error {
					return errors.New("connection refused")
				}
			},
			expectedStatus: jobModel.JobStatusError,
		},
		{
			name: "Failure_Batch_Upsert",
			job: jobModel.Job{
				Id:      "ingest-job-4",
				JobType: jobModel.JobTypeUpload,
				JobPayload: jobModel.JobPayload{
					IngestFileName: "safety.pdf",
					IngestURL:      "temporary_data/safety.pdf",
				},
			},
			backend: &stubPDFBackend{segments: segments},
			setupMocks: func(e *MockEmbedder, v *MockVectorDB) {
				v.OnUpsertBatch = func(ctx context.Context, coll string, chunks []commonModels.DocChunk, vectors [][]float32) error {
					return errors.New("disk full")
				}
			},
			expectedStatus: jobModel.JobStatusError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mEmbed := &MockEmbedder{}
			mVec := &MockVectorDB{}
			docs := &MockDocumentStore{}

			tt.setupMocks(mEmbed, mVec)

			s := newTestService(mVec, &MockLLM{}, mEmbed, docs, tt.backend)

			ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "ingest-trace")
			result := s.IngestDocument(ctx, tt.job)

			if result.Status != tt.expectedStatus {
				t.Errorf("Status got %v, want %v", result.Status, tt.expectedStatus)
			}
			if tt.expectedStatus == jobModel.JobStatusComplete {
				if result.JobPayload.ChunksStored != tt.expectedChunks {
					t.Errorf("ChunksStored got %d, want %d", result.JobPayload.ChunksStored, tt.expectedChunks)
				}
				if len(docs.Registered) != 1 {
					t.Errorf("registered documents = %d, want 1", len(docs.Registered))
				}
			}
		})
	}
}

func TestIngestDocument_RemovesStagedFileOnEveryExit(t *testing.T) {
	stageFile := func(t *testing.T, name string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), name)
		if err := os.WriteFile(path, []byte("%PDF-1.4 staged"), 0600); err != nil {
			t.Fatal(err)
		}
		return path
	}

	tests := []struct {
		name       string
		fileName   string
		setupMocks func(v *MockVectorDB)
	}{
		{
			name:       "failure before extraction",
			fileName:   "leak.pdf",
			setupMocks: func(v *MockVectorDB) {
				v.OnCreateCollection = func(ctx context.Context, name string) error {
					return errors.New("connection refused")
				}
			},
		},
		{
			name:       "non pdf rejection",
			fileName:   "leak.txt",
			setupMocks: func(v *MockVectorDB) {},
		},
		{
			name:       "successful ingestion",
			fileName:   "kept.pdf",
			setupMocks: func(v *MockVectorDB) {},
		},
	}

	segments := []commonModels.Segment{
		{Text: "guarded floor openings", Kind: commonModels.SegmentPage, Position: 1, SourceId: "staged"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			staged := stageFile(t, tt.fileName)
			mVec := &MockVectorDB{}
			tt.setupMocks(mVec)

			s := newTestService(mVec, &MockLLM{}, &MockEmbedder{}, &MockDocumentStore{}, &stubPDFBackend{segments: segments})

			ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "cleanup-trace")
			s.IngestDocument(ctx, jobModel.Job{
				Id:      "cleanup-job",
				JobType: jobModel.JobTypeUpload,
				JobPayload: jobModel.JobPayload{
					IngestFileName: tt.fileName,
					IngestURL:      staged,
				},
			})

			if _, err := os.Stat(staged); !os.IsNotExist(err) {
				t.Errorf("staged upload %s still exists after ingestion attempt", staged)
			}
		})
	}
}

func TestIngestDocument_ReingestKeepsChunkIdsStable(t *testing.T) {
	segments := []commonModels.Segment{
		{Text: "fixed content for stable ids", Kind: commonModels.SegmentPage, Position: 1, SourceId: "stable.pdf"},
	}
	var firstRun []string
	var secondRun []string
	run := 0

	mVec := &MockVectorDB{
		OnUpsertBatch: func(ctx context.Context, coll string, chunks []commonModels.DocChunk, vectors [][]float32) error {
			for _, c := range chunks {
				if run == 0 {
					firstRun = append(firstRun, c.ChunkId)
				} else {
					secondRun = append(secondRun, c.ChunkId)
				}
			}
			return nil
		},
	}
	s := newTestService(mVec, &MockLLM{}, &MockEmbedder{}, &MockDocumentStore{}, &stubPDFBackend{segments: segments})

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "reingest-trace")
	job := jobModel.Job{
		Id:      "reingest-job",
		JobType: jobModel.JobTypeUpload,
		JobPayload: jobModel.JobPayload{
			IngestFileName: "stable.pdf",
			IngestURL:      "temporary_data/stable.pdf",
		},
	}

	s.IngestDocument(ctx, job)
	run = 1
	s.IngestDocument(ctx, job)

	if len(firstRun) == 0 || len(firstRun) != len(secondRun) {
		t.Fatalf("chunk id capture broken: %d vs %d", len(firstRun), len(secondRun))
	}
	for i := range firstRun {
		if firstRun[i] != secondRun[i] {
			t.Errorf("chunk %d id changed across re-ingest: %s vs %s", i, firstRun[i], secondRun[i])
		}
	}
}
