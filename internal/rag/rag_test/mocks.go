package rag_test

import (
	"context"

	"github.com/akolanti/DocAgent/internal/domain/commonModels"
	"github.com/akolanti/DocAgent/internal/rag/vectorDB"
)

// MockVectorDB implements vectorDB.DataProcessor
type MockVectorDB struct {
	// Control fields to simulate different behaviors
	OnSearch           func(ctx context.Context, vectorVal []float32, k uint64) ([]vectorDB.QueryResult, error)
	OnGetCachedAnswer  func(ctx context.Context, queryVector []float32) (vectorDB.CachedAnswer, bool, error)
	OnSaveToCache      func(ctx context.Context, id string, vector []float32, answer string, citations []string) error
	OnCreateCollection func(ctx context.Context, name string) error
	OnUpsertBatch      func(ctx context.Context, name string, chunks []commonModels.DocChunk, vectors [][]float32) error
	OnDeleteSource     func(ctx context.Context, sourceId string) error
}

func (m *MockVectorDB) Search(ctx context.Context, v []float32, k uint64) ([]vectorDB.QueryResult, error) {
	if m.OnSearch != nil {
		return m.OnSearch(ctx, v, k)
	}
	return []vectorDB.QueryResult{{ChunkId: "c-1", Content: "default context", DocName: "doc.pdf", SourceId: "doc.pdf", Score: 0.9}}, nil
}

func (m *MockVectorDB) GetCachedAnswer(ctx context.Context, v []float32) (vectorDB.CachedAnswer, bool, error) {
	if m.OnGetCachedAnswer != nil {
		return m.OnGetCachedAnswer(ctx, v)
	}
	return vectorDB.CachedAnswer{}, false, nil
}

func (m *MockVectorDB) SaveToCache(ctx context.Context, id string, v []float32, a string, citations []string) error {
	if m.OnSaveToCache != nil {
		return m.OnSaveToCache(ctx, id, v, a, citations)
	}
	return nil
}

func (m *MockVectorDB) CreateCollection(ctx context.Context, name string) error {
	if m.OnCreateCollection != nil {
		return m.OnCreateCollection(ctx, name)
	}
	return nil
}

func (m *MockVectorDB) UpsertBatch(ctx context.Context, name string, chunks []commonModels.DocChunk, vectors [][]float32) error {
	if m.OnUpsertBatch != nil {
		return m.OnUpsertBatch(ctx, name, chunks, vectors)
	}
	return nil
}

func (m *MockVectorDB) DeleteSource(ctx context.Context, sourceId string) error {
	if m.OnDeleteSource != nil {
		return m.OnDeleteSource(ctx, sourceId)
	}
	return nil
}

func (m *MockVectorDB) Healthy(ctx context.Context) error { return nil }

type MockEmbedder struct {
	OnGetEmbedding   func(ctx context.Context, text string) ([]float32, error)
	OnBatchEmbedding func(ctx context.Context, chunks []string) ([][]float32, error)
}

func (m *MockEmbedder) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	if m.OnBatchEmbedding != nil {
		return m.OnBatchEmbedding(ctx, chunks)
	}
	// Return dummy vectors matching chunk count
	return make([][]float32, len(chunks)), nil
}

func (m *MockEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	if m.OnGetEmbedding != nil {
		return m.OnGetEmbedding(ctx, query)
	}
	return []float32{0.1}, nil
}

func (m *MockEmbedder) Healthy(ctx context.Context) error { return nil }

// MockLLM implements llm.Provider
type MockLLM struct {
	OnGenerate func(ctx context.Context, query string, matches []string, history []string) (string, error)
}

func (m *MockLLM) Generate(ctx context.Context, q string, mth []string, hist []string) (string, error) {
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, q, mth, hist)
	}
	return "mocked llm response", nil
}

func (m *MockLLM) Healthy(ctx context.Context) error { return nil }

// MockDocumentStore implements jobModel.DocumentStore
type MockDocumentStore struct {
	OnRegister func(ctx context.Context, info commonModels.DocumentInfo) error
	Registered []commonModels.DocumentInfo
}

func (m *MockDocumentStore) RegisterDocument(ctx context.Context, info commonModels.DocumentInfo) error {
	if m.OnRegister != nil {
		return m.OnRegister(ctx, info)
	}
	m.Registered = append(m.Registered, info)
	return nil
}

func (m *MockDocumentStore) ListDocuments(ctx context.Context) ([]commonModels.DocumentInfo, error) {
	return m.Registered, nil
}

func (m *MockDocumentStore) RemoveDocument(ctx context.Context, sourceId string) error {
	return nil
}
