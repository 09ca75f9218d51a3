package store

import (
	"context"
	"sort"
	"sync"

	"github.com/akolanti/DocAgent/internal/domain/commonModels"
)

type InMemoryDocumentStore struct {
	docLock *sync.RWMutex
	docMap  map[string]commonModels.DocumentInfo
}

func InitDocumentStore() *InMemoryDocumentStore {
	return &InMemoryDocumentStore{
		docLock: new(sync.RWMutex),
		docMap:  make(map[string]commonModels.DocumentInfo),
	}
}

func (store *InMemoryDocumentStore) RegisterDocument(ctx context.Context, info commonModels.DocumentInfo) error {
	store.docLock.Lock()
	defer store.docLock.Unlock()
	store.docMap[info.SourceId] = info
	return nil
}

func (store *InMemoryDocumentStore) ListDocuments(ctx context.Context) ([]commonModels.DocumentInfo, error) {
	store.docLock.RLock()
	defer store.docLock.RUnlock()

	docs := make([]commonModels.DocumentInfo, 0, len(store.docMap))
	for _, info := range store.docMap {
		docs = append(docs, info)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].SourceId < docs[j].SourceId })
	return docs, nil
}

func (store *InMemoryDocumentStore) RemoveDocument(ctx context.Context, sourceId string) error {
	store.docLock.Lock()
	defer store.docLock.Unlock()
	delete(store.docMap, sourceId)
	return nil
}
