package store

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/akolanti/DocAgent/internal/config"
	"github.com/akolanti/DocAgent/internal/data/redisStore"
	"github.com/akolanti/DocAgent/internal/domain/commonModels"
	"github.com/akolanti/DocAgent/pkg/logger_i"
)

// registryKey is the single hash holding source id -> document metadata.
const registryKey = "documents"

type RedisDocumentStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisDocumentStore(ctx context.Context) *RedisDocumentStore {
	inner := redisStore.GetRedisStore(ctx, config.RedisDocumentStore)
	if inner == nil {
		return nil
	}
	return &RedisDocumentStore{
		store:  inner,
		logger: logger_i.NewLogger("DocumentStore"),
	}
}

func (s *RedisDocumentStore) RegisterDocument(ctx context.Context, info commonModels.DocumentInfo) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "sourceId", info.SourceId)
	data, err := json.Marshal(info)
	if err != nil {
		return err
	}

	err = s.store.HashSet(ctx, registryKey, info.SourceId, data)
	if err == nil {
		log.Debug("registered document")
	}
	return err
}

func (s *RedisDocumentStore) ListDocuments(ctx context.Context) ([]commonModels.DocumentInfo, error) {
	entries, err := s.store.HashGetAll(ctx, registryKey)
	if err != nil {
		return nil, err
	}

	docs := make([]commonModels.DocumentInfo, 0, len(entries))
	for _, raw := range entries {
		var info commonModels.DocumentInfo
		if err := json.Unmarshal([]byte(raw), &info); err != nil {
			s.logger.Error("skipping corrupt registry entry", "error", err)
			continue
		}
		docs = append(docs, info)
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].SourceId < docs[j].SourceId })
	return docs, nil
}

func (s *RedisDocumentStore) RemoveDocument(ctx context.Context, sourceId string) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "sourceId", sourceId)
	err := s.store.HashDel(ctx, registryKey, sourceId)
	if err == nil {
		log.Debug("removed document from registry")
	}
	return err
}

func TestDocumentStore(store *redisStore.Store) *RedisDocumentStore {
	return &RedisDocumentStore{
		store:  store,
		logger: logger_i.NewLogger("test redis"),
	}
}
