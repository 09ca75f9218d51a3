package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/akolanti/DocAgent/internal/config"
	"github.com/akolanti/DocAgent/internal/data/redisStore"
	"github.com/akolanti/DocAgent/internal/domain/jobModel"
	"github.com/akolanti/DocAgent/pkg/logger_i"
)

type RedisMessageStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisMessageStore(ctx context.Context) *RedisMessageStore {
	inner := redisStore.GetRedisStore(ctx, config.RedisMessageStore)
	if inner == nil {
		return nil
	}
	return &RedisMessageStore{
		store:  inner,
		logger: logger_i.NewLogger("MessageStore"),
	}
}

func (s *RedisMessageStore) ValidateChatId(ctx context.Context, chatId string) bool {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "chat Id", chatId)
	log.Debug("validating chatId")
	isFound, err := s.store.Exists(ctx, chatId)
	if s.store.IsNil(err) {
		return false
	} else if err != nil {
		log.Error("Failed to check if chatId exists", "err", err)
		return false
	}
	return isFound
}

func (s *RedisMessageStore) TrySaveChat(ctx context.Context, id string, turn jobModel.ChatTurn) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "chat Id", id)
	if !s.ValidateChatId(ctx, id) {
		err := errors.New("invalid chat id")
		log.Error("Failed Validation before saving", "err", err)
		return err
	}
	return s.saveTurn(ctx, id, turn)
}

func (s *RedisMessageStore) saveTurn(ctx context.Context, id string, turn jobModel.ChatTurn) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "chat Id", id)
	err := s.store.ListPush(ctx, id, marshallTurn(turn, s.logger))
	if err != nil {
		log.Error("error saving chat", "error:", err)
		return err
	}
	// refresh the session TTL on every exchange
	if err := s.store.Expire(ctx, id, config.RedisMessageStoreTTL); err != nil {
		log.Error("error refreshing chat TTL", "error:", err)
	}
	log.Debug("Saved chat successfully")
	return nil
}

// InitNewChat resets the session list. An empty sentinel turn keeps the key
// alive so ValidateChatId works before the first exchange, history reads
// skip it.
func (s *RedisMessageStore) InitNewChat(ctx context.Context, id string) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "chat Id", id)
	log.Debug("Initializing new chat")
	err := s.store.Del(ctx, id)
	if err != nil && !s.store.IsNil(err) {
		log.Error("Error initializing chat", "chatId", id)
	}
	return s.saveTurn(ctx, id, jobModel.ChatTurn{})
}

func (s *RedisMessageStore) ClearChat(ctx context.Context, id string) error {
	return s.store.Del(ctx, id)
}

func marshallTurn(turn jobModel.ChatTurn, logger *logger_i.Logger) []byte {
	data, err := json.Marshal(turn)
	if err != nil {
		logger.Error("Error marshalling json :", "error", err)
	}
	return data
}

// GetMessageHistory returns the most recent turns formatted for the prompt,
// oldest first.
func (s *RedisMessageStore) GetMessageHistory(ctx context.Context, chatId string) ([]string, error) {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "chat Id", chatId)
	log.Debug("Getting message history")

	// the sentinel takes one slot, fetch one extra so a full window survives
	res, err := s.store.ListGetRecent(ctx, chatId, int64(config.MessageHistoryWindow)+1)
	if err != nil {
		log.Error("Error getting history", "error:", err)
		return nil, err
	}

	return FormatTurns(res, config.MessageHistoryWindow), nil
}

// FormatTurns renders marshalled turns into prompt lines, dropping sentinel
// and unparsable entries and keeping at most window turns from the tail.
func FormatTurns(raw []string, window int) []string {
	var lines []string
	for _, entry := range raw {
		var turn jobModel.ChatTurn
		if err := json.Unmarshal([]byte(entry), &turn); err != nil {
			continue
		}
		if turn.Question == "" && turn.Answer == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("Question: %s\nAnswer: %s", turn.Question, turn.Answer))
	}
	if len(lines) > window {
		lines = lines[len(lines)-window:]
	}
	return lines
}

func TestMessageStore(store *redisStore.Store) *RedisMessageStore {
	return &RedisMessageStore{
		store:  store,
		logger: logger_i.NewLogger("test redis"),
	}
}
