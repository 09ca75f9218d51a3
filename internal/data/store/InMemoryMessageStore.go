package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/akolanti/DocAgent/internal/config"
	"github.com/akolanti/DocAgent/internal/domain/jobModel"
)

type InMemoryMessageStore struct {
	chatLock *sync.RWMutex
	chatMap  map[string][]jobModel.ChatTurn
}

func InitMessageStore() *InMemoryMessageStore {
	return &InMemoryMessageStore{
		chatLock: new(sync.RWMutex),
		chatMap:  make(map[string][]jobModel.ChatTurn),
	}
}

func (store *InMemoryMessageStore) ValidateChatId(ctx context.Context, chatId string) bool {
	store.chatLock.RLock()
	defer store.chatLock.RUnlock()
	_, ok := store.chatMap[chatId]
	return ok
}

func (store *InMemoryMessageStore) saveTurn(id string, turn jobModel.ChatTurn) {
	store.chatLock.Lock()
	defer store.chatLock.Unlock()
	store.chatMap[id] = append(store.chatMap[id], turn)
}

func (store *InMemoryMessageStore) TrySaveChat(ctx context.Context, id string, turn jobModel.ChatTurn) error {
	if !store.ValidateChatId(ctx, id) {
		return errors.New("invalid chat id")
	}
	store.saveTurn(id, turn)
	return nil
}

func (store *InMemoryMessageStore) InitNewChat(ctx context.Context, id string) error {
	store.chatLock.Lock()
	defer store.chatLock.Unlock()
	store.chatMap[id] = make([]jobModel.ChatTurn, 0)
	return nil
}

func (store *InMemoryMessageStore) ClearChat(ctx context.Context, id string) error {
	store.chatLock.Lock()
	defer store.chatLock.Unlock()
	delete(store.chatMap, id)
	return nil
}

func (store *InMemoryMessageStore) GetMessageHistory(ctx context.Context, chatId string) ([]string, error) {
	store.chatLock.RLock()
	defer store.chatLock.RUnlock()

	turns, ok := store.chatMap[chatId]
	if !ok {
		return nil, nil
	}

	// reuse the redis formatting path so both stores render identically
	raw := make([]string, 0, len(turns))
	for _, t := range turns {
		b, err := json.Marshal(t)
		if err != nil {
			continue
		}
		raw = append(raw, string(b))
	}
	return FormatTurns(raw, config.MessageHistoryWindow), nil
}
