package store_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/akolanti/DocAgent/internal/config"
	"github.com/akolanti/DocAgent/internal/data/redisStore"
	"github.com/akolanti/DocAgent/internal/data/store"
	"github.com/akolanti/DocAgent/internal/domain/jobModel"
)

func newMessageStore(t *testing.T) *store.RedisMessageStore {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return store.TestMessageStore(redisStore.NewTestStore(client))
}

func TestRedisMessageStore_SessionLifecycle(t *testing.T) {
	ms := newMessageStore(t)
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "msg-trace")
	chatId := "chat-1"

	if ms.ValidateChatId(ctx, chatId) {
		t.Fatal("chat id valid before init")
	}

	if err := ms.InitNewChat(ctx, chatId); err != nil {
		t.Fatalf("InitNewChat failed: %v", err)
	}
	if !ms.ValidateChatId(ctx, chatId) {
		t.Fatal("chat id invalid after init")
	}

	// the init sentinel must not leak into history
	history, err := ms.GetMessageHistory(ctx, chatId)
	if err != nil {
		t.Fatalf("GetMessageHistory failed: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("fresh chat has history: %v", history)
	}

	turn := jobModel.ChatTurn{Question: "what is 1910.23", Answer: "fall protection"}
	if err := ms.TrySaveChat(ctx, chatId, turn); err != nil {
		t.Fatalf("TrySaveChat failed: %v", err)
	}

	history, err = ms.GetMessageHistory(ctx, chatId)
	if err != nil {
		t.Fatalf("GetMessageHistory failed: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("history length = %d, want 1", len(history))
	}
	if !strings.Contains(history[0], "what is 1910.23") || !strings.Contains(history[0], "fall protection") {
		t.Errorf("formatted turn missing content: %q", history[0])
	}
}

func TestRedisMessageStore_RejectsUnknownChat(t *testing.T) {
	ms := newMessageStore(t)
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "msg-trace")

	err := ms.TrySaveChat(ctx, "never-created", jobModel.ChatTurn{Question: "q", Answer: "a"})
	if err == nil {
		t.Fatal("expected error saving to unknown chat id")
	}
}

func TestRedisMessageStore_HistoryWindow(t *testing.T) {
	ms := newMessageStore(t)
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "msg-trace")
	chatId := "chat-window"

	if err := ms.InitNewChat(ctx, chatId); err != nil {
		t.Fatal(err)
	}

	total := config.MessageHistoryWindow + 5
	for i := 0; i < total; i++ {
		turn := jobModel.ChatTurn{
			Question: fmt.Sprintf("question %d", i),
			Answer:   fmt.Sprintf("answer %d", i),
		}
		if err := ms.TrySaveChat(ctx, chatId, turn); err != nil {
			t.Fatal(err)
		}
	}

	history, err := ms.GetMessageHistory(ctx, chatId)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != config.MessageHistoryWindow {
		t.Fatalf("history length = %d, want %d", len(history), config.MessageHistoryWindow)
	}
	// oldest turns fall off the window, newest survive
	if !strings.Contains(history[len(history)-1], fmt.Sprintf("question %d", total-1)) {
		t.Errorf("newest turn missing from history tail: %q", history[len(history)-1])
	}
	if strings.Contains(history[0], "question 0") {
		t.Error("oldest turn should have rolled out of the window")
	}
}

func TestRedisMessageStore_ClearChat(t *testing.T) {
	ms := newMessageStore(t)
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "msg-trace")
	chatId := "chat-clear"

	if err := ms.InitNewChat(ctx, chatId); err != nil {
		t.Fatal(err)
	}
	if err := ms.ClearChat(ctx, chatId); err != nil {
		t.Fatalf("ClearChat failed: %v", err)
	}
	if ms.ValidateChatId(ctx, chatId) {
		t.Error("chat id still valid after clear")
	}
}
