package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/akolanti/DocAgent/internal/config"
	"github.com/akolanti/DocAgent/internal/data/redisStore"
	"github.com/akolanti/DocAgent/internal/data/store"
	"github.com/akolanti/DocAgent/internal/domain/commonModels"
)

func TestRedisDocumentStore_Registry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	docStore := store.TestDocumentStore(redisStore.NewTestStore(client))

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "doc-trace")

	first := commonModels.DocumentInfo{
		SourceId:   "safety.pdf",
		Name:       "safety.pdf",
		ChunkCount: 12,
		IngestedAt: time.Now().Truncate(time.Second),
	}
	second := commonModels.DocumentInfo{
		SourceId:   "https://www.osha.gov/laws-regs/1910.23",
		Name:       "https://www.osha.gov/laws-regs/1910.23",
		ChunkCount: 4,
		IngestedAt: time.Now().Truncate(time.Second),
	}

	if err := docStore.RegisterDocument(ctx, first); err != nil {
		t.Fatalf("RegisterDocument failed: %v", err)
	}
	if err := docStore.RegisterDocument(ctx, second); err != nil {
		t.Fatalf("RegisterDocument failed: %v", err)
	}

	docs, err := docStore.ListDocuments(ctx)
	if err != nil {
		t.Fatalf("ListDocuments failed: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("registry size = %d, want 2", len(docs))
	}

	t.Run("Reregister Overwrites", func(t *testing.T) {
		first.ChunkCount = 20
		if err := docStore.RegisterDocument(ctx, first); err != nil {
			t.Fatal(err)
		}
		docs, err := docStore.ListDocuments(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(docs) != 2 {
			t.Fatalf("re-register duplicated the entry, size = %d", len(docs))
		}
		for _, d := range docs {
			if d.SourceId == "safety.pdf" && d.ChunkCount != 20 {
				t.Errorf("chunk count not updated, got %d", d.ChunkCount)
			}
		}
	})

	t.Run("Remove Document", func(t *testing.T) {
		if err := docStore.RemoveDocument(ctx, "safety.pdf"); err != nil {
			t.Fatalf("RemoveDocument failed: %v", err)
		}
		docs, err := docStore.ListDocuments(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(docs) != 1 {
			t.Fatalf("registry size after delete = %d, want 1", len(docs))
		}
		if docs[0].SourceId != second.SourceId {
			t.Errorf("wrong document survived: %s", docs[0].SourceId)
		}
	})
}
