package outboxredis_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/Abraxas-365/mailgun/pkg/errx"
	"github.com/Abraxas-365/mailgun/pkg/mailgun"
	"github.com/Abraxas-365/mailgun/pkg/outbox"
	"github.com/Abraxas-365/mailgun/pkg/outbox/outboxredis"
	"github.com/Abraxas-365/mailgun/pkg/ptrx"
	"github.com/redis/go-redis/v9"
)

// newStore connects to the Redis named by OUTBOX_TEST_REDIS_ADDR, skipping otherwise.
func newStore(t *testing.T) (*outboxredis.RedisStore, *redis.Client) {
	t.Helper()
	addr := os.Getenv("OUTBOX_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("OUTBOX_TEST_REDIS_ADDR not set")
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis unavailable: %v", err)
	}
	if err := rdb.FlushDB(context.Background()).Err(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = rdb.Close() })
	return outboxredis.NewRedisStore(rdb, outboxredis.WithEntryTTL(time.Hour)), rdb
}

func testMessage() mailgun.Message {
	return *mailgun.NewMessageBuilder("S",
		mailgun.NewAddress("", "a@x.com"),
		[]mailgun.Address{mailgun.NewAddress("B", "b@x.com")}).
		Text(ptrx.String("hello")).
		RecipientVariables(map[string]any{"b@x.com": map[string]any{"first": "B"}}).
		Message()
}

func TestRedisStore_Lifecycle(t *testing.T) {
	store, rdb := newStore(t)
	ctx := context.Background()

	id, err := store.Enqueue(ctx, testMessage())
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	entry, err := store.Dequeue(ctx, time.Second)
	if err != nil || entry == nil {
		t.Fatalf("dequeue: %v %v", entry, err)
	}
	if entry.ID != id || entry.Status != outbox.StatusSending {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if entry.Message.To.String() != "B <b@x.com>" || *entry.Message.Text != "hello" {
		t.Fatalf("message did not round-trip: %+v", entry.Message)
	}

	if err := store.MarkSent(ctx, id, mailgun.SendResponse{ID: "<mg-1>", Message: "Queued"}); err != nil {
		t.Fatalf("mark sent: %v", err)
	}
	got, err := store.Get(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != outbox.StatusSent || got.MailgunID != "<mg-1>" {
		t.Fatalf("unexpected entry after send %+v", got)
	}
	if ttl := rdb.TTL(ctx, "outbox:entry:"+id).Val(); ttl <= 0 {
		t.Errorf("expected finished entry to expire, ttl=%v", ttl)
	}
}

func TestRedisStore_DequeueTimeout(t *testing.T) {
	store, _ := newStore(t)
	entry, err := store.Dequeue(context.Background(), 100*time.Millisecond)
	if err != nil || entry != nil {
		t.Fatalf("expected nil entry on timeout, got %v %v", entry, err)
	}
}

func TestRedisStore_GetMissing(t *testing.T) {
	store, _ := newStore(t)
	_, err := store.Get(context.Background(), "missing")
	if !errx.IsCode(err, outbox.ErrEntryNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
