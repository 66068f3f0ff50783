package outboxredis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Abraxas-365/mailgun/pkg/mailgun"
	"github.com/Abraxas-365/mailgun/pkg/outbox"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const queueKey = "outbox:queue"

// RedisStore implements outbox.Store backed by Redis. Entries live under
// outbox:entry:<id>; pending ids are pushed onto the outbox:queue list.
type RedisStore struct {
	rdb redis.UniversalClient
	ttl time.Duration
}

// Option configures a RedisStore.
type Option func(*RedisStore)

// WithEntryTTL expires finished entries after ttl. Zero keeps them forever.
func WithEntryTTL(ttl time.Duration) Option {
	return func(s *RedisStore) {
		s.ttl = ttl
	}
}

// NewRedisStore creates a new Redis-backed store.
func NewRedisStore(rdb redis.UniversalClient, opts ...Option) *RedisStore {
	s := &RedisStore{rdb: rdb}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func entryKey(id string) string { return fmt.Sprintf("outbox:entry:%s", id) }

// Enqueue stores the entry and pushes its id onto the queue atomically.
func (s *RedisStore) Enqueue(ctx context.Context, m mailgun.Message) (string, error) {
	id := uuid.New().String()
	entry := outbox.NewEntry(id, m)

	data, err := json.Marshal(entry)
	if err != nil {
		return "", redisErrors.NewWithCause(ErrMarshal, err)
	}

	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, entryKey(id), data, 0)
	pipe.LPush(ctx, queueKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", redisErrors.NewWithCause(ErrEnqueue, err).WithDetail("entry_id", id)
	}

	return id, nil
}

// Get retrieves an entry by id.
func (s *RedisStore) Get(ctx context.Context, id string) (*outbox.Entry, error) {
	data, err := s.rdb.Get(ctx, entryKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, outbox.NotFound(id)
		}
		return nil, redisErrors.NewWithCause(ErrGetEntry, err).WithDetail("entry_id", id)
	}

	var entry outbox.Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, redisErrors.NewWithCause(ErrUnmarshal, err).WithDetail("entry_id", id)
	}
	return &entry, nil
}

// Dequeue blocks until an entry is available or the timeout expires.
func (s *RedisStore) Dequeue(ctx context.Context, timeout time.Duration) (*outbox.Entry, error) {
	result, err := s.rdb.BRPop(ctx, timeout, queueKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) || ctx.Err() != nil {
			return nil, nil
		}
		return nil, redisErrors.NewWithCause(ErrDequeue, err)
	}

	// result[0] = key, result[1] = entry id
	id := result[1]

	entry, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	entry.Status = outbox.StatusSending
	if err := s.save(ctx, entry, 0); err != nil {
		return nil, err
	}
	return entry, nil
}

// MarkSent records Mailgun's acknowledgement.
func (s *RedisStore) MarkSent(ctx context.Context, id string, resp mailgun.SendResponse) error {
	entry, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	entry.Status = outbox.StatusSent
	entry.MailgunID = resp.ID
	entry.ProviderMessage = resp.Message
	return s.save(ctx, entry, s.ttl)
}

// MarkFailed records a failed send.
func (s *RedisStore) MarkFailed(ctx context.Context, id string, code, message string) error {
	entry, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	entry.Status = outbox.StatusFailed
	entry.ErrorCode = code
	entry.Error = message
	return s.save(ctx, entry, s.ttl)
}

func (s *RedisStore) save(ctx context.Context, entry *outbox.Entry, ttl time.Duration) error {
	entry.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(entry)
	if err != nil {
		return redisErrors.NewWithCause(ErrMarshal, err).WithDetail("entry_id", entry.ID)
	}
	if err := s.rdb.Set(ctx, entryKey(entry.ID), data, ttl).Err(); err != nil {
		return redisErrors.NewWithCause(ErrUpdate, err).WithDetail("entry_id", entry.ID)
	}
	return nil
}
