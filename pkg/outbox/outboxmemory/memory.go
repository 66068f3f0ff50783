package outboxmemory

import (
	"context"
	"sync"
	"time"

	"github.com/Abraxas-365/mailgun/pkg/mailgun"
	"github.com/Abraxas-365/mailgun/pkg/outbox"
	"github.com/google/uuid"
)

// MemoryStore implements outbox.Store in process memory. Entries are lost on
// restart; use it for development and tests.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*outbox.Entry
	queue   []string
	notify  chan struct{}
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*outbox.Entry),
		notify:  make(chan struct{}, 1),
	}
}

func (s *MemoryStore) Enqueue(_ context.Context, m mailgun.Message) (string, error) {
	id := uuid.New().String()

	s.mu.Lock()
	s.entries[id] = outbox.NewEntry(id, m)
	s.queue = append(s.queue, id)
	s.mu.Unlock()

	s.signal()
	return id, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*outbox.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, outbox.NotFound(id)
	}
	return copyEntry(e), nil
}

func (s *MemoryStore) Dequeue(ctx context.Context, timeout time.Duration) (*outbox.Entry, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		if e := s.pop(); e != nil {
			return e, nil
		}
		select {
		case <-ctx.Done():
			return nil, nil
		case <-timer.C:
			return nil, nil
		case <-s.notify:
		}
	}
}

func (s *MemoryStore) MarkSent(_ context.Context, id string, resp mailgun.SendResponse) error {
	return s.update(id, func(e *outbox.Entry) {
		e.Status = outbox.StatusSent
		e.MailgunID = resp.ID
		e.ProviderMessage = resp.Message
	})
}

func (s *MemoryStore) MarkFailed(_ context.Context, id string, code, message string) error {
	return s.update(id, func(e *outbox.Entry) {
		e.Status = outbox.StatusFailed
		e.ErrorCode = code
		e.Error = message
	})
}

// Len returns the number of entries waiting to be dequeued.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

func (s *MemoryStore) pop() *outbox.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.queue) == 0 {
		return nil
	}
	id := s.queue[0]
	s.queue = s.queue[1:]
	if len(s.queue) > 0 {
		s.signal()
	}

	e := s.entries[id]
	e.Status = outbox.StatusSending
	e.UpdatedAt = time.Now().UTC()
	return copyEntry(e)
}

func (s *MemoryStore) update(id string, fn func(*outbox.Entry)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return outbox.NotFound(id)
	}
	fn(e)
	e.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *MemoryStore) signal() {
	select {
	case s.notify <- struct{}{}:
	default:
	}
}

func copyEntry(e *outbox.Entry) *outbox.Entry {
	c := *e
	c.Message = e.Message.Clone()
	return &c
}
