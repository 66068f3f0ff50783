package outbox

import (
	"context"
	"sync"
	"time"

	"github.com/Abraxas-365/mailgun/pkg/errx"
	"github.com/Abraxas-365/mailgun/pkg/logx"
	"github.com/Abraxas-365/mailgun/pkg/mailgun"
)

// MessageSender dispatches one message. *mailgun.Client implements it.
type MessageSender interface {
	SendMessage(ctx context.Context, m *mailgun.Message) (*mailgun.SendResponse, error)
}

// Enqueuer stores new messages for later delivery.
type Enqueuer interface {
	Enqueue(ctx context.Context, m mailgun.Message) (string, error)
}

// StatusReader reads entry status.
type StatusReader interface {
	Get(ctx context.Context, id string) (*Entry, error)
}

// Processor provides backend operations for the worker loop.
type Processor interface {
	// Dequeue blocks up to timeout for the next pending entry and marks it
	// sending. It returns nil, nil when nothing arrived.
	Dequeue(ctx context.Context, timeout time.Duration) (*Entry, error)
	MarkSent(ctx context.Context, id string, resp mailgun.SendResponse) error
	MarkFailed(ctx context.Context, id string, code, message string) error
}

// Store combines all backend operations.
type Store interface {
	Enqueuer
	StatusReader
	Processor
}

// Client accepts messages into the outbox and runs the workers that send them.
// Each entry is dispatched once; a failed send is recorded, never retried.
type Client struct {
	store   Store
	sender  MessageSender
	opts    WorkerOptions
	mu      sync.Mutex
	running bool
}

// NewClient creates a new outbox client.
func NewClient(store Store, sender MessageSender, options ...WorkerOption) *Client {
	opts := defaultWorkerOptions()
	for _, o := range options {
		o(&opts)
	}
	return &Client{
		store:  store,
		sender: sender,
		opts:   opts,
	}
}

// Enqueue validates m and stores it for delivery. Invalid messages are
// rejected here so they never occupy a worker.
func (c *Client) Enqueue(ctx context.Context, m mailgun.Message) (string, error) {
	if err := m.Validate(); err != nil {
		return "", err
	}
	if _, err := m.WireParams(); err != nil {
		return "", err
	}
	id, err := c.store.Enqueue(ctx, m)
	if err != nil {
		return "", err
	}
	logx.WithContext(ctx).WithFields(logx.Fields{
		"entry_id": id,
		"to":       m.To.String(),
	}).Debug("outbox: message enqueued")
	return id, nil
}

// Get returns the current state of an entry.
func (c *Client) Get(ctx context.Context, id string) (*Entry, error) {
	return c.store.Get(ctx, id)
}

// Running reports whether Start is active.
func (c *Client) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Start begins processing entries. It blocks until ctx is cancelled.
func (c *Client) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return outboxErrors.New(ErrAlreadyRunning)
	}
	c.running = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.running = false
		c.mu.Unlock()
	}()

	logx.Infof("outbox: starting %d workers", c.opts.Concurrency)

	var wg sync.WaitGroup
	for i := 0; i < c.opts.Concurrency; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			c.workerLoop(ctx, id)
		}(i)
	}

	<-ctx.Done()
	logx.Info("outbox: shutting down workers...")

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logx.Info("outbox: all workers stopped")
		return nil
	case <-time.After(c.opts.ShutdownTimeout):
		logx.Warn("outbox: shutdown timed out, some sends may not have been recorded")
		return outboxErrors.New(ErrShutdownTimeout).WithDetail("timeout", c.opts.ShutdownTimeout.String())
	}
}

func (c *Client) workerLoop(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		entry, err := c.store.Dequeue(ctx, c.opts.DequeueTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logx.WithError(err).Warnf("outbox: worker %d dequeue error", id)
			select {
			case <-ctx.Done():
				return
			case <-time.After(c.opts.PollInterval):
			}
			continue
		}
		if entry == nil {
			continue
		}

		c.process(ctx, entry)
	}
}

// process sends one entry and records the outcome. The outcome is recorded
// even when ctx was cancelled mid-send.
func (c *Client) process(ctx context.Context, entry *Entry) {
	log := logx.WithFields(logx.Fields{
		"entry_id": entry.ID,
		"to":       entry.Message.To.String(),
	})

	resp, err := c.sender.SendMessage(ctx, &entry.Message)
	record := context.WithoutCancel(ctx)

	if err != nil {
		log.WithError(err).Warn("outbox: send failed")
		if markErr := c.store.MarkFailed(record, entry.ID, errx.CodeOf(err), err.Error()); markErr != nil {
			log.WithError(markErr).Error("outbox: failed to record failure")
		}
		return
	}

	log.WithField("mailgun_id", resp.ID).Info("outbox: message sent")
	if markErr := c.store.MarkSent(record, entry.ID, *resp); markErr != nil {
		log.WithError(markErr).Error("outbox: failed to record send")
	}
}
