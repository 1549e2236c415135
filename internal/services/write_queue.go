package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/screenbattle/internal/models"
	"go.uber.org/zap"
)

type DocumentStore interface {
	Load() (models.Document, error)
	Save(document models.Document) error
}

type WriteQueueConfig struct {
	// Delay is the pause between the end of one write and the start of the next.
	Delay time.Duration
}

func DefaultWriteQueueConfig() WriteQueueConfig {
	return WriteQueueConfig{Delay: 10 * time.Millisecond}
}

type WriteResult struct {
	JobID    string
	Document models.Document
	Err      error
}

func (result WriteResult) OK() bool {
	return result.Err == nil
}

type writeJob struct {
	id       string
	document *models.Document
	mutate   func(*models.Document) error
	enqueued time.Time
	result   chan WriteResult
}

// WriteQueue runs document writes one at a time in submission order. Start
// launches the single worker; Stop finishes every job already queued.
type WriteQueue struct {
	store  DocumentStore
	logger *zap.Logger
	config WriteQueueConfig

	mu      sync.Mutex
	pending []*writeJob
	started bool
	closed  bool
	cancel  context.CancelFunc

	wake chan struct{}
	done chan struct{}
}

func NewWriteQueue(store DocumentStore, logger *zap.Logger, config ...WriteQueueConfig) *WriteQueue {
	cfg := DefaultWriteQueueConfig()
	if len(config) > 0 {
		cfg = config[0]
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &WriteQueue{
		store:  store,
		logger: logger,
		config: cfg,
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

func (queue *WriteQueue) Start(ctx context.Context) {
	queue.mu.Lock()
	if queue.started || queue.closed {
		queue.mu.Unlock()
		return
	}
	queue.started = true
	workerCtx, cancel := context.WithCancel(ctx)
	queue.cancel = cancel
	queue.mu.Unlock()

	go queue.run(workerCtx)
}

// Stop rejects new jobs, runs the ones already queued and waits for the worker.
func (queue *WriteQueue) Stop() {
	queue.mu.Lock()
	queue.closed = true
	started := queue.started
	cancel := queue.cancel
	queue.mu.Unlock()

	if !started {
		queue.drain()
		return
	}
	cancel()
	<-queue.done
}

// Submit queues a full-document overwrite and returns a channel that receives
// the outcome once that write has run.
func (queue *WriteQueue) Submit(document models.Document) <-chan WriteResult {
	snapshot := document.Clone()
	return queue.enqueue(&writeJob{document: &snapshot})
}

func (queue *WriteQueue) Write(ctx context.Context, document models.Document) WriteResult {
	return await(ctx, queue.Submit(document))
}

// Update loads the current document inside the worker, applies mutate and
// saves the result. A mutate error cancels the write.
func (queue *WriteQueue) Update(ctx context.Context, mutate func(*models.Document) error) WriteResult {
	return await(ctx, queue.enqueue(&writeJob{mutate: mutate}))
}

func await(ctx context.Context, results <-chan WriteResult) WriteResult {
	select {
	case result := <-results:
		return result
	case <-ctx.Done():
		return WriteResult{Err: ctx.Err()}
	}
}

func (queue *WriteQueue) enqueue(job *writeJob) <-chan WriteResult {
	job.id = uuid.NewString()
	job.enqueued = time.Now()
	job.result = make(chan WriteResult, 1)

	queue.mu.Lock()
	if queue.closed {
		queue.mu.Unlock()
		job.result <- WriteResult{JobID: job.id, Err: ErrWriteQueueClosed}
		return job.result
	}
	queue.pending = append(queue.pending, job)
	queue.mu.Unlock()

	select {
	case queue.wake <- struct{}{}:
	default:
	}
	return job.result
}

func (queue *WriteQueue) next() (*writeJob, bool) {
	queue.mu.Lock()
	defer queue.mu.Unlock()
	if len(queue.pending) == 0 {
		return nil, false
	}
	job := queue.pending[0]
	queue.pending[0] = nil
	queue.pending = queue.pending[1:]
	return job, true
}

func (queue *WriteQueue) run(ctx context.Context) {
	defer close(queue.done)

	for {
		job, ok := queue.next()
		if !ok {
			select {
			case <-ctx.Done():
				queue.shutdown()
				return
			case <-queue.wake:
				continue
			}
		}

		queue.execute(job)

		if queue.config.Delay > 0 {
			timer := time.NewTimer(queue.config.Delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				queue.shutdown()
				return
			case <-timer.C:
			}
		}
	}
}

func (queue *WriteQueue) shutdown() {
	queue.mu.Lock()
	queue.closed = true
	queue.mu.Unlock()
	queue.drain()
}

func (queue *WriteQueue) drain() {
	for {
		job, ok := queue.next()
		if !ok {
			return
		}
		queue.execute(job)
	}
}

func (queue *WriteQueue) execute(job *writeJob) {
	startedAt := time.Now()
	document, err := queue.apply(job)

	fields := []zap.Field{
		zap.String("job_id", job.id),
		zap.Duration("queued", startedAt.Sub(job.enqueued)),
		zap.Duration("took", time.Since(startedAt)),
	}
	if err != nil {
		queue.logger.Warn("document write failed", append(fields, zap.Error(err))...)
		job.result <- WriteResult{JobID: job.id, Err: err}
		return
	}

	queue.logger.Debug("document written", fields...)
	job.result <- WriteResult{JobID: job.id, Document: document}
}

func (queue *WriteQueue) apply(job *writeJob) (document models.Document, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			document = models.Document{}
			err = fmt.Errorf("write job panicked: %v", recovered)
		}
	}()

	if job.mutate == nil {
		if err := queue.store.Save(*job.document); err != nil {
			return models.Document{}, err
		}
		return *job.document, nil
	}

	current, err := queue.store.Load()
	if err != nil {
		return models.Document{}, err
	}
	if err := job.mutate(&current); err != nil {
		return models.Document{}, err
	}
	if err := queue.store.Save(current); err != nil {
		return models.Document{}, err
	}
	return current, nil
}
