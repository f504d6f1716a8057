package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/hibiken/asynq"
	"github.com/huangang/sitecraft/internal/config"
	"github.com/huangang/sitecraft/pkg/logger"
)

const (
	TaskTypePersist = "component:persist"
)

// Persistence operations carried by a PersistTask.
const (
	PersistUpdate = "update"
	PersistDelete = "delete"
)

// PersistTask is a component write the editor already applied locally.
type PersistTask struct {
	Op          string          `json:"op"`
	UserID      string          `json:"user_id"`
	ProjectID   string          `json:"project_id"`
	PageID      string          `json:"page_id"`
	ComponentID string          `json:"component_id"`
	Patch       *ComponentPatch `json:"patch,omitempty"`
}

// TaskQueue defines the interface for persistence task processing
type TaskQueue interface {
	// Enqueue adds a task to the queue
	Enqueue(task *PersistTask) error
	// IsAsync returns true if queue processes tasks out of process
	IsAsync() bool
	// Close gracefully shuts down the queue
	Close() error
}

// NewTaskQueue builds the queue selected by config: asynq when Redis is
// enabled and reachable, otherwise the in-process queue.
func NewTaskQueue(cfg *config.Config, processor func(context.Context, *PersistTask) error) TaskQueue {
	if cfg.Redis.Enabled {
		queue, err := NewAsyncQueue(&cfg.Redis)
		if err == nil {
			logger.Infof("[TaskQueue] Async queue initialized with Redis at %s", cfg.Redis.Addr)
			return queue
		}
		logger.Warnf("[TaskQueue] Redis unavailable, falling back to sync mode: %v", err)
	} else {
		logger.Infof("[TaskQueue] Sync queue initialized (Redis disabled)")
	}
	q := NewSyncQueue()
	q.SetProcessor(processor)
	return q
}

// AsyncQueue implements TaskQueue using asynq (Redis-based)
type AsyncQueue struct {
	client *asynq.Client
}

func redisOpt(cfg *config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

// NewAsyncQueue creates a new Redis-based async queue
func NewAsyncQueue(cfg *config.RedisConfig) (*AsyncQueue, error) {
	opt := redisOpt(cfg)
	client := asynq.NewClient(opt)

	inspector := asynq.NewInspector(opt)
	defer inspector.Close()

	if _, err := inspector.Queues(); err != nil {
		client.Close()
		return nil, err
	}

	return &AsyncQueue{client: client}, nil
}

// Enqueue pushes the task to Redis. Persistence failures are surfaced once,
// so tasks are never retried.
func (q *AsyncQueue) Enqueue(task *PersistTask) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return err
	}

	t := asynq.NewTask(TaskTypePersist, payload)
	info, err := q.client.Enqueue(t,
		asynq.Queue("default"),
		asynq.MaxRetry(0),
	)
	if err != nil {
		return err
	}

	logger.Debug().Str("task_id", info.ID).Str("op", task.Op).Str("component_id", task.ComponentID).Msg("[AsyncQueue] Task enqueued")
	return nil
}

func (q *AsyncQueue) IsAsync() bool {
	return true
}

func (q *AsyncQueue) Close() error {
	return q.client.Close()
}

// ErrQueueClosed is returned by Enqueue after Close.
var ErrQueueClosed = errors.New("task queue closed")

// SyncQueue implements TaskQueue in process (no Redis). Tasks are processed
// one at a time in enqueue order by a single drain goroutine, so successive
// writes to a component reach the store in the order they were made.
type SyncQueue struct {
	processor func(context.Context, *PersistTask) error

	mu       sync.Mutex
	pending  []*PersistTask
	draining bool
	closed   bool
	wg       sync.WaitGroup
}

func NewSyncQueue() *SyncQueue {
	return &SyncQueue{}
}

// SetProcessor sets the function that persists tasks
func (q *SyncQueue) SetProcessor(processor func(context.Context, *PersistTask) error) {
	q.mu.Lock()
	q.processor = processor
	q.mu.Unlock()
}

// Enqueue appends the task to the FIFO and returns immediately.
func (q *SyncQueue) Enqueue(task *PersistTask) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}
	if q.processor == nil {
		logger.Warnf("[SyncQueue] no processor set, task will be dropped")
		return nil
	}

	q.pending = append(q.pending, task)
	q.wg.Add(1)
	if !q.draining {
		q.draining = true
		go q.drain()
	}
	return nil
}

func (q *SyncQueue) drain() {
	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.draining = false
			q.mu.Unlock()
			return
		}
		task := q.pending[0]
		q.pending[0] = nil
		q.pending = q.pending[1:]
		processor := q.processor
		q.mu.Unlock()

		if err := processor(context.Background(), task); err != nil {
			logger.Warnf("[SyncQueue] Task processing failed: %v", err)
		}
		q.wg.Done()
	}
}

// Wait blocks until every enqueued task has finished.
func (q *SyncQueue) Wait() {
	q.wg.Wait()
}

func (q *SyncQueue) IsAsync() bool {
	return false
}

// Close rejects new tasks and drains the ones already queued.
func (q *SyncQueue) Close() error {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.wg.Wait()
	return nil
}
