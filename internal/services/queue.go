package services

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/hibiken/asynq"
	"github.com/teamtrack/backend/internal/config"
	"github.com/teamtrack/backend/pkg/logger"
)

const (
	TaskTypeActivity = "activity:record"
)

// ActivityEvent describes one store mutation to be recorded in the audit log.
type ActivityEvent struct {
	EventID  string `json:"event_id"`
	Action   string `json:"action"`
	Entity   string `json:"entity"`
	EntityID uint   `json:"entity_id"`
	ActorID  *uint  `json:"actor_id,omitempty"`
	Detail   string `json:"detail,omitempty"`
}

// ActivityQueue defines the interface for activity event processing
type ActivityQueue interface {
	// Enqueue adds an event to the queue
	Enqueue(event *ActivityEvent) error
	// IsAsync returns true if the queue processes events asynchronously
	IsAsync() bool
	// Close gracefully shuts down the queue
	Close() error
}

// Global activity queue instance
var (
	globalActivityQueue ActivityQueue
	activityQueueOnce   sync.Once
)

// InitActivityQueue initializes the global activity queue based on config
func InitActivityQueue(cfg *config.Config) ActivityQueue {
	activityQueueOnce.Do(func() {
		if cfg.Redis.Enabled {
			queue, err := NewAsyncQueue(&cfg.Redis)
			if err != nil {
				logger.Warnf("[ActivityQueue] Redis unavailable, falling back to sync mode: %v", err)
				globalActivityQueue = NewSyncQueue()
			} else {
				logger.Infof("[ActivityQueue] Async queue initialized with Redis at %s", cfg.Redis.Addr)
				globalActivityQueue = queue
			}
		} else {
			logger.Infof("[ActivityQueue] Sync queue initialized (Redis disabled)")
			globalActivityQueue = NewSyncQueue()
		}
	})
	return globalActivityQueue
}

// GetActivityQueue returns the global activity queue instance
func GetActivityQueue() ActivityQueue {
	return globalActivityQueue
}

// AsyncQueue implements ActivityQueue using asynq (Redis-based)
type AsyncQueue struct {
	client *asynq.Client
}

// NewAsyncQueue creates a new Redis-based async queue
func NewAsyncQueue(cfg *config.RedisConfig) (*AsyncQueue, error) {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}

	client := asynq.NewClient(redisOpt)

	// Verify the connection before accepting events
	inspector := asynq.NewInspector(redisOpt)
	defer inspector.Close()

	_, err := inspector.Queues()
	if err != nil {
		client.Close()
		return nil, err
	}

	return &AsyncQueue{client: client}, nil
}

// Enqueue adds an activity event to the async queue
func (q *AsyncQueue) Enqueue(event *ActivityEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	t := asynq.NewTask(TaskTypeActivity, payload)
	info, err := q.client.Enqueue(t,
		asynq.Queue("default"),
		asynq.MaxRetry(3),
	)
	if err != nil {
		return err
	}

	logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Str("action", event.Action).
		Msg("activity event enqueued")
	return nil
}

// IsAsync returns true for async queue
func (q *AsyncQueue) IsAsync() bool {
	return true
}

// Close closes the async queue client
func (q *AsyncQueue) Close() error {
	return q.client.Close()
}

// SyncQueue implements ActivityQueue with in-process processing (no Redis)
type SyncQueue struct {
	processor func(context.Context, *ActivityEvent) error
}

// NewSyncQueue creates a new synchronous queue
func NewSyncQueue() *SyncQueue {
	return &SyncQueue{}
}

// SetProcessor sets the function that records events
func (q *SyncQueue) SetProcessor(processor func(context.Context, *ActivityEvent) error) {
	q.processor = processor
}

// Enqueue records the event immediately. Processing happens in a goroutine so
// the mutating request is not held up by audit writes.
func (q *SyncQueue) Enqueue(event *ActivityEvent) error {
	if q.processor == nil {
		logger.Warnf("[SyncQueue] no processor set, activity event dropped")
		return nil
	}

	go func() {
		if err := q.processor(context.Background(), event); err != nil {
			logger.Warnf("[SyncQueue] activity event processing failed: %v", err)
		}
	}()

	return nil
}

// IsAsync returns false for sync queue
func (q *SyncQueue) IsAsync() bool {
	return false
}

// Close is a no-op for sync queue
func (q *SyncQueue) Close() error {
	return nil
}
