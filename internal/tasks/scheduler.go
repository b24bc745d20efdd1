// Package tasks wires deferred post publication through an asynq queue backed
// by Redis.
package tasks

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"ripple/internal/service"

	"github.com/hibiken/asynq"
)

// TypeScheduledPost is the task type for deferred post publication.
const TypeScheduledPost = "post:scheduled"

// NewScheduledPostTask serializes a creation input into an asynq task.
func NewScheduledPostTask(in service.CreatePostInput) (*asynq.Task, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeScheduledPost, payload), nil
}

// AsynqScheduler implements service.Scheduler on top of an asynq client.
type AsynqScheduler struct {
	client *asynq.Client
}

// NewAsynqScheduler creates a scheduler publishing to the given Redis queue.
func NewAsynqScheduler(redisAddr string) *AsynqScheduler {
	return &AsynqScheduler{
		client: asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr}),
	}
}

// Schedule enqueues the input to run at the given time. Retries are disabled:
// a publication that fails its one shot is logged and dropped, matching how
// the API reports 202 without any completion guarantee.
func (s *AsynqScheduler) Schedule(ctx context.Context, in service.CreatePostInput, at time.Time) error {
	task, err := NewScheduledPostTask(in)
	if err != nil {
		return err
	}
	info, err := s.client.EnqueueContext(ctx, task, asynq.ProcessAt(at), asynq.MaxRetry(0))
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "scheduled post enqueued",
		"task_id", info.ID,
		"queue", info.Queue,
		"process_at", at)
	return nil
}

// Close releases the underlying client connection.
func (s *AsynqScheduler) Close() error {
	return s.client.Close()
}
