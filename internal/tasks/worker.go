package tasks

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"ripple/internal/middleware"
	"ripple/internal/service"

	"github.com/hibiken/asynq"
)

// Worker consumes scheduled publication tasks and replays them through the
// post service.
type Worker struct {
	server *asynq.Server
	posts  *service.PostService
}

// NewWorker creates a worker bound to the given Redis queue.
func NewWorker(redisAddr string, concurrency int, posts *service.PostService) *Worker {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency:     concurrency,
			ShutdownTimeout: 10 * time.Second,
		},
	)
	return &Worker{server: srv, posts: posts}
}

// Run blocks processing tasks until Shutdown is called.
func (w *Worker) Run() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeScheduledPost, w.HandleScheduledPost)
	return w.server.Run(mux)
}

// Shutdown stops the worker, waiting for in-flight tasks.
func (w *Worker) Shutdown() {
	w.server.Shutdown()
}

// HandleScheduledPost replays a deferred creation. The input goes through the
// same validation as an inline creation, so content that became invalid since
// enqueue time (a deleted profile, say) fails here. Failures are logged and
// swallowed: the client already got its 202 and there is nobody to retry for.
func (w *Worker) HandleScheduledPost(ctx context.Context, t *asynq.Task) error {
	var in service.CreatePostInput
	if err := json.Unmarshal(t.Payload(), &in); err != nil {
		slog.ErrorContext(ctx, "scheduled post payload unreadable", "error", err)
		middleware.ScheduledPostResults.WithLabelValues("invalid_payload").Inc()
		return nil
	}

	post, _, err := w.posts.CreatePost(ctx, in)
	if err != nil {
		slog.ErrorContext(ctx, "scheduled post publication failed",
			"user_id", in.UserID,
			"title", in.Title,
			"error", err)
		middleware.ScheduledPostResults.WithLabelValues("failed").Inc()
		return nil
	}

	slog.InfoContext(ctx, "scheduled post published",
		"post_id", post.ID,
		"user_id", in.UserID)
	middleware.ScheduledPostResults.WithLabelValues("published").Inc()
	return nil
}
