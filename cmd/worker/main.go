// Command main runs the deferred publication worker.
package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ripple/internal/config"
	"ripple/internal/database"
	"ripple/internal/repository"
	"ripple/internal/service"
	"ripple/internal/tasks"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.WaitFor(cfg, 30*time.Second)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	scheduler := tasks.NewAsynqScheduler(cfg.RedisURL)
	defer scheduler.Close()

	posts := service.NewPostService(
		repository.NewPostRepository(db),
		repository.NewProfileRepository(db),
		repository.NewTagRepository(db),
		scheduler,
	)

	worker := tasks.NewWorker(cfg.RedisURL, cfg.WorkerConcurrency, posts)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down worker...")
		worker.Shutdown()
	}()

	log.Printf("Worker starting with concurrency %d...", cfg.WorkerConcurrency)
	if err := worker.Run(); err != nil {
		log.Fatalf("Worker stopped: %v", err)
	}
}
