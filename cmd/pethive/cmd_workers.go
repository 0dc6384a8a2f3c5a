package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pethive/pethive/app/jobs"
	"github.com/pethive/pethive/config"
	"github.com/pethive/pethive/internal/server"
	"github.com/pethive/pethive/pkg/cache"
	"github.com/pethive/pethive/pkg/database"
	"github.com/pethive/pethive/pkg/queue"
	"github.com/pethive/pethive/pkg/schedule"
)

var queueWorkersFlag int

// bootWorkers wires the queue the same way the server does: Redis-backed
// when available, in-memory otherwise.
func bootWorkers() error {
	if err := config.Load(); err != nil {
		return err
	}
	if err := database.Connect(); err != nil {
		fmt.Println("Store unavailable, failed jobs will not be persisted.")
	}
	if err := cache.Connect(); err != nil {
		fmt.Println("Redis unavailable, using the in-memory queue.")
	}
	jobs.Boot()
	if cache.Available() {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}
	if database.Available() {
		queue.UseDB(database.DB)
	}
	return nil
}

// pethive queue:work
var queueWorkCmd = &cobra.Command{
	Use:   "queue:work",
	Short: "Start the queue worker",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootWorkers(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		workers := queueWorkersFlag
		if workers < 1 {
			workers = 5
		}

		fmt.Printf("Queue worker started (%d workers). Press Ctrl+C to stop.\n", workers)
		queue.StartWorkers(ctx, workers)

		<-ctx.Done()
		fmt.Println("\nQueue worker stopped.")
		return nil
	},
}

// pethive schedule:run
var scheduleRunCmd = &cobra.Command{
	Use:   "schedule:run",
	Short: "Start the task scheduler",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootWorkers(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		server.RegisterSchedules()

		tasks := schedule.List()
		if len(tasks) == 0 {
			fmt.Println("No scheduled tasks registered.")
		} else {
			fmt.Println("Registered scheduled tasks:")
			for _, t := range tasks {
				fmt.Println("  -", t)
			}
		}

		fmt.Println("Scheduler started. Press Ctrl+C to stop.")
		schedule.Start(ctx)

		<-ctx.Done()
		fmt.Println("\nScheduler stopped.")
		return nil
	},
}

func init() {
	queueWorkCmd.Flags().IntVarP(&queueWorkersFlag, "workers", "w", 5, "Number of concurrent workers")
}
