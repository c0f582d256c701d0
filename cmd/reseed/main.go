package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog-reseeder/config"
	"catalog-reseeder/internal/admin"
	"catalog-reseeder/internal/broker"
	"catalog-reseeder/internal/classify"
	"catalog-reseeder/internal/models"
	"catalog-reseeder/internal/pipeline"
	"catalog-reseeder/internal/redisclient"
	"catalog-reseeder/internal/store"
	"catalog-reseeder/internal/util"

	"go.uber.org/zap"
)

// Exit codes: 0 completed clean, 1 aborted, 2 completed with errors.
const (
	exitClean      = 0
	exitAborted    = 1
	exitWithErrors = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.Load()

	if err := util.InitLogger(cfg.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting catalog reseed")

	if cfg.Observ.JaegerEndpoint != "" {
		tp, err := util.InitTracer("catalog-reseeder", cfg.Observ.JaegerEndpoint)
		if err != nil {
			log.Fatalf("Failed to initialize tracer: %v", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(ctx); err != nil {
				log.Printf("Error shutting down tracer: %v", err)
			}
		}()
	}

	// The run is cancellable between chunks; a chunk in flight always
	// finishes before the pipeline stops.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var ds store.DocumentStore
	if cfg.Store.DryRun {
		logger.Info("Dry run: writing to in-memory store")
		ds = store.NewMemory()
	} else {
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		mongoStore, err := store.NewMongo(connectCtx, cfg.Store.MongoURI, cfg.Store.Database)
		if err != nil {
			log.Fatalf("Failed to connect to document store: %v", err)
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := mongoStore.Close(closeCtx); err != nil {
				log.Printf("Error closing document store: %v", err)
			}
		}()
		ds = mongoStore
		log.Println("Document store connected")
	}

	var locker pipeline.Locker
	if cfg.Redis.Addr != "" {
		redisClient, err := redisclient.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		locker = redisClient
		log.Println("Redis connected")
	}

	var publisher pipeline.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer producer.Close()
		publisher = broker.NewEventPublisher(producer)
		log.Println("Kafka producer initialized")
	}

	resolver := store.NewResolver(ds, classify.DefaultCategoryID)
	writer := store.NewBatchWriter(ds, cfg.Pipeline.BatchSize)
	p := pipeline.New(ds, resolver, writer, locker, publisher,
		cfg.Sources.Files, cfg.Pipeline.DefaultCurrency, cfg.Pipeline.BatchSize)

	stats, runErr := p.Run(ctx)

	if runErr == nil && cfg.Admin.Email != "" && cfg.Admin.Password != "" {
		if _, err := admin.EnsureAccount(ctx, ds, cfg.Admin.Email, cfg.Admin.Password, time.Now()); err != nil {
			logger.Error("Admin account bootstrap failed", zap.Error(err))
		}
	}

	printSummary(stats)

	if runErr != nil {
		logger.Error("Run aborted", zap.Error(runErr))
		return exitAborted
	}
	if stats.Outcome == models.OutcomeWithErrors {
		return exitWithErrors
	}
	return exitClean
}

// printSummary writes the informational run report to stdout.
func printSummary(stats *models.RunStats) {
	fmt.Printf("\n=== Catalog reseed: %s ===\n", stats.Outcome)
	fmt.Printf("State: %s, duration: %s\n",
		stats.State, stats.FinishedAt.Sub(stats.StartedAt).Round(time.Millisecond))
	fmt.Printf("Seeded: %d categories, %d vendors\n", stats.Categories, stats.Vendors)
	fmt.Printf("Products: %d written, %d errors\n", stats.TotalWritten(), stats.TotalErrors())

	for _, s := range stats.Sources {
		line := fmt.Sprintf("  %-30s vendor=%-25s loaded=%-5d written=%-5d errors=%d",
			s.File, s.Vendor, s.Loaded, s.Written, s.Errors)
		if s.LastError != "" {
			line += " last_error=" + s.LastError
		}
		fmt.Println(line)
	}

	if len(stats.CategoryCount) > 0 {
		dist, _ := json.Marshal(stats.CategoryCount)
		fmt.Printf("Category distribution: %s\n", dist)
	}
	for _, d := range stats.Discrepancies {
		fmt.Printf("DISCREPANCY: %s\n", d)
	}
}
