package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"airvoice/internal/analytics"
	"airvoice/internal/config"
	"airvoice/internal/db"
	"airvoice/internal/email"
	"airvoice/internal/jobs"
	"airvoice/internal/metrics"
	"airvoice/internal/sentiment"
	"airvoice/internal/server"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	// Initialize database
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	// Metrics
	metrics.Init(database)

	// Sentiment engine, with the external classifier when configured
	var engine *sentiment.Engine
	if cfg.MLServiceURL != "" {
		engine = sentiment.NewEngineWithClassifier(sentiment.NewHTTPClassifier(cfg.MLServiceURL))
		log.Printf("Sentiment engine: hybrid (ML service at %s)", cfg.MLServiceURL)
	} else {
		engine = sentiment.NewEngine()
		log.Println("Sentiment engine: rule-based")
	}

	analyticsEngine := analytics.NewEngine(analytics.Config{
		NPSTarget:          cfg.NPSTarget,
		CSATThreshold:      cfg.CSATThreshold,
		MinReviewsPerRoute: cfg.MinReviewsPerRoute,
	})

	notifier := email.NewNotifier(cfg, database)

	// Background re-analysis of unclassified feedback
	reanalyzer := jobs.NewReanalyzer(database, engine, cfg.ReanalyzeInterval, cfg.ReanalyzeBatch)
	go reanalyzer.Start(ctx)

	// HTTP server
	srv := server.New(cfg)
	if err := srv.RegisterRoutes(ctx, database, engine, analyticsEngine, notifier); err != nil {
		log.Fatalf("Failed to register routes: %v", err)
	}

	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	cancel()
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
