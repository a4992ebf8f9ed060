package jobs

import (
	"context"
	"log"
	"time"

	"airvoice/internal/db"
	"airvoice/internal/metrics"
	"airvoice/internal/sentiment"
)

// Reanalyzer classifies feedback rows that were ingested without a
// sentiment (bulk uploads, imports) in the background.
type Reanalyzer struct {
	db        *db.DB
	engine    *sentiment.Engine
	interval  time.Duration
	batchSize int
}

// NewReanalyzer creates a new background re-analyzer.
func NewReanalyzer(database *db.DB, engine *sentiment.Engine, interval time.Duration, batchSize int) *Reanalyzer {
	if batchSize < 1 {
		batchSize = 100
	}
	return &Reanalyzer{
		db:        database,
		engine:    engine,
		interval:  interval,
		batchSize: batchSize,
	}
}

// Start begins the background analysis loop.
func (r *Reanalyzer) Start(ctx context.Context) {
	log.Printf("Reanalyzer started (interval: %v, batch: %d)", r.interval, r.batchSize)

	// Run immediately on start
	r.runBatch(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Reanalyzer stopped")
			return
		case <-ticker.C:
			r.runBatch(ctx)
		}
	}
}

// runBatch analyzes one batch of unclassified feedback.
func (r *Reanalyzer) runBatch(ctx context.Context) {
	feedbacks, err := r.db.ListUnanalyzed(ctx, r.batchSize)
	if err != nil {
		log.Printf("Reanalyzer: failed to list feedback: %v", err)
		return
	}
	if len(feedbacks) == 0 {
		return
	}

	log.Printf("Reanalyzer: analyzing %d feedbacks", len(feedbacks))

	texts := make([]string, len(feedbacks))
	for i, f := range feedbacks {
		texts[i] = f.Text
	}
	results := r.engine.AnalyzeBatch(ctx, texts)

	for i, f := range feedbacks {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res := results[i]
		if res.Error != "" {
			log.Printf("Reanalyzer: feedback %d failed: %s", f.ID, res.Error)
			continue
		}
		err := r.db.SetFeedbackAnalysis(ctx, f.ID,
			res.Sentiment, res.Confidence, res.Language, res.PreprocessedText, res.ModelVersion)
		if err != nil {
			log.Printf("Reanalyzer: failed to store analysis for %d: %v", f.ID, err)
			continue
		}
		metrics.RecordAnalysis(res.ModelVersion)
	}
}
