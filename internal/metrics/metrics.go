package metrics

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"airvoice/internal/db"
)

var (
	feedbackSentimentDesc = prometheus.NewDesc(
		"airvoice_feedback_total",
		"Analyzed feedback count by sentiment and language",
		[]string{"sentiment", "language"},
		nil,
	)

	analysesCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "airvoice_analyses_total",
			Help: "Total sentiment analyses performed by model version",
		},
		[]string{"model_version"},
	)
)

// SentimentCollector is a custom Prometheus collector that reads feedback
// counts from the database on each scrape.
type SentimentCollector struct {
	db *db.DB
}

// Describe sends the metric descriptor to the channel.
func (c *SentimentCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- feedbackSentimentDesc
}

// Collect queries the database for feedback counts and emits them as gauges.
func (c *SentimentCollector) Collect(ch chan<- prometheus.Metric) {
	counts, err := c.db.SentimentCounts(context.Background())
	if err != nil {
		slog.Error("failed to collect feedback metrics", "error", err)
		return
	}
	for sentiment, languages := range counts {
		for language, count := range languages {
			ch <- prometheus.MustNewConstMetric(
				feedbackSentimentDesc,
				prometheus.GaugeValue,
				float64(count),
				sentiment,
				language,
			)
		}
	}
}

var initOnce sync.Once

// Init registers the collectors. Must be called once at startup.
func Init(database *db.DB) {
	initOnce.Do(func() {
		prometheus.MustRegister(&SentimentCollector{db: database})
		prometheus.MustRegister(analysesCounter)
	})
}

// RecordAnalysis counts one completed sentiment analysis.
func RecordAnalysis(modelVersion string) {
	analysesCounter.WithLabelValues(modelVersion).Inc()
}
