package api

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"airvoice/internal/analytics"
	"airvoice/internal/db"
	"airvoice/internal/models"
	"airvoice/internal/validation"
)

// AnalyticsHandler serves the aggregate endpoints: NPS, CSAT, route
// rankings, trends and complaint categories.
type AnalyticsHandler struct {
	db     *db.DB
	engine *analytics.Engine
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(database *db.DB, engine *analytics.Engine) *AnalyticsHandler {
	return &AnalyticsHandler{db: database, engine: engine}
}

// toRecords reduces feedback rows to the fields the analytics engine needs.
func toRecords(feedbacks []models.Feedback) []analytics.Record {
	records := make([]analytics.Record, 0, len(feedbacks))
	for _, f := range feedbacks {
		if f.Sentiment == nil {
			continue
		}
		r := analytics.Record{
			Sentiment: *f.Sentiment,
			Language:  f.Language,
			Text:      f.Text,
		}
		if f.FlightNumber != nil {
			r.Route = *f.FlightNumber
		}
		if f.SentimentConfidence != nil {
			r.Confidence = *f.SentimentConfidence
		}
		if f.FeedbackDate != nil {
			r.Date = f.FeedbackDate
		} else {
			created := f.CreatedAt
			r.Date = &created
		}
		records = append(records, r)
	}
	return records
}

// dateRange reads from/to query parameters, defaulting to the last 30 days.
func dateRange(c fiber.Ctx) (time.Time, time.Time, error) {
	to := time.Now()
	from := to.AddDate(0, 0, -30)

	if v := c.Query("from"); v != "" {
		t, err := validation.ParseDate(v)
		if err != nil {
			return from, to, err
		}
		from = t
	}
	if v := c.Query("to"); v != "" {
		t, err := validation.ParseDate(v)
		if err != nil {
			return from, to, err
		}
		to = t
	}
	return from, to, nil
}

// loadRange fetches analyzed feedback for the requested window plus the
// preceding window of equal length for period-over-period comparison.
func (h *AnalyticsHandler) loadRange(c fiber.Ctx) (current, previous []analytics.Record, err error) {
	from, to, err := dateRange(c)
	if err != nil {
		return nil, nil, err
	}

	cur, err := h.db.FeedbackBetween(c.Context(), from, to)
	if err != nil {
		return nil, nil, err
	}

	span := to.Sub(from)
	prev, err := h.db.FeedbackBetween(c.Context(), from.Add(-span), from)
	if err != nil {
		return nil, nil, err
	}
	return toRecords(cur), toRecords(prev), nil
}

// NPS returns the Net Promoter Score for the requested window.
func (h *AnalyticsHandler) NPS(c fiber.Ctx) error {
	current, previous, err := h.loadRange(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid date range")
	}
	return jsonSuccess(c, h.engine.NPS(current, previous))
}

// CSAT returns the customer satisfaction score for the requested window.
func (h *AnalyticsHandler) CSAT(c fiber.Ctx) error {
	current, previous, err := h.loadRange(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid date range")
	}
	return jsonSuccess(c, h.engine.CSAT(current, previous))
}

// Routes returns the route ranking for the requested window.
func (h *AnalyticsHandler) Routes(c fiber.Ctx) error {
	method := c.Query("method", analytics.RankByWeighted)
	if !validation.ValidateRankingMethod(method) {
		return jsonError(c, fiber.StatusBadRequest, "invalid ranking method")
	}
	limit := fiber.Query(c, "limit", 10)

	current, _, err := h.loadRange(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid date range")
	}
	return jsonSuccess(c, h.engine.RankRoutes(current, method, limit))
}

// Trend returns the monthly NPS history. Defaults to the last 6 months.
func (h *AnalyticsHandler) Trend(c fiber.Ctx) error {
	months := fiber.Query(c, "months", 6)
	if months < 1 || months > 36 {
		return jsonError(c, fiber.StatusBadRequest, "months must be between 1 and 36")
	}

	to := time.Now()
	from := analytics.TrendStart(to, months)
	feedbacks, err := h.db.FeedbackBetween(c.Context(), from, to)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to load feedback")
	}
	return jsonSuccess(c, h.engine.MonthlyTrend(toRecords(feedbacks), from, to))
}

// Daily returns per-day sentiment counts for the requested window.
func (h *AnalyticsHandler) Daily(c fiber.Ctx) error {
	from, to, err := dateRange(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid date range")
	}
	feedbacks, err := h.db.FeedbackBetween(c.Context(), from, to)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to load feedback")
	}
	return jsonSuccess(c, h.engine.DailyTrend(toRecords(feedbacks), from, to))
}

// Complaints returns the most frequent complaint categories.
func (h *AnalyticsHandler) Complaints(c fiber.Ctx) error {
	limit := fiber.Query(c, "limit", 10)
	current, _, err := h.loadRange(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid date range")
	}
	return jsonSuccess(c, h.engine.TopComplaints(current, limit))
}

// Overview returns the dashboard headline stats.
func (h *AnalyticsHandler) Overview(c fiber.Ctx) error {
	current, _, err := h.loadRange(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid date range")
	}
	return jsonSuccess(c, h.engine.Overview(current))
}

// Comparison compares the requested window against the preceding window
// of equal length.
func (h *AnalyticsHandler) Comparison(c fiber.Ctx) error {
	current, previous, err := h.loadRange(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid date range")
	}

	cur := h.engine.Overview(current)
	prev := h.engine.Overview(previous)
	return jsonSuccess(c, fiber.Map{
		"current":        cur,
		"previous":       prev,
		"change_percent": changePercent(prev.Total, cur.Total),
	})
}

// Route returns the stats for a single route in the requested window.
func (h *AnalyticsHandler) Route(c fiber.Ctx) error {
	route := validation.NormalizeFlightNumber(c.Params("route"))
	if !validation.ValidateFlightNumber(route) {
		return jsonError(c, fiber.StatusBadRequest, "invalid flight number")
	}

	current, _, err := h.loadRange(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid date range")
	}

	var filtered []analytics.Record
	for _, r := range current {
		if r.Route == route {
			filtered = append(filtered, r)
		}
	}
	stats := h.engine.RankRoutes(filtered, analytics.RankByWeighted, 1)
	if len(stats) == 0 {
		return jsonError(c, fiber.StatusNotFound, "no feedback for route")
	}
	return jsonSuccess(c, stats[0])
}

func changePercent(previous, current int) float64 {
	if previous == 0 {
		return 0
	}
	return float64(current-previous) / float64(previous) * 100
}

// TopNegative returns the highest-confidence negative feedback samples.
func (h *AnalyticsHandler) TopNegative(c fiber.Ctx) error {
	limit := fiber.Query(c, "limit", 5)
	current, _, err := h.loadRange(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid date range")
	}
	return jsonSuccess(c, h.engine.TopNegative(current, limit))
}
