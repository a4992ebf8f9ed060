package handlers

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"airvoice/internal/analytics"
	"airvoice/internal/config"
	"airvoice/internal/db"
	"airvoice/internal/models"
)

// DashboardHandler renders the HTML dashboard.
type DashboardHandler struct {
	db     *db.DB
	cfg    *config.Config
	engine *analytics.Engine
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(database *db.DB, cfg *config.Config, engine *analytics.Engine) *DashboardHandler {
	return &DashboardHandler{db: database, cfg: cfg, engine: engine}
}

// Index renders the dashboard with the last 30 days of aggregates.
func (h *DashboardHandler) Index(c fiber.Ctx) error {
	user, _ := c.Locals("user").(*models.User)

	to := time.Now()
	from := to.AddDate(0, 0, -30)

	feedbacks, err := h.db.FeedbackBetween(c.Context(), from, to)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load feedback")
	}

	records := make([]analytics.Record, 0, len(feedbacks))
	for _, f := range feedbacks {
		if f.Sentiment == nil {
			continue
		}
		r := analytics.Record{Sentiment: *f.Sentiment, Language: f.Language, Text: f.Text}
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

	return c.Render("dashboard", fiber.Map{
		"Title":      "Dashboard",
		"SiteTitle":  h.cfg.SiteTitle,
		"SiteFooter": h.cfg.SiteFooter,
		"User":       user,
		"Overview":   h.engine.Overview(records),
		"NPS":        h.engine.NPS(records, nil),
		"CSAT":       h.engine.CSAT(records, nil),
		"Routes":     h.engine.RankRoutes(records, analytics.RankByWeighted, 5),
		"Complaints": h.engine.TopComplaints(records, 5),
		"Negatives":  h.engine.TopNegative(records, 5),
	})
}
