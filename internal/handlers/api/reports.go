package api

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"airvoice/internal/analytics"
	"airvoice/internal/db"
	"airvoice/internal/models"
	"airvoice/internal/validation"
)

// ReportHandler manages generated analytical reports.
type ReportHandler struct {
	db     *db.DB
	engine *analytics.Engine
}

// NewReportHandler creates a new report handler.
func NewReportHandler(database *db.DB, engine *analytics.Engine) *ReportHandler {
	return &ReportHandler{db: database, engine: engine}
}

// reportPayload is the JSONB document stored on a completed report.
type reportPayload struct {
	NPS        analytics.NPSResult        `json:"nps"`
	CSAT       analytics.CSATResult       `json:"csat"`
	Routes     []analytics.RouteStats     `json:"routes"`
	Trend      analytics.TrendResult      `json:"trend"`
	Complaints []analytics.ComplaintCount `json:"complaints"`
	Overview   analytics.OverviewStats    `json:"overview"`
}

// Create generates a report over a filtered feedback window. Generation
// is synchronous: the aggregates are cheap enough to compute inline.
func (h *ReportHandler) Create(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var body struct {
		Title       string  `json:"title"`
		Description *string `json:"description"`
		Type        string  `json:"report_type"`
		Format      string  `json:"file_format"`
		From        string  `json:"date_range_start"`
		To          string  `json:"date_range_end"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if body.Title == "" {
		return jsonError(c, fiber.StatusBadRequest, "title is required")
	}
	if body.Type == "" {
		body.Type = models.ReportSummary
	}
	if !validation.ValidateReportType(body.Type) {
		return jsonError(c, fiber.StatusBadRequest, "invalid report type")
	}
	if body.Format == "" {
		body.Format = models.FormatJSON
	}
	if body.Format != models.FormatCSV && body.Format != models.FormatJSON {
		return jsonError(c, fiber.StatusBadRequest, "invalid file format")
	}

	to := time.Now()
	from := to.AddDate(0, -1, 0)
	if body.From != "" {
		t, err := validation.ParseDate(body.From)
		if err != nil {
			return jsonError(c, fiber.StatusBadRequest, "invalid date_range_start")
		}
		from = t
	}
	if body.To != "" {
		t, err := validation.ParseDate(body.To)
		if err != nil {
			return jsonError(c, fiber.StatusBadRequest, "invalid date_range_end")
		}
		to = t
	}
	if to.Before(from) {
		return jsonError(c, fiber.StatusBadRequest, "date range end precedes start")
	}

	report := &models.Report{
		Title:          body.Title,
		Description:    body.Description,
		Type:           body.Type,
		Format:         body.Format,
		DateRangeStart: &from,
		DateRangeEnd:   &to,
		Filters: map[string]any{
			"from": from.Format(time.RFC3339),
			"to":   to.Format(time.RFC3339),
		},
		CreatedBy: user.ID,
	}
	if err := h.db.CreateReport(c.Context(), report); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to create report")
	}

	feedbacks, err := h.db.FeedbackBetween(c.Context(), from, to)
	if err != nil {
		_ = h.db.FailReport(c.Context(), report.ID, "failed to load feedback")
		return jsonError(c, fiber.StatusInternalServerError, "failed to load feedback")
	}
	records := toRecords(feedbacks)

	payload := reportPayload{
		NPS:        h.engine.NPS(records, nil),
		CSAT:       h.engine.CSAT(records, nil),
		Routes:     h.engine.RankRoutes(records, analytics.RankByWeighted, 10),
		Trend:      h.engine.MonthlyTrend(records, from, to),
		Complaints: h.engine.TopComplaints(records, 10),
		Overview:   h.engine.Overview(records),
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		_ = h.db.FailReport(c.Context(), report.ID, "failed to encode payload")
		return jsonError(c, fiber.StatusInternalServerError, "failed to encode report")
	}

	report.Payload = encoded
	report.TotalRecords = payload.Overview.Total
	report.PositiveCount = payload.Overview.Positive
	report.NegativeCount = payload.Overview.Negative
	report.NeutralCount = payload.Overview.Neutral
	if err := h.db.CompleteReport(c.Context(), report); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to store report")
	}

	return jsonCreated(c, report)
}

// List returns recent reports.
func (h *ReportHandler) List(c fiber.Ctx) error {
	limit := fiber.Query(c, "limit", 20)
	reports, err := h.db.ListReports(c.Context(), limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to list reports")
	}
	if reports == nil {
		reports = []models.Report{}
	}
	return jsonSuccess(c, reports)
}

// Get returns a single report.
func (h *ReportHandler) Get(c fiber.Ctx) error {
	report, err := h.loadReport(c)
	if err != nil {
		return err
	}
	return jsonSuccess(c, report)
}

// Download streams the report payload in its stored format.
func (h *ReportHandler) Download(c fiber.Ctx) error {
	report, err := h.loadReport(c)
	if err != nil {
		return err
	}
	if !report.IsCompleted() {
		return jsonError(c, fiber.StatusConflict, "report is not completed")
	}

	filename := fmt.Sprintf("report-%s.%s", report.ID, report.Format)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)

	if report.Format == models.FormatJSON {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(report.Payload)
	}

	var payload reportPayload
	if err := json.Unmarshal(report.Payload, &payload); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to decode report payload")
	}
	c.Set(fiber.HeaderContentType, "text/csv")
	return c.SendString(renderCSV(payload))
}

// Delete removes a report.
func (h *ReportHandler) Delete(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid report id")
	}
	if err := h.db.DeleteReport(c.Context(), id); err != nil {
		if errors.Is(err, db.ErrReportNotFound) {
			return jsonError(c, fiber.StatusNotFound, "report not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to delete report")
	}
	return jsonSuccess(c, fiber.Map{"deleted": id})
}

func (h *ReportHandler) loadReport(c fiber.Ctx) (*models.Report, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, jsonError(c, fiber.StatusBadRequest, "invalid report id")
	}
	report, err := h.db.GetReport(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrReportNotFound) {
			return nil, jsonError(c, fiber.StatusNotFound, "report not found")
		}
		return nil, jsonError(c, fiber.StatusInternalServerError, "failed to fetch report")
	}
	return report, nil
}

// renderCSV flattens the report payload into CSV sections.
func renderCSV(p reportPayload) string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	_ = w.Write([]string{"metric", "value"})
	_ = w.Write([]string{"nps_score", formatFloat(p.NPS.Score)})
	_ = w.Write([]string{"nps_grade", p.NPS.Grade})
	_ = w.Write([]string{"csat_score", formatFloat(p.CSAT.Score)})
	_ = w.Write([]string{"csat_grade", p.CSAT.Grade})
	_ = w.Write([]string{"total_records", strconv.Itoa(p.Overview.Total)})
	_ = w.Write([]string{"positive", strconv.Itoa(p.Overview.Positive)})
	_ = w.Write([]string{"negative", strconv.Itoa(p.Overview.Negative)})
	_ = w.Write([]string{"neutral", strconv.Itoa(p.Overview.Neutral)})
	_ = w.Write(nil)

	_ = w.Write([]string{"route", "rank", "total_reviews", "positive_rate", "avg_rating", "wilson_score", "confidence"})
	for _, r := range p.Routes {
		_ = w.Write([]string{
			r.Route,
			strconv.Itoa(r.Rank),
			strconv.Itoa(r.Total),
			formatFloat(r.PositiveRate),
			formatFloat(r.AvgRating),
			formatFloat(r.WilsonScore),
			r.Confidence,
		})
	}
	_ = w.Write(nil)

	_ = w.Write([]string{"complaint_category", "count", "percentage"})
	for _, cat := range p.Complaints {
		_ = w.Write([]string{cat.Category, strconv.Itoa(cat.Count), formatFloat(cat.Percentage)})
	}

	w.Flush()
	return sb.String()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
