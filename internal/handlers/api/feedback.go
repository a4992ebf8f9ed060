package api

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"airvoice/internal/config"
	"airvoice/internal/db"
	"airvoice/internal/email"
	"airvoice/internal/metrics"
	"airvoice/internal/models"
	"airvoice/internal/sentiment"
	"airvoice/internal/validation"
)

// FeedbackHandler handles feedback CRUD operations via JSON API.
type FeedbackHandler struct {
	db       *db.DB
	cfg      *config.Config
	engine   *sentiment.Engine
	notifier *email.Notifier
}

// NewFeedbackHandler creates a new API feedback handler.
func NewFeedbackHandler(database *db.DB, cfg *config.Config, engine *sentiment.Engine, notifier *email.Notifier) *FeedbackHandler {
	return &FeedbackHandler{db: database, cfg: cfg, engine: engine, notifier: notifier}
}

type feedbackBody struct {
	CustomerName  *string `json:"customer_name"`
	CustomerEmail *string `json:"customer_email"`
	FlightNumber  *string `json:"flight_number"`
	Type          string  `json:"feedback_type"`
	Text          string  `json:"text"`
	Priority      string  `json:"priority"`
	Source        string  `json:"source"`
	FeedbackDate  *string `json:"feedback_date"`
}

// Create stores a new feedback record, classifying it inline so the
// response already carries the sentiment.
func (h *FeedbackHandler) Create(c fiber.Ctx) error {
	var body feedbackBody
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if valid, msg := validation.ValidateText(body.Text); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}
	if body.Type == "" {
		body.Type = models.TypeComplaint
	}
	if !validation.ValidateFeedbackType(body.Type) {
		return jsonError(c, fiber.StatusBadRequest, "invalid feedback type")
	}
	if body.Priority != "" && !validation.ValidatePriority(body.Priority) {
		return jsonError(c, fiber.StatusBadRequest, "invalid priority")
	}

	if body.FlightNumber != nil && *body.FlightNumber != "" {
		normalized := validation.NormalizeFlightNumber(*body.FlightNumber)
		if !validation.ValidateFlightNumber(normalized) {
			return jsonError(c, fiber.StatusBadRequest, "invalid flight number")
		}
		body.FlightNumber = &normalized
	}

	var feedbackDate *time.Time
	if body.FeedbackDate != nil && *body.FeedbackDate != "" {
		t, err := validation.ParseDate(*body.FeedbackDate)
		if err != nil {
			return jsonError(c, fiber.StatusBadRequest, "invalid feedback date")
		}
		feedbackDate = &t
	}

	result := h.engine.Analyze(c.Context(), body.Text)
	now := time.Now()

	feedback := &models.Feedback{
		CustomerName:        body.CustomerName,
		CustomerEmail:       body.CustomerEmail,
		FlightNumber:        body.FlightNumber,
		Type:                body.Type,
		Text:                body.Text,
		Sentiment:           &result.Sentiment,
		SentimentConfidence: &result.Confidence,
		Language:            result.Language,
		PreprocessedText:    &result.PreprocessedText,
		ModelVersion:        &result.ModelVersion,
		Priority:            body.Priority,
		Source:              body.Source,
		FeedbackDate:        feedbackDate,
		AnalyzedAt:          &now,
	}
	if err := h.db.CreateFeedback(c.Context(), feedback); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to create feedback")
	}

	metrics.RecordAnalysis(result.ModelVersion)

	if h.notifier != nil && feedback.IsNegative() && feedback.Priority == models.PriorityUrgent {
		h.notifier.NotifyUrgentFeedback(feedback)
	}

	return jsonCreated(c, feedback)
}

// Get returns a single feedback by ID.
func (h *FeedbackHandler) Get(c fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid feedback id")
	}

	feedback, err := h.db.GetFeedback(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrFeedbackNotFound) {
			return jsonError(c, fiber.StatusNotFound, "feedback not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch feedback")
	}

	return jsonSuccess(c, feedback)
}

// List returns a filtered page of feedback.
func (h *FeedbackHandler) List(c fiber.Ctx) error {
	filter := db.FeedbackFilter{
		Sentiment: c.Query("sentiment"),
		Status:    c.Query("status"),
		Priority:  c.Query("priority"),
		Type:      c.Query("feedback_type"),
		Language:  c.Query("language"),
		Search:    c.Query("q"),
	}
	if filter.Sentiment != "" && !validation.ValidateSentiment(filter.Sentiment) {
		return jsonError(c, fiber.StatusBadRequest, "invalid sentiment filter")
	}
	if filter.Status != "" && !validation.ValidateStatus(filter.Status) {
		return jsonError(c, fiber.StatusBadRequest, "invalid status filter")
	}
	if fn := c.Query("flight_number"); fn != "" {
		filter.FlightNumber = validation.NormalizeFlightNumber(fn)
	}
	if from := c.Query("from"); from != "" {
		t, err := validation.ParseDate(from)
		if err != nil {
			return jsonError(c, fiber.StatusBadRequest, "invalid from date")
		}
		filter.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := validation.ParseDate(to)
		if err != nil {
			return jsonError(c, fiber.StatusBadRequest, "invalid to date")
		}
		filter.To = &t
	}

	page := fiber.Query(c, "page", 1)
	pageSize := fiber.Query(c, "page_size", 20)

	feedbacks, total, err := h.db.ListFeedback(c.Context(), filter, page, pageSize)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to list feedback")
	}
	if feedbacks == nil {
		feedbacks = []models.Feedback{}
	}

	totalPages := (total + pageSize - 1) / pageSize
	return jsonSuccess(c, models.FeedbackListResponse{
		Items:      feedbacks,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	})
}

// Update changes the workflow fields of a feedback record.
func (h *FeedbackHandler) Update(c fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid feedback id")
	}

	feedback, err := h.db.GetFeedback(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrFeedbackNotFound) {
			return jsonError(c, fiber.StatusNotFound, "feedback not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch feedback")
	}

	var body struct {
		Status     *string `json:"status"`
		Priority   *string `json:"priority"`
		AssignedTo *string `json:"assigned_to"`
		Notes      *string `json:"notes"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if body.Status != nil {
		if !validation.ValidateStatus(*body.Status) {
			return jsonError(c, fiber.StatusBadRequest, "invalid status")
		}
		feedback.Status = *body.Status
	}
	if body.Priority != nil {
		if !validation.ValidatePriority(*body.Priority) {
			return jsonError(c, fiber.StatusBadRequest, "invalid priority")
		}
		feedback.Priority = *body.Priority
	}
	if body.AssignedTo != nil {
		if *body.AssignedTo == "" {
			feedback.AssignedTo = nil
		} else {
			assignee, err := uuid.Parse(*body.AssignedTo)
			if err != nil {
				return jsonError(c, fiber.StatusBadRequest, "invalid assignee id")
			}
			feedback.AssignedTo = &assignee
		}
	}
	if body.Notes != nil {
		feedback.Notes = body.Notes
	}

	if err := h.db.UpdateFeedback(c.Context(), feedback); err != nil {
		if errors.Is(err, db.ErrFeedbackNotFound) {
			return jsonError(c, fiber.StatusNotFound, "feedback not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to update feedback")
	}

	return jsonSuccess(c, feedback)
}

// Delete removes a feedback record.
func (h *FeedbackHandler) Delete(c fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid feedback id")
	}

	if err := h.db.DeleteFeedback(c.Context(), id); err != nil {
		if errors.Is(err, db.ErrFeedbackNotFound) {
			return jsonError(c, fiber.StatusNotFound, "feedback not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to delete feedback")
	}

	return jsonSuccess(c, fiber.Map{"deleted": id})
}
