package api

import (
	"encoding/json"

	"github.com/gofiber/fiber/v3"

	"airvoice/internal/metrics"
	"airvoice/internal/sentiment"
	"airvoice/internal/validation"
)

// maxBatchSize caps a single batch analysis request.
const maxBatchSize = 500

// AnalyzeHandler exposes the sentiment engine for ad-hoc classification
// without persisting anything.
type AnalyzeHandler struct {
	engine *sentiment.Engine
}

// NewAnalyzeHandler creates a new analyze handler.
func NewAnalyzeHandler(engine *sentiment.Engine) *AnalyzeHandler {
	return &AnalyzeHandler{engine: engine}
}

// Analyze classifies a single text.
func (h *AnalyzeHandler) Analyze(c fiber.Ctx) error {
	var body struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if valid, msg := validation.ValidateText(body.Text); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	result := h.engine.Analyze(c.Context(), body.Text)
	metrics.RecordAnalysis(result.ModelVersion)
	return jsonSuccess(c, result)
}

// AnalyzeBatch classifies up to maxBatchSize texts in one request.
// Results come back in input order.
func (h *AnalyzeHandler) AnalyzeBatch(c fiber.Ctx) error {
	var body struct {
		Texts []string `json:"texts"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if len(body.Texts) == 0 {
		return jsonError(c, fiber.StatusBadRequest, "texts is required")
	}
	if len(body.Texts) > maxBatchSize {
		return jsonError(c, fiber.StatusBadRequest, "too many texts in one batch")
	}

	results := h.engine.AnalyzeBatch(c.Context(), body.Texts)
	for _, r := range results {
		metrics.RecordAnalysis(r.ModelVersion)
	}
	return jsonSuccess(c, fiber.Map{
		"results": results,
		"count":   len(results),
	})
}
