package models

import (
	"time"

	"github.com/google/uuid"
)

// Report types.
const (
	ReportSummary   = "summary"
	ReportDetailed  = "detailed"
	ReportSentiment = "sentiment_analysis"
	ReportTrend     = "trend_analysis"
)

// Report export formats. PDF and Excel rendering happen outside this
// service; it only exports machine-readable formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Report generation statuses.
const (
	ReportPending    = "pending"
	ReportGenerating = "generating"
	ReportCompleted  = "completed"
	ReportFailed     = "failed"
)

// Report is a generated analytical report over a filtered feedback set.
type Report struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Type        string    `json:"report_type"`
	Format      string    `json:"file_format"`
	Status      string    `json:"status"`

	DateRangeStart *time.Time     `json:"date_range_start"`
	DateRangeEnd   *time.Time     `json:"date_range_end"`
	Filters        map[string]any `json:"filters,omitempty"`

	TotalRecords  int `json:"total_records"`
	PositiveCount int `json:"positive_count"`
	NegativeCount int `json:"negative_count"`
	NeutralCount  int `json:"neutral_count"`

	// Payload holds the generated aggregate data (NPS, CSAT, rankings,
	// trends) as produced by the analytics engine, stored as JSONB.
	Payload []byte `json:"-"`

	ErrorMessage *string `json:"error_message,omitempty"`

	CreatedBy   uuid.UUID  `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	GeneratedAt *time.Time `json:"generated_at"`
}

// IsCompleted returns true once the report payload is available.
func (r *Report) IsCompleted() bool {
	return r.Status == ReportCompleted
}
