package models

import (
	"time"

	"github.com/google/uuid"
)

// Sentiment labels. Every classified feedback carries exactly one of these.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// Language codes as detected from character classes.
const (
	LanguageAR    = "AR"
	LanguageEN    = "EN"
	LanguageMixed = "Mixed"
)

// Feedback workflow statuses.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusReviewed   = "reviewed"
	StatusResolved   = "resolved"
	StatusRejected   = "rejected"
)

// Priority levels.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Feedback types.
const (
	TypeComplaint  = "complaint"
	TypeSuggestion = "suggestion"
	TypeCompliment = "compliment"
	TypeInquiry    = "inquiry"
)

// Feedback sources.
const (
	SourceManual = "manual"
	SourceUpload = "upload"
	SourceSurvey = "survey"
	SourceEmail  = "email"
	SourceSocial = "social"
)

// Feedback is a single piece of customer feedback with its classification.
type Feedback struct {
	ID int64 `json:"id"`

	CustomerName  *string `json:"customer_name"`
	CustomerEmail *string `json:"customer_email"`
	FlightNumber  *string `json:"flight_number"`

	Type string `json:"feedback_type"`
	Text string `json:"text"`

	Sentiment           *string  `json:"sentiment"`
	SentimentConfidence *float64 `json:"sentiment_confidence"`
	Language            string   `json:"language"`
	PreprocessedText    *string  `json:"preprocessed_text,omitempty"`
	ModelVersion        *string  `json:"model_version,omitempty"`

	Status   string `json:"status"`
	Priority string `json:"priority"`

	AssignedTo *uuid.UUID `json:"assigned_to"`
	Notes      *string    `json:"notes,omitempty"`

	Source string `json:"source"`

	FeedbackDate *time.Time `json:"feedback_date"`
	AnalyzedAt   *time.Time `json:"analyzed_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// IsNegative returns true if the feedback is classified negative.
func (f *Feedback) IsNegative() bool {
	return f.Sentiment != nil && *f.Sentiment == SentimentNegative
}

// IsOpen returns true if the feedback still needs attention.
func (f *Feedback) IsOpen() bool {
	return f.Status == StatusPending || f.Status == StatusInProgress
}

// ValidSentiments lists the accepted sentiment labels.
func ValidSentiments() []string {
	return []string{SentimentPositive, SentimentNegative, SentimentNeutral}
}

// ValidStatuses lists the accepted workflow statuses.
func ValidStatuses() []string {
	return []string{StatusPending, StatusInProgress, StatusReviewed, StatusResolved, StatusRejected}
}

// ValidPriorities lists the accepted priority levels.
func ValidPriorities() []string {
	return []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
}
