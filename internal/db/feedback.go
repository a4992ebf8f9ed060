package db

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"airvoice/internal/models"
)

// feedbackColumns is the standard column list for feedback queries.
const feedbackColumns = `id, customer_name, customer_email, flight_number, feedback_type, text,
	sentiment, sentiment_confidence, language, preprocessed_text, model_version,
	status, priority, assigned_to, notes, source,
	feedback_date, analyzed_at, created_at, updated_at`

// scanFeedback scans a row into a Feedback struct.
func scanFeedback(row pgx.Row) (*models.Feedback, error) {
	var f models.Feedback
	err := row.Scan(
		&f.ID,
		&f.CustomerName,
		&f.CustomerEmail,
		&f.FlightNumber,
		&f.Type,
		&f.Text,
		&f.Sentiment,
		&f.SentimentConfidence,
		&f.Language,
		&f.PreprocessedText,
		&f.ModelVersion,
		&f.Status,
		&f.Priority,
		&f.AssignedTo,
		&f.Notes,
		&f.Source,
		&f.FeedbackDate,
		&f.AnalyzedAt,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrFeedbackNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// scanFeedbacks scans multiple rows into a slice of Feedback.
func scanFeedbacks(rows pgx.Rows) ([]models.Feedback, error) {
	defer rows.Close()

	var feedbacks []models.Feedback
	for rows.Next() {
		var f models.Feedback
		if err := rows.Scan(
			&f.ID,
			&f.CustomerName,
			&f.CustomerEmail,
			&f.FlightNumber,
			&f.Type,
			&f.Text,
			&f.Sentiment,
			&f.SentimentConfidence,
			&f.Language,
			&f.PreprocessedText,
			&f.ModelVersion,
			&f.Status,
			&f.Priority,
			&f.AssignedTo,
			&f.Notes,
			&f.Source,
			&f.FeedbackDate,
			&f.AnalyzedAt,
			&f.CreatedAt,
			&f.UpdatedAt,
		); err != nil {
			return nil, err
		}
		feedbacks = append(feedbacks, f)
	}

	return feedbacks, rows.Err()
}

// CreateFeedback inserts a new feedback record.
func (d *DB) CreateFeedback(ctx context.Context, f *models.Feedback) error {
	query := `
		INSERT INTO feedbacks (customer_name, customer_email, flight_number, feedback_type, text,
			sentiment, sentiment_confidence, language, preprocessed_text, model_version,
			status, priority, source, feedback_date, analyzed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at
	`

	status := f.Status
	if status == "" {
		status = models.StatusPending
	}
	priority := f.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	source := f.Source
	if source == "" {
		source = models.SourceManual
	}

	err := d.Pool.QueryRow(ctx, query,
		f.CustomerName,
		f.CustomerEmail,
		f.FlightNumber,
		f.Type,
		f.Text,
		f.Sentiment,
		f.SentimentConfidence,
		f.Language,
		f.PreprocessedText,
		f.ModelVersion,
		status,
		priority,
		source,
		f.FeedbackDate,
		f.AnalyzedAt,
	).Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return err
	}

	f.Status = status
	f.Priority = priority
	f.Source = source
	return nil
}

// GetFeedback returns a single feedback by ID.
func (d *DB) GetFeedback(ctx context.Context, id int64) (*models.Feedback, error) {
	query := `SELECT ` + feedbackColumns + ` FROM feedbacks WHERE id = $1`
	return scanFeedback(d.Pool.QueryRow(ctx, query, id))
}

// UpdateFeedback updates the editable workflow fields of a feedback.
func (d *DB) UpdateFeedback(ctx context.Context, f *models.Feedback) error {
	query := `
		UPDATE feedbacks
		SET status = $2, priority = $3, assigned_to = $4, notes = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := d.Pool.QueryRow(ctx, query, f.ID, f.Status, f.Priority, f.AssignedTo, f.Notes).
		Scan(&f.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrFeedbackNotFound
	}
	return err
}

// SetFeedbackAnalysis stores a classification result on a feedback row.
func (d *DB) SetFeedbackAnalysis(ctx context.Context, id int64, sentiment string, confidence float64, language, preprocessed, modelVersion string) error {
	query := `
		UPDATE feedbacks
		SET sentiment = $2, sentiment_confidence = $3, language = $4,
			preprocessed_text = $5, model_version = $6, analyzed_at = NOW(), updated_at = NOW()
		WHERE id = $1
	`
	tag, err := d.Pool.Exec(ctx, query, id, sentiment, confidence, language, preprocessed, modelVersion)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrFeedbackNotFound
	}
	return nil
}

// DeleteFeedback removes a feedback record.
func (d *DB) DeleteFeedback(ctx context.Context, id int64) error {
	tag, err := d.Pool.Exec(ctx, `DELETE FROM feedbacks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrFeedbackNotFound
	}
	return nil
}

// FeedbackFilter narrows feedback listings. Zero values mean "any".
type FeedbackFilter struct {
	Sentiment    string
	Status       string
	Priority     string
	Type         string
	Language     string
	FlightNumber string
	Search       string
	From         *time.Time
	To           *time.Time
}

// conditions builds the WHERE clauses and arguments for the filter.
func (f FeedbackFilter) conditions() ([]string, []any) {
	var clauses []string
	var args []any

	add := func(clause string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if f.Sentiment != "" {
		add("sentiment = $%d", f.Sentiment)
	}
	if f.Status != "" {
		add("status = $%d", f.Status)
	}
	if f.Priority != "" {
		add("priority = $%d", f.Priority)
	}
	if f.Type != "" {
		add("feedback_type = $%d", f.Type)
	}
	if f.Language != "" {
		add("language = $%d", f.Language)
	}
	if f.FlightNumber != "" {
		add("flight_number = $%d", f.FlightNumber)
	}
	if f.Search != "" {
		add("text ILIKE $%d", "%"+f.Search+"%")
	}
	if f.From != nil {
		add("COALESCE(feedback_date, created_at) >= $%d", *f.From)
	}
	if f.To != nil {
		add("COALESCE(feedback_date, created_at) <= $%d", *f.To)
	}
	return clauses, args
}

// ListFeedback returns a filtered page of feedback plus the total count
// matching the filter.
func (d *DB) ListFeedback(ctx context.Context, filter FeedbackFilter, page, pageSize int) ([]models.Feedback, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	clauses, args := filter.conditions()
	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}

	var total int
	if err := d.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM feedbacks`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + feedbackColumns + ` FROM feedbacks` + where +
		` ORDER BY created_at DESC LIMIT ` + strconv.Itoa(pageSize) +
		` OFFSET ` + strconv.Itoa((page-1)*pageSize)
	rows, err := d.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	feedbacks, err := scanFeedbacks(rows)
	if err != nil {
		return nil, 0, err
	}
	return feedbacks, total, nil
}

// FeedbackBetween returns analyzed feedback in a date range, for the
// analytics aggregates. Only rows with a sentiment are included.
func (d *DB) FeedbackBetween(ctx context.Context, from, to time.Time) ([]models.Feedback, error) {
	query := `SELECT ` + feedbackColumns + ` FROM feedbacks
		WHERE sentiment IS NOT NULL
		AND COALESCE(feedback_date, created_at) >= $1
		AND COALESCE(feedback_date, created_at) <= $2
		ORDER BY created_at DESC`
	rows, err := d.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	return scanFeedbacks(rows)
}

// ListUnanalyzed returns feedback rows still waiting for classification,
// oldest first.
func (d *DB) ListUnanalyzed(ctx context.Context, limit int) ([]models.Feedback, error) {
	query := `SELECT ` + feedbackColumns + ` FROM feedbacks
		WHERE sentiment IS NULL
		ORDER BY created_at ASC
		LIMIT $1`
	rows, err := d.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return scanFeedbacks(rows)
}

// SentimentCounts returns the number of analyzed feedbacks grouped by
// sentiment and language. Used by the metrics collector.
func (d *DB) SentimentCounts(ctx context.Context) (map[string]map[string]int, error) {
	query := `
		SELECT sentiment, language, COUNT(*)
		FROM feedbacks
		WHERE sentiment IS NOT NULL
		GROUP BY sentiment, language
	`
	rows, err := d.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]map[string]int)
	for rows.Next() {
		var sentiment, language string
		var count int
		if err := rows.Scan(&sentiment, &language, &count); err != nil {
			return nil, err
		}
		if counts[sentiment] == nil {
			counts[sentiment] = make(map[string]int)
		}
		counts[sentiment][language] = count
	}
	return counts, rows.Err()
}
