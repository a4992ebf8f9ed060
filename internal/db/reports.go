package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"airvoice/internal/models"
)

const reportColumns = `id, title, description, report_type, file_format, status,
	date_range_start, date_range_end, filters,
	total_records, positive_count, negative_count, neutral_count,
	payload, error_message, created_by, created_at, generated_at`

func scanReport(row pgx.Row) (*models.Report, error) {
	var r models.Report
	err := row.Scan(
		&r.ID,
		&r.Title,
		&r.Description,
		&r.Type,
		&r.Format,
		&r.Status,
		&r.DateRangeStart,
		&r.DateRangeEnd,
		&r.Filters,
		&r.TotalRecords,
		&r.PositiveCount,
		&r.NegativeCount,
		&r.NeutralCount,
		&r.Payload,
		&r.ErrorMessage,
		&r.CreatedBy,
		&r.CreatedAt,
		&r.GeneratedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateReport inserts a new report in pending status.
func (d *DB) CreateReport(ctx context.Context, r *models.Report) error {
	query := `
		INSERT INTO reports (title, description, report_type, file_format, status,
			date_range_start, date_range_end, filters, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`
	status := r.Status
	if status == "" {
		status = models.ReportPending
	}

	err := d.Pool.QueryRow(ctx, query,
		r.Title,
		r.Description,
		r.Type,
		r.Format,
		status,
		r.DateRangeStart,
		r.DateRangeEnd,
		r.Filters,
		r.CreatedBy,
	).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		return err
	}

	r.Status = status
	return nil
}

// GetReport returns a single report by ID.
func (d *DB) GetReport(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = $1`
	return scanReport(d.Pool.QueryRow(ctx, query, id))
}

// ListReports returns the most recent reports, newest first.
func (d *DB) ListReports(ctx context.Context, limit int) ([]models.Report, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	query := `SELECT ` + reportColumns + ` FROM reports ORDER BY created_at DESC LIMIT $1`
	rows, err := d.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []models.Report
	for rows.Next() {
		var r models.Report
		if err := rows.Scan(
			&r.ID,
			&r.Title,
			&r.Description,
			&r.Type,
			&r.Format,
			&r.Status,
			&r.DateRangeStart,
			&r.DateRangeEnd,
			&r.Filters,
			&r.TotalRecords,
			&r.PositiveCount,
			&r.NegativeCount,
			&r.NeutralCount,
			&r.Payload,
			&r.ErrorMessage,
			&r.CreatedBy,
			&r.CreatedAt,
			&r.GeneratedAt,
		); err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

// CompleteReport stores the generated payload and counts and marks the
// report completed.
func (d *DB) CompleteReport(ctx context.Context, r *models.Report) error {
	query := `
		UPDATE reports
		SET status = $2, payload = $3,
			total_records = $4, positive_count = $5, negative_count = $6, neutral_count = $7,
			generated_at = NOW()
		WHERE id = $1
		RETURNING generated_at
	`
	err := d.Pool.QueryRow(ctx, query, r.ID, models.ReportCompleted, r.Payload,
		r.TotalRecords, r.PositiveCount, r.NegativeCount, r.NeutralCount).
		Scan(&r.GeneratedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrReportNotFound
	}
	if err == nil {
		r.Status = models.ReportCompleted
	}
	return err
}

// FailReport marks a report failed with an error message.
func (d *DB) FailReport(ctx context.Context, id uuid.UUID, message string) error {
	tag, err := d.Pool.Exec(ctx,
		`UPDATE reports SET status = $2, error_message = $3 WHERE id = $1`,
		id, models.ReportFailed, message)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrReportNotFound
	}
	return nil
}

// DeleteReport removes a report.
func (d *DB) DeleteReport(ctx context.Context, id uuid.UUID) error {
	tag, err := d.Pool.Exec(ctx, `DELETE FROM reports WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrReportNotFound
	}
	return nil
}
