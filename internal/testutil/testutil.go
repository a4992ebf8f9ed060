// Package testutil provides test utilities and helpers.
package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"airvoice/internal/db"
)

// TestDB creates a test database connection and returns a cleanup
// function. Tests are skipped when TEST_DATABASE_URL is not set.
func TestDB(t *testing.T) (*db.DB, func()) {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database test")
	}

	ctx := context.Background()
	database, err := db.New(ctx, connString)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	// Run migrations
	if err := database.RunMigrations(connString); err != nil {
		database.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	cleanup := func() {
		cleanupTestData(ctx, database.Pool)
		database.Close()
	}

	return database, cleanup
}

// cleanupTestData removes all test data from the database.
func cleanupTestData(ctx context.Context, pool *pgxpool.Pool) {
	// Delete in order to respect foreign keys
	pool.Exec(ctx, "DELETE FROM reports")
	pool.Exec(ctx, "DELETE FROM feedbacks")
	pool.Exec(ctx, "DELETE FROM users")
}

// CreateTestUser creates a test user and returns the user ID.
func CreateTestUser(t *testing.T, database *db.DB, sub, email, role string) string {
	t.Helper()
	ctx := context.Background()

	var id string
	err := database.Pool.QueryRow(ctx, `
		INSERT INTO users (sub, email, name, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (sub) DO UPDATE SET email = EXCLUDED.email
		RETURNING id
	`, sub, email, fmt.Sprintf("Test User %s", sub), role).Scan(&id)
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	return id
}

// CreateTestFeedback inserts a classified feedback row and returns its ID.
func CreateTestFeedback(t *testing.T, database *db.DB, text, sentiment, flightNumber string) int64 {
	t.Helper()
	ctx := context.Background()

	var id int64
	err := database.Pool.QueryRow(ctx, `
		INSERT INTO feedbacks (text, feedback_type, sentiment, sentiment_confidence, language, flight_number, analyzed_at)
		VALUES ($1, 'complaint', $2, 80, 'EN', $3, NOW())
		RETURNING id
	`, text, sentiment, flightNumber).Scan(&id)
	if err != nil {
		t.Fatalf("failed to create test feedback: %v", err)
	}

	return id
}
