package db_test

import (
	"context"
	"errors"
	"testing"

	"airvoice/internal/db"
	"airvoice/internal/models"
	"airvoice/internal/testutil"
)

func TestCreateAndGetFeedback(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	feedback := &models.Feedback{
		Type: models.TypeComplaint,
		Text: "The flight was delayed for three hours",
	}
	if err := database.CreateFeedback(ctx, feedback); err != nil {
		t.Fatalf("CreateFeedback failed: %v", err)
	}
	if feedback.ID == 0 {
		t.Fatal("CreateFeedback did not set ID")
	}
	if feedback.Status != models.StatusPending {
		t.Errorf("default status = %q, want pending", feedback.Status)
	}
	if feedback.Priority != models.PriorityMedium {
		t.Errorf("default priority = %q, want medium", feedback.Priority)
	}

	got, err := database.GetFeedback(ctx, feedback.ID)
	if err != nil {
		t.Fatalf("GetFeedback failed: %v", err)
	}
	if got.Text != feedback.Text {
		t.Errorf("Text = %q, want %q", got.Text, feedback.Text)
	}
	if got.Sentiment != nil {
		t.Errorf("Sentiment = %v, want nil before analysis", *got.Sentiment)
	}
}

func TestGetFeedbackNotFound(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()

	_, err := database.GetFeedback(context.Background(), 999999)
	if !errors.Is(err, db.ErrFeedbackNotFound) {
		t.Errorf("err = %v, want ErrFeedbackNotFound", err)
	}
}

func TestSetFeedbackAnalysis(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	feedback := &models.Feedback{Type: models.TypeComplaint, Text: "Terrible service"}
	if err := database.CreateFeedback(ctx, feedback); err != nil {
		t.Fatalf("CreateFeedback failed: %v", err)
	}

	err := database.SetFeedbackAnalysis(ctx, feedback.ID,
		models.SentimentNegative, 80, models.LanguageEN, "terrible service", "rule-based-v1")
	if err != nil {
		t.Fatalf("SetFeedbackAnalysis failed: %v", err)
	}

	got, err := database.GetFeedback(ctx, feedback.ID)
	if err != nil {
		t.Fatalf("GetFeedback failed: %v", err)
	}
	if got.Sentiment == nil || *got.Sentiment != models.SentimentNegative {
		t.Errorf("Sentiment = %v, want negative", got.Sentiment)
	}
	if got.AnalyzedAt == nil {
		t.Error("AnalyzedAt not set")
	}
}

func TestListUnanalyzed(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	pending := &models.Feedback{Type: models.TypeInquiry, Text: "Where is my refund?"}
	if err := database.CreateFeedback(ctx, pending); err != nil {
		t.Fatalf("CreateFeedback failed: %v", err)
	}
	testutil.CreateTestFeedback(t, database, "Great crew", models.SentimentPositive, "MS777")

	got, err := database.ListUnanalyzed(ctx, 10)
	if err != nil {
		t.Fatalf("ListUnanalyzed failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != pending.ID {
		t.Errorf("ListUnanalyzed = %d rows, want just the pending one", len(got))
	}
}

func TestListFeedbackFilterAndPagination(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	testutil.CreateTestFeedback(t, database, "Lovely flight", models.SentimentPositive, "MS777")
	testutil.CreateTestFeedback(t, database, "Lost my bag", models.SentimentNegative, "MS777")
	testutil.CreateTestFeedback(t, database, "Rude crew", models.SentimentNegative, "QR100")

	negatives, total, err := database.ListFeedback(ctx,
		db.FeedbackFilter{Sentiment: models.SentimentNegative}, 1, 20)
	if err != nil {
		t.Fatalf("ListFeedback failed: %v", err)
	}
	if total != 2 || len(negatives) != 2 {
		t.Errorf("negative filter: total=%d len=%d, want 2/2", total, len(negatives))
	}

	byRoute, total, err := database.ListFeedback(ctx,
		db.FeedbackFilter{FlightNumber: "MS777"}, 1, 20)
	if err != nil {
		t.Fatalf("ListFeedback failed: %v", err)
	}
	if total != 2 || len(byRoute) != 2 {
		t.Errorf("route filter: total=%d len=%d, want 2/2", total, len(byRoute))
	}

	page, total, err := database.ListFeedback(ctx, db.FeedbackFilter{}, 1, 2)
	if err != nil {
		t.Fatalf("ListFeedback failed: %v", err)
	}
	if total != 3 || len(page) != 2 {
		t.Errorf("pagination: total=%d len=%d, want 3/2", total, len(page))
	}
}

func TestDeleteFeedback(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	id := testutil.CreateTestFeedback(t, database, "So so", models.SentimentNeutral, "")
	if err := database.DeleteFeedback(ctx, id); err != nil {
		t.Fatalf("DeleteFeedback failed: %v", err)
	}
	if err := database.DeleteFeedback(ctx, id); !errors.Is(err, db.ErrFeedbackNotFound) {
		t.Errorf("second delete err = %v, want ErrFeedbackNotFound", err)
	}
}

func TestSentimentCounts(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()

	testutil.CreateTestFeedback(t, database, "Lovely flight", models.SentimentPositive, "")
	testutil.CreateTestFeedback(t, database, "Awful flight", models.SentimentNegative, "")
	testutil.CreateTestFeedback(t, database, "Bad seats", models.SentimentNegative, "")

	counts, err := database.SentimentCounts(context.Background())
	if err != nil {
		t.Fatalf("SentimentCounts failed: %v", err)
	}
	if counts[models.SentimentNegative][models.LanguageEN] != 2 {
		t.Errorf("negative/EN = %d, want 2", counts[models.SentimentNegative][models.LanguageEN])
	}
}
