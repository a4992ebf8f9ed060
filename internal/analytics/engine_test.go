package analytics

import (
	"testing"
	"time"

	"airvoice/internal/models"
)

func makeRecords(positive, neutral, negative int, route string) []Record {
	var out []Record
	for i := 0; i < positive; i++ {
		out = append(out, Record{Sentiment: models.SentimentPositive, Route: route})
	}
	for i := 0; i < neutral; i++ {
		out = append(out, Record{Sentiment: models.SentimentNeutral, Route: route})
	}
	for i := 0; i < negative; i++ {
		out = append(out, Record{Sentiment: models.SentimentNegative, Route: route})
	}
	return out
}

func TestNPS(t *testing.T) {
	e := NewEngine(Config{})

	tests := []struct {
		name      string
		records   []Record
		wantScore float64
		wantGrade string
	}{
		{"empty input scores zero", nil, 0, "Needs Improvement"},
		{"all promoters", makeRecords(10, 0, 0, ""), 100, "World Class"},
		{"all detractors", makeRecords(0, 0, 10, ""), -100, "Critical"},
		{"excellent band", makeRecords(6, 3, 1, ""), 50, "Excellent"},
		{"good band", makeRecords(5, 3, 2, ""), 30, "Good"},
		{"score rounds to a whole number", makeRecords(2, 0, 1, ""), 33, "Good"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.NPS(tt.records, nil)
			if got.Score != tt.wantScore {
				t.Errorf("Score = %v, want %v", got.Score, tt.wantScore)
			}
			if got.Grade != tt.wantGrade {
				t.Errorf("Grade = %q, want %q", got.Grade, tt.wantGrade)
			}
			if got.Change != nil {
				t.Error("Change set without a previous period")
			}
		})
	}

	t.Run("change against previous period", func(t *testing.T) {
		got := e.NPS(makeRecords(8, 1, 1, ""), makeRecords(5, 3, 2, ""))
		if got.Score != 70 {
			t.Fatalf("Score = %v, want 70", got.Score)
		}
		if got.PreviousScore == nil || *got.PreviousScore != 30 {
			t.Fatalf("PreviousScore = %v, want 30", got.PreviousScore)
		}
		if got.Change == nil || *got.Change != 40 {
			t.Errorf("Change = %v, want 40", got.Change)
		}
		if !got.MeetsTarget {
			t.Error("MeetsTarget = false, want true for score 70 against target 50")
		}
	})
}

func TestCSAT(t *testing.T) {
	e := NewEngine(Config{})

	tests := []struct {
		name      string
		records   []Record
		wantScore float64
		wantGrade string
	}{
		{"empty input scores zero", nil, 0, "Poor"},
		{"all satisfied", makeRecords(5, 0, 0, ""), 100, "Excellent"},
		{"good band", makeRecords(6, 2, 2, ""), 60, "Good"},
		{"fair band", makeRecords(4, 3, 3, ""), 40, "Fair"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.CSAT(tt.records, nil)
			if got.Score != tt.wantScore {
				t.Errorf("Score = %v, want %v", got.Score, tt.wantScore)
			}
			if got.Grade != tt.wantGrade {
				t.Errorf("Grade = %q, want %q", got.Grade, tt.wantGrade)
			}
		})
	}
}

func TestWilsonLowerBound(t *testing.T) {
	if got := WilsonLowerBound(0, 0); got != 0 {
		t.Errorf("WilsonLowerBound(0, 0) = %v, want 0", got)
	}

	// More evidence at the same rate scores higher.
	small := WilsonLowerBound(4, 4)
	large := WilsonLowerBound(80, 100)
	if small >= large {
		t.Errorf("4/4 (%v) should rank below 80/100 (%v)", small, large)
	}

	// Higher rate at the same volume scores higher.
	low := WilsonLowerBound(50, 100)
	high := WilsonLowerBound(90, 100)
	if low >= high {
		t.Errorf("50/100 (%v) should rank below 90/100 (%v)", low, high)
	}

	if got := WilsonLowerBound(100, 100); got <= 0 || got >= 1 {
		t.Errorf("WilsonLowerBound(100, 100) = %v, want in (0, 1)", got)
	}
}

func TestRankRoutes(t *testing.T) {
	e := NewEngine(Config{MinReviewsPerRoute: 5})

	t.Run("qualified route with good sample", func(t *testing.T) {
		records := makeRecords(8, 1, 1, "MS777")
		got := e.RankRoutes(records, RankByWeighted, 0)
		if len(got) != 1 {
			t.Fatalf("got %d routes, want 1", len(got))
		}
		r := got[0]
		if r.Route != "MS777" || r.Total != 10 {
			t.Fatalf("unexpected route entry: %+v", r)
		}
		if r.WilsonScore <= 0.5 {
			t.Errorf("WilsonScore = %v, want > 0.5 for 8/10 positive", r.WilsonScore)
		}
		if r.Confidence != "medium" {
			t.Errorf("Confidence = %q, want medium for n=10", r.Confidence)
		}
		if !r.MeetsThreshold {
			t.Error("MeetsThreshold = false, want true for n=10")
		}
	})

	t.Run("unqualified routes rank after qualified ones", func(t *testing.T) {
		var records []Record
		records = append(records, makeRecords(3, 0, 0, "CA100")...) // perfect but tiny
		records = append(records, makeRecords(6, 2, 2, "DX200")...)
		got := e.RankRoutes(records, RankByWeighted, 0)
		if len(got) != 2 {
			t.Fatalf("got %d routes, want 2", len(got))
		}
		if got[0].Route != "DX200" {
			t.Errorf("rank 1 = %q, want DX200: small perfect routes must not outrank qualified ones", got[0].Route)
		}
		if got[1].Confidence != "low" {
			t.Errorf("Confidence = %q, want low for n=3", got[1].Confidence)
		}
	})

	t.Run("volume ranking", func(t *testing.T) {
		var records []Record
		records = append(records, makeRecords(5, 0, 5, "BB10")...)
		records = append(records, makeRecords(5, 0, 0, "AA20")...)
		got := e.RankRoutes(records, RankByVolume, 0)
		if got[0].Route != "BB10" {
			t.Errorf("rank 1 = %q, want BB10 by volume", got[0].Route)
		}
	})

	t.Run("records without route are skipped", func(t *testing.T) {
		got := e.RankRoutes(makeRecords(3, 0, 0, ""), RankByWeighted, 0)
		if len(got) != 0 {
			t.Errorf("got %d routes, want 0", len(got))
		}
	})

	t.Run("avg rating derived from sentiment", func(t *testing.T) {
		got := e.RankRoutes(makeRecords(1, 1, 1, "EQ1"), RankByRating, 0)
		if got[0].AvgRating != 3 {
			t.Errorf("AvgRating = %v, want 3 for one of each sentiment", got[0].AvgRating)
		}
	})
}

func TestMonthlyTrend(t *testing.T) {
	e := NewEngine(Config{})

	t.Run("empty range lists every month", func(t *testing.T) {
		from := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)
		got := e.MonthlyTrend(nil, from, to)
		if len(got.Months) != 6 {
			t.Fatalf("got %d months, want 6", len(got.Months))
		}
		for _, m := range got.Months {
			if m.HasData {
				t.Errorf("month %s HasData = true, want false", m.Month)
			}
			if m.NPS != nil {
				t.Errorf("month %s NPS = %v, want nil", m.Month, *m.NPS)
			}
		}
		if got.Months[0].Month != "Jan 2026" || got.Months[5].Month != "Jun 2026" {
			t.Errorf("month labels wrong: %q .. %q", got.Months[0].Month, got.Months[5].Month)
		}
		if got.Summary.Average != nil {
			t.Error("Summary.Average set with no data")
		}
	})

	t.Run("sparse data keeps gaps", func(t *testing.T) {
		feb := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
		records := []Record{
			{Sentiment: models.SentimentPositive, Date: &feb},
			{Sentiment: models.SentimentPositive, Date: &feb},
			{Sentiment: models.SentimentNegative, Date: &feb},
		}
		from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
		got := e.MonthlyTrend(records, from, to)
		if len(got.Months) != 3 {
			t.Fatalf("got %d months, want 3", len(got.Months))
		}
		febPoint := got.Months[1]
		if !febPoint.HasData || febPoint.NPS == nil {
			t.Fatalf("February should carry data: %+v", febPoint)
		}
		if *febPoint.NPS != 33 {
			t.Errorf("February NPS = %v, want 33", *febPoint.NPS)
		}
		if febPoint.HasSufficientData {
			t.Error("HasSufficientData = true for 3 records, want false")
		}
		if got.Months[0].HasData || got.Months[2].HasData {
			t.Error("empty months must stay empty")
		}
		if got.Summary.Average != nil {
			t.Errorf("Summary.Average = %v, want nil: low-volume months carry no weight", *got.Summary.Average)
		}
		if got.Summary.MonthsAboveTarget != 0 {
			t.Errorf("MonthsAboveTarget = %d, want 0", got.Summary.MonthsAboveTarget)
		}
	})

	t.Run("summary covers only months with enough feedback", func(t *testing.T) {
		jan := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
		feb := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
		var records []Record
		for i := 0; i < 5; i++ {
			records = append(records, Record{Sentiment: models.SentimentPositive, Date: &jan})
		}
		records = append(records,
			Record{Sentiment: models.SentimentNegative, Date: &jan},
			Record{Sentiment: models.SentimentNeutral, Date: &jan},
			Record{Sentiment: models.SentimentPositive, Date: &feb},
			Record{Sentiment: models.SentimentPositive, Date: &feb},
			Record{Sentiment: models.SentimentNegative, Date: &feb},
		)
		got := e.MonthlyTrend(records,
			time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC))

		// January: 7 records, (5-1)/7*100 = 57.14 rounded to 57.
		if got.Months[0].NPS == nil || *got.Months[0].NPS != 57 {
			t.Fatalf("January NPS = %v, want 57", got.Months[0].NPS)
		}
		// February has data but too little of it for the summary.
		if got.Months[1].NPS == nil || got.Months[1].HasSufficientData {
			t.Fatalf("February point wrong: %+v", got.Months[1])
		}
		if got.Summary.Average == nil || *got.Summary.Average != 57 {
			t.Errorf("Summary.Average = %v, want 57", got.Summary.Average)
		}
		if got.Summary.Max == nil || *got.Summary.Max != 57 || got.Summary.Min == nil || *got.Summary.Min != 57 {
			t.Errorf("Summary min/max = %v/%v, want 57/57", got.Summary.Min, got.Summary.Max)
		}
		if got.Summary.MonthsAboveTarget != 1 {
			t.Errorf("MonthsAboveTarget = %d, want 1", got.Summary.MonthsAboveTarget)
		}
	})
}

func TestTrendStart(t *testing.T) {
	tests := []struct {
		name   string
		to     time.Time
		months int
		want   time.Time
	}{
		{
			"month-end request spanning a short month",
			time.Date(2026, 7, 31, 10, 0, 0, 0, time.UTC), 6,
			time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			"single month",
			time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC), 1,
			time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			"window crossing a year boundary",
			time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), 4,
			time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	e := NewEngine(Config{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrendStart(tt.to, tt.months)
			if !got.Equal(tt.want) {
				t.Fatalf("TrendStart(%v, %d) = %v, want %v", tt.to, tt.months, got, tt.want)
			}
			if n := len(e.MonthlyTrend(nil, got, tt.to).Months); n != tt.months {
				t.Errorf("trend over that window yields %d months, want %d", n, tt.months)
			}
		})
	}
}

func TestDailyTrend(t *testing.T) {
	e := NewEngine(Config{})
	day := time.Date(2026, 5, 2, 14, 30, 0, 0, time.UTC)
	records := []Record{
		{Sentiment: models.SentimentPositive, Date: &day},
		{Sentiment: models.SentimentNegative, Date: &day},
	}
	got := e.DailyTrend(records,
		time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 5, 3, 0, 0, 0, 0, time.UTC))
	if len(got) != 3 {
		t.Fatalf("got %d days, want 3", len(got))
	}
	if got[0].Total != 0 || got[2].Total != 0 {
		t.Error("empty days must appear with zero counts")
	}
	if got[1].Positive != 1 || got[1].Negative != 1 || got[1].Total != 2 {
		t.Errorf("day 2 counts wrong: %+v", got[1])
	}
}

func TestTopComplaints(t *testing.T) {
	e := NewEngine(Config{})

	records := []Record{
		{Sentiment: models.SentimentNegative, Text: "Flight was delayed for three hours"},
		{Sentiment: models.SentimentNegative, Text: "Delayed again and they lost my luggage"},
		{Sentiment: models.SentimentNegative, Text: "الرحلة تأخرت بسبب تأخير طويل"},
		{Sentiment: models.SentimentNegative, Text: "The crew was rude"},
		{Sentiment: models.SentimentPositive, Text: "Terrible delay"}, // positive records never count
	}
	got := e.TopComplaints(records, 5)
	if len(got) == 0 {
		t.Fatal("got no complaint categories")
	}
	if got[0].Category != "Delay/Cancellation" {
		t.Errorf("top category = %q, want Delay/Cancellation", got[0].Category)
	}
	if got[0].Count != 3 {
		t.Errorf("Delay/Cancellation count = %d, want 3", got[0].Count)
	}

	var totalPct float64
	for _, c := range got {
		totalPct += c.Percentage
	}
	if totalPct < 99 || totalPct > 101 {
		t.Errorf("percentages sum to %v, want ~100", totalPct)
	}

	t.Run("no negatives", func(t *testing.T) {
		got := e.TopComplaints(makeRecords(5, 2, 0, ""), 5)
		if len(got) != 0 {
			t.Errorf("got %d categories, want 0", len(got))
		}
	})
}

func TestOverview(t *testing.T) {
	e := NewEngine(Config{})
	records := makeRecords(6, 2, 2, "")
	for i := range records {
		records[i].Language = models.LanguageEN
		records[i].Confidence = 80
	}
	got := e.Overview(records)
	if got.Total != 10 || got.Positive != 6 {
		t.Fatalf("unexpected counts: %+v", got)
	}
	if got.PositivePercentage != 60 {
		t.Errorf("PositivePercentage = %v, want 60", got.PositivePercentage)
	}
	if got.ByLanguage[models.LanguageEN] != 10 {
		t.Errorf("ByLanguage[en] = %d, want 10", got.ByLanguage[models.LanguageEN])
	}
	if got.AvgConfidence != 80 {
		t.Errorf("AvgConfidence = %v, want 80", got.AvgConfidence)
	}

	empty := e.Overview(nil)
	if empty.Total != 0 || empty.PositivePercentage != 0 {
		t.Errorf("empty overview not zeroed: %+v", empty)
	}
}

func TestTopNegative(t *testing.T) {
	e := NewEngine(Config{})
	records := []Record{
		{Sentiment: models.SentimentNegative, Text: "weak", Confidence: 60},
		{Sentiment: models.SentimentPositive, Text: "great", Confidence: 99},
		{Sentiment: models.SentimentNegative, Text: "strong", Confidence: 90},
	}
	got := e.TopNegative(records, 1)
	if len(got) != 1 || got[0].Text != "strong" {
		t.Errorf("TopNegative = %+v, want the 90-confidence negative", got)
	}
}
