// Package analytics computes customer-satisfaction aggregates (NPS,
// CSAT, route rankings, trends) over classified feedback records. All
// computations are pure functions of their inputs; persistence and
// transport live elsewhere.
package analytics

import (
	"math"
	"sort"
	"time"

	"airvoice/internal/models"
)

const (
	sentimentPositive = models.SentimentPositive
	sentimentNegative = models.SentimentNegative
	sentimentNeutral  = models.SentimentNeutral
)

// Ranking methods accepted by RankRoutes.
const (
	RankByVolume   = "volume"
	RankByRating   = "rating"
	RankByWeighted = "weighted"
)

// Sample-size tiers for route confidence.
const highConfidenceSample = 50

// Config carries the tunable thresholds. Zero values fall back to the
// defaults in NewEngine.
type Config struct {
	NPSTarget          float64
	CSATThreshold      float64
	MinReviewsPerRoute int
}

// Engine computes analytics over feedback records.
type Engine struct {
	cfg Config
}

// NewEngine creates an engine, applying defaults for unset thresholds:
// NPS target 50, CSAT threshold 80%, 5 reviews minimum per route.
func NewEngine(cfg Config) *Engine {
	if cfg.NPSTarget == 0 {
		cfg.NPSTarget = 50
	}
	if cfg.CSATThreshold == 0 {
		cfg.CSATThreshold = 80
	}
	if cfg.MinReviewsPerRoute == 0 {
		cfg.MinReviewsPerRoute = 5
	}
	return &Engine{cfg: cfg}
}

// Record is one classified piece of feedback, reduced to the fields the
// aggregates need.
type Record struct {
	Sentiment  string
	Language   string
	Route      string
	Date       *time.Time
	Text       string
	Confidence float64
}

type sentimentCounts struct {
	positive, negative, neutral int
}

func (c sentimentCounts) total() int { return c.positive + c.negative + c.neutral }

func countSentiments(records []Record) sentimentCounts {
	var c sentimentCounts
	for _, r := range records {
		switch r.Sentiment {
		case sentimentPositive:
			c.positive++
		case sentimentNegative:
			c.negative++
		case sentimentNeutral:
			c.neutral++
		}
	}
	return c
}

// NPSResult is a Net Promoter Score with period-over-period change.
// Positive feedback maps to promoters, negative to detractors, neutral
// to passives.
type NPSResult struct {
	Score          float64  `json:"score"`
	Grade          string   `json:"grade"`
	Promoters      int      `json:"promoters"`
	Detractors     int      `json:"detractors"`
	Passives       int      `json:"passives"`
	Total          int      `json:"total"`
	Target         float64  `json:"target"`
	MeetsTarget    bool     `json:"meets_target"`
	PreviousScore  *float64 `json:"previous_score,omitempty"`
	Change         *float64 `json:"change,omitempty"`
}

// NPS computes the Net Promoter Score for the current period, rounded
// to a whole number. A nil or empty previous period omits the change
// fields; an empty current period scores 0.
func (e *Engine) NPS(current, previous []Record) NPSResult {
	c := countSentiments(current)
	score := math.Round(npsScore(c))

	res := NPSResult{
		Score:       score,
		Grade:       npsGrade(score),
		Promoters:   c.positive,
		Detractors:  c.negative,
		Passives:    c.neutral,
		Total:       c.total(),
		Target:      e.cfg.NPSTarget,
		MeetsTarget: score >= e.cfg.NPSTarget,
	}
	if len(previous) > 0 {
		prev := math.Round(npsScore(countSentiments(previous)))
		change := score - prev
		res.PreviousScore = &prev
		res.Change = &change
	}
	return res
}

func npsScore(c sentimentCounts) float64 {
	total := c.total()
	if total == 0 {
		return 0
	}
	return float64(c.positive-c.negative) / float64(total) * 100
}

func npsGrade(score float64) string {
	switch {
	case score >= 70:
		return "World Class"
	case score >= 50:
		return "Excellent"
	case score >= 30:
		return "Good"
	case score >= 0:
		return "Needs Improvement"
	default:
		return "Critical"
	}
}

// CSATResult is a customer-satisfaction percentage with
// period-over-period change.
type CSATResult struct {
	Score          float64  `json:"score"`
	Grade          string   `json:"grade"`
	Satisfied      int      `json:"satisfied"`
	Total          int      `json:"total"`
	Threshold      float64  `json:"threshold"`
	MeetsThreshold bool     `json:"meets_threshold"`
	PreviousScore  *float64 `json:"previous_score,omitempty"`
	Change         *float64 `json:"change,omitempty"`
}

// CSAT computes the share of positive feedback in the current period.
// An empty period scores 0.
func (e *Engine) CSAT(current, previous []Record) CSATResult {
	c := countSentiments(current)
	score := csatScore(c)

	res := CSATResult{
		Score:          round1(score),
		Grade:          csatGrade(score),
		Satisfied:      c.positive,
		Total:          c.total(),
		Threshold:      e.cfg.CSATThreshold,
		MeetsThreshold: score >= e.cfg.CSATThreshold,
	}
	if len(previous) > 0 {
		prev := round1(csatScore(countSentiments(previous)))
		change := round1(res.Score - prev)
		res.PreviousScore = &prev
		res.Change = &change
	}
	return res
}

func csatScore(c sentimentCounts) float64 {
	total := c.total()
	if total == 0 {
		return 0
	}
	return float64(c.positive) / float64(total) * 100
}

func csatGrade(score float64) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 60:
		return "Good"
	case score >= 40:
		return "Fair"
	default:
		return "Poor"
	}
}

// RouteStats is the per-route ranking entry.
type RouteStats struct {
	Route          string  `json:"route"`
	Rank           int     `json:"rank"`
	Total          int     `json:"total_reviews"`
	Positive       int     `json:"positive"`
	Negative       int     `json:"negative"`
	Neutral        int     `json:"neutral"`
	PositiveRate   float64 `json:"positive_rate"`
	AvgRating      float64 `json:"avg_rating"`
	WilsonScore    float64 `json:"wilson_score"`
	Confidence     string  `json:"confidence"`
	MeetsThreshold bool    `json:"meets_threshold"`
}

// RankRoutes ranks routes by the given method: "volume" by review
// count, "rating" by the derived 1-to-5 average, "weighted" (default)
// by Wilson lower bound. Routes with fewer than MinReviewsPerRoute
// reviews rank after all qualified routes regardless of score, ordered
// by volume among themselves. Records without a route are skipped.
func (e *Engine) RankRoutes(records []Record, method string, limit int) []RouteStats {
	byRoute := make(map[string][]Record)
	var order []string
	for _, r := range records {
		if r.Route == "" {
			continue
		}
		if _, ok := byRoute[r.Route]; !ok {
			order = append(order, r.Route)
		}
		byRoute[r.Route] = append(byRoute[r.Route], r)
	}
	sort.Strings(order)

	stats := make([]RouteStats, 0, len(order))
	for _, route := range order {
		c := countSentiments(byRoute[route])
		total := c.total()
		s := RouteStats{
			Route:          route,
			Total:          total,
			Positive:       c.positive,
			Negative:       c.negative,
			Neutral:        c.neutral,
			WilsonScore:    round3(WilsonLowerBound(c.positive, total)),
			MeetsThreshold: total >= e.cfg.MinReviewsPerRoute,
		}
		if total > 0 {
			s.PositiveRate = round1(float64(c.positive) / float64(total) * 100)
			s.AvgRating = round2(float64(5*c.positive+3*c.neutral+1*c.negative) / float64(total))
		}
		switch {
		case total >= highConfidenceSample:
			s.Confidence = "high"
		case total >= e.cfg.MinReviewsPerRoute:
			s.Confidence = "medium"
		default:
			s.Confidence = "low"
		}
		stats = append(stats, s)
	}

	key := func(s RouteStats) float64 {
		switch method {
		case RankByVolume:
			return float64(s.Total)
		case RankByRating:
			return s.AvgRating
		default:
			return s.WilsonScore
		}
	}
	sort.SliceStable(stats, func(i, j int) bool {
		a, b := stats[i], stats[j]
		if a.MeetsThreshold != b.MeetsThreshold {
			return a.MeetsThreshold
		}
		if !a.MeetsThreshold {
			return a.Total > b.Total
		}
		return key(a) > key(b)
	})

	for i := range stats {
		stats[i].Rank = i + 1
	}
	if limit > 0 && len(stats) > limit {
		stats = stats[:limit]
	}
	return stats
}

// MonthPoint is one month in the NPS trend. NPS is nil for months
// without any feedback.
type MonthPoint struct {
	Month             string   `json:"month"`
	NPS               *float64 `json:"nps"`
	HasData           bool     `json:"has_data"`
	HasSufficientData bool     `json:"has_sufficient_data"`
	Positive          int      `json:"positive"`
	Negative          int      `json:"negative"`
	Neutral           int      `json:"neutral"`
	Total             int      `json:"total"`
}

// TrendSummary aggregates the months with enough feedback for the NPS
// to be meaningful. Low-volume months still show in the history but do
// not move the summary.
type TrendSummary struct {
	Average           *float64 `json:"average,omitempty"`
	Max               *float64 `json:"max,omitempty"`
	Min               *float64 `json:"min,omitempty"`
	MonthsAboveTarget int      `json:"months_above_target"`
	Target            float64  `json:"target"`
}

// TrendResult is the monthly NPS history between two dates.
type TrendResult struct {
	Months  []MonthPoint `json:"months"`
	Summary TrendSummary `json:"summary"`
}

// TrendStart returns the first day of the calendar month that opens a
// trend window of the given length ending in to's month. Subtracting
// months from a month-end date directly would roll over short months
// and shrink the window, so the day is pinned to 1 first.
func TrendStart(to time.Time, months int) time.Time {
	return time.Date(to.Year(), to.Month()-time.Month(months-1), 1, 0, 0, 0, 0, time.UTC)
}

// MonthlyTrend computes NPS per calendar month from the month of from
// through the month of to, inclusive. Every month in the range appears
// in the output; empty months carry a nil NPS so charts can show gaps
// instead of fake zeros. Records without a date are skipped. Months
// with fewer than 5 records are flagged as having insufficient data.
func (e *Engine) MonthlyTrend(records []Record, from, to time.Time) TrendResult {
	counts := make(map[string]sentimentCounts)
	for _, r := range records {
		if r.Date == nil {
			continue
		}
		key := r.Date.Format("2006-01")
		c := counts[key]
		switch r.Sentiment {
		case sentimentPositive:
			c.positive++
		case sentimentNegative:
			c.negative++
		case sentimentNeutral:
			c.neutral++
		}
		counts[key] = c
	}

	var res TrendResult
	var scores []float64

	cur := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cur.After(end) {
		c := counts[cur.Format("2006-01")]
		total := c.total()
		point := MonthPoint{
			Month:             cur.Format("Jan 2006"),
			HasData:           total > 0,
			HasSufficientData: total >= 5,
			Positive:          c.positive,
			Negative:          c.negative,
			Neutral:           c.neutral,
			Total:             total,
		}
		if total > 0 {
			score := math.Round(npsScore(c))
			point.NPS = &score
			if point.HasSufficientData {
				scores = append(scores, score)
				if score >= e.cfg.NPSTarget {
					res.Summary.MonthsAboveTarget++
				}
			}
		}
		res.Months = append(res.Months, point)
		cur = cur.AddDate(0, 1, 0)
	}

	res.Summary.Target = e.cfg.NPSTarget
	if len(scores) > 0 {
		var sum float64
		maxScore, minScore := scores[0], scores[0]
		for _, s := range scores {
			sum += s
			maxScore = math.Max(maxScore, s)
			minScore = math.Min(minScore, s)
		}
		avg := math.Round(sum / float64(len(scores)))
		res.Summary.Average = &avg
		res.Summary.Max = &maxScore
		res.Summary.Min = &minScore
	}
	return res
}

// DayPoint is one day in the daily sentiment trend.
type DayPoint struct {
	Date     string `json:"date"`
	Positive int    `json:"positive"`
	Negative int    `json:"negative"`
	Neutral  int    `json:"neutral"`
	Total    int    `json:"total"`
}

// DailyTrend counts feedback per day from from through to, inclusive.
// Days without feedback appear with zero counts.
func (e *Engine) DailyTrend(records []Record, from, to time.Time) []DayPoint {
	counts := make(map[string]sentimentCounts)
	for _, r := range records {
		if r.Date == nil {
			continue
		}
		key := r.Date.Format("2006-01-02")
		c := counts[key]
		switch r.Sentiment {
		case sentimentPositive:
			c.positive++
		case sentimentNegative:
			c.negative++
		case sentimentNeutral:
			c.neutral++
		}
		counts[key] = c
	}

	var out []DayPoint
	cur := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	for !cur.After(end) {
		key := cur.Format("2006-01-02")
		c := counts[key]
		out = append(out, DayPoint{
			Date:     key,
			Positive: c.positive,
			Negative: c.negative,
			Neutral:  c.neutral,
			Total:    c.total(),
		})
		cur = cur.AddDate(0, 0, 1)
	}
	return out
}

// OverviewStats is the dashboard headline block.
type OverviewStats struct {
	Total              int            `json:"total"`
	Positive           int            `json:"positive"`
	Negative           int            `json:"negative"`
	Neutral            int            `json:"neutral"`
	PositivePercentage float64        `json:"positive_percentage"`
	NegativePercentage float64        `json:"negative_percentage"`
	NeutralPercentage  float64        `json:"neutral_percentage"`
	ByLanguage         map[string]int `json:"by_language"`
	AvgConfidence      float64        `json:"avg_confidence"`
}

// Overview summarizes a record set for the dashboard.
func (e *Engine) Overview(records []Record) OverviewStats {
	c := countSentiments(records)
	total := c.total()
	stats := OverviewStats{
		Total:      total,
		Positive:   c.positive,
		Negative:   c.negative,
		Neutral:    c.neutral,
		ByLanguage: make(map[string]int),
	}

	var confSum float64
	for _, r := range records {
		if r.Language != "" {
			stats.ByLanguage[r.Language]++
		}
		confSum += r.Confidence
	}
	if total > 0 {
		stats.PositivePercentage = round1(float64(c.positive) / float64(total) * 100)
		stats.NegativePercentage = round1(float64(c.negative) / float64(total) * 100)
		stats.NeutralPercentage = round1(float64(c.neutral) / float64(total) * 100)
	}
	if len(records) > 0 {
		stats.AvgConfidence = round1(confSum / float64(len(records)))
	}
	return stats
}

// TopNegative returns the highest-confidence negative records, for
// surfacing representative complaints next to the aggregates.
func (e *Engine) TopNegative(records []Record, limit int) []Record {
	var negatives []Record
	for _, r := range records {
		if r.Sentiment == sentimentNegative {
			negatives = append(negatives, r)
		}
	}
	sort.SliceStable(negatives, func(i, j int) bool {
		return negatives[i].Confidence > negatives[j].Confidence
	})
	if limit > 0 && len(negatives) > limit {
		negatives = negatives[:limit]
	}
	return negatives
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
