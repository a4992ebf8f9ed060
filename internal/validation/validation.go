package validation

import (
	"regexp"
	"strings"
	"time"

	"airvoice/internal/models"
)

// FlightNumberPattern defines the valid flight number format: a 2-3
// letter airline designator followed by 1-4 digits.
var FlightNumberPattern = regexp.MustCompile(`^[A-Z]{2,3}[0-9]{1,4}$`)

// MaxTextLength caps feedback text to keep the classifier and storage sane.
const MaxTextLength = 10000

// ValidateFlightNumber checks a normalized flight number.
func ValidateFlightNumber(flightNumber string) bool {
	return FlightNumberPattern.MatchString(flightNumber)
}

// NormalizeFlightNumber uppercases and strips spaces and hyphens so
// "ms 777" and "MS-777" both match stored records.
func NormalizeFlightNumber(flightNumber string) string {
	s := strings.ToUpper(strings.TrimSpace(flightNumber))
	s = strings.ReplaceAll(s, " ", "")
	return strings.ReplaceAll(s, "-", "")
}

// ValidateText checks feedback text is present and within the length cap.
func ValidateText(text string) (bool, string) {
	if strings.TrimSpace(text) == "" {
		return false, "Feedback text is required"
	}
	if len(text) > MaxTextLength {
		return false, "Feedback text exceeds maximum length"
	}
	return true, ""
}

// ValidateSentiment checks a sentiment label.
func ValidateSentiment(sentiment string) bool {
	return contains(models.ValidSentiments(), sentiment)
}

// ValidateStatus checks a workflow status.
func ValidateStatus(status string) bool {
	return contains(models.ValidStatuses(), status)
}

// ValidatePriority checks a priority level.
func ValidatePriority(priority string) bool {
	return contains(models.ValidPriorities(), priority)
}

// ValidateFeedbackType checks a feedback type.
func ValidateFeedbackType(feedbackType string) bool {
	return contains([]string{
		models.TypeComplaint, models.TypeSuggestion,
		models.TypeCompliment, models.TypeInquiry,
	}, feedbackType)
}

// ValidateReportType checks a report type.
func ValidateReportType(reportType string) bool {
	return contains([]string{
		models.ReportSummary, models.ReportDetailed,
		models.ReportSentiment, models.ReportTrend,
	}, reportType)
}

// ValidateRankingMethod checks a route ranking method.
func ValidateRankingMethod(method string) bool {
	return contains([]string{"volume", "rating", "weighted"}, method)
}

// ParseDate parses a date query parameter, accepting full RFC 3339
// timestamps and plain YYYY-MM-DD dates.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
