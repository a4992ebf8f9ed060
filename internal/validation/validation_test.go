package validation

import (
	"strings"
	"testing"
)

func TestValidateFlightNumber(t *testing.T) {
	tests := []struct {
		flightNumber string
		want         bool
	}{
		{"MS777", true},
		{"QR1", true},
		{"UAE1234", true},
		{"ms777", false}, // must be normalized first
		{"M777", false},
		{"MS", false},
		{"MS77777", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidateFlightNumber(tt.flightNumber); got != tt.want {
			t.Errorf("ValidateFlightNumber(%q) = %v, want %v", tt.flightNumber, got, tt.want)
		}
	}
}

func TestNormalizeFlightNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ms 777", "MS777"},
		{"MS-777", "MS777"},
		{"  qr1  ", "QR1"},
	}
	for _, tt := range tests {
		if got := NormalizeFlightNumber(tt.in); got != tt.want {
			t.Errorf("NormalizeFlightNumber(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidateText(t *testing.T) {
	if ok, _ := ValidateText("   "); ok {
		t.Error("blank text should be invalid")
	}
	if ok, _ := ValidateText(strings.Repeat("x", MaxTextLength+1)); ok {
		t.Error("oversized text should be invalid")
	}
	if ok, msg := ValidateText("Great flight"); !ok {
		t.Errorf("valid text rejected: %s", msg)
	}
}

func TestLabelValidators(t *testing.T) {
	if !ValidateSentiment("positive") || ValidateSentiment("happy") {
		t.Error("ValidateSentiment accepts wrong labels")
	}
	if !ValidateStatus("in_progress") || ValidateStatus("open") {
		t.Error("ValidateStatus accepts wrong labels")
	}
	if !ValidatePriority("urgent") || ValidatePriority("critical") {
		t.Error("ValidatePriority accepts wrong labels")
	}
	if !ValidateFeedbackType("complaint") || ValidateFeedbackType("rant") {
		t.Error("ValidateFeedbackType accepts wrong labels")
	}
	if !ValidateRankingMethod("weighted") || ValidateRankingMethod("best") {
		t.Error("ValidateRankingMethod accepts wrong labels")
	}
	if !ValidateReportType("sentiment_analysis") || ValidateReportType("pie_chart") {
		t.Error("ValidateReportType accepts wrong labels")
	}
}

func TestParseDate(t *testing.T) {
	if _, err := ParseDate("2026-05-01"); err != nil {
		t.Errorf("plain date rejected: %v", err)
	}
	if _, err := ParseDate("2026-05-01T12:00:00Z"); err != nil {
		t.Errorf("RFC 3339 rejected: %v", err)
	}
	if _, err := ParseDate("May 1st"); err == nil {
		t.Error("garbage date accepted")
	}
}
