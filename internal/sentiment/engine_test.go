package sentiment

import (
	"context"
	"strings"
	"testing"

	"airvoice/internal/models"
)

func TestAnalyzeEnglish(t *testing.T) {
	e := NewEngine()
	tests := []struct {
		name          string
		text          string
		wantSentiment string
		wantConf      float64
	}{
		{
			name:          "plain positive",
			text:          "The crew was friendly and the flight was smooth",
			wantSentiment: models.SentimentPositive,
		},
		{
			name:          "plain negative",
			text:          "Terrible service and a rude crew",
			wantSentiment: models.SentimentNegative,
		},
		{
			name:          "negated positive flips negative",
			text:          "The food was not good",
			wantSentiment: models.SentimentNegative,
			wantConf:      75,
		},
		{
			name:          "negated negative is weak positive",
			text:          "The flight was not terrible",
			wantSentiment: models.SentimentPositive,
			wantConf:      65,
		},
		{
			name:          "one positive one negative word ties to neutral",
			text:          "The food was great, the seats were cramped",
			wantSentiment: models.SentimentNeutral,
			wantConf:      50,
		},
		{
			name:          "strong negative after connective wins",
			text:          "The staff was friendly but our flight was delayed for six hours",
			wantSentiment: models.SentimentNegative,
			wantConf:      85,
		},
		{
			name:          "balanced contrastive clauses are neutral",
			text:          "Good food but bad seats",
			wantSentiment: models.SentimentNeutral,
			wantConf:      65,
		},
		{
			name:          "explicit neutral phrase",
			text:          "Flight was fine, nothing special",
			wantSentiment: models.SentimentNeutral,
			wantConf:      70,
		},
		{
			name:          "no sentiment words",
			text:          "We flew from Cairo to Dubai on Tuesday",
			wantSentiment: models.SentimentNeutral,
			wantConf:      60,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Analyze(context.Background(), tt.text)
			if got.Sentiment != tt.wantSentiment {
				t.Errorf("Analyze(%q).Sentiment = %q, want %q", tt.text, got.Sentiment, tt.wantSentiment)
			}
			if tt.wantConf != 0 && got.Confidence != tt.wantConf {
				t.Errorf("Analyze(%q).Confidence = %v, want %v", tt.text, got.Confidence, tt.wantConf)
			}
			if got.Confidence < 0 || got.Confidence > 100 {
				t.Errorf("confidence %v out of range", got.Confidence)
			}
		})
	}
}

func TestAnalyzeDegradedInput(t *testing.T) {
	e := NewEngine()

	t.Run("empty text", func(t *testing.T) {
		got := e.Analyze(context.Background(), "   ")
		if got.Sentiment != models.SentimentNeutral || got.Confidence != 50 {
			t.Errorf("got %q/%v, want neutral/50", got.Sentiment, got.Confidence)
		}
	})

	t.Run("invalid utf-8", func(t *testing.T) {
		got := e.Analyze(context.Background(), string([]byte{0xff, 0xfe, 0xfd}))
		if got.Sentiment != models.SentimentNeutral {
			t.Errorf("got sentiment %q, want neutral", got.Sentiment)
		}
		if got.Error == "" {
			t.Error("expected Error to be set for invalid utf-8")
		}
	})
}

func TestAnalyzeArabic(t *testing.T) {
	e := NewEngine()
	tests := []struct {
		name          string
		text          string
		wantSentiment string
		wantMinConf   float64
	}{
		{
			name:          "strong positive keywords",
			text:          "الرحلة كانت ممتاز والطاقم رائع",
			wantSentiment: models.SentimentPositive,
			wantMinConf:   80,
		},
		{
			name:          "strong negative keywords",
			text:          "الطيران سيء جدا والخدمة فظيعة",
			wantSentiment: models.SentimentNegative,
			wantMinConf:   80,
		},
		{
			name:          "negated positive particle",
			text:          "الخدمة ليست جيد ابدا والطعام سيء",
			wantSentiment: models.SentimentNegative,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Analyze(context.Background(), tt.text)
			if got.Language != models.LanguageAR {
				t.Errorf("Language = %q, want %q", got.Language, models.LanguageAR)
			}
			if got.Sentiment != tt.wantSentiment {
				t.Errorf("Sentiment = %q, want %q", got.Sentiment, tt.wantSentiment)
			}
			if got.Confidence < tt.wantMinConf {
				t.Errorf("Confidence = %v, want >= %v", got.Confidence, tt.wantMinConf)
			}
		})
	}
}

func TestNegationWindow(t *testing.T) {
	e := NewEngine()

	// The negator sits more than 40 characters before the sentiment word,
	// so it must not flip it.
	filler := strings.Repeat("xxxxxxxxx ", 5)
	text := "not " + filler + "good"
	got := e.Analyze(context.Background(), text)
	if got.Sentiment != models.SentimentPositive {
		t.Errorf("Sentiment = %q, want positive: negator outside the window", got.Sentiment)
	}
	if got.HasNegation {
		t.Error("HasNegation = true, want false for out-of-window negator")
	}
}

func TestAnalyzeLongText(t *testing.T) {
	e := NewEngine()
	pad := strings.Repeat("the cabin crew served meals during the flight and then we landed ", 5)

	t.Run("dominant positive", func(t *testing.T) {
		text := pad + "Overall an amazing experience, excellent service, very comfortable seats. Highly recommend this airline."
		got := e.Analyze(context.Background(), text)
		if got.Sentiment != models.SentimentPositive {
			t.Errorf("Sentiment = %q, want positive", got.Sentiment)
		}
	})

	t.Run("dominant negative", func(t *testing.T) {
		text := pad + "The whole trip was a complete nightmare, terrible staff, they lost my luggage. Never again."
		got := e.Analyze(context.Background(), text)
		if got.Sentiment != models.SentimentNegative {
			t.Errorf("Sentiment = %q, want negative", got.Sentiment)
		}
	})

	t.Run("balanced signals stay neutral", func(t *testing.T) {
		text := pad + "The seats were comfortable and the crew friendly. The departure was delayed and the cabin dirty."
		got := e.Analyze(context.Background(), text)
		if got.Sentiment != models.SentimentNeutral {
			t.Errorf("Sentiment = %q, want neutral for balanced long review", got.Sentiment)
		}
	})
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"pure english", "Great flight, thank you", models.LanguageEN},
		{"pure arabic", "رحلة ممتازة شكرا لكم", models.LanguageAR},
		{"mixed", "The flight was ممتاز and the crew رائع جدا", models.LanguageMixed},
		{"digits and punctuation only", "12345 !!", models.LanguageEN},
		{"empty", "", models.LanguageEN},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectLanguage(tt.text); got != tt.want {
				t.Errorf("DetectLanguage(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestPreprocess(t *testing.T) {
	t.Run("removes stopwords keeps negators", func(t *testing.T) {
		got := Preprocess("The flight was not good", models.LanguageEN)
		if strings.Contains(got, "the") || strings.Contains(got, "was") {
			t.Errorf("Preprocess kept stopwords: %q", got)
		}
		if !strings.Contains(got, "not") {
			t.Errorf("Preprocess dropped negator: %q", got)
		}
		if !strings.Contains(got, "good") {
			t.Errorf("Preprocess dropped content word: %q", got)
		}
	})

	t.Run("normalizes arabic variants", func(t *testing.T) {
		got := Preprocess("أحب الرحلة", models.LanguageAR)
		if strings.Contains(got, "أ") {
			t.Errorf("Preprocess kept unnormalized alef: %q", got)
		}
	})
}

// fakeClassifier is a scripted ML model for reconciliation tests.
type fakeClassifier struct {
	label     string
	conf      float64
	available bool
	calls     int
}

func (f *fakeClassifier) Name() string                       { return "fake" }
func (f *fakeClassifier) Available(context.Context) bool     { return f.available }
func (f *fakeClassifier) Classify(_ context.Context, _ string) (string, float64, error) {
	f.calls++
	return f.label, f.conf, nil
}

func TestClassifierReconciliation(t *testing.T) {
	t.Run("negation disagreement trusts rules", func(t *testing.T) {
		fc := &fakeClassifier{label: models.SentimentPositive, conf: 0.9, available: true}
		e := NewEngineWithClassifier(fc)
		got := e.Analyze(context.Background(), "The food was not good")
		if got.Sentiment != models.SentimentNegative {
			t.Errorf("Sentiment = %q, want negative despite positive model label", got.Sentiment)
		}
		if got.ModelVersion != "hybrid-fake" {
			t.Errorf("ModelVersion = %q, want hybrid-fake", got.ModelVersion)
		}
		if fc.calls != 1 {
			t.Errorf("classifier called %d times, want 1", fc.calls)
		}
	})

	t.Run("model label kept when rules have no objection", func(t *testing.T) {
		fc := &fakeClassifier{label: models.SentimentNegative, conf: 0.8, available: true}
		e := NewEngineWithClassifier(fc)
		got := e.Analyze(context.Background(), "We flew from Cairo to Dubai on Tuesday")
		if got.Sentiment != models.SentimentNegative {
			t.Errorf("Sentiment = %q, want model's negative label", got.Sentiment)
		}
		if got.Confidence != 80 {
			t.Errorf("Confidence = %v, want 80", got.Confidence)
		}
	})

	t.Run("unavailable classifier falls back to rules", func(t *testing.T) {
		fc := &fakeClassifier{label: models.SentimentNegative, conf: 0.9, available: false}
		e := NewEngineWithClassifier(fc)
		got := e.Analyze(context.Background(), "Excellent flight, wonderful crew")
		if got.Sentiment != models.SentimentPositive {
			t.Errorf("Sentiment = %q, want positive from rules", got.Sentiment)
		}
		if got.ModelVersion != "rule-based-v1" {
			t.Errorf("ModelVersion = %q, want rule-based-v1", got.ModelVersion)
		}
		if fc.calls != 0 {
			t.Errorf("classifier called %d times, want 0", fc.calls)
		}
	})

	t.Run("contrastive override beats model", func(t *testing.T) {
		fc := &fakeClassifier{label: models.SentimentPositive, conf: 0.95, available: true}
		e := NewEngineWithClassifier(fc)
		got := e.Analyze(context.Background(), "Friendly staff but the flight was cancelled")
		if got.Sentiment != models.SentimentNegative {
			t.Errorf("Sentiment = %q, want negative from contrastive override", got.Sentiment)
		}
	})
}
