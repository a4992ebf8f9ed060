// Package sentiment classifies customer feedback text into positive,
// negative or neutral with a confidence score and detected language. The
// rule-based path is a pure function of its input; an optional ML
// classifier can be layered in front of it, with the rule layer always
// applied afterwards to correct known model blind spots around negation
// and mixed sentiment.
package sentiment

import (
	"context"
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"airvoice/internal/models"
)

const (
	ruleModelVersion = "rule-based-v1"

	// Negation lookback windows, in characters. English negation precedes
	// its target at variable distance because of auxiliary verbs, so its
	// window is twice the Arabic one. The verification window is shorter
	// still: Arabic particles sit immediately before the word they negate.
	negationWindowEN   = 40
	negationWindowAR   = 20
	arabicVerifyWindow = 8

	// Texts at or above this many words switch to tiered-weight scoring.
	longTextWordCutoff = 50

	// A label wins only if it beats both competitors by this margin;
	// anything closer is neutral by definition.
	decisionMargin = 0.5

	// Empirically tuned phrase-tier weights for long-text scoring.
	weightStrong = 4.0
	weightHigh   = 3.0
	weightMedium = 2.0
	weightWeak   = 0.5

	// A negated positive word is a stronger negative signal than a plain
	// negative word; a negated negative is only a weak positive.
	negatedPositiveWeight = 1.5
	negatedNegativeWeight = 0.5
	neutralWordWeight     = 0.5

	baseConfidence = 60.0
	maxConfidence  = 95.0
)

// Result is the outcome of analyzing a single text. Sentiment is always
// one of the three labels and Confidence is in [0, 100].
type Result struct {
	Text             string   `json:"text"`
	Sentiment        string   `json:"sentiment"`
	Confidence       float64  `json:"confidence"`
	Language         string   `json:"language"`
	PreprocessedText string   `json:"preprocessed_text"`
	ModelVersion     string   `json:"model_version"`
	HasNegation      bool     `json:"has_negation"`
	NegatedWords     []string `json:"negated_words,omitempty"`
	Error            string   `json:"error,omitempty"`
}

// Engine analyzes feedback text. It holds no mutable state after
// construction, so a single instance is safe for concurrent use.
type Engine struct {
	classifier Classifier
	wordCutoff int
}

// NewEngine creates a rule-based engine.
func NewEngine() *Engine {
	return &Engine{wordCutoff: longTextWordCutoff}
}

// NewEngineWithClassifier creates an engine that consults the given
// classifier first and reconciles its prediction with the rule layer.
// A nil classifier behaves exactly like NewEngine.
func NewEngineWithClassifier(c Classifier) *Engine {
	return &Engine{classifier: c, wordCutoff: longTextWordCutoff}
}

// Analyze classifies a single text. It never fails: malformed or empty
// input degrades to neutral at low confidence.
func (e *Engine) Analyze(ctx context.Context, text string) Result {
	res := Result{
		Text:         text,
		Sentiment:    models.SentimentNeutral,
		Language:     models.LanguageEN,
		ModelVersion: ruleModelVersion,
	}

	if !utf8.ValidString(text) {
		res.Error = "invalid utf-8 input"
		return res
	}
	if strings.TrimSpace(text) == "" {
		res.Confidence = 50
		return res
	}

	res.Language = DetectLanguage(text)
	res.PreprocessedText = Preprocess(text, res.Language)

	lower := strings.ToLower(text)
	_, negated := e.scoreWords(lower, res.Language)
	res.HasNegation = len(negated) > 0
	res.NegatedWords = negated

	label, conf := e.classifyRules(lower, text, res.Language)

	if e.classifier != nil && e.classifier.Available(ctx) {
		if mlLabel, mlConf, err := e.classifier.Classify(ctx, res.PreprocessedText); err == nil {
			label, conf = e.reconcile(lower, text, res.Language, mlLabel, mlConf, label, conf, res.HasNegation)
			res.ModelVersion = "hybrid-" + e.classifier.Name()
		}
	}

	res.Sentiment = label
	res.Confidence = clampConfidence(conf)
	return res
}

// classifyRules runs the full rule pipeline on a lowered text.
func (e *Engine) classifyRules(lower, original, language string) (string, float64) {
	if label, conf, ok := e.mixedOverride(lower, language); ok {
		return e.verify(original, language, label, conf)
	}
	if hasNeutralPhrase(lower) {
		return models.SentimentNeutral, 70
	}
	if countWords(lower) >= e.wordCutoff {
		label, conf := e.scoreLongText(lower)
		return e.verify(original, language, label, conf)
	}
	sc, _ := e.scoreWords(lower, language)
	label, conf := decide(sc)
	return e.verify(original, language, label, conf)
}

// verify applies the Arabic keyword verification stage for texts with
// Arabic content.
func (e *Engine) verify(original, language, label string, conf float64) (string, float64) {
	if language == models.LanguageEN {
		return label, conf
	}
	return e.verifyArabic(original, label, conf)
}

// reconcile corrects an ML prediction with the rule layer. Decisive rule
// patterns (contrastive override, explicit neutral phrase, negation) win
// over the model; otherwise the model's label is kept.
func (e *Engine) reconcile(lower, original, language, mlLabel string, mlConf float64, ruleLabel string, ruleConf float64, hasNegation bool) (string, float64) {
	if label, conf, ok := e.mixedOverride(lower, language); ok {
		return e.verify(original, language, label, conf)
	}
	if hasNeutralPhrase(lower) {
		return models.SentimentNeutral, 70
	}

	label := mlLabel
	switch label {
	case models.SentimentPositive, models.SentimentNegative, models.SentimentNeutral:
	default:
		label = models.SentimentNeutral
	}
	conf := mlConf * 100

	// Models routinely conflate "not bad" with "bad"; when negation is
	// present and the rule layer disagrees, trust the rules.
	if hasNegation && label != ruleLabel {
		return e.verify(original, language, ruleLabel, ruleConf)
	}
	return e.verify(original, language, label, conf)
}

// scores accumulates evidence per label.
type scores struct {
	pos, neg, neu float64
}

// scoreWords tallies dictionary matches with negation handling and
// returns the matched words that were negated.
func (e *Engine) scoreWords(lower, language string) (scores, []string) {
	runes := []rune(lower)
	var sc scores
	var negated []string

	english := language == models.LanguageEN || language == models.LanguageMixed
	arabic := language == models.LanguageAR || language == models.LanguageMixed

	for _, t := range tokenize(lower) {
		switch {
		case english && positiveWordsEN.contains(t.text):
			if ok, _ := isNegated(runes, t.start, negationWindowEN, negatorsEN); ok {
				sc.neg += negatedPositiveWeight
				negated = append(negated, t.text)
			} else {
				sc.pos++
			}
		case english && negativeWordsEN.contains(t.text):
			if ok, _ := isNegated(runes, t.start, negationWindowEN, negatorsEN); ok {
				sc.pos += negatedNegativeWeight
				negated = append(negated, t.text)
			} else {
				sc.neg++
			}
		case english && neutralWordsEN.contains(t.text):
			sc.neu += neutralWordWeight
		case arabic && positiveWordsAR.contains(t.text):
			if ok, _ := isNegated(runes, t.start, negationWindowAR, negatorsAR); ok {
				sc.neg += negatedPositiveWeight
				negated = append(negated, t.text)
			} else {
				sc.pos++
			}
		case arabic && negativeWordsAR.contains(t.text):
			if ok, _ := isNegated(runes, t.start, negationWindowAR, negatorsAR); ok {
				sc.pos += negatedNegativeWeight
				negated = append(negated, t.text)
			} else {
				sc.neg++
			}
		case arabic && neutralWordsAR.contains(t.text):
			sc.neu += neutralWordWeight
		}
	}
	return sc, negated
}

// decide turns accumulated scores into a label. Ties and near-ties are
// neutral; there is no default winner.
func decide(sc scores) (string, float64) {
	if sc.pos == 0 && sc.neg == 0 && sc.neu == 0 {
		return models.SentimentNeutral, 60
	}

	type candidate struct {
		label string
		score float64
	}
	cands := []candidate{
		{models.SentimentPositive, sc.pos},
		{models.SentimentNegative, sc.neg},
		{models.SentimentNeutral, sc.neu},
	}
	best, second := cands[0], candidate{}
	for _, c := range cands[1:] {
		if c.score > best.score {
			second = best
			best = c
		} else if c.score > second.score {
			second = c
		}
	}

	margin := best.score - second.score
	if margin >= decisionMargin {
		return best.label, math.Min(maxConfidence, baseConfidence+margin*10)
	}
	return models.SentimentNeutral, 50
}

// token is a word with its rune offset in the source text.
type token struct {
	text  string
	start int
}

func tokenize(s string) []token {
	runes := []rune(s)
	var tokens []token
	i := 0
	for i < len(runes) {
		for i < len(runes) && unicode.IsSpace(runes[i]) {
			i++
		}
		start := i
		for i < len(runes) && !unicode.IsSpace(runes[i]) {
			i++
		}
		if start < i {
			if word := trimWord(string(runes[start:i])); word != "" {
				tokens = append(tokens, token{text: word, start: start})
			}
		}
	}
	return tokens
}

func trimWord(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '\''
	})
}

// isNegated reports whether a negation trigger appears within the given
// number of characters preceding the match position.
func isNegated(runes []rune, start, window int, negators wordSet) (bool, string) {
	from := start - window
	if from < 0 {
		from = 0
	}
	for _, w := range strings.Fields(string(runes[from:start])) {
		if w = trimWord(w); negators.contains(w) {
			return true, w
		}
	}
	return false, ""
}

func hasNeutralPhrase(lower string) bool {
	for _, p := range neutralPhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

var wordPattern = regexp.MustCompile(`\S+`)

func countWords(s string) int {
	return len(wordPattern.FindAllStringIndex(s, -1))
}

func clampConfidence(c float64) float64 {
	return math.Min(100, math.Max(0, c))
}
