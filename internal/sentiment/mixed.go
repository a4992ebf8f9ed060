package sentiment

import (
	"regexp"

	"airvoice/internal/models"
)

// Contrastive connectives split a text into a concession and a judgment.
var connectivePattern = regexp.MustCompile(`\b(?:but|however|although|though)\b`)

// mixedOverride handles contrastive feedback like "staff was friendly
// but the flight was delayed". A strong negative judgment after the
// connective outweighs any praise before it; genuinely balanced clauses
// come out neutral. Returns ok=false when no contrastive structure is
// present, so the normal scoring path applies.
func (e *Engine) mixedOverride(lower, language string) (string, float64, bool) {
	if language == models.LanguageAR {
		return "", 0, false
	}
	loc := connectivePattern.FindStringIndex(lower)
	if loc == nil {
		return "", 0, false
	}
	before, after := lower[:loc[0]], lower[loc[1]:]

	afterRunes := []rune(after)
	for _, t := range tokenize(after) {
		if !strongNegativeOverrideEN.contains(t.text) {
			continue
		}
		if ok, _ := isNegated(afterRunes, t.start, negationWindowEN, negatorsEN); !ok {
			return models.SentimentNegative, 85, true
		}
	}

	bs, _ := e.scoreWords(before, language)
	as, _ := e.scoreWords(after, language)
	beforePos, beforeNeg := bs.pos > 0, bs.neg > 0
	afterPos, afterNeg := as.pos > 0, as.neg > 0
	if (beforePos && afterNeg) || (beforeNeg && afterPos) {
		return models.SentimentNeutral, 65, true
	}
	return "", 0, false
}
