package sentiment

import (
	"math"
	"strings"

	"airvoice/internal/models"
)

// scoreLongText handles reviews at or past the word cutoff. Individual
// word counts drown in long narratives, so scoring switches to weighted
// phrase tiers, and a review with substantial signal on both sides is
// treated as balanced rather than letting the slightly larger side win.
func (e *Engine) scoreLongText(lower string) (string, float64) {
	pos := tierScore(lower, longTextTiersPositive)
	neg := tierScore(lower, longTextTiersNegative)

	if pos == 0 && neg == 0 {
		return models.SentimentNeutral, 60
	}

	major, minor := pos, neg
	if neg > pos {
		major, minor = neg, pos
	}
	if minor >= major/2 {
		return models.SentimentNeutral, 60
	}

	diff := math.Abs(pos - neg)
	conf := math.Min(maxConfidence, baseConfidence+35*diff/(pos+neg))
	if pos > neg {
		return models.SentimentPositive, conf
	}
	return models.SentimentNegative, conf
}

func tierScore(lower string, tiers []scoredPhrases) float64 {
	var total float64
	for _, tier := range tiers {
		for _, p := range tier.phrases {
			total += float64(strings.Count(lower, p)) * tier.weight
		}
	}
	return total
}
