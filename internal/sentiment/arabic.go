package sentiment

import (
	"math"
	"strings"
	"unicode/utf8"

	"airvoice/internal/models"
)

// verifyArabic is a second pass over texts with Arabic content. The main
// scorer tokenizes on whitespace, which misses inflected forms; this
// stage scans for strong keywords by containment and can override the
// earlier label when the keyword evidence is decisive.
func (e *Engine) verifyArabic(text, label string, conf float64) (string, float64) {
	var posHits, negHits int
	negatedPositive := false

	for _, kw := range arabicStrongPositive {
		for _, idx := range indexAll(text, kw) {
			if negatorBefore(text, idx, arabicVerifyWindow) {
				negHits++
				negatedPositive = true
			} else {
				posHits++
			}
		}
	}
	for _, kw := range arabicStrongNegative {
		negHits += len(indexAll(text, kw))
	}

	switch {
	case negHits >= 2 && negHits > posHits:
		return models.SentimentNegative, math.Max(conf, 80)
	case posHits >= 2 && posHits > negHits:
		return models.SentimentPositive, math.Max(conf, 80)
	case negatedPositive && label == models.SentimentPositive:
		return models.SentimentNegative, math.Max(conf, 75)
	}
	return label, conf
}

// indexAll returns the byte offsets of every non-overlapping occurrence
// of sub in s.
func indexAll(s, sub string) []int {
	var offsets []int
	for start := 0; ; {
		j := strings.Index(s[start:], sub)
		if j < 0 {
			return offsets
		}
		offsets = append(offsets, start+j)
		start += j + len(sub)
	}
}

// negatorBefore reports whether an Arabic negation particle appears
// within window characters before the byte offset.
func negatorBefore(s string, byteIdx, window int) bool {
	start := byteIdx
	for i := 0; i < window && start > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(s[:start])
		start -= size
	}
	for _, w := range strings.Fields(s[start:byteIdx]) {
		if negatorsAR.contains(trimWord(w)) {
			return true
		}
	}
	return false
}
