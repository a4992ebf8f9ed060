package sentiment

import (
	"strings"
	"unicode"

	"airvoice/internal/models"
)

// DetectLanguage classifies a text as Arabic, English or mixed based on
// the ratio of Arabic letters to all letters. Digits and punctuation
// carry no signal and are ignored.
func DetectLanguage(text string) string {
	var arabic, latin int
	for _, r := range text {
		switch {
		case r >= 0x0600 && r <= 0x06FF:
			arabic++
		case unicode.IsLetter(r) && r < 0x0250:
			latin++
		}
	}
	total := arabic + latin
	if total == 0 {
		return models.LanguageEN
	}
	ratio := float64(arabic) / float64(total)
	switch {
	case ratio > 0.7:
		return models.LanguageAR
	case ratio < 0.3:
		return models.LanguageEN
	default:
		return models.LanguageMixed
	}
}

// Preprocess normalizes text for the ML classifier and for storage:
// lowercase, Arabic letter normalization, stopword removal and
// whitespace collapsing. Negators survive preprocessing so downstream
// models still see them.
func Preprocess(text, language string) string {
	lower := strings.ToLower(text)
	if language != models.LanguageEN {
		lower = normalizeArabic(lower)
	}

	var kept []string
	for _, t := range tokenize(lower) {
		if stopwordsEN.contains(t.text) || stopwordsAR.contains(t.text) {
			continue
		}
		kept = append(kept, t.text)
	}
	return strings.Join(kept, " ")
}

var arabicNormalizer = strings.NewReplacer(
	"أ", "ا",
	"إ", "ا",
	"آ", "ا",
	"ة", "ه",
	"ى", "ي",
	"ـ", "", // tatweel
)

// normalizeArabic folds common orthographic variants and strips
// diacritics so dictionary lookups match inflected forms.
func normalizeArabic(s string) string {
	s = arabicNormalizer.Replace(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		// Arabic harakat and Quranic annotation marks.
		if r >= 0x064B && r <= 0x065F || r == 0x0670 {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
