package sentiment

// Word lists driving the rule-based classifier. These are curated for
// airline feedback in English and Arabic; membership is checked on
// normalized tokens for English and on substring containment for Arabic,
// because Arabic morphology produces inflected forms a strict tokenizer
// would miss.

var positiveWordsEN = newWordSet(
	"excellent", "great", "good", "amazing", "wonderful", "fantastic",
	"perfect", "love", "loved", "best", "happy", "satisfied", "pleased",
	"comfortable", "friendly", "professional", "helpful", "smooth",
	"enjoyable", "enjoyed", "recommend", "appreciate", "thank", "thanks",
	"awesome", "delicious", "clean", "courteous", "punctual",
)

var negativeWordsEN = newWordSet(
	"bad", "terrible", "horrible", "awful", "worst", "poor", "disappointing",
	"disappointed", "delayed", "cancelled", "canceled", "lost", "missing",
	"rude", "unprofessional", "uncomfortable", "angry", "frustrated",
	"problem", "issue", "complaint", "refund", "hate", "avoid", "dirty",
	"broken", "cramped", "unacceptable", "nightmare",
)

// Hedging words carry weak neutral signal; they count at half weight.
var neutralWordsEN = newWordSet(
	"okay", "ok", "fine", "average", "decent", "normal", "standard",
	"usual", "acceptable", "adequate", "ordinary", "fair",
)

// English negation usually precedes its target at a variable distance
// because of auxiliary verbs ("did not really like"), hence the wide
// lookback window relative to Arabic.
var negatorsEN = newWordSet(
	"not", "no", "never", "don't", "dont", "doesn't", "doesnt", "didn't",
	"didnt", "wasn't", "wasnt", "weren't", "werent", "isn't", "isnt",
	"aren't", "arent", "can't", "cant", "couldn't", "couldnt", "won't",
	"wont", "wouldn't", "wouldnt", "hardly", "barely", "without", "lacked",
	"lacking", "nothing",
)

var positiveWordsAR = newWordSet(
	"ممتاز", "رائع", "جيد", "جميل", "شكرا", "شكراً", "سعيد", "محترم",
	"مريح", "لذيذ", "أحب", "احب", "استمتع", "استمتعت", "راضي", "راضية",
	"أفضل", "أحسن", "عظيم", "مذهل", "ودود", "محترف", "منظم", "نظيف",
)

var negativeWordsAR = newWordSet(
	"سيء", "سيئ", "سيئة", "فظيع", "مشكلة", "تأخير", "إلغاء", "ضعيف",
	"مزعج", "محبط", "أسوأ", "اسوأ", "كارثة", "خسارة", "ضياع",
	"فقدان", "مفقود", "متأخر", "ملغي", "رفض", "غاضب", "منزعج", "ضيق",
)

var neutralWordsAR = newWordSet(
	"عادي", "مقبول", "متوسط", "معقول",
)

// Arabic negation particles sit immediately before the word they negate.
var negatorsAR = newWordSet(
	"لا", "لم", "لن", "ما", "ليس", "ليست", "غير", "بدون", "مش", "مو",
)

// Stopwords removed during preprocessing. Negators are deliberately kept.
var stopwordsEN = newWordSet(
	"a", "an", "the", "is", "are", "was", "were", "be", "been", "being",
	"and", "or", "to", "of", "in", "on", "at", "for", "with", "from", "by",
	"it", "its", "this", "that", "these", "those", "i", "we", "they", "he",
	"she", "you", "my", "our", "their", "his", "her", "your", "me", "us",
	"them", "as", "so", "very", "just", "had", "has", "have", "did", "do",
	"does", "will", "would", "there", "here", "then", "than", "when",
	"while", "am", "been", "all",
)

var stopwordsAR = newWordSet(
	"في", "من", "على", "إلى", "عن", "مع", "هذا", "هذه", "ذلك", "تلك",
	"التي", "الذي", "هو", "هي", "نحن", "أنت", "أنا", "هم", "كان", "كانت",
	"أن", "قد", "و", "أو", "ثم", "لكن", "بل",
)

// Strong negative terms that force a negative classification when they
// appear in the clause after a contrastive connective. Mild words like
// "bad" or "poor" are excluded so balanced feedback stays neutral.
var strongNegativeOverrideEN = newWordSet(
	"terrible", "horrible", "awful", "worst", "delayed", "cancelled",
	"canceled", "lost", "rude", "unacceptable", "nightmare", "missing",
)

// Explicit neutral constructions. Matched by containment on the lowered
// text; their presence marks genuinely lukewarm feedback.
var neutralPhrases = []string{
	"nothing special",
	"nothing to write home about",
	"had its moments",
	"so so",
	"so-so",
	"it was ok",
	"it was okay",
	"neither good nor bad",
	"could be better could be worse",
	"لا بأس",
	"لا بأس به",
	"عادي جدا",
}

// Tiered phrase lists for long-text scoring. Weights are empirically
// tuned; see the weight constants in engine.go.
var longTextTiersPositive = []scoredPhrases{
	{weight: weightStrong, phrases: []string{
		"highly recommend", "absolutely loved", "best flight", "exceeded expectations",
		"outstanding service", "amazing experience", "will fly again",
	}},
	{weight: weightHigh, phrases: []string{
		"excellent", "wonderful", "fantastic", "amazing", "perfect", "outstanding",
	}},
	{weight: weightMedium, phrases: []string{
		"comfortable", "friendly", "helpful", "enjoyed", "great", "smooth",
		"professional", "delicious", "clean", "on time", "courteous",
	}},
	{weight: weightWeak, phrases: []string{
		"good", "nice", "pleasant", "decent",
	}},
}

var longTextTiersNegative = []scoredPhrases{
	{weight: weightStrong, phrases: []string{
		"never again", "never fly", "worst flight", "worst experience",
		"lost my luggage", "lost our luggage", "missed my connection",
		"complete nightmare", "absolutely unacceptable",
	}},
	{weight: weightHigh, phrases: []string{
		"terrible", "horrible", "awful", "worst", "unacceptable", "furious",
	}},
	{weight: weightMedium, phrases: []string{
		"delayed", "cancelled", "canceled", "rude", "uncomfortable", "dirty",
		"broken", "disappointing", "frustrated", "no apology", "long queue",
	}},
	{weight: weightWeak, phrases: []string{
		"bad", "slow", "cramped", "noisy", "issue", "problem",
	}},
}

// Arabic verification keyword tiers. Matched by containment; at least two
// matches of one polarity can override an earlier prediction.
var arabicStrongPositive = []string{
	"ممتاز", "رائع", "جميل", "مذهل", "عظيم", "أفضل", "شكرا", "شكراً",
	"مريح", "نظيف", "استمتعت", "محترف",
}

var arabicStrongNegative = []string{
	"سيء", "سيئ", "فظيع", "كارثة", "أسوأ", "اسوأ", "تأخير", "إلغاء",
	"مفقود", "ضياع", "محبط", "مزعج",
}

// scoredPhrases binds a weight to a list of phrases.
type scoredPhrases struct {
	weight  float64
	phrases []string
}

type wordSet map[string]struct{}

func newWordSet(words ...string) wordSet {
	s := make(wordSet, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

func (s wordSet) contains(word string) bool {
	_, ok := s[word]
	return ok
}
