package analytics

import (
	"sort"
	"strings"
)

// complaintCategory groups bilingual keywords describing one kind of
// complaint. A negative text can fall into several categories.
type complaintCategory struct {
	name     string
	keywords []string
}

// Categories are ordered; ties in count resolve to this order.
var complaintCategories = []complaintCategory{
	{"Delay/Cancellation", []string{
		"delay", "delayed", "cancel", "cancelled", "late", "wait", "hours",
		"تأخير", "إلغاء", "تأخر", "انتظار", "ملغي",
	}},
	{"Lost Baggage", []string{
		"luggage", "baggage", "bag", "lost", "missing", "suitcase", "damaged",
		"حقيبة", "أمتعة", "ضائعة", "حقائب", "مفقود",
	}},
	{"Poor Service", []string{
		"rude", "unhelpful", "staff", "service", "attitude", "unprofessional", "crew",
		"خدمة", "سيء", "موظف", "طاقم", "معاملة",
	}},
	{"Seat Issues", []string{
		"seat", "uncomfortable", "space", "legroom", "cramped", "narrow",
		"مقعد", "مقاعد", "ضيق",
	}},
	{"Food Quality", []string{
		"food", "meal", "cold", "taste", "quality", "tasteless",
		"طعام", "وجبة", "بارد", "أكل", "اكل",
	}},
	{"Booking Problems", []string{
		"booking", "reservation", "website", "overbooked",
		"حجز", "موقع", "تطبيق",
	}},
	{"Refund Issues", []string{
		"refund", "money", "charge", "payment",
		"استرداد", "مال", "دفع", "مبلغ",
	}},
	{"Check-in Problems", []string{
		"check-in", "checkin", "counter", "queue", "boarding", "gate",
		"تسجيل", "طابور", "صعود", "بوابة",
	}},
	{"Communication", []string{
		"communication", "inform", "notification", "update",
		"تواصل", "إبلاغ", "ابلاغ",
	}},
	{"Cleanliness", []string{
		"dirty", "clean", "smell", "hygiene", "toilet", "bathroom",
		"نظافة", "قذر", "وسخ", "رائحة", "حمام",
	}},
}

// ComplaintCount is one category's share of negative feedback.
type ComplaintCount struct {
	Category   string  `json:"category"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// TopComplaints categorizes negative records by keyword and returns the
// most frequent categories. A record matching keywords from several
// categories counts in each of them; percentages are of the total
// category matches, not of the record count. Zero matches returns an
// empty slice.
func (e *Engine) TopComplaints(records []Record, limit int) []ComplaintCount {
	counts := make([]int, len(complaintCategories))
	total := 0

	for _, r := range records {
		if r.Sentiment != sentimentNegative {
			continue
		}
		lower := strings.ToLower(r.Text)
		for i, cat := range complaintCategories {
			for _, kw := range cat.keywords {
				if strings.Contains(lower, kw) {
					counts[i]++
					total++
					break
				}
			}
		}
	}

	if total == 0 {
		return []ComplaintCount{}
	}

	out := make([]ComplaintCount, 0, len(complaintCategories))
	for i, cat := range complaintCategories {
		if counts[i] == 0 {
			continue
		}
		out = append(out, ComplaintCount{
			Category:   cat.name,
			Count:      counts[i],
			Percentage: round1(float64(counts[i]) / float64(total) * 100),
		})
	}
	// Stable sort keeps the category order for equal counts.
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
