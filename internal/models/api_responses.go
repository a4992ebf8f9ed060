package models

// FeedbackListResponse is the paginated feedback listing envelope.
type FeedbackListResponse struct {
	Items      []Feedback `json:"items"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
}
