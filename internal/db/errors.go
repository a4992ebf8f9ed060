package db

import "errors"

var (
	ErrFeedbackNotFound = errors.New("feedback not found")
	ErrReportNotFound   = errors.New("report not found")
	ErrUserNotFound     = errors.New("user not found")
)
