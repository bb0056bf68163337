package report

import "errors"

var (
	ErrReportNotFound   = errors.New("report not found")
	ErrCategoryNotFound = errors.New("report category not found")
	ErrInvalidStatus    = errors.New("invalid report status")
)
