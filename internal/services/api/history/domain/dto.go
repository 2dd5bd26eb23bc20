// Package domain holds DTOs and ports for the processing history
package domain

import "time"

// Entry is what the pipeline appends after each processed text
type Entry struct {
	UserID         string
	OriginalText   string
	ProcessedText  string
	AIProbability  float64
	ProcessingTime float64
	Style          string
	APIUsed        string
}

// Record is a stored history row
type Record struct {
	ID             int64     `json:"id"              example:"42"`
	UserID         string    `json:"user_id"         example:"anonymous"`
	OriginalText   string    `json:"original_text"   example:"人工智能正在改变我们的生活方式。"`
	ProcessedText  string    `json:"processed_text"  example:"AI技术正在深刻改变人类的生活方式。"`
	AIProbability  float64   `json:"ai_probability"  example:"0.12"`
	ProcessingTime float64   `json:"processing_time" example:"1.52"`
	Style          string    `json:"style"           example:"academic"`
	APIUsed        string    `json:"api_used"        example:"deepseek"`
	CreatedAt      time.Time `json:"created_at"      example:"2025-09-03T13:05:00Z"`
}

// ListInput filters and pages the history listing
type ListInput struct {
	UserID   string
	Page     int
	PageSize int
}

// Page size bounds for ListInput
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Normalize clamps the page to at least 1 and the page size to 1..MaxPageSize
func (in ListInput) Normalize() ListInput {
	in.Page = max(in.Page, 1)
	switch {
	case in.PageSize <= 0:
		in.PageSize = DefaultPageSize
	case in.PageSize > MaxPageSize:
		in.PageSize = MaxPageSize
	}
	return in
}

// Offset is the row offset of the page, pages count from 1
func (in ListInput) Offset() int { return (max(in.Page, 1) - 1) * in.PageSize }
