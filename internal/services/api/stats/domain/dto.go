// Package domain holds DTOs for stats http and service contracts
package domain

import "time"

// Event is one processed text as recorded for analytics
type Event struct {
	Style          string
	APIUsed        string
	Fallback       bool
	AIProbability  float64
	ProcessingTime float64
	InputChars     int
	OutputChars    int
	CreatedAt      time.Time
}

// SummaryInput is the query window in days, counted back from now
type SummaryInput struct {
	Days int
}

// StyleRow aggregates one style in the window
type StyleRow struct {
	Style              string  `json:"style"                example:"academic"`
	Total              int64   `json:"total"                example:"120"`
	Fallbacks          int64   `json:"fallbacks"            example:"6"`
	FallbackRatio      float64 `json:"fallback_ratio"       example:"0.05"`
	MeanAIProbability  float64 `json:"mean_ai_probability"  example:"0.21"`
	MeanProcessingTime float64 `json:"mean_processing_time" example:"1.8"`
}

// Summary is the aggregate over all styles plus the per style rows
type Summary struct {
	Days int `json:"days" example:"7"`
	// Source is "clickhouse" or "history"
	Source             string     `json:"source"               example:"clickhouse"`
	Total              int64      `json:"total"                example:"300"`
	FallbackRatio      float64    `json:"fallback_ratio"       example:"0.04"`
	MeanAIProbability  float64    `json:"mean_ai_probability"  example:"0.19"`
	MeanProcessingTime float64    `json:"mean_processing_time" example:"1.7"`
	ByStyle            []StyleRow `json:"by_style"`
}
