// Package domain holds DTOs for polish http and service contracts
package domain

import (
	"textpolish/internal/core/polish"
	"textpolish/internal/core/scorer"
)

// AnonymousUser is recorded when a request names no user
const AnonymousUser = "anonymous"

// TextRequest is one text to polish or score
type TextRequest struct {
	Content string `json:"content" validate:"required" example:"人工智能正在改变我们的生活方式。"`
	// Style is academic, formal, casual or creative; empty means academic
	Style  string `json:"style,omitempty" example:"academic"`
	UserID string `json:"user_id,omitempty" validate:"omitempty,max=64" example:"anonymous"`
}

// ProcessResult is the polished text with its score and provenance
type ProcessResult struct {
	OriginalText   string  `json:"original_text"  example:"人工智能正在改变我们的生活方式。"`
	ProcessedText  string  `json:"processed_text" example:"[学术润色] AI技术正在改变我们的生活方式。"`
	AIProbability  float64 `json:"ai_probability" example:"0.12"`
	ProcessingTime float64 `json:"processing_time" example:"1.52"` // seconds
	StyleUsed      string  `json:"style_used"     example:"academic"`
	// APIUsed is the provider label, or "fallback" for the local transform
	APIUsed          string `json:"api_used" example:"deepseek"`
	FallbackReason   string `json:"fallback_reason,omitempty" example:"timeout"`
	ReasoningContent string `json:"reasoning_content,omitempty"`
	HistoryID        int64  `json:"history_id,omitempty" example:"42"`
}

// Fallback reports whether the local transform produced the text
func (r ProcessResult) Fallback() bool { return r.APIUsed == polish.ProviderFallback }

// DetectResult scores submitted text without rewriting it
type DetectResult struct {
	Content         string            `json:"content"`
	AIProbability   float64           `json:"ai_probability"   example:"0.48"`
	ConfidenceLevel scorer.Confidence `json:"confidence_level" example:"medium"`
	Analysis        scorer.Signals    `json:"analysis"`
	MatchedPatterns []string          `json:"matched_patterns"`
	SentenceCount   int               `json:"sentence_count"   example:"4"`
	Script          string            `json:"script,omitempty"   example:"Han"`
	Language        string            `json:"language,omitempty" example:"zh"`
	ProcessingTime  float64           `json:"processing_time"  example:"0.001"`
}

// BatchItem is one batch result, tagged with its input position
type BatchItem struct {
	Index int `json:"index" example:"0"`
	ProcessResult
}

// BatchResult holds results in input order
type BatchResult struct {
	TotalCount int `json:"total_count" example:"2"`
	// TotalTime is the sum of item processing times, not wall clock
	TotalTime float64     `json:"total_time" example:"3.1"`
	Results   []BatchItem `json:"results"`
}
