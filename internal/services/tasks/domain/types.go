// Package domain defines the async task types and the queue ports
package domain

import (
	"time"

	pdom "textpolish/internal/services/api/polish/domain"
)

// Status is a task lifecycle state
type Status string

// Task states. A task moves pending -> processing -> completed|failed; an
// expired processing lease returns it to the leasable set.
const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Messages returned to callers
const (
	MsgSubmitted  = "任务已提交，请稍后查询结果"
	MsgPending    = "任务等待中"
	MsgProcessing = "任务处理中"
)

// Done reports whether s is terminal
func (s Status) Done() bool { return s == StatusCompleted || s == StatusFailed }

// Task is one queued polish request and its outcome
type Task struct {
	ID       string `json:"task_id"  example:"3f0c8a0e-6a0b-4b8f-9d55-2a1f0c1f9b7e"`
	Status   Status `json:"status"   example:"completed"`
	Message  string `json:"message,omitempty"`
	Attempts int    `json:"attempts" example:"1"`

	Request pdom.TextRequest    `json:"-"`
	Result  *pdom.ProcessResult `json:"result,omitempty"`
	Error   string              `json:"error,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WithMessage fills Message for states that carry one
func (t Task) WithMessage() Task {
	switch t.Status {
	case StatusPending:
		t.Message = MsgPending
	case StatusProcessing:
		t.Message = MsgProcessing
	}
	return t
}

// Accepted is the reply to an async submission
type Accepted struct {
	TaskID  string `json:"task_id" example:"3f0c8a0e-6a0b-4b8f-9d55-2a1f0c1f9b7e"`
	Status  Status `json:"status"  example:"processing"`
	Message string `json:"message" example:"任务已提交，请稍后查询结果"`
}
