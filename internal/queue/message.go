// Package queue consumes tailoring jobs from RabbitMQ and publishes their status updates.
package queue

import (
	"time"

	"github.com/krishnachadda/ResumeTailor/internal/pipeline"
	"github.com/krishnachadda/ResumeTailor/internal/types"
)

// TailorMessage is the body of a request queue message
type TailorMessage struct {
	ID          string                 `json:"id"`
	AnalyzeOnly bool                   `json:"analyzeOnly,omitempty"`
	Request     types.TailoringRequest `json:"request"`
}

// ErrorInfo is the classified failure attached to a failed update
type ErrorInfo struct {
	Error     string             `json:"error"`
	Kind      pipeline.ErrorKind `json:"kind"`
	Retryable bool               `json:"retryable"`
}

// StatusUpdate is published to the updates queue for every state change of a job
type StatusUpdate struct {
	ID        string                 `json:"id"`
	State     pipeline.State         `json:"state"`
	Status    string                 `json:"status"`
	Message   string                 `json:"message,omitempty"`
	Error     *ErrorInfo             `json:"error,omitempty"`
	Result    *types.TailoringResult `json:"result,omitempty"`
	Analysis  *types.AnalysisResult  `json:"analysis,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func newErrorInfo(err error) *ErrorInfo {
	c := pipeline.Classify(err)
	info := &ErrorInfo{Error: err.Error(), Kind: c.Kind, Retryable: c.Retryable}
	if c.Kind == pipeline.KindInternal {
		info.Error = "internal error"
	}
	return info
}
