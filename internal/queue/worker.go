package queue

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/krishnachadda/ResumeTailor/internal/observability"
	"github.com/krishnachadda/ResumeTailor/internal/pipeline"
	"github.com/krishnachadda/ResumeTailor/internal/schemas"
	"github.com/krishnachadda/ResumeTailor/internal/types"
)

// Tailorer is the part of pipeline.Orchestrator the worker needs
type Tailorer interface {
	TailorWithOptions(ctx context.Context, req *types.TailoringRequest, ro pipeline.RunOptions) (*types.TailoringResult, error)
	AnalyzeWithOptions(ctx context.Context, req *types.TailoringRequest, ro pipeline.RunOptions) (*pipeline.Report, error)
}

// Publisher sends status updates
type Publisher interface {
	Publish(ctx context.Context, update StatusUpdate) error
}

// Outcome is what the worker did with a delivery
type Outcome string

// Outcomes
const (
	OutcomeAcked    Outcome = "acked"
	OutcomeRejected Outcome = "rejected"
	OutcomeRequeued Outcome = "requeued"
)

// Worker runs one delivery at a time through the orchestrator
type Worker struct {
	tailorer  Tailorer
	publisher Publisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewWorker creates a worker. logger may be nil.
func NewWorker(tailorer Tailorer, publisher Publisher, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{tailorer: tailorer, publisher: publisher, logger: logger, now: time.Now}
}

// Handle processes a delivery and acknowledges it. Malformed messages are rejected without
// requeue. A transient failure is requeued once; a redelivered message that fails again is
// reported as failed and acked. Work interrupted by cancellation is requeued.
func (w *Worker) Handle(ctx context.Context, d amqp.Delivery) Outcome {
	if err := schemas.Validate(schemas.TailorMessage, d.Body); err != nil {
		id := peekID(d.Body)
		w.logger.WarnContext(ctx, "rejecting malformed message", "id", id, "error", err)
		if id != "" {
			w.publish(ctx, StatusUpdate{
				ID: id, State: pipeline.StateFailed, Status: pipeline.StatusFailed,
				Error: &ErrorInfo{Error: err.Error(), Kind: pipeline.KindValidation},
			})
		}
		return w.settle(ctx, d, OutcomeRejected)
	}

	var msg TailorMessage
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		w.logger.WarnContext(ctx, "rejecting undecodable message", "error", err)
		return w.settle(ctx, d, OutcomeRejected)
	}

	ctx = observability.WithRequestID(ctx, msg.ID)
	w.logger.InfoContext(ctx, "processing message", "analyze_only", msg.AnalyzeOnly, "redelivered", d.Redelivered)

	ro := pipeline.RunOptions{
		RunID: msg.ID,
		OnState: func(event pipeline.StateEvent) {
			// terminal updates are published with their payload below
			if event.Status == pipeline.StatusPending {
				w.publish(ctx, StatusUpdate{ID: msg.ID, State: event.State, Status: event.Status, Message: event.Message})
			}
		},
	}

	final := StatusUpdate{ID: msg.ID, State: pipeline.StateDone, Status: pipeline.StatusDone}
	var err error
	if msg.AnalyzeOnly {
		var report *pipeline.Report
		if report, err = w.tailorer.AnalyzeWithOptions(ctx, &msg.Request, ro); err == nil {
			final.Analysis = &report.Analysis
		}
	} else {
		var result *types.TailoringResult
		if result, err = w.tailorer.TailorWithOptions(ctx, &msg.Request, ro); err == nil {
			final.Result = result
		}
	}

	if err == nil {
		w.publish(ctx, final)
		return w.settle(ctx, d, OutcomeAcked)
	}

	class := pipeline.Classify(err)
	switch {
	case class.Kind == pipeline.KindValidation:
		w.publishFailure(ctx, msg.ID, err)
		return w.settle(ctx, d, OutcomeRejected)
	case class.Kind == pipeline.KindCancelled:
		w.publish(ctx, StatusUpdate{
			ID: msg.ID, State: pipeline.StateIdle, Status: pipeline.StatusPending,
			Message: "requeued after shutdown",
		})
		return w.settle(ctx, d, OutcomeRequeued)
	case class.Retryable && !d.Redelivered:
		w.publish(ctx, StatusUpdate{
			ID: msg.ID, State: pipeline.StateIdle, Status: pipeline.StatusPending,
			Message: "requeued after transient failure",
		})
		return w.settle(ctx, d, OutcomeRequeued)
	default:
		w.publishFailure(ctx, msg.ID, err)
		return w.settle(ctx, d, OutcomeAcked)
	}
}

func (w *Worker) publishFailure(ctx context.Context, id string, err error) {
	w.publish(ctx, StatusUpdate{
		ID: id, State: pipeline.StateFailed, Status: pipeline.StatusFailed,
		Message: "tailoring failed", Error: newErrorInfo(err),
	})
}

func (w *Worker) publish(ctx context.Context, update StatusUpdate) {
	update.Timestamp = w.now().UTC()
	// updates are published even after the job context is cancelled
	if err := w.publisher.Publish(context.WithoutCancel(ctx), update); err != nil {
		w.logger.ErrorContext(ctx, "failed to publish update", "state", update.State, "error", err)
	}
}

func (w *Worker) settle(ctx context.Context, d amqp.Delivery, outcome Outcome) Outcome {
	var err error
	switch outcome {
	case OutcomeAcked:
		err = d.Ack(false)
	case OutcomeRejected:
		err = d.Reject(false)
	case OutcomeRequeued:
		err = d.Nack(false, true)
	}
	if err != nil {
		w.logger.ErrorContext(ctx, "failed to settle delivery", "outcome", outcome, "error", err)
	}
	return outcome
}

// peekID extracts the id from a message that failed validation, if it has one
func peekID(body []byte) string {
	var probe struct {
		ID any `json:"id"`
	}
	if json.Unmarshal(body, &probe) != nil {
		return ""
	}
	id, _ := probe.ID.(string)
	return id
}
