// Package pipeline runs a tailoring request through validation, analysis and synthesis
// as a small state machine and maps failures onto caller-facing error kinds.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/krishnachadda/ResumeTailor/internal/analysis"
	"github.com/krishnachadda/ResumeTailor/internal/observability"
	"github.com/krishnachadda/ResumeTailor/internal/parsing"
	"github.com/krishnachadda/ResumeTailor/internal/scoring"
	"github.com/krishnachadda/ResumeTailor/internal/synthesis"
	"github.com/krishnachadda/ResumeTailor/internal/types"
	"github.com/krishnachadda/ResumeTailor/internal/validation"
)

// Defaults for Options
const (
	DefaultTimeout       = 60 * time.Second
	DefaultMaxRetries    = 2
	DefaultRetryInterval = 500 * time.Millisecond
	DefaultMaxInterval   = 5 * time.Second
)

// ErrNoGenerator is returned by Tailor when the orchestrator was built without a generator
var ErrNoGenerator = errors.New("no text generator configured")

// Options configures an Orchestrator. Zero durations and a nil Policy or Extractor take the defaults.
// MaxRetries is used as given: zero disables retries, DefaultMaxRetries is the usual setting.
type Options struct {
	// Timeout bounds synthesis for one request
	Timeout time.Duration
	// MaxRetries bounds retries of transient provider failures per document. Zero means one attempt.
	MaxRetries    int
	RetryInterval time.Duration
	MaxInterval   time.Duration

	Analyzer  analysis.Config
	Policy    scoring.Policy
	Extractor *parsing.Extractor
}

// Orchestrator is the single entry point for tailoring requests. It is safe for concurrent use
// and keeps no state between runs.
type Orchestrator struct {
	opts        Options
	extractor   *parsing.Extractor
	analyzer    *analysis.Analyzer
	policy      scoring.Policy
	synthesizer *synthesis.Synthesizer
}

// New creates an Orchestrator. gen may be nil for analysis-only use.
func New(gen synthesis.Generator, opts Options) *Orchestrator {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = DefaultRetryInterval
	}
	if opts.MaxInterval < opts.RetryInterval {
		opts.MaxInterval = max(DefaultMaxInterval, opts.RetryInterval)
	}
	if opts.Policy == nil {
		opts.Policy = scoring.NewDefaultPolicy()
	}
	extractor := opts.Extractor
	if extractor == nil {
		extractor = parsing.NewExtractor(nil)
	}

	o := &Orchestrator{
		opts:      opts,
		extractor: extractor,
		analyzer:  analysis.New(opts.Analyzer),
		policy:    opts.Policy,
	}
	if gen != nil {
		o.synthesizer = synthesis.New(&retryingGenerator{
			next:       gen,
			maxRetries: int32(opts.MaxRetries),
			initial:    opts.RetryInterval,
			maxWait:    opts.MaxInterval,
		})
	}
	return o
}

// RunOptions are per-request settings
type RunOptions struct {
	// RunID identifies the run in logs and events. Defaults to the request id on ctx, else a new uuid.
	RunID   string
	OnState StateCallback
}

// Report is the outcome of the non-generative stages
type Report struct {
	Resume   *types.ResumeDocument
	Job      *types.JobPosting
	Signals  *types.MatchSignals
	Analysis types.AnalysisResult
}

// Tailor runs the full pipeline and returns both documents with their analysis, or an error and nothing
func (o *Orchestrator) Tailor(ctx context.Context, req *types.TailoringRequest) (*types.TailoringResult, error) {
	return o.TailorWithOptions(ctx, req, RunOptions{})
}

// TailorWithOptions is Tailor with a run id and a state observer
func (o *Orchestrator) TailorWithOptions(ctx context.Context, req *types.TailoringRequest, ro RunOptions) (*types.TailoringResult, error) {
	if o.synthesizer == nil {
		return nil, ErrNoGenerator
	}
	r, ctx := o.start(ctx, ro)
	start := time.Now()

	report, err := o.analyze(ctx, r, req)
	if err != nil {
		return nil, o.finish(ctx, r, start, err)
	}

	r.transition(StateSynthesizing, "writing resume and cover letter")
	sctx, cancel := context.WithTimeout(ctx, o.opts.Timeout)
	defer cancel()
	docs, err := o.synthesizer.Synthesize(sctx, req, report.Signals, report.Analysis)
	if err != nil {
		return nil, o.finish(ctx, r, start, err)
	}

	r.transition(StateDone, "tailoring complete")
	_ = o.finish(ctx, r, start, nil)
	return &types.TailoringResult{
		Resume:      docs.Resume,
		CoverLetter: docs.CoverLetter,
		Analysis:    report.Analysis,
	}, nil
}

// Analyze runs validation and analysis only; no external call is made
func (o *Orchestrator) Analyze(ctx context.Context, req *types.TailoringRequest) (*Report, error) {
	return o.AnalyzeWithOptions(ctx, req, RunOptions{})
}

// AnalyzeWithOptions is Analyze with a run id and a state observer
func (o *Orchestrator) AnalyzeWithOptions(ctx context.Context, req *types.TailoringRequest, ro RunOptions) (*Report, error) {
	r, ctx := o.start(ctx, ro)
	start := time.Now()
	report, err := o.analyze(ctx, r, req)
	if err != nil {
		return nil, o.finish(ctx, r, start, err)
	}
	r.transition(StateDone, "analysis complete")
	_ = o.finish(ctx, r, start, nil)
	return report, nil
}

func (o *Orchestrator) start(ctx context.Context, ro RunOptions) (*run, context.Context) {
	id := ro.RunID
	if id == "" {
		id = observability.RequestID(ctx)
	}
	if id == "" {
		id = uuid.NewString()
	}
	return newRun(id, ro.OnState), observability.WithRequestID(ctx, id)
}

// analyze moves the run through Validating and Analyzing
func (o *Orchestrator) analyze(ctx context.Context, r *run, req *types.TailoringRequest) (*Report, error) {
	r.transition(StateValidating, "checking request")
	if req == nil {
		return nil, &ValidationError{Message: "request is required"}
	}
	if err := req.Validate(); err != nil {
		return nil, validationError(err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.transition(StateAnalyzing, "extracting signals and scoring")
	warnInjection(ctx, "resume", req.Resume)
	warnInjection(ctx, "job description", req.JobDescription)

	resume := o.extractor.ExtractResume(req.Resume)
	job := o.extractor.ExtractJob(req.JobDescription)
	signals := scoring.BuildSignals(resume, job)
	scores := scoring.Score(o.policy, signals)
	result := o.analyzer.Analyze(signals, scores, analysis.Target{
		Industry: req.Industry,
		Level:    req.ExperienceLevel,
	})
	for _, w := range result.Warnings {
		slog.WarnContext(ctx, "extraction degraded", "run_id", r.id, "warning", w)
	}
	slog.InfoContext(ctx, "analysis complete",
		"run_id", r.id,
		"match_score", result.MatchScore,
		"ats_score", result.ATSScore,
		"required", len(signals.Required),
		"preferred", len(signals.Preferred),
		"matched", len(signals.Intersection),
		"industry_fit", result.IndustryFit,
	)
	return &Report{Resume: resume, Job: job, Signals: signals, Analysis: result}, nil
}

// finish records the outcome and, on error, moves the run to Failed
func (o *Orchestrator) finish(ctx context.Context, r *run, start time.Time, err error) error {
	elapsed := time.Since(start)
	if err == nil {
		observeRun(r.state, "ok", elapsed)
		return nil
	}
	class := Classify(err)
	failedIn := r.state
	r.fail(err)
	observeRun(failedIn, string(class.Kind), elapsed)

	level := slog.LevelError
	if class.Kind == KindValidation || class.Kind == KindCancelled {
		level = slog.LevelWarn
	}
	slog.Log(ctx, level, "run failed",
		"run_id", r.id,
		"state", failedIn,
		"kind", class.Kind,
		"retryable", class.Retryable,
		"error", err,
	)
	return err
}

func warnInjection(ctx context.Context, source, text string) {
	if res := validation.CheckInjection(text); !res.IsSafe {
		slog.WarnContext(ctx, "possible prompt injection in input", "source", source, "patterns", res.DetectedPattern)
	}
}
