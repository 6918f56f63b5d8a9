package synthesis

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/krishnachadda/ResumeTailor/internal/llm"
	"github.com/krishnachadda/ResumeTailor/internal/types"
	"github.com/krishnachadda/ResumeTailor/internal/validation"
)

// Error reports that a document could not be produced. No partial pair is ever returned with it.
type Error struct {
	Document DocumentKind
	Message  string
	Cause    error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("synthesis error (%s): %s: %v", e.Document, e.Message, e.Cause)
	}
	return fmt.Sprintf("synthesis error (%s): %s", e.Document, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Retryable reports whether the underlying provider failure is transient
func (e *Error) Retryable() bool {
	return llm.IsTransient(e.Cause)
}

// Documents is a generated resume and cover letter pair
type Documents struct {
	Resume      string
	CoverLetter string
}

// Synthesizer produces both documents for a request
type Synthesizer struct {
	gen Generator
}

// New creates a Synthesizer around gen
func New(gen Generator) *Synthesizer {
	return &Synthesizer{gen: gen}
}

// Synthesize generates the resume and cover letter concurrently. The first failure cancels the
// other call and both documents are discarded.
func (s *Synthesizer) Synthesize(ctx context.Context, req *types.TailoringRequest, signals *types.MatchSignals, result types.AnalysisResult) (*Documents, error) {
	var docs Documents
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		text, err := s.generate(gctx, KindResume, req, signals, result)
		docs.Resume = text
		return err
	})
	g.Go(func() error {
		text, err := s.generate(gctx, KindCoverLetter, req, signals, result)
		docs.CoverLetter = text
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &docs, nil
}

func (s *Synthesizer) generate(ctx context.Context, kind DocumentKind, req *types.TailoringRequest, signals *types.MatchSignals, result types.AnalysisResult) (string, error) {
	brief, err := BuildBrief(kind, req, signals, result)
	if err != nil {
		return "", &Error{Document: kind, Message: "failed to build brief", Cause: err}
	}

	slog.DebugContext(ctx, "generating document", "kind", kind, "template", brief.Template, "level", brief.Level)
	text, err := s.gen.Generate(ctx, brief)
	if err != nil {
		return "", &Error{Document: kind, Message: "text generation failed", Cause: err}
	}
	if err := validation.CheckDocument(text, brief.Structure()); err != nil {
		return "", &Error{Document: kind, Message: "generated text is unusable", Cause: err}
	}
	if kind == KindResume {
		style := validation.CheckBulletStyle(text)
		if len(style.Weak) > 0 {
			slog.InfoContext(ctx, "resume has weak bullets", "bullets", style.Bullets, "weak", len(style.Weak), "quantified", style.Quantified)
		}
	}
	return text, nil
}
