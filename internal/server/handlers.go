package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/krishnachadda/ResumeTailor/internal/observability"
	"github.com/krishnachadda/ResumeTailor/internal/pipeline"
	"github.com/krishnachadda/ResumeTailor/internal/templates"
	"github.com/krishnachadda/ResumeTailor/internal/types"
)

// AnalyzeResponse is the body returned by /analyze
type AnalyzeResponse struct {
	Analysis types.AnalysisResult `json:"analysis"`
	Signals  *types.MatchSignals  `json:"signals"`
}

// decodeRequest reads a TailoringRequest body. Malformed JSON is a validation error.
func decodeRequest(w http.ResponseWriter, r *http.Request) (*types.TailoringRequest, error) {
	var req types.TailoringRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, &pipeline.ValidationError{Message: fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit), Cause: err}
		}
		return nil, &pipeline.ValidationError{Message: "invalid request body: " + err.Error(), Cause: err}
	}
	return &req, nil
}

func asValidation(err error) (*pipeline.ValidationError, bool) {
	var vErr *pipeline.ValidationError
	ok := errors.As(err, &vErr)
	return vErr, ok
}

// runOptions ties the run id to the request id
func runOptions(r *http.Request) pipeline.RunOptions {
	return pipeline.RunOptions{RunID: observability.RequestID(r.Context())}
}

// handleTailor runs the full pipeline and returns the documents with their analysis
func (s *Server) handleTailor(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(w, r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	result, err := s.tailorer.TailorWithOptions(r.Context(), req, runOptions(r))
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleTailorStream runs the pipeline and streams state changes via SSE
func (s *Server) handleTailorStream(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(w, r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.jsonResponse(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error(), Kind: pipeline.KindInternal})
		return
	}

	ro := runOptions(r)
	ro.OnState = func(event pipeline.StateEvent) {
		if err := sse.WriteEvent("state", event); err != nil {
			s.logger.WarnContext(r.Context(), "error writing SSE event", "error", err)
		}
	}

	result, err := s.tailorer.TailorWithOptions(r.Context(), req, ro)
	if err != nil {
		sse.WriteError(err) //nolint:errcheck
		return
	}
	sse.WriteEvent("result", result) //nolint:errcheck
}

// handleAnalyze scores the request without calling the provider
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(w, r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	report, err := s.tailorer.AnalyzeWithOptions(r.Context(), req, runOptions(r))
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, AnalyzeResponse{Analysis: report.Analysis, Signals: report.Signals})
}

// handleTemplates lists the template catalog
func (s *Server) handleTemplates(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{"templates": templates.List()})
}
