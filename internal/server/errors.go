package server

import (
	"fmt"
	"net/http"

	"github.com/krishnachadda/ResumeTailor/internal/pipeline"
)

// StatusClientClosedRequest is returned when the caller went away mid-run
const StatusClientClosedRequest = 499

// retryAfterSeconds is suggested to callers after a transient provider failure
const retryAfterSeconds = 5

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Error     string             `json:"error"`
	Kind      pipeline.ErrorKind `json:"kind"`
	Retryable bool               `json:"retryable"`
	Field     string             `json:"field,omitempty"`
}

// HTTPStatus returns the status code for an error kind
func HTTPStatus(kind pipeline.ErrorKind) int {
	switch kind {
	case pipeline.KindValidation:
		return http.StatusBadRequest
	case pipeline.KindProviderTransient:
		return http.StatusServiceUnavailable
	case pipeline.KindProviderPermanent, pipeline.KindSynthesis:
		return http.StatusBadGateway
	case pipeline.KindCancelled:
		return StatusClientClosedRequest
	default:
		return http.StatusInternalServerError
	}
}

// NewErrorResponse classifies err for the wire. Internal errors are not echoed to the caller.
func NewErrorResponse(err error) ErrorResponse {
	c := pipeline.Classify(err)
	resp := ErrorResponse{Error: err.Error(), Kind: c.Kind, Retryable: c.Retryable}
	if vErr, ok := asValidation(err); ok {
		resp.Field = vErr.Field
	}
	if c.Kind == pipeline.KindInternal {
		resp.Error = "internal error"
	}
	return resp
}

// errorResponse writes a classified error
func (s *Server) errorResponse(w http.ResponseWriter, err error) {
	resp := NewErrorResponse(err)
	if resp.Kind == pipeline.KindProviderTransient {
		w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfterSeconds))
	}
	s.jsonResponse(w, HTTPStatus(resp.Kind), resp)
}
