package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/openai/openai-go"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrorKind separates failures worth retrying from ones that will fail again
type ErrorKind string

// Error kinds
const (
	KindTransient ErrorKind = "transient"
	KindPermanent ErrorKind = "permanent"
)

// ProviderError is a classified failure from an LLM provider
type ProviderError struct {
	Provider   Provider
	Kind       ErrorKind
	StatusCode int
	Message    string
	Cause      error
}

func (e *ProviderError) Error() string {
	msg := fmt.Sprintf("%s provider error (%s)", e.Provider, e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" status %d", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// Transient reports whether retrying may succeed
func (e *ProviderError) Transient() bool {
	return e.Kind == KindTransient
}

// IsTransient reports whether err carries a transient ProviderError
func IsTransient(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Transient()
}

// classify wraps a raw provider error. Timeouts, rate limits and server errors are transient;
// other client errors are permanent. Cancellation passes through as a permanent error that
// still unwraps to context.Canceled.
func classify(provider Provider, err error) error {
	if err == nil {
		return nil
	}
	var pe *ProviderError
	if errors.As(err, &pe) {
		return err
	}

	out := &ProviderError{Provider: provider, Kind: KindPermanent, Cause: err}

	var apiErr *openai.Error
	var gErr *googleapi.Error
	var netErr net.Error
	switch {
	case errors.Is(err, context.Canceled):
		out.Message = "request cancelled"
	case errors.Is(err, context.DeadlineExceeded):
		out.Kind = KindTransient
		out.Message = "request timed out"
	case errors.As(err, &apiErr):
		out.StatusCode = apiErr.StatusCode
		out.Kind = kindForHTTPStatus(apiErr.StatusCode)
	case errors.As(err, &gErr):
		out.StatusCode = gErr.Code
		out.Kind = kindForHTTPStatus(gErr.Code)
	case errors.As(err, &netErr) && netErr.Timeout():
		out.Kind = KindTransient
		out.Message = "network timeout"
	default:
		if st, ok := status.FromError(err); ok && st.Code() != codes.Unknown {
			out.Kind = kindForGRPCCode(st.Code())
			out.Message = st.Code().String()
		}
	}
	return out
}

// kindForHTTPStatus treats 408, 429 and 5xx as transient
func kindForHTTPStatus(code int) ErrorKind {
	switch {
	case code == http.StatusRequestTimeout, code == http.StatusTooManyRequests, code >= 500:
		return KindTransient
	default:
		return KindPermanent
	}
}

func kindForGRPCCode(code codes.Code) ErrorKind {
	switch code {
	case codes.ResourceExhausted, codes.Unavailable, codes.DeadlineExceeded, codes.Aborted, codes.Internal:
		return KindTransient
	default:
		return KindPermanent
	}
}
