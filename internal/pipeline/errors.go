package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/krishnachadda/ResumeTailor/internal/llm"
	"github.com/krishnachadda/ResumeTailor/internal/synthesis"
)

// ValidationError is a user-correctable problem with the request
type ValidationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return "invalid request: " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// SynthesisError reports that the documents could not be produced
type SynthesisError = synthesis.Error

// ErrorKind tells a caller whether to ask the user to fix input, to retry, or to alert
type ErrorKind string

// Error kinds
const (
	KindValidation        ErrorKind = "validation"
	KindSynthesis         ErrorKind = "synthesis"
	KindProviderTransient ErrorKind = "provider_transient"
	KindProviderPermanent ErrorKind = "provider_permanent"
	KindCancelled         ErrorKind = "cancelled"
	KindInternal          ErrorKind = "internal"
)

// Classification is the caller-facing summary of an error
type Classification struct {
	Kind      ErrorKind `json:"kind"`
	Retryable bool      `json:"retryable"`
}

// Classify maps any error from a run onto an ErrorKind.
// Provider failures are reported by their own kind even when wrapped in a SynthesisError.
func Classify(err error) Classification {
	var verr *ValidationError
	var perr *llm.ProviderError
	var serr *SynthesisError
	switch {
	case err == nil:
		return Classification{}
	case errors.As(err, &verr):
		return Classification{Kind: KindValidation}
	case errors.Is(err, context.Canceled):
		return Classification{Kind: KindCancelled}
	case errors.As(err, &perr):
		if perr.Transient() {
			return Classification{Kind: KindProviderTransient, Retryable: true}
		}
		return Classification{Kind: KindProviderPermanent}
	case errors.Is(err, context.DeadlineExceeded):
		return Classification{Kind: KindSynthesis, Retryable: true}
	case errors.As(err, &serr):
		return Classification{Kind: KindSynthesis, Retryable: true}
	default:
		return Classification{Kind: KindInternal}
	}
}

// validationError converts validator output into a ValidationError naming the first bad field
func validationError(err error) *ValidationError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		msg := "is not a valid value"
		switch fe.Tag() {
		case "required", "nonblank":
			msg = "must not be empty"
		case "oneof", "industry":
			msg = fmt.Sprintf("%q is not a supported value", fe.Value())
		}
		return &ValidationError{Field: jsonName(fe.Field()), Message: msg, Cause: err}
	}
	return &ValidationError{Message: err.Error(), Cause: err}
}

var fieldNames = map[string]string{
	"Resume":          "resume",
	"JobDescription":  "jobDescription",
	"Template":        "template",
	"Industry":        "industry",
	"ExperienceLevel": "experienceLevel",
}

func jsonName(field string) string {
	if name, ok := fieldNames[field]; ok {
		return name
	}
	return field
}
