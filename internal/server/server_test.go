package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishnachadda/ResumeTailor/internal/llm"
	"github.com/krishnachadda/ResumeTailor/internal/pipeline"
	"github.com/krishnachadda/ResumeTailor/internal/synthesis"
	"github.com/krishnachadda/ResumeTailor/internal/types"
)

const (
	sampleResume = "Jane Doe\n\nSummary\nBackend engineer with 6 years of experience.\n\nSkills\n- Python\n- AWS\n- Docker\n\nExperience\n- Built data pipelines in Python on AWS"
	sampleJob    = "Senior Backend Engineer\n\nRequirements\n- Python\n- Java\n- 5+ years of experience\n\nNice to have:\n- SQL"

	generatedResume = "Summary\nEngineer\n\nExperience\n- Built\n\nAchievements\n- Won\n\nSkills\nPython\n\nEducation\nBSc"
	generatedLetter = "Dear Hiring Manager,\n\nI am applying.\n\nI build data systems.\n\nSincerely,\nJane"
)

func goodDocs(_ context.Context, b synthesis.Brief) (string, error) {
	if b.Kind == synthesis.KindResume {
		return generatedResume, nil
	}
	return generatedLetter, nil
}

func newTestServer(t *testing.T, gen synthesis.GeneratorFunc, cfg Config) http.Handler {
	t.Helper()
	orch := pipeline.New(gen, pipeline.Options{MaxRetries: 0, Timeout: 2 * time.Second})
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s, err := New(orch, cfg)
	require.NoError(t, err)
	t.Cleanup(s.rateLimiter.Stop)
	return s.Handler()
}

func requestBody(t *testing.T, req types.TailoringRequest) io.Reader {
	t.Helper()
	data, err := json.Marshal(req)
	require.NoError(t, err)
	return strings.NewReader(string(data))
}

func sampleBody(t *testing.T) io.Reader {
	return requestBody(t, types.TailoringRequest{Resume: sampleResume, JobDescription: sampleJob})
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestNew_RequiresTailorer(t *testing.T) {
	_, err := New(nil, Config{})
	assert.Error(t, err)
}

func TestHealthEndpoint(t *testing.T) {
	h := newTestServer(t, goodDocs, Config{})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestTemplatesEndpoint(t *testing.T) {
	h := newTestServer(t, goodDocs, Config{})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/templates", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Templates []struct {
			ID string `json:"id"`
		} `json:"templates"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Templates, 4)
}

func TestTailorEndpoint_Success(t *testing.T) {
	h := newTestServer(t, goodDocs, Config{})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/tailor", sampleBody(t)))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result types.TailoringResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, generatedResume, result.Resume)
	assert.Equal(t, generatedLetter, result.CoverLetter)
	assert.Equal(t, 40, result.Analysis.MatchScore)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestTailorEndpoint_ValidationErrors(t *testing.T) {
	h := newTestServer(t, goodDocs, Config{})

	testCases := []struct {
		name  string
		body  string
		field string
	}{
		{"empty resume", `{"resume":"","jobDescription":"job"}`, "resume"},
		{"blank job", `{"resume":"r","jobDescription":"   "}`, "jobDescription"},
		{"bad template", `{"resume":"r","jobDescription":"j","template":"fancy"}`, "template"},
		{"invalid json", `{not json`, ""},
		{"unknown field", `{"resume":"r","jobDescription":"j","color":"red"}`, ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/tailor", strings.NewReader(tc.body)))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, pipeline.KindValidation, resp.Kind)
			assert.False(t, resp.Retryable)
			assert.Equal(t, tc.field, resp.Field)
		})
	}
}

func TestTailorEndpoint_ProviderErrors(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		status     int
		kind       pipeline.ErrorKind
		retryable  bool
		retryAfter bool
	}{
		{"transient", &llm.ProviderError{Provider: llm.ProviderGemini, Kind: llm.KindTransient, StatusCode: 429}, http.StatusServiceUnavailable, pipeline.KindProviderTransient, true, true},
		{"permanent", &llm.ProviderError{Provider: llm.ProviderOpenAI, Kind: llm.KindPermanent, StatusCode: 401}, http.StatusBadGateway, pipeline.KindProviderPermanent, false, false},
		{"unusable output", errors.New("empty draft"), http.StatusBadGateway, pipeline.KindSynthesis, true, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestServer(t, func(context.Context, synthesis.Brief) (string, error) {
				return "", tc.err
			}, Config{})

			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/tailor", sampleBody(t)))

			assert.Equal(t, tc.status, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, tc.kind, resp.Kind)
			assert.Equal(t, tc.retryable, resp.Retryable)
			assert.Equal(t, tc.retryAfter, w.Header().Get("Retry-After") != "")
		})
	}
}

func TestTailorEndpoint_Cancelled(t *testing.T) {
	h := newTestServer(t, goodDocs, Config{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/tailor", sampleBody(t)).WithContext(ctx))

	assert.Equal(t, StatusClientClosedRequest, w.Code)
	assert.Equal(t, pipeline.KindCancelled, decodeError(t, w).Kind)
}

func TestTailorEndpoint_RequestIDPropagates(t *testing.T) {
	h := newTestServer(t, goodDocs, Config{})

	req := httptest.NewRequest(http.MethodPost, "/tailor", sampleBody(t))
	req.Header.Set(RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
}

func TestAnalyzeEndpoint(t *testing.T) {
	h := newTestServer(t, func(context.Context, synthesis.Brief) (string, error) {
		t.Fatal("analyze must not call the generator")
		return "", nil
	}, Config{})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/analyze", sampleBody(t)))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp AnalyzeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 40, resp.Analysis.MatchScore)
	require.NotNil(t, resp.Signals)
	assert.Contains(t, resp.Signals.MissingRequired, "Java")
}

func TestTailorStreamEndpoint(t *testing.T) {
	h := newTestServer(t, goodDocs, Config{})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/tailor/stream", sampleBody(t)))

	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, "event: state\n")
	assert.Contains(t, body, `"state":"synthesizing"`)
	assert.Contains(t, body, "event: result\n")
	assert.NotContains(t, body, "event: error")
	assert.Less(t, strings.Index(body, `"state":"validating"`), strings.Index(body, "event: result"))
}

func TestTailorStreamEndpoint_Error(t *testing.T) {
	h := newTestServer(t, func(context.Context, synthesis.Brief) (string, error) {
		return "", &llm.ProviderError{Provider: llm.ProviderGemini, Kind: llm.KindTransient}
	}, Config{})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/tailor/stream", sampleBody(t)))

	body := w.Body.String()
	assert.Contains(t, body, `"state":"failed"`)
	assert.Contains(t, body, "event: error\n")
	assert.Contains(t, body, `"kind":"provider_transient"`)
	assert.NotContains(t, body, "event: result")
}

func TestCORSMiddleware(t *testing.T) {
	h := newTestServer(t, goodDocs, Config{CORSOrigins: []string{"https://app.example.com"}})

	req := httptest.NewRequest(http.MethodOptions, "/tailor", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSMiddleware_AnyOrigin(t *testing.T) {
	h := newTestServer(t, goodDocs, Config{})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimit(t *testing.T) {
	h := newTestServer(t, goodDocs, Config{RateLimit: 0.001, RateBurst: 1})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/tailor", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/tailor", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.True(t, decodeError(t, w).Retryable)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code, "health is never limited")
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestServer(t, goodDocs, Config{})

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestHTTPStatus(t *testing.T) {
	testCases := map[pipeline.ErrorKind]int{
		pipeline.KindValidation:        http.StatusBadRequest,
		pipeline.KindProviderTransient: http.StatusServiceUnavailable,
		pipeline.KindProviderPermanent: http.StatusBadGateway,
		pipeline.KindSynthesis:         http.StatusBadGateway,
		pipeline.KindCancelled:         StatusClientClosedRequest,
		pipeline.KindInternal:          http.StatusInternalServerError,
	}
	for kind, status := range testCases {
		assert.Equal(t, status, HTTPStatus(kind), kind)
	}
}

func TestNewErrorResponse_HidesInternalErrors(t *testing.T) {
	resp := NewErrorResponse(errors.New("nil pointer somewhere"))
	assert.Equal(t, pipeline.KindInternal, resp.Kind)
	assert.Equal(t, "internal error", resp.Error)
}

func TestSSEWriter(t *testing.T) {
	w := httptest.NewRecorder()
	sse, err := NewSSEWriter(w)
	require.NoError(t, err)

	require.NoError(t, sse.WriteEvent("state", map[string]string{"state": "analyzing"}))
	require.NoError(t, sse.WriteError(&pipeline.ValidationError{Field: "resume", Message: "must not be empty"}))

	assert.Equal(t,
		"event: state\ndata: {\"state\":\"analyzing\"}\n\n"+
			"event: error\ndata: {\"error\":\"invalid resume: must not be empty\",\"kind\":\"validation\",\"retryable\":false,\"field\":\"resume\"}\n\n",
		w.Body.String())
	assert.True(t, w.Flushed)
}
