package ingestion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/krishnachadda/ResumeTailor/internal/fetch"
)

var (
	// ErrHTTPRequestFailed is returned when HTTP request fails
	ErrHTTPRequestFailed = fmt.Errorf("HTTP request failed")
	// ErrContentExtractionFailed is returned when content extraction fails
	ErrContentExtractionFailed = fmt.Errorf("content extraction failed")
)

// FromURL fetches a job posting page and returns its cleaned plain text.
// When useBrowser is set and the static page yields too little text, the page is rendered headlessly.
func FromURL(ctx context.Context, urlStr string, useBrowser bool) (string, error) {
	platform := fetch.DetectPlatform(urlStr)
	logger := slog.With("url", urlStr, "platform", platform)

	result, err := fetch.URL(ctx, urlStr, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}
	logger.Debug("fetched job posting", "bytes", len(result.HTML))

	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)

	text, err := fetch.ExtractMainText(result.HTML, contentSelectors, noiseSelectors...)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}

	if useBrowser && fetch.ShouldUseBrowser(text) {
		logger.Info("static content too short, rendering in browser", "chars", len(text))
		html, browserErr := fetch.BrowserSimple(ctx, urlStr)
		if browserErr != nil {
			logger.Warn("browser rendering failed, keeping static content", "error", browserErr)
		} else if rendered, extractErr := fetch.ExtractMainText(html, contentSelectors, noiseSelectors...); extractErr == nil {
			text = rendered
		}
	}

	return CleanText(text), nil
}
