package ingestion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromURL_ExtractsStructuredText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body>
			<nav>Jobs Home</nav>
			<div class="job-description">
				<h2>Requirements</h2>
				<ul><li>Python</li><li>Java</li></ul>
			</div>
			<form id="application-form">Apply now</form>
		</body></html>`))
	}))
	defer server.Close()

	text, err := FromURL(context.Background(), server.URL, false)
	require.NoError(t, err)
	assert.Equal(t, "Requirements\n- Python\n- Java", text)

	sections := Normalize(text)
	require.Len(t, sections, 1)
	assert.Equal(t, "Requirements", sections[0].Heading)
	assert.Equal(t, []string{"Python", "Java"}, sections[0].Bullets)
}

func TestFromURL_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := FromURL(context.Background(), server.URL, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHTTPRequestFailed)
}
