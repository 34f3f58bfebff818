package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/docvegas/internal/common"
	"github.com/ternarybob/docvegas/internal/models"
)

const validPayload = `{
  "web": {
    "results": [
      {"title": "  Vegas <strong>SEO</strong> Guide ", "url": "https://example.com/guide", "description": " Tips &amp; tricks "},
      {"title": "", "url": "https://example.com/untitled", "description": "no title"},
      {"title": "No URL", "url": "", "description": "missing url"},
      {"title": "Relative", "url": "/relative/path", "description": "not absolute"},
      {"title": "Trends 2024", "url": "https://example.org/trends"}
    ]
  }
}`

func newTestService(t *testing.T, handler http.HandlerFunc) (*BraveService, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := common.NewDefaultConfig().Search
	cfg.BaseURL = server.URL

	svc := NewBraveService(&cfg, arbor.NewLogger(),
		WithAPIKey("test-key"),
		WithRateLimiter(common.NewRateLimiter(0)),
		WithPauses(5*time.Millisecond, 5*time.Millisecond),
	)
	return svc, server
}

func TestSearch_NormalizesResults(t *testing.T) {
	var gotQuery, gotToken, gotAccept string
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotToken = r.Header.Get("X-Subscription-Token")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(validPayload))
	})

	results, err := svc.Search(context.Background(), "vegas seo", 5, 2)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, models.SearchResult{
		Title:   "Vegas SEO Guide",
		URL:     "https://example.com/guide",
		Snippet: "Tips & tricks",
	}, results[0])
	assert.Equal(t, "Trends 2024", results[1].Title)
	assert.Empty(t, results[1].Snippet)

	assert.Equal(t, "test-key", gotToken)
	assert.Equal(t, "application/json", gotAccept)
	assert.Contains(t, gotQuery, "q=vegas+seo")
	assert.Contains(t, gotQuery, "count=5")
	assert.Contains(t, gotQuery, "search_lang=en")
	assert.Contains(t, gotQuery, "safesearch=moderate")
}

func TestSearch_TruncatesToCount(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(validPayload))
	})

	results, err := svc.Search(context.Background(), "vegas", 1, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "https://example.com/guide", results[0].URL)
}

func TestSearch_ClampsCountToProviderMax(t *testing.T) {
	var gotCount string
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		gotCount = r.URL.Query().Get("count")
		_, _ = w.Write([]byte(`{"web":{"results":[]}}`))
	})

	_, err := svc.Search(context.Background(), "vegas", 500, 1)
	require.NoError(t, err)
	assert.Equal(t, "20", gotCount)

	_, err = svc.Search(context.Background(), "vegas", 0, 1)
	require.NoError(t, err)
	assert.Equal(t, "5", gotCount)
}

func TestSearch_AlwaysRateLimitedReturnsEmpty(t *testing.T) {
	var calls int32
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	})

	results, err := svc.Search(context.Background(), "latest trends", 5, 2)
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)

	// Each of the two attempts issues the request and one re-issue after backoff
	assert.Equal(t, int32(4), atomic.LoadInt32(&calls))
}

func TestSearch_RateLimitReissueDoesNotConsumeAttempt(t *testing.T) {
	var calls int32
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(validPayload))
	})

	results, err := svc.Search(context.Background(), "vegas", 5, 1)
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestSearch_TransientFailures(t *testing.T) {
	tests := []struct {
		name      string
		failures  int32
		retries   int
		wantCalls int32
		wantLen   int
	}{
		{name: "recovers on second attempt", failures: 1, retries: 2, wantCalls: 2, wantLen: 2},
		{name: "exhausts retries", failures: 10, retries: 3, wantCalls: 3, wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
				if atomic.AddInt32(&calls, 1) <= tt.failures {
					w.WriteHeader(http.StatusBadGateway)
					return
				}
				_, _ = w.Write([]byte(validPayload))
			})

			results, err := svc.Search(context.Background(), "vegas", 5, tt.retries)
			require.NoError(t, err)
			assert.Len(t, results, tt.wantLen)
			assert.Equal(t, tt.wantCalls, atomic.LoadInt32(&calls))
		})
	}
}

func TestSearch_MalformedJSONDegradesToEmpty(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"web": {"results": [`))
	})

	results, err := svc.Search(context.Background(), "vegas", 5, 2)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_MissingAPIKeyFailsLoudly(t *testing.T) {
	t.Setenv("DOCVEGAS_BRAVE_API_KEY", "")
	t.Setenv("BRAVE_API_KEY", "")

	cfg := common.NewDefaultConfig().Search
	svc := NewBraveService(&cfg, arbor.NewLogger())

	results, err := svc.Search(context.Background(), "vegas", 5, 2)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Nil(t, results)
}

func TestSearch_EmptyQuerySkipsProvider(t *testing.T) {
	var calls int32
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})

	results, err := svc.Search(context.Background(), "   ", 5, 2)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestFormatResultsForContext(t *testing.T) {
	assert.Empty(t, FormatResultsForContext(nil))

	out := FormatResultsForContext([]models.SearchResult{
		{Title: "Guide", URL: "https://a.example", Snippet: "All about SEO"},
		{Title: "Bare", URL: "https://b.example"},
	})

	expected := "Here are some relevant sources:\n\n" +
		"1. Guide\n   Summary: All about SEO\n   URL: https://a.example\n\n" +
		"2. Bare\n   URL: https://b.example\n\n"
	assert.Equal(t, expected, out)
}
