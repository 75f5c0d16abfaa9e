package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// newTestClient disables throttling and shrinks backoff so retry tests
// run fast.
func newTestClient() *Client {
	c := New(nil)
	c.limiter = rate.NewLimiter(rate.Inf, 1)
	c.backoffInitial = time.Millisecond
	return c
}

func TestFetchSendsUserAgent(t *testing.T) {
	var gotUA atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA.Store(r.Header.Get("User-Agent"))
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	body, err := newTestClient().Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
	assert.Equal(t, UserAgent, gotUA.Load())
}

func TestFetchRetriesServerErrors(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("eventually"))
	}))
	defer server.Close()

	body, err := newTestClient().Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "eventually", string(body))
	assert.Equal(t, int32(3), requests.Load())
}

func TestFetchRetriesThrottling(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	_, err := newTestClient().Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, int32(2), requests.Load())
}

func TestFetchGivesUpAfterMaxRetries(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestClient().Fetch(context.Background(), server.URL)
	require.Error(t, err)
	assert.Equal(t, int32(maxRetries+1), requests.Load())
}

func TestFetchReturnsMissingPageBody(t *testing.T) {
	// The site serves an ordinary error page for unpublished seasons; the
	// scraping layer owns the missing-table policy, so 404 is not an
	// error here.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("<html><body>404 - File Not Found</body></html>"))
	}))
	defer server.Close()

	body, err := newTestClient().Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Contains(t, string(body), "404")
}

func TestFetchHonorsCancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient().Fetch(ctx, server.URL)
	require.Error(t, err)
}

func TestRetryableStatus(t *testing.T) {
	assert.True(t, retryableStatus(http.StatusTooManyRequests))
	assert.True(t, retryableStatus(http.StatusInternalServerError))
	assert.True(t, retryableStatus(http.StatusBadGateway))
	assert.False(t, retryableStatus(http.StatusOK))
	assert.False(t, retryableStatus(http.StatusNotFound))
}
