package eodhd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GetEOD(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/eod/AAPL.US", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_token"))
		assert.Equal(t, "json", r.URL.Query().Get("fmt"))
		assert.Equal(t, "d", r.URL.Query().Get("period"))
		assert.Equal(t, "a", r.URL.Query().Get("order"))
		assert.Equal(t, "2024-01-02", r.URL.Query().Get("from"))
		assert.Equal(t, "2024-01-04", r.URL.Query().Get("to"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"date":"2024-01-02","open":185.5,"high":186.9,"low":184.3,"close":185.6,"adjusted_close":185.1,"volume":52000000},
			{"date":"2024-01-03","open":184.2,"high":185.8,"low":183.4,"close":184.2,"adjusted_close":183.7,"volume":48000000}
		]`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))

	from := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)

	result, err := client.GetEOD(context.Background(), "AAPL.US", from, to)
	require.NoError(t, err)
	require.Len(t, result, 2)

	assert.Equal(t, from, result[0].Date)
	assert.Equal(t, 185.1, result[0].AdjustedClose)
	assert.Equal(t, int64(52000000), result[0].Volume)
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), result[1].Date)
}

func TestClient_GetEOD_UnknownSymbol(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Symbol not found", http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))

	_, err := client.GetEOD(context.Background(), "NOPE.US", time.Time{}, time.Time{})
	require.Error(t, err)
	assert.True(t, IsUnknownSymbol(err))
}

func TestClient_GetNews(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/news", r.URL.Path)
		assert.Equal(t, "AAPL.US", r.URL.Query().Get("s"))
		assert.Equal(t, "1000", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"date":"2024-01-02 14:30:00","title":"Apple unveils new chip","content":"...","link":"https://example.com/1","symbols":["AAPL.US"]},
			{"date":"2024-01-03","title":"Supply concerns weigh on Apple","content":"...","link":"https://example.com/2","symbols":["AAPL.US"]}
		]`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))

	result, err := client.GetNews(context.Background(), "AAPL.US", time.Time{}, time.Time{}, 0)
	require.NoError(t, err)
	require.Len(t, result, 2)

	// Full timestamp and date-only formats both parse
	assert.Equal(t, time.Date(2024, 1, 2, 14, 30, 0, 0, time.UTC), result[0].Date)
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), result[1].Date)
	assert.Equal(t, "Apple unveils new chip", result[0].Title)
}

func TestClient_GetEOD_APIErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Invalid API token", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient("bad-key", WithBaseURL(srv.URL))

	_, err := client.GetEOD(context.Background(), "AAPL.US", time.Time{}, time.Time{})
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "/eod/AAPL.US", apiErr.Endpoint)
	assert.False(t, IsUnknownSymbol(err))
}
