package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rbhttp "github.com/milan604/restbase/pkg/http"
)

func TestCollectorCountsResponsesAndErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	col := NewCollector()
	client := rbhttp.NewClient(rbhttp.WithBaseURL(srv.URL), rbhttp.WithResponseHook(col.ResponseHook()))

	_, err := client.Do(context.Background(), &rbhttp.Request{Method: "get", URL: "/ok"})
	require.NoError(t, err)
	_, err = client.Do(context.Background(), &rbhttp.Request{Method: "get", URL: "/missing"})
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(col.reqCount.WithLabelValues("GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(col.reqCount.WithLabelValues("GET", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(col.errCount.WithLabelValues("GET", "server")))
	assert.Equal(t, 1, testutil.CollectAndCount(col.reqDurHist))
}

func TestCollectorNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	col := NewCollector()
	client := rbhttp.NewClient(rbhttp.WithBaseURL(addr), rbhttp.WithResponseHook(col.ResponseHook()))

	_, err := client.Do(context.Background(), &rbhttp.Request{Method: http.MethodPost, URL: "/"})
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(col.errCount.WithLabelValues("POST", "network")))
	assert.Equal(t, 0, testutil.CollectAndCount(col.reqCount))
}

func TestHandlerExposesMetrics(t *testing.T) {
	col := NewCollector()
	col.observe(&rbhttp.Response{Status: 201, Request: &rbhttp.Request{Method: "post"}}, nil)

	rec := httptest.NewRecorder()
	col.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `api_client_requests_total{method="POST",status="201"} 1`)
}
