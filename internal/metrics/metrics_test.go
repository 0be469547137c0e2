package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveAPICall(t *testing.T) {
	before := testutil.ToFloat64(APICalls.WithLabelValues("GET", "/tools/{id}", "ok"))
	ObserveAPICall("GET", "/tools/{id}", "ok", time.Now())
	after := testutil.ToFloat64(APICalls.WithLabelValues("GET", "/tools/{id}", "ok"))
	assert.Equal(t, before+1, after)
}

func TestMiddleware(t *testing.T) {
	r := mux.NewRouter()
	r.Use(Middleware())
	r.HandleFunc("/tools/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}).Name("tools.show")
	r.Handle("/metrics", Handler())

	before := testutil.ToFloat64(RequestTotal.WithLabelValues("GET", "tools.show", "418"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tools/abc", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(RequestTotal.WithLabelValues("GET", "tools.show", "418")))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "toolrent_console_requests_total")
}
