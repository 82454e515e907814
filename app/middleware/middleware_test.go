package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"portfolio/app/logger"
	"portfolio/app/metrics"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	m := metrics.New()

	router := mux.NewRouter()
	router.Use(Logger(logger.Wrap(zap.New(core)), m))
	router.HandleFunc("/api/posts/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest("GET", "/api/posts/post-1", nil)
	rw := httptest.NewRecorder()
	router.ServeHTTP(rw, req)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "HTTP request", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/api/posts/post-1", fields["path"])
	assert.Equal(t, "/api/posts/{id}", fields["route"])
	assert.EqualValues(t, http.StatusTeapot, fields["status"])

	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestDuration))
}

func TestLoggerWithoutRoute(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	handler := Logger(logger.Wrap(zap.New(core)), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	rw := httptest.NewRecorder()
	handler.ServeHTTP(rw, httptest.NewRequest("GET", "/test", nil))

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "/test", logs.All()[0].ContextMap()["route"])
	assert.EqualValues(t, http.StatusOK, logs.All()[0].ContextMap()["status"])
}

func TestRecoverer(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	handler := Recoverer(logger.Wrap(zap.New(core)))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("test panic")
	}))

	req := httptest.NewRequest("GET", "/api/skills", nil)
	rw := httptest.NewRecorder()

	assert.NotPanics(t, func() { handler.ServeHTTP(rw, req) })
	assert.Equal(t, http.StatusInternalServerError, rw.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, rw.Body.String())
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "test panic", logs.All()[0].ContextMap()["panic"])
}

func TestContentTypeJSON(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		contentType string
	}{
		{name: "api route", path: "/api/skills", contentType: "application/json"},
		{name: "metrics", path: "/metrics", contentType: ""},
		{name: "short path", path: "/", contentType: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := ContentTypeJSON(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
			rw := httptest.NewRecorder()
			handler.ServeHTTP(rw, httptest.NewRequest("GET", tt.path, nil))
			assert.Equal(t, tt.contentType, rw.Header().Get("Content-Type"))
		})
	}
}
