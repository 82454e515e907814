package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"portfolio/app/logger"
	"portfolio/app/metrics"
	"portfolio/app/models"
	"portfolio/app/repositories"
	"portfolio/app/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *badger.DB {
	db, err := repositories.OpenBadger("", true)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func setupTestRouter(t *testing.T) (http.Handler, *services.CommentService, *repositories.BadgerCommentStore) {
	t.Helper()
	m := metrics.New()
	log := logger.NewNop()

	content := services.NewContentService(nil, services.WithContentMetrics(m), services.WithContentLogger(log))
	content.LoadAll(context.Background())

	store := repositories.NewBadgerCommentStore(setupTestDB(t))
	comments := services.NewCommentService(store, services.WithCommentMetrics(m), services.WithCommentLogger(log))

	return SetupRoutes(content, comments, m, log), comments, store
}

func request(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAPIRoutes(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	tests := []struct {
		method string
		target string
		body   string
		status int
	}{
		{"GET", "/api/health", "", http.StatusOK},
		{"GET", "/api/skills", "", http.StatusOK},
		{"GET", "/api/skills/categories", "", http.StatusOK},
		{"GET", "/api/certificates", "", http.StatusOK},
		{"GET", "/api/certificates/expiring", "", http.StatusOK},
		{"PATCH", "/api/certificates", `[]`, http.StatusOK},
		{"GET", "/api/projects?featured=true", "", http.StatusOK},
		{"GET", "/api/posts", "", http.StatusOK},
		{"PATCH", "/api/posts", `[]`, http.StatusOK},
		{"GET", "/api/posts/categories", "", http.StatusOK},
		{"GET", "/api/posts/tags", "", http.StatusOK},
		{"GET", "/api/posts/post-1", "", http.StatusOK},
		{"GET", "/api/posts/post-1/related", "", http.StatusOK},
		{"GET", "/api/posts/post-1/comments", "", http.StatusOK},
		{"GET", "/api/comments", "", http.StatusOK},
		{"POST", "/api/reading-time", `{"content":"a b c"}`, http.StatusOK},
		{"GET", "/api/admin/comments", "", http.StatusOK},
		{"GET", "/api/admin/comments/stats", "", http.StatusOK},
		{"GET", "/api/admin/comments/export?format=csv", "", http.StatusOK},
		{"GET", "/api/unknown", "", http.StatusNotFound},
		{"DELETE", "/api/skills", "", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			w := request(router, tt.method, tt.target, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestNotFoundIsJSON(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	w := request(router, "GET", "/nowhere", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"Not found"}`, w.Body.String())
}

func TestCommentLifecycleThroughBadger(t *testing.T) {
	router, comments, store := setupTestRouter(t)

	w := request(router, "POST", "/api/posts/post-2/comments",
		`{"author":"Grace","email":"grace@example.com","content":"Readiness probes saved my deploys"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.Comment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	saved, err := store.Load()
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, created.ID, saved[0].ID)

	w = request(router, "POST", "/api/admin/comments/"+created.ID+"/moderate", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"approved":true}`, w.Body.String())

	w = request(router, "GET", "/api/posts/post-2/comments", "")
	require.Equal(t, http.StatusOK, w.Code)
	var listed []models.Comment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.True(t, listed[0].Approved)

	saved, err = store.Load()
	require.NoError(t, err)
	assert.True(t, saved[0].Approved)

	w = request(router, "DELETE", "/api/admin/comments", "")
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, comments.Comments())
	saved, err = store.Load()
	require.NoError(t, err)
	assert.Nil(t, saved)
}

func TestMetricsEndpoint(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	request(router, "GET", "/api/skills", "")
	request(router, "POST", "/api/comments", `{"author":"Grace","email":"grace@example.com","content":"Lovely to work with"}`)

	w := request(router, "GET", "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `portfolio_content_loads_total{source="seed"} 1`)
	assert.Contains(t, body, `portfolio_comments_submitted_total 1`)
	assert.Contains(t, body, `route="/api/skills"`)
}
