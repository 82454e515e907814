package routes

import (
	"encoding/json"
	"net/http"

	"portfolio/app/controllers"
	"portfolio/app/logger"
	"portfolio/app/metrics"
	"portfolio/app/middleware"
	"portfolio/app/services"

	"github.com/gorilla/mux"
)

// SetupRoutes defines the application's routes and returns a router.
func SetupRoutes(content *services.ContentService, comments *services.CommentService, m *metrics.Metrics, log logger.Logger) *mux.Router {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger(log, m))
	router.Use(middleware.Recoverer(log))
	router.Use(middleware.ContentTypeJSON)

	router.NotFoundHandler = http.HandlerFunc(notFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	contentController := controllers.NewContentController(content, log)
	commentController := controllers.NewCommentController(comments, content, log)
	adminController := controllers.NewAdminController(comments, log)

	if m != nil {
		router.Handle("/metrics", m.Handler()).Methods("GET")
	}

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", contentController.Health).Methods("GET")
	api.HandleFunc("/reading-time", contentController.ReadingTime).Methods("POST")

	api.HandleFunc("/skills", contentController.Skills).Methods("GET")
	api.HandleFunc("/skills/categories", contentController.SkillCategories).Methods("GET")

	api.HandleFunc("/certificates", contentController.Certificates).Methods("GET")
	api.HandleFunc("/certificates", contentController.BulkUpdateCertificates).Methods("PATCH")
	api.HandleFunc("/certificates/expiring", contentController.ExpiringCertificates).Methods("GET")

	api.HandleFunc("/projects", contentController.Projects).Methods("GET")

	// Posts API endpoints
	posts := api.PathPrefix("/posts").Subrouter()
	posts.HandleFunc("", contentController.Posts).Methods("GET")
	posts.HandleFunc("", contentController.BulkUpdatePosts).Methods("PATCH")
	posts.HandleFunc("/categories", contentController.BlogCategories).Methods("GET")
	posts.HandleFunc("/tags", contentController.Tags).Methods("GET")
	posts.HandleFunc("/{id}", contentController.Post).Methods("GET")
	posts.HandleFunc("/{id}/related", contentController.RelatedPosts).Methods("GET")

	// Comments API endpoints
	posts.HandleFunc("/{id}/comments", commentController.Index).Methods("GET")
	posts.HandleFunc("/{id}/comments", commentController.Create).Methods("POST")
	api.HandleFunc("/comments", commentController.Testimonials).Methods("GET")
	api.HandleFunc("/comments", commentController.CreateTestimonial).Methods("POST")

	// Moderation endpoints
	admin := api.PathPrefix("/admin/comments").Subrouter()
	admin.HandleFunc("", adminController.Index).Methods("GET")
	admin.HandleFunc("", adminController.Clear).Methods("DELETE")
	admin.HandleFunc("/stats", adminController.Stats).Methods("GET")
	admin.HandleFunc("/export", adminController.Export).Methods("GET")
	admin.HandleFunc("/import", adminController.Import).Methods("POST")
	admin.HandleFunc("/bulk-approve", adminController.BulkApprove).Methods("POST")
	admin.HandleFunc("/bulk-delete", adminController.BulkDelete).Methods("POST")
	admin.HandleFunc("/{id}", adminController.Update).Methods("PUT")
	admin.HandleFunc("/{id}", adminController.Delete).Methods("DELETE")
	admin.HandleFunc("/{id}/approve", adminController.Approve).Methods("POST")
	admin.HandleFunc("/{id}/moderate", adminController.Moderate).Methods("POST")

	return router
}

func writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, "Not found", http.StatusNotFound)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
}
