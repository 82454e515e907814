package controllers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"portfolio/app/logger"
	"portfolio/app/models"
	"portfolio/app/repositories"
	"portfolio/app/services"

	"github.com/gorilla/mux"
)

// AdminController exposes comment moderation. Unknown comment ids are
// accepted silently by the mutating endpoints.
type AdminController struct {
	base
	comments *services.CommentService
}

// NewAdminController creates a new AdminController
func NewAdminController(comments *services.CommentService, log logger.Logger) *AdminController {
	return &AdminController{base: base{log: log}, comments: comments}
}

type idsRequest struct {
	IDs []string `json:"ids"`
}

// Index lists comments filtered by ?status and searched with ?q.
func (ac *AdminController) Index(w http.ResponseWriter, r *http.Request) {
	status, err := services.ParseCommentStatus(r.URL.Query().Get("status"))
	if err != nil {
		ac.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	comments, err := ac.comments.FilterComments(status)
	if err != nil {
		ac.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		matched := make(map[string]struct{})
		for _, c := range ac.comments.SearchComments(q) {
			matched[c.ID] = struct{}{}
		}
		filtered := make([]*models.Comment, 0, len(comments))
		for _, c := range comments {
			if _, ok := matched[c.ID]; ok {
				filtered = append(filtered, c)
			}
		}
		comments = filtered
	}
	ac.sendJSON(w, http.StatusOK, comments)
}

// Stats reports comment counts.
func (ac *AdminController) Stats(w http.ResponseWriter, r *http.Request) {
	ac.sendJSON(w, http.StatusOK, ac.comments.CommentStats())
}

// Update merges a partial comment into comment {id}.
func (ac *AdminController) Update(w http.ResponseWriter, r *http.Request) {
	var update models.CommentUpdate
	if !ac.decodeJSON(w, r, &update) {
		return
	}
	if err := ac.comments.UpdateComment(mux.Vars(r)["id"], update); err != nil {
		ac.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes comment {id}.
func (ac *AdminController) Delete(w http.ResponseWriter, r *http.Request) {
	ac.comments.DeleteComment(mux.Vars(r)["id"])
	w.WriteHeader(http.StatusNoContent)
}

// Approve marks comment {id} approved.
func (ac *AdminController) Approve(w http.ResponseWriter, r *http.Request) {
	ac.comments.ApproveComment(mux.Vars(r)["id"])
	w.WriteHeader(http.StatusNoContent)
}

// Moderate runs auto-moderation on comment {id} and approves it if it passes.
func (ac *AdminController) Moderate(w http.ResponseWriter, r *http.Request) {
	result, err := ac.comments.ModerateAndApply(mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			ac.sendError(w, "Comment not found", http.StatusNotFound)
			return
		}
		ac.sendError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	ac.sendJSON(w, http.StatusOK, result)
}

// BulkApprove approves every comment in the posted ids.
func (ac *AdminController) BulkApprove(w http.ResponseWriter, r *http.Request) {
	var req idsRequest
	if !ac.decodeJSON(w, r, &req) {
		return
	}
	ac.comments.BulkApproveComments(req.IDs)
	w.WriteHeader(http.StatusNoContent)
}

// BulkDelete removes every comment in the posted ids.
func (ac *AdminController) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req idsRequest
	if !ac.decodeJSON(w, r, &req) {
		return
	}
	ac.comments.BulkDeleteComments(req.IDs)
	w.WriteHeader(http.StatusNoContent)
}

// Export downloads every comment as ?format=json (default) or csv.
func (ac *AdminController) Export(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = services.FormatJSON
	}

	data, err := ac.comments.ExportComments(format)
	if err != nil {
		if errors.Is(err, services.ErrUnsupportedFormat) {
			ac.sendError(w, err.Error(), http.StatusBadRequest)
			return
		}
		ac.sendError(w, "Failed to export comments: "+err.Error(), http.StatusInternalServerError)
		return
	}

	contentType := "application/json"
	if format == services.FormatCSV {
		contentType = "text/csv; charset=utf-8"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="comments.`+format+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		ac.log.Warn("Failed to write export", logger.Error(err))
	}
}

// Import appends the comments in a JSON array body and reports per-record errors.
func (ac *AdminController) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		ac.sendError(w, "Failed to read body: "+err.Error(), http.StatusBadRequest)
		return
	}
	ac.sendJSON(w, http.StatusOK, ac.comments.ImportComments(data))
}

// Clear removes every comment.
func (ac *AdminController) Clear(w http.ResponseWriter, r *http.Request) {
	ac.comments.ClearAllComments()
	w.WriteHeader(http.StatusNoContent)
}
