package controllers

import (
	"errors"
	"net/http"

	"portfolio/app/logger"
	"portfolio/app/models"
	"portfolio/app/repositories"
	"portfolio/app/services"

	"github.com/gorilla/mux"
)

// CommentController handles public comment and testimonial submission.
type CommentController struct {
	base
	comments *services.CommentService
	content  *services.ContentService
}

// NewCommentController creates a new CommentController
func NewCommentController(comments *services.CommentService, content *services.ContentService, log logger.Logger) *CommentController {
	return &CommentController{base: base{log: log}, comments: comments, content: content}
}

// Index lists the approved comments of post {id}.
func (cc *CommentController) Index(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]
	if !cc.postExists(w, postID) {
		return
	}
	cc.sendJSON(w, http.StatusOK, cc.comments.CommentsForPost(postID))
}

// Create submits a comment on post {id}. It stays hidden until approved.
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]
	if !cc.postExists(w, postID) {
		return
	}

	var form models.CommentForm
	if !cc.decodeJSON(w, r, &form) {
		return
	}
	form.PostID = postID
	cc.add(w, form)
}

// Testimonials lists approved comments that are not attached to a post.
func (cc *CommentController) Testimonials(w http.ResponseWriter, r *http.Request) {
	cc.sendJSON(w, http.StatusOK, cc.comments.CommentsForPost(""))
}

// CreateTestimonial submits a comment that is not attached to a post.
func (cc *CommentController) CreateTestimonial(w http.ResponseWriter, r *http.Request) {
	var form models.CommentForm
	if !cc.decodeJSON(w, r, &form) {
		return
	}
	form.PostID = ""
	cc.add(w, form)
}

func (cc *CommentController) add(w http.ResponseWriter, form models.CommentForm) {
	comment, err := cc.comments.AddComment(form)
	if err != nil {
		if errors.Is(err, services.ErrInvalidComment) {
			cc.sendError(w, err.Error(), http.StatusBadRequest)
			return
		}
		cc.sendError(w, "Failed to create comment: "+err.Error(), http.StatusInternalServerError)
		return
	}
	cc.sendJSON(w, http.StatusCreated, comment)
}

func (cc *CommentController) postExists(w http.ResponseWriter, postID string) bool {
	if _, err := cc.content.BlogPost(postID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			cc.sendError(w, "Post not found", http.StatusNotFound)
		} else {
			cc.sendError(w, "Failed to fetch post: "+err.Error(), http.StatusInternalServerError)
		}
		return false
	}
	return true
}
