package controllers

import (
	"errors"
	"net/http"
	"strings"

	"portfolio/app/logger"
	"portfolio/app/models"
	"portfolio/app/repositories"
	"portfolio/app/services"

	"github.com/gorilla/mux"
)

// ContentController serves skills, certificates, projects and blog posts.
type ContentController struct {
	base
	content *services.ContentService
}

// NewContentController creates a new ContentController
func NewContentController(content *services.ContentService, log logger.Logger) *ContentController {
	return &ContentController{base: base{log: log}, content: content}
}

// keepCategory narrows items to those the service lists for category,
// preserving the order of items.
func keepCategory[T any](items []T, category string, byCategory func(string) []T, idOf func(T) string) []T {
	if category == "" {
		return items
	}
	inCategory := make(map[string]struct{})
	for _, item := range byCategory(category) {
		inCategory[idOf(item)] = struct{}{}
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if _, ok := inCategory[idOf(item)]; ok {
			out = append(out, item)
		}
	}
	return out
}

// Skills lists skills, optionally searched with q and narrowed to a category.
func (cc *ContentController) Skills(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	skills := cc.content.Skills()
	if q := strings.TrimSpace(query.Get("q")); q != "" {
		skills = cc.content.SearchSkills(q)
	}
	skills = keepCategory(skills, query.Get("category"), cc.content.SkillsByCategory, func(s models.Skill) string { return s.ID })
	cc.sendJSON(w, http.StatusOK, skills)
}

// SkillCategories lists the distinct skill categories.
func (cc *ContentController) SkillCategories(w http.ResponseWriter, r *http.Request) {
	cc.sendJSON(w, http.StatusOK, cc.content.SkillCategories())
}

// Certificates lists certificates, optionally searched with q and narrowed to a category.
func (cc *ContentController) Certificates(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	certs := cc.content.Certificates()
	if q := strings.TrimSpace(query.Get("q")); q != "" {
		certs = cc.content.SearchCertificates(q)
	}
	certs = keepCategory(certs, query.Get("category"), cc.content.CertificatesByCategory, func(c models.Certificate) string { return c.ID })
	cc.sendJSON(w, http.StatusOK, certs)
}

// ExpiringCertificates lists certificates expiring within ?days (default 30).
func (cc *ContentController) ExpiringCertificates(w http.ResponseWriter, r *http.Request) {
	days, err := queryInt(r, "days", services.DefaultExpiryWindowDays)
	if err != nil {
		cc.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	cc.sendJSON(w, http.StatusOK, cc.content.ExpiringCertificates(days))
}

// BulkUpdateCertificates merges a list of partial certificates into the collection.
func (cc *ContentController) BulkUpdateCertificates(w http.ResponseWriter, r *http.Request) {
	var updates []models.CertificateUpdate
	if !cc.decodeJSON(w, r, &updates) {
		return
	}
	cc.sendJSON(w, http.StatusOK, cc.content.BulkUpdateCertificates(updates))
}

// Projects lists projects; ?featured=true returns only featured ones.
func (cc *ContentController) Projects(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	featured := queryBool(r, "featured")

	var projects []models.Project
	switch {
	case q != "":
		projects = cc.content.SearchProjects(q)
		if featured {
			projects = keepFeatured(projects, func(p models.Project) bool { return p.Featured })
		}
	case featured:
		projects = cc.content.FeaturedProjects()
	default:
		projects = cc.content.Projects()
	}
	cc.sendJSON(w, http.StatusOK, projects)
}

// Posts lists blog posts filtered by q, category and featured.
func (cc *ContentController) Posts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := strings.TrimSpace(query.Get("q"))
	featured := queryBool(r, "featured")

	var posts []models.BlogPost
	switch {
	case q != "":
		posts = cc.content.SearchBlogPosts(q)
		if featured {
			posts = keepFeatured(posts, func(p models.BlogPost) bool { return p.Featured })
		}
	case featured:
		posts = cc.content.FeaturedBlogPosts()
	default:
		posts = cc.content.BlogPosts()
	}
	posts = keepCategory(posts, query.Get("category"), cc.content.BlogPostsByCategory, func(p models.BlogPost) string { return p.ID })
	cc.sendJSON(w, http.StatusOK, posts)
}

func keepFeatured[T any](items []T, featured func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if featured(item) {
			out = append(out, item)
		}
	}
	return out
}

// Post shows a single blog post.
func (cc *ContentController) Post(w http.ResponseWriter, r *http.Request) {
	post, err := cc.content.BlogPost(mux.Vars(r)["id"])
	if err != nil {
		cc.sendPostError(w, err)
		return
	}
	cc.sendJSON(w, http.StatusOK, post)
}

func (cc *ContentController) sendPostError(w http.ResponseWriter, err error) {
	if errors.Is(err, repositories.ErrNotFound) {
		cc.sendError(w, "Post not found", http.StatusNotFound)
		return
	}
	cc.sendError(w, "Failed to fetch post: "+err.Error(), http.StatusInternalServerError)
}

// RelatedPosts lists posts related to {id}, at most ?limit (default 3).
func (cc *ContentController) RelatedPosts(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, err := cc.content.BlogPost(id); err != nil {
		cc.sendPostError(w, err)
		return
	}
	limit, err := queryInt(r, "limit", services.DefaultRelatedLimit)
	if err != nil {
		cc.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	cc.sendJSON(w, http.StatusOK, cc.content.RelatedPosts(id, limit))
}

// BlogCategories lists the distinct blog categories.
func (cc *ContentController) BlogCategories(w http.ResponseWriter, r *http.Request) {
	cc.sendJSON(w, http.StatusOK, cc.content.BlogCategories())
}

// Tags lists every blog tag.
func (cc *ContentController) Tags(w http.ResponseWriter, r *http.Request) {
	cc.sendJSON(w, http.StatusOK, cc.content.AllTags())
}

// BulkUpdatePosts merges a list of partial blog posts into the collection.
func (cc *ContentController) BulkUpdatePosts(w http.ResponseWriter, r *http.Request) {
	var updates []models.BlogPostUpdate
	if !cc.decodeJSON(w, r, &updates) {
		return
	}
	cc.sendJSON(w, http.StatusOK, cc.content.BulkUpdateBlogPosts(updates))
}

type readingTimeRequest struct {
	Content string `json:"content"`
}

type readingTimeResponse struct {
	Words   int `json:"words"`
	Minutes int `json:"minutes"`
}

// ReadingTime estimates how long the posted content takes to read.
func (cc *ContentController) ReadingTime(w http.ResponseWriter, r *http.Request) {
	var req readingTimeRequest
	if !cc.decodeJSON(w, r, &req) {
		return
	}
	cc.sendJSON(w, http.StatusOK, readingTimeResponse{
		Words:   len(strings.Fields(req.Content)),
		Minutes: cc.content.CalculateReadingTime(req.Content),
	})
}

// Health reports the content source and collection sizes.
func (cc *ContentController) Health(w http.ResponseWriter, r *http.Request) {
	cc.sendJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"content": cc.content.Stats(),
	})
}
