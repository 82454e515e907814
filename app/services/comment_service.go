package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"portfolio/app/logger"
	"portfolio/app/metrics"
	"portfolio/app/models"
	"portfolio/app/repositories"
	"portfolio/app/state"

	"github.com/google/uuid"
)

var (
	ErrInvalidComment    = errors.New("invalid comment")
	ErrInvalidStatus     = errors.New("invalid comment status")
	ErrUnsupportedFormat = errors.New("unsupported export format")
)

// CommentStatus selects comments in FilterComments.
type CommentStatus string

const (
	StatusAll      CommentStatus = "all"
	StatusApproved CommentStatus = "approved"
	StatusPending  CommentStatus = "pending"
	StatusSpam     CommentStatus = "spam"
)

// ParseCommentStatus converts s to a CommentStatus. An empty string means all.
func ParseCommentStatus(s string) (CommentStatus, error) {
	switch status := CommentStatus(strings.ToLower(strings.TrimSpace(s))); status {
	case "":
		return StatusAll, nil
	case StatusAll, StatusApproved, StatusPending, StatusSpam:
		return status, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// CommentStats summarises the comment collection.
type CommentStats struct {
	Total                  int     `json:"total"`
	Approved               int     `json:"approved"`
	Pending                int     `json:"pending"`
	Spam                   int     `json:"spam"`
	AverageCommentsPerPost float64 `json:"averageCommentsPerPost"`
}

// CommentService manages submitted comments and their moderation. Every
// mutation writes the whole collection to the store; store failures are
// logged and never returned.
type CommentService struct {
	store     repositories.CommentStore
	moderator *Moderator
	log       logger.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
	newID     func() (uuid.UUID, error)

	// mu makes mutate-then-persist atomic so the store sees commits in order.
	mu       sync.Mutex
	comments *state.Store[[]*models.Comment]
}

// CommentOption configures a CommentService.
type CommentOption func(*CommentService)

func WithCommentLogger(l logger.Logger) CommentOption {
	return func(s *CommentService) { s.log = l }
}

func WithCommentMetrics(m *metrics.Metrics) CommentOption {
	return func(s *CommentService) { s.metrics = m }
}

func WithModerator(m *Moderator) CommentOption {
	return func(s *CommentService) { s.moderator = m }
}

// WithCommentClock overrides time.Now, for tests.
func WithCommentClock(now func() time.Time) CommentOption {
	return func(s *CommentService) { s.now = now }
}

// NewCommentService creates a CommentService and loads any previously saved
// comments. A load failure is logged and the service starts empty.
func NewCommentService(store repositories.CommentStore, opts ...CommentOption) *CommentService {
	s := &CommentService{
		store:     store,
		moderator: NewModerator(DefaultSpamKeywords),
		log:       logger.NewNop(),
		now:       time.Now,
		newID:     uuid.NewV7,
	}
	for _, opt := range opts {
		opt(s)
	}

	loaded, err := store.Load()
	if err != nil {
		s.log.Warn("Failed to load saved comments, starting empty", logger.Error(err))
		s.metrics.RecordStoreError("load")
		loaded = nil
	}
	if loaded == nil {
		loaded = []*models.Comment{}
	}
	s.comments = state.New(loaded)
	s.log.Debug("Comments loaded", logger.Int("count", len(loaded)))
	return s
}

func (s *CommentService) persist(all []*models.Comment) {
	if err := s.store.Save(all); err != nil {
		s.log.Error("Failed to save comments", logger.Error(err), logger.Int("count", len(all)))
		s.metrics.RecordStoreError("save")
	}
}

// commit replaces the collection with fn's result and persists it.
func (s *CommentService) commit(fn func([]*models.Comment) []*models.Comment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persist(s.comments.Update(fn))
}

func idSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// modify applies fn to a copy of every comment whose ID is in ids.
func (s *CommentService) modify(ids map[string]struct{}, fn func(*models.Comment)) {
	s.commit(func(cur []*models.Comment) []*models.Comment {
		out := make([]*models.Comment, len(cur))
		for i, c := range cur {
			if _, ok := ids[c.ID]; ok {
				c = c.Clone()
				fn(c)
			}
			out[i] = c
		}
		return out
	})
}

func (s *CommentService) remove(ids map[string]struct{}) {
	s.commit(func(cur []*models.Comment) []*models.Comment {
		out := make([]*models.Comment, 0, len(cur))
		for _, c := range cur {
			if _, ok := ids[c.ID]; !ok {
				out = append(out, c)
			}
		}
		return out
	})
}

// AddComment validates form and stores it as a new pending comment.
func (s *CommentService) AddComment(form models.CommentForm) (*models.Comment, error) {
	form.Normalize()
	if err := form.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidComment, err)
	}

	id, err := s.newID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate comment id: %w", err)
	}

	comment := &models.Comment{
		ID:        id.String(),
		PostID:    form.PostID,
		Author:    form.Author,
		Email:     form.Email,
		Content:   form.Content,
		CreatedAt: s.now().UTC(),
		Approved:  false,
	}
	s.commit(func(cur []*models.Comment) []*models.Comment {
		return append(cloneSlice(cur), comment)
	})
	s.metrics.RecordCommentSubmitted()
	s.log.Info("Comment submitted", logger.String("comment_id", comment.ID), logger.String("post_id", comment.PostID))
	return comment.Clone(), nil
}

// ApproveComment marks the comment approved. Unknown ids are ignored.
func (s *CommentService) ApproveComment(id string) {
	s.BulkApproveComments([]string{id})
}

// DeleteComment removes the comment. Unknown ids are ignored.
func (s *CommentService) DeleteComment(id string) {
	s.BulkDeleteComments([]string{id})
}

// UpdateComment merges the non-nil fields of u into the comment. Unknown ids
// are ignored. A merge that leaves the comment invalid is discarded and
// reported as ErrInvalidComment.
func (s *CommentService) UpdateComment(id string, u models.CommentUpdate) error {
	var invalid error
	s.modify(idSet([]string{id}), func(c *models.Comment) {
		prev := *c
		c.Apply(u)
		if err := c.Validate(); err != nil {
			invalid = fmt.Errorf("%w: %v", ErrInvalidComment, err)
			*c = prev
		}
	})
	return invalid
}

func (s *CommentService) BulkApproveComments(ids []string) {
	s.modify(idSet(ids), func(c *models.Comment) { c.Approved = true })
}

func (s *CommentService) BulkDeleteComments(ids []string) {
	s.remove(idSet(ids))
}

// IsCommentSpam reports whether the comment's content hits the denylist.
func (s *CommentService) IsCommentSpam(c *models.Comment) bool {
	return s.moderator.IsSpam(c.Content)
}

// AutoModerateComment decides whether c should be approved. It does not change c.
func (s *CommentService) AutoModerateComment(c *models.Comment) ModerationResult {
	result := s.moderator.Evaluate(c.Content)
	outcome := "approved"
	if !result.Approved {
		outcome = result.Reason
	}
	s.metrics.RecordModeration(outcome)
	return result
}

// ModerateAndApply runs auto-moderation on the stored comment and approves it
// when the decision allows. Rejected comments stay pending.
func (s *CommentService) ModerateAndApply(id string) (ModerationResult, error) {
	c, ok := s.find(id)
	if !ok {
		return ModerationResult{}, fmt.Errorf("comment %q: %w", id, repositories.ErrNotFound)
	}
	result := s.AutoModerateComment(c)
	if result.Approved {
		s.ApproveComment(id)
	} else {
		s.log.Info("Comment rejected by moderation", logger.String("comment_id", id), logger.String("reason", result.Reason))
	}
	return result, nil
}

func (s *CommentService) find(id string) (*models.Comment, bool) {
	for _, c := range s.comments.Get() {
		if c.ID == id {
			return c.Clone(), true
		}
	}
	return nil, false
}

// Comment returns a copy of the comment with the given id.
func (s *CommentService) Comment(id string) (*models.Comment, error) {
	c, ok := s.find(id)
	if !ok {
		return nil, fmt.Errorf("comment %q: %w", id, repositories.ErrNotFound)
	}
	return c, nil
}

// Comments returns a copy of every comment in submission order.
func (s *CommentService) Comments() []*models.Comment {
	return cloneSlice(s.comments.Get())
}

// Subscribe registers fn to receive the collection after every change.
// Subscribers must not modify the comments they receive.
func (s *CommentService) Subscribe(fn func([]*models.Comment)) func() {
	return s.comments.Subscribe(fn)
}

func (s *CommentService) selectComments(keep func(*models.Comment) bool) []*models.Comment {
	out := []*models.Comment{}
	for _, c := range s.comments.Get() {
		if keep(c) {
			out = append(out, c.Clone())
		}
	}
	return out
}

// SearchComments matches query against author, content or email, ignoring case.
func (s *CommentService) SearchComments(query string) []*models.Comment {
	q := strings.ToLower(query)
	return s.selectComments(func(c *models.Comment) bool {
		return contains(c.Author, q) || contains(c.Content, q) || contains(c.Email, q)
	})
}

// FilterComments returns the comments in the given status. Spam is evaluated
// against the current content on every call.
func (s *CommentService) FilterComments(status CommentStatus) ([]*models.Comment, error) {
	switch status {
	case StatusAll:
		return s.Comments(), nil
	case StatusApproved:
		return s.selectComments(func(c *models.Comment) bool { return c.Approved }), nil
	case StatusPending:
		return s.selectComments(func(c *models.Comment) bool { return !c.Approved }), nil
	case StatusSpam:
		return s.selectComments(s.IsCommentSpam), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
}

// CommentsForPost returns the approved comments attached to postID.
func (s *CommentService) CommentsForPost(postID string) []*models.Comment {
	return s.selectComments(func(c *models.Comment) bool {
		return c.Approved && c.PostID == postID
	})
}

// CommentStats counts comments by state. Comments are grouped by post; a
// comment without a post forms its own group.
func (s *CommentService) CommentStats() CommentStats {
	all := s.comments.Get()
	stats := CommentStats{Total: len(all)}
	groups := make(map[string]struct{})
	for _, c := range all {
		if c.Approved {
			stats.Approved++
		} else {
			stats.Pending++
		}
		if s.IsCommentSpam(c) {
			stats.Spam++
		}
		key := c.PostID
		if key == "" {
			key = "comment:" + c.ID
		}
		groups[key] = struct{}{}
	}
	if len(groups) > 0 {
		stats.AverageCommentsPerPost = float64(stats.Total) / float64(len(groups))
	}
	return stats
}

// ClearAllComments removes every comment and the saved copy.
func (s *CommentService) ClearAllComments() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments.Set([]*models.Comment{})
	if err := s.store.Clear(); err != nil {
		s.log.Error("Failed to clear saved comments", logger.Error(err))
		s.metrics.RecordStoreError("clear")
	}
}

// Close writes the current collection one last time.
func (s *CommentService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Save(s.comments.Get()); err != nil {
		s.metrics.RecordStoreError("save")
		return fmt.Errorf("failed to flush comments: %w", err)
	}
	return nil
}

func cloneSlice(in []*models.Comment) []*models.Comment {
	out := make([]*models.Comment, len(in))
	for i, c := range in {
		out[i] = c.Clone()
	}
	return out
}
