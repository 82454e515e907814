// Package mock provides in-memory repository implementations for tests.
package mock

import (
	"context"
	"sync"

	"portfolio/app/models"
)

// ContentGateway serves fixed collections. Setting one of the Err fields makes
// the matching fetch fail; Block makes every fetch wait for ctx cancellation.
// A non-nil Hang makes every fetch wait until Hang is closed, ignoring ctx.
type ContentGateway struct {
	Skills       []models.Skill
	Certificates []models.Certificate
	Projects     []models.Project
	BlogPosts    []models.BlogPost

	SkillsErr       error
	CertificatesErr error
	ProjectsErr     error
	BlogPostsErr    error

	Block bool
	Hang  chan struct{}

	mutex sync.Mutex
	calls int
}

// Calls reports how many fetches were issued.
func (g *ContentGateway) Calls() int {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	return g.calls
}

func (g *ContentGateway) wait(ctx context.Context) error {
	g.mutex.Lock()
	g.calls++
	g.mutex.Unlock()
	if g.Hang != nil {
		<-g.Hang
	}
	if g.Block {
		<-ctx.Done()
		return ctx.Err()
	}
	return nil
}

func (g *ContentGateway) FetchSkills(ctx context.Context) ([]models.Skill, error) {
	if err := g.wait(ctx); err != nil {
		return nil, err
	}
	if g.SkillsErr != nil {
		return nil, g.SkillsErr
	}
	return append([]models.Skill(nil), g.Skills...), nil
}

func (g *ContentGateway) FetchCertificates(ctx context.Context) ([]models.Certificate, error) {
	if err := g.wait(ctx); err != nil {
		return nil, err
	}
	if g.CertificatesErr != nil {
		return nil, g.CertificatesErr
	}
	return append([]models.Certificate(nil), g.Certificates...), nil
}

func (g *ContentGateway) FetchProjects(ctx context.Context) ([]models.Project, error) {
	if err := g.wait(ctx); err != nil {
		return nil, err
	}
	if g.ProjectsErr != nil {
		return nil, g.ProjectsErr
	}
	return append([]models.Project(nil), g.Projects...), nil
}

func (g *ContentGateway) FetchBlogPosts(ctx context.Context) ([]models.BlogPost, error) {
	if err := g.wait(ctx); err != nil {
		return nil, err
	}
	if g.BlogPostsErr != nil {
		return nil, g.BlogPostsErr
	}
	return append([]models.BlogPost(nil), g.BlogPosts...), nil
}

// CommentStore keeps the collection in memory and counts writes.
type CommentStore struct {
	mutex    sync.Mutex
	comments []*models.Comment
	saved    bool

	LoadErr  error
	SaveErr  error
	ClearErr error

	Saves  int
	Clears int
}

// NewCommentStore returns a store pre-populated with comments (which may be nil).
func NewCommentStore(comments ...*models.Comment) *CommentStore {
	s := &CommentStore{}
	if len(comments) > 0 {
		s.comments = cloneComments(comments)
		s.saved = true
	}
	return s
}

func (s *CommentStore) Load() ([]*models.Comment, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	if !s.saved {
		return nil, nil
	}
	return cloneComments(s.comments), nil
}

func (s *CommentStore) Save(comments []*models.Comment) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.Saves++
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.comments = cloneComments(comments)
	s.saved = true
	return nil
}

func (s *CommentStore) Clear() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.Clears++
	if s.ClearErr != nil {
		return s.ClearErr
	}
	s.comments = nil
	s.saved = false
	return nil
}

// Stored returns what was last saved, or nil after Clear.
func (s *CommentStore) Stored() []*models.Comment {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if !s.saved {
		return nil
	}
	return cloneComments(s.comments)
}

func cloneComments(in []*models.Comment) []*models.Comment {
	out := make([]*models.Comment, len(in))
	for i, c := range in {
		out[i] = c.Clone()
	}
	return out
}
