package repositories

import (
	"context"

	"portfolio/app/models"
)

// ContentGateway is the remote content backend. Each fetch returns every row
// of one table in the table's display order.
type ContentGateway interface {
	FetchSkills(ctx context.Context) ([]models.Skill, error)
	FetchCertificates(ctx context.Context) ([]models.Certificate, error)
	FetchProjects(ctx context.Context) ([]models.Project, error)
	FetchBlogPosts(ctx context.Context) ([]models.BlogPost, error)
}

// CommentStore persists the whole comment collection under a single key.
// Load returns a nil slice and no error when nothing has been saved yet.
type CommentStore interface {
	Load() ([]*models.Comment, error)
	Save(comments []*models.Comment) error
	Clear() error
}
