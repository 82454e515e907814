package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"portfolio/app/models"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// DefaultProjectImage is used for projects stored without an image.
const DefaultProjectImage = "/images/placeholder-project.jpg"

const pingTimeout = 5 * time.Second

const (
	skillsQuery = `SELECT id, name, category, proficiency, years_of_experience, certifications, projects_count
		FROM skills ORDER BY name`
	certificatesQuery = `SELECT id, title, issuer, issue_date, expiry_date, category, pdf_url, thumbnail_url,
		verified, verification_url, credential_id
		FROM certificates ORDER BY issue_date DESC`
	projectsQuery = `SELECT id, title, description, technologies, github_url, live_url, image_url, featured, created_at
		FROM projects ORDER BY created_at DESC`
	blogPostsQuery = `SELECT id, title, content, excerpt, author, publish_date, tags, category, read_time, featured
		FROM blog_posts ORDER BY publish_date DESC`
)

// ConnectPostgres opens a pooled connection and pings it.
func ConnectPostgres(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// PostgresContentGateway reads portfolio content from PostgreSQL.
type PostgresContentGateway struct {
	db *sqlx.DB
}

// NewPostgresContentGateway wraps an open connection.
func NewPostgresContentGateway(db *sqlx.DB) *PostgresContentGateway {
	return &PostgresContentGateway{db: db}
}

type skillRow struct {
	ID                string          `db:"id"`
	Name              string          `db:"name"`
	Category          sql.NullString  `db:"category"`
	Proficiency       sql.NullInt64   `db:"proficiency"`
	YearsOfExperience sql.NullFloat64 `db:"years_of_experience"`
	Certifications    pq.StringArray  `db:"certifications"`
	ProjectsCount     sql.NullInt64   `db:"projects_count"`
}

type certificateRow struct {
	ID              string         `db:"id"`
	Title           string         `db:"title"`
	Issuer          string         `db:"issuer"`
	IssueDate       time.Time      `db:"issue_date"`
	ExpiryDate      sql.NullTime   `db:"expiry_date"`
	Category        sql.NullString `db:"category"`
	PDFURL          sql.NullString `db:"pdf_url"`
	ThumbnailURL    sql.NullString `db:"thumbnail_url"`
	Verified        sql.NullBool   `db:"verified"`
	VerificationURL sql.NullString `db:"verification_url"`
	CredentialID    sql.NullString `db:"credential_id"`
}

type projectRow struct {
	ID           string         `db:"id"`
	Title        string         `db:"title"`
	Description  sql.NullString `db:"description"`
	Technologies pq.StringArray `db:"technologies"`
	GitHubURL    sql.NullString `db:"github_url"`
	LiveURL      sql.NullString `db:"live_url"`
	ImageURL     sql.NullString `db:"image_url"`
	Featured     sql.NullBool   `db:"featured"`
	CreatedAt    sql.NullTime   `db:"created_at"`
}

type blogPostRow struct {
	ID          string         `db:"id"`
	Title       string         `db:"title"`
	Content     string         `db:"content"`
	Excerpt     sql.NullString `db:"excerpt"`
	Author      sql.NullString `db:"author"`
	PublishDate time.Time      `db:"publish_date"`
	Tags        pq.StringArray `db:"tags"`
	Category    sql.NullString `db:"category"`
	ReadTime    sql.NullInt64  `db:"read_time"`
	Featured    sql.NullBool   `db:"featured"`
}

// FetchSkills returns all skills ordered by name.
func (g *PostgresContentGateway) FetchSkills(ctx context.Context) ([]models.Skill, error) {
	var rows []skillRow
	if err := g.db.SelectContext(ctx, &rows, skillsQuery); err != nil {
		return nil, fmt.Errorf("failed to fetch skills: %w", err)
	}
	skills := make([]models.Skill, 0, len(rows))
	for _, r := range rows {
		skills = append(skills, models.Skill{
			ID:                r.ID,
			Name:              r.Name,
			Category:          r.Category.String,
			Proficiency:       int(r.Proficiency.Int64),
			YearsOfExperience: r.YearsOfExperience.Float64,
			Certifications:    nonNil(r.Certifications),
			ProjectsCount:     int(r.ProjectsCount.Int64),
		})
	}
	return skills, nil
}

// FetchCertificates returns all certificates, newest first.
func (g *PostgresContentGateway) FetchCertificates(ctx context.Context) ([]models.Certificate, error) {
	var rows []certificateRow
	if err := g.db.SelectContext(ctx, &rows, certificatesQuery); err != nil {
		return nil, fmt.Errorf("failed to fetch certificates: %w", err)
	}
	certs := make([]models.Certificate, 0, len(rows))
	for _, r := range rows {
		cert := models.Certificate{
			ID:              r.ID,
			Title:           r.Title,
			Issuer:          r.Issuer,
			IssueDate:       r.IssueDate,
			Category:        r.Category.String,
			PDFURL:          r.PDFURL.String,
			ThumbnailURL:    r.ThumbnailURL.String,
			Verified:        r.Verified.Bool,
			VerificationURL: r.VerificationURL.String,
			CredentialID:    r.CredentialID.String,
		}
		if r.ExpiryDate.Valid {
			expiry := r.ExpiryDate.Time
			cert.ExpiryDate = &expiry
		}
		certs = append(certs, cert)
	}
	return certs, nil
}

// FetchProjects returns all projects, newest first.
func (g *PostgresContentGateway) FetchProjects(ctx context.Context) ([]models.Project, error) {
	var rows []projectRow
	if err := g.db.SelectContext(ctx, &rows, projectsQuery); err != nil {
		return nil, fmt.Errorf("failed to fetch projects: %w", err)
	}
	projects := make([]models.Project, 0, len(rows))
	for _, r := range rows {
		image := r.ImageURL.String
		if image == "" {
			image = DefaultProjectImage
		}
		projects = append(projects, models.Project{
			ID:           r.ID,
			Title:        r.Title,
			Description:  r.Description.String,
			Technologies: nonNil(r.Technologies),
			GitHubURL:    r.GitHubURL.String,
			LiveURL:      r.LiveURL.String,
			ImageURL:     image,
			Featured:     r.Featured.Bool,
			CreatedAt:    r.CreatedAt.Time,
		})
	}
	return projects, nil
}

// FetchBlogPosts returns all blog posts, most recently published first.
func (g *PostgresContentGateway) FetchBlogPosts(ctx context.Context) ([]models.BlogPost, error) {
	var rows []blogPostRow
	if err := g.db.SelectContext(ctx, &rows, blogPostsQuery); err != nil {
		return nil, fmt.Errorf("failed to fetch blog posts: %w", err)
	}
	posts := make([]models.BlogPost, 0, len(rows))
	for _, r := range rows {
		readTime := int(r.ReadTime.Int64)
		if !r.ReadTime.Valid {
			readTime = models.ReadingTime(r.Content)
		}
		posts = append(posts, models.BlogPost{
			ID:          r.ID,
			Title:       r.Title,
			Content:     r.Content,
			Excerpt:     r.Excerpt.String,
			Author:      r.Author.String,
			PublishDate: r.PublishDate,
			Tags:        nonNil(r.Tags),
			Category:    r.Category.String,
			ReadTime:    readTime,
			Featured:    r.Featured.Bool,
		})
	}
	return posts, nil
}

func nonNil(a pq.StringArray) []string {
	if a == nil {
		return []string{}
	}
	return []string(a)
}
