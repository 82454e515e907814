package repositories

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupGateway(t *testing.T) (*PostgresContentGateway, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresContentGateway(sqlx.NewDb(db, "postgres")), mock
}

func TestFetchSkills(t *testing.T) {
	gw, mock := setupGateway(t)

	rows := sqlmock.NewRows([]string{"id", "name", "category", "proficiency", "years_of_experience", "certifications", "projects_count"}).
		AddRow("s1", "Docker", "DevOps", 80, 3.5, "{CKA,\"Docker Associate\"}", 6).
		AddRow("s2", "Go", "Backend", 90, nil, nil, nil)
	mock.ExpectQuery(`SELECT (.+) FROM skills ORDER BY name`).WillReturnRows(rows)

	skills, err := gw.FetchSkills(context.Background())
	require.NoError(t, err)
	require.Len(t, skills, 2)

	assert.Equal(t, "Docker", skills[0].Name)
	assert.Equal(t, 3.5, skills[0].YearsOfExperience)
	assert.Equal(t, []string{"CKA", "Docker Associate"}, skills[0].Certifications)
	assert.Equal(t, 6, skills[0].ProjectsCount)

	assert.Equal(t, 0.0, skills[1].YearsOfExperience)
	assert.Equal(t, []string{}, skills[1].Certifications)
	assert.Equal(t, 0, skills[1].ProjectsCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchCertificates(t *testing.T) {
	gw, mock := setupGateway(t)
	issued := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	expires := issued.AddDate(3, 0, 0)

	rows := sqlmock.NewRows([]string{"id", "title", "issuer", "issue_date", "expiry_date", "category", "pdf_url",
		"thumbnail_url", "verified", "verification_url", "credential_id"}).
		AddRow("c1", "CKA", "CNCF", issued, expires, "Cloud", "/certs/cka.pdf", "/certs/cka.png", true, "https://verify.example/cka", "LF-123").
		AddRow("c2", "Scrum", "Scrum.org", issued.AddDate(-1, 0, 0), nil, nil, nil, nil, nil, nil, nil)
	mock.ExpectQuery(`SELECT (.+) FROM certificates ORDER BY issue_date DESC`).WillReturnRows(rows)

	certs, err := gw.FetchCertificates(context.Background())
	require.NoError(t, err)
	require.Len(t, certs, 2)

	require.NotNil(t, certs[0].ExpiryDate)
	assert.Equal(t, expires, *certs[0].ExpiryDate)
	assert.True(t, certs[0].Verified)
	assert.Equal(t, "LF-123", certs[0].CredentialID)

	assert.Nil(t, certs[1].ExpiryDate)
	assert.False(t, certs[1].Verified)
	assert.Empty(t, certs[1].PDFURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchProjects(t *testing.T) {
	gw, mock := setupGateway(t)
	created := time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "title", "description", "technologies", "github_url", "live_url", "image_url", "featured", "created_at"}).
		AddRow("p1", "Portfolio", "This site", "{Go,PostgreSQL}", "https://github.com/me/site", nil, "/img/site.png", true, created).
		AddRow("p2", "CLI", nil, nil, nil, nil, nil, nil, nil)
	mock.ExpectQuery(`SELECT (.+) FROM projects ORDER BY created_at DESC`).WillReturnRows(rows)

	projects, err := gw.FetchProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 2)

	assert.Equal(t, []string{"Go", "PostgreSQL"}, projects[0].Technologies)
	assert.True(t, projects[0].Featured)
	assert.Equal(t, "/img/site.png", projects[0].ImageURL)
	assert.Equal(t, created, projects[0].CreatedAt)

	assert.Equal(t, DefaultProjectImage, projects[1].ImageURL)
	assert.False(t, projects[1].Featured)
	assert.Equal(t, []string{}, projects[1].Technologies)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchBlogPosts(t *testing.T) {
	gw, mock := setupGateway(t)
	published := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "title", "content", "excerpt", "author", "publish_date", "tags", "category", "read_time", "featured"}).
		AddRow("b1", "Hello", "short body", "intro", "Me", published, "{go,web}", "Backend", 7, true).
		AddRow("b2", "Untimed", "one two three", nil, nil, published.AddDate(0, 0, -1), nil, nil, nil, nil)
	mock.ExpectQuery(`SELECT (.+) FROM blog_posts ORDER BY publish_date DESC`).WillReturnRows(rows)

	posts, err := gw.FetchBlogPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)

	assert.Equal(t, 7, posts[0].ReadTime)
	assert.Equal(t, []string{"go", "web"}, posts[0].Tags)
	assert.True(t, posts[0].Featured)

	assert.Equal(t, 1, posts[1].ReadTime)
	assert.Equal(t, []string{}, posts[1].Tags)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchErrorsAreWrapped(t *testing.T) {
	gw, mock := setupGateway(t)
	mock.ExpectQuery(`FROM skills`).WillReturnError(sql.ErrConnDone)

	_, err := gw.FetchSkills(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.Contains(t, err.Error(), "failed to fetch skills")
}
