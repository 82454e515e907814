package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestSkillValidation(t *testing.T) {
	tests := []struct {
		name    string
		skill   Skill
		wantErr bool
	}{
		{name: "valid", skill: Skill{ID: "1", Name: "Go", Category: "Backend", Proficiency: 90, YearsOfExperience: 4}},
		{name: "proficiency at bounds", skill: Skill{ID: "1", Name: "Go", Category: "Backend", Proficiency: 100}},
		{name: "proficiency above 100", skill: Skill{ID: "1", Name: "Go", Category: "Backend", Proficiency: 101}, wantErr: true},
		{name: "negative proficiency", skill: Skill{ID: "1", Name: "Go", Category: "Backend", Proficiency: -1}, wantErr: true},
		{name: "negative years", skill: Skill{ID: "1", Name: "Go", Category: "Backend", YearsOfExperience: -0.5}, wantErr: true},
		{name: "missing name", skill: Skill{ID: "1", Category: "Backend"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.skill.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCertificateValidation(t *testing.T) {
	issued := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	cert := Certificate{ID: "c1", Title: "CKA", Issuer: "CNCF", IssueDate: issued}
	assert.NoError(t, cert.Validate())

	cert.ExpiryDate = ptr(issued.AddDate(3, 0, 0))
	assert.NoError(t, cert.Validate())

	cert.ExpiryDate = ptr(issued.AddDate(0, 0, -1))
	assert.ErrorIs(t, cert.Validate(), ErrExpiryBeforeIssue)
}

func TestCertificateExpiresBy(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	deadline := now.AddDate(0, 0, 30)

	noExpiry := Certificate{}
	assert.False(t, noExpiry.ExpiresBy(deadline))

	soon := Certificate{ExpiryDate: ptr(now.AddDate(0, 0, 10))}
	assert.True(t, soon.ExpiresBy(deadline))

	onDeadline := Certificate{ExpiryDate: ptr(deadline)}
	assert.True(t, onDeadline.ExpiresBy(deadline))

	later := Certificate{ExpiryDate: ptr(now.AddDate(0, 0, 400))}
	assert.False(t, later.ExpiresBy(deadline))
}

func TestCertificateApply(t *testing.T) {
	cert := Certificate{ID: "c1", Title: "Old", Issuer: "AWS", Verified: false}
	expiry := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)

	updated := cert.Apply(CertificateUpdate{ID: "c1", Title: ptr("New"), Verified: ptr(true), ExpiryDate: &expiry})

	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, "AWS", updated.Issuer)
	assert.True(t, updated.Verified)
	assert.Equal(t, expiry, *updated.ExpiryDate)
	assert.Equal(t, "Old", cert.Title)
}

func TestBlogPostApplyAndSharedTags(t *testing.T) {
	post := BlogPost{ID: "p1", Title: "Go generics", Tags: []string{"go", "generics"}, Category: "Backend"}

	updated := post.Apply(BlogPostUpdate{ID: "p1", Tags: []string{"go", "types"}, Featured: ptr(true)})
	assert.Equal(t, []string{"go", "types"}, updated.Tags)
	assert.True(t, updated.Featured)
	assert.Equal(t, []string{"go", "generics"}, post.Tags)

	other := BlogPost{Tags: []string{"go", "generics", "testing"}}
	assert.Equal(t, 2, post.SharedTags(&other))
	assert.Equal(t, 0, post.SharedTags(&BlogPost{}))
}

func TestBlogPostValidation(t *testing.T) {
	valid := BlogPost{ID: "p1", Title: "Valid Title", Content: "Body"}
	assert.NoError(t, valid.Validate())

	short := valid
	short.Title = "ab"
	assert.Error(t, short.Validate())
}

func TestProjectValidation(t *testing.T) {
	p := Project{ID: "1", Title: "Site", GitHubURL: "https://github.com/me/site"}
	assert.NoError(t, p.Validate())

	p.LiveURL = "not a url"
	assert.Error(t, p.Validate())
}

func TestReadingTime(t *testing.T) {
	assert.Equal(t, 0, ReadingTime(""))
	assert.Equal(t, 0, ReadingTime("   \n\t "))
	assert.Equal(t, 1, ReadingTime("one"))
	assert.Equal(t, 1, ReadingTime(strings.Repeat("word ", 200)))
	assert.Equal(t, 2, ReadingTime(strings.Repeat("word ", 201)))
	assert.Equal(t, 2, ReadingTime(strings.Repeat("word ", 400)))
}
