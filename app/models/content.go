package models

import (
	"errors"
	"slices"
	"strings"
	"time"
)

// ErrExpiryBeforeIssue is returned when a certificate expires before it was issued.
var ErrExpiryBeforeIssue = errors.New("expiry date is before issue date")

// Validate checks the skill's field constraints.
func (s *Skill) Validate() error {
	return validate.Struct(s)
}

// Validate checks the certificate's field constraints.
func (c *Certificate) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.ExpiryDate != nil && c.ExpiryDate.Before(c.IssueDate) {
		return ErrExpiryBeforeIssue
	}
	return nil
}

// ExpiresBy reports whether the certificate has an expiry date on or before deadline.
func (c *Certificate) ExpiresBy(deadline time.Time) bool {
	return c.ExpiryDate != nil && !c.ExpiryDate.After(deadline)
}

// Apply returns c with the non-nil fields of u merged over it.
func (c Certificate) Apply(u CertificateUpdate) Certificate {
	if u.Title != nil {
		c.Title = *u.Title
	}
	if u.Issuer != nil {
		c.Issuer = *u.Issuer
	}
	if u.IssueDate != nil {
		c.IssueDate = *u.IssueDate
	}
	if u.ExpiryDate != nil {
		expiry := *u.ExpiryDate
		c.ExpiryDate = &expiry
	}
	if u.Category != nil {
		c.Category = *u.Category
	}
	if u.PDFURL != nil {
		c.PDFURL = *u.PDFURL
	}
	if u.ThumbnailURL != nil {
		c.ThumbnailURL = *u.ThumbnailURL
	}
	if u.Verified != nil {
		c.Verified = *u.Verified
	}
	if u.VerificationURL != nil {
		c.VerificationURL = *u.VerificationURL
	}
	if u.CredentialID != nil {
		c.CredentialID = *u.CredentialID
	}
	return c
}

// Validate checks the project's field constraints.
func (p *Project) Validate() error {
	return validate.Struct(p)
}

// Validate checks the blog post's field constraints.
func (p *BlogPost) Validate() error {
	return validate.Struct(p)
}

// Apply returns p with the non-nil fields of u merged over it.
func (p BlogPost) Apply(u BlogPostUpdate) BlogPost {
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Content != nil {
		p.Content = *u.Content
	}
	if u.Excerpt != nil {
		p.Excerpt = *u.Excerpt
	}
	if u.Author != nil {
		p.Author = *u.Author
	}
	if u.PublishDate != nil {
		p.PublishDate = *u.PublishDate
	}
	if u.Tags != nil {
		p.Tags = slices.Clone(u.Tags)
	}
	if u.Category != nil {
		p.Category = *u.Category
	}
	if u.ReadTime != nil {
		p.ReadTime = *u.ReadTime
	}
	if u.Featured != nil {
		p.Featured = *u.Featured
	}
	return p
}

// SharedTags counts the tags p has in common with other.
func (p *BlogPost) SharedTags(other *BlogPost) int {
	n := 0
	for _, tag := range other.Tags {
		if slices.Contains(p.Tags, tag) {
			n++
		}
	}
	return n
}

// WordsPerMinute is the reading speed used for read-time estimates.
const WordsPerMinute = 200

// ReadingTime estimates minutes to read content, rounded up.
// Empty or whitespace-only content reads in zero minutes.
func ReadingTime(content string) int {
	words := len(strings.Fields(content))
	return (words + WordsPerMinute - 1) / WordsPerMinute
}
