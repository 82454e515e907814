package models

import (
	"errors"
	"strings"
)

// Validate checks the comment's field constraints.
func (c *Comment) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.CreatedAt.IsZero() {
		return errors.New("created_at cannot be zero")
	}
	return nil
}

// Clone returns a copy that shares nothing with c.
func (c *Comment) Clone() *Comment {
	cp := *c
	return &cp
}

// Apply merges the non-nil fields of u into c.
func (c *Comment) Apply(u CommentUpdate) {
	if u.PostID != nil {
		c.PostID = *u.PostID
	}
	if u.Author != nil {
		c.Author = *u.Author
	}
	if u.Email != nil {
		c.Email = *u.Email
	}
	if u.Content != nil {
		c.Content = *u.Content
	}
	if u.Approved != nil {
		c.Approved = *u.Approved
	}
}

// Validate checks a submitted form.
func (f *CommentForm) Validate() error {
	return validate.Struct(f)
}

// Normalize trims surrounding whitespace from every field.
func (f *CommentForm) Normalize() {
	f.Author = strings.TrimSpace(f.Author)
	f.Email = strings.TrimSpace(f.Email)
	f.Content = strings.TrimSpace(f.Content)
	f.PostID = strings.TrimSpace(f.PostID)
}
