package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Skill is a technical skill shown on the skills page.
type Skill struct {
	ID                string   `json:"id" validate:"required"`
	Name              string   `json:"name" validate:"required,max=100"`
	Category          string   `json:"category" validate:"required"`
	Proficiency       int      `json:"proficiency" validate:"gte=0,lte=100"`
	YearsOfExperience float64  `json:"yearsOfExperience" validate:"gte=0"`
	Certifications    []string `json:"certifications"`
	ProjectsCount     int      `json:"projectsCount" validate:"gte=0"`
}

// Certificate is a professional certification.
type Certificate struct {
	ID              string     `json:"id" validate:"required"`
	Title           string     `json:"title" validate:"required"`
	Issuer          string     `json:"issuer" validate:"required"`
	IssueDate       time.Time  `json:"issueDate" validate:"required"`
	ExpiryDate      *time.Time `json:"expiryDate,omitempty"`
	Category        string     `json:"category"`
	PDFURL          string     `json:"pdfUrl"`
	ThumbnailURL    string     `json:"thumbnailUrl"`
	Verified        bool       `json:"verified"`
	VerificationURL string     `json:"verificationUrl,omitempty"`
	CredentialID    string     `json:"credentialId,omitempty"`
}

// Project is a portfolio project.
type Project struct {
	ID           string    `json:"id" validate:"required"`
	Title        string    `json:"title" validate:"required"`
	Description  string    `json:"description"`
	Technologies []string  `json:"technologies"`
	GitHubURL    string    `json:"githubUrl,omitempty" validate:"omitempty,url"`
	LiveURL      string    `json:"liveUrl,omitempty" validate:"omitempty,url"`
	ImageURL     string    `json:"imageUrl"`
	Featured     bool      `json:"featured"`
	CreatedAt    time.Time `json:"createdAt"`
}

// BlogPost is an article on the blog.
type BlogPost struct {
	ID          string    `json:"id" validate:"required"`
	Title       string    `json:"title" validate:"required,min=3,max=200"`
	Content     string    `json:"content" validate:"required"`
	Excerpt     string    `json:"excerpt"`
	Author      string    `json:"author"`
	PublishDate time.Time `json:"publishDate"`
	Tags        []string  `json:"tags"`
	Category    string    `json:"category"`
	ReadTime    int       `json:"readTime" validate:"gte=0"`
	Featured    bool      `json:"featured"`
}

// Comment is a visitor comment or testimonial. PostID is empty for
// testimonials that are not attached to a blog post.
type Comment struct {
	ID        string    `json:"id" validate:"required"`
	PostID    string    `json:"postId,omitempty"`
	Author    string    `json:"author" validate:"required,max=100"`
	Email     string    `json:"email" validate:"omitempty,email"`
	Content   string    `json:"content" validate:"required,max=1000"`
	CreatedAt time.Time `json:"createdAt"`
	Approved  bool      `json:"approved"`
}

// CommentForm is what a visitor submits.
type CommentForm struct {
	Author  string `json:"author" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Content string `json:"content" validate:"required,min=1,max=1000"`
	PostID  string `json:"postId,omitempty"`
}

// CertificateUpdate is a partial certificate; nil fields are left untouched.
type CertificateUpdate struct {
	ID              string     `json:"id"`
	Title           *string    `json:"title,omitempty"`
	Issuer          *string    `json:"issuer,omitempty"`
	IssueDate       *time.Time `json:"issueDate,omitempty"`
	ExpiryDate      *time.Time `json:"expiryDate,omitempty"`
	Category        *string    `json:"category,omitempty"`
	PDFURL          *string    `json:"pdfUrl,omitempty"`
	ThumbnailURL    *string    `json:"thumbnailUrl,omitempty"`
	Verified        *bool      `json:"verified,omitempty"`
	VerificationURL *string    `json:"verificationUrl,omitempty"`
	CredentialID    *string    `json:"credentialId,omitempty"`
}

// BlogPostUpdate is a partial blog post; nil fields are left untouched.
type BlogPostUpdate struct {
	ID          string     `json:"id"`
	Title       *string    `json:"title,omitempty"`
	Content     *string    `json:"content,omitempty"`
	Excerpt     *string    `json:"excerpt,omitempty"`
	Author      *string    `json:"author,omitempty"`
	PublishDate *time.Time `json:"publishDate,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Category    *string    `json:"category,omitempty"`
	ReadTime    *int       `json:"readTime,omitempty"`
	Featured    *bool      `json:"featured,omitempty"`
}

// CommentUpdate is a partial comment; nil fields are left untouched.
type CommentUpdate struct {
	PostID   *string `json:"postId,omitempty"`
	Author   *string `json:"author,omitempty"`
	Email    *string `json:"email,omitempty"`
	Content  *string `json:"content,omitempty"`
	Approved *bool   `json:"approved,omitempty"`
}
