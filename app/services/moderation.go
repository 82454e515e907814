package services

import (
	"strings"
	"unicode/utf8"

	"github.com/cloudflare/ahocorasick"
)

// Moderation rejection reasons.
const (
	ReasonSpam         = "flagged as spam"
	ReasonTooShort     = "too short"
	ReasonTooManyLinks = "too many links"
)

const (
	// MinCommentLength is the shortest content auto-moderation accepts.
	MinCommentLength = 10
	// MaxCommentLinks is the most http(s) links auto-moderation accepts.
	MaxCommentLinks = 2
)

// DefaultSpamKeywords is the denylist used when none is configured.
var DefaultSpamKeywords = []string{
	"viagra",
	"casino",
	"lottery",
	"free money",
	"click here",
	"winner",
	"prize",
	"bitcoin investment",
	"make money fast",
}

// ModerationResult is an auto-moderation decision. Reason is empty when approved.
type ModerationResult struct {
	Approved bool   `json:"approved"`
	Reason   string `json:"reason,omitempty"`
}

// Moderator classifies comment content against a keyword denylist using a
// single Aho-Corasick pass.
type Moderator struct {
	keywords []string
	matcher  *ahocorasick.Matcher
}

// NewModerator builds a moderator for keywords, matched case-insensitively.
func NewModerator(keywords []string) *Moderator {
	m := &Moderator{keywords: make([]string, 0, len(keywords))}
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			m.keywords = append(m.keywords, kw)
		}
	}
	if len(m.keywords) > 0 {
		m.matcher = ahocorasick.NewStringMatcher(m.keywords)
	}
	return m
}

// Matches returns the denylisted keywords found in content.
func (m *Moderator) Matches(content string) []string {
	if m.matcher == nil {
		return nil
	}
	hits := m.matcher.MatchThreadSafe([]byte(strings.ToLower(content)))
	found := make([]string, 0, len(hits))
	for _, idx := range hits {
		if idx < len(m.keywords) {
			found = append(found, m.keywords[idx])
		}
	}
	return found
}

// IsSpam reports whether content contains any denylisted keyword.
func (m *Moderator) IsSpam(content string) bool {
	return len(m.Matches(content)) > 0
}

// Evaluate applies the rules in order: spam keywords, minimum length, link count.
func (m *Moderator) Evaluate(content string) ModerationResult {
	switch {
	case m.IsSpam(content):
		return ModerationResult{Reason: ReasonSpam}
	case utf8.RuneCountInString(content) < MinCommentLength:
		return ModerationResult{Reason: ReasonTooShort}
	case countLinks(content) > MaxCommentLinks:
		return ModerationResult{Reason: ReasonTooManyLinks}
	}
	return ModerationResult{Approved: true}
}

func countLinks(content string) int {
	lc := strings.ToLower(content)
	return strings.Count(lc, "http://") + strings.Count(lc, "https://")
}
