package services

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"portfolio/app/logger"
	"portfolio/app/models"
)

// Export formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

var csvHeader = []string{"ID", "Author", "Email", "Content", "Created At", "Approved"}

// ImportResult reports how many comments were imported and why the rest were not.
type ImportResult struct {
	Success int      `json:"success"`
	Errors  []string `json:"errors"`
}

// ExportComments serialises every comment as pretty-printed JSON or as CSV.
func (s *CommentService) ExportComments(format string) ([]byte, error) {
	comments := s.comments.Get()

	switch strings.ToLower(format) {
	case FormatJSON:
		data, err := json.MarshalIndent(comments, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal comments: %w", err)
		}
		return data, nil
	case FormatCSV:
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		if err := w.Write(csvHeader); err != nil {
			return nil, err
		}
		for _, c := range comments {
			record := []string{
				c.ID,
				c.Author,
				c.Email,
				c.Content,
				c.CreatedAt.Format(time.RFC3339),
				strconv.FormatBool(c.Approved),
			}
			if err := w.Write(record); err != nil {
				return nil, err
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, fmt.Errorf("failed to write csv: %w", err)
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

type importRecord struct {
	ID        string     `json:"id"`
	PostID    string     `json:"postId"`
	Author    string     `json:"author"`
	Email     string     `json:"email"`
	Content   string     `json:"content"`
	CreatedAt *time.Time `json:"createdAt"`
	Approved  bool       `json:"approved"`
}

func (r *importRecord) missing() []string {
	var fields []string
	if r.ID == "" {
		fields = append(fields, "id")
	}
	if r.Author == "" {
		fields = append(fields, "author")
	}
	if r.Content == "" {
		fields = append(fields, "content")
	}
	return fields
}

// ImportComments appends the comments in a JSON array as they are. Records
// missing an id, author or content are skipped and reported. Identifiers are
// not regenerated and existing comments are not checked for duplicates.
func (s *CommentService) ImportComments(data []byte) ImportResult {
	var records []importRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("invalid JSON: %v", err)}}
	}

	result := ImportResult{Errors: []string{}}
	imported := make([]*models.Comment, 0, len(records))
	for i, r := range records {
		if missing := r.missing(); len(missing) > 0 {
			result.Errors = append(result.Errors,
				fmt.Sprintf("comment %d: missing required fields: %s", i+1, strings.Join(missing, ", ")))
			continue
		}
		created := s.now().UTC()
		if r.CreatedAt != nil {
			created = *r.CreatedAt
		}
		imported = append(imported, &models.Comment{
			ID:        r.ID,
			PostID:    r.PostID,
			Author:    r.Author,
			Email:     r.Email,
			Content:   r.Content,
			CreatedAt: created,
			Approved:  r.Approved,
		})
	}

	if len(imported) > 0 {
		s.commit(func(cur []*models.Comment) []*models.Comment {
			return append(cloneSlice(cur), imported...)
		})
	}
	result.Success = len(imported)
	s.log.Info("Comments imported", logger.Int("imported", result.Success), logger.Int("rejected", len(result.Errors)))
	return result
}
