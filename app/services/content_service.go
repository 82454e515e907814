package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"portfolio/app/logger"
	"portfolio/app/metrics"
	"portfolio/app/models"
	"portfolio/app/repositories"
	"portfolio/app/state"

	"golang.org/x/sync/errgroup"
)

// LoadSource tells where the current content came from.
type LoadSource string

const (
	SourceNone   LoadSource = "none"
	SourceRemote LoadSource = "remote"
	SourceSeed   LoadSource = "seed"
)

const (
	// DefaultLoadTimeout bounds LoadAll when no timeout is configured.
	DefaultLoadTimeout = 10 * time.Second
	// DefaultExpiryWindowDays is the look-ahead used for expiring certificates.
	DefaultExpiryWindowDays = 30
	// DefaultRelatedLimit is the number of related posts returned by default.
	DefaultRelatedLimit = 3
)

// ContentStats summarises the loaded collections.
type ContentStats struct {
	Skills            int        `json:"skills"`
	Certificates      int        `json:"certificates"`
	Projects          int        `json:"projects"`
	BlogPosts         int        `json:"blogPosts"`
	FeaturedProjects  int        `json:"featuredProjects"`
	FeaturedBlogPosts int        `json:"featuredBlogPosts"`
	Source            LoadSource `json:"source"`
	LoadedAt          time.Time  `json:"loadedAt"`
}

// ContentService owns the skills, certificates, projects and blog posts shown
// on the site. Collections are replaced wholesale; getters return copies.
type ContentService struct {
	gateway     repositories.ContentGateway
	log         logger.Logger
	metrics     *metrics.Metrics
	loadTimeout time.Duration
	now         func() time.Time

	skills            *state.Store[[]models.Skill]
	certificates      *state.Store[[]models.Certificate]
	projects          *state.Store[[]models.Project]
	blogPosts         *state.Store[[]models.BlogPost]
	featuredProjects  *state.Store[[]models.Project]
	featuredBlogPosts *state.Store[[]models.BlogPost]

	mu       sync.RWMutex
	source   LoadSource
	loadedAt time.Time
}

// ContentOption configures a ContentService.
type ContentOption func(*ContentService)

func WithContentLogger(l logger.Logger) ContentOption {
	return func(s *ContentService) { s.log = l }
}

func WithContentMetrics(m *metrics.Metrics) ContentOption {
	return func(s *ContentService) { s.metrics = m }
}

// WithLoadTimeout bounds LoadAll. Non-positive values keep the default.
func WithLoadTimeout(d time.Duration) ContentOption {
	return func(s *ContentService) {
		if d > 0 {
			s.loadTimeout = d
		}
	}
}

// WithContentClock overrides time.Now, for tests.
func WithContentClock(now func() time.Time) ContentOption {
	return func(s *ContentService) { s.now = now }
}

// NewContentService creates a ContentService with empty collections. A nil
// gateway means content always comes from seed data.
func NewContentService(gateway repositories.ContentGateway, opts ...ContentOption) *ContentService {
	s := &ContentService{
		gateway:      gateway,
		log:          logger.NewNop(),
		loadTimeout:  DefaultLoadTimeout,
		now:          time.Now,
		skills:       state.New([]models.Skill{}),
		certificates: state.New([]models.Certificate{}),
		projects:     state.New([]models.Project{}),
		blogPosts:    state.New([]models.BlogPost{}),
		source:       SourceNone,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.featuredProjects = state.Derive(s.projects, featured(func(p models.Project) bool { return p.Featured }))
	s.featuredBlogPosts = state.Derive(s.blogPosts, featured(func(p models.BlogPost) bool { return p.Featured }))
	return s
}

func featured[T any](keep func(T) bool) func([]T) []T {
	return func(all []T) []T {
		return filter(all, keep)
	}
}

func filter[T any](all []T, keep func(T) bool) []T {
	out := make([]T, 0, len(all))
	for _, v := range all {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// LoadAll fetches every collection from the gateway concurrently. If any fetch
// fails or the timeout passes, all results are discarded and seed data is
// installed instead. LoadAll stops waiting at the timeout even when a gateway
// ignores cancellation; such fetches finish in the background and are dropped.
func (s *ContentService) LoadAll(ctx context.Context) LoadSource {
	if s.gateway == nil {
		s.log.Info("No content gateway configured, using seed data")
		s.loadSeed()
		return s.finishLoad(SourceSeed)
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, s.loadTimeout)
	defer cancel()

	var (
		skills       []models.Skill
		certificates []models.Certificate
		projects     []models.Project
		blogPosts    []models.BlogPost
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		skills, err = s.gateway.FetchSkills(gctx)
		return err
	})
	g.Go(func() (err error) {
		certificates, err = s.gateway.FetchCertificates(gctx)
		return err
	})
	g.Go(func() (err error) {
		projects, err = s.gateway.FetchProjects(gctx)
		return err
	})
	g.Go(func() (err error) {
		blogPosts, err = s.gateway.FetchBlogPosts(gctx)
		return err
	})

	waitErr := make(chan error, 1)
	go func() { waitErr <- g.Wait() }()

	var err error
	select {
	case err = <-waitErr:
	case <-ctx.Done():
		err = ctx.Err()
	}
	if err != nil {
		s.log.Warn("Failed to load content, falling back to seed data",
			logger.Error(err),
			logger.Duration("elapsed", time.Since(start)),
		)
		s.loadSeed()
		return s.finishLoad(SourceSeed)
	}

	s.skills.Set(orEmpty(skills))
	s.certificates.Set(orEmpty(certificates))
	s.projects.Set(orEmpty(projects))
	s.blogPosts.Set(orEmpty(blogPosts))

	s.log.Info("Content loaded",
		logger.Int("skills", len(skills)),
		logger.Int("certificates", len(certificates)),
		logger.Int("projects", len(projects)),
		logger.Int("blog_posts", len(blogPosts)),
		logger.Duration("elapsed", time.Since(start)),
	)
	return s.finishLoad(SourceRemote)
}

func (s *ContentService) loadSeed() {
	s.skills.Set(seedSkills())
	s.certificates.Set(seedCertificates())
	s.projects.Set(seedProjects())
	s.blogPosts.Set(seedBlogPosts())
}

func (s *ContentService) finishLoad(source LoadSource) LoadSource {
	s.mu.Lock()
	s.source = source
	s.loadedAt = s.now()
	s.mu.Unlock()
	s.metrics.RecordContentLoad(string(source))
	return source
}

func orEmpty[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}

func (s *ContentService) Skills() []models.Skill             { return slices.Clone(s.skills.Get()) }
func (s *ContentService) Certificates() []models.Certificate { return slices.Clone(s.certificates.Get()) }
func (s *ContentService) Projects() []models.Project         { return slices.Clone(s.projects.Get()) }
func (s *ContentService) BlogPosts() []models.BlogPost       { return slices.Clone(s.blogPosts.Get()) }

// FeaturedProjects returns the projects flagged as featured.
func (s *ContentService) FeaturedProjects() []models.Project {
	return slices.Clone(s.featuredProjects.Get())
}

// FeaturedBlogPosts returns the blog posts flagged as featured.
func (s *ContentService) FeaturedBlogPosts() []models.BlogPost {
	return slices.Clone(s.featuredBlogPosts.Get())
}

func (s *ContentService) SetSkills(v []models.Skill) { s.skills.Set(orEmpty(slices.Clone(v))) }
func (s *ContentService) SetCertificates(v []models.Certificate) {
	s.certificates.Set(orEmpty(slices.Clone(v)))
}
func (s *ContentService) SetProjects(v []models.Project)   { s.projects.Set(orEmpty(slices.Clone(v))) }
func (s *ContentService) SetBlogPosts(v []models.BlogPost) { s.blogPosts.Set(orEmpty(slices.Clone(v))) }

// Subscribers receive the new snapshot after every change and must not modify it.

func (s *ContentService) SubscribeSkills(fn func([]models.Skill)) func() {
	return s.skills.Subscribe(fn)
}

func (s *ContentService) SubscribeCertificates(fn func([]models.Certificate)) func() {
	return s.certificates.Subscribe(fn)
}

func (s *ContentService) SubscribeProjects(fn func([]models.Project)) func() {
	return s.projects.Subscribe(fn)
}

func (s *ContentService) SubscribeBlogPosts(fn func([]models.BlogPost)) func() {
	return s.blogPosts.Subscribe(fn)
}

func (s *ContentService) SubscribeFeaturedProjects(fn func([]models.Project)) func() {
	return s.featuredProjects.Subscribe(fn)
}

func (s *ContentService) SubscribeFeaturedBlogPosts(fn func([]models.BlogPost)) func() {
	return s.featuredBlogPosts.Subscribe(fn)
}

// BlogPost returns the post with the given id.
func (s *ContentService) BlogPost(id string) (models.BlogPost, error) {
	for _, p := range s.blogPosts.Get() {
		if p.ID == id {
			return p, nil
		}
	}
	return models.BlogPost{}, fmt.Errorf("blog post %q: %w", id, repositories.ErrNotFound)
}

func contains(field, query string) bool {
	return strings.Contains(strings.ToLower(field), query)
}

func anyContains(fields []string, query string) bool {
	return slices.ContainsFunc(fields, func(f string) bool { return contains(f, query) })
}

// SearchSkills matches query against name or category, ignoring case.
func (s *ContentService) SearchSkills(query string) []models.Skill {
	q := strings.ToLower(query)
	return filter(s.skills.Get(), func(sk models.Skill) bool {
		return contains(sk.Name, q) || contains(sk.Category, q)
	})
}

// SearchCertificates matches query against title or issuer, ignoring case.
func (s *ContentService) SearchCertificates(query string) []models.Certificate {
	q := strings.ToLower(query)
	return filter(s.certificates.Get(), func(c models.Certificate) bool {
		return contains(c.Title, q) || contains(c.Issuer, q)
	})
}

// SearchProjects matches query against title, description or any technology.
func (s *ContentService) SearchProjects(query string) []models.Project {
	q := strings.ToLower(query)
	return filter(s.projects.Get(), func(p models.Project) bool {
		return contains(p.Title, q) || contains(p.Description, q) || anyContains(p.Technologies, q)
	})
}

// SearchBlogPosts matches query against title, content or any tag.
func (s *ContentService) SearchBlogPosts(query string) []models.BlogPost {
	q := strings.ToLower(query)
	return filter(s.blogPosts.Get(), func(p models.BlogPost) bool {
		return contains(p.Title, q) || contains(p.Content, q) || anyContains(p.Tags, q)
	})
}

func (s *ContentService) SkillsByCategory(category string) []models.Skill {
	return filter(s.skills.Get(), func(sk models.Skill) bool { return sk.Category == category })
}

func (s *ContentService) CertificatesByCategory(category string) []models.Certificate {
	return filter(s.certificates.Get(), func(c models.Certificate) bool { return c.Category == category })
}

func (s *ContentService) BlogPostsByCategory(category string) []models.BlogPost {
	return filter(s.blogPosts.Get(), func(p models.BlogPost) bool { return p.Category == category })
}

// ExpiringCertificates returns certificates whose expiry date falls on or
// before now plus days. Certificates without an expiry date never match.
func (s *ContentService) ExpiringCertificates(days int) []models.Certificate {
	deadline := s.now().AddDate(0, 0, days)
	return filter(s.certificates.Get(), func(c models.Certificate) bool { return c.ExpiresBy(deadline) })
}

// RelatedPosts ranks the other posts by shared tags plus one for a matching
// category and returns the best limit of them. Equal scores keep collection
// order. An unknown postID yields no posts.
func (s *ContentService) RelatedPosts(postID string, limit int) []models.BlogPost {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}

	posts := s.blogPosts.Get()
	idx := slices.IndexFunc(posts, func(p models.BlogPost) bool { return p.ID == postID })
	if idx < 0 {
		return []models.BlogPost{}
	}
	source := posts[idx]

	type scored struct {
		post  models.BlogPost
		score int
	}
	candidates := make([]scored, 0, len(posts)-1)
	for _, p := range posts {
		if p.ID == postID {
			continue
		}
		score := source.SharedTags(&p)
		if p.Category == source.Category {
			score++
		}
		candidates = append(candidates, scored{post: p, score: score})
	}
	slices.SortStableFunc(candidates, func(a, b scored) int { return b.score - a.score })

	out := make([]models.BlogPost, 0, min(limit, len(candidates)))
	for _, c := range candidates[:min(limit, len(candidates))] {
		out = append(out, c.post)
	}
	return out
}

// CalculateReadingTime estimates minutes to read content at 200 words per minute.
func (s *ContentService) CalculateReadingTime(content string) int {
	return models.ReadingTime(content)
}

// BulkUpdateCertificates merges each update over the certificate with the same
// ID and replaces the collection in one step. Unmatched updates are ignored.
func (s *ContentService) BulkUpdateCertificates(updates []models.CertificateUpdate) []models.Certificate {
	byID := make(map[string]models.CertificateUpdate, len(updates))
	for _, u := range updates {
		byID[u.ID] = u
	}
	next := s.certificates.Update(func(cur []models.Certificate) []models.Certificate {
		out := make([]models.Certificate, len(cur))
		for i, c := range cur {
			if u, ok := byID[c.ID]; ok {
				c = c.Apply(u)
				if err := c.Validate(); err != nil {
					s.log.Warn("Certificate update applied with invalid fields",
						logger.String("id", c.ID), logger.Error(err))
				}
			}
			out[i] = c
		}
		return out
	})
	return slices.Clone(next)
}

// BulkUpdateBlogPosts merges each update over the post with the same ID and
// replaces the collection in one step. Unmatched updates are ignored.
func (s *ContentService) BulkUpdateBlogPosts(updates []models.BlogPostUpdate) []models.BlogPost {
	byID := make(map[string]models.BlogPostUpdate, len(updates))
	for _, u := range updates {
		byID[u.ID] = u
	}
	next := s.blogPosts.Update(func(cur []models.BlogPost) []models.BlogPost {
		out := make([]models.BlogPost, len(cur))
		for i, p := range cur {
			if u, ok := byID[p.ID]; ok {
				p = p.Apply(u)
			}
			out[i] = p
		}
		return out
	})
	return slices.Clone(next)
}

// SkillCategories returns the distinct skill categories, sorted.
func (s *ContentService) SkillCategories() []string {
	return distinct(s.skills.Get(), func(sk models.Skill) []string { return []string{sk.Category} })
}

// BlogCategories returns the distinct blog categories, sorted.
func (s *ContentService) BlogCategories() []string {
	return distinct(s.blogPosts.Get(), func(p models.BlogPost) []string { return []string{p.Category} })
}

// AllTags returns every blog tag once, sorted.
func (s *ContentService) AllTags() []string {
	return distinct(s.blogPosts.Get(), func(p models.BlogPost) []string { return p.Tags })
}

func distinct[T any](all []T, values func(T) []string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, v := range all {
		for _, s := range values(v) {
			if s == "" {
				continue
			}
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	slices.Sort(out)
	return out
}

// Stats reports collection sizes and where they were loaded from.
func (s *ContentService) Stats() ContentStats {
	s.mu.RLock()
	source, loadedAt := s.source, s.loadedAt
	s.mu.RUnlock()

	return ContentStats{
		Skills:            len(s.skills.Get()),
		Certificates:      len(s.certificates.Get()),
		Projects:          len(s.projects.Get()),
		BlogPosts:         len(s.blogPosts.Get()),
		FeaturedProjects:  len(s.featuredProjects.Get()),
		FeaturedBlogPosts: len(s.featuredBlogPosts.Get()),
		Source:            source,
		LoadedAt:          loadedAt,
	}
}
