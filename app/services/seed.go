package services

import (
	"time"

	"portfolio/app/models"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := date(year, month, day)
	return &d
}

// seedSkills is the fallback skills collection, ordered by name.
func seedSkills() []models.Skill {
	return []models.Skill{
		{ID: "skill-1", Name: "AWS", Category: "Cloud", Proficiency: 80, YearsOfExperience: 4, Certifications: []string{"AWS Solutions Architect Associate"}, ProjectsCount: 9},
		{ID: "skill-2", Name: "Docker", Category: "DevOps", Proficiency: 85, YearsOfExperience: 5, Certifications: []string{}, ProjectsCount: 14},
		{ID: "skill-3", Name: "Git", Category: "Tools", Proficiency: 90, YearsOfExperience: 7, Certifications: []string{}, ProjectsCount: 30},
		{ID: "skill-4", Name: "Go", Category: "Backend", Proficiency: 88, YearsOfExperience: 4, Certifications: []string{}, ProjectsCount: 11},
		{ID: "skill-5", Name: "GraphQL", Category: "Backend", Proficiency: 70, YearsOfExperience: 2, Certifications: []string{}, ProjectsCount: 4},
		{ID: "skill-6", Name: "Kubernetes", Category: "DevOps", Proficiency: 75, YearsOfExperience: 3, Certifications: []string{"Certified Kubernetes Administrator"}, ProjectsCount: 7},
		{ID: "skill-7", Name: "Node.js", Category: "Backend", Proficiency: 82, YearsOfExperience: 5, Certifications: []string{}, ProjectsCount: 12},
		{ID: "skill-8", Name: "PostgreSQL", Category: "Database", Proficiency: 80, YearsOfExperience: 5, Certifications: []string{}, ProjectsCount: 13},
		{ID: "skill-9", Name: "React", Category: "Frontend", Proficiency: 85, YearsOfExperience: 5, Certifications: []string{}, ProjectsCount: 15},
		{ID: "skill-10", Name: "Redis", Category: "Database", Proficiency: 72, YearsOfExperience: 3, Certifications: []string{}, ProjectsCount: 6},
		{ID: "skill-11", Name: "Terraform", Category: "DevOps", Proficiency: 68, YearsOfExperience: 2, Certifications: []string{"HashiCorp Terraform Associate"}, ProjectsCount: 5},
		{ID: "skill-12", Name: "TypeScript", Category: "Frontend", Proficiency: 87, YearsOfExperience: 4, Certifications: []string{}, ProjectsCount: 16},
	}
}

// seedCertificates is the fallback certificates collection, newest first.
func seedCertificates() []models.Certificate {
	return []models.Certificate{
		{
			ID: "cert-1", Title: "HashiCorp Certified: Terraform Associate", Issuer: "HashiCorp",
			IssueDate: date(2024, time.March, 12), ExpiryDate: datePtr(2026, time.March, 12),
			Category: "DevOps", PDFURL: "/certificates/terraform-associate.pdf", ThumbnailURL: "/certificates/terraform-associate.png",
			Verified: true, VerificationURL: "https://www.credly.com/badges/terraform-associate", CredentialID: "HC-TA-88213",
		},
		{
			ID: "cert-2", Title: "Certified Kubernetes Administrator", Issuer: "Cloud Native Computing Foundation",
			IssueDate: date(2023, time.September, 4), ExpiryDate: datePtr(2026, time.September, 4),
			Category: "Cloud", PDFURL: "/certificates/cka.pdf", ThumbnailURL: "/certificates/cka.png",
			Verified: true, VerificationURL: "https://training.linuxfoundation.org/certification/verify", CredentialID: "LF-CKA-2309-0412",
		},
		{
			ID: "cert-3", Title: "AWS Certified Solutions Architect - Associate", Issuer: "Amazon Web Services",
			IssueDate: date(2023, time.February, 20), ExpiryDate: datePtr(2026, time.February, 20),
			Category: "Cloud", PDFURL: "/certificates/aws-saa.pdf", ThumbnailURL: "/certificates/aws-saa.png",
			Verified: true, VerificationURL: "https://aws.amazon.com/verification", CredentialID: "AWS-SAA-77120",
		},
		{
			ID: "cert-4", Title: "Professional Scrum Master I", Issuer: "Scrum.org",
			IssueDate: date(2022, time.June, 8),
			Category: "Management", PDFURL: "/certificates/psm-1.pdf", ThumbnailURL: "/certificates/psm-1.png",
			Verified: true, VerificationURL: "https://www.scrum.org/certificates", CredentialID: "PSM-I-559031",
		},
		{
			ID: "cert-5", Title: "Meta Front-End Developer", Issuer: "Coursera",
			IssueDate: date(2021, time.November, 15),
			Category: "Frontend", PDFURL: "/certificates/meta-frontend.pdf", ThumbnailURL: "/certificates/meta-frontend.png",
		},
	}
}

// seedProjects is the fallback projects collection, newest first. Three are featured.
func seedProjects() []models.Project {
	return []models.Project{
		{
			ID: "project-1", Title: "Cloud Cost Dashboard", Description: "Aggregates AWS billing exports into daily cost reports with anomaly alerts.",
			Technologies: []string{"Go", "PostgreSQL", "React", "AWS"}, GitHubURL: "https://github.com/portfolio/cloud-cost-dashboard",
			LiveURL: "https://costs.example.dev", ImageURL: "/images/projects/cloud-cost.jpg", Featured: true, CreatedAt: date(2025, time.May, 2),
		},
		{
			ID: "project-2", Title: "Realtime Chat", Description: "WebSocket chat with rooms, presence and message history.",
			Technologies: []string{"Node.js", "Redis", "TypeScript"}, GitHubURL: "https://github.com/portfolio/realtime-chat",
			ImageURL: "/images/projects/chat.jpg", Featured: true, CreatedAt: date(2025, time.January, 18),
		},
		{
			ID: "project-3", Title: "Kubernetes Operator for Backups", Description: "Schedules and verifies PostgreSQL backups from a custom resource.",
			Technologies: []string{"Go", "Kubernetes", "PostgreSQL"}, GitHubURL: "https://github.com/portfolio/backup-operator",
			ImageURL: "/images/projects/operator.jpg", Featured: true, CreatedAt: date(2024, time.October, 7),
		},
		{
			ID: "project-4", Title: "Recipe Finder", Description: "Search recipes by the ingredients already in your fridge.",
			Technologies: []string{"React", "GraphQL", "Node.js"}, GitHubURL: "https://github.com/portfolio/recipe-finder",
			LiveURL: "https://recipes.example.dev", ImageURL: "/images/projects/recipes.jpg", CreatedAt: date(2024, time.June, 21),
		},
		{
			ID: "project-5", Title: "Infrastructure Modules", Description: "Reusable Terraform modules for VPCs, clusters and databases.",
			Technologies: []string{"Terraform", "AWS"}, GitHubURL: "https://github.com/portfolio/infra-modules",
			ImageURL: "/images/placeholder-project.jpg", CreatedAt: date(2024, time.February, 11),
		},
		{
			ID: "project-6", Title: "Markdown Notes", Description: "Offline-first note taking app with full text search.",
			Technologies: []string{"TypeScript", "React"}, GitHubURL: "https://github.com/portfolio/markdown-notes",
			ImageURL: "/images/projects/notes.jpg", CreatedAt: date(2023, time.September, 30),
		},
		{
			ID: "project-7", Title: "CI Pipeline Templates", Description: "Shared build, test and deploy pipelines for container workloads.",
			Technologies: []string{"Docker", "Git", "Kubernetes"}, GitHubURL: "https://github.com/portfolio/ci-templates",
			ImageURL: "/images/placeholder-project.jpg", CreatedAt: date(2023, time.April, 14),
		},
		{
			ID: "project-8", Title: "URL Shortener", Description: "Tiny link shortener with click analytics.",
			Technologies: []string{"Go", "Redis"}, GitHubURL: "https://github.com/portfolio/shortener",
			LiveURL: "https://sho.example.dev", ImageURL: "/images/projects/shortener.jpg", CreatedAt: date(2022, time.December, 3),
		},
	}
}

// seedBlogPosts is the fallback blog collection, newest first. Three are featured.
func seedBlogPosts() []models.BlogPost {
	return []models.BlogPost{
		{
			ID: "post-1", Title: "Structuring Go Services for Testability", Author: "Portfolio Owner",
			Excerpt: "Interfaces at the edges, concrete types in the middle.",
			Content: "Small interfaces at the boundaries of a service make it easy to swap a database for an in-memory fake. " +
				"This post walks through repositories, services and handlers and how each layer is tested.",
			PublishDate: date(2025, time.June, 10), Tags: []string{"go", "testing", "architecture"}, Category: "Backend",
			ReadTime: 8, Featured: true,
		},
		{
			ID: "post-2", Title: "Zero Downtime Deploys on Kubernetes", Author: "Portfolio Owner",
			Excerpt: "Readiness probes, surge settings and graceful shutdown.",
			Content: "Rolling updates only stay invisible to users when pods drain connections before exiting. " +
				"We look at probes, preStop hooks and the shutdown path of a Go HTTP server.",
			PublishDate: date(2025, time.April, 22), Tags: []string{"kubernetes", "devops", "go"}, Category: "DevOps",
			ReadTime: 6, Featured: true,
		},
		{
			ID: "post-3", Title: "Caching Strategies with Redis", Author: "Portfolio Owner",
			Excerpt: "Cache-aside, write-through and when not to cache at all.",
			Content: "A cache is a second source of truth that can go stale. " +
				"This article compares cache-aside and write-through and shows how to pick expiry times.",
			PublishDate: date(2025, time.February, 3), Tags: []string{"redis", "architecture", "performance"}, Category: "Backend",
			ReadTime: 7, Featured: true,
		},
		{
			ID: "post-4", Title: "Typed Forms in React", Author: "Portfolio Owner",
			Excerpt: "Letting TypeScript catch form bugs before users do.",
			Content: "Form state is where most frontend bugs hide. Typed schemas keep validation and rendering in sync.",
			PublishDate: date(2024, time.November, 19), Tags: []string{"react", "typescript", "frontend"}, Category: "Frontend",
			ReadTime: 5,
		},
		{
			ID: "post-5", Title: "Terraform State Without Tears", Author: "Portfolio Owner",
			Excerpt: "Remote state, locking and splitting large stacks.",
			Content: "Terraform state files grow with every resource. Remote backends with locking and smaller stacks keep plans fast.",
			PublishDate: date(2024, time.August, 5), Tags: []string{"terraform", "devops", "aws"}, Category: "DevOps",
			ReadTime: 6,
		},
		{
			ID: "post-6", Title: "Indexing PostgreSQL for Read Heavy APIs", Author: "Portfolio Owner",
			Excerpt: "Reading query plans and choosing the right index.",
			Content: "EXPLAIN ANALYZE tells you where time goes. Partial and covering indexes often beat adding more hardware.",
			PublishDate: date(2024, time.May, 28), Tags: []string{"postgresql", "performance", "database"}, Category: "Database",
			ReadTime: 9,
		},
	}
}
