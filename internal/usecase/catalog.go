package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"flux-web/internal/catalog"
	"flux-web/internal/domain"
)

const (
	defaultFeaturedLimit = 4
	catalogListLimit     = 50
)

// CatalogService serves the marketing site's services and projects. It never
// fails: store errors and empty tables fall back to the built-in catalog.
type CatalogService struct {
	services Store[domain.Service]
	projects Store[domain.Project]
	defaults catalog.Catalog
	logger   *slog.Logger
}

type ProjectStats struct {
	Total      int            `json:"total"`
	Completed  int            `json:"completed"`
	InProgress int            `json:"inProgress"`
	Planning   int            `json:"planning"`
	ByCategory map[string]int `json:"byCategory"`
}

func NewCatalogService(services Store[domain.Service], projects Store[domain.Project], defaults catalog.Catalog, logger *slog.Logger) (*CatalogService, error) {
	if services == nil || projects == nil {
		return nil, errors.New("usecase: catalog stores must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogService{services: services, projects: projects, defaults: defaults, logger: logger}, nil
}

// ListServices returns up to 50 services, newest first.
func (s *CatalogService) ListServices(ctx context.Context) []domain.Service {
	services, err := s.services.List(ctx, nil)
	if err != nil {
		s.logger.WarnContext(ctx, "error fetching services, using fallback data", "err", err)
		return s.defaultServices()
	}
	if len(services) == 0 {
		s.logger.WarnContext(ctx, "no services found, using fallback data")
		return s.defaultServices()
	}
	sort.SliceStable(services, func(i, j int) bool { return services[i].CreatedAt.After(services[j].CreatedAt) })
	return services[:min(len(services), catalogListLimit)]
}

// ListProjects returns up to 50 projects, newest first.
func (s *CatalogService) ListProjects(ctx context.Context) []domain.Project {
	projects, ok := s.loadProjects(ctx, nil, "projects")
	if !ok {
		return s.defaultProjects()
	}
	return projects[:min(len(projects), catalogListLimit)]
}

// FeaturedProjects returns up to limit completed, featured projects, newest
// first. limit <= 0 selects 4.
func (s *CatalogService) FeaturedProjects(ctx context.Context, limit int) []domain.Project {
	if limit <= 0 {
		limit = defaultFeaturedLimit
	}
	projects, ok := s.loadProjects(ctx, domain.Where{
		"status":   domain.ProjectCompleted,
		"featured": true,
	}, "featured projects")
	if !ok {
		projects = s.defaultProjects()
	}
	return projects[:min(len(projects), limit)]
}

// ProjectsByCategory returns the projects of one category, newest first. An
// empty result is not replaced by the fallback.
func (s *CatalogService) ProjectsByCategory(ctx context.Context, category string) []domain.Project {
	projects, err := s.projects.List(ctx, domain.Where{"category": category})
	if err != nil {
		s.logger.WarnContext(ctx, "error fetching projects by category, using fallback data", "category", category, "err", err)
		out := make([]domain.Project, 0)
		for _, p := range s.defaultProjects() {
			if p.Category == category {
				out = append(out, p)
			}
		}
		return out
	}
	sortProjects(projects)
	return projects
}

// ProjectStats counts projects by status and category.
func (s *CatalogService) ProjectStats(ctx context.Context) ProjectStats {
	projects, err := s.projects.List(ctx, nil)
	if err != nil {
		s.logger.WarnContext(ctx, "error fetching project stats, using fallback", "err", err)
		projects = nil
	}
	if len(projects) == 0 {
		projects = s.defaultProjects()
	}

	stats := ProjectStats{Total: len(projects), ByCategory: make(map[string]int)}
	for _, p := range projects {
		switch p.Status {
		case domain.ProjectCompleted:
			stats.Completed++
		case domain.ProjectInProgress:
			stats.InProgress++
		case domain.ProjectPlanning:
			stats.Planning++
		}
		stats.ByCategory[p.Category]++
	}
	return stats
}

// ServiceCount returns the number of services shown on the site.
func (s *CatalogService) ServiceCount(ctx context.Context) int {
	return len(s.ListServices(ctx))
}

func (s *CatalogService) loadProjects(ctx context.Context, where domain.Where, what string) ([]domain.Project, bool) {
	projects, err := s.projects.List(ctx, where)
	if err != nil {
		s.logger.WarnContext(ctx, "error fetching "+what+", using fallback data", "err", err)
		return nil, false
	}
	if len(projects) == 0 {
		s.logger.WarnContext(ctx, "no "+what+" found, using fallback data")
		return nil, false
	}
	sortProjects(projects)
	return projects, true
}

func (s *CatalogService) defaultServices() []domain.Service {
	return append([]domain.Service(nil), s.defaults.Services...)
}

func (s *CatalogService) defaultProjects() []domain.Project {
	return append([]domain.Project(nil), s.defaults.Projects...)
}

func sortProjects(projects []domain.Project) {
	sort.SliceStable(projects, func(i, j int) bool { return projects[i].CreatedAt.After(projects[j].CreatedAt) })
}
