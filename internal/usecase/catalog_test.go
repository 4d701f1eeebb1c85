package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"flux-web/internal/catalog"
	"flux-web/internal/domain"
)

func serviceRecID(s domain.Service) string { return s.ID }
func projectID(p domain.Project) string    { return p.ID }

func newCatalog(t *testing.T, services *memStore[domain.Service], projects *memStore[domain.Project]) *CatalogService {
	t.Helper()
	s, err := NewCatalogService(services, projects, catalog.Default(), nil)
	require.NoError(t, err)
	return s
}

func TestCatalogService_FallsBackWhenEmptyOrFailing(t *testing.T) {
	defaults := catalog.Default()

	s := newCatalog(t, newMemStore(serviceRecID), newMemStore(projectID))
	require.Equal(t, defaults.Services, s.ListServices(context.Background()))
	require.Equal(t, defaults.Projects, s.ListProjects(context.Background()))
	require.Equal(t, len(defaults.Services), s.ServiceCount(context.Background()))

	services := newMemStore(serviceRecID)
	services.listErr = errStore
	projects := newMemStore(projectID)
	projects.listErr = errStore
	s = newCatalog(t, services, projects)
	require.Equal(t, defaults.Services, s.ListServices(context.Background()))
	require.Equal(t, defaults.Projects, s.FeaturedProjects(context.Background(), 0))
	require.Len(t, s.FeaturedProjects(context.Background(), 1), 1)
}

func TestCatalogService_StoredContentWins(t *testing.T) {
	projects := newMemStore(projectID,
		domain.Project{ID: "old", Title: "Old", Category: "web", Status: domain.ProjectCompleted, Featured: true, CreatedAt: testNow.Add(-time.Hour)},
		domain.Project{ID: "new", Title: "New", Category: "web", Status: domain.ProjectCompleted, Featured: true, CreatedAt: testNow},
		domain.Project{ID: "wip", Title: "WIP", Category: "mobile", Status: domain.ProjectInProgress, CreatedAt: testNow},
		domain.Project{ID: "plan", Title: "Plan", Category: "mobile", Status: domain.ProjectPlanning, Featured: true, CreatedAt: testNow},
	)
	services := newMemStore(serviceRecID, domain.Service{ID: "svc", Title: "Consulting"})
	s := newCatalog(t, services, projects)
	ctx := context.Background()

	require.Equal(t, []domain.Service{{ID: "svc", Title: "Consulting"}}, s.ListServices(ctx))
	require.Equal(t, 1, s.ServiceCount(ctx))

	featured := s.FeaturedProjects(ctx, 0)
	require.Len(t, featured, 2)
	require.Equal(t, "new", featured[0].ID)
	require.Equal(t, "old", featured[1].ID)

	mobile := s.ProjectsByCategory(ctx, "mobile")
	require.Len(t, mobile, 2)
	require.Empty(t, s.ProjectsByCategory(ctx, "games"), "an empty category is not replaced")

	require.Equal(t, ProjectStats{
		Total: 4, Completed: 2, InProgress: 1, Planning: 1,
		ByCategory: map[string]int{"web": 2, "mobile": 2},
	}, s.ProjectStats(ctx))
}

func TestCatalogService_CategoryAndStatsFallback(t *testing.T) {
	projects := newMemStore(projectID)
	projects.listErr = errStore
	s := newCatalog(t, newMemStore(serviceRecID), projects)

	web := s.ProjectsByCategory(context.Background(), "web")
	require.Len(t, web, 2)
	require.Empty(t, s.ProjectsByCategory(context.Background(), "games"))

	stats := s.ProjectStats(context.Background())
	require.Equal(t, 2, stats.Total)
	require.Equal(t, 2, stats.Completed)
	require.Equal(t, map[string]int{"web": 2}, stats.ByCategory)
}
