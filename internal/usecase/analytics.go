package usecase

import (
	"context"
	"errors"
	"sort"

	"golang.org/x/sync/errgroup"

	"flux-web/internal/domain"
)

type AnalyticsService struct {
	expos     Store[domain.Expo]
	booths    Store[domain.Booth]
	sessions  Store[domain.Session]
	apps      Store[domain.Application]
	expoRegs  Store[domain.ExpoRegistration]
	attendees Store[domain.Profile]
}

type Totals struct {
	Expos               int `json:"total_expos"`
	Booths              int `json:"total_booths"`
	Attendees           int `json:"total_attendees"`
	Applications        int `json:"total_applications"`
	PendingApplications int `json:"pending_applications"`
}

type ExpoStats struct {
	ExpoID         string            `json:"expo_id"`
	Title          string            `json:"title"`
	Status         domain.ExpoStatus `json:"status"`
	Registrations  int               `json:"registrations"`
	Sessions       int               `json:"sessions"`
	Booths         int               `json:"booths"`
	OccupiedBooths int               `json:"occupied_booths"`
	Applications   int               `json:"applications"`
}

type Analytics struct {
	Totals Totals      `json:"totals"`
	Expos  []ExpoStats `json:"expos"`
}

func NewAnalyticsService(
	expos Store[domain.Expo],
	booths Store[domain.Booth],
	sessions Store[domain.Session],
	apps Store[domain.Application],
	expoRegs Store[domain.ExpoRegistration],
	profiles Store[domain.Profile],
) (*AnalyticsService, error) {
	if expos == nil || booths == nil || sessions == nil || apps == nil || expoRegs == nil || profiles == nil {
		return nil, errors.New("usecase: analytics stores must not be nil")
	}
	return &AnalyticsService{
		expos:     expos,
		booths:    booths,
		sessions:  sessions,
		apps:      apps,
		expoRegs:  expoRegs,
		attendees: profiles,
	}, nil
}

// Overview loads every table concurrently and aggregates totals and per-expo
// stats. Expo stats follow f and are ordered by title.
func (s *AnalyticsService) Overview(ctx context.Context, f ExpoFilter) (Analytics, error) {
	var (
		expos     []domain.Expo
		booths    []domain.Booth
		sessions  []domain.Session
		apps      []domain.Application
		regs      []domain.ExpoRegistration
		attendees []domain.Profile
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { expos, err = s.expos.List(gctx, nil); return err })
	g.Go(func() (err error) { booths, err = s.booths.List(gctx, nil); return err })
	g.Go(func() (err error) { sessions, err = s.sessions.List(gctx, nil); return err })
	g.Go(func() (err error) { apps, err = s.apps.List(gctx, nil); return err })
	g.Go(func() (err error) { regs, err = s.expoRegs.List(gctx, nil); return err })
	g.Go(func() (err error) {
		attendees, err = s.attendees.List(gctx, domain.Where{"role": domain.RoleAttendee})
		return err
	})
	if err := g.Wait(); err != nil {
		return Analytics{}, storeError("analytics", err)
	}

	out := Analytics{Totals: Totals{
		Expos:        len(expos),
		Booths:       len(booths),
		Attendees:    len(attendees),
		Applications: len(apps),
	}}

	stats := make(map[string]*ExpoStats, len(expos))
	for _, e := range expos {
		stats[e.ID] = &ExpoStats{ExpoID: e.ID, Title: e.Title, Status: e.Status}
	}
	for _, b := range booths {
		if st, ok := stats[b.ExpoID]; ok {
			st.Booths++
			if b.Status == domain.BoothOccupied {
				st.OccupiedBooths++
			}
		}
	}
	for _, sess := range sessions {
		if st, ok := stats[sess.ExpoID]; ok {
			st.Sessions++
		}
	}
	for _, a := range apps {
		if a.Status == domain.ApplicationPending {
			out.Totals.PendingApplications++
		}
		if st, ok := stats[a.ExpoID]; ok {
			st.Applications++
		}
	}
	for _, r := range regs {
		if st, ok := stats[r.ExpoID]; ok {
			st.Registrations++
		}
	}

	out.Expos = make([]ExpoStats, 0, len(stats))
	for _, e := range expos {
		if f.Status != "" && e.Status != f.Status {
			continue
		}
		if !matchesSearch(f.Search, e.Title) {
			continue
		}
		out.Expos = append(out.Expos, *stats[e.ID])
	}
	sort.SliceStable(out.Expos, func(i, j int) bool { return out.Expos[i].Title < out.Expos[j].Title })
	return out, nil
}
