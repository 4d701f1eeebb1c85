package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"flux-web/internal/domain"
)

func expoID(e domain.Expo) string          { return e.ID }
func boothID(b domain.Booth) string        { return b.ID }
func sessionRecID(s domain.Session) string { return s.ID }

func validExpo() domain.Expo {
	return domain.Expo{
		Title:     "Global Tech Expo",
		Theme:     "AI",
		Location:  "Berlin",
		StartDate: "2026-09-01",
		EndDate:   "2026-09-03",
	}
}

func TestExpoService_CreateDefaultsToDraft(t *testing.T) {
	pinClock(t)
	store := newMemStore(expoID)
	s, err := NewExpoService(store)
	require.NoError(t, err)

	e := validExpo()
	e.CreatedBy = "admin-1"
	created, err := s.Create(context.Background(), e)
	require.NoError(t, err)
	require.Equal(t, "id-1", created.ID)
	require.Equal(t, domain.ExpoDraft, created.Status)
	require.Equal(t, testNow, created.CreatedAt)
	require.Equal(t, testNow, created.UpdatedAt)
	require.Equal(t, "admin-1", created.CreatedBy)
}

func TestExpoService_CreateValidates(t *testing.T) {
	s, err := NewExpoService(newMemStore(expoID))
	require.NoError(t, err)

	cases := []struct {
		name  string
		edit  func(*domain.Expo)
		field string
	}{
		{name: "title", edit: func(e *domain.Expo) { e.Title = " " }, field: "title"},
		{name: "date format", edit: func(e *domain.Expo) { e.StartDate = "01/09/2026" }, field: "start_date"},
		{name: "status", edit: func(e *domain.Expo) { e.Status = "archived" }, field: "status"},
		{name: "end before start", edit: func(e *domain.Expo) { e.EndDate = "2026-08-31" }, field: "end_date"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := validExpo()
			tc.edit(&e)
			_, err := s.Create(context.Background(), e)
			requireCode(t, err, ErrorInvalidInput)
			var fields FieldErrors
			require.ErrorAs(t, err, &fields)
			require.Contains(t, fields, tc.field)
		})
	}
}

func TestExpoService_ListFiltersAndSorts(t *testing.T) {
	store := newMemStore(expoID,
		domain.Expo{ID: "a", Title: "Old Fair", Location: "Paris", Status: domain.ExpoPublished, CreatedAt: testNow.Add(-time.Hour)},
		domain.Expo{ID: "b", Title: "New Fair", Location: "Berlin", Status: domain.ExpoPublished, CreatedAt: testNow},
		domain.Expo{ID: "c", Title: "Draft Fair", Theme: "Berlin design", Status: domain.ExpoDraft, CreatedAt: testNow},
	)
	s, err := NewExpoService(store)
	require.NoError(t, err)

	all, err := s.List(context.Background(), ExpoFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)

	published, err := s.List(context.Background(), ExpoFilter{Status: domain.ExpoPublished})
	require.NoError(t, err)
	require.Equal(t, []string{"b", "a"}, expoIDs(published))
	require.Equal(t, domain.Where{"status": domain.ExpoPublished}, store.wheres[1])

	berlin, err := s.List(context.Background(), ExpoFilter{Search: "berlin"})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"b", "c"}, expoIDs(berlin))
}

func TestExpoService_UpdateGetDelete(t *testing.T) {
	pinClock(t)
	store := newMemStore(expoID, domain.Expo{ID: "e1", Title: "Old", Status: domain.ExpoDraft})
	s, err := NewExpoService(store)
	require.NoError(t, err)

	e := validExpo()
	e.Status = domain.ExpoPublished
	updated, err := s.Update(context.Background(), "e1", e)
	require.NoError(t, err)
	require.Equal(t, "Global Tech Expo", updated.Title)
	require.Equal(t, domain.ExpoPublished, updated.Status)
	require.Equal(t, testNow, updated.UpdatedAt)

	got, err := s.Get(context.Background(), "e1")
	require.NoError(t, err)
	require.Equal(t, updated, got)

	require.NoError(t, s.Delete(context.Background(), "e1"))
	_, err = s.Get(context.Background(), "e1")
	requireCode(t, err, ErrorNotFound)

	err = s.Delete(context.Background(), "e1")
	requireCode(t, err, ErrorNotFound)
	_, err = s.Update(context.Background(), "missing", validExpo())
	requireCode(t, err, ErrorNotFound)
	_, err = s.Get(context.Background(), "")
	requireCode(t, err, ErrorInvalidInput)
}

func TestExpoService_StoreErrors(t *testing.T) {
	store := newMemStore(expoID)
	store.listErr = errStore
	s, err := NewExpoService(store)
	require.NoError(t, err)
	_, err = s.List(context.Background(), ExpoFilter{})
	require.Equal(t, "expo_list_error", requireCode(t, err, ErrorInternal).Reason)
}

func TestBoothService_ListOrdersByNumber(t *testing.T) {
	store := newMemStore(boothID,
		domain.Booth{ID: "1", ExpoID: "e1", BoothNumber: "B2", Size: domain.BoothSmall, Status: domain.BoothAvailable},
		domain.Booth{ID: "2", ExpoID: "e1", BoothNumber: "A1", Size: domain.BoothLarge, Status: domain.BoothOccupied},
		domain.Booth{ID: "3", ExpoID: "e1", BoothNumber: "A2", Size: domain.BoothSmall, Status: domain.BoothAvailable},
		domain.Booth{ID: "4", ExpoID: "e2", BoothNumber: "A0", Size: domain.BoothSmall, Status: domain.BoothAvailable},
	)
	s, err := NewBoothService(store)
	require.NoError(t, err)

	booths, err := s.List(context.Background(), "e1", BoothFilter{})
	require.NoError(t, err)
	require.Equal(t, []string{"A1", "A2", "B2"}, boothNumbers(booths))

	booths, err = s.List(context.Background(), "e1", BoothFilter{Search: "a"})
	require.NoError(t, err)
	require.Equal(t, []string{"A1", "A2"}, boothNumbers(booths))

	free, err := s.Available(context.Background(), "e1", domain.BoothSmall)
	require.NoError(t, err)
	require.Equal(t, []string{"A2", "B2"}, boothNumbers(free))

	_, err = s.List(context.Background(), "", BoothFilter{})
	requireCode(t, err, ErrorInvalidInput)
}

func TestBoothService_CreateUpdateDelete(t *testing.T) {
	pinClock(t)
	store := newMemStore(boothID)
	s, err := NewBoothService(store)
	require.NoError(t, err)

	created, err := s.Create(context.Background(), domain.Booth{
		ExpoID: "e1", BoothNumber: "C3", Size: domain.BoothMedium, Price: 500,
		Status: domain.BoothOccupied, ExhibitorID: "sneaky",
	})
	require.NoError(t, err)
	require.Equal(t, domain.BoothAvailable, created.Status)
	require.Empty(t, created.ExhibitorID)

	_, err = s.Create(context.Background(), domain.Booth{ExpoID: "e1", BoothNumber: "C4", Size: "huge"})
	requireCode(t, err, ErrorInvalidInput)

	updated, err := s.Update(context.Background(), created.ID, BoothUpdate{BoothNumber: "C9", Size: domain.BoothLarge, Price: 750})
	require.NoError(t, err)
	require.Equal(t, "C9", updated.BoothNumber)
	require.Equal(t, 750.0, updated.Price)
	require.Equal(t, domain.Fields{"booth_number": "C9", "size": domain.BoothLarge, "price": 750.0}, store.lastFields)

	_, err = s.Update(context.Background(), created.ID, BoothUpdate{BoothNumber: "C9", Size: domain.BoothLarge, Price: -1})
	requireCode(t, err, ErrorInvalidInput)

	require.NoError(t, s.Delete(context.Background(), created.ID))
	require.Zero(t, store.len())
}

func TestSessionService(t *testing.T) {
	pinClock(t)
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	store := newMemStore(sessionRecID,
		domain.Session{ID: "late", ExpoID: "e1", Title: "Closing", SpeakerName: "Grace", Location: "Hall A", StartTime: start.Add(5 * time.Hour), EndTime: start.Add(6 * time.Hour), Capacity: 50},
		domain.Session{ID: "early", ExpoID: "e1", Title: "Keynote", SpeakerName: "Ada", Location: "Hall B", StartTime: start, EndTime: start.Add(time.Hour), Capacity: 200},
	)
	s, err := NewSessionService(store)
	require.NoError(t, err)

	sessions, err := s.List(context.Background(), "e1", SessionFilter{})
	require.NoError(t, err)
	require.Equal(t, "early", sessions[0].ID)
	require.Equal(t, "late", sessions[1].ID)

	sessions, err = s.List(context.Background(), "e1", SessionFilter{Search: "grace"})
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	sessions, err = s.List(context.Background(), "e1", SessionFilter{Location: "Hall B"})
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	require.Equal(t, "early", sessions[0].ID)

	bad := domain.Session{ExpoID: "e1", Title: "Backwards", StartTime: start, EndTime: start.Add(-time.Minute), Capacity: 10}
	_, err = s.Create(context.Background(), bad)
	requireCode(t, err, ErrorInvalidInput)
	var fields FieldErrors
	require.ErrorAs(t, err, &fields)
	require.Contains(t, fields, "end_time")

	bad.EndTime = start.Add(time.Hour)
	bad.Capacity = 0
	_, err = s.Create(context.Background(), bad)
	requireCode(t, err, ErrorInvalidInput)

	bad.Capacity = 10
	created, err := s.Create(context.Background(), bad)
	require.NoError(t, err)
	require.Equal(t, "id-1", created.ID)

	created.Title = "Forwards"
	updated, err := s.Update(context.Background(), created.ID, created)
	require.NoError(t, err)
	require.Equal(t, "Forwards", updated.Title)

	require.NoError(t, s.Delete(context.Background(), created.ID))
	requireCode(t, s.Delete(context.Background(), created.ID), ErrorNotFound)
}

func expoIDs(expos []domain.Expo) []string {
	out := make([]string, 0, len(expos))
	for _, e := range expos {
		out = append(out, e.ID)
	}
	return out
}

func boothNumbers(booths []domain.Booth) []string {
	out := make([]string, 0, len(booths))
	for _, b := range booths {
		out = append(out, b.BoothNumber)
	}
	return out
}
