package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"flux-web/internal/domain"
)

// memStore is an in-memory Store keyed by id. Filters and updates go through
// the records' JSON form, whose names match the stored attribute names.
type memStore[T any] struct {
	mu    sync.Mutex
	items map[string]T
	id    func(T) string

	listErr   error
	getErr    error
	createErr error
	updateErr error
	deleteErr error

	wheres     []domain.Where
	lastFields domain.Fields
}

func newMemStore[T any](id func(T) string, recs ...T) *memStore[T] {
	m := &memStore[T]{items: make(map[string]T), id: id}
	for _, r := range recs {
		m.items[id(r)] = r
	}
	return m
}

func (m *memStore[T]) List(_ context.Context, where domain.Where) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wheres = append(m.wheres, where)
	if m.listErr != nil {
		return nil, m.listErr
	}
	ids := make([]string, 0, len(m.items))
	for id := range m.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []T
	for _, id := range ids {
		rec := m.items[id]
		fields := toFields(rec)
		match := true
		for k, v := range where {
			if fmt.Sprint(fields[k]) != fmt.Sprint(v) {
				match = false
				break
			}
		}
		if match {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *memStore[T]) Get(_ context.Context, id string) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var zero T
	if m.getErr != nil {
		return zero, m.getErr
	}
	rec, ok := m.items[id]
	if !ok {
		return zero, fmt.Errorf("mem: get %s: %w", id, domain.ErrNotFound)
	}
	return rec, nil
}

func (m *memStore[T]) Create(_ context.Context, rec T) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var zero T
	if m.createErr != nil {
		return zero, m.createErr
	}
	if _, ok := m.items[m.id(rec)]; ok {
		return zero, fmt.Errorf("mem: create: %w", domain.ErrConflict)
	}
	m.items[m.id(rec)] = rec
	return rec, nil
}

func (m *memStore[T]) Update(_ context.Context, id string, fields domain.Fields) (T, error) {
	return m.update(id, fields, nil)
}

func (m *memStore[T]) UpdateIf(_ context.Context, id string, fields domain.Fields, cond domain.Where) (T, error) {
	return m.update(id, fields, cond)
}

func (m *memStore[T]) update(id string, fields domain.Fields, cond domain.Where) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var zero T
	m.lastFields = fields
	if m.updateErr != nil {
		return zero, m.updateErr
	}
	rec, ok := m.items[id]
	if !ok {
		return zero, fmt.Errorf("mem: update %s: %w", id, domain.ErrNotFound)
	}
	merged := toFields(rec)
	for k, v := range cond {
		if fmt.Sprint(merged[k]) != fmt.Sprint(v) {
			return zero, fmt.Errorf("mem: update %s: %w", id, domain.ErrConflict)
		}
	}
	for k, v := range fields {
		merged[k] = v
	}
	raw, err := json.Marshal(merged)
	if err != nil {
		return zero, err
	}
	var updated T
	if err := json.Unmarshal(raw, &updated); err != nil {
		return zero, err
	}
	m.items[id] = updated
	return updated, nil
}

func (m *memStore[T]) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.items[id]; !ok {
		return fmt.Errorf("mem: delete %s: %w", id, domain.ErrNotFound)
	}
	delete(m.items, id)
	return nil
}

func (m *memStore[T]) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

func toFields(rec any) map[string]any {
	raw, _ := json.Marshal(rec)
	out := map[string]any{}
	_ = json.Unmarshal(raw, &out)
	return out
}

var errStore = errors.New("store unavailable")

var testNow = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

// pinClock fixes now and newUUID for the test, returning ids id-1, id-2, ...
func pinClock(t *testing.T) {
	t.Helper()
	origNow, origUUID := now, newUUID
	n := 0
	now = func() time.Time { return testNow }
	newUUID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	t.Cleanup(func() {
		now, newUUID = origNow, origUUID
	})
}

func requireCode(t *testing.T, err error, code ErrorCode) *Error {
	t.Helper()
	var uerr *Error
	require.ErrorAs(t, err, &uerr)
	require.Equal(t, code, uerr.Code, "reason=%s", uerr.Reason)
	return uerr
}

func TestStoreError(t *testing.T) {
	require.Equal(t, ErrorNotFound, storeError("x", fmt.Errorf("w: %w", domain.ErrNotFound)).Code)
	require.Equal(t, ErrorConflict, storeError("x", domain.ErrConflict).Code)
	e := storeError("expo_get", errStore)
	require.Equal(t, ErrorInternal, e.Code)
	require.Equal(t, "expo_get_error", e.Reason)
	require.ErrorIs(t, e, errStore)
}

func TestMatchesSearch(t *testing.T) {
	require.True(t, matchesSearch("", "anything"))
	require.True(t, matchesSearch("  TECH ", "Global Tech Expo"))
	require.True(t, matchesSearch("berlin", "title", "Berlin"))
	require.False(t, matchesSearch("paris", "Berlin"))
}

func TestFieldErrors_ErrorIsSorted(t *testing.T) {
	fe := FieldErrors{"subject": "Subject is required", "email": "Email is required"}
	require.Equal(t, "email: Email is required; subject: Subject is required", fe.Error())
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	cases := []struct {
		name    string
		page    int
		perPage int
		want    []int
		gotPage int
		pages   int
	}{
		{name: "first", page: 1, perPage: 5, want: []int{1, 2, 3, 4, 5}, gotPage: 1, pages: 3},
		{name: "last partial", page: 3, perPage: 5, want: []int{11, 12}, gotPage: 3, pages: 3},
		{name: "clamped high", page: 9, perPage: 5, want: []int{11, 12}, gotPage: 3, pages: 3},
		{name: "clamped low", page: 0, perPage: 5, want: []int{1, 2, 3, 4, 5}, gotPage: 1, pages: 3},
		{name: "default size", page: 2, perPage: 0, want: []int{11, 12}, gotPage: 2, pages: 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Paginate(items, tc.page, tc.perPage)
			require.Equal(t, tc.want, p.Items)
			require.Equal(t, tc.gotPage, p.Page)
			require.Equal(t, tc.pages, p.TotalPages)
			require.Equal(t, 12, p.Total)
		})
	}

	empty := Paginate([]string{}, 3, 10)
	require.Empty(t, empty.Items)
	require.Equal(t, 0, empty.TotalPages)
	require.Equal(t, 1, empty.Page)
}
