package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"

	"flux-web/internal/domain"
)

type ExpoService struct {
	expos Store[domain.Expo]
}

type ExpoFilter struct {
	Status domain.ExpoStatus
	Search string
}

func NewExpoService(expos Store[domain.Expo]) (*ExpoService, error) {
	if expos == nil {
		return nil, errors.New("usecase: expo store must not be nil")
	}
	return &ExpoService{expos: expos}, nil
}

// List returns the expos matching f, newest first. Search covers title,
// theme and location.
func (s *ExpoService) List(ctx context.Context, f ExpoFilter) ([]domain.Expo, error) {
	where := domain.Where{}
	if f.Status != "" {
		where["status"] = f.Status
	}
	expos, err := s.expos.List(ctx, where)
	if err != nil {
		return nil, storeError("expo_list", err)
	}

	out := expos[:0]
	for _, e := range expos {
		if matchesSearch(f.Search, e.Title, e.Theme, e.Location) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *ExpoService) Get(ctx context.Context, id string) (domain.Expo, error) {
	id, err := requireID("missing_expo_id", id)
	if err != nil {
		return domain.Expo{}, err
	}
	e, err := s.expos.Get(ctx, id)
	if err != nil {
		return domain.Expo{}, storeError("expo_get", err)
	}
	return e, nil
}

// Create stores a new expo. Status defaults to draft.
func (s *ExpoService) Create(ctx context.Context, e domain.Expo) (domain.Expo, error) {
	if e.Status == "" {
		e.Status = domain.ExpoDraft
	}
	if err := validateExpo(e); err != nil {
		return domain.Expo{}, err
	}
	e.ID = newUUID()
	e.CreatedAt = now()
	e.UpdatedAt = e.CreatedAt

	created, err := s.expos.Create(ctx, e)
	if err != nil {
		return domain.Expo{}, storeError("expo_create", err)
	}
	return created, nil
}

// Update replaces the editable fields of an expo and stamps updated_at.
func (s *ExpoService) Update(ctx context.Context, id string, e domain.Expo) (domain.Expo, error) {
	id, err := requireID("missing_expo_id", id)
	if err != nil {
		return domain.Expo{}, err
	}
	if err := validateExpo(e); err != nil {
		return domain.Expo{}, err
	}
	fields := domain.Fields{
		"title":       e.Title,
		"description": e.Description,
		"theme":       e.Theme,
		"location":    e.Location,
		"start_date":  e.StartDate,
		"end_date":    e.EndDate,
		"updated_at":  now(),
	}
	if e.Status != "" {
		fields["status"] = e.Status
	}
	updated, err := s.expos.Update(ctx, id, fields)
	if err != nil {
		return domain.Expo{}, storeError("expo_update", err)
	}
	return updated, nil
}

func (s *ExpoService) Delete(ctx context.Context, id string) error {
	id, err := requireID("missing_expo_id", id)
	if err != nil {
		return err
	}
	if err := s.expos.Delete(ctx, id); err != nil {
		return storeError("expo_delete", err)
	}
	return nil
}

func validateExpo(e domain.Expo) error {
	e.Title = strings.TrimSpace(e.Title)
	e.Location = strings.TrimSpace(e.Location)
	if err := validateStruct("invalid_expo", e, nil); err != nil {
		return err
	}
	// ISO dates compare lexically.
	if e.EndDate < e.StartDate {
		return newError(ErrorInvalidInput, "invalid_expo", FieldErrors{"end_date": "must not be before start_date"})
	}
	return nil
}
