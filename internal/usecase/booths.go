package usecase

import (
	"context"
	"errors"
	"sort"

	"flux-web/internal/domain"
)

type BoothService struct {
	booths Store[domain.Booth]
}

type BoothFilter struct {
	Size   domain.BoothSize
	Status domain.BoothStatus
	Search string
}

// BoothUpdate holds the fields an organiser may change on a booth.
type BoothUpdate struct {
	BoothNumber string           `json:"booth_number" validate:"required"`
	Size        domain.BoothSize `json:"size" validate:"required,oneof=small medium large"`
	Price       float64          `json:"price" validate:"gte=0"`
}

func NewBoothService(booths Store[domain.Booth]) (*BoothService, error) {
	if booths == nil {
		return nil, errors.New("usecase: booth store must not be nil")
	}
	return &BoothService{booths: booths}, nil
}

// List returns the booths of an expo ordered by booth number. Search covers
// the booth number.
func (s *BoothService) List(ctx context.Context, expoID string, f BoothFilter) ([]domain.Booth, error) {
	expoID, err := requireID("missing_expo_id", expoID)
	if err != nil {
		return nil, err
	}
	where := domain.Where{"expo_id": expoID}
	if f.Size != "" {
		where["size"] = f.Size
	}
	if f.Status != "" {
		where["status"] = f.Status
	}
	booths, err := s.booths.List(ctx, where)
	if err != nil {
		return nil, storeError("booth_list", err)
	}

	out := booths[:0]
	for _, b := range booths {
		if matchesSearch(f.Search, b.BoothNumber) {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].BoothNumber < out[j].BoothNumber })
	return out, nil
}

// Available returns the free booths of an expo, optionally of one size.
func (s *BoothService) Available(ctx context.Context, expoID string, size domain.BoothSize) ([]domain.Booth, error) {
	return s.List(ctx, expoID, BoothFilter{Size: size, Status: domain.BoothAvailable})
}

// Create adds a booth to an expo. New booths are always available.
func (s *BoothService) Create(ctx context.Context, b domain.Booth) (domain.Booth, error) {
	if err := validateStruct("invalid_booth", b, nil); err != nil {
		return domain.Booth{}, err
	}
	b.ID = newUUID()
	b.Status = domain.BoothAvailable
	b.ExhibitorID = ""

	created, err := s.booths.Create(ctx, b)
	if err != nil {
		return domain.Booth{}, storeError("booth_create", err)
	}
	return created, nil
}

func (s *BoothService) Update(ctx context.Context, id string, u BoothUpdate) (domain.Booth, error) {
	id, err := requireID("missing_booth_id", id)
	if err != nil {
		return domain.Booth{}, err
	}
	if err := validateStruct("invalid_booth", u, nil); err != nil {
		return domain.Booth{}, err
	}
	updated, err := s.booths.Update(ctx, id, domain.Fields{
		"booth_number": u.BoothNumber,
		"size":         u.Size,
		"price":        u.Price,
	})
	if err != nil {
		return domain.Booth{}, storeError("booth_update", err)
	}
	return updated, nil
}

func (s *BoothService) Delete(ctx context.Context, id string) error {
	id, err := requireID("missing_booth_id", id)
	if err != nil {
		return err
	}
	if err := s.booths.Delete(ctx, id); err != nil {
		return storeError("booth_delete", err)
	}
	return nil
}
