package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"

	"flux-web/internal/domain"
)

type ProfileService struct {
	profiles Store[domain.Profile]
}

type ProfileFilter struct {
	Role   domain.Role
	Search string
}

// ProfileUpdate holds the fields a user may edit on their own profile.
type ProfileUpdate struct {
	FullName    string `json:"full_name" validate:"required"`
	CompanyName string `json:"company_name"`
	Phone       string `json:"phone"`
	Bio         string `json:"bio"`
}

type roleChange struct {
	Role domain.Role `json:"role" validate:"required,oneof=admin exhibitor attendee"`
}

func NewProfileService(profiles Store[domain.Profile]) (*ProfileService, error) {
	if profiles == nil {
		return nil, errors.New("usecase: profile store must not be nil")
	}
	return &ProfileService{profiles: profiles}, nil
}

// List returns the matching profiles, newest first. Search covers name and
// email.
func (s *ProfileService) List(ctx context.Context, f ProfileFilter) ([]domain.Profile, error) {
	where := domain.Where{}
	if f.Role != "" {
		where["role"] = f.Role
	}
	profiles, err := s.profiles.List(ctx, where)
	if err != nil {
		return nil, storeError("profile_list", err)
	}

	out := profiles[:0]
	for _, p := range profiles {
		if matchesSearch(f.Search, p.FullName, p.Email) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *ProfileService) Get(ctx context.Context, id string) (domain.Profile, error) {
	id, err := requireID("missing_profile_id", id)
	if err != nil {
		return domain.Profile{}, err
	}
	p, err := s.profiles.Get(ctx, id)
	if err != nil {
		return domain.Profile{}, storeError("profile_get", err)
	}
	return p, nil
}

func (s *ProfileService) UpdateRole(ctx context.Context, id string, role domain.Role) (domain.Profile, error) {
	id, err := requireID("missing_profile_id", id)
	if err != nil {
		return domain.Profile{}, err
	}
	if err := validateStruct("invalid_role", roleChange{Role: role}, nil); err != nil {
		return domain.Profile{}, err
	}
	p, err := s.profiles.Update(ctx, id, domain.Fields{"role": role})
	if err != nil {
		return domain.Profile{}, storeError("profile_update", err)
	}
	return p, nil
}

func (s *ProfileService) UpdateProfile(ctx context.Context, id string, u ProfileUpdate) (domain.Profile, error) {
	id, err := requireID("missing_profile_id", id)
	if err != nil {
		return domain.Profile{}, err
	}
	u.FullName = strings.TrimSpace(u.FullName)
	if err := validateStruct("invalid_profile", u, nil); err != nil {
		return domain.Profile{}, err
	}
	p, err := s.profiles.Update(ctx, id, domain.Fields{
		"full_name":    u.FullName,
		"company_name": strings.TrimSpace(u.CompanyName),
		"phone":        strings.TrimSpace(u.Phone),
		"bio":          strings.TrimSpace(u.Bio),
	})
	if err != nil {
		return domain.Profile{}, storeError("profile_update", err)
	}
	return p, nil
}
