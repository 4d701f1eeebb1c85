package usecase

import (
	"context"
	"errors"
	"sort"

	"flux-web/internal/domain"
)

type ApplicationService struct {
	apps     Store[domain.Application]
	booths   Store[domain.Booth]
	assigner BoothAssigner
}

type ApplicationFilter struct {
	ExpoID      string
	ExhibitorID string
	Status      domain.ApplicationStatus
	Search      string
}

func NewApplicationService(apps Store[domain.Application], booths Store[domain.Booth], assigner BoothAssigner) (*ApplicationService, error) {
	if apps == nil || booths == nil {
		return nil, errors.New("usecase: application and booth stores must not be nil")
	}
	if assigner == nil {
		return nil, errors.New("usecase: booth assigner must not be nil")
	}
	return &ApplicationService{apps: apps, booths: booths, assigner: assigner}, nil
}

// List returns the matching applications, most recently submitted first.
// Search covers the company name.
func (s *ApplicationService) List(ctx context.Context, f ApplicationFilter) ([]domain.Application, error) {
	where := domain.Where{}
	if f.ExpoID != "" {
		where["expo_id"] = f.ExpoID
	}
	if f.ExhibitorID != "" {
		where["exhibitor_id"] = f.ExhibitorID
	}
	if f.Status != "" {
		where["status"] = f.Status
	}
	apps, err := s.apps.List(ctx, where)
	if err != nil {
		return nil, storeError("application_list", err)
	}

	out := apps[:0]
	for _, a := range apps {
		if matchesSearch(f.Search, a.CompanyName) {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SubmittedAt.After(out[j].SubmittedAt) })
	return out, nil
}

// Submit files a pending application. An exhibitor applies to an expo once.
func (s *ApplicationService) Submit(ctx context.Context, a domain.Application) (domain.Application, error) {
	if err := validateStruct("invalid_application", a, nil); err != nil {
		return domain.Application{}, err
	}

	a.ID = applicationKey(a.ExpoID, a.ExhibitorID)
	a.Status = domain.ApplicationPending
	a.AssignedBoothID = ""
	a.SubmittedAt = now()
	a.ReviewedAt = nil

	created, err := s.apps.Create(ctx, a)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.Application{}, newError(ErrorConflict, "already_applied", err)
		}
		return domain.Application{}, storeError("application_create", err)
	}
	return created, nil
}

// applicationKey keys an application by expo and exhibitor, so a second
// application collides with the first in the store.
func applicationKey(expoID, exhibitorID string) string {
	return expoID + "_" + exhibitorID
}

// Approve assigns boothID to a pending application. The approval and the
// booth occupation commit together or not at all.
func (s *ApplicationService) Approve(ctx context.Context, applicationID, boothID string) (domain.Application, error) {
	applicationID, err := requireID("missing_application_id", applicationID)
	if err != nil {
		return domain.Application{}, err
	}
	boothID, err = requireID("missing_booth_id", boothID)
	if err != nil {
		return domain.Application{}, err
	}

	app, err := s.apps.Get(ctx, applicationID)
	if err != nil {
		return domain.Application{}, storeError("application_get", err)
	}
	if app.Status != domain.ApplicationPending {
		return domain.Application{}, newError(ErrorConflict, "application_not_pending", nil)
	}
	booth, err := s.booths.Get(ctx, boothID)
	if err != nil {
		return domain.Application{}, storeError("booth_get", err)
	}
	if booth.ExpoID != app.ExpoID {
		return domain.Application{}, newError(ErrorInvalidInput, "booth_expo_mismatch", nil)
	}

	err = s.assigner.AssignBooth(ctx, domain.BoothAssignment{
		ApplicationID: app.ID,
		BoothID:       booth.ID,
		ExhibitorID:   app.ExhibitorID,
		ReviewedAt:    now(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.Application{}, newError(ErrorConflict, "booth_unavailable", err)
		}
		return domain.Application{}, newError(ErrorInternal, "booth_assignment_error", err)
	}

	approved, err := s.apps.Get(ctx, app.ID)
	if err != nil {
		return domain.Application{}, storeError("application_get", err)
	}
	return approved, nil
}

// Reject closes a pending application without a booth.
func (s *ApplicationService) Reject(ctx context.Context, applicationID string) (domain.Application, error) {
	applicationID, err := requireID("missing_application_id", applicationID)
	if err != nil {
		return domain.Application{}, err
	}
	app, err := s.apps.Get(ctx, applicationID)
	if err != nil {
		return domain.Application{}, storeError("application_get", err)
	}
	if app.Status != domain.ApplicationPending {
		return domain.Application{}, newError(ErrorConflict, "application_not_pending", nil)
	}
	// An approval may commit after the read above; only a still pending
	// application is rejected.
	rejected, err := s.apps.UpdateIf(ctx, app.ID, domain.Fields{
		"status":      domain.ApplicationRejected,
		"reviewed_at": now(),
	}, domain.Where{"status": domain.ApplicationPending})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.Application{}, newError(ErrorConflict, "application_not_pending", err)
		}
		return domain.Application{}, storeError("application_update", err)
	}
	return rejected, nil
}
