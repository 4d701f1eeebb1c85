package usecase

import (
	"context"
	"errors"
	"sort"

	"flux-web/internal/domain"
)

const generalRegistration = "general"

type RegistrationService struct {
	expoRegs    Store[domain.ExpoRegistration]
	sessionRegs Store[domain.SessionRegistration]
}

// AttendeeRegistrations lists what one attendee signed up for.
type AttendeeRegistrations struct {
	Expos    []domain.ExpoRegistration    `json:"expos"`
	Sessions []domain.SessionRegistration `json:"sessions"`
}

func NewRegistrationService(expoRegs Store[domain.ExpoRegistration], sessionRegs Store[domain.SessionRegistration]) (*RegistrationService, error) {
	if expoRegs == nil || sessionRegs == nil {
		return nil, errors.New("usecase: registration stores must not be nil")
	}
	return &RegistrationService{expoRegs: expoRegs, sessionRegs: sessionRegs}, nil
}

// Registration ids are derived from the pair, so a second sign-up collides
// in the store.
func registrationID(parentID, attendeeID string) string {
	return parentID + "_" + attendeeID
}

func (s *RegistrationService) RegisterExpo(ctx context.Context, expoID, attendeeID string) (domain.ExpoRegistration, error) {
	expoID, attendeeID, err := registrationKeys("missing_expo_id", expoID, attendeeID)
	if err != nil {
		return domain.ExpoRegistration{}, err
	}
	reg, err := s.expoRegs.Create(ctx, domain.ExpoRegistration{
		ID:               registrationID(expoID, attendeeID),
		ExpoID:           expoID,
		AttendeeID:       attendeeID,
		RegistrationType: generalRegistration,
		RegisteredAt:     now(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.ExpoRegistration{}, newError(ErrorConflict, "already_registered", err)
		}
		return domain.ExpoRegistration{}, storeError("expo_registration_create", err)
	}
	return reg, nil
}

func (s *RegistrationService) UnregisterExpo(ctx context.Context, expoID, attendeeID string) error {
	expoID, attendeeID, err := registrationKeys("missing_expo_id", expoID, attendeeID)
	if err != nil {
		return err
	}
	if err := s.expoRegs.Delete(ctx, registrationID(expoID, attendeeID)); err != nil {
		return storeError("expo_registration_delete", err)
	}
	return nil
}

func (s *RegistrationService) RegisterSession(ctx context.Context, sessionID, attendeeID string) (domain.SessionRegistration, error) {
	sessionID, attendeeID, err := registrationKeys("missing_session_id", sessionID, attendeeID)
	if err != nil {
		return domain.SessionRegistration{}, err
	}
	reg, err := s.sessionRegs.Create(ctx, domain.SessionRegistration{
		ID:           registrationID(sessionID, attendeeID),
		SessionID:    sessionID,
		AttendeeID:   attendeeID,
		RegisteredAt: now(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.SessionRegistration{}, newError(ErrorConflict, "already_registered", err)
		}
		return domain.SessionRegistration{}, storeError("session_registration_create", err)
	}
	return reg, nil
}

func (s *RegistrationService) UnregisterSession(ctx context.Context, sessionID, attendeeID string) error {
	sessionID, attendeeID, err := registrationKeys("missing_session_id", sessionID, attendeeID)
	if err != nil {
		return err
	}
	if err := s.sessionRegs.Delete(ctx, registrationID(sessionID, attendeeID)); err != nil {
		return storeError("session_registration_delete", err)
	}
	return nil
}

// ForAttendee returns an attendee's registrations, newest first.
func (s *RegistrationService) ForAttendee(ctx context.Context, attendeeID string) (AttendeeRegistrations, error) {
	attendeeID, err := requireID("missing_attendee_id", attendeeID)
	if err != nil {
		return AttendeeRegistrations{}, err
	}
	expos, err := s.expoRegs.List(ctx, domain.Where{"attendee_id": attendeeID})
	if err != nil {
		return AttendeeRegistrations{}, storeError("expo_registration_list", err)
	}
	sessions, err := s.sessionRegs.List(ctx, domain.Where{"attendee_id": attendeeID})
	if err != nil {
		return AttendeeRegistrations{}, storeError("session_registration_list", err)
	}
	sort.SliceStable(expos, func(i, j int) bool { return expos[i].RegisteredAt.After(expos[j].RegisteredAt) })
	sort.SliceStable(sessions, func(i, j int) bool { return sessions[i].RegisteredAt.After(sessions[j].RegisteredAt) })
	return AttendeeRegistrations{Expos: expos, Sessions: sessions}, nil
}

// ForExpo returns the registrations of one expo.
func (s *RegistrationService) ForExpo(ctx context.Context, expoID string) ([]domain.ExpoRegistration, error) {
	expoID, err := requireID("missing_expo_id", expoID)
	if err != nil {
		return nil, err
	}
	regs, err := s.expoRegs.List(ctx, domain.Where{"expo_id": expoID})
	if err != nil {
		return nil, storeError("expo_registration_list", err)
	}
	return regs, nil
}

func registrationKeys(missingParent, parentID, attendeeID string) (string, string, error) {
	parentID, err := requireID(missingParent, parentID)
	if err != nil {
		return "", "", err
	}
	attendeeID, err = requireID("missing_attendee_id", attendeeID)
	if err != nil {
		return "", "", err
	}
	return parentID, attendeeID, nil
}
