package usecase

import (
	"context"
	"errors"
	"sort"

	"flux-web/internal/domain"
)

type SessionService struct {
	sessions Store[domain.Session]
}

type SessionFilter struct {
	Location string
	Search   string
}

func NewSessionService(sessions Store[domain.Session]) (*SessionService, error) {
	if sessions == nil {
		return nil, errors.New("usecase: session store must not be nil")
	}
	return &SessionService{sessions: sessions}, nil
}

// List returns the sessions of an expo by start time. Search covers title
// and speaker.
func (s *SessionService) List(ctx context.Context, expoID string, f SessionFilter) ([]domain.Session, error) {
	expoID, err := requireID("missing_expo_id", expoID)
	if err != nil {
		return nil, err
	}
	where := domain.Where{"expo_id": expoID}
	if f.Location != "" {
		where["location"] = f.Location
	}
	sessions, err := s.sessions.List(ctx, where)
	if err != nil {
		return nil, storeError("session_list", err)
	}

	out := sessions[:0]
	for _, sess := range sessions {
		if matchesSearch(f.Search, sess.Title, sess.SpeakerName) {
			out = append(out, sess)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (s *SessionService) Create(ctx context.Context, sess domain.Session) (domain.Session, error) {
	if err := validateStruct("invalid_session", sess, nil); err != nil {
		return domain.Session{}, err
	}
	sess.ID = newUUID()
	created, err := s.sessions.Create(ctx, sess)
	if err != nil {
		return domain.Session{}, storeError("session_create", err)
	}
	return created, nil
}

// Update replaces the schedule fields of a session. The expo cannot change.
func (s *SessionService) Update(ctx context.Context, id string, sess domain.Session) (domain.Session, error) {
	id, err := requireID("missing_session_id", id)
	if err != nil {
		return domain.Session{}, err
	}
	if err := validateStruct("invalid_session", sess, nil); err != nil {
		return domain.Session{}, err
	}
	updated, err := s.sessions.Update(ctx, id, domain.Fields{
		"title":        sess.Title,
		"description":  sess.Description,
		"speaker_name": sess.SpeakerName,
		"location":     sess.Location,
		"start_time":   sess.StartTime,
		"end_time":     sess.EndTime,
		"capacity":     sess.Capacity,
	})
	if err != nil {
		return domain.Session{}, storeError("session_update", err)
	}
	return updated, nil
}

func (s *SessionService) Delete(ctx context.Context, id string) error {
	id, err := requireID("missing_session_id", id)
	if err != nil {
		return err
	}
	if err := s.sessions.Delete(ctx, id); err != nil {
		return storeError("session_delete", err)
	}
	return nil
}
