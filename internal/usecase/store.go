package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"flux-web/internal/domain"
)

// Store is the CRUD gateway of one record kind.
type Store[T any] interface {
	List(ctx context.Context, where domain.Where) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, rec T) (T, error)
	Update(ctx context.Context, id string, fields domain.Fields) (T, error)
	// UpdateIf applies fields only while the stored record matches cond,
	// failing with domain.ErrConflict otherwise.
	UpdateIf(ctx context.Context, id string, fields domain.Fields, cond domain.Where) (T, error)
	Delete(ctx context.Context, id string) error
}

// BoothAssigner commits an application approval together with its booth.
type BoothAssigner interface {
	AssignBooth(ctx context.Context, a domain.BoothAssignment) error
}

// matchesSearch reports whether term is empty or a case-insensitive
// substring of any field.
func matchesSearch(term string, fields ...string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func requireID(reason, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", newError(ErrorInvalidInput, reason, nil)
	}
	return id, nil
}

var newUUID = func() string {
	return uuid.NewString()
}

var now = func() time.Time {
	return time.Now().UTC()
}
