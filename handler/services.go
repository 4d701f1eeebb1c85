package handler

import (
	"context"

	"flux-web/internal/domain"
	"flux-web/internal/usecase"
)

type ChatUseCase interface {
	Send(ctx context.Context, in usecase.SendInput) (usecase.SendOutput, error)
	History(ctx context.Context, sessionID string) ([]domain.ChatMessage, error)
}

type ContactUseCase interface {
	Submit(ctx context.Context, form usecase.ContactForm) (domain.Message, error)
}

type CatalogUseCase interface {
	ListServices(ctx context.Context) []domain.Service
	ServiceCount(ctx context.Context) int
	ListProjects(ctx context.Context) []domain.Project
	FeaturedProjects(ctx context.Context, limit int) []domain.Project
	ProjectsByCategory(ctx context.Context, category string) []domain.Project
	ProjectStats(ctx context.Context) usecase.ProjectStats
}

type ExpoUseCase interface {
	List(ctx context.Context, f usecase.ExpoFilter) ([]domain.Expo, error)
	Get(ctx context.Context, id string) (domain.Expo, error)
	Create(ctx context.Context, e domain.Expo) (domain.Expo, error)
	Update(ctx context.Context, id string, e domain.Expo) (domain.Expo, error)
	Delete(ctx context.Context, id string) error
}

type BoothUseCase interface {
	List(ctx context.Context, expoID string, f usecase.BoothFilter) ([]domain.Booth, error)
	Available(ctx context.Context, expoID string, size domain.BoothSize) ([]domain.Booth, error)
	Create(ctx context.Context, b domain.Booth) (domain.Booth, error)
	Update(ctx context.Context, id string, u usecase.BoothUpdate) (domain.Booth, error)
	Delete(ctx context.Context, id string) error
}

type SessionUseCase interface {
	List(ctx context.Context, expoID string, f usecase.SessionFilter) ([]domain.Session, error)
	Create(ctx context.Context, s domain.Session) (domain.Session, error)
	Update(ctx context.Context, id string, s domain.Session) (domain.Session, error)
	Delete(ctx context.Context, id string) error
}

type ApplicationUseCase interface {
	List(ctx context.Context, f usecase.ApplicationFilter) ([]domain.Application, error)
	Submit(ctx context.Context, a domain.Application) (domain.Application, error)
	Approve(ctx context.Context, applicationID, boothID string) (domain.Application, error)
	Reject(ctx context.Context, applicationID string) (domain.Application, error)
}

type RegistrationUseCase interface {
	RegisterExpo(ctx context.Context, expoID, attendeeID string) (domain.ExpoRegistration, error)
	UnregisterExpo(ctx context.Context, expoID, attendeeID string) error
	RegisterSession(ctx context.Context, sessionID, attendeeID string) (domain.SessionRegistration, error)
	UnregisterSession(ctx context.Context, sessionID, attendeeID string) error
	ForAttendee(ctx context.Context, attendeeID string) (usecase.AttendeeRegistrations, error)
	ForExpo(ctx context.Context, expoID string) ([]domain.ExpoRegistration, error)
}

type MessageUseCase interface {
	Send(ctx context.Context, m domain.Message) (domain.Message, error)
	Inbox(ctx context.Context, userID string) ([]domain.Message, error)
	MarkRead(ctx context.Context, id string) (domain.Message, error)
}

type ProfileUseCase interface {
	List(ctx context.Context, f usecase.ProfileFilter) ([]domain.Profile, error)
	Get(ctx context.Context, id string) (domain.Profile, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) (domain.Profile, error)
	UpdateProfile(ctx context.Context, id string, u usecase.ProfileUpdate) (domain.Profile, error)
}

type AnalyticsUseCase interface {
	Overview(ctx context.Context, f usecase.ExpoFilter) (usecase.Analytics, error)
}

// Services are the use cases behind the routes. Chat is required; routes of
// a nil service are not registered.
type Services struct {
	Chat          ChatUseCase
	Contact       ContactUseCase
	Catalog       CatalogUseCase
	Expos         ExpoUseCase
	Booths        BoothUseCase
	Sessions      SessionUseCase
	Applications  ApplicationUseCase
	Registrations RegistrationUseCase
	Messages      MessageUseCase
	Profiles      ProfileUseCase
	Analytics     AnalyticsUseCase
}
