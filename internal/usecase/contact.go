package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"flux-web/internal/domain"
)

// DefaultRecipient receives contact emails when no recipient is configured.
const DefaultRecipient = "flux.solution929@gmail.com"

type ParamGetter interface {
	GetParameter(ctx context.Context, name string) (string, error)
}

type EmailSender interface {
	SendContact(ctx context.Context, email domain.ContactEmail) error
}

type ContactService struct {
	sender      EmailSender
	params      ParamGetter
	messages    Store[domain.Message]
	profiles    Store[domain.Profile]
	paramPrefix string
	logger      *slog.Logger

	cacheMu     sync.RWMutex
	cacheLoaded bool
	recipient   string
}

// ContactForm is a public contact form submission. SenderID is the signed-in
// profile, if any.
type ContactForm struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,contact_email"`
	Subject  string `json:"subject" validate:"required"`
	Message  string `json:"message" validate:"required,min=10"`
	SenderID string `json:"-"`
}

var contactMessages = map[string]string{
	"name.required":       "Name is required",
	"email.required":      "Email is required",
	"email.contact_email": "Please enter a valid email address",
	"subject.required":    "Subject is required",
	"message.required":    "Message is required",
	"message.min":         "Message should be at least 10 characters",
}

func NewContactService(sender EmailSender, params ParamGetter, messages Store[domain.Message], profiles Store[domain.Profile], paramPrefix string, logger *slog.Logger) (*ContactService, error) {
	if sender == nil {
		return nil, errors.New("usecase: email sender must not be nil")
	}
	if messages == nil || profiles == nil {
		return nil, errors.New("usecase: message and profile stores must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ContactService{
		sender:      sender,
		params:      params,
		messages:    messages,
		profiles:    profiles,
		paramPrefix: strings.TrimRight(strings.TrimSpace(paramPrefix), "/"),
		logger:      logger,
	}, nil
}

// ValidateContactForm returns the per-field messages for form, or nil.
func ValidateContactForm(form ContactForm) FieldErrors {
	err := validateStruct("invalid_contact_form", normalizeContactForm(form), contactMessages)
	if err == nil {
		return nil
	}
	var fields FieldErrors
	if errors.As(err, &fields) {
		return fields
	}
	return FieldErrors{"form": err.Error()}
}

// normalizeContactForm trims the fields. A blank message becomes empty so it
// reports as missing; otherwise its length is taken as typed.
func normalizeContactForm(form ContactForm) ContactForm {
	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)
	form.Subject = strings.TrimSpace(form.Subject)
	if strings.TrimSpace(form.Message) == "" {
		form.Message = ""
	}
	return form
}

// Submit emails the form to the site owner and files it in the first
// admin's inbox. An invalid form sends nothing.
func (s *ContactService) Submit(ctx context.Context, form ContactForm) (domain.Message, error) {
	form = normalizeContactForm(form)
	if err := validateStruct("invalid_contact_form", form, contactMessages); err != nil {
		return domain.Message{}, err
	}
	if err := s.ensureConfig(ctx); err != nil {
		return domain.Message{}, newError(ErrorInternal, "ssm_load_error", err)
	}

	s.cacheMu.RLock()
	recipient := s.recipient
	s.cacheMu.RUnlock()

	err := s.sender.SendContact(ctx, domain.ContactEmail{
		FromName:  form.Name,
		FromEmail: form.Email,
		Subject:   form.Subject,
		Message:   form.Message,
		ToEmail:   recipient,
	})
	if err != nil {
		if status, ok := upstreamStatusCode(err); ok && status == 429 {
			return domain.Message{}, newError(ErrorRateLimited, "email_rate_limited", err)
		}
		return domain.Message{}, newError(ErrorUpstream, "email_send_error", err)
	}

	adminID, err := s.firstAdmin(ctx)
	if err != nil {
		return domain.Message{}, storeError("admin_lookup", err)
	}
	senderID := strings.TrimSpace(form.SenderID)
	if senderID == "" {
		senderID = domain.NilID
	}

	msg, err := s.messages.Create(ctx, domain.Message{
		ID:          newUUID(),
		SenderID:    senderID,
		RecipientID: adminID,
		Subject:     form.Subject,
		Content:     fmt.Sprintf("Name: %s\nEmail: %s\n\nMessage: %s", form.Name, form.Email, form.Message),
		IsRead:      false,
		CreatedAt:   now(),
	})
	if err != nil {
		return domain.Message{}, storeError("contact_message_store", err)
	}
	s.logger.InfoContext(ctx, "contact message submitted", "message_id", msg.ID, "recipient_id", adminID)
	return msg, nil
}

// firstAdmin returns the earliest admin profile, or NilID when there is none.
func (s *ContactService) firstAdmin(ctx context.Context) (string, error) {
	admins, err := s.profiles.List(ctx, domain.Where{"role": domain.RoleAdmin})
	if err != nil {
		return "", err
	}
	if len(admins) == 0 {
		return domain.NilID, nil
	}
	sort.Slice(admins, func(i, j int) bool {
		if admins[i].CreatedAt.Equal(admins[j].CreatedAt) {
			return admins[i].ID < admins[j].ID
		}
		return admins[i].CreatedAt.Before(admins[j].CreatedAt)
	})
	return admins[0].ID, nil
}

func (s *ContactService) ensureConfig(ctx context.Context) error {
	s.cacheMu.RLock()
	if s.cacheLoaded {
		s.cacheMu.RUnlock()
		return nil
	}
	s.cacheMu.RUnlock()

	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	if s.cacheLoaded {
		return nil
	}

	recipient := DefaultRecipient
	if s.params != nil && s.paramPrefix != "" {
		v, err := s.params.GetParameter(ctx, s.paramPrefix+"/contact/recipient")
		if err != nil {
			return fmt.Errorf("usecase: load contact recipient: %w", err)
		}
		if v = strings.TrimSpace(v); v != "" {
			recipient = v
		}
	}

	s.recipient = recipient
	s.cacheLoaded = true
	return nil
}
