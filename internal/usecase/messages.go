package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"

	"flux-web/internal/domain"
)

type MessageService struct {
	messages Store[domain.Message]
}

func NewMessageService(messages Store[domain.Message]) (*MessageService, error) {
	if messages == nil {
		return nil, errors.New("usecase: message store must not be nil")
	}
	return &MessageService{messages: messages}, nil
}

func (s *MessageService) Send(ctx context.Context, m domain.Message) (domain.Message, error) {
	m.Subject = strings.TrimSpace(m.Subject)
	m.Content = strings.TrimSpace(m.Content)
	if err := validateStruct("invalid_message", m, nil); err != nil {
		return domain.Message{}, err
	}
	m.ID = newUUID()
	m.IsRead = false
	m.CreatedAt = now()

	created, err := s.messages.Create(ctx, m)
	if err != nil {
		return domain.Message{}, storeError("message_create", err)
	}
	return created, nil
}

// Inbox returns every message sent or received by userID, newest first.
func (s *MessageService) Inbox(ctx context.Context, userID string) ([]domain.Message, error) {
	userID, err := requireID("missing_user_id", userID)
	if err != nil {
		return nil, err
	}
	sent, err := s.messages.List(ctx, domain.Where{"sender_id": userID})
	if err != nil {
		return nil, storeError("message_list", err)
	}
	received, err := s.messages.List(ctx, domain.Where{"recipient_id": userID})
	if err != nil {
		return nil, storeError("message_list", err)
	}

	seen := make(map[string]struct{}, len(sent)+len(received))
	out := make([]domain.Message, 0, len(sent)+len(received))
	for _, m := range append(sent, received...) {
		if _, dup := seen[m.ID]; dup {
			continue
		}
		seen[m.ID] = struct{}{}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *MessageService) MarkRead(ctx context.Context, id string) (domain.Message, error) {
	id, err := requireID("missing_message_id", id)
	if err != nil {
		return domain.Message{}, err
	}
	m, err := s.messages.Update(ctx, id, domain.Fields{"is_read": true})
	if err != nil {
		return domain.Message{}, storeError("message_update", err)
	}
	return m, nil
}
