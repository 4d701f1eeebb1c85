package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"flux-web/internal/domain"
)

func TestMessageService_SendAndInbox(t *testing.T) {
	pinClock(t)
	store := newMemStore(messageID,
		domain.Message{ID: "m-old", SenderID: "u1", RecipientID: "u2", Subject: "Hi", Content: "x", CreatedAt: testNow.Add(-2 * time.Hour)},
		domain.Message{ID: "m-self", SenderID: "u1", RecipientID: "u1", Subject: "Note", Content: "x", CreatedAt: testNow.Add(-time.Hour)},
		domain.Message{ID: "m-other", SenderID: "u3", RecipientID: "u4", Subject: "No", Content: "x", CreatedAt: testNow},
	)
	s, err := NewMessageService(store)
	require.NoError(t, err)

	sent, err := s.Send(context.Background(), domain.Message{SenderID: "u2", RecipientID: "u1", Subject: " Re: Hi ", Content: "Hello back", IsRead: true})
	require.NoError(t, err)
	require.Equal(t, "id-1", sent.ID)
	require.Equal(t, "Re: Hi", sent.Subject)
	require.False(t, sent.IsRead)
	require.Equal(t, testNow, sent.CreatedAt)

	inbox, err := s.Inbox(context.Background(), "u1")
	require.NoError(t, err)
	ids := make([]string, 0, len(inbox))
	for _, m := range inbox {
		ids = append(ids, m.ID)
	}
	require.Equal(t, []string{"id-1", "m-self", "m-old"}, ids, "newest first, each message once")

	_, err = s.Send(context.Background(), domain.Message{SenderID: "u2", RecipientID: "u1", Subject: "  "})
	requireCode(t, err, ErrorInvalidInput)
	_, err = s.Inbox(context.Background(), "")
	requireCode(t, err, ErrorInvalidInput)
}

func TestMessageService_MarkRead(t *testing.T) {
	store := newMemStore(messageID, domain.Message{ID: "m1", SenderID: "a", RecipientID: "b", Subject: "s", Content: "c"})
	s, err := NewMessageService(store)
	require.NoError(t, err)

	m, err := s.MarkRead(context.Background(), "m1")
	require.NoError(t, err)
	require.True(t, m.IsRead)
	require.Equal(t, domain.Fields{"is_read": true}, store.lastFields)

	_, err = s.MarkRead(context.Background(), "missing")
	requireCode(t, err, ErrorNotFound)
}

func TestMessageService_InboxStoreError(t *testing.T) {
	store := newMemStore(messageID)
	store.listErr = errStore
	s, err := NewMessageService(store)
	require.NoError(t, err)
	_, err = s.Inbox(context.Background(), "u1")
	require.Equal(t, "message_list_error", requireCode(t, err, ErrorInternal).Reason)
}

func TestProfileService(t *testing.T) {
	store := newMemStore(profileID,
		domain.Profile{ID: "p1", FullName: "Ada Lovelace", Email: "ada@example.com", Role: domain.RoleAttendee, CreatedAt: testNow.Add(-time.Hour)},
		domain.Profile{ID: "p2", FullName: "Grace Hopper", Email: "grace@example.com", Role: domain.RoleExhibitor, CreatedAt: testNow},
		domain.Profile{ID: "p3", FullName: "Alan Turing", Email: "alan@example.com", Role: domain.RoleAttendee, CreatedAt: testNow},
	)
	s, err := NewProfileService(store)
	require.NoError(t, err)
	ctx := context.Background()

	attendees, err := s.List(ctx, ProfileFilter{Role: domain.RoleAttendee})
	require.NoError(t, err)
	require.Len(t, attendees, 2)
	require.Equal(t, "p3", attendees[0].ID)

	found, err := s.List(ctx, ProfileFilter{Search: "GRACE@"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, "p2", found[0].ID)

	p, err := s.UpdateRole(ctx, "p1", domain.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, p.Role)

	_, err = s.UpdateRole(ctx, "p1", "superuser")
	require.Equal(t, "invalid_role", requireCode(t, err, ErrorInvalidInput).Reason)

	p, err = s.UpdateProfile(ctx, "p2", ProfileUpdate{FullName: " Grace B. Hopper ", CompanyName: "Navy", Phone: " 555 "})
	require.NoError(t, err)
	require.Equal(t, "Grace B. Hopper", p.FullName)
	require.Equal(t, "555", p.Phone)
	require.Equal(t, "grace@example.com", p.Email)

	_, err = s.UpdateProfile(ctx, "p2", ProfileUpdate{FullName: "  "})
	requireCode(t, err, ErrorInvalidInput)

	got, err := s.Get(ctx, "p2")
	require.NoError(t, err)
	require.Equal(t, "Navy", got.CompanyName)
	_, err = s.Get(ctx, "nobody")
	requireCode(t, err, ErrorNotFound)
}
