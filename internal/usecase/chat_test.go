package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"flux-web/internal/assistant"
	"flux-web/internal/domain"
	"flux-web/internal/navigation"
)

type fakeTranscripts struct {
	meta      domain.SessionMeta
	metaFound bool
	metaErr   error
	history   []domain.ChatMessage
	histErr   error
	saveErr   error

	saved     []domain.TranscriptEntry
	savedMeta domain.SessionMeta
	saveCalls int
	metaCalls int
	histLimit int
}

func (f *fakeTranscripts) GetTranscript(_ context.Context, _ string, limit int) ([]domain.ChatMessage, error) {
	f.histLimit = limit
	return f.history, f.histErr
}

func (f *fakeTranscripts) GetSessionMeta(_ context.Context, _ string) (domain.SessionMeta, bool, error) {
	f.metaCalls++
	return f.meta, f.metaFound, f.metaErr
}

func (f *fakeTranscripts) SaveTurn(_ context.Context, entries []domain.TranscriptEntry, meta domain.SessionMeta) error {
	f.saveCalls++
	f.saved = entries
	f.savedMeta = meta
	return f.saveErr
}

func (f *fakeTranscripts) NewTranscriptEntry(sessionID string, msg domain.ChatMessage) domain.TranscriptEntry {
	return domain.TranscriptEntry{PK: "CHAT#" + sessionID, SessionID: sessionID, Message: msg}
}

func (f *fakeTranscripts) NewSessionMeta(sessionID string, messages int, page string) domain.SessionMeta {
	return domain.SessionMeta{PK: "CHAT#" + sessionID, SessionID: sessionID, Messages: messages, Page: page}
}

func newChat(t *testing.T, store *fakeTranscripts, cfg ChatConfig) *ChatService {
	t.Helper()
	s, err := NewChatService(store, cfg, nil)
	require.NoError(t, err)
	return s
}

func TestNewChatService_ValidatesDependency(t *testing.T) {
	_, err := NewChatService(nil, ChatConfig{}, nil)
	require.Error(t, err)
}

func TestSend_NewSessionStartsWithWelcome(t *testing.T) {
	pinClock(t)
	store := &fakeTranscripts{}
	s := newChat(t, store, ChatConfig{})

	out, err := s.Send(context.Background(), SendInput{Text: "  hello  "})
	require.NoError(t, err)
	require.Equal(t, "id-1", out.SessionID)
	require.Zero(t, store.metaCalls, "a new session has no metadata to read")

	require.Len(t, out.Messages, 3)
	require.Equal(t, 1, out.Messages[0].ID)
	require.Equal(t, assistant.Welcome, out.Messages[0].Text)
	require.False(t, out.Messages[0].IsUser)
	require.Equal(t, domain.ChatMessage{ID: 2, Text: "hello", IsUser: true, Timestamp: testNow}, out.Messages[1])
	require.Equal(t, 3, out.Reply.ID)
	require.Equal(t, &domain.Action{Kind: domain.ActionSuggestion, Payload: "Show me your services"}, out.Reply.Action)
	require.Equal(t, navigation.Home, out.Page)

	require.Len(t, store.saved, 3)
	require.Equal(t, 3, store.savedMeta.Messages)
	require.Equal(t, "home", store.savedMeta.Page)
}

func TestSend_ContactScenarioNavigates(t *testing.T) {
	pinClock(t)
	store := &fakeTranscripts{
		metaFound: true,
		meta:      domain.SessionMeta{Messages: 5, Page: "about"},
	}
	s := newChat(t, store, ChatConfig{})

	out, err := s.Send(context.Background(), SendInput{SessionID: "sess-1", Text: "Can you take me to the contact page please"})
	require.NoError(t, err)
	require.Equal(t, "sess-1", out.SessionID)
	require.Len(t, out.Messages, 2)
	require.Equal(t, 6, out.Messages[0].ID)
	require.Equal(t, 7, out.Reply.ID)
	require.True(t, strings.HasPrefix(out.Reply.Text, "I'll direct you to our contact page"))
	require.Equal(t, &domain.Action{Kind: domain.ActionNavigate, Payload: "contact"}, out.Reply.Action)
	require.Equal(t, navigation.Contact, out.Page)
	require.Equal(t, "contact", store.savedMeta.Page)
	require.Equal(t, 7, store.savedMeta.Messages)
}

func TestSend_UnknownSessionIDStartsFresh(t *testing.T) {
	pinClock(t)
	store := &fakeTranscripts{}
	s := newChat(t, store, ChatConfig{})

	out, err := s.Send(context.Background(), SendInput{SessionID: "expired", Text: "bye", Page: "faq"})
	require.NoError(t, err)
	require.Equal(t, 1, store.metaCalls)
	require.Len(t, out.Messages, 3)
	require.Nil(t, out.Reply.Action)
	require.Equal(t, navigation.FAQ, out.Page)
}

func TestSend_ValidatesText(t *testing.T) {
	store := &fakeTranscripts{}
	s := newChat(t, store, ChatConfig{MaxMessageLen: 5})

	_, err := s.Send(context.Background(), SendInput{Text: "   "})
	require.Equal(t, "empty_message", requireCode(t, err, ErrorInvalidInput).Reason)

	_, err = s.Send(context.Background(), SendInput{Text: "toolong"})
	require.Equal(t, "message_too_long", requireCode(t, err, ErrorInvalidInput).Reason)

	_, err = s.Send(context.Background(), SendInput{Text: "héllo"})
	require.NoError(t, err, "length counts characters, not bytes")
}

func TestSend_CancelledDuringDelayPersistsNothing(t *testing.T) {
	store := &fakeTranscripts{}
	s := newChat(t, store, ChatConfig{ReplyDelay: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	_, err := s.Send(ctx, SendInput{Text: "hello"})
	uerr := requireCode(t, err, ErrorCanceled)
	require.Equal(t, "request_cancelled", uerr.Reason)
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, store.saveCalls)
}

func TestSend_DeadlineDuringDelayIsInternal(t *testing.T) {
	store := &fakeTranscripts{}
	s := newChat(t, store, ChatConfig{ReplyDelay: time.Hour})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := s.Send(ctx, SendInput{Text: "hello"})
	require.Equal(t, "request_deadline_exceeded", requireCode(t, err, ErrorInternal).Reason)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Zero(t, store.saveCalls)
}

func TestSend_KeepsSessionExpiry(t *testing.T) {
	store := &fakeTranscripts{
		meta:      domain.SessionMeta{Messages: 3, Page: "home", TTL: 1_800_000_000},
		metaFound: true,
	}
	s := newChat(t, store, ChatConfig{})

	_, err := s.Send(context.Background(), SendInput{SessionID: "abc", Text: "hello"})
	require.NoError(t, err)
	require.Equal(t, int64(1_800_000_000), store.savedMeta.TTL)
	require.Equal(t, 5, store.savedMeta.Messages)
}

func TestSend_ReplyDelayElapses(t *testing.T) {
	store := &fakeTranscripts{}
	s := newChat(t, store, ChatConfig{ReplyDelay: time.Millisecond})
	_, err := s.Send(context.Background(), SendInput{Text: "hello"})
	require.NoError(t, err)
	require.Equal(t, 1, store.saveCalls)
}

func TestSend_StoreErrors(t *testing.T) {
	s := newChat(t, &fakeTranscripts{metaErr: errors.New("boom")}, ChatConfig{})
	_, err := s.Send(context.Background(), SendInput{SessionID: "s", Text: "hi"})
	require.Equal(t, "dynamodb_meta_error", requireCode(t, err, ErrorInternal).Reason)

	s = newChat(t, &fakeTranscripts{saveErr: errors.New("boom")}, ChatConfig{})
	_, err = s.Send(context.Background(), SendInput{Text: "hi"})
	require.Equal(t, "dynamodb_write_error", requireCode(t, err, ErrorInternal).Reason)

	s = newChat(t, &fakeTranscripts{saveErr: domain.ErrConflict}, ChatConfig{})
	_, err = s.Send(context.Background(), SendInput{Text: "hi"})
	require.Equal(t, "concurrent_turn", requireCode(t, err, ErrorConflict).Reason)
}

func TestHistory(t *testing.T) {
	stored := []domain.ChatMessage{{ID: 1, Text: assistant.Welcome}, {ID: 2, Text: "hi", IsUser: true}}
	store := &fakeTranscripts{history: stored}
	s := newChat(t, store, ChatConfig{HistoryLimit: 30})

	msgs, err := s.History(context.Background(), "sess-1")
	require.NoError(t, err)
	require.Equal(t, stored, msgs)
	require.Equal(t, 30, store.histLimit)

	_, err = s.History(context.Background(), " ")
	requireCode(t, err, ErrorInvalidInput)
}

func TestHistory_EmptySessionShowsWelcome(t *testing.T) {
	pinClock(t)
	s := newChat(t, &fakeTranscripts{}, ChatConfig{})
	msgs, err := s.History(context.Background(), "sess-1")
	require.NoError(t, err)
	require.Equal(t, []domain.ChatMessage{{ID: 1, Text: assistant.Welcome, Timestamp: testNow}}, msgs)

	s = newChat(t, &fakeTranscripts{histErr: errors.New("boom")}, ChatConfig{})
	_, err = s.History(context.Background(), "sess-1")
	requireCode(t, err, ErrorInternal)
}
