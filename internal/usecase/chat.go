package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"flux-web/internal/assistant"
	"flux-web/internal/domain"
	"flux-web/internal/navigation"
)

const (
	defaultMaxMessageLen = 500
	defaultHistoryLimit  = 100
	welcomeMessageID     = 1
)

type TranscriptStore interface {
	GetTranscript(ctx context.Context, sessionID string, limit int) ([]domain.ChatMessage, error)
	GetSessionMeta(ctx context.Context, sessionID string) (domain.SessionMeta, bool, error)
	SaveTurn(ctx context.Context, entries []domain.TranscriptEntry, meta domain.SessionMeta) error
	NewTranscriptEntry(sessionID string, msg domain.ChatMessage) domain.TranscriptEntry
	NewSessionMeta(sessionID string, messages int, page string) domain.SessionMeta
}

// ChatConfig tunes ChatService. Zero values select the defaults.
type ChatConfig struct {
	MaxMessageLen int
	HistoryLimit  int
	// ReplyDelay holds the assistant reply back, as the site's chat widget
	// does, and is interrupted by context cancellation.
	ReplyDelay time.Duration
}

type ChatService struct {
	store         TranscriptStore
	maxMessageLen int
	historyLimit  int
	replyDelay    time.Duration
	logger        *slog.Logger
}

type SendInput struct {
	SessionID string
	Text      string
	// Page is the page the visitor is on, used when the session is new.
	Page string
}

type SendOutput struct {
	SessionID string
	// Messages holds every message created by this turn in order, starting
	// with the welcome line for a new session.
	Messages []domain.ChatMessage
	Reply    domain.ChatMessage
	Page     navigation.PageID
}

func NewChatService(store TranscriptStore, cfg ChatConfig, logger *slog.Logger) (*ChatService, error) {
	if store == nil {
		return nil, errors.New("usecase: transcript store must not be nil")
	}
	if cfg.MaxMessageLen <= 0 {
		cfg.MaxMessageLen = defaultMaxMessageLen
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = defaultHistoryLimit
	}
	if cfg.ReplyDelay < 0 {
		cfg.ReplyDelay = 0
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ChatService{
		store:         store,
		maxMessageLen: cfg.MaxMessageLen,
		historyLimit:  cfg.HistoryLimit,
		replyDelay:    cfg.ReplyDelay,
		logger:        logger,
	}, nil
}

// Send records one visitor line and the assistant's reply. Nothing is
// persisted when ctx is cancelled before the reply is due.
func (s *ChatService) Send(ctx context.Context, in SendInput) (SendOutput, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return SendOutput{}, newError(ErrorInvalidInput, "empty_message", nil)
	}
	if utf8.RuneCountInString(text) > s.maxMessageLen {
		return SendOutput{}, newError(ErrorInvalidInput, "message_too_long", nil)
	}

	sessionID := strings.TrimSpace(in.SessionID)
	isNew := sessionID == ""
	if isNew {
		sessionID = newUUID()
	}

	lastID := 0
	var expires int64
	page := navigation.Parse(in.Page)
	if !isNew {
		meta, ok, err := s.store.GetSessionMeta(ctx, sessionID)
		if err != nil {
			return SendOutput{}, newError(ErrorInternal, "dynamodb_meta_error", err)
		}
		if ok {
			lastID = meta.Messages
			page = navigation.Parse(meta.Page)
			expires = meta.TTL
		}
	}

	var created []domain.ChatMessage
	if lastID == 0 {
		created = append(created, welcomeMessage(now()))
		lastID = welcomeMessageID
	}

	userMsg := domain.ChatMessage{ID: lastID + 1, Text: text, IsUser: true, Timestamp: now()}
	created = append(created, userMsg)

	reply := assistant.Resolve(text)
	if err := s.wait(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return SendOutput{}, newError(ErrorCanceled, "request_cancelled", err)
		}
		return SendOutput{}, newError(ErrorInternal, "request_deadline_exceeded", err)
	}
	replyMsg := domain.ChatMessage{
		ID:        lastID + 2,
		Text:      reply.Response,
		Timestamp: now(),
		Action:    reply.Action,
	}
	created = append(created, replyMsg)

	nav := navigation.NewState(page)
	unsubscribe := nav.Subscribe(func(from, to navigation.PageID) {
		s.logger.InfoContext(ctx, "chat navigation", "session_id", sessionID, "from", string(from), "to", string(to))
	})
	defer unsubscribe()
	if reply.Action != nil && reply.Action.Kind == domain.ActionNavigate {
		nav.GoTo(navigation.PageID(reply.Action.Payload))
	}

	entries := make([]domain.TranscriptEntry, 0, len(created))
	for _, m := range created {
		entries = append(entries, s.store.NewTranscriptEntry(sessionID, m))
	}
	meta := s.store.NewSessionMeta(sessionID, replyMsg.ID, string(nav.Current()))
	if expires > 0 {
		// The session keeps the expiry it started with.
		meta.TTL = expires
	}
	if err := s.store.SaveTurn(ctx, entries, meta); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return SendOutput{}, newError(ErrorConflict, "concurrent_turn", err)
		}
		return SendOutput{}, newError(ErrorInternal, "dynamodb_write_error", err)
	}

	s.logger.InfoContext(ctx, "chat turn saved",
		"session_id", sessionID,
		"topic", string(reply.Topic),
		"messages", replyMsg.ID,
	)
	return SendOutput{
		SessionID: sessionID,
		Messages:  created,
		Reply:     replyMsg,
		Page:      nav.Current(),
	}, nil
}

// History returns the session transcript in order. A session without stored
// messages shows only the welcome line.
func (s *ChatService) History(ctx context.Context, sessionID string) ([]domain.ChatMessage, error) {
	sessionID, err := requireID("missing_session_id", sessionID)
	if err != nil {
		return nil, err
	}
	msgs, err := s.store.GetTranscript(ctx, sessionID, s.historyLimit)
	if err != nil {
		return nil, newError(ErrorInternal, "dynamodb_history_error", err)
	}
	if len(msgs) == 0 {
		return []domain.ChatMessage{welcomeMessage(now())}, nil
	}
	return msgs, nil
}

func (s *ChatService) wait(ctx context.Context) error {
	if s.replyDelay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.replyDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func welcomeMessage(ts time.Time) domain.ChatMessage {
	return domain.ChatMessage{ID: welcomeMessageID, Text: assistant.Welcome, Timestamp: ts}
}
