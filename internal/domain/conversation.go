package domain

// TranscriptEntry is a single persisted chat message.
type TranscriptEntry struct {
	PK        string
	SK        string
	SessionID string
	Message   ChatMessage
	TTL       int64
}

// SessionMeta stores aggregate chat session state.
type SessionMeta struct {
	PK           string
	SK           string
	SessionID    string
	LastActivity string
	Messages     int
	Page         string
	TTL          int64
}
