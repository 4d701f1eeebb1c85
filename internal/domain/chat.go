package domain

import "time"

// ActionKind identifies what a chat reply asks the front end to do next.
type ActionKind string

const (
	ActionNavigate   ActionKind = "navigate"
	ActionSuggestion ActionKind = "suggestion"
)

// Action is the optional follow-up attached to an assistant reply. For
// navigate the payload is a page id, for suggestion it is the text to prefill.
type Action struct {
	Kind    ActionKind `json:"type"`
	Payload string     `json:"payload"`
}

// ChatMessage is one entry of a chat session transcript. Messages are never
// mutated after creation.
type ChatMessage struct {
	ID        int       `json:"id"`
	Text      string    `json:"text"`
	IsUser    bool      `json:"isUser"`
	Timestamp time.Time `json:"timestamp"`
	Action    *Action   `json:"action,omitempty"`
}
