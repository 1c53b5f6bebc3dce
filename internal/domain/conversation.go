package domain

import "time"

// Role constants for conversation messages.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is a single turn in a conversation (used in session history).
type Message struct {
	Role      string     `json:"role"`
	Content   string     `json:"content"`
	Persona   Department `json:"persona,omitempty"` // which persona responded
	Timestamp time.Time  `json:"timestamp"`
}

// Statistics is a reporting snapshot of a conversation session.
type Statistics struct {
	CallID            string        `json:"callId"`
	CurrentPersona    Department    `json:"currentPersona"`
	TotalMessages     int           `json:"totalMessages"`
	UserMessages      int           `json:"userMessages"`
	AssistantMessages int           `json:"assistantMessages"`
	PersonasUsed      []Department  `json:"personasUsed"`
	PersonaSwitches   int           `json:"personaSwitches"`
	Escalations       int           `json:"escalations"`
	OverallSentiment  Sentiment     `json:"overallSentiment"`
	StartedAt         time.Time     `json:"startedAt"`
	LastMessageAt     time.Time     `json:"lastMessageAt"`
	Duration          time.Duration `json:"duration"`
}

// TranscriptMessage is one line of a finalized call transcript.
type TranscriptMessage struct {
	Speaker   string    `json:"speaker"` // "customer", "agent", "system"
	Content   string    `json:"content"`
	Language  Language  `json:"language,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Transcript is the final conversation snapshot handed to the analytics
// storage collaborator at call end.
type Transcript struct {
	CallID       string              `json:"callId"`
	CustomerName string              `json:"customerName,omitempty"`
	Department   Department          `json:"department,omitempty"`
	Sentiment    Sentiment           `json:"sentiment,omitempty"`
	Messages     []TranscriptMessage `json:"messages"`
	CreatedAt    time.Time           `json:"createdAt"`
}
