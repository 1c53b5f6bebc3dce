package domain

// IntentDetection is the classifier's verdict for a single utterance.
// Created fresh per utterance and never mutated.
type IntentDetection struct {
	Intent     Intent   `json:"intent"`
	Confidence float64  `json:"confidence"`
	Keywords   []string `json:"keywords,omitempty"`
	Language   Language `json:"language"`
	Reasoning  string   `json:"reasoning"`
}

// RoutingDecision pairs a detected intent with a target department,
// priority, and escalation/ticket flags. Derived deterministically from
// an IntentDetection and the session's sentiment trend.
type RoutingDecision struct {
	Department      Department `json:"department"`
	Priority        Priority   `json:"priority"`
	CreateTicket    bool       `json:"createTicket"`
	EscalateToHuman bool       `json:"escalateToHuman"`
	Reasoning       string     `json:"reasoning"`
}

// Utterance is a transcribed customer input from the speech-to-text
// collaborator.
type Utterance struct {
	Text       string   `json:"text"`
	Language   Language `json:"language"`
	Confidence float64  `json:"confidence"`
}

// CustomerHints carries identity data optionally pre-populated from a
// CRM or identity collaborator before intake starts.
type CustomerHints struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}
