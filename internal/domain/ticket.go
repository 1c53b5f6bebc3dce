package domain

import "time"

// TicketStatus is the lifecycle state of a support ticket. Transitions
// after creation are owned by the CRM collaborator.
type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in_progress"
	TicketResolved   TicketStatus = "resolved"
	TicketClosed     TicketStatus = "closed"
)

// ParseTicketStatus converts a string to a TicketStatus, failing fast on
// unknown values.
func ParseTicketStatus(s string) (TicketStatus, error) {
	switch TicketStatus(s) {
	case TicketOpen, TicketInProgress, TicketResolved, TicketClosed:
		return TicketStatus(s), nil
	}
	return "", &ParseError{Kind: "ticket status", Value: s}
}

func (t TicketStatus) MarshalText() ([]byte, error) { return []byte(t), nil }

func (t *TicketStatus) UnmarshalText(b []byte) error {
	parsed, err := ParseTicketStatus(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Ticket is a trackable support record opened by the escalation policy.
type Ticket struct {
	ID            string       `json:"id"`
	CallID        string       `json:"callId,omitempty"`
	CustomerName  string       `json:"customerName"`
	CustomerPhone string       `json:"customerPhone,omitempty"`
	CustomerEmail string       `json:"customerEmail,omitempty"`
	Department    Department   `json:"department"`
	Priority      Priority     `json:"priority"`
	Status        TicketStatus `json:"status"`
	Subject       string       `json:"subject"`
	Description   string       `json:"description"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}
