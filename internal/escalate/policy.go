// Package escalate decides when calls are handed to humans and when
// support tickets are opened, and performs the one-shot ticket creation
// against the configured ticket sink.
package escalate

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ornina/callcenter/internal/config"
	"github.com/ornina/callcenter/internal/domain"
	"github.com/ornina/callcenter/internal/logging"
)

// TicketSink persists created tickets. Implemented by the store
// backends and by test doubles.
type TicketSink interface {
	SaveTicket(ctx context.Context, t *domain.Ticket) error
}

// Policy applies the escalation and ticketing rules. Safe for
// concurrent use across calls.
type Policy struct {
	cfg  config.ComplaintsConfig
	sink TicketSink
	log  *logging.Logger

	mu sync.Mutex
	// attempted tracks calls for which ticket creation has been tried,
	// successfully or not. One attempt per call, ever.
	attempted map[string]string // call ID -> ticket ID ("" on failed attempt)
}

// NewPolicy creates an escalation policy backed by the given sink.
func NewPolicy(cfg config.ComplaintsConfig, sink TicketSink, log *logging.Logger) *Policy {
	return &Policy{
		cfg:       cfg,
		sink:      sink,
		log:       log.Sub("escalate"),
		attempted: make(map[string]string),
	}
}

// ShouldEscalate reports whether a call in this state needs a human:
// an angry customer or an urgent-priority decision.
func ShouldEscalate(sentiment domain.Sentiment, priority domain.Priority) bool {
	return sentiment == domain.SentimentAngry || priority == domain.PriorityUrgent
}

// TicketPriority maps a routing decision and the triggering utterance
// to a ticket priority; urgent keywords in the utterance override.
func (p *Policy) TicketPriority(decision domain.RoutingDecision, text string, lang domain.Language) domain.Priority {
	lowered := strings.ToLower(text)
	for _, word := range p.cfg.UrgentKeywords[string(lang)] {
		if strings.Contains(lowered, strings.ToLower(word)) {
			return domain.PriorityUrgent
		}
	}
	return decision.Priority
}

// EnsureTicket creates a support ticket for the call if the decision
// calls for one and none has been attempted yet. Returns nil with no
// error when no ticket is warranted or one was already attempted. A
// sink failure is returned to the caller but still consumes the call's
// single attempt; the failure is surfaced, never retried silently.
func (p *Policy) EnsureTicket(ctx context.Context, session *domain.CallSession, decision domain.RoutingDecision, subject string) (*domain.Ticket, error) {
	if !decision.CreateTicket || !p.cfg.AutoCreateTicket {
		return nil, nil
	}

	p.mu.Lock()
	if _, done := p.attempted[session.ID]; done {
		p.mu.Unlock()
		return nil, nil
	}
	p.attempted[session.ID] = ""
	p.mu.Unlock()

	now := time.Now().UTC()
	// Callers do not hold the session lock across sink calls, so the
	// field snapshot takes it briefly here.
	session.Lock()
	ticket := &domain.Ticket{
		ID:            uuid.NewString(),
		CallID:        session.ID,
		CustomerName:  session.FieldValue(domain.FieldFullName),
		CustomerPhone: session.FieldValue(domain.FieldPhone),
		CustomerEmail: session.FieldValue(domain.FieldEmail),
		Department:    decision.Department,
		Priority:      p.TicketPriority(decision, subject, session.Language),
		Status:        domain.TicketOpen,
		Subject:       subject,
		Description:   decision.Reasoning,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	session.Unlock()

	if err := p.sink.SaveTicket(ctx, ticket); err != nil {
		p.log.Error().Err(err).Str("call", session.ID).Msg("ticket creation failed")
		return nil, fmt.Errorf("create ticket for call %s: %w", session.ID, err)
	}

	p.mu.Lock()
	p.attempted[session.ID] = ticket.ID
	p.mu.Unlock()

	p.log.Info().
		Str("call", session.ID).
		Str("ticket", ticket.ID).
		Str("department", string(ticket.Department)).
		Str("priority", string(ticket.Priority)).
		Msg("ticket created")
	return ticket, nil
}

// TicketID returns the ticket created for a call, if any.
func (p *Policy) TicketID(callID string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	id, ok := p.attempted[callID]
	return id, ok && id != ""
}

// Forget drops the per-call attempt record, typically when the call's
// session is removed from the registry.
func (p *Policy) Forget(callID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.attempted, callID)
}
