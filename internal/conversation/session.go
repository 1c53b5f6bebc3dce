package conversation

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/ornina/callcenter/internal/classify"
	"github.com/ornina/callcenter/internal/domain"
	"github.com/ornina/callcenter/internal/escalate"
	"github.com/ornina/callcenter/internal/logging"
	"github.com/ornina/callcenter/internal/prompts"
	"github.com/ornina/callcenter/internal/route"
)

// ErrConversationEnded is returned when a turn arrives after End.
var ErrConversationEnded = errors.New("conversation has ended")

// Reply is the outcome of one conversation turn.
type Reply struct {
	Text      string                  `json:"text"`
	Persona   domain.Department       `json:"persona"`
	Sentiment domain.Sentiment        `json:"sentiment"`
	Decision  *domain.RoutingDecision `json:"decision,omitempty"`
	Ticket    *domain.Ticket          `json:"ticket,omitempty"`
	Escalated bool                    `json:"escalated"`
}

// Conversation is the dialogue state for a single call after (or
// alongside) intake: persona, message history, sentiment trend. Safe
// for concurrent use: all state, the underlying call session included,
// is guarded by the session's mutex, the same lock the intake
// controller serializes on.
type Conversation struct {
	session    *domain.CallSession
	classifier *classify.Classifier
	sentiment  *classify.SentimentAnalyzer
	policy     *escalate.Policy
	responder  ResponseGenerator
	log        *logging.Logger

	persona         domain.Department
	messages        []domain.Message
	personaSwitches int
	escalations     int
	overall         domain.Sentiment
	startedAt       time.Time
	ended           bool
	transcript      *domain.Transcript
}

// New creates a conversation for the session, opening with the
// reception persona's greeting.
func New(
	session *domain.CallSession,
	classifier *classify.Classifier,
	sentiment *classify.SentimentAnalyzer,
	policy *escalate.Policy,
	responder ResponseGenerator,
	log *logging.Logger,
) *Conversation {
	c := &Conversation{
		session:    session,
		classifier: classifier,
		sentiment:  sentiment,
		policy:     policy,
		responder:  responder,
		log:        log.Sub("conversation"),
		persona:    domain.DeptReception,
		overall:    domain.SentimentNeutral,
		startedAt:  time.Now().UTC(),
	}
	c.append(domain.RoleAssistant, prompts.Reception(session.Language, "greeting"), domain.DeptReception)
	return c
}

// Respond processes one customer turn: classify intent, update the
// sentiment trend, apply routing and escalation policy, switch persona
// if warranted, and generate the reply. The session lock covers the
// state transitions only; the ticket sink and response generator run
// unlocked so a slow collaborator cannot wedge the rest of the call.
func (c *Conversation) Respond(ctx context.Context, utt domain.Utterance) (Reply, error) {
	c.session.Lock()
	if c.ended {
		c.session.Unlock()
		return Reply{}, ErrConversationEnded
	}
	if utt.Language == "" {
		utt.Language = c.session.Language
	}

	c.append(domain.RoleUser, utt.Text, "")

	det := c.classifier.Detect(utt)
	sres := c.sentiment.Analyze(utt)
	if sres.Sentiment != domain.SentimentNeutral {
		// The trend follows the latest non-neutral signal; a single
		// neutral turn does not reset an angry customer.
		c.overall = sres.Sentiment
	}

	decision := route.Decide(det, c.overall)

	// Fallback intent carries no switching signal; stay in persona.
	if det.Intent != domain.IntentInquiry && decision.Department != c.persona {
		c.switchPersona(decision.Department)
	}

	if escalate.ShouldEscalate(c.overall, decision.Priority) {
		decision.EscalateToHuman = true
		c.escalations++
		c.session.Escalated = true
	}

	persona := c.persona
	sentiment := c.overall
	history := slices.Clone(c.messages)
	c.session.Unlock()

	ticket, err := c.policy.EnsureTicket(ctx, c.session, decision, utt.Text)
	if err != nil {
		// Ticket persistence failures never break the dialogue.
		c.log.Warn().Err(err).Str("call", c.session.ID).Msg("continuing without ticket confirmation")
	}

	text, err := c.responder.Generate(ctx, prompts.ForDepartment(persona), utt.Language, history, utt.Text)
	if err != nil {
		c.log.Error().Err(err).Str("call", c.session.ID).Msg("response generation failed")
		text = prompts.Reception(utt.Language, "hold_message")
	}

	c.session.Lock()
	// The call may have ended while the collaborators ran; the late
	// reply is still returned but no longer recorded.
	if !c.ended {
		c.append(domain.RoleAssistant, text, persona)
	}
	c.session.Unlock()

	return Reply{
		Text:      text,
		Persona:   persona,
		Sentiment: sentiment,
		Decision:  &decision,
		Ticket:    ticket,
		Escalated: decision.EscalateToHuman,
	}, nil
}

// ForcePersona switches the active persona regardless of detected
// intent, e.g. on supervisor transfer.
func (c *Conversation) ForcePersona(dept domain.Department) {
	c.session.Lock()
	defer c.session.Unlock()
	if dept != c.persona {
		c.switchPersona(dept)
	}
}

// Persona returns the currently active persona's department.
func (c *Conversation) Persona() domain.Department {
	c.session.Lock()
	defer c.session.Unlock()
	return c.persona
}

// Statistics returns a reporting snapshot of the conversation.
func (c *Conversation) Statistics() domain.Statistics {
	c.session.Lock()
	defer c.session.Unlock()

	stats := domain.Statistics{
		CallID:           c.session.ID,
		CurrentPersona:   c.persona,
		TotalMessages:    len(c.messages),
		PersonaSwitches:  c.personaSwitches,
		Escalations:      c.escalations,
		OverallSentiment: c.overall,
		StartedAt:        c.startedAt,
	}
	for _, m := range c.messages {
		switch m.Role {
		case domain.RoleUser:
			stats.UserMessages++
		case domain.RoleAssistant:
			stats.AssistantMessages++
		}
		if m.Persona != "" && !slices.Contains(stats.PersonasUsed, m.Persona) {
			stats.PersonasUsed = append(stats.PersonasUsed, m.Persona)
		}
	}
	if n := len(c.messages); n > 0 {
		stats.LastMessageAt = c.messages[n-1].Timestamp
	}
	stats.Duration = time.Since(c.startedAt)
	return stats
}

// Messages returns a copy of the conversation history.
func (c *Conversation) Messages() []domain.Message {
	c.session.Lock()
	defer c.session.Unlock()
	return slices.Clone(c.messages)
}

// End finalizes the conversation and returns the transcript snapshot.
// Idempotent: repeated calls return the same snapshot.
func (c *Conversation) End() *domain.Transcript {
	c.session.Lock()
	defer c.session.Unlock()

	if c.ended {
		return c.transcript
	}
	c.ended = true
	c.session.End()

	t := &domain.Transcript{
		CallID:       c.session.ID,
		CustomerName: c.session.FieldValue(domain.FieldFullName),
		Department:   c.persona,
		Sentiment:    c.overall,
		Messages:     make([]domain.TranscriptMessage, 0, len(c.messages)),
		CreatedAt:    time.Now().UTC(),
	}
	for _, m := range c.messages {
		t.Messages = append(t.Messages, domain.TranscriptMessage{
			Speaker:   speakerFor(m.Role),
			Content:   m.Content,
			Language:  c.session.Language,
			Timestamp: m.Timestamp,
		})
	}
	c.transcript = t

	c.log.Info().
		Str("call", c.session.ID).
		Int("messages", len(c.messages)).
		Str("sentiment", string(c.overall)).
		Msg("conversation ended")
	return t
}

// Ended reports whether End has been called.
func (c *Conversation) Ended() bool {
	c.session.Lock()
	defer c.session.Unlock()
	return c.ended
}

func (c *Conversation) switchPersona(dept domain.Department) {
	c.log.Info().
		Str("call", c.session.ID).
		Str("from", string(c.persona)).
		Str("to", string(dept)).
		Msg("persona switch")
	c.persona = dept
	c.personaSwitches++
}

func (c *Conversation) append(role, content string, persona domain.Department) {
	c.messages = append(c.messages, domain.Message{
		Role:      role,
		Content:   content,
		Persona:   persona,
		Timestamp: time.Now().UTC(),
	})
}

func speakerFor(role string) string {
	switch role {
	case domain.RoleUser:
		return "customer"
	case domain.RoleAssistant:
		return "agent"
	default:
		return "system"
	}
}
