package conversation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ornina/callcenter/internal/classify"
	"github.com/ornina/callcenter/internal/config"
	"github.com/ornina/callcenter/internal/domain"
	"github.com/ornina/callcenter/internal/escalate"
	"github.com/ornina/callcenter/internal/logging"
	"github.com/ornina/callcenter/internal/prompts"
)

// recordingSink captures tickets handed to the escalation policy.
type recordingSink struct {
	tickets []*domain.Ticket
	err     error
}

func (s *recordingSink) SaveTicket(_ context.Context, t *domain.Ticket) error {
	if s.err != nil {
		return s.err
	}
	s.tickets = append(s.tickets, t)
	return nil
}

func testConversation(t *testing.T, sink *recordingSink) (*Conversation, *domain.CallSession) {
	t.Helper()
	cfg := config.Defaults()
	classifier, err := classify.NewClassifier(cfg, logging.Nop())
	require.NoError(t, err)

	sess := domain.NewCallSession("call-1", domain.DirectionInbound, domain.LangEnglish)
	policy := escalate.NewPolicy(cfg.Complaints, sink, logging.Nop())
	conv := New(sess, classifier, classify.NewSentimentAnalyzer(cfg), policy, NewStaticResponder(), logging.Nop())
	return conv, sess
}

func TestConversation_OpensWithGreeting(t *testing.T) {
	conv, _ := testConversation(t, &recordingSink{})

	msgs := conv.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, domain.RoleAssistant, msgs[0].Role)
	assert.Equal(t, domain.DeptReception, msgs[0].Persona)
	assert.Equal(t, domain.DeptReception, conv.Persona())
}

func TestConversation_SwitchesPersonaOnIntent(t *testing.T) {
	conv, _ := testConversation(t, &recordingSink{})

	reply, err := conv.Respond(context.Background(), domain.Utterance{
		Text: "what is the price of a training course",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DeptSales, reply.Persona)
	assert.Equal(t, domain.DeptSales, conv.Persona())

	stats := conv.Statistics()
	assert.Equal(t, 1, stats.PersonaSwitches)
	assert.ElementsMatch(t, []domain.Department{domain.DeptReception, domain.DeptSales}, stats.PersonasUsed)
}

func TestConversation_FallbackIntentKeepsPersona(t *testing.T) {
	conv, _ := testConversation(t, &recordingSink{})

	reply, err := conv.Respond(context.Background(), domain.Utterance{Text: "hello there"})
	require.NoError(t, err)
	assert.Equal(t, domain.DeptReception, reply.Persona)
	assert.Equal(t, 0, conv.Statistics().PersonaSwitches)
}

func TestConversation_ComplaintCreatesOneTicket(t *testing.T) {
	sink := &recordingSink{}
	conv, _ := testConversation(t, sink)
	ctx := context.Background()

	reply, err := conv.Respond(ctx, domain.Utterance{
		Text: "I have a complaint, there is a problem and an error",
	})
	require.NoError(t, err)
	require.NotNil(t, reply.Ticket)
	assert.Equal(t, domain.DeptComplaints, reply.Ticket.Department)
	assert.Equal(t, domain.TicketOpen, reply.Ticket.Status)

	// A second complaint turn must not open another ticket.
	reply, err = conv.Respond(ctx, domain.Utterance{
		Text: "another complaint, still a problem and an error",
	})
	require.NoError(t, err)
	assert.Nil(t, reply.Ticket)
	assert.Len(t, sink.tickets, 1)
}

func TestConversation_TicketFailureDoesNotBreakDialogue(t *testing.T) {
	sink := &recordingSink{err: errors.New("storage down")}
	conv, _ := testConversation(t, sink)

	reply, err := conv.Respond(context.Background(), domain.Utterance{
		Text: "I have a complaint, there is a problem and an error",
	})
	require.NoError(t, err)
	assert.Nil(t, reply.Ticket)
	assert.NotEmpty(t, reply.Text)
}

func TestConversation_SentimentTrend(t *testing.T) {
	conv, _ := testConversation(t, &recordingSink{})
	ctx := context.Background()

	reply, err := conv.Respond(ctx, domain.Utterance{Text: "this is terrible, the worst, awful"})
	require.NoError(t, err)
	assert.Equal(t, domain.SentimentAngry, reply.Sentiment)
	assert.True(t, reply.Escalated)

	// A neutral turn does not reset the trend.
	reply, err = conv.Respond(ctx, domain.Utterance{Text: "okay"})
	require.NoError(t, err)
	assert.Equal(t, domain.SentimentAngry, reply.Sentiment)
}

func TestConversation_ForcePersona(t *testing.T) {
	conv, _ := testConversation(t, &recordingSink{})

	conv.ForcePersona(domain.DeptComplaints)
	assert.Equal(t, domain.DeptComplaints, conv.Persona())
	assert.Equal(t, 1, conv.Statistics().PersonaSwitches)

	// Forcing the current persona is a no-op.
	conv.ForcePersona(domain.DeptComplaints)
	assert.Equal(t, 1, conv.Statistics().PersonaSwitches)
}

func TestConversation_EndIsIdempotent(t *testing.T) {
	conv, sess := testConversation(t, &recordingSink{})
	_, err := conv.Respond(context.Background(), domain.Utterance{Text: "hello"})
	require.NoError(t, err)

	first := conv.End()
	require.NotNil(t, first)
	assert.True(t, sess.Ended())
	assert.Len(t, first.Messages, 3) // greeting, user turn, reply

	second := conv.End()
	assert.Same(t, first, second)

	_, err = conv.Respond(context.Background(), domain.Utterance{Text: "anyone?"})
	assert.ErrorIs(t, err, ErrConversationEnded)
}

func TestConversation_TranscriptSpeakers(t *testing.T) {
	conv, _ := testConversation(t, &recordingSink{})
	_, err := conv.Respond(context.Background(), domain.Utterance{Text: "hello"})
	require.NoError(t, err)

	transcript := conv.End()
	require.Len(t, transcript.Messages, 3)
	assert.Equal(t, "agent", transcript.Messages[0].Speaker)
	assert.Equal(t, "customer", transcript.Messages[1].Speaker)
	assert.Equal(t, "agent", transcript.Messages[2].Speaker)
}

func TestConversations_SharedResponderConcurrent(t *testing.T) {
	cfg := config.Defaults()
	classifier, err := classify.NewClassifier(cfg, logging.Nop())
	require.NoError(t, err)
	analyzer := classify.NewSentimentAnalyzer(cfg)

	// One responder instance serves every conversation, as the registry
	// wires it in production.
	responder := NewStaticResponder()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		sess := domain.NewCallSession(fmt.Sprintf("call-%d", i), domain.DirectionInbound, domain.LangEnglish)
		policy := escalate.NewPolicy(cfg.Complaints, &recordingSink{}, logging.Nop())
		conv := New(sess, classifier, analyzer, policy, responder, logging.Nop())

		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				reply, err := conv.Respond(context.Background(), domain.Utterance{Text: "hello there"})
				assert.NoError(t, err)
				assert.NotEmpty(t, reply.Text)
			}
		}()
	}
	wg.Wait()
}

func TestConversation_ConcurrentTurnsSameCall(t *testing.T) {
	conv, _ := testConversation(t, &recordingSink{})

	const turns = 10
	var wg sync.WaitGroup
	for i := 0; i < turns; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := conv.Respond(context.Background(), domain.Utterance{Text: "hello there"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// Every turn lands exactly one user and one assistant message on
	// top of the opening greeting.
	assert.Equal(t, 1+2*turns, conv.Statistics().TotalMessages)
}

func TestStaticResponder_RotatesAndFallsBack(t *testing.T) {
	r := NewStaticResponder()
	persona := prompts.ForDepartment(domain.DeptSales)

	first, err := r.Generate(context.Background(), persona, domain.LangEnglish, nil, "hi")
	require.NoError(t, err)
	second, err := r.Generate(context.Background(), persona, domain.LangEnglish, nil, "hi")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	arabic, err := r.Generate(context.Background(), persona, domain.LangArabic, nil, "مرحبا")
	require.NoError(t, err)
	assert.NotEmpty(t, arabic)
}
