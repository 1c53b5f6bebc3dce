package escalate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ornina/callcenter/internal/config"
	"github.com/ornina/callcenter/internal/domain"
	"github.com/ornina/callcenter/internal/logging"
)

type fakeSink struct {
	saved []*domain.Ticket
	err   error
}

func (s *fakeSink) SaveTicket(_ context.Context, t *domain.Ticket) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, t)
	return nil
}

func testSession() *domain.CallSession {
	sess := domain.NewCallSession("call-1", domain.DirectionInbound, domain.LangEnglish)
	for field, value := range map[domain.FieldName]string{
		domain.FieldFullName: "Ahmad Saleh",
		domain.FieldPhone:    "0912345678",
		domain.FieldEmail:    "ahmad@example.com",
	} {
		f := sess.Field(field)
		f.Value = value
		f.Valid = true
	}
	return sess
}

func complaintDecision() domain.RoutingDecision {
	return domain.RoutingDecision{
		Department:   domain.DeptComplaints,
		Priority:     domain.PriorityHigh,
		CreateTicket: true,
		Reasoning:    "intent=complaint",
	}
}

func TestShouldEscalate(t *testing.T) {
	tests := []struct {
		name      string
		sentiment domain.Sentiment
		priority  domain.Priority
		want      bool
	}{
		{"angry customer", domain.SentimentAngry, domain.PriorityLow, true},
		{"urgent priority", domain.SentimentNeutral, domain.PriorityUrgent, true},
		{"frustrated alone is not enough", domain.SentimentFrustrated, domain.PriorityHigh, false},
		{"calm and routine", domain.SentimentNeutral, domain.PriorityMedium, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldEscalate(tt.sentiment, tt.priority))
		})
	}
}

func TestEnsureTicket_OnePerCall(t *testing.T) {
	sink := &fakeSink{}
	p := NewPolicy(config.Defaults().Complaints, sink, logging.Nop())
	sess := testSession()
	ctx := context.Background()

	ticket, err := p.EnsureTicket(ctx, sess, complaintDecision(), "my complaint")
	require.NoError(t, err)
	require.NotNil(t, ticket)
	assert.Equal(t, "call-1", ticket.CallID)
	assert.Equal(t, "Ahmad Saleh", ticket.CustomerName)
	assert.Equal(t, domain.TicketOpen, ticket.Status)
	assert.Equal(t, domain.PriorityHigh, ticket.Priority)

	again, err := p.EnsureTicket(ctx, sess, complaintDecision(), "my complaint")
	require.NoError(t, err)
	assert.Nil(t, again)
	assert.Len(t, sink.saved, 1)

	id, ok := p.TicketID("call-1")
	assert.True(t, ok)
	assert.Equal(t, ticket.ID, id)
}

func TestEnsureTicket_SkippedCases(t *testing.T) {
	sink := &fakeSink{}
	sess := testSession()
	ctx := context.Background()

	t.Run("decision without ticket", func(t *testing.T) {
		p := NewPolicy(config.Defaults().Complaints, sink, logging.Nop())
		decision := complaintDecision()
		decision.CreateTicket = false
		ticket, err := p.EnsureTicket(ctx, sess, decision, "just asking")
		require.NoError(t, err)
		assert.Nil(t, ticket)
	})

	t.Run("auto-create disabled", func(t *testing.T) {
		cfg := config.Defaults().Complaints
		cfg.AutoCreateTicket = false
		p := NewPolicy(cfg, sink, logging.Nop())
		ticket, err := p.EnsureTicket(ctx, sess, complaintDecision(), "my complaint")
		require.NoError(t, err)
		assert.Nil(t, ticket)
	})

	assert.Empty(t, sink.saved)
}

func TestEnsureTicket_UrgentKeywordRaisesPriority(t *testing.T) {
	p := NewPolicy(config.Defaults().Complaints, &fakeSink{}, logging.Nop())

	ticket, err := p.EnsureTicket(context.Background(), testSession(), complaintDecision(),
		"the whole platform is down, this is urgent")
	require.NoError(t, err)
	require.NotNil(t, ticket)
	assert.Equal(t, domain.PriorityUrgent, ticket.Priority)
}

func TestEnsureTicket_FailureConsumesAttempt(t *testing.T) {
	sink := &fakeSink{err: errors.New("storage down")}
	p := NewPolicy(config.Defaults().Complaints, sink, logging.Nop())
	sess := testSession()
	ctx := context.Background()

	_, err := p.EnsureTicket(ctx, sess, complaintDecision(), "my complaint")
	assert.Error(t, err)

	// The failed attempt still counts; no silent retry on later turns.
	sink.err = nil
	ticket, err := p.EnsureTicket(ctx, sess, complaintDecision(), "my complaint")
	require.NoError(t, err)
	assert.Nil(t, ticket)

	_, ok := p.TicketID("call-1")
	assert.False(t, ok)
}

func TestForget_AllowsNewAttempt(t *testing.T) {
	sink := &fakeSink{}
	p := NewPolicy(config.Defaults().Complaints, sink, logging.Nop())
	sess := testSession()
	ctx := context.Background()

	_, err := p.EnsureTicket(ctx, sess, complaintDecision(), "first")
	require.NoError(t, err)

	p.Forget("call-1")

	ticket, err := p.EnsureTicket(ctx, sess, complaintDecision(), "second")
	require.NoError(t, err)
	assert.NotNil(t, ticket)
}

func TestTicketPriority_Arabic(t *testing.T) {
	p := NewPolicy(config.Defaults().Complaints, &fakeSink{}, logging.Nop())

	decision := complaintDecision()
	got := p.TicketPriority(decision, "الموقع متوقف وهذا عاجل", domain.LangArabic)
	assert.Equal(t, domain.PriorityUrgent, got)

	got = p.TicketPriority(decision, "مشكلة عادية", domain.LangArabic)
	assert.Equal(t, domain.PriorityHigh, got)
}
