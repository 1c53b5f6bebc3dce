// Package session owns the lifecycle of active calls: creation with
// optional CRM pre-population, lookup, and idempotent teardown with
// persistence handoff.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/ornina/callcenter/internal/classify"
	"github.com/ornina/callcenter/internal/config"
	"github.com/ornina/callcenter/internal/conversation"
	"github.com/ornina/callcenter/internal/domain"
	"github.com/ornina/callcenter/internal/escalate"
	"github.com/ornina/callcenter/internal/intake"
	"github.com/ornina/callcenter/internal/logging"
)

// ErrNotFound is returned for lookups of unknown call IDs.
var ErrNotFound = errors.New("call not found")

// CallSink persists call snapshots.
type CallSink interface {
	SaveCall(ctx context.Context, sess *domain.CallSession) error
}

// TranscriptSink receives the final transcript when a call ends.
type TranscriptSink interface {
	SaveTranscript(ctx context.Context, t *domain.Transcript) error
}

// Call bundles the per-call collaborators managed by the registry.
type Call struct {
	Session      *domain.CallSession
	Intake       *intake.Controller
	Conversation *conversation.Conversation
}

// Registry tracks every active call. Safe for concurrent use: the
// registry lock covers only the map, while each call's intake
// controller and conversation serialize on the call session's own
// mutex.
type Registry struct {
	cfg         config.Config
	classifier  *classify.Classifier
	sentiment   *classify.SentimentAnalyzer
	policy      *escalate.Policy
	responder   conversation.ResponseGenerator
	calls       CallSink
	transcripts TranscriptSink
	log         *logging.Logger

	mu     sync.RWMutex
	active map[string]*Call
}

// NewRegistry creates an empty call registry.
func NewRegistry(
	cfg config.Config,
	classifier *classify.Classifier,
	sentiment *classify.SentimentAnalyzer,
	policy *escalate.Policy,
	responder conversation.ResponseGenerator,
	calls CallSink,
	transcripts TranscriptSink,
	log *logging.Logger,
) *Registry {
	return &Registry{
		cfg:         cfg,
		classifier:  classifier,
		sentiment:   sentiment,
		policy:      policy,
		responder:   responder,
		calls:       calls,
		transcripts: transcripts,
		log:         log.Sub("session"),
		active:      make(map[string]*Call),
	}
}

// Create starts a new call session. Hints from the CRM pre-populate
// collected fields when they pass validation, letting intake skip those
// stages.
func (r *Registry) Create(ctx context.Context, direction domain.CallDirection, lang domain.Language, hints domain.CustomerHints) (*Call, error) {
	if lang == "" {
		lang = domain.Language(r.cfg.General.DefaultLanguage)
	}

	sess := domain.NewCallSession(uuid.NewString(), direction, lang)
	prefill(sess, r.cfg.Reception, hints)

	call := &Call{
		Session: sess,
		Intake:  intake.NewController(sess, r.cfg.Reception, r.classifier, r.log),
		Conversation: conversation.New(
			sess, r.classifier, r.sentiment, r.policy, r.responder, r.log),
	}

	r.mu.Lock()
	r.active[sess.ID] = call
	r.mu.Unlock()

	if err := r.calls.SaveCall(ctx, sess); err != nil {
		r.mu.Lock()
		delete(r.active, sess.ID)
		r.mu.Unlock()
		return nil, fmt.Errorf("persist new call: %w", err)
	}

	r.log.Info().
		Str("call", sess.ID).
		Str("direction", string(direction)).
		Str("language", string(lang)).
		Msg("call created")
	return call, nil
}

// Get returns the active call for an ID.
func (r *Registry) Get(id string) (*Call, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	call, ok := r.active[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return call, nil
}

// List returns the active calls in no particular order.
func (r *Registry) List() []*Call {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Call, 0, len(r.active))
	for _, c := range r.active {
		out = append(out, c)
	}
	return out
}

// Len returns the number of active calls.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.active)
}

// End finalizes a call: the conversation is closed, the transcript and
// final call snapshot are persisted, and the call stays queryable until
// Remove. Idempotent; repeat calls return the same transcript.
func (r *Registry) End(ctx context.Context, id string) (*domain.Transcript, error) {
	call, err := r.Get(id)
	if err != nil {
		return nil, err
	}

	already := call.Conversation.Ended()
	transcript := call.Conversation.End()
	if already {
		return transcript, nil
	}

	if err := r.transcripts.SaveTranscript(ctx, transcript); err != nil {
		r.log.Error().Err(err).Str("call", id).Msg("transcript persistence failed")
	}
	if err := r.calls.SaveCall(ctx, call.Session); err != nil {
		r.log.Error().Err(err).Str("call", id).Msg("final call snapshot failed")
	}

	r.log.Info().
		Str("call", id).
		Int("durationSeconds", call.Session.DurationSeconds).
		Msg("call ended")
	return transcript, nil
}

// Remove drops an ended call from the registry. Ending is forced if the
// caller skipped End.
func (r *Registry) Remove(ctx context.Context, id string) error {
	if _, err := r.End(ctx, id); err != nil {
		return err
	}

	r.mu.Lock()
	delete(r.active, id)
	r.mu.Unlock()

	r.policy.Forget(id)
	return nil
}

// prefill seeds collected fields from CRM hints that pass validation.
// Invalid hints are ignored; intake will collect those fields normally.
func prefill(sess *domain.CallSession, cfg config.ReceptionConfig, hints domain.CustomerHints) {
	v := intake.NewValidator(cfg)
	for field, value := range map[domain.FieldName]string{
		domain.FieldFullName: hints.Name,
		domain.FieldPhone:    hints.Phone,
		domain.FieldEmail:    hints.Email,
	} {
		if value == "" {
			continue
		}
		if res := v.Validate(field, value); res.Valid {
			f := sess.Field(field)
			f.Value = res.Cleaned
			f.Valid = true
		}
	}
}
