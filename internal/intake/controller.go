package intake

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ornina/callcenter/internal/classify"
	"github.com/ornina/callcenter/internal/config"
	"github.com/ornina/callcenter/internal/domain"
	"github.com/ornina/callcenter/internal/logging"
	"github.com/ornina/callcenter/internal/prompts"
	"github.com/ornina/callcenter/internal/route"
)

// ErrCallEnded is returned when input arrives for a finalized call.
var ErrCallEnded = errors.New("call has ended")

// StepResult is the controller's reaction to one customer input.
type StepResult struct {
	Stage     domain.IVRStage         `json:"stage"`
	Messages  []string                `json:"messages"`
	Escalated bool                    `json:"escalated"`
	Decision  *domain.RoutingDecision `json:"decision,omitempty"`

	// Done is set once the intake flow has handed the call to a
	// department (or to a human) and no longer expects input.
	Done bool `json:"done"`
}

// Controller advances one call session through the intake stages. It is
// the only mutator of the session's collected fields. Turns are
// serialized on the session's mutex, so concurrent inputs for one call
// are handled one at a time.
type Controller struct {
	cfg        config.ReceptionConfig
	session    *domain.CallSession
	validator  *Validator
	classifier *classify.Classifier
	required   []domain.FieldName
	log        *logging.Logger
}

// NewController creates an intake controller bound to a session.
func NewController(
	session *domain.CallSession,
	cfg config.ReceptionConfig,
	classifier *classify.Classifier,
	log *logging.Logger,
) *Controller {
	required := make([]domain.FieldName, 0, len(cfg.RequiredFields))
	for _, f := range cfg.RequiredFields {
		required = append(required, domain.FieldName(f))
	}
	return &Controller{
		cfg:        cfg,
		session:    session,
		validator:  NewValidator(cfg),
		classifier: classifier,
		required:   required,
		log:        log.Sub("intake"),
	}
}

// Begin opens the call: greeting plus the first collection prompt.
func (c *Controller) Begin() StepResult {
	c.session.Lock()
	defer c.session.Unlock()

	lang := c.session.Language
	res := StepResult{Messages: []string{prompts.Reception(lang, "greeting")}}
	c.advance(&res)
	res.Stage = c.session.Stage
	return res
}

// HandleInput processes one raw customer input for the current stage.
// Turns for the same call are serialized on the session mutex, shared
// with the conversation side.
func (c *Controller) HandleInput(raw string) (StepResult, error) {
	c.session.Lock()
	defer c.session.Unlock()

	if c.session.Ended() {
		return StepResult{Stage: domain.StageCallEnded}, ErrCallEnded
	}

	var res StepResult
	switch stage := c.session.Stage; {
	case stage == domain.StageWelcome:
		// Any acknowledgment moves the flow forward.
		c.advance(&res)

	case stageField[stage] != "":
		c.handleCollect(stageField[stage], raw, &res)

	case stage == domain.StageConfirmData:
		c.handleConfirmation(raw, &res)

	case stage == domain.StageDepartmentHandling:
		res.Done = true
		res.Decision = c.session.Routing
		res.Escalated = c.session.Escalated

	default:
		return StepResult{Stage: stage}, fmt.Errorf("intake: unexpected input in stage %s", stage)
	}

	res.Stage = c.session.Stage
	return res, nil
}

// handleCollect validates one field input, retrying bounded by
// MaxRetries and escalating to department handling on exhaustion.
func (c *Controller) handleCollect(field domain.FieldName, raw string, res *StepResult) {
	lang := c.session.Language
	f := c.session.Field(field)

	v := c.validator.Validate(field, raw)
	if v.Valid {
		f.Value = v.Cleaned
		f.Valid = true
		c.log.Debug().Str("call", c.session.ID).Str("field", string(field)).Msg("field collected")
		c.advance(res)
		return
	}

	f.Retries++
	c.log.Info().
		Str("call", c.session.ID).
		Str("field", string(field)).
		Int("retries", f.Retries).
		Str("error", v.Error).
		Msg("invalid field input")

	if f.Retries < c.cfg.MaxRetries {
		res.Messages = append(res.Messages,
			prompts.InvalidField(field, lang),
			prompts.AskField(field, lang))
		return
	}

	// Retries exhausted: mark the field for escalation and hand the
	// call to a human, bypassing the remaining stages.
	f.Escalate = true
	c.escalate(res, prompts.Reception(lang, "max_retries"))
}

// handleConfirmation processes the yes/no response to the collected-data
// summary. "no" restarts collection at the name stage with previously
// collected values retained.
func (c *Controller) handleConfirmation(raw string, res *StepResult) {
	lang := c.session.Language

	switch normalizeConfirmation(raw) {
	case confirmYes:
		c.session.Stage = domain.StageRouteToDepartment
		c.routeToDepartment(res)

	case confirmNo:
		c.session.Stage = domain.StageCollectName
		res.Messages = append(res.Messages,
			prompts.Reception(lang, "restart_collect"),
			prompts.AskField(domain.FieldFullName, lang))

	default:
		c.session.ConfirmRetries++
		if c.session.ConfirmRetries >= c.cfg.ConfirmationRetries {
			// Confirmation limit reached: route with the data we have.
			c.session.Stage = domain.StageRouteToDepartment
			c.routeToDepartment(res)
			return
		}
		res.Messages = append(res.Messages, prompts.Reception(lang, "confirm_reprompt"))
	}
}

// advance walks the stage machine forward, skipping stages for fields
// already valid (e.g. pre-populated from CRM hints), and emits the
// prompt for whatever stage it lands on.
func (c *Controller) advance(res *StepResult) {
	lang := c.session.Language

	for {
		next := NextStage(c.session.Stage, c.required, c.cfg.RequireConfirmation)
		c.session.Stage = next

		if field, ok := stageField[next]; ok {
			if c.session.Field(field).Valid {
				continue
			}
			res.Messages = append(res.Messages, prompts.AskField(field, lang))
			return
		}

		switch next {
		case domain.StageConfirmData:
			res.Messages = append(res.Messages, c.confirmationSummary())
			return
		case domain.StageRouteToDepartment:
			c.routeToDepartment(res)
			return
		default:
			res.Done = true
			return
		}
	}
}

// routeToDepartment classifies the collected service-type text and
// applies the routing policy, completing the intake flow.
func (c *Controller) routeToDepartment(res *StepResult) {
	lang := c.session.Language

	det := c.classifier.Detect(domain.Utterance{
		Text:     c.session.FieldValue(domain.FieldServiceType),
		Language: lang,
	})
	decision := route.Decide(det, domain.SentimentNeutral)

	c.session.Routing = &decision
	c.session.Stage = domain.StageDepartmentHandling
	res.Decision = &decision
	res.Done = true
	res.Messages = append(res.Messages,
		prompts.RoutingMessage(decision.Department, lang),
		prompts.DepartmentWelcome(decision.Department, lang))

	c.log.Info().
		Str("call", c.session.ID).
		Str("department", string(decision.Department)).
		Str("intent", string(det.Intent)).
		Float64("confidence", det.Confidence).
		Msg("call routed")
}

// escalate hands the call to a human, bypassing remaining stages.
func (c *Controller) escalate(res *StepResult, messages ...string) {
	decision := domain.RoutingDecision{
		Department:      domain.DeptReception,
		Priority:        domain.PriorityMedium,
		EscalateToHuman: true,
		Reasoning:       "field collection retries exhausted",
	}
	c.session.Escalated = true
	c.session.Routing = &decision
	c.session.Stage = domain.StageDepartmentHandling

	res.Escalated = true
	res.Decision = &decision
	res.Done = true
	res.Messages = append(res.Messages, messages...)
	res.Messages = append(res.Messages, prompts.Reception(c.session.Language, "escalation"))

	c.log.Warn().Str("call", c.session.ID).Msg("intake escalated to human")
}

// confirmationSummary renders the collected fields for customer review.
func (c *Controller) confirmationSummary() string {
	s := c.session
	return fmt.Sprintf(prompts.Reception(s.Language, "confirm_data"),
		s.FieldValue(domain.FieldFullName),
		s.FieldValue(domain.FieldPhone),
		s.FieldValue(domain.FieldEmail),
		s.FieldValue(domain.FieldServiceType))
}

type confirmation int

const (
	confirmUnclear confirmation = iota
	confirmYes
	confirmNo
)

func trimLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// normalizeConfirmation interprets boolean-like confirmation responses
// in either language, including DTMF-style "1"/"2".
func normalizeConfirmation(raw string) confirmation {
	switch normalized := trimLower(raw); normalized {
	case "1", "yes", "y", "نعم":
		return confirmYes
	case "2", "no", "n", "لا":
		return confirmNo
	default:
		return confirmUnclear
	}
}
