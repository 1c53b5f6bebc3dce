package domain

import (
	"sync"
	"time"
)

// CallDirection distinguishes inbound from outbound calls.
type CallDirection string

const (
	DirectionInbound  CallDirection = "inbound"
	DirectionOutbound CallDirection = "outbound"
)

// IVRStage is a discrete step in the structured intake flow.
type IVRStage string

const (
	StageWelcome            IVRStage = "welcome"
	StageCollectName        IVRStage = "collect_name"
	StageCollectPhone       IVRStage = "collect_phone"
	StageCollectEmail       IVRStage = "collect_email"
	StageCollectServiceType IVRStage = "collect_service_type"
	StageConfirmData        IVRStage = "confirm_data"
	StageRouteToDepartment  IVRStage = "route_to_department"
	StageDepartmentHandling IVRStage = "department_handling"
	StageCallEnded          IVRStage = "call_ended"
)

// FieldName identifies a customer data field collected during intake.
type FieldName string

const (
	FieldFullName    FieldName = "name"
	FieldPhone       FieldName = "phone"
	FieldEmail       FieldName = "email"
	FieldServiceType FieldName = "service_type"
)

// CollectedFields lists every collectible field in intake order.
var CollectedFields = []FieldName{FieldFullName, FieldPhone, FieldEmail, FieldServiceType}

// CollectedField is one customer data field with its validation state.
type CollectedField struct {
	Value    string `json:"value"`
	Valid    bool   `json:"valid"`
	Retries  int    `json:"retries"`
	Escalate bool   `json:"escalate,omitempty"`
}

// CallSession tracks one call through intake and department handling.
// It is owned by the session registry and mutated only through the
// intake controller and conversation session; both serialize on the
// session's own mutex, so intake and conversation turns for one call
// never interleave.
type CallSession struct {
	mu sync.Mutex

	ID        string        `json:"id"`
	Direction CallDirection `json:"direction"`
	Language  Language      `json:"language"`
	Stage     IVRStage      `json:"stage"`

	Fields         map[FieldName]*CollectedField `json:"fields"`
	ConfirmRetries int                           `json:"confirmRetries"`
	Escalated      bool                          `json:"escalated"`
	Routing        *RoutingDecision              `json:"routing,omitempty"`

	StartedAt       time.Time  `json:"startedAt"`
	EndedAt         *time.Time `json:"endedAt,omitempty"`
	DurationSeconds int        `json:"durationSeconds"`
}

// NewCallSession creates a session positioned at the welcome stage.
func NewCallSession(id string, direction CallDirection, language Language) *CallSession {
	return &CallSession{
		ID:        id,
		Direction: direction,
		Language:  language,
		Stage:     StageWelcome,
		Fields:    make(map[FieldName]*CollectedField),
		StartedAt: time.Now(),
	}
}

// Lock acquires the per-session mutex. Callers mutating the session
// outside the registry hold it for the whole turn.
func (c *CallSession) Lock() { c.mu.Lock() }

// Unlock releases the per-session mutex.
func (c *CallSession) Unlock() { c.mu.Unlock() }

// Ended reports whether the call has been finalized. Once ended, no
// further field mutation is permitted.
func (c *CallSession) Ended() bool {
	return c.EndedAt != nil
}

// Field returns the collected field for name, creating the slot on first use.
func (c *CallSession) Field(name FieldName) *CollectedField {
	if f, ok := c.Fields[name]; ok {
		return f
	}
	f := &CollectedField{}
	c.Fields[name] = f
	return f
}

// FieldValue returns the validated value of a field, or "" if absent.
func (c *CallSession) FieldValue(name FieldName) string {
	if f, ok := c.Fields[name]; ok && f.Valid {
		return f.Value
	}
	return ""
}

// End finalizes the call and records its duration. Repeat calls are no-ops.
func (c *CallSession) End() {
	if c.Ended() {
		return
	}
	now := time.Now()
	c.EndedAt = &now
	c.Stage = StageCallEnded
	c.DurationSeconds = int(now.Sub(c.StartedAt).Seconds())
}
