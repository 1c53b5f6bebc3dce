package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ornina/callcenter/internal/domain"
)

// CallRecord is the persisted snapshot of a call session.
type CallRecord struct {
	ID              string               `json:"id"`
	Direction       domain.CallDirection `json:"direction"`
	Language        domain.Language      `json:"language"`
	Stage           domain.IVRStage      `json:"stage"`
	CustomerName    string               `json:"customerName,omitempty"`
	CustomerPhone   string               `json:"customerPhone,omitempty"`
	CustomerEmail   string               `json:"customerEmail,omitempty"`
	ServiceType     string               `json:"serviceType,omitempty"`
	Department      domain.Department    `json:"department,omitempty"`
	Priority        domain.Priority      `json:"priority,omitempty"`
	Escalated       bool                 `json:"escalated"`
	StartedAt       time.Time            `json:"startedAt"`
	EndedAt         *time.Time           `json:"endedAt,omitempty"`
	DurationSeconds int                  `json:"durationSeconds"`
}

// recordFromSession flattens a session into its persisted form.
func recordFromSession(s *domain.CallSession) CallRecord {
	rec := CallRecord{
		ID:              s.ID,
		Direction:       s.Direction,
		Language:        s.Language,
		Stage:           s.Stage,
		CustomerName:    s.FieldValue(domain.FieldFullName),
		CustomerPhone:   s.FieldValue(domain.FieldPhone),
		CustomerEmail:   s.FieldValue(domain.FieldEmail),
		ServiceType:     s.FieldValue(domain.FieldServiceType),
		Escalated:       s.Escalated,
		StartedAt:       s.StartedAt,
		EndedAt:         s.EndedAt,
		DurationSeconds: s.DurationSeconds,
	}
	if s.Routing != nil {
		rec.Department = s.Routing.Department
		rec.Priority = s.Routing.Priority
	}
	return rec
}

// SQLiteCallStore persists call sessions and transcripts.
type SQLiteCallStore struct {
	db *DB
}

// NewSQLiteCallStore creates a call store using the given database.
func NewSQLiteCallStore(db *DB) *SQLiteCallStore {
	return &SQLiteCallStore{db: db}
}

// SaveCall upserts the call's current snapshot. Called at creation and
// again whenever the session's state becomes final.
func (s *SQLiteCallStore) SaveCall(ctx context.Context, sess *domain.CallSession) error {
	rec := recordFromSession(sess)

	var endedAt sql.NullString
	if rec.EndedAt != nil {
		endedAt = sql.NullString{String: rec.EndedAt.UTC().Format(time.DateTime), Valid: true}
	}

	_, err := s.db.sql.ExecContext(ctx,
		`INSERT INTO calls (id, direction, language, stage, customer_name, customer_phone,
		                    customer_email, service_type, department, priority, escalated,
		                    started_at, ended_at, duration_seconds)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   stage = excluded.stage,
		   customer_name = excluded.customer_name,
		   customer_phone = excluded.customer_phone,
		   customer_email = excluded.customer_email,
		   service_type = excluded.service_type,
		   department = excluded.department,
		   priority = excluded.priority,
		   escalated = excluded.escalated,
		   ended_at = excluded.ended_at,
		   duration_seconds = excluded.duration_seconds`,
		rec.ID, rec.Direction, rec.Language, rec.Stage,
		rec.CustomerName, rec.CustomerPhone, rec.CustomerEmail, rec.ServiceType,
		rec.Department, rec.Priority, boolToInt(rec.Escalated),
		rec.StartedAt.UTC().Format(time.DateTime), endedAt, rec.DurationSeconds,
	)
	if err != nil {
		return fmt.Errorf("saving call %s: %w", rec.ID, err)
	}
	return nil
}

// GetCall returns a call snapshot by ID, or nil if not found.
func (s *SQLiteCallStore) GetCall(ctx context.Context, id string) (*CallRecord, error) {
	var rec CallRecord
	var startedAt string
	var endedAt sql.NullString
	var escalated int

	err := s.db.sql.QueryRowContext(ctx,
		`SELECT id, direction, language, stage, customer_name, customer_phone,
		        customer_email, service_type, department, priority, escalated,
		        started_at, ended_at, duration_seconds
		 FROM calls WHERE id = ?`, id,
	).Scan(
		&rec.ID, &rec.Direction, &rec.Language, &rec.Stage,
		&rec.CustomerName, &rec.CustomerPhone, &rec.CustomerEmail, &rec.ServiceType,
		&rec.Department, &rec.Priority, &escalated,
		&startedAt, &endedAt, &rec.DurationSeconds,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading call %s: %w", id, err)
	}

	rec.Escalated = escalated != 0
	rec.StartedAt, _ = time.Parse(time.DateTime, startedAt)
	if endedAt.Valid {
		t, _ := time.Parse(time.DateTime, endedAt.String)
		rec.EndedAt = &t
	}
	return &rec, nil
}

// ListCalls returns the most recent call snapshots, newest first.
func (s *SQLiteCallStore) ListCalls(ctx context.Context, limit int) ([]CallRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.sql.QueryContext(ctx,
		`SELECT id, direction, language, stage, customer_name, customer_phone,
		        customer_email, service_type, department, priority, escalated,
		        started_at, ended_at, duration_seconds
		 FROM calls ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing calls: %w", err)
	}
	defer rows.Close()

	var out []CallRecord
	for rows.Next() {
		var rec CallRecord
		var startedAt string
		var endedAt sql.NullString
		var escalated int
		if err := rows.Scan(
			&rec.ID, &rec.Direction, &rec.Language, &rec.Stage,
			&rec.CustomerName, &rec.CustomerPhone, &rec.CustomerEmail, &rec.ServiceType,
			&rec.Department, &rec.Priority, &escalated,
			&startedAt, &endedAt, &rec.DurationSeconds,
		); err != nil {
			return nil, fmt.Errorf("scanning call: %w", err)
		}
		rec.Escalated = escalated != 0
		rec.StartedAt, _ = time.Parse(time.DateTime, startedAt)
		if endedAt.Valid {
			t, _ := time.Parse(time.DateTime, endedAt.String)
			rec.EndedAt = &t
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// SaveTranscript stores a finalized transcript; messages are kept as a
// JSON blob since they are only ever read back whole.
func (s *SQLiteCallStore) SaveTranscript(ctx context.Context, t *domain.Transcript) error {
	messages, err := json.Marshal(t.Messages)
	if err != nil {
		return fmt.Errorf("encoding transcript %s: %w", t.CallID, err)
	}

	_, err = s.db.sql.ExecContext(ctx,
		`INSERT INTO transcripts (call_id, customer_name, department, sentiment, messages, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(call_id) DO UPDATE SET
		   customer_name = excluded.customer_name,
		   department = excluded.department,
		   sentiment = excluded.sentiment,
		   messages = excluded.messages`,
		t.CallID, t.CustomerName, t.Department, t.Sentiment,
		string(messages), t.CreatedAt.UTC().Format(time.DateTime),
	)
	if err != nil {
		return fmt.Errorf("saving transcript %s: %w", t.CallID, err)
	}
	return nil
}

// GetTranscript returns the transcript for a call, or nil if not found.
func (s *SQLiteCallStore) GetTranscript(ctx context.Context, callID string) (*domain.Transcript, error) {
	var t domain.Transcript
	var messages, createdAt string

	err := s.db.sql.QueryRowContext(ctx,
		`SELECT call_id, customer_name, department, sentiment, messages, created_at
		 FROM transcripts WHERE call_id = ?`, callID,
	).Scan(&t.CallID, &t.CustomerName, &t.Department, &t.Sentiment, &messages, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading transcript %s: %w", callID, err)
	}

	if err := json.Unmarshal([]byte(messages), &t.Messages); err != nil {
		return nil, fmt.Errorf("decoding transcript %s: %w", callID, err)
	}
	t.CreatedAt, _ = time.Parse(time.DateTime, createdAt)
	return &t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
