package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ornina/callcenter/internal/domain"
)

// SQLiteTicketStore persists support tickets. Implements the
// escalation policy's ticket sink.
type SQLiteTicketStore struct {
	db *DB
}

// NewSQLiteTicketStore creates a ticket store using the given database.
func NewSQLiteTicketStore(db *DB) *SQLiteTicketStore {
	return &SQLiteTicketStore{db: db}
}

// SaveTicket inserts a new ticket.
func (s *SQLiteTicketStore) SaveTicket(ctx context.Context, t *domain.Ticket) error {
	_, err := s.db.sql.ExecContext(ctx,
		`INSERT INTO tickets (id, call_id, customer_name, customer_phone, customer_email,
		                      department, priority, status, subject, description,
		                      created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.CallID, t.CustomerName, t.CustomerPhone, t.CustomerEmail,
		t.Department, t.Priority, t.Status, t.Subject, t.Description,
		t.CreatedAt.UTC().Format(time.DateTime), t.UpdatedAt.UTC().Format(time.DateTime),
	)
	if err != nil {
		return fmt.Errorf("saving ticket %s: %w", t.ID, err)
	}
	return nil
}

// GetTicket returns a ticket by ID, or nil if not found.
func (s *SQLiteTicketStore) GetTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	row := s.db.sql.QueryRowContext(ctx,
		`SELECT id, call_id, customer_name, customer_phone, customer_email,
		        department, priority, status, subject, description, created_at, updated_at
		 FROM tickets WHERE id = ?`, id)
	t, err := scanTicket(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading ticket %s: %w", id, err)
	}
	return t, nil
}

// TicketsForCall returns the tickets opened for a call.
func (s *SQLiteTicketStore) TicketsForCall(ctx context.Context, callID string) ([]domain.Ticket, error) {
	return s.query(ctx,
		`SELECT id, call_id, customer_name, customer_phone, customer_email,
		        department, priority, status, subject, description, created_at, updated_at
		 FROM tickets WHERE call_id = ? ORDER BY created_at`, callID)
}

// OpenTickets returns unresolved tickets, most urgent first.
func (s *SQLiteTicketStore) OpenTickets(ctx context.Context) ([]domain.Ticket, error) {
	return s.query(ctx,
		`SELECT id, call_id, customer_name, customer_phone, customer_email,
		        department, priority, status, subject, description, created_at, updated_at
		 FROM tickets WHERE status IN (?, ?)
		 ORDER BY CASE priority
		   WHEN 'urgent' THEN 0 WHEN 'high' THEN 1 WHEN 'medium' THEN 2 ELSE 3
		 END, created_at`,
		domain.TicketOpen, domain.TicketInProgress)
}

// UpdateStatus moves a ticket to a new lifecycle state.
func (s *SQLiteTicketStore) UpdateStatus(ctx context.Context, id string, status domain.TicketStatus) error {
	res, err := s.db.sql.ExecContext(ctx,
		`UPDATE tickets SET status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now().UTC().Format(time.DateTime), id)
	if err != nil {
		return fmt.Errorf("updating ticket %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("ticket %s not found", id)
	}
	return nil
}

func (s *SQLiteTicketStore) query(ctx context.Context, q string, args ...any) ([]domain.Ticket, error) {
	rows, err := s.db.sql.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying tickets: %w", err)
	}
	defer rows.Close()

	var out []domain.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning ticket: %w", err)
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTicket(row rowScanner) (*domain.Ticket, error) {
	var t domain.Ticket
	var createdAt, updatedAt string
	err := row.Scan(
		&t.ID, &t.CallID, &t.CustomerName, &t.CustomerPhone, &t.CustomerEmail,
		&t.Department, &t.Priority, &t.Status, &t.Subject, &t.Description,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.CreatedAt, _ = time.Parse(time.DateTime, createdAt)
	t.UpdatedAt, _ = time.Parse(time.DateTime, updatedAt)
	return &t, nil
}
