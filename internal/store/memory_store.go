package store

import (
	"context"
	"sync"

	"github.com/ornina/callcenter/internal/domain"
)

// MemoryStore is an in-process store for the "memory" backend and for
// tests. Implements the same sinks as the SQLite stores.
type MemoryStore struct {
	mu          sync.RWMutex
	calls       map[string]CallRecord
	tickets     map[string]domain.Ticket
	transcripts map[string]domain.Transcript
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		calls:       make(map[string]CallRecord),
		tickets:     make(map[string]domain.Ticket),
		transcripts: make(map[string]domain.Transcript),
	}
}

// SaveCall upserts the call's current snapshot.
func (m *MemoryStore) SaveCall(_ context.Context, sess *domain.CallSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[sess.ID] = recordFromSession(sess)
	return nil
}

// GetCall returns a call snapshot by ID, or nil if not found.
func (m *MemoryStore) GetCall(_ context.Context, id string) (*CallRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if rec, ok := m.calls[id]; ok {
		return &rec, nil
	}
	return nil, nil
}

// SaveTicket stores a ticket.
func (m *MemoryStore) SaveTicket(_ context.Context, t *domain.Ticket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tickets[t.ID] = *t
	return nil
}

// GetTicket returns a ticket by ID, or nil if not found.
func (m *MemoryStore) GetTicket(_ context.Context, id string) (*domain.Ticket, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.tickets[id]; ok {
		return &t, nil
	}
	return nil, nil
}

// TicketsForCall returns the tickets opened for a call.
func (m *MemoryStore) TicketsForCall(_ context.Context, callID string) ([]domain.Ticket, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.Ticket
	for _, t := range m.tickets {
		if t.CallID == callID {
			out = append(out, t)
		}
	}
	return out, nil
}

// SaveTranscript stores a finalized transcript.
func (m *MemoryStore) SaveTranscript(_ context.Context, t *domain.Transcript) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transcripts[t.CallID] = *t
	return nil
}

// GetTranscript returns the transcript for a call, or nil if not found.
func (m *MemoryStore) GetTranscript(_ context.Context, callID string) (*domain.Transcript, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.transcripts[callID]; ok {
		return &t, nil
	}
	return nil, nil
}
