package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ornina/callcenter/internal/domain"
	"github.com/ornina/callcenter/internal/logging"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:", logging.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func testSession() *domain.CallSession {
	sess := domain.NewCallSession("call-1", domain.DirectionInbound, domain.LangArabic)
	for field, value := range map[domain.FieldName]string{
		domain.FieldFullName:    "Ahmad Saleh",
		domain.FieldPhone:       "0912345678",
		domain.FieldEmail:       "ahmad@example.com",
		domain.FieldServiceType: "training",
	} {
		f := sess.Field(field)
		f.Value = value
		f.Valid = true
	}
	sess.Routing = &domain.RoutingDecision{
		Department: domain.DeptSales,
		Priority:   domain.PriorityMedium,
	}
	return sess
}

func testTicket(callID string) *domain.Ticket {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.Ticket{
		ID:            "ticket-1",
		CallID:        callID,
		CustomerName:  "Ahmad Saleh",
		CustomerPhone: "0912345678",
		Department:    domain.DeptComplaints,
		Priority:      domain.PriorityHigh,
		Status:        domain.TicketOpen,
		Subject:       "service not working",
		Description:   "intent=complaint",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// --- DB/Migration tests ---

func TestOpen_InMemory(t *testing.T) {
	db := testDB(t)
	assert.NotNil(t, db)
	assert.NotNil(t, db.SQL())
}

func TestMigrations_Applied(t *testing.T) {
	db := testDB(t)

	var count int
	err := db.sql.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, len(migrations), count)
}

func TestMigrations_Idempotent(t *testing.T) {
	db := testDB(t)

	// Running migrate again should be a no-op
	err := db.migrate()
	require.NoError(t, err)

	var count int
	err = db.sql.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, len(migrations), count)
}

func TestSchema_TablesExist(t *testing.T) {
	db := testDB(t)

	tables := []string{"calls", "tickets", "transcripts"}
	for _, table := range tables {
		var name string
		err := db.sql.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
	}
}

// --- Call store tests ---

func TestCallStore_SaveAndGet(t *testing.T) {
	calls := NewSQLiteCallStore(testDB(t))
	ctx := context.Background()
	sess := testSession()

	require.NoError(t, calls.SaveCall(ctx, sess))

	rec, err := calls.GetCall(ctx, sess.ID)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "Ahmad Saleh", rec.CustomerName)
	assert.Equal(t, domain.DeptSales, rec.Department)
	assert.Equal(t, domain.LangArabic, rec.Language)
	assert.Nil(t, rec.EndedAt)
}

func TestCallStore_UpsertEndedCall(t *testing.T) {
	calls := NewSQLiteCallStore(testDB(t))
	ctx := context.Background()
	sess := testSession()

	require.NoError(t, calls.SaveCall(ctx, sess))
	sess.End()
	require.NoError(t, calls.SaveCall(ctx, sess))

	rec, err := calls.GetCall(ctx, sess.ID)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, domain.StageCallEnded, rec.Stage)
	assert.NotNil(t, rec.EndedAt)
}

func TestCallStore_GetMissing(t *testing.T) {
	calls := NewSQLiteCallStore(testDB(t))

	rec, err := calls.GetCall(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestCallStore_List(t *testing.T) {
	calls := NewSQLiteCallStore(testDB(t))
	ctx := context.Background()

	for _, id := range []string{"call-a", "call-b"} {
		sess := testSession()
		sess.ID = id
		require.NoError(t, calls.SaveCall(ctx, sess))
	}

	out, err := calls.ListCalls(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestCallStore_Transcript(t *testing.T) {
	db := testDB(t)
	calls := NewSQLiteCallStore(db)
	ctx := context.Background()
	sess := testSession()
	require.NoError(t, calls.SaveCall(ctx, sess))

	transcript := &domain.Transcript{
		CallID:       sess.ID,
		CustomerName: "Ahmad Saleh",
		Department:   domain.DeptSales,
		Sentiment:    domain.SentimentPositive,
		Messages: []domain.TranscriptMessage{
			{Speaker: "agent", Content: "hello", Language: domain.LangArabic},
			{Speaker: "customer", Content: "hi", Language: domain.LangArabic},
		},
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, calls.SaveTranscript(ctx, transcript))

	got, err := calls.GetTranscript(ctx, sess.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, transcript.CustomerName, got.CustomerName)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "customer", got.Messages[1].Speaker)

	missing, err := calls.GetTranscript(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

// --- Ticket store tests ---

func TestTicketStore_SaveAndGet(t *testing.T) {
	db := testDB(t)
	calls := NewSQLiteCallStore(db)
	tickets := NewSQLiteTicketStore(db)
	ctx := context.Background()

	sess := testSession()
	require.NoError(t, calls.SaveCall(ctx, sess))

	ticket := testTicket(sess.ID)
	require.NoError(t, tickets.SaveTicket(ctx, ticket))

	got, err := tickets.GetTicket(ctx, ticket.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, ticket.Subject, got.Subject)
	assert.Equal(t, domain.TicketOpen, got.Status)
	assert.True(t, ticket.CreatedAt.Equal(got.CreatedAt))

	byCall, err := tickets.TicketsForCall(ctx, sess.ID)
	require.NoError(t, err)
	assert.Len(t, byCall, 1)
}

func TestTicketStore_OpenTicketsOrdering(t *testing.T) {
	db := testDB(t)
	calls := NewSQLiteCallStore(db)
	tickets := NewSQLiteTicketStore(db)
	ctx := context.Background()

	sess := testSession()
	require.NoError(t, calls.SaveCall(ctx, sess))

	low := testTicket(sess.ID)
	low.ID = "ticket-low"
	low.Priority = domain.PriorityLow
	urgent := testTicket(sess.ID)
	urgent.ID = "ticket-urgent"
	urgent.Priority = domain.PriorityUrgent
	resolved := testTicket(sess.ID)
	resolved.ID = "ticket-resolved"
	resolved.Status = domain.TicketResolved

	for _, tk := range []*domain.Ticket{low, urgent, resolved} {
		require.NoError(t, tickets.SaveTicket(ctx, tk))
	}

	open, err := tickets.OpenTickets(ctx)
	require.NoError(t, err)
	require.Len(t, open, 2)
	assert.Equal(t, "ticket-urgent", open[0].ID)
	assert.Equal(t, "ticket-low", open[1].ID)
}

func TestTicketStore_UpdateStatus(t *testing.T) {
	db := testDB(t)
	calls := NewSQLiteCallStore(db)
	tickets := NewSQLiteTicketStore(db)
	ctx := context.Background()

	sess := testSession()
	require.NoError(t, calls.SaveCall(ctx, sess))
	require.NoError(t, tickets.SaveTicket(ctx, testTicket(sess.ID)))

	require.NoError(t, tickets.UpdateStatus(ctx, "ticket-1", domain.TicketResolved))

	got, err := tickets.GetTicket(ctx, "ticket-1")
	require.NoError(t, err)
	assert.Equal(t, domain.TicketResolved, got.Status)

	err = tickets.UpdateStatus(ctx, "ghost", domain.TicketClosed)
	assert.Error(t, err)
}

// --- Memory store tests ---

func TestMemoryStore_RoundTrips(t *testing.T) {
	mem := NewMemoryStore()
	ctx := context.Background()
	sess := testSession()

	require.NoError(t, mem.SaveCall(ctx, sess))
	rec, err := mem.GetCall(ctx, sess.ID)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "Ahmad Saleh", rec.CustomerName)

	ticket := testTicket(sess.ID)
	require.NoError(t, mem.SaveTicket(ctx, ticket))
	got, err := mem.GetTicket(ctx, ticket.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	byCall, err := mem.TicketsForCall(ctx, sess.ID)
	require.NoError(t, err)
	assert.Len(t, byCall, 1)

	transcript := &domain.Transcript{CallID: sess.ID, CreatedAt: time.Now()}
	require.NoError(t, mem.SaveTranscript(ctx, transcript))
	tr, err := mem.GetTranscript(ctx, sess.ID)
	require.NoError(t, err)
	assert.NotNil(t, tr)

	missing, err := mem.GetCall(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
