package store

// migration represents a single schema migration.
type migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations is the ordered list of all schema migrations.
var migrations = []migration{
	{
		Version: 1,
		Name:    "create calls and tickets",
		SQL: `
			CREATE TABLE calls (
				id               TEXT PRIMARY KEY,
				direction        TEXT NOT NULL,
				language         TEXT NOT NULL,
				stage            TEXT NOT NULL,
				customer_name    TEXT NOT NULL DEFAULT '',
				customer_phone   TEXT NOT NULL DEFAULT '',
				customer_email   TEXT NOT NULL DEFAULT '',
				service_type     TEXT NOT NULL DEFAULT '',
				department       TEXT NOT NULL DEFAULT '',
				priority         TEXT NOT NULL DEFAULT '',
				escalated        INTEGER NOT NULL DEFAULT 0,
				started_at       TEXT NOT NULL,
				ended_at         TEXT,
				duration_seconds INTEGER NOT NULL DEFAULT 0
			);

			CREATE INDEX idx_calls_department ON calls (department);
			CREATE INDEX idx_calls_started ON calls (started_at);

			CREATE TABLE tickets (
				id             TEXT PRIMARY KEY,
				call_id        TEXT NOT NULL REFERENCES calls(id),
				customer_name  TEXT NOT NULL DEFAULT '',
				customer_phone TEXT NOT NULL DEFAULT '',
				customer_email TEXT NOT NULL DEFAULT '',
				department     TEXT NOT NULL,
				priority       TEXT NOT NULL,
				status         TEXT NOT NULL,
				subject        TEXT NOT NULL DEFAULT '',
				description    TEXT NOT NULL DEFAULT '',
				created_at     TEXT NOT NULL,
				updated_at     TEXT NOT NULL
			);

			CREATE INDEX idx_tickets_call ON tickets (call_id);
			CREATE INDEX idx_tickets_status ON tickets (status, priority);
		`,
	},
	{
		Version: 2,
		Name:    "create transcripts",
		SQL: `
			CREATE TABLE transcripts (
				call_id       TEXT PRIMARY KEY REFERENCES calls(id),
				customer_name TEXT NOT NULL DEFAULT '',
				department    TEXT NOT NULL DEFAULT '',
				sentiment     TEXT NOT NULL DEFAULT '',
				messages      TEXT NOT NULL,
				created_at    TEXT NOT NULL
			);
		`,
	},
}
