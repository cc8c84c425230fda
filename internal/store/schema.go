package store

import "fmt"

// initSchema creates all tables and indexes if they do not exist.
func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS programs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		description TEXT,
		is_active INTEGER NOT NULL DEFAULT 1,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS groups (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		program_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		cohort TEXT,
		start_date TEXT,
		end_date TEXT,
		is_active INTEGER NOT NULL DEFAULT 1,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		FOREIGN KEY (program_id) REFERENCES programs(id)
	);
	CREATE INDEX IF NOT EXISTS idx_groups_program ON groups(program_id);

	CREATE TABLE IF NOT EXISTS members (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		email TEXT UNIQUE,
		is_active INTEGER NOT NULL DEFAULT 1,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS group_members (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		group_id INTEGER NOT NULL,
		member_id INTEGER NOT NULL,
		role TEXT NOT NULL DEFAULT 'participant',
		joined_at INTEGER NOT NULL,
		left_at INTEGER,
		is_active INTEGER NOT NULL DEFAULT 1,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		UNIQUE (group_id, member_id),
		FOREIGN KEY (group_id) REFERENCES groups(id),
		FOREIGN KEY (member_id) REFERENCES members(id)
	);
	CREATE INDEX IF NOT EXISTS idx_group_members_group ON group_members(group_id);
	CREATE INDEX IF NOT EXISTS idx_group_members_member ON group_members(member_id);

	CREATE TABLE IF NOT EXISTS sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		group_id INTEGER NOT NULL,
		date INTEGER NOT NULL,
		session_number INTEGER NOT NULL,
		notes TEXT,
		transcript TEXT,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		FOREIGN KEY (group_id) REFERENCES groups(id)
	);
	CREATE INDEX IF NOT EXISTS idx_sessions_group ON sessions(group_id);

	CREATE TABLE IF NOT EXISTS session_attendance (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id INTEGER NOT NULL,
		member_id INTEGER NOT NULL,
		status TEXT NOT NULL,
		notes TEXT,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		UNIQUE (session_id, member_id),
		FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE,
		FOREIGN KEY (member_id) REFERENCES members(id)
	);
	CREATE INDEX IF NOT EXISTS idx_attendance_member ON session_attendance(member_id);

	CREATE TABLE IF NOT EXISTS goals (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		member_id INTEGER NOT NULL,
		session_id INTEGER NOT NULL,
		goal TEXT NOT NULL,
		is_vague INTEGER NOT NULL DEFAULT 0,
		is_completed INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		FOREIGN KEY (member_id) REFERENCES members(id),
		FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
	);
	CREATE INDEX IF NOT EXISTS idx_goals_member ON goals(member_id);

	CREATE TABLE IF NOT EXISTS challenges (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		member_id INTEGER NOT NULL,
		session_id INTEGER NOT NULL,
		description TEXT NOT NULL,
		category TEXT,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		FOREIGN KEY (member_id) REFERENCES members(id),
		FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
	);
	CREATE INDEX IF NOT EXISTS idx_challenges_member ON challenges(member_id);

	CREATE TABLE IF NOT EXISTS challenge_strategies (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		challenge_id INTEGER NOT NULL,
		suggested_by INTEGER,
		summary TEXT NOT NULL,
		tag TEXT,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		FOREIGN KEY (challenge_id) REFERENCES challenges(id) ON DELETE CASCADE,
		FOREIGN KEY (suggested_by) REFERENCES members(id)
	);
	CREATE INDEX IF NOT EXISTS idx_strategies_challenge ON challenge_strategies(challenge_id);

	CREATE TABLE IF NOT EXISTS member_stucks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		member_id INTEGER NOT NULL,
		session_id INTEGER NOT NULL,
		classification TEXT NOT NULL,
		stuck_summary TEXT NOT NULL,
		exact_quotes TEXT NOT NULL DEFAULT '[]',
		potential_next_step TEXT,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		FOREIGN KEY (member_id) REFERENCES members(id),
		FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
	);
	CREATE INDEX IF NOT EXISTS idx_stucks_member ON member_stucks(member_id);

	CREATE TABLE IF NOT EXISTS marketing_activities (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		member_id INTEGER NOT NULL,
		session_id INTEGER NOT NULL,
		stage TEXT NOT NULL,
		activity TEXT NOT NULL,
		quantity INTEGER NOT NULL DEFAULT 0,
		is_win INTEGER NOT NULL DEFAULT 0,
		contract_type TEXT,
		revenue REAL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		FOREIGN KEY (member_id) REFERENCES members(id),
		FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
	);
	CREATE INDEX IF NOT EXISTS idx_marketing_member ON marketing_activities(member_id);

	CREATE TABLE IF NOT EXISTS marketing_outcomes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		activity_id INTEGER NOT NULL,
		no_of_meetings INTEGER NOT NULL DEFAULT 0,
		no_of_proposals INTEGER NOT NULL DEFAULT 0,
		no_of_clients INTEGER NOT NULL DEFAULT 0,
		notes TEXT,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		FOREIGN KEY (activity_id) REFERENCES marketing_activities(id) ON DELETE CASCADE
	);
	CREATE INDEX IF NOT EXISTS idx_outcomes_activity ON marketing_outcomes(activity_id);

	CREATE TABLE IF NOT EXISTS session_sentiments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id INTEGER NOT NULL,
		sentiment_score INTEGER NOT NULL,
		rationale TEXT,
		dominant_emotion TEXT,
		confidence_score REAL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
	);
	CREATE INDEX IF NOT EXISTS idx_sentiments_session ON session_sentiments(session_id);

	CREATE TABLE IF NOT EXISTS session_sentiment_statements (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_sentiment_id INTEGER NOT NULL,
		member_id INTEGER NOT NULL,
		emotions TEXT NOT NULL DEFAULT '[]',
		exact_quotes TEXT NOT NULL DEFAULT '[]',
		is_negative INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		FOREIGN KEY (session_sentiment_id) REFERENCES session_sentiments(id) ON DELETE CASCADE,
		FOREIGN KEY (member_id) REFERENCES members(id)
	);
	CREATE INDEX IF NOT EXISTS idx_statements_sentiment ON session_sentiment_statements(session_sentiment_id);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}
