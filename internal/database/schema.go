package database

// schema sticks to the SQL shared by PostgreSQL and SQLite: identifiers are
// generated by the application and every timestamp is bound as a parameter.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		profile_image_url TEXT NOT NULL DEFAULT '',
		date_of_birth DATE,
		avg_cycle_length INTEGER NOT NULL DEFAULT 28,
		avg_period_length INTEGER NOT NULL DEFAULT 5,
		telegram_chat_id BIGINT,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS cycles (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		start_date DATE NOT NULL,
		end_date DATE,
		cycle_length INTEGER,
		period_length INTEGER,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_cycles_user_start ON cycles (user_id, start_date)`,
	`CREATE TABLE IF NOT EXISTS symptoms (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		cycle_id TEXT NOT NULL DEFAULT '',
		date DATE NOT NULL,
		symptom_type TEXT NOT NULL,
		severity INTEGER NOT NULL DEFAULT 1,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_symptoms_user_date ON symptoms (user_id, date)`,
	`CREATE TABLE IF NOT EXISTS chat_history (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		role TEXT NOT NULL,
		content TEXT NOT NULL,
		cycle_phase TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_chat_history_user_created ON chat_history (user_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS chat_usage (
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		day TEXT NOT NULL,
		requests INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (user_id, day)
	)`,
	`CREATE TABLE IF NOT EXISTS recipes (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		image_url TEXT NOT NULL DEFAULT '',
		ingredients TEXT NOT NULL DEFAULT '[]',
		instructions TEXT NOT NULL DEFAULT '',
		phase TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		prep_time INTEGER NOT NULL DEFAULT 0,
		calories INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS meditation_videos (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		url TEXT NOT NULL,
		thumbnail_url TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		duration_seconds INTEGER NOT NULL DEFAULT 0,
		phase TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS educational_content (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		summary TEXT NOT NULL DEFAULT '',
		body TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		phase TEXT NOT NULL DEFAULT '',
		image_url TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS favorites (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		item_type TEXT NOT NULL,
		item_id TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		UNIQUE (user_id, item_type, item_id)
	)`,
	`CREATE TABLE IF NOT EXISTS user_onboarding (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
		last_period_date DATE,
		typical_cycle_length TEXT NOT NULL DEFAULT '',
		period_duration TEXT NOT NULL DEFAULT '',
		cycle_variability TEXT NOT NULL DEFAULT '',
		health_conditions TEXT NOT NULL DEFAULT '[]',
		fertility_tracking TEXT NOT NULL DEFAULT '[]',
		track_symptoms TEXT NOT NULL DEFAULT '',
		dynamic_predictions TEXT NOT NULL DEFAULT '',
		stress_level TEXT NOT NULL DEFAULT '',
		sleep_pattern TEXT NOT NULL DEFAULT '',
		health_notes TEXT NOT NULL DEFAULT '',
		profile_mode TEXT NOT NULL DEFAULT 'regular',
		is_irregular BOOLEAN NOT NULL DEFAULT FALSE,
		show_buffer_days BOOLEAN NOT NULL DEFAULT TRUE,
		is_completed BOOLEAN NOT NULL DEFAULT FALSE,
		completed_at TIMESTAMP,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS telegram_links (
		token TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMP NOT NULL,
		consumed_at TIMESTAMP
	)`,
}
