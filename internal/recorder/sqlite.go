package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"PoolKeeper/internal/model"
)

// SQLiteRecorder persists historical data to a SQLite database.
type SQLiteRecorder struct {
	db     *sql.DB
	mu     sync.Mutex
	logger *zap.SugaredLogger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, logger *zap.SugaredLogger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	// WAL mode so dashboards can read while the bot writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, logger: logger}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Infow("sqlite recorder opened", "path", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS day_snapshots (
			date               TEXT PRIMARY KEY,
			morning_level      INTEGER,
			final_level        INTEGER,
			sleep_hours        REAL,
			sleep_quality      TEXT,
			dysregulation_tier TEXT,
			capacity_expansion REAL,
			drain_count        INTEGER,
			recharge_count     INTEGER,
			habits_completed   INTEGER,
			habits_total       INTEGER,
			streak             INTEGER
		)`,

		`CREATE TABLE IF NOT EXISTS drain_events (
			id         TEXT PRIMARY KEY,
			date       TEXT NOT NULL,
			logged_at  INTEGER NOT NULL,
			name       TEXT,
			key        TEXT,
			category   TEXT,
			resolution TEXT,
			minutes    REAL,
			base_rate  REAL,
			multiplier REAL,
			magnitude  REAL,
			crash      REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_drain_ts ON drain_events(logged_at)`,

		`CREATE TABLE IF NOT EXISTS recharge_events (
			id         TEXT PRIMARY KEY,
			date       TEXT NOT NULL,
			logged_at  INTEGER NOT NULL,
			type       TEXT,
			category   TEXT,
			intensity  TEXT,
			resolution TEXT,
			boost      REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_recharge_ts ON recharge_events(logged_at)`,

		`CREATE TABLE IF NOT EXISTS exercise_sessions (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			kind      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_exercise_ts ON exercise_sessions(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordDay stores the closing snapshot of a day, replacing any earlier one for the same date.
func (r *SQLiteRecorder) RecordDay(snap *DaySnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	st := snap.State
	_, err := r.db.Exec(`INSERT OR REPLACE INTO day_snapshots
		(date, morning_level, final_level, sleep_hours, sleep_quality, dysregulation_tier,
		 capacity_expansion, drain_count, recharge_count, habits_completed, habits_total, streak)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		st.Date, int(st.MorningLevel), int(snap.FinalLevel),
		st.Metadata.SleepHours, string(st.Metadata.SleepQuality), string(st.Metadata.Tier),
		float64(st.Metadata.CapacityExpansion),
		len(st.DrainActivities), len(st.RechargeActivities),
		snap.HabitsCompleted, snap.HabitsTotal, snap.Streak,
	)
	return err
}

func (r *SQLiteRecorder) RecordDrain(date string, evt *model.DrainEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO drain_events
		(id, date, logged_at, name, key, category, resolution, minutes, base_rate, multiplier, magnitude, crash)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		evt.ID, date, evt.LoggedAt.Unix(), evt.Name, evt.Key, string(evt.Category), string(evt.Resolution),
		evt.Minutes, float64(evt.BaseRate), evt.Multiplier, float64(evt.Magnitude), float64(evt.Crash.Amount),
	)
	return err
}

func (r *SQLiteRecorder) RecordRecharge(date string, evt *model.RechargeEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO recharge_events
		(id, date, logged_at, type, category, intensity, resolution, boost)
		VALUES (?,?,?,?,?,?,?,?)`,
		evt.ID, date, evt.LoggedAt.Unix(), evt.Type, evt.Category, evt.Intensity,
		string(evt.Resolution), float64(evt.Boost),
	)
	return err
}

func (r *SQLiteRecorder) RecordExercise(s *model.ExerciseSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO exercise_sessions (timestamp, kind) VALUES (?,?)`,
		s.At.Unix(), s.Kind,
	)
	return err
}

// ExerciseSince returns sessions at or after since, oldest first.
func (r *SQLiteRecorder) ExerciseSince(since time.Time) ([]model.ExerciseSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT timestamp, kind FROM exercise_sessions
		WHERE timestamp >= ? ORDER BY timestamp`, since.Unix())
	if err != nil {
		return nil, fmt.Errorf("query exercise: %w", err)
	}
	defer rows.Close()

	var out []model.ExerciseSession
	for rows.Next() {
		var ts int64
		var kind sql.NullString
		if err := rows.Scan(&ts, &kind); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		out = append(out, model.ExerciseSession{At: time.Unix(ts, 0), Kind: kind.String})
	}
	return out, rows.Err()
}

// DrainMinutesSince totals drain minutes per day and category for events at or after since.
func (r *SQLiteRecorder) DrainMinutesSince(since time.Time) ([]DrainMinutes, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT date, category, SUM(minutes) FROM drain_events
		WHERE logged_at >= ? GROUP BY date, category ORDER BY date, category`, since.Unix())
	if err != nil {
		return nil, fmt.Errorf("query drain minutes: %w", err)
	}
	defer rows.Close()

	var out []DrainMinutes
	for rows.Next() {
		var dm DrainMinutes
		var cat string
		if err := rows.Scan(&dm.Date, &cat, &dm.Minutes); err != nil {
			return nil, fmt.Errorf("scan drain minutes: %w", err)
		}
		dm.Category = model.ActivityCategory(cat)
		out = append(out, dm)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	r.logger.Infow("closing sqlite recorder")
	return r.db.Close()
}
