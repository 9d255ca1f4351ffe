package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/avolkov/recap/internal/model"
)

// SQLiteSettings implements SettingsStore using SQLite. Run history lives in
// an append-only runs table; the configured section list in its own table.
type SQLiteSettings struct {
	db      *sql.DB
	entropy *rand.Rand
}

// NewSQLiteSettings opens or creates a SQLite database at the given path.
func NewSQLiteSettings(dbPath string) (*SQLiteSettings, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteSettings{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteSettings) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteSettings) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id             TEXT PRIMARY KEY,
		run_date       TEXT NOT NULL,
		run_time       TEXT NOT NULL,
		period_start   TEXT NOT NULL,
		included_paths TEXT,
		note_mtimes    TEXT,
		created_at     TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	CREATE INDEX IF NOT EXISTS idx_runs_date ON runs(run_date);

	CREATE TABLE IF NOT EXISTS sections (
		pos  INTEGER PRIMARY KEY,
		name TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Load reads the run history in insertion order plus the configured section
// names. LastRun points at the final history element.
func (s *SQLiteSettings) Load(ctx context.Context) (model.Settings, error) {
	var set model.Settings

	// ULIDs sort by creation time, which keeps same-second inserts ordered.
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_date, run_time, period_start, included_paths, note_mtimes
		 FROM runs ORDER BY created_at, id`)
	if err != nil {
		return set, fmt.Errorf("load runs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r model.RunRecord
		var included, mtimes sql.NullString
		if err := rows.Scan(&r.ID, &r.RunDate, &r.RunTime, &r.PeriodStart, &included, &mtimes); err != nil {
			return set, fmt.Errorf("scan run: %w", err)
		}
		if included.Valid {
			json.Unmarshal([]byte(included.String), &r.IncludedPaths)
		}
		if mtimes.Valid {
			json.Unmarshal([]byte(mtimes.String), &r.NoteMtimes)
		}
		set.History = append(set.History, r)
	}
	if err := rows.Err(); err != nil {
		return set, fmt.Errorf("load runs: %w", err)
	}
	if n := len(set.History); n > 0 {
		set.LastRun = &set.History[n-1]
	}

	srows, err := s.db.QueryContext(ctx, `SELECT name FROM sections ORDER BY pos`)
	if err != nil {
		return set, fmt.Errorf("load sections: %w", err)
	}
	defer srows.Close()

	for srows.Next() {
		var name string
		if err := srows.Scan(&name); err != nil {
			return set, fmt.Errorf("scan section: %w", err)
		}
		set.Sections = append(set.Sections, name)
	}
	return set, srows.Err()
}

// Save persists the settings. History rows already present keep their
// identity; new records get a ULID and are appended. The section list is
// replaced wholesale.
func (s *SQLiteSettings) Save(ctx context.Context, set model.Settings) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for i := range set.History {
		r := &set.History[i]
		if r.ID == "" {
			r.ID = s.newID()
		}

		var included, mtimes *string
		if len(r.IncludedPaths) > 0 {
			b, _ := json.Marshal(r.IncludedPaths)
			v := string(b)
			included = &v
		}
		if len(r.NoteMtimes) > 0 {
			b, _ := json.Marshal(r.NoteMtimes)
			v := string(b)
			mtimes = &v
		}

		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO runs (id, run_date, run_time, period_start, included_paths, note_mtimes, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.RunDate, r.RunTime, r.PeriodStart, included, mtimes, now)
		if err != nil {
			return fmt.Errorf("insert run: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM sections`); err != nil {
		return fmt.Errorf("clear sections: %w", err)
	}
	for i, name := range set.Sections {
		if _, err := tx.ExecContext(ctx, `INSERT INTO sections (pos, name) VALUES (?, ?)`, i, name); err != nil {
			return fmt.Errorf("insert section: %w", err)
		}
	}

	return tx.Commit()
}

// Close closes the underlying database.
func (s *SQLiteSettings) Close() error {
	return s.db.Close()
}
