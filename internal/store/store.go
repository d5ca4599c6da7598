// Package store persists habits, completion entries, and cached streak
// statistics in SQLite. Dates are stored as ISO strings so the database is
// inspectable with plain sqlite3.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/habitkit/habitkit/internal/domain"
	"github.com/habitkit/habitkit/internal/streak"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// Sentinel errors callers can match with errors.Is.
var (
	ErrHabitNotFound  = errors.New("habit not found")
	ErrDuplicateEntry = errors.New("habit already logged for that date")
)

const timestampLayout = time.RFC3339

// ─── Config ──────────────────────────────────────────────────────────────────

// Config holds store configuration. MaxEntryFetch caps how much entry
// history EntriesForHabit loads for a single habit; the streak engine only
// ever looks back one year, so the cap bounds recompute cost on habits with
// very long histories.
type Config struct {
	DataDir       string
	MaxEntryFetch int
}

// DefaultConfig returns the default configuration, with data under
// ~/.habitkit.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DataDir:       filepath.Join(home, ".habitkit"),
		MaxEntryFetch: 1000,
	}
}

// ─── Store ───────────────────────────────────────────────────────────────────

// Store is the SQLite-backed habit repository.
type Store struct {
	db  *sql.DB
	cfg Config
}

// New creates a new Store with the given configuration. It creates the data
// directory if needed, opens SQLite with WAL mode, and runs migrations.
func New(cfg Config) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, fmt.Errorf("store: create data dir: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, "habits.db")
	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	// SQLite performance pragmas
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("store: pragma %q: %w", p, err)
		}
	}

	if cfg.MaxEntryFetch <= 0 {
		cfg.MaxEntryFetch = DefaultConfig().MaxEntryFetch
	}

	s := &Store{db: db, cfg: cfg}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("store: migration: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ─── Migrations ──────────────────────────────────────────────────────────────

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS habits (
			id           TEXT PRIMARY KEY,
			name         TEXT NOT NULL,
			description  TEXT NOT NULL DEFAULT '',
			category     TEXT NOT NULL,
			frequency    TEXT NOT NULL,
			target_value INTEGER NOT NULL DEFAULT 0,
			unit         TEXT NOT NULL DEFAULT '',
			created_at   TEXT NOT NULL,
			active       INTEGER NOT NULL DEFAULT 1
		);

		CREATE INDEX IF NOT EXISTS idx_habits_active   ON habits(active);
		CREATE INDEX IF NOT EXISTS idx_habits_category ON habits(category);

		CREATE TABLE IF NOT EXISTS entries (
			id           TEXT PRIMARY KEY,
			habit_id     TEXT NOT NULL,
			logged_at    TEXT NOT NULL,
			completed_on TEXT NOT NULL,
			value        INTEGER NOT NULL DEFAULT 0,
			intensity    INTEGER NOT NULL DEFAULT 0,
			notes        TEXT NOT NULL DEFAULT '',
			FOREIGN KEY (habit_id) REFERENCES habits(id) ON DELETE CASCADE
		);

		CREATE UNIQUE INDEX IF NOT EXISTS idx_entries_habit_day ON entries(habit_id, completed_on);
		CREATE INDEX IF NOT EXISTS idx_entries_habit ON entries(habit_id, completed_on DESC);

		CREATE TABLE IF NOT EXISTS streaks (
			habit_id          TEXT PRIMARY KEY,
			current_streak    INTEGER NOT NULL DEFAULT 0,
			longest_streak    INTEGER NOT NULL DEFAULT 0,
			last_completed    TEXT,
			total_completions INTEGER NOT NULL DEFAULT 0,
			completion_rate   REAL    NOT NULL DEFAULT 0,
			updated_at        TEXT    NOT NULL,
			FOREIGN KEY (habit_id) REFERENCES habits(id) ON DELETE CASCADE
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

// ─── Habits ──────────────────────────────────────────────────────────────────

// CreateHabit inserts a new habit. The frequency is stored in its JSON
// form (domain.Frequency.MarshalJSON) so the column stays readable and
// survives new variants without a parser change.
func (s *Store) CreateHabit(h *domain.Habit) error {
	freq, err := json.Marshal(h.Frequency)
	if err != nil {
		return fmt.Errorf("create habit: encode frequency: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO habits (id, name, description, category, frequency, target_value, unit, created_at, active)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		h.ID, h.Name, h.Description, h.Category, string(freq),
		h.TargetValue, h.Unit, h.CreatedAt.UTC().Format(timestampLayout), boolToInt(h.Active),
	)
	if err != nil {
		return fmt.Errorf("create habit: %w", err)
	}
	return nil
}

// GetHabit retrieves a habit by ID, whether active or archived.
func (s *Store) GetHabit(id string) (*domain.Habit, error) {
	row := s.db.QueryRow(
		`SELECT id, name, description, category, frequency, target_value, unit, created_at, active
		 FROM habits WHERE id = ?`, id,
	)
	h, err := scanHabit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrHabitNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get habit: %w", err)
	}
	return h, nil
}

// UpdateHabit writes the habit's mutable fields back to the database.
func (s *Store) UpdateHabit(h *domain.Habit) error {
	freq, err := json.Marshal(h.Frequency)
	if err != nil {
		return fmt.Errorf("update habit: encode frequency: %w", err)
	}
	res, err := s.db.Exec(
		`UPDATE habits
		 SET name = ?, description = ?, category = ?, frequency = ?, target_value = ?, unit = ?, active = ?
		 WHERE id = ?`,
		h.Name, h.Description, h.Category, string(freq),
		h.TargetValue, h.Unit, boolToInt(h.Active), h.ID,
	)
	if err != nil {
		return fmt.Errorf("update habit: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrHabitNotFound, h.ID)
	}
	return nil
}

// ArchiveHabit soft-deletes a habit by marking it inactive. Entries and
// streak history are kept.
func (s *Store) ArchiveHabit(id string) error {
	res, err := s.db.Exec(`UPDATE habits SET active = 0 WHERE id = ? AND active = 1`, id)
	if err != nil {
		return fmt.Errorf("archive habit: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrHabitNotFound, id)
	}
	return nil
}

// DeleteHabit permanently removes a habit and, via cascade, its entries and
// streak row.
func (s *Store) DeleteHabit(id string) error {
	res, err := s.db.Exec(`DELETE FROM habits WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrHabitNotFound, id)
	}
	return nil
}

// ListHabits returns habits ordered by creation time, newest first. Archived
// habits are included only when includeArchived is set.
func (s *Store) ListHabits(includeArchived bool) ([]domain.Habit, error) {
	query := `SELECT id, name, description, category, frequency, target_value, unit, created_at, active
	          FROM habits`
	if !includeArchived {
		query += ` WHERE active = 1`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var habits []domain.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, fmt.Errorf("list habits: %w", err)
		}
		habits = append(habits, *h)
	}
	return habits, rows.Err()
}

// ─── Entries ─────────────────────────────────────────────────────────────────

// CreateEntry inserts a completion entry. Logging the same habit twice for
// one calendar day returns ErrDuplicateEntry.
func (s *Store) CreateEntry(e *domain.Entry) error {
	_, err := s.db.Exec(
		`INSERT INTO entries (id, habit_id, logged_at, completed_on, value, intensity, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.HabitID,
		e.LoggedAt.UTC().Format(timestampLayout),
		e.CompletedOn.Format(domain.DateLayout),
		e.Value, e.Intensity, e.Notes,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s on %s", ErrDuplicateEntry, e.HabitID, e.CompletedOn.Format(domain.DateLayout))
		}
		return fmt.Errorf("create entry: %w", err)
	}
	return nil
}

// EntriesForHabit returns a habit's entries, oldest first. Habits with more
// than MaxEntryFetch entries yield the most recent MaxEntryFetch of them.
func (s *Store) EntriesForHabit(habitID string) ([]domain.Entry, error) {
	return s.queryEntries(
		`SELECT id, habit_id, logged_at, completed_on, value, intensity, notes
		 FROM (
		   SELECT * FROM entries WHERE habit_id = ?
		   ORDER BY completed_on DESC LIMIT ?
		 ) ORDER BY completed_on ASC`,
		habitID, s.cfg.MaxEntryFetch,
	)
}

// EntriesBetween returns a habit's entries with completed_on in [from, to],
// oldest first.
func (s *Store) EntriesBetween(habitID string, from, to time.Time) ([]domain.Entry, error) {
	return s.queryEntries(
		`SELECT id, habit_id, logged_at, completed_on, value, intensity, notes
		 FROM entries
		 WHERE habit_id = ? AND completed_on >= ? AND completed_on <= ?
		 ORDER BY completed_on ASC`,
		habitID, from.Format(domain.DateLayout), to.Format(domain.DateLayout),
	)
}

func (s *Store) queryEntries(query string, args ...any) ([]domain.Entry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []domain.Entry
	for rows.Next() {
		var (
			e         domain.Entry
			loggedAt  string
			completed string
		)
		if err := rows.Scan(&e.ID, &e.HabitID, &loggedAt, &completed, &e.Value, &e.Intensity, &e.Notes); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		if e.LoggedAt, err = time.Parse(timestampLayout, loggedAt); err != nil {
			return nil, fmt.Errorf("entry %s: bad logged_at %q: %w", e.ID, loggedAt, err)
		}
		if e.CompletedOn, err = domain.ParseDate(completed); err != nil {
			return nil, fmt.Errorf("entry %s: bad completed_on %q: %w", e.ID, completed, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ─── Streaks ─────────────────────────────────────────────────────────────────

// PutStreak upserts the cached streak statistics for a habit.
func (s *Store) PutStreak(habitID string, r streak.Result) error {
	var lastCompleted any
	if r.LastCompleted != nil {
		lastCompleted = r.LastCompleted.Format(domain.DateLayout)
	}
	_, err := s.db.Exec(
		`INSERT INTO streaks (habit_id, current_streak, longest_streak, last_completed, total_completions, completion_rate, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(habit_id) DO UPDATE SET
		   current_streak    = excluded.current_streak,
		   longest_streak    = excluded.longest_streak,
		   last_completed    = excluded.last_completed,
		   total_completions = excluded.total_completions,
		   completion_rate   = excluded.completion_rate,
		   updated_at        = excluded.updated_at`,
		habitID, r.CurrentStreak, r.LongestStreak, lastCompleted,
		r.TotalCompletions, r.CompletionRate, time.Now().UTC().Format(timestampLayout),
	)
	if err != nil {
		return fmt.Errorf("put streak: %w", err)
	}
	return nil
}

// GetStreak returns the cached streak statistics for a habit. A habit with
// no cached row yields the zero result, not an error.
func (s *Store) GetStreak(habitID string) (streak.Result, error) {
	row := s.db.QueryRow(
		`SELECT current_streak, longest_streak, last_completed, total_completions, completion_rate
		 FROM streaks WHERE habit_id = ?`, habitID,
	)
	var (
		r    streak.Result
		last sql.NullString
	)
	err := row.Scan(&r.CurrentStreak, &r.LongestStreak, &last, &r.TotalCompletions, &r.CompletionRate)
	if errors.Is(err, sql.ErrNoRows) {
		return streak.Result{}, nil
	}
	if err != nil {
		return streak.Result{}, fmt.Errorf("get streak: %w", err)
	}
	if last.Valid {
		d, err := domain.ParseDate(last.String)
		if err != nil {
			return streak.Result{}, fmt.Errorf("streak %s: bad last_completed %q: %w", habitID, last.String, err)
		}
		r.LastCompleted = &d
	}
	return r, nil
}

// AllStreaks returns the cached streak statistics keyed by habit ID.
func (s *Store) AllStreaks() (map[string]streak.Result, error) {
	rows, err := s.db.Query(
		`SELECT habit_id, current_streak, longest_streak, last_completed, total_completions, completion_rate
		 FROM streaks`,
	)
	if err != nil {
		return nil, fmt.Errorf("all streaks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	results := make(map[string]streak.Result)
	for rows.Next() {
		var (
			habitID string
			r       streak.Result
			last    sql.NullString
		)
		if err := rows.Scan(&habitID, &r.CurrentStreak, &r.LongestStreak, &last, &r.TotalCompletions, &r.CompletionRate); err != nil {
			return nil, fmt.Errorf("scan streak: %w", err)
		}
		if last.Valid {
			d, err := domain.ParseDate(last.String)
			if err != nil {
				return nil, fmt.Errorf("streak %s: bad last_completed %q: %w", habitID, last.String, err)
			}
			r.LastCompleted = &d
		}
		results[habitID] = r
	}
	return results, rows.Err()
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

type rowLike interface {
	Scan(dest ...any) error
}

func scanHabit(row rowLike) (*domain.Habit, error) {
	var (
		h         domain.Habit
		freqStr   string
		createdAt string
		active    int
	)
	if err := row.Scan(&h.ID, &h.Name, &h.Description, &h.Category, &freqStr,
		&h.TargetValue, &h.Unit, &createdAt, &active); err != nil {
		return nil, err
	}

	var err error
	if err = json.Unmarshal([]byte(freqStr), &h.Frequency); err != nil {
		return nil, fmt.Errorf("habit %s: bad frequency %q: %w", h.ID, freqStr, err)
	}

	if h.CreatedAt, err = time.Parse(timestampLayout, createdAt); err != nil {
		return nil, fmt.Errorf("habit %s: bad created_at %q: %w", h.ID, createdAt, err)
	}
	h.Active = active != 0
	return &h, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
