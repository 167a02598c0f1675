package store

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/jasperquin/heartlog/internal/cycle"
	"github.com/jasperquin/heartlog/internal/gym"
	"github.com/jasperquin/heartlog/internal/model"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	entropy *rand.Rand
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS items (
		id         TEXT PRIMARY KEY,
		title      TEXT NOT NULL,
		category   TEXT NOT NULL,
		status     TEXT NOT NULL DEFAULT 'todo',
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_items_category_status ON items(category, status);
	CREATE INDEX IF NOT EXISTS idx_items_created ON items(created_at DESC);

	CREATE TABLE IF NOT EXISTS periods (
		id         TEXT PRIMARY KEY,
		start_date TEXT NOT NULL,
		end_date   TEXT,
		notes      TEXT,
		mood       TEXT,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_periods_start ON periods(start_date);

	CREATE TABLE IF NOT EXISTS movie_nights (
		id             TEXT PRIMARY KEY,
		date           TEXT NOT NULL UNIQUE,
		title          TEXT NOT NULL,
		my_rating      INTEGER NOT NULL DEFAULT 5,
		partner_rating INTEGER NOT NULL DEFAULT 5,
		created_at     TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS calls (
		id         TEXT PRIMARY KEY,
		date       TEXT NOT NULL UNIQUE,
		start_time TEXT,
		duration   TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS gym_sessions (
		id             TEXT PRIMARY KEY,
		date           TEXT NOT NULL UNIQUE,
		status         TEXT NOT NULL,
		workout_name   TEXT,
		progress_photo TEXT,
		created_at     TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// --- Items ---

func (s *SQLiteStore) ListItems(ctx context.Context, f ItemFilter) ([]model.Item, error) {
	where := []string{"1=1"}
	var args []interface{}
	if f.Category != "" {
		where = append(where, "category = ?")
		args = append(args, f.Category)
	}
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, f.Status)
	}

	query := fmt.Sprintf(`SELECT id, title, category, status, created_at
		FROM items WHERE %s ORDER BY created_at DESC`, strings.Join(where, " AND "))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (s *SQLiteStore) CreateItem(ctx context.Context, title, category string) (*model.Item, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if !model.ValidCategories[category] {
		return nil, fmt.Errorf("invalid category %q", category)
	}

	it := model.Item{
		ID:        s.newID(),
		Title:     title,
		Category:  category,
		Status:    model.StatusTodo,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO items (id, title, category, status, created_at) VALUES (?, ?, ?, ?, ?)`,
		it.ID, it.Title, it.Category, it.Status, it.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}
	return &it, nil
}

func (s *SQLiteStore) PatchItem(ctx context.Context, id string, patch ItemPatch) (*model.Item, error) {
	var sets []string
	var args []interface{}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, fmt.Errorf("title is required")
		}
		sets = append(sets, "title = ?")
		args = append(args, title)
	}
	if patch.Status != nil {
		if !model.ValidStatuses[*patch.Status] {
			return nil, fmt.Errorf("invalid status %q", *patch.Status)
		}
		sets = append(sets, "status = ?")
		args = append(args, *patch.Status)
	}
	if len(sets) == 0 {
		return s.getItem(ctx, id)
	}

	args = append(args, id)
	res, err := s.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE items SET %s WHERE id = ?`, strings.Join(sets, ", ")), args...)
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return s.getItem(ctx, id)
}

func (s *SQLiteStore) DeleteItem(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) getItem(ctx context.Context, id string) (*model.Item, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, category, status, created_at FROM items WHERE id = ?`, id)
	it, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func scanItem(row scanner) (model.Item, error) {
	var it model.Item
	var createdAt string
	if err := row.Scan(&it.ID, &it.Title, &it.Category, &it.Status, &createdAt); err != nil {
		return it, err
	}
	it.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return it, nil
}

// --- Periods ---

func (s *SQLiteStore) ListPeriods(ctx context.Context, f MonthFilter) ([]model.Period, error) {
	query := `SELECT id, start_date, end_date, notes, mood, created_at FROM periods`
	var args []interface{}
	if from, to, ok := f.Range(); ok {
		query += ` WHERE start_date >= ? AND start_date < ?`
		args = append(args, from.Format(model.DateOnly), to.Format(model.DateOnly))
	}
	query += ` ORDER BY start_date`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var periods []model.Period
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}

func (s *SQLiteStore) CreatePeriod(ctx context.Context, p PeriodParams) (*model.Period, error) {
	if err := s.validatePeriod(ctx, "", p); err != nil {
		return nil, err
	}

	rec := model.Period{
		ID:        s.newID(),
		StartDate: model.Midnight(p.StartDate),
		Notes:     p.Notes,
		Mood:      p.Mood,
		CreatedAt: time.Now().UTC(),
	}
	var endStr *string
	if p.EndDate != nil {
		end := model.Midnight(*p.EndDate)
		rec.EndDate = &end
		str := end.Format(model.DateOnly)
		endStr = &str
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO periods (id, start_date, end_date, notes, mood, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.StartDate.Format(model.DateOnly), endStr, rec.Notes, rec.Mood,
		rec.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("insert period: %w", err)
	}
	return &rec, nil
}

func (s *SQLiteStore) UpdatePeriod(ctx context.Context, id string, p PeriodParams) (*model.Period, error) {
	if err := s.validatePeriod(ctx, id, p); err != nil {
		return nil, err
	}

	var endStr *string
	if p.EndDate != nil {
		str := model.Midnight(*p.EndDate).Format(model.DateOnly)
		endStr = &str
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE periods SET start_date = ?, end_date = ?, notes = ?, mood = ? WHERE id = ?`,
		model.Midnight(p.StartDate).Format(model.DateOnly), endStr, p.Notes, p.Mood, id)
	if err != nil {
		return nil, fmt.Errorf("update period: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT id, start_date, end_date, notes, mood, created_at FROM periods WHERE id = ?`, id)
	rec, err := scanPeriod(row)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// validatePeriod checks the writable fields and the single-ongoing
// rule. excludeID skips the record being edited.
func (s *SQLiteStore) validatePeriod(ctx context.Context, excludeID string, p PeriodParams) error {
	if p.StartDate.IsZero() {
		return fmt.Errorf("start date is required")
	}
	if p.EndDate != nil && p.EndDate.Before(p.StartDate) {
		return fmt.Errorf("end date is before start date")
	}
	if p.Mood != "" && !model.ValidMoods[p.Mood] {
		return fmt.Errorf("invalid mood %q", p.Mood)
	}
	if p.EndDate == nil {
		var n int
		err := s.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM periods WHERE end_date IS NULL AND id != ?`, excludeID).Scan(&n)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrOngoingExists
		}
	}
	return nil
}

func (s *SQLiteStore) PeriodSummary(ctx context.Context) (*cycle.Summary, error) {
	periods, err := s.ListPeriods(ctx, MonthFilter{})
	if err != nil {
		return nil, err
	}
	summary := cycle.Summarize(periods)
	return &summary, nil
}

func scanPeriod(row scanner) (model.Period, error) {
	var p model.Period
	var startDate, createdAt string
	var endDate, notes, mood sql.NullString
	if err := row.Scan(&p.ID, &startDate, &endDate, &notes, &mood, &createdAt); err != nil {
		return p, err
	}
	p.StartDate, _ = model.ParseDate(startDate)
	if endDate.Valid {
		t, _ := model.ParseDate(endDate.String)
		p.EndDate = &t
	}
	p.Notes = notes.String
	p.Mood = mood.String
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return p, nil
}

// --- Movie nights ---

func (s *SQLiteStore) ListMovieNights(ctx context.Context, f MonthFilter) ([]model.MovieNight, error) {
	query := `SELECT id, date, title, my_rating, partner_rating, created_at FROM movie_nights`
	var args []interface{}
	if from, to, ok := f.Range(); ok {
		query += ` WHERE date >= ? AND date < ?`
		args = append(args, from.Format(model.DateOnly), to.Format(model.DateOnly))
	}
	query += ` ORDER BY date`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movies []model.MovieNight
	for rows.Next() {
		var m model.MovieNight
		var dateStr, createdAt string
		if err := rows.Scan(&m.ID, &dateStr, &m.Title, &m.MyRating, &m.PartnerRating, &createdAt); err != nil {
			return nil, err
		}
		m.Date, _ = model.ParseDate(dateStr)
		m.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

func (s *SQLiteStore) SaveMovieNight(ctx context.Context, m *model.MovieNight) (*model.MovieNight, error) {
	if strings.TrimSpace(m.Title) == "" {
		return nil, fmt.Errorf("movie title is required")
	}
	if m.MyRating < 1 || m.MyRating > 10 || m.PartnerRating < 1 || m.PartnerRating > 10 {
		return nil, fmt.Errorf("ratings must be between 1 and 10")
	}

	saved := *m
	saved.Date = model.Midnight(m.Date)
	if err := s.upsertByDate(ctx, &saved.ID, saved.Date,
		`INSERT INTO movie_nights (id, date, title, my_rating, partner_rating, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(date) DO UPDATE SET title = excluded.title,
		   my_rating = excluded.my_rating, partner_rating = excluded.partner_rating`,
		`SELECT id FROM movie_nights WHERE date = ?`,
		saved.Title, saved.MyRating, saved.PartnerRating); err != nil {
		return nil, fmt.Errorf("save movie night: %w", err)
	}
	return &saved, nil
}

// --- Calls ---

func (s *SQLiteStore) ListCalls(ctx context.Context, f MonthFilter) ([]model.Call, error) {
	query := `SELECT id, date, start_time, duration, created_at FROM calls`
	var args []interface{}
	if from, to, ok := f.Range(); ok {
		query += ` WHERE date >= ? AND date < ?`
		args = append(args, from.Format(model.DateOnly), to.Format(model.DateOnly))
	}
	query += ` ORDER BY date`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var calls []model.Call
	for rows.Next() {
		var c model.Call
		var dateStr, createdAt string
		var startTime, duration sql.NullString
		if err := rows.Scan(&c.ID, &dateStr, &startTime, &duration, &createdAt); err != nil {
			return nil, err
		}
		c.Date, _ = model.ParseDate(dateStr)
		c.StartTime = startTime.String
		c.Duration = duration.String
		c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		calls = append(calls, c)
	}
	return calls, rows.Err()
}

func (s *SQLiteStore) SaveCall(ctx context.Context, c *model.Call) (*model.Call, error) {
	saved := *c
	saved.Date = model.Midnight(c.Date)
	if err := s.upsertByDate(ctx, &saved.ID, saved.Date,
		`INSERT INTO calls (id, date, start_time, duration, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(date) DO UPDATE SET start_time = excluded.start_time,
		   duration = excluded.duration`,
		`SELECT id FROM calls WHERE date = ?`,
		saved.StartTime, saved.Duration); err != nil {
		return nil, fmt.Errorf("save call: %w", err)
	}
	return &saved, nil
}

// --- Gym sessions ---

func (s *SQLiteStore) ListGymSessions(ctx context.Context, f MonthFilter) ([]model.GymSession, error) {
	query := `SELECT id, date, status, workout_name, progress_photo, created_at FROM gym_sessions`
	var args []interface{}
	if from, to, ok := f.Range(); ok {
		query += ` WHERE date >= ? AND date < ?`
		args = append(args, from.Format(model.DateOnly), to.Format(model.DateOnly))
	}
	query += ` ORDER BY date`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []model.GymSession
	for rows.Next() {
		var g model.GymSession
		var dateStr, createdAt string
		var workoutName, progressPhoto sql.NullString
		if err := rows.Scan(&g.ID, &dateStr, &g.Status, &workoutName, &progressPhoto, &createdAt); err != nil {
			return nil, err
		}
		g.Date, _ = model.ParseDate(dateStr)
		g.WorkoutName = workoutName.String
		g.ProgressPhoto = progressPhoto.String
		g.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		sessions = append(sessions, g)
	}
	return sessions, rows.Err()
}

func (s *SQLiteStore) SaveGymSession(ctx context.Context, g *model.GymSession) (*model.GymSession, error) {
	if !model.ValidGymStatuses[g.Status] {
		return nil, fmt.Errorf("invalid gym status %q", g.Status)
	}

	saved := *g
	saved.Date = model.Midnight(g.Date)
	if err := s.upsertByDate(ctx, &saved.ID, saved.Date,
		`INSERT INTO gym_sessions (id, date, status, workout_name, progress_photo, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(date) DO UPDATE SET status = excluded.status,
		   workout_name = excluded.workout_name, progress_photo = excluded.progress_photo`,
		`SELECT id FROM gym_sessions WHERE date = ?`,
		saved.Status, saved.WorkoutName, saved.ProgressPhoto); err != nil {
		return nil, fmt.Errorf("save gym session: %w", err)
	}
	return &saved, nil
}

func (s *SQLiteStore) GymSummary(ctx context.Context, f MonthFilter) (*gym.Summary, error) {
	sessions, err := s.ListGymSessions(ctx, f)
	if err != nil {
		return nil, err
	}
	summary := gym.Summarize(sessions)
	return &summary, nil
}

// upsertByDate inserts a calendar record, keeping the existing row id
// when the date is already taken. The insert statement's first two
// placeholders must be id and date; extra insert args follow them.
// *id is rewritten to the surviving row's id.
func (s *SQLiteStore) upsertByDate(ctx context.Context, id *string, date time.Time, insertSQL, selectIDSQL string, extra ...interface{}) error {
	dateStr := date.Format(model.DateOnly)

	var existing string
	err := s.db.QueryRowContext(ctx, selectIDSQL, dateStr).Scan(&existing)
	if err == nil {
		*id = existing
	} else if err != sql.ErrNoRows {
		return err
	}
	if *id == "" {
		*id = s.newID()
	}

	args := append([]interface{}{*id, dateStr}, extra...)
	args = append(args, time.Now().UTC().Format(time.RFC3339))
	_, err = s.db.ExecContext(ctx, insertSQL, args...)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}
