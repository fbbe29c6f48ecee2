// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists past searches so the latest result can be
// re-rendered without repeating retrieval or synthesis. The stored answer
// is reused only while its key tuple (question text, compiled query,
// retrieved PMID set) is unchanged; any change invalidates the memo.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pubmed-explorer/internal/compile"
	"github.com/pdiddy/pubmed-explorer/pkg/types"
)

const dbFile = "history.db"

// Store manages the search-history SQLite database.
type Store struct {
	db *sql.DB
}

// Record is one stored search.
type Record struct {
	ID         int64
	Question   string
	Term       string
	PMIDs      []string
	Retmax     int
	Trace      compile.Trace
	Articles   []types.Article
	Answer     string
	Confidence string
	CreatedAt  time.Time
}

// Open opens or creates the history database at dir/history.db, creating
// the schema if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS searches (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		question TEXT NOT NULL,
		term TEXT NOT NULL,
		pmids TEXT NOT NULL,
		retmax INTEGER,
		trace TEXT,
		articles TEXT,
		answer TEXT,
		confidence TEXT,
		created_at TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Save inserts a record and returns its id.
func (s *Store) Save(ctx context.Context, rec Record) (int64, error) {
	pmids, err := json.Marshal(rec.PMIDs)
	if err != nil {
		return 0, fmt.Errorf("marshaling pmids: %w", err)
	}
	trace, err := json.Marshal(rec.Trace)
	if err != nil {
		return 0, fmt.Errorf("marshaling trace: %w", err)
	}
	articles, err := json.Marshal(rec.Articles)
	if err != nil {
		return 0, fmt.Errorf("marshaling articles: %w", err)
	}

	created := rec.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO searches (question, term, pmids, retmax, trace, articles, answer, confidence, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Question, rec.Term, string(pmids), rec.Retmax, string(trace),
		string(articles), rec.Answer, rec.Confidence, created.Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting search: %w", err)
	}
	return res.LastInsertId()
}

const recordColumns = `id, question, term, pmids, retmax, trace, articles, answer, confidence, created_at`

func scanRecord(row interface{ Scan(...any) error }) (*Record, error) {
	var rec Record
	var pmids, trace, articles, created string
	err := row.Scan(&rec.ID, &rec.Question, &rec.Term, &pmids, &rec.Retmax,
		&trace, &articles, &rec.Answer, &rec.Confidence, &created)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(pmids), &rec.PMIDs); err != nil {
		return nil, fmt.Errorf("parsing stored pmids: %w", err)
	}
	if err := json.Unmarshal([]byte(trace), &rec.Trace); err != nil {
		return nil, fmt.Errorf("parsing stored trace: %w", err)
	}
	if err := json.Unmarshal([]byte(articles), &rec.Articles); err != nil {
		return nil, fmt.Errorf("parsing stored articles: %w", err)
	}
	if t, err := time.Parse(time.RFC3339, created); err == nil {
		rec.CreatedAt = t
	}
	return &rec, nil
}

// Last returns the most recent record, or nil when the history is empty.
func (s *Store) Last(ctx context.Context) (*Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM searches ORDER BY id DESC LIMIT 1`)
	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading last search: %w", err)
	}
	return rec, nil
}

// Get returns the record with the given id.
func (s *Store) Get(ctx context.Context, id int64) (*Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM searches WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no search with id %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("loading search %d: %w", id, err)
	}
	return rec, nil
}

// List returns up to limit records, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+recordColumns+` FROM searches ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing searches: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning search: %w", err)
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

// Matches reports whether the record's memo key (question, compiled term,
// retrieved PMID sequence) equals the given tuple. A stored answer may
// be reused only when this holds.
func (r *Record) Matches(question, term string, pmids []string) bool {
	if r.Question != question || r.Term != term || len(r.PMIDs) != len(pmids) {
		return false
	}
	for i, p := range pmids {
		if r.PMIDs[i] != p {
			return false
		}
	}
	return true
}
