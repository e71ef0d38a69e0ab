package ecdocs

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	_ "modernc.org/sqlite"
)

// Store wraps a SQLite database holding the page index.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// The index is rebuilt from the content tree on every start, so it only
	// needs WAL for concurrent readers and a busy timeout for the reload.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS pages (
    route TEXT PRIMARY KEY,
    file TEXT NOT NULL,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    front_matter TEXT NOT NULL,
    html TEXT NOT NULL,
    body TEXT NOT NULL,
    position INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS pages_position ON pages (position);
`)
	if err != nil {
		return err
	}
	for _, col := range []string{"title_fold", "body_fold"} {
		if _, err := s.db.Exec(`ALTER TABLE pages ADD COLUMN ` + col + ` TEXT NOT NULL DEFAULT '';`); err != nil {
			if strings.Contains(strings.ToLower(err.Error()), "duplicate column") {
				continue
			}
			return err
		}
	}
	return nil
}

// fold lowercases s rune by rune. SQLite's lower() only folds ASCII, so
// search matching happens on columns folded here.
func fold(s string) string {
	return strings.Map(unicode.ToLower, s)
}

// ReplacePages swaps the whole index for pages in one transaction.
func (s *Store) ReplacePages(pages []Page) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM pages`); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO pages (route, file, title, description, front_matter, html, body, position, title_fold, body_fold) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, p := range pages {
		fm, err := json.Marshal(p.FrontMatter)
		if err != nil {
			return err
		}
		if _, err := stmt.Exec(p.Route, p.File, p.Title, p.Description, string(fm), p.HTML, p.Text, p.Position, fold(p.Title), fold(p.Text)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

const pageColumns = `route, file, title, description, front_matter, html, body, position`

type scanner interface {
	Scan(dest ...any) error
}

func scanPage(row scanner) (Page, error) {
	var p Page
	var fm string
	if err := row.Scan(&p.Route, &p.File, &p.Title, &p.Description, &fm, &p.HTML, &p.Text, &p.Position); err != nil {
		return Page{}, err
	}
	p.FrontMatter = map[string]any{}
	if err := json.Unmarshal([]byte(fm), &p.FrontMatter); err != nil {
		return Page{}, err
	}
	if p.FrontMatter == nil {
		p.FrontMatter = map[string]any{}
	}
	return p, nil
}

// ListPages returns every page in sidebar order.
func (s *Store) ListPages() ([]Page, error) {
	rows, err := s.db.Query(`SELECT ` + pageColumns + ` FROM pages ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []Page
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// GetPage returns the page at route, or sql.ErrNoRows.
func (s *Store) GetPage(route string) (Page, error) {
	return scanPage(s.db.QueryRow(`SELECT `+pageColumns+` FROM pages WHERE route = ?`, route))
}

// Search returns up to limit pages whose title or body contains query,
// case-insensitively. Title matches rank first; ties keep sidebar order.
func (s *Store) Search(query string, limit int) ([]SearchResult, error) {
	q := fold(strings.TrimSpace(query))
	if q == "" || limit <= 0 {
		return nil, nil
	}
	rows, err := s.db.Query(`
SELECT route, title, body FROM pages
WHERE instr(title_fold, ?1) > 0 OR instr(body_fold, ?1) > 0
ORDER BY instr(title_fold, ?1) = 0, position
LIMIT ?2`, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		var body string
		if err := rows.Scan(&r.Route, &r.Title, &body); err != nil {
			return nil, err
		}
		r.Snippet = snippet(body, q, 60)
		results = append(results, r)
	}
	return results, rows.Err()
}

// snippet returns up to radius runes either side of the first match of q
// in body, trimmed to word boundaries. q must already be folded.
func snippet(body, q string, radius int) string {
	runes := []rune(body)
	idx := indexRunes([]rune(fold(body)), []rune(q))
	if idx < 0 {
		if len(runes) <= 2*radius {
			return body
		}
		return trimToWord(string(runes[:2*radius]), false) + "…"
	}
	start, end := idx-radius, idx+len([]rune(q))+radius
	prefix, suffix := "…", "…"
	if start <= 0 {
		start, prefix = 0, ""
	}
	if end >= len(runes) {
		end, suffix = len(runes), ""
	}
	out := string(runes[start:end])
	if prefix != "" {
		out = trimToWord(out, true)
	}
	if suffix != "" {
		out = trimToWord(out, false)
	}
	return prefix + out + suffix
}

// indexRunes is strings.Index over rune slices, returning a rune offset.
// fold maps rune to rune, so offsets in the folded text line up with body.
func indexRunes(s, sub []rune) int {
	if len(sub) == 0 {
		return 0
	}
	for i := 0; i+len(sub) <= len(s); i++ {
		match := true
		for j, r := range sub {
			if s[i+j] != r {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

func trimToWord(s string, fromStart bool) string {
	if fromStart {
		if i := strings.IndexByte(s, ' '); i >= 0 {
			return s[i+1:]
		}
		return s
	}
	if i := strings.LastIndexByte(s, ' '); i >= 0 {
		return s[:i]
	}
	return s
}
