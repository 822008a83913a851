package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/matsen/obscat/internal/author"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// selectArticleFields contains the standard field list for SELECT queries.
const selectArticleFields = `key, type, title, authors, authors_json, first_author, year,
	journal, url, folder, note_file, outcome, has_document`

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS articles (
			position INTEGER NOT NULL,
			key TEXT PRIMARY KEY,
			type TEXT NOT NULL,
			title TEXT NOT NULL,
			authors TEXT NOT NULL,
			authors_json TEXT,
			first_author TEXT NOT NULL,
			year TEXT NOT NULL,
			journal TEXT NOT NULL,
			url TEXT,
			folder TEXT NOT NULL,
			note_file TEXT,
			outcome TEXT NOT NULL,
			has_document INTEGER NOT NULL
		);

		-- Full-text search virtual table (standalone, not external content)
		CREATE VIRTUAL TABLE IF NOT EXISTS articles_fts USING fts5(
			key,
			title,
			authors,
			journal,
			year
		);
	`

	_, err := db.Exec(schema)
	return err
}

// Rebuild clears the database and fills it with articles, preserving their
// order for Missing and ListAll.
func (d *DB) Rebuild(articles []Article) (int, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting rebuild: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM articles"); err != nil {
		return 0, fmt.Errorf("clearing articles table: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM articles_fts"); err != nil {
		return 0, fmt.Errorf("clearing articles_fts table: %w", err)
	}

	articleStmt, err := tx.Prepare(`
		INSERT INTO articles (
			position, key, type, title, authors, authors_json, first_author, year,
			journal, url, folder, note_file, outcome, has_document
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing articles insert: %w", err)
	}
	defer articleStmt.Close()

	ftsStmt, err := tx.Prepare(`
		INSERT INTO articles_fts (key, title, authors, journal, year)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing fts insert: %w", err)
	}
	defer ftsStmt.Close()

	for i, a := range articles {
		var authorsJSON []byte
		if len(a.AuthorList) > 0 {
			authorsJSON, err = json.Marshal(a.AuthorList)
			if err != nil {
				return 0, fmt.Errorf("marshaling authors for %s: %w", a.Key, err)
			}
		}

		_, err = articleStmt.Exec(
			i, a.Key, a.Type, a.Title, a.Authors, nullableString(string(authorsJSON)), a.FirstAuthor, a.Year,
			a.Journal, nullableString(a.URL), a.Folder, nullableString(a.NoteFile),
			a.Outcome, a.HasDocument,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting article %s: %w", a.Key, err)
		}

		if _, err := ftsStmt.Exec(a.Key, a.Title, a.Authors, a.Journal, a.Year); err != nil {
			return 0, fmt.Errorf("inserting fts for %s: %w", a.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing rebuild: %w", err)
	}
	return len(articles), nil
}

// RebuildFromJSONL clears the database and rebuilds it from a JSONL snapshot.
func (d *DB) RebuildFromJSONL(jsonlPath string) (int, error) {
	articles, err := ReadAll(jsonlPath)
	if err != nil {
		return 0, fmt.Errorf("reading JSONL: %w", err)
	}
	return d.Rebuild(articles)
}

// GetByKey retrieves an article by its key. It returns nil when absent.
func (d *DB) GetByKey(key string) (*Article, error) {
	row := d.db.QueryRow(`SELECT `+selectArticleFields+` FROM articles WHERE key = ?`, key)
	return scanArticle(row)
}

// Search performs a full-text search over titles, authors, journals and
// years, best matches first.
func (d *DB) Search(query string, limit int) ([]Article, error) {
	ftsQuery := prepareFTSQuery(query)
	if ftsQuery == "" {
		return nil, nil
	}

	rows, err := d.db.Query(`
		SELECT `+prefixed("a.", selectArticleFields)+`
		FROM articles a
		JOIN articles_fts f ON f.key = a.key
		WHERE articles_fts MATCH ?
		ORDER BY f.rank, a.position
		LIMIT ?`, ftsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	defer rows.Close()

	return scanArticles(rows)
}

// SearchFilters contains optional filters for SearchWithFilters.
type SearchFilters struct {
	Keyword     string   // Full-text search over titles, authors, journals and years
	Authors     []string // Author names (AND logic), matched with author.ParseQuery
	MissingOnly bool     // Only articles without a primary document
}

// SearchWithFilters returns the articles matching ALL specified criteria.
// Author filters narrow the full-text candidates by last name and then
// match each name against the parsed author list, so "Yu" does not match
// "Yujia Chan".
func (d *DB) SearchWithFilters(filters SearchFilters, limit int) ([]Article, error) {
	var ftsTerms []string
	var queries []author.Query

	if kw := prepareFTSQuery(filters.Keyword); kw != "" {
		ftsTerms = append(ftsTerms, kw)
	}
	for _, name := range filters.Authors {
		q := author.ParseQuery(name)
		if q.IsZero() {
			continue
		}
		queries = append(queries, q)
		ftsTerms = append(ftsTerms, "authors:"+prepareAuthorQuery(q.Last))
	}

	var query string
	var args []any
	if len(ftsTerms) > 0 {
		query = `SELECT ` + prefixed("a.", selectArticleFields) + `
			FROM articles a
			JOIN articles_fts f ON f.key = a.key
			WHERE articles_fts MATCH ?`
		args = append(args, strings.Join(ftsTerms, " AND "))
	} else {
		query = `SELECT ` + prefixed("a.", selectArticleFields) + ` FROM articles a WHERE 1=1`
	}
	if filters.MissingOnly {
		query += " AND a.has_document = 0"
	}
	if len(ftsTerms) > 0 {
		query += " ORDER BY f.rank, a.position"
	} else {
		query += " ORDER BY a.position"
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching with filters: %w", err)
	}
	defer rows.Close()

	candidates, err := scanArticles(rows)
	if err != nil {
		return nil, err
	}

	var out []Article
	for _, a := range candidates {
		if !author.AllMatch(queries, a.AuthorList) {
			continue
		}
		out = append(out, a)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// prepareAuthorQuery turns a last name into an FTS5 phrase of its words.
func prepareAuthorQuery(last string) string {
	escaped := strings.ReplaceAll(strings.TrimSpace(last), "\"", "\"\"")
	return "\"" + escaped + "\""
}

// Missing returns the articles without a primary document, in catalogue order.
func (d *DB) Missing() ([]Article, error) {
	rows, err := d.db.Query(`SELECT ` + selectArticleFields + `
		FROM articles WHERE has_document = 0 ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("listing missing articles: %w", err)
	}
	defer rows.Close()

	return scanArticles(rows)
}

// ListAll returns all articles in catalogue order, optionally limited.
func (d *DB) ListAll(limit int) ([]Article, error) {
	query := `SELECT ` + selectArticleFields + ` FROM articles ORDER BY position`
	var args []any

	if limit > 0 {
		query += " LIMIT ?"
		args = []any{limit}
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing articles: %w", err)
	}
	defer rows.Close()

	return scanArticles(rows)
}

// Count returns the total number of articles.
func (d *DB) Count() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM articles").Scan(&count)
	return count, err
}

// scanner interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanArticle(s scanner) (*Article, error) {
	var a Article
	var authorsJSON, url, noteFile sql.NullString

	err := s.Scan(
		&a.Key, &a.Type, &a.Title, &a.Authors, &authorsJSON, &a.FirstAuthor, &a.Year,
		&a.Journal, &url, &a.Folder, &noteFile, &a.Outcome, &a.HasDocument,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	a.URL = url.String
	a.NoteFile = noteFile.String

	if authorsJSON.Valid {
		if err := json.Unmarshal([]byte(authorsJSON.String), &a.AuthorList); err != nil {
			return nil, fmt.Errorf("parsing authors JSON for %s: %w", a.Key, err)
		}
	}
	return &a, nil
}

func scanArticles(rows *sql.Rows) ([]Article, error) {
	var articles []Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		if a != nil {
			articles = append(articles, *a)
		}
	}
	return articles, rows.Err()
}

// nullableString converts a string to sql.NullString, treating empty as NULL.
func nullableString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// prefixed qualifies each column of a comma-separated field list.
func prefixed(prefix, fields string) string {
	cols := strings.Split(fields, ",")
	for i, c := range cols {
		cols[i] = prefix + strings.TrimSpace(c)
	}
	return strings.Join(cols, ", ")
}

// prepareFTSQuery escapes special characters for FTS5 queries.
func prepareFTSQuery(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	// FTS5 uses double quotes for phrase matching
	if strings.ContainsAny(query, "\"*+-:(){}[]^~.,/'") {
		query = strings.ReplaceAll(query, "\"", "\"\"")
		return "\"" + query + "\""
	}

	return query
}
