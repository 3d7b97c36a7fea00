// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bank keeps converted quizzes in a SQLite question bank with a
// full-text index over question and option text.
package bank

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/quizpdf/internal/quiz"
	"github.com/pdiddy/quizpdf/pkg/types"
)

const (
	quizzesDir = "quizzes"
	indexDir   = "index"
	dbFile     = "quizbank.db"

	defaultMaxResults = 20
)

// Store manages the question bank database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
}

// NewStore opens or creates the question bank at dir/index/quizbank.db
// and creates the schema if it does not exist.
func NewStore(cfg types.BankConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.Dir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{
		db:         db,
		dir:        cfg.Dir,
		maxResults: maxResults,
	}

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

// QuizzesDir returns the directory Ingest reads quiz files from.
func (s *Store) QuizzesDir() string {
	return filepath.Join(s.dir, quizzesDir)
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS quizzes (
			id TEXT PRIMARY KEY,
			source_path TEXT NOT NULL,
			question_count INTEGER NOT NULL,
			imported_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS questions (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			quiz_id TEXT NOT NULL REFERENCES quizzes(id) ON DELETE CASCADE,
			number INTEGER NOT NULL,
			question TEXT NOT NULL,
			option_text TEXT NOT NULL,
			options TEXT NOT NULL,
			answer TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_questions_quiz_id ON questions(quiz_id)`,
		`CREATE TABLE IF NOT EXISTS indexing_status (
			quiz_id TEXT PRIMARY KEY,
			file_mod_time TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS4 external-content table kept in sync by triggers.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='questions_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE questions_fts USING fts4(content="questions", question, option_text)`,
			`CREATE TRIGGER questions_bu BEFORE UPDATE ON questions BEGIN
				DELETE FROM questions_fts WHERE docid=old.rowid;
			END`,
			`CREATE TRIGGER questions_bd BEFORE DELETE ON questions BEGIN
				DELETE FROM questions_fts WHERE docid=old.rowid;
			END`,
			`CREATE TRIGGER questions_au AFTER UPDATE ON questions BEGIN
				INSERT INTO questions_fts(docid, question, option_text) VALUES (new.rowid, new.question, new.option_text);
			END`,
			`CREATE TRIGGER questions_ai AFTER INSERT ON questions BEGIN
				INSERT INTO questions_fts(docid, question, option_text) VALUES (new.rowid, new.question, new.option_text);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// IngestSummary holds counts from a bank indexing run.
type IngestSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of quiz files processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Ingest reads every quiz file in dir/quizzes/ and loads its questions.
// Files whose modification time matches the last indexed run are skipped;
// changed files have their questions replaced. After any change it writes
// index/export.yaml.
func (s *Store) Ingest(ctx context.Context, w io.Writer) (IngestSummary, error) {
	dir := s.QuizzesDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading quiz directory %s: %w", dir, err)
	}

	var summary IngestSummary

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		quizID := strings.TrimSuffix(entry.Name(), ".json")
		filePath := filepath.Join(dir, entry.Name())

		info, err := entry.Info()
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", quizID, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM indexing_status WHERE quiz_id = ?`, quizID,
		).Scan(&storedModTime)

		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", quizID)
			summary.Skipped++
			continue
		}

		isUpdate := err == nil

		questions, err := quiz.Load(filePath)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", quizID, err)
			summary.Failed++
			continue
		}

		if err := s.ingestQuiz(ctx, quizID, filePath, questions, modTime); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", quizID, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s (%d questions)\n", quizID, len(questions))
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexing %s (%d questions)\n", quizID, len(questions))
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)

	if summary.Indexed > 0 || summary.Updated > 0 {
		if _, err := s.ExportYAML(ctx, QueryOptions{}); err != nil {
			fmt.Fprintf(w, "warning: export.yaml write failed: %v\n", err)
		}
	}

	return summary, nil
}

func (s *Store) ingestQuiz(ctx context.Context, quizID, sourcePath string, questions []types.Question, modTime string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM questions WHERE quiz_id = ?`, quizID); err != nil {
		return fmt.Errorf("deleting old questions: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO quizzes (id, source_path, question_count, imported_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			source_path=excluded.source_path, question_count=excluded.question_count,
			imported_at=excluded.imported_at`,
		quizID, sourcePath, len(questions), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting quiz: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO questions (quiz_id, number, question, option_text, options, answer)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, q := range questions {
		optionsJSON, err := json.Marshal(q.Options)
		if err != nil {
			return fmt.Errorf("encoding options of question %d: %w", q.Number, err)
		}
		answer := q.Answer
		if answer == nil {
			answer = []string{}
		}
		answerJSON, err := json.Marshal(answer)
		if err != nil {
			return fmt.Errorf("encoding answer of question %d: %w", q.Number, err)
		}
		_, err = stmt.ExecContext(ctx,
			quizID, q.Number, q.Text, optionText(q.Options),
			string(optionsJSON), string(answerJSON),
		)
		if err != nil {
			return fmt.Errorf("inserting question %d: %w", q.Number, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO indexing_status (quiz_id, file_mod_time) VALUES (?, ?)
		 ON CONFLICT(quiz_id) DO UPDATE SET file_mod_time=excluded.file_mod_time`,
		quizID, modTime,
	)
	if err != nil {
		return fmt.Errorf("updating indexing status: %w", err)
	}

	return tx.Commit()
}

// optionText joins option texts for indexing, A-D first and any other keys
// after them in sorted order.
func optionText(options map[string]string) string {
	texts := make([]string, 0, len(options))
	for _, l := range types.OptionLetters {
		if text, ok := options[l]; ok {
			texts = append(texts, text)
		}
	}

	var extra []string
	for l := range options {
		if !slices.Contains(types.OptionLetters, l) {
			extra = append(extra, l)
		}
	}
	slices.Sort(extra)
	for _, l := range extra {
		texts = append(texts, options[l])
	}
	return strings.Join(texts, "\n")
}
