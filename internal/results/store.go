// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package results indexes converted OpenElections CSVs in a SQLite
// database so that results can be queried and exported across years.
package results

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/md-elections/internal/election"
	"github.com/pdiddy/md-elections/internal/output"
	"github.com/pdiddy/md-elections/pkg/types"
)

const dbFile = "results.db"

// Store manages the results SQLite database.
type Store struct {
	db         *sql.DB
	indexDir   string
	maxResults int
}

// NewStore opens or creates the database at indexDir/results.db and
// creates the schema if it does not exist.
func NewStore(cfg types.ResultsConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.IndexDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(cfg.IndexDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 50
	}

	s := &Store{
		db:         db,
		indexDir:   cfg.IndexDir,
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

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS elections (
			date TEXT PRIMARY KEY,
			source_file TEXT NOT NULL,
			file_mod_time TEXT NOT NULL,
			row_count INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			election_date TEXT NOT NULL REFERENCES elections(date) ON DELETE CASCADE,
			county TEXT NOT NULL,
			precinct TEXT NOT NULL,
			office TEXT NOT NULL,
			district TEXT NOT NULL,
			party TEXT NOT NULL,
			candidate TEXT NOT NULL,
			votes INTEGER NOT NULL,
			winner INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_results_election ON results(election_date)`,
		`CREATE INDEX IF NOT EXISTS idx_results_office ON results(office)`,
		`CREATE INDEX IF NOT EXISTS idx_results_county ON results(county)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// IngestSummary holds counts from an indexing run.
type IngestSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of files processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Ingest loads every "<date>__md__general__county.csv" in outputDir into
// the database. Files whose modification time matches the last indexing
// run are skipped; changed files replace their election's rows.
func (s *Store) Ingest(ctx context.Context, outputDir string, w io.Writer) (IngestSummary, error) {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading output directory %s: %w", outputDir, err)
	}

	var summary IngestSummary

	for _, entry := range entries {
		date, ok := election.DateFromOutputName(entry.Name())
		if entry.IsDir() || !ok {
			continue
		}

		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		info, err := entry.Info()
		if err != nil {
			fmt.Fprintf(w, "failed   %s: %v\n", date, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM elections WHERE date = ?`, date,
		).Scan(&storedModTime)

		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped  %s\n", date)
			summary.Skipped++
			continue
		}
		isUpdate := err == nil

		rows, err := output.ReadCSV(filepath.Join(outputDir, entry.Name()))
		if err != nil {
			fmt.Fprintf(w, "failed   %s: %v\n", date, err)
			summary.Failed++
			continue
		}

		if err := s.ingestElection(ctx, date, entry.Name(), modTime, rows); err != nil {
			fmt.Fprintf(w, "failed   %s: %v\n", date, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated  %s (%d rows)\n", date, len(rows))
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexing %s (%d rows)\n", date, len(rows))
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)

	return summary, nil
}

func (s *Store) ingestElection(ctx context.Context, date, sourceFile, modTime string, rows []types.Row) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM results WHERE election_date = ?`, date); err != nil {
		return fmt.Errorf("deleting old rows: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO elections (date, source_file, file_mod_time, row_count) VALUES (?, ?, ?, ?)
		 ON CONFLICT(date) DO UPDATE SET
			source_file=excluded.source_file, file_mod_time=excluded.file_mod_time,
			row_count=excluded.row_count`,
		date, sourceFile, modTime, len(rows),
	)
	if err != nil {
		return fmt.Errorf("upserting election: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO results (election_date, county, precinct, office, district, party, candidate, votes, winner)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range rows {
		_, err := stmt.ExecContext(ctx,
			date, r.County, r.Precinct, r.Office, r.District, r.Party, r.Candidate, r.Votes, r.Winner,
		)
		if err != nil {
			return fmt.Errorf("inserting row %d: %w", i+1, err)
		}
	}

	return tx.Commit()
}
