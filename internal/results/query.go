// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package results

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/md-elections/pkg/types"
)

// QueryOptions holds filters for result queries. Empty fields do not filter.
type QueryOptions struct {
	// ElectionDate matches the YYYYMMDD election date exactly.
	ElectionDate string

	// County matches the normalized county name exactly.
	County string

	// Office and Candidate match case-insensitive substrings.
	Office    string
	Candidate string

	Party string

	WinnersOnly bool

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// Result is one indexed row together with its election date.
type Result struct {
	ElectionDate string `json:"election_date" yaml:"election_date"`
	types.Row    `yaml:",inline"`
}

// Total is a candidate's vote sum for one office across all matching rows.
type Total struct {
	ElectionDate string `json:"election_date" yaml:"election_date"`
	Office       string `json:"office" yaml:"office"`
	District     string `json:"district" yaml:"district"`
	Candidate    string `json:"candidate" yaml:"candidate"`
	Party        string `json:"party" yaml:"party"`
	Votes        int    `json:"votes" yaml:"votes"`
	Winner       bool   `json:"winner" yaml:"winner"`
}

// Election describes one indexed output file.
type Election struct {
	Date       string `json:"date" yaml:"date"`
	SourceFile string `json:"source_file" yaml:"source_file"`
	RowCount   int    `json:"row_count" yaml:"row_count"`
}

func (q QueryOptions) where() (string, []any) {
	var (
		clauses []string
		args    []any
	)
	if q.ElectionDate != "" {
		clauses = append(clauses, `election_date = ?`)
		args = append(args, q.ElectionDate)
	}
	if q.County != "" {
		clauses = append(clauses, `county = ?`)
		args = append(args, q.County)
	}
	if q.Office != "" {
		clauses = append(clauses, `office LIKE ?`)
		args = append(args, "%"+q.Office+"%")
	}
	if q.Candidate != "" {
		clauses = append(clauses, `candidate LIKE ?`)
		args = append(args, "%"+q.Candidate+"%")
	}
	if q.Party != "" {
		clauses = append(clauses, `party = ?`)
		args = append(args, q.Party)
	}
	if q.WinnersOnly {
		clauses = append(clauses, `winner = 1`)
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (s *Store) limit(q QueryOptions) int {
	if q.MaxResults > 0 {
		return q.MaxResults
	}
	return s.maxResults
}

// Query returns indexed rows matching opts, ordered by election date and
// then source order.
func (s *Store) Query(ctx context.Context, opts QueryOptions) ([]Result, error) {
	where, args := opts.where()
	query := `SELECT election_date, county, precinct, office, district, party, candidate, votes, winner
		FROM results` + where + ` ORDER BY election_date, id LIMIT ?`
	args = append(args, s.limit(opts))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying results: %w", err)
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.ElectionDate, &r.County, &r.Precinct, &r.Office, &r.District,
			&r.Party, &r.Candidate, &r.Votes, &r.Winner); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Totals sums votes per election, office, district and candidate over the
// rows matching opts, largest totals first within each office.
func (s *Store) Totals(ctx context.Context, opts QueryOptions) ([]Total, error) {
	where, args := opts.where()
	query := `SELECT election_date, office, district, candidate, party, SUM(votes), MAX(winner)
		FROM results` + where + `
		GROUP BY election_date, office, district, candidate, party
		ORDER BY election_date, office, district, SUM(votes) DESC
		LIMIT ?`
	args = append(args, s.limit(opts))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying totals: %w", err)
	}
	defer rows.Close()

	var out []Total
	for rows.Next() {
		var t Total
		if err := rows.Scan(&t.ElectionDate, &t.Office, &t.District, &t.Candidate, &t.Party,
			&t.Votes, &t.Winner); err != nil {
			return nil, fmt.Errorf("scanning total: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Elections lists the indexed elections in date order.
func (s *Store) Elections(ctx context.Context) ([]Election, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT date, source_file, row_count FROM elections ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("listing elections: %w", err)
	}
	defer rows.Close()

	var out []Election
	for rows.Next() {
		var e Election
		if err := rows.Scan(&e.Date, &e.SourceFile, &e.RowCount); err != nil {
			return nil, fmt.Errorf("scanning election: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
