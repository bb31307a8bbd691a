package lti

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Entry is one registered long-term identifier.
type Entry struct {
	LTIID       int64
	Letter      byte
	Number      uint64
	PromotedSeq int64
}

// String renders the entry the way the symbol layer renders long-term
// identifiers, e.g. "@S1".
func (e Entry) String() string {
	return fmt.Sprintf("@%c%d", e.Letter, e.Number)
}

// IsLongTerm reports whether (letter, number) is registered.
// Satisfies the symbol table's LongTermQuery capability interface,
// which carries no context: the query runs only inside the numbering
// reset's leak check on the engine thread.
//
// A query error reads as not-long-term on purpose: the only consumer
// is the reset's leak check, and an unhealthy store must block the
// reset rather than exempt identifiers it cannot vouch for.
func (s *Store) IsLongTerm(letter byte, number uint64) bool {
	var one int
	err := s.db.QueryRowContext(context.Background(), `
		SELECT 1 FROM long_term_ids WHERE letter = ? AND number = ?
	`, string(letter), int64(number)).Scan(&one)
	return err == nil
}

// Lookup returns the registry entry for (letter, number), if present.
func (s *Store) Lookup(ctx context.Context, letter byte, number uint64) (Entry, bool, error) {
	var e Entry
	var letterStr string
	var number64 int64
	err := s.db.QueryRowContext(ctx, `
		SELECT lti_id, letter, number, promoted_seq
		FROM long_term_ids WHERE letter = ? AND number = ?
	`, string(letter), int64(number)).Scan(&e.LTIID, &letterStr, &number64, &e.PromotedSeq)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, false, nil
		}
		return Entry{}, false, fmt.Errorf("lookup: %w", err)
	}
	e.Letter = letterStr[0]
	e.Number = uint64(number64)
	return e, true, nil
}

// List returns every registered identifier ordered by (letter, number)
// so results are deterministic across runs.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT lti_id, letter, number, promoted_seq
		FROM long_term_ids
		ORDER BY letter ASC, number ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var letterStr string
		var number64 int64
		if err := rows.Scan(&e.LTIID, &letterStr, &number64, &e.PromotedSeq); err != nil {
			return nil, fmt.Errorf("list: scan: %w", err)
		}
		e.Letter = letterStr[0]
		e.Number = uint64(number64)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list: rows: %w", err)
	}
	return entries, nil
}

// LoadCounters returns the persisted numbering counters. The second
// return is false when no snapshot has been saved; missing letters in a
// partial snapshot default to 1.
func (s *Store) LoadCounters(ctx context.Context) ([26]uint64, bool, error) {
	var counters [26]uint64
	for i := range counters {
		counters[i] = 1
	}

	rows, err := s.db.QueryContext(ctx, `SELECT letter, counter FROM id_counters`)
	if err != nil {
		return counters, false, fmt.Errorf("load counters: %w", err)
	}
	defer rows.Close()

	found := false
	for rows.Next() {
		var letterStr string
		var counter int64
		if err := rows.Scan(&letterStr, &counter); err != nil {
			return counters, false, fmt.Errorf("load counters: scan: %w", err)
		}
		if len(letterStr) == 1 && letterStr[0] >= 'A' && letterStr[0] <= 'Z' {
			counters[letterStr[0]-'A'] = uint64(counter)
			found = true
		}
	}
	if err := rows.Err(); err != nil {
		return counters, false, fmt.Errorf("load counters: rows: %w", err)
	}
	return counters, found, nil
}
