package lti

import (
	"context"
	"fmt"
)

// Promote registers (letter, number) as long-term and returns its
// persistent lti_id. Promoting an already-promoted identifier is
// idempotent and returns the existing id.
//
// promotedSeq is the engine's logical clock value at promotion time;
// ordering uses it, never wall time.
func (s *Store) Promote(ctx context.Context, letter byte, number uint64, promotedSeq int64) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("promote: begin tx: %w", err)
	}
	defer tx.Rollback() // no-op if committed

	_, err = tx.ExecContext(ctx, `
		INSERT INTO long_term_ids (letter, number, promoted_seq)
		VALUES (?, ?, ?)
		ON CONFLICT(letter, number) DO NOTHING
	`, string(letter), int64(number), promotedSeq)
	if err != nil {
		return 0, fmt.Errorf("promote: %w", err)
	}

	var id int64
	err = tx.QueryRowContext(ctx, `
		SELECT lti_id FROM long_term_ids WHERE letter = ? AND number = ?
	`, string(letter), int64(number)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("promote: select id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("promote: commit: %w", err)
	}
	return id, nil
}

// Demote removes (letter, number) from the registry. Demoting an
// unknown identifier is a no-op.
func (s *Store) Demote(ctx context.Context, letter byte, number uint64) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM long_term_ids WHERE letter = ? AND number = ?
	`, string(letter), int64(number))
	if err != nil {
		return fmt.Errorf("demote: %w", err)
	}
	return nil
}

// SaveCounters persists the 26 per-letter numbering counters, replacing
// any previous snapshot. Called by the agent before a re-initialization
// so rehydrated identifiers observe the right floor.
func (s *Store) SaveCounters(ctx context.Context, counters [26]uint64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save counters: begin tx: %w", err)
	}
	defer tx.Rollback()

	for i, c := range counters {
		letter := string(byte('A' + i))
		_, err := tx.ExecContext(ctx, `
			INSERT INTO id_counters (letter, counter) VALUES (?, ?)
			ON CONFLICT(letter) DO UPDATE SET counter = excluded.counter
		`, letter, int64(c))
		if err != nil {
			return fmt.Errorf("save counters: letter %s: %w", letter, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save counters: commit: %w", err)
	}
	return nil
}
