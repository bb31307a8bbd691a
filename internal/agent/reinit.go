package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/roach88/sigil/internal/symbol"
)

// Reinitialize tears the agent's symbol context down to empty and
// rebuilds it, the re-initialization path the rest of the engine runs
// between problem-solving episodes.
//
// Steps, in order:
//  1. Release the predefined registry and every seeded vocabulary.
//  2. Persist the numbering counters to the LTI store, when attached.
//  3. Reset the identifier numbering counters. The reset's leak check
//     treats identifiers registered in the LTI store as long-term.
//  4. Re-intern the predefined and seeded vocabularies.
//
// A blocked reset aborts the rebuild and is returned as-is: it is
// recoverable, and the caller decides whether to release the remaining
// identifiers and retry. The released vocabularies are re-interned
// before returning so the agent stays usable either way.
func (a *Agent) Reinitialize(ctx context.Context) error {
	if err := a.predefined.Release(); err != nil {
		return fmt.Errorf("reinitialize: release predefined: %w", err)
	}
	for _, seed := range a.seeds {
		if err := seed.Release(); err != nil {
			return fmt.Errorf("reinitialize: %w", err)
		}
	}

	if a.ltiStore != nil {
		var counters [26]uint64
		for i := range counters {
			counters[i] = a.table.Numbering().Counter(byte('A' + i))
		}
		if err := a.ltiStore.SaveCounters(ctx, counters); err != nil {
			return fmt.Errorf("reinitialize: %w", err)
		}
	}

	var ltq symbol.LongTermQuery
	if a.ltiStore != nil {
		ltq = a.ltiStore
	}
	resetErr := a.table.ResetIdentifierCounters(ltq)
	if resetErr != nil {
		var se *symbol.StoreError
		if errors.As(resetErr, &se) {
			a.log.Warn("identifier counter reset blocked",
				"leaked", len(se.Leaked))
		}
	}

	// A successful reset drops every counter to 1; the persisted
	// floors are replayed on top so rehydrated long-term identifiers
	// can never collide with freshly minted ones.
	if resetErr == nil && a.ltiStore != nil {
		if err := a.restoreCounters(ctx); err != nil {
			return fmt.Errorf("reinitialize: %w", err)
		}
	}

	a.populate()
	if resetErr != nil {
		return fmt.Errorf("reinitialize: %w", resetErr)
	}
	a.log.Info("agent reinitialized")
	return nil
}
