package symbol

import (
	"fmt"
	"io"
	"os"
	"sort"
)

// Numbering is the identifier numbering authority: 26 independent
// per-letter counters. Auto-issued numbers strictly increase per letter
// and never collide with numbers supplied through ObserveExternal.
type Numbering struct {
	counters [26]uint64
}

// NewNumbering returns an authority with every counter at 1.
func NewNumbering() *Numbering {
	n := &Numbering{}
	n.resetCounters()
	return n
}

// NextNumber returns the current counter for letter, then increments it.
// The letter must already be normalized to 'A'..'Z'.
func (n *Numbering) NextNumber(letter byte) uint64 {
	idx := letter - 'A'
	number := n.counters[idx]
	n.counters[idx]++
	return number
}

// ObserveExternal records an externally supplied number, e.g. an
// identifier rehydrated from the long-term store. The counter advances
// to number+1 when the observation would otherwise allow a collision.
func (n *Numbering) ObserveExternal(letter byte, number uint64) {
	idx := letter - 'A'
	if number >= n.counters[idx] {
		n.counters[idx] = number + 1
	}
}

// Counter returns the current counter for letter without advancing it.
func (n *Numbering) Counter(letter byte) uint64 {
	return n.counters[letter-'A']
}

func (n *Numbering) resetCounters() {
	for i := range n.counters {
		n.counters[i] = 1
	}
}

// LongTermQuery answers whether an identifier is mirrored in an
// external persistent store. Consulted only by the numbering reset's
// leak check; long-term identifiers are exempt from it because the
// persistent store accounts for their numbers independently.
type LongTermQuery interface {
	IsLongTerm(letter byte, number uint64) bool
}

// LeakDumpFile is the best-effort diagnostic written to the process
// working directory when a numbering reset is blocked.
const LeakDumpFile = "leaked-ids.txt"

// ResetIdentifierCounters resets all 26 counters to 1 as part of agent
// re-initialization.
//
// The reset succeeds only if the identifier table is empty, or every
// live identifier is long-term per ltq. Otherwise it fails, leaves the
// counters unchanged, and returns a recoverable *StoreError whose
// Leaked field enumerates every live (letter, number, refcount). A
// best-effort dump is also written to LeakDumpFile; a failed write is
// swallowed and never affects the reset's result.
//
// ltq may be nil, in which case no identifier counts as long-term.
func (t *Table) ResetIdentifierCounters(ltq LongTermQuery) error {
	if t.identifiers.Len() != 0 {
		leaked := t.collectLiveIdentifiers(ltq)
		allLongTerm := true
		for _, l := range leaked {
			if !l.LongTerm {
				allLongTerm = false
				break
			}
		}
		if !allLongTerm {
			// Best effort: the dump must never change the outcome.
			if f, err := os.Create(LeakDumpFile); err == nil {
				writeLeakDump(f, leaked)
				f.Close()
			}
			return newResetBlockedError(leaked)
		}
		// All remaining identifiers are long-term and independently
		// accounted for by the persistent store.
	}
	t.numbering.resetCounters()
	return nil
}

// collectLiveIdentifiers snapshots every live identifier, sorted by
// (letter, number) so diagnostics are stable.
func (t *Table) collectLiveIdentifiers(ltq LongTermQuery) []LeakedIdentifier {
	leaked := make([]LeakedIdentifier, 0, t.identifiers.Len())
	t.identifiers.forEach(func(id *Identifier) {
		leaked = append(leaked, LeakedIdentifier{
			Letter:   id.Letter,
			Number:   id.Number,
			RefCount: id.Header().RefCount,
			LongTerm: ltq != nil && ltq.IsLongTerm(id.Letter, id.Number),
		})
	})
	sort.Slice(leaked, func(i, j int) bool {
		if leaked[i].Letter != leaked[j].Letter {
			return leaked[i].Letter < leaked[j].Letter
		}
		return leaked[i].Number < leaked[j].Number
	})
	return leaked
}

// writeLeakDump renders one identifier per line in the same form the
// reset error reports, e.g. "\tS3 --> 2".
func writeLeakDump(w io.Writer, leaked []LeakedIdentifier) {
	for _, l := range leaked {
		fmt.Fprintf(w, "\t%s\n", l)
	}
}
