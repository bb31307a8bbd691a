// Package agent ties one engine instance's symbol machinery together:
// the table, the numbering authority, the predefined registry, any
// seeded subsystem vocabularies, and the optional long-term identifier
// store. An Agent owns all of it exclusively; independent agents in one
// process share nothing.
package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/roach88/sigil/internal/lti"
	"github.com/roach88/sigil/internal/symbol"
	"github.com/roach88/sigil/internal/vocab"
)

// Agent is one engine instance's symbol context.
//
// All table mutations run on the agent's single logical thread of
// control; Agent adds no locking of its own.
type Agent struct {
	id    uuid.UUID
	log   *slog.Logger
	table *symbol.Table

	predefined *symbol.Predefined
	seeds      []*vocab.Seed
	vocabs     []*vocab.Spec

	ltiStore *lti.Store
}

// Option configures an Agent.
type Option func(*Agent)

// WithLogger attaches a structured logger. Defaults to a discard
// logger.
func WithLogger(log *slog.Logger) Option {
	return func(a *Agent) { a.log = log }
}

// WithLTIStore attaches the long-term identifier store. Without one,
// no identifier counts as long-term and numbering counters are not
// persisted across re-initializations.
func WithLTIStore(s *lti.Store) Option {
	return func(a *Agent) { a.ltiStore = s }
}

// WithVocabulary seeds an extra subsystem vocabulary at construction
// and again after every re-initialization.
func WithVocabulary(spec *vocab.Spec) Option {
	return func(a *Agent) { a.vocabs = append(a.vocabs, spec) }
}

// New creates an agent with a fresh symbol table, the predefined
// vocabulary interned, and numbering counters restored from the LTI
// store when one is attached.
func New(ctx context.Context, opts ...Option) (*Agent, error) {
	a := &Agent{
		id:    uuid.New(),
		log:   slog.New(slog.DiscardHandler),
		table: symbol.NewTable(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.log = a.log.With("agent", a.id.String())

	if a.ltiStore != nil {
		if err := a.restoreCounters(ctx); err != nil {
			return nil, err
		}
	}

	a.populate()
	a.log.Info("agent initialized",
		"predefined", a.predefined.Count(),
		"vocabularies", len(a.seeds))
	return a, nil
}

// ID returns the agent's instance id.
func (a *Agent) ID() uuid.UUID { return a.id }

// Table returns the agent's symbol table.
func (a *Agent) Table() *symbol.Table { return a.table }

// Predefined returns the agent's predefined symbol registry.
func (a *Agent) Predefined() *symbol.Predefined { return a.predefined }

// populate interns the predefined vocabulary and every configured
// subsystem vocabulary.
func (a *Agent) populate() {
	a.predefined = symbol.NewPredefined(a.table)
	a.seeds = a.seeds[:0]
	for _, spec := range a.vocabs {
		a.seeds = append(a.seeds, spec.SeedTable(a.table))
	}
}

// restoreCounters replays the persisted per-letter floors into the
// numbering authority through the observation path.
func (a *Agent) restoreCounters(ctx context.Context) error {
	counters, found, err := a.ltiStore.LoadCounters(ctx)
	if err != nil {
		return fmt.Errorf("restore numbering counters: %w", err)
	}
	if !found {
		return nil
	}
	for i, c := range counters {
		if c > 1 {
			a.table.Numbering().ObserveExternal(byte('A'+i), c-1)
		}
	}
	return nil
}

// PromoteIdentifier registers id as long-term in the attached store and
// stamps the persistent handle onto the symbol. seq is the engine's
// logical clock value.
func (a *Agent) PromoteIdentifier(ctx context.Context, id *symbol.Identifier, seq int64) error {
	if a.ltiStore == nil {
		return fmt.Errorf("promote %s: no long-term store attached", id)
	}
	ltiID, err := a.ltiStore.Promote(ctx, id.Letter, id.Number, seq)
	if err != nil {
		return fmt.Errorf("promote %s: %w", id, err)
	}
	id.LTIID = uint64(ltiID)
	a.log.Debug("identifier promoted", "id", id.String(), "lti_id", ltiID)
	return nil
}

// RestoreIdentifier recreates a long-term identifier from the store
// with its original (letter, number) key. The explicit number routes
// through the numbering observation path, so freshly minted
// identifiers can never collide with it.
func (a *Agent) RestoreIdentifier(ctx context.Context, letter byte, number uint64, level int) (*symbol.Identifier, error) {
	if a.ltiStore == nil {
		return nil, fmt.Errorf("restore @%c%d: no long-term store attached", letter, number)
	}
	entry, ok, err := a.ltiStore.Lookup(ctx, letter, number)
	if err != nil {
		return nil, fmt.Errorf("restore @%c%d: %w", letter, number, err)
	}
	if !ok {
		return nil, fmt.Errorf("restore @%c%d: not registered as long-term", letter, number)
	}
	if id, found := a.table.FindIdentifier(letter, number); found {
		a.table.AddRef(id)
		return id, nil
	}
	id := a.table.MakeNewIdentifier(letter, level, number)
	id.LTIID = uint64(entry.LTIID)
	return id, nil
}
