package agent

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sigil/internal/lti"
	"github.com/roach88/sigil/internal/symbol"
	"github.com/roach88/sigil/internal/vocab"
)

func openTestLTI(t *testing.T) *lti.Store {
	t.Helper()
	s, err := lti.Open(filepath.Join(t.TempDir(), "lti.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNew_PopulatesVocabulary(t *testing.T) {
	a, err := New(context.Background())
	require.NoError(t, err)

	_, ok := a.Table().FindString("operator")
	assert.True(t, ok)
	_, ok = a.Table().FindVariable("<s>")
	assert.True(t, ok)
	assert.NotEqual(t, a.ID().String(), "")
}

func TestNew_SeedsConfiguredVocabularies(t *testing.T) {
	spec, err := vocab.Compile([]byte("name: custom\nsymbols: [{name: my-proto}]\n"))
	require.NoError(t, err)

	a, err := New(context.Background(), WithVocabulary(spec))
	require.NoError(t, err)

	_, ok := a.Table().FindString("my-proto")
	assert.True(t, ok)
}

func TestAgents_AreIndependent(t *testing.T) {
	ctx := context.Background()
	a, err := New(ctx)
	require.NoError(t, err)
	b, err := New(ctx)
	require.NoError(t, err)

	ida := a.Table().MakeNewIdentifier('S', 1, symbol.AutoNumber)
	idb := b.Table().MakeNewIdentifier('S', 1, symbol.AutoNumber)
	assert.Equal(t, ida.Number, idb.Number, "per-agent counters start fresh")

	_, ok := b.Table().FindIdentifier('S', ida.Number)
	require.True(t, ok)
	require.NoError(t, b.Table().RemoveRef(idb))
	_, ok = a.Table().FindIdentifier('S', ida.Number)
	assert.True(t, ok, "destroying in one agent must not touch the other")
}

func TestReinitialize_FreshAgentSucceeds(t *testing.T) {
	ctx := context.Background()
	a, err := New(ctx)
	require.NoError(t, err)

	before := a.Table().MakeNewIdentifier('S', 1, symbol.AutoNumber)
	require.Equal(t, uint64(1), before.Number)
	require.NoError(t, a.Table().RemoveRef(before))

	require.NoError(t, a.Reinitialize(ctx))

	// Counters are back at 1 and the vocabulary is re-interned.
	after := a.Table().MakeNewIdentifier('S', 1, symbol.AutoNumber)
	assert.Equal(t, uint64(1), after.Number)
	_, ok := a.Table().FindString("operator")
	assert.True(t, ok)
}

func TestReinitialize_BlockedByLiveIdentifier(t *testing.T) {
	t.Chdir(t.TempDir())
	ctx := context.Background()
	a, err := New(ctx)
	require.NoError(t, err)

	leaked := a.Table().MakeNewIdentifier('S', 1, symbol.AutoNumber)

	err = a.Reinitialize(ctx)
	require.Error(t, err)
	assert.True(t, symbol.IsResetBlocked(err))

	// The agent stays usable: vocabulary was re-interned and the
	// counter was left alone.
	_, ok := a.Table().FindString("operator")
	assert.True(t, ok)
	next := a.Table().MakeNewIdentifier('S', 1, symbol.AutoNumber)
	assert.Equal(t, uint64(2), next.Number)

	require.NoError(t, a.Table().RemoveRef(leaked))
	require.NoError(t, a.Table().RemoveRef(next))
	require.NoError(t, a.Reinitialize(ctx), "retry succeeds once the leak is released")
}

func TestReinitialize_LongTermIdentifiersAreExempt(t *testing.T) {
	ctx := context.Background()
	store := openTestLTI(t)
	a, err := New(ctx, WithLTIStore(store))
	require.NoError(t, err)

	id := a.Table().MakeNewIdentifier('S', 1, symbol.AutoNumber)
	require.NoError(t, a.PromoteIdentifier(ctx, id, 1))
	require.NotZero(t, id.LTIID)

	require.NoError(t, a.Reinitialize(ctx), "long-term identifiers do not block the reset")
}

func TestReinitialize_PersistsCounters(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "lti.db")

	store, err := lti.Open(path)
	require.NoError(t, err)
	a, err := New(ctx, WithLTIStore(store))
	require.NoError(t, err)

	id := a.Table().MakeNewIdentifier('S', 1, 41)
	require.NoError(t, a.PromoteIdentifier(ctx, id, 1))
	require.NoError(t, a.Reinitialize(ctx))
	require.NoError(t, store.Close())

	// A new agent over the same store observes the persisted floor.
	store2, err := lti.Open(path)
	require.NoError(t, err)
	defer store2.Close()
	b, err := New(ctx, WithLTIStore(store2))
	require.NoError(t, err)

	fresh := b.Table().MakeNewIdentifier('S', 1, symbol.AutoNumber)
	assert.Equal(t, uint64(42), fresh.Number,
		"rehydrated numbering floor prevents collisions")
}

func TestRestoreIdentifier(t *testing.T) {
	ctx := context.Background()
	store := openTestLTI(t)
	a, err := New(ctx, WithLTIStore(store))
	require.NoError(t, err)

	id := a.Table().MakeNewIdentifier('S', 1, symbol.AutoNumber)
	require.NoError(t, a.PromoteIdentifier(ctx, id, 7))
	require.NoError(t, a.Table().RemoveRef(id))

	restored, err := a.RestoreIdentifier(ctx, 'S', 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "@S1", restored.String())
	assert.NotZero(t, restored.LTIID)

	// Restoring an already-live identifier shares the instance.
	again, err := a.RestoreIdentifier(ctx, 'S', 1, 1)
	require.NoError(t, err)
	assert.Same(t, restored, again)
	assert.Equal(t, uint64(2), again.Header().RefCount)

	_, err = a.RestoreIdentifier(ctx, 'Z', 9, 1)
	assert.Error(t, err, "unregistered identifiers cannot be restored")
}
