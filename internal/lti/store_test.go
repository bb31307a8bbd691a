package lti

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "lti.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lti.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	// Reopening an existing database applies schema without error.
	s2, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s2.Close())
}

func TestPromote_AndQuery(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	assert.False(t, s.IsLongTerm('S', 1))

	id, err := s.Promote(ctx, 'S', 1, 10)
	require.NoError(t, err)
	assert.Positive(t, id)
	assert.True(t, s.IsLongTerm('S', 1))
	assert.False(t, s.IsLongTerm('S', 2))

	e, ok, err := s.Lookup(ctx, 'S', 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, id, e.LTIID)
	assert.Equal(t, int64(10), e.PromotedSeq)
	assert.Equal(t, "@S1", e.String())
}

func TestPromote_Idempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first, err := s.Promote(ctx, 'O', 3, 1)
	require.NoError(t, err)
	second, err := s.Promote(ctx, 'O', 3, 99)
	require.NoError(t, err)
	assert.Equal(t, first, second, "re-promotion returns the existing id")

	// The original promotion seq is kept.
	e, ok, err := s.Lookup(ctx, 'O', 3)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(1), e.PromotedSeq)
}

func TestDemote(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.Promote(ctx, 'S', 5, 1)
	require.NoError(t, err)
	require.NoError(t, s.Demote(ctx, 'S', 5))
	assert.False(t, s.IsLongTerm('S', 5))

	// Demoting an unknown identifier is a no-op.
	require.NoError(t, s.Demote(ctx, 'Z', 9))
}

func TestList_Ordered(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, key := range []struct {
		letter byte
		number uint64
	}{{'S', 2}, {'A', 7}, {'S', 1}} {
		_, err := s.Promote(ctx, key.letter, key.number, 1)
		require.NoError(t, err)
	}

	entries, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "@A7", entries[0].String())
	assert.Equal(t, "@S1", entries[1].String())
	assert.Equal(t, "@S2", entries[2].String())
}

func TestCounters_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, found, err := s.LoadCounters(ctx)
	require.NoError(t, err)
	assert.False(t, found, "fresh store has no snapshot")

	var counters [26]uint64
	for i := range counters {
		counters[i] = 1
	}
	counters['S'-'A'] = 42
	counters['Z'-'A'] = 7
	require.NoError(t, s.SaveCounters(ctx, counters))

	got, found, err := s.LoadCounters(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, counters, got)

	// A second save replaces the snapshot.
	counters['S'-'A'] = 100
	require.NoError(t, s.SaveCounters(ctx, counters))
	got, _, err = s.LoadCounters(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), got['S'-'A'])
}
