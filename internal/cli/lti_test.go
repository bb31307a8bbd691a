package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sigil/internal/lti"
)

func TestParseIdentifier(t *testing.T) {
	tests := []struct {
		in     string
		letter byte
		number uint64
		ok     bool
	}{
		{"S1", 'S', 1, true},
		{"@S1", 'S', 1, true},
		{"Z123", 'Z', 123, true},
		{"s1", 0, 0, false},  // lowercase letter
		{"S", 0, 0, false},   // no number
		{"S0", 0, 0, false},  // numbers start at 1
		{"1S", 0, 0, false},  // digit first
		{"@@S1", 0, 0, false},
		{"", 0, 0, false},
	}

	for _, tt := range tests {
		letter, number, err := parseIdentifier(tt.in)
		if tt.ok {
			require.NoError(t, err, "input %q", tt.in)
			assert.Equal(t, tt.letter, letter)
			assert.Equal(t, tt.number, number)
		} else {
			assert.Error(t, err, "input %q", tt.in)
		}
	}
}

func TestLTIList_MissingDatabase(t *testing.T) {
	out, err := execute(t, "lti", "list", "--db", filepath.Join(t.TempDir(), "absent.db"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "database not found")
}

func TestLTIPromoteThenList(t *testing.T) {
	db := filepath.Join(t.TempDir(), "lti.db")

	out, err := execute(t, "lti", "promote", "@S3", "--db", db, "--seq", "9")
	require.NoError(t, err)
	assert.Contains(t, out, "@S3")

	out, err = execute(t, "lti", "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "@S3")
	assert.Contains(t, out, "seq=9")
}

func TestLTIPromote_Idempotent(t *testing.T) {
	db := filepath.Join(t.TempDir(), "lti.db")

	_, err := execute(t, "lti", "promote", "S1", "--db", db)
	require.NoError(t, err)
	_, err = execute(t, "lti", "promote", "S1", "--db", db, "--seq", "99")
	require.NoError(t, err)

	out, err := execute(t, "--format", "json", "lti", "list", "--db", db)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	rows, ok := resp.Data.([]any)
	require.True(t, ok)
	assert.Len(t, rows, 1, "re-promotion must not duplicate the row")
}

func TestLTIPromote_BadIdentifier(t *testing.T) {
	db := filepath.Join(t.TempDir(), "lti.db")

	out, err := execute(t, "lti", "promote", "7up", "--db", db)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "invalid identifier")
}

func TestLTIList_Empty(t *testing.T) {
	db := filepath.Join(t.TempDir(), "lti.db")
	store, err := lti.Open(db)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	out, err := execute(t, "lti", "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "no long-term identifiers")
}
