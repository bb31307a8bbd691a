package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/sigil/internal/lti"
)

// LTIEntry is one long-term identifier row in command output.
type LTIEntry struct {
	ID          string `json:"id"` // "@S1"
	LTIID       int64  `json:"lti_id"`
	PromotedSeq int64  `json:"promoted_seq"`
}

// NewLTICommand creates the lti command group.
func NewLTICommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lti",
		Short: "Work with long-term identifier databases",
	}
	cmd.AddCommand(newLTIListCommand(rootOpts))
	cmd.AddCommand(newLTIPromoteCommand(rootOpts))
	return cmd
}

func newLTIListCommand(rootOpts *RootOptions) *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List registered long-term identifiers",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLTIList(rootOpts, dbPath, cmd)
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "path to the long-term identifier database (required)")
	_ = cmd.MarkFlagRequired("db")
	return cmd
}

func newLTIPromoteCommand(rootOpts *RootOptions) *cobra.Command {
	var dbPath string
	var seq int64
	cmd := &cobra.Command{
		Use:           "promote <identifier>",
		Short:         "Register an identifier as long-term",
		Long:          "Register an identifier (e.g. S1 or @S1) as long-term. Idempotent.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLTIPromote(rootOpts, dbPath, args[0], seq, cmd)
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "path to the long-term identifier database (required)")
	cmd.Flags().Int64Var(&seq, "seq", 0, "logical clock value to record for the promotion")
	_ = cmd.MarkFlagRequired("db")
	return cmd
}

func runLTIList(opts *RootOptions, dbPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	// Listing must not create an empty database at a mistyped path.
	if _, err := os.Stat(dbPath); err != nil {
		_ = formatter.Error(ErrCodeStore, fmt.Sprintf("database not found: %s", dbPath), nil)
		return NewExitError(ExitCommandError, "database not found")
	}

	store, err := lti.Open(dbPath)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return NewExitError(ExitCommandError, "opening database")
	}
	defer store.Close()

	entries, err := store.List(cmd.Context())
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return NewExitError(ExitCommandError, "listing identifiers")
	}

	rows := make([]LTIEntry, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, LTIEntry{ID: e.String(), LTIID: e.LTIID, PromotedSeq: e.PromotedSeq})
	}

	if formatter.Format == "json" {
		return formatter.Success(rows)
	}
	if len(rows) == 0 {
		fmt.Fprintln(formatter.Writer, "no long-term identifiers")
		return nil
	}
	for _, r := range rows {
		fmt.Fprintf(formatter.Writer, "%-8s lti=%-6d seq=%d\n", r.ID, r.LTIID, r.PromotedSeq)
	}
	return nil
}

func runLTIPromote(opts *RootOptions, dbPath, ident string, seq int64, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	letter, number, err := parseIdentifier(ident)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return NewExitError(ExitFailure, err.Error())
	}

	store, err := lti.Open(dbPath)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return NewExitError(ExitCommandError, "opening database")
	}
	defer store.Close()

	ltiID, err := store.Promote(cmd.Context(), letter, number, seq)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return NewExitError(ExitCommandError, "promoting identifier")
	}

	return formatter.Success(LTIEntry{
		ID:          fmt.Sprintf("@%c%d", letter, number),
		LTIID:       ltiID,
		PromotedSeq: seq,
	})
}

// parseIdentifier parses "S1" or "@S1" into its letter and number.
func parseIdentifier(s string) (byte, uint64, error) {
	raw := strings.TrimPrefix(s, "@")
	if len(raw) < 2 || raw[0] < 'A' || raw[0] > 'Z' {
		return 0, 0, fmt.Errorf("invalid identifier %q: want a letter A-Z followed by a number", s)
	}
	number, err := strconv.ParseUint(raw[1:], 10, 64)
	if err != nil || number == 0 {
		return 0, 0, fmt.Errorf("invalid identifier %q: bad number", s)
	}
	return raw[0], number, nil
}
