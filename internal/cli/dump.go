package cli

import (
	"bytes"

	"github.com/spf13/cobra"

	"github.com/roach88/sigil/internal/symbol"
	"github.com/roach88/sigil/internal/vocab"
)

// DumpResult holds a table dump for JSON output.
type DumpResult struct {
	Predefined   int    `json:"predefined"`
	Vocabularies int    `json:"vocabularies"`
	Live         int    `json:"live"`
	Dump         string `json:"dump"`
}

// NewDumpCommand creates the dump command.
func NewDumpCommand(rootOpts *RootOptions) *cobra.Command {
	var withPredefined bool
	cmd := &cobra.Command{
		Use:   "dump [manifest]...",
		Short: "Intern vocabularies into a fresh table and dump its contents",
		Long: `Build a fresh symbol table, intern the predefined vocabulary plus any
manifest files given, and print the table contents sorted by kind.
Useful for reviewing what a set of manifests actually interns.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(rootOpts, args, withPredefined, cmd)
		},
	}
	cmd.Flags().BoolVar(&withPredefined, "predefined", true, "include the predefined vocabulary")
	return cmd
}

func runDump(opts *RootOptions, paths []string, withPredefined bool, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	table := symbol.NewTable()
	predefinedCount := 0
	if withPredefined {
		predefinedCount = symbol.NewPredefined(table).Count()
	}

	for _, path := range paths {
		spec, err := vocab.LoadManifest(path)
		if err != nil {
			_ = formatter.Error(ErrCodeManifest, err.Error(), nil)
			return NewExitError(ExitFailure, "loading manifest")
		}
		formatter.VerboseLog("Interning %s (%d symbols)", spec.Name, len(spec.Symbols))
		spec.SeedTable(table)
	}

	if formatter.Format == "json" {
		var buf bytes.Buffer
		table.Dump(&buf)
		return formatter.Success(DumpResult{
			Predefined:   predefinedCount,
			Vocabularies: len(paths),
			Live:         table.LiveTotal(),
			Dump:         buf.String(),
		})
	}

	table.Dump(formatter.Writer)
	return nil
}
