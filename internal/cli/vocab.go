package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/sigil/internal/vocab"
)

// ManifestResult holds the validation outcome for one manifest file.
type ManifestResult struct {
	Path    string `json:"path"`
	Valid   bool   `json:"valid"`
	Name    string `json:"name,omitempty"`
	Symbols int    `json:"symbols,omitempty"`
	Error   string `json:"error,omitempty"`
}

// NewVocabCommand creates the vocab command group.
func NewVocabCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "Work with vocabulary manifests",
	}
	cmd.AddCommand(newVocabValidateCommand(rootOpts))
	return cmd
}

func newVocabValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <manifest>...",
		Short: "Validate vocabulary manifests against the schema",
		Long: `Validate YAML vocabulary manifests against the vocabulary schema
without touching a symbol table. Reports every invalid manifest.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVocabValidate(rootOpts, args, cmd)
		},
	}
}

func runVocabValidate(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	results := make([]ManifestResult, 0, len(paths))
	failed := 0
	for _, path := range paths {
		formatter.VerboseLog("Validating %s", path)
		spec, err := vocab.LoadManifest(path)
		if err != nil {
			failed++
			results = append(results, ManifestResult{
				Path:  path,
				Error: compileMessage(err),
			})
			continue
		}
		results = append(results, ManifestResult{
			Path:    path,
			Valid:   true,
			Name:    spec.Name,
			Symbols: len(spec.Symbols),
		})
	}

	if formatter.Format == "json" {
		if failed > 0 {
			_ = formatter.Error(ErrCodeManifest,
				fmt.Sprintf("%d of %d manifest(s) invalid", failed, len(paths)), results)
			return NewExitError(ExitFailure, "manifest validation failed")
		}
		return formatter.Success(results)
	}

	for _, r := range results {
		if r.Valid {
			fmt.Fprintf(formatter.Writer, "ok   %s (%s, %d symbols)\n", r.Path, r.Name, r.Symbols)
		} else {
			fmt.Fprintf(formatter.Writer, "FAIL %s\n     %s\n", r.Path, r.Error)
		}
	}
	if failed > 0 {
		return NewExitError(ExitFailure,
			fmt.Sprintf("%d of %d manifest(s) invalid", failed, len(paths)))
	}
	return nil
}

// compileMessage strips the path prefix a CompileError carries; the
// result rows already name the file.
func compileMessage(err error) string {
	var ce *vocab.CompileError
	if errors.As(err, &ce) {
		return ce.Message
	}
	return err.Error()
}
