// Command sigil is the interned symbol store's inspection tool.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/sigil/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "sigil: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
