// Command ptpure analyzes a set of fixture-described Java-like
// methods for side-effect purity and prints or renders the verdicts.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "ptpure",
	Short: "Side-effect purity analysis for class method bodies",
	Long: `ptpure runs a points-to / escape-graph purity analysis over a set
of method bodies and reports, for each method, whether it mutates any
state that existed before the call (Impure) or only touches freshly
allocated objects and local computation (Pure).`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
