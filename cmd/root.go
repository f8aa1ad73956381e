package cmd

import (
	"github.com/spf13/cobra"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "dredge",
	Short: "dredge - rule-based source security scanner",
	Long: `dredge walks a source tree, matches every line against a catalog of
security-relevant patterns and derives a deployment verdict from the
aggregated findings.`,
}

// Execute runs the root command.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
