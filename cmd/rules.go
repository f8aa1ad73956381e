package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bytemomo/dredge/internal/registry"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the builtin rule catalog",
	Run: func(cmd *cobra.Command, args []string) {
		reg, err := registry.Builtin()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(exitConfig)
		}

		for _, rule := range reg.All() {
			fmt.Printf("   - %s [%s/%s] --- %s\n", rule.ID, rule.Severity, rule.Category, rule.Title)
			if rule.Description != "" {
				fmt.Printf("        %s\n", rule.Description)
			}
		}
		fmt.Printf("\n%d rules registered\n", reg.Count())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dredge v%s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(versionCmd)
}
