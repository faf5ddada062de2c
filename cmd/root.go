// =============================================================================
// SEPA XML Export - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All other commands
// ('generate', 'validate', 'version') are attached to it.
//
// CLI STRUCTURE:
//   sepaexport
//   ├── generate  (sepaexport generate <batch.yaml>)
//   ├── validate  (sepaexport validate <batch.yaml>)
//   └── version   (sepaexport version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// cfgFile holds the path to the channel configuration file.
// Overridden with the --channel flag.
var cfgFile string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "sepaexport",
	Short: "SEPA XML Export - Generate pain.001/pain.008 payment initiation files",
	Long: `SEPA XML Export generates ISO 20022 payment initiation documents (credit
transfer pain.001 and direct debit pain.008) from YAML batch descriptions.

Documents are validated field by field, split into multiple files when the
submission channel imposes transaction or size limits, and optionally
accompanied by routing slips and a control list for manual verification.

Example Usage:
  sepaexport generate payroll.yaml              # Generate into ./output
  sepaexport generate payroll.yaml --channel ebics.yaml
  sepaexport validate payroll.yaml              # Check the batch without writing`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called once from main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"channel",
		"channel.yaml",
		"Path to the submission channel configuration file",
	)
}
