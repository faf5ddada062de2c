// =============================================================================
// SEPA XML Export - Validate Command
// =============================================================================
//
// This file defines the 'validate' command: the full build pipeline up to
// and including document validation, without rendering or writing output.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paybatch/sepaxml/internal/config"
)

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate <batch.yaml>",
	Short: "Validate a batch description without generating output",
	Long: `The validate command parses the batch file, builds the document and runs
every field and document level check. Nothing is written; the exit code
reports whether the batch would generate successfully.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(args[0])
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(batchPath string) error {
	batch, err := config.LoadBatchFile(batchPath)
	if err != nil {
		return err
	}

	doc, err := buildDocument(batch)
	if err != nil {
		return err
	}

	snap, err := doc.Snapshot()
	if err != nil {
		return err
	}

	fmt.Printf("OK: %s, %d collection(s), %d transaction(s), control sum %s\n",
		snap.Profile.ISOName,
		len(snap.Collections),
		snap.TransactionCount(),
		snap.ControlSum().StringFixed(2))
	return nil
}
