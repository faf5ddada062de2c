// =============================================================================
// SEPA XML Export - Generate Command
// =============================================================================
//
// This file defines the 'generate' command, which turns a YAML batch
// description into SEPA XML files plus optional auxiliary artifacts.
//
// PIPELINE:
//   1. Load the channel configuration (limits, artifacts, output naming)
//   2. Load and structurally validate the batch file
//   3. Build the document (head data, collections, payments)
//   4. Generate output units (splitting per channel limits)
//   5. Write all artifacts to the output directory
//
// =============================================================================

package cmd

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/paybatch/sepaxml/internal/config"
	"github.com/paybatch/sepaxml/internal/document"
	"github.com/paybatch/sepaxml/internal/profile"
	"github.com/paybatch/sepaxml/internal/splitter"
	"github.com/paybatch/sepaxml/internal/types"
	"github.com/paybatch/sepaxml/pkg/utils"
)

// outputDir overrides the channel configuration's output directory.
var outputDir string

// dryRun builds and validates without writing output files.
var dryRun bool

// generateCmd represents the 'generate' command.
var generateCmd = &cobra.Command{
	Use:   "generate <batch.yaml>",
	Short: "Generate SEPA XML files from a batch description",
	Long: `The generate command reads a YAML batch description, validates every field,
assembles the SEPA document and writes the resulting XML file(s) to the
output directory.

When the channel configuration caps transactions or bytes per file, the
document is split into several files, each independently schema-valid.
Routing slips and a control list are attached when the channel requests
them.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(args[0])
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(
		&outputDir,
		"output",
		"o",
		"",
		"Output directory (overrides the channel configuration)",
	)
	generateCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Validate and generate without writing output files",
	)
}

// runGenerate orchestrates the generation pipeline.
func runGenerate(batchPath string) error {
	startTime := time.Now()

	channel, err := config.LoadChannelConfig(cfgFile)
	if err != nil {
		return err
	}
	if outputDir != "" {
		channel.OutputDir = outputDir
	}

	batch, err := config.LoadBatchFile(batchPath)
	if err != nil {
		return err
	}

	doc, err := buildDocument(batch)
	if err != nil {
		return err
	}

	units, err := splitter.Generate(doc, splitter.Options{
		MaxTransactionsPerFile: channel.MaxTransactionsPerFile,
		MaxFileSizeBytes:       channel.MaxFileSizeBytes,
		AddRoutingSlips:        channel.AddRoutingSlips,
		AddControlList:         channel.AddControlList,
	})
	if err != nil {
		return err
	}

	if dryRun {
		fmt.Printf("Dry run: %d artifact(s) generated, nothing written\n", len(units))
		for _, unit := range units {
			fmt.Printf("  %-14s %s (%d bytes)\n", unit.Kind, unit.Label, len(unit.Data))
		}
		return nil
	}

	writer := utils.NewOutputWriter(channel.OutputDir, channel.FilenameTemplate)
	paths, err := writer.WriteUnits(units)
	if err != nil {
		return err
	}

	fmt.Println("=== SEPA XML Export ===")
	for _, path := range paths {
		fmt.Printf("  ✓ %s\n", path)
	}
	fmt.Printf("Artifacts:    %d\n", len(paths))
	fmt.Printf("Time elapsed: %s\n", time.Since(startTime))
	return nil
}

// =============================================================================
// DOCUMENT BUILDING
// =============================================================================

// buildDocument assembles a document from the parsed batch description.
func buildDocument(batch *config.BatchFile) (*document.Document, error) {
	version, err := profile.ParseISOName(batch.Version)
	if err != nil {
		return nil, err
	}

	sanitizeFlags, err := batch.SanitizeFlags()
	if err != nil {
		return nil, err
	}

	docCfg := document.Config{
		InitiatingParty:   batch.InitiatingParty,
		MessageID:         batch.MessageID,
		Version:           version,
		InitiatingPartyID: batch.InitiatingPartyID,
		OrgID: types.OrgID{
			ID:         batch.OrgID.ID,
			BIC:        batch.OrgID.BIC,
			SchemeName: batch.OrgID.SchemeName,
		},
		DisableChecks: batch.DisableChecks,
		SanitizeFlags: sanitizeFlags,
	}

	var doc *document.Document
	switch batch.Type {
	case config.TypeDirectDebit:
		doc, err = document.NewDirectDebit(docCfg)
	default:
		doc, err = document.NewCreditTransfer(docCfg)
	}
	if err != nil {
		return nil, err
	}

	for i, bc := range batch.Collections {
		collection, err := doc.AddCollection(types.CollectionConfig{
			PaymentInfoID:   bc.PaymentInfoID,
			Name:            bc.Name,
			IBAN:            bc.IBAN,
			BIC:             bc.BIC,
			Currency:        bc.Currency,
			BatchBooking:    bc.BatchBooking,
			ExecutionDate:   bc.ExecutionDate,
			UltimateName:    bc.UltimateName,
			CreditorID:      bc.CreditorID,
			SequenceType:    bc.SequenceType,
			LocalInstrument: bc.LocalInstrument,
		})
		if err != nil {
			return nil, fmt.Errorf("collection %d: %w", i+1, err)
		}

		for j, bp := range bc.Payments {
			amount, err := decimal.NewFromString(bp.Amount)
			if err != nil {
				return nil, fmt.Errorf("collection %d, payment %d: invalid amount %q", i+1, j+1, bp.Amount)
			}
			_, err = collection.AddPayment(types.PaymentConfig{
				EndToEndID:        bp.EndToEndID,
				Amount:            amount,
				Name:              bp.Name,
				IBAN:              bp.IBAN,
				BIC:               bp.BIC,
				UltimateName:      bp.UltimateName,
				RemittanceText:    bp.RemittanceText,
				CreditorReference: bp.CreditorReference,
				MandateID:         bp.MandateID,
				MandateDate:       bp.MandateDate,
				MandateChanged:    bp.MandateChanged,
				OriginalMandateID: bp.OriginalMandateID,
			})
			if err != nil {
				return nil, fmt.Errorf("collection %d, payment %d: %w", i+1, j+1, err)
			}
		}
	}

	return doc, nil
}
