// =============================================================================
// SEPA XML Export - Main Entry Point
// =============================================================================
//
// SEPA XML Export generates ISO 20022 payment initiation files (pain.001
// credit transfer, pain.008 direct debit) from YAML batch descriptions.
//
// USAGE:
//   sepaexport generate <batch.yaml>  - Generate SEPA XML files
//   sepaexport validate <batch.yaml>  - Validate a batch without output
//   sepaexport version                - Display version information
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : document engine, validation, splitting, rendering
//   - pkg/       : shared utilities
//
// =============================================================================

package main

import (
	"github.com/paybatch/sepaxml/cmd"
)

func main() {
	cmd.Execute()
}
