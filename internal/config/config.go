// =============================================================================
// SEPA XML Export - Configuration Module
// =============================================================================
//
// This module loads the two YAML inputs of the CLI:
//   1. Channel Config (channel.yaml): submission-channel settings — output
//      limits, auxiliary artifacts, output naming.
//   2. Batch File (*.yaml): one document description — head data,
//      collections, payments.
//
// Split limits are deliberately configuration, not code: the transaction
// and byte caps are imposed by the submission channel, not by the SEPA
// version, and differ per bank.
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/paybatch/sepaxml/internal/validation"
)

// =============================================================================
// CHANNEL CONFIGURATION
// =============================================================================

// ChannelConfig holds the submission-channel settings.
type ChannelConfig struct {
	// OutputDir is the directory where generated artifacts are placed.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// FilenameTemplate names generated payment files. Placeholders:
	//   {label}     - The engine-assigned artifact label
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	// Default: "{label}"
	FilenameTemplate string `yaml:"filename_template"`

	// MaxTransactionsPerFile caps payments per output file.
	// Zero (default) means unlimited.
	MaxTransactionsPerFile int `yaml:"max_transactions_per_file"`

	// MaxFileSizeBytes caps the byte size of one output file.
	// Zero (default) means unlimited.
	MaxFileSizeBytes int `yaml:"max_file_size_bytes"`

	// AddRoutingSlips attaches a routing slip per payment file.
	AddRoutingSlips bool `yaml:"add_routing_slips"`

	// AddControlList attaches one control list workbook per generation.
	AddControlList bool `yaml:"add_control_list"`
}

// LoadChannelConfig loads the channel configuration from a YAML file.
// A missing file yields the defaults.
func LoadChannelConfig(path string) (*ChannelConfig, error) {
	var cfg ChannelConfig

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// No channel file: run with defaults.
	case err != nil:
		return nil, fmt.Errorf("failed to read channel config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse channel config: %w", err)
		}
	}

	applyChannelDefaults(&cfg)
	if err := validateChannelConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid channel config: %w", err)
	}
	return &cfg, nil
}

func applyChannelDefaults(cfg *ChannelConfig) {
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./output"
	}
	if cfg.FilenameTemplate == "" {
		cfg.FilenameTemplate = "{label}"
	}
}

func validateChannelConfig(cfg *ChannelConfig) error {
	if cfg.MaxTransactionsPerFile < 0 {
		return fmt.Errorf("max_transactions_per_file must not be negative")
	}
	if cfg.MaxFileSizeBytes < 0 {
		return fmt.Errorf("max_file_size_bytes must not be negative")
	}
	return nil
}

// =============================================================================
// BATCH FILE
// =============================================================================

// Batch message types.
const (
	TypeCreditTransfer = "credit_transfer"
	TypeDirectDebit    = "direct_debit"
)

// BatchFile describes one document to generate.
type BatchFile struct {
	// Type is credit_transfer or direct_debit.
	Type string `yaml:"type"`

	// Version is the dotted SEPA version, e.g. "pain.001.001.03".
	Version string `yaml:"version"`

	InitiatingParty   string `yaml:"initiating_party"`
	MessageID         string `yaml:"message_id"`
	InitiatingPartyID string `yaml:"initiating_party_id"`

	OrgID BatchOrgID `yaml:"org_id"`

	// DisableChecks skips field validation and sanitization.
	DisableChecks bool `yaml:"disable_checks"`

	// Sanitize lists the text fields to coerce into the SEPA character
	// set instead of rejecting: name, remittance_text, initiating_party,
	// or all.
	Sanitize []string `yaml:"sanitize"`

	Collections []BatchCollection `yaml:"collections"`
}

// SanitizeFlags resolves the sanitize field list to engine flags.
func (b *BatchFile) SanitizeFlags() (validation.Flags, error) {
	var flags validation.Flags
	for _, field := range b.Sanitize {
		switch field {
		case "name":
			flags |= validation.FlagName
		case "remittance_text":
			flags |= validation.FlagRemittanceText
		case "initiating_party":
			flags |= validation.FlagInitiatingParty
		case "all":
			flags |= validation.FlagAllText
		default:
			return 0, fmt.Errorf("invalid batch file: unknown sanitize field %q", field)
		}
	}
	return flags, nil
}

// BatchOrgID mirrors the organisation id keyed bag.
type BatchOrgID struct {
	ID         string `yaml:"id"`
	BIC        string `yaml:"bic"`
	SchemeName string `yaml:"scheme_name"`
}

// BatchCollection is one collection block of the batch file.
type BatchCollection struct {
	PaymentInfoID string `yaml:"payment_info_id"`
	Name          string `yaml:"name"`
	IBAN          string `yaml:"iban"`
	BIC           string `yaml:"bic"`
	Currency      string `yaml:"currency"`
	BatchBooking  bool   `yaml:"batch_booking"`
	ExecutionDate string `yaml:"execution_date"`
	UltimateName  string `yaml:"ultimate_name"`

	// Direct debit only.
	CreditorID      string `yaml:"creditor_id"`
	SequenceType    string `yaml:"sequence_type"`
	LocalInstrument string `yaml:"local_instrument"`

	Payments []BatchPayment `yaml:"payments"`
}

// BatchPayment is one payment of the batch file. The amount is kept as a
// string so the decimal scale survives YAML parsing.
type BatchPayment struct {
	EndToEndID        string `yaml:"end_to_end_id"`
	Amount            string `yaml:"amount"`
	Name              string `yaml:"name"`
	IBAN              string `yaml:"iban"`
	BIC               string `yaml:"bic"`
	UltimateName      string `yaml:"ultimate_name"`
	RemittanceText    string `yaml:"remittance_text"`
	CreditorReference string `yaml:"creditor_reference"`

	// Direct debit only.
	MandateID         string `yaml:"mandate_id"`
	MandateDate       string `yaml:"mandate_date"`
	MandateChanged    bool   `yaml:"mandate_changed"`
	OriginalMandateID string `yaml:"original_mandate_id"`
}

// LoadBatchFile loads and structurally validates a batch description.
func LoadBatchFile(path string) (*BatchFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	var batch BatchFile
	if err := yaml.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("failed to parse batch file: %w", err)
	}

	if batch.Type != TypeCreditTransfer && batch.Type != TypeDirectDebit {
		return nil, fmt.Errorf("invalid batch file: type must be %q or %q, got %q",
			TypeCreditTransfer, TypeDirectDebit, batch.Type)
	}
	if batch.Version == "" {
		return nil, fmt.Errorf("invalid batch file: version is required")
	}
	if len(batch.Collections) == 0 {
		return nil, fmt.Errorf("invalid batch file: at least one collection is required")
	}

	return &batch, nil
}
