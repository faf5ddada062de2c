// =============================================================================
// SEPA XML Export - Shared Types
// =============================================================================
//
// This package contains the data bags exchanged between the caller and the
// document engine. Types defined here are used by:
//   - document
//   - splitter
//   - cmd
//
// Keeping them in one leaf package avoids import cycles.
//
// =============================================================================

package types

import "github.com/shopspring/decimal"

// =============================================================================
// ORGANISATION ID
// =============================================================================

// OrgID identifies the initiating party organisation, expressed as either a
// generic id (optionally with a scheme name) or a BIC/BEI. The legality
// rules (id and BIC are mutually exclusive, scheme name requires id) are
// enforced by the document constructor.
type OrgID struct {
	// ID is a generic organisation identifier.
	ID string

	// BIC is a BIC or BEI identifying the organisation.
	BIC string

	// SchemeName names the scheme of ID (max. 35 characters). Only valid
	// together with ID, and not supported by every version.
	SchemeName string
}

// IsZero reports whether no organisation id field is set.
func (o OrgID) IsZero() bool {
	return o.ID == "" && o.BIC == "" && o.SchemeName == ""
}

// =============================================================================
// COLLECTION DATA
// =============================================================================

// CollectionConfig holds the header data of one payment collection
// (one PmtInf block). For credit transfers the account-side party is the
// debtor; for direct debits it is the creditor, and the direct-debit-only
// fields must be set as well.
type CollectionConfig struct {
	// PaymentInfoID is the collection id (PmtInfId, max. 35 characters).
	PaymentInfoID string

	// Name, IBAN and BIC of the account-side party (debtor for credit
	// transfers, creditor for direct debits). BIC may be empty unless the
	// version requires it.
	Name string
	IBAN string
	BIC  string

	// Currency of the account. Defaults to EUR.
	Currency string

	// BatchBooking requests aggregate booking of the collection.
	BatchBooking bool

	// ExecutionDate is the requested execution date (credit transfer) or
	// collection due date (direct debit), formatted YYYY-MM-DD.
	ExecutionDate string

	// UltimateName is the optional ultimate debtor (credit transfer) or
	// ultimate creditor (direct debit) name.
	UltimateName string

	// Direct debit only: the creditor identifier (Ci).
	CreditorID string

	// Direct debit only: sequence type FRST, RCUR, OOFF or FNAL.
	SequenceType string

	// Direct debit only: local instrument CORE, COR1 or B2B.
	LocalInstrument string
}

// =============================================================================
// PAYMENT DATA
// =============================================================================

// PaymentConfig holds one payment instruction. The counterparty is the
// creditor for credit transfers and the debtor for direct debits.
type PaymentConfig struct {
	// EndToEndID is the payment id (max. 35 characters).
	EndToEndID string

	// Amount is the instructed amount. Must be positive with at most two
	// fraction digits.
	Amount decimal.Decimal

	// Name, IBAN and BIC of the counterparty. BIC may be empty unless the
	// version requires it.
	Name string
	IBAN string
	BIC  string

	// UltimateName is the optional ultimate creditor/debtor name.
	UltimateName string

	// RemittanceText is unstructured remittance information (max. 140
	// characters). Mutually exclusive with CreditorReference.
	RemittanceText string

	// CreditorReference is a structured ISO 11649 creditor reference.
	// Mutually exclusive with RemittanceText.
	CreditorReference string

	// Direct debit only: mandate id and date of signature (YYYY-MM-DD).
	MandateID   string
	MandateDate string

	// Direct debit only: set when the mandate changed since the last
	// collection. OriginalMandateID carries the previous mandate id.
	MandateChanged    bool
	OriginalMandateID string
}

// =============================================================================
// OUTPUT
// =============================================================================

// Artifact kinds produced by a generation run.
const (
	KindPaymentFile = "payment_file"
	KindRoutingSlip = "routing_slip"
	KindControlList = "control_list"

	MIMETypeXML  = "application/xml"
	MIMETypeText = "text/plain"
	MIMETypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// OutputUnit is one generated artifact: a payment XML file, a routing slip
// or a control list. Units are produced fresh on every generation call and
// never persisted by the engine itself.
type OutputUnit struct {
	// Label is the suggested file name of the artifact.
	Label string

	// Kind is one of the Kind* constants.
	Kind string

	// MIMEType describes the payload.
	MIMEType string

	// Data is the artifact payload.
	Data []byte
}
