// =============================================================================
// SEPA XML Export - Version Profile Registry
// =============================================================================
//
// This module holds the static registry of supported SEPA pain versions.
// Every version-specific decision in the generator (namespace, root element,
// org-id BIC tag, mandatory BIC, supported head fields) is expressed as a
// profile attribute so the other packages consult the profile instead of
// branching on version codes.
//
// Adding a new SEPA version means adding one registry entry here.
//
// =============================================================================

package profile

import "fmt"

// =============================================================================
// VERSION CODES
// =============================================================================

// Version identifies a supported SEPA pain message version.
type Version int

// The supported credit transfer (pain.001) and direct debit (pain.008)
// versions. The set is closed; unknown codes are rejected by ForVersion.
const (
	Pain00100103 Version = iota + 1 // pain.001.001.03
	Pain00100203                    // pain.001.002.03
	Pain00100303                    // pain.001.003.03
	Pain00100109                    // pain.001.001.09

	Pain00800102            // pain.008.001.02
	Pain00800202            // pain.008.002.02
	Pain00800302            // pain.008.003.02
	Pain00800102Austrian003 // pain.008.001.02.austrian.003
	Pain00800108            // pain.008.001.08
)

// MessageType distinguishes the two pain message families.
type MessageType int

const (
	CreditTransfer MessageType = iota + 1
	DirectDebit
)

// =============================================================================
// PROFILE
// =============================================================================

// Profile describes one SEPA version. Profiles are built once at package
// init and are read-only afterwards; they may be shared freely.
type Profile struct {
	// Code is the version this profile describes.
	Code Version

	// ISOName is the dotted version name, e.g. "pain.001.001.03".
	// It appears in error messages and in generated schema locations.
	ISOName string

	// Type is the message family (credit transfer or direct debit).
	Type MessageType

	// Namespace is the XML namespace URI of the Document root.
	Namespace string

	// SchemaLocation is the xsi:schemaLocation value of the Document root.
	SchemaLocation string

	// RootElement is the message root inside Document:
	// CstmrCdtTrfInitn or CstmrDrctDbtInitn.
	RootElement string

	// PaymentMethod is the PmtMtd value: TRF or DD.
	PaymentMethod string

	// OrgIDBICTag is the element name wrapping an organisation BIC/BEI.
	// The .09/.08 generation uses AnyBIC, the older versions BICOrBEI.
	OrgIDBICTag string

	// AgentBICTag is the element name for agent BICs inside FinInstnId.
	// The .09/.08 generation uses BICFI, the older versions BIC.
	AgentBICTag string

	// BICRequired marks versions that do not allow IBAN-only payments
	// (pain.001.002.03 and pain.008.002.02).
	BICRequired bool

	// SupportsInitgPtyID marks versions that allow an initiating party id
	// in the group header. Not supported by the austrian variant.
	SupportsInitgPtyID bool

	// SupportsOrgIDSchemeName marks versions that allow an organisation id
	// scheme name. Not supported by the austrian variant.
	SupportsOrgIDSchemeName bool

	// WrappedExecutionDate marks the .09/.08 generation, where the
	// requested execution/collection date is wrapped in a Dt child.
	WrappedExecutionDate bool
}

// =============================================================================
// REGISTRY
// =============================================================================

const isoNamespacePrefix = "urn:iso:std:iso:20022:tech:xsd:"

// registry is the fixed version table. Keyed by Version, never mutated
// after init.
var registry = map[Version]*Profile{}

func init() {
	register(&Profile{
		Code:    Pain00100103,
		ISOName: "pain.001.001.03",
		Type:    CreditTransfer,
	})
	register(&Profile{
		Code:        Pain00100203,
		ISOName:     "pain.001.002.03",
		Type:        CreditTransfer,
		BICRequired: true,
	})
	register(&Profile{
		Code:    Pain00100303,
		ISOName: "pain.001.003.03",
		Type:    CreditTransfer,
	})
	register(&Profile{
		Code:    Pain00100109,
		ISOName: "pain.001.001.09",
		Type:    CreditTransfer,
	})
	register(&Profile{
		Code:    Pain00800102,
		ISOName: "pain.008.001.02",
		Type:    DirectDebit,
	})
	register(&Profile{
		Code:        Pain00800202,
		ISOName:     "pain.008.002.02",
		Type:        DirectDebit,
		BICRequired: true,
	})
	register(&Profile{
		Code:    Pain00800302,
		ISOName: "pain.008.003.02",
		Type:    DirectDebit,
	})
	register(&Profile{
		// The austrian rulebook variant reuses the pain.008.001.02
		// namespace but ships its own schema and forbids the
		// initiating party id and org-id scheme name head fields.
		Code:      Pain00800102Austrian003,
		ISOName:   "pain.008.001.02.austrian.003",
		Type:      DirectDebit,
		Namespace: isoNamespacePrefix + "pain.008.001.02",
		SchemaLocation: isoNamespacePrefix +
			"pain.008.001.02 pain.008.001.02.austrian.003.xsd",
	})
	register(&Profile{
		Code:    Pain00800108,
		ISOName: "pain.008.001.08",
		Type:    DirectDebit,
	})
}

// register fills in the attributes that follow mechanically from the ISO
// name and stores the profile. Explicitly set fields win.
func register(p *Profile) {
	if p.Namespace == "" {
		p.Namespace = isoNamespacePrefix + p.ISOName
	}
	if p.SchemaLocation == "" {
		p.SchemaLocation = p.Namespace + " " + p.ISOName + ".xsd"
	}

	newGeneration := p.Code == Pain00100109 || p.Code == Pain00800108
	if newGeneration {
		p.OrgIDBICTag = "AnyBIC"
		p.AgentBICTag = "BICFI"
		// Only pain.001 gained the Dt/DtTm choice under ReqdExctnDt;
		// ReqdColltnDt stays a plain ISODate in pain.008.001.08.
		p.WrappedExecutionDate = p.Code == Pain00100109
	} else {
		p.OrgIDBICTag = "BICOrBEI"
		p.AgentBICTag = "BIC"
	}

	switch p.Type {
	case CreditTransfer:
		p.RootElement = "CstmrCdtTrfInitn"
		p.PaymentMethod = "TRF"
	case DirectDebit:
		p.RootElement = "CstmrDrctDbtInitn"
		p.PaymentMethod = "DD"
	}

	austrian := p.Code == Pain00800102Austrian003
	p.SupportsInitgPtyID = !austrian
	p.SupportsOrgIDSchemeName = !austrian

	registry[p.Code] = p
}

// =============================================================================
// LOOKUP
// =============================================================================

// ForVersion returns the profile for the given version code.
// Unknown codes are a hard input error, never a default.
func ForVersion(code Version) (*Profile, error) {
	p, ok := registry[code]
	if !ok {
		return nil, fmt.Errorf("unsupported SEPA version code %d: use one of the Pain* constants", code)
	}
	return p, nil
}

// Versions returns all registered version codes. Used by the CLI to list
// supported versions and by tests to iterate the registry.
func Versions() []Version {
	codes := make([]Version, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// ParseISOName resolves a dotted version name (as used in batch files,
// e.g. "pain.001.001.03") to its version code.
func ParseISOName(name string) (Version, error) {
	for code, p := range registry {
		if p.ISOName == name {
			return code, nil
		}
	}
	return 0, fmt.Errorf("unsupported SEPA version %q", name)
}

// String returns the dotted ISO name of the version, or a placeholder for
// unknown codes.
func (v Version) String() string {
	if p, ok := registry[v]; ok {
		return p.ISOName
	}
	return fmt.Sprintf("unknown(%d)", int(v))
}
