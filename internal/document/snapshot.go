// =============================================================================
// SEPA XML Export - Frozen Document Model & Renderer
// =============================================================================
//
// Snapshot is the immutable form of a validated document. The renderer
// walks the snapshot and emits elements in the order the pain schemas
// prescribe; the builders below are the single place that knows the
// per-family field sets, with per-version differences read off the
// profile.
//
// =============================================================================

package document

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paybatch/sepaxml/internal/profile"
	"github.com/paybatch/sepaxml/internal/types"
	"github.com/paybatch/sepaxml/internal/xmlwriter"
)

// =============================================================================
// SNAPSHOT MODEL
// =============================================================================

// Snapshot is a validated, frozen document ready for splitting and
// rendering.
type Snapshot struct {
	Profile           *profile.Profile
	InitiatingParty   string
	MessageID         string
	InitiatingPartyID string
	OrgID             types.OrgID
	CreatedAt         time.Time
	Collections       []*CollectionBlock
}

// CollectionBlock is one frozen collection: its header plus its payments.
type CollectionBlock struct {
	Config   types.CollectionConfig
	Payments []*Payment
}

// TransactionCount returns the number of payments across all collections.
func (s *Snapshot) TransactionCount() int {
	n := 0
	for _, b := range s.Collections {
		n += len(b.Payments)
	}
	return n
}

// ControlSum returns the sum of all payment amounts.
func (s *Snapshot) ControlSum() decimal.Decimal {
	sum := decimal.Zero
	for _, b := range s.Collections {
		sum = sum.Add(b.ControlSum())
	}
	return sum
}

// WithCollections derives a new snapshot sharing this snapshot's head data
// but carrying the given message id and collections. Used by the batch
// splitter to form independently valid output units.
func (s *Snapshot) WithCollections(msgID string, blocks []*CollectionBlock) *Snapshot {
	unit := *s
	unit.MessageID = msgID
	unit.Collections = blocks
	return &unit
}

// ControlSum returns the sum of the block's payment amounts.
func (b *CollectionBlock) ControlSum() decimal.Decimal {
	sum := decimal.Zero
	for _, pm := range b.Payments {
		sum = sum.Add(pm.Amount())
	}
	return sum
}

// Slice returns a block with the same header but only payments [from, to).
// The header is duplicated verbatim so a continuation block stays
// schema-valid on its own.
func (b *CollectionBlock) Slice(from, to int) *CollectionBlock {
	return &CollectionBlock{Config: b.Config, Payments: b.Payments[from:to]}
}

// =============================================================================
// DOCUMENT RENDERING
// =============================================================================

const xsiNamespace = "http://www.w3.org/2001/XMLSchema-instance"

// RenderXML serializes the snapshot to a complete pain document.
func (s *Snapshot) RenderXML() []byte {
	p := s.Profile

	root := xmlwriter.New("Document",
		xmlwriter.Attr{Name: "xmlns", Value: p.Namespace},
		xmlwriter.Attr{Name: "xmlns:xsi", Value: xsiNamespace},
		xmlwriter.Attr{Name: "xsi:schemaLocation", Value: p.SchemaLocation},
	)
	msg := root.Child(p.RootElement)

	msg.Add(s.renderGroupHeader())
	for _, b := range s.Collections {
		switch p.Type {
		case profile.DirectDebit:
			msg.Add(s.renderDirectDebitInfo(b))
		default:
			msg.Add(s.renderCreditTransferInfo(b))
		}
	}

	return xmlwriter.Render(root)
}

// renderGroupHeader builds the GrpHdr block shared by both families.
func (s *Snapshot) renderGroupHeader() *xmlwriter.Element {
	grpHdr := xmlwriter.New("GrpHdr").
		AddText("MsgId", s.MessageID).
		AddText("CreDtTm", s.CreatedAt.Format("2006-01-02T15:04:05")).
		AddText("NbOfTxs", strconv.Itoa(s.TransactionCount())).
		AddText("CtrlSum", s.ControlSum().StringFixed(2))

	initgPty := grpHdr.Child("InitgPty").AddText("Nm", s.InitiatingParty)
	switch {
	case !s.OrgID.IsZero():
		orgID := initgPty.Child("Id").Child("OrgId")
		if s.OrgID.BIC != "" {
			orgID.AddText(s.Profile.OrgIDBICTag, s.OrgID.BIC)
		}
		if s.OrgID.ID != "" {
			othr := orgID.Child("Othr").AddText("Id", s.OrgID.ID)
			if s.OrgID.SchemeName != "" {
				othr.Child("SchmeNm").AddText("Prtry", s.OrgID.SchemeName)
			}
		}
	case s.InitiatingPartyID != "":
		initgPty.Child("Id").Child("OrgId").Child("Othr").
			AddText("Id", s.InitiatingPartyID)
	}

	return grpHdr
}

// renderCreditTransferInfo builds one pain.001 PmtInf block.
func (s *Snapshot) renderCreditTransferInfo(b *CollectionBlock) *xmlwriter.Element {
	p := s.Profile
	cfg := b.Config

	pmtInf := xmlwriter.New("PmtInf").
		AddText("PmtInfId", cfg.PaymentInfoID).
		AddText("PmtMtd", p.PaymentMethod).
		AddText("BtchBookg", strconv.FormatBool(cfg.BatchBooking)).
		AddText("NbOfTxs", strconv.Itoa(len(b.Payments))).
		AddText("CtrlSum", b.ControlSum().StringFixed(2))

	pmtInf.Child("PmtTpInf").Child("SvcLvl").AddText("Cd", "SEPA")

	if p.WrappedExecutionDate {
		pmtInf.Child("ReqdExctnDt").AddText("Dt", cfg.ExecutionDate)
	} else {
		pmtInf.AddText("ReqdExctnDt", cfg.ExecutionDate)
	}

	pmtInf.Child("Dbtr").AddText("Nm", cfg.Name)
	dbtrAcct := pmtInf.Child("DbtrAcct")
	dbtrAcct.Child("Id").AddText("IBAN", cfg.IBAN)
	dbtrAcct.AddText("Ccy", cfg.Currency)
	pmtInf.Child("DbtrAgt").Add(s.financialInstitution(cfg.BIC))

	if cfg.UltimateName != "" {
		pmtInf.Child("UltmtDbtr").AddText("Nm", cfg.UltimateName)
	}
	pmtInf.AddText("ChrgBr", "SLEV")

	for _, pm := range b.Payments {
		pmtInf.Add(s.renderCreditTransferTx(pm, cfg.Currency))
	}

	return pmtInf
}

// renderCreditTransferTx builds one CdtTrfTxInf element.
func (s *Snapshot) renderCreditTransferTx(pm *Payment, currency string) *xmlwriter.Element {
	cfg := pm.cfg

	tx := xmlwriter.New("CdtTrfTxInf")
	tx.Child("PmtId").AddText("EndToEndId", cfg.EndToEndID)

	instdAmt := xmlwriter.Text("InstdAmt", cfg.Amount.StringFixed(2))
	instdAmt.Attrs = []xmlwriter.Attr{{Name: "Ccy", Value: currency}}
	tx.Child("Amt").Add(instdAmt)

	// CdtrAgt is optional; IBAN-only payments simply omit it.
	if cfg.BIC != "" {
		tx.Child("CdtrAgt").Add(s.financialInstitution(cfg.BIC))
	}
	tx.Child("Cdtr").AddText("Nm", cfg.Name)
	tx.Child("CdtrAcct").Child("Id").AddText("IBAN", cfg.IBAN)
	if cfg.UltimateName != "" {
		tx.Child("UltmtCdtr").AddText("Nm", cfg.UltimateName)
	}
	s.addRemittanceInfo(tx, cfg)

	return tx
}

// renderDirectDebitInfo builds one pain.008 PmtInf block.
func (s *Snapshot) renderDirectDebitInfo(b *CollectionBlock) *xmlwriter.Element {
	p := s.Profile
	cfg := b.Config

	pmtInf := xmlwriter.New("PmtInf").
		AddText("PmtInfId", cfg.PaymentInfoID).
		AddText("PmtMtd", p.PaymentMethod).
		AddText("BtchBookg", strconv.FormatBool(cfg.BatchBooking)).
		AddText("NbOfTxs", strconv.Itoa(len(b.Payments))).
		AddText("CtrlSum", b.ControlSum().StringFixed(2))

	pmtTpInf := pmtInf.Child("PmtTpInf")
	pmtTpInf.Child("SvcLvl").AddText("Cd", "SEPA")
	pmtTpInf.Child("LclInstrm").AddText("Cd", cfg.LocalInstrument)
	pmtTpInf.AddText("SeqTp", cfg.SequenceType)

	pmtInf.AddText("ReqdColltnDt", cfg.ExecutionDate)

	pmtInf.Child("Cdtr").AddText("Nm", cfg.Name)
	cdtrAcct := pmtInf.Child("CdtrAcct")
	cdtrAcct.Child("Id").AddText("IBAN", cfg.IBAN)
	cdtrAcct.AddText("Ccy", cfg.Currency)
	pmtInf.Child("CdtrAgt").Add(s.financialInstitution(cfg.BIC))

	if cfg.UltimateName != "" {
		pmtInf.Child("UltmtCdtr").AddText("Nm", cfg.UltimateName)
	}
	pmtInf.AddText("ChrgBr", "SLEV")

	othr := pmtInf.Child("CdtrSchmeId").Child("Id").Child("PrvtId").Child("Othr")
	othr.AddText("Id", cfg.CreditorID)
	othr.Child("SchmeNm").AddText("Prtry", "SEPA")

	for _, pm := range b.Payments {
		pmtInf.Add(s.renderDirectDebitTx(pm, cfg.Currency))
	}

	return pmtInf
}

// renderDirectDebitTx builds one DrctDbtTxInf element.
func (s *Snapshot) renderDirectDebitTx(pm *Payment, currency string) *xmlwriter.Element {
	cfg := pm.cfg

	tx := xmlwriter.New("DrctDbtTxInf")
	tx.Child("PmtId").AddText("EndToEndId", cfg.EndToEndID)

	instdAmt := xmlwriter.Text("InstdAmt", cfg.Amount.StringFixed(2))
	instdAmt.Attrs = []xmlwriter.Attr{{Name: "Ccy", Value: currency}}
	tx.Add(instdAmt)

	mndt := tx.Child("DrctDbtTx").Child("MndtRltdInf").
		AddText("MndtId", cfg.MandateID).
		AddText("DtOfSgntr", cfg.MandateDate)
	if cfg.MandateChanged {
		mndt.AddText("AmdmntInd", "true")
		mndt.Child("AmdmntInfDtls").AddText("OrgnlMndtId", cfg.OriginalMandateID)
	}

	tx.Child("DbtrAgt").Add(s.financialInstitution(cfg.BIC))
	tx.Child("Dbtr").AddText("Nm", cfg.Name)
	tx.Child("DbtrAcct").Child("Id").AddText("IBAN", cfg.IBAN)
	if cfg.UltimateName != "" {
		tx.Child("UltmtDbtr").AddText("Nm", cfg.UltimateName)
	}
	s.addRemittanceInfo(tx, cfg)

	return tx
}

// =============================================================================
// SHARED FRAGMENTS
// =============================================================================

// financialInstitution builds a FinInstnId carrying the BIC under the
// version's tag, or the NOTPROVIDED marker for IBAN-only parties.
func (s *Snapshot) financialInstitution(bic string) *xmlwriter.Element {
	fin := xmlwriter.New("FinInstnId")
	if bic != "" {
		fin.AddText(s.Profile.AgentBICTag, bic)
	} else {
		fin.Child("Othr").AddText("Id", "NOTPROVIDED")
	}
	return fin
}

// addRemittanceInfo appends the RmtInf block: either unstructured text or
// a structured creditor reference, never both.
func (s *Snapshot) addRemittanceInfo(tx *xmlwriter.Element, cfg types.PaymentConfig) {
	switch {
	case cfg.RemittanceText != "":
		tx.Child("RmtInf").AddText("Ustrd", cfg.RemittanceText)
	case cfg.CreditorReference != "":
		ref := tx.Child("RmtInf").Child("Strd").Child("CdtrRefInf")
		ref.Child("Tp").Child("CdOrPrtry").AddText("Cd", "SCOR")
		ref.AddText("Ref", cfg.CreditorReference)
	}
}
