// =============================================================================
// SEPA XML Export - Payment
// =============================================================================
//
// A Payment is one validated transfer or debit instruction inside a
// collection. Payments are created and validated atomically by
// Collection.AddPayment and never mutated afterwards.
//
// =============================================================================

package document

import (
	"github.com/shopspring/decimal"

	"github.com/paybatch/sepaxml/internal/profile"
	"github.com/paybatch/sepaxml/internal/types"
	"github.com/paybatch/sepaxml/internal/validation"
)

// Payment is one immutable payment instruction.
type Payment struct {
	cfg types.PaymentConfig
}

// newPayment validates cfg against the profile and returns the normalized,
// frozen payment. Structural rules (amount, remittance exclusion, required
// BIC/mandate presence) always apply; format checks apply when check is
// set, with sanitization governed by flags.
func newPayment(p *profile.Profile, cfg types.PaymentConfig, check bool, flags validation.Flags) (*Payment, error) {
	// Structural rules first. These hold even with checking disabled,
	// since violating them produces files no bank accepts.
	if err := validation.CheckAmount(cfg.Amount); err != nil {
		return nil, fieldErr("amount", err)
	}
	if cfg.RemittanceText != "" && cfg.CreditorReference != "" {
		return nil, fieldErr("remittance", errRemittanceExclusive)
	}
	if p.BICRequired && cfg.BIC == "" {
		return nil, fieldErr("bic", errBICRequired(p.ISOName))
	}
	if p.Type == profile.DirectDebit {
		if cfg.MandateID == "" {
			return nil, fieldErr("mandate_id", errFieldRequired)
		}
		if cfg.MandateDate == "" {
			return nil, fieldErr("mandate_date", errFieldRequired)
		}
		if cfg.MandateChanged && cfg.OriginalMandateID == "" {
			return nil, fieldErr("original_mandate_id", errFieldRequired)
		}
	}

	if !check {
		return &Payment{cfg: cfg}, nil
	}

	var err error
	if cfg.EndToEndID, err = validation.Check(validation.FieldEndToEndID, cfg.EndToEndID); err != nil {
		return nil, fieldErr("end_to_end_id", err)
	}
	if cfg.Name, err = validation.CheckAndSanitize(validation.FieldName, cfg.Name, flags); err != nil {
		return nil, fieldErr("name", err)
	}
	if cfg.IBAN, err = validation.Check(validation.FieldIBAN, cfg.IBAN); err != nil {
		return nil, fieldErr("iban", err)
	}
	if cfg.BIC != "" {
		if cfg.BIC, err = validation.Check(validation.FieldBIC, cfg.BIC); err != nil {
			return nil, fieldErr("bic", err)
		}
	}
	if cfg.UltimateName != "" {
		if cfg.UltimateName, err = validation.CheckAndSanitize(validation.FieldUltimateName, cfg.UltimateName, flags); err != nil {
			return nil, fieldErr("ultimate_name", err)
		}
	}
	if cfg.RemittanceText != "" {
		if cfg.RemittanceText, err = validation.CheckAndSanitize(validation.FieldRemittanceText, cfg.RemittanceText, flags); err != nil {
			return nil, fieldErr("remittance_text", err)
		}
	}
	if cfg.CreditorReference != "" {
		if cfg.CreditorReference, err = validation.Check(validation.FieldCreditorReference, cfg.CreditorReference); err != nil {
			return nil, fieldErr("creditor_reference", err)
		}
	}
	if p.Type == profile.DirectDebit {
		if cfg.MandateID, err = validation.Check(validation.FieldMandateID, cfg.MandateID); err != nil {
			return nil, fieldErr("mandate_id", err)
		}
		if cfg.MandateDate, err = validation.Check(validation.FieldDate, cfg.MandateDate); err != nil {
			return nil, fieldErr("mandate_date", err)
		}
		if cfg.MandateChanged {
			if cfg.OriginalMandateID, err = validation.Check(validation.FieldMandateID, cfg.OriginalMandateID); err != nil {
				return nil, fieldErr("original_mandate_id", err)
			}
		}
	}

	return &Payment{cfg: cfg}, nil
}

// EndToEndID returns the payment id.
func (pm *Payment) EndToEndID() string { return pm.cfg.EndToEndID }

// Amount returns the instructed amount.
func (pm *Payment) Amount() decimal.Decimal { return pm.cfg.Amount }

// CounterpartyName returns the creditor (credit transfer) or debtor
// (direct debit) name.
func (pm *Payment) CounterpartyName() string { return pm.cfg.Name }

// CounterpartyIBAN returns the counterparty account.
func (pm *Payment) CounterpartyIBAN() string { return pm.cfg.IBAN }
