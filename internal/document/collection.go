// =============================================================================
// SEPA XML Export - Payment Collections
// =============================================================================
//
// A collection is one batch of payments sharing collection-level
// attributes (one PmtInf block). There are two concrete variants, one per
// message family; per-version differences inside a family are carried by
// the version profile, so the variant set stays closed.
//
// Collections accumulate payments in insertion order. The order is
// preserved into the serialized output, which matters for bank
// reconciliation.
//
// =============================================================================

package document

import (
	"github.com/paybatch/sepaxml/internal/profile"
	"github.com/paybatch/sepaxml/internal/types"
	"github.com/paybatch/sepaxml/internal/validation"
)

// Collection is the mutable handle returned by Document.AddCollection.
// Implementations are CreditTransferCollection and DirectDebitCollection;
// the interface is closed.
type Collection interface {
	// AddPayment validates cfg and appends the payment. A failed add
	// leaves the collection unchanged.
	AddPayment(cfg types.PaymentConfig) (*Payment, error)

	// PaymentCount returns the number of payments added so far.
	PaymentCount() int

	// block freezes the collection into its snapshot form.
	block() *CollectionBlock
}

// =============================================================================
// SHARED BASE
// =============================================================================

// collectionBase carries the state common to both variants.
type collectionBase struct {
	profile  *profile.Profile
	cfg      types.CollectionConfig
	payments []*Payment
	check    bool
	flags    validation.Flags
}

func (c *collectionBase) AddPayment(cfg types.PaymentConfig) (*Payment, error) {
	pm, err := newPayment(c.profile, cfg, c.check, c.flags)
	if err != nil {
		return nil, err
	}
	c.payments = append(c.payments, pm)
	return pm, nil
}

func (c *collectionBase) PaymentCount() int { return len(c.payments) }

func (c *collectionBase) block() *CollectionBlock {
	payments := make([]*Payment, len(c.payments))
	copy(payments, c.payments)
	return &CollectionBlock{Config: c.cfg, Payments: payments}
}

// =============================================================================
// VARIANTS
// =============================================================================

// CreditTransferCollection is one pain.001 PmtInf batch. The account-side
// party is the debtor.
type CreditTransferCollection struct {
	collectionBase
}

// DirectDebitCollection is one pain.008 PmtInf batch. The account-side
// party is the creditor, identified additionally by its creditor id.
type DirectDebitCollection struct {
	collectionBase
}

// newCollection validates cfg and instantiates the variant matching the
// profile's message family.
func newCollection(p *profile.Profile, cfg types.CollectionConfig, defaultDate string, check bool, flags validation.Flags) (Collection, error) {
	normalized, err := normalizeCollectionConfig(p, cfg, defaultDate, check, flags)
	if err != nil {
		return nil, err
	}

	base := collectionBase{profile: p, cfg: normalized, check: check, flags: flags}
	switch p.Type {
	case profile.DirectDebit:
		return &DirectDebitCollection{base}, nil
	default:
		return &CreditTransferCollection{base}, nil
	}
}

// normalizeCollectionConfig applies defaults, structural rules and, when
// check is set, format validation to the collection header.
func normalizeCollectionConfig(p *profile.Profile, cfg types.CollectionConfig, defaultDate string, check bool, flags validation.Flags) (types.CollectionConfig, error) {
	var zero types.CollectionConfig

	// Defaults.
	if cfg.Currency == "" {
		cfg.Currency = "EUR"
	}
	if cfg.ExecutionDate == "" {
		cfg.ExecutionDate = defaultDate
	}
	if p.Type == profile.DirectDebit && cfg.LocalInstrument == "" {
		cfg.LocalInstrument = "CORE"
	}

	// Structural rules, independent of the check setting.
	if cfg.PaymentInfoID == "" {
		return zero, fieldErr("payment_info_id", errFieldRequired)
	}
	if cfg.Name == "" {
		return zero, fieldErr("name", errFieldRequired)
	}
	if cfg.IBAN == "" {
		return zero, fieldErr("iban", errFieldRequired)
	}
	if p.Type == profile.DirectDebit {
		if cfg.CreditorID == "" {
			return zero, fieldErr("creditor_id", errFieldRequired)
		}
		if cfg.SequenceType == "" {
			return zero, fieldErr("sequence_type", errFieldRequired)
		}
	}

	if !check {
		return cfg, nil
	}

	var err error
	if cfg.PaymentInfoID, err = validation.Check(validation.FieldPaymentInfoID, cfg.PaymentInfoID); err != nil {
		return zero, fieldErr("payment_info_id", err)
	}
	if cfg.Name, err = validation.CheckAndSanitize(validation.FieldName, cfg.Name, flags); err != nil {
		return zero, fieldErr("name", err)
	}
	if cfg.IBAN, err = validation.Check(validation.FieldIBAN, cfg.IBAN); err != nil {
		return zero, fieldErr("iban", err)
	}
	if cfg.BIC != "" {
		if cfg.BIC, err = validation.Check(validation.FieldBIC, cfg.BIC); err != nil {
			return zero, fieldErr("bic", err)
		}
	}
	if cfg.Currency, err = validation.Check(validation.FieldCurrency, cfg.Currency); err != nil {
		return zero, fieldErr("currency", err)
	}
	if cfg.ExecutionDate, err = validation.Check(validation.FieldDate, cfg.ExecutionDate); err != nil {
		return zero, fieldErr("execution_date", err)
	}
	if cfg.UltimateName != "" {
		if cfg.UltimateName, err = validation.CheckAndSanitize(validation.FieldUltimateName, cfg.UltimateName, flags); err != nil {
			return zero, fieldErr("ultimate_name", err)
		}
	}
	if p.Type == profile.DirectDebit {
		if cfg.CreditorID, err = validation.Check(validation.FieldCreditorID, cfg.CreditorID); err != nil {
			return zero, fieldErr("creditor_id", err)
		}
		if cfg.SequenceType, err = validation.Check(validation.FieldSequenceType, cfg.SequenceType); err != nil {
			return zero, fieldErr("sequence_type", err)
		}
		if cfg.LocalInstrument, err = validation.Check(validation.FieldLocalInstrument, cfg.LocalInstrument); err != nil {
			return zero, fieldErr("local_instrument", err)
		}
	}

	return cfg, nil
}
