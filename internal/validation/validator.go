// =============================================================================
// SEPA XML Export - Field Validation Engine
// =============================================================================
//
// This module normalizes and checks the individual field values that go
// into a SEPA document:
//   - IBAN and BIC (format + mod-97 checksum)
//   - ISO dates
//   - Amounts (positive, at most two fraction digits)
//   - Restricted SEPA text with per-field length limits
//   - Structured creditor references (ISO 11649) and creditor identifiers
//
// VALIDATION STRATEGY:
//   Check* functions reject invalid input with a descriptive error and
//   return the normalized value. Sanitize* functions coerce input into the
//   SEPA character set (transliteration first, replacement second). The
//   combined CheckAndSanitize applies sanitization only for fields selected
//   by the caller's flag set, then checks.
//
//   Sanitizing already-valid input is the identity: generated output must
//   not depend on whether checking was enabled.
//
// =============================================================================

package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// FIELD KINDS
// =============================================================================

// Field names a validated field kind. The kind selects the format rule and
// the maximum length.
type Field string

const (
	FieldIBAN              Field = "iban"
	FieldBIC               Field = "bic"
	FieldDate              Field = "date"
	FieldCurrency          Field = "currency"
	FieldMessageID         Field = "message_id"
	FieldPaymentInfoID     Field = "payment_info_id"
	FieldEndToEndID        Field = "end_to_end_id"
	FieldMandateID         Field = "mandate_id"
	FieldInitiatingParty   Field = "initiating_party"
	FieldName              Field = "name"
	FieldRemittanceText    Field = "remittance_text"
	FieldSchemeName        Field = "scheme_name"
	FieldOrgID             Field = "org_id"
	FieldCreditorID        Field = "creditor_id"
	FieldCreditorReference Field = "creditor_reference"
	FieldSequenceType      Field = "sequence_type"
	FieldLocalInstrument   Field = "local_instrument"
)

// maxLengths holds the per-field length limits from the pain schemas.
var maxLengths = map[Field]int{
	FieldMessageID:       35,
	FieldPaymentInfoID:   35,
	FieldEndToEndID:      35,
	FieldMandateID:       35,
	FieldInitiatingParty: 70,
	FieldName:            70,
	FieldRemittanceText:  140,
	FieldSchemeName:      35,
	FieldOrgID:           35,
}

// =============================================================================
// SANITIZE FLAGS
// =============================================================================

// Flags selects which text fields are sanitized (coerced) rather than only
// checked by CheckAndSanitize.
type Flags uint

const (
	FlagName Flags = 1 << iota
	FlagRemittanceText
	FlagInitiatingParty

	// FlagAllText sanitizes every free-text field.
	FlagAllText = FlagName | FlagRemittanceText | FlagInitiatingParty
)

// flagFor maps sanitizable fields to their flag bit.
var flagFor = map[Field]Flags{
	FieldName:            FlagName,
	FieldUltimateName:    FlagName,
	FieldRemittanceText:  FlagRemittanceText,
	FieldInitiatingParty: FlagInitiatingParty,
}

// FieldUltimateName shares the rules of FieldName but keeps its own name
// for error reporting.
const FieldUltimateName Field = "ultimate_name"

// =============================================================================
// PUBLIC API
// =============================================================================

// Check validates value against the rules for field and returns the
// normalized form. It never coerces: invalid input is an error.
func Check(field Field, value string) (string, error) {
	switch field {
	case FieldIBAN:
		return checkIBAN(value)
	case FieldBIC:
		return checkBIC(value)
	case FieldDate:
		return checkDate(value)
	case FieldCurrency:
		return checkCurrency(value)
	case FieldSequenceType:
		return checkEnum(field, value, "FRST", "RCUR", "OOFF", "FNAL")
	case FieldLocalInstrument:
		return checkEnum(field, value, "CORE", "COR1", "B2B")
	case FieldCreditorReference:
		return checkCreditorReference(value)
	case FieldCreditorID:
		return checkCreditorID(value)
	case FieldMessageID, FieldPaymentInfoID, FieldEndToEndID, FieldMandateID:
		return checkRestrictedID(field, value)
	case FieldInitiatingParty, FieldName, FieldUltimateName,
		FieldRemittanceText, FieldSchemeName, FieldOrgID:
		return checkText(field, value)
	default:
		return "", fmt.Errorf("field %q: no validation rule defined", field)
	}
}

// Sanitize coerces value into the SEPA character set for field. Fields
// without a sanitization rule are returned unchanged.
func Sanitize(field Field, value string) string {
	switch field {
	case FieldInitiatingParty, FieldName, FieldUltimateName,
		FieldRemittanceText, FieldSchemeName:
		s := sanitizeText(value)
		if max := maxLengthOf(field); max > 0 && len(s) > max {
			s = strings.TrimRight(s[:max], " ")
		}
		return s
	default:
		return value
	}
}

// CheckAndSanitize sanitizes value when the field's flag bit is set, then
// checks it. This is the entry point used by the document engine.
func CheckAndSanitize(field Field, value string, flags Flags) (string, error) {
	if bit, ok := flagFor[field]; ok && flags&bit != 0 {
		value = Sanitize(field, value)
	}
	normalized, err := Check(field, value)
	if err != nil {
		return "", err
	}
	return normalized, nil
}

// CheckAmount validates a payment amount: strictly positive with at most
// two fraction digits (cent precision).
func CheckAmount(amt decimal.Decimal) error {
	if !amt.IsPositive() {
		return fmt.Errorf("amount %s: must be positive", amt.String())
	}
	if amt.Exponent() < -2 {
		return fmt.Errorf("amount %s: more than two decimal places", amt.String())
	}
	return nil
}

// =============================================================================
// FORMAT CHECKS
// =============================================================================

var (
	ibanPattern = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z0-9]{1,30}$`)
	bicPattern  = regexp.MustCompile(`^[A-Z]{4}[A-Z]{2}[A-Z0-9]{2}([A-Z0-9]{3})?$`)
	ccyPattern  = regexp.MustCompile(`^[A-Z]{3}$`)
	crefPattern = regexp.MustCompile(`^RF[0-9]{2}[A-Za-z0-9]{1,21}$`)
	ciPattern   = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z0-9]{3}[A-Z0-9]{1,28}$`)
	idPattern   = regexp.MustCompile(`^[A-Za-z0-9/\-?:().,'+ ]+$`)
)

func checkIBAN(value string) (string, error) {
	iban := strings.ToUpper(strings.ReplaceAll(value, " ", ""))
	if !ibanPattern.MatchString(iban) {
		return "", fmt.Errorf("IBAN %q: invalid format", value)
	}
	// Rearranged checksum: body + country + check digits, mod 97 == 1.
	if mod97(iban[4:]+iban[:4]) != 1 {
		return "", fmt.Errorf("IBAN %q: checksum failed", value)
	}
	return iban, nil
}

func checkBIC(value string) (string, error) {
	bic := strings.ToUpper(strings.ReplaceAll(value, " ", ""))
	if !bicPattern.MatchString(bic) {
		return "", fmt.Errorf("BIC %q: invalid format", value)
	}
	return bic, nil
}

func checkDate(value string) (string, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(value))
	if err != nil {
		return "", fmt.Errorf("date %q: expected format YYYY-MM-DD", value)
	}
	return t.Format("2006-01-02"), nil
}

func checkCurrency(value string) (string, error) {
	ccy := strings.ToUpper(strings.TrimSpace(value))
	if !ccyPattern.MatchString(ccy) {
		return "", fmt.Errorf("currency %q: expected a three-letter ISO 4217 code", value)
	}
	return ccy, nil
}

func checkEnum(field Field, value string, allowed ...string) (string, error) {
	v := strings.ToUpper(strings.TrimSpace(value))
	for _, a := range allowed {
		if v == a {
			return v, nil
		}
	}
	return "", fmt.Errorf("%s %q: must be one of %s", field, value, strings.Join(allowed, ", "))
}

// checkCreditorReference validates a structured ISO 11649 reference
// ("RF" + check digits + reference, mod-97 over the rearranged string).
func checkCreditorReference(value string) (string, error) {
	ref := strings.ToUpper(strings.ReplaceAll(value, " ", ""))
	if !crefPattern.MatchString(ref) {
		return "", fmt.Errorf("creditor reference %q: invalid format", value)
	}
	if mod97(ref[4:]+ref[:4]) != 1 {
		return "", fmt.Errorf("creditor reference %q: checksum failed", value)
	}
	return ref, nil
}

// checkCreditorID validates a SEPA creditor identifier. The creditor
// business code (positions 5-7) is excluded from the checksum.
func checkCreditorID(value string) (string, error) {
	ci := strings.ToUpper(strings.ReplaceAll(value, " ", ""))
	if !ciPattern.MatchString(ci) {
		return "", fmt.Errorf("creditor id %q: invalid format", value)
	}
	if mod97(ci[7:]+ci[:4]) != 1 {
		return "", fmt.Errorf("creditor id %q: checksum failed", value)
	}
	return ci, nil
}

func checkRestrictedID(field Field, value string) (string, error) {
	id := strings.TrimSpace(value)
	if id == "" {
		return "", fmt.Errorf("%s: must not be empty", field)
	}
	if max := maxLengthOf(field); len(id) > max {
		return "", fmt.Errorf("%s %q: exceeds maximum length of %d characters", field, value, max)
	}
	if !idPattern.MatchString(id) {
		return "", fmt.Errorf("%s %q: contains characters outside the SEPA character set", field, value)
	}
	return id, nil
}

func checkText(field Field, value string) (string, error) {
	text := strings.TrimSpace(value)
	if text == "" {
		return "", fmt.Errorf("%s: must not be empty", field)
	}
	if max := maxLengthOf(field); max > 0 && len(text) > max {
		return "", fmt.Errorf("%s: exceeds maximum length of %d characters", field, max)
	}
	for _, r := range text {
		if !isSEPAChar(r) {
			return "", fmt.Errorf("%s: character %q is outside the SEPA character set", field, r)
		}
	}
	return text, nil
}

func maxLengthOf(field Field) int {
	if field == FieldUltimateName {
		return maxLengths[FieldName]
	}
	return maxLengths[field]
}

// =============================================================================
// SANITIZATION
// =============================================================================

// transliterations maps characters common in European names onto the SEPA
// character set.
var transliterations = map[rune]string{
	'Ä': "Ae", 'ä': "ae", 'Ö': "Oe", 'ö': "oe", 'Ü': "Ue", 'ü': "ue",
	'ß': "ss", 'À': "A", 'Á': "A", 'Â': "A", 'Ã': "A", 'Å': "A",
	'à': "a", 'á': "a", 'â': "a", 'ã': "a", 'å': "a",
	'È': "E", 'É': "E", 'Ê': "E", 'Ë': "E",
	'è': "e", 'é': "e", 'ê': "e", 'ë': "e",
	'Ì': "I", 'Í': "I", 'Î': "I", 'Ï': "I",
	'ì': "i", 'í': "i", 'î': "i", 'ï': "i",
	'Ò': "O", 'Ó': "O", 'Ô': "O", 'Õ': "O", 'Ø': "O",
	'ò': "o", 'ó': "o", 'ô': "o", 'õ': "o", 'ø': "o",
	'Ù': "U", 'Ú': "U", 'Û': "U",
	'ù': "u", 'ú': "u", 'û': "u",
	'Ç': "C", 'ç': "c", 'Ñ': "N", 'ñ': "n",
	'&': "+",
}

// sanitizeText transliterates what it can and replaces every remaining
// character outside the SEPA character set with a space.
func sanitizeText(value string) string {
	var b strings.Builder
	for _, r := range value {
		switch {
		case isSEPAChar(r):
			b.WriteRune(r)
		default:
			if repl, ok := transliterations[r]; ok {
				b.WriteString(repl)
			} else {
				b.WriteByte(' ')
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// isSEPAChar reports whether r belongs to the restricted SEPA character
// set (EPC best practice set).
func isSEPAChar(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	switch r {
	case '/', '-', '?', ':', '(', ')', '.', ',', '\'', '+', ' ':
		return true
	}
	return false
}

// =============================================================================
// CHECKSUM
// =============================================================================

// mod97 computes the ISO 7064 mod-97-10 remainder of s, mapping letters
// A-Z to 10-35. Digit-wise to avoid big integer arithmetic.
func mod97(s string) int {
	rem := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			rem = (rem*10 + int(r-'0')) % 97
		case r >= 'A' && r <= 'Z':
			n := int(r-'A') + 10
			rem = (rem*100 + n) % 97
		case r >= 'a' && r <= 'z':
			n := int(r-'a') + 10
			rem = (rem*100 + n) % 97
		default:
			return -1
		}
	}
	return rem
}
