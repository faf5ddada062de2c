// =============================================================================
// SEPA XML Export - Document Errors
// =============================================================================
//
// Error taxonomy of the document engine. Every error is attributable to a
// specific caller input and surfaces at the offending call; nothing is
// retried internally and partial progress is always preserved.
//
// =============================================================================

package document

import (
	"errors"
	"fmt"
)

// Sentinel errors of the document engine. Use errors.Is to classify.
var (
	// ErrEmptyDocument is returned by Generate when, after eliding empty
	// collections, no collection remains.
	ErrEmptyDocument = errors.New("document contains no payments: add at least one collection with at least one payment")

	// ErrInvalidOrgID classifies all organisation id legality failures.
	ErrInvalidOrgID = errors.New("invalid organisation id")

	// ErrInvalidField classifies all field-level validation failures.
	ErrInvalidField = errors.New("invalid field")
)

// Organisation id failure modes. All wrap ErrInvalidOrgID.
var (
	errOrgIDBothIDAndBIC = fmt.Errorf("%w: cannot use orgid[id] and orgid[bic] simultaneously", ErrInvalidOrgID)

	errOrgIDSchemeNameWithoutID = fmt.Errorf("%w: cannot use orgid[scheme_name] without orgid[id]", ErrInvalidOrgID)
)

// Structural payment/collection failure modes.
var (
	errRemittanceExclusive = errors.New("unstructured remittance text and structured creditor reference are mutually exclusive")

	errFieldRequired = errors.New("required field is missing")
)

// errBICRequired reports a missing BIC for a version that does not allow
// IBAN-only payments.
func errBICRequired(isoName string) error {
	return fmt.Errorf("%s requires a BIC: %w", isoName, errFieldRequired)
}

// orgIDSchemeNameUnsupported reports a scheme name supplied for a version
// that does not know the field at all.
func orgIDSchemeNameUnsupported(isoName string) error {
	return fmt.Errorf("%w: orgid[scheme_name] is not supported by %s", ErrInvalidOrgID, isoName)
}

// initgPtyIDUnsupported reports an initiating party id supplied for a
// version that does not know the field.
func initgPtyIDUnsupported(isoName string) error {
	return fmt.Errorf("%w: initiating party id is not supported by %s", ErrInvalidField, isoName)
}

// FieldError reports a rejected field value together with the field name,
// so callers can point the user at the offending input.
type FieldError struct {
	Field  string
	Reason error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid field %s: %v", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error { return e.Reason }

// Is lets errors.Is(err, ErrInvalidField) match any FieldError.
func (e *FieldError) Is(target error) bool { return target == ErrInvalidField }

// fieldErr wraps a validation failure for the named field.
func fieldErr(field string, reason error) error {
	return &FieldError{Field: field, Reason: reason}
}
