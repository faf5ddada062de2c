package validation

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_IBAN(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "valid german iban", input: "DE21500500001234567897", want: "DE21500500001234567897"},
		{name: "lowercase with spaces", input: "de21 5005 0000 1234 5678 97", want: "DE21500500001234567897"},
		{name: "second valid iban", input: "DE21500500009876543210", want: "DE21500500009876543210"},
		{name: "checksum failure", input: "DE22500500001234567897", wantErr: true},
		{name: "bad format", input: "D121500500001234567897", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Check(FieldIBAN, tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheck_BIC(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "eleven characters", input: "BELADEBEXXX", want: "BELADEBEXXX"},
		{name: "eight characters", input: "SPUEDE2U", want: "SPUEDE2U"},
		{name: "lowercase", input: "beladebexxx", want: "BELADEBEXXX"},
		{name: "too short", input: "BELADE", wantErr: true},
		{name: "digit in bank code", input: "B3LADEBEXXX", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Check(FieldBIC, tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheck_Date(t *testing.T) {
	got, err := Check(FieldDate, "2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, "2026-09-01", got)

	_, err = Check(FieldDate, "01.09.2026")
	require.Error(t, err)

	_, err = Check(FieldDate, "2026-02-30")
	require.Error(t, err)
}

func TestCheck_Currency(t *testing.T) {
	got, err := Check(FieldCurrency, "eur")
	require.NoError(t, err)
	assert.Equal(t, "EUR", got)

	_, err = Check(FieldCurrency, "EURO")
	require.Error(t, err)
}

func TestCheck_Enums(t *testing.T) {
	got, err := Check(FieldSequenceType, "rcur")
	require.NoError(t, err)
	assert.Equal(t, "RCUR", got)

	_, err = Check(FieldSequenceType, "ONCE")
	require.Error(t, err)

	got, err = Check(FieldLocalInstrument, "B2B")
	require.NoError(t, err)
	assert.Equal(t, "B2B", got)

	_, err = Check(FieldLocalInstrument, "SDD")
	require.Error(t, err)
}

func TestCheck_CreditorReference(t *testing.T) {
	got, err := Check(FieldCreditorReference, "RF18 5390 0754 7034")
	require.NoError(t, err)
	assert.Equal(t, "RF18539007547034", got)

	_, err = Check(FieldCreditorReference, "RF19539007547034")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum")

	_, err = Check(FieldCreditorReference, "XX18539007547034")
	require.Error(t, err)
}

func TestCheck_CreditorID(t *testing.T) {
	// The creditor business code (positions 5-7) is excluded from the
	// checksum, so changing it must not invalidate the identifier.
	got, err := Check(FieldCreditorID, "DE98ZZZ09999999999")
	require.NoError(t, err)
	assert.Equal(t, "DE98ZZZ09999999999", got)

	got, err = Check(FieldCreditorID, "DE98ABC09999999999")
	require.NoError(t, err)
	assert.Equal(t, "DE98ABC09999999999", got)

	_, err = Check(FieldCreditorID, "DE97ZZZ09999999999")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum")
}

func TestCheck_RestrictedIDs(t *testing.T) {
	got, err := Check(FieldMessageID, "MessageID-1234")
	require.NoError(t, err)
	assert.Equal(t, "MessageID-1234", got)

	_, err = Check(FieldMessageID, "")
	require.Error(t, err)

	_, err = Check(FieldEndToEndID, strings.Repeat("X", 36))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maximum length")

	_, err = Check(FieldMandateID, "mandate#1")
	require.Error(t, err)
}

func TestCheck_TextLengths(t *testing.T) {
	_, err := Check(FieldName, strings.Repeat("a", 70))
	require.NoError(t, err)

	_, err = Check(FieldName, strings.Repeat("a", 71))
	require.Error(t, err)

	_, err = Check(FieldRemittanceText, strings.Repeat("a", 140))
	require.NoError(t, err)

	_, err = Check(FieldRemittanceText, strings.Repeat("a", 141))
	require.Error(t, err)

	_, err = Check(FieldName, "Straße 1")
	require.Error(t, err)
}

func TestSanitize_Transliteration(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "umlauts and ampersand", input: "Müller & Söhne", want: "Mueller + Soehne"},
		{name: "sharp s", input: "Große Straße", want: "Grosse Strasse"},
		{name: "accents", input: "Café René", want: "Cafe Rene"},
		{name: "unmapped becomes space", input: "A*B", want: "A B"},
		{name: "valid input unchanged", input: "Initiator Name", want: "Initiator Name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(FieldName, tt.input))
		})
	}
}

func TestSanitize_IdentityOnValidInput(t *testing.T) {
	for _, field := range []Field{FieldName, FieldUltimateName, FieldRemittanceText, FieldInitiatingParty} {
		value := "Payment for invoice 42, ref (A-1)"
		assert.Equal(t, value, Sanitize(field, value), "field %s", field)
	}
}

func TestSanitize_TruncatesToFieldLength(t *testing.T) {
	long := strings.Repeat("a", 80)
	got := Sanitize(FieldName, long)
	assert.Len(t, got, 70)
}

func TestCheckAndSanitize_FlagGating(t *testing.T) {
	// Without the flag the invalid character is rejected.
	_, err := CheckAndSanitize(FieldName, "Müller", 0)
	require.Error(t, err)

	// With the flag it is transliterated first, then checked.
	got, err := CheckAndSanitize(FieldName, "Müller", FlagName)
	require.NoError(t, err)
	assert.Equal(t, "Mueller", got)

	// The flag of another field does not apply.
	_, err = CheckAndSanitize(FieldName, "Müller", FlagRemittanceText)
	require.Error(t, err)

	// Non-text fields are never sanitized.
	_, err = CheckAndSanitize(FieldIBAN, "XX00INVALID", FlagAllText)
	require.Error(t, err)
}

func TestCheckAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  decimal.Decimal
		wantErr bool
	}{
		{name: "cent precision", amount: decimal.RequireFromString("1.14")},
		{name: "whole euros", amount: decimal.RequireFromString("100")},
		{name: "zero", amount: decimal.Zero, wantErr: true},
		{name: "negative", amount: decimal.RequireFromString("-5.00"), wantErr: true},
		{name: "sub-cent precision", amount: decimal.RequireFromString("1.145"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckAmount(tt.amount)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMod97(t *testing.T) {
	// Known-good rearranged IBAN remainder.
	assert.Equal(t, 1, mod97("500500001234567897DE21"))
	assert.Equal(t, -1, mod97("ABC_DEF"))
}
