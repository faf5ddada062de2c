package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForVersion_AllRegisteredVersions(t *testing.T) {
	for _, code := range Versions() {
		p, err := ForVersion(code)
		require.NoError(t, err, "version %s", code)
		assert.Equal(t, code, p.Code)
		assert.NotEmpty(t, p.ISOName)
		assert.NotEmpty(t, p.Namespace)
		assert.NotEmpty(t, p.SchemaLocation)
		assert.NotEmpty(t, p.RootElement)
		assert.NotEmpty(t, p.OrgIDBICTag)
		assert.NotEmpty(t, p.AgentBICTag)
	}
}

func TestForVersion_UnknownCode(t *testing.T) {
	_, err := ForVersion(Version(0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported SEPA version")

	_, err = ForVersion(Version(999))
	require.Error(t, err)
}

func TestProfile_CapabilityFlags(t *testing.T) {
	tests := []struct {
		name            string
		code            Version
		bicRequired     bool
		initgPtyID      bool
		orgIDSchemeName bool
		orgIDBICTag     string
		agentBICTag     string
		wrappedExecDate bool
	}{
		{
			name:            "pain.001.001.03",
			code:            Pain00100103,
			initgPtyID:      true,
			orgIDSchemeName: true,
			orgIDBICTag:     "BICOrBEI",
			agentBICTag:     "BIC",
		},
		{
			name:            "pain.001.002.03 requires BIC",
			code:            Pain00100203,
			bicRequired:     true,
			initgPtyID:      true,
			orgIDSchemeName: true,
			orgIDBICTag:     "BICOrBEI",
			agentBICTag:     "BIC",
		},
		{
			name:            "pain.001.001.09 new generation tags",
			code:            Pain00100109,
			initgPtyID:      true,
			orgIDSchemeName: true,
			orgIDBICTag:     "AnyBIC",
			agentBICTag:     "BICFI",
			wrappedExecDate: true,
		},
		{
			name:            "pain.008.002.02 requires BIC",
			code:            Pain00800202,
			bicRequired:     true,
			initgPtyID:      true,
			orgIDSchemeName: true,
			orgIDBICTag:     "BICOrBEI",
			agentBICTag:     "BIC",
		},
		{
			name:        "austrian variant drops head fields",
			code:        Pain00800102Austrian003,
			orgIDBICTag: "BICOrBEI",
			agentBICTag: "BIC",
		},
		{
			name:            "pain.008.001.08 keeps plain collection date",
			code:            Pain00800108,
			initgPtyID:      true,
			orgIDSchemeName: true,
			orgIDBICTag:     "AnyBIC",
			agentBICTag:     "BICFI",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ForVersion(tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.bicRequired, p.BICRequired)
			assert.Equal(t, tt.initgPtyID, p.SupportsInitgPtyID)
			assert.Equal(t, tt.orgIDSchemeName, p.SupportsOrgIDSchemeName)
			assert.Equal(t, tt.orgIDBICTag, p.OrgIDBICTag)
			assert.Equal(t, tt.agentBICTag, p.AgentBICTag)
			assert.Equal(t, tt.wrappedExecDate, p.WrappedExecutionDate)
		})
	}
}

func TestProfile_AustrianNamespace(t *testing.T) {
	p, err := ForVersion(Pain00800102Austrian003)
	require.NoError(t, err)

	// The austrian variant reuses the pain.008.001.02 namespace but ships
	// its own schema file.
	assert.Equal(t, "urn:iso:std:iso:20022:tech:xsd:pain.008.001.02", p.Namespace)
	assert.Contains(t, p.SchemaLocation, "pain.008.001.02.austrian.003.xsd")
}

func TestParseISOName(t *testing.T) {
	code, err := ParseISOName("pain.001.001.03")
	require.NoError(t, err)
	assert.Equal(t, Pain00100103, code)

	_, err = ParseISOName("pain.999.999.99")
	require.Error(t, err)
}

func TestVersion_String(t *testing.T) {
	assert.Equal(t, "pain.008.001.02.austrian.003", Pain00800102Austrian003.String())
	assert.Equal(t, "unknown(42)", Version(42).String())
}

func TestMessageFamilies(t *testing.T) {
	ct := []Version{Pain00100103, Pain00100203, Pain00100303, Pain00100109}
	dd := []Version{Pain00800102, Pain00800202, Pain00800302, Pain00800102Austrian003, Pain00800108}

	for _, code := range ct {
		p, err := ForVersion(code)
		require.NoError(t, err)
		assert.Equal(t, CreditTransfer, p.Type)
		assert.Equal(t, "CstmrCdtTrfInitn", p.RootElement)
		assert.Equal(t, "TRF", p.PaymentMethod)
	}
	for _, code := range dd {
		p, err := ForVersion(code)
		require.NoError(t, err)
		assert.Equal(t, DirectDebit, p.Type)
		assert.Equal(t, "CstmrDrctDbtInitn", p.RootElement)
		assert.Equal(t, "DD", p.PaymentMethod)
	}
}
