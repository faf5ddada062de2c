package splitter

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paybatch/sepaxml/internal/document"
	"github.com/paybatch/sepaxml/internal/profile"
	"github.com/paybatch/sepaxml/internal/types"
)

// buildDoc creates a credit transfer document with one collection holding
// the given number of payments.
func buildDoc(t *testing.T, paymentCount int) *document.Document {
	t.Helper()

	doc, err := document.NewCreditTransfer(document.Config{
		InitiatingParty: "Initiator Name",
		MessageID:       "MessageID-1234",
		Version:         profile.Pain00100103,
		CreationTime:    time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	collection, err := doc.AddCollection(types.CollectionConfig{
		PaymentInfoID: "PaymentID-1234",
		Name:          "Account Holder",
		IBAN:          "DE21500500001234567897",
		BIC:           "BELADEBEXXX",
		ExecutionDate: "2026-09-01",
	})
	require.NoError(t, err)

	for i := 0; i < paymentCount; i++ {
		_, err := collection.AddPayment(types.PaymentConfig{
			EndToEndID:     fmt.Sprintf("E2E-%04d", i+1),
			Amount:         decimal.RequireFromString("1.14"),
			Name:           "Name of Payee",
			IBAN:           "DE21500500009876543210",
			RemittanceText: "Test payment",
		})
		require.NoError(t, err)
	}

	return doc
}

// paymentFiles filters the payment file units out of a generation result.
func paymentFiles(units []types.OutputUnit) []types.OutputUnit {
	var out []types.OutputUnit
	for _, u := range units {
		if u.Kind == types.KindPaymentFile {
			out = append(out, u)
		}
	}
	return out
}

func TestGenerate_SingleFileKeepsPlainMessageID(t *testing.T) {
	doc := buildDoc(t, 3)

	units, err := Generate(doc, Options{})
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "MessageID-1234.xml", units[0].Label)
	assert.Equal(t, types.KindPaymentFile, units[0].Kind)
	assert.Contains(t, string(units[0].Data), "<MsgId>MessageID-1234</MsgId>")
}

func TestGenerate_SplitsByTransactionLimit(t *testing.T) {
	const limit = 4
	doc := buildDoc(t, 2*limit+1)

	units, err := Generate(doc, Options{MaxTransactionsPerFile: limit})
	require.NoError(t, err)

	files := paymentFiles(units)
	require.Len(t, files, 3)

	// Continuation files repeat the collection header and suffix the
	// message id.
	wantTxs := []int{limit, limit, 1}
	for i, file := range files {
		xml := string(file.Data)
		wantID := fmt.Sprintf("MessageID-1234.%d", i+1)
		assert.Equal(t, wantID+".xml", file.Label)
		assert.Contains(t, xml, "<MsgId>"+wantID+"</MsgId>")
		assert.Contains(t, xml, "<PmtInfId>PaymentID-1234</PmtInfId>")
		assert.Contains(t, xml, "<Dbtr><Nm>Account Holder</Nm></Dbtr>")
		assert.Contains(t, xml, fmt.Sprintf("<NbOfTxs>%d</NbOfTxs>", wantTxs[i]))
	}

	// Payments stay in order across the split.
	assert.Contains(t, string(files[0].Data), "E2E-0001")
	assert.Contains(t, string(files[2].Data), "E2E-0009")
	assert.NotContains(t, string(files[0].Data), "E2E-0005")
}

func TestGenerate_LimitEqualToCountDoesNotSplit(t *testing.T) {
	doc := buildDoc(t, 5)

	units, err := Generate(doc, Options{MaxTransactionsPerFile: 5})
	require.NoError(t, err)
	assert.Len(t, paymentFiles(units), 1)
}

func TestGenerate_SplitsByByteLimit(t *testing.T) {
	doc := buildDoc(t, 8)

	// First find the unsplit size, then cap below it.
	whole, err := Generate(buildDoc(t, 8), Options{})
	require.NoError(t, err)
	limit := len(whole[0].Data) / 2

	units, err := Generate(doc, Options{MaxFileSizeBytes: limit})
	require.NoError(t, err)

	files := paymentFiles(units)
	require.Greater(t, len(files), 1)
	for _, file := range files {
		assert.LessOrEqual(t, len(file.Data), limit)
	}
}

func TestGenerate_ByteLimitHoldsAfterSuffixing(t *testing.T) {
	// The cap is the exact size of a two-payment file rendered with the
	// plain message id. Splitting four payments in half would meet that
	// cap before suffixing but exceed it once ".N" lands in MsgId, so
	// the splitter has to go down to single-payment units.
	whole, err := Generate(buildDoc(t, 2), Options{})
	require.NoError(t, err)
	limit := len(whole[0].Data)

	units, err := Generate(buildDoc(t, 4), Options{MaxFileSizeBytes: limit})
	require.NoError(t, err)

	files := paymentFiles(units)
	require.Len(t, files, 4)
	for _, file := range files {
		assert.LessOrEqual(t, len(file.Data), limit)
	}
}

func TestGenerate_SinglePaymentIgnoresByteLimit(t *testing.T) {
	doc := buildDoc(t, 1)

	// A single payment cannot be split further, so the file is emitted
	// even over the cap.
	units, err := Generate(doc, Options{MaxFileSizeBytes: 10})
	require.NoError(t, err)
	assert.Len(t, paymentFiles(units), 1)
}

func TestGenerate_RoutingSlips(t *testing.T) {
	doc := buildDoc(t, 5)

	units, err := Generate(doc, Options{
		MaxTransactionsPerFile: 2,
		AddRoutingSlips:        true,
	})
	require.NoError(t, err)

	var slips []types.OutputUnit
	for _, u := range units {
		if u.Kind == types.KindRoutingSlip {
			slips = append(slips, u)
		}
	}
	require.Len(t, slips, 3)

	first := string(slips[0].Data)
	assert.Equal(t, "MessageID-1234.1.routing_slip.txt", slips[0].Label)
	assert.Contains(t, first, "Message ID:      MessageID-1234.1")
	assert.Contains(t, first, "Message Type:    pain.001.001.03")
	assert.Contains(t, first, "Initiator:       Initiator Name")
	assert.Contains(t, first, "Transactions:    2")
	assert.Contains(t, first, "Control Sum:     2.28")
	assert.Contains(t, first, "Execution Dates: 2026-09-01")
}

func TestGenerate_ControlList(t *testing.T) {
	doc := buildDoc(t, 5)

	units, err := Generate(doc, Options{
		MaxTransactionsPerFile: 2,
		AddControlList:         true,
	})
	require.NoError(t, err)

	last := units[len(units)-1]
	assert.Equal(t, types.KindControlList, last.Kind)
	assert.Equal(t, "MessageID-1234.control_list.xlsx", last.Label)
	assert.Equal(t, types.MIMETypeXLSX, last.MIMEType)
	// XLSX files are ZIP containers.
	require.Greater(t, len(last.Data), 4)
	assert.Equal(t, []byte("PK"), last.Data[:2])
}

func TestGenerate_EmptyDocument(t *testing.T) {
	doc, err := document.NewCreditTransfer(document.Config{
		InitiatingParty: "Initiator Name",
		Version:         profile.Pain00100103,
	})
	require.NoError(t, err)

	_, err = Generate(doc, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, document.ErrEmptyDocument)
}

func TestPartition_SplitsAcrossCollections(t *testing.T) {
	doc, err := document.NewCreditTransfer(document.Config{
		InitiatingParty: "Initiator Name",
		MessageID:       "MessageID-1234",
		Version:         profile.Pain00100103,
	})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		collection, err := doc.AddCollection(types.CollectionConfig{
			PaymentInfoID: fmt.Sprintf("PaymentID-%d", i+1),
			Name:          "Account Holder",
			IBAN:          "DE21500500001234567897",
			ExecutionDate: "2026-09-01",
		})
		require.NoError(t, err)
		for j := 0; j < 3; j++ {
			_, err := collection.AddPayment(types.PaymentConfig{
				EndToEndID: fmt.Sprintf("E2E-%d-%d", i+1, j+1),
				Amount:     decimal.RequireFromString("1.00"),
				Name:       "Name of Payee",
				IBAN:       "DE21500500009876543210",
			})
			require.NoError(t, err)
		}
	}

	snap, err := doc.Snapshot()
	require.NoError(t, err)

	// 6 payments in 2 collections, limit 4: the second unit holds the
	// remainder of collection two only.
	units := partition(snap, 4)
	require.Len(t, units, 2)
	assert.Equal(t, 4, units[0].TransactionCount())
	assert.Equal(t, 2, units[1].TransactionCount())
	require.Len(t, units[0].Collections, 2)
	require.Len(t, units[1].Collections, 1)
	assert.Equal(t, "PaymentID-2", units[1].Collections[0].Config.PaymentInfoID)

	// No unit may come out empty.
	for _, unit := range units {
		assert.Greater(t, unit.TransactionCount(), 0)
	}
}
