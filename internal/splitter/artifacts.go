// =============================================================================
// SEPA XML Export - Auxiliary Artifacts
// =============================================================================
//
// Routing slips and control lists accompany a batch submission so a human
// can verify totals before handing the files to the bank. They are
// attached alongside the payment files, never embedded in the
// schema-validated XML.
//
// =============================================================================

package splitter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/paybatch/sepaxml/internal/document"
	"github.com/paybatch/sepaxml/internal/types"
)

// =============================================================================
// ROUTING SLIP
// =============================================================================

// routingSlip builds the per-file summary a clerk hands in together with
// the payment file.
func routingSlip(unit *document.Snapshot) types.OutputUnit {
	var b strings.Builder

	b.WriteString("SEPA Submission Routing Slip\n")
	b.WriteString("================================================================================\n\n")
	fmt.Fprintf(&b, "File:            %s.xml\n", unit.MessageID)
	fmt.Fprintf(&b, "Message ID:      %s\n", unit.MessageID)
	fmt.Fprintf(&b, "Message Type:    %s\n", unit.Profile.ISOName)
	fmt.Fprintf(&b, "Initiator:       %s\n", unit.InitiatingParty)
	fmt.Fprintf(&b, "Created:         %s\n", unit.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Collections:     %d\n", len(unit.Collections))
	fmt.Fprintf(&b, "Transactions:    %d\n", unit.TransactionCount())
	fmt.Fprintf(&b, "Control Sum:     %s\n", unit.ControlSum().StringFixed(2))
	fmt.Fprintf(&b, "Execution Dates: %s\n", strings.Join(executionDates(unit), ", "))
	b.WriteString("\n================================================================================\n")

	return types.OutputUnit{
		Label:    unit.MessageID + ".routing_slip.txt",
		Kind:     types.KindRoutingSlip,
		MIMEType: types.MIMETypeText,
		Data:     []byte(b.String()),
	}
}

// executionDates returns the distinct execution dates of the unit's
// collections, sorted for stable output.
func executionDates(unit *document.Snapshot) []string {
	seen := map[string]bool{}
	var dates []string
	for _, block := range unit.Collections {
		if !seen[block.Config.ExecutionDate] {
			seen[block.Config.ExecutionDate] = true
			dates = append(dates, block.Config.ExecutionDate)
		}
	}
	sort.Strings(dates)
	return dates
}

// =============================================================================
// CONTROL LIST
// =============================================================================

// controlListHeader is the column layout of the control list sheet.
var controlListHeader = []interface{}{
	"File", "Collection", "End-to-End ID", "Counterparty", "IBAN", "Amount",
}

// controlList builds one workbook listing every payment of the generation
// plus overall totals, for manual verification at the bank counter.
func controlList(baseMsgID string, units []*document.Snapshot) (types.OutputUnit, error) {
	const sheet = "Control List"

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return types.OutputUnit{}, err
	}
	if err := f.SetSheetRow(sheet, "A1", &controlListHeader); err != nil {
		return types.OutputUnit{}, err
	}

	row := 2
	totalCount := 0
	for _, unit := range units {
		for _, block := range unit.Collections {
			for _, pm := range block.Payments {
				cell, err := excelize.CoordinatesToCellName(1, row)
				if err != nil {
					return types.OutputUnit{}, err
				}
				values := []interface{}{
					unit.MessageID + ".xml",
					block.Config.PaymentInfoID,
					pm.EndToEndID(),
					pm.CounterpartyName(),
					pm.CounterpartyIBAN(),
					pm.Amount().StringFixed(2),
				}
				if err := f.SetSheetRow(sheet, cell, &values); err != nil {
					return types.OutputUnit{}, err
				}
				totalCount++
				row++
			}
		}
	}

	// Totals row, one blank line below the listing.
	row++
	totalSum := units[0].ControlSum()
	for _, unit := range units[1:] {
		totalSum = totalSum.Add(unit.ControlSum())
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return types.OutputUnit{}, err
	}
	totals := []interface{}{
		"Total", "", "", "", fmt.Sprintf("%d transactions", totalCount), totalSum.StringFixed(2),
	}
	if err := f.SetSheetRow(sheet, cell, &totals); err != nil {
		return types.OutputUnit{}, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return types.OutputUnit{}, err
	}

	return types.OutputUnit{
		Label:    baseMsgID + ".control_list.xlsx",
		Kind:     types.KindControlList,
		MIMEType: types.MIMETypeXLSX,
		Data:     buf.Bytes(),
	}, nil
}
