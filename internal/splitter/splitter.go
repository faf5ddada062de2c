// =============================================================================
// SEPA XML Export - Batch Splitter / Output Assembler
// =============================================================================
//
// This module turns a validated document into one or more physical output
// units. Banks cap the number of transactions (and sometimes the byte
// size) of a single submission file; both limits are submission-channel
// configuration, not version constants.
//
// SPLITTING ALGORITHM:
//   Collections are walked in order and payments accumulate into the
//   current unit. When the transaction limit would be exceeded the unit is
//   closed and a new one opened, splitting a collection across two units
//   only if necessary. A continuation carries the collection header
//   verbatim, so every unit is independently schema-valid. Multi-unit
//   generations suffix the message id with ".1", ".2", ... so message ids
//   stay unique per bank requirements.
//
// =============================================================================

package splitter

import (
	"fmt"

	"github.com/paybatch/sepaxml/internal/document"
	"github.com/paybatch/sepaxml/internal/types"
)

// =============================================================================
// OPTIONS
// =============================================================================

// Options configures one generation run. The zero value produces a single
// payment file with no auxiliary artifacts.
type Options struct {
	// MaxTransactionsPerFile caps the payments per output file.
	// Zero means unlimited.
	MaxTransactionsPerFile int

	// MaxFileSizeBytes caps the rendered size of one output file.
	// Zero means unlimited. Units over the cap are split further until
	// they fit or hold a single payment.
	MaxFileSizeBytes int

	// AddRoutingSlips attaches a routing slip artifact per payment file.
	AddRoutingSlips bool

	// AddControlList attaches one control list workbook summarizing the
	// whole generation.
	AddControlList bool
}

// =============================================================================
// GENERATION
// =============================================================================

// Generate validates and freezes the document, partitions it according to
// opts and renders every output unit. On failure the document is left
// untouched, so the caller may correct its input and retry.
func Generate(doc *document.Document, opts Options) ([]types.OutputUnit, error) {
	snap, err := doc.Snapshot()
	if err != nil {
		return nil, err
	}

	base := snap.MessageID
	units := partition(snap, opts.MaxTransactionsPerFile)
	assignUnitIDs(units, base)

	// The ".N" suffix is part of the rendered bytes, so the size check
	// must run on the final message ids: whenever a re-split changes the
	// numbering, ids are reassigned and the units checked again.
	if opts.MaxFileSizeBytes > 0 {
		for {
			split := enforceByteLimit(units, opts.MaxFileSizeBytes)
			if len(split) == len(units) {
				break
			}
			units = split
			assignUnitIDs(units, base)
		}
	}

	out := make([]types.OutputUnit, 0, len(units)+1)
	for _, unit := range units {
		out = append(out, types.OutputUnit{
			Label:    unit.MessageID + ".xml",
			Kind:     types.KindPaymentFile,
			MIMEType: types.MIMETypeXML,
			Data:     unit.RenderXML(),
		})
		if opts.AddRoutingSlips {
			out = append(out, routingSlip(unit))
		}
	}
	if opts.AddControlList {
		list, err := controlList(base, units)
		if err != nil {
			return nil, fmt.Errorf("failed to build control list: %w", err)
		}
		out = append(out, list)
	}

	return out, nil
}

// =============================================================================
// PARTITIONING
// =============================================================================

// assignUnitIDs sets each unit's message id. A single unit keeps the
// plain id; a multi-unit generation suffixes ".1", ".2", ...
func assignUnitIDs(units []*document.Snapshot, base string) {
	for i, unit := range units {
		if len(units) == 1 {
			unit.MessageID = base
		} else {
			unit.MessageID = fmt.Sprintf("%s.%d", base, i+1)
		}
	}
}

// partition splits the snapshot into units of at most maxTx payments.
// maxTx <= 0 disables splitting.
func partition(snap *document.Snapshot, maxTx int) []*document.Snapshot {
	if maxTx <= 0 || snap.TransactionCount() <= maxTx {
		return []*document.Snapshot{snap}
	}

	var units []*document.Snapshot
	var current []*document.CollectionBlock
	room := maxTx

	closeUnit := func() {
		if len(current) > 0 {
			units = append(units, snap.WithCollections(snap.MessageID, current))
		}
		current = nil
		room = maxTx
	}

	for _, block := range snap.Collections {
		remaining := block
		for len(remaining.Payments) > 0 {
			if room == 0 {
				closeUnit()
			}
			n := len(remaining.Payments)
			if n <= room {
				current = append(current, remaining)
				room -= n
				break
			}
			// Split the collection: the continuation repeats the header.
			current = append(current, remaining.Slice(0, room))
			remaining = remaining.Slice(room, n)
			room = 0
		}
	}
	closeUnit()

	return units
}

// enforceByteLimit re-splits units whose rendered form exceeds maxBytes.
// A unit holding a single payment is emitted as is; the limit cannot be
// met by splitting further.
func enforceByteLimit(units []*document.Snapshot, maxBytes int) []*document.Snapshot {
	var out []*document.Snapshot
	for _, unit := range units {
		out = append(out, splitToSize(unit, maxBytes)...)
	}
	return out
}

func splitToSize(unit *document.Snapshot, maxBytes int) []*document.Snapshot {
	if len(unit.RenderXML()) <= maxBytes || unit.TransactionCount() <= 1 {
		return []*document.Snapshot{unit}
	}
	half := unit.TransactionCount() / 2
	var out []*document.Snapshot
	for _, part := range partition(unit, half) {
		out = append(out, splitToSize(part, maxBytes)...)
	}
	return out
}
