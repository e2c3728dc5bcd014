// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package chips implements the AIR-shaped trace generators for every
// table in the machine: the CPU and Program chips, the eight ALU chips,
// the three memory chips, and the Byte lookup chip (spec §4.3-§4.5).
// Precompile chips live in the chips/precompiles subpackage.
//
// Grounded on parsdao-pars's precompile registry shape (Run/RequiredGas
// per precompile), generalized here to a trace-generating Chip with
// declared bus sends/receives instead of a gas-metered EVM call.
package chips

import (
	"github.com/succinctlabs/sp1-sub003/bus"
	"github.com/succinctlabs/sp1-sub003/field"
	"github.com/succinctlabs/sp1-sub003/record"
)

// Trace is a dense row-major matrix of field elements: Rows[i] is the
// i-th row, each of width Width (spec §9's "generate_trace").
type Trace struct {
	Width int
	Rows  [][]field.F
}

// NumRows reports the trace's row count, pre-padding.
func (t Trace) NumRows() int { return len(t.Rows) }

// Chip is the uniform shape every AIR table implements (spec §9).
type Chip interface {
	// Name identifies the chip in chip_ordering and proof metadata.
	Name() string
	// Width is the main trace's column count.
	Width() int
	// PreprocessedWidth is the preprocessed trace's column count, zero if
	// the chip has none.
	PreprocessedWidth() int
	// GenerateTrace builds the chip's main trace from its event bucket in
	// rec.
	GenerateTrace(rec *record.ExecutionRecord) Trace
	// Included reports whether this chip contributes any rows for rec —
	// chips with zero events are omitted from chip_ordering (spec §8's
	// "Shard with zero CPU events").
	Included(rec *record.ExecutionRecord) bool
	// RowInteractions returns, per generated row, the bus interactions
	// that row sends and receives (spec §4.6).
	RowInteractions(rec *record.ExecutionRecord) [][]bus.Interaction
	// EvalConstraints checks the chip's local AIR relation against one
	// opened row — e.g. a = op(b, c) for an ALU chip, b = q*c + r for
	// DivRem — returning a non-nil error the row violates it (spec §9's
	// "a method taking an abstract constraint builder and returning the
	// constraint residue", done here directly over native field values
	// rather than a symbolic builder, since no polynomial IOP runs in
	// this package). A chip with no further per-row relation beyond its
	// bus interactions returns nil unconditionally.
	EvalConstraints(row []field.F) error
}
