// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chips

import (
	"github.com/succinctlabs/sp1-sub003/bus"
	"github.com/succinctlabs/sp1-sub003/byteops"
	"github.com/succinctlabs/sp1-sub003/field"
	"github.com/succinctlabs/sp1-sub003/record"
)

// Byte is the dedicated chip certifying every byte/range-lookup kind via
// a full Cartesian preprocessed table over the eight kinds and 256x256
// byte pairs (spec §3's "Verified by a dedicated Byte chip whose
// preprocessed trace is the full Cartesian table").
type Byte struct{}

func (Byte) Name() string { return "Byte" }
func (Byte) Width() int    { return 1 } // per-shard multiplicity column over the preprocessed table

// PreprocessedWidth is {kind, b1, b2, result_lo, result_hi}.
func (Byte) PreprocessedWidth() int { return 5 }

func (Byte) Included(r *record.ExecutionRecord) bool {
	return r.ByteLookups != nil && len(r.ByteLookups.Shards()) > 0
}

var allByteKinds = []byteops.Kind{
	byteops.U8Range, byteops.U16Range, byteops.And, byteops.Xor,
	byteops.Or, byteops.LTU, byteops.SLTU, byteops.MSB,
}

// GeneratePreprocessed builds the full Cartesian table: every kind x
// every byte pair, independent of any shard's witnessed multiplicities.
func (Byte) GeneratePreprocessed() Trace {
	rows := make([][]field.F, 0, len(allByteKinds)*256*256)
	for _, kind := range allByteKinds {
		for b1 := 0; b1 < 256; b1++ {
			for b2 := 0; b2 < 256; b2++ {
				lo, hi := byteops.Compute(kind, uint8(b1), uint8(b2))
				rows = append(rows, []field.F{
					field.FromInt64(int64(kind)),
					field.FromInt64(int64(b1)),
					field.FromInt64(int64(b2)),
					field.FromInt64(int64(lo)),
					field.FromInt64(int64(hi)),
				})
			}
		}
	}
	return Trace{Width: 5, Rows: rows}
}

// GenerateTrace witnesses the multiplicity column for one shard: how many
// times each (kind, b1, b2) triple was requested by another chip's send
// (spec §5's "Byte-lookup multiplicities are accumulated per-chunk").
func (b Byte) GenerateTrace(r *record.ExecutionRecord) Trace {
	if r.ByteLookups == nil {
		return Trace{Width: b.Width()}
	}
	var rows [][]field.F
	for _, shard := range r.ByteLookups.Shards() {
		for _, count := range r.ByteLookups.Events(shard) {
			rows = append(rows, []field.F{field.FromInt64(int64(count))})
		}
	}
	return Trace{Width: b.Width(), Rows: rows}
}

func (b Byte) RowInteractions(r *record.ExecutionRecord) [][]bus.Interaction {
	if r.ByteLookups == nil {
		return nil
	}
	var out [][]bus.Interaction
	for _, shard := range r.ByteLookups.Shards() {
		for ev, count := range r.ByteLookups.Events(shard) {
			values := []field.F{
				field.FromInt64(int64(ev.Kind)), field.FromInt64(int64(ev.B1)), field.FromInt64(int64(ev.B2)),
				field.FromInt64(int64(ev.ResultLo)), field.FromInt64(int64(ev.ResultHi)), field.FromInt64(int64(shard)),
			}
			out = append(out, []bus.Interaction{
				bus.Receive(bus.Local, bus.ArgByte, values, field.FromInt64(int64(count))),
			})
		}
	}
	return out
}

// EvalConstraints has nothing to check over a single main-trace row: the
// multiplicity column alone carries no algebraic relation, and the
// (kind, b1, b2, lo, hi) correctness lives entirely in the preprocessed
// Cartesian table GeneratePreprocessed builds, which is never committed
// to an opened row in this driver.
func (Byte) EvalConstraints([]field.F) error { return nil }
