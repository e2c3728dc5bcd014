// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chips

import (
	"sort"

	"github.com/succinctlabs/sp1-sub003/bus"
	"github.com/succinctlabs/sp1-sub003/executor"
	"github.com/succinctlabs/sp1-sub003/field"
	"github.com/succinctlabs/sp1-sub003/record"
)

// Program holds the preprocessed program image: one row per loaded
// instruction, received from the CPU chip's per-cycle Program-bus send
// (spec §4.5's "sends the Program bus: (pc, instruction, selectors)").
type Program struct {
	image *executor.Program
}

// NewProgramChip builds the Program chip over the given loaded image.
func NewProgramChip(image *executor.Program) Program {
	return Program{image: image}
}

func (Program) Name() string { return "Program" }
func (Program) Width() int    { return 3 }

// PreprocessedWidth is the (pc, instruction-word, selectors) tuple
// committed once per program, independent of execution trace length.
func (Program) PreprocessedWidth() int { return 3 }

func (p Program) Included(*record.ExecutionRecord) bool { return len(p.image.Instructions) > 0 }

func (p Program) sortedPCs() []uint32 {
	pcs := make([]uint32, 0, len(p.image.Instructions))
	for pc := range p.image.Instructions {
		pcs = append(pcs, pc)
	}
	sort.Slice(pcs, func(i, j int) bool { return pcs[i] < pcs[j] })
	return pcs
}

// GeneratePreprocessed builds the fixed (pc, instruction-encoding,
// selector) rows the CPU chip's Program-bus sends must match.
func (p Program) GeneratePreprocessed() Trace {
	pcs := p.sortedPCs()
	rows := make([][]field.F, len(pcs))
	for i, pc := range pcs {
		inst := p.image.Instructions[pc]
		rows[i] = []field.F{
			field.FromInt64(int64(pc)),
			field.FromInt64(int64(inst.Opcode)),
			field.FromInt64(int64(inst.OpA)),
		}
	}
	return Trace{Width: 3, Rows: rows}
}

// GenerateTrace has no execution-dependent main trace of its own; the
// preprocessed image is the whole of what the Program chip contributes.
func (p Program) GenerateTrace(*record.ExecutionRecord) Trace {
	return Trace{Width: p.Width()}
}

func (p Program) RowInteractions(*record.ExecutionRecord) [][]bus.Interaction {
	pcs := p.sortedPCs()
	out := make([][]bus.Interaction, len(pcs))
	for i, pc := range pcs {
		inst := p.image.Instructions[pc]
		out[i] = []bus.Interaction{
			bus.Receive(bus.Local, bus.ArgProgram, []field.F{
				field.FromInt64(int64(pc)),
				field.FromInt64(int64(inst.Opcode)),
				field.FromInt64(int64(inst.OpA)),
			}, field.One),
		}
	}
	return out
}

// EvalConstraints has nothing further to check from a single main-trace
// row: the Program chip's only content is its preprocessed (pc,
// instruction, selector) tuple, which this chip's RowInteractions
// already ties to the CPU's fetch via the Program bus.
func (Program) EvalConstraints([]field.F) error { return nil }
