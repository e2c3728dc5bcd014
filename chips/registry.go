// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chips

import (
	"sort"

	"github.com/succinctlabs/sp1-sub003/chips/precompiles"
	"github.com/succinctlabs/sp1-sub003/executor"
	"github.com/succinctlabs/sp1-sub003/record"
)

// All assembles the full chip set the STARK driver proves over: the CPU
// and Program chips, every ALU chip, the three memory chips, the Byte
// chip, SyscallInstr, and one generic PrecompileChip per registered
// precompile syscall (spec §2's chip-set table, §4.8). The result's
// order is deterministic — sorted by name — so two runs over the same
// program produce the same chip_ordering (spec §3's ShardProof field).
func All(image *executor.Program) []Chip {
	out := []Chip{
		Cpu{},
		NewProgramChip(image),
		NewAdd(), NewSub(), NewMul(), NewDivRem(),
		NewBitwise(), NewShiftLeft(), NewShiftRight(), NewLt(),
		MemoryLocal{}, MemoryGlobalInit{}, MemoryGlobalFinal{},
		Byte{},
		SyscallInstr{},
	}
	for code, name := range precompiles.Codes() {
		out = append(out, NewPrecompileChip(code, name))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Included filters chips to those with at least one row for rec, the
// chip_ordering spec §8's "Shard with zero CPU events" boundary requires.
func Included(all []Chip, rec *record.ExecutionRecord) []Chip {
	out := make([]Chip, 0, len(all))
	for _, c := range all {
		if c.Included(rec) {
			out = append(out, c)
		}
	}
	return out
}
