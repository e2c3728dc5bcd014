// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chips

import (
	"github.com/succinctlabs/sp1-sub003/bus"
	"github.com/succinctlabs/sp1-sub003/field"
	"github.com/succinctlabs/sp1-sub003/record"
)

// SyscallInstr certifies each ECALL dispatch: it sends the syscall bus
// message a precompile chip receives, and receives the CPU's per-cycle
// dispatch request (spec §4.8).
type SyscallInstr struct{}

func (SyscallInstr) Name() string              { return "SyscallInstr" }
func (SyscallInstr) Width() int                 { return 5 }
func (SyscallInstr) PreprocessedWidth() int     { return 0 }
func (SyscallInstr) Included(r *record.ExecutionRecord) bool { return len(r.SyscallEvents) > 0 }

func (SyscallInstr) GenerateTrace(r *record.ExecutionRecord) Trace {
	rows := make([][]field.F, len(r.SyscallEvents))
	for i, ev := range r.SyscallEvents {
		rows[i] = []field.F{
			field.FromInt64(int64(ev.Shard)),
			field.FromInt64(int64(ev.Clk)),
			field.FromInt64(int64(i)), // nonce
			field.FromInt64(int64(ev.SyscallID)),
			field.FromInt64(int64(ev.Arg1)),
		}
	}
	return Trace{Width: 5, Rows: rows}
}

func (SyscallInstr) RowInteractions(r *record.ExecutionRecord) [][]bus.Interaction {
	out := make([][]bus.Interaction, len(r.SyscallEvents))
	for i, ev := range r.SyscallEvents {
		values := []field.F{
			field.FromInt64(int64(ev.Shard)), field.FromInt64(int64(ev.Clk)), field.FromInt64(int64(i)),
			field.FromInt64(int64(ev.SyscallID)), field.FromInt64(int64(ev.Arg1)), field.FromInt64(int64(ev.Arg2)),
		}
		out[i] = []bus.Interaction{bus.Send(bus.Local, bus.ArgSyscall, values, field.One)}
	}
	return out
}

// EvalConstraints has no further per-row relation: the row is just the
// dispatch tuple the matching PrecompileChip receives, and that pairing
// is checked by the interaction bus, not a local AIR relation.
func (SyscallInstr) EvalConstraints([]field.F) error { return nil }
