// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package record

import "github.com/succinctlabs/sp1-sub003/byteops"

// ExecutionRecord buckets every event the executor emitted for one shard
// (or, before sharding, for a whole run), plus the public values that
// pin it to its neighbors (spec §3's "Event buckets (ExecutionRecord)").
type ExecutionRecord struct {
	CPUEvents    []CpuEvent
	AddEvents    []AluEvent
	SubEvents    []AluEvent
	MulEvents    []AluEvent
	BitwiseEvents []AluEvent
	ShiftLeftEvents  []AluEvent
	ShiftRightEvents []AluEvent
	DivRemEvents []AluEvent
	LtEvents     []AluEvent

	MemoryLocalEvents           []MemoryLocalEvent
	GlobalMemoryInitializeEvents []GlobalMemoryInitEvent
	GlobalMemoryFinalizeEvents   []GlobalMemoryFinalizeEvent

	SyscallEvents []SyscallEvent

	// PrecompileEvents is keyed by syscall code (spec §3).
	PrecompileEvents map[uint32][]PrecompileEvent

	ByteLookups *byteops.Table

	PublicValues PublicValues
}

// NewExecutionRecord returns an empty record ready to accumulate events.
func NewExecutionRecord() *ExecutionRecord {
	return &ExecutionRecord{
		PrecompileEvents: make(map[uint32][]PrecompileEvent),
		ByteLookups:      byteops.NewTable(),
	}
}

// AddPrecompileEvent appends ev to the bucket for syscallCode.
func (r *ExecutionRecord) AddPrecompileEvent(syscallCode uint32, ev PrecompileEvent) {
	r.PrecompileEvents[syscallCode] = append(r.PrecompileEvents[syscallCode], ev)
}

// NumCPURows is the row count the CPU chip's trace will have before
// padding — one per CPUEvent (spec §4.5).
func (r *ExecutionRecord) NumCPURows() int {
	return len(r.CPUEvents)
}

// Empty reports whether the record carries no events at all, used by the
// included(shard) gating predicate chips apply (spec §8 boundary: "Shard
// with zero CPU events").
func (r *ExecutionRecord) Empty() bool {
	return len(r.CPUEvents) == 0 &&
		len(r.AddEvents) == 0 && len(r.SubEvents) == 0 && len(r.MulEvents) == 0 &&
		len(r.BitwiseEvents) == 0 && len(r.ShiftLeftEvents) == 0 && len(r.ShiftRightEvents) == 0 &&
		len(r.DivRemEvents) == 0 && len(r.LtEvents) == 0 &&
		len(r.MemoryLocalEvents) == 0 &&
		len(r.GlobalMemoryInitializeEvents) == 0 && len(r.GlobalMemoryFinalizeEvents) == 0 &&
		len(r.SyscallEvents) == 0 && len(r.PrecompileEvents) == 0
}
