// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package record defines the typed event buckets the executor emits and
// the AIRs consume (spec §3's "Event buckets (ExecutionRecord)").
package record

import "github.com/succinctlabs/sp1-sub003/rv32im"

// MemoryAccessKind distinguishes a read from a write in a MemoryRecord.
type MemoryAccessKind int

const (
	Read MemoryAccessKind = iota
	Write
)

// MemoryRecord is a single memory access: {shard, timestamp, address,
// value_before, value_after, kind} (spec §3). (shard, timestamp) is
// strictly increasing per address within a shard.
type MemoryRecord struct {
	Shard       uint32
	Timestamp   uint32
	Address     uint32
	ValueBefore uint32
	ValueAfter  uint32
	Kind        MemoryAccessKind
}

// AluEvent is the common shape of every ALU chip's event: {lookup_id,
// shard, clk, opcode, a, b, c} (spec §3).
type AluEvent struct {
	LookupID uint64
	Shard    uint32
	Clk      uint32
	Opcode   rv32im.Opcode
	A, B, C  uint32
}

// CpuEvent is one executed cycle, carrying enough to regenerate the CPU
// chip's row and every ALU/memory bus message it sends (spec §4.5).
type CpuEvent struct {
	Shard       uint32
	Clk         uint32
	PC          uint32
	NextPC      uint32
	Instruction rv32im.Instruction
	A, B, C     uint32
	MemoryValue uint32
	MemoryUsed  bool
	MemoryRec   MemoryRecord
	Branching   bool
	// AluLookupID is the LookupID of the AluEvent this row's ALU-bus send
	// (an opcode's own ALU op, or a load/store's address computation)
	// must match on the receiving chip's side (spec §3/§4.4's
	// "lookup_id" coupling a bus nonce to a unique provenance row).
	// Zero when this row sends no ALU-bus message.
	AluLookupID uint64
}

// MemoryLocalEvent reconciles a (shard, address) touched more than once
// within a shard, used by the MemoryLocal chip (spec §4.3).
type MemoryLocalEvent struct {
	Shard            uint32
	Address          uint32
	InitialTimestamp uint32
	InitialValue     uint32
	FinalTimestamp   uint32
	FinalValue       uint32
}

// GlobalMemoryInitEvent seeds an address's first-ever value, sent by the
// MemoryGlobalInit chip with timestamp=1 (spec §4.3).
type GlobalMemoryInitEvent struct {
	Address uint32
	Value   uint32
	Shard   uint32
}

// GlobalMemoryFinalizeEvent is the last witnessed value for an address
// across the whole execution, received by the MemoryGlobalFinal chip.
type GlobalMemoryFinalizeEvent struct {
	Address   uint32
	Value     uint32
	Shard     uint32
	Timestamp uint32
}

// SyscallEvent is one ECALL dispatch, carrying the values the
// SyscallInstr chip must certify and the precompile chip must receive.
type SyscallEvent struct {
	Shard     uint32
	Clk       uint32
	SyscallID uint32
	Arg1      uint32
	Arg2      uint32
}

// PrecompileEvent is the generic envelope a precompile chip's events
// share: the invoking syscall context plus the memory records for every
// word it read or wrote (spec §4.8). Every precompile records this
// envelope as is; none adds a payload of its own.
type PrecompileEvent struct {
	Shard        uint32
	Clk          uint32
	Arg1, Arg2   uint32
	ReadRecords  []MemoryRecord
	WriteRecords []MemoryRecord
}
