// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package precompiles

import (
	"golang.org/x/crypto/sha3"

	"github.com/succinctlabs/sp1-sub003/executor"
	"github.com/succinctlabs/sp1-sub003/record"
)

// SyscallKeccakPermute is the precompile syscall code for one Keccak-256
// block hash: arg1 is the 32-byte input buffer's address, arg2 the
// 32-byte output buffer's address (spec §4.8's syscall/precompile chips).
const SyscallKeccakPermute uint32 = 0x00_01_01_09

// RegisterKeccak wires the Keccak precompile into e's syscall dispatch
// table, grounded on golang.org/x/crypto/sha3's standard Keccak-256.
func RegisterKeccak(e *executor.Executor) {
	e.RegisterSyscall(SyscallKeccakPermute, keccakHandler)
}

func keccakHandler(e *executor.Executor, inputPtr, outputPtr uint32) (executor.SyscallResult, error) {
	input := readBytes(e.Memory, inputPtr, 32)
	h := sha3.NewLegacyKeccak256()
	h.Write(input)
	digest := h.Sum(nil)

	var reads, writes []record.MemoryRecord
	for i := 0; i < 32; i += 4 {
		w, _ := e.Memory.Get(inputPtr + uint32(i))
		reads = append(reads, record.MemoryRecord{Address: inputPtr + uint32(i), ValueAfter: w.ToUint32()})
	}
	writeBytes(e.Memory, outputPtr, digest[:])
	for i := 0; i < 32; i += 4 {
		w, _ := e.Memory.Get(outputPtr + uint32(i))
		writes = append(writes, record.MemoryRecord{Address: outputPtr + uint32(i), ValueAfter: w.ToUint32()})
	}

	e.Record.AddPrecompileEvent(SyscallKeccakPermute, record.PrecompileEvent{
		Shard: e.ShardIndex, Clk: e.Clk,
		Arg1: inputPtr, Arg2: outputPtr, ReadRecords: reads, WriteRecords: writes,
	})
	return executor.SyscallResult{}, nil
}
