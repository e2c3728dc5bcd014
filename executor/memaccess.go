// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import (
	"github.com/succinctlabs/sp1-sub003/memory"
	"github.com/succinctlabs/sp1-sub003/rv32im"
)

// executeLoad computes the effective address base+offset, reads the
// containing word, and narrows/sign-extends it per the load width (spec
// §4.1, §4.2 step 5). Unaligned halfword/byte loads are resolved purely by
// the low two address bits; no alignment is required of LB/LH. The
// returned lookupID identifies the address-computation ADD event the
// caller stamps onto its CpuEvent (spec §4.5's load/store ALU-bus send).
func (e *Executor) executeLoad(op rv32im.Opcode, base, offset uint32) (uint32, uint64, error) {
	addr := base + offset
	aligned := addr &^ 3
	shift := (addr & 3) * 8

	w, _ := e.Memory.Get(aligned)
	word := w.ToUint32()
	e.touchMemory(aligned, word)

	lookupID := e.recordAddressAdd(addr, base, offset)

	switch op {
	case rv32im.LB:
		b := byte(word >> shift)
		return uint32(int32(int8(b))), lookupID, nil
	case rv32im.LBU:
		return uint32(byte(word >> shift)), lookupID, nil
	case rv32im.LH:
		h := uint16(word >> shift)
		return uint32(int32(int16(h))), lookupID, nil
	case rv32im.LHU:
		return uint32(uint16(word >> shift)), lookupID, nil
	case rv32im.LW:
		return word, lookupID, nil
	}
	return 0, lookupID, &ErrUnalignedMemoryAccess{Addr: addr}
}

// executeStore computes the effective address and writes value's low
// 8/16/32 bits into it, read-modify-writing the containing aligned word
// (spec §4.1, §4.2 step 5). The returned lookupID is the address-computation
// ADD event's id, the same pairing executeLoad returns.
func (e *Executor) executeStore(op rv32im.Opcode, base, offset, value uint32) (uint64, error) {
	addr := base + offset
	lookupID := e.recordAddressAdd(addr, base, offset)
	switch op {
	case rv32im.SB:
		e.writeMemByte(addr, byte(value))
	case rv32im.SH:
		e.writeMemByte(addr, byte(value))
		e.writeMemByte(addr+1, byte(value>>8))
	case rv32im.SW:
		aligned := addr &^ 3
		if addr != aligned {
			return lookupID, &ErrUnalignedMemoryAccess{Addr: addr}
		}
		if e.unconstrained {
			e.bufferUnconstrainedWrite(aligned)
		}
		e.Memory.Insert(aligned, memory.WordFromUint32(value))
		e.touchMemory(aligned, value)
	}
	return lookupID, nil
}
