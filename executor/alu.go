// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import (
	"github.com/succinctlabs/sp1-sub003/record"
	"github.com/succinctlabs/sp1-sub003/rv32im"
)

// computeALU evaluates one ALU-family instruction over native uint32/int32
// values and records the event into the bucket its chip will later consume
// (spec §4.3's arithmetic chips). Shift amounts mask to 5 bits and division
// follows the RV32M by-zero and signed-overflow conventions (spec §7).
// The returned lookupID is the AluEvent's LookupID, zero if the event was
// not recorded (unconstrained mode) — the caller stamps it onto the
// CpuEvent so the CPU chip's ALU-bus send and the ALU chip's receive agree
// on a nonce (spec §3/§4.4's "lookup_id").
func (e *Executor) computeALU(op rv32im.Opcode, b, c uint32) (uint32, uint64) {
	var result uint32

	switch op {
	case rv32im.ADD, rv32im.ADDI:
		result = b + c
	case rv32im.SUB:
		result = b - c
	case rv32im.XOR, rv32im.XORI:
		result = b ^ c
	case rv32im.OR, rv32im.ORI:
		result = b | c
	case rv32im.AND, rv32im.ANDI:
		result = b & c
	case rv32im.SLL, rv32im.SLLI:
		result = b << (c & 0x1f)
	case rv32im.SRL, rv32im.SRLI:
		result = b >> (c & 0x1f)
	case rv32im.SRA, rv32im.SRAI:
		result = uint32(int32(b) >> (c & 0x1f))
	case rv32im.SLT, rv32im.SLTI:
		result = boolToWord(int32(b) < int32(c))
	case rv32im.SLTU, rv32im.SLTIU:
		result = boolToWord(b < c)
	case rv32im.MUL:
		result = b * c
	case rv32im.MULH:
		result = uint32((int64(int32(b)) * int64(int32(c))) >> 32)
	case rv32im.MULHU:
		result = uint32((uint64(b) * uint64(c)) >> 32)
	case rv32im.MULHSU:
		result = uint32((int64(int32(b)) * int64(uint64(c))) >> 32)
	case rv32im.DIV:
		result = divSigned(b, c)
	case rv32im.DIVU:
		result = divUnsigned(b, c)
	case rv32im.REM:
		result = remSigned(b, c)
	case rv32im.REMU:
		result = remUnsigned(b, c)
	}

	var lookupID uint64
	if !e.unconstrained {
		lookupID = e.nextLookupID()
		ev := record.AluEvent{LookupID: lookupID, Shard: e.ShardIndex, Clk: e.Clk, Opcode: op, A: result, B: b, C: c}
		e.appendAluEvent(op, ev)
	}
	return result, lookupID
}

// nextLookupID mints a fresh, monotonically increasing LookupID shared by
// an AluEvent and the CpuEvent whose bus send it answers.
func (e *Executor) nextLookupID() uint64 {
	e.lookupIDSeq++
	return e.lookupIDSeq
}

// recordAddressAdd witnesses a load/store's effective-address computation
// as an ADD event (spec §4.2 step 5; spec §4.5's CPU row sends an ArgALU
// message of (ADD, addr, base, offset) for load/store instructions), so
// the Add chip has a matching receive for that send. Returns 0 without
// recording anything in unconstrained mode.
func (e *Executor) recordAddressAdd(addr, base, offset uint32) uint64 {
	if e.unconstrained {
		return 0
	}
	id := e.nextLookupID()
	e.Record.AddEvents = append(e.Record.AddEvents, record.AluEvent{
		LookupID: id, Shard: e.ShardIndex, Clk: e.Clk, Opcode: rv32im.ADD, A: addr, B: base, C: offset,
	})
	return id
}

func (e *Executor) appendAluEvent(op rv32im.Opcode, ev record.AluEvent) {
	switch op {
	case rv32im.ADD, rv32im.ADDI:
		e.Record.AddEvents = append(e.Record.AddEvents, ev)
	case rv32im.SUB:
		e.Record.SubEvents = append(e.Record.SubEvents, ev)
	case rv32im.XOR, rv32im.XORI, rv32im.OR, rv32im.ORI, rv32im.AND, rv32im.ANDI:
		e.Record.BitwiseEvents = append(e.Record.BitwiseEvents, ev)
	case rv32im.SLL, rv32im.SLLI:
		e.Record.ShiftLeftEvents = append(e.Record.ShiftLeftEvents, ev)
	case rv32im.SRL, rv32im.SRLI, rv32im.SRA, rv32im.SRAI:
		e.Record.ShiftRightEvents = append(e.Record.ShiftRightEvents, ev)
	case rv32im.SLT, rv32im.SLTI, rv32im.SLTU, rv32im.SLTIU:
		e.Record.LtEvents = append(e.Record.LtEvents, ev)
	case rv32im.MUL, rv32im.MULH, rv32im.MULHU, rv32im.MULHSU:
		e.Record.MulEvents = append(e.Record.MulEvents, ev)
	case rv32im.DIV, rv32im.DIVU, rv32im.REM, rv32im.REMU:
		e.Record.DivRemEvents = append(e.Record.DivRemEvents, ev)
	}
}

func boolToWord(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// divSigned implements RV32M's signed division: division by zero returns
// all-ones, and the MinInt32/-1 overflow case returns the dividend
// unchanged (spec §7's DivRem edge cases, supplemented from
// original_source/'s divrem.rs).
func divSigned(a, b uint32) uint32 {
	if b == 0 {
		return 0xFFFFFFFF
	}
	sa, sb := int32(a), int32(b)
	if sa == -0x80000000 && sb == -1 {
		return a
	}
	return uint32(sa / sb)
}

func divUnsigned(a, b uint32) uint32 {
	if b == 0 {
		return 0xFFFFFFFF
	}
	return a / b
}

// remSigned returns a unchanged on division by zero and 0 on the
// MinInt32/-1 overflow case, matching RV32M's remainder conventions.
func remSigned(a, b uint32) uint32 {
	if b == 0 {
		return a
	}
	sa, sb := int32(a), int32(b)
	if sa == -0x80000000 && sb == -1 {
		return 0
	}
	return uint32(sa % sb)
}

func remUnsigned(a, b uint32) uint32 {
	if b == 0 {
		return a
	}
	return a % b
}
