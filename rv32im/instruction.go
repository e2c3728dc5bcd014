// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rv32im

// Instruction is the decoded, opcode-tagged form every chip consumes
// (spec §3). op_a is always a register index (or 0 for pseudo-ops);
// op_b/op_c are either register indices or immediates, distinguished by
// the ImmB/ImmC fields.
type Instruction struct {
	Opcode  Opcode
	OpA     uint8
	OpB     uint32
	OpC     uint32
	ImmB    bool
	ImmC    bool
}

// NewRType builds a register/register/register instruction (ADD, SUB, ...).
func NewRType(op Opcode, rd, rs1, rs2 uint8) Instruction {
	return Instruction{Opcode: op, OpA: rd, OpB: uint32(rs1), OpC: uint32(rs2)}
}

// NewIType builds a register/immediate instruction (ADDI, loads, JALR, ...).
func NewIType(op Opcode, rd, rs1 uint8, imm int32) Instruction {
	return Instruction{Opcode: op, OpA: rd, OpB: uint32(rs1), OpC: uint32(imm), ImmC: true}
}

// NewSType builds a store instruction: OpA carries the source register
// being stored (not a destination), OpB the base register, OpC the
// immediate offset.
func NewSType(op Opcode, rs2, rs1 uint8, imm int32) Instruction {
	return Instruction{Opcode: op, OpA: rs2, OpB: uint32(rs1), OpC: uint32(imm), ImmC: true}
}

// NewBType builds a branch instruction: OpA is rs1 (the first compared
// register, never a write destination for branches), OpB is rs2, OpC the
// branch-target immediate offset.
func NewBType(op Opcode, rs1, rs2 uint8, imm int32) Instruction {
	return Instruction{Opcode: op, OpA: rs1, OpB: uint32(rs2), OpC: uint32(imm), ImmC: true}
}

// NewUType builds LUI/AUIPC: OpA the destination register, OpC the
// upper-20-bits immediate already shifted into position.
func NewUType(op Opcode, rd uint8, imm uint32) Instruction {
	return Instruction{Opcode: op, OpA: rd, OpC: imm, ImmC: true}
}

// NewJType builds JAL: OpA the link register, OpC the signed byte offset.
func NewJType(rd uint8, imm int32) Instruction {
	return Instruction{Opcode: JAL, OpA: rd, OpC: uint32(imm), ImmC: true}
}

// NewSystem builds ECALL/EBREAK/UNIMP, which take no operands.
func NewSystem(op Opcode) Instruction {
	return Instruction{Opcode: op}
}
