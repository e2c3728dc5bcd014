// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rv32im

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// encodeR assembles an R-type word the same way the RISC-V assembler would.
func encodeR(funct7, rs2, rs1, funct3, rd uint32, opcode uint32) uint32 {
	return funct7<<25 | rs2<<20 | rs1<<15 | funct3<<12 | rd<<7 | opcode
}

func encodeI(imm, rs1, funct3, rd, opcode uint32) uint32 {
	return imm<<20 | rs1<<15 | funct3<<12 | rd<<7 | opcode
}

func TestDecodeADD(t *testing.T) {
	// add x31, x30, x29
	w := encodeR(0, 29, 30, 0b000, 31, opRType)
	inst, err := Decode(w)
	require.NoError(t, err)
	require.Equal(t, ADD, inst.Opcode)
	require.Equal(t, uint8(31), inst.OpA)
	require.Equal(t, uint32(30), inst.OpB)
	require.Equal(t, uint32(29), inst.OpC)
	require.False(t, inst.ImmC)
}

func TestDecodeADDI(t *testing.T) {
	// addi x29, x0, 5
	w := encodeI(5, 0, 0b000, 29, opIType)
	inst, err := Decode(w)
	require.NoError(t, err)
	require.Equal(t, ADDI, inst.Opcode)
	require.True(t, inst.ImmC)
	require.Equal(t, int32(5), int32(inst.OpC))
}

func TestDecodeADDINegativeImmediate(t *testing.T) {
	// addi x2, x0, -1
	w := encodeI(uint32(0xFFF), 0, 0b000, 2, opIType)
	inst, err := Decode(w)
	require.NoError(t, err)
	require.Equal(t, int32(-1), int32(inst.OpC))
}

func TestDecodeMulDiv(t *testing.T) {
	tests := []struct {
		funct3, funct7 uint32
		want           Opcode
	}{
		{0b000, 0b0000001, MUL},
		{0b001, 0b0000001, MULH},
		{0b010, 0b0000001, MULHSU},
		{0b011, 0b0000001, MULHU},
		{0b100, 0b0000001, DIV},
		{0b101, 0b0000001, DIVU},
		{0b110, 0b0000001, REM},
		{0b111, 0b0000001, REMU},
	}
	for _, tt := range tests {
		w := encodeR(tt.funct7, 2, 1, tt.funct3, 3, opRType)
		inst, err := Decode(w)
		require.NoError(t, err)
		require.Equal(t, tt.want, inst.Opcode)
	}
}

func TestDecodeLoadStore(t *testing.T) {
	// sb x10, 4(x11)
	w := (uint32(0) << 25) | (10 << 20) | (11 << 15) | (0b000 << 12) | (4 << 7) | opStore
	inst, err := Decode(w)
	require.NoError(t, err)
	require.Equal(t, SB, inst.Opcode)
	require.Equal(t, uint8(10), inst.OpA)
	require.Equal(t, uint32(11), inst.OpB)
	require.Equal(t, int32(4), int32(inst.OpC))

	// lbu x12, 4(x11)
	w2 := encodeI(4, 11, 0b100, 12, opLoad)
	inst2, err := Decode(w2)
	require.NoError(t, err)
	require.Equal(t, LBU, inst2.Opcode)
}

func TestDecodeBranch(t *testing.T) {
	// beq x1, x2, 0x10
	imm := uint32(0x10)
	b11 := (imm >> 11) & 1
	b4_1 := (imm >> 1) & 0xF
	b10_5 := (imm >> 5) & 0x3F
	b12 := (imm >> 12) & 1
	w := b12<<31 | b10_5<<25 | 2<<20 | 1<<15 | 0b000<<12 | b4_1<<8 | b11<<7 | opBranch
	inst, err := Decode(w)
	require.NoError(t, err)
	require.Equal(t, BEQ, inst.Opcode)
	require.Equal(t, int32(0x10), int32(inst.OpC))
}

func TestDecodeLUIAndAUIPC(t *testing.T) {
	w := (uint32(0x21212) << 12) | (1 << 7) | opLUI
	inst, err := Decode(w)
	require.NoError(t, err)
	require.Equal(t, LUI, inst.Opcode)
	require.Equal(t, uint32(0x21212000), inst.OpC)
}

func TestDecodeECALLAndEBREAK(t *testing.T) {
	ecall, err := Decode(opSystem)
	require.NoError(t, err)
	require.Equal(t, ECALL, ecall.Opcode)

	ebreak, err := Decode((1 << 20) | opSystem)
	require.NoError(t, err)
	require.Equal(t, EBREAK, ebreak.Opcode)
}

func TestDecodeInvalidOpcode(t *testing.T) {
	_, err := Decode(0b1111111) // opcode field with no defined meaning
	require.Error(t, err)
	var invalidErr *ErrInvalidOpcode
	require.ErrorAs(t, err, &invalidErr)
}
