// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/succinctlabs/sp1-sub003/rv32im"
)

func TestAddAndHalt(t *testing.T) {
	prog := NewProgram(0, []rv32im.Instruction{
		rv32im.NewIType(rv32im.ADDI, 1, 0, 2),  // x1 = 2
		rv32im.NewIType(rv32im.ADDI, 2, 0, 3),  // x2 = 3
		rv32im.NewRType(rv32im.ADD, 3, 1, 2),   // x3 = x1 + x2 = 5
		rv32im.NewIType(rv32im.ADDI, regSyscallID, 0, int32(SyscallHalt)),
		rv32im.NewIType(rv32im.ADDI, regA0, 0, 0),
		rv32im.NewSystem(rv32im.ECALL),
	})
	e := New(prog)
	err := e.Run()
	require.ErrorIs(t, err, ErrExecutionHalted)
	require.True(t, e.Halted())
	require.EqualValues(t, 5, e.Registers[3])
	require.EqualValues(t, 0, e.ExitCode())
}

func TestX0AlwaysZero(t *testing.T) {
	prog := NewProgram(0, []rv32im.Instruction{
		rv32im.NewIType(rv32im.ADDI, 0, 0, 42),
		rv32im.NewIType(rv32im.ADDI, regSyscallID, 0, int32(SyscallHalt)),
		rv32im.NewIType(rv32im.ADDI, regA0, 0, 0),
		rv32im.NewSystem(rv32im.ECALL),
	})
	e := New(prog)
	require.ErrorIs(t, e.Run(), ErrExecutionHalted)
	require.EqualValues(t, 0, e.Registers[0])
}

func TestShiftAmountMasksToFiveBits(t *testing.T) {
	prog := NewProgram(0, []rv32im.Instruction{
		rv32im.NewIType(rv32im.ADDI, 1, 0, 1),
		rv32im.NewIType(rv32im.ADDI, 2, 0, 33), // shift amount 33 & 0x1f == 1
		rv32im.NewRType(rv32im.SLL, 3, 1, 2),
		rv32im.NewIType(rv32im.ADDI, regSyscallID, 0, int32(SyscallHalt)),
		rv32im.NewIType(rv32im.ADDI, regA0, 0, 0),
		rv32im.NewSystem(rv32im.ECALL),
	})
	e := New(prog)
	require.ErrorIs(t, e.Run(), ErrExecutionHalted)
	require.EqualValues(t, 2, e.Registers[3])
}

func TestDivideByZero(t *testing.T) {
	prog := NewProgram(0, []rv32im.Instruction{
		rv32im.NewIType(rv32im.ADDI, 1, 0, 10),
		rv32im.NewRType(rv32im.DIV, 3, 1, 0), // divide by x0, always 0
		rv32im.NewRType(rv32im.REM, 4, 1, 0),
		rv32im.NewIType(rv32im.ADDI, regSyscallID, 0, int32(SyscallHalt)),
		rv32im.NewIType(rv32im.ADDI, regA0, 0, 0),
		rv32im.NewSystem(rv32im.ECALL),
	})
	e := New(prog)
	require.ErrorIs(t, e.Run(), ErrExecutionHalted)
	require.EqualValues(t, 0xFFFFFFFF, e.Registers[3])
	require.EqualValues(t, 10, e.Registers[4])
}

func TestSignedDivideOverflow(t *testing.T) {
	e := New(NewProgram(0, nil))
	result, _ := e.computeALU(rv32im.DIV, 0x80000000, 0xFFFFFFFF) // MinInt32 / -1
	require.EqualValues(t, 0x80000000, result)
	remResult, _ := e.computeALU(rv32im.REM, 0x80000000, 0xFFFFFFFF)
	require.EqualValues(t, 0, remResult)
}

func TestStoreLoadByte(t *testing.T) {
	prog := NewProgram(0, []rv32im.Instruction{
		rv32im.NewIType(rv32im.ADDI, 1, 0, 0x1000), // base address
		rv32im.NewIType(rv32im.ADDI, 2, 0, -1),     // 0xFFFFFFFF
		rv32im.NewSType(rv32im.SB, 2, 1, 0),
		rv32im.NewIType(rv32im.LBU, 3, 1, 0),
		rv32im.NewIType(rv32im.LB, 4, 1, 0),
		rv32im.NewIType(rv32im.ADDI, regSyscallID, 0, int32(SyscallHalt)),
		rv32im.NewIType(rv32im.ADDI, regA0, 0, 0),
		rv32im.NewSystem(rv32im.ECALL),
	})
	e := New(prog)
	require.ErrorIs(t, e.Run(), ErrExecutionHalted)
	require.EqualValues(t, 0xFF, e.Registers[3])
	require.EqualValues(t, 0xFFFFFFFF, e.Registers[4])
}

func TestBranchTaken(t *testing.T) {
	// loop decrementing x1 from 3 to 0, counting iterations in x2
	p := &Program{Instructions: map[uint32]rv32im.Instruction{}, Entry: 0, Memory: map[uint32]uint32{}}
	p.Instructions[0] = rv32im.NewIType(rv32im.ADDI, 1, 0, 3)
	p.Instructions[4] = rv32im.NewIType(rv32im.ADDI, 2, 0, 0)
	p.Instructions[8] = rv32im.NewBType(rv32im.BEQ, 1, 0, 16) // x1==0 -> pc=24
	p.Instructions[12] = rv32im.NewIType(rv32im.ADDI, 1, 1, -1)
	p.Instructions[16] = rv32im.NewIType(rv32im.ADDI, 2, 2, 1)
	p.Instructions[20] = rv32im.NewJType(0, -12) // back to pc=8
	p.Instructions[24] = rv32im.NewIType(rv32im.ADDI, regSyscallID, 0, int32(SyscallHalt))
	p.Instructions[28] = rv32im.NewIType(rv32im.ADDI, regA0, 0, 0)
	p.Instructions[32] = rv32im.NewSystem(rv32im.ECALL)

	e := New(p)
	require.ErrorIs(t, e.Run(), ErrExecutionHalted)
	require.EqualValues(t, 0, e.Registers[1])
	require.EqualValues(t, 3, e.Registers[2])
}

func TestCycleLimitExceeded(t *testing.T) {
	p := &Program{Instructions: map[uint32]rv32im.Instruction{}, Entry: 0, Memory: map[uint32]uint32{}}
	p.Instructions[0] = rv32im.NewJType(0, 0) // infinite self-jump
	e := New(p, WithCycleLimit(5))
	err := e.Run()
	require.ErrorIs(t, err, ErrCycleLimitExceeded)
}

func TestUnconstrainedWritesDiscarded(t *testing.T) {
	// x1 (the address we'll write and re-read) must be set up BEFORE
	// entering the unconstrained region: ENTER_UNCONSTRAINED's savepoint
	// rolls back every register on exit, not only memory, so anything
	// computed inside the region (including x1 itself) would vanish too.
	p := &Program{Instructions: map[uint32]rv32im.Instruction{}, Entry: 0, Memory: map[uint32]uint32{}}
	p.Instructions[0] = rv32im.NewIType(rv32im.ADDI, 1, 0, 0x2000)
	p.Instructions[4] = rv32im.NewIType(rv32im.ADDI, regSyscallID, 0, int32(SyscallEnterUnconstrained))
	p.Instructions[8] = rv32im.NewSystem(rv32im.ECALL)
	p.Instructions[12] = rv32im.NewIType(rv32im.ADDI, 2, 0, 7)
	p.Instructions[16] = rv32im.NewSType(rv32im.SW, 2, 1, 0)
	p.Instructions[20] = rv32im.NewIType(rv32im.ADDI, regSyscallID, 0, int32(SyscallExitUnconstrained))
	p.Instructions[24] = rv32im.NewSystem(rv32im.ECALL)
	p.Instructions[28] = rv32im.NewIType(rv32im.LW, 3, 1, 0)
	p.Instructions[32] = rv32im.NewIType(rv32im.ADDI, regSyscallID, 0, int32(SyscallHalt))
	p.Instructions[36] = rv32im.NewIType(rv32im.ADDI, regA0, 0, 0)
	p.Instructions[40] = rv32im.NewSystem(rv32im.ECALL)

	e := New(p)
	require.ErrorIs(t, e.Run(), ErrExecutionHalted)
	require.EqualValues(t, 0, e.Registers[3], "write inside unconstrained region must not survive exit")
}

func TestHintStream(t *testing.T) {
	p := &Program{Instructions: map[uint32]rv32im.Instruction{}, Entry: 0, Memory: map[uint32]uint32{}}
	p.Instructions[0] = rv32im.NewIType(rv32im.ADDI, regSyscallID, 0, int32(SyscallHintLen))
	p.Instructions[4] = rv32im.NewSystem(rv32im.ECALL)
	p.Instructions[8] = rv32im.NewRType(rv32im.ADD, 1, regA0, 0)
	p.Instructions[12] = rv32im.NewIType(rv32im.ADDI, regSyscallID, 0, int32(SyscallHalt))
	p.Instructions[16] = rv32im.NewIType(rv32im.ADDI, regA0, 0, 0)
	p.Instructions[20] = rv32im.NewSystem(rv32im.ECALL)

	e := New(p, WithStdin([]byte{1, 2, 3, 4}))
	require.ErrorIs(t, e.Run(), ErrExecutionHalted)
	require.EqualValues(t, 4, e.Registers[1])
}
