// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package precompiles

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/succinctlabs/sp1-sub003/executor"
	"github.com/succinctlabs/sp1-sub003/record"
)

// Syscall codes for the secp256k1 Weierstrass-curve precompiles (spec
// §4.8's "Weierstrass add", "Weierstrass double", "secp256k1 decompress").
const (
	SyscallSecp256k1Add        uint32 = 0x00_01_01_0A
	SyscallSecp256k1Double     uint32 = 0x00_01_01_0B
	SyscallSecp256k1Decompress uint32 = 0x00_01_01_0C
)

// RegisterSecp256k1 wires the three secp256k1 precompiles into e's
// dispatch table, grounded on decred/dcrd/dcrec/secp256k1's field and
// Jacobian-point arithmetic (the same library the teacher's
// ecies/contract.go uses for ECDH).
func RegisterSecp256k1(e *executor.Executor) {
	e.RegisterSyscall(SyscallSecp256k1Add, secp256k1AddHandler)
	e.RegisterSyscall(SyscallSecp256k1Double, secp256k1DoubleHandler)
	e.RegisterSyscall(SyscallSecp256k1Decompress, secp256k1DecompressHandler)
}

// readAffinePoint reads two 32-byte big-endian field elements (x, y)
// starting at addr, the encoding SP1's secp256k1 precompiles use for
// point operands.
func readAffinePoint(e *executor.Executor, addr uint32) (x, y secp256k1.FieldVal) {
	xb := readBytes(e.Memory, addr, 32)
	yb := readBytes(e.Memory, addr+32, 32)
	x.SetByteSlice(xb)
	y.SetByteSlice(yb)
	return x, y
}

func writeAffinePoint(e *executor.Executor, addr uint32, x, y secp256k1.FieldVal) {
	xb := x.Bytes()
	yb := y.Bytes()
	writeBytes(e.Memory, addr, xb[:])
	writeBytes(e.Memory, addr+32, yb[:])
}

// secp256k1AddHandler computes p+q for two affine points: p's 64-byte
// encoding lives at arg1 (overwritten with the sum), q's at arg2 (spec
// §4.8's "Weierstrass add: slope = (qy-py)/(qx-px), x = slope^2-(px+qx),
// y = slope*(px-x)-py").
func secp256k1AddHandler(e *executor.Executor, pPtr, qPtr uint32) (executor.SyscallResult, error) {
	px, py := readAffinePoint(e, pPtr)
	qx, qy := readAffinePoint(e, qPtr)

	var p, q, sum secp256k1.JacobianPoint
	p.X, p.Y, p.Z = px, py, *new(secp256k1.FieldVal).SetInt(1)
	q.X, q.Y, q.Z = qx, qy, *new(secp256k1.FieldVal).SetInt(1)
	secp256k1.AddNonConst(&p, &q, &sum)
	sum.ToAffine()

	writeAffinePoint(e, pPtr, sum.X, sum.Y)

	e.Record.AddPrecompileEvent(SyscallSecp256k1Add, record.PrecompileEvent{
		Shard: e.ShardIndex, Clk: e.Clk, Arg1: pPtr, Arg2: qPtr,
	})
	return executor.SyscallResult{}, nil
}

// secp256k1DoubleHandler computes 2p in place at arg1 (spec §4.8's
// "Weierstrass double: slope = (3px^2+a)/(2py)").
func secp256k1DoubleHandler(e *executor.Executor, pPtr, _ uint32) (executor.SyscallResult, error) {
	px, py := readAffinePoint(e, pPtr)

	var p, doubled secp256k1.JacobianPoint
	p.X, p.Y, p.Z = px, py, *new(secp256k1.FieldVal).SetInt(1)
	secp256k1.DoubleNonConst(&p, &doubled)
	doubled.ToAffine()

	writeAffinePoint(e, pPtr, doubled.X, doubled.Y)

	e.Record.AddPrecompileEvent(SyscallSecp256k1Double, record.PrecompileEvent{
		Shard: e.ShardIndex, Clk: e.Clk, Arg1: pPtr,
	})
	return executor.SyscallResult{}, nil
}

// secp256k1DecompressHandler recovers y from a compressed point's x
// coordinate and parity bit (spec §4.8's "given x and a parity bit,
// compute y = sqrt(x^3+7), select y or p-y by parity").
func secp256k1DecompressHandler(e *executor.Executor, ptr, parity uint32) (executor.SyscallResult, error) {
	xb := readBytes(e.Memory, ptr, 32)
	var x secp256k1.FieldVal
	x.SetByteSlice(xb)

	var rhs secp256k1.FieldVal
	rhs.SquareVal(&x).Mul(&x).AddInt(7)
	y := new(secp256k1.FieldVal)
	y.SquareRootVal(&rhs)
	y.Normalize()

	wantOdd := parity&1 == 1
	if y.IsOdd() != wantOdd {
		y.Negate(1).Normalize()
	}

	yb := y.Bytes()
	writeBytes(e.Memory, ptr+32, yb[:])

	e.Record.AddPrecompileEvent(SyscallSecp256k1Decompress, record.PrecompileEvent{
		Shard: e.ShardIndex, Clk: e.Clk, Arg1: ptr, Arg2: parity,
	})
	return executor.SyscallResult{}, nil
}
