// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package precompiles

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bn254"

	"github.com/succinctlabs/sp1-sub003/executor"
	"github.com/succinctlabs/sp1-sub003/record"
)

// Syscall codes for the BN254 and BLS12-381 Weierstrass precompiles
// (spec §4.8's curve-parameterized add/double family).
const (
	SyscallBn254Add       uint32 = 0x00_01_01_0D
	SyscallBn254Double    uint32 = 0x00_01_01_0E
	SyscallBls12381Add    uint32 = 0x00_01_01_0F
	SyscallBls12381Double uint32 = 0x00_01_01_10
)

// RegisterGnarkCurves wires the BN254 and BLS12-381 add/double
// precompiles, grounded on gnark-crypto's affine/Jacobian G1 arithmetic
// (the curve libraries the teacher's kzg4844/blake3 siblings in the
// pack import for pairing-friendly curve work).
func RegisterGnarkCurves(e *executor.Executor) {
	e.RegisterSyscall(SyscallBn254Add, bn254AddHandler)
	e.RegisterSyscall(SyscallBn254Double, bn254DoubleHandler)
	e.RegisterSyscall(SyscallBls12381Add, bls12381AddHandler)
	e.RegisterSyscall(SyscallBls12381Double, bls12381DoubleHandler)
}

func bn254AddHandler(e *executor.Executor, pPtr, qPtr uint32) (executor.SyscallResult, error) {
	var p, q bn254.G1Affine
	p.X.SetBytes(readBytes(e.Memory, pPtr, 32))
	p.Y.SetBytes(readBytes(e.Memory, pPtr+32, 32))
	q.X.SetBytes(readBytes(e.Memory, qPtr, 32))
	q.Y.SetBytes(readBytes(e.Memory, qPtr+32, 32))

	var pJac, qJac, sumJac bn254.G1Jac
	pJac.FromAffine(&p)
	qJac.FromAffine(&q)
	sumJac.Set(&pJac).AddAssign(&qJac)

	var sum bn254.G1Affine
	sum.FromJacobian(&sumJac)
	writeCurvePoint(e, pPtr, sum.X.Marshal(), sum.Y.Marshal())

	e.Record.AddPrecompileEvent(SyscallBn254Add, record.PrecompileEvent{
		Shard: e.ShardIndex, Clk: e.Clk, Arg1: pPtr, Arg2: qPtr,
	})
	return executor.SyscallResult{}, nil
}

func bn254DoubleHandler(e *executor.Executor, pPtr, _ uint32) (executor.SyscallResult, error) {
	var p bn254.G1Affine
	p.X.SetBytes(readBytes(e.Memory, pPtr, 32))
	p.Y.SetBytes(readBytes(e.Memory, pPtr+32, 32))

	var pJac, doubledJac bn254.G1Jac
	pJac.FromAffine(&p)
	doubledJac.Set(&pJac).DoubleAssign()

	var doubled bn254.G1Affine
	doubled.FromJacobian(&doubledJac)
	writeCurvePoint(e, pPtr, doubled.X.Marshal(), doubled.Y.Marshal())

	e.Record.AddPrecompileEvent(SyscallBn254Double, record.PrecompileEvent{
		Shard: e.ShardIndex, Clk: e.Clk, Arg1: pPtr,
	})
	return executor.SyscallResult{}, nil
}

func bls12381AddHandler(e *executor.Executor, pPtr, qPtr uint32) (executor.SyscallResult, error) {
	var p, q bls12381.G1Affine
	p.X.SetBytes(readBytes(e.Memory, pPtr, 48))
	p.Y.SetBytes(readBytes(e.Memory, pPtr+48, 48))
	q.X.SetBytes(readBytes(e.Memory, qPtr, 48))
	q.Y.SetBytes(readBytes(e.Memory, qPtr+48, 48))

	var pJac, qJac, sumJac bls12381.G1Jac
	pJac.FromAffine(&p)
	qJac.FromAffine(&q)
	sumJac.Set(&pJac).AddAssign(&qJac)

	var sum bls12381.G1Affine
	sum.FromJacobian(&sumJac)
	writeCurvePoint(e, pPtr, sum.X.Marshal(), sum.Y.Marshal())

	e.Record.AddPrecompileEvent(SyscallBls12381Add, record.PrecompileEvent{
		Shard: e.ShardIndex, Clk: e.Clk, Arg1: pPtr, Arg2: qPtr,
	})
	return executor.SyscallResult{}, nil
}

func bls12381DoubleHandler(e *executor.Executor, pPtr, _ uint32) (executor.SyscallResult, error) {
	var p bls12381.G1Affine
	p.X.SetBytes(readBytes(e.Memory, pPtr, 48))
	p.Y.SetBytes(readBytes(e.Memory, pPtr+48, 48))

	var pJac, doubledJac bls12381.G1Jac
	pJac.FromAffine(&p)
	doubledJac.Set(&pJac).DoubleAssign()

	var doubled bls12381.G1Affine
	doubled.FromJacobian(&doubledJac)
	writeCurvePoint(e, pPtr, doubled.X.Marshal(), doubled.Y.Marshal())

	e.Record.AddPrecompileEvent(SyscallBls12381Double, record.PrecompileEvent{
		Shard: e.ShardIndex, Clk: e.Clk, Arg1: pPtr,
	})
	return executor.SyscallResult{}, nil
}

func writeCurvePoint(e *executor.Executor, addr uint32, x, y []byte) {
	writeBytes(e.Memory, addr, x)
	writeBytes(e.Memory, addr+uint32(len(x)), y)
}
