// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package precompiles

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/succinctlabs/sp1-sub003/executor"
	"github.com/succinctlabs/sp1-sub003/record"
)

// SyscallFp2Mul is the precompile syscall for one quadratic-extension
// field multiplication, c = a*b over Fp2 (spec §4.8's "Fp2 multiply",
// used by pairing-friendly curve arithmetic over BLS12-381's tower).
const SyscallFp2Mul uint32 = 0x00_01_01_13

// RegisterFp2 wires the Fp2-multiply precompile, grounded on
// gnark-crypto's BLS12-381 quadratic-extension type (the same tower
// the curve-add precompiles in weierstrass_gnark.go build on).
func RegisterFp2(e *executor.Executor) {
	e.RegisterSyscall(SyscallFp2Mul, fp2MulHandler)
}

// fp2MulHandler reads two Fp2 elements (each two 48-byte limbs, a0||a1)
// at arg1 and arg2, multiplies, and writes the product back over arg1.
func fp2MulHandler(e *executor.Executor, aPtr, bPtr uint32) (executor.SyscallResult, error) {
	var a, b bls12381.E2
	a.A0.SetBytes(readBytes(e.Memory, aPtr, 48))
	a.A1.SetBytes(readBytes(e.Memory, aPtr+48, 48))
	b.A0.SetBytes(readBytes(e.Memory, bPtr, 48))
	b.A1.SetBytes(readBytes(e.Memory, bPtr+48, 48))

	var product bls12381.E2
	product.Mul(&a, &b)

	writeBytes(e.Memory, aPtr, product.A0.Marshal())
	writeBytes(e.Memory, aPtr+48, product.A1.Marshal())

	e.Record.AddPrecompileEvent(SyscallFp2Mul, record.PrecompileEvent{
		Shard: e.ShardIndex, Clk: e.Clk, Arg1: aPtr, Arg2: bPtr,
	})
	return executor.SyscallResult{}, nil
}
