// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package precompiles

import "github.com/succinctlabs/sp1-sub003/executor"

// Register wires every precompile syscall in this package into e,
// mirroring the way the teacher's precompile registry assembles its
// full set of registered contract handlers at startup.
func Register(e *executor.Executor) {
	RegisterKeccak(e)
	RegisterSecp256k1(e)
	RegisterGnarkCurves(e)
	RegisterEd25519(e)
	RegisterFp2(e)
	RegisterBigInt(e)
}

// Codes names every syscall code this package registers, keyed by code,
// so a chip-set builder can instantiate one generic receipt chip per
// precompile without hand-listing them twice (spec §4.8, §9's "chips"
// tagged-variant guidance).
func Codes() map[uint32]string {
	return map[uint32]string{
		SyscallKeccakPermute:      "Keccak",
		SyscallSecp256k1Add:       "Secp256k1Add",
		SyscallSecp256k1Double:    "Secp256k1Double",
		SyscallSecp256k1Decompress: "Secp256k1Decompress",
		SyscallBn254Add:           "Bn254Add",
		SyscallBn254Double:        "Bn254Double",
		SyscallBls12381Add:        "Bls12381Add",
		SyscallBls12381Double:     "Bls12381Double",
		SyscallEd25519Add:         "Ed25519Add",
		SyscallEd25519Decompress:  "Ed25519Decompress",
		SyscallEd25519Verify:      "Ed25519Verify",
		SyscallFp2Mul:             "Fp2Mul",
		SyscallU256XU2048Mul:      "U256XU2048Mul",
		SyscallBigIntModOp:        "BigIntModOp",
	}
}
