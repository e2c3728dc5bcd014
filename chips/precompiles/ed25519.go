// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package precompiles

import (
	"filippo.io/edwards25519"
	circled25519 "github.com/cloudflare/circl/sign/ed25519"

	"github.com/succinctlabs/sp1-sub003/executor"
	"github.com/succinctlabs/sp1-sub003/record"
)

// Syscall codes for the Ed25519 precompiles (spec §4.8's Edwards-curve
// add/decompress family, mirroring the Weierstrass one for secp256k1,
// plus a signature-verify op supplemented from the original guest SDK's
// ed25519 host function set).
const (
	SyscallEd25519Add        uint32 = 0x00_01_01_11
	SyscallEd25519Decompress uint32 = 0x00_01_01_12
	SyscallEd25519Verify     uint32 = 0x00_01_01_16
)

// RegisterEd25519 wires the Edwards-curve precompiles. Point arithmetic
// (add/decompress) is grounded on filippo.io/edwards25519's
// constant-time group-element operations; signature verification is
// grounded on cloudflare/circl's ed25519 signer, the full-protocol
// counterpart to edwards25519's bare curve math.
func RegisterEd25519(e *executor.Executor) {
	e.RegisterSyscall(SyscallEd25519Add, ed25519AddHandler)
	e.RegisterSyscall(SyscallEd25519Decompress, ed25519DecompressHandler)
	e.RegisterSyscall(SyscallEd25519Verify, ed25519VerifyHandler)
}

// ed25519VerifyHandler checks a detached signature: argsPtr points at
// {pubkey(32) || signature(64) || msgLen(4) || message(msgLen)}; the
// return register is set to 1 if the signature verifies, 0 otherwise.
func ed25519VerifyHandler(e *executor.Executor, argsPtr, _ uint32) (executor.SyscallResult, error) {
	pub := readBytes(e.Memory, argsPtr, circled25519.PublicKeySize)
	sig := readBytes(e.Memory, argsPtr+uint32(circled25519.PublicKeySize), circled25519.SignatureSize)
	lenWords := readWords(e.Memory, argsPtr+uint32(circled25519.PublicKeySize+circled25519.SignatureSize), 1)
	msgLen := lenWords[0]
	msg := readBytes(e.Memory, argsPtr+uint32(circled25519.PublicKeySize+circled25519.SignatureSize)+4, int(msgLen))

	ok := circled25519.Verify(circled25519.PublicKey(pub), msg, sig)

	e.Record.AddPrecompileEvent(SyscallEd25519Verify, record.PrecompileEvent{
		Shard: e.ShardIndex, Clk: e.Clk, Arg1: argsPtr,
	})
	return executor.SyscallResult{ReturnValue: boolToReturnValue(ok)}, nil
}

func boolToReturnValue(ok bool) uint32 {
	if ok {
		return 1
	}
	return 0
}

// ed25519AddHandler adds two compressed Edwards points held at arg1 and
// arg2, overwriting arg1's 32-byte buffer with the compressed sum.
func ed25519AddHandler(e *executor.Executor, pPtr, qPtr uint32) (executor.SyscallResult, error) {
	pBytes := readBytes(e.Memory, pPtr, 32)
	qBytes := readBytes(e.Memory, qPtr, 32)

	p, err := new(edwards25519.Point).SetBytes(pBytes)
	if err != nil {
		return executor.SyscallResult{}, err
	}
	q, err := new(edwards25519.Point).SetBytes(qBytes)
	if err != nil {
		return executor.SyscallResult{}, err
	}

	sum := new(edwards25519.Point).Add(p, q)
	writeBytes(e.Memory, pPtr, sum.Bytes())

	e.Record.AddPrecompileEvent(SyscallEd25519Add, record.PrecompileEvent{
		Shard: e.ShardIndex, Clk: e.Clk, Arg1: pPtr, Arg2: qPtr,
	})
	return executor.SyscallResult{}, nil
}

// ed25519DecompressHandler validates and re-expands a compressed
// Edwards point at ptr, writing its canonical 32-byte re-encoding back
// (round-tripping through SetBytes/Bytes certifies the point is a
// valid curve element per spec §4.8's "decompress and validate").
func ed25519DecompressHandler(e *executor.Executor, ptr, _ uint32) (executor.SyscallResult, error) {
	compressed := readBytes(e.Memory, ptr, 32)
	point, err := new(edwards25519.Point).SetBytes(compressed)
	if err != nil {
		return executor.SyscallResult{}, err
	}
	writeBytes(e.Memory, ptr, point.Bytes())

	e.Record.AddPrecompileEvent(SyscallEd25519Decompress, record.PrecompileEvent{
		Shard: e.ShardIndex, Clk: e.Clk, Arg1: ptr,
	})
	return executor.SyscallResult{}, nil
}
