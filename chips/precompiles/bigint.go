// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package precompiles

import (
	"math/big"

	"github.com/holiman/uint256"

	"github.com/succinctlabs/sp1-sub003/executor"
	"github.com/succinctlabs/sp1-sub003/record"
)

// Syscall codes for the wide-integer precompiles (spec §4.8's
// "u256 x 2048-bit multiply" and the arbitrary-precision modular op).
const (
	SyscallU256XU2048Mul uint32 = 0x00_01_01_14
	SyscallBigIntModOp   uint32 = 0x00_01_01_15
)

// RegisterBigInt wires the wide-multiply and modular-arithmetic
// precompiles. The u256 side is grounded on holiman/uint256's
// fixed-width arithmetic (the teacher pack's own dependency for
// EVM-style 256-bit words); the 2048-bit accumulator and the modular
// op fall back to math/big because no library in the pack offers
// arbitrary-precision modular arithmetic at that width -- uint256 is
// fixed at 256 bits and cannot represent a 2048-bit product or an
// arbitrary modulus, so this one precompile is stdlib by necessity
// rather than by default.
func RegisterBigInt(e *executor.Executor) {
	e.RegisterSyscall(SyscallU256XU2048Mul, u256xu2048MulHandler)
	e.RegisterSyscall(SyscallBigIntModOp, bigIntModOpHandler)
}

// u256xu2048MulHandler multiplies a 256-bit multiplicand at arg1 by a
// 2048-bit multiplier at arg2, writing the full 2304-bit product back
// over arg2's buffer.
func u256xu2048MulHandler(e *executor.Executor, aPtr, bPtr uint32) (executor.SyscallResult, error) {
	a := new(uint256.Int).SetBytes(readBytes(e.Memory, aPtr, 32))
	bWords := readWords(e.Memory, bPtr, 64) // 2048 bits = 64 words

	aBig := a.ToBig()
	bBig := leWordsToBigInt(bWords)

	product := new(big.Int).Mul(aBig, bBig)
	writeBytes(e.Memory, bPtr, bigIntToLEBytes(product, 288)) // 2304 bits = 288 bytes

	e.Record.AddPrecompileEvent(SyscallU256XU2048Mul, record.PrecompileEvent{
		Shard: e.ShardIndex, Clk: e.Clk, Arg1: aPtr, Arg2: bPtr,
	})
	return executor.SyscallResult{}, nil
}

// bigIntModOpHandler computes (x op y) mod m for an arbitrary-width
// modulus m: arg1 points at a header {opcode, limb_count} followed by
// x, y, and m each limb_count words wide; the result overwrites x's
// buffer in place.
func bigIntModOpHandler(e *executor.Executor, headerPtr, _ uint32) (executor.SyscallResult, error) {
	header := readWords(e.Memory, headerPtr, 2)
	op, limbCount := header[0], int(header[1])

	base := headerPtr + 8
	xWords := readWords(e.Memory, base, limbCount)
	yWords := readWords(e.Memory, base+uint32(limbCount)*4, limbCount)
	mWords := readWords(e.Memory, base+2*uint32(limbCount)*4, limbCount)

	x := leWordsToBigInt(xWords)
	y := leWordsToBigInt(yWords)
	m := leWordsToBigInt(mWords)

	var result *big.Int
	switch op {
	case 0:
		result = new(big.Int).Add(x, y)
	case 1:
		result = new(big.Int).Sub(x, y)
	case 2:
		result = new(big.Int).Mul(x, y)
	default:
		return executor.SyscallResult{}, ErrUnknownBigIntOp
	}
	result.Mod(result, m)

	writeBytes(e.Memory, base, bigIntToLEBytes(result, limbCount*4))

	e.Record.AddPrecompileEvent(SyscallBigIntModOp, record.PrecompileEvent{
		Shard: e.ShardIndex, Clk: e.Clk, Arg1: headerPtr,
	})
	return executor.SyscallResult{}, nil
}

func reverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

// leWordsToBigInt interprets words as a little-endian limb sequence
// and parses the resulting byte string as an unsigned magnitude.
func leWordsToBigInt(words []uint32) *big.Int {
	return new(big.Int).SetBytes(reverseBytes(wordsToBytesLE(words)))
}

// bigIntToLEBytes renders n as a byteLen-byte little-endian buffer, zero
// padded (or truncated to its low bytes, for a deliberately narrow op)
// to exactly byteLen bytes.
func bigIntToLEBytes(n *big.Int, byteLen int) []byte {
	be := n.Bytes()
	padded := make([]byte, byteLen)
	if len(be) >= byteLen {
		copy(padded, be[len(be)-byteLen:])
	} else {
		copy(padded[byteLen-len(be):], be)
	}
	return reverseBytes(padded)
}
