// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package precompiles wires the cryptographic precompile syscalls into an
// executor.Executor's dispatch table: Keccak, Weierstrass add/double over
// secp256k1/BN254/BLS12-381, secp256k1 decompress, Ed25519 add/decompress,
// Fp2 multiply, u256x2048 multiply, and a big-int modular op (spec §4.8).
//
// Grounded on parsdao-pars's precompile registry (ecies/contract.go,
// blake3/contract.go): each precompile here is a syscall handler that
// reads its operands from guest memory, runs a real cryptographic
// library's operation, writes the result back, and records a
// record.PrecompileEvent the matching AIR chip would replay.
package precompiles

import "github.com/succinctlabs/sp1-sub003/memory"

// readWords reads n consecutive little-endian words starting at addr.
func readWords(mem *memory.Memory, addr uint32, n int) []uint32 {
	out := make([]uint32, n)
	for i := 0; i < n; i++ {
		w, _ := mem.Get(addr + uint32(i)*4)
		out[i] = w.ToUint32()
	}
	return out
}

// writeWords writes vals as consecutive little-endian words starting at addr.
func writeWords(mem *memory.Memory, addr uint32, vals []uint32) {
	for i, v := range vals {
		mem.Insert(addr+uint32(i)*4, memory.WordFromUint32(v))
	}
}

// readBytes reads n bytes starting at addr, narrower than a full word.
func readBytes(mem *memory.Memory, addr uint32, n int) []byte {
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		a := addr + uint32(i)
		w, _ := mem.Get(a &^ 3)
		out[i] = w[a&3]
	}
	return out
}

// writeBytes writes data starting at addr, byte by byte (read-modify-write
// on the containing aligned word).
func writeBytes(mem *memory.Memory, addr uint32, data []byte) {
	for i, b := range data {
		a := addr + uint32(i)
		aligned := a &^ 3
		w, _ := mem.Get(aligned)
		w[a&3] = b
		mem.Insert(aligned, w)
	}
}

// wordsToBytesLE flattens a little-endian word slice into bytes.
func wordsToBytesLE(words []uint32) []byte {
	out := make([]byte, 0, len(words)*4)
	for _, w := range words {
		out = append(out, byte(w), byte(w>>8), byte(w>>16), byte(w>>24))
	}
	return out
}

// bytesToWordsLE is the inverse of wordsToBytesLE; len(data) must be a
// multiple of 4.
func bytesToWordsLE(data []byte) []uint32 {
	out := make([]uint32, len(data)/4)
	for i := range out {
		out[i] = uint32(data[4*i]) | uint32(data[4*i+1])<<8 | uint32(data[4*i+2])<<16 | uint32(data[4*i+3])<<24
	}
	return out
}
