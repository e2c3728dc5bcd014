// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package recursion

import (
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/succinctlabs/sp1-sub003/field"
	"github.com/succinctlabs/sp1-sub003/stark"
)

// CompressedDigest is the folded output of a compress run — a single
// 32-byte value standing in for the pack's wrap/compress proof (spec
// §2's "terminates in a single compressed proof"; the actual SNARK
// wrapper is out of scope per spec §1).
type CompressedDigest [32]byte

// CompressedProof is the recursion surface's terminal value: every
// batched shard proof checked out, the Global-scope bus closed across
// all of them, and their commitments folded into one digest.
type CompressedProof struct {
	Digest    CompressedDigest
	NumShards int
}

// Compress runs spec §9's recursion program over every shard in proofs:
// each shard's chip-ordering and Local-closure checks (BuildShardProgram)
// run independently, then every chip's Global-scope cumulative sum
// across every shard is folded into one closure check (mirroring
// VerifyGlobalClosure, but expressed as a DSL program instead of a
// direct Go loop), and finally every shard's main commitment is hashed
// together into a single CompressedDigest — the recursion tree's "batch,
// then reduce to one" shape (original_source's
// recursion/program/src/machine/mod.rs chunks shard proofs into batches
// before folding; this package collapses that into one level since
// there is no concrete recursion-AIR backend to recurse over).
func Compress(vk stark.VerifyingKey, proofs []stark.Proof) (CompressedProof, error) {
	h := blake3.New()
	numShards := 0

	var globalSums []field.EF
	for pi, proof := range proofs {
		for si, sp := range proof.PerShard {
			prog := BuildShardProgram(vk, sp)
			if err := Run(prog); err != nil {
				return CompressedProof{}, fmt.Errorf("recursion: proof %d shard %d: %w", pi, si, err)
			}
			for _, s := range sp.GlobalCumulativeSumPerChip {
				globalSums = append(globalSums, s)
			}
			h.Write(sp.MainCommitment[:])
			numShards++
		}
	}

	globalProg := BuildClosureProgram(globalSums)
	if err := Run(globalProg); err != nil {
		return CompressedProof{}, fmt.Errorf("recursion: global closure: %w", err)
	}

	var digest CompressedDigest
	h.Digest().Read(digest[:])
	return CompressedProof{Digest: digest, NumShards: numShards}, nil
}

// CompressOne is the common single-proof case of Compress — spec §2's
// recursion surface checking one full run's shard proofs.
func CompressOne(vk stark.VerifyingKey, proof stark.Proof) (CompressedProof, error) {
	return Compress(vk, []stark.Proof{proof})
}
