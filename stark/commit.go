// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package stark implements the per-shard proof driver: trace commitment,
// challenger-sampled permutation randomness, and opening, per spec §4.9's
// "STARK driver". The abstract "PCS" and "challenger" interfaces spec §6
// names are given one concrete instantiation here — a blake3 Merkle tree
// standing in for the commit/open primitive, and a blake3-backed
// Fiat-Shamir transcript standing in for the sampler. Per spec §6 ("The
// AIRs never name it") and §9's FRI-as-opaque-primitive framing, neither
// the AIR layer (package chips) nor package bus ever imports this
// package; only the driver and the recursion verifier do.
//
// Grounded on the teacher's PoolKey.ID-style blake3 usage (dex/types.go:
// blake3.New() / h.Write / h.Digest().Read) for the Merkle leaf/node
// hashing, generalized from a single flat digest into a binary tree of
// digests so individual rows can be opened without revealing the whole
// matrix.
package stark

import (
	"encoding/binary"

	"github.com/zeebo/blake3"

	"github.com/succinctlabs/sp1-sub003/field"
)

// Commitment is a blake3 Merkle root over a trace matrix's rows.
type Commitment [32]byte

func hashLeaf(row []field.F) Commitment {
	h := blake3.New()
	buf := make([]byte, 8)
	for _, f := range row {
		binary.LittleEndian.PutUint64(buf, f.Uint64())
		h.Write(buf)
	}
	var out Commitment
	h.Digest().Read(out[:])
	return out
}

func hashNode(left, right Commitment) Commitment {
	h := blake3.New()
	h.Write(left[:])
	h.Write(right[:])
	var out Commitment
	h.Digest().Read(out[:])
	return out
}

// MerkleTree is a committed trace matrix: one leaf per row, paired
// upward into a single root (Commitment).
type MerkleTree struct {
	layers [][]Commitment
}

// CommitMatrix builds the Merkle tree over rows, one leaf per row. An
// empty matrix commits to the hash of zero leaves, so Included-gated
// chips with no rows for a shard still produce a stable commitment.
func CommitMatrix(rows [][]field.F) *MerkleTree {
	leaves := make([]Commitment, len(rows))
	for i, row := range rows {
		leaves[i] = hashLeaf(row)
	}
	if len(leaves) == 0 {
		leaves = []Commitment{hashLeaf(nil)}
	}

	layers := [][]Commitment{leaves}
	cur := leaves
	for len(cur) > 1 {
		next := make([]Commitment, (len(cur)+1)/2)
		for i := range next {
			l := cur[2*i]
			r := l
			if 2*i+1 < len(cur) {
				r = cur[2*i+1]
			}
			next[i] = hashNode(l, r)
		}
		layers = append(layers, next)
		cur = next
	}
	return &MerkleTree{layers: layers}
}

// Root returns the tree's top commitment.
func (t *MerkleTree) Root() Commitment { return t.layers[len(t.layers)-1][0] }

// OpeningProof lets a verifier, given only the root, confirm that row was
// really the leaf at Index without re-deriving the whole matrix.
type OpeningProof struct {
	Row   []field.F
	Path  []Commitment
	Index int
}

// Open builds the opening proof for the row at index (the caller
// supplies it since the tree only stores hashes, not the rows
// themselves).
func (t *MerkleTree) Open(index int, row []field.F) OpeningProof {
	path := make([]Commitment, 0, len(t.layers)-1)
	idx := index
	for l := 0; l < len(t.layers)-1; l++ {
		layer := t.layers[l]
		sibling := idx ^ 1
		if sibling < len(layer) {
			path = append(path, layer[sibling])
		} else {
			path = append(path, layer[idx])
		}
		idx /= 2
	}
	return OpeningProof{Row: row, Path: path, Index: index}
}

// VerifyOpening recomputes the path from op.Row up to the root and checks
// it matches root.
func VerifyOpening(root Commitment, op OpeningProof) bool {
	cur := hashLeaf(op.Row)
	idx := op.Index
	for _, sibling := range op.Path {
		if idx%2 == 0 {
			cur = hashNode(cur, sibling)
		} else {
			cur = hashNode(sibling, cur)
		}
		idx /= 2
	}
	return cur == root
}
