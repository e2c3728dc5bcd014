// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package stark

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/succinctlabs/sp1-sub003/field"
	"github.com/succinctlabs/sp1-sub003/record"
)

// ChipOpenedValues is one chip's committed openings: its first
// main-trace row and its permutation row, one Merkle opening each; no
// next-row values are opened — spec §3's "opened_values_per_chip".
type ChipOpenedValues struct {
	Name               string
	MainOpening        OpeningProof
	PermutationOpening OpeningProof
	CumulativeSum      field.EF
}

// ShardProof is one shard's complete proof (spec §3's "ShardProof").
type ShardProof struct {
	MainCommitment        Commitment
	PermutationCommitment Commitment
	QuotientCommitment    Commitment
	OpenedValues          []ChipOpenedValues
	ChipOrdering          map[string]int
	PublicValues          record.PublicValues
	// CumulativeSumPerChip holds each chip's Local-scope cumulative sum;
	// Local interactions must close within this one shard (spec §4.6).
	CumulativeSumPerChip map[string]field.EF
	// GlobalCumulativeSumPerChip holds each chip's Global-scope
	// cumulative sum; Global interactions close only across every shard
	// in the proof (spec §4.7's global memory init/finalize chips), so
	// this shard's contribution is summed alongside every other shard's
	// by VerifyGlobalClosure.
	GlobalCumulativeSumPerChip map[string]field.EF
}

// VerifyingKey pins a program to its preprocessed trace commitment and
// fixes the chip ordering every shard proof must agree with (spec §6's
// "vk contains the commitment to the program chip's preprocessed trace
// and the chip ordering").
type VerifyingKey struct {
	ProgramCommitment Commitment
	ChipOrdering      map[string]int
}

// Proof is the full serialized payload spec §6 describes: every shard's
// ShardProof plus the whole run's PublicValues.
type Proof struct {
	PerShard     []ShardProof
	PublicValues record.PublicValues
}

// Serialize encodes p with encoding/gob — stdlib is the right call here:
// no length-prefixed binary serialization library appears anywhere in
// the pack, and gob's self-describing wire format satisfies spec §6's
// "a self-describing serialization (length-prefixed sections)" without
// inventing one.
func (p Proof) Serialize() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(p); err != nil {
		return nil, fmt.Errorf("stark: serialize proof: %w", err)
	}
	return buf.Bytes(), nil
}

// Deserialize is the inverse of Serialize; spec §8's round-trip law
// requires Deserialize(Serialize(p)) == p.
func Deserialize(data []byte) (Proof, error) {
	var p Proof
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&p); err != nil {
		return Proof{}, fmt.Errorf("stark: deserialize proof: %w", err)
	}
	return p, nil
}
