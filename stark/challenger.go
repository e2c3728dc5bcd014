// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package stark

import (
	"encoding/binary"

	"github.com/zeebo/blake3"

	"github.com/succinctlabs/sp1-sub003/bus"
	"github.com/succinctlabs/sp1-sub003/field"
)

// Challenger is the Fiat-Shamir transcript spec §6 abstracts as
// "observe(field_or_commitment), sample() -> extension, sample_bits(n) ->
// usize". Every Observe/Sample call folds its input into a running
// blake3 hash state; Sample additionally ratchets the state by feeding
// its own output back in, so consecutive samples diverge.
type Challenger struct {
	h *blake3.Hasher
}

// NewChallenger starts a fresh transcript.
func NewChallenger() *Challenger {
	return &Challenger{h: blake3.New()}
}

// Observe folds field elements into the transcript — the main-commitment
// observation before sampling permutation randomness (spec §4.9 step 2).
func (c *Challenger) Observe(fs ...field.F) {
	buf := make([]byte, 8)
	for _, f := range fs {
		binary.LittleEndian.PutUint64(buf, f.Uint64())
		c.h.Write(buf)
	}
}

// ObserveCommitment folds a Merkle root into the transcript.
func (c *Challenger) ObserveCommitment(commit Commitment) {
	c.h.Write(commit[:])
}

func (c *Challenger) squeeze8() []byte {
	out := make([]byte, 8)
	c.h.Digest().Read(out)
	c.h.Write(out)
	return out
}

// Sample draws one extension-field challenge (spec §4.6's α, β).
func (c *Challenger) Sample() field.EF {
	var coords [4]field.F
	for i := range coords {
		v := binary.LittleEndian.Uint64(c.squeeze8())
		coords[i] = field.NewF(v)
	}
	return field.NewEF(coords[0], coords[1], coords[2], coords[3])
}

// SampleBits draws an n-bit unsigned integer, used for FRI query indices
// (treated as an opaque consumer here per spec §9).
func (c *Challenger) SampleBits(n int) int {
	v := binary.LittleEndian.Uint64(c.squeeze8())
	if n <= 0 {
		return 0
	}
	if n >= 64 {
		return int(v)
	}
	return int(v & (uint64(1)<<uint(n) - 1))
}

// SampleChallenge draws the (α, β) pair one scope's permutation trace
// needs (spec §4.6).
func (c *Challenger) SampleChallenge() bus.Challenge {
	return bus.Challenge{Alpha: c.Sample(), Beta: c.Sample()}
}
