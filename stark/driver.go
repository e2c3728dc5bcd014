// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package stark

import (
	"errors"
	"fmt"

	"github.com/succinctlabs/sp1-sub003/bus"
	"github.com/succinctlabs/sp1-sub003/chips"
	"github.com/succinctlabs/sp1-sub003/field"
	"github.com/succinctlabs/sp1-sub003/record"
)

// ErrInvalidShardProof is returned when a ShardProof fails any of its own
// structural or soundness checks (spec §7's verifier error taxonomy).
var ErrInvalidShardProof = errors.New("stark: invalid shard proof")

// ErrInvalidGlobalProof is returned when the Global-scope interaction bus
// does not close across every shard in a Proof (spec §7, §4.7).
var ErrInvalidGlobalProof = errors.New("stark: invalid global proof")

// Driver runs the per-shard prove/verify steps spec §4.9 describes over a
// fixed chip set.
type Driver struct {
	Chips []chips.Chip
}

// chipByName indexes d.Chips for Verify's per-chip EvalConstraints call —
// a ShardProof carries only chip names, not the Chip values that built
// it.
func (d *Driver) chipByName(name string) (chips.Chip, bool) {
	for _, c := range d.Chips {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// NewDriver builds a driver over chipSet, normally chips.All(image) plus
// whatever precompile chips the program's syscall table registers.
func NewDriver(chipSet []chips.Chip) *Driver {
	return &Driver{Chips: chipSet}
}

func scopedInteractions(rows [][]bus.Interaction, scope bus.Scope) [][]bus.Interaction {
	out := make([][]bus.Interaction, len(rows))
	for i, row := range rows {
		for _, in := range row {
			if in.Scope == scope {
				out[i] = append(out[i], in)
			}
		}
	}
	return out
}

// flattenEF expands cumulative sums into base-field coordinates so they
// can be committed through the same blake3 Merkle leaf hasher the main
// trace uses.
func flattenEF(vals ...field.EF) []field.F {
	out := make([]field.F, 0, len(vals)*4)
	for _, v := range vals {
		c := v.Coeffs()
		out = append(out, c[0], c[1], c[2], c[3])
	}
	return out
}

// Prove generates one shard's ShardProof from its events (spec §4.9
// steps 1-6): commit the main trace, sample permutation randomness per
// scope, generate and commit permutation traces, commit a quotient
// stand-in, and open every chip's representative row.
//
// The quotient polynomial and FRI opening proper are the abstract
// primitives spec §6 and §9 name as "treated as an opaque primitive
// here" — QuotientCommitment here commits each chip's cumulative sums
// rather than a degree-checked combination of AIR constraint residues,
// since no concrete field/PCS library is in scope (spec §1's explicit
// non-goal). What this package does implement for real is the
// commit/open/challenger interface shape and the interaction-bus
// closure check, which is the part spec §8's testable properties
// actually exercise.
func (d *Driver) Prove(rec *record.ExecutionRecord) (ShardProof, error) {
	included := chips.Included(d.Chips, rec)

	type chipData struct {
		chip            chips.Chip
		offset          int
		rowInteractions [][]bus.Interaction
	}

	var allRows [][]field.F
	datas := make([]chipData, len(included))
	for i, c := range included {
		tr := c.GenerateTrace(rec)
		datas[i] = chipData{chip: c, offset: len(allRows), rowInteractions: c.RowInteractions(rec)}
		if len(tr.Rows) == 0 {
			allRows = append(allRows, make([]field.F, tr.Width))
		} else {
			allRows = append(allRows, tr.Rows...)
		}
	}

	mainTree := CommitMatrix(allRows)
	mainCommitment := mainTree.Root()

	challenger := NewChallenger()
	challenger.ObserveCommitment(mainCommitment)
	localChallenge := challenger.SampleChallenge()
	globalChallenge := challenger.SampleChallenge()

	fullIndex := make(map[string]int, len(d.Chips))
	for i, c := range d.Chips {
		fullIndex[c.Name()] = i
	}

	chipOrdering := make(map[string]int, len(datas))
	cumulativeLocal := make(map[string]field.EF, len(datas))
	cumulativeGlobal := make(map[string]field.EF, len(datas))

	permRows := make([][]field.F, len(datas))
	for i, dat := range datas {
		chipOrdering[dat.chip.Name()] = fullIndex[dat.chip.Name()]
		localPerm := bus.GenerateTrace(scopedInteractions(dat.rowInteractions, bus.Local), localChallenge)
		globalPerm := bus.GenerateTrace(scopedInteractions(dat.rowInteractions, bus.Global), globalChallenge)
		cumulativeLocal[dat.chip.Name()] = localPerm.CumulativeSum
		cumulativeGlobal[dat.chip.Name()] = globalPerm.CumulativeSum
		permRows[i] = flattenEF(localPerm.CumulativeSum, globalPerm.CumulativeSum)
	}

	permTree := CommitMatrix(permRows)
	permCommitment := permTree.Root()
	challenger.ObserveCommitment(permCommitment)

	quotientRow := make([]field.F, 0, len(datas)*8)
	for i := range datas {
		quotientRow = append(quotientRow, permRows[i]...)
	}
	quotientTree := CommitMatrix([][]field.F{quotientRow})
	quotientCommitment := quotientTree.Root()
	challenger.ObserveCommitment(quotientCommitment)

	opened := make([]ChipOpenedValues, len(datas))
	for i, dat := range datas {
		row := allRows[dat.offset]
		opened[i] = ChipOpenedValues{
			Name:               dat.chip.Name(),
			MainOpening:        mainTree.Open(dat.offset, row),
			PermutationOpening: permTree.Open(i, permRows[i]),
			CumulativeSum:      cumulativeLocal[dat.chip.Name()].Add(cumulativeGlobal[dat.chip.Name()]),
		}
	}

	return ShardProof{
		MainCommitment:             mainCommitment,
		PermutationCommitment:      permCommitment,
		QuotientCommitment:         quotientCommitment,
		OpenedValues:               opened,
		ChipOrdering:               chipOrdering,
		PublicValues:               rec.PublicValues,
		CumulativeSumPerChip:       cumulativeLocal,
		GlobalCumulativeSumPerChip: cumulativeGlobal,
	}, nil
}

// ProveAll proves every shard independently (spec §5: "per-shard proofs
// run in parallel across shards" — sequential here since the driver
// itself holds no shared mutable state across calls, but nothing
// prevents a caller from fanning Prove out over goroutines).
func (d *Driver) ProveAll(shards []*record.ExecutionRecord) (Proof, error) {
	perShard := make([]ShardProof, len(shards))
	for i, rec := range shards {
		sp, err := d.Prove(rec)
		if err != nil {
			return Proof{}, fmt.Errorf("stark: prove shard %d: %w", i, err)
		}
		perShard[i] = sp
	}

	var overall record.PublicValues
	if len(perShard) > 0 {
		overall = perShard[0].PublicValues
		last := perShard[len(perShard)-1].PublicValues
		overall.NextPC = last.NextPC
		overall.ExitCode = last.ExitCode
		overall.CommittedValueDigest = last.CommittedValueDigest
		overall.DeferredProofsDigest = last.DeferredProofsDigest
		overall.LastInitAddrBits = last.LastInitAddrBits
		overall.LastFinalizeAddrBits = last.LastFinalizeAddrBits
	}

	return Proof{PerShard: perShard, PublicValues: overall}, nil
}

// Verify checks one ShardProof in isolation (spec §4.9 "Verification
// mirrors this ... additionally checks per-chip cumulative_sum sums to
// zero"): every opened row matches its commitment, the chip ordering
// agrees with vk when vk names one, the Local-scope interaction bus
// closes within this shard (spec §4.6's soundness property), and each
// opened row actually satisfies its chip's local AIR relation (spec
// §9's "a method taking an abstract constraint builder and returning
// the constraint residue") — a = op(b, c) for the ALU chips, b = q*c+r
// for DivRem, boolean selectors for the CPU chip, and so on.
func (d *Driver) Verify(vk VerifyingKey, proof ShardProof) error {
	if len(vk.ChipOrdering) > 0 {
		for name, idx := range proof.ChipOrdering {
			want, ok := vk.ChipOrdering[name]
			if !ok || want != idx {
				return fmt.Errorf("%w: chip ordering mismatch for %s", ErrInvalidShardProof, name)
			}
		}
	}
	for _, ov := range proof.OpenedValues {
		if !VerifyOpening(proof.MainCommitment, ov.MainOpening) {
			return fmt.Errorf("%w: main opening failed for chip %s", ErrInvalidShardProof, ov.Name)
		}
		if !VerifyOpening(proof.PermutationCommitment, ov.PermutationOpening) {
			return fmt.Errorf("%w: permutation opening failed for chip %s", ErrInvalidShardProof, ov.Name)
		}
		c, ok := d.chipByName(ov.Name)
		if !ok {
			return fmt.Errorf("%w: unknown chip %s", ErrInvalidShardProof, ov.Name)
		}
		if err := c.EvalConstraints(ov.MainOpening.Row); err != nil {
			return fmt.Errorf("%w: constraint violation in chip %s: %v", ErrInvalidShardProof, ov.Name, err)
		}
	}

	localSums := make([]field.EF, 0, len(proof.CumulativeSumPerChip))
	for _, s := range proof.CumulativeSumPerChip {
		localSums = append(localSums, s)
	}
	if err := bus.Close(bus.Local, localSums); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidShardProof, err)
	}
	return nil
}

// VerifyGlobalClosure checks spec §4.7/§4.6's cross-shard requirement:
// the sum of every chip's Global-scope cumulative sum, over every shard
// in the proof, is zero.
func VerifyGlobalClosure(shards []ShardProof) error {
	var sums []field.EF
	for _, sp := range shards {
		for _, s := range sp.GlobalCumulativeSumPerChip {
			sums = append(sums, s)
		}
	}
	if err := bus.Close(bus.Global, sums); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidGlobalProof, err)
	}
	return nil
}

// VerifyAll checks a whole Proof: every shard verifies on its own,
// consecutive shards' public values continue from one another (spec
// §4.7), and the Global-scope bus closes across the whole sequence
// (spec §8's invariant 3: "Σ cumulative_sum_chip = 0 per scope").
func (d *Driver) VerifyAll(vk VerifyingKey, proof Proof) error {
	for i, sp := range proof.PerShard {
		if err := d.Verify(vk, sp); err != nil {
			return fmt.Errorf("shard %d: %w", i, err)
		}
		if i > 0 && !proof.PerShard[i-1].PublicValues.ContinuesFrom(sp.PublicValues) {
			return fmt.Errorf("%w: shard %d does not continue from shard %d", ErrInvalidShardProof, i, i-1)
		}
	}
	return VerifyGlobalClosure(proof.PerShard)
}
