// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package recursion

import (
	"sort"

	"github.com/succinctlabs/sp1-sub003/field"
	"github.com/succinctlabs/sp1-sub003/stark"
)

// BuildChipOrderingProgram emits one AssertEqF per chip name common to
// both orderings, the DSL replay of stark.Verify's "chip ordering
// mismatch" check (spec §6's vk "fixes the chip ordering every shard
// proof must agree with").
func BuildChipOrderingProgram(vkOrdering, proofOrdering map[string]int) Program {
	b := NewBuilder()
	names := make([]string, 0, len(proofOrdering))
	for name := range proofOrdering {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		want, ok := vkOrdering[name]
		if !ok {
			continue
		}
		got := proofOrdering[name]
		b.AssertEqF(b.ConstF(field.FromInt64(int64(want))), b.ConstF(field.FromInt64(int64(got))))
	}
	return b.Build()
}

// BuildClosureProgram emits the DSL form of bus.Close: sum every value
// in sums via a chain of AddE ops and assert the total is the extension
// field's zero element.
func BuildClosureProgram(sums []field.EF) Program {
	b := NewBuilder()
	acc := b.ConstE(field.ZeroEF)
	for _, s := range sums {
		acc = b.AddE(acc, b.ConstE(s))
	}
	b.AssertZeroE(acc)
	return b.Build()
}

// BuildShardProgram assembles the chip-ordering and Local-scope closure
// checks for one stark.ShardProof into a single Program — the per-shard
// leaf of the recursion tree spec §9 describes, before any cross-shard
// folding happens.
func BuildShardProgram(vk stark.VerifyingKey, sp stark.ShardProof) Program {
	ordering := BuildChipOrderingProgram(vk.ChipOrdering, sp.ChipOrdering)
	localSums := make([]field.EF, 0, len(sp.CumulativeSumPerChip))
	for _, s := range sp.CumulativeSumPerChip {
		localSums = append(localSums, s)
	}
	closure := BuildClosureProgram(localSums)
	return mergePrograms(ordering, closure)
}

// mergePrograms concatenates two Programs' op streams, renumbering the
// second's register handles past the first's, since each Program in
// this package is built with its own zero-based Builder.
func mergePrograms(a, b Program) Program {
	out := Program{
		Ops:     make([]Op, 0, len(a.Ops)+len(b.Ops)),
		NumFelt: a.NumFelt + b.NumFelt,
		NumExt:  a.NumExt + b.NumExt,
	}
	out.Ops = append(out.Ops, a.Ops...)
	for _, op := range b.Ops {
		shifted := op
		shifted.Dst += Felt(a.NumFelt)
		shifted.LhsF += Felt(a.NumFelt)
		shifted.RhsF += Felt(a.NumFelt)
		shifted.DstE += Ext(a.NumExt)
		shifted.LhsE += Ext(a.NumExt)
		shifted.RhsE += Ext(a.NumExt)
		out.Ops = append(out.Ops, shifted)
	}
	return out
}
