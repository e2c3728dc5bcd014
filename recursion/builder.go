// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package recursion

import "github.com/succinctlabs/sp1-sub003/field"

// Builder accumulates Ops into a Program while handing out fresh
// register handles, the same shape as the pack's compiler Builder
// (var_count/operations) but specialized to the two register kinds the
// verifier program needs.
type Builder struct {
	numFelt int
	numExt  int
	ops     []Op
}

// NewBuilder starts an empty program.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) push(op Op) {
	b.ops = append(b.ops, op)
}

// NewFelt allocates an uninitialized base-field register.
func (b *Builder) NewFelt() Felt {
	f := Felt(b.numFelt)
	b.numFelt++
	return f
}

// NewExt allocates an uninitialized extension-field register.
func (b *Builder) NewExt() Ext {
	e := Ext(b.numExt)
	b.numExt++
	return e
}

// ConstF materializes an immediate base-field value into a fresh
// register.
func (b *Builder) ConstF(v field.F) Felt {
	dst := b.NewFelt()
	b.push(Op{Kind: OpConstF, Dst: dst, ConstF: v})
	return dst
}

// ConstE materializes an immediate extension-field value into a fresh
// register.
func (b *Builder) ConstE(v field.EF) Ext {
	dst := b.NewExt()
	b.push(Op{Kind: OpConstE, DstE: dst, ConstE: v})
	return dst
}

// AddF emits dst = lhs + rhs over the base field.
func (b *Builder) AddF(lhs, rhs Felt) Felt {
	dst := b.NewFelt()
	b.push(Op{Kind: OpAddF, Dst: dst, LhsF: lhs, RhsF: rhs})
	return dst
}

// MulF emits dst = lhs * rhs over the base field.
func (b *Builder) MulF(lhs, rhs Felt) Felt {
	dst := b.NewFelt()
	b.push(Op{Kind: OpMulF, Dst: dst, LhsF: lhs, RhsF: rhs})
	return dst
}

// AddE emits dst = lhs + rhs over the extension field.
func (b *Builder) AddE(lhs, rhs Ext) Ext {
	dst := b.NewExt()
	b.push(Op{Kind: OpAddE, DstE: dst, LhsE: lhs, RhsE: rhs})
	return dst
}

// MulE emits dst = lhs * rhs over the extension field.
func (b *Builder) MulE(lhs, rhs Ext) Ext {
	dst := b.NewExt()
	b.push(Op{Kind: OpMulE, DstE: dst, LhsE: lhs, RhsE: rhs})
	return dst
}

// ExtFromBase lifts a base-field register into the extension field, the
// DSL equivalent of field.FromBase.
func (b *Builder) ExtFromBase(f Felt) Ext {
	dst := b.NewExt()
	b.push(Op{Kind: OpExtFromBase, DstE: dst, LhsF: f})
	return dst
}

// AssertEqF emits a constraint that lhs and rhs interpret to the same
// base-field value (spec §9's AIR-check replay — the recursion program
// "checks" rather than computes).
func (b *Builder) AssertEqF(lhs, rhs Felt) {
	b.push(Op{Kind: OpAssertEqF, LhsF: lhs, RhsF: rhs})
}

// AssertZeroE emits a constraint that v interprets to the extension
// field's zero element — the DSL form of bus.Close's "total is zero"
// check.
func (b *Builder) AssertZeroE(v Ext) {
	b.push(Op{Kind: OpAssertZeroE, LhsE: v})
}

// Build finalizes the recorded instructions into a Program.
func (b *Builder) Build() Program {
	return Program{Ops: append([]Op(nil), b.ops...), NumFelt: b.numFelt, NumExt: b.numExt}
}
