// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package recursion models the typed DSL spec §6 names as the recursion
// circuit's interface: a small builder over base-field (Felt) and
// extension-field (Ext) registers that records operations as an ordered
// Program instead of executing them immediately, mirroring the
// Var/Felt/Ext builder in the pack's recursion compiler IR. A Program
// built this way is interpreted, not compiled to a real constraint
// system — there is no concrete FRI/PCS library in scope (spec §1's
// non-goal), so "checks a set of shard proofs" here means "replays the
// same closure checks stark.Verify makes, but as DSL ops over a fixed
// register file" rather than as native Go control flow.
package recursion

// Felt is a handle to a base-field register in a Builder's register file.
type Felt int

// Ext is a handle to an extension-field register in a Builder's register
// file.
type Ext int

// OpKind tags one DslIR-style instruction (spec §9's recursion DSL,
// grounded on recursion/compiler/src/ir/instructions.rs's DslIr variants
// — collapsed here to the handful of ops the verifier program needs).
type OpKind int

const (
	OpConstF OpKind = iota
	OpConstE
	OpAddF
	OpMulF
	OpAddE
	OpMulE
	OpAssertEqF
	OpAssertZeroE
	OpExtFromBase
)

// Op is one recorded instruction. Dst/LhsF/RhsF index the Felt register
// file; DstE/LhsE/RhsE index the Ext register file; ConstF/ConstE carry
// immediate operands for the Const* ops.
type Op struct {
	Kind   OpKind
	Dst    Felt
	LhsF   Felt
	RhsF   Felt
	DstE   Ext
	LhsE   Ext
	RhsE   Ext
	ConstF FeltValue
	ConstE ExtValue
}
