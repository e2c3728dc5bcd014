// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package bus implements the cross-chip interaction (lookup) layer: typed
// send/receive declarations and the LogUp-style permutation argument that
// proves their multiset equality across every chip and shard (spec §3,
// §4.6).
//
// Grounded on parsdao-pars's zk/stark.go witness-accumulation style
// (per-round running sums over a commitment's openings), generalized from
// a single aggregate sum to per-chip, per-scope batched permutation
// columns per spec §4.6.
package bus

import "github.com/succinctlabs/sp1-sub003/field"

// Scope partitions interactions the way spec §4.6 requires: Local
// interactions close within one shard, Global ones close across the
// entire proof.
type Scope int

const (
	Local Scope = iota
	Global
)

func (s Scope) String() string {
	if s == Global {
		return "global"
	}
	return "local"
}

// ArgumentIndex discriminates buses whose value tuples might otherwise
// collide in width (spec §4.6's "argument_index").
type ArgumentIndex int

const (
	ArgALU ArgumentIndex = iota
	ArgMemory
	ArgByte
	ArgProgram
	ArgSyscall
	ArgField
)

// Interaction is one chip's declared send or receive: a row-indexed tuple
// of values plus a multiplicity, combined into the bus via an affine
// random linear combination (spec §3, §4.6). Multiplicity is always
// non-negative here; IsSend carries the sign a field element cannot.
type Interaction struct {
	Scope         Scope
	ArgumentIndex ArgumentIndex
	// Values are the tuple's field.F entries for one row, already
	// evaluated — e.g. (opcode, a, b, c, shard, nonce) for the ALU bus.
	Values []field.F
	// Multiplicity is the (non-negative) occurrence count — usually One,
	// but e.g. a byte lookup's repeat count (spec §3's "multiplicity:
	// linear combination").
	Multiplicity field.F
	IsSend        bool
}

// Send builds a send interaction: the chip asserts this tuple occurred,
// with mult occurrences (usually One).
func Send(scope Scope, arg ArgumentIndex, values []field.F, mult field.F) Interaction {
	return Interaction{Scope: scope, ArgumentIndex: arg, Values: values, Multiplicity: mult, IsSend: true}
}

// Receive builds a receive interaction: the chip consumes this tuple,
// with mult occurrences.
func Receive(scope Scope, arg ArgumentIndex, values []field.F, mult field.F) Interaction {
	return Interaction{Scope: scope, ArgumentIndex: arg, Values: values, Multiplicity: mult, IsSend: false}
}

// Sender is implemented by every chip that emits bus messages for one row
// of its trace (spec §9's "sends() -> Vec<Interaction>").
type Sender interface {
	Sends() []Interaction
}

// Receiver is implemented by every chip that consumes bus messages (spec
// §9's "receives() -> Vec<Interaction>").
type Receiver interface {
	Receives() []Interaction
}
