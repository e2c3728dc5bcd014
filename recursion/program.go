// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package recursion

import (
	"errors"
	"fmt"

	"github.com/succinctlabs/sp1-sub003/field"
)

// Program is an ordered list of Ops over a fixed-size register file,
// spec §9's "recursion program" — the thing a recursion circuit compiles
// to, here interpreted directly rather than lowered to a constraint
// system.
type Program struct {
	Ops     []Op
	NumFelt int
	NumExt  int
}

// ErrAssertionFailed is returned when an interpreted AssertEqF or
// AssertZeroE op does not hold — the recursion program's equivalent of
// stark.ErrInvalidShardProof, since "checking a shard proof" is exactly
// a sequence of such assertions.
var ErrAssertionFailed = errors.New("recursion: assertion failed")

// Run interprets p's ops against a fresh register file and returns
// nil if every assertion held. Trace-generation/proof-generation bugs
// in this package would be programmer errors in how a Program was
// built, not a recoverable Run-time condition, so Run only ever reports
// assertion failures (spec §7 treats verification failures as returned
// errors, not panics).
func Run(p Program) error {
	felts := make([]field.F, p.NumFelt)
	exts := make([]field.EF, p.NumExt)

	for i, op := range p.Ops {
		switch op.Kind {
		case OpConstF:
			felts[op.Dst] = op.ConstF
		case OpConstE:
			exts[op.DstE] = op.ConstE
		case OpAddF:
			felts[op.Dst] = felts[op.LhsF].Add(felts[op.RhsF])
		case OpMulF:
			felts[op.Dst] = felts[op.LhsF].Mul(felts[op.RhsF])
		case OpAddE:
			exts[op.DstE] = exts[op.LhsE].Add(exts[op.RhsE])
		case OpMulE:
			exts[op.DstE] = exts[op.LhsE].Mul(exts[op.RhsE])
		case OpExtFromBase:
			exts[op.DstE] = field.FromBase(felts[op.LhsF])
		case OpAssertEqF:
			if !felts[op.LhsF].Equal(felts[op.RhsF]) {
				return fmt.Errorf("%w: op %d: %s != %s", ErrAssertionFailed, i, felts[op.LhsF], felts[op.RhsF])
			}
		case OpAssertZeroE:
			if !exts[op.LhsE].IsZero() {
				return fmt.Errorf("%w: op %d: extension register not zero", ErrAssertionFailed, i)
			}
		default:
			return fmt.Errorf("recursion: unknown op kind %d at %d", op.Kind, i)
		}
	}
	return nil
}
