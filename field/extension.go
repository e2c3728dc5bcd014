// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package field

import "math/big"

// EF is the degree-4 extension field F[X]/(X^4 - W) used for Fiat-Shamir
// challenges and permutation-argument columns (spec §4.6, §6). W is a
// fixed non-residue; the exact choice never leaks into the AIR layer,
// which only sees ExprEF-shaped values (see bus/permutation.go).
//
// Grounded on the quadratic-extension pattern in the teacher's
// zk/stark.go (ExtensionField / ExtMul / ExtInv), generalized from degree
// 2 to degree 4 per spec §3's "quartic extension EF".
type EF struct {
	c [4]F
}

// nonResidue is W in X^4 - W; 11 has no 4th root mod Modulus for this prime,
// which is what makes the extension irreducible.
var nonResidue = NewF(11)

// ZeroEF is the additive identity of EF.
var ZeroEF = EF{}

// OneEF is the multiplicative identity of EF.
var OneEF = EF{c: [4]F{One, Zero, Zero, Zero}}

// NewEF builds an extension element from its four base-field coordinates.
func NewEF(c0, c1, c2, c3 F) EF {
	return EF{c: [4]F{c0, c1, c2, c3}}
}

// FromBase embeds a base-field element into EF.
func FromBase(a F) EF {
	return EF{c: [4]F{a, Zero, Zero, Zero}}
}

// Coeffs returns the four base-field coordinates, low degree first.
func (a EF) Coeffs() [4]F { return a.c }

// Add returns a+b coefficient-wise.
func (a EF) Add(b EF) EF {
	var r EF
	for i := range r.c {
		r.c[i] = a.c[i].Add(b.c[i])
	}
	return r
}

// Sub returns a-b coefficient-wise.
func (a EF) Sub(b EF) EF {
	var r EF
	for i := range r.c {
		r.c[i] = a.c[i].Sub(b.c[i])
	}
	return r
}

// Neg returns -a.
func (a EF) Neg() EF {
	var r EF
	for i := range r.c {
		r.c[i] = a.c[i].Neg()
	}
	return r
}

// Mul performs schoolbook multiplication in F[X]/(X^4 - W) reducing
// degree-4..6 terms back down with the non-residue.
func (a EF) Mul(b EF) EF {
	var raw [7]F
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			raw[i+j] = raw[i+j].Add(a.c[i].Mul(b.c[j]))
		}
	}
	var r EF
	for i := 0; i < 4; i++ {
		r.c[i] = raw[i]
	}
	for i := 4; i < 7; i++ {
		r.c[i-4] = r.c[i-4].Add(raw[i].Mul(nonResidue))
	}
	return r
}

// MulBase scales an extension element by a base-field scalar.
func (a EF) MulBase(s F) EF {
	var r EF
	for i := range r.c {
		r.c[i] = a.c[i].Mul(s)
	}
	return r
}

// IsZero reports whether every coordinate is zero.
func (a EF) IsZero() bool {
	for _, c := range a.c {
		if !c.IsZero() {
			return false
		}
	}
	return true
}

// Equal reports coordinate-wise equality.
func (a EF) Equal(b EF) bool {
	for i := range a.c {
		if !a.c[i].Equal(b.c[i]) {
			return false
		}
	}
	return true
}

// extOrderMinusTwo is p^4-2, the exponent for EF.Inv via Fermat over the
// extension's multiplicative group. Computed once with math/big since it
// is a 124-bit constant, not a per-element operation; this is bookkeeping,
// not field arithmetic, so it does not belong in the hot Mul/Add path.
var extOrderMinusTwo = new(big.Int).Sub(
	new(big.Int).Exp(big.NewInt(int64(Modulus)), big.NewInt(4), nil),
	big.NewInt(2),
)

// Inv computes the multiplicative inverse by exponentiation to p^4-2,
// the schoolbook approach for an opaque extension whose constraint
// builder must avoid explicit division (spec §4.6 "product · entry =
// numerator").
func (a EF) Inv() EF {
	if a.IsZero() {
		panic("field: inverse of zero extension element")
	}
	result := OneEF
	base := a
	bitLen := extOrderMinusTwo.BitLen()
	for i := 0; i < bitLen; i++ {
		if extOrderMinusTwo.Bit(i) == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
	}
	return result
}
