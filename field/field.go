// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package field implements the prime field the STARK machinery and every
// chip trace is built over, plus its quartic extension used for challenges
// and permutation columns.
//
// The concrete modulus is BabyBear (2^31 - 2^27 + 1), chosen because it is
// the field the teacher's STARK scaffolding (zk/stark.go in the source
// pack) targets with a Goldilocks-shaped API; the AIRs in package chips
// never name it, per spec §6.
package field

import "fmt"

// Modulus is the BabyBear prime p = 2^31 - 2^27 + 1.
const Modulus uint64 = 2013265921

// F is an element of the base field, always kept canonical in [0, Modulus).
type F struct {
	v uint64
}

// Zero is the additive identity.
var Zero = F{0}

// One is the multiplicative identity.
var One = F{1}

// NewF reduces x mod Modulus and returns the corresponding element.
func NewF(x uint64) F {
	return F{x % Modulus}
}

// FromInt64 reduces a signed integer into the field, wrapping negatives.
func FromInt64(x int64) F {
	m := int64(Modulus)
	r := x % m
	if r < 0 {
		r += m
	}
	return F{uint64(r)}
}

// Uint64 returns the canonical representative in [0, Modulus).
func (a F) Uint64() uint64 { return a.v }

// Add returns a+b mod p.
func (a F) Add(b F) F {
	s := a.v + b.v
	if s >= Modulus {
		s -= Modulus
	}
	return F{s}
}

// Sub returns a-b mod p.
func (a F) Sub(b F) F {
	if a.v >= b.v {
		return F{a.v - b.v}
	}
	return F{Modulus - (b.v - a.v)}
}

// Neg returns -a mod p.
func (a F) Neg() F {
	if a.v == 0 {
		return a
	}
	return F{Modulus - a.v}
}

// Mul returns a*b mod p using a 64-bit intermediate.
func (a F) Mul(b F) F {
	product := a.v * b.v // both operands < 2^31, product fits in 62 bits
	return F{product % Modulus}
}

// Exp returns a^e mod p via square-and-multiply.
func (a F) Exp(e uint64) F {
	result := One
	base := a
	for e > 0 {
		if e&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		e >>= 1
	}
	return result
}

// Inv returns the multiplicative inverse of a via Fermat's little theorem.
// Panics on a zero input; callers in the AIR layer must range-check first.
func (a F) Inv() F {
	if a.v == 0 {
		panic("field: inverse of zero")
	}
	return a.Exp(Modulus - 2)
}

// IsZero reports whether a is the additive identity.
func (a F) IsZero() bool { return a.v == 0 }

// Equal reports whether a and b represent the same field element.
func (a F) Equal(b F) bool { return a.v == b.v }

func (a F) String() string { return fmt.Sprintf("%d", a.v) }

// Bits decomposes a into its low n bits (LSB first), as field elements
// constrained to {0,1}.
func Bits(x uint32, n int) []F {
	out := make([]F, n)
	for i := 0; i < n; i++ {
		out[i] = NewF(uint64((x >> uint(i)) & 1))
	}
	return out
}

// FromBits recomposes a little-endian bit vector into a uint32.
func FromBits(bits []F) uint32 {
	var x uint32
	for i, b := range bits {
		if b.Uint64()&1 == 1 {
			x |= 1 << uint(i)
		}
	}
	return x
}

// Word views a little-endian 4-byte RISC-V word as four field elements,
// one per byte — the shape byte-lookup events and memory columns consume.
func WordToLimbs(w uint32) [4]F {
	return [4]F{
		NewF(uint64(w & 0xff)),
		NewF(uint64((w >> 8) & 0xff)),
		NewF(uint64((w >> 16) & 0xff)),
		NewF(uint64((w >> 24) & 0xff)),
	}
}

// LimbsToWord is the inverse of WordToLimbs.
func LimbsToWord(limbs [4]F) uint32 {
	var w uint32
	for i, l := range limbs {
		w |= uint32(l.Uint64()&0xff) << (8 * uint(i))
	}
	return w
}
