// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package field

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFieldAddSubInverse(t *testing.T) {
	a := NewF(12345)
	b := NewF(67890)

	require.True(t, a.Add(b).Sub(b).Equal(a))
	require.True(t, a.Sub(a).IsZero())
	require.True(t, a.Add(a.Neg()).IsZero())
}

func TestFieldMulInv(t *testing.T) {
	tests := []uint64{1, 2, 12345, Modulus - 1}
	for _, v := range tests {
		a := NewF(v)
		require.True(t, a.Mul(a.Inv()).Equal(One), "v=%d", v)
	}
}

func TestFieldInvZeroPanics(t *testing.T) {
	require.Panics(t, func() { Zero.Inv() })
}

func TestFieldExp(t *testing.T) {
	a := NewF(3)
	require.True(t, a.Exp(0).Equal(One))
	require.True(t, a.Exp(1).Equal(a))
	require.True(t, a.Exp(2).Equal(a.Mul(a)))
}

func TestWordLimbRoundTrip(t *testing.T) {
	words := []uint32{0, 1, 0xDEADBEEF, 0xFFFFFFFF, 0x00010203}
	for _, w := range words {
		limbs := WordToLimbs(w)
		require.Equal(t, w, LimbsToWord(limbs))
	}
}

func TestBitsRoundTrip(t *testing.T) {
	for _, x := range []uint32{0, 1, 5, 0xFFFFFFFF, 0x80000000} {
		bits := Bits(x, 32)
		require.Len(t, bits, 32)
		require.Equal(t, x, FromBits(bits))
	}
}

func TestExtensionArithmetic(t *testing.T) {
	a := NewEF(NewF(1), NewF(2), NewF(3), NewF(4))
	b := NewEF(NewF(5), NewF(6), NewF(7), NewF(8))

	require.True(t, a.Add(b).Sub(b).Equal(a))
	require.True(t, a.Mul(b).Mul(a.Mul(b).Inv()).Equal(OneEF))
	require.False(t, a.Equal(b))
}

func TestExtensionFromBase(t *testing.T) {
	a := FromBase(NewF(42))
	b := FromBase(NewF(7))
	sum := FromBase(NewF(49))
	require.True(t, a.Add(b).Equal(sum))
}
