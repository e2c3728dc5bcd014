// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package byteops

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeXorAndOr(t *testing.T) {
	lo, _ := Compute(Xor, 0b1010, 0b0110)
	require.Equal(t, uint8(0b1100), lo)

	lo, _ = Compute(And, 0b1010, 0b0110)
	require.Equal(t, uint8(0b0010), lo)

	lo, _ = Compute(Or, 0b1010, 0b0110)
	require.Equal(t, uint8(0b1110), lo)
}

func TestComputeLTUAndSLTU(t *testing.T) {
	lo, _ := Compute(LTU, 3, 5)
	require.Equal(t, uint8(1), lo)

	lo, _ = Compute(LTU, 5, 3)
	require.Equal(t, uint8(0), lo)

	lo, _ = Compute(SLTU, 0xFF, 1) // -1 < 1 as signed bytes
	require.Equal(t, uint8(1), lo)
}

func TestComputeMSB(t *testing.T) {
	lo, _ := Compute(MSB, 0x80, 0)
	require.Equal(t, uint8(1), lo)
	lo, _ = Compute(MSB, 0x7F, 0)
	require.Equal(t, uint8(0), lo)
}

func TestComputeUnknownKindPanics(t *testing.T) {
	require.Panics(t, func() { Compute(Kind(99), 0, 0) })
}

func TestTableAddAndMultiplicity(t *testing.T) {
	tbl := NewTable()
	tbl.AddRange(0, Xor, 1, 2)
	tbl.AddRange(0, Xor, 1, 2)
	tbl.AddRange(0, Xor, 3, 4)

	ev := Event{Shard: 0, Kind: Xor, B1: 1, B2: 2, ResultLo: 3, ResultHi: 0}
	require.Equal(t, uint32(2), tbl.Multiplicity(0, ev))
	require.Equal(t, uint32(0), tbl.Multiplicity(1, ev))
}

func TestTableMerge(t *testing.T) {
	a := NewTable()
	a.AddRange(0, Xor, 1, 2)

	b := NewTable()
	b.AddRange(0, Xor, 1, 2)
	b.AddRange(1, And, 5, 6)

	a.Merge(b)

	ev := Event{Shard: 0, Kind: Xor, B1: 1, B2: 2, ResultLo: 3, ResultHi: 0}
	require.Equal(t, uint32(2), a.Multiplicity(0, ev))
	require.ElementsMatch(t, []uint32{0, 1}, a.Shards())
}
