// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package byteops implements the byte/range-lookup event vocabulary and
// per-shard multiplicity accumulation that backs the Byte chip (spec §3,
// §4.4's "sends byte-lookup requests").
//
// Grounded on the teacher's gas/operation-selector const-block idiom
// (ecies/contract.go, blake3/contract.go): byte-lookup kinds are a small
// closed enumeration with named constants, and the preprocessed Byte chip
// trace is the full Cartesian table over them (spec §3's ByteLookupEvent).
package byteops

// Kind tags one of the operations the Byte chip can certify.
type Kind int

const (
	U8Range Kind = iota
	U16Range
	And
	Xor
	Or
	LTU
	SLTU
	MSB
)

// Event is a single certified byte/range fact: {shard, kind, b1, b2,
// result_lo, result_hi} per spec §3.
type Event struct {
	Shard    uint32
	Kind     Kind
	B1       uint8
	B2       uint8
	ResultLo uint8
	ResultHi uint8
}

// Compute derives the canonical result pair for an event's operands,
// independent of who requested it — used both to build events during
// execution and to double-check the preprocessed Byte chip table at trace
// generation time.
func Compute(kind Kind, b1, b2 uint8) (lo, hi uint8) {
	switch kind {
	case U8Range:
		return b1, 0
	case U16Range:
		// b1,b2 form a 16-bit value; range check has no "result", lo/hi unused.
		return 0, 0
	case And:
		return b1 & b2, 0
	case Xor:
		return b1 ^ b2, 0
	case Or:
		return b1 | b2, 0
	case LTU:
		if b1 < b2 {
			return 1, 0
		}
		return 0, 0
	case SLTU:
		if int8(b1) < int8(b2) {
			return 1, 0
		}
		return 0, 0
	case MSB:
		return (b1 >> 7) & 1, 0
	default:
		panic("byteops: unknown kind")
	}
}

// Table accumulates per-shard multiplicities for byte-lookup events, the
// "nested map shard -> (ByteLookupEvent -> count)" of spec §3. Multiple
// chunks accumulate into local tables which are then merged (§5's
// add-sharded-events reducer) rather than sharing one mutable map across
// goroutines.
type Table struct {
	counts map[uint32]map[Event]uint32
}

// NewTable constructs an empty multiplicity table.
func NewTable() *Table {
	return &Table{counts: make(map[uint32]map[Event]uint32)}
}

// Add records one occurrence of ev in the given shard.
func (t *Table) Add(shard uint32, ev Event) {
	byShard, ok := t.counts[shard]
	if !ok {
		byShard = make(map[Event]uint32)
		t.counts[shard] = byShard
	}
	byShard[ev]++
}

// AddRange is a convenience for the CPU chip's frequent two-range-check
// pattern (one U8Range per limb).
func (t *Table) AddRange(shard uint32, kind Kind, b1, b2 uint8) {
	lo, hi := Compute(kind, b1, b2)
	t.Add(shard, Event{Shard: shard, Kind: kind, B1: b1, B2: b2, ResultLo: lo, ResultHi: hi})
}

// Multiplicity returns the recorded count for ev in shard, zero if absent.
func (t *Table) Multiplicity(shard uint32, ev Event) uint32 {
	byShard, ok := t.counts[shard]
	if !ok {
		return 0
	}
	return byShard[ev]
}

// Shards returns every shard index with at least one recorded event.
func (t *Table) Shards() []uint32 {
	out := make([]uint32, 0, len(t.counts))
	for s := range t.counts {
		out = append(out, s)
	}
	return out
}

// Events returns every distinct event recorded for shard with its count.
func (t *Table) Events(shard uint32) map[Event]uint32 {
	return t.counts[shard]
}

// SetCount installs an exact multiplicity for ev in shard, overwriting any
// existing count. Used by the shard splitter to carve a single shard's
// slice out of a table accumulated across a whole run, without replaying
// Add one occurrence at a time.
func (t *Table) SetCount(shard uint32, ev Event, count uint32) {
	byShard, ok := t.counts[shard]
	if !ok {
		byShard = make(map[Event]uint32)
		t.counts[shard] = byShard
	}
	byShard[ev] = count
}

// Merge folds other's counts into t, the "add-sharded-events reducer" of
// spec §5: chunk-local tables merge without any cross-thread mutation
// during accumulation.
func (t *Table) Merge(other *Table) {
	for shard, byShard := range other.counts {
		dst, ok := t.counts[shard]
		if !ok {
			dst = make(map[Event]uint32)
			t.counts[shard] = dst
		}
		for ev, c := range byShard {
			dst[ev] += c
		}
	}
}
