// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package memory implements the executor's sparse, page-allocated address
// space (spec §4.1). Registers x0..x31 occupy the first 32 byte addresses;
// word-aligned memory above that is compressed by dropping the two
// low alignment bits before paging, so register traffic always lands in
// page 0 and never pays a directory lookup.
//
// Grounded on bassosimone-risc32's VM.Memory (pkg/vm/vm.go), generalized
// from a flat fixed-size array into sparse, lazily-allocated pages per
// spec §4.1's rationale (programs touch a small, sparse subset of a
// 2^30-entry address space).
package memory

import "sort"

const (
	// pageBits is log2 of the page length in compressed-index slots.
	pageBits = 14
	pageLen  = 1 << pageBits
	pageMask = pageLen - 1

	// numRegisters is the count of reserved register slots at addresses
	// 0..31; each occupies one byte address but one Word slot.
	numRegisters = 32
)

// Word is four bytes in little-endian order (spec §3).
type Word [4]byte

// ToUint32 interprets the word as a little-endian uint32.
func (w Word) ToUint32() uint32 {
	return uint32(w[0]) | uint32(w[1])<<8 | uint32(w[2])<<16 | uint32(w[3])<<24
}

// WordFromUint32 builds a little-endian Word from a uint32.
func WordFromUint32(v uint32) Word {
	return Word{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

// page is a lazily allocated block of pageLen word slots. occupied tracks
// which slots have ever been written, distinguishing "vacant" (never
// written) from "occupied" (present, possibly zero).
type page struct {
	words    [pageLen]Word
	occupied [pageLen]bool
}

// Memory is the sparse, page-allocated word map described in spec §4.1.
// All operations are infallible: accesses to unmapped addresses return
// zero values and false/None, never an error, matching §4.1's failure
// model.
type Memory struct {
	// directory maps page-upper-index -> page, allocated on first touch.
	directory map[uint32]*page
}

// New constructs an empty address space.
func New() *Memory {
	return &Memory{directory: make(map[uint32]*page)}
}

// compress maps a byte address to a compressed slot index: addresses below
// numRegisters map 1:1 (register file, always in page 0); larger addresses
// drop the low two (word-alignment) bits and are offset past the register
// region.
func compress(addr uint32) uint32 {
	if addr < numRegisters {
		return addr
	}
	return numRegisters + (addr-numRegisters)>>2
}

func split(idx uint32) (upper, lower uint32) {
	return idx >> pageBits, idx & pageMask
}

// Get returns the word at addr and whether it was ever written.
func (m *Memory) Get(addr uint32) (Word, bool) {
	idx := compress(addr)
	upper, lower := split(idx)
	p, ok := m.directory[upper]
	if !ok {
		return Word{}, false
	}
	if !p.occupied[lower] {
		return Word{}, false
	}
	return p.words[lower], true
}

// GetMut returns a pointer to the word at addr if occupied, else nil.
// Mutating through the pointer does not mark a fresh allocation; callers
// writing to a previously-vacant address must use Insert instead.
func (m *Memory) GetMut(addr uint32) *Word {
	idx := compress(addr)
	upper, lower := split(idx)
	p, ok := m.directory[upper]
	if !ok || !p.occupied[lower] {
		return nil
	}
	return &p.words[lower]
}

// Insert writes word at addr, allocating its page on first touch, and
// returns the previous word if the slot was already occupied.
func (m *Memory) Insert(addr uint32, word Word) (Word, bool) {
	idx := compress(addr)
	upper, lower := split(idx)
	p, ok := m.directory[upper]
	if !ok {
		p = &page{}
		m.directory[upper] = p
	}
	prev := p.words[lower]
	wasOccupied := p.occupied[lower]
	p.words[lower] = word
	p.occupied[lower] = true
	if wasOccupied {
		return prev, true
	}
	return Word{}, false
}

// Remove clears the word at addr, returning the previous value if any.
func (m *Memory) Remove(addr uint32) (Word, bool) {
	idx := compress(addr)
	upper, lower := split(idx)
	p, ok := m.directory[upper]
	if !ok || !p.occupied[lower] {
		return Word{}, false
	}
	prev := p.words[lower]
	p.occupied[lower] = false
	p.words[lower] = Word{}
	return prev, true
}

// EntryKind distinguishes a Vacant slot from an Occupied one, mirroring
// spec §4.1's Vacant|Occupied entry API.
type EntryKind int

const (
	Vacant EntryKind = iota
	Occupied
)

// Entry reports whether addr is Vacant or Occupied, and its current word
// when Occupied.
func (m *Memory) Entry(addr uint32) (EntryKind, Word) {
	if w, ok := m.Get(addr); ok {
		return Occupied, w
	}
	return Vacant, Word{}
}

// Clear discards every page, leaving the address space empty.
func (m *Memory) Clear() {
	m.directory = make(map[uint32]*page)
}

// KV is a single occupied (addr, word) pair surfaced by Keys.
type KV struct {
	Addr uint32
	Word Word
}

// decompress is the inverse of compress for iteration; it is only exact
// for addresses that were produced by compress (word-aligned, or a
// register index), which is the only shape Keys ever emits.
func decompress(idx uint32) uint32 {
	if idx < numRegisters {
		return idx
	}
	return numRegisters + (idx-numRegisters)<<2
}

// Keys enumerates every occupied (addr, word) pair in ascending compressed
// order, as required by spec §4.1.
func (m *Memory) Keys() []KV {
	uppers := make([]uint32, 0, len(m.directory))
	for u := range m.directory {
		uppers = append(uppers, u)
	}
	sort.Slice(uppers, func(i, j int) bool { return uppers[i] < uppers[j] })

	var out []KV
	for _, u := range uppers {
		p := m.directory[u]
		for lower := uint32(0); lower < pageLen; lower++ {
			if !p.occupied[lower] {
				continue
			}
			idx := u<<pageBits | lower
			out = append(out, KV{Addr: decompress(idx), Word: p.words[lower]})
		}
	}
	return out
}
