// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import "github.com/succinctlabs/sp1-sub003/record"

// memTouch tracks the first-ever and last-ever witnessed value of one
// word-aligned address, the bookkeeping the global memory init/finalize
// chips need (spec §4.3's "Global memory init/finalize").
type memTouch struct {
	initValue      uint32
	finalValue     uint32
	finalTimestamp uint32
	finalShard     uint32
}

// touchMemory records addr's access inside the current cycle. A read
// passes its unchanged value; a write passes the value it just stored.
// Accesses inside an unconstrained region are not witnessed (spec §4.2's
// "Unconstrained mode": "The AIR never sees these cycles").
func (e *Executor) touchMemory(addr, value uint32) {
	if e.unconstrained {
		return
	}
	t, ok := e.memTouched[addr]
	if !ok {
		e.memTouched[addr] = &memTouch{
			initValue:      value,
			finalValue:     value,
			finalTimestamp: e.Clk + posMemory,
			finalShard:     e.ShardIndex,
		}
		return
	}
	t.finalValue = value
	t.finalTimestamp = e.Clk + posMemory
	t.finalShard = e.ShardIndex
}

// FinalizeMemory appends an init and a finalize event for every address
// touched during execution to the record's global event buckets, plus one
// init/finalize pair per register (spec §4.3: "Register x0 is explicitly
// initialized to 0 exactly once"). Call once, after Run reaches HALT — the
// touched-address map is not cleared, so a second call appends every
// event again.
func (e *Executor) FinalizeMemory() {
	for addr, t := range e.memTouched {
		e.Record.GlobalMemoryInitializeEvents = append(e.Record.GlobalMemoryInitializeEvents, record.GlobalMemoryInitEvent{
			Address: addr,
			Value:   t.initValue,
			Shard:   0,
		})
		e.Record.GlobalMemoryFinalizeEvents = append(e.Record.GlobalMemoryFinalizeEvents, record.GlobalMemoryFinalizeEvent{
			Address:   addr,
			Value:     t.finalValue,
			Shard:     t.finalShard,
			Timestamp: t.finalTimestamp,
		})
	}
	for idx, val := range e.Registers {
		e.Record.GlobalMemoryInitializeEvents = append(e.Record.GlobalMemoryInitializeEvents, record.GlobalMemoryInitEvent{
			Address: uint32(idx),
			Value:   0,
			Shard:   0,
		})
		e.Record.GlobalMemoryFinalizeEvents = append(e.Record.GlobalMemoryFinalizeEvents, record.GlobalMemoryFinalizeEvent{
			Address:   uint32(idx),
			Value:     val,
			Shard:     e.ShardIndex,
			Timestamp: e.Clk,
		})
	}
}
