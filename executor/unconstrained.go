// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import "github.com/succinctlabs/sp1-sub003/memory"

// Savepoint captures everything ENTER_UNCONSTRAINED must be able to
// restore on EXIT_UNCONSTRAINED: registers, PC, clk, and every memory
// word the unconstrained region touched (spec §4.2, §9). Writes made
// inside the region are buffered here and never reach e.Record, since
// the AIR must never see unconstrained cycles.
type Savepoint struct {
	Registers [32]uint32
	PC        uint32
	Clk       uint32

	// touched snapshots the pre-entry value of every address written
	// during the region, so exit can restore it verbatim.
	touched map[uint32]memory.Word
}

// enterUnconstrained begins an unconstrained region: the guest's writes
// from here until exitUnconstrained are buffered and never recorded as
// AIR-visible events.
func (e *Executor) enterUnconstrained() {
	if e.unconstrained {
		// Nested ENTER_UNCONSTRAINED is a guest bug; the source of truth
		// is the executor, so this is fatal per spec §7's "trace-generation
		// errors ... treated as a bug".
		panic("executor: nested unconstrained region")
	}
	e.unconstrained = true
	e.savepoint = &Savepoint{
		Registers: e.Registers,
		PC:        e.PC,
		Clk:       e.Clk,
		touched:   make(map[uint32]memory.Word),
	}
}

// exitUnconstrained restores every register, PC, clk, and touched memory
// word to its value at the matching enterUnconstrained call, and
// discards events produced inside the region.
func (e *Executor) exitUnconstrained() {
	if !e.unconstrained {
		panic("executor: EXIT_UNCONSTRAINED without a matching ENTER_UNCONSTRAINED")
	}
	sp := e.savepoint
	e.Registers = sp.Registers
	e.PC = sp.PC
	e.Clk = sp.Clk
	for addr, word := range sp.touched {
		e.Memory.Insert(addr, word)
	}
	e.unconstrained = false
	e.savepoint = nil
}

// bufferUnconstrainedWrite snapshots addr's pre-write value the first
// time it is touched inside an unconstrained region, so exit can restore
// it. Called before every memory write while e.unconstrained is true.
func (e *Executor) bufferUnconstrainedWrite(addr uint32) {
	if _, already := e.savepoint.touched[addr]; already {
		return
	}
	prev, _ := e.Memory.Get(addr)
	e.savepoint.touched[addr] = prev
}
