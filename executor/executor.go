// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import (
	"errors"
	"fmt"

	"github.com/succinctlabs/sp1-sub003/memory"
	"github.com/succinctlabs/sp1-sub003/record"
	"github.com/succinctlabs/sp1-sub003/rv32im"
	"go.uber.org/zap"
)

// sub-cycle timestamp offsets within one clk (spec §4.2 step 3).
const (
	posA      = 0
	posB      = 1
	posC      = 2
	posMemory = 3
)

// ECALL register convention (spec §6): the syscall code lives in x5 (t0),
// its two arguments in x10/x11 (a0/a1), and its result is written back to
// x10 — the same registers a JALR-based ABI call would use.
const (
	regSyscallID = 5
	regA0        = 10
	regA1        = 11
)

// ErrExecutionHalted is returned by Run once the program has HALTed;
// it is not itself a failure (spec §7: "HALT with non-zero exit code is
// NOT an error").
var ErrExecutionHalted = errors.New("executor: program halted")

// ErrCycleLimitExceeded is a fatal execution error (spec §4.2, §7).
var ErrCycleLimitExceeded = errors.New("executor: cycle limit exceeded")

// ErrUnalignedMemoryAccess flags a non-word-aligned effective address
// reaching a context that requires alignment (spec §7). Step also returns
// it, with Addr set to the PC, when the PC names no loaded instruction.
type ErrUnalignedMemoryAccess struct{ Addr uint32 }

func (e *ErrUnalignedMemoryAccess) Error() string {
	return fmt.Sprintf("executor: unaligned memory access at 0x%08x", e.Addr)
}

// Hooks lets a caller observe or drive I/O without the executor needing
// to know about files, sockets, or test harnesses.
type Hooks struct {
	Write func(fd, ptr uint32)
}

// Executor is the single authoritative (pc, registers, memory, clk) the
// sequential core semantics require (spec §5). It is not safe for
// concurrent use — one goroutine owns an Executor end to end.
type Executor struct {
	Program   *Program
	PC        uint32
	Registers [32]uint32
	Memory    *memory.Memory

	Clk                 uint32
	ShardIndex          uint32
	ExecutionShardIndex uint32

	Record *record.ExecutionRecord

	CycleLimit uint64
	cycles     uint64

	Hooks *Hooks

	syscallTable map[uint32]SyscallHandler

	unconstrained bool
	savepoint     *Savepoint

	hintStream []byte
	hintOffset int

	memTouched map[uint32]*memTouch

	// lookupIDSeq mints the LookupID every AluEvent (including a
	// load/store's address-computation ADD event) is stamped with, and
	// the matching CpuEvent.AluLookupID that row's ALU-bus send carries
	// (spec §3/§4.4's "lookup_id").
	lookupIDSeq uint64

	halted   bool
	exitCode uint32

	logger *zap.Logger
}

// Option configures an Executor at construction time.
type Option func(*Executor)

// WithLogger installs a structured logger for cycle-limit warnings.
func WithLogger(l *zap.Logger) Option {
	return func(e *Executor) { e.logger = l }
}

// WithCycleLimit bounds execution length; zero means unbounded.
func WithCycleLimit(limit uint64) Option {
	return func(e *Executor) { e.CycleLimit = limit }
}

// WithStdin seeds the hint/stdin byte stream HINT_LEN/HINT_READ consume.
func WithStdin(data []byte) Option {
	return func(e *Executor) { e.hintStream = data }
}

// WithHooks installs I/O observation hooks.
func WithHooks(h *Hooks) Option {
	return func(e *Executor) { e.Hooks = h }
}

// New constructs an Executor ready to run program from its entry point.
func New(program *Program, opts ...Option) *Executor {
	e := &Executor{
		Program:      program,
		PC:           program.Entry,
		Memory:       memory.New(),
		Clk:          1, // spec §4.5: "the per-shard first row fixes clk = 1"
		Record:       record.NewExecutionRecord(),
		syscallTable: make(map[uint32]SyscallHandler),
		memTouched:   make(map[uint32]*memTouch),
		logger:       zap.NewNop(),
	}
	for addr, val := range program.Memory {
		e.Memory.Insert(addr, memory.WordFromUint32(val))
	}
	e.installCoreSyscalls()
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Halted reports whether the program has executed a HALT syscall.
func (e *Executor) Halted() bool { return e.halted }

// ExitCode returns the guest's exit code; meaningful only once Halted.
func (e *Executor) ExitCode() uint32 { return e.exitCode }

// Run steps the executor until HALT, an error, or the cycle limit.
// Returns ErrExecutionHalted (not a failure) on a clean HALT.
func (e *Executor) Run() error {
	for {
		if err := e.Step(); err != nil {
			return err
		}
		if e.halted {
			e.FinalizeMemory()
			return ErrExecutionHalted
		}
	}
}

// Step executes exactly one instruction: fetch, decode, operand read,
// compute, memory access, writeback, event emission, pc update (spec
// §4.2).
func (e *Executor) Step() error {
	if e.CycleLimit > 0 && e.cycles >= e.CycleLimit {
		e.logger.Warn("cycle limit exceeded", zap.Uint64("limit", e.CycleLimit))
		return ErrCycleLimitExceeded
	}
	e.cycles++

	inst, ok := e.Program.Fetch(e.PC)
	if !ok {
		return &ErrUnalignedMemoryAccess{Addr: e.PC}
	}

	cpuEvent := record.CpuEvent{
		Shard:       e.ShardIndex,
		Clk:         e.Clk,
		PC:          e.PC,
		Instruction: inst,
	}

	opB, opC := e.readOperands(inst)
	cpuEvent.B, cpuEvent.C = opB, opC

	var result uint32
	nextPC := e.PC + 4

	switch {
	case inst.Opcode.IsALU():
		var lookupID uint64
		result, lookupID = e.computeALU(inst.Opcode, opB, opC)
		cpuEvent.AluLookupID = lookupID

	case inst.Opcode.IsLoad():
		v, lookupID, err := e.executeLoad(inst.Opcode, opB, opC)
		if err != nil {
			return err
		}
		result = v
		cpuEvent.AluLookupID = lookupID

	case inst.Opcode.IsStore():
		lookupID, err := e.executeStore(inst.Opcode, opB, opC, e.reg(inst.OpA))
		if err != nil {
			return err
		}
		cpuEvent.MemoryUsed = true
		cpuEvent.AluLookupID = lookupID

	case inst.Opcode.IsBranch():
		rs1 := e.reg(inst.OpA)
		taken := e.evaluateBranch(inst.Opcode, rs1, opB)
		cpuEvent.A, cpuEvent.B, cpuEvent.C = rs1, opB, opC
		cpuEvent.Branching = taken
		if taken {
			nextPC = e.PC + inst.OpC
		}

	case inst.Opcode == rv32im.JAL:
		result = e.PC + 4
		nextPC = e.PC + inst.OpC

	case inst.Opcode == rv32im.JALR:
		result = e.PC + 4
		nextPC = (opB + inst.OpC) &^ 1

	case inst.Opcode == rv32im.LUI:
		result = inst.OpC

	case inst.Opcode == rv32im.AUIPC:
		result = e.PC + inst.OpC

	case inst.Opcode == rv32im.ECALL:
		res, err := e.dispatchSyscall()
		if err != nil {
			return err
		}
		e.writeReg(regA0, res.ReturnValue, posA)
		cpuEvent.A = res.ReturnValue
		if res.Halt {
			e.halted = true
			e.exitCode = res.ExitCode
			e.Record.PublicValues.ExitCode = res.ExitCode
			nextPC = 0 // spec §4.2 step 8: "HALT sets next_pc = 0"
		}

	case inst.Opcode == rv32im.EBREAK, inst.Opcode == rv32im.UNIMP:
		// treated as a no-op trap point; a debugger hook would stop here.

	default:
		return &rv32im.ErrInvalidOpcode{Word: 0}
	}

	if inst.Opcode.IsALU() || inst.Opcode.IsLoad() || inst.Opcode == rv32im.JAL || inst.Opcode == rv32im.JALR ||
		inst.Opcode == rv32im.LUI || inst.Opcode == rv32im.AUIPC {
		e.writeReg(inst.OpA, result, posA)
		cpuEvent.A = result
	}

	cpuEvent.NextPC = nextPC
	if !e.unconstrained {
		e.Record.CPUEvents = append(e.Record.CPUEvents, cpuEvent)
	}

	e.PC = nextPC
	if !e.halted {
		e.Clk += 4
	}
	return nil
}

// readOperands resolves op_b and op_c per spec §4.2 step 3: immediates
// pass through, register operands are read at their sub-cycle timestamp.
func (e *Executor) readOperands(inst rv32im.Instruction) (b, c uint32) {
	if inst.ImmB {
		b = inst.OpB
	} else {
		b = e.readRegAt(uint8(inst.OpB), posB)
	}
	if inst.ImmC {
		c = inst.OpC
	} else {
		c = e.readRegAt(uint8(inst.OpC), posC)
	}
	return b, c
}

func (e *Executor) reg(idx uint8) uint32 {
	return e.Registers[idx]
}

// readRegAt reads register idx. x0 always reads 0. No memory access is
// recorded for the read, and position is not used.
func (e *Executor) readRegAt(idx uint8, position uint32) uint32 {
	if idx == 0 {
		return 0
	}
	return e.Registers[idx]
}

// writeReg writes val into register idx unless it is x0, which silently
// drops writes (spec §3).
func (e *Executor) writeReg(idx uint8, val uint32, position uint32) {
	if idx == 0 {
		return
	}
	e.Registers[idx] = val
}

func (e *Executor) writeMemByte(addr uint32, b byte) {
	aligned := addr &^ 3
	offset := addr & 3
	if e.unconstrained {
		e.bufferUnconstrainedWrite(aligned)
	}
	w, _ := e.Memory.Get(aligned)
	w[offset] = b
	e.Memory.Insert(aligned, w)
	e.touchMemory(aligned, w.ToUint32())
}
