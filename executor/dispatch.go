// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import "github.com/succinctlabs/sp1-sub003/record"

// dispatchSyscall reads the syscall code and its two arguments from the
// x5/x10/x11 convention, looks up the handler, and records a SyscallEvent
// for the SyscallInstr chip (spec §4.2 step 6, §6).
func (e *Executor) dispatchSyscall() (SyscallResult, error) {
	code := e.Registers[regSyscallID]
	arg1 := e.Registers[regA0]
	arg2 := e.Registers[regA1]

	handler, ok := e.syscallTable[code]
	if !ok {
		return SyscallResult{}, ErrUnknownSyscall
	}

	res, err := handler(e, arg1, arg2)
	if err != nil {
		return SyscallResult{}, err
	}

	if !e.unconstrained {
		e.Record.SyscallEvents = append(e.Record.SyscallEvents, record.SyscallEvent{
			Shard:     e.ShardIndex,
			Clk:       e.Clk,
			SyscallID: code,
			Arg1:      arg1,
			Arg2:      arg2,
		})
	}
	return res, nil
}
