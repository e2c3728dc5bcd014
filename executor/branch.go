// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import "github.com/succinctlabs/sp1-sub003/rv32im"

// evaluateBranch compares rs1 and rs2 per op's condition (spec §3's six
// RV32I branches). Signed comparisons reinterpret the operands as int32;
// unsigned ones compare the raw bit patterns.
func (e *Executor) evaluateBranch(op rv32im.Opcode, rs1, rs2 uint32) bool {
	switch op {
	case rv32im.BEQ:
		return rs1 == rs2
	case rv32im.BNE:
		return rs1 != rs2
	case rv32im.BLT:
		return int32(rs1) < int32(rs2)
	case rv32im.BGE:
		return int32(rs1) >= int32(rs2)
	case rv32im.BLTU:
		return rs1 < rs2
	case rv32im.BGEU:
		return rs1 >= rs2
	}
	return false
}
