// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chips

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/succinctlabs/sp1-sub003/field"
	"github.com/succinctlabs/sp1-sub003/record"
	"github.com/succinctlabs/sp1-sub003/rv32im"
)

func TestAddChipTraceAndInteractions(t *testing.T) {
	rec := record.NewExecutionRecord()
	rec.AddEvents = append(rec.AddEvents, record.AluEvent{Shard: 1, Clk: 4, Opcode: rv32im.ADD, A: 5, B: 2, C: 3})

	chip := NewAdd()
	require.True(t, chip.Included(rec))
	trace := chip.GenerateTrace(rec)
	require.Equal(t, 1, trace.NumRows())
	require.Len(t, trace.Rows[0], baseALUWidth)

	rows := chip.RowInteractions(rec)
	require.Len(t, rows, 1)
	require.Len(t, rows[0], 2) // ALU receive + byte send
	require.False(t, rows[0][0].IsSend)
	require.True(t, rows[0][1].IsSend)
}

func TestAddChipEvalConstraintsRejectsTamperedRow(t *testing.T) {
	rec := record.NewExecutionRecord()
	rec.AddEvents = append(rec.AddEvents, record.AluEvent{Shard: 1, Clk: 4, Opcode: rv32im.ADD, A: 5, B: 2, C: 3})

	chip := NewAdd()
	row := chip.GenerateTrace(rec).Rows[0]
	require.NoError(t, chip.EvalConstraints(row))

	row[colA] = field.FromInt64(999)
	require.Error(t, chip.EvalConstraints(row))
}

func TestDivRemChipEvalConstraintsChecksQuotientRemainder(t *testing.T) {
	rec := record.NewExecutionRecord()
	rec.DivRemEvents = append(rec.DivRemEvents, record.AluEvent{Shard: 1, Opcode: rv32im.DIV, A: 3, B: 10, C: 3})

	chip := NewDivRem()
	row := chip.GenerateTrace(rec).Rows[0]
	require.NoError(t, chip.EvalConstraints(row))

	row[baseALUWidth] = field.FromInt64(4) // wrong quotient
	require.Error(t, chip.EvalConstraints(row))
}

func TestCpuChipEvalConstraintsRejectsNonBooleanSelector(t *testing.T) {
	chip := Cpu{}
	row := make([]field.F, chip.Width())
	row[8] = field.FromInt64(2)
	require.Error(t, chip.EvalConstraints(row))
	row[8] = field.One
	require.NoError(t, chip.EvalConstraints(row))
}

func TestDivRemEdgeCases(t *testing.T) {
	q, r := divRemPair(rv32im.DIV, 10, 0)
	require.EqualValues(t, 0xFFFFFFFF, q)
	require.EqualValues(t, 10, r)

	q, r = divRemPair(rv32im.DIV, 0x80000000, 0xFFFFFFFF)
	require.EqualValues(t, 0x80000000, q)
	require.EqualValues(t, 0, r)
}

func TestMemoryGlobalInitSortedByAddress(t *testing.T) {
	rec := record.NewExecutionRecord()
	rec.GlobalMemoryInitializeEvents = []record.GlobalMemoryInitEvent{
		{Shard: 1, Address: 300, Value: 1},
		{Shard: 1, Address: 100, Value: 2},
		{Shard: 1, Address: 200, Value: 3},
	}
	chip := MemoryGlobalInit{}
	trace := chip.GenerateTrace(rec)
	require.EqualValues(t, 100, trace.Rows[0][1].Uint64())
	require.EqualValues(t, 200, trace.Rows[1][1].Uint64())
	require.EqualValues(t, 300, trace.Rows[2][1].Uint64())
}

func TestByteChipPreprocessedCartesianSize(t *testing.T) {
	chip := Byte{}
	pre := chip.GeneratePreprocessed()
	require.Equal(t, len(allByteKinds)*256*256, pre.NumRows())
}

func TestCpuChipIncludedOnlyWithEvents(t *testing.T) {
	rec := record.NewExecutionRecord()
	chip := Cpu{}
	require.False(t, chip.Included(rec))
	rec.CPUEvents = append(rec.CPUEvents, record.CpuEvent{Shard: 1, Clk: 1, PC: 0})
	require.True(t, chip.Included(rec))
}
