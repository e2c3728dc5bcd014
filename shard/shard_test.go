// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package shard

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/succinctlabs/sp1-sub003/record"
	"github.com/succinctlabs/sp1-sub003/rv32im"
)

func cpuEvent(shard, clk, pc, nextPC uint32) record.CpuEvent {
	return record.CpuEvent{Shard: shard, Clk: clk, PC: pc, NextPC: nextPC}
}

func TestSplitGroupsCPUEventsByOriginalShard(t *testing.T) {
	whole := record.NewExecutionRecord()
	whole.CPUEvents = []record.CpuEvent{
		cpuEvent(0, 1, 0, 4),
		cpuEvent(0, 2, 4, 8),
		cpuEvent(1, 3, 8, 12),
	}
	whole.PublicValues.NextPC = 12

	shards := Split(whole, DefaultConfig())

	require.Len(t, shards, 2)
	require.Len(t, shards[0].CPUEvents, 2)
	require.Len(t, shards[1].CPUEvents, 1)
	require.Equal(t, uint32(0), shards[0].PublicValues.ShardIndex)
	require.Equal(t, uint32(1), shards[1].PublicValues.ShardIndex)
	require.Equal(t, uint32(0), shards[0].PublicValues.StartPC)
	require.Equal(t, uint32(8), shards[0].PublicValues.NextPC)
	require.True(t, shards[0].PublicValues.ContinuesFrom(shards[1].PublicValues))
}

func TestSplitRoutesALUEventsWithCPUEvents(t *testing.T) {
	whole := record.NewExecutionRecord()
	whole.CPUEvents = []record.CpuEvent{cpuEvent(0, 1, 0, 4), cpuEvent(1, 2, 4, 8)}
	whole.AddEvents = []record.AluEvent{
		{Shard: 0, Clk: 1, Opcode: rv32im.ADD, A: 3, B: 1, C: 2},
		{Shard: 1, Clk: 2, Opcode: rv32im.ADD, A: 5, B: 2, C: 3},
	}

	shards := Split(whole, DefaultConfig())

	require.Len(t, shards[0].AddEvents, 1)
	require.Len(t, shards[1].AddEvents, 1)
	require.Equal(t, uint32(3), shards[0].AddEvents[0].A)
	require.Equal(t, uint32(5), shards[1].AddEvents[0].A)
}

func TestSplitExitCodeOnlyOnHaltShard(t *testing.T) {
	whole := record.NewExecutionRecord()
	whole.CPUEvents = []record.CpuEvent{cpuEvent(0, 1, 0, 4), cpuEvent(1, 2, 4, 0)}
	whole.PublicValues.ExitCode = 7
	whole.PublicValues.CommittedValueDigest = [8]uint32{1, 2, 3, 4, 5, 6, 7, 8}

	shards := Split(whole, DefaultConfig())

	require.Equal(t, uint32(0), shards[0].PublicValues.ExitCode)
	require.Equal(t, uint32(7), shards[1].PublicValues.ExitCode)
	require.Equal(t, whole.PublicValues.CommittedValueDigest, shards[0].PublicValues.CommittedValueDigest)
	require.Equal(t, whole.PublicValues.CommittedValueDigest, shards[1].PublicValues.CommittedValueDigest)
}

func TestSplitPrecompileOverflowSpillsToExtraShard(t *testing.T) {
	whole := record.NewExecutionRecord()
	whole.CPUEvents = []record.CpuEvent{cpuEvent(0, 1, 0, 4)}
	const code = uint32(0x00_01_01_09)
	for i := 0; i < 5; i++ {
		whole.PrecompileEvents[code] = append(whole.PrecompileEvents[code], record.PrecompileEvent{Shard: 0, Clk: uint32(i)})
	}

	cfg := DefaultConfig()
	cfg.PrecompileThresholds = map[uint32]int{code: 2}

	shards := Split(whole, cfg)

	total := 0
	overflowShards := 0
	for _, s := range shards {
		n := len(s.PrecompileEvents[code])
		total += n
		if n > 0 {
			overflowShards++
		}
	}
	require.Equal(t, 5, total)
	require.GreaterOrEqual(t, overflowShards, 3) // ceil(5/2) = 3 distinct shards hold this syscall
}

func TestSplitGlobalMemoryCarriesAddressContinuity(t *testing.T) {
	whole := record.NewExecutionRecord()
	whole.CPUEvents = []record.CpuEvent{cpuEvent(0, 1, 0, 4)}
	for addr := uint32(0); addr < 10; addr++ {
		whole.GlobalMemoryInitializeEvents = append(whole.GlobalMemoryInitializeEvents,
			record.GlobalMemoryInitEvent{Address: addr * 4, Value: addr, Shard: 0})
	}

	cfg := DefaultConfig()
	cfg.MaxMemoryEventsPerShard = 4

	shards := Split(whole, cfg)

	var memShards []*record.ExecutionRecord
	for _, s := range shards {
		if len(s.GlobalMemoryInitializeEvents) > 0 {
			memShards = append(memShards, s)
		}
	}
	require.Len(t, memShards, 3) // ceil(10/4) = 3

	for i := 1; i < len(memShards); i++ {
		require.Equal(t, memShards[i-1].PublicValues.LastInitAddrBits, memShards[i].PublicValues.PreviousInitAddrBits)
	}
}

func TestSplitEmptyRecordYieldsOneEmptyShard(t *testing.T) {
	whole := record.NewExecutionRecord()
	shards := Split(whole, DefaultConfig())
	require.Len(t, shards, 1)
	require.True(t, shards[0].Empty())
}
