// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package stark

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/succinctlabs/sp1-sub003/chips"
	"github.com/succinctlabs/sp1-sub003/executor"
	"github.com/succinctlabs/sp1-sub003/field"
	"github.com/succinctlabs/sp1-sub003/rv32im"
	"github.com/succinctlabs/sp1-sub003/shard"
)

// buildAddEdgeProgram is spec §8's "ADD edge" end-to-end scenario:
// ADDI x29,x0,5; ADDI x30,x0,8; ADD x31,x30,x29; HALT.
func buildAddEdgeProgram() *executor.Program {
	return executor.NewProgram(0, []rv32im.Instruction{
		rv32im.NewIType(rv32im.ADDI, 29, 0, 5),
		rv32im.NewIType(rv32im.ADDI, 30, 0, 8),
		rv32im.NewRType(rv32im.ADD, 31, 30, 29),
		rv32im.NewIType(rv32im.ADDI, 5, 0, int32(executor.SyscallHalt)),
		rv32im.NewIType(rv32im.ADDI, 10, 0, 0),
		rv32im.NewSystem(rv32im.ECALL),
	})
}

func runAddEdge(t *testing.T) (*executor.Program, *executor.Executor) {
	t.Helper()
	prog := buildAddEdgeProgram()
	e := executor.New(prog)
	require.ErrorIs(t, e.Run(), executor.ErrExecutionHalted)
	require.EqualValues(t, 5, e.Registers[29])
	require.EqualValues(t, 8, e.Registers[30])
	require.EqualValues(t, 13, e.Registers[31])
	return prog, e
}

func TestProveVerifyAddEdge(t *testing.T) {
	prog, e := runAddEdge(t)

	shards := shard.Split(e.Record, shard.DefaultConfig())
	require.NotEmpty(t, shards)

	chipSet := chips.All(prog)
	driver := NewDriver(chipSet)
	proof, err := driver.ProveAll(shards)
	require.NoError(t, err)

	vk := BuildVerifyingKey(chipSet, chips.NewProgramChip(prog))
	require.NoError(t, driver.VerifyAll(vk, proof))
	require.EqualValues(t, 0, proof.PublicValues.ExitCode)
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	prog, e := runAddEdge(t)

	shards := shard.Split(e.Record, shard.DefaultConfig())
	driver := NewDriver(chips.All(prog))
	proof, err := driver.ProveAll(shards)
	require.NoError(t, err)

	data, err := proof.Serialize()
	require.NoError(t, err)

	out, err := Deserialize(data)
	require.NoError(t, err)
	require.Equal(t, proof.PublicValues.ExitCode, out.PublicValues.ExitCode)
	require.Equal(t, len(proof.PerShard), len(out.PerShard))
	require.Equal(t, proof.PerShard[0].MainCommitment, out.PerShard[0].MainCommitment)
}

func TestTamperedCumulativeSumFailsVerification(t *testing.T) {
	prog, e := runAddEdge(t)

	shards := shard.Split(e.Record, shard.DefaultConfig())
	chipSet := chips.All(prog)
	driver := NewDriver(chipSet)
	proof, err := driver.ProveAll(shards)
	require.NoError(t, err)
	require.NotEmpty(t, proof.PerShard)

	sp := proof.PerShard[0]
	for name := range sp.CumulativeSumPerChip {
		sp.CumulativeSumPerChip[name] = sp.CumulativeSumPerChip[name].Add(field.FromBase(field.One))
		break
	}

	vk := BuildVerifyingKey(chipSet, chips.NewProgramChip(prog))
	require.ErrorIs(t, driver.Verify(vk, sp), ErrInvalidShardProof)
}

func TestTamperedOpeningFailsVerification(t *testing.T) {
	prog, e := runAddEdge(t)

	shards := shard.Split(e.Record, shard.DefaultConfig())
	chipSet := chips.All(prog)
	driver := NewDriver(chipSet)
	proof, err := driver.ProveAll(shards)
	require.NoError(t, err)
	require.NotEmpty(t, proof.PerShard)
	require.NotEmpty(t, proof.PerShard[0].OpenedValues)

	sp := proof.PerShard[0]
	sp.OpenedValues[0].MainOpening.Row = append([]field.F(nil), sp.OpenedValues[0].MainOpening.Row...)
	if len(sp.OpenedValues[0].MainOpening.Row) == 0 {
		sp.OpenedValues[0].MainOpening.Row = []field.F{field.NewF(999)}
	} else {
		sp.OpenedValues[0].MainOpening.Row[0] = sp.OpenedValues[0].MainOpening.Row[0].Add(field.One)
	}

	vk := BuildVerifyingKey(chipSet, chips.NewProgramChip(prog))
	require.ErrorIs(t, driver.Verify(vk, sp), ErrInvalidShardProof)
}

// TestDishonestAluEventFailsConstraintCheck witnesses a false a = b + c
// claim directly in the execution record, bypassing the executor, so the
// committed row and its Merkle opening are both internally consistent —
// only the chip's local AIR relation catches the lie.
func TestDishonestAluEventFailsConstraintCheck(t *testing.T) {
	prog, e := runAddEdge(t)

	shards := shard.Split(e.Record, shard.DefaultConfig())
	require.NotEmpty(t, shards)
	for i := range shards[0].AddEvents {
		shards[0].AddEvents[i].A = shards[0].AddEvents[i].A + 1
	}

	chipSet := chips.All(prog)
	driver := NewDriver(chipSet)
	proof, err := driver.ProveAll(shards)
	require.NoError(t, err)

	vk := BuildVerifyingKey(chipSet, chips.NewProgramChip(prog))
	require.ErrorIs(t, driver.Verify(vk, proof.PerShard[0]), ErrInvalidShardProof)
}
