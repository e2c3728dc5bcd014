// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package recursion

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/succinctlabs/sp1-sub003/chips"
	"github.com/succinctlabs/sp1-sub003/executor"
	"github.com/succinctlabs/sp1-sub003/field"
	"github.com/succinctlabs/sp1-sub003/rv32im"
	"github.com/succinctlabs/sp1-sub003/shard"
	"github.com/succinctlabs/sp1-sub003/stark"
)

func buildAddEdgeProof(t *testing.T) (stark.VerifyingKey, stark.Proof) {
	t.Helper()
	prog := executor.NewProgram(0, []rv32im.Instruction{
		rv32im.NewIType(rv32im.ADDI, 29, 0, 5),
		rv32im.NewIType(rv32im.ADDI, 30, 0, 8),
		rv32im.NewRType(rv32im.ADD, 31, 30, 29),
		rv32im.NewIType(rv32im.ADDI, 5, 0, int32(executor.SyscallHalt)),
		rv32im.NewIType(rv32im.ADDI, 10, 0, 0),
		rv32im.NewSystem(rv32im.ECALL),
	})
	e := executor.New(prog)
	require.ErrorIs(t, e.Run(), executor.ErrExecutionHalted)

	shards := shard.Split(e.Record, shard.DefaultConfig())
	chipSet := chips.All(prog)
	driver := stark.NewDriver(chipSet)
	proof, err := driver.ProveAll(shards)
	require.NoError(t, err)

	vk := stark.BuildVerifyingKey(chipSet, chips.NewProgramChip(prog))
	require.NoError(t, driver.VerifyAll(vk, proof))
	return vk, proof
}

func TestRunEmptyProgramSucceeds(t *testing.T) {
	require.NoError(t, Run(NewBuilder().Build()))
}

func TestAssertEqFFailsOnMismatch(t *testing.T) {
	b := NewBuilder()
	b.AssertEqF(b.ConstF(field.NewF(1)), b.ConstF(field.NewF(2)))
	require.ErrorIs(t, Run(b.Build()), ErrAssertionFailed)
}

func TestBuildClosureProgramBalances(t *testing.T) {
	sums := []field.EF{
		field.NewEF(field.NewF(3), field.Zero, field.Zero, field.Zero),
		field.NewEF(field.NewF(3).Neg(), field.Zero, field.Zero, field.Zero),
	}
	require.NoError(t, Run(BuildClosureProgram(sums)))
}

func TestBuildClosureProgramRejectsImbalance(t *testing.T) {
	sums := []field.EF{field.NewEF(field.NewF(3), field.Zero, field.Zero, field.Zero)}
	require.ErrorIs(t, Run(BuildClosureProgram(sums)), ErrAssertionFailed)
}

func TestCompressAddEdgeProof(t *testing.T) {
	vk, proof := buildAddEdgeProof(t)

	compressed, err := CompressOne(vk, proof)
	require.NoError(t, err)
	require.Equal(t, len(proof.PerShard), compressed.NumShards)
	require.NotEqual(t, CompressedDigest{}, compressed.Digest)
}

func TestCompressTamperedShardFails(t *testing.T) {
	vk, proof := buildAddEdgeProof(t)
	require.NotEmpty(t, proof.PerShard)

	for name := range proof.PerShard[0].CumulativeSumPerChip {
		proof.PerShard[0].CumulativeSumPerChip[name] = proof.PerShard[0].CumulativeSumPerChip[name].Add(field.FromBase(field.One))
		break
	}

	_, err := CompressOne(vk, proof)
	require.ErrorIs(t, err, ErrAssertionFailed)
}
