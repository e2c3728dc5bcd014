// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultVerifies(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Verify(nil))
	require.Equal(t, "sp1-sub003/prover", cfg.Key())
}

func TestEqual(t *testing.T) {
	a := Default()
	b := Default()
	require.True(t, a.Equal(b))

	b.CycleLimit = 100
	require.False(t, a.Equal(b))
}

func TestVerifyRejectsUnknownPrecompile(t *testing.T) {
	cfg := Default()
	cfg.EnabledPrecompiles = []uint32{0xdeadbeef}
	known := map[uint32]string{0x00_01_01_09: "Keccak"}
	require.ErrorIs(t, cfg.Verify(known), ErrUnknownPrecompile)
}

func TestVerifyRejectsNonPositiveThreshold(t *testing.T) {
	cfg := Default()
	cfg.Shard.PrecompileThresholds = map[uint32]int{0x1: 0}
	require.Error(t, cfg.Verify(nil))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.CycleLimit = 4096
	cfg.EnabledPrecompiles = []uint32{0x00_01_01_09}

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.True(t, cfg.Equal(loaded))
}
