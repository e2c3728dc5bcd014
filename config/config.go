// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config holds the ambient configuration every prover/verifier
// entry point reads before touching the core: shard thresholds (spec
// §4.7), the executor's cycle limit (spec §4.2), and which precompile
// chips are enabled (spec §4.8).
//
// Grounded on the teacher's precompileconfig.Config shape (Key/Equal/
// Verify, see ringtail/module.go's Config), generalized from one
// per-precompile config object into a single whole-prover config that
// embeds a shard.Config and a precompile enable-set. gopkg.in/yaml.v3 is
// the teacher's transitive dep already present in go.mod.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/succinctlabs/sp1-sub003/shard"
)

// ErrUnknownPrecompile is returned by Verify when EnabledPrecompiles
// names a syscall code no chip in the pack registers.
var ErrUnknownPrecompile = errors.New("config: unknown precompile syscall code")

// Config is the whole-prover configuration: sharding thresholds, the
// executor's cycle limit, and the enabled precompile set.
type Config struct {
	Shard shard.Config `yaml:"shard"`

	// CycleLimit bounds execution length; zero means unbounded (spec
	// §4.2's "Cycle limit. Optional").
	CycleLimit uint64 `yaml:"cycle_limit"`

	// EnabledPrecompiles lists precompile syscall codes. Verify checks each
	// against the known set and Equal compares the list; nothing else reads
	// it, and chips.All always includes every registered precompile chip.
	EnabledPrecompiles []uint32 `yaml:"enabled_precompiles,omitempty"`
}

// Default returns the configuration a single local proving run uses
// absent an override file: shard.DefaultConfig's thresholds, an
// unbounded cycle limit, and every precompile enabled.
func Default() Config {
	return Config{
		Shard:      shard.DefaultConfig(),
		CycleLimit: 0,
	}
}

// Key identifies this configuration's kind, the way the teacher's
// precompileconfig.Config implementations report a fixed module key.
func (Config) Key() string { return "sp1-sub003/prover" }

// Equal reports whether cfg and other describe the same prover
// configuration.
func (c Config) Equal(other Config) bool {
	if c.CycleLimit != other.CycleLimit {
		return false
	}
	if c.Shard.MaxMemoryEventsPerShard != other.Shard.MaxMemoryEventsPerShard {
		return false
	}
	if len(c.EnabledPrecompiles) != len(other.EnabledPrecompiles) {
		return false
	}
	for i, code := range c.EnabledPrecompiles {
		if other.EnabledPrecompiles[i] != code {
			return false
		}
	}
	return mapsEqual(c.Shard.PrecompileThresholds, other.Shard.PrecompileThresholds)
}

func mapsEqual(a, b map[uint32]int) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

// Verify checks internal consistency: MaxMemoryEventsPerShard is
// non-negative, every per-precompile threshold is positive, and every
// entry in EnabledPrecompiles is a key of knownPrecompiles.
// knownPrecompiles is the set the caller's precompile registry actually
// wired (spec §4.8); passing nil skips that check.
func (c Config) Verify(knownPrecompiles map[uint32]string) error {
	if c.Shard.MaxMemoryEventsPerShard < 0 {
		return fmt.Errorf("config: negative MaxMemoryEventsPerShard %d", c.Shard.MaxMemoryEventsPerShard)
	}
	for code, threshold := range c.Shard.PrecompileThresholds {
		if threshold <= 0 {
			return fmt.Errorf("config: non-positive threshold %d for precompile 0x%08x", threshold, code)
		}
	}
	if knownPrecompiles == nil {
		return nil
	}
	for _, code := range c.EnabledPrecompiles {
		if _, ok := knownPrecompiles[code]; !ok {
			return fmt.Errorf("%w: 0x%08x", ErrUnknownPrecompile, code)
		}
	}
	return nil
}

// Load reads a YAML configuration file, falling back to Default's values
// for anything the file omits.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
