// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package shard splits one whole-run ExecutionRecord into the per-shard
// records the STARK driver proves independently (spec §4.7).
//
// Every event the executor emits already carries the Shard field the
// executor assigned it at the moment of emission (record.CpuEvent,
// record.AluEvent, ...); CPU events, ALU events, local-memory events, and
// syscall events "stay in their original shard" (spec §4.7) by simply
// grouping on that field. This package's own splitting work is the two
// cases spec §4.7 calls out as independent of the CPU shard boundary:
// precompile events, which spill into an extra shard once a syscall's own
// invocation threshold is exceeded, and global memory init/finalize
// events, which are re-partitioned by address order and carry address-bit
// continuity across the boundary.
//
// Grounded on rcornwell-S370's event package (event queue draining into
// bounded work units) generalized from a device-interrupt queue into a
// threshold-bounded partitioner, and on `original_source`'s shard
// splitting (referenced via spec §4.7) for the continuity invariants it
// must preserve.
package shard

import (
	"sort"

	"github.com/succinctlabs/sp1-sub003/record"
)

// defaultPrecompileThreshold caps how many invocations of a precompile
// syscall with no explicit entry in Config.PrecompileThresholds may land
// in one shard.
const defaultPrecompileThreshold = 512

// Config controls where the precompile and global-memory shard
// boundaries fall (spec §4.7's "per-syscall thresholds ... others share
// a default").
type Config struct {
	// MaxMemoryEventsPerShard bounds how many global init/finalize events
	// one memory shard holds.
	MaxMemoryEventsPerShard int
	// PrecompileThresholds overrides defaultPrecompileThreshold per
	// syscall code (Keccak, SHA-extend, SHA-compress, ... spec §4.7).
	PrecompileThresholds map[uint32]int
}

// DefaultConfig returns thresholds reasonable for a single local proving
// run: small enough to exercise sharding in tests, large enough that a
// short program fits in one shard.
func DefaultConfig() Config {
	return Config{
		MaxMemoryEventsPerShard: 4096,
		PrecompileThresholds:    map[uint32]int{},
	}
}

func (c Config) precompileThreshold(code uint32) int {
	if n, ok := c.PrecompileThresholds[code]; ok {
		return n
	}
	return defaultPrecompileThreshold
}

// Split partitions whole into a sequence of per-shard ExecutionRecords
// and returns them in final shard-index order, renumbering
// PublicValues.ShardIndex/ExecutionShardIndex sequentially so consecutive
// shards satisfy record.PublicValues.ContinuesFrom.
func Split(whole *record.ExecutionRecord, cfg Config) []*record.ExecutionRecord {
	coreShards := groupByOriginalShard(whole)
	lastCoreShard := len(coreShards) - 1
	routePrecompiles(&coreShards, whole.PrecompileEvents, cfg)

	memShards := splitGlobalMemory(whole, cfg)

	out := append(coreShards, memShards...)
	if len(out) == 0 {
		out = []*record.ExecutionRecord{record.NewExecutionRecord()}
	}
	propagatePublicValues(out, whole.PublicValues, lastCoreShard)
	stampShardIndices(out)
	return out
}

// propagatePublicValues carries the digests forward unchanged across every
// shard and places the whole run's exit code on the shard that contains
// the HALT syscall — the last core (CPU-bearing) shard in program order —
// leaving every other shard's exit code at zero (spec §4.7).
func propagatePublicValues(shards []*record.ExecutionRecord, whole record.PublicValues, haltShard int) {
	for i, r := range shards {
		r.PublicValues.CommittedValueDigest = whole.CommittedValueDigest
		r.PublicValues.DeferredProofsDigest = whole.DeferredProofsDigest
		if i == haltShard {
			r.PublicValues.ExitCode = whole.ExitCode
		}
	}
}

// groupByOriginalShard buckets every event that already carries a Shard
// field (CPU, ALU family, local memory, syscalls, byte lookups) by that
// field, preserving the executor's original shard assignment verbatim.
func groupByOriginalShard(whole *record.ExecutionRecord) []*record.ExecutionRecord {
	shardOf := make(map[uint32]*record.ExecutionRecord)
	order := make([]uint32, 0)
	get := func(shard uint32) *record.ExecutionRecord {
		r, ok := shardOf[shard]
		if !ok {
			r = record.NewExecutionRecord()
			shardOf[shard] = r
			order = append(order, shard)
		}
		return r
	}

	for _, ev := range whole.CPUEvents {
		r := get(ev.Shard)
		r.CPUEvents = append(r.CPUEvents, ev)
	}
	addALU := func(events []record.AluEvent, bucket func(*record.ExecutionRecord) *[]record.AluEvent) {
		for _, ev := range events {
			r := get(ev.Shard)
			b := bucket(r)
			*b = append(*b, ev)
		}
	}
	addALU(whole.AddEvents, func(r *record.ExecutionRecord) *[]record.AluEvent { return &r.AddEvents })
	addALU(whole.SubEvents, func(r *record.ExecutionRecord) *[]record.AluEvent { return &r.SubEvents })
	addALU(whole.MulEvents, func(r *record.ExecutionRecord) *[]record.AluEvent { return &r.MulEvents })
	addALU(whole.BitwiseEvents, func(r *record.ExecutionRecord) *[]record.AluEvent { return &r.BitwiseEvents })
	addALU(whole.ShiftLeftEvents, func(r *record.ExecutionRecord) *[]record.AluEvent { return &r.ShiftLeftEvents })
	addALU(whole.ShiftRightEvents, func(r *record.ExecutionRecord) *[]record.AluEvent { return &r.ShiftRightEvents })
	addALU(whole.DivRemEvents, func(r *record.ExecutionRecord) *[]record.AluEvent { return &r.DivRemEvents })
	addALU(whole.LtEvents, func(r *record.ExecutionRecord) *[]record.AluEvent { return &r.LtEvents })

	for _, ev := range whole.MemoryLocalEvents {
		r := get(ev.Shard)
		r.MemoryLocalEvents = append(r.MemoryLocalEvents, ev)
	}
	for _, ev := range whole.SyscallEvents {
		r := get(ev.Shard)
		r.SyscallEvents = append(r.SyscallEvents, ev)
	}

	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	out := make([]*record.ExecutionRecord, 0, len(order))
	for _, shard := range order {
		r := shardOf[shard]
		r.PublicValues.StartPC = firstCPUPC(r)
		r.PublicValues.NextPC = lastCPUNextPC(r)
		if whole.ByteLookups != nil {
			for ev, count := range whole.ByteLookups.Events(shard) {
				r.ByteLookups.SetCount(shard, ev, count)
			}
		}
		out = append(out, r)
	}
	return out
}

func firstCPUPC(r *record.ExecutionRecord) uint32 {
	if len(r.CPUEvents) == 0 {
		return 0
	}
	return r.CPUEvents[0].PC
}

func lastCPUNextPC(r *record.ExecutionRecord) uint32 {
	if len(r.CPUEvents) == 0 {
		return 0
	}
	return r.CPUEvents[len(r.CPUEvents)-1].NextPC
}

// routePrecompiles assigns each precompile invocation to the shard its
// own Shard field names, then, within a syscall code, spills overflow
// past cfg's per-syscall threshold into a fresh shard appended to
// *shards (spec §4.7: "Precompile events split at per-syscall
// thresholds").
func routePrecompiles(shards *[]*record.ExecutionRecord, events map[uint32][]record.PrecompileEvent, cfg Config) {
	shardIndexOf := make(map[uint32]int, len(*shards))
	for i, r := range *shards {
		if len(r.CPUEvents) > 0 {
			shardIndexOf[r.CPUEvents[0].Shard] = i
		}
	}

	for code, evs := range events {
		threshold := cfg.precompileThreshold(code)
		perShardCount := make(map[int]int)
		spillOf := make(map[int]int)
		for _, ev := range evs {
			idx, ok := shardIndexOf[ev.Shard]
			if !ok {
				*shards = append(*shards, record.NewExecutionRecord())
				idx = len(*shards) - 1
				shardIndexOf[ev.Shard] = idx
			}
			home := idx
			if spill, ok := spillOf[home]; ok {
				idx = spill
			}
			if perShardCount[idx] >= threshold {
				*shards = append(*shards, record.NewExecutionRecord())
				idx = len(*shards) - 1
				spillOf[home] = idx
			}
			perShardCount[idx]++
			(*shards)[idx].PrecompileEvents[code] = append((*shards)[idx].PrecompileEvents[code], ev)
		}
	}
}

// splitGlobalMemory partitions the global init/finalize events into
// address-sorted chunks of at most cfg.MaxMemoryEventsPerShard, carrying
// the address-bit continuity fields spec §4.7 requires.
func splitGlobalMemory(whole *record.ExecutionRecord, cfg Config) []*record.ExecutionRecord {
	init := append([]record.GlobalMemoryInitEvent(nil), whole.GlobalMemoryInitializeEvents...)
	sort.Slice(init, func(i, j int) bool { return init[i].Address < init[j].Address })
	final := append([]record.GlobalMemoryFinalizeEvent(nil), whole.GlobalMemoryFinalizeEvents...)
	sort.Slice(final, func(i, j int) bool { return final[i].Address < final[j].Address })

	if len(init) == 0 && len(final) == 0 {
		return nil
	}

	threshold := cfg.MaxMemoryEventsPerShard
	if threshold <= 0 {
		threshold = len(init) + len(final) + 1
	}

	n := maxInt(chunkCount(len(init), threshold), chunkCount(len(final), threshold))
	out := make([]*record.ExecutionRecord, n)
	for i := range out {
		out[i] = record.NewExecutionRecord()
	}

	var prevInitBits, prevFinalBits [32]uint8
	for i := 0; i < n; i++ {
		start, end := i*threshold, minInt((i+1)*threshold, len(init))
		if start < len(init) {
			out[i].GlobalMemoryInitializeEvents = append(out[i].GlobalMemoryInitializeEvents, init[start:end]...)
		}
		out[i].PublicValues.PreviousInitAddrBits = prevInitBits
		if end > start {
			prevInitBits = record.AddrBits(init[end-1].Address)
		}
		out[i].PublicValues.LastInitAddrBits = prevInitBits

		fStart, fEnd := i*threshold, minInt((i+1)*threshold, len(final))
		if fStart < len(final) {
			out[i].GlobalMemoryFinalizeEvents = append(out[i].GlobalMemoryFinalizeEvents, final[fStart:fEnd]...)
		}
		out[i].PublicValues.PreviousFinalizeAddrBits = prevFinalBits
		if fEnd > fStart {
			prevFinalBits = record.AddrBits(final[fEnd-1].Address)
		}
		out[i].PublicValues.LastFinalizeAddrBits = prevFinalBits
	}
	return out
}

func chunkCount(n, threshold int) int {
	if n == 0 {
		return 0
	}
	return (n + threshold - 1) / threshold
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// stampShardIndices assigns final sequential ShardIndex/ExecutionShardIndex
// values across the whole output sequence, so consecutive shards satisfy
// record.PublicValues.ContinuesFrom.
func stampShardIndices(shards []*record.ExecutionRecord) {
	for i, r := range shards {
		r.PublicValues.ShardIndex = uint32(i)
		r.PublicValues.ExecutionShardIndex = uint32(i)
	}
}
