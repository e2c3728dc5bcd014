// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package record

// PublicValues is the small fixed-schema tuple committed per shard (spec
// §3). It links shards into a single execution and carries the exit code
// and output digest.
type PublicValues struct {
	PreviousInitAddrBits     [32]uint8
	LastInitAddrBits         [32]uint8
	PreviousFinalizeAddrBits [32]uint8
	LastFinalizeAddrBits     [32]uint8

	ShardIndex          uint32
	ExecutionShardIndex uint32
	StartPC             uint32
	NextPC              uint32
	ExitCode            uint32

	CommittedValueDigest  [8]uint32
	DeferredProofsDigest  [8]uint32
}

// AddrBits little-endian bit-decomposes addr into a 32-entry array, the
// shape the global memory init/finalize chips carry across shard
// boundaries (spec §3, §4.3, §4.7).
func AddrBits(addr uint32) [32]uint8 {
	var out [32]uint8
	for i := 0; i < 32; i++ {
		out[i] = uint8((addr >> uint(i)) & 1)
	}
	return out
}

// AddrFromBits is the inverse of AddrBits.
func AddrFromBits(bits [32]uint8) uint32 {
	var addr uint32
	for i, b := range bits {
		if b&1 == 1 {
			addr |= 1 << uint(i)
		}
	}
	return addr
}

// ContinuesFrom reports whether next is a valid successor shard's public
// values given prev: next_pc of shard N equals start_pc of shard N+1,
// shard indices are consecutive, and next's previous init/finalize
// address bits equal prev's last ones. Digests and exit codes are not
// compared.
func (prev PublicValues) ContinuesFrom(next PublicValues) bool {
	if prev.NextPC != next.StartPC {
		return false
	}
	if prev.ShardIndex+1 != next.ShardIndex {
		return false
	}
	if next.PreviousInitAddrBits != prev.LastInitAddrBits {
		return false
	}
	if next.PreviousFinalizeAddrBits != prev.LastFinalizeAddrBits {
		return false
	}
	return true
}
