// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package stark

import "github.com/succinctlabs/sp1-sub003/chips"

// BuildVerifyingKey commits the Program chip's preprocessed trace and
// fixes chipSet's order as the chip_ordering every shard proof must
// agree with (spec §6's "vk contains the commitment to the program
// chip's preprocessed trace and the chip ordering").
func BuildVerifyingKey(chipSet []chips.Chip, programChip chips.Program) VerifyingKey {
	ordering := make(map[string]int, len(chipSet))
	for i, c := range chipSet {
		ordering[c.Name()] = i
	}
	pre := programChip.GeneratePreprocessed()
	tree := CommitMatrix(pre.Rows)
	return VerifyingKey{ProgramCommitment: tree.Root(), ChipOrdering: ordering}
}
