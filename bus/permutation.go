// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bus

import (
	"errors"

	"github.com/succinctlabs/sp1-sub003/field"
)

// BatchSize is the number of interactions folded into each permutation
// column before the final running-sum column (spec §4.6).
const BatchSize = 4

// ErrNonZeroCumulativeSum is returned by Close when the interaction bus
// does not balance: some send was never matched by a receive, or vice
// versa (spec §8's negative scenario: "tamper with one row ... verifier
// must return NonZeroCumulativeSum").
var ErrNonZeroCumulativeSum = errors.New("bus: non-zero cumulative sum")

// Challenge is the Fiat-Shamir randomness (α, β) the permutation argument
// is built from (spec §4.6).
type Challenge struct {
	Alpha field.EF
	Beta  field.EF
}

// rlc folds argumentIndex and values into a single extension-field
// denominator entry via α + β·argument_index + β²·v1 + ... (spec §4.6).
func rlc(ch Challenge, argIdx ArgumentIndex, values []field.F) field.EF {
	acc := ch.Alpha
	power := ch.Beta
	acc = acc.Add(power.MulBase(field.FromInt64(int64(argIdx))))
	for _, v := range values {
		power = power.Mul(ch.Beta)
		acc = acc.Add(power.MulBase(v))
	}
	return acc
}

// PermutationTrace is the auxiliary extension-field columns one chip's
// interactions generate under one scope: ceil(n/BatchSize) batch columns
// plus a final running-sum column (spec §4.6).
type PermutationTrace struct {
	// BatchColumns[i][row] is the i-th batch's folded entry for that row.
	BatchColumns [][]field.EF
	// RunningSum[row] is the cumulative prefix sum through row.
	RunningSum []field.EF
	// CumulativeSum is RunningSum's final entry — zero rows yield ZeroEF.
	CumulativeSum field.EF
}

// GenerateTrace builds the permutation trace for one chip's interactions
// across numRows rows, given row-major interaction lists (rowInteractions
// has numRows entries, each chip's Sends()+Receives() for that row) and
// Fiat-Shamir challenge ch (spec §4.6).
func GenerateTrace(rowInteractions [][]Interaction, ch Challenge) PermutationTrace {
	numRows := len(rowInteractions)
	if numRows == 0 {
		return PermutationTrace{CumulativeSum: field.ZeroEF}
	}

	maxInteractions := 0
	for _, row := range rowInteractions {
		if len(row) > maxInteractions {
			maxInteractions = len(row)
		}
	}
	numBatches := (maxInteractions + BatchSize - 1) / BatchSize
	if numBatches == 0 {
		numBatches = 1
	}

	batches := make([][]field.EF, numBatches)
	for b := range batches {
		batches[b] = make([]field.EF, numRows)
	}
	running := make([]field.EF, numRows)

	prefix := field.ZeroEF
	for row, interactions := range rowInteractions {
		rowSum := field.ZeroEF
		for b := 0; b < numBatches; b++ {
			batchSum := field.ZeroEF
			start := b * BatchSize
			if start < len(interactions) {
				end := start + BatchSize
				if end > len(interactions) {
					end = len(interactions)
				}
				for _, in := range interactions[start:end] {
					batchSum = batchSum.Add(batchEntry(in, ch))
				}
			}
			batches[b][row] = batchSum
			rowSum = rowSum.Add(batchSum)
		}
		prefix = prefix.Add(rowSum)
		running[row] = prefix
	}

	return PermutationTrace{
		BatchColumns:  batches,
		RunningSum:    running,
		CumulativeSum: prefix,
	}
}

// batchEntry computes ±multiplicity / rlc(values) for a single
// interaction, expressed as product·entry = numerator to avoid division
// in the constraint domain (spec §4.6); the witness-level trace generator
// may invert directly since it is not itself constrained.
func batchEntry(in Interaction, ch Challenge) field.EF {
	denom := rlc(ch, in.ArgumentIndex, in.Values)
	inv := denom.Inv()
	numerator := field.FromBase(in.Multiplicity)
	entry := numerator.Mul(inv)
	if !in.IsSend {
		entry = entry.Neg()
	}
	return entry
}

// Close checks the multiset-equality soundness property across every
// chip's cumulative sums for one scope: the sum of every chip's
// CumulativeSum over that scope must be exactly zero (spec §4.6, §4.9).
func Close(scope Scope, cumulativeSums []field.EF) error {
	total := field.ZeroEF
	for _, cs := range cumulativeSums {
		total = total.Add(cs)
	}
	if !total.IsZero() {
		return ErrNonZeroCumulativeSum
	}
	return nil
}
