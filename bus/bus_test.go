// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bus

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/succinctlabs/sp1-sub003/field"
)

func testChallenge() Challenge {
	return Challenge{
		Alpha: field.NewEF(field.NewF(7), field.NewF(11), field.NewF(13), field.NewF(17)),
		Beta:  field.NewEF(field.NewF(3), field.NewF(5), field.NewF(0), field.NewF(0)),
	}
}

func TestMatchedSendReceiveCancels(t *testing.T) {
	ch := testChallenge()
	values := []field.F{field.NewF(42), field.NewF(7)}

	rows := [][]Interaction{
		{
			Send(Local, ArgALU, values, field.One),
			Receive(Local, ArgALU, values, field.One),
		},
	}

	trace := GenerateTrace(rows, ch)
	require.True(t, trace.CumulativeSum.IsZero())
}

func TestUnmatchedSendLeavesNonZeroSum(t *testing.T) {
	ch := testChallenge()
	values := []field.F{field.NewF(1), field.NewF(2)}

	rows := [][]Interaction{
		{Send(Local, ArgALU, values, field.One)},
	}

	trace := GenerateTrace(rows, ch)
	require.False(t, trace.CumulativeSum.IsZero())
}

func TestCloseAcrossChips(t *testing.T) {
	ch := testChallenge()
	values := []field.F{field.NewF(9)}

	sendTrace := GenerateTrace([][]Interaction{{Send(Global, ArgMemory, values, field.One)}}, ch)
	recvTrace := GenerateTrace([][]Interaction{{Receive(Global, ArgMemory, values, field.One)}}, ch)

	err := Close(Global, []field.EF{sendTrace.CumulativeSum, recvTrace.CumulativeSum})
	require.NoError(t, err)
}

func TestCloseDetectsTamperedRow(t *testing.T) {
	ch := testChallenge()
	sent := []field.F{field.NewF(9)}
	tampered := []field.F{field.NewF(10)} // verifier side disagrees with prover side

	sendTrace := GenerateTrace([][]Interaction{{Send(Global, ArgMemory, sent, field.One)}}, ch)
	recvTrace := GenerateTrace([][]Interaction{{Receive(Global, ArgMemory, tampered, field.One)}}, ch)

	err := Close(Global, []field.EF{sendTrace.CumulativeSum, recvTrace.CumulativeSum})
	require.ErrorIs(t, err, ErrNonZeroCumulativeSum)
}

func TestBatchColumnCountMatchesSpec(t *testing.T) {
	ch := testChallenge()
	values := []field.F{field.NewF(1)}
	var interactions []Interaction
	for i := 0; i < 9; i++ {
		interactions = append(interactions, Send(Local, ArgByte, values, field.One))
	}
	trace := GenerateTrace([][]Interaction{interactions}, ch)
	require.Len(t, trace.BatchColumns, 3) // ceil(9/4) = 3
}

func TestEmptyRowsYieldZeroCumulativeSum(t *testing.T) {
	trace := GenerateTrace(nil, testChallenge())
	require.True(t, trace.CumulativeSum.IsZero())
}
