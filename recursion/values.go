// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package recursion

import "github.com/succinctlabs/sp1-sub003/field"

// FeltValue and ExtValue are the concrete values a Felt/Ext register
// holds once a Program is interpreted; aliased rather than wrapped so
// Builder code can pass field.F/field.EF literals directly as immediates.
type FeltValue = field.F
type ExtValue = field.EF
