// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package precompiles

import "errors"

// ErrUnknownBigIntOp is returned when a BigIntModOp header names an
// opcode this precompile doesn't implement.
var ErrUnknownBigIntOp = errors.New("precompiles: unknown big-int modular opcode")
