// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package precompiles

import (
	"testing"

	circled25519 "github.com/cloudflare/circl/sign/ed25519"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/require"

	"github.com/succinctlabs/sp1-sub003/executor"
)

func newTestExecutor(t *testing.T) *executor.Executor {
	t.Helper()
	prog := executor.NewProgram(0, nil)
	return executor.New(prog)
}

func TestKeccakPermuteRoundTrip(t *testing.T) {
	e := newTestExecutor(t)
	RegisterKeccak(e)

	input := make([]byte, 32)
	for i := range input {
		input[i] = byte(i)
	}
	writeWords(e.Memory, 0x1000, bytesToWordsLE(input))

	_, err := keccakHandler(e, 0x1000, 0x2000)
	require.NoError(t, err)

	digest := readBytes(e.Memory, 0x2000, 32)
	require.Len(t, digest, 32)
	require.NotEqual(t, make([]byte, 32), digest)
	require.Len(t, e.Record.PrecompileEvents[SyscallKeccakPermute], 1)
}

func TestSecp256k1AddMatchesDouble(t *testing.T) {
	e := newTestExecutor(t)
	RegisterSecp256k1(e)

	fx, fy := generatorPoint(t)

	writeAffinePoint(e, 0x1000, fx, fy) // p = G
	writeAffinePoint(e, 0x1100, fx, fy) // q = G

	_, err := secp256k1AddHandler(e, 0x1000, 0x1100)
	require.NoError(t, err)
	addX, addY := readAffinePoint(e, 0x1000)

	writeAffinePoint(e, 0x2000, fx, fy)
	_, err = secp256k1DoubleHandler(e, 0x2000, 0)
	require.NoError(t, err)
	dblX, dblY := readAffinePoint(e, 0x2000)

	require.True(t, addX.Equals(&dblX), "G+G must equal 2G")
	require.True(t, addY.Equals(&dblY), "G+G must equal 2G")
}

func TestSecp256k1DecompressRecoversParity(t *testing.T) {
	e := newTestExecutor(t)
	RegisterSecp256k1(e)

	fx, fy := generatorPoint(t)
	xb := fx.Bytes()
	writeBytes(e.Memory, 0x1000, xb[:])

	parity := uint32(0)
	if fy.IsOdd() {
		parity = 1
	}
	_, err := secp256k1DecompressHandler(e, 0x1000, parity)
	require.NoError(t, err)

	y := readBytes(e.Memory, 0x1020, 32)
	wantY := fy.Bytes()
	require.Equal(t, wantY[:], y)
}

// generatorPoint derives secp256k1's base point G as 1*G, avoiding any
// dependency on internal curve-parameter accessors.
func generatorPoint(t *testing.T) (x, y secp256k1.FieldVal) {
	t.Helper()
	priv := secp256k1.PrivKeyFromBytes([]byte{1})
	pub := priv.PubKey()
	var j secp256k1.JacobianPoint
	pub.AsJacobian(&j)
	j.ToAffine()
	return j.X, j.Y
}

func TestEd25519AddIdentity(t *testing.T) {
	e := newTestExecutor(t)
	RegisterEd25519(e)

	identity := make([]byte, 32)
	identity[0] = 1 // compressed encoding of the neutral element

	writeBytes(e.Memory, 0x1000, identity)
	writeBytes(e.Memory, 0x2000, identity)

	_, err := ed25519AddHandler(e, 0x1000, 0x2000)
	require.NoError(t, err)

	sum := readBytes(e.Memory, 0x1000, 32)
	require.Equal(t, identity, sum)
}

func TestEd25519DecompressRejectsGarbage(t *testing.T) {
	e := newTestExecutor(t)
	RegisterEd25519(e)

	// y = 2 has no matching x on the curve: (y^2-1)/(d*y^2+1) is not a
	// square mod 2^255-19.
	garbage := make([]byte, 32)
	garbage[0] = 2
	writeBytes(e.Memory, 0x1000, garbage)

	_, err := ed25519DecompressHandler(e, 0x1000, 0)
	require.Error(t, err)
}

func TestEd25519VerifyAcceptsGenuineSignature(t *testing.T) {
	e := newTestExecutor(t)
	RegisterEd25519(e)

	pub, priv, err := circled25519.GenerateKey(nil)
	require.NoError(t, err)
	msg := []byte("precompile verification message")
	sig := circled25519.Sign(priv, msg)

	argsPtr := uint32(0x1000)
	writeBytes(e.Memory, argsPtr, pub)
	writeBytes(e.Memory, argsPtr+uint32(circled25519.PublicKeySize), sig)
	writeWords(e.Memory, argsPtr+uint32(circled25519.PublicKeySize+circled25519.SignatureSize), []uint32{uint32(len(msg))})
	writeBytes(e.Memory, argsPtr+uint32(circled25519.PublicKeySize+circled25519.SignatureSize)+4, msg)

	res, err := ed25519VerifyHandler(e, argsPtr, 0)
	require.NoError(t, err)
	require.Equal(t, uint32(1), res.ReturnValue)
}

func TestEd25519VerifyRejectsTamperedMessage(t *testing.T) {
	e := newTestExecutor(t)
	RegisterEd25519(e)

	pub, priv, err := circled25519.GenerateKey(nil)
	require.NoError(t, err)
	msg := []byte("original message")
	sig := circled25519.Sign(priv, msg)
	tampered := []byte("tamperedmessage!")

	argsPtr := uint32(0x1000)
	writeBytes(e.Memory, argsPtr, pub)
	writeBytes(e.Memory, argsPtr+uint32(circled25519.PublicKeySize), sig)
	writeWords(e.Memory, argsPtr+uint32(circled25519.PublicKeySize+circled25519.SignatureSize), []uint32{uint32(len(tampered))})
	writeBytes(e.Memory, argsPtr+uint32(circled25519.PublicKeySize+circled25519.SignatureSize)+4, tampered)

	res, err := ed25519VerifyHandler(e, argsPtr, 0)
	require.NoError(t, err)
	require.Equal(t, uint32(0), res.ReturnValue)
}

func TestFp2MulByOneIsIdentity(t *testing.T) {
	e := newTestExecutor(t)
	RegisterFp2(e)

	one := make([]byte, 48)
	one[47] = 1
	zero := make([]byte, 48)

	writeBytes(e.Memory, 0x1000, one)  // a = (1, 0)
	writeBytes(e.Memory, 0x1030, zero)
	writeBytes(e.Memory, 0x2000, one)  // b = (1, 0)
	writeBytes(e.Memory, 0x2030, zero)

	_, err := fp2MulHandler(e, 0x1000, 0x2000)
	require.NoError(t, err)

	gotA0 := readBytes(e.Memory, 0x1000, 48)
	require.Equal(t, one, gotA0)
}

func TestU256XU2048MulByOne(t *testing.T) {
	e := newTestExecutor(t)
	RegisterBigInt(e)

	one := make([]byte, 32)
	one[31] = 1
	writeBytes(e.Memory, 0x1000, one)

	bWords := make([]uint32, 64)
	bWords[0] = 0xDEADBEEF
	writeWords(e.Memory, 0x2000, bWords)

	_, err := u256xu2048MulHandler(e, 0x1000, 0x2000)
	require.NoError(t, err)

	outWords := readWords(e.Memory, 0x2000, 64)
	require.Equal(t, uint32(0xDEADBEEF), outWords[0])
}

func TestBigIntModOpAdd(t *testing.T) {
	e := newTestExecutor(t)
	RegisterBigInt(e)

	const limbCount = 2 // 64-bit operands
	writeWords(e.Memory, 0x1000, []uint32{0, uint32(limbCount)})

	base := uint32(0x1008)
	writeWords(e.Memory, base, []uint32{5, 0})                     // x = 5
	writeWords(e.Memory, base+uint32(limbCount)*4, []uint32{3, 0}) // y = 3
	writeWords(e.Memory, base+2*uint32(limbCount)*4, []uint32{6, 0}) // m = 6

	_, err := bigIntModOpHandler(e, 0x1000, 0)
	require.NoError(t, err)

	result := readWords(e.Memory, base, limbCount)
	require.Equal(t, uint32(2), result[0]) // (5+3) mod 6 = 2
	require.Equal(t, uint32(0), result[1])
}

func TestBigIntModOpUnknownOpcode(t *testing.T) {
	e := newTestExecutor(t)
	RegisterBigInt(e)

	const limbCount = 1
	writeWords(e.Memory, 0x1000, []uint32{99, uint32(limbCount)})
	base := uint32(0x1008)
	writeWords(e.Memory, base, []uint32{1})
	writeWords(e.Memory, base+uint32(limbCount)*4, []uint32{1})
	writeWords(e.Memory, base+2*uint32(limbCount)*4, []uint32{5})

	_, err := bigIntModOpHandler(e, 0x1000, 0)
	require.ErrorIs(t, err, ErrUnknownBigIntOp)
}
