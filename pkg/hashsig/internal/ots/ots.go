// Package ots implements the Lamport-style one-time signature (§4.2): key generation,
// signing, and verification over a fixed 32-byte message digest.
//
// Every OTS key is good for exactly one signature. The caller — internal/qsig — is
// responsible for never signing twice with the same key; this package has no way to
// enforce that on its own, since it holds no state between calls.
package ots

import (
	"fmt"
	"sync/atomic"

	"github.com/kemp/hashsig/pkg/hashsig/internal/digest"
	"github.com/kemp/hashsig/pkg/hashsig/internal/prg"
	"github.com/kemp/hashsig/pkg/hashsig/internal/wire"
	"github.com/kemp/hashsig/pkg/hashsig/internal/workerpool"
)

// Bits is the number of bits in a signed digest (n·8 in §3, n = digest.Size).
const Bits = digest.Size * 8

// PrivateKey is the 2×n matrix of secrets S[j][b], j in [0, Bits), b in {0, 1}.
type PrivateKey struct {
	s [Bits][2]digest.Digest
}

// PublicKey is the 2×n matrix of public values P[j][b] = Hash(S[j][b]).
//
// Two public keys are equal iff their matrices are byte-for-byte identical; this
// package never compares keys except through the serialization in internal/wire, which
// is what gives public keys their value-typed equality (§3).
type PublicKey struct {
	p [Bits][2]digest.Digest
}

// Signature is the revealed column: Bits digests, one per bit of the signed message.
type Signature struct {
	values [Bits]digest.Digest
}

// GenerateKeyPair expands seed into a private/public OTS key pair (§4.2).
//
// The private matrix is derived by reading 2·Bits successive 32-byte blocks from the
// seeded PRG and splitting them pairwise; the public matrix is the elementwise hash of
// the private one. The expansion reads the PRG stream sequentially; the hashing fans
// out across the Bits bit positions per §9.
func GenerateKeyPair(seed [prg.SeedSize]byte) (*PublicKey, *PrivateKey) {
	g := prg.New(seed)

	var sk PrivateKey

	for j := 0; j < Bits; j++ {
		copy(sk.s[j][0][:], g.Block(digest.Size))
		copy(sk.s[j][1][:], g.Block(digest.Size))
	}

	var pk PublicKey

	workerpool.Run(Bits, func(j int) {
		pk.p[j][0] = blockHash(sk.s[j][0])
		pk.p[j][1] = blockHash(sk.s[j][1])
	})

	return &pk, &sk
}

// Sign reveals S[j][bit_j] for every bit j of d, most-significant bit of the first byte
// first (§4.2).
func Sign(sk *PrivateKey, d digest.Digest) *Signature {
	var sig Signature

	for j := 0; j < Bits; j++ {
		sig.values[j] = sk.s[j][bitAt(d, j)]
	}

	return &sig
}

// Verify checks that, for every bit j of d, Hash(sig[j]) == P[j][bit_j]. A mismatch at
// any position invalidates the whole signature (§4.2). A Signature always holds exactly
// Bits values; encodings of any other length are rejected by UnmarshalBinary.
func Verify(pk *PublicKey, d digest.Digest, sig *Signature) bool {
	if sig == nil {
		return false
	}

	var failed atomic.Bool

	workerpool.Run(Bits, func(j int) {
		h := blockHash(sig.values[j])
		if h != pk.p[j][bitAt(d, j)] {
			failed.Store(true)
		}
	})

	return !failed.Load()
}

// bitAt returns bit j of d, most-significant bit of the first byte first.
func bitAt(d digest.Digest, j int) int {
	byteIdx := j / 8
	bitIdx := 7 - (j % 8)

	return int((d[byteIdx] >> bitIdx) & 1)
}

func blockHash(b digest.Digest) digest.Digest {
	return digest.Hash("hashsig.v1.ots-block", b[:])
}

// Values returns the public key's matrix in row-major (j, b) order, for canonical
// serialization (internal/wire).
func (pk *PublicKey) Values() [Bits][2]digest.Digest {
	return pk.p
}

// PublicKeyFromValues reconstructs a PublicKey from a decoded matrix.
func PublicKeyFromValues(p [Bits][2]digest.Digest) *PublicKey {
	return &PublicKey{p: p}
}

// Values returns the signature's revealed digests in order, for canonical
// serialization.
func (sig *Signature) Values() [Bits]digest.Digest {
	return sig.values
}

// SignatureFromValues reconstructs a Signature from decoded values.
func SignatureFromValues(values [Bits]digest.Digest) *Signature {
	return &Signature{values: values}
}

// MarshalBinary encodes the public key as its flattened matrix, row-major (§4.6:
// digests are raw 32-byte values, no length prefix needed since the matrix size is
// fixed by the scheme).
func (pk *PublicKey) MarshalBinary() ([]byte, error) {
	w := wire.NewWriter()

	for j := 0; j < Bits; j++ {
		w.Digest(pk.p[j][0])
		w.Digest(pk.p[j][1])
	}

	return w.Bytes(), nil
}

// UnmarshalBinary decodes the result of MarshalBinary.
func (pk *PublicKey) UnmarshalBinary(data []byte) error {
	r := wire.NewReader(data)

	var p [Bits][2]digest.Digest

	for j := 0; j < Bits; j++ {
		d0, err := r.Digest()
		if err != nil {
			return fmt.Errorf("ots: decoding public key: %w", err)
		}

		d1, err := r.Digest()
		if err != nil {
			return fmt.Errorf("ots: decoding public key: %w", err)
		}

		p[j][0], p[j][1] = d0, d1
	}

	if err := r.Done(); err != nil {
		return fmt.Errorf("ots: decoding public key: %w", err)
	}

	pk.p = p

	return nil
}

// MarshalBinary encodes the signature as its Bits digests in order.
func (sig *Signature) MarshalBinary() ([]byte, error) {
	w := wire.NewWriter()

	for j := 0; j < Bits; j++ {
		w.Digest(sig.values[j])
	}

	return w.Bytes(), nil
}

// UnmarshalBinary decodes the result of MarshalBinary. It requires exactly Bits
// digests, per §4.2: "Signature must contain exactly 256 entries."
func (sig *Signature) UnmarshalBinary(data []byte) error {
	r := wire.NewReader(data)

	var values [Bits]digest.Digest

	for j := 0; j < Bits; j++ {
		d, err := r.Digest()
		if err != nil {
			return fmt.Errorf("ots: decoding signature: %w", err)
		}

		values[j] = d
	}

	if err := r.Done(); err != nil {
		return fmt.Errorf("ots: decoding signature: %w", err)
	}

	sig.values = values

	return nil
}
