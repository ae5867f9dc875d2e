// Package qsig implements the q-indexed signature scheme (§4.4): a batch of 2^d OTS
// keys authenticated by a single Merkle root, signed and verified at a caller-chosen
// leaf index.
package qsig

import (
	"errors"
	"fmt"

	"github.com/kemp/hashsig/pkg/hashsig/internal/digest"
	"github.com/kemp/hashsig/pkg/hashsig/internal/merkle"
	"github.com/kemp/hashsig/pkg/hashsig/internal/ots"
	"github.com/kemp/hashsig/pkg/hashsig/internal/prg"
	"github.com/kemp/hashsig/pkg/hashsig/internal/wire"
	"github.com/kemp/hashsig/pkg/hashsig/internal/workerpool"
)

// maxDepth bounds the depth accepted when decoding an untrusted public key, so that a
// malformed value can't force an attempted allocation of an astronomical leaf count.
const maxDepth = 32

// ErrIndexOutOfRange is returned when a sign or verify index falls outside [0, 2^d).
var ErrIndexOutOfRange = errors.New("qsig: index out of range")

// ErrDepthTooLarge is returned when a decoded depth exceeds what this implementation
// will attempt to build a tree for.
var ErrDepthTooLarge = fmt.Errorf("qsig: depth exceeds %d", maxDepth)

// PublicKey is the Merkle root of the batch, together with the depth that tells a
// verifier how many sibling digests to expect in an inclusion path (§3).
type PublicKey struct {
	Root  digest.Digest
	Depth int
}

// PrivateKey is a seed, a depth, and the q derived OTS key pairs and their public-key
// Merkle tree (§3, §4.4).
type PrivateKey struct {
	seed    [prg.SeedSize]byte
	depth   int
	otsKeys []*ots.PrivateKey
	otsPubs []*ots.PublicKey
	leaves  []digest.Digest
}

// DeriveChildSeed computes the i-th child seed of a master seed.
//
// This implements the §4.4 open question's first documented option:
// child_seed[i] = Hash(master_seed ‖ LE64(i)), under a domain-separated label so it
// never collides with any other seed derivation in this module (e.g. the two-level
// scheme's own inner-key seed derivation, internal/qsig's own callers, etc). This
// choice is part of the wire compatibility contract — changing it changes every key
// derived from every seed.
func DeriveChildSeed(masterSeed [prg.SeedSize]byte, index uint64) [prg.SeedSize]byte {
	var b [8]byte
	le64(b[:], index)

	h := digest.Hash("hashsig.v1.qsig-child-seed", masterSeed[:], b[:])

	return [prg.SeedSize]byte(h)
}

func le64(dst []byte, v uint64) {
	for i := 0; i < 8; i++ {
		dst[i] = byte(v >> (8 * i))
	}
}

// GenerateKeyPair expands seed into q = 2^depth OTS key pairs and the Merkle tree over
// the hashes of their serialized public keys (§4.4).
func GenerateKeyPair(seed [prg.SeedSize]byte, depth int) (*PublicKey, *PrivateKey, error) {
	if depth < 0 || depth > maxDepth {
		return nil, nil, ErrDepthTooLarge
	}

	q := 1 << depth

	otsKeys := make([]*ots.PrivateKey, q)
	otsPubs := make([]*ots.PublicKey, q)
	leaves := make([]digest.Digest, q)

	workerpool.Run(q, func(i int) {
		childSeed := DeriveChildSeed(seed, uint64(i))
		pub, priv := ots.GenerateKeyPair(childSeed)

		otsKeys[i] = priv
		otsPubs[i] = pub
		leaves[i] = leafDigest(pub)
	})

	root, err := merkle.Root(leaves)
	if err != nil {
		return nil, nil, fmt.Errorf("qsig: building tree: %w", err)
	}

	sk := &PrivateKey{
		seed:    seed,
		depth:   depth,
		otsKeys: otsKeys,
		otsPubs: otsPubs,
		leaves:  leaves,
	}

	pk := &PublicKey{Root: root, Depth: depth}

	return pk, sk, nil
}

func leafDigest(pub *ots.PublicKey) digest.Digest {
	b, err := pub.MarshalBinary()
	if err != nil {
		panic(err) // ots.PublicKey.MarshalBinary never errors
	}

	return digest.Leaf(b)
}

// PublicKey returns the receiver's public key.
func (sk *PrivateKey) PublicKey() *PublicKey {
	root, err := merkle.Root(sk.leaves)
	if err != nil {
		panic(err) // sk.leaves was already validated at GenerateKeyPair time
	}

	return &PublicKey{Root: root, Depth: sk.depth}
}

// Signature is a q-indexed signature at a specific leaf index (§4.4): the index, the
// full OTS public key at that leaf (necessary because the OTS signature alone only
// reveals half the matrix — see §4.4's derivation note), the OTS signature, and the
// Merkle inclusion path.
type Signature struct {
	Index         int
	OTSPublicKey  *ots.PublicKey
	OTSSignature  *ots.Signature
	InclusionPath []digest.Digest
}

// Sign produces a q-indexed signature on d at leaf index i. The caller is responsible
// for never reusing i with a different message (§4.4); this package has no state with
// which to enforce that.
func Sign(sk *PrivateKey, i int, d digest.Digest) (*Signature, error) {
	q := 1 << sk.depth
	if i < 0 || i >= q {
		return nil, ErrIndexOutOfRange
	}

	path, err := merkle.Path(sk.leaves, i)
	if err != nil {
		return nil, fmt.Errorf("qsig: building inclusion path: %w", err)
	}

	return &Signature{
		Index:         i,
		OTSPublicKey:  sk.otsPubs[i],
		OTSSignature:  ots.Sign(sk.otsKeys[i], d),
		InclusionPath: path,
	}, nil
}

// Verify checks a q-indexed signature against a public key and message digest (§4.4):
// the OTS signature must verify against the carried OTS public key, and that public
// key's leaf digest must be included in pk's root at the signature's index.
func Verify(pk *PublicKey, d digest.Digest, sig *Signature) bool {
	if sig == nil || sig.OTSPublicKey == nil || sig.OTSSignature == nil {
		return false
	}

	if sig.Index < 0 || sig.Index >= (1<<pk.Depth) {
		return false
	}

	if len(sig.InclusionPath) != pk.Depth {
		return false
	}

	if !ots.Verify(sig.OTSPublicKey, d, sig.OTSSignature) {
		return false
	}

	leaf := leafDigest(sig.OTSPublicKey)

	return merkle.Verify(leaf, sig.InclusionPath, sig.Index, pk.Root)
}

// MarshalBinary encodes the public key as its root digest followed by its depth.
func (pk *PublicKey) MarshalBinary() ([]byte, error) {
	w := wire.NewWriter()
	w.Digest(pk.Root)
	w.Uint8(uint8(pk.Depth))

	return w.Bytes(), nil
}

// UnmarshalBinary decodes the result of MarshalBinary.
func (pk *PublicKey) UnmarshalBinary(data []byte) error {
	r := wire.NewReader(data)

	root, err := r.Digest()
	if err != nil {
		return fmt.Errorf("qsig: decoding public key: %w", err)
	}

	depth, err := r.Uint8()
	if err != nil {
		return fmt.Errorf("qsig: decoding public key: %w", err)
	}

	if depth > maxDepth {
		return ErrDepthTooLarge
	}

	if err := r.Done(); err != nil {
		return fmt.Errorf("qsig: decoding public key: %w", err)
	}

	pk.Root = root
	pk.Depth = int(depth)

	return nil
}

// MarshalBinary encodes the signature: index, OTS public key, OTS signature, and
// inclusion path, each length-delimited per §4.6.
func (sig *Signature) MarshalBinary() ([]byte, error) {
	pkBytes, err := sig.OTSPublicKey.MarshalBinary()
	if err != nil {
		return nil, err
	}

	sigBytes, err := sig.OTSSignature.MarshalBinary()
	if err != nil {
		return nil, err
	}

	w := wire.NewWriter()
	w.Uint32(uint32(sig.Index))
	w.BytesField(pkBytes)
	w.BytesField(sigBytes)
	w.Digests(sig.InclusionPath)

	return w.Bytes(), nil
}

// maxOTSFieldSize generously bounds a single OTS public key or signature encoding
// (Bits*2*32 or Bits*32 bytes) to guard decode against a corrupt oversized length
// field.
const maxOTSFieldSize = ots.Bits * 2 * digest.Size

// UnmarshalBinary decodes the result of MarshalBinary.
func (sig *Signature) UnmarshalBinary(data []byte) error {
	r := wire.NewReader(data)

	index, err := r.Uint32()
	if err != nil {
		return fmt.Errorf("qsig: decoding signature: %w", err)
	}

	pkBytes, err := r.Bytes(maxOTSFieldSize)
	if err != nil {
		return fmt.Errorf("qsig: decoding signature: %w", err)
	}

	var pub ots.PublicKey
	if err := pub.UnmarshalBinary(pkBytes); err != nil {
		return fmt.Errorf("qsig: decoding signature: %w", err)
	}

	sigBytes, err := r.Bytes(maxOTSFieldSize)
	if err != nil {
		return fmt.Errorf("qsig: decoding signature: %w", err)
	}

	var otsSig ots.Signature
	if err := otsSig.UnmarshalBinary(sigBytes); err != nil {
		return fmt.Errorf("qsig: decoding signature: %w", err)
	}

	path, err := r.Digests(maxDepth)
	if err != nil {
		return fmt.Errorf("qsig: decoding signature: %w", err)
	}

	if err := r.Done(); err != nil {
		return fmt.Errorf("qsig: decoding signature: %w", err)
	}

	sig.Index = int(index)
	sig.OTSPublicKey = &pub
	sig.OTSSignature = &otsSig
	sig.InclusionPath = path

	return nil
}
