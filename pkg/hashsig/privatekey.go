package hashsig

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kemp/hashsig/pkg/hashsig/internal/digest"
	"github.com/kemp/hashsig/pkg/hashsig/internal/filelock"
	"github.com/kemp/hashsig/pkg/hashsig/internal/protocol"
	"github.com/kemp/hashsig/pkg/hashsig/internal/qsig"
)

// PrivateKey is a stateful two-level Merkle signer (§3, §4.5): a master seed, the two
// depths fixed at key generation, and the persisted next_index counter. All in-memory
// state is scoped to this value; the only durable mutable state is the JSON file it was
// opened from.
type PrivateKey struct {
	path     string
	seed     [32]byte
	depthTop int
	depthBot int

	outerPublicKey  *qsig.PublicKey
	outerPrivateKey *qsig.PrivateKey

	nextIndex uint64
}

// keyFile is the on-disk JSON shape (§6): "Private key: JSON object with fields seed
// (hex), depth_top, depth_bot, next_index."
type keyFile struct {
	Seed      string `json:"seed"`
	DepthTop  int    `json:"depth_top"`
	DepthBot  int    `json:"depth_bot"`
	NextIndex uint64 `json:"next_index"`
}

// GenerateKeyPair samples a fresh master seed from the OS entropy pool and builds a new
// two-level signer at the given depths (§4.1: "only the initial seed comes from the OS
// RNG"; §4.5: key generation).
//
// This eagerly builds the entire outer q-indexed key, which means generating 2^depthTop
// OTS key pairs up front; depthTop should be kept small enough that this is practical
// (the scenarios in §8 use depthTop in the single digits).
func GenerateKeyPair(path string, depthTop, depthBot int) (*PrivateKey, error) {
	var seed [32]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return nil, fmt.Errorf("%w: sampling seed: %v", ErrIO, err)
	}

	return newPrivateKey(path, seed, depthTop, depthBot)
}

func newPrivateKey(path string, seed [32]byte, depthTop, depthBot int) (*PrivateKey, error) {
	if depthTop < 0 || depthTop > maxDepth || depthBot < 0 || depthBot > maxDepth {
		return nil, fmt.Errorf("hashsig: depth must be between 0 and %d", maxDepth)
	}

	outerPub, outerSK, err := qsig.GenerateKeyPair(seed, depthTop)
	if err != nil {
		return nil, fmt.Errorf("hashsig: generating outer key: %w", err)
	}

	return &PrivateKey{
		path:            path,
		seed:            seed,
		depthTop:        depthTop,
		depthBot:        depthBot,
		outerPublicKey:  outerPub,
		outerPrivateKey: outerSK,
	}, nil
}

// Open loads a private key previously written by Save from path.
func Open(path string) (*PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading private key: %v", ErrIO, err)
	}

	var kf keyFile
	if err := json.Unmarshal(data, &kf); err != nil {
		return nil, fmt.Errorf("%w: parsing private key: %v", ErrIO, err)
	}

	seedBytes, err := hex.DecodeString(kf.Seed)
	if err != nil || len(seedBytes) != digest.Size {
		return nil, fmt.Errorf("%w: decoding private key seed", ErrIO)
	}

	var seed [32]byte
	copy(seed[:], seedBytes)

	sk, err := newPrivateKey(path, seed, kf.DepthTop, kf.DepthBot)
	if err != nil {
		return nil, err
	}

	sk.nextIndex = kf.NextIndex

	return sk, nil
}

// Save persists the private key to its bound path via the same write-temp,
// fsync, rename sequence used by Sign (§4.5 "State durability").
func (sk *PrivateKey) Save() error {
	return sk.persist()
}

func (sk *PrivateKey) persist() error {
	kf := keyFile{
		Seed:      hex.EncodeToString(sk.seed[:]),
		DepthTop:  sk.depthTop,
		DepthBot:  sk.depthBot,
		NextIndex: sk.nextIndex,
	}

	data, err := json.MarshalIndent(&kf, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding private key: %v", ErrStatePersistenceFailure, err)
	}

	dir := filepath.Dir(sk.path)

	tmp, err := os.CreateTemp(dir, filepath.Base(sk.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", ErrStatePersistenceFailure, err)
	}

	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)

		return fmt.Errorf("%w: writing temp file: %v", ErrStatePersistenceFailure, err)
	}

	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)

		return fmt.Errorf("%w: syncing temp file: %v", ErrStatePersistenceFailure, err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)

		return fmt.Errorf("%w: closing temp file: %v", ErrStatePersistenceFailure, err)
	}

	if err := os.Rename(tmpPath, sk.path); err != nil {
		_ = os.Remove(tmpPath)

		return fmt.Errorf("%w: renaming temp file: %v", ErrStatePersistenceFailure, err)
	}

	return nil
}

// PublicKey returns the receiver's public key.
func (sk *PrivateKey) PublicKey() *PublicKey {
	return &PublicKey{Root: sk.outerPublicKey.Root}
}

// deriveInnerSeed computes the seed for the inner q-indexed key bound to outer index i,
// under a domain label distinct from qsig's own child-seed derivation so the two can
// never collide even though both ultimately derive from the same master seed (§4.5:
// "derived deterministically from the master seed indexed by the outer leaf position").
func deriveInnerSeed(masterSeed [32]byte, index uint64) [32]byte {
	h := digest.Hash("hashsig.v1.inner-key-seed", masterSeed[:], protocol.LittleEndianU64(index))
	return [32]byte(h)
}

// innerLeafIndex computes the pseudo-random inner leaf selection of §4.5 step 4:
// inner_index = int(Hash(outer_index ‖ d_msg)) mod 2^depthBot.
func innerLeafIndex(outerIndex uint64, dMsg digest.Digest, depthBot int) int {
	h := digest.Hash("hashsig.v1.inner-leaf-index", protocol.LittleEndianU64(outerIndex), dMsg.Bytes())

	var n uint64
	for i := 0; i < 8; i++ {
		n = (n << 8) | uint64(h[i])
	}

	return int(n % (1 << uint(depthBot)))
}

// innerBindingDigest computes the digest the outer OTS key signs to authenticate an
// inner public key: Hash(serialize(inner_public_key)) (§4.5 step 5).
func innerBindingDigest(innerPub *qsig.PublicKey) (digest.Digest, error) {
	b, err := innerPub.MarshalBinary()
	if err != nil {
		return digest.Digest{}, err
	}

	return digest.Hash("hashsig.v1.inner-public-key", b), nil
}

// Sign produces a two-level Merkle signature on m (§4.5).
//
// It acquires an exclusive lock on the private-key file for the duration of the call,
// persists the incremented next_index before doing any of the signing work, and
// releases the lock on every exit path. A failed lock acquisition returns
// ErrLockContention; an exhausted leaf budget returns ErrLeafBudgetExhausted without
// mutating next_index; a failed persist returns ErrStatePersistenceFailure without
// incrementing the in-memory counter either, so a subsequent call can retry at the same
// index.
func (sk *PrivateKey) Sign(m []byte) (*Signature, error) {
	lock, err := filelock.Acquire(sk.path)
	if err != nil {
		if err == filelock.ErrLocked {
			return nil, ErrLockContention
		}

		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}

	defer func() { _ = lock.Release() }()

	budget := uint64(1) << uint(sk.depthTop)
	if sk.nextIndex >= budget {
		return nil, ErrLeafBudgetExhausted
	}

	index := sk.nextIndex
	sk.nextIndex++

	if err := sk.persist(); err != nil {
		sk.nextIndex = index

		return nil, err
	}

	dMsg := digest.Message(m)

	innerSeed := deriveInnerSeed(sk.seed, index)

	innerPub, innerSK, err := qsig.GenerateKeyPair(innerSeed, sk.depthBot)
	if err != nil {
		return nil, fmt.Errorf("hashsig: generating inner key: %w", err)
	}

	inner := innerLeafIndex(index, dMsg, sk.depthBot)

	innerSig, err := qsig.Sign(innerSK, inner, dMsg)
	if err != nil {
		return nil, fmt.Errorf("hashsig: signing with inner key: %w", err)
	}

	bindingDigest, err := innerBindingDigest(innerPub)
	if err != nil {
		return nil, fmt.Errorf("hashsig: binding inner key: %w", err)
	}

	outerSig, err := qsig.Sign(sk.outerPrivateKey, int(index), bindingDigest)
	if err != nil {
		return nil, fmt.Errorf("hashsig: signing with outer key: %w", err)
	}

	return &Signature{
		TopIndex:       int(index),
		InnerPublicKey: innerPub,
		InnerSignature: innerSig,
		OuterSignature: outerSig,
	}, nil
}
