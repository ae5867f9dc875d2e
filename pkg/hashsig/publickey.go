package hashsig

import (
	"encoding"
	"encoding/hex"
	"fmt"

	"github.com/kemp/hashsig/pkg/hashsig/internal/digest"
)

// PublicKey is the root of the outer Merkle tree (§3, §6).
//
// Only the root is transmitted over the wire: the depths used to check a given
// signature are read from the signature itself (the outer inclusion path length gives
// d_top, the carried inner public key's depth gives d_bot) rather than carried
// alongside the root, matching §6: "depths are implied by the scheme version, not
// transmitted per-signature."
type PublicKey struct {
	Root digest.Digest
}

// String returns the public key as 64 lowercase hex characters (§6).
func (pk *PublicKey) String() string {
	return hex.EncodeToString(pk.Root.Bytes())
}

// MarshalText encodes the public key's root as 64 lowercase hex characters.
func (pk *PublicKey) MarshalText() ([]byte, error) {
	return []byte(pk.String()), nil
}

// UnmarshalText decodes a 64-character lowercase hex public key (§6, §7:
// ErrMalformedPublicKey when the hex is the wrong length or invalid).
func (pk *PublicKey) UnmarshalText(text []byte) error {
	if len(text) != 2*digest.Size {
		return fmt.Errorf("%w: expected %d hex characters, got %d", ErrMalformedPublicKey, 2*digest.Size, len(text))
	}

	raw, err := hex.DecodeString(string(text))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPublicKey, err)
	}

	var root digest.Digest
	copy(root[:], raw)

	pk.Root = root

	return nil
}

var (
	_ encoding.TextMarshaler   = &PublicKey{}
	_ encoding.TextUnmarshaler = &PublicKey{}
)
