// Package digest provides the single fixed-width hash primitive (§4.1) used
// throughout the construction: a 32-byte digest over arbitrary byte strings.
//
// Domain separation between the different uses of the hash (OTS block hashing, Merkle
// node hashing, child-seed derivation, inner-leaf selection, and so on) is provided by
// STROBE protocol names rather than by prepending ad hoc prefixes, following the same
// pattern as veil's wots/skid/rng packages.
package digest

import "github.com/kemp/hashsig/pkg/hashsig/internal/protocol"

// Size is the width, in bytes, of a digest (n in §3).
const Size = 32

// Digest is a fixed-width hash output.
type Digest [Size]byte

// Bytes returns d as a byte slice.
func (d Digest) Bytes() []byte {
	return d[:]
}

// Hash computes the digest of the concatenation of parts under the given
// domain-separation label. Distinct labels never collide with each other, regardless of
// input content, because each initializes an independent STROBE protocol.
func Hash(label string, parts ...[]byte) Digest {
	p := protocol.New(label)

	for _, part := range parts {
		p.MetaAD(protocol.LittleEndianU32(len(part)))
		p.AD(part)
	}

	var out Digest

	p.PRF(out[:0], Size)

	return out
}

// Leaf computes the Merkle leaf digest of an already-serialized object (§3: "The leaf
// digest fed to the Merkle tree of a q-indexed scheme is Hash(serialize(ots_public_key))").
func Leaf(serialized []byte) Digest {
	return Hash("hashsig.v1.leaf", serialized)
}

// Node computes an interior Merkle node from its two children (§4.3).
func Node(left, right Digest) Digest {
	return Hash("hashsig.v1.node", left[:], right[:])
}

// Message computes the 32-byte message digest signed by the two-level scheme's inner
// signature (§4.5 step 1: d_msg = Hash(m)).
func Message(m []byte) Digest {
	return Hash("hashsig.v1.message", m)
}
