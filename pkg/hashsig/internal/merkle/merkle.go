// Package merkle implements the Merkle tree (§4.3): building a root from 2^d leaves
// and producing/verifying inclusion paths.
package merkle

import (
	"errors"
	"fmt"

	"github.com/kemp/hashsig/pkg/hashsig/internal/digest"
	"github.com/kemp/hashsig/pkg/hashsig/internal/workerpool"
)

// ErrNotPowerOfTwo is returned when the number of leaves is not 2^d for any d (§4.3:
// "q not a power of two is not permitted").
var ErrNotPowerOfTwo = errors.New("merkle: leaf count must be a power of two")

// Depth returns d such that 2^d == len(leaves), or an error if len(leaves) is not a
// power of two. len(leaves) == 1 is permitted and yields depth 0 (§4.3).
func Depth(numLeaves int) (int, error) {
	if numLeaves <= 0 {
		return 0, ErrNotPowerOfTwo
	}

	d := 0

	for n := numLeaves; n > 1; n >>= 1 {
		if n&1 != 0 {
			return 0, ErrNotPowerOfTwo
		}

		d++
	}

	return d, nil
}

// Root builds the complete tree over leaves, bottom-up, and returns the single root
// digest. Layer ℓ+1 at position k is Hash(layer_ℓ[2k] ‖ layer_ℓ[2k+1]); layer 0 is the
// leaves themselves.
//
// Each layer's hashing fans out across its node positions per §9.
func Root(leaves []digest.Digest) (digest.Digest, error) {
	if _, err := Depth(len(leaves)); err != nil {
		return digest.Digest{}, err
	}

	layer := leaves

	for len(layer) > 1 {
		next := make([]digest.Digest, len(layer)/2)

		workerpool.Run(len(next), func(k int) {
			next[k] = digest.Node(layer[2*k], layer[2*k+1])
		})

		layer = next
	}

	return layer[0], nil
}

// Path returns the inclusion path for leaf index i: the d sibling digests encountered
// walking from the leaf to the root, ordered leaf-to-root (§4.3, §4.4).
func Path(leaves []digest.Digest, i int) ([]digest.Digest, error) {
	d, err := Depth(len(leaves))
	if err != nil {
		return nil, err
	}

	if i < 0 || i >= len(leaves) {
		return nil, fmt.Errorf("merkle: leaf index %d out of range [0, %d)", i, len(leaves))
	}

	path := make([]digest.Digest, 0, d)
	layer := leaves
	idx := i

	for len(layer) > 1 {
		sibling := idx ^ 1
		path = append(path, layer[sibling])

		next := make([]digest.Digest, len(layer)/2)

		workerpool.Run(len(next), func(k int) {
			next[k] = digest.Node(layer[2*k], layer[2*k+1])
		})

		layer = next
		idx /= 2
	}

	return path, nil
}

// Verify reconstructs the root from leaf, its inclusion path, and its index i, and
// compares it against root. The caller is responsible for checking len(path) against
// the expected depth before calling; this function has no depth to check it against on
// its own and simply walks whatever path it's given.
//
// At each level ℓ, bit ℓ of i determines the combination order: 0 means the current
// node is the left child (sibling on the right); 1 means the reverse (§4.3).
func Verify(leaf digest.Digest, path []digest.Digest, i int, root digest.Digest) bool {
	current := leaf
	idx := i

	for _, sibling := range path {
		if idx&1 == 0 {
			current = digest.Node(current, sibling)
		} else {
			current = digest.Node(sibling, current)
		}

		idx >>= 1
	}

	return current == root
}
