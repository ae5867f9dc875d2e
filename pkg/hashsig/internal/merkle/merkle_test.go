package merkle

import (
	"testing"

	"github.com/codahale/gubbins/assert"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/kemp/hashsig/pkg/hashsig/internal/digest"
)

func leaves(n int) []digest.Digest {
	out := make([]digest.Digest, n)
	for i := range out {
		out[i] = digest.Hash("merkle-test-leaf", []byte{byte(i)})
	}

	return out
}

func TestRootAndPathRoundTrip(t *testing.T) {
	t.Parallel()

	ls := leaves(16)

	root, err := Root(ls)
	assert.Equal(t, "build error", nil, err, cmpopts.EquateErrors())

	for i := range ls {
		path, err := Path(ls, i)
		assert.Equal(t, "path error", nil, err, cmpopts.EquateErrors())
		assert.Equal(t, "valid path", true, Verify(ls[i], path, i, root), cmpopts.EquateErrors())
	}
}

func TestSingleLeafTree(t *testing.T) {
	t.Parallel()

	ls := leaves(1)

	root, err := Root(ls)
	assert.Equal(t, "build error", nil, err, cmpopts.EquateErrors())
	assert.Equal(t, "single-leaf root equals leaf", ls[0], root, cmpopts.EquateErrors())

	path, err := Path(ls, 0)
	assert.Equal(t, "path error", nil, err, cmpopts.EquateErrors())
	assert.Equal(t, "empty path", 0, len(path), cmpopts.EquateErrors())
}

func TestNonPowerOfTwoRejected(t *testing.T) {
	t.Parallel()

	_, err := Root(leaves(3))
	assert.Equal(t, "rejects non-power-of-two", ErrNotPowerOfTwo, err, cmpopts.EquateErrors())
}

func TestTamperedPathInvalidates(t *testing.T) {
	t.Parallel()

	ls := leaves(8)
	root, err := Root(ls)
	assert.Equal(t, "build error", nil, err, cmpopts.EquateErrors())

	path, err := Path(ls, 5)
	assert.Equal(t, "path error", nil, err, cmpopts.EquateErrors())

	path[0][0] ^= 0xff

	assert.Equal(t, "tampered path invalidates", false, Verify(ls[5], path, 5, root), cmpopts.EquateErrors())
}

func TestWrongIndexInvalidates(t *testing.T) {
	t.Parallel()

	ls := leaves(8)
	root, err := Root(ls)
	assert.Equal(t, "build error", nil, err, cmpopts.EquateErrors())

	path, err := Path(ls, 5)
	assert.Equal(t, "path error", nil, err, cmpopts.EquateErrors())

	assert.Equal(t, "wrong index invalidates", false, Verify(ls[5], path, 2, root), cmpopts.EquateErrors())
}
