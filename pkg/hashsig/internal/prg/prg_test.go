package prg

import (
	"testing"

	"github.com/codahale/gubbins/assert"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestSameSeedSameStream(t *testing.T) {
	t.Parallel()

	var seed [SeedSize]byte
	copy(seed[:], []byte("a deterministic seed for testing"))

	a := New(seed).Block(64)
	b := New(seed).Block(64)

	assert.Equal(t, "identical seeds", string(a), string(b), cmpopts.EquateErrors())
}

func TestDifferentSeedsDiverge(t *testing.T) {
	t.Parallel()

	var seedA, seedB [SeedSize]byte
	copy(seedA[:], []byte("seed a"))
	copy(seedB[:], []byte("seed b"))

	a := New(seedA).Block(32)
	b := New(seedB).Block(32)

	if string(a) == string(b) {
		t.Fatal("distinct seeds must not produce the same stream")
	}
}

func TestReadNeverRepeatsWithinAStream(t *testing.T) {
	t.Parallel()

	var seed [SeedSize]byte
	copy(seed[:], []byte("one stream, many reads"))

	g := New(seed)

	first := g.Block(32)
	second := g.Block(32)

	if string(first) == string(second) {
		t.Fatal("successive reads from the same PRG must not repeat")
	}
}

func TestReadSatisfiesIOReader(t *testing.T) {
	t.Parallel()

	var seed [SeedSize]byte

	g := New(seed)

	buf := make([]byte, 16)

	n, err := g.Read(buf)
	assert.Equal(t, "read error", nil, err, cmpopts.EquateErrors())
	assert.Equal(t, "bytes read", len(buf), n, cmpopts.EquateErrors())
}
