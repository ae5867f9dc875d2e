package digest

import (
	"testing"

	"github.com/codahale/gubbins/assert"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestHashIsDeterministic(t *testing.T) {
	t.Parallel()

	a := Hash("digest-test", []byte("hello"))
	b := Hash("digest-test", []byte("hello"))

	assert.Equal(t, "same label and input", a, b, cmpopts.EquateErrors())
}

func TestHashSeparatesLabels(t *testing.T) {
	t.Parallel()

	a := Hash("digest-test-1", []byte("hello"))
	b := Hash("digest-test-2", []byte("hello"))

	if a == b {
		t.Fatal("distinct labels must not collide")
	}
}

func TestHashSeparatesParts(t *testing.T) {
	t.Parallel()

	a := Hash("digest-test", []byte("hello"), []byte("world"))
	b := Hash("digest-test", []byte("helloworld"))

	if a == b {
		t.Fatal("part boundaries must be framed, not simply concatenated")
	}
}

func TestMessageMatchesHashWithReservedLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "message digest", Hash("hashsig.v1.message", []byte("hi")), Message([]byte("hi")), cmpopts.EquateErrors())
}
