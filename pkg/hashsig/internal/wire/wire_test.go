package wire

import (
	"testing"

	"github.com/codahale/gubbins/assert"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/kemp/hashsig/pkg/hashsig/internal/digest"
)

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	d1 := digest.Hash("wire-test", []byte("one"))
	d2 := digest.Hash("wire-test", []byte("two"))

	w := NewWriter()
	w.Uint8(7)
	w.Uint32(12345)
	w.Uint64(67890)
	w.Digest(d1)
	w.Digests([]digest.Digest{d1, d2})
	w.BytesField([]byte("hello"))

	r := NewReader(w.Bytes())

	u8, err := r.Uint8()
	assert.Equal(t, "uint8 error", nil, err, cmpopts.EquateErrors())
	assert.Equal(t, "uint8 value", uint8(7), u8, cmpopts.EquateErrors())

	u32, err := r.Uint32()
	assert.Equal(t, "uint32 error", nil, err, cmpopts.EquateErrors())
	assert.Equal(t, "uint32 value", uint32(12345), u32, cmpopts.EquateErrors())

	u64, err := r.Uint64()
	assert.Equal(t, "uint64 error", nil, err, cmpopts.EquateErrors())
	assert.Equal(t, "uint64 value", uint64(67890), u64, cmpopts.EquateErrors())

	gotD1, err := r.Digest()
	assert.Equal(t, "digest error", nil, err, cmpopts.EquateErrors())
	assert.Equal(t, "digest value", d1, gotD1, cmpopts.EquateErrors())

	ds, err := r.Digests(16)
	assert.Equal(t, "digests error", nil, err, cmpopts.EquateErrors())

	if diff := cmp.Diff([]digest.Digest{d1, d2}, ds); diff != "" {
		t.Fatalf("digests mismatch (-want +got):\n%s", diff)
	}

	b, err := r.Bytes(1024)
	assert.Equal(t, "bytes error", nil, err, cmpopts.EquateErrors())
	assert.Equal(t, "bytes value", "hello", string(b), cmpopts.EquateErrors())

	assert.Equal(t, "fully consumed", nil, r.Done(), cmpopts.EquateErrors())
}

func TestShortInput(t *testing.T) {
	t.Parallel()

	r := NewReader([]byte{1, 2, 3})

	_, err := r.Uint32()
	assert.Equal(t, "short uint32", ErrShortInput, err, cmpopts.EquateErrors())
}

func TestTrailingBytes(t *testing.T) {
	t.Parallel()

	w := NewWriter()
	w.Uint8(1)

	r := NewReader(append(w.Bytes(), 0xff))

	_, err := r.Uint8()
	assert.Equal(t, "read error", nil, err, cmpopts.EquateErrors())
	assert.Equal(t, "trailing bytes detected", ErrTrailingBytes, r.Done(), cmpopts.EquateErrors())
}

func TestOversizedCountRejected(t *testing.T) {
	t.Parallel()

	w := NewWriter()
	w.Digests(make([]digest.Digest, 4))

	r := NewReader(w.Bytes())

	_, err := r.Digests(2)
	if err == nil {
		t.Fatal("expected an error for an over-limit digest count")
	}
}
