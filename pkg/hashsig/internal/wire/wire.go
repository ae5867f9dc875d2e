// Package wire implements the canonical encoding (§4.6): a deterministic,
// length-delimited binary format for keys and signatures. Every integer is fixed-width
// little endian; every variable-length sequence carries its own count; two distinct
// logical values never produce the same bytes.
//
// Each composite type (internal/ots.PublicKey, internal/qsig.PublicKey, and so on)
// implements its own MarshalBinary/UnmarshalBinary using the primitives here, the same
// way veil's pkg/veil/internal/authenc/header.go builds a structured header out of
// primitive field writes.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/kemp/hashsig/pkg/hashsig/internal/digest"
)

// ErrShortInput is returned when a decode operation runs out of input bytes before
// reaching the expected structure length.
var ErrShortInput = errors.New("wire: short input")

// ErrTrailingBytes is returned when a decode operation consumes all expected fields but
// bytes remain, which would make the encoding non-injective if ignored.
var ErrTrailingBytes = errors.New("wire: unexpected trailing bytes")

// Writer accumulates a canonically-encoded byte string.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the accumulated bytes.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Uint8 appends a single byte.
func (w *Writer) Uint8(v uint8) {
	w.buf = append(w.buf, v)
}

// Uint32 appends a 32-bit little-endian integer.
func (w *Writer) Uint32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// Uint64 appends a 64-bit little-endian integer.
func (w *Writer) Uint64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// Digest appends a raw 32-byte digest with no length prefix, since its length is fixed
// and known to every reader (§4.6: "Digests are 32 raw bytes").
func (w *Writer) Digest(d digest.Digest) {
	w.buf = append(w.buf, d[:]...)
}

// Digests appends a length-prefixed sequence of digests.
func (w *Writer) Digests(ds []digest.Digest) {
	w.Uint32(uint32(len(ds)))

	for _, d := range ds {
		w.Digest(d)
	}
}

// BytesField appends a length-prefixed byte string.
func (w *Writer) BytesField(b []byte) {
	w.Uint32(uint32(len(b)))
	w.buf = append(w.buf, b...)
}

// Reader consumes a canonically-encoded byte string in order.
type Reader struct {
	b   []byte
	off int
}

// NewReader returns a Reader over b.
func NewReader(b []byte) *Reader {
	return &Reader{b: b}
}

// Uint8 reads a single byte.
func (r *Reader) Uint8() (uint8, error) {
	if r.off+1 > len(r.b) {
		return 0, ErrShortInput
	}

	v := r.b[r.off]
	r.off++

	return v, nil
}

// Uint32 reads a 32-bit little-endian integer.
func (r *Reader) Uint32() (uint32, error) {
	if r.off+4 > len(r.b) {
		return 0, ErrShortInput
	}

	v := binary.LittleEndian.Uint32(r.b[r.off : r.off+4])
	r.off += 4

	return v, nil
}

// Uint64 reads a 64-bit little-endian integer.
func (r *Reader) Uint64() (uint64, error) {
	if r.off+8 > len(r.b) {
		return 0, ErrShortInput
	}

	v := binary.LittleEndian.Uint64(r.b[r.off : r.off+8])
	r.off += 8

	return v, nil
}

// Digest reads a raw 32-byte digest.
func (r *Reader) Digest() (digest.Digest, error) {
	var d digest.Digest

	if r.off+digest.Size > len(r.b) {
		return d, ErrShortInput
	}

	copy(d[:], r.b[r.off:r.off+digest.Size])
	r.off += digest.Size

	return d, nil
}

// Digests reads a length-prefixed sequence of digests. maxCount guards against a
// maliciously large count field forcing a huge allocation before the byte length is
// checked.
func (r *Reader) Digests(maxCount uint32) ([]digest.Digest, error) {
	n, err := r.Uint32()
	if err != nil {
		return nil, err
	}

	if n > maxCount {
		return nil, fmt.Errorf("%w: digest count %d exceeds limit %d", ErrShortInput, n, maxCount)
	}

	out := make([]digest.Digest, n)

	for i := range out {
		d, err := r.Digest()
		if err != nil {
			return nil, err
		}

		out[i] = d
	}

	return out, nil
}

// Bytes reads a length-prefixed byte string.
func (r *Reader) Bytes(maxLen uint32) ([]byte, error) {
	n, err := r.Uint32()
	if err != nil {
		return nil, err
	}

	if n > maxLen {
		return nil, fmt.Errorf("%w: length %d exceeds limit %d", ErrShortInput, n, maxLen)
	}

	if r.off+int(n) > len(r.b) {
		return nil, ErrShortInput
	}

	out := make([]byte, n)
	copy(out, r.b[r.off:r.off+int(n)])
	r.off += int(n)

	return out, nil
}

// Done returns ErrTrailingBytes if any input remains unconsumed.
func (r *Reader) Done() error {
	if r.off != len(r.b) {
		return ErrTrailingBytes
	}

	return nil
}
