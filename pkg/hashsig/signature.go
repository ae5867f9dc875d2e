package hashsig

import (
	"encoding"
	"fmt"

	"github.com/kemp/hashsig/pkg/hashsig/internal/qsig"
	"github.com/kemp/hashsig/pkg/hashsig/internal/wire"
)

// maxDepth bounds the depths this package will attempt to build or verify a tree for,
// guarding decode of an untrusted signature against an oversized depth field.
const maxDepth = 32

// Signature is a two-level Merkle signature (§3, §4.5): the outer leaf index it was
// produced at, the inner q-indexed public key it's bound to, the inner signature on
// the message digest, and the outer signature authenticating the inner public key.
type Signature struct {
	TopIndex       int
	InnerPublicKey *qsig.PublicKey
	InnerSignature *qsig.Signature
	OuterSignature *qsig.Signature
}

// MarshalBinary encodes the signature in the canonical format (§4.6): the top index,
// then each component length-delimited.
func (sig *Signature) MarshalBinary() ([]byte, error) {
	innerPubBytes, err := sig.InnerPublicKey.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("hashsig: encoding signature: %w", err)
	}

	innerSigBytes, err := sig.InnerSignature.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("hashsig: encoding signature: %w", err)
	}

	outerSigBytes, err := sig.OuterSignature.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("hashsig: encoding signature: %w", err)
	}

	w := wire.NewWriter()
	w.Uint32(uint32(sig.TopIndex))
	w.BytesField(innerPubBytes)
	w.BytesField(innerSigBytes)
	w.BytesField(outerSigBytes)

	return w.Bytes(), nil
}

// maxFieldSize generously bounds a single encoded component against a corrupt,
// oversized length field. The largest real component is a q-indexed signature (an OTS
// public key, an OTS signature and at most maxDepth path digests, about 25 KiB), whose
// own decode already bounds each part; this is a second, independent backstop.
const maxFieldSize = 1 << 20

// UnmarshalBinary decodes the result of MarshalBinary (§7: ErrMalformedSignature on any
// failure, including a trailing-bytes mismatch).
func (sig *Signature) UnmarshalBinary(data []byte) error {
	r := wire.NewReader(data)

	topIndex, err := r.Uint32()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedSignature, err)
	}

	innerPubBytes, err := r.Bytes(maxFieldSize)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedSignature, err)
	}

	var innerPub qsig.PublicKey
	if err := innerPub.UnmarshalBinary(innerPubBytes); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedSignature, err)
	}

	innerSigBytes, err := r.Bytes(maxFieldSize)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedSignature, err)
	}

	var innerSig qsig.Signature
	if err := innerSig.UnmarshalBinary(innerSigBytes); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedSignature, err)
	}

	outerSigBytes, err := r.Bytes(maxFieldSize)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedSignature, err)
	}

	var outerSig qsig.Signature
	if err := outerSig.UnmarshalBinary(outerSigBytes); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedSignature, err)
	}

	if err := r.Done(); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedSignature, err)
	}

	if innerPub.Depth > maxDepth {
		return fmt.Errorf("%w: inner depth %d exceeds limit", ErrMalformedSignature, innerPub.Depth)
	}

	sig.TopIndex = int(topIndex)
	sig.InnerPublicKey = &innerPub
	sig.InnerSignature = &innerSig
	sig.OuterSignature = &outerSig

	return nil
}

var (
	_ encoding.BinaryMarshaler   = &Signature{}
	_ encoding.BinaryUnmarshaler = &Signature{}
)
