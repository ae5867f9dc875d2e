// Package protocol provides a trimmed STROBE wrapper shared by the hash primitive and
// the seeded PRG.
//
// This is adapted from veil's internal/protocol: the encryption/MAC operations
// (SendENC, RecvENC, SendMAC, RecvMAC, SendCLR streaming) are dropped because a
// hash-based signature scheme never encrypts or transmits cleartext through the
// protocol object, it only ever absorbs associated data and squeezes a PRF output. What
// remains is the minimal capability set the rest of this module needs: initialize a
// named protocol, absorb data, key it, and squeeze pseudorandom bytes.
package protocol

import (
	"encoding/binary"

	"github.com/sammyne/strobe"
)

// Protocol is a single named STROBE duplex construction.
type Protocol struct {
	s *strobe.Strobe
}

// New initializes a Protocol with the given domain-separating name at a 256-bit
// security level.
func New(name string) *Protocol {
	s, err := strobe.New(name, strobe.Bit256)
	if err != nil {
		panic(err)
	}

	return &Protocol{s: s}
}

// MetaAD absorbs data as metadata associated data, used for framing (lengths, version
// tags) rather than message content.
func (p *Protocol) MetaAD(data []byte) {
	if err := p.s.AD(data, metaOpts); err != nil {
		panic(err)
	}
}

// AD absorbs data as associated data.
func (p *Protocol) AD(data []byte) {
	if err := p.s.AD(data, defaultOpts); err != nil {
		panic(err)
	}
}

// KEY re-keys the protocol with the given secret.
func (p *Protocol) KEY(key []byte) {
	k := make([]byte, len(key))
	copy(k, key)

	if err := p.s.KEY(k, false); err != nil {
		panic(err)
	}
}

// PRF squeezes n pseudorandom bytes from the protocol's current state.
func (p *Protocol) PRF(dst []byte, n int) []byte {
	ret, out := sliceForAppend(dst, n)

	if err := p.s.PRF(out, false); err != nil {
		panic(err)
	}

	return ret
}

// Clone returns an independent copy of the protocol's current state, so that a fork can
// absorb and squeeze without disturbing the original.
func (p *Protocol) Clone() *Protocol {
	return &Protocol{s: p.s.Clone()}
}

// LittleEndianU32 returns n as a 32-bit little endian bit string.
func LittleEndianU32(n int) []byte {
	var b [4]byte

	binary.LittleEndian.PutUint32(b[:], uint32(n))

	return b[:]
}

// LittleEndianU64 returns n as a 64-bit little endian bit string, used to frame outer
// leaf indices when deriving inner-key seeds and inner leaf indices (§4.5).
func LittleEndianU64(n uint64) []byte {
	var b [8]byte

	binary.LittleEndian.PutUint64(b[:], n)

	return b[:]
}

// sliceForAppend extends the slice as append would, returning both the resulting slice
// and the part that should be written to.
func sliceForAppend(in []byte, n int) (head, tail []byte) {
	if total := len(in) + n; cap(in) >= total {
		head = in[:total]
	} else {
		head = make([]byte, total)
		copy(head, in)
	}

	tail = head[len(in):]

	return
}

//nolint:gochecknoglobals // constants
var (
	defaultOpts = &strobe.Options{}
	metaOpts    = &strobe.Options{Meta: true}
)
