// Package prg implements the seeded pseudorandom generator (§4.1) used to expand a
// 32-byte seed into the unlimited, deterministic byte stream that key generation draws
// private values from.
//
// The construction follows the same shape as veil's internal/protocols/rng package
// (KEY the protocol with a block, PRF an equal-size block back out) but without the
// RATCHET-after-every-read step: veil's RNG ratchets to protect a compromised host RNG
// against rollback, which only matters when the keying material comes from outside the
// protocol. Here the seed is the only input and the whole point is that the same seed
// always replays the same stream, so nothing is ratcheted between reads — the protocol
// object's own running state already prevents the output blocks from repeating.
package prg

import "github.com/kemp/hashsig/pkg/hashsig/internal/protocol"

// SeedSize is the width, in bytes, of a PRG seed.
const SeedSize = 32

// PRG is a deterministic byte stream keyed by a 32-byte seed.
type PRG struct {
	p *protocol.Protocol
}

// New returns a PRG keyed by seed. Reading from the PRG is deterministic: the same seed
// always produces the same stream, on any host.
func New(seed [SeedSize]byte) *PRG {
	p := protocol.New("hashsig.v1.prg")
	p.MetaAD(protocol.LittleEndianU32(SeedSize))
	p.KEY(seed[:])

	return &PRG{p: p}
}

// Read fills p entirely with the next len(p) bytes of the stream. It never returns an
// error and always fills the buffer completely, satisfying io.Reader.
func (g *PRG) Read(p []byte) (int, error) {
	g.p.PRF(p[:0], len(p))
	return len(p), nil
}

// Block reads and returns the next n bytes of the stream as a freshly allocated slice.
func (g *PRG) Block(n int) []byte {
	return g.p.PRF(nil, n)
}
