// Package hashsig implements a post-quantum digital signature scheme built
// exclusively from a hash function: Lamport-style one-time signatures, authenticated by
// a Merkle tree into a q-indexed scheme, composed two levels deep into a stateful
// many-time signer.
//
// A PrivateKey is generated once, persisted to a JSON sidecar file alongside its
// next_index counter, and signs messages until its leaf budget (2^depth_top) is
// exhausted. A PublicKey is a single 32-byte root, transmitted as 64 lowercase hex
// characters. Signatures use a canonical, injective binary encoding so that one
// produced here verifies bit-identically wherever this package's decode runs,
// including the VerifyBytes entry point used by a browser-hosted verifier.
package hashsig
