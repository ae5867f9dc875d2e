package hashsig

import "errors"

// Error kinds surfaced at every API boundary. None of them are wrapped in a panic; a
// caller that gets one back always gets a plain error value it can compare with
// errors.Is.
var (
	// ErrMalformedPublicKey is returned when a public key's hex encoding is not exactly
	// 64 characters, or is not valid hex.
	ErrMalformedPublicKey = errors.New("hashsig: malformed public key")

	// ErrMalformedSignature is returned when the canonical decode of a signature fails,
	// its counts don't match the expected shape, or its top index disagrees with its
	// outer signature's index. A PublicKey carries no depths, so a signature whose
	// depths differ from the signer's is not reported with this error; it fails
	// verification with ErrInvalidSignature instead.
	ErrMalformedSignature = errors.New("hashsig: malformed signature")

	// ErrInvalidSignature is returned when a structurally sound signature fails OTS or
	// Merkle verification.
	ErrInvalidSignature = errors.New("hashsig: invalid signature")

	// ErrLeafBudgetExhausted is returned when a signer's next_index has reached
	// 2^depth_top; the key can never sign again.
	ErrLeafBudgetExhausted = errors.New("hashsig: leaf budget exhausted")

	// ErrStatePersistenceFailure is returned when the atomic write of the incremented
	// next_index counter fails. No signature is emitted when this occurs.
	ErrStatePersistenceFailure = errors.New("hashsig: state persistence failure")

	// ErrLockContention is returned when the private-key file is already locked by
	// another signer.
	ErrLockContention = errors.New("hashsig: private key is locked by another process")

	// ErrIO is returned when a read or write against the private-key file or its lock
	// fails for a reason other than the above.
	ErrIO = errors.New("hashsig: io error")
)
