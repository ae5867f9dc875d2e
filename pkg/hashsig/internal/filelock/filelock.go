// Package filelock provides an exclusive, advisory lock for a single file, used to
// enforce the one-signer-per-private-key-file invariant (§5).
//
// No lock library appears anywhere in the example pack, so this falls back to a
// portable O_EXCL sidecar file rather than a platform-specific syscall (flock,
// LockFileEx). A sidecar is created next to the target path with O_CREATE|O_EXCL,
// which atomically fails if another process already holds it; Release removes it. This
// doesn't protect against a process that crashes while holding the lock — the stale
// lock file must be removed by hand — which is an acceptable tradeoff for a
// single-user, single-host signing tool.
package filelock

import (
	"errors"
	"fmt"
	"os"
)

// ErrLocked is returned by Acquire when the lock is already held.
var ErrLocked = errors.New("filelock: already locked")

// Lock is a held exclusive lock on a file.
type Lock struct {
	path string
}

// Acquire creates the lock sidecar for path, failing with ErrLocked if it already
// exists.
func Acquire(path string) (*Lock, error) {
	lockPath := path + ".lock"

	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		if os.IsExist(err) {
			return nil, ErrLocked
		}

		return nil, fmt.Errorf("filelock: acquiring lock: %w", err)
	}

	_ = f.Close()

	return &Lock{path: lockPath}, nil
}

// Release removes the lock sidecar, freeing the lock for the next signer.
func (l *Lock) Release() error {
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("filelock: releasing lock: %w", err)
	}

	return nil
}
