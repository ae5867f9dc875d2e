package filelock

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/codahale/gubbins/assert"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestAcquireAndRelease(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "key.json")

	lock, err := Acquire(path)
	assert.Equal(t, "acquire error", nil, err, cmpopts.EquateErrors())

	if _, err := os.Stat(path + ".lock"); err != nil {
		t.Fatalf("lock sidecar not created: %v", err)
	}

	assert.Equal(t, "release error", nil, lock.Release(), cmpopts.EquateErrors())

	if _, err := os.Stat(path + ".lock"); !os.IsNotExist(err) {
		t.Fatalf("lock sidecar not removed: %v", err)
	}
}

func TestSecondAcquireFails(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "key.json")

	lock, err := Acquire(path)
	assert.Equal(t, "first acquire error", nil, err, cmpopts.EquateErrors())

	defer func() { _ = lock.Release() }()

	_, err = Acquire(path)
	assert.Equal(t, "second acquire error", ErrLocked, err, cmpopts.EquateErrors())
}

func TestReleaseIsIdempotent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "key.json")

	lock, err := Acquire(path)
	assert.Equal(t, "acquire error", nil, err, cmpopts.EquateErrors())

	assert.Equal(t, "first release error", nil, lock.Release(), cmpopts.EquateErrors())
	assert.Equal(t, "second release error", nil, lock.Release(), cmpopts.EquateErrors())
}
