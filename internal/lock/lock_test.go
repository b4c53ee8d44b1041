package lock

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	lock := New("/tmp/test", "render")
	assert.Equal(t, "/tmp/test/.stevedore/locks/render.lock", lock.path)
}

func TestLock_AcquireRelease(t *testing.T) {
	tmpDir := t.TempDir()
	lock := New(tmpDir, "test")

	err := lock.Acquire()
	require.NoError(t, err)

	// Lock file should exist while held
	lockPath := filepath.Join(tmpDir, ".stevedore", "locks", "test.lock")
	_, err = os.Stat(lockPath)
	require.NoError(t, err)

	err = lock.Release()
	require.NoError(t, err)

	// Lock file should be removed
	_, err = os.Stat(lockPath)
	assert.True(t, os.IsNotExist(err))
}

func TestLock_DoubleAcquire(t *testing.T) {
	tmpDir := t.TempDir()
	lock1 := New(tmpDir, "test")
	lock2 := New(tmpDir, "test")

	err := lock1.Acquire()
	require.NoError(t, err)
	defer lock1.Release()

	err = lock2.Acquire()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "another test operation is already running")
}

func TestLock_ReleaseWithoutAcquire(t *testing.T) {
	lock := New(t.TempDir(), "test")
	require.NoError(t, lock.Release())
}

func TestWithLock(t *testing.T) {
	executed := false
	err := WithLock(t.TempDir(), "test", func() error {
		executed = true
		return nil
	})

	require.NoError(t, err)
	assert.True(t, executed)
}

func TestWithLock_Blocked(t *testing.T) {
	tmpDir := t.TempDir()
	lock := New(tmpDir, "test")

	err := lock.Acquire()
	require.NoError(t, err)
	defer lock.Release()

	err = WithLock(tmpDir, "test", func() error {
		return nil
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "another test operation is already running")
}
