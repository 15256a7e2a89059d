package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// ErrLocked is returned when another live process holds the lock.
var ErrLocked = errors.New("plan is locked by another process")

// emptyLockGrace is how long an empty lock file counts as being created.
// Older empty files were left by a process that died before writing its PID.
const emptyLockGrace = time.Second

// Lock is a PID lock file serializing plan updates across processes.
type Lock struct {
	path string
}

// NewLock creates a lock backed by the file at path.
func NewLock(path string) *Lock {
	return &Lock{path: path}
}

// Acquire takes the lock. Locks left behind by dead processes, holding
// something other than a PID, or left empty past a short grace period are
// removed and the acquisition retried once.
func (l *Lock) Acquire() error {
	err := l.create()
	if err == nil || !os.IsExist(err) {
		return err
	}

	data, readErr := os.ReadFile(l.path)
	if errors.Is(readErr, os.ErrNotExist) {
		// released between our create and read
		return fmt.Errorf("%w (lock just released)", ErrLocked)
	}
	if readErr != nil {
		return fmt.Errorf("failed to read existing lock file: %w", readErr)
	}

	content := strings.TrimSpace(string(data))
	if content == "" && l.recentlyModified() {
		// the holder has created the file but not written its PID yet
		return fmt.Errorf("%w (lock being created)", ErrLocked)
	}

	pid, parseErr := strconv.Atoi(content)
	if parseErr == nil && processExists(pid) {
		return fmt.Errorf("%w (PID %d)", ErrLocked, pid)
	}

	if removeErr := os.Remove(l.path); removeErr != nil && !os.IsNotExist(removeErr) {
		return fmt.Errorf("failed to remove stale lock file: %w", removeErr)
	}

	if err := l.create(); err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%w: acquired by another process during retry", ErrLocked)
		}
		return err
	}
	return nil
}

// AcquireContext retries Acquire every interval while the lock is held,
// until it succeeds or ctx is done.
func (l *Lock) AcquireContext(ctx context.Context, interval time.Duration) error {
	for {
		err := l.Acquire()
		if err == nil || !errors.Is(err, ErrLocked) {
			return err
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", err, ctx.Err())
		case <-time.After(interval):
		}
	}
}

// Release removes the lock file. Releasing an absent lock is not an error.
func (l *Lock) Release() error {
	err := os.Remove(l.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}
	return nil
}

// recentlyModified reports whether the lock file changed within emptyLockGrace.
func (l *Lock) recentlyModified() bool {
	info, err := os.Stat(l.path)
	if err != nil {
		return false
	}
	return time.Since(info.ModTime()) < emptyLockGrace
}

// create makes the lock file with O_EXCL and writes our PID into it.
// The raw error is returned when the file exists so callers can inspect it.
func (l *Lock) create() error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if os.IsExist(err) {
			return err
		}
		return fmt.Errorf("failed to create lock file: %w", err)
	}

	_, writeErr := fmt.Fprintf(f, "%d", os.Getpid())
	f.Close()
	if writeErr != nil {
		os.Remove(l.path)
		return fmt.Errorf("failed to write lock file: %w", writeErr)
	}
	return nil
}

// processExists checks if a process with the given PID is running.
// Signal 0 checks for existence without delivering anything.
func processExists(pid int) bool {
	if pid == os.Getpid() {
		return true
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}
