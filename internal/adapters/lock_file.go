package adapters

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"

	"yyoom/internal/shared"
)

const DefaultLockFile = "/var/run/yyoom.lock"

// LockFileAdapter guards the package database with an exclusive flock(2)
// on a lock file holding the owner's pid.
type LockFileAdapter struct {
	Path string
	file *os.File
}

func NewLockFileAdapter(path string) *LockFileAdapter {
	if strings.TrimSpace(path) == "" {
		path = DefaultLockFile
	}
	return &LockFileAdapter{Path: path}
}

// Lock takes the lock without blocking; a held lock is a LockError naming
// the holder's pid when it can be read.
func (a *LockFileAdapter) Lock(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return shared.LockError("lock canceled", err)
	}
	if a.file != nil {
		return shared.LockError(fmt.Sprintf("lock %s already held by this process", a.Path), nil)
	}
	if err := os.MkdirAll(filepath.Dir(a.Path), 0o755); err != nil {
		return shared.LockError(fmt.Sprintf("cannot create lock directory for %s", a.Path), err)
	}
	file, err := os.OpenFile(a.Path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return shared.LockError(fmt.Sprintf("cannot open lock file %s", a.Path), err)
	}
	for {
		err = unix.Flock(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB)
		if err != unix.EINTR {
			break
		}
	}
	if err != nil {
		holder := readLockHolder(file)
		file.Close()
		if errors.Is(err, unix.EWOULDBLOCK) {
			msg := fmt.Sprintf("package database is locked (%s)", a.Path)
			if holder != "" {
				msg = fmt.Sprintf("package database is locked by pid %s (%s)", holder, a.Path)
			}
			return shared.LockError(msg, err)
		}
		return shared.LockError(fmt.Sprintf("flock %s", a.Path), err)
	}
	if err := writeLockHolder(file); err != nil {
		_ = unix.Flock(int(file.Fd()), unix.LOCK_UN)
		file.Close()
		return shared.LockError(fmt.Sprintf("cannot record pid in %s", a.Path), err)
	}
	a.file = file
	return nil
}

// Unlock releases the lock. Unlocking without holding the lock is a no-op.
func (a *LockFileAdapter) Unlock() error {
	if a.file == nil {
		return nil
	}
	file := a.file
	a.file = nil
	_ = file.Truncate(0)
	unlockErr := unix.Flock(int(file.Fd()), unix.LOCK_UN)
	closeErr := file.Close()
	if unlockErr != nil {
		return unlockErr
	}
	return closeErr
}

func readLockHolder(file *os.File) string {
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return ""
	}
	data, err := io.ReadAll(io.LimitReader(file, 32))
	if err != nil {
		return ""
	}
	pid := strings.TrimSpace(string(data))
	if _, err := strconv.Atoi(pid); err != nil {
		return ""
	}
	return pid
}

func writeLockHolder(file *os.File) error {
	if err := file.Truncate(0); err != nil {
		return err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	_, err := file.WriteString(strconv.Itoa(os.Getpid()) + "\n")
	return err
}
