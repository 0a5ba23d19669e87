//go:build !windows

package config

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// prefsLock serialises preference writes between ytgrab processes.
type prefsLock struct {
	f *os.File
}

func acquirePrefsLock(lockPath string, attempts int) (*prefsLock, error) {
	var lastErr error
	for i := 0; i < attempts; i++ {
		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0600)
		if err != nil {
			return nil, fmt.Errorf("open lock file: %w", err)
		}
		if err = unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err == nil {
			return &prefsLock{f: f}, nil
		}
		f.Close()
		lastErr = err
		time.Sleep(lockRetryDelay)
	}
	return nil, fmt.Errorf("preferences locked by another process: %w", lastErr)
}

func (l *prefsLock) release() {
	if l == nil || l.f == nil {
		return
	}
	_ = unix.Flock(int(l.f.Fd()), unix.LOCK_UN)
	l.f.Close()
	l.f = nil
}
