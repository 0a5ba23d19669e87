//go:build windows

package config

import (
	"fmt"
	"os"
	"time"
)

// prefsLock is a lock file created exclusively; it is removed on release.
type prefsLock struct {
	f    *os.File
	path string
}

func acquirePrefsLock(lockPath string, attempts int) (*prefsLock, error) {
	var lastErr error
	for i := 0; i < attempts; i++ {
		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0600)
		if err == nil {
			return &prefsLock{f: f, path: lockPath}, nil
		}
		lastErr = err
		time.Sleep(lockRetryDelay)
	}
	return nil, fmt.Errorf("preferences locked by another process: %w", lastErr)
}

func (l *prefsLock) release() {
	if l == nil || l.f == nil {
		return
	}
	l.f.Close()
	l.f = nil
	_ = os.Remove(l.path)
}
