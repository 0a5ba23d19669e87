// Package runlog appends structured activity records to a JSON-lines file.
package runlog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Entry is a single structured record written to the activity log.
type Entry struct {
	Timestamp  string `json:"ts"`
	Event      string `json:"event"`
	Link       string `json:"link,omitempty"`
	Mode       string `json:"mode,omitempty"`
	Path       string `json:"path,omitempty"`
	Title      string `json:"title,omitempty"`
	ExitCode   *int   `json:"exit_code,omitempty"`
	DurationMS int64  `json:"duration_ms,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Event names.
const (
	EventStartup              = "startup"
	EventPrefsLoaded          = "prefs_loaded"
	EventPrefsFallback        = "prefs_fallback"
	EventPrefsSaved           = "prefs_saved"
	EventClipboardUnavailable = "clipboard_unavailable"
	EventTitleResolved        = "title_resolved"
	EventTitleFallback        = "title_fallback"
	EventFolderCancelled      = "folder_cancelled"
	EventDownloadStart        = "download_start"
	EventDownloadExit         = "download_exit"
)

type logger struct {
	mu  sync.Mutex
	enc *json.Encoder
	f   *os.File
}

var (
	mu      sync.Mutex
	current *logger
)

// Init opens (or creates) the activity log at logPath. On error logging stays
// disabled and every Log call is a no-op.
func Init(logPath string) error {
	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return fmt.Errorf("runlog: mkdir %s: %w", filepath.Dir(logPath), err)
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return fmt.Errorf("runlog: open %s: %w", logPath, err)
	}
	mu.Lock()
	defer mu.Unlock()
	if current != nil {
		_ = current.f.Close()
	}
	current = &logger{f: f, enc: json.NewEncoder(f)}
	return nil
}

// Close flushes and closes the log file.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if current == nil {
		return
	}
	_ = current.f.Close()
	current = nil
}

// Log writes e with the current timestamp. Write failures are ignored.
func Log(e Entry) {
	mu.Lock()
	l := current
	mu.Unlock()
	if l == nil {
		return
	}
	e.Timestamp = time.Now().UTC().Format(time.RFC3339Nano)
	l.mu.Lock()
	defer l.mu.Unlock()
	_ = l.enc.Encode(e)
}

// Event is shorthand for an entry that only carries an event name.
func Event(name string) {
	Log(Entry{Event: name})
}

// Failure records an event together with the error that caused it.
func Failure(name string, err error) {
	e := Entry{Event: name}
	if err != nil {
		e.Error = err.Error()
	}
	Log(e)
}
