// Package config loads and saves user preferences, parses command-line
// arguments and locates the external tools.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/jmagar/ytgrab-cli/internal/helpers"
	"github.com/jmagar/ytgrab-cli/internal/model"
	"github.com/jmagar/ytgrab-cli/internal/platform"
	"github.com/jmagar/ytgrab-cli/internal/runlog"
)

// Store persists Preferences as JSON at a fixed path.
type Store struct {
	path string
}

// NewStore returns a Store for explicit, or for the first existing file in
// the search order (./config.json, then the per-user config path). When no
// file exists yet the per-user path is used.
func NewStore(explicit string) *Store {
	return &Store{path: ResolvePath(explicit)}
}

// ResolvePath picks the preferences file location.
func ResolvePath(explicit string) string {
	if p := strings.TrimSpace(explicit); p != "" {
		return p
	}
	userPath := platform.ConfigPath()
	for _, candidate := range []string{"config.json", userPath} {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return userPath
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string {
	return s.path
}

// Load reads preferences. A missing, unreadable or malformed file yields the
// built-in defaults; fields absent from a valid file keep their defaults.
func (s *Store) Load() model.Preferences {
	prefs := model.DefaultPreferences()
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			runlog.Log(runlog.Entry{Event: runlog.EventPrefsFallback, Path: s.path, Error: err.Error()})
		}
		return prefs
	}
	if err := json.Unmarshal(data, &prefs); err != nil {
		runlog.Log(runlog.Entry{Event: runlog.EventPrefsFallback, Path: s.path, Error: err.Error()})
		return model.DefaultPreferences()
	}
	runlog.Log(runlog.Entry{Event: runlog.EventPrefsLoaded, Path: s.path})
	return prefs
}

const (
	lockAttempts   = 20
	lockRetryDelay = 50 * time.Millisecond
)

// Save writes prefs, replacing the file atomically while holding
// <path>.lock.
func (s *Store) Save(prefs model.Preferences) error {
	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	lock, err := acquirePrefsLock(s.path+".lock", lockAttempts)
	if err != nil {
		return err
	}
	defer lock.release()

	if err := writeFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("failed to write preferences to %s: %w", s.path, err)
	}
	runlog.Log(runlog.Entry{Event: runlog.EventPrefsSaved, Path: s.path})
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".config-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil && runtime.GOOS != "windows" {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("chmod: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// ParseArgs parses CLI arguments using go-arg.
func ParseArgs() *model.Args {
	var args model.Args
	arg.MustParse(&args)
	args.Link = strings.TrimSpace(args.Link)
	return &args
}

// ResolveBinaries locates the downloader and transcoder. Both must exist.
func ResolveBinaries(args *model.Args) (model.Binaries, error) {
	var explicitDownloader, explicitTranscoder string
	if args != nil {
		explicitDownloader = args.Downloader
		explicitTranscoder = args.Transcoder
	}
	downloader, err := ResolveBinary("yt-dlp", explicitDownloader)
	if err != nil {
		return model.Binaries{}, err
	}
	transcoder, err := ResolveBinary("ffmpeg", explicitTranscoder)
	if err != nil {
		return model.Binaries{}, err
	}
	return model.Binaries{Downloader: downloader, Transcoder: transcoder}, nil
}

// ResolveBinary finds one executable: an explicit path first, then a local
// copy in the working directory, then one next to this program, then PATH.
func ResolveBinary(name, explicit string) (string, error) {
	if runtime.GOOS == "windows" && !strings.HasSuffix(strings.ToLower(name), ".exe") {
		name += ".exe"
	}

	if preferred := strings.TrimSpace(explicit); preferred != "" {
		if ok, _ := helpers.FileExists(preferred); ok {
			return preferred, nil
		}
		if resolved, err := exec.LookPath(preferred); err == nil {
			return resolved, nil
		}
		return "", fmt.Errorf("%w: %s (configured path %s)", model.ErrBinaryNotFound, name, preferred)
	}

	local := "." + string(filepath.Separator) + name
	candidates := []string{local}
	if exeDir, err := helpers.GetScriptDir(); err == nil {
		candidates = append(candidates, filepath.Join(exeDir, name))
	}
	for _, candidate := range candidates {
		if ok, _ := helpers.FileExists(candidate); ok {
			return candidate, nil
		}
	}

	if resolved, err := exec.LookPath(name); err == nil {
		return resolved, nil
	}
	return "", fmt.Errorf("%w: %s (checked %s, next to the program, and PATH)", model.ErrBinaryNotFound, name, local)
}
