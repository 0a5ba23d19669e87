package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jmagar/ytgrab-cli/internal/model"
	"github.com/jmagar/ytgrab-cli/internal/platform"
	"github.com/jmagar/ytgrab-cli/internal/testutil"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "nope.json"))
	if got := s.Load(); got != model.DefaultPreferences() {
		t.Fatalf("got %+v, want defaults", got)
	}
}

func TestLoadMalformedFileReturnsDefaults(t *testing.T) {
	for _, content := range []string{"{not json", `{"embedThumbnail": "yes"}`, "\x00\x01"} {
		path := filepath.Join(t.TempDir(), "config.json")
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}
		if got := NewStore(path).Load(); got != model.DefaultPreferences() {
			t.Fatalf("content %q: got %+v, want defaults", content, got)
		}
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"skipMainMenu": false}`), 0600); err != nil {
		t.Fatal(err)
	}
	want := model.DefaultPreferences()
	want.SkipMainMenu = false
	if got := NewStore(path).Load(); got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestToggleRoundTrip(t *testing.T) {
	for _, toggle := range model.Toggles {
		t.Run(toggle.Label(), func(t *testing.T) {
			s := NewStore(filepath.Join(t.TempDir(), "sub", "config.json"))
			before := s.Load()
			changed := before
			changed.Flip(toggle)
			if err := s.Save(changed); err != nil {
				t.Fatalf("save: %v", err)
			}
			after := s.Load()
			if after != changed {
				t.Fatalf("reloaded %+v, want %+v", after, changed)
			}
			if after.Get(toggle) == before.Get(toggle) {
				t.Fatal("toggle did not persist")
			}
			for _, other := range model.Toggles {
				if other != toggle && after.Get(other) != before.Get(other) {
					t.Fatalf("toggle %v changed %v", toggle, other)
				}
			}
		})
	}
}

func TestSaveLastDownloadPath(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "config.json"))
	prefs := s.Load()
	prefs.LastDownloadPath = "/media/music"
	if err := s.Save(prefs); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := s.Load().LastDownloadPath; got != "/media/music" {
		t.Fatalf("last path = %q", got)
	}
	info, err := os.Stat(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm()&0077 != 0 && runtime.GOOS != "windows" {
		t.Fatalf("config permissions too open: %v", info.Mode().Perm())
	}
}

func TestResolvePathSearchOrder(t *testing.T) {
	testutil.ChdirTemp(t)

	if got := ResolvePath("/explicit/prefs.json"); got != "/explicit/prefs.json" {
		t.Fatalf("explicit path ignored: %q", got)
	}

	userPath := platform.ConfigPath()
	if _, err := os.Stat(userPath); err == nil {
		t.Skip("a per-user config already exists")
	}
	if got := ResolvePath(""); got != userPath {
		t.Fatalf("default path = %q, want %q", got, userPath)
	}

	if err := os.WriteFile("config.json", []byte("{}"), 0600); err != nil {
		t.Fatal(err)
	}
	if got := ResolvePath(""); got != "config.json" {
		t.Fatalf("local config not preferred: %q", got)
	}
}

func TestResolveBinaryLocalPreferred(t *testing.T) {
	testutil.SkipWithoutShell(t)
	tmp := testutil.ChdirTemp(t)
	testutil.WriteExecutable(t, filepath.Join(tmp, "yt-dlp"))
	t.Setenv("PATH", "")

	got, err := ResolveBinary("yt-dlp", "")
	if err != nil {
		t.Fatalf("ResolveBinary returned error: %v", err)
	}
	if got != "./yt-dlp" {
		t.Fatalf("expected ./yt-dlp, got %q", got)
	}
}

func TestResolveBinaryPathFallback(t *testing.T) {
	testutil.SkipWithoutShell(t)
	tmp := testutil.ChdirTemp(t)
	binDir := filepath.Join(tmp, "bin")
	if err := os.MkdirAll(binDir, 0755); err != nil {
		t.Fatalf("failed to create bin dir: %v", err)
	}
	ffmpegPath := filepath.Join(binDir, "ffmpeg")
	testutil.WriteExecutable(t, ffmpegPath)
	t.Setenv("PATH", binDir)

	got, err := ResolveBinary("ffmpeg", "")
	if err != nil {
		t.Fatalf("ResolveBinary returned error: %v", err)
	}
	if got != ffmpegPath {
		t.Fatalf("expected %q, got %q", ffmpegPath, got)
	}
}

func TestResolveBinaryExplicit(t *testing.T) {
	testutil.SkipWithoutShell(t)
	tmp := testutil.ChdirTemp(t)
	t.Setenv("PATH", "")
	custom := filepath.Join(tmp, "tools", "my-ytdlp")
	if err := os.MkdirAll(filepath.Dir(custom), 0755); err != nil {
		t.Fatal(err)
	}
	testutil.WriteExecutable(t, custom)

	got, err := ResolveBinary("yt-dlp", custom)
	if err != nil || got != custom {
		t.Fatalf("got %q, %v", got, err)
	}

	_, err = ResolveBinary("yt-dlp", filepath.Join(tmp, "missing"))
	if !errors.Is(err, model.ErrBinaryNotFound) {
		t.Fatalf("err = %v, want ErrBinaryNotFound", err)
	}
}

func TestResolveBinariesMissingIsFatal(t *testing.T) {
	testutil.SkipWithoutShell(t)
	tmp := testutil.ChdirTemp(t)
	t.Setenv("PATH", "")
	testutil.WriteExecutable(t, filepath.Join(tmp, "yt-dlp"))

	_, err := ResolveBinaries(&model.Args{})
	if !errors.Is(err, model.ErrBinaryNotFound) {
		t.Fatalf("err = %v, want ErrBinaryNotFound", err)
	}

	testutil.WriteExecutable(t, filepath.Join(tmp, "ffmpeg"))
	bins, err := ResolveBinaries(&model.Args{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if bins.Downloader != "./yt-dlp" || bins.Transcoder != "./ffmpeg" {
		t.Fatalf("unexpected binaries: %+v", bins)
	}
}

func TestSaveWaitsForLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	held, err := acquirePrefsLock(path+".lock", 1)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	done := make(chan error, 1)
	go func() {
		done <- NewStore(path).Save(model.DefaultPreferences())
	}()
	time.Sleep(2 * lockRetryDelay)
	held.release()
	if err := <-done; err != nil {
		t.Fatalf("save after release: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}
}
