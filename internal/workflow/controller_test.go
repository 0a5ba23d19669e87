package workflow

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jmagar/ytgrab-cli/internal/download"
	"github.com/jmagar/ytgrab-cli/internal/model"
	"github.com/jmagar/ytgrab-cli/internal/runtime"
	"github.com/jmagar/ytgrab-cli/internal/testutil"
	"github.com/jmagar/ytgrab-cli/internal/ui"
)

const (
	videoLink    = "https://www.youtube.com/watch?v=abc123"
	otherLink    = "https://youtu.be/zzz999"
	playlistLink = "https://www.youtube.com/playlist?list=XYZ"
)

type fakeLinks struct {
	clipboard  []string
	manual     []string
	clipCalls  int
	manualCall int
}

func (f *fakeLinks) ClipboardCandidate() string {
	f.clipCalls++
	if len(f.clipboard) == 0 {
		return ""
	}
	v := f.clipboard[0]
	if len(f.clipboard) > 1 {
		f.clipboard = f.clipboard[1:]
	}
	return v
}

func (f *fakeLinks) PromptManualEntry() string {
	f.manualCall++
	if len(f.manual) == 0 {
		return ""
	}
	v := f.manual[0]
	f.manual = f.manual[1:]
	return v
}

type fakeFolders struct {
	dest  string
	err   error
	calls []model.Session
}

func (f *fakeFolders) Resolve(_ context.Context, sess model.Session, _ model.Preferences) (string, error) {
	f.calls = append(f.calls, sess)
	if f.err != nil {
		return "", f.err
	}
	return f.dest, nil
}

type fakeRunner struct {
	runs     []download.Request
	finished []string
	err      error
	during   func()
}

func (f *fakeRunner) Run(_ context.Context, req download.Request) (download.Outcome, error) {
	f.runs = append(f.runs, req)
	if f.during != nil {
		f.during()
	}
	return download.Outcome{}, f.err
}

func (f *fakeRunner) Finish(dest string, _ download.Outcome) {
	f.finished = append(f.finished, dest)
}

type fakeStore struct {
	saves []model.Preferences
	err   error
}

func (f *fakeStore) Save(p model.Preferences) error {
	f.saves = append(f.saves, p)
	return f.err
}

type harness struct {
	c       *Controller
	keys    *runtime.ScriptedKeys
	links   *fakeLinks
	folders *fakeFolders
	runner  *fakeRunner
	store   *fakeStore
}

func newHarness(prefs model.Preferences, keys string, clipboard ...string) *harness {
	h := &harness{
		keys:    runtime.NewScriptedKeys(keys),
		links:   &fakeLinks{clipboard: clipboard},
		folders: &fakeFolders{dest: "/downloads"},
		runner:  &fakeRunner{},
		store:   &fakeStore{},
	}
	h.c = NewController(prefs)
	h.c.Render = false
	h.c.Keys = h.keys
	h.c.Links = h.links
	h.c.Folders = h.folders
	h.c.Runner = h.runner
	h.c.Store = h.store
	return h
}

func (h *harness) run(t *testing.T) {
	t.Helper()
	if err := h.c.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
}

func prefsWith(skipMainMenu bool) model.Preferences {
	p := model.DefaultPreferences()
	p.SkipMainMenu = skipMainMenu
	return p
}

func TestSkipMainMenuOnlyOnFirstIteration(t *testing.T) {
	// back out of link confirmation, then exit from the main menu
	h := newHarness(prefsWith(true), "00", videoLink)
	h.run(t)
	if h.links.clipCalls != 1 {
		t.Fatalf("clipboard read %d times, want 1", h.links.clipCalls)
	}
	if h.keys.Remaining() != 0 {
		t.Fatalf("%d keys unread", h.keys.Remaining())
	}
}

func TestMainMenuShownWhenNotSkipping(t *testing.T) {
	h := newHarness(prefsWith(false), "0", videoLink)
	h.run(t)
	if h.links.clipCalls != 0 {
		t.Fatalf("clipboard read %d times before start was chosen", h.links.clipCalls)
	}
}

func TestMainMenuStartSeedsFromClipboard(t *testing.T) {
	h := newHarness(prefsWith(false), "91110", videoLink)
	h.run(t)
	if len(h.runner.runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(h.runner.runs))
	}
	req := h.runner.runs[0]
	if req.Session.Link != videoLink || req.Mode != model.ModeVideo || req.Destination != "/downloads" {
		t.Fatalf("unexpected request: %+v", req)
	}
	if !req.Session.IsPlaylistDownload || req.Session.SingleItemOnly() {
		t.Fatalf("non-playlist session has playlist flags: %+v", req.Session)
	}
	if len(h.runner.finished) != 1 || h.runner.finished[0] != "/downloads" {
		t.Fatalf("finish not reported: %v", h.runner.finished)
	}
}

func TestInvalidLinkForcesManualEntry(t *testing.T) {
	h := newHarness(prefsWith(true), "111000", "not a link")
	h.links.manual = []string{videoLink}
	h.run(t)
	if h.links.manualCall != 1 {
		t.Fatalf("manual entry prompted %d times, want 1", h.links.manualCall)
	}
	if len(h.runner.runs) != 1 || h.runner.runs[0].Session.Link != videoLink {
		t.Fatalf("unexpected runs: %+v", h.runner.runs)
	}
}

func TestInvalidLinkNeverProceeds(t *testing.T) {
	// every confirmation is answered with another bad value
	h := newHarness(prefsWith(true), "1111", "")
	h.links.manual = []string{"   ", "https://example.com/watch?v=1", "list=abc"}
	h.run(t)
	if len(h.runner.runs) != 0 || len(h.folders.calls) != 0 {
		t.Fatalf("workflow proceeded on an invalid link")
	}
	if h.links.manualCall != 4 {
		t.Fatalf("manual entry prompted %d times, want 4", h.links.manualCall)
	}
}

func TestEditAndReloadLink(t *testing.T) {
	h := newHarness(prefsWith(true), "2311", videoLink, otherLink)
	h.links.manual = []string{"typed"}
	h.run(t)
	if len(h.runner.runs) != 1 || h.runner.runs[0].Session.Link != otherLink {
		t.Fatalf("reload did not replace the edited link: %+v", h.runner.runs)
	}
}

func TestBackFromModeSelectionKeepsLink(t *testing.T) {
	h := newHarness(prefsWith(true), "1012\x03", videoLink, otherLink)
	h.run(t)
	if h.links.clipCalls != 1 {
		t.Fatalf("clipboard re-read on back: %d calls", h.links.clipCalls)
	}
	if len(h.runner.runs) != 1 || h.runner.runs[0].Session.Link != videoLink {
		t.Fatalf("unexpected runs: %+v", h.runner.runs)
	}
	if h.runner.runs[0].Mode != model.ModeAudio {
		t.Fatalf("mode = %v, want audio", h.runner.runs[0].Mode)
	}
}

func TestDownloadReturnsToModeSelection(t *testing.T) {
	h := newHarness(prefsWith(true), "112", videoLink)
	h.run(t)
	if len(h.runner.runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(h.runner.runs))
	}
	if h.runner.runs[0].Mode != model.ModeVideo || h.runner.runs[1].Mode != model.ModeAudio {
		t.Fatalf("unexpected modes: %v, %v", h.runner.runs[0].Mode, h.runner.runs[1].Mode)
	}
}

func TestCancelledFolderSkipsDownload(t *testing.T) {
	h := newHarness(prefsWith(true), "112", videoLink)
	h.folders.err = model.ErrCancelled
	h.run(t)
	if len(h.folders.calls) != 2 {
		t.Fatalf("folder resolved %d times, want 2", len(h.folders.calls))
	}
	if len(h.runner.runs) != 0 || len(h.runner.finished) != 0 {
		t.Fatal("downloader invoked after a cancelled folder choice")
	}
}

func TestFolderErrorSkipsDownload(t *testing.T) {
	h := newHarness(prefsWith(true), "11", videoLink)
	h.folders.err = errors.New("disk full")
	h.run(t)
	if len(h.runner.runs) != 0 {
		t.Fatal("downloader invoked after a folder error")
	}
}

func TestStartFailureSkipsFinish(t *testing.T) {
	h := newHarness(prefsWith(true), "11", videoLink)
	h.runner.err = errors.New("exec format error")
	h.run(t)
	if len(h.runner.runs) != 1 || len(h.runner.finished) != 0 {
		t.Fatalf("runs=%d finished=%d", len(h.runner.runs), len(h.runner.finished))
	}
}

func TestPlaylistToggle(t *testing.T) {
	tests := []struct {
		name         string
		link         string
		keys         string
		wantDownload bool
	}{
		{"playlist default single item", playlistLink, "11", false},
		{"playlist toggled on", playlistLink, "131", true},
		{"playlist toggled twice", playlistLink, "1331", false},
		{"non-playlist toggle is a no-op", videoLink, "131", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(prefsWith(true), tt.keys, tt.link)
			h.run(t)
			if len(h.runner.runs) != 1 {
				t.Fatalf("got %d runs, want 1", len(h.runner.runs))
			}
			sess := h.runner.runs[0].Session
			if sess.IsPlaylistDownload != tt.wantDownload {
				t.Fatalf("IsPlaylistDownload = %v, want %v", sess.IsPlaylistDownload, tt.wantDownload)
			}
			if sess.DestinationFolder != "/downloads" {
				t.Fatalf("DestinationFolder = %q", sess.DestinationFolder)
			}
			if h.folders.calls[0].IsPlaylistDownload != tt.wantDownload {
				t.Fatalf("folder selector saw %+v", h.folders.calls[0])
			}
		})
	}
}

func TestPlaylistDefaultFromPreferences(t *testing.T) {
	prefs := prefsWith(true)
	prefs.DefaultPlaylist = true
	h := newHarness(prefs, "11", playlistLink)
	h.run(t)
	if !h.runner.runs[0].Session.IsPlaylistDownload {
		t.Fatal("defaultPlaylist not applied to a new session")
	}
}

func TestSettingsTogglesAndSaves(t *testing.T) {
	h := newHarness(prefsWith(false), "214900")
	h.run(t)
	if len(h.store.saves) != 2 {
		t.Fatalf("got %d saves, want 2", len(h.store.saves))
	}
	got := h.c.Prefs()
	if got.EmbedThumbnail || got.SkipMainMenu {
		t.Fatalf("toggles not applied: %+v", got)
	}
	if got.DefaultPlaylist || !got.LockDownloadPath {
		t.Fatalf("untouched toggles changed: %+v", got)
	}
	if h.store.saves[0].EmbedThumbnail || !h.store.saves[0].SkipMainMenu {
		t.Fatalf("first save should only hold the first flip: %+v", h.store.saves[0])
	}
}

func TestInterruptExits(t *testing.T) {
	for _, keys := range []string{"\x03", "1\x03", "11\x03"} {
		h := newHarness(prefsWith(false), keys, videoLink)
		h.run(t)
		if h.keys.Remaining() != 0 {
			t.Fatalf("keys %q: %d unread", keys, h.keys.Remaining())
		}
	}
}

func TestInitialLinkSeedsFirstWorkflowOnly(t *testing.T) {
	h := newHarness(prefsWith(true), "1100100", videoLink)
	h.c.InitialLink = otherLink
	h.run(t)
	if len(h.runner.runs) != 1 || h.runner.runs[0].Session.Link != otherLink {
		t.Fatalf("initial link not used: %+v", h.runner.runs)
	}
	if h.links.clipCalls != 1 {
		t.Fatalf("clipboard read %d times, want 1 (second workflow)", h.links.clipCalls)
	}
}

func TestRememberFolder(t *testing.T) {
	h := newHarness(prefsWith(false), "")
	h.c.RememberFolder("/media/videos")
	h.c.RememberFolder("/media/videos")
	h.c.RememberFolder("")
	if got := h.c.Prefs().LastDownloadPath; got != "/media/videos" {
		t.Fatalf("LastDownloadPath = %q", got)
	}
	if len(h.store.saves) != 1 {
		t.Fatalf("got %d saves, want 1", len(h.store.saves))
	}
}

type failingKeys struct{}

func (failingKeys) ReadKey() (byte, error) { return 0, errors.New("bad fd") }

func TestKeyReadErrorIsReturned(t *testing.T) {
	h := newHarness(prefsWith(false), "")
	h.c.Keys = failingKeys{}
	if err := h.c.Run(context.Background()); err == nil {
		t.Fatal("expected an error from a failing key reader")
	}
}

func TestPlaylistHighlight(t *testing.T) {
	tests := []struct {
		sess model.Session
		want string
	}{
		{model.Session{IsPlaylistLink: false, IsPlaylistDownload: true}, ui.ColorDarkGray},
		{model.Session{IsPlaylistLink: true, IsPlaylistDownload: true}, ui.ColorGreen},
		{model.Session{IsPlaylistLink: true, IsPlaylistDownload: false}, ui.ColorRed},
	}
	for _, tt := range tests {
		if got := PlaylistHighlight(tt.sess); got != tt.want {
			t.Fatalf("PlaylistHighlight(%+v) = %q, want %q", tt.sess, got, tt.want)
		}
	}
}

// lastScreen returns what is left on the terminal after the final clear.
func lastScreen(out string) string {
	const clear = "\033[H\033[2J"
	if i := strings.LastIndex(out, clear); i >= 0 {
		return out[i+len(clear):]
	}
	return out
}

func TestErrorsSurviveNextRender(t *testing.T) {
	tests := []struct {
		name  string
		prefs model.Preferences
		keys  string
		setup func(h *harness)
		want  string
	}{
		{
			name:  "folder error",
			prefs: prefsWith(true),
			keys:  "11",
			setup: func(h *harness) { h.folders.err = errors.New("disk full") },
			want:  "disk full",
		},
		{
			name:  "downloader start failure",
			prefs: prefsWith(true),
			keys:  "11",
			setup: func(h *harness) { h.runner.err = errors.New("exec format error") },
			want:  "Could not start the downloader: exec format error",
		},
		{
			name:  "preferences not saved",
			prefs: prefsWith(false),
			keys:  "21",
			setup: func(h *harness) { h.store.err = errors.New("read-only file system") },
			want:  "Could not save preferences: read-only file system",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(tt.prefs, tt.keys, videoLink)
			h.c.Render = true
			tt.setup(h)
			out := testutil.CaptureStdout(t, func() { h.run(t) })
			if screen := lastScreen(out); !strings.Contains(screen, tt.want) {
				t.Fatalf("final screen lost %q:\n%s", tt.want, screen)
			}
		})
	}
}

func TestNoticeShownOnce(t *testing.T) {
	h := newHarness(prefsWith(true), "110", videoLink)
	h.c.Render = true
	h.folders.err = errors.New("disk full")
	out := testutil.CaptureStdout(t, func() { h.run(t) })
	if n := strings.Count(out, "disk full"); n != 1 {
		t.Fatalf("notice printed %d times, want 1", n)
	}
	if strings.Contains(lastScreen(out), "disk full") {
		t.Fatal("notice repeated on the link screen")
	}
}

func TestCancelledContextExits(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	h := newHarness(prefsWith(false), "11", videoLink)
	if err := h.c.Run(ctx); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if h.keys.Remaining() != 2 {
		t.Fatalf("%d keys unread, want 2", h.keys.Remaining())
	}
	if len(h.runner.runs) != 0 {
		t.Fatal("downloader invoked after cancellation")
	}
}

func TestInterruptDuringDownloadSkipsFinish(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h := newHarness(prefsWith(true), "11111", videoLink)
	h.runner.during = cancel
	if err := h.c.Run(ctx); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(h.runner.runs) != 1 || len(h.runner.finished) != 0 {
		t.Fatalf("runs=%d finished=%d", len(h.runner.runs), len(h.runner.finished))
	}
	if h.keys.Remaining() != 3 {
		t.Fatalf("%d keys unread, want 3", h.keys.Remaining())
	}
}
