// Package workflow runs the interactive menus that turn keypresses into a
// confirmed link, a download mode and a destination, and hands the result to
// the downloader.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jmagar/ytgrab-cli/internal/download"
	"github.com/jmagar/ytgrab-cli/internal/link"
	"github.com/jmagar/ytgrab-cli/internal/model"
	"github.com/jmagar/ytgrab-cli/internal/runtime"
	"github.com/jmagar/ytgrab-cli/internal/ui"
)

// State is a position in the menu state machine.
type State int

const (
	StateMainMenu State = iota
	StateLinkConfirmation
	StateModeSelection
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateMainMenu:
		return "main menu"
	case StateLinkConfirmation:
		return "link confirmation"
	case StateModeSelection:
		return "mode selection"
	case StateRunning:
		return "running"
	default:
		return "unknown"
	}
}

// Result is how one workflow invocation ended.
type Result int

const (
	ReturnToMainMenu Result = iota
	Exit
)

// LinkSource supplies candidate links.
type LinkSource interface {
	ClipboardCandidate() string
	PromptManualEntry() string
}

// FolderResolver picks the destination for a session. It returns
// model.ErrCancelled when the user backs out.
type FolderResolver interface {
	Resolve(ctx context.Context, sess model.Session, prefs model.Preferences) (string, error)
}

// Runner runs the downloader and reports on it afterwards.
type Runner interface {
	Run(ctx context.Context, req download.Request) (download.Outcome, error)
	Finish(dest string, out download.Outcome)
}

// PrefsSaver persists preferences.
type PrefsSaver interface {
	Save(prefs model.Preferences) error
}

// Controller owns the preferences for the life of the process and drives one
// session at a time.
type Controller struct {
	Keys    runtime.KeyReader
	Links   LinkSource
	Folders FolderResolver
	Runner  Runner
	Store   PrefsSaver

	// InitialLink, when set, replaces the clipboard as the seed of the first
	// workflow.
	InitialLink string
	// Render enables screen output.
	Render bool

	prefs   model.Preferences
	notices []string
}

// NewController returns a Controller that starts from prefs.
func NewController(prefs model.Preferences) *Controller {
	return &Controller{prefs: prefs, Render: true}
}

// Prefs returns the current preferences.
func (c *Controller) Prefs() model.Preferences {
	return c.prefs
}

// RememberFolder records a directory picked in the folder dialog so the next
// dialog starts there.
func (c *Controller) RememberFolder(path string) {
	if path == "" || path == c.prefs.LastDownloadPath {
		return
	}
	c.prefs.LastDownloadPath = path
	c.save()
}

func (c *Controller) save() {
	if c.Store == nil {
		return
	}
	if err := c.Store.Save(c.prefs); err != nil {
		c.notify(ui.WarningLine(fmt.Sprintf("Could not save preferences: %v", err)))
	}
}

// notify queues a status line for the next screen. Without rendering there
// is no screen to clear, so the line is printed straight away.
func (c *Controller) notify(line string) {
	if !c.Render {
		fmt.Println(line)
		return
	}
	c.notices = append(c.notices, line)
}

// flushNotices prints queued status lines under the current menu.
func (c *Controller) flushNotices() {
	if len(c.notices) == 0 {
		return
	}
	fmt.Println()
	for _, line := range c.notices {
		fmt.Println(line)
	}
	c.notices = c.notices[:0]
}

// errStop ends the controller loop when input is exhausted or interrupted.
var errStop = errors.New("input closed")

// readKey returns errStop once ctx is done, so an interrupt delivered as a
// signal ends the loop the same way as Ctrl+C read from the terminal.
func (c *Controller) readKey(ctx context.Context) (byte, error) {
	if c.Keys == nil || ctx.Err() != nil {
		return 0, errStop
	}
	key, err := c.Keys.ReadKey()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, errStop
		}
		return 0, fmt.Errorf("read key: %w", err)
	}
	if key == runtime.KeyInterrupt {
		return 0, errStop
	}
	return key, nil
}

// Run shows the main menu until the user exits. With SkipMainMenu set, the
// first iteration goes straight into the workflow; later iterations always
// show the menu. It returns nil on a normal exit.
func (c *Controller) Run(ctx context.Context) error {
	seed, seeded := c.InitialLink, c.InitialLink != ""
	nextSeed := func() string {
		if seeded {
			seeded = false
			return seed
		}
		return c.Links.ClipboardCandidate()
	}

	if c.prefs.SkipMainMenu {
		res, err := c.Workflow(ctx, nextSeed())
		if err != nil || res == Exit {
			return stopErr(err)
		}
	}

	for {
		c.renderMainMenu()
		key, err := c.readKey(ctx)
		if err != nil {
			return stopErr(err)
		}
		switch key {
		case '1':
			res, err := c.Workflow(ctx, nextSeed())
			if err != nil || res == Exit {
				return stopErr(err)
			}
		case '2':
			if err := c.Settings(ctx); err != nil {
				return stopErr(err)
			}
		case '0':
			return nil
		}
	}
}

func stopErr(err error) error {
	if errors.Is(err, errStop) {
		return nil
	}
	return err
}

// Workflow runs one session: link confirmation, mode selection and any
// number of downloads for the confirmed link. "Back" from mode selection
// returns to link confirmation with the same link.
func (c *Controller) Workflow(ctx context.Context, candidate string) (Result, error) {
	state := StateLinkConfirmation
	var sess model.Session
	for {
		switch state {
		case StateLinkConfirmation:
			next, confirmed, err := c.confirmLink(ctx, candidate)
			if err != nil {
				return Exit, err
			}
			if next == StateMainMenu {
				return ReturnToMainMenu, nil
			}
			candidate = confirmed
			sess = model.NewSession(confirmed, link.IsPlaylistLink(confirmed), c.prefs)
			state = next

		case StateModeSelection:
			next, mode, err := c.selectMode(ctx, &sess)
			if err != nil {
				return Exit, err
			}
			if next == StateRunning {
				c.runDownload(ctx, sess, mode)
				continue
			}
			state = next
		}
	}
}

// confirmLink shows the link menu until the user confirms a supported link
// or goes back. Confirming an unsupported link prompts for a replacement.
func (c *Controller) confirmLink(ctx context.Context, candidate string) (State, string, error) {
	for {
		c.renderLinkMenu(candidate)
		key, err := c.readKey(ctx)
		if err != nil {
			return StateMainMenu, "", err
		}
		switch key {
		case '1':
			if link.IsSupportedLink(candidate) {
				return StateModeSelection, candidate, nil
			}
			candidate = c.Links.PromptManualEntry()
		case '2':
			candidate = c.Links.PromptManualEntry()
		case '3':
			candidate = c.Links.ClipboardCandidate()
		case '0':
			return StateMainMenu, "", nil
		}
	}
}

// selectMode shows the mode menu. It returns StateRunning with the chosen
// mode, or StateLinkConfirmation when the user backs out.
func (c *Controller) selectMode(ctx context.Context, sess *model.Session) (State, model.DownloadMode, error) {
	for {
		c.renderModeMenu(*sess)
		key, err := c.readKey(ctx)
		if err != nil {
			return StateMainMenu, model.ModeUnknown, err
		}
		switch key {
		case '1':
			return StateRunning, model.ModeVideo, nil
		case '2':
			return StateRunning, model.ModeAudio, nil
		case '3':
			*sess = sess.TogglePlaylistDownload()
		case '0':
			return StateLinkConfirmation, model.ModeUnknown, nil
		}
	}
}

func (c *Controller) runDownload(ctx context.Context, sess model.Session, mode model.DownloadMode) {
	dest, err := c.Folders.Resolve(ctx, sess, c.prefs)
	if errors.Is(err, model.ErrCancelled) {
		return
	}
	if err != nil {
		c.notify(ui.ErrorLine(err.Error()))
		return
	}
	sess.DestinationFolder = dest

	if c.Render {
		ui.ClearScreen()
		ui.PrintDownload(fmt.Sprintf("Downloading %s as %s", sess.Link, mode))
		ui.PrintKeyValue("Destination", dest, ui.ColorCyan)
		fmt.Println()
	}
	req := download.Request{Session: sess, Mode: mode, Destination: dest, Prefs: c.prefs}
	out, err := c.Runner.Run(ctx, req)
	if err != nil {
		c.notify(ui.ErrorLine(fmt.Sprintf("Could not start the downloader: %v", err)))
		return
	}
	if ctx.Err() != nil {
		return
	}
	c.Runner.Finish(dest, out)
}

// Settings shows the preference toggles. Keys 1-4 flip a toggle and save
// straight away; 0 returns.
func (c *Controller) Settings(ctx context.Context) error {
	for {
		c.renderSettings()
		key, err := c.readKey(ctx)
		if err != nil {
			return err
		}
		if key == '0' {
			return nil
		}
		idx := int(key) - '1'
		if idx < 0 || idx >= len(model.Toggles) {
			continue
		}
		c.prefs.Flip(model.Toggles[idx])
		c.save()
	}
}
