// Package download builds and runs the external downloader for one session
// and reports the result to the user.
package download

import (
	"fmt"
	"strings"

	"github.com/jmagar/ytgrab-cli/internal/ui"
)

// LineSink receives each line of downloader output as it arrives.
type LineSink func(line string, isErr bool)

// Prompter reads one line of typed input after showing label.
type Prompter interface {
	Prompt(label string) (string, error)
}

// FolderOpener shows a directory in the platform file browser.
type FolderOpener interface {
	Open(path string) error
}

// Deps holds the collaborators the orchestrator uses for terminal and
// platform interaction. Nil fields fall back to safe defaults.
type Deps struct {
	// Sink forwards output lines; defaults to ui.PrintProcessLine.
	Sink LineSink
	// Prompter asks the post-download question. Without it the question is skipped.
	Prompter Prompter
	// Opener launches the file browser.
	Opener FolderOpener
}

func (d *Deps) sink() LineSink {
	if d == nil || d.Sink == nil {
		return ui.PrintProcessLine
	}
	return d.Sink
}

// AskOpenFolder asks whether to open folder and opens it on "y"/"yes".
// It reports whether the folder was opened.
func (d *Deps) AskOpenFolder(folder string) bool {
	if d == nil || d.Prompter == nil || d.Opener == nil {
		return false
	}
	label := fmt.Sprintf("%s%s%s Download finished. Open the folder? [y/N]: ", ui.ColorCyan, ui.BulletArrow, ui.ColorReset)
	answer, err := d.Prompter.Prompt(label)
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
	default:
		return false
	}
	if err := d.Opener.Open(folder); err != nil {
		ui.PrintWarning(fmt.Sprintf("Could not open %s: %v", folder, err))
		return false
	}
	return true
}
