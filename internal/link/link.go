// Package link supplies and classifies candidate video links.
package link

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/jmagar/ytgrab-cli/internal/runlog"
	"github.com/jmagar/ytgrab-cli/internal/ui"
)

var (
	domainMarkers   = []string{"youtube.com/", "youtu.be/"}
	playlistMarkers = []string{"playlist", "list="}
)

// IsSupportedLink reports whether candidate is non-blank and mentions a
// recognised video-hosting domain.
func IsSupportedLink(candidate string) bool {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return false
	}
	return containsAny(candidate, domainMarkers)
}

// IsPlaylistLink reports whether candidate carries a playlist marker. It does
// not check the domain; combine with IsSupportedLink.
func IsPlaylistLink(candidate string) bool {
	return containsAny(candidate, playlistMarkers)
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// Clipboard is the platform clipboard as seen by Source.
type Clipboard interface {
	ReadText() (string, error)
}

// Prompter reads one line of typed input after showing label.
type Prompter interface {
	Prompt(label string) (string, error)
}

// Source produces candidate links from the clipboard or from typed input.
type Source struct {
	Clipboard Clipboard
	Prompter  Prompter
}

// ClipboardCandidate returns the trimmed clipboard text, or "" when the
// clipboard is missing, unreadable or empty.
func (s *Source) ClipboardCandidate() string {
	if s.Clipboard == nil {
		return ""
	}
	text, err := s.Clipboard.ReadText()
	if err != nil {
		runlog.Failure(runlog.EventClipboardUnavailable, err)
		return ""
	}
	return strings.TrimSpace(text)
}

// PromptManualEntry blocks for one line of typed input and returns it trimmed.
// Read failures yield "".
func (s *Source) PromptManualEntry() string {
	if s.Prompter == nil {
		return ""
	}
	label := fmt.Sprintf("%s%s%s Enter a YouTube link: ", ui.ColorCyan, ui.BulletArrow, ui.ColorReset)
	text, err := s.Prompter.Prompt(label)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

// ReadlinePrompter prompts with line editing on an interactive terminal.
type ReadlinePrompter struct{}

// Prompt shows label and returns the entered line.
func (ReadlinePrompter) Prompt(label string) (string, error) {
	fmt.Println()
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          label,
		InterruptPrompt: "^C",
	})
	if err != nil {
		return "", err
	}
	defer rl.Close()
	line, err := rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", nil
	}
	return line, err
}

// ReaderPrompter prompts on stdout and reads lines from r. It is used when
// stdin is not a terminal.
type ReaderPrompter struct {
	R *bufio.Reader
}

// Prompt shows label and returns the next line from the reader.
func (p ReaderPrompter) Prompt(label string) (string, error) {
	fmt.Print("\n" + label)
	line, err := p.R.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
