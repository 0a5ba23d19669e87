package platform

import (
	"errors"
	"strings"

	"github.com/atotto/clipboard"
)

var (
	errPanicked             = errors.New("platform call panicked")
	errClipboardUnsupported = errors.New("clipboard is not supported on this system")
)

// SystemClipboard reads text from the OS clipboard.
type SystemClipboard struct{}

// ReadText returns the trimmed clipboard text.
func (SystemClipboard) ReadText() (string, error) {
	if clipboard.Unsupported {
		return "", errClipboardUnsupported
	}
	return Isolated(func() (string, error) {
		text, err := clipboard.ReadAll()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(text), nil
	})
}
