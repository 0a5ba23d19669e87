//go:build !linux

package runtime

import (
	"fmt"

	"golang.org/x/term"
)

// EnableKeyInput puts the terminal into raw mode so single keypresses can be
// read. Returns a restore function that should be deferred.
func EnableKeyInput(fd int) (func(), error) {
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to enable key input mode: %w", err)
	}
	return func() {
		_ = term.Restore(fd, state)
	}, nil
}
