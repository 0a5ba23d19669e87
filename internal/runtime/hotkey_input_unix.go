//go:build linux

package runtime

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// keyInputMode returns orig adjusted for single-key reads: no line buffering,
// no echo, and Ctrl+C, Ctrl+Z, Ctrl+S and Ctrl+Q delivered as plain bytes
// instead of acting on the process. Output processing is left alone so
// menus still print normally.
func keyInputMode(orig unix.Termios) unix.Termios {
	mode := orig
	mode.Lflag &^= unix.ICANON | unix.ECHO | unix.ISIG | unix.IEXTEN
	mode.Iflag &^= unix.IXON
	mode.Cc[unix.VMIN] = 1
	mode.Cc[unix.VTIME] = 0
	return mode
}

// EnableKeyInput switches fd to key input mode and returns a function that
// puts the original settings back.
func EnableKeyInput(fd int) (func(), error) {
	orig, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return nil, fmt.Errorf("read terminal mode: %w", err)
	}
	mode := keyInputMode(*orig)
	if err := unix.IoctlSetTermios(fd, unix.TCSETS, &mode); err != nil {
		return nil, fmt.Errorf("enable key input: %w", err)
	}
	return func() {
		_ = unix.IoctlSetTermios(fd, unix.TCSETS, orig)
	}, nil
}
