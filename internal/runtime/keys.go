// Package runtime reads single keypresses from the controlling terminal.
package runtime

import (
	"bufio"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// KeyInterrupt is the byte a raw-mode terminal delivers for Ctrl+C.
const KeyInterrupt byte = 0x03

// KeyReader returns one keypress at a time.
type KeyReader interface {
	ReadKey() (byte, error)
}

// TerminalKeys reads keypresses from stdin. When stdin is a terminal each read
// briefly switches it to key input mode; otherwise it falls back to reading a
// line and using its first character, so piped input still drives the menus.
type TerminalKeys struct {
	in     *os.File
	reader *bufio.Reader
}

// NewTerminalKeys returns a KeyReader bound to stdin.
func NewTerminalKeys() *TerminalKeys {
	return &TerminalKeys{in: os.Stdin, reader: bufio.NewReader(os.Stdin)}
}

// IsTerminal reports whether stdin is an interactive terminal.
func (k *TerminalKeys) IsTerminal() bool {
	return term.IsTerminal(int(k.in.Fd()))
}

// Reader returns the buffered stdin reader used when stdin is not a
// terminal. Line prompts must share it so buffered input is not lost.
func (k *TerminalKeys) Reader() *bufio.Reader {
	return k.reader
}

// ReadKey blocks until one key is available.
func (k *TerminalKeys) ReadKey() (byte, error) {
	fd := int(k.in.Fd())
	if !term.IsTerminal(fd) {
		return readLineKey(k.reader)
	}
	restore, err := EnableKeyInput(fd)
	if err != nil {
		return readLineKey(k.reader)
	}
	defer restore()

	b := make([]byte, 1)
	for {
		n, err := k.in.Read(b)
		if err != nil {
			return 0, err
		}
		if n == 1 {
			return b[0], nil
		}
	}
}

func readLineKey(r *bufio.Reader) (byte, error) {
	for {
		line, err := r.ReadString('\n')
		line = strings.TrimSpace(line)
		if line != "" {
			return line[0], nil
		}
		if err != nil {
			if err == io.EOF {
				return 0, io.EOF
			}
			return 0, err
		}
	}
}

// ScriptedKeys replays a fixed key sequence. It returns io.EOF once exhausted.
type ScriptedKeys struct {
	keys []byte
	pos  int
}

// NewScriptedKeys returns a KeyReader that yields the bytes of keys in order.
func NewScriptedKeys(keys string) *ScriptedKeys {
	return &ScriptedKeys{keys: []byte(keys)}
}

// ReadKey returns the next scripted key.
func (s *ScriptedKeys) ReadKey() (byte, error) {
	if s.pos >= len(s.keys) {
		return 0, io.EOF
	}
	b := s.keys[s.pos]
	s.pos++
	return b, nil
}

// Remaining reports how many scripted keys have not been read yet.
func (s *ScriptedKeys) Remaining() int {
	return len(s.keys) - s.pos
}
