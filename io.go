package parley

import (
	"os"
	"sync"
	"unicode/utf8"

	"golang.org/x/term"
)

// Terminal owns the raw-mode input/output pair. Raw mode is
// ref-counted: nested Open/Close scopes compose, only the outermost
// pair touches the device.
type Terminal struct {
	in  *os.File
	out *os.File

	mu       sync.Mutex
	rawCount int
	pending  []byte

	mode termMode
}

// NewTerminal wraps an input/output file pair, usually stdin/stdout.
func NewTerminal(in, out *os.File) *Terminal {
	return &Terminal{in: in, out: out}
}

// Interactive reports whether the input side is a real terminal.
func (t *Terminal) Interactive() bool {
	return term.IsTerminal(int(t.in.Fd()))
}

// Send writes text to the output and flushes it through.
func (t *Terminal) Send(text string) {
	if _, err := t.out.WriteString(text); err != nil {
		logger().Error("terminal send", "err", err)
	}
}

// Ring triggers the system bell.
func (t *Terminal) Ring() {
	t.Send("\a")
}

// Recv performs one raw read and returns whatever arrived, decoded.
// In poll mode an empty string means no input was available. Bytes
// that end mid-rune are carried over to the next call.
func (t *Terminal) Recv() (string, error) {
	buf := make([]byte, 256)
	n, err := t.read(buf)
	if n == 0 {
		return "", err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	data := append(t.pending, buf[:n]...)
	t.pending = nil
	cut := len(data)
	for cut > 0 {
		r, size := utf8.DecodeLastRune(data[:cut])
		if r != utf8.RuneError || size > 1 {
			break
		}
		if utf8.RuneStart(data[cut-1]) && !utf8.FullRune(data[cut-1:]) {
			cut--
			continue
		}
		break
	}
	if cut < len(data) {
		t.pending = append([]byte(nil), data[cut:]...)
	}
	return string(data[:cut]), nil
}

// Open enters raw mode, disabling echo and canonical processing.
// Every Open must be paired with a Close.
func (t *Terminal) Open() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rawCount++
	if t.rawCount > 1 {
		return nil
	}
	return t.modeStart()
}

// Close leaves raw mode once the outermost scope ends, restoring the
// saved device state.
func (t *Terminal) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.rawCount == 0 {
		return nil
	}
	t.rawCount--
	if t.rawCount > 0 {
		return nil
	}
	return t.modeStop()
}

// Wait switches the read side between blocking (true) and zero-latency
// poll (false). Only meaningful inside an Open scope.
func (t *Terminal) Wait(block bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.rawCount == 0 {
		return nil
	}
	return t.modeWait(block)
}
