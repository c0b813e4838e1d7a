//go:build !windows

package parley

import (
	"io"

	"golang.org/x/sys/unix"
)

type termMode struct {
	saved *unix.Termios
}

func (t *Terminal) read(p []byte) (int, error) {
	n, err := t.in.Read(p)
	if err == io.EOF {
		// VMIN=0 poll read with nothing buffered
		return 0, nil
	}
	return n, err
}

func (t *Terminal) modeStart() error {
	fd := int(t.in.Fd())
	saved, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return err
	}
	t.mode.saved = saved

	raw := *saved
	raw.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0
	return unix.IoctlSetTermios(fd, ioctlSetTermios, &raw)
}

func (t *Terminal) modeStop() error {
	if t.mode.saved == nil {
		return nil
	}
	err := unix.IoctlSetTermios(int(t.in.Fd()), ioctlSetTermios, t.mode.saved)
	t.mode.saved = nil
	return err
}

func (t *Terminal) modeWait(block bool) error {
	fd := int(t.in.Fd())
	cur, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return err
	}
	if block {
		cur.Cc[unix.VMIN] = 1
	} else {
		cur.Cc[unix.VMIN] = 0
	}
	return unix.IoctlSetTermios(fd, ioctlSetTermios, cur)
}
