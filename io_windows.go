//go:build windows

package parley

import (
	"golang.org/x/sys/windows"
)

type termMode struct {
	savedIn  uint32
	savedOut uint32
	have     bool
	block    bool
}

func (t *Terminal) read(p []byte) (int, error) {
	if !t.mode.block && t.mode.have {
		// poll: only read when input events are queued
		status, err := windows.WaitForSingleObject(windows.Handle(t.in.Fd()), 0)
		if err != nil {
			return 0, err
		}
		if status != windows.WAIT_OBJECT_0 {
			return 0, nil
		}
	}
	return t.in.Read(p)
}

func (t *Terminal) modeStart() error {
	hin := windows.Handle(t.in.Fd())
	hout := windows.Handle(t.out.Fd())

	if err := windows.GetConsoleMode(hin, &t.mode.savedIn); err != nil {
		return err
	}
	if err := windows.GetConsoleMode(hout, &t.mode.savedOut); err != nil {
		return err
	}

	in := t.mode.savedIn
	in &^= windows.ENABLE_ECHO_INPUT | windows.ENABLE_LINE_INPUT | windows.ENABLE_PROCESSED_INPUT
	in |= windows.ENABLE_VIRTUAL_TERMINAL_INPUT
	if err := windows.SetConsoleMode(hin, in); err != nil {
		return err
	}

	out := t.mode.savedOut
	out |= windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING
	if err := windows.SetConsoleMode(hout, out); err != nil {
		windows.SetConsoleMode(hin, t.mode.savedIn)
		return err
	}

	t.mode.have = true
	t.mode.block = true
	return nil
}

func (t *Terminal) modeStop() error {
	if !t.mode.have {
		return nil
	}
	err := windows.SetConsoleMode(windows.Handle(t.in.Fd()), t.mode.savedIn)
	if err2 := windows.SetConsoleMode(windows.Handle(t.out.Fd()), t.mode.savedOut); err == nil {
		err = err2
	}
	t.mode.have = false
	return err
}

func (t *Terminal) modeWait(block bool) error {
	t.mode.block = block
	return nil
}
