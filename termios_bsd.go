//go:build freebsd || netbsd || openbsd || dragonfly

package parley

import "golang.org/x/sys/unix"

const (
	ioctlGetTermios = unix.TIOCGETA
	ioctlSetTermios = unix.TIOCSETAF
)
