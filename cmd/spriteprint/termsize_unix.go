//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package main

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"golang.org/x/crypto/ssh/terminal"
	"golang.org/x/sys/unix"
)

// TermSize is the terminal size in characters and, when known, pixels.
type TermSize struct {
	WSRow, WSCol       uint
	WSXPixel, WSYPixel uint
}

var kittyReply = regexp.MustCompile(`\[4;(\d+);(\d+)t`)

// kittyPixels asks the terminal for its pixel size with CSI 14 t.
//
// https://sw.kovidgoyal.net/kitty/graphics-protocol/#getting-the-window-size
func kittyPixels(f *os.File) (w, h int, ok bool) {
	state, err := terminal.MakeRaw(int(f.Fd()))
	if err != nil {
		return 0, 0, false
	}
	defer terminal.Restore(int(f.Fd()), state)

	fmt.Printf("\033[14t")
	// TODO: read the reply with a timeout; a terminal that ignores CSI 14 t blocks here.
	s, err := bufio.NewReader(os.Stdin).ReadString('t')
	if err != nil {
		return 0, 0, false
	}
	m := kittyReply.FindStringSubmatch(s)
	if len(m) != 3 {
		return 0, 0, false
	}
	h, errH := strconv.Atoi(m[1])
	w, errW := strconv.Atoi(m[2])
	return w, h, errH == nil && errW == nil
}

// GetTermSize reads the window size of the controlling terminal, falling
// back to stdin.
func GetTermSize() (TermSize, error) {
	f, err := os.OpenFile("/dev/tty", unix.O_NOCTTY|unix.O_CLOEXEC|unix.O_NDELAY|unix.O_RDWR, 0666)
	if err == nil {
		defer f.Close()
		sz, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ)
		if err == nil {
			ts := TermSize{WSRow: uint(sz.Row), WSCol: uint(sz.Col), WSXPixel: uint(sz.Xpixel), WSYPixel: uint(sz.Ypixel)}
			if ts.WSXPixel == 0 && ts.WSYPixel == 0 && os.Getenv("TERM") == "xterm-kitty" {
				if w, h, ok := kittyPixels(f); ok {
					ts.WSXPixel, ts.WSYPixel = uint(w), uint(h)
				}
			}
			return ts, nil
		}
	}
	w, h, err := terminal.GetSize(0)
	if err != nil {
		return TermSize{}, err
	}
	return TermSize{WSRow: uint(h), WSCol: uint(w)}, nil
}
