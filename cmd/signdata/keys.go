package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

const ctrlC = 0x03

// keyListener puts the terminal in raw mode and calls the quit callback when
// q or Ctrl-C is pressed. A nil listener is inert.
type keyListener struct {
	fd    int
	state *term.State

	mu     sync.Mutex
	onQuit func()
	quit   bool
}

func startKeyListener(in *os.File) (*keyListener, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil, errors.New("stdin is not a terminal")
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}

	k := &keyListener{fd: fd, state: state}
	go k.read(in)
	return k, nil
}

func (k *keyListener) read(in io.Reader) {
	buf := make([]byte, 1)
	for {
		n, err := in.Read(buf)
		if err != nil {
			return
		}
		if n == 0 {
			continue
		}
		switch buf[0] {
		case 'q', 'Q', ctrlC:
			k.mu.Lock()
			k.quit = true
			fn := k.onQuit
			k.mu.Unlock()
			if fn != nil {
				fn()
			}
		}
	}
}

// OnQuit registers the callback. If quit was already pressed it runs now.
func (k *keyListener) OnQuit(fn func()) {
	if k == nil {
		return
	}
	k.mu.Lock()
	k.onQuit = fn
	quit := k.quit
	k.mu.Unlock()
	if quit {
		fn()
	}
}

// Stop restores the terminal state.
func (k *keyListener) Stop() {
	if k == nil {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.state != nil {
		_ = term.Restore(k.fd, k.state)
		k.state = nil
	}
}

// Writer returns w adjusted for raw mode, where a bare newline no longer
// returns the carriage.
func (k *keyListener) Writer(w io.Writer) io.Writer {
	if k == nil {
		return w
	}
	return crlfWriter{w: w}
}

type crlfWriter struct {
	w io.Writer
}

func (c crlfWriter) Write(p []byte) (int, error) {
	if _, err := c.w.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}
