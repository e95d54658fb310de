// Package shell spawns the child shell on a pseudoterminal and
// exposes non-blocking reads, writes, and window-size updates. It is
// the PTY backend collaborator from the design (C10): the rest of the
// system only ever sees a ReadResult sum type, never an errno.
package shell

import (
	"errors"
	"os"
	"os/exec"
	"os/user"
	"strings"
	"sync"
	"syscall"

	"github.com/creack/pty"
	"golang.org/x/sys/unix"
)

// ReadResultKind distinguishes the outcomes of a non-blocking PTY
// read, per the design note in SPEC_FULL.md: model as a sum type
// instead of comparing against errno sentinels at every call site.
type ReadResultKind int

const (
	ReadBytes ReadResultKind = iota
	ReadWouldBlock
	ReadEOF
	ReadError
)

// ReadResult is the outcome of one non-blocking read attempt.
type ReadResult struct {
	Kind ReadResultKind
	N    int
	Err  error
}

// Session manages a pseudo-terminal connection to a shell.
type Session struct {
	cmd *exec.Cmd
	pty *os.File
	mu  sync.Mutex

	exitedMu sync.Mutex
	exited   bool
}

// Spawn forks a child shell attached to a new pseudoterminal sized
// cols x rows. The shell comes from $SHELL, falling back through
// /etc/passwd and a fixed list of common shells to /bin/sh. TERM is
// set to xterm-256color in the child's environment.
func Spawn(cols, rows uint16) (*Session, error) {
	shellPath := findShell()

	currentUser, err := user.Current()
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(shellPath)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	cmd.Dir = currentUser.HomeDir
	cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"SHELL="+shellPath,
	)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Cols: cols, Rows: rows})
	if err != nil {
		return nil, err
	}

	if err := unix.SetNonblock(int(ptmx.Fd()), true); err != nil {
		ptmx.Close()
		cmd.Process.Kill()
		return nil, err
	}

	session := &Session{cmd: cmd, pty: ptmx}

	go func() {
		cmd.Wait()
		session.exitedMu.Lock()
		session.exited = true
		session.exitedMu.Unlock()
	}()

	return session, nil
}

// findShell resolves the shell to exec, per spec §6: $SHELL first,
// then the invoking user's /etc/passwd entry, then a fixed fallback
// list, then /bin/sh.
func findShell() string {
	if shell := os.Getenv("SHELL"); shell != "" {
		return shell
	}

	if currentUser, err := user.Current(); err == nil {
		if shell := passwdShell(currentUser.Username); shell != "" {
			if _, err := os.Stat(shell); err == nil {
				return shell
			}
		}
	}

	for _, shell := range []string{"/bin/bash", "/usr/bin/bash", "/bin/zsh", "/usr/bin/zsh", "/bin/sh"} {
		if _, err := os.Stat(shell); err == nil {
			return shell
		}
	}
	return "/bin/sh"
}

func passwdShell(username string) string {
	data, err := os.ReadFile("/etc/passwd")
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Split(line, ":")
		if len(fields) >= 7 && fields[0] == username {
			return fields[6]
		}
	}
	return ""
}

// Read attempts a non-blocking read into buf, returning a tagged
// result rather than relying on the caller to interpret errno.
func (s *Session) Read(buf []byte) ReadResult {
	n, err := s.pty.Read(buf)
	switch {
	case err == nil:
		return ReadResult{Kind: ReadBytes, N: n}
	case errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK):
		return ReadResult{Kind: ReadWouldBlock}
	case n == 0:
		return ReadResult{Kind: ReadEOF, Err: err}
	default:
		return ReadResult{Kind: ReadError, N: n, Err: err}
	}
}

// Write sends keystroke bytes to the PTY. Best-effort: a short write
// is tolerated by the caller per the spec's input-write-failure policy.
func (s *Session) Write(data []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pty.Write(data)
}

// Resize informs the slave of a new window size (TIOCSWINSZ).
func (s *Session) Resize(cols, rows uint16) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pty.Setsize(s.pty, &pty.Winsize{Cols: cols, Rows: rows})
}

// HasExited reports whether the shell process has exited.
func (s *Session) HasExited() bool {
	s.exitedMu.Lock()
	defer s.exitedMu.Unlock()
	return s.exited
}

// Close terminates the shell and releases the PTY master.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cmd.Process != nil {
		s.cmd.Process.Kill()
	}
	return s.pty.Close()
}
