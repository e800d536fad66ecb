// Package terminal runs an interactive shell in a pseudo-terminal so install
// commands behave as if typed by the user, and reports when the shell exits.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"sync"

	"github.com/creack/pty"
)

// Terminal is a running shell that accepts command lines.
type Terminal interface {
	// Name returns the title the terminal was opened with.
	Name() string
	// SendText writes line followed by a newline to the shell.
	SendText(line string) error
	// Done is closed once the shell has exited.
	Done() <-chan struct{}
	// Err is the shell's exit error once Done is closed.
	Err() error
	// Close terminates the shell.
	Close() error
}

// Opener starts terminals.
type Opener interface {
	Open(ctx context.Context, name string) (Terminal, error)
}

// PTYOpener starts the user's shell attached to a pseudo-terminal. Where
// pseudo-terminals are unsupported (Windows) the shell is driven through
// plain pipes instead.
type PTYOpener struct {
	// Shell overrides the shell to start; defaults to $SHELL, then sh (cmd.exe on Windows).
	Shell string
	// Output receives everything the shell prints; defaults to os.Stdout.
	Output io.Writer
	Logger *slog.Logger
}

// Session is a shell started by PTYOpener.
type Session struct {
	name   string
	cmd    *exec.Cmd
	input  io.WriteCloser
	done   chan struct{}
	logger *slog.Logger

	mu       sync.Mutex
	closed   bool
	exitErr  error
	copyDone chan struct{}
}

// Open starts the shell and begins streaming its output.
func (o *PTYOpener) Open(ctx context.Context, name string) (Terminal, error) {
	logger := o.Logger
	if logger == nil {
		logger = slog.Default()
	}
	out := o.Output
	if out == nil {
		out = os.Stdout
	}

	shell := o.shell()
	cmd := exec.CommandContext(ctx, shell)
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")

	s := &Session{
		name:     name,
		cmd:      cmd,
		done:     make(chan struct{}),
		copyDone: make(chan struct{}),
		logger:   logger,
	}

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: 24, Cols: 120})
	switch {
	case err == nil:
		s.input = ptmx
		go s.copyOutput(out, ptmx)
	case errors.Is(err, pty.ErrUnsupported):
		if err := s.startPiped(out); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("starting %s in a pseudo-terminal: %w", shell, err)
	}

	logger.Debug("terminal opened", "name", name, "shell", shell, "pid", cmd.Process.Pid)
	go s.wait()
	return s, nil
}

func (o *PTYOpener) shell() string {
	if o.Shell != "" {
		return o.Shell
	}
	if runtime.GOOS == "windows" {
		if comspec := os.Getenv("COMSPEC"); comspec != "" {
			return comspec
		}
		return "cmd.exe"
	}
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh
	}
	return "sh"
}

func (s *Session) startPiped(out io.Writer) error {
	// exec.Cmd is fresh here: pty.StartWithSize fails before Start on
	// unsupported platforms.
	stdin, err := s.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("opening shell stdin: %w", err)
	}
	s.cmd.Stdout = out
	s.cmd.Stderr = out
	if err := s.cmd.Start(); err != nil {
		return fmt.Errorf("starting shell: %w", err)
	}
	s.input = stdin
	close(s.copyDone)
	return nil
}

func (s *Session) copyOutput(out io.Writer, ptmx *os.File) {
	defer close(s.copyDone)
	// Reading the master side fails with EIO once the shell exits.
	_, _ = io.Copy(out, ptmx)
}

func (s *Session) wait() {
	err := s.cmd.Wait()
	<-s.copyDone
	_ = s.input.Close()

	s.mu.Lock()
	s.exitErr = err
	s.closed = true
	s.mu.Unlock()

	s.logger.Debug("terminal closed", "name", s.name, "err", err)
	close(s.done)
}

// Name returns the terminal title.
func (s *Session) Name() string { return s.name }

// SendText writes line and a newline to the shell.
func (s *Session) SendText(line string) error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return fmt.Errorf("terminal %q has exited", s.name)
	}

	if _, err := io.WriteString(s.input, line+"\n"); err != nil {
		return fmt.Errorf("writing to terminal %q: %w", s.name, err)
	}
	return nil
}

// Done is closed once the shell has exited.
func (s *Session) Done() <-chan struct{} { return s.done }

// Err returns the shell's exit error once Done is closed.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exitErr
}

// Close kills the shell if it is still running and waits for it to exit.
func (s *Session) Close() error {
	select {
	case <-s.done:
		return nil
	default:
	}
	if err := s.cmd.Process.Kill(); err != nil {
		return fmt.Errorf("killing terminal %q: %w", s.name, err)
	}
	<-s.done
	return nil
}
