package terminal

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer guards a bytes.Buffer shared with the output goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func openShell(t *testing.T, out *syncBuffer) Terminal {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available, skipping")
	}

	opener := &PTYOpener{Shell: sh, Output: out}
	term, err := opener.Open(context.Background(), "test")
	if err != nil {
		t.Skipf("pseudo-terminal unavailable: %v", err)
	}
	t.Cleanup(func() { _ = term.Close() })
	return term
}

func waitDone(t *testing.T, term Terminal) {
	t.Helper()
	select {
	case <-term.Done():
	case <-time.After(10 * time.Second):
		t.Fatal("terminal did not exit in time")
	}
}

func TestSession_RunsCommandsAndExits(t *testing.T) {
	out := &syncBuffer{}
	term := openShell(t, out)

	if term.Name() != "test" {
		t.Errorf("Name() = %q, want test", term.Name())
	}
	if err := term.SendText("echo ocp-$((40+2)) && exit"); err != nil {
		t.Fatalf("SendText: %v", err)
	}
	waitDone(t, term)

	if !strings.Contains(out.String(), "ocp-42") {
		t.Errorf("expected command output in terminal, got %q", out.String())
	}
	if err := term.Err(); err != nil {
		t.Errorf("Err() = %v after a clean exit", err)
	}
}

func TestSession_ExitStatus(t *testing.T) {
	term := openShell(t, &syncBuffer{})

	if err := term.SendText("exit 3"); err != nil {
		t.Fatalf("SendText: %v", err)
	}
	waitDone(t, term)

	var exitErr *exec.ExitError
	if err := term.Err(); !errors.As(err, &exitErr) || exitErr.ExitCode() != 3 {
		t.Errorf("Err() = %v, want exit status 3", err)
	}
}

func TestSession_SendAfterExit(t *testing.T) {
	term := openShell(t, &syncBuffer{})

	if err := term.SendText("exit"); err != nil {
		t.Fatalf("SendText: %v", err)
	}
	waitDone(t, term)

	if err := term.SendText("echo too late"); err == nil {
		t.Error("expected error when writing to an exited terminal")
	}
}

func TestSession_CloseKillsShell(t *testing.T) {
	term := openShell(t, &syncBuffer{})

	if err := term.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	waitDone(t, term)

	// Closing twice is fine.
	if err := term.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestPTYOpener_ShellDefault(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix shell defaults")
	}

	t.Setenv("SHELL", "/bin/zsh")
	if got := (&PTYOpener{}).shell(); got != "/bin/zsh" {
		t.Errorf("shell() = %q, want /bin/zsh", got)
	}

	t.Setenv("SHELL", "")
	if got := (&PTYOpener{}).shell(); got != "sh" {
		t.Errorf("shell() = %q, want sh", got)
	}

	if got := (&PTYOpener{Shell: "/bin/bash"}).shell(); got != "/bin/bash" {
		t.Errorf("shell() = %q, want /bin/bash", got)
	}
}
