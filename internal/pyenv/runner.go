package pyenv

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes a program and captures its output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (*Output, error)
}

// Output captures the result of a subprocess.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// ExecRunner runs programs with os/exec.
type ExecRunner struct {
	// Env, when non-nil, replaces the inherited environment.
	Env []string
}

// Run starts name with args and waits for it. A non-zero exit is reported in
// Output.ExitCode, not as an error; the error return is for start failures.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (*Output, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if r.Env != nil {
		cmd.Env = r.Env
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := &Output{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			out.ExitCode = exitErr.ExitCode()
			return out, nil
		}
		return out, fmt.Errorf("running %s: %w", name, err)
	}
	return out, nil
}

// SubprocessError reports a failed interpreter invocation.
type SubprocessError struct {
	Command  string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *SubprocessError) Error() string {
	msg := fmt.Sprintf("command %q failed", e.Command)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	} else if e.ExitCode != 0 {
		msg += fmt.Sprintf(" with exit code %d", e.ExitCode)
	}
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e *SubprocessError) Unwrap() error { return e.Err }

// run invokes the runner and turns start failures and non-zero exits into a
// *SubprocessError.
func run(ctx context.Context, r Runner, name string, args ...string) (*Output, error) {
	command := strings.Join(append([]string{name}, args...), " ")

	out, err := r.Run(ctx, name, args...)
	if err != nil {
		e := &SubprocessError{Command: command, Err: err}
		if out != nil {
			e.Stderr = out.Stderr
		}
		return nil, e
	}
	if out.ExitCode != 0 {
		return nil, &SubprocessError{Command: command, ExitCode: out.ExitCode, Stderr: out.Stderr}
	}
	return out, nil
}
