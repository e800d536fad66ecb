package libraries

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ocp-tools/ocpview/internal/prompt"
	"github.com/ocp-tools/ocpview/internal/pyenv"
	"github.com/ocp-tools/ocpview/internal/terminal"
)

// TerminalName is the title of the terminal installs run in.
const TerminalName = "Library Installation"

// InstallRequest describes one library installation.
type InstallRequest struct {
	Library string
	// Commands, when non-nil, replaces the configured install commands.
	Commands []string
	Prompter prompt.Prompter
	Opener   terminal.Opener
	// OnDone is called after the terminal exited and libraries were refreshed.
	OnDone func()
}

// Install confirms the interpreter, checks its version and runs the install
// commands in a new terminal, followed by exit. It blocks until the terminal
// exits, refreshes the libraries and calls req.OnDone. A declined
// confirmation returns ErrAborted before anything is started. A shell that
// exits with an error is reported after the refresh.
func (t *Tracker) Install(ctx context.Context, req InstallRequest) error {
	if t.python == "" {
		return ErrNoInterpreter
	}

	ok, err := req.Prompter.Confirm(fmt.Sprintf("Use Python interpreter %s?", t.python))
	if err != nil {
		return fmt.Errorf("confirming interpreter: %w", err)
	}
	if !ok {
		return ErrAborted
	}

	if t.python == pyenv.Placeholder {
		return t.report("Select a Python interpreter first (set python_path or activate an environment)", ErrPlaceholderInterpreter)
	}

	matched, version, err := pyenv.CheckVersion(ctx, t.runner, t.python, t.snap.RequiredPython)
	if err != nil {
		return t.report(fmt.Sprintf("Could not determine the Python version of %s: %v", t.python, err),
			fmt.Errorf("checking interpreter version: %w", err))
	}
	if !matched {
		verr := &VersionError{Python: t.python, Version: version, Required: t.snap.RequiredPython}
		return t.report(verr.Error(), verr)
	}

	commands, err := t.InstallCommands(req.Library, req.Commands)
	if err != nil {
		return err
	}
	if len(commands) == 0 {
		return fmt.Errorf("no install commands for %s", req.Library)
	}

	term, err := req.Opener.Open(ctx, TerminalName)
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	defer term.Close()

	if err := t.waitDelay(ctx, term); err != nil {
		return err
	}

	line := strings.Join(append(commands, "exit"), " && ")
	t.logger.Debug("sending install commands", "library", req.Library, "line", line)
	t.notifier.Info(fmt.Sprintf("Installing %s ...", req.Library))
	if err := term.SendText(line); err != nil {
		return err
	}

	select {
	case <-term.Done():
	case <-ctx.Done():
		return ctx.Err()
	}

	shellErr := term.Err()
	if err := t.Refresh(ctx, t.snap, t.python); err != nil {
		t.logger.Warn("refresh after install failed", "library", req.Library, "err", err)
	}
	if _, ok := t.installed[req.Library]; ok {
		t.notifier.Info(fmt.Sprintf("Installed %s", req.Library))
	}
	if req.OnDone != nil {
		req.OnDone()
	}
	if shellErr != nil {
		return t.report(fmt.Sprintf("The %s shell exited with an error: %v", TerminalName, shellErr),
			fmt.Errorf("installing %s: %w", req.Library, shellErr))
	}
	return nil
}

// waitDelay gives the shell time to start before commands are typed.
func (t *Tracker) waitDelay(ctx context.Context, term terminal.Terminal) error {
	if t.snap.TerminalDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(t.snap.TerminalDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-term.Done():
		return errors.New("terminal exited before install commands were sent")
	case <-ctx.Done():
		return ctx.Err()
	}
}
