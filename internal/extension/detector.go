package extension

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/ocp-tools/ocpview/internal/pyenv"
)

// JupyterID is the identifier of the companion Jupyter extension.
const JupyterID = "ms-toolsai.jupyter"

// DefaultCommand is the editor CLI queried when none is configured.
const DefaultCommand = "code"

// Detector lists installed editor extensions.
type Detector struct {
	runner  pyenv.Runner
	command string
}

// NewDetector returns a Detector using command (DefaultCommand if empty).
func NewDetector(r pyenv.Runner, command string) *Detector {
	if command == "" {
		command = DefaultCommand
	}
	return &Detector{runner: r, command: command}
}

// Command returns the editor CLI the detector runs.
func (d *Detector) Command() string { return d.command }

// Path locates the editor CLI on PATH.
func (d *Detector) Path() (string, error) {
	return exec.LookPath(d.command)
}

// List returns the installed extension identifiers, lowercased.
func (d *Detector) List(ctx context.Context) ([]string, error) {
	out, err := d.runner.Run(ctx, d.command, "--list-extensions")
	if err != nil {
		return nil, fmt.Errorf("listing extensions with %s: %w", d.command, err)
	}
	if out.ExitCode != 0 {
		return nil, &pyenv.SubprocessError{
			Command:  d.command + " --list-extensions",
			ExitCode: out.ExitCode,
			Stderr:   out.Stderr,
		}
	}

	var ids []string
	sc := bufio.NewScanner(strings.NewReader(out.Stdout))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		// Newer CLIs append "@version" with --show-versions; strip it anyway.
		if i := strings.IndexByte(line, '@'); i > 0 {
			line = line[:i]
		}
		if line != "" {
			ids = append(ids, strings.ToLower(line))
		}
	}
	return ids, nil
}

// Installed reports whether the extension id is installed.
func (d *Detector) Installed(ctx context.Context, id string) (bool, error) {
	ids, err := d.List(ctx)
	if err != nil {
		return false, err
	}
	id = strings.ToLower(id)
	for _, have := range ids {
		if have == id {
			return true, nil
		}
	}
	return false, nil
}
