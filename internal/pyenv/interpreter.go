package pyenv

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Placeholder is the bare interpreter name returned when nothing better is
// known. It is not accepted as an install target.
const Placeholder = "python"

// Resolve picks the interpreter to use. Order: the configured path, the
// active virtualenv, the active conda environment, python3 and python on
// PATH. Placeholder is returned when none of them exists.
func Resolve(configured string) string {
	return resolveWith(configured, os.Getenv, exec.LookPath, runtime.GOOS)
}

func resolveWith(configured string, getenv func(string) string, lookPath func(string) (string, error), goos string) string {
	if configured != "" {
		return configured
	}

	for _, envVar := range []string{"VIRTUAL_ENV", "CONDA_PREFIX"} {
		if prefix := getenv(envVar); prefix != "" {
			return envPython(envVar, prefix, goos)
		}
	}

	for _, name := range []string{"python3", "python"} {
		if path, err := lookPath(name); err == nil {
			return path
		}
	}
	return Placeholder
}

// envPython returns the interpreter inside an environment prefix. On Windows
// venvs keep it under Scripts\ while conda keeps it at the prefix root.
func envPython(envVar, prefix, goos string) string {
	if goos != "windows" {
		return filepath.Join(prefix, "bin", "python")
	}
	if envVar == "VIRTUAL_ENV" {
		return filepath.Join(prefix, "Scripts", "python.exe")
	}
	return filepath.Join(prefix, "python.exe")
}

// Version runs `<python> --version` and returns the bare version ("3.11.4").
func Version(ctx context.Context, r Runner, python string) (string, error) {
	out, err := run(ctx, r, python, "--version")
	if err != nil {
		return "", err
	}

	// Python 2 and some builds print the version on stderr.
	text := strings.TrimSpace(out.Stdout)
	if text == "" {
		text = strings.TrimSpace(out.Stderr)
	}
	if !strings.HasPrefix(text, "Python ") {
		return "", fmt.Errorf("unexpected version output %q", text)
	}
	return strings.TrimSpace(strings.TrimPrefix(text, "Python ")), nil
}

// CheckVersion runs the interpreter and reports whether its version satisfies
// requirement (see MatchVersion).
func CheckVersion(ctx context.Context, r Runner, python, requirement string) (bool, string, error) {
	version, err := Version(ctx, r, python)
	if err != nil {
		return false, "", err
	}
	ok, err := MatchVersion(version, requirement)
	return ok, version, err
}

// MatchVersion checks version against a comma-separated requirement. Plain
// entries ("3.11") match when version equals them or starts with them followed
// by a dot. Entries starting with an operator (">=3.10") are evaluated as
// semver constraints. An empty requirement always matches.
func MatchVersion(version, requirement string) (bool, error) {
	if strings.TrimSpace(requirement) == "" {
		return true, nil
	}

	for _, entry := range strings.Split(requirement, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		if strings.ContainsAny(entry[:1], "<>=!~^") {
			c, err := semver.NewConstraint(entry)
			if err != nil {
				return false, fmt.Errorf("parsing version constraint %q: %w", entry, err)
			}
			v, err := semver.NewVersion(version)
			if err != nil {
				return false, fmt.Errorf("parsing interpreter version %q: %w", version, err)
			}
			if c.Check(v) {
				return true, nil
			}
			continue
		}

		if version == entry || strings.HasPrefix(version, entry+".") {
			return true, nil
		}
	}
	return false, nil
}
