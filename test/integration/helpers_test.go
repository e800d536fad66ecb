//go:build integration

package integration_test

import (
	"context"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

// testEnv holds an isolated home directory and a fresh virtualenv.
type testEnv struct {
	HomeDir string
	Python  string
}

// setupTestEnv creates a virtualenv under a temporary HOME so no operation
// touches the real user environment. Tests are skipped when python3 is not
// available.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("integration tests use a POSIX virtualenv layout")
	}
	base, err := exec.LookPath("python3")
	if err != nil {
		t.Skip("python3 not available, skipping")
	}

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("OCPVIEW_HOME", filepath.Join(home, ".ocpview"))
	t.Setenv("VIRTUAL_ENV", "")
	t.Setenv("CONDA_PREFIX", "")

	venv := filepath.Join(home, "venv")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if out, err := exec.CommandContext(ctx, base, "-m", "venv", venv).CombinedOutput(); err != nil {
		t.Skipf("creating virtualenv failed: %v\n%s", err, out)
	}

	return &testEnv{
		HomeDir: home,
		Python:  filepath.Join(venv, "bin", "python"),
	}
}
