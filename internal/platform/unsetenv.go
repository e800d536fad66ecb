package platform

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// UnsetEnv rewrites command so that it runs without envVar in its
// environment. On Windows the command is written to a temporary batch script
// whose first line clears the variable, and the script path is returned. On
// other systems the command is prefixed with `env -u <envVar>`.
func UnsetEnv(goos, envVar, command, tmpDir string) (string, error) {
	command = strings.TrimSpace(command)
	if goos != "windows" {
		return fmt.Sprintf("env -u %s %s", envVar, command), nil
	}

	f, err := os.CreateTemp(tmpDir, "ocpview-*.bat")
	if err != nil {
		return "", fmt.Errorf("creating batch script: %w", err)
	}
	defer f.Close()

	script := fmt.Sprintf("@set %s=\r\n%s\r\n", envVar, command)
	if _, err := f.WriteString(script); err != nil {
		return "", fmt.Errorf("writing batch script %s: %w", f.Name(), err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing batch script %s: %w", f.Name(), err)
	}
	if err := Chmod(f.Name(), 0700); err != nil {
		return "", fmt.Errorf("setting permissions on %s: %w", f.Name(), err)
	}
	return f.Name(), nil
}

// Chmod applies mode where files carry POSIX permission bits. Windows decides
// executability by extension, so batch scripts and extracted examples are
// left alone there.
func Chmod(path string, mode os.FileMode) error {
	if runtime.GOOS != "windows" {
		return os.Chmod(path, mode)
	}
	return nil
}
