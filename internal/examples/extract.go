package examples

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/ocp-tools/ocpview/internal/platform"
)

// Extract copies the entries of the zip archive below examplePath (a
// slash-separated prefix such as "build123d-dev/examples") into destDir,
// keeping their relative layout. It returns the number of files written.
func Extract(archivePath, examplePath, destDir string) (int, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return 0, fmt.Errorf("opening zip archive: %w", err)
	}
	defer r.Close()

	prefix := strings.Trim(path.Clean("/"+examplePath), "/") + "/"
	if prefix == "/" {
		prefix = ""
	}

	count := 0
	for _, f := range r.File {
		name := path.Clean(f.Name)
		if f.FileInfo().IsDir() || !strings.HasPrefix(name, prefix) {
			continue
		}
		rel := strings.TrimPrefix(name, prefix)
		if rel == "" || rel == ".." || strings.HasPrefix(rel, "../") {
			continue
		}

		target := filepath.Join(destDir, filepath.FromSlash(rel))
		if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
			return count, fmt.Errorf("archive entry %q escapes %s", f.Name, destDir)
		}
		if err := extractFile(f, target); err != nil {
			return count, err
		}
		count++
	}

	if count == 0 {
		return 0, fmt.Errorf("no files found under %q in archive", examplePath)
	}
	return count, nil
}

func extractFile(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", target, err)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("opening zip entry %s: %w", f.Name, err)
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", target, err)
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return fmt.Errorf("extracting %s: %w", f.Name, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", target, err)
	}

	// Keep scripts marked executable in the archive runnable.
	if f.Mode()&0111 != 0 {
		if err := platform.Chmod(target, 0755); err != nil {
			return fmt.Errorf("setting permissions on %s: %w", target, err)
		}
	}
	return nil
}
