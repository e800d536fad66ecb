package libraries

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/ocp-tools/ocpview/internal/config"
)

// Editor inserts lines at its caret.
type Editor interface {
	InsertLines(lines []string) error
}

// PasteSnippet inserts the configured import snippet of library into editor.
// For the viewer library a set_port call with the running viewer's port is
// appended.
func (t *Tracker) PasteSnippet(editor Editor, library string) error {
	if editor == nil {
		return ErrNoActiveEditor
	}

	tmpl, ok, valid := t.snap.Snippet(library)
	if !ok {
		return fmt.Errorf("%w: no snippet for %s", ErrUnknownLibrary, library)
	}
	if !valid {
		err := shapeError(config.KeyCodeSnippets, library, t.snap.CodeSnippets[library])
		return t.report(fmt.Sprintf("Invalid configuration: %v", err), err)
	}
	lines := slices.Clone(tmpl)

	if library == t.viewerLibrary {
		if t.ports == nil || !t.ports.Running() {
			return t.report("Start the viewer before pasting its import snippet", ErrViewerNotRunning)
		}
		lines = append(lines, fmt.Sprintf("set_port(%s)", t.ports.Port()))
	}
	return editor.InsertLines(lines)
}

// FileEditor edits a file on disk; its caret is a 1-based line.
type FileEditor struct {
	Path string
	// Line is where lines are inserted; 0 or past the end appends.
	Line int
}

// InsertLines inserts lines before e.Line, creating the file if needed. The
// file's line ending (LF or CRLF) is kept.
func (e *FileEditor) InsertLines(lines []string) error {
	mode := os.FileMode(0644)
	data, err := os.ReadFile(e.Path)
	switch {
	case err == nil:
		if info, statErr := os.Stat(e.Path); statErr == nil {
			mode = info.Mode().Perm()
		}
	case os.IsNotExist(err):
	default:
		return fmt.Errorf("reading %s: %w", e.Path, err)
	}

	text := string(data)
	eol := "\n"
	if strings.Contains(text, "\r\n") {
		eol = "\r\n"
	}

	var existing []string
	if text != "" {
		existing = strings.Split(strings.TrimSuffix(text, eol), eol)
	}

	at := len(existing)
	if e.Line > 0 && e.Line-1 < at {
		at = e.Line - 1
	}
	out := slices.Concat(existing[:at], lines, existing[at:])

	if err := os.WriteFile(e.Path, []byte(strings.Join(out, eol)+eol), mode); err != nil {
		return fmt.Errorf("writing %s: %w", e.Path, err)
	}
	return nil
}
