package libraries

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestPasteSnippet(t *testing.T) {
	f := newFixture("3939")
	if err := f.refresh(); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2; i++ {
		ed := &memEditor{}
		if err := f.tracker.PasteSnippet(ed, "ocp_vscode"); err != nil {
			t.Fatalf("PasteSnippet: %v", err)
		}
		want := []string{"from ocp_vscode import show, show_object, set_port", "set_port(3939)"}
		if !slices.Equal(ed.lines, want) {
			t.Errorf("paste %d inserted %q, want %q", i, ed.lines, want)
		}
	}

	if got, _, _ := f.tracker.Snapshot().Snippet("ocp_vscode"); len(got) != 1 {
		t.Errorf("stored snippet was modified: %q", got)
	}
}

func TestPasteSnippet_Errors(t *testing.T) {
	tests := []struct {
		name    string
		port    string
		editor  Editor
		library string
		wantErr error
	}{
		{"no editor", "3939", nil, "build123d", ErrNoActiveEditor},
		{"viewer stopped", "", &memEditor{}, "ocp_vscode", ErrViewerNotRunning},
		{"unknown", "3939", &memEditor{}, "nope", ErrUnknownLibrary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(tt.port)
			if err := f.refresh(); err != nil {
				t.Fatal(err)
			}
			err := f.tracker.PasteSnippet(tt.editor, tt.library)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("PasteSnippet() error = %v, want %v", err, tt.wantErr)
			}
			if Reported(err) != (len(f.notifier.errors) == 1) {
				t.Errorf("Reported(%v) = %v with notifications %q", err, Reported(err), f.notifier.errors)
			}
		})
	}
}

func TestPasteSnippet_MisshapedEntry(t *testing.T) {
	f := newFixture("3939")
	if err := f.refresh(); err != nil {
		t.Fatal(err)
	}

	ed := &memEditor{}
	err := f.tracker.PasteSnippet(ed, "cadquery")
	var shape *ConfigShapeError
	if !errors.As(err, &shape) || shape.Library != "cadquery" || shape.Key != "code_snippets" {
		t.Fatalf("expected a code_snippets shape error for cadquery, got %v", err)
	}
	if !Reported(err) || len(f.notifier.errors) != 1 {
		t.Errorf("expected one notification, got %q", f.notifier.errors)
	}
	if len(ed.lines) != 0 {
		t.Errorf("inserted %q", ed.lines)
	}

	// Other libraries keep working.
	if err := f.tracker.PasteSnippet(ed, "build123d"); err != nil {
		t.Errorf("PasteSnippet(build123d): %v", err)
	}
}

func TestPasteSnippet_OtherLibraryWhileStopped(t *testing.T) {
	f := newFixture("")
	if err := f.refresh(); err != nil {
		t.Fatal(err)
	}
	ed := &memEditor{}
	if err := f.tracker.PasteSnippet(ed, "build123d"); err != nil {
		t.Fatalf("PasteSnippet: %v", err)
	}
	if !slices.Equal(ed.lines, []string{"from build123d import *"}) {
		t.Errorf("inserted %q", ed.lines)
	}
}

func TestFileEditor(t *testing.T) {
	tests := []struct {
		name    string
		initial string
		line    int
		want    string
	}{
		{"new file", "", 0, "a\nb\n"},
		{"append", "x\ny\n", 0, "x\ny\na\nb\n"},
		{"top", "x\ny\n", 1, "a\nb\nx\ny\n"},
		{"middle", "x\ny\n", 2, "x\na\nb\ny\n"},
		{"past end", "x\n", 10, "x\na\nb\n"},
		{"crlf top", "x\r\ny\r\n", 1, "a\r\nb\r\nx\r\ny\r\n"},
		{"crlf append", "x\r\n", 0, "x\r\na\r\nb\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "model.py")
			if tt.initial != "" {
				if err := os.WriteFile(path, []byte(tt.initial), 0644); err != nil {
					t.Fatal(err)
				}
			}

			ed := &FileEditor{Path: path, Line: tt.line}
			if err := ed.InsertLines([]string{"a", "b"}); err != nil {
				t.Fatalf("InsertLines: %v", err)
			}
			got, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != tt.want {
				t.Errorf("file = %q, want %q", got, tt.want)
			}
		})
	}
}
