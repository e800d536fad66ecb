package prompt

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLinePrompter_Confirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"yes", "yes\n", true},
		{"y upper", "Y\n", true},
		{"no", "no\n", false},
		{"empty line", "\n", false},
		{"eof", "", false},
		{"no newline", "y", true},
		{"other", "maybe\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := &LinePrompter{In: strings.NewReader(tt.input), Out: &out}

			got, err := p.Confirm("Use /usr/bin/python3?")
			if err != nil {
				t.Fatalf("Confirm: %v", err)
			}
			if got != tt.want {
				t.Errorf("Confirm() = %v, want %v", got, tt.want)
			}
			if !strings.Contains(out.String(), "Use /usr/bin/python3? (y/N)") {
				t.Errorf("question not printed: %q", out.String())
			}
		})
	}
}

func TestLinePrompter_MultipleQuestions(t *testing.T) {
	p := &LinePrompter{In: strings.NewReader("y\nn\n"), Out: &bytes.Buffer{}}

	first, _ := p.Confirm("first?")
	second, _ := p.Confirm("second?")
	if !first || second {
		t.Errorf("answers = %v, %v; want true, false", first, second)
	}
}

func TestAlways(t *testing.T) {
	if ok, _ := (Always{Answer: true}).Confirm("x"); !ok {
		t.Error("Always{true} answered no")
	}
	if ok, _ := (Always{}).Confirm("x"); ok {
		t.Error("Always{false} answered yes")
	}
}

func TestNew_NonTerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "stdin"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if _, ok := New(f, &bytes.Buffer{}).(*LinePrompter); !ok {
		t.Error("expected a LinePrompter for a regular file")
	}
}
