// Package prompt asks the user yes/no questions. On a terminal it uses a huh
// confirm form; otherwise it reads a line from the given reader.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
)

// Prompter asks for confirmation. A false answer with a nil error means the
// user declined or dismissed the question.
type Prompter interface {
	Confirm(question string) (bool, error)
}

// New returns a huh-backed Prompter when in is a terminal and a line-based
// one otherwise.
func New(in *os.File, out io.Writer) Prompter {
	if isTerminal(in) {
		return &FormPrompter{}
	}
	return &LinePrompter{In: in, Out: out}
}

// FormPrompter renders a huh confirm field.
type FormPrompter struct{}

// Confirm shows question with Yes/No buttons. Aborting the form (Ctrl-C, Esc)
// counts as "no".
func (p *FormPrompter) Confirm(question string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(question).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}
	return ok, nil
}

// LinePrompter reads a y/n answer from In. Anything but "y" or "yes",
// including an empty line or end of input, is "no".
type LinePrompter struct {
	In  io.Reader
	Out io.Writer

	reader *bufio.Reader
}

// Confirm prints question and reads one line.
func (p *LinePrompter) Confirm(question string) (bool, error) {
	if p.reader == nil {
		p.reader = bufio.NewReader(p.In)
	}
	fmt.Fprintf(p.Out, "? %s (y/N) ", question)

	line, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}

	answer := strings.TrimSpace(strings.ToLower(line))
	return answer == "y" || answer == "yes", nil
}

// Always answers every question with Answer without asking.
type Always struct {
	Answer bool
}

// Confirm returns the fixed answer.
func (a Always) Confirm(string) (bool, error) { return a.Answer, nil }

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
