package ui

import (
	"fmt"
	"io"
)

// Notifier prints user messages, one per line.
type Notifier struct {
	w  io.Writer
	st Styles
}

// NewNotifier returns a Notifier writing to w.
func NewNotifier(w io.Writer, st Styles) *Notifier {
	return &Notifier{w: w, st: st}
}

// Info prints an informational message.
func (n *Notifier) Info(msg string) {
	fmt.Fprintf(n.w, "%s %s\n", n.st.Good.Render("[INFO]"), msg)
}

// Error prints an error message.
func (n *Notifier) Error(msg string) {
	fmt.Fprintf(n.w, "%s %s\n", n.st.Bad.Render("[FAIL]"), msg)
}
