package libraries

import (
	"errors"
	"fmt"

	"github.com/ocp-tools/ocpview/internal/config"
	"github.com/ocp-tools/ocpview/internal/pyenv"
)

var (
	ErrNoActiveEditor         = errors.New("no active editor")
	ErrPlaceholderInterpreter = errors.New("no Python interpreter selected")
	ErrNoInterpreter          = errors.New("no Python interpreter resolved; run refresh first")
	ErrVersionUnmet           = errors.New("python version requirement not met")
	ErrViewerNotRunning       = errors.New("viewer is not running")
	ErrAborted                = errors.New("aborted")
	ErrUnknownLibrary         = errors.New("unknown library")
)

// SubprocessError is returned when the interpreter or pip fails.
type SubprocessError = pyenv.SubprocessError

// ConfigShapeError reports a configured value with the wrong shape.
type ConfigShapeError struct {
	Key     string
	Library string
	Got     string
}

func (e *ConfigShapeError) Error() string {
	return fmt.Sprintf("%s for %q must be %s, got %s", e.Key, e.Library, shapes[e.Key], e.Got)
}

// shapes names the expected shape of each library table entry.
var shapes = map[string]string{
	config.KeyInstallCommands:  "a list of strings",
	config.KeyCodeSnippets:     "a list of strings",
	config.KeyExampleDownloads: "a table with zip and example_path",
}

func shapeError(key, library string, raw interface{}) *ConfigShapeError {
	return &ConfigShapeError{Key: key, Library: library, Got: fmt.Sprintf("%T", raw)}
}

// VersionError reports an interpreter whose version is not accepted.
type VersionError struct {
	Python   string
	Version  string
	Required string
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("%s is Python %s, required: %s", e.Python, e.Version, e.Required)
}

func (e *VersionError) Unwrap() error { return ErrVersionUnmet }

// ReportedError marks an error the user was already shown through the
// Notifier. Callers that print errors should skip it.
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string { return e.Err.Error() }

func (e *ReportedError) Unwrap() error { return e.Err }

// Reported reports whether err, or an error it wraps, was already shown.
func Reported(err error) bool {
	var r *ReportedError
	return errors.As(err, &r)
}

// report shows msg and returns err marked as reported.
func (t *Tracker) report(msg string, err error) error {
	t.notifier.Error(msg)
	return &ReportedError{Err: err}
}
