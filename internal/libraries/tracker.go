package libraries

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"runtime"
	"sort"
	"strings"

	"github.com/ocp-tools/ocpview/internal/config"
	"github.com/ocp-tools/ocpview/internal/pyenv"
)

// Record is one installed, configured library.
type Record struct {
	Name             string `json:"name"`
	Version          string `json:"version"`
	Installer        string `json:"installer"`
	Location         string `json:"location"`
	EditableLocation string `json:"editable_location,omitempty"`
}

// Editable reports whether the library is installed in development mode.
func (r Record) Editable() bool { return r.EditableLocation != "" }

// StatusSink receives the names of installed libraries after each refresh.
type StatusSink interface {
	SetLibraries(names []string)
}

// PortSource reports the viewer's port.
type PortSource interface {
	Running() bool
	Port() string
}

// Notifier shows messages to the user.
type Notifier interface {
	Info(msg string)
	Error(msg string)
}

type nopNotifier struct{}

func (nopNotifier) Info(string)  {}
func (nopNotifier) Error(string) {}

// Options holds the collaborators of a Tracker. Only Runner is required.
type Options struct {
	Runner        pyenv.Runner
	Notifier      Notifier
	Sink          StatusSink
	Ports         PortSource
	Logger        *slog.Logger
	HTTPClient    *http.Client
	ViewerLibrary string
	// GOOS and TempDir control how {unset_conda} is expanded; they default
	// to the running system.
	GOOS    string
	TempDir string
}

// Tracker holds the installed libraries. It is not safe for concurrent use.
type Tracker struct {
	runner        pyenv.Runner
	notifier      Notifier
	sink          StatusSink
	ports         PortSource
	logger        *slog.Logger
	httpClient    *http.Client
	viewerLibrary string
	goos          string
	tmpDir        string

	snap      *config.Snapshot
	python    string
	installed map[string]Record
	observers []func()
}

// NewTracker creates an empty tracker.
func NewTracker(opts Options) *Tracker {
	t := &Tracker{
		runner:        opts.Runner,
		notifier:      opts.Notifier,
		sink:          opts.Sink,
		ports:         opts.Ports,
		logger:        opts.Logger,
		httpClient:    opts.HTTPClient,
		viewerLibrary: opts.ViewerLibrary,
		goos:          opts.GOOS,
		tmpDir:        opts.TempDir,
		snap:          &config.Snapshot{},
		installed:     make(map[string]Record),
	}
	if t.runner == nil {
		t.runner = &pyenv.ExecRunner{}
	}
	if t.notifier == nil {
		t.notifier = nopNotifier{}
	}
	if t.logger == nil {
		t.logger = slog.Default()
	}
	if t.httpClient == nil {
		t.httpClient = http.DefaultClient
	}
	if t.viewerLibrary == "" {
		t.viewerLibrary = "ocp_vscode"
	}
	if t.goos == "" {
		t.goos = runtime.GOOS
	}
	if t.tmpDir == "" {
		t.tmpDir = os.TempDir()
	}
	return t
}

// OnChange registers fn to be called after every refresh.
func (t *Tracker) OnChange(fn func()) {
	t.observers = append(t.observers, fn)
}

// sanitize replaces the first hyphen of a pip package name with an
// underscore, so "ocp-vscode" matches the configured "ocp_vscode".
func sanitize(name string) string {
	return strings.Replace(name, "-", "_", 1)
}

// Refresh stores snap, resolves the interpreter (python, else the configured
// path, else the active environment) and lists its packages. When listing
// fails the user is notified, no library counts as installed and the
// reported *SubprocessError is returned. Observers fire in both cases.
func (t *Tracker) Refresh(ctx context.Context, snap *config.Snapshot, python string) error {
	if snap == nil {
		snap = &config.Snapshot{}
	}
	t.snap = snap
	if python == "" {
		python = snap.PythonPath
	}
	t.python = pyenv.Resolve(python)
	t.installed = make(map[string]Record)

	err := t.list(ctx)
	if err != nil {
		err = t.report(fmt.Sprintf("Could not list installed libraries for %s: %v", t.python, err), err)
	}

	if t.sink != nil {
		t.sink.SetLibraries(t.InstalledNames())
	}
	t.logger.Debug("libraries refreshed", "python", t.python, "installed", len(t.installed))
	for _, fn := range t.observers {
		fn()
	}
	if err != nil {
		return fmt.Errorf("listing libraries: %w", err)
	}
	return nil
}

func (t *Tracker) list(ctx context.Context) error {
	pkgs, err := pyenv.ListPackages(ctx, t.runner, t.python)
	if err != nil {
		return err
	}

	configured := make(map[string]bool, len(t.snap.InstallCommands))
	for name := range t.snap.InstallCommands {
		configured[name] = true
	}

	for _, pkg := range pkgs {
		name := sanitize(pkg.Name)
		if !configured[name] {
			continue
		}
		t.installed[name] = Record{
			Name:             name,
			Version:          pkg.Version,
			Installer:        pkg.Installer,
			Location:         pkg.Location,
			EditableLocation: pkg.EditableLocation,
		}
	}
	return nil
}

// Python returns the interpreter resolved by the last refresh.
func (t *Tracker) Python() string { return t.python }

// Snapshot returns the configuration of the last refresh.
func (t *Tracker) Snapshot() *config.Snapshot { return t.snap }

// Installed returns the record of an installed library.
func (t *Tracker) Installed(name string) (Record, bool) {
	r, ok := t.installed[name]
	return r, ok
}

// Version returns the installed version of a library.
func (t *Tracker) Version(name string) (string, bool) {
	r, ok := t.installed[name]
	return r.Version, ok
}

// InstalledNames returns the installed library names in sorted order.
func (t *Tracker) InstalledNames() []string {
	names := make([]string, 0, len(t.installed))
	for name := range t.installed {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Records returns the installed libraries sorted by name.
func (t *Tracker) Records() []Record {
	records := make([]Record, 0, len(t.installed))
	for _, name := range t.InstalledNames() {
		records = append(records, t.installed[name])
	}
	return records
}
